package template

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/tablecheck/pkg/config"
	"github.com/arthur-debert/tablecheck/pkg/types"
	"github.com/arthur-debert/tablecheck/pkg/vocab"
)

func TestCompileConfigBuiltin(t *testing.T) {
	mgr := NewManager("")

	cfg := mgr.CompileConfig("generic_default", CompileOptions{})

	assert.Len(t, cfg.Rules, 15)

	trim := cfg.Rules["generic.hygiene.leading_trailing_space"]
	assert.True(t, trim.IsEnabled())
	assert.Equal(t, types.SeverityWarning, trim.Severity)

	membership := cfg.Rules["vocab.membership"]
	assert.False(t, membership.IsEnabled(), "vocabulary rule ships disabled")

	wildcard := cfg.Columns[config.Wildcard]
	assert.Equal(t, types.KindFreeTextShort, wildcard.Kind)
	assert.Equal(t, "|", wildcard.ListSeparator)
}

func TestCompileConfigMissingTemplate(t *testing.T) {
	mgr := NewManager("")

	cfg := mgr.CompileConfig("no_such_template", CompileOptions{})

	require.NotNil(t, cfg, "a missing template degrades, never fails")
	assert.Empty(t, cfg.Rules)
	assert.Equal(t, types.KindFreeTextShort, cfg.Columns[config.Wildcard].Kind,
		"system defaults still apply")
}

func TestCompileConfigOverlay(t *testing.T) {
	mgr := NewManager("")

	cfg := mgr.CompileConfig("generic_default", CompileOptions{OverlayID: "catalog_baseline"})

	t.Run("overlay flips the vocabulary rule on", func(t *testing.T) {
		assert.True(t, cfg.Rules["vocab.membership"].IsEnabled())
	})

	t.Run("overlay raises a severity", func(t *testing.T) {
		assert.Equal(t, types.SeverityWarning, cfg.Rules["generic.hygiene.multiple_spaces"].Severity)
	})

	t.Run("base rules survive", func(t *testing.T) {
		assert.True(t, cfg.Rules["generic.required"].IsEnabled())
		assert.Equal(t, types.SeverityError, cfg.Rules["generic.required"].Severity)
	})

	t.Run("overlay columns and groups land", func(t *testing.T) {
		title := cfg.Columns["Title"]
		assert.True(t, title.IsRequired())

		require.Len(t, cfg.ColumnGroups, 3)
		assert.Equal(t, "date*", cfg.ColumnGroups[0].Pattern, "declared order is kept")
		assert.Equal(t, types.KindStructured, cfg.ColumnGroups[0].Kind)
		assert.NotEmpty(t, cfg.ColumnGroups[0].Regex)
	})
}

func TestCompileConfigResolvesColumns(t *testing.T) {
	mgr := NewManager("")

	cfg := mgr.CompileConfig("generic_default", CompileOptions{
		OverlayID: "catalog_baseline",
		Columns:   []string{"Title", "date_created", "object_identifier"},
	})

	date := cfg.ColumnFor("date_created")
	assert.Equal(t, types.KindStructured, date.Kind)
	assert.NotEmpty(t, date.Regex)
	assert.Equal(t, "|", date.ListSeparator, "wildcard baseline flows through groups")

	ident := cfg.ColumnFor("object_identifier")
	assert.True(t, ident.IsRequired())
	assert.True(t, ident.IsUnique())

	title := cfg.ColumnFor("Title")
	assert.True(t, title.IsRequired())
	assert.Equal(t, types.KindFreeTextShort, title.Kind)
}

func TestCompileConfigProjectScope(t *testing.T) {
	projectDir := t.TempDir()
	templatesDir := filepath.Join(projectDir, "templates")
	require.NoError(t, os.MkdirAll(templatesDir, 0o755))

	doc := `id: generic_default
name: Project override
type: generic

rules:
  generic.required:
    severity: WARNING
`
	require.NoError(t, os.WriteFile(filepath.Join(templatesDir, "generic_default.yml"), []byte(doc), 0o644))

	mgr := NewManager(projectDir)
	cfg := mgr.CompileConfig("generic_default", CompileOptions{})

	assert.Equal(t, types.SeverityWarning, cfg.Rules["generic.required"].Severity,
		"project scope shadows the builtin template")
	assert.NotContains(t, cfg.Rules, "generic.regex",
		"shadowing replaces the whole template, not merges it")
}

func TestCompileConfigTOMLProject(t *testing.T) {
	projectDir := t.TempDir()
	templatesDir := filepath.Join(projectDir, "templates")
	require.NoError(t, os.MkdirAll(templatesDir, 0o755))

	doc := `id = "site_rules"
name = "Site rules"
type = "overlay"

[rules."generic.length"]
severity = "ERROR"
`
	require.NoError(t, os.WriteFile(filepath.Join(templatesDir, "site_rules.toml"), []byte(doc), 0o644))

	mgr := NewManager(projectDir)
	cfg := mgr.CompileConfig("generic_default", CompileOptions{OverlayID: "site_rules"})

	assert.Equal(t, types.SeverityError, cfg.Rules["generic.length"].Severity)
	assert.True(t, cfg.Rules["generic.required"].IsEnabled(), "base template still applies")
}

func TestCompileConfigBrokenTemplateDegrades(t *testing.T) {
	projectDir := t.TempDir()
	templatesDir := filepath.Join(projectDir, "templates")
	require.NoError(t, os.MkdirAll(templatesDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(templatesDir, "broken.yml"),
		[]byte(":\n  - not valid yaml: ["), 0o644))

	mgr := NewManager(projectDir)
	cfg := mgr.CompileConfig("generic_default", CompileOptions{OverlayID: "broken"})

	require.NotNil(t, cfg)
	assert.True(t, cfg.Rules["generic.required"].IsEnabled(),
		"a broken overlay is skipped, the base still compiles")
}

func TestCompileConfigVocabulary(t *testing.T) {
	mgr := NewManager("")
	provider := vocab.NewStatic(map[string][]string{"resource_types": {"text", "image"}})

	cfg := mgr.CompileConfig("generic_default", CompileOptions{Vocabulary: provider})

	assert.NotNil(t, cfg.Vocabulary())
}

func TestListTemplates(t *testing.T) {
	projectDir := t.TempDir()
	templatesDir := filepath.Join(projectDir, "templates")
	require.NoError(t, os.MkdirAll(templatesDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(templatesDir, "mine.yml"),
		[]byte("id: mine\nname: Mine\ntype: overlay\n"), 0o644))

	mgr := NewManager(projectDir)

	t.Run("all scopes", func(t *testing.T) {
		infos := mgr.ListTemplates("")
		ids := make(map[string]Info, len(infos))
		for _, info := range infos {
			ids[info.ID] = info
		}

		require.Contains(t, ids, "generic_default")
		assert.Equal(t, ScopeBuiltin, ids["generic_default"].Scope)
		assert.True(t, ids["generic_default"].ReadOnly)

		require.Contains(t, ids, "mine")
		assert.Equal(t, ScopeProject, ids["mine"].Scope)
		assert.False(t, ids["mine"].ReadOnly)
	})

	t.Run("type filter", func(t *testing.T) {
		for _, info := range mgr.ListTemplates(TypeOverlay) {
			assert.Equal(t, TypeOverlay, info.Type)
		}
		infos := mgr.ListTemplates(TypeGeneric)
		found := false
		for _, info := range infos {
			assert.Equal(t, TypeGeneric, info.Type)
			if info.ID == "generic_default" {
				found = true
			}
		}
		assert.True(t, found)
	})
}
