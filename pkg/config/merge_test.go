package config

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arthur-debert/tablecheck/pkg/types"
)

func TestRuleSettingsMerge(t *testing.T) {
	base := RuleSettings{
		Enabled:  Bool(true),
		Severity: types.SeverityWarning,
		Options:  map[string]any{"limit": 3, "nested": map[string]any{"a": 1, "b": 2}},
	}

	t.Run("unset overlay keeps base", func(t *testing.T) {
		out := base.Merge(RuleSettings{})
		assert.True(t, out.IsEnabled())
		assert.Equal(t, types.SeverityWarning, out.Severity)
		assert.Equal(t, 3, out.Options["limit"])
	})

	t.Run("explicit false wins", func(t *testing.T) {
		out := base.Merge(RuleSettings{Enabled: Bool(false)})
		assert.False(t, out.IsEnabled())
	})

	t.Run("severity replaced", func(t *testing.T) {
		out := base.Merge(RuleSettings{Severity: types.SeverityError})
		assert.Equal(t, types.SeverityError, out.Severity)
	})

	t.Run("options merge recursively", func(t *testing.T) {
		out := base.Merge(RuleSettings{Options: map[string]any{
			"nested": map[string]any{"b": 20, "c": 30},
		}})
		nested := out.Options["nested"].(map[string]any)
		assert.Equal(t, 1, nested["a"], "untouched nested key survives")
		assert.Equal(t, 20, nested["b"], "overlay nested key wins")
		assert.Equal(t, 30, nested["c"], "new nested key added")
		assert.Equal(t, 3, out.Options["limit"])
	})

	t.Run("list options replaced wholesale", func(t *testing.T) {
		withList := RuleSettings{Options: map[string]any{"tokens": []any{"a", "b"}}}
		out := withList.Merge(RuleSettings{Options: map[string]any{"tokens": []any{"c"}}})
		assert.Equal(t, []any{"c"}, out.Options["tokens"])
	})
}

func TestRuleSettingsIsEnabled(t *testing.T) {
	assert.True(t, RuleSettings{}.IsEnabled(), "unset defaults to enabled")
	assert.True(t, RuleSettings{Enabled: Bool(true)}.IsEnabled())
	assert.False(t, RuleSettings{Enabled: Bool(false)}.IsEnabled())
}

func TestColumnSettingsMerge(t *testing.T) {
	base := ColumnSettings{
		Kind:          types.KindFreeTextShort,
		Required:      Bool(false),
		AllowedValues: []string{"a", "b"},
		MinLength:     Int(1),
		EmptyTokens:   []string{"N/A", "-"},
	}

	t.Run("pointer fields survive zero overlay", func(t *testing.T) {
		out := base.Merge(ColumnSettings{})
		assert.False(t, out.IsRequired())
		assert.Equal(t, []string{"a", "b"}, out.AllowedValues)
		assert.Equal(t, 1, *out.MinLength)
	})

	t.Run("scalars replaced when set", func(t *testing.T) {
		out := base.Merge(ColumnSettings{
			Kind:     types.KindControlled,
			Required: Bool(true),
			Regex:    `^[a-z]+$`,
		})
		assert.Equal(t, types.KindControlled, out.Kind)
		assert.True(t, out.IsRequired())
		assert.Equal(t, `^[a-z]+$`, out.Regex)
	})

	t.Run("non-nil lists replace wholesale", func(t *testing.T) {
		out := base.Merge(ColumnSettings{AllowedValues: []string{"x"}})
		assert.Equal(t, []string{"x"}, out.AllowedValues, "lists never merge element-wise")
		assert.Equal(t, []string{"N/A", "-"}, out.EmptyTokens, "nil list keeps base")
	})

	t.Run("empty non-nil list clears base", func(t *testing.T) {
		out := base.Merge(ColumnSettings{AllowedValues: []string{}})
		assert.Empty(t, out.AllowedValues)
	})

	t.Run("rule overrides merge per rule", func(t *testing.T) {
		withOverride := ColumnSettings{RuleOverrides: map[string]RuleSettings{
			"hygiene.multiple_spaces": {Severity: types.SeverityWarning},
		}}
		out := withOverride.Merge(ColumnSettings{RuleOverrides: map[string]RuleSettings{
			"hygiene.multiple_spaces": {Enabled: Bool(false)},
			"format.length":           {Severity: types.SeverityError},
		}})
		assert.False(t, out.RuleOverrides["hygiene.multiple_spaces"].IsEnabled())
		assert.Equal(t, types.SeverityWarning, out.RuleOverrides["hygiene.multiple_spaces"].Severity,
			"fields not set in the overlay survive the per-rule merge")
		assert.Equal(t, types.SeverityError, out.RuleOverrides["format.length"].Severity)
	})
}
