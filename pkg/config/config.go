package config

import (
	"github.com/arthur-debert/tablecheck/pkg/types"
	"github.com/arthur-debert/tablecheck/pkg/vocab"
)

// Wildcard is the reserved column entry applied to every column as a
// baseline during resolution.
const Wildcard = "*"

// RuleSettings configures one rule, either globally under Config.Rules
// or per column under ColumnSettings.RuleOverrides.
type RuleSettings struct {
	// Enabled gates execution; nil means "not set here" and defaults
	// to true. An explicit false at any layer is authoritative.
	Enabled  *bool          `koanf:"enabled"`
	Severity types.Severity `koanf:"severity"`
	// Options carries rule-specific free-form settings.
	Options map[string]any `koanf:",remain"`
}

// ColumnSettings configures validation for one column.
type ColumnSettings struct {
	// Enabled gates every rule for the column; nil means "not set
	// here" and defaults to true. An explicit false is authoritative
	// and no per-rule override can re-enable the column.
	Enabled       *bool            `koanf:"enabled"`
	Kind          types.ColumnKind `koanf:"kind"`
	Required      *bool            `koanf:"required"`
	Unique        *bool            `koanf:"unique"`
	MultilineOK   *bool            `koanf:"multiline_ok"`
	AllowedValues []string         `koanf:"allowed_values"`
	Regex         string           `koanf:"regex"`
	// ExpectedCase is "upper", "lower" or "title"; empty means no
	// casing convention for the column.
	ExpectedCase string `koanf:"expected_case"`
	// ForbiddenChars lists characters that must not appear in values.
	ForbiddenChars string `koanf:"forbidden_chars"`
	ListSeparator string           `koanf:"list_separator"`
	MinLength     *int             `koanf:"min_length"`
	MaxLength     *int             `koanf:"max_length"`
	EmptyTokens   []string         `koanf:"empty_tokens"`
	Severity      types.Severity   `koanf:"severity"`
	// Vocabulary names a controlled vocabulary for vocabulary rules.
	Vocabulary string `koanf:"vocabulary"`
	// RuleOverrides tunes or disables individual rules for this column.
	RuleOverrides map[string]RuleSettings `koanf:"rule_overrides"`
	// Options carries column-level free-form settings.
	Options map[string]any `koanf:",remain"`
}

// ColumnGroup applies settings to every column whose name matches a
// glob pattern. Groups apply in declared order.
type ColumnGroup struct {
	Pattern string `koanf:"pattern"`

	ColumnSettings `koanf:",squash"`
}

// Config is the compiled validation configuration handed to the
// engine. After ResolveColumns, Columns holds one flat entry per
// actual column name.
type Config struct {
	Rules        map[string]RuleSettings   `koanf:"rules"`
	Columns      map[string]ColumnSettings `koanf:"columns"`
	ColumnGroups []ColumnGroup             `koanf:"column_groups"`

	// vocabulary is a caller-supplied handle for vocabulary-dependent
	// rules. It is injected by the compiler and never serialized.
	vocabulary vocab.Provider
}

// Empty returns a usable zero configuration.
func Empty() *Config {
	return &Config{
		Rules:   make(map[string]RuleSettings),
		Columns: make(map[string]ColumnSettings),
	}
}

// SetVocabulary injects the external vocabulary handle.
func (c *Config) SetVocabulary(p vocab.Provider) {
	c.vocabulary = p
}

// Vocabulary returns the injected vocabulary handle, or nil.
func (c *Config) Vocabulary() vocab.Provider {
	return c.vocabulary
}

// ColumnFor returns the resolved settings for a column. The zero
// value is returned for unknown columns.
func (c *Config) ColumnFor(name string) ColumnSettings {
	if c == nil || c.Columns == nil {
		return ColumnSettings{}
	}
	return c.Columns[name]
}

// RuleIDs returns the rule ids that have explicit settings.
func (c *Config) RuleIDs() []string {
	ids := make([]string, 0, len(c.Rules))
	for id := range c.Rules {
		ids = append(ids, id)
	}
	return ids
}
