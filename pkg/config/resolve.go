package config

import (
	"path/filepath"

	"github.com/arthur-debert/tablecheck/pkg/logging"
	"github.com/arthur-debert/tablecheck/pkg/types"
	"github.com/arthur-debert/tablecheck/pkg/vocab"
)

// ResolveColumns flattens the wildcard entry, the column groups, and
// the exact column entries into one settings entry per actual column.
//
// Precedence, ascending: the "*" wildcard entry is the baseline for
// every column; column groups apply in declared order to columns whose
// name matches their glob pattern; an exact column entry wins over
// both. Each layer merges with the standard merge law.
//
// The receiver is not modified; a new Config is returned. Unparsable
// group patterns are logged and skipped.
func (c *Config) ResolveColumns(columnNames []string) *Config {
	logger := logging.GetLogger("config.resolve")

	out := &Config{
		Rules:      make(map[string]RuleSettings, len(c.Rules)),
		Columns:    make(map[string]ColumnSettings, len(columnNames)),
		vocabulary: c.vocabulary,
	}
	for id, s := range c.Rules {
		out.Rules[id] = s
	}

	wildcard := c.Columns[Wildcard]

	for _, col := range columnNames {
		resolved := wildcard

		for _, group := range c.ColumnGroups {
			matched, err := filepath.Match(group.Pattern, col)
			if err != nil {
				logger.Warn().
					Str("pattern", group.Pattern).
					Err(err).
					Msg("unparsable column group pattern, skipping")
				continue
			}
			if matched {
				resolved = resolved.Merge(group.ColumnSettings)
			}
		}

		if exact, ok := c.Columns[col]; ok && col != Wildcard {
			resolved = resolved.Merge(exact)
		}

		out.Columns[col] = resolved
	}

	return out
}

// RuleContext is the merged per-(rule, column) view handed to a rule's
// Check. For whole-table rules Column is the zero value.
type RuleContext struct {
	RuleID     string
	Severity   types.Severity
	Column     ColumnSettings
	Options    map[string]any
	Vocabulary vocab.Provider
}

// EffectiveFor merges, in order, the rule's global settings (minus its
// Enabled flag), the column's settings (minus its RuleOverrides), and
// the column's override for this rule. The returned bool reports
// whether the (rule, column) pair is enabled; an explicit false at the
// rule level, the column level, or in the override is authoritative.
func (c *Config) EffectiveFor(ruleID, column string, defaultSeverity types.Severity) (RuleContext, bool) {
	rs := c.Rules[ruleID]
	if !rs.IsEnabled() {
		return RuleContext{}, false
	}

	severity := severityOr(rs.Severity, defaultSeverity)
	options := mergeOptions(nil, rs.Options)

	var colSettings ColumnSettings
	if column != "" {
		colSettings = c.ColumnFor(column)
		if !colSettings.IsEnabled() {
			return RuleContext{}, false
		}
		if colSettings.Severity != "" {
			severity = colSettings.Severity
		}
		options = mergeOptions(options, colSettings.Options)

		if override, ok := colSettings.RuleOverrides[ruleID]; ok {
			if !override.IsEnabled() {
				return RuleContext{}, false
			}
			if override.Severity != "" {
				severity = override.Severity
			}
			options = mergeOptions(options, override.Options)
		}
		// The raw override map never reaches the rule.
		colSettings.RuleOverrides = nil
	}

	return RuleContext{
		RuleID:     ruleID,
		Severity:   severity,
		Column:     colSettings,
		Options:    options,
		Vocabulary: c.vocabulary,
	}, true
}
