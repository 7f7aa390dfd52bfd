package config

import (
	"github.com/knadh/koanf/maps"

	"github.com/arthur-debert/tablecheck/pkg/types"
)

// Merge returns base with overlay applied. Set scalar fields and
// non-nil list fields in the overlay replace the base's; map fields
// merge key-by-key.
func (base RuleSettings) Merge(overlay RuleSettings) RuleSettings {
	out := base
	out.Options = mergeOptions(base.Options, overlay.Options)
	if overlay.Enabled != nil {
		out.Enabled = overlay.Enabled
	}
	if overlay.Severity != "" {
		out.Severity = overlay.Severity
	}
	return out
}

// IsEnabled resolves the Enabled flag, defaulting to true.
func (s RuleSettings) IsEnabled() bool {
	return s.Enabled == nil || *s.Enabled
}

// Merge returns base with overlay applied, field by field.
func (base ColumnSettings) Merge(overlay ColumnSettings) ColumnSettings {
	out := base
	if overlay.Enabled != nil {
		out.Enabled = overlay.Enabled
	}
	if overlay.Kind != "" {
		out.Kind = overlay.Kind
	}
	if overlay.Required != nil {
		out.Required = overlay.Required
	}
	if overlay.Unique != nil {
		out.Unique = overlay.Unique
	}
	if overlay.MultilineOK != nil {
		out.MultilineOK = overlay.MultilineOK
	}
	if overlay.AllowedValues != nil {
		out.AllowedValues = append([]string(nil), overlay.AllowedValues...)
	}
	if overlay.Regex != "" {
		out.Regex = overlay.Regex
	}
	if overlay.ExpectedCase != "" {
		out.ExpectedCase = overlay.ExpectedCase
	}
	if overlay.ForbiddenChars != "" {
		out.ForbiddenChars = overlay.ForbiddenChars
	}
	if overlay.ListSeparator != "" {
		out.ListSeparator = overlay.ListSeparator
	}
	if overlay.MinLength != nil {
		out.MinLength = overlay.MinLength
	}
	if overlay.MaxLength != nil {
		out.MaxLength = overlay.MaxLength
	}
	if overlay.EmptyTokens != nil {
		out.EmptyTokens = append([]string(nil), overlay.EmptyTokens...)
	}
	if overlay.Severity != "" {
		out.Severity = overlay.Severity
	}
	if overlay.Vocabulary != "" {
		out.Vocabulary = overlay.Vocabulary
	}
	out.RuleOverrides = mergeOverrides(base.RuleOverrides, overlay.RuleOverrides)
	out.Options = mergeOptions(base.Options, overlay.Options)
	return out
}

// IsEnabled resolves the Enabled flag, defaulting to true.
func (s ColumnSettings) IsEnabled() bool {
	return s.Enabled == nil || *s.Enabled
}

// IsRequired resolves the Required flag, defaulting to false.
func (s ColumnSettings) IsRequired() bool {
	return s.Required != nil && *s.Required
}

// IsUnique resolves the Unique flag, defaulting to false.
func (s ColumnSettings) IsUnique() bool {
	return s.Unique != nil && *s.Unique
}

// AllowsMultiline resolves the MultilineOK flag, defaulting to false.
func (s ColumnSettings) AllowsMultiline() bool {
	return s.MultilineOK != nil && *s.MultilineOK
}

func mergeOverrides(base, overlay map[string]RuleSettings) map[string]RuleSettings {
	if base == nil && overlay == nil {
		return nil
	}
	out := make(map[string]RuleSettings, len(base)+len(overlay))
	for id, s := range base {
		out[id] = s
	}
	for id, s := range overlay {
		if existing, ok := out[id]; ok {
			out[id] = existing.Merge(s)
		} else {
			out[id] = s
		}
	}
	return out
}

// mergeOptions merges free-form option maps recursively: nested maps
// merge key-by-key, everything else (including lists) is replaced by
// the overlay.
func mergeOptions(base, overlay map[string]any) map[string]any {
	if base == nil && overlay == nil {
		return nil
	}
	out := make(map[string]any, len(base))
	if base != nil {
		out = maps.Copy(base)
	}
	if overlay != nil {
		maps.Merge(maps.Copy(overlay), out)
	}
	return out
}

// boolPtr and severityOf are small helpers for building configs in code.
func boolPtr(v bool) *bool { return &v }

// Bool returns a pointer to v, for building configs literally.
func Bool(v bool) *bool { return boolPtr(v) }

// Int returns a pointer to v, for building configs literally.
func Int(v int) *int { return &v }

// severityOr returns s when set, fallback otherwise.
func severityOr(s, fallback types.Severity) types.Severity {
	if s != "" {
		return s
	}
	return fallback
}
