package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/arthur-debert/tablecheck/pkg/config"
	"github.com/arthur-debert/tablecheck/pkg/dataset"
	"github.com/arthur-debert/tablecheck/pkg/engine"
	"github.com/arthur-debert/tablecheck/pkg/logging"
	"github.com/arthur-debert/tablecheck/pkg/types"
)

func init() {
	engine.Register(&Regex{})
	engine.Register(&Length{})
	engine.Register(&UnexpectedMultiline{})
}

// Regex flags values that do not fully match the column's declared
// pattern. An invalid pattern makes the rule dormant for that column,
// with a warning; a template typo must not fail the run.
type Regex struct{}

func (*Regex) ID() string                      { return "generic.regex" }
func (*Regex) Name() string                    { return "Format (regular expression)" }
func (*Regex) DefaultSeverity() types.Severity { return types.SeverityError }
func (*Regex) PerColumn() bool                 { return true }

func (r *Regex) Check(ds *dataset.Dataset, col string, ctx *config.RuleContext) ([]types.Issue, error) {
	pattern := ctx.Column.Regex
	if pattern == "" {
		return nil, nil
	}

	re, err := regexp.Compile(anchored(pattern))
	if err != nil {
		logger := logging.GetLogger("rules.regex")
		logger.Warn().
			Err(err).
			Str("pattern", pattern).
			Str("column", col).
			Msg("invalid regex, rule dormant for this column")
		return nil, nil
	}

	var issues []types.Issue
	forEachCell(ds, col, func(row int, val string) {
		if isBlank(val) {
			return
		}
		if !re.MatchString(val) {
			issues = append(issues, types.NewIssue(r.ID(), ctx.Severity, row, col, val,
				fmt.Sprintf("Value %q does not match the expected format for %q", val, col)))
		}
	})
	return issues, nil
}

// anchored forces a full match the way the original semantics demand.
func anchored(pattern string) string {
	return "^(?:" + pattern + ")$"
}

// Length flags values outside the column's declared min/max length.
// Dormant when neither bound is configured.
type Length struct{}

func (*Length) ID() string                      { return "generic.length" }
func (*Length) Name() string                    { return "Value length" }
func (*Length) DefaultSeverity() types.Severity { return types.SeverityWarning }
func (*Length) PerColumn() bool                 { return true }

func (r *Length) Check(ds *dataset.Dataset, col string, ctx *config.RuleContext) ([]types.Issue, error) {
	minLen := ctx.Column.MinLength
	maxLen := ctx.Column.MaxLength
	if minLen == nil && maxLen == nil {
		return nil, nil
	}

	var issues []types.Issue
	forEachCell(ds, col, func(row int, val string) {
		if isBlank(val) {
			return
		}
		n := len([]rune(val))
		switch {
		case minLen != nil && n < *minLen:
			issues = append(issues, types.NewIssue(r.ID(), ctx.Severity, row, col, val,
				fmt.Sprintf("Value is %d characters, minimum for %q is %d", n, col, *minLen)))
		case maxLen != nil && n > *maxLen:
			issues = append(issues, types.NewIssue(r.ID(), ctx.Severity, row, col, val,
				fmt.Sprintf("Value is %d characters, maximum for %q is %d", n, col, *maxLen)))
		}
	})
	return issues, nil
}

// UnexpectedMultiline flags newlines in columns that do not allow
// them and suggests the joined value.
type UnexpectedMultiline struct{}

func (*UnexpectedMultiline) ID() string                      { return "generic.unexpected_multiline" }
func (*UnexpectedMultiline) Name() string                    { return "Unexpected multiline cell" }
func (*UnexpectedMultiline) DefaultSeverity() types.Severity { return types.SeverityWarning }
func (*UnexpectedMultiline) PerColumn() bool                 { return true }

func (r *UnexpectedMultiline) Check(ds *dataset.Dataset, col string, ctx *config.RuleContext) ([]types.Issue, error) {
	if ctx.Column.AllowsMultiline() || ctx.Column.Kind == types.KindFreeTextLong {
		return nil, nil
	}

	replacer := strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")
	var issues []types.Issue
	forEachCell(ds, col, func(row int, val string) {
		if !strings.ContainsAny(val, "\r\n") {
			return
		}
		issue := types.NewIssue(r.ID(), ctx.Severity, row, col, val,
			fmt.Sprintf("Unexpected newline in %q", col))
		issues = append(issues, issue.WithSuggestion(strings.TrimSpace(replacer.Replace(val))))
	})
	return issues, nil
}
