package rules

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/arthur-debert/tablecheck/pkg/config"
	"github.com/arthur-debert/tablecheck/pkg/dataset"
	"github.com/arthur-debert/tablecheck/pkg/engine"
	"github.com/arthur-debert/tablecheck/pkg/logging"
	"github.com/arthur-debert/tablecheck/pkg/types"
)

func init() {
	engine.Register(&Case{})
}

// Case flags values that do not follow the column's declared casing
// convention ("upper", "lower" or "title") and suggests the recased
// value. Dormant without an expected_case setting; an unknown setting
// is logged and makes the rule dormant for that column. Cells with no
// letters have no casing notion and are skipped.
type Case struct{}

func (*Case) ID() string                      { return "generic.case" }
func (*Case) Name() string                    { return "Expected casing" }
func (*Case) DefaultSeverity() types.Severity { return types.SeverityWarning }
func (*Case) PerColumn() bool                 { return true }

func (r *Case) Check(ds *dataset.Dataset, col string, ctx *config.RuleContext) ([]types.Issue, error) {
	expected := ctx.Column.ExpectedCase
	if expected == "" {
		return nil, nil
	}

	var recase func(string) string
	switch expected {
	case "upper":
		recase = strings.ToUpper
	case "lower":
		recase = strings.ToLower
	case "title":
		recase = titleCase
	default:
		logger := logging.GetLogger("rules.case")
		logger.Warn().
			Str("expected_case", expected).
			Str("column", col).
			Msg("unknown casing convention, rule dormant for this column")
		return nil, nil
	}

	var issues []types.Issue
	forEachCell(ds, col, func(row int, val string) {
		if isBlank(val) || !hasLetter(val) {
			return
		}
		want := recase(val)
		if val != want {
			issue := types.NewIssue(r.ID(), ctx.Severity, row, col, val,
				fmt.Sprintf("Expected %s case in %q", expected, col))
			issues = append(issues, issue.WithSuggestion(want))
		}
	})
	return issues, nil
}

func hasLetter(s string) bool {
	for _, ch := range s {
		if unicode.IsLetter(ch) {
			return true
		}
	}
	return false
}

// titleCase uppercases the first letter of every word and lowercases
// the rest, with any non-letter acting as a word boundary.
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, ch := range s {
		if unicode.IsLetter(ch) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(ch))
			} else {
				b.WriteRune(unicode.ToUpper(ch))
			}
			prevLetter = true
		} else {
			b.WriteRune(ch)
			prevLetter = false
		}
	}
	return b.String()
}
