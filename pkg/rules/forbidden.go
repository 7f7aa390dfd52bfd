package rules

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/arthur-debert/tablecheck/pkg/config"
	"github.com/arthur-debert/tablecheck/pkg/dataset"
	"github.com/arthur-debert/tablecheck/pkg/engine"
	"github.com/arthur-debert/tablecheck/pkg/types"
)

func init() {
	engine.Register(&ForbiddenChars{})
}

// ForbiddenChars flags values containing characters the column
// declares off-limits (forbidden_chars is read as a set of runes).
// Dormant without the setting.
type ForbiddenChars struct{}

func (*ForbiddenChars) ID() string                      { return "generic.forbidden_chars" }
func (*ForbiddenChars) Name() string                    { return "Forbidden characters" }
func (*ForbiddenChars) DefaultSeverity() types.Severity { return types.SeverityWarning }
func (*ForbiddenChars) PerColumn() bool                 { return true }

func (r *ForbiddenChars) Check(ds *dataset.Dataset, col string, ctx *config.RuleContext) ([]types.Issue, error) {
	forbidden := ctx.Column.ForbiddenChars
	if forbidden == "" {
		return nil, nil
	}

	var issues []types.Issue
	forEachCell(ds, col, func(row int, val string) {
		if isBlank(val) {
			return
		}
		var found []string
		seen := map[rune]struct{}{}
		for _, ch := range forbidden {
			if _, dup := seen[ch]; dup {
				continue
			}
			seen[ch] = struct{}{}
			if strings.ContainsRune(val, ch) {
				found = append(found, charLabel(ch))
			}
		}
		if len(found) == 0 {
			return
		}
		sort.Strings(found)
		issues = append(issues, types.NewIssue(r.ID(), ctx.Severity, row, col, val,
			fmt.Sprintf("Forbidden character(s) in %q: %s", col, strings.Join(found, ", "))))
	})
	return issues, nil
}

// charLabel renders a character readably, falling back to its code
// point for anything unprintable.
func charLabel(ch rune) string {
	if strconv.IsPrint(ch) {
		return strconv.Quote(string(ch))
	}
	return fmt.Sprintf("U+%04X", ch)
}
