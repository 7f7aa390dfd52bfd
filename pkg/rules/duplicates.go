package rules

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/tablecheck/pkg/config"
	"github.com/arthur-debert/tablecheck/pkg/dataset"
	"github.com/arthur-debert/tablecheck/pkg/engine"
	"github.com/arthur-debert/tablecheck/pkg/types"
)

func init() {
	engine.Register(&UniqueColumn{})
	engine.Register(&DuplicateRows{})
}

// UniqueColumn flags repeated values in a column declared unique.
// The first occurrence is never flagged.
type UniqueColumn struct{}

func (*UniqueColumn) ID() string                      { return "generic.unique_column" }
func (*UniqueColumn) Name() string                    { return "Unique column violation" }
func (*UniqueColumn) DefaultSeverity() types.Severity { return types.SeverityError }
func (*UniqueColumn) PerColumn() bool                 { return true }

func (r *UniqueColumn) Check(ds *dataset.Dataset, col string, ctx *config.RuleContext) ([]types.Issue, error) {
	if !ctx.Column.IsUnique() {
		return nil, nil
	}

	seen := make(map[string]struct{})
	var issues []types.Issue
	forEachCell(ds, col, func(row int, val string) {
		if isBlank(val) {
			return
		}
		if _, dup := seen[val]; dup {
			issues = append(issues, types.NewIssue(r.ID(), ctx.Severity, row, col, val,
				fmt.Sprintf("Duplicate value %q in unique column %q", val, col)))
			return
		}
		seen[val] = struct{}{}
	})
	return issues, nil
}

// DuplicateRows flags rows identical to an earlier row. It is a
// whole-table rule, so its findings carry the whole-row sentinel and
// it only runs on full validations.
type DuplicateRows struct{}

func (*DuplicateRows) ID() string                      { return "generic.duplicate_rows" }
func (*DuplicateRows) Name() string                    { return "Duplicate rows" }
func (*DuplicateRows) DefaultSeverity() types.Severity { return types.SeverityWarning }
func (*DuplicateRows) PerColumn() bool                 { return false }

func (r *DuplicateRows) Check(ds *dataset.Dataset, _ string, ctx *config.RuleContext) ([]types.Issue, error) {
	seen := make(map[string]int, ds.RowCount())
	var issues []types.Issue
	for row := 0; row < ds.RowCount(); row++ {
		cells, err := ds.Row(row)
		if err != nil {
			return nil, err
		}
		key := strings.Join(cells, "\x1f")
		if first, dup := seen[key]; dup {
			issues = append(issues, types.NewIssue(r.ID(), ctx.Severity, row, types.WholeRow, "",
				fmt.Sprintf("Row %d is a duplicate of row %d", row+1, first+1)))
			continue
		}
		seen[key] = row
	}
	return issues, nil
}
