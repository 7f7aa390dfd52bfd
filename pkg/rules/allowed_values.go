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
	engine.Register(&AllowedValues{})
}

const displayLimit = 10

// AllowedValues flags cells whose value is not in the column's
// declared allowed_values list. When the column is list-kinded, each
// separated item is checked individually. Dormant without a list.
type AllowedValues struct{}

func (*AllowedValues) ID() string                      { return "generic.allowed_values" }
func (*AllowedValues) Name() string                    { return "Value outside allowed list" }
func (*AllowedValues) DefaultSeverity() types.Severity { return types.SeverityError }
func (*AllowedValues) PerColumn() bool                 { return true }

func (r *AllowedValues) Check(ds *dataset.Dataset, col string, ctx *config.RuleContext) ([]types.Issue, error) {
	allowed := ctx.Column.AllowedValues
	if len(allowed) == 0 {
		return nil, nil
	}

	allowedSet := make(map[string]struct{}, len(allowed))
	for _, v := range allowed {
		allowedSet[v] = struct{}{}
	}
	display := displayList(allowed)

	sep := ""
	if ctx.Column.Kind == types.KindList {
		sep = ctx.Column.ListSeparator
	}

	var issues []types.Issue
	forEachCell(ds, col, func(row int, val string) {
		if isBlank(val) {
			return
		}

		if sep != "" {
			for _, item := range strings.Split(val, sep) {
				item = strings.TrimSpace(item)
				if item == "" {
					continue
				}
				if _, ok := allowedSet[item]; !ok {
					issues = append(issues, types.NewIssue(r.ID(), ctx.Severity, row, col, val,
						fmt.Sprintf("List item %q is not allowed. Accepted values: %s", item, display)))
				}
			}
			return
		}

		if _, ok := allowedSet[val]; !ok {
			issues = append(issues, types.NewIssue(r.ID(), ctx.Severity, row, col, val,
				fmt.Sprintf("Value %q is not allowed. Accepted values: %s", val, display)))
		}
	})
	return issues, nil
}

func displayList(values []string) string {
	if len(values) > displayLimit {
		return strings.Join(values[:displayLimit], ", ") + ", ..."
	}
	return strings.Join(values, ", ")
}
