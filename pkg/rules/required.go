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
	engine.Register(&Required{})
	engine.Register(&PseudoMissing{})
}

// defaultEmptyTokens are values treated as "empty" beyond true blanks.
var defaultEmptyTokens = []string{
	"", "NA", "N/A", "n/a", "na", "null", "NULL", "None", "none",
	"-", ".", "?", "#N/A", "#REF!",
}

func emptyTokenSet(configured []string) map[string]struct{} {
	tokens := configured
	if tokens == nil {
		tokens = defaultEmptyTokens
	}
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

// Required flags missing values in columns declared as required.
// Dormant unless the column setting is set.
type Required struct{}

func (*Required) ID() string                      { return "generic.required" }
func (*Required) Name() string                    { return "Required value" }
func (*Required) DefaultSeverity() types.Severity { return types.SeverityError }
func (*Required) PerColumn() bool                 { return true }

func (r *Required) Check(ds *dataset.Dataset, col string, ctx *config.RuleContext) ([]types.Issue, error) {
	if !ctx.Column.IsRequired() {
		return nil, nil
	}

	tokens := emptyTokenSet(ctx.Column.EmptyTokens)
	var issues []types.Issue
	forEachCell(ds, col, func(row int, val string) {
		_, pseudo := tokens[val]
		if !isBlank(val) && !pseudo {
			return
		}
		message := "Required value is missing"
		if !isBlank(val) {
			message = fmt.Sprintf("Required value is missing (%q counts as empty)", val)
		}
		issues = append(issues, types.NewIssue(r.ID(), ctx.Severity, row, col, val, message))
	})
	return issues, nil
}

// PseudoMissing flags tokens that stand in for "no value" without the
// cell being empty.
type PseudoMissing struct{}

func (*PseudoMissing) ID() string                      { return "generic.pseudo_missing" }
func (*PseudoMissing) Name() string                    { return "Pseudo-missing value tokens" }
func (*PseudoMissing) DefaultSeverity() types.Severity { return types.SeverityWarning }
func (*PseudoMissing) PerColumn() bool                 { return true }

func (r *PseudoMissing) Check(ds *dataset.Dataset, col string, ctx *config.RuleContext) ([]types.Issue, error) {
	tokens := emptyTokenSet(ctx.Column.EmptyTokens)
	delete(tokens, "")

	var issues []types.Issue
	forEachCell(ds, col, func(row int, val string) {
		stripped := strings.TrimSpace(val)
		if _, ok := tokens[stripped]; !ok || stripped == "" {
			return
		}
		// No suggestion: replacing with a real blank is ambiguous.
		issues = append(issues, types.NewIssue(r.ID(), ctx.Severity, row, col, val,
			fmt.Sprintf("Pseudo-missing value %q in %q, consider an empty cell instead", stripped, col)))
	})
	return issues, nil
}
