package rules

import (
	"fmt"

	"github.com/arthur-debert/tablecheck/pkg/config"
	"github.com/arthur-debert/tablecheck/pkg/dataset"
	"github.com/arthur-debert/tablecheck/pkg/engine"
	"github.com/arthur-debert/tablecheck/pkg/logging"
	"github.com/arthur-debert/tablecheck/pkg/types"
)

func init() {
	engine.Register(&VocabularyMembership{})
}

// VocabularyMembership checks values against an external controlled
// vocabulary. It fails open: without a provider, or when the named
// vocabulary is empty or unavailable, it reports nothing rather than
// erroring, so an offline session never blocks on a lookup service.
type VocabularyMembership struct{}

func (*VocabularyMembership) ID() string                      { return "vocab.membership" }
func (*VocabularyMembership) Name() string                    { return "Controlled vocabulary membership" }
func (*VocabularyMembership) DefaultSeverity() types.Severity { return types.SeverityError }
func (*VocabularyMembership) PerColumn() bool                 { return true }

func (r *VocabularyMembership) Check(ds *dataset.Dataset, col string, ctx *config.RuleContext) ([]types.Issue, error) {
	name := ctx.Column.Vocabulary
	if name == "" || ctx.Vocabulary == nil {
		return nil, nil
	}
	logger := logging.GetLogger("rules.vocabulary")

	var issues []types.Issue
	failedOpen := false
	forEachCell(ds, col, func(row int, val string) {
		if failedOpen || isBlank(val) {
			return
		}
		member, err := ctx.Vocabulary.Contains(name, val)
		if err != nil {
			logger.Warn().
				Err(err).
				Str("vocabulary", name).
				Str("column", col).
				Msg("vocabulary unavailable, failing open")
			failedOpen = true
			return
		}
		if !member {
			issues = append(issues, types.NewIssue(r.ID(), ctx.Severity, row, col, val,
				fmt.Sprintf("Value %q is not in vocabulary %q", val, name)))
		}
	})
	if failedOpen {
		return nil, nil
	}
	return issues, nil
}
