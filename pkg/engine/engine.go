package engine

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/tablecheck/pkg/config"
	"github.com/arthur-debert/tablecheck/pkg/dataset"
	"github.com/arthur-debert/tablecheck/pkg/logging"
	"github.com/arthur-debert/tablecheck/pkg/registry"
	"github.com/arthur-debert/tablecheck/pkg/types"
)

// Engine executes registered rules against a dataset.
type Engine struct {
	rules  registry.Registry[Rule]
	logger zerolog.Logger
}

// NewEngine creates an Engine over the given rule registry; a nil
// registry selects the default one that rule packages register into.
func NewEngine(rules registry.Registry[Rule]) *Engine {
	if rules == nil {
		rules = defaultRules
	}
	return &Engine{
		rules:  rules,
		logger: logging.GetLogger("engine"),
	}
}

// RuleIDs returns the ids of all registered rules, sorted.
func (e *Engine) RuleIDs() []string {
	return e.rules.List()
}

// Validate runs the applicable rules and returns every finding.
//
// columns == nil is a full run: each per-column rule runs once per
// actual column and each whole-table rule runs once. A non-nil
// columns slice is a partial run: only per-column rules run, only for
// the listed columns; whole-table rules need full-dataset context and
// are skipped so they are never asserted authoritative for a subset.
//
// Rules run in sorted id order and columns in the given order, so
// identical inputs yield an identical set of issue ids.
func (e *Engine) Validate(ds *dataset.Dataset, columns []string, cfg *config.Config) []types.Issue {
	if cfg == nil {
		cfg = config.Empty()
	}

	targetCols := columns
	if targetCols == nil {
		targetCols = ds.Columns()
	}

	var all []types.Issue
	for _, id := range e.rules.List() {
		rule, err := e.rules.Get(id)
		if err != nil {
			continue
		}

		if rule.PerColumn() {
			for _, col := range targetCols {
				ctx, enabled := cfg.EffectiveFor(id, col, rule.DefaultSeverity())
				if !enabled {
					continue
				}
				all = append(all, e.runRule(rule, ds, col, &ctx)...)
			}
			continue
		}

		// Whole-table rule: full runs only.
		if columns != nil {
			continue
		}
		ctx, enabled := cfg.EffectiveFor(id, "", rule.DefaultSeverity())
		if !enabled {
			continue
		}
		all = append(all, e.runRule(rule, ds, "", &ctx)...)
	}

	e.logger.Debug().
		Int("issues", len(all)).
		Bool("partial", columns != nil).
		Msg("validation run complete")
	return all
}

// runRule invokes one rule for one scope, absorbing both returned
// errors and panics. One failing rule contributes zero issues and
// never aborts the rest of the run.
func (e *Engine) runRule(rule Rule, ds *dataset.Dataset, col string, ctx *config.RuleContext) (issues []types.Issue) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error().
				Str("rule", rule.ID()).
				Str("column", col).
				Str("panic", fmt.Sprint(r)).
				Msg("rule panicked, contributing zero issues")
			issues = nil
		}
	}()

	issues, err := rule.Check(ds, col, ctx)
	if err != nil {
		e.logger.Error().
			Err(err).
			Str("rule", rule.ID()).
			Str("column", col).
			Msg("rule failed, contributing zero issues")
		return nil
	}
	return issues
}
