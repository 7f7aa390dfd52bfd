// Package engine runs registered validation rules over a dataset and
// turns their findings into issues. The engine is stateless: callers
// feed its results into an issue store themselves.
package engine

import (
	"github.com/arthur-debert/tablecheck/pkg/config"
	"github.com/arthur-debert/tablecheck/pkg/dataset"
	"github.com/arthur-debert/tablecheck/pkg/registry"
	"github.com/arthur-debert/tablecheck/pkg/types"
)

// Rule is the plug-in contract for one validation predicate.
//
// Check must never mutate the dataset, and ordinary invalid data must
// not produce an error: findings are issues, errors are reserved for
// truly exceptional failure. For per-column rules col names the column
// under scrutiny; whole-table rules receive an empty col and may flag
// entire rows via the types.WholeRow sentinel.
type Rule interface {
	// ID is the stable "namespace.name" identifier.
	ID() string

	// Name is the human-readable rule name.
	Name() string

	// DefaultSeverity applies when no template layer overrides it.
	DefaultSeverity() types.Severity

	// PerColumn reports whether the rule scans one column at a time
	// (true) or needs the whole table (false).
	PerColumn() bool

	// Check runs the rule under the merged per-(rule, column) config.
	Check(ds *dataset.Dataset, col string, ctx *config.RuleContext) ([]types.Issue, error)
}

// defaultRules is the registry populated by rule packages at init
// time. NewEngine uses it unless given an explicit registry.
var defaultRules = registry.New[Rule]()

// Register adds a rule to the default registry. It panics on a
// duplicate id, which is a wiring error.
func Register(r Rule) {
	registry.MustRegister(defaultRules, r.ID(), r)
}

// DefaultRules returns the registry that rule packages self-register
// into.
func DefaultRules() registry.Registry[Rule] {
	return defaultRules
}
