package engine

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/tablecheck/pkg/config"
	"github.com/arthur-debert/tablecheck/pkg/dataset"
	"github.com/arthur-debert/tablecheck/pkg/logging"
	"github.com/arthur-debert/tablecheck/pkg/types"
)

// ApplyFunc receives a completed validation result: the columns the
// result is authoritative for and the issues found there. Calls are
// serialized by the Revalidator, so the callback may touch the issue
// store without further locking.
type ApplyFunc func(columns []string, issues []types.Issue)

// Revalidator dispatches validation runs to background workers while
// guaranteeing that the most recent result for any given column wins.
//
// Each request snapshots the dataset at dispatch time, so the owner
// goroutine may keep mutating the live dataset while the worker runs.
// Requests carry a sequence number per covered column; when a worker
// completes, columns that a newer request has since claimed are
// dropped from the result, and a fully superseded result is discarded
// outright. There is no mid-flight cancellation: a stale run simply
// completes into the void.
type Revalidator struct {
	engine *Engine
	apply  ApplyFunc
	logger zerolog.Logger

	// mu guards the sequence bookkeeping only; applyMu serializes
	// result application. Keeping them separate lets callers invoke
	// Request from inside the same critical section their ApplyFunc
	// uses without deadlocking.
	mu      sync.Mutex
	nextSeq uint64
	colSeq  map[string]uint64

	applyMu sync.Mutex
	wg      sync.WaitGroup
}

// NewRevalidator wires a Revalidator to an engine and an apply
// callback.
func NewRevalidator(engine *Engine, apply ApplyFunc) *Revalidator {
	return &Revalidator{
		engine: engine,
		apply:  apply,
		logger: logging.GetLogger("engine.revalidator"),
		colSeq: make(map[string]uint64),
	}
}

// Request dispatches a validation run for the given column scope;
// columns == nil requests a full run. It returns immediately.
func (r *Revalidator) Request(ds *dataset.Dataset, columns []string, cfg *config.Config) {
	snapshot := ds.Snapshot()

	covered := columns
	full := columns == nil
	if full {
		covered = snapshot.Columns()
		// Whole-table findings are only produced by full runs; track
		// their freshness under the sentinel pseudo-column.
		covered = append(covered, types.WholeRow)
	}

	r.mu.Lock()
	r.nextSeq++
	seq := r.nextSeq
	for _, col := range covered {
		r.colSeq[col] = seq
	}
	r.mu.Unlock()

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		var scope []string
		if !full {
			scope = columns
		}
		issues := r.engine.Validate(snapshot, scope, cfg)

		r.applyMu.Lock()
		defer r.applyMu.Unlock()

		r.mu.Lock()
		var fresh []string
		for _, col := range covered {
			if r.colSeq[col] == seq {
				fresh = append(fresh, col)
			}
		}
		r.mu.Unlock()
		if len(fresh) == 0 {
			r.logger.Debug().Uint64("seq", seq).Msg("discarding fully superseded validation result")
			return
		}

		freshSet := make(map[string]struct{}, len(fresh))
		for _, col := range fresh {
			freshSet[col] = struct{}{}
		}
		kept := issues[:0]
		for _, issue := range issues {
			if _, ok := freshSet[issue.Column]; ok {
				kept = append(kept, issue)
			}
		}

		r.apply(fresh, kept)
	}()
}

// Invalidate marks the given columns as freshly resolved outside the
// revalidator, superseding any in-flight background run covering
// them. Callers that validate synchronously invalidate their scope so
// a slower background result cannot land on top of the newer one.
func (r *Revalidator) Invalidate(columns []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextSeq++
	for _, col := range columns {
		r.colSeq[col] = r.nextSeq
	}
}

// Wait blocks until all in-flight validation runs have completed and
// their results have been applied or discarded.
func (r *Revalidator) Wait() {
	r.wg.Wait()
}
