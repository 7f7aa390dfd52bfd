// Package session wires the dataset, the issue store, the command
// history, and the validation engine into the owner-side facade that
// interactive surfaces drive.
//
// A Session serializes every mutation: command execution, issue-store
// updates, and the application of background validation results all
// funnel through its lock, so the dataset and the store are mutually
// consistent at every observable point.
package session

import (
	"fmt"
	"sync"

	"github.com/arthur-debert/tablecheck/pkg/commands"
	"github.com/arthur-debert/tablecheck/pkg/config"
	"github.com/arthur-debert/tablecheck/pkg/dataset"
	"github.com/arthur-debert/tablecheck/pkg/engine"
	"github.com/arthur-debert/tablecheck/pkg/errors"
	"github.com/arthur-debert/tablecheck/pkg/issues"
	"github.com/arthur-debert/tablecheck/pkg/logging"
	"github.com/arthur-debert/tablecheck/pkg/patch"
	"github.com/arthur-debert/tablecheck/pkg/project"
	"github.com/arthur-debert/tablecheck/pkg/registry"
	"github.com/arthur-debert/tablecheck/pkg/types"
)

// Options configure a Session. Zero values select the default rule
// registry, a no-op patch sink, no action log, and the default
// history depth.
type Options struct {
	Rules        registry.Registry[engine.Rule]
	Patches      patch.Writer
	ActionLog    *project.ActionLog
	HistoryDepth int
}

// Session owns the live dataset for its lifetime.
type Session struct {
	mu      sync.Mutex
	ds      *dataset.Dataset
	store   *issues.Store
	history *commands.History
	engine  *engine.Engine
	reval   *engine.Revalidator
	patches patch.Writer
	log     *project.ActionLog
	cfg     *config.Config
}

// New creates a Session over the given dataset and compiled config.
func New(ds *dataset.Dataset, cfg *config.Config, opts Options) *Session {
	if cfg == nil {
		cfg = config.Empty()
	}
	writer := opts.Patches
	if writer == nil {
		writer = patch.NewNullWriter()
	}

	s := &Session{
		ds:      ds,
		store:   issues.NewStore(),
		history: commands.NewHistory(opts.HistoryDepth),
		engine:  engine.NewEngine(opts.Rules),
		patches: writer,
		log:     opts.ActionLog,
		cfg:     cfg,
	}
	s.reval = engine.NewRevalidator(s.engine, func(cols []string, found []types.Issue) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.store.ReplaceForColumns(cols, found)
	})
	return s
}

// Validate runs a full validation synchronously and replaces the
// whole issue store.
func (s *Session) Validate() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := s.engine.Validate(s.ds, nil, s.cfg)
	s.store.ReplaceAll(found)
	// A synchronous result is newer than anything still in flight;
	// claim the full scope so a slow background run cannot land on
	// top of it.
	s.reval.Invalidate(append(s.ds.Columns(), types.WholeRow))
	return len(found)
}

// Revalidate dispatches a background validation for the given columns
// (nil for a full run). Results land in the issue store when the run
// completes, unless a newer run has claimed the columns since.
func (s *Session) Revalidate(columns []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reval.Request(s.ds, columns, s.cfg)
}

// WaitForValidation blocks until in-flight background runs are done.
func (s *Session) WaitForValidation() {
	s.reval.Wait()
}

// FixCell applies a reversible single-cell fix. issueID links the fix
// to a finding and may be empty.
func (s *Session) FixCell(row int, col, newValue, issueID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	oldValue, err := s.ds.Get(row, col)
	if err != nil {
		return err
	}
	cmd := commands.NewApplyCellFix(s.ds, row, col, oldValue, newValue, s.store, s.patches, s.log, issueID)
	return s.history.Push(cmd)
}

// FixIssue applies the suggestion attached to a finding.
func (s *Session) FixIssue(issueID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	issue, ok := s.store.Get(issueID)
	if !ok {
		return errors.Newf(errors.ErrNotFound, "issue %s not found", issueID)
	}
	if !issue.HasSuggestion {
		return errors.Newf(errors.ErrInvalidInput, "issue %s has no suggested fix", issueID)
	}
	oldValue, err := s.ds.Get(issue.Row, issue.Column)
	if err != nil {
		return err
	}
	cmd := commands.NewApplyCellFix(s.ds, issue.Row, issue.Column, oldValue, issue.Suggestion,
		s.store, s.patches, s.log, issueID)
	return s.history.Push(cmd)
}

// FixAll applies every open suggestion of one rule as a single
// composite command, so one undo reverts the whole sweep. It returns
// the number of cells fixed.
func (s *Session) FixAll(ruleID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var fixes []*commands.ApplyCellFix
	for _, issue := range s.store.Open() {
		if issue.RuleID != ruleID || !issue.HasSuggestion || issue.IsWholeRow() {
			continue
		}
		oldValue, err := s.ds.Get(issue.Row, issue.Column)
		if err != nil {
			continue
		}
		fixes = append(fixes, commands.NewApplyCellFix(s.ds, issue.Row, issue.Column,
			oldValue, issue.Suggestion, s.store, s.patches, s.log, issue.ID))
	}
	if len(fixes) == 0 {
		return 0, nil
	}

	bulk := commands.NewBulkCellFix(fixes, fmt.Sprintf("Fix all %s", ruleID))
	if err := s.history.Push(bulk); err != nil {
		return 0, err
	}
	logger := logging.GetLogger("session")
	logger.Info().
		Str("rule", ruleID).
		Int("cells", len(fixes)).
		Msg("bulk fix applied")
	return len(fixes), nil
}

// IgnoreIssue marks a finding IGNORED, reversibly.
func (s *Session) IgnoreIssue(issueID string) error {
	return s.setStatus(issueID, types.StatusIgnored)
}

// ExceptIssue marks a finding EXCEPTED, reversibly.
func (s *Session) ExceptIssue(issueID string) error {
	return s.setStatus(issueID, types.StatusExcepted)
}

// ReopenIssue resets a finding to OPEN, reversibly.
func (s *Session) ReopenIssue(issueID string) error {
	return s.setStatus(issueID, types.StatusOpen)
}

func (s *Session) setStatus(issueID string, status types.IssueStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	issue, ok := s.store.Get(issueID)
	if !ok {
		// A benign race with an in-flight revalidation, not an error.
		return nil
	}
	cmd := commands.NewSetIssueStatus(issueID, status, issue.Status, s.store, s.log)
	return s.history.Push(cmd)
}

// Undo reverts the most recent command. It reports the description of
// what was undone; ok is false when the history was empty.
func (s *Session) Undo() (description string, ok bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cmd, err := s.history.Undo()
	if cmd == nil {
		return "", false, err
	}
	return cmd.Description(), true, err
}

// Redo re-applies the most recently undone command.
func (s *Session) Redo() (description string, ok bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cmd, err := s.history.Redo()
	if cmd == nil {
		return "", false, err
	}
	return cmd.Description(), true, err
}

// Dataset returns the live dataset. Callers must not mutate it
// directly; all writes go through commands.
func (s *Session) Dataset() *dataset.Dataset { return s.ds }

// Issues returns the issue store.
func (s *Session) Issues() *issues.Store { return s.store }

// History returns the command history.
func (s *Session) History() *commands.History { return s.history }

// Config returns the active configuration.
func (s *Session) Config() *config.Config { return s.cfg }

// SetConfig swaps the active configuration; the next validation run
// picks it up.
func (s *Session) SetConfig(cfg *config.Config) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cfg == nil {
		cfg = config.Empty()
	}
	s.cfg = cfg
}
