package commands

import (
	"fmt"

	"github.com/arthur-debert/tablecheck/pkg/dataset"
	"github.com/arthur-debert/tablecheck/pkg/errors"
	"github.com/arthur-debert/tablecheck/pkg/issues"
	"github.com/arthur-debert/tablecheck/pkg/patch"
	"github.com/arthur-debert/tablecheck/pkg/project"
	"github.com/arthur-debert/tablecheck/pkg/types"
)

// ApplyCellFix applies a single-cell fix. Execute writes the new value
// into the dataset, persists exactly one patch, and marks the linked
// issue FIXED; Undo restores the exact prior value, archives the
// patch, and reopens the issue.
type ApplyCellFix struct {
	ds       *dataset.Dataset
	row      int
	col      string
	oldValue string
	newValue string
	store    *issues.Store
	writer   patch.Writer
	log      *project.ActionLog
	issueID  string

	actionID string
	patch    *types.Patch
}

// NewApplyCellFix builds the command. issueID may be empty for fixes
// not tied to a finding; log may be nil.
func NewApplyCellFix(
	ds *dataset.Dataset,
	row int,
	col string,
	oldValue, newValue string,
	store *issues.Store,
	writer patch.Writer,
	log *project.ActionLog,
	issueID string,
) *ApplyCellFix {
	return &ApplyCellFix{
		ds:       ds,
		row:      row,
		col:      col,
		oldValue: oldValue,
		newValue: newValue,
		store:    store,
		writer:   writer,
		log:      log,
		issueID:  issueID,
		actionID: newActionID(),
	}
}

// Execute implements Command.
func (c *ApplyCellFix) Execute() error {
	ts := nowISO()
	if err := c.ds.Set(c.row, c.col, c.newValue); err != nil {
		return errors.Wrapf(err, errors.ErrCommandExecute,
			"cannot fix cell (%d, %s)", c.row, c.col)
	}

	p := &types.Patch{
		PatchID:   c.actionID + "_p0",
		ActionID:  c.actionID,
		Row:       c.row,
		Column:    c.col,
		OldValue:  c.oldValue,
		NewValue:  c.newValue,
		IssueID:   c.issueID,
		Timestamp: ts,
	}
	if err := c.writer.Write(p); err != nil {
		// The fix is only committed once the patch is durable.
		_ = c.ds.Set(c.row, c.col, c.oldValue)
		return errors.Wrapf(err, errors.ErrCommandExecute,
			"cannot persist patch for cell (%d, %s)", c.row, c.col)
	}
	c.patch = p

	if c.issueID != "" {
		c.store.SetStatus(c.issueID, types.StatusFixed)
	}

	c.log.Append(types.ActionLogEntry{
		ActionID:   c.actionID,
		Timestamp:  ts,
		ActionType: "fix",
		Scope:      "cell",
		Params:     map[string]any{"row": c.row, "col": c.col, "new_value": c.newValue},
		Stats:      map[string]any{"cells_changed": 1},
		PatchIDs:   []string{p.PatchID},
	})
	return nil
}

// Undo implements Command.
func (c *ApplyCellFix) Undo() error {
	if err := c.ds.Set(c.row, c.col, c.oldValue); err != nil {
		return errors.Wrapf(err, errors.ErrCommandExecute,
			"cannot undo fix at cell (%d, %s)", c.row, c.col)
	}

	if c.patch != nil {
		if err := c.writer.Archive(c.patch.PatchID); err != nil {
			return err
		}
	}

	if c.issueID != "" {
		c.store.SetStatus(c.issueID, types.StatusOpen)
	}

	if c.patch != nil {
		c.log.Append(types.ActionLogEntry{
			ActionID:   newActionID(),
			Timestamp:  nowISO(),
			ActionType: "undo",
			Scope:      "cell",
			Params:     map[string]any{"original_action_id": c.actionID},
			PatchIDs:   []string{c.patch.PatchID},
		})
	}
	return nil
}

// Description implements Command.
func (c *ApplyCellFix) Description() string {
	return fmt.Sprintf("Fix %s[%d]: %q -> %q", c.col, c.row+1, c.oldValue, c.newValue)
}

// Patch returns the persisted patch after Execute, or nil.
func (c *ApplyCellFix) Patch() *types.Patch {
	return c.patch
}

// BulkCellFix is a composite command wrapping multiple single-cell
// fixes. Execute applies them in list order; Undo applies the
// underlying undos in reverse order, so overlapping targets resolve
// last-applied-wins on the way in and restore cleanly on the way out.
type BulkCellFix struct {
	commands []*ApplyCellFix
	label    string
}

// NewBulkCellFix wraps the given fixes under one label.
func NewBulkCellFix(cmds []*ApplyCellFix, label string) *BulkCellFix {
	if label == "" {
		label = "Bulk fix"
	}
	return &BulkCellFix{commands: cmds, label: label}
}

// Execute implements Command. A failing sub-command rolls back the
// already-applied ones so the composite is all-or-nothing.
func (c *BulkCellFix) Execute() error {
	for i, cmd := range c.commands {
		if err := cmd.Execute(); err != nil {
			for j := i - 1; j >= 0; j-- {
				_ = c.commands[j].Undo()
			}
			return err
		}
	}
	return nil
}

// Undo implements Command, undoing in strict reverse order.
func (c *BulkCellFix) Undo() error {
	var firstErr error
	for i := len(c.commands) - 1; i >= 0; i-- {
		if err := c.commands[i].Undo(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Description implements Command.
func (c *BulkCellFix) Description() string {
	return fmt.Sprintf("%s (%d cells)", c.label, len(c.commands))
}

// Size returns the number of wrapped fixes.
func (c *BulkCellFix) Size() int {
	return len(c.commands)
}
