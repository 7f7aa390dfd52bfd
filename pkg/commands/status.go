package commands

import (
	"fmt"

	"github.com/arthur-debert/tablecheck/pkg/issues"
	"github.com/arthur-debert/tablecheck/pkg/project"
	"github.com/arthur-debert/tablecheck/pkg/types"
)

// SetIssueStatus changes an issue's status (typically OPEN <-> IGNORED
// or EXCEPTED). It mutates only the issue store, never the dataset,
// but follows the same execute/undo contract as cell fixes.
type SetIssueStatus struct {
	issueID   string
	newStatus types.IssueStatus
	oldStatus types.IssueStatus
	store     *issues.Store
	log       *project.ActionLog
}

// NewSetIssueStatus builds the command; log may be nil.
func NewSetIssueStatus(
	issueID string,
	newStatus, oldStatus types.IssueStatus,
	store *issues.Store,
	log *project.ActionLog,
) *SetIssueStatus {
	return &SetIssueStatus{
		issueID:   issueID,
		newStatus: newStatus,
		oldStatus: oldStatus,
		store:     store,
		log:       log,
	}
}

// Execute implements Command.
func (c *SetIssueStatus) Execute() error {
	c.store.SetStatus(c.issueID, c.newStatus)
	c.log.Append(types.ActionLogEntry{
		ActionID:   newActionID(),
		Timestamp:  nowISO(),
		ActionType: actionTypeFor(c.newStatus),
		Scope:      "cell",
		Params:     map[string]any{"issue_id": c.issueID, "status": string(c.newStatus)},
	})
	return nil
}

// Undo implements Command.
func (c *SetIssueStatus) Undo() error {
	c.store.SetStatus(c.issueID, c.oldStatus)
	return nil
}

// Description implements Command.
func (c *SetIssueStatus) Description() string {
	return fmt.Sprintf("Set issue %s -> %s", c.issueID, c.newStatus)
}

func actionTypeFor(status types.IssueStatus) string {
	switch status {
	case types.StatusIgnored:
		return "ignore"
	case types.StatusExcepted:
		return "except"
	default:
		return "status"
	}
}
