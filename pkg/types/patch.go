package types

// Patch records one applied cell fix. Patches are persisted by a
// patch.Writer and referenced by commands for undo.
type Patch struct {
	PatchID string `json:"patch_id"`
	// ActionID groups sibling patches belonging to one user action.
	ActionID string `json:"action_id"`
	Row      int    `json:"row"`
	Column   string `json:"column"`
	OldValue string `json:"old_value"`
	NewValue string `json:"new_value"`
	// IssueID is the issue resolved by this patch, if any.
	IssueID   string `json:"issue_id,omitempty"`
	Timestamp string `json:"timestamp"`
}

// ActionLogEntry is one line of a project's append-only action log.
type ActionLogEntry struct {
	ActionID   string         `json:"action_id"`
	Timestamp  string         `json:"timestamp"`
	ActionType string         `json:"action_type"` // "fix", "bulk_fix", "ignore", "except", "undo", "redo"
	Scope      string         `json:"scope"`       // "cell", "column", "global"
	Params     map[string]any `json:"params,omitempty"`
	Stats      map[string]any `json:"stats,omitempty"`
	PatchIDs   []string       `json:"patch_ids,omitempty"`
}
