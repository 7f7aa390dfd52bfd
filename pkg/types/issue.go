package types

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// WholeRow is the reserved column marker used by whole-table rules that
// flag an entire row rather than one cell.
const WholeRow = "__row__"

// Issue is one validation finding at a specific cell (or whole row when
// Column is WholeRow), with a severity and a mutable status.
type Issue struct {
	// ID is the deterministic identity of the finding: a function of
	// rule id, column, row, and the original value only. Severity,
	// message, and status never contribute, so re-validations can be
	// diffed against the stored set.
	ID       string      `json:"id"`
	RuleID   string      `json:"rule_id"`
	Severity Severity    `json:"severity"`
	Status   IssueStatus `json:"status"`
	Row      int         `json:"row"`
	Column   string      `json:"column"`
	// Original is the cell value at discovery time.
	Original string `json:"original"`
	Message  string `json:"message"`
	// Suggestion is a proposed fix value; empty when there is no
	// automatic fix. HasSuggestion disambiguates a suggested empty
	// string from no suggestion at all.
	Suggestion    string         `json:"suggestion,omitempty"`
	HasSuggestion bool           `json:"has_suggestion,omitempty"`
	Extra         map[string]any `json:"extra,omitempty"`
}

// MakeIssueID computes the deterministic issue id from the identity
// fields. Identical inputs always produce identical ids.
func MakeIssueID(ruleID, column string, row int, original string) string {
	payload, _ := json.Marshal([]any{ruleID, column, row, original})
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])[:12]
}

// NewIssue builds an OPEN issue with its id derived from the identity
// fields.
func NewIssue(ruleID string, severity Severity, row int, column, original, message string) Issue {
	return Issue{
		ID:       MakeIssueID(ruleID, column, row, original),
		RuleID:   ruleID,
		Severity: severity,
		Status:   StatusOpen,
		Row:      row,
		Column:   column,
		Original: original,
		Message:  message,
	}
}

// WithSuggestion returns a copy of the issue carrying a proposed fix value.
func (i Issue) WithSuggestion(value string) Issue {
	i.Suggestion = value
	i.HasSuggestion = true
	return i
}

// IsWholeRow reports whether the issue flags an entire row.
func (i Issue) IsWholeRow() bool {
	return i.Column == WholeRow
}
