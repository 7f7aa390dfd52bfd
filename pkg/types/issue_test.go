package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMakeIssueID(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		a := MakeIssueID("hygiene.leading_trailing_space", "Title", 3, " Intro ")
		b := MakeIssueID("hygiene.leading_trailing_space", "Title", 3, " Intro ")
		assert.Equal(t, a, b, "same inputs must yield the same id")
		assert.Len(t, a, 12)
	})

	t.Run("sensitive to every field", func(t *testing.T) {
		base := MakeIssueID("rule.a", "col", 1, "v")
		assert.NotEqual(t, base, MakeIssueID("rule.b", "col", 1, "v"))
		assert.NotEqual(t, base, MakeIssueID("rule.a", "other", 1, "v"))
		assert.NotEqual(t, base, MakeIssueID("rule.a", "col", 2, "v"))
		assert.NotEqual(t, base, MakeIssueID("rule.a", "col", 1, "w"))
	})

	t.Run("independent of status and message", func(t *testing.T) {
		a := NewIssue("rule.a", SeverityError, 1, "col", "v", "bad value")
		b := NewIssue("rule.a", SeverityWarning, 1, "col", "v", "another message")
		b.Status = StatusFixed
		assert.Equal(t, a.ID, b.ID, "id must depend only on rule, cell, and original value")
	})
}

func TestNewIssue(t *testing.T) {
	issue := NewIssue("format.regex", SeverityError, 5, "Code", "x!", "does not match pattern")

	assert.Equal(t, StatusOpen, issue.Status)
	assert.False(t, issue.HasSuggestion)
	assert.Empty(t, issue.Suggestion)

	fixed := issue.WithSuggestion("x")
	assert.True(t, fixed.HasSuggestion)
	assert.Equal(t, "x", fixed.Suggestion)
	assert.Equal(t, issue.ID, fixed.ID, "suggestion must not change identity")
}

func TestWithSuggestionEmptyString(t *testing.T) {
	// Replacing a pseudo-missing token with "" is a real suggestion.
	issue := NewIssue("required.pseudo_missing", SeverityWarning, 0, "Notes", "N/A", "placeholder value")
	fixed := issue.WithSuggestion("")
	assert.True(t, fixed.HasSuggestion)
	assert.Empty(t, fixed.Suggestion)
}

func TestIsWholeRow(t *testing.T) {
	row := NewIssue("duplicates.rows", SeverityWarning, 4, WholeRow, "a\x1fb", "duplicate row")
	cell := NewIssue("rule.a", SeverityError, 4, "Title", "a", "bad")

	assert.True(t, row.IsWholeRow())
	assert.False(t, cell.IsWholeRow())
}

func TestSeverityOrdering(t *testing.T) {
	tests := []struct {
		name  string
		a, b  Severity
		worse bool
	}{
		{"error beats warning", SeverityError, SeverityWarning, true},
		{"warning beats suspicion", SeverityWarning, SeveritySuspicion, true},
		{"error beats suspicion", SeverityError, SeveritySuspicion, true},
		{"suspicion does not beat error", SeveritySuspicion, SeverityError, false},
		{"equal is not worse", SeverityWarning, SeverityWarning, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.worse, tt.a.Worse(tt.b))
		})
	}
}

func TestSeverityIsValid(t *testing.T) {
	assert.True(t, SeverityError.IsValid())
	assert.True(t, SeverityWarning.IsValid())
	assert.True(t, SeveritySuspicion.IsValid())
	assert.False(t, Severity("FATAL").IsValid())
	assert.False(t, Severity("").IsValid())
}
