package issues

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/tablecheck/pkg/types"
)

func issueAt(rule string, sev types.Severity, row int, col, original string) types.Issue {
	return types.NewIssue(rule, sev, row, col, original, "finding for "+col)
}

func TestReplaceAll(t *testing.T) {
	s := NewStore()
	s.ReplaceAll([]types.Issue{
		issueAt("rule.a", types.SeverityError, 0, "Title", "x"),
		issueAt("rule.b", types.SeverityWarning, 0, "Title", "x"),
		issueAt("rule.a", types.SeverityError, 1, "Code", "y"),
	})

	assert.Equal(t, 3, s.Len())
	assert.Len(t, s.ByColumn("Title"), 2)
	assert.Len(t, s.ByCell(0, "Title"), 2)
	assert.Len(t, s.ByCell(1, "Code"), 1)

	s.ReplaceAll(nil)
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.ByColumn("Title"))
}

func TestReplaceForColumns(t *testing.T) {
	s := NewStore()
	keepTitle := issueAt("rule.a", types.SeverityError, 0, "Title", "x")
	oldCode := issueAt("rule.a", types.SeverityError, 1, "Code", "y")
	s.ReplaceAll([]types.Issue{keepTitle, oldCode})

	newCode := issueAt("rule.b", types.SeverityWarning, 2, "Code", "z")
	s.ReplaceForColumns([]string{"Code"}, []types.Issue{
		newCode,
		// Issues for unlisted columns are filtered out, not inserted.
		issueAt("rule.a", types.SeverityError, 5, "Notes", "w"),
	})

	t.Run("listed column replaced", func(t *testing.T) {
		assert.Empty(t, s.ByCell(1, "Code"))
		require.Len(t, s.ByColumn("Code"), 1)
		assert.Equal(t, newCode.ID, s.ByColumn("Code")[0].ID)
	})

	t.Run("other columns untouched", func(t *testing.T) {
		got, ok := s.Get(keepTitle.ID)
		require.True(t, ok)
		assert.Equal(t, keepTitle.ID, got.ID)
		assert.Empty(t, s.ByColumn("Notes"))
	})

	t.Run("indices stay consistent", func(t *testing.T) {
		assert.Equal(t, 2, s.Len())
		assert.False(t, s.HasIssuesForCell(1, "Code"))
		assert.True(t, s.HasIssuesForCell(2, "Code"))
	})
}

func TestReplaceForColumnsWholeRow(t *testing.T) {
	s := NewStore()
	rowIssue := issueAt("generic.duplicate_rows", types.SeverityWarning, 3, types.WholeRow, "a\x1fb")

	s.ReplaceForColumns([]string{types.WholeRow, "Title"}, []types.Issue{rowIssue})
	require.Equal(t, 1, s.Len())
	assert.Len(t, s.ByColumn(types.WholeRow), 1)

	// A later partial run for other columns must not disturb row issues.
	s.ReplaceForColumns([]string{"Code"}, nil)
	assert.Len(t, s.ByColumn(types.WholeRow), 1)
}

func TestSetStatus(t *testing.T) {
	s := NewStore()
	issue := issueAt("rule.a", types.SeverityError, 0, "Title", "x")
	s.ReplaceAll([]types.Issue{issue})

	s.SetStatus(issue.ID, types.StatusFixed)

	got, ok := s.Get(issue.ID)
	require.True(t, ok)
	assert.Equal(t, types.StatusFixed, got.Status)
	assert.Len(t, s.ByCell(0, "Title"), 1, "status change never moves the issue")

	t.Run("unknown id is a no-op", func(t *testing.T) {
		s.SetStatus("doesnotexist", types.StatusIgnored)
		assert.Equal(t, 1, s.Len())
	})
}

func TestOpenAndCounts(t *testing.T) {
	s := NewStore()
	a := issueAt("rule.a", types.SeverityError, 0, "Title", "x")
	b := issueAt("rule.b", types.SeverityWarning, 1, "Title", "y")
	c := issueAt("rule.c", types.SeverityWarning, 2, "Title", "z")
	s.ReplaceAll([]types.Issue{a, b, c})
	s.SetStatus(b.ID, types.StatusIgnored)

	open := s.Open()
	assert.Len(t, open, 2)

	counts := s.CountBySeverity()
	assert.Equal(t, 1, counts[types.SeverityError])
	assert.Equal(t, 1, counts[types.SeverityWarning], "non-open issues are not counted")
	assert.Equal(t, 0, counts[types.SeveritySuspicion])
}

func TestWorstSeverityForCell(t *testing.T) {
	s := NewStore()
	warn := issueAt("rule.a", types.SeverityWarning, 0, "Title", "x")
	errIssue := issueAt("rule.b", types.SeverityError, 0, "Title", "x")
	s.ReplaceAll([]types.Issue{warn, errIssue})

	worst, ok := s.WorstSeverityForCell(0, "Title")
	require.True(t, ok)
	assert.Equal(t, types.SeverityError, worst)

	t.Run("only open issues count", func(t *testing.T) {
		s.SetStatus(errIssue.ID, types.StatusFixed)
		worst, ok := s.WorstSeverityForCell(0, "Title")
		require.True(t, ok)
		assert.Equal(t, types.SeverityWarning, worst)
	})

	t.Run("no open issues", func(t *testing.T) {
		s.SetStatus(warn.ID, types.StatusExcepted)
		_, ok := s.WorstSeverityForCell(0, "Title")
		assert.False(t, ok)
	})

	t.Run("empty cell", func(t *testing.T) {
		_, ok := s.WorstSeverityForCell(9, "Nope")
		assert.False(t, ok)
	})
}
