package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/tablecheck/pkg/dataset"
	"github.com/arthur-debert/tablecheck/pkg/errors"
	"github.com/arthur-debert/tablecheck/pkg/issues"
	"github.com/arthur-debert/tablecheck/pkg/patch"
	"github.com/arthur-debert/tablecheck/pkg/types"
)

func fixtureDataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.New(
		[]string{"Title", "Code"},
		[][]string{
			{" Intro ", "a1"},
			{"Body", "b2"},
		},
	)
	require.NoError(t, err)
	return ds
}

// failingWriter rejects every patch write.
type failingWriter struct{ *patch.NullWriter }

func (failingWriter) Write(*types.Patch) error {
	return errors.New(errors.ErrPatchWrite, "disk full")
}

func TestApplyCellFix(t *testing.T) {
	ds := fixtureDataset(t)
	store := issues.NewStore()
	issue := types.NewIssue("generic.hygiene.leading_trailing_space",
		types.SeverityWarning, 0, "Title", " Intro ", "leading/trailing whitespace")
	store.ReplaceAll([]types.Issue{issue})

	cmd := NewApplyCellFix(ds, 0, "Title", " Intro ", "Intro",
		store, patch.NewNullWriter(), nil, issue.ID)

	require.NoError(t, cmd.Execute())

	v, err := ds.Get(0, "Title")
	require.NoError(t, err)
	assert.Equal(t, "Intro", v)

	got, ok := store.Get(issue.ID)
	require.True(t, ok)
	assert.Equal(t, types.StatusFixed, got.Status)

	p := cmd.Patch()
	require.NotNil(t, p)
	assert.Equal(t, " Intro ", p.OldValue)
	assert.Equal(t, "Intro", p.NewValue)
	assert.Equal(t, issue.ID, p.IssueID)

	t.Run("undo restores everything", func(t *testing.T) {
		require.NoError(t, cmd.Undo())

		v, err := ds.Get(0, "Title")
		require.NoError(t, err)
		assert.Equal(t, " Intro ", v)

		got, ok := store.Get(issue.ID)
		require.True(t, ok)
		assert.Equal(t, types.StatusOpen, got.Status)
	})
}

func TestApplyCellFixPatchWriteFailureRevertsCell(t *testing.T) {
	ds := fixtureDataset(t)
	store := issues.NewStore()
	issue := types.NewIssue("rule.a", types.SeverityError, 1, "Code", "b2", "bad")
	store.ReplaceAll([]types.Issue{issue})

	cmd := NewApplyCellFix(ds, 1, "Code", "b2", "B2", store, failingWriter{patch.NewNullWriter()}, nil, issue.ID)

	err := cmd.Execute()
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCommandExecute))

	v, getErr := ds.Get(1, "Code")
	require.NoError(t, getErr)
	assert.Equal(t, "b2", v, "cell reverts when the patch cannot be persisted")

	got, ok := store.Get(issue.ID)
	require.True(t, ok)
	assert.Equal(t, types.StatusOpen, got.Status)
}

func TestApplyCellFixBadCell(t *testing.T) {
	ds := fixtureDataset(t)
	cmd := NewApplyCellFix(ds, 99, "Title", "", "x",
		issues.NewStore(), patch.NewNullWriter(), nil, "")

	err := cmd.Execute()
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCommandExecute))
}

func TestBulkCellFix(t *testing.T) {
	ds := fixtureDataset(t)
	store := issues.NewStore()
	writer := patch.NewNullWriter()

	bulk := NewBulkCellFix([]*ApplyCellFix{
		NewApplyCellFix(ds, 0, "Title", " Intro ", "Intro", store, writer, nil, ""),
		NewApplyCellFix(ds, 1, "Title", "Body", "Body!", store, writer, nil, ""),
	}, "Trim whitespace")

	assert.Equal(t, 2, bulk.Size())
	assert.Equal(t, "Trim whitespace (2 cells)", bulk.Description())

	require.NoError(t, bulk.Execute())
	v0, _ := ds.Get(0, "Title")
	v1, _ := ds.Get(1, "Title")
	assert.Equal(t, "Intro", v0)
	assert.Equal(t, "Body!", v1)

	t.Run("single undo reverts the whole sweep", func(t *testing.T) {
		require.NoError(t, bulk.Undo())
		v0, _ := ds.Get(0, "Title")
		v1, _ := ds.Get(1, "Title")
		assert.Equal(t, " Intro ", v0)
		assert.Equal(t, "Body", v1)
	})
}

func TestBulkCellFixRollsBackOnFailure(t *testing.T) {
	ds := fixtureDataset(t)
	store := issues.NewStore()
	writer := patch.NewNullWriter()

	bulk := NewBulkCellFix([]*ApplyCellFix{
		NewApplyCellFix(ds, 0, "Code", "a1", "A1", store, writer, nil, ""),
		NewApplyCellFix(ds, 99, "Code", "", "x", store, writer, nil, ""),
	}, "")

	err := bulk.Execute()
	require.Error(t, err)

	v, getErr := ds.Get(0, "Code")
	require.NoError(t, getErr)
	assert.Equal(t, "a1", v, "applied fixes roll back when a later one fails")
}

func TestBulkCellFixOverlappingCells(t *testing.T) {
	ds := fixtureDataset(t)
	store := issues.NewStore()
	writer := patch.NewNullWriter()

	// Two fixes target the same cell; the second sees the first's output.
	first := NewApplyCellFix(ds, 0, "Title", " Intro ", "Intro", store, writer, nil, "")
	second := NewApplyCellFix(ds, 0, "Title", "Intro", "INTRO", store, writer, nil, "")
	bulk := NewBulkCellFix([]*ApplyCellFix{first, second}, "")

	require.NoError(t, bulk.Execute())
	v, _ := ds.Get(0, "Title")
	assert.Equal(t, "INTRO", v, "last applied wins")

	require.NoError(t, bulk.Undo())
	v, _ = ds.Get(0, "Title")
	assert.Equal(t, " Intro ", v, "reverse-order undo restores the original value")
}

func TestSetIssueStatusCommand(t *testing.T) {
	store := issues.NewStore()
	issue := types.NewIssue("rule.a", types.SeverityWarning, 0, "Title", "x", "bad")
	store.ReplaceAll([]types.Issue{issue})

	cmd := NewSetIssueStatus(issue.ID, types.StatusIgnored, types.StatusOpen, store, nil)

	require.NoError(t, cmd.Execute())
	got, _ := store.Get(issue.ID)
	assert.Equal(t, types.StatusIgnored, got.Status)

	require.NoError(t, cmd.Undo())
	got, _ = store.Get(issue.ID)
	assert.Equal(t, types.StatusOpen, got.Status)
}
