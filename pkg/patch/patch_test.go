package patch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/tablecheck/pkg/errors"
	"github.com/arthur-debert/tablecheck/pkg/types"
)

func samplePatch(id string) *types.Patch {
	return &types.Patch{
		PatchID:   id,
		ActionID:  "act1",
		Row:       2,
		Column:    "Title",
		OldValue:  " Intro ",
		NewValue:  "Intro",
		IssueID:   "abc123def456",
		Timestamp: "2026-08-30T10:00:00Z",
	}
}

func TestDirWriterWriteRead(t *testing.T) {
	w, err := NewDirWriter(filepath.Join(t.TempDir(), "patches"))
	require.NoError(t, err)

	p := samplePatch("act1_p0")
	require.NoError(t, w.Write(p))

	got, err := w.Read("act1_p0")
	require.NoError(t, err)
	assert.Equal(t, p, got)

	_, err = w.Read("missing")
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}

func TestDirWriterArchive(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "patches")
	w, err := NewDirWriter(dir)
	require.NoError(t, err)

	require.NoError(t, w.Write(samplePatch("act1_p0")))
	require.NoError(t, w.Archive("act1_p0"))

	t.Run("moved not destroyed", func(t *testing.T) {
		_, err := os.Stat(filepath.Join(dir, "undone", "act1_p0.json"))
		assert.NoError(t, err)
		_, err = os.Stat(filepath.Join(dir, "act1_p0.json"))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("archived patch leaves the active set", func(t *testing.T) {
		patches, err := w.All()
		require.NoError(t, err)
		assert.Empty(t, patches)
	})

	t.Run("archiving twice is a no-op", func(t *testing.T) {
		assert.NoError(t, w.Archive("act1_p0"))
	})
}

func TestDirWriterAll(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "patches")
	w, err := NewDirWriter(dir)
	require.NoError(t, err)

	require.NoError(t, w.Write(samplePatch("b_p0")))
	require.NoError(t, w.Write(samplePatch("a_p0")))

	// A corrupt file is skipped, not fatal.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "junk.json"), []byte("{nope"), 0o644))

	patches, err := w.All()
	require.NoError(t, err)
	require.Len(t, patches, 2)
	assert.Equal(t, "a_p0", patches[0].PatchID, "sorted by patch id")
	assert.Equal(t, "b_p0", patches[1].PatchID)
}

func TestNullWriter(t *testing.T) {
	w := NewNullWriter()

	assert.NoError(t, w.Write(samplePatch("x")))
	assert.NoError(t, w.Archive("x"))

	p, err := w.Read("x")
	assert.NoError(t, err)
	assert.Nil(t, p)

	all, err := w.All()
	assert.NoError(t, err)
	assert.Empty(t, all)
}
