package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/tablecheck/pkg/errors"
)

func writeTempCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCSV(t *testing.T) {
	path := writeTempCSV(t, "data.csv", "Title,Code\nFirst,a1\nSecond,b2\n")

	ds, err := LoadCSV(path, 0, 0)
	require.NoError(t, err)

	assert.Equal(t, []string{"Title", "Code"}, ds.Columns())
	assert.Equal(t, 2, ds.RowCount())

	v, err := ds.Get(1, "Code")
	require.NoError(t, err)
	assert.Equal(t, "b2", v)

	meta := ds.Meta()
	assert.Equal(t, path, meta.FilePath)
	assert.Equal(t, ',', meta.Delimiter)
	assert.NotEmpty(t, meta.Fingerprint)
}

func TestLoadCSVSniffsSemicolon(t *testing.T) {
	path := writeTempCSV(t, "data.csv", "Title;Code\nFirst;a1\n")

	ds, err := LoadCSV(path, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"Title", "Code"}, ds.Columns())
}

func TestLoadCSVDelimiterHintWins(t *testing.T) {
	// The hint overrides detection even when the data looks semicolon-ish.
	path := writeTempCSV(t, "data.csv", "a;b|c\nx;y|z\n")

	ds, err := LoadCSV(path, 0, '|')
	require.NoError(t, err)
	assert.Equal(t, []string{"a;b", "c"}, ds.Columns())
}

func TestLoadCSVHeaderRow(t *testing.T) {
	path := writeTempCSV(t, "data.csv", "junk line,ignored\nTitle,Code\nFirst,a1\n")

	ds, err := LoadCSV(path, 1, ',')
	require.NoError(t, err)
	assert.Equal(t, []string{"Title", "Code"}, ds.Columns())
	assert.Equal(t, 1, ds.RowCount())
}

func TestLoadCSVHeaderLabels(t *testing.T) {
	path := writeTempCSV(t, "data.csv", "Title,,Title\na,b,c\n")

	ds, err := LoadCSV(path, 0, ',')
	require.NoError(t, err)
	assert.Equal(t, []string{"Title", "column_2", "Title_2"}, ds.Columns(),
		"empty and duplicate labels get positional suffixes")
}

func TestLoadCSVLongRecordDropsExtraFields(t *testing.T) {
	path := writeTempCSV(t, "data.csv", "Title,Code\nFirst,a1,stray\nSecond,b2\n")

	ds, err := LoadCSV(path, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, ds.ColumnCount())

	v, err := ds.Get(0, "Code")
	require.NoError(t, err)
	assert.Equal(t, "a1", v, "fields within the header width survive")
}

func TestLoadCSVErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadCSV(filepath.Join(t.TempDir(), "no-such.csv"), 0, 0)
		assert.True(t, errors.IsErrorCode(err, errors.ErrDatasetLoad))
	})

	t.Run("header row beyond end", func(t *testing.T) {
		path := writeTempCSV(t, "data.csv", "a,b\n")
		_, err := LoadCSV(path, 5, ',')
		assert.True(t, errors.IsErrorCode(err, errors.ErrDatasetLoad))
	})
}

func TestSaveCSVRoundTrip(t *testing.T) {
	src := writeTempCSV(t, "in.csv", "Title;Code\nFirst;a1\nSecond;b2\n")

	ds, err := LoadCSV(src, 0, 0)
	require.NoError(t, err)
	require.NoError(t, ds.Set(0, "Title", "Changed"))

	out := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, SaveCSV(ds, out))

	reloaded, err := LoadCSV(out, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, ds.Columns(), reloaded.Columns())
	assert.Equal(t, ';', reloaded.Meta().Delimiter, "original delimiter is kept on save")

	v, err := reloaded.Get(0, "Title")
	require.NoError(t, err)
	assert.Equal(t, "Changed", v)
}
