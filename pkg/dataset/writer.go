package dataset

import (
	"encoding/csv"
	"os"

	"github.com/arthur-debert/tablecheck/pkg/errors"
	"github.com/arthur-debert/tablecheck/pkg/logging"
)

// SaveCSV writes the dataset back out as a delimited text file. The
// delimiter comes from the dataset's metadata, falling back to a comma
// when the dataset was built in memory. Rows preceding the original
// header row are not preserved.
func SaveCSV(ds *Dataset, path string) error {
	logger := logging.GetLogger("dataset.writer")

	delim := ds.Meta().Delimiter
	if delim == 0 {
		delim = ','
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrDatasetLoad, "cannot create %s", path)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Comma = delim

	if err := w.Write(ds.Columns()); err != nil {
		return errors.Wrapf(err, errors.ErrDatasetLoad, "cannot write header to %s", path)
	}
	for i := 0; i < ds.RowCount(); i++ {
		row, err := ds.Row(i)
		if err != nil {
			return err
		}
		if err := w.Write(row); err != nil {
			return errors.Wrapf(err, errors.ErrDatasetLoad, "cannot write row %d to %s", i, path)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return errors.Wrapf(err, errors.ErrDatasetLoad, "cannot flush %s", path)
	}

	logger.Info().
		Str("path", path).
		Int("rows", ds.RowCount()).
		Msg("dataset saved")
	return nil
}
