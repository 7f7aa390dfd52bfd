package dataset

import (
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/arthur-debert/tablecheck/pkg/errors"
	"github.com/arthur-debert/tablecheck/pkg/logging"
)

// fallbackDelimiters are tried in order when no delimiter hint is given.
var fallbackDelimiters = []rune{';', ',', '\t', '|'}

// LoadCSV reads a delimited text file into a Dataset.
//
// headerRow is the 0-based index of the row used as column headers;
// rows before it are skipped entirely. delimiterHint overrides
// detection when non-zero. Empty header cells get a positional label
// so column uniqueness holds.
func LoadCSV(path string, headerRow int, delimiterHint rune) (*Dataset, error) {
	logger := logging.GetLogger("dataset.loader")

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrDatasetLoad, "cannot read %s", path)
	}

	fingerprint := fingerprintBytes(raw)

	delim := delimiterHint
	if delim == 0 {
		delim = sniffDelimiter(raw)
	}
	logger.Debug().
		Str("path", path).
		Str("delimiter", string(delim)).
		Int("headerRow", headerRow).
		Msg("loading delimited file")

	reader := csv.NewReader(strings.NewReader(string(raw)))
	reader.Comma = delim
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrDatasetLoad, "cannot parse %s", path)
	}
	if headerRow >= len(records) {
		return nil, errors.Newf(errors.ErrDatasetLoad,
			"header row %d beyond end of file (%d rows)", headerRow, len(records))
	}

	header := records[headerRow]
	columns := make([]string, len(header))
	seen := make(map[string]int, len(header))
	for i, label := range header {
		label = strings.TrimSpace(label)
		if label == "" {
			label = fmt.Sprintf("column_%d", i+1)
		}
		if n, dup := seen[label]; dup {
			seen[label] = n + 1
			label = fmt.Sprintf("%s_%d", label, n+1)
		}
		seen[label] = 1
		columns[i] = label
	}

	var rows [][]string
	for i, rec := range records[headerRow+1:] {
		if len(rec) > len(columns) {
			logger.Warn().
				Str("path", path).
				Int("row", i).
				Int("fields", len(rec)).
				Int("columns", len(columns)).
				Msg("record longer than header, extra fields dropped")
		}
		row := make([]string, len(columns))
		copy(row, rec)
		rows = append(rows, row)
	}

	ds, err := New(columns, rows)
	if err != nil {
		return nil, err
	}
	ds.SetMeta(Meta{
		FilePath:    path,
		Encoding:    "utf-8",
		Delimiter:   delim,
		HeaderRow:   headerRow,
		Fingerprint: fingerprint,
	})

	logger.Info().
		Str("path", path).
		Int("rows", ds.RowCount()).
		Int("columns", ds.ColumnCount()).
		Msg("dataset loaded")
	return ds, nil
}

// sniffDelimiter picks the candidate delimiter that occurs most often
// in the first line of the file.
func sniffDelimiter(raw []byte) rune {
	firstLine := string(raw)
	if idx := strings.IndexByte(firstLine, '\n'); idx >= 0 {
		firstLine = firstLine[:idx]
	}
	best := fallbackDelimiters[0]
	bestCount := -1
	for _, cand := range fallbackDelimiters {
		if n := strings.Count(firstLine, string(cand)); n > bestCount {
			best = cand
			bestCount = n
		}
	}
	return best
}

// fingerprintBytes hashes the first 64 KiB of the raw file bytes.
func fingerprintBytes(raw []byte) string {
	if len(raw) > 65536 {
		raw = raw[:65536]
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}
