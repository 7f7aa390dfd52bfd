package rules

import (
	"strings"

	"github.com/arthur-debert/tablecheck/pkg/dataset"
)

// forEachCell walks one column, calling fn for every cell. Missing
// columns walk zero cells.
func forEachCell(ds *dataset.Dataset, col string, fn func(row int, val string)) {
	if !ds.HasColumn(col) {
		return
	}
	for row := 0; row < ds.RowCount(); row++ {
		val, err := ds.Get(row, col)
		if err != nil {
			return
		}
		fn(row, val)
	}
}

// isBlank reports whether a cell holds no meaningful value at all.
func isBlank(val string) bool {
	return strings.TrimSpace(val) == ""
}
