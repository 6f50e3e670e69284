// Package ingestion decodes uploaded workbooks into the evaluation engine's
// input types. It understands three sheet layouts: vertically stacked
// per-model blocks, the horizontal multi-model layout (model row, field
// row, data rows) and the plain single-model layout with paired
// reference/prediction columns.
package ingestion

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"accuracy-eval-platform/backend/internal/coreengine/normalizer"
)

var (
	// ErrEmptyWorkbook is returned for a workbook with no sheets or no rows.
	ErrEmptyWorkbook = errors.New("workbook contains no data")
	// ErrTooFewRows is returned for a horizontal sheet without data rows.
	ErrTooFewRows = errors.New("horizontal sheet needs a model row, a field row and at least one data row")
	// ErrNoHeaderRow is returned when no header row is found in a
	// single-model sheet.
	ErrNoHeaderRow = errors.New("no header row found in the first rows of the sheet")
	// ErrNoFieldColumns is returned when no reference/prediction column
	// pairs can be mapped.
	ErrNoFieldColumns = errors.New("no reference/prediction column pairs found")
)

// Grid is an immutable view of one sheet. Rows are ragged the way excelize
// returns them: a row ends at its last non-empty cell, so a cell beyond the
// row's end is absent rather than empty.
type Grid struct {
	rows [][]string
}

// NewGrid wraps sheet rows. The slice is used as is, not copied.
func NewGrid(rows [][]string) Grid {
	return Grid{rows: rows}
}

// NumRows returns the number of rows in the sheet.
func (g Grid) NumRows() int {
	return len(g.rows)
}

// Row returns one row, or nil when out of range.
func (g Grid) Row(i int) []string {
	if i < 0 || i >= len(g.rows) {
		return nil
	}
	return g.rows[i]
}

// Cell returns the tri-state value of one cell. Cells beyond the end of a
// ragged row are the absent marker, never the empty string.
func (g Grid) Cell(row, col int) normalizer.FieldValue {
	r := g.Row(row)
	if col < 0 || col >= len(r) {
		return normalizer.Missing()
	}
	return normalizer.New(r[col])
}

// CellText returns the trimmed text of one cell, with the empty string for
// absent cells.
func (g Grid) CellText(row, col int) string {
	r := g.Row(row)
	if col < 0 || col >= len(r) {
		return ""
	}
	return strings.TrimSpace(r[col])
}

// DecodeWorkbook reads an xlsx stream and returns the first sheet as a Grid.
func DecodeWorkbook(r io.Reader) (Grid, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return Grid{}, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return Grid{}, ErrEmptyWorkbook
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return Grid{}, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return Grid{}, ErrEmptyWorkbook
	}
	return NewGrid(rows), nil
}
