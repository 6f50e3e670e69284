package ingestion

import (
	"fmt"
	"log"
	"strings"

	"accuracy-eval-platform/backend/internal/coreengine/evaluationengine"
	"accuracy-eval-platform/backend/internal/coreengine/normalizer"
)

// How many leading rows are scanned for a header row, and how many
// meaningful cells a row needs to qualify.
const (
	headerScanRows      = 5
	headerMinMeaningful = 3
)

// ColumnPair maps one field to its reference and prediction columns.
type ColumnPair struct {
	Field  string
	RefCol int
	HypCol int
}

// refPrefix/hypPrefix mark reference and prediction columns in the prefixed
// header convention.
const (
	refPrefix = "正面_"
	hypPrefix = "反面_"
)

// hypSuffix marks the second of two same-named columns in exports that
// deduplicate headers with a numeric suffix.
const hypSuffix = ".1"

// DetectHeaderRow scans the first rows of the sheet and returns the index of
// the first row with enough meaningful header cells, or -1.
func DetectHeaderRow(g Grid) int {
	limit := headerScanRows
	if g.NumRows() < limit {
		limit = g.NumRows()
	}
	for row := 0; row < limit; row++ {
		meaningful := 0
		for col := range g.Row(row) {
			if isMeaningfulHeader(g.CellText(row, col)) {
				meaningful++
			}
		}
		if meaningful >= headerMinMeaningful {
			return row
		}
	}
	return -1
}

// isMeaningfulHeader rejects blanks and purely numeric cells, which appear
// in data rows but not in header rows.
func isMeaningfulHeader(s string) bool {
	if s == "" {
		return false
	}
	return !normalizer.LooksLikeAmount(s)
}

// MapColumns pairs reference and prediction columns from a header row, in
// precedence order: duplicate header names (first occurrence is the
// reference), 正面_/反面_ prefixed names, and X/X.1 suffixed names.
func MapColumns(header []string) []ColumnPair {
	names := make([]string, len(header))
	for i, h := range header {
		names[i] = strings.TrimSpace(h)
	}

	var pairs []ColumnPair
	used := make(map[int]bool)

	claim := func(field string, refCol, hypCol int) {
		if used[refCol] || used[hypCol] {
			return
		}
		used[refCol] = true
		used[hypCol] = true
		pairs = append(pairs, ColumnPair{Field: field, RefCol: refCol, HypCol: hypCol})
	}

	// Duplicate header names.
	firstSeen := make(map[string]int)
	for col, name := range names {
		if name == "" || isIdentifierHeader(name) {
			continue
		}
		if ref, ok := firstSeen[name]; ok {
			claim(name, ref, col)
			continue
		}
		firstSeen[name] = col
	}

	// 正面_X paired with 反面_X.
	for col, name := range names {
		field, ok := strings.CutPrefix(name, refPrefix)
		if !ok {
			continue
		}
		for hypCol, hypName := range names {
			if hypName == hypPrefix+field {
				claim(field, col, hypCol)
				break
			}
		}
	}

	// X paired with X.1.
	for col, name := range names {
		if name == "" || isIdentifierHeader(name) || strings.HasSuffix(name, hypSuffix) {
			continue
		}
		for hypCol, hypName := range names {
			if hypName == name+hypSuffix {
				claim(name, col, hypCol)
				break
			}
		}
	}

	return pairs
}

// isIdentifierHeader reports whether a header names an identifier column
// rather than a scored field.
func isIdentifierHeader(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(name, "編號") || strings.Contains(name, "受編") ||
		strings.Contains(name, "案件號") || lower == "id"
}

// identifierColumns locates the record ID and subject ID columns in a
// header row. Either may be -1.
func identifierColumns(header []string) (idCol, subjectCol int) {
	idCol, subjectCol = -1, -1
	for col, h := range header {
		name := strings.TrimSpace(h)
		lower := strings.ToLower(name)
		switch {
		case idCol < 0 && (strings.Contains(name, "編號") || strings.Contains(name, "案件號") || lower == "id"):
			idCol = col
		case subjectCol < 0 && strings.Contains(name, "受編"):
			subjectCol = col
		}
	}
	return idCol, subjectCol
}

// ParseSingleModel extracts the record set from a plain single-model sheet.
// A field is included in a record when its reference cell has content; rows
// with no scorable fields are dropped.
func ParseSingleModel(g Grid) ([]evaluationengine.RecordInput, error) {
	headerRow := DetectHeaderRow(g)
	if headerRow < 0 {
		return nil, ErrNoHeaderRow
	}
	header := g.Row(headerRow)

	pairs := MapColumns(header)
	if len(pairs) == 0 {
		return nil, ErrNoFieldColumns
	}
	idCol, subjectCol := identifierColumns(header)
	log.Printf("Single-model sheet: header row %d, %d field pairs, id column %d, subject column %d",
		headerRow, len(pairs), idCol, subjectCol)

	var records []evaluationengine.RecordInput
	for row := headerRow + 1; row < g.NumRows(); row++ {
		rec := evaluationengine.RecordInput{
			RecordID:  fmt.Sprintf("%d", row-headerRow),
			SubjectID: g.CellText(row, subjectCol),
		}
		if idCol >= 0 {
			if id := g.CellText(row, idCol); id != "" {
				rec.RecordID = id
			}
		}
		for _, p := range pairs {
			ref := g.Cell(row, p.RefCol)
			if normalizer.Normalize(ref).IsEmptyish() {
				continue
			}
			rec.Fields = append(rec.Fields, evaluationengine.FieldPairInput{
				Field:      p.Field,
				Reference:  ref,
				Hypothesis: g.Cell(row, p.HypCol),
			})
		}
		if len(rec.Fields) > 0 {
			records = append(records, rec)
		}
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no data rows after header row %d", ErrEmptyWorkbook, headerRow)
	}
	return records, nil
}
