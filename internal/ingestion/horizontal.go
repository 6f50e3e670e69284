package ingestion

import (
	"fmt"
	"log"
	"strings"

	"accuracy-eval-platform/backend/internal/coreengine/evaluationengine"
	"accuracy-eval-platform/backend/internal/coreengine/normalizer"
)

// Horizontal multi-model layout:
//
//	row 0: model names; a name marks the first column of that model's block
//	row 1: field names; each AI column is followed by its human reference
//	       column, marked 人工/human/manual
//	row 2+: data, case identifier in column 0
const (
	modelRowIdx = 0
	fieldRowIdx = 1
	dataRowIdx  = 2
)

// Column 0 identifiers and the literal MODEL label are structural, not
// fields to score.
var structuralFieldNames = map[string]bool{
	"案件號":   true,
	"債務人ID": true,
	"MODEL": true,
}

func isHumanMarker(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "人工", "human", "manual":
		return true
	}
	return false
}

func isStructuralField(s string) bool {
	return structuralFieldNames[s] || strings.HasPrefix(s, "99099")
}

// modelColumn is one scored field of one model: the AI column and its human
// reference column.
type modelColumn struct {
	field           string
	aiCol, humanCol int
}

// DetectHorizontal reports whether the sheet uses the horizontal multi-model
// layout: a model name row above a field row that carries human column
// markers.
func DetectHorizontal(g Grid) bool {
	if g.NumRows() < dataRowIdx+1 {
		return false
	}
	hasModel := false
	for col := 1; col < len(g.Row(modelRowIdx)); col++ {
		name := g.CellText(modelRowIdx, col)
		if name != "" && name != "MODEL" {
			hasModel = true
			break
		}
	}
	if !hasModel {
		return false
	}
	for col := range g.Row(fieldRowIdx) {
		if isHumanMarker(g.CellText(fieldRowIdx, col)) {
			return true
		}
	}
	return false
}

// ParseHorizontal extracts one ModelInput per model block. Field pairs whose
// cells are both empty-or-absent in a row are dropped from that row's
// record, and rows that end up with no fields for a model are dropped from
// that model.
func ParseHorizontal(g Grid) ([]evaluationengine.ModelInput, error) {
	if g.NumRows() < dataRowIdx+1 {
		return nil, ErrTooFewRows
	}

	columns, modelOrder := mapModelColumns(g)
	if len(modelOrder) == 0 {
		return nil, ErrNoFieldColumns
	}

	models := make([]evaluationengine.ModelInput, 0, len(modelOrder))
	for _, model := range modelOrder {
		input := evaluationengine.ModelInput{Model: model}
		for row := dataRowIdx; row < g.NumRows(); row++ {
			rec := evaluationengine.RecordInput{
				RecordID:  fmt.Sprintf("%d", row-dataRowIdx+1),
				SubjectID: g.CellText(row, 0),
			}
			for _, mc := range columns[model] {
				ref := g.Cell(row, mc.humanCol)
				hyp := g.Cell(row, mc.aiCol)
				if normalizer.Normalize(ref).IsEmptyish() && normalizer.Normalize(hyp).IsEmptyish() {
					continue
				}
				rec.Fields = append(rec.Fields, evaluationengine.FieldPairInput{
					Field:      mc.field,
					Reference:  ref,
					Hypothesis: hyp,
				})
			}
			if len(rec.Fields) > 0 {
				input.Records = append(input.Records, rec)
			}
		}
		if len(input.Records) == 0 {
			log.Printf("Model %q has no scorable rows, dropping it", model)
			continue
		}
		models = append(models, input)
	}
	if len(models) == 0 {
		return nil, ErrNoFieldColumns
	}
	return models, nil
}

// mapModelColumns walks the field row and pairs every AI column with the
// human marker column that follows it, attributing the pair to the model
// block it sits in.
func mapModelColumns(g Grid) (map[string][]modelColumn, []string) {
	fieldRow := g.Row(fieldRowIdx)
	columns := make(map[string][]modelColumn)
	var modelOrder []string

	currentModel := ""
	aiCol := -1
	for col := range fieldRow {
		if name := g.CellText(modelRowIdx, col); name != "" && name != "MODEL" {
			currentModel = name
			aiCol = -1
		}

		field := g.CellText(fieldRowIdx, col)
		if field == "" {
			continue
		}
		if !isHumanMarker(field) {
			if !isStructuralField(field) {
				aiCol = col
			}
			continue
		}
		if currentModel == "" || aiCol < 0 {
			continue
		}
		aiField := g.CellText(fieldRowIdx, aiCol)
		if aiField == "" || isStructuralField(aiField) {
			continue
		}
		if _, seen := columns[currentModel]; !seen {
			modelOrder = append(modelOrder, currentModel)
		}
		columns[currentModel] = append(columns[currentModel], modelColumn{
			field:    aiField,
			aiCol:    aiCol,
			humanCol: col,
		})
		log.Printf("Mapped field %q for model %q (AI column %d, human column %d)", aiField, currentModel, aiCol, col)
		aiCol = -1
	}
	return columns, modelOrder
}
