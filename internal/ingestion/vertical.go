package ingestion

import (
	"log"
	"strings"

	"accuracy-eval-platform/backend/internal/coreengine/evaluationengine"
)

// Vertical multi-model layout: one model's block stacked above the next. A
// row naming a model opens a block; the block's own header row follows,
// then its data rows, until the next model row or the end of the sheet.

// modelNameKeywords identify a cell as a model name. Matched
// case-insensitively as substrings, so "gemma-3-27b" and "ChatGPT 4.1"
// both qualify.
var modelNameKeywords = []string{
	"gemini", "gemma", "chatgpt", "claude", "gpt", "llama", "palm", "bard",
}

// blockHeaderKeywords identify a row as a block's header row. A row needs
// blockHeaderMinKeywords cells carrying one of these to qualify, so data
// rows that mention a level or a note in passing are not mistaken for
// headers.
var blockHeaderKeywords = []string{
	"編號", "受編", "障礙", "類別", "ICD", "備註", "證明", "手冊", "解答", "LLM", "辨識",
}

const blockHeaderMinKeywords = 3

// modelNameInRow returns the first cell of the row that names a model, or
// the empty string.
func modelNameInRow(g Grid, row int) string {
	for col := range g.Row(row) {
		cell := g.CellText(row, col)
		if cell == "" {
			continue
		}
		lower := strings.ToLower(cell)
		for _, kw := range modelNameKeywords {
			if strings.Contains(lower, kw) {
				return cell
			}
		}
	}
	return ""
}

func isBlockHeaderRow(g Grid, row int) bool {
	hits := 0
	for col := range g.Row(row) {
		cell := strings.ToUpper(g.CellText(row, col))
		for _, kw := range blockHeaderKeywords {
			if strings.Contains(cell, kw) {
				hits++
				break
			}
		}
	}
	return hits >= blockHeaderMinKeywords
}

func rowHasContent(g Grid, row int) bool {
	for col := range g.Row(row) {
		if g.CellText(row, col) != "" {
			return true
		}
	}
	return false
}

// ParseVerticalBlocks splits stacked per-model blocks and parses each block
// with the single-model column mapper. Fewer than two usable blocks yields
// nil so callers can fall through to the horizontal and single-model
// layouts. Blocks whose columns cannot be mapped are logged and skipped.
func ParseVerticalBlocks(g Grid) []evaluationengine.ModelInput {
	var models []evaluationengine.ModelInput

	currentModel := ""
	var blockRows [][]string
	headerSeen := false

	flush := func() {
		defer func() { blockRows, headerSeen = nil, false }()
		if currentModel == "" || len(blockRows) < 2 {
			return
		}
		records, err := ParseSingleModel(NewGrid(blockRows))
		if err != nil {
			log.Printf("Model block %q cannot be parsed, skipping it: %v", currentModel, err)
			return
		}
		log.Printf("Model block %q: %d records", currentModel, len(records))
		models = append(models, evaluationengine.ModelInput{Model: currentModel, Records: records})
	}

	for row := 0; row < g.NumRows(); row++ {
		if name := modelNameInRow(g, row); name != "" {
			flush()
			currentModel = name
			continue
		}
		if currentModel == "" {
			continue
		}
		if !headerSeen {
			// Rows between the model name and its header row are titles or
			// padding.
			if isBlockHeaderRow(g, row) {
				headerSeen = true
				blockRows = append(blockRows, g.Row(row))
			}
			continue
		}
		if rowHasContent(g, row) {
			blockRows = append(blockRows, g.Row(row))
		}
	}
	flush()

	if len(models) < 2 {
		return nil
	}
	return models
}
