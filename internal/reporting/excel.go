// Package reporting renders evaluation results as an Excel workbook: a
// summary sheet, a field statistics sheet and one record details sheet per
// evaluated model.
package reporting

import (
	"fmt"
	"time"
	"unicode"

	"github.com/xuri/excelize/v2"

	"accuracy-eval-platform/backend/internal/coreengine/evaluationengine"
)

const (
	summarySheet    = "評估總覽"
	fieldStatsSheet = "欄位統計"
	detailsSheet    = "記錄明細"
)

// Meta carries run metadata shown on the summary sheet.
type Meta struct {
	SourceFilename string
	GeneratedAt    time.Time
}

// BuildSingleModelReport renders one model's records and summary.
func BuildSingleModelReport(meta Meta, records []evaluationengine.RecordResult, summary evaluationengine.DatasetSummary) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	w := &workbookWriter{f: f}
	if err := w.init(); err != nil {
		return nil, err
	}
	w.writeSummary(meta, summary, nil)
	w.writeFieldStats(summary)
	w.writeDetails(detailsSheet, records)
	if w.err != nil {
		return nil, fmt.Errorf("building report: %w", w.err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serializing report: %w", err)
	}
	return buf.Bytes(), nil
}

// BuildMultiModelReport renders every model's results: a shared summary
// sheet with a model comparison block, field statistics per model block,
// and one details sheet per model.
func BuildMultiModelReport(meta Meta, models []evaluationengine.ModelResult) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	w := &workbookWriter{f: f}
	if err := w.init(); err != nil {
		return nil, err
	}

	// The first model's summary carries the headline numbers; all models
	// appear in the comparison block.
	var headline evaluationengine.DatasetSummary
	if len(models) > 0 {
		headline = models[0].Summary
	}
	w.writeSummary(meta, headline, models)

	for _, m := range models {
		w.writeFieldStatsSheet(sanitizeSheetName("欄位統計_"+m.Model), m.Summary)
		w.writeDetails(sanitizeSheetName("明細_"+m.Model), m.Records)
	}
	if w.err != nil {
		return nil, fmt.Errorf("building report: %w", w.err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serializing report: %w", err)
	}
	return buf.Bytes(), nil
}

// workbookWriter accumulates the first cell write error so sheet builders
// can stay linear.
type workbookWriter struct {
	f           *excelize.File
	err         error
	titleStyle  int
	headerStyle int
}

func (w *workbookWriter) init() error {
	if err := w.f.SetSheetName(w.f.GetSheetName(0), summarySheet); err != nil {
		return fmt.Errorf("renaming summary sheet: %w", err)
	}
	var err error
	w.titleStyle, err = w.f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	if err != nil {
		return fmt.Errorf("creating title style: %w", err)
	}
	w.headerStyle, err = w.f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	return nil
}

func (w *workbookWriter) setCell(sheet string, col, row int, value any) {
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetCellValue(sheet, cell, value)
}

func (w *workbookWriter) writeRow(sheet string, row int, values ...any) {
	for i, v := range values {
		w.setCell(sheet, i+1, row, v)
	}
}

func (w *workbookWriter) styleRow(sheet string, row, cols, style int) {
	if w.err != nil {
		return
	}
	start, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		w.err = err
		return
	}
	end, err := excelize.CoordinatesToCellName(cols, row)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetCellStyle(sheet, start, end, style)
}

func (w *workbookWriter) writeSummary(meta Meta, summary evaluationengine.DatasetSummary, models []evaluationengine.ModelResult) {
	w.writeRow(summarySheet, 1, "AI測試結果準確度評估報告")
	w.styleRow(summarySheet, 1, 1, w.titleStyle)

	w.writeRow(summarySheet, 3, "原始檔案:", meta.SourceFilename)
	w.writeRow(summarySheet, 4, "評估時間:", meta.GeneratedAt.Format("2006-01-02 15:04:05"))
	w.writeRow(summarySheet, 5, "總記錄數:", summary.TotalRecords)
	w.writeRow(summarySheet, 6, "完全正確記錄數:", summary.FullyCorrectRecords)
	w.writeRow(summarySheet, 7, "整體準確率:", percent(summary.OverallAccuracy))

	row := 9
	w.writeRow(summarySheet, row, "準確度分級", "記錄數", "百分比")
	w.styleRow(summarySheet, row, 3, w.headerStyle)
	row++
	for _, bucket := range summary.TierDistribution {
		w.writeRow(summarySheet, row, bucket.Tier.String(), bucket.Count, fmt.Sprintf("%.1f%%", bucket.Percent))
		row++
	}

	if len(models) == 0 {
		return
	}
	row++
	w.writeRow(summarySheet, row, "模型比較")
	w.styleRow(summarySheet, row, 1, w.headerStyle)
	row++
	w.writeRow(summarySheet, row, "模型", "記錄數", "整體準確率", "完全正確記錄數")
	w.styleRow(summarySheet, row, 4, w.headerStyle)
	row++
	for _, m := range models {
		w.writeRow(summarySheet, row, m.Model, m.Summary.TotalRecords, percent(m.Summary.OverallAccuracy), m.Summary.FullyCorrectRecords)
		row++
	}
}

func (w *workbookWriter) writeFieldStats(summary evaluationengine.DatasetSummary) {
	w.writeFieldStatsSheet(fieldStatsSheet, summary)
}

func (w *workbookWriter) writeFieldStatsSheet(sheet string, summary evaluationengine.DatasetSummary) {
	if w.err != nil {
		return
	}
	if _, err := w.f.NewSheet(sheet); err != nil {
		w.err = err
		return
	}
	w.writeRow(sheet, 1, "欄位", "筆數", "完全匹配數", "匹配率", "平均相似度", "最低相似度", "最高相似度")
	w.styleRow(sheet, 1, 7, w.headerStyle)

	row := 2
	for _, field := range summary.FieldOrder {
		stats := summary.FieldStats[field]
		w.writeRow(sheet, row,
			field,
			stats.Records,
			stats.ExactMatches,
			percent(stats.MatchRate),
			round4(stats.MeanSimilarity),
			round4(stats.MinSimilarity),
			round4(stats.MaxSimilarity),
		)
		row++
	}
}

func (w *workbookWriter) writeDetails(sheet string, records []evaluationengine.RecordResult) {
	if w.err != nil {
		return
	}
	if _, err := w.f.NewSheet(sheet); err != nil {
		w.err = err
		return
	}
	w.writeRow(sheet, 1,
		"記錄", "受編", "欄位", "類型", "正確答案", "AI輸出",
		"相似度", "CER", "WER", "完全匹配", "錯誤描述")
	w.styleRow(sheet, 1, 11, w.headerStyle)

	row := 2
	for _, rec := range records {
		for _, field := range rec.FieldOrder {
			fr := rec.Fields[field]
			match := "N"
			if fr.ExactMatch {
				match = "Y"
			}
			w.writeRow(sheet, row,
				rec.RecordID,
				rec.SubjectID,
				field,
				string(fr.FieldType),
				fr.Reference,
				fr.Hypothesis,
				round4(fr.Similarity),
				round4(fr.CER),
				round4(fr.WER),
				match,
				fr.ErrorDescription,
			)
			row++
		}
	}
}

func percent(v float64) string {
	return fmt.Sprintf("%.2f%%", v*100)
}

func round4(v float64) float64 {
	return float64(int(v*10000+0.5)) / 10000
}

// sanitizeSheetName strips characters Excel rejects in sheet names and
// truncates to the 31 character limit. A name with nothing left after
// stripping falls back to a placeholder, since excelize rejects empty
// sheet names.
func sanitizeSheetName(name string) string {
	cleaned := make([]rune, 0, len(name))
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '_' || r == '-' || r == '.' {
			cleaned = append(cleaned, r)
		}
		if len(cleaned) == 31 {
			break
		}
	}
	if len(cleaned) == 0 {
		return "工作表"
	}
	return string(cleaned)
}
