// Package jobmanagement runs one evaluation job end to end: validate the
// upload, parse the workbook, score it and render the result workbook.
package jobmanagement

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"accuracy-eval-platform/backend/internal/coreengine/evaluationengine"
	"accuracy-eval-platform/backend/internal/coreengine/fieldcomparators"
	"accuracy-eval-platform/backend/internal/coreengine/metricscalculator"
	"accuracy-eval-platform/backend/internal/ingestion"
	"accuracy-eval-platform/backend/internal/reporting"
)

// MaxUploadBytes caps uploaded workbook size.
const MaxUploadBytes = 10 << 20

// EvaluationService turns one uploaded workbook into one result workbook.
// Stateless; results live for the request only.
type EvaluationService struct {
	engine *evaluationengine.Engine
	now    func() time.Time
}

// NewEvaluationService returns a service with the standard comparators and
// tier thresholds.
func NewEvaluationService() *EvaluationService {
	return &EvaluationService{
		engine: evaluationengine.NewEngine(fieldcomparators.NewRegistry(), metricscalculator.DefaultThresholds),
		now:    time.Now,
	}
}

// EvaluationOutput is one finished run: the result workbook plus run
// metadata for the response headers.
type EvaluationOutput struct {
	RunID      uuid.UUID
	Filename   string
	Content    []byte
	ValueSetID string
	MultiModel bool
	Models     int
	Records    int
}

// ValidateUpload rejects uploads before any decoding: missing filename,
// empty or oversized content, or a non-xlsx extension. Legacy .xls files
// are rejected explicitly since only the xlsx container is supported.
func (s *EvaluationService) ValidateUpload(filename string, size int64) error {
	if filename == "" {
		return &FileValidationError{Reason: "no file provided"}
	}
	if size == 0 {
		return &FileValidationError{Filename: filename, Reason: "empty file provided"}
	}
	if size > MaxUploadBytes {
		return &FileValidationError{Filename: filename, Reason: "file too large, maximum size is 10MB"}
	}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		return nil
	case ".xls":
		return &FileValidationError{Filename: filename, Reason: "legacy .xls format is not supported, please convert to .xlsx"}
	default:
		return &FileValidationError{Filename: filename, Reason: "invalid file format, please upload an Excel file (.xlsx)"}
	}
}

// ProcessWorkbook runs the full evaluation for one upload. The sheet layout
// decides the mode: vertically stacked model blocks are tried first, then
// the horizontal multi-model layout, then the single-model fallback.
func (s *EvaluationService) ProcessWorkbook(ctx context.Context, content []byte, filename, valueSetID string) (*EvaluationOutput, error) {
	runID := uuid.New()
	log.Printf("Evaluation %s: processing %q (%d bytes, value set %q)", runID, filename, len(content), valueSetID)

	grid, err := ingestion.DecodeWorkbook(bytes.NewReader(content))
	if err != nil {
		return nil, &FileProcessingError{Filename: filename, Err: err}
	}

	meta := reporting.Meta{SourceFilename: filename, GeneratedAt: s.now()}
	output := &EvaluationOutput{
		RunID:      runID,
		Filename:   outputFilename(filename, meta.GeneratedAt),
		ValueSetID: valueSetID,
	}

	switch vertical := ingestion.ParseVerticalBlocks(grid); {
	case vertical != nil:
		if err := s.runMultiModel(ctx, vertical, meta, output); err != nil {
			return nil, err
		}
	case ingestion.DetectHorizontal(grid):
		inputs, err := ingestion.ParseHorizontal(grid)
		if err != nil {
			return nil, &DataValidationError{Reason: "cannot parse horizontal sheet", Err: err}
		}
		if err := s.runMultiModel(ctx, inputs, meta, output); err != nil {
			return nil, err
		}
	default:
		if err := s.runSingleModel(ctx, grid, meta, output); err != nil {
			return nil, err
		}
	}

	log.Printf("Evaluation %s: done, %d records, multi-model=%t, output %q",
		runID, output.Records, output.MultiModel, output.Filename)
	return output, nil
}

func (s *EvaluationService) runSingleModel(ctx context.Context, grid ingestion.Grid, meta reporting.Meta, output *EvaluationOutput) error {
	inputs, err := ingestion.ParseSingleModel(grid)
	if err != nil {
		return &DataValidationError{Reason: "cannot map sheet columns", Err: err}
	}

	records, err := s.engine.EvaluateRecords(ctx, inputs)
	if err != nil {
		return evaluationError(err)
	}
	summary := s.engine.Summarize(records)

	content, err := reporting.BuildSingleModelReport(meta, records, summary)
	if err != nil {
		return &ReportGenerationError{Err: err}
	}
	output.Content = content
	output.Models = 1
	output.Records = len(records)
	return nil
}

func (s *EvaluationService) runMultiModel(ctx context.Context, inputs []evaluationengine.ModelInput, meta reporting.Meta, output *EvaluationOutput) error {
	models, err := s.engine.EvaluateModels(ctx, inputs)
	if err != nil {
		return evaluationError(err)
	}

	content, err := reporting.BuildMultiModelReport(meta, models)
	if err != nil {
		return &ReportGenerationError{Err: err}
	}
	output.Content = content
	output.MultiModel = true
	output.Models = len(models)
	for _, m := range models {
		output.Records += len(m.Records)
	}
	return nil
}

// evaluationError keeps engine configuration errors distinguishable from
// internal failures so the HTTP layer can blame the data, not the service.
func evaluationError(err error) error {
	var cfgErr *evaluationengine.ConfigurationError
	if errors.As(err, &cfgErr) {
		return &DataValidationError{Reason: "dataset cannot be evaluated", Err: err}
	}
	return fmt.Errorf("evaluation failed: %w", err)
}

func outputFilename(source string, at time.Time) string {
	base := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	return fmt.Sprintf("%s_accuracy_evaluation_%s.xlsx", base, at.Format("20060102_150405"))
}
