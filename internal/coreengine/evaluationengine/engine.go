// Package evaluationengine aggregates field comparisons into record,
// dataset and multi-model results.
package evaluationengine

import (
	"context"
	"fmt"
	"log"
	"runtime"

	"golang.org/x/sync/errgroup"

	"accuracy-eval-platform/backend/internal/coreengine/fieldcomparators"
	"accuracy-eval-platform/backend/internal/coreengine/metricscalculator"
)

// Engine scores records with a comparator registry and classifies them with
// a fixed set of tier thresholds. Safe for concurrent use.
type Engine struct {
	registry   *fieldcomparators.Registry
	thresholds metricscalculator.Thresholds
}

// NewEngine returns an engine with the given comparator registry and tier
// thresholds. A nil registry gets the standard comparators.
func NewEngine(registry *fieldcomparators.Registry, thresholds metricscalculator.Thresholds) *Engine {
	if registry == nil {
		registry = fieldcomparators.NewRegistry()
	}
	return &Engine{registry: registry, thresholds: thresholds}
}

// EvaluateRecord scores every field of one record and folds the field scores
// into the record-level metrics. A record with no fields is a configuration
// error.
func (e *Engine) EvaluateRecord(rec RecordInput) (RecordResult, error) {
	if len(rec.Fields) == 0 {
		return RecordResult{}, fmt.Errorf("record %q: %w", rec.RecordID, ErrEmptyFieldSet)
	}

	result := RecordResult{
		RecordID:   rec.RecordID,
		SubjectID:  rec.SubjectID,
		FieldOrder: make([]string, 0, len(rec.Fields)),
		Fields:     make(map[string]fieldcomparators.FieldResult, len(rec.Fields)),
	}

	var similaritySum, cerAccuracySum float64
	for _, pair := range rec.Fields {
		fr := e.registry.Compare(pair.Field, pair.Reference, pair.Hypothesis)
		result.FieldOrder = append(result.FieldOrder, pair.Field)
		result.Fields[pair.Field] = fr
		similaritySum += fr.Similarity
		cerAccuracySum += fr.CERAccuracy
		if fr.ExactMatch {
			result.MatchedFields++
		}
	}

	result.TotalFields = len(rec.Fields)
	result.OverallAccuracy = similaritySum / float64(result.TotalFields)
	result.CERAccuracy = cerAccuracySum / float64(result.TotalFields)
	result.FullMatch = result.MatchedFields == result.TotalFields
	result.Tier = e.thresholds.Classify(result.OverallAccuracy)
	return result, nil
}

// EvaluateRecords scores a record set in parallel and returns the results in
// input order. The first failing record aborts the run.
func (e *Engine) EvaluateRecords(ctx context.Context, records []RecordInput) ([]RecordResult, error) {
	if len(records) == 0 {
		return nil, ErrEmptyRecordSet
	}

	results := make([]RecordResult, len(records))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, rec := range records {
		i, rec := i, rec
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := e.EvaluateRecord(rec)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// EvaluateModels scores each model's record set independently. A model that
// fails is logged and skipped without affecting the others; the run errors
// only when no model could be evaluated.
func (e *Engine) EvaluateModels(ctx context.Context, models []ModelInput) ([]ModelResult, error) {
	if len(models) == 0 {
		return nil, ErrEmptyModelSet
	}

	results := make([]ModelResult, 0, len(models))
	var lastErr error
	for _, m := range models {
		records, err := e.EvaluateRecords(ctx, m.Records)
		if err != nil {
			log.Printf("Skipping model %q: %v", m.Model, err)
			lastErr = fmt.Errorf("model %q: %w", m.Model, err)
			continue
		}
		results = append(results, ModelResult{
			Model:   m.Model,
			Records: records,
			Summary: e.Summarize(records),
		})
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("all %d models failed, last error: %w", len(models), lastErr)
	}
	return results, nil
}
