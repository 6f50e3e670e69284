package evaluationengine

import (
	"accuracy-eval-platform/backend/internal/coreengine/fieldcomparators"
	"accuracy-eval-platform/backend/internal/coreengine/metricscalculator"
	"accuracy-eval-platform/backend/internal/coreengine/normalizer"
)

// FieldPairInput is one field of one record: the ground truth value and the
// model's value. Values are tri-state; use normalizer.Missing() for a cell
// that does not exist at all.
type FieldPairInput struct {
	Field      string
	Reference  normalizer.FieldValue
	Hypothesis normalizer.FieldValue
}

// RecordInput is one record to score. SubjectID is the case identifier from
// the source sheet and is passed through to results untouched.
type RecordInput struct {
	RecordID  string
	SubjectID string
	Fields    []FieldPairInput
}

// ModelInput is one model's full record set in a multi-model run.
type ModelInput struct {
	Model   string
	Records []RecordInput
}

// RecordResult is the score of one record.
type RecordResult struct {
	RecordID  string `json:"record_id"`
	SubjectID string `json:"subject_id,omitempty"`

	// FieldOrder preserves the input field order; Fields is keyed by field
	// name.
	FieldOrder []string                                `json:"field_order"`
	Fields     map[string]fieldcomparators.FieldResult `json:"fields"`

	// OverallAccuracy is the unweighted mean of the per-field similarity
	// scores. CERAccuracy is the mean of the per-field CER-derived
	// accuracies, carried for display only.
	OverallAccuracy float64 `json:"overall_accuracy"`
	CERAccuracy     float64 `json:"cer_accuracy"`

	TotalFields   int                    `json:"total_fields"`
	MatchedFields int                    `json:"matched_fields"`
	FullMatch     bool                   `json:"full_match"`
	Tier          metricscalculator.Tier `json:"-"`
}

// FieldStats aggregates one field across every record that carries it.
type FieldStats struct {
	Records        int     `json:"records"`
	ExactMatches   int     `json:"exact_matches"`
	MatchRate      float64 `json:"match_rate"`
	MeanSimilarity float64 `json:"mean_similarity"`
	MinSimilarity  float64 `json:"min_similarity"`
	MaxSimilarity  float64 `json:"max_similarity"`
}

// TierBucket is one accuracy tier's share of a dataset.
type TierBucket struct {
	Tier    metricscalculator.Tier `json:"-"`
	Count   int                    `json:"count"`
	Percent float64                `json:"percent"`
}

// DatasetSummary aggregates every record of one model run.
type DatasetSummary struct {
	TotalRecords        int     `json:"total_records"`
	FullyCorrectRecords int     `json:"fully_correct_records"`
	OverallAccuracy     float64 `json:"overall_accuracy"`

	// FieldOrder is the union of record field orders, first occurrence wins.
	FieldOrder []string              `json:"field_order"`
	FieldStats map[string]FieldStats `json:"field_stats"`

	// TierDistribution lists every tier in display order, zero counts
	// included.
	TierDistribution []TierBucket `json:"tier_distribution"`
}

// ModelResult is one model's complete evaluation in a multi-model run.
type ModelResult struct {
	Model   string         `json:"model"`
	Records []RecordResult `json:"records"`
	Summary DatasetSummary `json:"summary"`
}
