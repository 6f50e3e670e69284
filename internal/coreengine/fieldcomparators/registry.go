package fieldcomparators

import (
	"accuracy-eval-platform/backend/internal/coreengine/metricscalculator"
	"accuracy-eval-platform/backend/internal/coreengine/normalizer"
)

// Error descriptions attached to non-exact fields, keyed by field type.
var errorDescriptions = map[FieldType]string{
	FieldTypeDate:    "日期格式或內容不符",
	FieldTypeAmount:  "金額數值錯誤",
	FieldTypeBoolean: "Y/N判斷錯誤",
	FieldTypeText:    "文字內容不符",
}

// Registry holds one comparator per field type and drives the full
// comparison of a field pair: normalization, the tri-state empty rules,
// type-specific similarity and the alignment metrics.
type Registry struct {
	comparators map[FieldType]Comparator
	fallback    Comparator
}

// NewRegistry returns a registry with the standard comparators installed.
func NewRegistry() *Registry {
	r := &Registry{
		comparators: make(map[FieldType]Comparator),
		fallback:    TextComparator{},
	}
	for _, c := range []Comparator{TextComparator{}, DateComparator{}, AmountComparator{}, BooleanComparator{}} {
		r.Register(c)
	}
	return r
}

// Register installs or replaces the comparator for its field type.
func (r *Registry) Register(c Comparator) {
	r.comparators[c.Type()] = c
}

// Get returns the comparator for a field type, falling back to text.
func (r *Registry) Get(t FieldType) Comparator {
	if c, ok := r.comparators[t]; ok {
		return c
	}
	return r.fallback
}

// Compare scores one field pair. The field type is detected from the field
// name and the value shapes, then the registered comparator for that type
// normalizes and scores the pair.
//
// Empty handling is uniform across types: two values that are both absent or
// empty are a free match; exactly one absent-or-empty value against a
// non-empty one is a total mismatch.
func (r *Registry) Compare(fieldName string, ref, hyp normalizer.FieldValue) FieldResult {
	refNorm := normalizer.Normalize(ref)
	hypNorm := normalizer.Normalize(hyp)

	result := FieldResult{
		FieldName: fieldName,
		RefState:  refNorm.State,
		HypState:  hypNorm.State,
		Malformed: refNorm.Malformed || hypNorm.Malformed,
	}

	result.FieldType = DetectFieldType(fieldName, refNorm.Text, hypNorm.Text)
	c := r.Get(result.FieldType)

	switch {
	case refNorm.IsEmptyish() && hypNorm.IsEmptyish():
		result.Similarity = 1.0
		result.ExactMatch = true
		result.CERAccuracy = 1.0
		return result
	case refNorm.IsEmptyish() || hypNorm.IsEmptyish():
		result.Reference = refNorm.Text
		result.Hypothesis = hypNorm.Text
		result.CER = 1.0
		result.WER = 1.0
		result.ErrorDescription = errorDescriptions[result.FieldType]
		return result
	}

	result.Reference = c.Normalize(refNorm.Text)
	result.Hypothesis = c.Normalize(hypNorm.Text)
	result.Similarity = c.Similarity(result.Reference, result.Hypothesis)

	m := metricscalculator.Calculate(result.Reference, result.Hypothesis)
	result.CER = m.CER
	result.WER = m.WER
	result.CERAccuracy = metricscalculator.AccuracyFromCER(m.CER)
	result.ExactMatch = result.Similarity == 1.0
	if !result.ExactMatch {
		result.ErrorDescription = errorDescriptions[result.FieldType]
	}
	return result
}
