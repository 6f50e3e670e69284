package fieldcomparators

import (
	"accuracy-eval-platform/backend/internal/coreengine/metricscalculator"
)

// TextComparator scores free text by similarity ratio over aligned code
// points. It is the default comparator.
type TextComparator struct{}

func (TextComparator) Type() FieldType { return FieldTypeText }

func (TextComparator) Normalize(text string) string { return text }

func (TextComparator) Similarity(ref, hyp string) float64 {
	return metricscalculator.Calculate(ref, hyp).Similarity
}
