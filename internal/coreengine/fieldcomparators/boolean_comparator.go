package fieldcomparators

import (
	"accuracy-eval-platform/backend/internal/coreengine/normalizer"
)

// BooleanComparator scores yes/no judgments on the canonical Y/N markers.
type BooleanComparator struct{}

func (BooleanComparator) Type() FieldType { return FieldTypeBoolean }

func (BooleanComparator) Normalize(text string) string {
	return normalizer.NormalizeBoolean(text)
}

func (BooleanComparator) Similarity(ref, hyp string) float64 {
	if ref == hyp {
		return 1.0
	}
	return 0.0
}
