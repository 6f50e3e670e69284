package fieldcomparators

import (
	"strconv"

	"accuracy-eval-platform/backend/internal/coreengine/normalizer"
)

// AmountComparator scores monetary values: numerically equal amounts score
// 1.0, anything else 0. Values that do not parse as numbers keep their
// original text and compare by string equality.
type AmountComparator struct{}

func (AmountComparator) Type() FieldType { return FieldTypeAmount }

func (AmountComparator) Normalize(text string) string {
	v, ok := normalizer.NormalizeAmount(text)
	if !ok {
		return text
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (AmountComparator) Similarity(ref, hyp string) float64 {
	if ref == hyp {
		return 1.0
	}
	return 0.0
}
