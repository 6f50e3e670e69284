package fieldcomparators

import (
	"strings"

	"accuracy-eval-platform/backend/internal/coreengine/normalizer"
)

// DateComparator scores ROC calendar dates. Equal canonical dates score 1.0;
// dates that both split into year/month/day score the fraction of matching
// components; anything else scores 0.
type DateComparator struct{}

func (DateComparator) Type() FieldType { return FieldTypeDate }

func (DateComparator) Normalize(text string) string {
	return normalizer.NormalizeDate(text)
}

func (DateComparator) Similarity(ref, hyp string) float64 {
	if ref == hyp {
		return 1.0
	}
	refParts := strings.Split(ref, "/")
	hypParts := strings.Split(hyp, "/")
	if len(refParts) != 3 || len(hypParts) != 3 {
		return 0.0
	}
	matches := 0
	for i := range refParts {
		if refParts[i] == hypParts[i] {
			matches++
		}
	}
	return float64(matches) / 3.0
}
