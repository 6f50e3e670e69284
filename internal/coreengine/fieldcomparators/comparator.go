// Package fieldcomparators scores a single (reference, hypothesis) field pair
// with a type-specific rule. Comparators are registered per field type in a
// Registry; text comparison is the default when no type applies.
package fieldcomparators

import (
	"strings"

	"accuracy-eval-platform/backend/internal/coreengine/normalizer"
)

// FieldType names the comparison rule applied to a field.
type FieldType string

const (
	FieldTypeText    FieldType = "text"
	FieldTypeDate    FieldType = "date"
	FieldTypeAmount  FieldType = "amount"
	FieldTypeBoolean FieldType = "boolean"
)

// Comparator normalizes field text for one field type and scores a
// normalized pair. Implementations must be stateless and safe for
// concurrent use.
type Comparator interface {
	// Type identifies the field type this comparator serves.
	Type() FieldType
	// Normalize canonicalizes already-trimmed field text for this type.
	Normalize(text string) string
	// Similarity scores two normalized non-empty strings in [0, 1].
	Similarity(ref, hyp string) float64
}

// DetectFieldType infers the comparison rule for a field, first from the
// field name and then from the shape of whichever value is non-empty.
func DetectFieldType(fieldName, ref, hyp string) FieldType {
	lower := strings.ToLower(fieldName)
	if strings.Contains(fieldName, "日期") || strings.Contains(lower, "date") {
		return FieldTypeDate
	}
	if strings.Contains(fieldName, "金額") || strings.Contains(lower, "amount") || strings.Contains(fieldName, "元") {
		return FieldTypeAmount
	}

	for _, v := range []string{ref, hyp} {
		if v == "" {
			continue
		}
		if normalizer.LooksLikeBoolean(v) {
			return FieldTypeBoolean
		}
		if normalizer.LooksLikeDate(v) {
			return FieldTypeDate
		}
		if normalizer.LooksLikeAmount(v) {
			return FieldTypeAmount
		}
	}
	return FieldTypeText
}
