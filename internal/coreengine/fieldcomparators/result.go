package fieldcomparators

import (
	"accuracy-eval-platform/backend/internal/coreengine/normalizer"
)

// FieldResult is the complete score for one field of one record.
type FieldResult struct {
	FieldName string    `json:"field_name"`
	FieldType FieldType `json:"field_type"`

	// Reference and Hypothesis carry the normalized text that was compared.
	Reference  string           `json:"reference"`
	Hypothesis string           `json:"hypothesis"`
	RefState   normalizer.State `json:"-"`
	HypState   normalizer.State `json:"-"`

	// Similarity is the type-specific score in [0, 1] and is what record
	// aggregation averages. CERAccuracy is max(0, 1-CER), a display metric
	// that never feeds the record mean.
	Similarity  float64 `json:"similarity"`
	CER         float64 `json:"cer"`
	WER         float64 `json:"wer"`
	CERAccuracy float64 `json:"cer_accuracy"`
	ExactMatch  bool    `json:"exact_match"`

	// Malformed marks a raw value that could not be coerced to text and was
	// scored as empty.
	Malformed        bool   `json:"malformed,omitempty"`
	ErrorDescription string `json:"error_description,omitempty"`
}
