package evaluationengine

// ConfigurationError reports an evaluation request that cannot produce a
// meaningful score, such as a record with no fields. It is a caller error,
// never a degenerate 0 or NaN result.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "evaluation configuration error: " + e.Reason
}

// Is makes every ConfigurationError match every other one, so callers can
// test errors.Is(err, ErrEmptyFieldSet) on wrapped errors without caring
// which sentinel was wrapped.
func (e *ConfigurationError) Is(target error) bool {
	_, ok := target.(*ConfigurationError)
	return ok
}

var (
	// ErrEmptyFieldSet is returned for a record with no field pairs.
	ErrEmptyFieldSet = &ConfigurationError{Reason: "record has no fields to compare"}
	// ErrEmptyRecordSet is returned for a dataset with no records.
	ErrEmptyRecordSet = &ConfigurationError{Reason: "dataset has no records to evaluate"}
	// ErrEmptyModelSet is returned for a multi-model run with no models.
	ErrEmptyModelSet = &ConfigurationError{Reason: "no models to evaluate"}
)
