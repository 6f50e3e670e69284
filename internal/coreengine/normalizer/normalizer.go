// Package normalizer canonicalizes raw field values before comparison. Every
// value resolves to a trimmed string plus a tri-state classification
// (Absent / Empty / Present), so the metric layer never needs ad hoc
// null checks.
package normalizer

import (
	"strings"

	"github.com/spf13/cast"
)

// State classifies a field value after normalization. Absence (no cell at
// all) and the empty string are distinct states; both compare the same way
// but are reported differently.
type State int

const (
	Absent State = iota
	Empty
	Present
)

func (s State) String() string {
	switch s {
	case Absent:
		return "absent"
	case Empty:
		return "empty"
	case Present:
		return "present"
	default:
		return "unknown"
	}
}

// FieldValue is a raw field value as supplied by the input layer: either an
// arbitrary raw value or an explicit absent marker.
type FieldValue struct {
	raw     any
	present bool
}

// New wraps a raw value supplied for a field.
func New(raw any) FieldValue {
	return FieldValue{raw: raw, present: true}
}

// Missing is the explicit absent marker for a field with no value at all.
func Missing() FieldValue {
	return FieldValue{}
}

// IsMissing reports whether the value is the absent marker.
func (v FieldValue) IsMissing() bool {
	return !v.present
}

// Raw returns the wrapped raw value, or nil for the absent marker.
func (v FieldValue) Raw() any {
	return v.raw
}

// Normalized is the canonical form of a field value.
type Normalized struct {
	// Text is the canonical string: coerced to text and trimmed at both
	// ends. Internal whitespace is preserved.
	Text  string
	State State
	// Malformed marks a raw value that could not be coerced to text; such
	// values are substituted with the empty treatment and the comparison
	// continues.
	Malformed bool
}

// IsEmptyish reports whether the value carries no comparable content.
func (n Normalized) IsEmptyish() bool {
	return n.State != Present
}

// Normalize canonicalizes a field value. Pure function, no side effects.
func Normalize(v FieldValue) Normalized {
	if v.IsMissing() {
		return Normalized{State: Absent}
	}
	if v.raw == nil {
		return Normalized{State: Empty}
	}
	text, err := cast.ToStringE(v.raw)
	if err != nil {
		return Normalized{State: Empty, Malformed: true}
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return Normalized{State: Empty}
	}
	return Normalized{Text: text, State: Present}
}
