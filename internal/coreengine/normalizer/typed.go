package normalizer

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	dateSepPattern    = regexp.MustCompile(`[/-]`)
	dateDigitsPattern = regexp.MustCompile(`^\d{7,8}$`)
	dateShapePattern  = regexp.MustCompile(`^\d{2,3}[/-]\d{1,2}[/-]\d{1,2}$`)
	amountStripper    = strings.NewReplacer(",", "", " ", "", "\t", "")
)

// NormalizeDate canonicalizes ROC calendar dates to year/month/day form,
// e.g. 1140424, 114-04-24 and 114/04/24 all become 114/04/24. Inputs that do
// not look like a date are returned unchanged.
func NormalizeDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	digits := dateSepPattern.ReplaceAllString(s, "")
	if !dateDigitsPattern.MatchString(digits) {
		return s
	}
	// Seven digits are a three digit ROC year plus month and day; eight
	// digits are accepted only as a zero padded seven digit date.
	if len(digits) == 8 {
		if digits[0] != '0' {
			return s
		}
		digits = digits[1:]
	}
	return digits[:3] + "/" + digits[3:5] + "/" + digits[5:7]
}

// LooksLikeDate reports whether the string already has a separated
// year/month/day shape.
func LooksLikeDate(s string) bool {
	return dateShapePattern.MatchString(strings.TrimSpace(s))
}

// NormalizeAmount parses a monetary string after stripping thousands
// separators and whitespace. ok is false when the remainder is not numeric;
// empty input normalizes to 0 with ok true.
func NormalizeAmount(s string) (value float64, ok bool) {
	s = amountStripper.Replace(strings.TrimSpace(s))
	if s == "" {
		return 0, true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// LooksLikeAmount reports whether the string is a plain number once
// thousands separators are removed.
func LooksLikeAmount(s string) bool {
	s = amountStripper.Replace(strings.TrimSpace(s))
	if s == "" {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// NormalizeBoolean maps yes/no spellings onto the canonical Y and N markers.
// Unrecognized values are returned upper-cased so that a consistent but
// non-standard pair still compares equal.
func NormalizeBoolean(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	switch s {
	case "Y", "YES", "TRUE", "1", "是":
		return "Y"
	case "N", "NO", "FALSE", "0", "否":
		return "N"
	}
	return s
}

// LooksLikeBoolean reports whether the value is an unambiguous yes/no
// spelling. 1 and 0 are excluded here so numeric fields are not
// misclassified; they still normalize via NormalizeBoolean once a field is
// known to be boolean.
func LooksLikeBoolean(s string) bool {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "Y", "YES", "TRUE", "N", "NO", "FALSE":
		return true
	}
	return false
}
