package alignment

import (
	"strings"
	"unicode"
)

// ideographic covers scripts whose text is written without
// whitespace-delimited words; those are scored one code point per word unit,
// matching the character-level granularity used by CER.
var ideographic = []*unicode.RangeTable{
	unicode.Han,
	unicode.Hiragana,
	unicode.Katakana,
	unicode.Hangul,
}

func isIdeographic(r rune) bool {
	return unicode.IsOneOf(ideographic, r)
}

// Chars splits a string into one token per Unicode code point, the sequence
// granularity used for character-level alignment and CER.
func Chars(s string) []string {
	tokens := make([]string, 0, len(s))
	for _, r := range s {
		tokens = append(tokens, string(r))
	}
	return tokens
}

// Words splits a string into word units for WER. Whitespace-delimited tokens
// are the base unit; any token containing ideographic runes is further split
// into one unit per code point, so CJK text is scored character-wise.
func Words(s string) []string {
	var units []string
	for _, field := range strings.Fields(s) {
		split := false
		for _, r := range field {
			if isIdeographic(r) {
				split = true
				break
			}
		}
		if split {
			for _, r := range field {
				units = append(units, string(r))
			}
		} else {
			units = append(units, field)
		}
	}
	return units
}
