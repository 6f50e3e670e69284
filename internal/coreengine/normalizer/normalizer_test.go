package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePresent(t *testing.T) {
	cases := []struct {
		raw  any
		want string
	}{
		{"hello", "hello"},
		{"  padded  ", "padded"},
		{"身心障礙證明\n", "身心障礙證明"},
		{42, "42"},
		{3.5, "3.5"},
		{true, "true"},
	}
	for _, tc := range cases {
		n := Normalize(New(tc.raw))
		assert.Equal(t, Present, n.State, "%v", tc.raw)
		assert.Equal(t, tc.want, n.Text, "%v", tc.raw)
		assert.False(t, n.Malformed)
	}
}

// Chinese spreadsheet exports pad cells with full-width spaces and NBSPs;
// those must trim away like ASCII whitespace.
func TestNormalizeUnicodeWhitespace(t *testing.T) {
	cases := []struct {
		raw  any
		want string
	}{
		{"輕度　", "輕度"},
		{"　輕度　", "輕度"},
		{"輕度 ", "輕度"},
		{" 114/04/24 ", "114/04/24"},
	}
	for _, tc := range cases {
		n := Normalize(New(tc.raw))
		assert.Equal(t, Present, n.State, "%q", tc.raw)
		assert.Equal(t, tc.want, n.Text, "%q", tc.raw)
	}
}

func TestNormalizeEmpty(t *testing.T) {
	for _, raw := range []any{"", "   ", "\t\n", "　　", " ", nil} {
		n := Normalize(New(raw))
		assert.Equal(t, Empty, n.State, "%v", raw)
		assert.Equal(t, "", n.Text)
		assert.True(t, n.IsEmptyish())
	}
}

func TestNormalizeAbsent(t *testing.T) {
	n := Normalize(Missing())
	assert.Equal(t, Absent, n.State)
	assert.True(t, n.IsEmptyish())
	assert.True(t, Missing().IsMissing())
	assert.False(t, New("x").IsMissing())
}

// Absence and the empty string must stay distinguishable after
// normalization.
func TestNormalizeAbsentDistinctFromEmpty(t *testing.T) {
	assert.NotEqual(t, Normalize(Missing()).State, Normalize(New("")).State)
}

func TestNormalizeMalformed(t *testing.T) {
	n := Normalize(New(struct{ X int }{1}))
	assert.True(t, n.Malformed)
	assert.Equal(t, Empty, n.State)
	assert.Equal(t, "", n.Text)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "absent", Absent.String())
	assert.Equal(t, "empty", Empty.String())
	assert.Equal(t, "present", Present.String())
}

func TestNormalizeDate(t *testing.T) {
	cases := []struct{ in, want string }{
		{"1140424", "114/04/24"},
		{"114-04-24", "114/04/24"},
		{"114/04/24", "114/04/24"},
		{"990101", "990101"}, // six digits, not a date shape
		{"  1140424 ", "114/04/24"},
		{"not a date", "not a date"},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizeDate(tc.in), "%q", tc.in)
	}
}

func TestNormalizeDateSevenDigitPadding(t *testing.T) {
	// Seven digit ROC dates are missing the leading zero of the year part.
	assert.Equal(t, "099/12/31", NormalizeDate("0991231"))
	assert.Equal(t, "099/04/24", NormalizeDate("099-04-24"))
}

func TestLooksLikeDate(t *testing.T) {
	assert.True(t, LooksLikeDate("114/04/24"))
	assert.True(t, LooksLikeDate("99-1-1"))
	assert.False(t, LooksLikeDate("1140424"))
	assert.False(t, LooksLikeDate("hello"))
}

func TestNormalizeAmount(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"1,234,567", 1234567, true},
		{"1234567", 1234567, true},
		{" 99.5 ", 99.5, true},
		{"", 0, true},
		{"N/A", 0, false},
	}
	for _, tc := range cases {
		v, ok := NormalizeAmount(tc.in)
		assert.Equal(t, tc.ok, ok, "%q", tc.in)
		assert.Equal(t, tc.want, v, "%q", tc.in)
	}
}

func TestLooksLikeAmount(t *testing.T) {
	assert.True(t, LooksLikeAmount("12,000"))
	assert.True(t, LooksLikeAmount("3.14"))
	assert.False(t, LooksLikeAmount("12元"))
	assert.False(t, LooksLikeAmount(""))
}

func TestNormalizeBoolean(t *testing.T) {
	for _, yes := range []string{"Y", "y", "Yes", "TRUE", "1", "是"} {
		assert.Equal(t, "Y", NormalizeBoolean(yes), yes)
	}
	for _, no := range []string{"N", "n", "No", "false", "0", "否"} {
		assert.Equal(t, "N", NormalizeBoolean(no), no)
	}
	// Unknown spellings pass through upper-cased.
	assert.Equal(t, "MAYBE", NormalizeBoolean("maybe"))
}

func TestLooksLikeBoolean(t *testing.T) {
	assert.True(t, LooksLikeBoolean("Y"))
	assert.True(t, LooksLikeBoolean("no"))
	assert.False(t, LooksLikeBoolean("1"))
	assert.False(t, LooksLikeBoolean("0"))
	assert.False(t, LooksLikeBoolean("text"))
}
