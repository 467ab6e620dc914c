package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToHalfWidthASCII(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"ＡＢＣ　１２３！", "ABC 123!"},
		{"（内服）", "(内服)"},
		{"～", "~"},
		{"アイウ", "アイウ"},
		{"ｱｲｳ", "ｱｲｳ"},
		{"abc 123", "abc 123"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ToHalfWidthASCII(tt.in), "in %q", tt.in)
	}
}

func TestToHalfWidthASCIIIdempotent(t *testing.T) {
	inputs := []string{"ＡＢ（注）　ｘ", "処方(内服)", "１，２３４円", "ｶﾅ全角カナ", "mixed Ｍｉｘｅｄ"}
	for _, in := range inputs {
		once := ToHalfWidthASCII(in)
		assert.Equal(t, once, ToHalfWidthASCII(once), "in %q", in)
	}
}

func TestSplitParenthetical(t *testing.T) {
	tests := []struct {
		name      string
		in        string
		normalize bool
		want      []Segment
	}{
		{
			name: "plain and parenthetical",
			in:   "abc(内服)def",
			want: []Segment{{"abc", false}, {"(内服)", true}, {"def", false}},
		},
		{
			name:      "normalized",
			in:        "ＡＢ（注）",
			normalize: true,
			want:      []Segment{{"AB", false}, {"(注)", true}},
		},
		{
			name: "nested",
			in:   "a（b(c)d）e",
			want: []Segment{{"a", false}, {"（b(c)d）", true}, {"e", false}},
		},
		{
			name: "mixed pair",
			in:   "x(y）z",
			want: []Segment{{"x", false}, {"(y）", true}, {"z", false}},
		},
		{
			name: "unclosed",
			in:   "abc(def",
			want: []Segment{{"abc(def", false}},
		},
		{
			name: "unclosed after group",
			in:   "(a)b(c",
			want: []Segment{{"(a)", true}, {"b(c", false}},
		},
		{
			name: "stray closer",
			in:   "a)b",
			want: []Segment{{"a)b", false}},
		},
		{
			name: "adjacent groups",
			in:   "(a)(b)",
			want: []Segment{{"(a)", true}, {"(b)", true}},
		},
		{
			name: "empty",
			in:   "",
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitParenthetical(tt.in, tt.normalize))
		})
	}
}

func TestSplitParentheticalRoundTrip(t *testing.T) {
	inputs := []string{
		"abc(内服)def",
		"（（深い）入れ子）の後",
		"閉じない（括弧",
		"))((",
		"ロキソニン錠６０ｍｇ（後発）",
		"普通の文",
	}
	for _, in := range inputs {
		assert.Equal(t, in, JoinSegments(SplitParenthetical(in, false)), "in %q", in)
	}
}

func TestNormalizeTokenizedNumber(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"12345円", "12,345円"},
		{"１２３４５円", "12,345円"},
		{"1,2345円", "12,345円"},
		{"-1234", "-1,234"},
		{"1234.56円", "1,234.56円"},
		{"単価なし", "単価なし"},
		{"99999999999999999999円", "99999999999999999999円"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeTokenizedNumber(tt.in), "in %q", tt.in)
	}
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "0", FormatNumber(0))
	assert.Equal(t, "120", FormatNumber(120))
	assert.Equal(t, "1,234,567", FormatNumber(1234567))
}
