package rule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReformat(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "already normalized",
			input: "b0001 AND b0002",
			want:  "b0001 AND b0002",
		},
		{
			name:  "parentheses get their own tokens",
			input: "(NOT(ArcA OR Fnr))",
			want:  "( NOT ( ArcA OR Fnr ) )",
		},
		{
			name:  "missing space before parenthesis",
			input: "A AND(B OR C)",
			want:  "A AND ( B OR C )",
		},
		{
			name:  "irregular whitespace collapses",
			input: "  A \t AND\n  B ",
			want:  "A AND B",
		},
		{
			name:  "pre-negated literal stays fused",
			input: "NOT_ArcA AND Fnr",
			want:  "NOT_ArcA AND Fnr",
		},
		{
			name:  "bare NOT keyword",
			input: "NOT ArcA",
			want:  "NOT ArcA",
		},
		{
			name:  "NOT glued to parenthesis",
			input: "NOT(ArcA)",
			want:  "NOT ( ArcA )",
		},
		{
			name:  "greater-than-zero comparison",
			input: "oxygen>0 AND Fnr",
			want:  "oxygen_gt_0 AND Fnr",
		},
		{
			name:  "less-than-zero comparison with spaces",
			input: "succinate < 0 OR Fnr",
			want:  "succinate_lt_0 OR Fnr",
		},
		{
			name:  "double-quoted multi-word operand",
			input: `"santa maria" AND luigi`,
			want:  "santa_maria AND luigi",
		},
		{
			name:  "single-quoted multi-word operand",
			input: "'sigma factor 70' OR rpoD",
			want:  "sigma_factor_70 OR rpoD",
		},
		{
			name:  "unclosed quote kept verbatim",
			input: `A AND "b`,
			want:  `A AND "b`,
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Reformat(tt.input)
			assert.Equal(t, tt.want, got)

			// reformatting must be idempotent
			assert.Equal(t, tt.want, Reformat(got))
		})
	}
}

func TestTokens(t *testing.T) {
	t.Parallel()
	tokens := Tokens("(NOT(ArcA OR Fnr))")
	assert.Equal(t, []string{"(", "NOT", "(", "ArcA", "OR", "Fnr", ")", ")"}, tokens)
}

func TestTokensEmpty(t *testing.T) {
	t.Parallel()
	assert.Empty(t, Tokens("   "))
}
