package rule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAccepts(t *testing.T) {
	t.Parallel()
	valid := []string{
		"A AND B",
		"(NOT(ArcA OR Fnr))",
		"NOT_ArcA AND NOT_Fnr",
		"((a OR b) AND (c OR d))",
		"oxygen>0 AND Fnr",
		`"santa maria" AND luigi`,
		"dandelion OR nor1", // lowercase never collides with keywords
		"",
	}
	for _, raw := range valid {
		assert.NoError(t, Validate(raw), "rule %q", raw)
	}
}

func TestValidateUnbalancedParens(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		input      string
		wantOffset int
	}{
		{
			name:       "unclosed opening parenthesis",
			input:      "(A AND B",
			wantOffset: 0,
		},
		{
			name:       "innermost unclosed parenthesis wins",
			input:      "(() (A",
			wantOffset: 4,
		},
		{
			name:       "unmatched closing parenthesis",
			input:      "A AND B)",
			wantOffset: 7,
		},
		{
			name:       "close before open",
			input:      ") A (",
			wantOffset: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.input)
			require.Error(t, err)

			var malformed *MalformedInputError
			require.ErrorAs(t, err, &malformed)
			assert.Equal(t, tt.wantOffset, malformed.Offset)
			assert.Equal(t, tt.input, malformed.Rule)
		})
	}
}

func TestValidateEmbeddedKeywords(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		input      string
		wantOffset int
	}{
		{
			name:       "AND embedded in operand",
			input:      "x AND DANDELION",
			wantOffset: 6,
		},
		{
			name:       "OR embedded in operand",
			input:      "FLOR AND x",
			wantOffset: 0,
		},
		{
			name:       "NOT embedded without underscore",
			input:      "NOTCH1 OR x",
			wantOffset: 0,
		},
		{
			name:       "keyword after the NOT_ prefix",
			input:      "NOT_DANDELION",
			wantOffset: 0,
		},
		{
			name:       "keyword hidden inside quotes",
			input:      `"high OR low" AND x`,
			wantOffset: 0,
		},
		{
			name:       "glued conjunction is ambiguous",
			input:      "AANDB",
			wantOffset: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.input)
			require.Error(t, err)

			var malformed *MalformedInputError
			require.ErrorAs(t, err, &malformed)
			assert.Equal(t, tt.wantOffset, malformed.Offset)
			assert.Contains(t, malformed.Error(), "reserved keyword")
		})
	}
}

func TestValidateQuotedParensIgnored(t *testing.T) {
	t.Parallel()
	// parentheses inside quoted names do not count toward balancing
	assert.NoError(t, Validate(`"p(x)" AND y`))
}

func TestSplitWords(t *testing.T) {
	t.Parallel()
	words := splitWords(`x AND "santa maria" (y)`)

	texts := make([]string, 0, len(words))
	for _, w := range words {
		texts = append(texts, w.text)
	}
	assert.Equal(t, []string{"x", "AND", "santa_maria", "y"}, texts)
	assert.Equal(t, 0, words[0].offset)
	assert.Equal(t, 2, words[1].offset)
	assert.Equal(t, 6, words[2].offset)
	assert.Equal(t, 21, words[3].offset)
}
