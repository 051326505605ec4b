package rule

import (
	"strings"
	"unicode"
)

// Reformat normalizes raw rule text into a single-space-delimited token
// stream in which every parenthesis, operator keyword, and operand is its
// own token. Quoted multi-word operand names are merged with underscores,
// all other whitespace is stripped before structural spacing is reinserted,
// and the comparison suffixes >0 and <0 are rewritten to the operand-safe
// forms _gt_0 and _lt_0. Reformatting already-reformatted text is a no-op.
//
// Reformat never fails. Text that cannot tokenize cleanly, such as an
// operand with an embedded keyword, surfaces later through Validate or the
// tree builder.
func Reformat(raw string) string {
	s := mergeQuoted(raw)
	s = stripSpaces(s)
	s = strings.ReplaceAll(s, ">0", "_gt_0")
	s = strings.ReplaceAll(s, "<0", "_lt_0")
	s = strings.ReplaceAll(s, TokenLParen, " ( ")
	s = strings.ReplaceAll(s, TokenRParen, " ) ")
	s = strings.ReplaceAll(s, TokenAnd, " AND ")
	s = strings.ReplaceAll(s, TokenOr, " OR ")
	s = spaceNotKeywords(s)
	return strings.Join(strings.Fields(s), " ")
}

// Tokens reformats raw rule text and splits it into tokens.
func Tokens(raw string) []string {
	return strings.Fields(Reformat(raw))
}

// mergeQuoted joins multi-word operand names enclosed in matching single or
// double quotes into one underscore-separated identifier. An unclosed
// quote is kept as an ordinary character.
func mergeQuoted(s string) string {
	if !strings.ContainsAny(s, `"'`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		c := s[i]
		if c != '"' && c != '\'' {
			b.WriteByte(c)
			i++
			continue
		}
		end := strings.IndexByte(s[i+1:], c)
		if end < 0 {
			b.WriteByte(c)
			i++
			continue
		}
		b.WriteString(strings.Join(strings.Fields(s[i+1:i+1+end]), "_"))
		i += end + 2
	}
	return b.String()
}

func stripSpaces(s string) string {
	if !strings.ContainsFunc(s, unicode.IsSpace) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if !unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// spaceNotKeywords surrounds every NOT keyword with spaces, except when it
// is immediately followed by an underscore: NOT_<name> is a pre-negated
// operand and stays fused as a single token.
func spaceNotKeywords(s string) string {
	if !strings.Contains(s, TokenNot) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 8)
	for i := 0; i < len(s); {
		if !strings.HasPrefix(s[i:], TokenNot) {
			b.WriteByte(s[i])
			i++
			continue
		}
		if i+len(TokenNot) < len(s) && s[i+len(TokenNot)] == '_' {
			b.WriteString(NotLiteralPrefix)
			i += len(NotLiteralPrefix)
			continue
		}
		b.WriteString(" NOT ")
		i += len(TokenNot)
	}
	return b.String()
}
