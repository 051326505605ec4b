package rule

import (
	"fmt"
	"strings"
	"unicode"
)

// Validate checks the tokenizer preconditions on raw rule text before any
// conversion runs: parenthesis counts must balance, and no reserved keyword
// may appear embedded in an operand name. A leading NOT_ marks a
// pre-negated operand and is exempt, but the remainder of the name is
// still checked. Violations are reported as *MalformedInputError with the
// byte offset of the offending parenthesis or word in the raw text.
func Validate(raw string) error {
	if err := validateParens(raw); err != nil {
		return err
	}
	return validateOperands(raw)
}

// validateParens scans the raw text outside quoted segments and reports
// the first unmatched parenthesis.
func validateParens(raw string) error {
	var open []int
	var quote byte
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if quote != 0 {
			if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '"', '\'':
			quote = c
		case '(':
			open = append(open, i)
		case ')':
			if len(open) == 0 {
				return &MalformedInputError{Rule: raw, Offset: i, Reason: "unmatched closing parenthesis"}
			}
			open = open[:len(open)-1]
		}
	}
	if len(open) > 0 {
		return &MalformedInputError{Rule: raw, Offset: open[len(open)-1], Reason: "opening parenthesis is never closed"}
	}
	return nil
}

// validateOperands splits the raw text into candidate operand words, with
// quoted segments merged the same way Reformat merges them, and rejects
// any non-keyword word that has a reserved keyword embedded in it. Such a
// word would be split mid-name by the keyword spacing pass.
func validateOperands(raw string) error {
	for _, w := range splitWords(raw) {
		if isOperator(w.text) {
			continue
		}
		name := strings.TrimPrefix(w.text, NotLiteralPrefix)
		for _, kw := range keywords {
			if strings.Contains(name, kw) {
				return &MalformedInputError{
					Rule:   raw,
					Offset: w.offset,
					Reason: fmt.Sprintf("operand %q contains the reserved keyword %s", w.text, kw),
				}
			}
		}
	}
	return nil
}

type word struct {
	text   string
	offset int
}

// splitWords returns the maximal runs of characters between whitespace and
// parentheses, each with the offset of its first byte. A quoted segment
// joins into the surrounding word with its inner spaces replaced by
// underscores.
func splitWords(raw string) []word {
	var words []word
	var cur strings.Builder
	start := -1
	flush := func() {
		if cur.Len() > 0 {
			words = append(words, word{text: cur.String(), offset: start})
			cur.Reset()
		}
		start = -1
	}
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch {
		case c == '"' || c == '\'':
			end := strings.IndexByte(raw[i+1:], c)
			if end < 0 {
				if start < 0 {
					start = i
				}
				cur.WriteByte(c)
				continue
			}
			if start < 0 {
				start = i
			}
			cur.WriteString(strings.Join(strings.Fields(raw[i+1:i+1+end]), "_"))
			i += end + 1
		case c == '(' || c == ')' || unicode.IsSpace(rune(c)):
			flush()
		default:
			if start < 0 {
				start = i
			}
			cur.WriteByte(c)
		}
	}
	flush()
	return words
}
