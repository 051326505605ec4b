package rule

import "fmt"

// MalformedInputError reports rule text that fails the tokenizer
// preconditions: unbalanced parentheses, or a reserved keyword embedded in
// an operand name where the tokenizer could not split it unambiguously.
type MalformedInputError struct {
	Rule   string // the raw rule text
	Offset int    // byte offset of the offending character or word, -1 when unknown
	Reason string
}

func (e *MalformedInputError) Error() string {
	return "malformed rule: " + e.Reason
}

// StructuralParseError reports a prefix token stream that cannot be
// consumed into exactly one expression tree: an operator starves for
// operands, or more than one root remains after consumption.
type StructuralParseError struct {
	Prefix []string
	Reason string
}

func (e *StructuralParseError) Error() string {
	return "malformed expression: " + e.Reason
}

// IncompleteOperatorError reports an operator node that is missing a
// required child at evaluation time.
type IncompleteOperatorError struct {
	Op string
}

func (e *IncompleteOperatorError) Error() string {
	return fmt.Sprintf("incomplete expression: %s is missing an operand", e.Op)
}
