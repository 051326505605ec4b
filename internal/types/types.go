package types

// Diagnostic pinpoints a rule that failed conversion.
type Diagnostic struct {
	Code     string // short machine name, e.g. "unbalanced-parentheses"
	Filename string
	Line     int    // line in the rules file, 0 when the rule did not come from a file
	Column   int    // 1-based column in the rule text, 0 when no single position applies
	Message  string
	RuleText string // the offending rule, for caret rendering
	Note     string
}

// Diagnostic codes.
const (
	CodeMalformedInput     = "malformed-input"
	CodeStructuralParse    = "malformed-expression"
	CodeIncompleteOperator = "incomplete-operator"
	CodeInvalidRuleFile    = "invalid-rules-file"
)
