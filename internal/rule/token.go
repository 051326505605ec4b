package rule

// Reserved tokens of the rule language.
const (
	TokenAnd    = "AND"
	TokenOr     = "OR"
	TokenNot    = "NOT"
	TokenLParen = "("
	TokenRParen = ")"
)

// NotLiteralPrefix marks an operand that carries its own negation, as in
// NOT_ArcA. The pipeline treats such operands as atomic literals: the
// prefix converter never splits them and the evaluator flips the prefix
// instead of emitting a NOT node.
const NotLiteralPrefix = "NOT_"

// precedence orders the operators for infix-to-prefix conversion. NOT
// binds tightest, OR loosest.
var precedence = map[string]int{
	TokenNot: 3,
	TokenAnd: 2,
	TokenOr:  1,
}

// keywords are the reserved words that may not appear inside operand
// names.
var keywords = [...]string{TokenAnd, TokenOr, TokenNot}

func isOperator(tok string) bool {
	_, ok := precedence[tok]
	return ok
}
