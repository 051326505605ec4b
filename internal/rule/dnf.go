package rule

import (
	"fmt"
	"strings"
)

// Separators of the flattened DNF form: clauses are joined by orSep,
// literals within a clause by andSep.
const (
	andSep = " AND "
	orSep  = " OR "
)

// Evaluate reduces an expression tree to its flattened disjunctive normal
// form: clauses joined by OR, literals within a clause joined by AND, with
// no parentheses and no bare NOT tokens left. Negation is folded into the
// literals via the NOT_ prefix.
//
// Distributing AND over OR multiplies clause lists, so deeply nested
// alternations can grow the result exponentially. That cost is inherent to
// DNF expansion; the evaluator only drops clauses that repeat textually
// within a single distribution step.
func Evaluate(root Node) (string, error) {
	if root == nil {
		return "", &StructuralParseError{Reason: "empty expression"}
	}
	switch n := root.(type) {
	case OperandNode:
		return n.Name, nil
	case NotNode:
		if n.Child == nil {
			return "", &IncompleteOperatorError{Op: TokenNot}
		}
		child, err := Evaluate(n.Child)
		if err != nil {
			return "", err
		}
		return negate(child), nil
	case AndNode:
		if n.Left == nil || n.Right == nil {
			return "", &IncompleteOperatorError{Op: TokenAnd}
		}
		left, err := Evaluate(n.Left)
		if err != nil {
			return "", err
		}
		right, err := Evaluate(n.Right)
		if err != nil {
			return "", err
		}
		return conjoin(left, right), nil
	case OrNode:
		if n.Left == nil || n.Right == nil {
			return "", &IncompleteOperatorError{Op: TokenOr}
		}
		left, err := Evaluate(n.Left)
		if err != nil {
			return "", err
		}
		right, err := Evaluate(n.Right)
		if err != nil {
			return "", err
		}
		return left + orSep + right, nil
	default:
		return "", fmt.Errorf("unexpected node type %T", root)
	}
}

// negate applies De Morgan's laws to an already-reduced DNF string: AND and
// OR separators swap roles, pre-negated literals lose their NOT_ prefix,
// and plain literals gain one.
func negate(dnf string) string {
	fields := strings.Fields(dnf)
	for i, f := range fields {
		switch {
		case f == TokenAnd:
			fields[i] = TokenOr
		case f == TokenOr:
			fields[i] = TokenAnd
		case strings.HasPrefix(f, NotLiteralPrefix):
			fields[i] = strings.TrimPrefix(f, NotLiteralPrefix)
		default:
			fields[i] = NotLiteralPrefix + f
		}
	}
	return strings.Join(fields, " ")
}

// conjoin combines two reduced subexpressions under AND. When neither side
// carries OR clauses the two literal lists join directly. Otherwise the
// distributive law expands the conjunction into the cross product of the
// clause lists, keeping the first occurrence of any clause that repeats
// textually.
func conjoin(left, right string) string {
	if !strings.Contains(left, orSep) && !strings.Contains(right, orSep) {
		return left + andSep + right
	}
	lcs := strings.Split(left, orSep)
	rcs := strings.Split(right, orSep)
	seen := make(map[string]struct{}, len(lcs)*len(rcs))
	product := make([]string, 0, len(lcs)*len(rcs))
	for _, lc := range lcs {
		for _, rc := range rcs {
			clause := lc + andSep + rc
			if _, ok := seen[clause]; ok {
				continue
			}
			seen[clause] = struct{}{}
			product = append(product, clause)
		}
	}
	return strings.Join(product, orSep)
}

// Clauses splits a DNF string into its OR-separated clauses.
func Clauses(dnf string) []string {
	if dnf == "" {
		return nil
	}
	return strings.Split(dnf, orSep)
}

// ClauseLiterals splits a single clause into its literals, dropping the
// AND separators.
func ClauseLiterals(clause string) []string {
	fields := strings.Fields(clause)
	lits := make([]string, 0, (len(fields)+1)/2)
	for _, f := range fields {
		if f != TokenAnd {
			lits = append(lits, f)
		}
	}
	return lits
}
