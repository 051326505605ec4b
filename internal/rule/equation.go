package rule

import (
	"strconv"
	"strings"
)

// Term is one signed operand of an R-matrix equation.
type Term struct {
	Coeff   int
	Literal string
}

// Equation is one implication clause of the R-matrix: every literal of a
// DNF clause with coefficient -1, followed by the target variable with
// coefficient +1. A clause with n literals therefore produces n+1 terms.
type Equation struct {
	Target string
	Terms  []Term
}

// String renders the equation in the emitter wire format, for example
// "-1 NOT_ArcA -1 NOT_Fnr +1 b0001". Coefficients always carry an explicit
// sign.
func (e Equation) String() string {
	var b strings.Builder
	for i, t := range e.Terms {
		if i > 0 {
			b.WriteByte(' ')
		}
		if t.Coeff >= 0 {
			b.WriteByte('+')
		}
		b.WriteString(strconv.Itoa(t.Coeff))
		b.WriteByte(' ')
		b.WriteString(t.Literal)
	}
	return b.String()
}

// Equations renders every clause of a DNF string as one equation for the
// given target variable, preserving clause order. Duplicate clauses that
// survived evaluation yield duplicate equations.
func Equations(target, dnf string) []Equation {
	clauses := Clauses(dnf)
	eqs := make([]Equation, 0, len(clauses))
	for _, clause := range clauses {
		lits := ClauseLiterals(clause)
		terms := make([]Term, 0, len(lits)+1)
		for _, lit := range lits {
			terms = append(terms, Term{Coeff: -1, Literal: lit})
		}
		terms = append(terms, Term{Coeff: 1, Literal: target})
		eqs = append(eqs, Equation{Target: target, Terms: terms})
	}
	return eqs
}
