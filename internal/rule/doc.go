// Package rule implements the boolean rule normalization pipeline that
// turns regulatory logic into R-matrix equations.
//
// A raw rule such as "(NOT(ArcA OR Fnr))" passes through five stages:
// reformatting into a uniformly spaced token stream, validation of the
// tokenizer preconditions, infix-to-prefix conversion with an
// operator-precedence stack, construction of a binary expression tree, and
// recursive reduction of that tree to disjunctive normal form. Each DNF
// clause then renders as one equation of signed literal terms plus the
// target variable.
//
// Supported operators:
//   - NOT (binds tightest)
//   - AND
//   - OR (binds loosest)
//
// Out of scope:
//   - arithmetic comparisons beyond the fixed >0 / <0 operand rewriting
//   - DNF minimization beyond exact-duplicate-clause removal
//   - validation of operand names against an external namespace
package rule
