package rule

import "strings"

// Normalize validates raw rule text and returns its prefix notation as a
// space-joined token string.
func Normalize(raw string) (string, error) {
	prefix, err := normalize(raw)
	if err != nil {
		return "", err
	}
	return strings.Join(prefix, " "), nil
}

func normalize(raw string) ([]string, error) {
	if err := Validate(raw); err != nil {
		return nil, err
	}
	return InfixToPrefix(Tokens(raw)), nil
}

// ToDNF runs the full pipeline on raw rule text and returns its flattened
// disjunctive normal form.
func ToDNF(raw string) (string, error) {
	prefix, err := normalize(raw)
	if err != nil {
		return "", err
	}
	root, err := BuildTree(prefix)
	if err != nil {
		return "", err
	}
	return Evaluate(root)
}

// ToEquations converts one boolean rule into its R-matrix equations for
// the given target variable, one equation per DNF clause.
func ToEquations(target, raw string) ([]Equation, error) {
	dnf, err := ToDNF(raw)
	if err != nil {
		return nil, err
	}
	return Equations(target, dnf), nil
}
