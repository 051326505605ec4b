package rule

import "fmt"

// Node is the interface implemented by all expression tree nodes.
type Node interface {
	isNode()
	String() string
}

// OperandNode is a leaf holding an operand name. The name may carry the
// NOT_ prefix of a pre-negated literal.
type OperandNode struct {
	Name string
}

// NotNode negates its single child.
type NotNode struct {
	Child Node
}

// AndNode conjoins its two children.
type AndNode struct {
	Left  Node
	Right Node
}

// OrNode disjoins its two children.
type OrNode struct {
	Left  Node
	Right Node
}

func (OperandNode) isNode() {}
func (NotNode) isNode()     {}
func (AndNode) isNode()     {}
func (OrNode) isNode()      {}

func (n OperandNode) String() string { return n.Name }
func (n NotNode) String() string     { return "(NOT " + childString(n.Child) + ")" }
func (n AndNode) String() string {
	return "(" + childString(n.Left) + " AND " + childString(n.Right) + ")"
}
func (n OrNode) String() string {
	return "(" + childString(n.Left) + " OR " + childString(n.Right) + ")"
}

func childString(n Node) string {
	if n == nil {
		return "?"
	}
	return n.String()
}

// BuildTree consumes a prefix token stream from right to left with a value
// stack and returns the root of the resulting expression tree. AND and OR
// pop their left child first, then their right; NOT pops one child. A
// stream that underflows the stack or leaves more than one root is
// reported as *StructuralParseError.
func BuildTree(prefix []string) (Node, error) {
	if len(prefix) == 0 {
		return nil, &StructuralParseError{Prefix: prefix, Reason: "empty expression"}
	}

	var stack []Node
	pop := func() (Node, bool) {
		if len(stack) == 0 {
			return nil, false
		}
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return n, true
	}

	for i := len(prefix) - 1; i >= 0; i-- {
		switch tok := prefix[i]; tok {
		case TokenAnd, TokenOr:
			left, ok := pop()
			if !ok {
				return nil, &StructuralParseError{Prefix: prefix, Reason: tok + " has no operands"}
			}
			right, ok := pop()
			if !ok {
				return nil, &StructuralParseError{Prefix: prefix, Reason: tok + " is missing its second operand"}
			}
			if tok == TokenAnd {
				stack = append(stack, AndNode{Left: left, Right: right})
			} else {
				stack = append(stack, OrNode{Left: left, Right: right})
			}
		case TokenNot:
			child, ok := pop()
			if !ok {
				return nil, &StructuralParseError{Prefix: prefix, Reason: "NOT has no operand"}
			}
			stack = append(stack, NotNode{Child: child})
		default:
			stack = append(stack, OperandNode{Name: tok})
		}
	}

	if len(stack) != 1 {
		return nil, &StructuralParseError{
			Prefix: prefix,
			Reason: fmt.Sprintf("%d disconnected expressions remain after parsing", len(stack)),
		}
	}
	return stack[0], nil
}
