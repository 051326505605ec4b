package rule

// InfixToPrefix converts a reformatted infix token stream into prefix
// notation. The caller is expected to have validated the stream first; see
// Validate.
//
// The conversion runs an operator-precedence stack over the reversed
// stream: operands go straight to the output, ')' is pushed as a boundary
// marker, '(' flushes stacked operators back to its matching marker, and an
// operator first flushes operators that bind strictly tighter than itself.
// Reversing the collected output yields the prefix stream, with equal
// precedence left associative.
func InfixToPrefix(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	var stack []string

	for i := len(tokens) - 1; i >= 0; i-- {
		tok := tokens[i]
		switch {
		case tok == TokenRParen:
			stack = append(stack, tok)
		case tok == TokenLParen:
			for len(stack) > 0 {
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if top == TokenRParen {
					break
				}
				out = append(out, top)
			}
		case isOperator(tok):
			for len(stack) > 0 {
				top := stack[len(stack)-1]
				if top == TokenRParen || precedence[top] <= precedence[tok] {
					break
				}
				out = append(out, top)
				stack = stack[:len(stack)-1]
			}
			stack = append(stack, tok)
		default:
			out = append(out, tok)
		}
	}

	// Flush the leftovers. A surviving boundary marker means the input had
	// unbalanced parentheses; everything below it is unreachable, matching
	// the guarantee that validation ran first.
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top == TokenRParen {
			break
		}
		out = append(out, top)
		stack = stack[:len(stack)-1]
	}

	reverse(out)
	return out
}

func reverse(tokens []string) {
	for i, j := 0, len(tokens)-1; i < j; i, j = i+1, j-1 {
		tokens[i], tokens[j] = tokens[j], tokens[i]
	}
}
