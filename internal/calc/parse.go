package calc

import "fmt"

// precedence of operators on the shunting-yard stack.
// Factorial never reaches the stack since it binds tightest and is postfix.
func precedence(t Token) int {
	switch {
	case t.Kind == Negate:
		return 3
	case t.Text == "^":
		return 4
	case t.Text == "*", t.Text == "/", t.Text == "%":
		return 2
	case t.Text == "+", t.Text == "-":
		return 1
	default:
		return 0
	}
}

func rightAssoc(t Token) bool {
	return t.Kind == Negate || t.Text == "^"
}

// ToPostfix reorders infix tokens into postfix order using the
// shunting-yard algorithm. Precedence from tightest to loosest is:
//
//	!          postfix factorial
//	^          right-associative
//	-x         negation
//	* / %
//	+ -
//
// Parentheses group as usual. A '-' where an operand is expected negates.
func ToPostfix(tokens []Token) ([]Token, error) {
	out := make([]Token, 0, len(tokens))
	ops := make([]Token, 0, len(tokens))
	expectOperand := true

	for _, t := range tokens {
		switch t.Kind {
		case Number:
			if !expectOperand {
				return nil, fmt.Errorf("unexpected number %q at position %d: %w", t.Text, t.Pos, ErrSyntax)
			}
			out = append(out, t)
			expectOperand = false

		case LParen:
			if !expectOperand {
				return nil, fmt.Errorf("unexpected %q at position %d: %w", t.Text, t.Pos, ErrSyntax)
			}
			ops = append(ops, t)

		case RParen:
			if expectOperand {
				return nil, fmt.Errorf("unexpected %q at position %d: %w", t.Text, t.Pos, ErrSyntax)
			}
			matched := false
			for len(ops) > 0 {
				top := ops[len(ops)-1]
				ops = ops[:len(ops)-1]
				if top.Kind == LParen {
					matched = true
					break
				}
				out = append(out, top)
			}
			if !matched {
				return nil, fmt.Errorf("unbalanced %q at position %d: %w", t.Text, t.Pos, ErrSyntax)
			}

		case Factorial:
			if expectOperand {
				return nil, fmt.Errorf("unexpected %q at position %d: %w", t.Text, t.Pos, ErrSyntax)
			}
			out = append(out, t)

		case Negate, Binary:
			if expectOperand {
				if t.Text != "-" && t.Kind != Negate {
					return nil, fmt.Errorf("unexpected %q at position %d: %w", t.Text, t.Pos, ErrSyntax)
				}
				// Prefix operators pop nothing.
				ops = append(ops, Token{Kind: Negate, Text: "-", Pos: t.Pos})
				continue
			}
			for len(ops) > 0 {
				top := ops[len(ops)-1]
				if top.Kind == LParen {
					break
				}
				pt, pc := precedence(top), precedence(t)
				if pt < pc || (pt == pc && rightAssoc(t)) {
					break
				}
				out = append(out, top)
				ops = ops[:len(ops)-1]
			}
			ops = append(ops, t)
			expectOperand = true

		default:
			return nil, fmt.Errorf("unexpected %v at position %d: %w", t.Kind, t.Pos, ErrSyntax)
		}
	}

	if expectOperand {
		return nil, fmt.Errorf("unexpected end of expression: %w", ErrSyntax)
	}
	for len(ops) > 0 {
		top := ops[len(ops)-1]
		ops = ops[:len(ops)-1]
		if top.Kind == LParen {
			return nil, fmt.Errorf("unbalanced %q at position %d: %w", top.Text, top.Pos, ErrSyntax)
		}
		out = append(out, top)
	}
	return out, nil
}
