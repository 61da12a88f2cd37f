// Package calc evaluates integer expressions over [bigint.BigInteger].
package calc

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/govalues/bigint"
	"github.com/govalues/bigint/internal/config"
)

// ErrSyntax is returned for malformed expressions.
var ErrSyntax = errors.New("syntax error")

// Evaluator evaluates expressions in a fixed notation.
// It is safe for concurrent use.
type Evaluator struct {
	notation string
	log      logrus.FieldLogger
}

// NewEvaluator returns an evaluator for the given notation
// ([config.NotationInfix] or [config.NotationPostfix]).
// A nil logger means the standard logrus logger.
func NewEvaluator(notation string, log logrus.FieldLogger) (*Evaluator, error) {
	switch notation {
	case config.NotationInfix, config.NotationPostfix:
	default:
		return nil, fmt.Errorf("unknown notation %q", notation)
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Evaluator{notation: notation, log: log}, nil
}

// Notation returns the notation the evaluator reads.
func (e *Evaluator) Notation() string {
	return e.notation
}

// Eval evaluates expr and returns its value.
// Evaluation stops at the first failing operation.
func (e *Evaluator) Eval(expr string) (bigint.BigInteger, error) {
	var (
		rpn []Token
		err error
	)
	switch e.notation {
	case config.NotationPostfix:
		rpn, err = TokenizePostfix(expr)
	default:
		var tokens []Token
		tokens, err = Tokenize(expr)
		if err == nil {
			rpn, err = ToPostfix(tokens)
		}
	}
	if err != nil {
		return bigint.BigInteger{}, fmt.Errorf("evaluating %q: %w", expr, err)
	}

	e.log.WithFields(logrus.Fields{"expr": expr, "tokens": len(rpn)}).Debug("evaluating")
	d, err := e.run(rpn)
	if err != nil {
		return bigint.BigInteger{}, fmt.Errorf("evaluating %q: %w", expr, err)
	}
	return d, nil
}

// Eval evaluates an infix expression with the standard logger.
func Eval(expr string) (bigint.BigInteger, error) {
	e, _ := NewEvaluator(config.NotationInfix, nil)
	return e.Eval(expr)
}

func (e *Evaluator) run(rpn []Token) (bigint.BigInteger, error) {
	stack := make([]bigint.BigInteger, 0, len(rpn))
	for _, t := range rpn {
		switch t.Kind {
		case Number:
			d, err := bigint.Parse(t.Text)
			if err != nil {
				return bigint.BigInteger{}, fmt.Errorf("at position %d: %w", t.Pos, err)
			}
			stack = append(stack, d)

		case Negate, Factorial:
			if len(stack) < 1 {
				return bigint.BigInteger{}, fmt.Errorf("%q at position %d: not enough operands: %w", t.Text, t.Pos, ErrSyntax)
			}
			x := stack[len(stack)-1]
			var (
				z   bigint.BigInteger
				err error
			)
			if t.Kind == Negate {
				z = x.Neg()
			} else {
				z, err = x.Factorial()
			}
			if err != nil {
				return bigint.BigInteger{}, fmt.Errorf("at position %d: %w", t.Pos, err)
			}
			e.log.WithFields(logrus.Fields{"op": t.Kind.String(), "operand": x.Prec()}).Trace("applied")
			stack[len(stack)-1] = z

		case Binary:
			if len(stack) < 2 {
				return bigint.BigInteger{}, fmt.Errorf("%q at position %d: not enough operands: %w", t.Text, t.Pos, ErrSyntax)
			}
			x, y := stack[len(stack)-2], stack[len(stack)-1]
			z, err := apply(t.Text, x, y)
			if err != nil {
				return bigint.BigInteger{}, fmt.Errorf("at position %d: %w", t.Pos, err)
			}
			e.log.WithFields(logrus.Fields{"op": t.Text, "left": x.Prec(), "right": y.Prec()}).Trace("applied")
			stack = append(stack[:len(stack)-2], z)

		default:
			return bigint.BigInteger{}, fmt.Errorf("unexpected %v at position %d: %w", t.Kind, t.Pos, ErrSyntax)
		}
	}
	if len(stack) != 1 {
		return bigint.BigInteger{}, fmt.Errorf("%d values left on stack, expected exactly one: %w", len(stack), ErrSyntax)
	}
	return stack[0], nil
}

func apply(op string, x, y bigint.BigInteger) (bigint.BigInteger, error) {
	switch op {
	case "+":
		return x.Add(y), nil
	case "-":
		return x.Sub(y), nil
	case "*":
		return x.Mul(y), nil
	case "/":
		return x.Quo(y)
	case "%":
		return x.Rem(y)
	case "^":
		return x.Pow(y)
	default:
		return bigint.BigInteger{}, fmt.Errorf("unknown operator %q: %w", op, ErrSyntax)
	}
}
