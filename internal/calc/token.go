package calc

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/width"
)

// Kind classifies a token.
// Binary covers + - * / % ^, Negate is unary minus and Factorial is postfix !.
type Kind int

const (
	Number Kind = iota
	Binary
	Negate
	Factorial
	LParen
	RParen
)

func (k Kind) String() string {
	switch k {
	case Number:
		return "number"
	case Binary:
		return "operator"
	case Negate:
		return "negation"
	case Factorial:
		return "factorial"
	case LParen:
		return "("
	case RParen:
		return ")"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Token is a lexical element of an expression.
// Pos is the rune offset of the token in the input.
type Token struct {
	Kind Kind
	Text string
	Pos  int
}

func (t Token) String() string {
	return t.Text
}

// aliases maps typographic operators to their ASCII forms.
var aliases = map[rune]rune{
	'×': '*',
	'÷': '/',
	'−': '-',
	'·': '*',
}

// normalize folds full-width digits and operators to their narrow forms,
// so that "１２＋３" reads as "12+3".
func normalize(s string) string {
	s = width.Fold.String(s)
	return strings.Map(func(r rune) rune {
		if a, ok := aliases[r]; ok {
			return a
		}
		return r
	}, s)
}

// Tokenize splits an infix expression into tokens.
// Every '-' is returned as [Binary]; the parser decides whether it negates.
func Tokenize(input string) ([]Token, error) {
	runes := []rune(normalize(input))
	tokens := make([]Token, 0, len(runes))
	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case r >= '0' && r <= '9':
			j := i
			for j < len(runes) && runes[j] >= '0' && runes[j] <= '9' {
				j++
			}
			tokens = append(tokens, Token{Kind: Number, Text: string(runes[i:j]), Pos: i})
			i = j
		case strings.ContainsRune("+-*/%^", r):
			tokens = append(tokens, Token{Kind: Binary, Text: string(r), Pos: i})
			i++
		case r == '!':
			tokens = append(tokens, Token{Kind: Factorial, Text: "!", Pos: i})
			i++
		case r == '(':
			tokens = append(tokens, Token{Kind: LParen, Text: "(", Pos: i})
			i++
		case r == ')':
			tokens = append(tokens, Token{Kind: RParen, Text: ")", Pos: i})
			i++
		default:
			return nil, fmt.Errorf("invalid character %q at position %d: %w", r, i, ErrSyntax)
		}
	}
	if len(tokens) == 0 {
		return nil, fmt.Errorf("empty expression: %w", ErrSyntax)
	}
	return tokens, nil
}

// TokenizePostfix splits a whitespace-separated postfix expression.
// Numbers may carry a leading '-'; "neg" and "~" denote negation.
func TokenizePostfix(input string) ([]Token, error) {
	fields := strings.Fields(normalize(input))
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty expression: %w", ErrSyntax)
	}
	tokens := make([]Token, 0, len(fields))
	for i, f := range fields {
		switch {
		case len(f) == 1 && strings.Contains("+-*/%^", f):
			tokens = append(tokens, Token{Kind: Binary, Text: f, Pos: i})
		case f == "!":
			tokens = append(tokens, Token{Kind: Factorial, Text: f, Pos: i})
		case f == "neg" || f == "~":
			tokens = append(tokens, Token{Kind: Negate, Text: f, Pos: i})
		case isNumber(f):
			tokens = append(tokens, Token{Kind: Number, Text: f, Pos: i})
		default:
			return nil, fmt.Errorf("invalid token %q at position %d: %w", f, i, ErrSyntax)
		}
	}
	return tokens, nil
}

func isNumber(s string) bool {
	s = strings.TrimPrefix(s, "-")
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
