package rpn

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"
)

// evaluator holds the operand stack for a single evaluation.
type evaluator struct {
	stack []float64
}

func (ev *evaluator) push(x float64) {
	ev.stack = append(ev.stack, x)
}

// pop removes the top from the stack and returns it.
func (ev *evaluator) pop() float64 {
	r := ev.stack[len(ev.stack)-1]
	ev.stack = ev.stack[:len(ev.stack)-1]
	return r
}

// top is a shortcut to modify the top element of the stack in place.
func (ev *evaluator) top() *float64 {
	return &ev.stack[len(ev.stack)-1]
}

// num parses the text of a numeric token. Literals too large for a float64
// become infinities rather than errors.
func num(s string) (float64, bool) {
	x, err := strconv.ParseFloat(s, 64)
	switch {
	case err == nil: // do nothing
	case errors.Is(err, strconv.ErrRange):
		// ParseFloat has already given the nearest value, ±Inf or 0.
	default:
		return 0, false
	}
	return x, true
}

// step applies one token to the stack.
func (ev *evaluator) step(tok Token) error {
	if x, ok := num(tok.Text); ok {
		ev.push(x)
		return nil
	}
	if utf8.RuneCountInString(tok.Text) != 1 {
		return &TokenError{Col: tok.Pos, Text: tok.Text}
	}
	// Any other single rune is a binary operator, so it needs two operands
	// before we can tell whether it is one we know.
	if len(ev.stack) < 2 {
		return &OperandError{Col: tok.Pos, Op: tok.Text, Have: len(ev.stack)}
	}
	r := ev.pop()
	l := ev.top()
	switch tok.Text {
	case "+":
		*l += r
	case "-":
		*l -= r
	case "*":
		*l *= r
	case "/":
		if r == 0 {
			return &ZeroDivisionError{Col: tok.Pos, X: *l}
		}
		*l /= r
	default:
		return &TokenError{Col: tok.Pos, Text: tok.Text}
	}
	return nil
}

// EvalTokens evaluates a sequence of tokens in postfix order. Each token is
// either a number, which is pushed to an operand stack, or one of the
// operators in Operators, which replaces the top two operands with its
// result. The first pop is the right-hand operand. Exactly one value must
// remain once all tokens are consumed. On error, the result is 0.
func EvalTokens(toks []Token) (float64, error) {
	ev := evaluator{stack: make([]float64, 0, len(toks)/2+1)}
	for _, tok := range toks {
		if err := ev.step(tok); err != nil {
			return 0, err
		}
	}
	if len(ev.stack) != 1 {
		return 0, &ShapeError{Len: len(ev.stack)}
	}
	return ev.stack[0], nil
}

// Eval evaluates the expression. The result depends only on the expression.
func (e *Expr) Eval() (float64, error) {
	return EvalTokens(e.toks)
}

// Eval is a shortcut to parse an expression and return its result.
func Eval(src io.RuneScanner) (float64, error) {
	a, err := Parse(src)
	if err != nil {
		return 0, err
	}
	return a.Eval()
}

// EvalString is a shortcut to parse and evaluate a string expression.
func EvalString(src string) (float64, error) {
	return Eval(strings.NewReader(src))
}

// OperandError is an error indicating an operator evaluated with fewer than
// two values on the operand stack, as in "1+" or "+". It implements
// InputError.
type OperandError struct {
	// Col is the position of the operator.
	Col int
	// Op is the operator.
	Op string
	// Have is the number of operands that were available.
	Have int
}

func (err *OperandError) Error() string {
	return errpos(err.Col, "invalid expression: operator "+err.Op+" needs 2 operands, have "+strconv.Itoa(err.Have))
}

func (err *OperandError) Pos() int {
	return err.Col
}

func (err *OperandError) Unwrap() error {
	return ErrInsufficientOperands
}

// ZeroDivisionError is an error indicating a division whose right-hand
// operand is zero. It implements InputError.
type ZeroDivisionError struct {
	// Col is the position of the division operator.
	Col int
	// X is the dividend.
	X float64
}

func (err *ZeroDivisionError) Error() string {
	return errpos(err.Col, "division by zero: "+strconv.FormatFloat(err.X, 'g', -1, 64)+"/0")
}

func (err *ZeroDivisionError) Pos() int {
	return err.Col
}

func (err *ZeroDivisionError) Unwrap() error {
	return ErrDivisionByZero
}

// TokenError is an error indicating a token that is neither a number nor an
// operator, like the malformed number "1.2.3". It implements InputError.
type TokenError struct {
	// Col is the position of the token.
	Col int
	// Text is the text of the token.
	Text string
}

func (err *TokenError) Error() string {
	return errpos(err.Col, "invalid token "+strconv.Quote(err.Text))
}

func (err *TokenError) Pos() int {
	return err.Col
}

func (err *TokenError) Unwrap() error {
	return ErrInvalidToken
}

// ShapeError is an error indicating that evaluation did not end with exactly
// one value, e.g. because the expression was empty or had two numbers with
// no operator between them.
type ShapeError struct {
	// Len is the number of values left on the operand stack.
	Len int
}

func (err *ShapeError) Error() string {
	if err.Len == 0 {
		return "invalid expression: no value"
	}
	return "invalid expression: " + strconv.Itoa(err.Len) + " values without operators"
}

func (err *ShapeError) Unwrap() error {
	return ErrInvalidExpression
}
