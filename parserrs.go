package rpn

import (
	"errors"
	"strconv"
)

// Each error type in this package unwraps to one of these, so callers can
// classify failures with errors.Is.
var (
	ErrInvalidCharacter     = errors.New("invalid character in expression")
	ErrMismatchedParens     = errors.New("mismatched parentheses")
	ErrInsufficientOperands = errors.New("insufficient operands")
	ErrDivisionByZero       = errors.New("division by zero")
	ErrInvalidToken         = errors.New("invalid token")
	ErrInvalidExpression    = errors.New("invalid expression")
)

// CharError is an error indicating a rune that cannot appear in an
// expression. Whitespace is such a rune. It implements InputError.
type CharError struct {
	// Col is the position of the rune.
	Col int
	// Char is the rune that was not understood.
	Char rune
}

func (err *CharError) Error() string {
	return errpos(err.Col, "invalid character in expression: "+strconv.QuoteRune(err.Char))
}

func (err *CharError) Pos() int {
	return err.Col
}

func (err *CharError) Unwrap() error {
	return ErrInvalidCharacter
}

// BracketError is an error indicating unbalanced parentheses in the input.
// It implements InputError.
type BracketError struct {
	// Col is the position of the unmatched bracket.
	Col int
	// Bracket is the unmatched bracket, either "(" or ")".
	Bracket string
}

func (err *BracketError) Error() string {
	if err.Bracket == "(" {
		return errpos(err.Col, "mismatched parentheses: open bracket ( with no close bracket")
	}
	return errpos(err.Col, "mismatched parentheses: close bracket "+err.Bracket+" with no open bracket")
}

func (err *BracketError) Pos() int {
	return err.Col
}

func (err *BracketError) Unwrap() error {
	return ErrMismatchedParens
}

// errpos is a shortcut to create an error message with a position. Positions
// less than 1 are unknown and omitted.
func errpos(pos int, msg string) string {
	if pos < 1 {
		return msg
	}
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// a particular character or token of the input implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error. It is 0 for
	// tokens which did not come from Parse.
	Pos() int
}

var (
	_ InputError = (*CharError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*OperandError)(nil)
	_ InputError = (*ZeroDivisionError)(nil)
	_ InputError = (*TokenError)(nil)
)
