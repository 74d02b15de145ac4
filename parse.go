package rpn

import (
	"errors"
	"io"
	"strings"
)

// Expr is an expression converted to postfix order. An Expr is immutable and
// may be evaluated any number of times.
type Expr struct {
	// toks is the postfix token sequence.
	toks []Token
}

// opEntry is a pending operator or bracket on the conversion stack.
type opEntry struct {
	op  rune
	col int
}

// yard holds the state of a single conversion.
type yard struct {
	scan *lexer
	out  []Token
	ops  []opEntry
}

// Parse converts an infix expression to postfix order. The source may contain
// only digits, decimal points, the operators in Operators, and parentheses.
// Numbers are not validated; a malformed number like 1.2.3 is reported when
// the expression is evaluated. An empty source gives an empty expression.
func Parse(src io.RuneScanner) (*Expr, error) {
	y := yard{scan: lex(src)}
	for {
		r, err := y.scan.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		switch {
		case strings.ContainsRune(Digits, r):
			y.scan.write(r)
		case r == '(':
			// An open bracket doesn't end a number, so 2(3) scans as 23.
			y.push(r)
		case r == ')':
			y.flush()
			y.closeBracket()
		case strings.ContainsRune(Operators, r):
			y.flush()
			p := precedence(r)
			for len(y.ops) > 0 && precedence(y.top()) >= p {
				y.emit()
			}
			y.push(r)
		default:
			return nil, &CharError{Col: y.scan.rune, Char: r}
		}
	}
	y.flush()
	for len(y.ops) > 0 {
		e := y.pop()
		if e.op == '(' || e.op == ')' {
			return nil, &BracketError{Col: e.col, Bracket: string(e.op)}
		}
		y.out = append(y.out, opToken(e.op, e.col))
	}
	return &Expr{toks: y.out}, nil
}

// ParseString is a shortcut to parse an expression from a string.
func ParseString(src string) (*Expr, error) {
	return Parse(strings.NewReader(src))
}

// flush moves the number being scanned, if any, to the output.
func (y *yard) flush() {
	if tok, ok := y.scan.flush(); ok {
		y.out = append(y.out, tok)
	}
}

// closeBracket moves operators to the output up to the matching open bracket.
// With no open bracket to match, the close bracket stays on the stack so that
// the end of the conversion reports it.
func (y *yard) closeBracket() {
	for len(y.ops) > 0 {
		switch y.top() {
		case '(':
			y.pop()
			return
		case ')':
			y.push(')')
			return
		}
		y.emit()
	}
	y.push(')')
}

func (y *yard) push(r rune) {
	y.ops = append(y.ops, opEntry{op: r, col: y.scan.rune})
}

func (y *yard) pop() opEntry {
	e := y.ops[len(y.ops)-1]
	y.ops = y.ops[:len(y.ops)-1]
	return e
}

func (y *yard) top() rune {
	return y.ops[len(y.ops)-1].op
}

// emit moves the top of the stack to the output.
func (y *yard) emit() {
	e := y.pop()
	y.out = append(y.out, opToken(e.op, e.col))
}

// precedence gives the binding strength of an operator. Brackets have the
// lowest so that no operator pops them.
func precedence(op rune) int {
	switch op {
	case '*', '/':
		return 2
	case '+', '-':
		return 1
	default:
		return 0
	}
}

// Tokens returns a copy of the postfix token sequence.
func (e *Expr) Tokens() []Token {
	return append(([]Token)(nil), e.toks...)
}

// Len returns the number of tokens in the expression.
func (e *Expr) Len() int {
	return len(e.toks)
}

// String renders the expression in postfix notation with tokens separated by
// single spaces, e.g. "1 2 + 3 *".
func (e *Expr) String() string {
	var b strings.Builder
	for i, tok := range e.toks {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(tok.Text)
	}
	return b.String()
}
