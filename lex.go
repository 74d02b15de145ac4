package rpn

import (
	"io"
	"strconv"
	"strings"
)

// Token is one element of a postfix expression.
type Token struct {
	// Text is the literal text of the token: a number as it was written, or
	// a single operator rune.
	Text string
	// Kind is the kind of token the converter produced. Evaluation decides
	// what a token means from its text alone, so Kind is informational.
	Kind TokenKind
	// Pos is the column of the first rune of the token in the infix source,
	// counting from 1. Tokens that did not come from Parse may leave it 0.
	Pos int
}

func (t Token) String() string {
	return t.Kind.String() + ":" + t.Text + "@" + strconv.Itoa(t.Pos)
}

// TokenKind is the kind of a token.
type TokenKind int8

const (
	TokenNone TokenKind = iota
	// TokenNum is a numeric literal. Its text is not validated until
	// evaluation.
	TokenNum
	// TokenOp is a binary operator.
	TokenOp
)

func (k TokenKind) String() string {
	switch k {
	case TokenNone:
		return "None"
	case TokenNum:
		return "Num"
	case TokenOp:
		return "Op"
	default:
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Operators contains the runes which are considered to be binary operators.
const Operators = "+-*/"

// Digits contains the runes which make up numeric literals.
const Digits = "0123456789."

func byteidcs(s string) []string {
	v := make([]string, len(s))
	for i, r := range s {
		v[i] = string(r)
	}
	return v
}

var operstrs = byteidcs(Operators)

// lexer reads runes from the source and accumulates numeric literals.
type lexer struct {
	src io.RuneScanner
	buf strings.Builder
	// rune is the column of the last rune read.
	rune int
	// start is the column at which the buffered number began.
	start int
}

func lex(src io.RuneScanner) *lexer {
	return &lexer{src: src}
}

// readRune reads a rune from the src and updates the lexer's position info.
func (l *lexer) readRune() (rune, error) {
	r, sz, err := l.src.ReadRune()
	if sz > 0 {
		l.rune++
	}
	return r, err
}

// write appends the last rune read to the number being scanned.
func (l *lexer) write(r rune) {
	if l.buf.Len() == 0 {
		l.start = l.rune
	}
	l.buf.WriteRune(r)
}

// flush returns the number being scanned, if any, and resets the buffer.
func (l *lexer) flush() (Token, bool) {
	if l.buf.Len() == 0 {
		return Token{}, false
	}
	tok := Token{Text: l.buf.String(), Kind: TokenNum, Pos: l.start}
	l.buf.Reset()
	return tok, true
}

// opToken returns the token for an operator rune at col.
func opToken(r rune, col int) Token {
	if k := strings.IndexRune(Operators, r); k >= 0 {
		return Token{Text: operstrs[k], Kind: TokenOp, Pos: col}
	}
	return Token{Text: string(r), Kind: TokenOp, Pos: col}
}
