// Package rpn implements a floating-point calculator for infix arithmetic.
//
// Expressions are written with digits, decimal points, the operators + - * /,
// and parentheses, with no spaces: "2*(3+4)-5". Parse converts an expression
// to postfix (Reverse Polish) order using the precedence of the operators,
// with * and / binding tighter than + and -, and operators of equal
// precedence grouping left to right. The resulting Expr evaluates on a
// stack of float64 operands.
//
// There is no unary minus, so "-1" is an error; write "0-1" instead.
//
package rpn
