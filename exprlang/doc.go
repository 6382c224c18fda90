/*
Package exprlang implements a small, Python-like language of statements and
expressions. It produces trees for package astmatch and renders them back into
source text.

Programs are sequences of statements, separated by newlines or semicolons:

    x = f(1, 2) * -y
    for i in range(10): total = total + i; print(total)
    return xs[0].attr

Expressions support the arithmetic operators + - * / % and unary minus, calls,
attribute access, subscripts, lists, numbers, strings, True, False and None.
The body of a for-loop must be written on the same line as its header.

Identifiers may start with any number of '$' characters, which makes the escape
convention of package pattern expressible:

    $_a           // the identifier "_a", never a placeholder

Trees have the following shape (node tags with their fields):

    Module(body)              Assign(targets, value)     For(target, iter, body)
    Expr(value)               Return(value)              BinOp(left, op, right)
    UnaryOp(op, operand)      Call(func, args)           Attribute(value, attr)
    Subscript(value, slice)   Name(id)                   Constant(value)
    List(elts)

Operators are nodes without fields: Add, Sub, Mult, Div, Mod and USub.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package exprlang

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'astmatch.exprlang'.
func tracer() tracing.Trace {
	return tracing.Select("astmatch.exprlang")
}
