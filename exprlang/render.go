package exprlang

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/npillmayer/astmatch"
)

// Precedence levels of expressions.
const (
	precSum   = 10
	precTerm  = 20
	precUnary = 30
	precAtom  = 40
)

var opSymbols = map[string]string{
	"Add":  "+",
	"Sub":  "-",
	"Mult": "*",
	"Div":  "/",
	"Mod":  "%",
}

// Render returns source text for a tree. Statements of a module are put on
// separate lines. Placeholders of compiled patterns are rendered with a
// marker of '_' ('__' for sequences).
//
// Render is meant for diagnostics and tests. Nodes it does not know are
// rendered in the generic format of astmatch.Node.String.
func Render(v astmatch.Value) string {
	var b strings.Builder
	r := renderer{b: &b}
	r.value(v)
	return b.String()
}

type renderer struct {
	b *strings.Builder
}

func (r renderer) value(v astmatch.Value) {
	switch x := v.(type) {
	case *astmatch.Node:
		r.node(x)
	case astmatch.Sequence:
		r.join(x, ", ")
	case astmatch.Leaf:
		r.leaf(x)
	case astmatch.Blank:
		r.b.WriteString("_" + x.Name)
	case astmatch.BlankNullSequence:
		r.b.WriteString("__" + x.Name)
	case nil:
		r.b.WriteString("<nil>")
	default:
		r.b.WriteString(v.String())
	}
}

func (r renderer) node(n *astmatch.Node) {
	if n == nil {
		r.b.WriteString("<nil>")
		return
	}
	switch n.Tag {
	case ModuleTag:
		r.sequence(n, "body", "\n")
	case ExprTag:
		r.field(n, "value")
	case AssignTag:
		r.sequence(n, "targets", " = ")
		r.b.WriteString(" = ")
		r.field(n, "value")
	case ForTag:
		r.b.WriteString("for ")
		r.field(n, "target")
		r.b.WriteString(" in ")
		r.field(n, "iter")
		r.b.WriteString(": ")
		r.sequence(n, "body", "; ")
	case ReturnTag:
		r.b.WriteString("return")
		if v, _ := n.Get("value"); !isNilLeaf(v) {
			r.b.WriteByte(' ')
			r.value(v)
		}
	case BinOpTag:
		prec := precedence(n)
		r.operand(n, "left", prec, false)
		r.b.WriteString(" " + opSymbol(n.Child("op")) + " ")
		r.operand(n, "right", prec, true)
	case UnaryOpTag:
		r.b.WriteByte('-')
		r.operand(n, "operand", precUnary, false)
	case CallTag:
		r.operand(n, "func", precAtom, false)
		r.b.WriteByte('(')
		r.sequence(n, "args", ", ")
		r.b.WriteByte(')')
	case AttributeTag:
		r.operand(n, "value", precAtom, false)
		r.b.WriteByte('.')
		if v, ok := n.Get("attr"); ok {
			if l, isLeaf := v.(astmatch.Leaf); isLeaf {
				r.b.WriteString(fmt.Sprintf("%v", l.V))
			} else {
				r.value(v)
			}
		}
	case SubscriptTag:
		r.operand(n, "value", precAtom, false)
		r.b.WriteByte('[')
		r.field(n, "slice")
		r.b.WriteByte(']')
	case NameTag:
		if v, ok := n.Get("id"); ok {
			if l, isLeaf := v.(astmatch.Leaf); isLeaf {
				r.b.WriteString(fmt.Sprintf("%v", l.V))
				return
			}
			r.value(v)
		}
	case ConstantTag:
		r.field(n, "value")
	case ListTag:
		r.b.WriteByte('[')
		r.sequence(n, "elts", ", ")
		r.b.WriteByte(']')
	default:
		r.b.WriteString(n.String())
	}
}

func (r renderer) field(n *astmatch.Node, name string) {
	v, _ := n.Get(name)
	r.value(v)
}

func (r renderer) sequence(n *astmatch.Node, name string, sep string) {
	v, _ := n.Get(name)
	if seq, ok := v.(astmatch.Sequence); ok {
		r.join(seq, sep)
		return
	}
	r.value(v) // a placeholder
}

func (r renderer) join(seq astmatch.Sequence, sep string) {
	for i, el := range seq {
		if i > 0 {
			r.b.WriteString(sep)
		}
		r.value(el)
	}
}

// operand renders a sub-expression, in parentheses if it binds less tightly
// than its context. Right operands of equal precedence need parentheses, too,
// as all binary operators are left-associative.
func (r renderer) operand(n *astmatch.Node, name string, prec int, right bool) {
	v, _ := n.Get(name)
	child, ok := v.(*astmatch.Node)
	if !ok {
		r.value(v)
		return
	}
	p := precedence(child)
	if p < prec || (right && p == prec) {
		r.b.WriteByte('(')
		r.node(child)
		r.b.WriteByte(')')
		return
	}
	r.node(child)
}

func (r renderer) leaf(l astmatch.Leaf) {
	switch x := l.V.(type) {
	case nil:
		r.b.WriteString("None")
	case bool:
		if x {
			r.b.WriteString("True")
		} else {
			r.b.WriteString("False")
		}
	case string:
		r.b.WriteString(strconv.Quote(x))
	case float64:
		s := strconv.FormatFloat(x, 'f', -1, 64)
		if x == math.Trunc(x) && !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
		r.b.WriteString(s)
	default:
		r.b.WriteString(fmt.Sprintf("%v", l.V))
	}
}

func precedence(n *astmatch.Node) int {
	if n == nil {
		return precAtom
	}
	switch n.Tag {
	case BinOpTag:
		switch opSymbol(n.Child("op")) {
		case "+", "-":
			return precSum
		}
		return precTerm
	case UnaryOpTag:
		return precUnary
	}
	return precAtom
}

func opSymbol(op *astmatch.Node) string {
	if op == nil {
		return "?"
	}
	if s, ok := opSymbols[op.Tag]; ok {
		return s
	}
	return op.Tag
}

func isNilLeaf(v astmatch.Value) bool {
	l, ok := v.(astmatch.Leaf)
	return ok && l.IsNil()
}
