package exprlang

import (
	"github.com/npillmayer/astmatch"
)

// Node tags of the language.
const (
	ModuleTag    = "Module"
	ExprTag      = "Expr"
	AssignTag    = "Assign"
	ForTag       = "For"
	ReturnTag    = "Return"
	BinOpTag     = "BinOp"
	UnaryOpTag   = "UnaryOp"
	CallTag      = "Call"
	AttributeTag = "Attribute"
	SubscriptTag = "Subscript"
	NameTag      = "Name"
	ConstantTag  = "Constant"
	ListTag      = "List"
)

var binOps = map[TokType]string{
	'+': "Add",
	'-': "Sub",
	'*': "Mult",
	'/': "Div",
	'%': "Mod",
}

// Name creates an identifier node.
func Name(id string) *astmatch.Node {
	return astmatch.NewNode(NameTag, astmatch.F("id", astmatch.L(id)))
}

// Constant creates a node for a literal value: a number, a string, a bool or nil.
func Constant(v interface{}) *astmatch.Node {
	return astmatch.NewNode(ConstantTag, astmatch.F("value", astmatch.L(v)))
}

func module(body []*astmatch.Node) *astmatch.Node {
	return astmatch.NewNode(ModuleTag, astmatch.F("body", astmatch.Seq(body...)))
}

func exprStmt(value *astmatch.Node) *astmatch.Node {
	return astmatch.NewNode(ExprTag, astmatch.F("value", value))
}

func assign(targets []*astmatch.Node, value *astmatch.Node) *astmatch.Node {
	return astmatch.NewNode(AssignTag,
		astmatch.F("targets", astmatch.Seq(targets...)),
		astmatch.F("value", value))
}

func forStmt(target, iter *astmatch.Node, body []*astmatch.Node) *astmatch.Node {
	return astmatch.NewNode(ForTag,
		astmatch.F("target", target),
		astmatch.F("iter", iter),
		astmatch.F("body", astmatch.Seq(body...)))
}

func returnStmt(value *astmatch.Node) *astmatch.Node {
	if value == nil {
		return astmatch.NewNode(ReturnTag, astmatch.F("value", astmatch.L(nil)))
	}
	return astmatch.NewNode(ReturnTag, astmatch.F("value", value))
}

func binOp(left *astmatch.Node, op string, right *astmatch.Node) *astmatch.Node {
	return astmatch.NewNode(BinOpTag,
		astmatch.F("left", left),
		astmatch.F("op", astmatch.NewNode(op)),
		astmatch.F("right", right))
}

func unaryOp(operand *astmatch.Node) *astmatch.Node {
	return astmatch.NewNode(UnaryOpTag,
		astmatch.F("op", astmatch.NewNode("USub")),
		astmatch.F("operand", operand))
}

func call(fn *astmatch.Node, args []*astmatch.Node) *astmatch.Node {
	return astmatch.NewNode(CallTag,
		astmatch.F("func", fn),
		astmatch.F("args", astmatch.Seq(args...)))
}

func attribute(value *astmatch.Node, attr string) *astmatch.Node {
	return astmatch.NewNode(AttributeTag,
		astmatch.F("value", value),
		astmatch.F("attr", astmatch.L(attr)))
}

func subscript(value, slice *astmatch.Node) *astmatch.Node {
	return astmatch.NewNode(SubscriptTag,
		astmatch.F("value", value),
		astmatch.F("slice", slice))
}

func list(elts []*astmatch.Node) *astmatch.Node {
	return astmatch.NewNode(ListTag, astmatch.F("elts", astmatch.Seq(elts...)))
}
