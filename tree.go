package astmatch

import (
	"fmt"
	"math"
	"strconv"

	"golang.org/x/exp/slices"
)

// --- Values ----------------------------------------------------------------

// Kind is a category type for the values which may occupy a field of a node.
type Kind int8

// Kinds of values. Blank and BlankSequence only occur within patterns.
const (
	LeafKind Kind = iota
	NodeKind
	SequenceKind
	BlankKind
	BlankSequenceKind
)

func (k Kind) String() string {
	switch k {
	case LeafKind:
		return "leaf"
	case NodeKind:
		return "node"
	case SequenceKind:
		return "sequence"
	case BlankKind:
		return "blank"
	case BlankSequenceKind:
		return "blank-sequence"
	}
	return "<unknown kind " + strconv.Itoa(int(k)) + ">"
}

// Value is the type of everything which may be stored in a field of a node:
// leafs, child nodes, sequences of nodes and (for patterns) placeholders.
//
// Clients do not implement Value themselves.
type Value interface {
	Kind() Kind
	String() string
}

// Leaf is an atomic literal value: a string, an int64, a float64, a bool or nil.
// Unsigned integers beyond the int64 range are kept as uint64.
type Leaf struct {
	V interface{}
}

// L creates a leaf. Integers and floats of any size are normalized to int64 and
// float64, respectively, so that leafs compare equal independently of how they
// have been created.
func L(v interface{}) Leaf {
	switch x := v.(type) {
	case int:
		return Leaf{V: int64(x)}
	case int8:
		return Leaf{V: int64(x)}
	case int16:
		return Leaf{V: int64(x)}
	case int32:
		return Leaf{V: int64(x)}
	case uint8:
		return Leaf{V: int64(x)}
	case uint16:
		return Leaf{V: int64(x)}
	case uint32:
		return Leaf{V: int64(x)}
	case uint:
		return unsignedLeaf(uint64(x))
	case uint64:
		return unsignedLeaf(x)
	case uintptr:
		return unsignedLeaf(uint64(x))
	case float32:
		return Leaf{V: float64(x)}
	}
	return Leaf{V: v}
}

// unsignedLeaf keeps values beyond the int64 range as uint64.
func unsignedLeaf(u uint64) Leaf {
	if u > math.MaxInt64 {
		return Leaf{V: u}
	}
	return Leaf{V: int64(u)}
}

// Kind is part of interface Value.
func (l Leaf) Kind() Kind {
	return LeafKind
}

// IsNil returns true if the leaf represents an absent value.
func (l Leaf) IsNil() bool {
	return l.V == nil
}

func (l Leaf) String() string {
	switch x := l.V.(type) {
	case nil:
		return "nil"
	case string:
		return strconv.Quote(x)
	}
	return fmt.Sprintf("%v", l.V)
}

// Sequence is an ordered list of nodes, possibly empty. Within patterns, elements
// may be placeholders as well.
type Sequence []Value

// Seq creates a sequence from a list of nodes.
func Seq(nodes ...*Node) Sequence {
	s := make(Sequence, len(nodes))
	for i, n := range nodes {
		s[i] = n
	}
	return s
}

// Kind is part of interface Value.
func (s Sequence) Kind() Kind {
	return SequenceKind
}

// Nodes returns the elements of a sequence as nodes. If any element is not a
// node (i.e., a placeholder), ok will be false.
func (s Sequence) Nodes() (nodes []*Node, ok bool) {
	nodes = make([]*Node, len(s))
	for i, v := range s {
		if nodes[i], ok = v.(*Node); !ok {
			return nil, false
		}
	}
	return nodes, true
}

func (s Sequence) String() string {
	return dumpValue(s, -1, 0)
}

// Blank is a placeholder matching exactly one node.
type Blank struct {
	Name string
}

// Kind is part of interface Value.
func (b Blank) Kind() Kind {
	return BlankKind
}

func (b Blank) String() string {
	return fmt.Sprintf("Blank(%q)", b.Name)
}

// BlankNullSequence is a placeholder matching a whole sequence of zero or more nodes.
// The concept has been borrowed from Mathematica.
type BlankNullSequence struct {
	Name string
}

// Kind is part of interface Value.
func (b BlankNullSequence) Kind() Kind {
	return BlankSequenceKind
}

func (b BlankNullSequence) String() string {
	return fmt.Sprintf("BlankNullSequence(%q)", b.Name)
}

// --- Nodes -----------------------------------------------------------------

// Field is a named slot of a node.
type Field struct {
	Name  string
	Value Value
}

// F is a shortcut for creating a field.
func F(name string, v Value) Field {
	return Field{Name: name, Value: v}
}

// Node is a tagged tree node with a fixed, ordered set of named fields.
// Every node of a given tag is expected to carry the same fields in the same
// order, and the category of each field (leaf, child or sequence) is expected
// to be stable per tag.
type Node struct {
	Tag    string
	Fields []Field
}

// NewNode creates a node with a given tag and fields.
func NewNode(tag string, fields ...Field) *Node {
	return &Node{Tag: tag, Fields: fields}
}

// Kind is part of interface Value.
func (n *Node) Kind() Kind {
	return NodeKind
}

// Get returns the value of a named field.
func (n *Node) Get(name string) (Value, bool) {
	if n == nil {
		return nil, false
	}
	for _, f := range n.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// Set replaces the value of a named field. It returns false if n has no
// field with that name.
func (n *Node) Set(name string, v Value) bool {
	if n == nil {
		return false
	}
	for i := range n.Fields {
		if n.Fields[i].Name == name {
			n.Fields[i].Value = v
			return true
		}
	}
	return false
}

// Child returns the node stored in a named field, or nil.
func (n *Node) Child(name string) *Node {
	v, _ := n.Get(name)
	child, _ := v.(*Node)
	return child
}

// SameShape returns true if n and m have the same tag and the same field names
// in the same order.
func (n *Node) SameShape(m *Node) bool {
	if n.Tag != m.Tag || len(n.Fields) != len(m.Fields) {
		return false
	}
	for i := range n.Fields {
		if n.Fields[i].Name != m.Fields[i].Name {
			return false
		}
	}
	return true
}

// Equal is deep structural equality of two nodes.
func (n *Node) Equal(m *Node) bool {
	return Equal(n, m)
}

// Copy returns a deep copy of n.
func (n *Node) Copy() *Node {
	if n == nil {
		return nil
	}
	c := &Node{Tag: n.Tag, Fields: slices.Clone(n.Fields)}
	for i := range c.Fields {
		c.Fields[i].Value = Copy(c.Fields[i].Value)
	}
	return c
}

func (n *Node) String() string {
	return dumpValue(n, -1, 0)
}

// Indented returns a multi-line representation of n, suitable for diagnostics.
func (n *Node) Indented() string {
	return dumpValue(n, 2, 0)
}

// --- Deep equality and copying ---------------------------------------------

// Equal is deep structural equality of values: tags, field names and
// recursively equal field values. Sequences are equal if they are element-wise
// equal. Leafs are equal if their literals are equal.
func Equal(a, b Value) bool {
	switch x := a.(type) {
	case nil:
		return b == nil
	case Leaf:
		y, ok := b.(Leaf)
		return ok && x.V == y.V
	case *Node:
		y, ok := b.(*Node)
		if !ok {
			return false
		}
		if x == nil || y == nil {
			return x == y
		}
		if !x.SameShape(y) {
			return false
		}
		for i := range x.Fields {
			if !Equal(x.Fields[i].Value, y.Fields[i].Value) {
				return false
			}
		}
		return true
	case Sequence:
		y, ok := b.(Sequence)
		return ok && slices.EqualFunc(x, y, Equal)
	case Blank:
		y, ok := b.(Blank)
		return ok && x.Name == y.Name
	case BlankNullSequence:
		y, ok := b.(BlankNullSequence)
		return ok && x.Name == y.Name
	}
	tracer().Errorf("equality of unknown value type %T", a)
	return false
}

// EqualNodes compares two lists of nodes element-wise.
func EqualNodes(a, b []*Node) bool {
	return slices.EqualFunc(a, b, func(x, y *Node) bool {
		return Equal(x, y)
	})
}

// Copy returns a deep copy of a value. Leafs and placeholders are immutable and
// returned as they are.
func Copy(v Value) Value {
	switch x := v.(type) {
	case *Node:
		return x.Copy()
	case Sequence:
		c := make(Sequence, len(x))
		for i, el := range x {
			c[i] = Copy(el)
		}
		return c
	}
	return v
}

// CopyNodes returns a deep copy of a list of nodes.
func CopyNodes(nodes []*Node) []*Node {
	c := make([]*Node, len(nodes))
	for i, n := range nodes {
		c[i] = n.Copy()
	}
	return c
}
