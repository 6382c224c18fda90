package pattern

import (
	"strings"

	"github.com/npillmayer/astmatch"
	"github.com/npillmayer/schuko/gconf"
)

// Class is the category of an identifier with respect to a placeholder convention.
type Class int8

// Classes of identifiers.
const (
	Plain         Class = iota // ordinary identifier
	BlankClass                 // placeholder for one node (Blank)
	SequenceClass              // placeholder for a sequence of nodes (BlankNullSequence)
	Verbatim                   // escaped identifier, never a placeholder
)

func (c Class) String() string {
	switch c {
	case BlankClass:
		return "Blank"
	case SequenceClass:
		return "BlankNullSequence"
	case Verbatim:
		return "Verbatim"
	}
	return "Plain"
}

// Convention describes how placeholders are spelled and how identifiers look
// in a tree.
//
// Identifiers are nodes tagged IdentTag, with a string leaf in field IdentField.
// Wrappers maps tags of nodes which are transparent for placeholder detection
// within sequences to the name of their wrapped field. This makes it possible to
// write placeholders as statements, which most parsers wrap into expression
// statement nodes.
type Convention struct {
	Marker     string            // prefix for placeholders; doubled for sequences
	Escape     string            // prefix suppressing placeholder interpretation
	IdentTag   string            // tag of identifier nodes
	IdentField string            // field of identifier nodes holding the name
	Wrappers   map[string]string // transparent wrapper tags → wrapped field
}

// Configuration keys, read by DefaultConvention.
const (
	ConfMarker = "astmatch.blank-marker"
	ConfEscape = "astmatch.verbatim-escape"
)

// DefaultConvention returns the placeholder convention for trees created by
// package exprlang. Marker and escape prefix default to "_" and "$", but may
// be overridden by global configuration.
func DefaultConvention() Convention {
	c := Convention{
		Marker:     "_",
		Escape:     "$",
		IdentTag:   "Name",
		IdentField: "id",
		Wrappers:   map[string]string{"Expr": "value"},
	}
	if m := gconf.GetString(ConfMarker); m != "" {
		c.Marker = m
	}
	if e := gconf.GetString(ConfEscape); e != "" {
		c.Escape = e
	}
	return c
}

// Classify categorizes an identifier according to the default convention.
// It returns the class of the identifier together with the placeholder name
// (for placeholders) or the unescaped identifier (for verbatim identifiers).
func Classify(ident string) (Class, string) {
	return DefaultConvention().Classify(ident)
}

// Classify categorizes an identifier. It is a total function: every string is
// either a placeholder, an escaped identifier or a plain identifier.
//
// The escape prefix takes precedence over the marker, and a doubled marker takes
// precedence over a single one. Malformed names are accepted as written, i.e.
// a lone marker is a Blank with an empty name.
func (c Convention) Classify(ident string) (Class, string) {
	if c.Escape != "" && strings.HasPrefix(ident, c.Escape) {
		return Verbatim, ident[len(c.Escape):]
	}
	if c.Marker == "" {
		return Plain, ident
	}
	if double := c.Marker + c.Marker; strings.HasPrefix(ident, double) {
		return SequenceClass, ident[len(double):]
	}
	if strings.HasPrefix(ident, c.Marker) {
		return BlankClass, ident[len(c.Marker):]
	}
	return Plain, ident
}

// Identifier returns the name of an identifier node. If n is not an identifier,
// ok is false.
func (c Convention) Identifier(n *astmatch.Node) (name string, ok bool) {
	if n == nil || n.Tag != c.IdentTag {
		return "", false
	}
	v, found := n.Get(c.IdentField)
	if !found {
		return "", false
	}
	if leaf, isLeaf := v.(astmatch.Leaf); isLeaf {
		name, ok = leaf.V.(string)
	}
	return
}

// unwrap returns the identifier node wrapped by n, if n is a transparent wrapper
// around an identifier. Otherwise it returns n.
func (c Convention) unwrap(n *astmatch.Node) *astmatch.Node {
	if n == nil || c.Wrappers == nil {
		return n
	}
	field, ok := c.Wrappers[n.Tag]
	if !ok {
		return n
	}
	if inner := n.Child(field); inner != nil {
		if _, isIdent := c.Identifier(inner); isIdent {
			return inner
		}
	}
	return n
}
