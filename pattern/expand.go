package pattern

import (
	"github.com/npillmayer/astmatch"
	"github.com/npillmayer/schuko/gconf"
)

// Expander is a type for things which may be expanded with a binding table,
// producing a concrete tree. Both *Pattern and *Template are Expanders.
type Expander interface {
	Expand(*Matching) (*astmatch.Node, error)
}

var _ Expander = (*Pattern)(nil)
var _ Expander = (*Template)(nil)

// Template is a compiled replacement pattern. Create one with CompileTemplate.
//
// Different from patterns used for matching, templates may contain sequence
// placeholders alongside sibling elements:
//
//     h(__a, 0, __b)
//
// will splice the nodes bound to a and b around the constant.
type Template struct {
	root Value
}

// CompileTemplate converts an example tree to a template. It uses the same
// placeholder convention as Compile.
func CompileTemplate(example *astmatch.Node, opts ...Option) (*Template, error) {
	if example == nil {
		return nil, unsupported("cannot compile an empty template")
	}
	comp := newCompiler(opts)
	comp.template = true
	root, err := comp.compileRoot(example.Copy())
	if err != nil {
		return nil, err
	}
	if _, isSeq := root.(astmatch.BlankNullSequence); isSeq {
		return nil, unsupported("sequence placeholder cannot be the root of a template")
	}
	tracer().Debugf("compiled template %s", root)
	return &Template{root: root}, nil
}

// MustCompileTemplate is like CompileTemplate, but panics on error.
func MustCompileTemplate(example *astmatch.Node, opts ...Option) *Template {
	t, err := CompileTemplate(example, opts...)
	if err != nil {
		panic(err)
	}
	return t
}

// Expand substitutes bindings into the template. The result is a fresh tree,
// sharing no nodes with either the template or the binding table.
//
// Every placeholder of the template has to be bound, with a value of the right
// shape. Otherwise Expand returns an error wrapping ErrBindingContract.
func (t *Template) Expand(m *Matching) (*astmatch.Node, error) {
	if t == nil || t.root == nil {
		return nil, misconstructed("Template")
	}
	return expandRoot(t.root, m, false)
}

// Root returns a copy of the compiled template tree.
func (t *Template) Root() Value {
	if t == nil {
		return nil
	}
	return astmatch.Copy(t.root)
}

func (t *Template) String() string {
	if t == nil || t.root == nil {
		return "<Template: nil>"
	}
	return "<Template: " + t.root.String() + ">"
}

// Expand substitutes bindings into the pattern, using it as a template.
// See Template.Expand. Expanding never alters the pattern, thus a pattern
// may be expanded any number of times.
func (p *Pattern) Expand(m *Matching) (*astmatch.Node, error) {
	if p == nil || p.root == nil {
		return nil, misconstructed("Pattern")
	}
	return expandRoot(p.root, m, true)
}

// Expand substitutes bindings into a template or pattern.
func Expand(x Expander, m *Matching) (*astmatch.Node, error) {
	if x == nil {
		return nil, misconstructed("Expander")
	}
	return x.Expand(m)
}

// --- Expansion -------------------------------------------------------------

// ConfPanicOnViolation is the configuration flag to make expansion panic instead
// of returning ErrBindingContract errors.
const ConfPanicOnViolation = "panic-on-binding-violation"

// collapsed tells if a BlankNullSequence may stand for a whole sequence field,
// as it does in compiled patterns.
func expandRoot(root Value, m *Matching, collapsed bool) (*astmatch.Node, error) {
	if m == nil {
		m = newMatching()
	}
	v, err := expand(root, m, collapsed)
	if err != nil {
		tracer().Errorf("expansion failed: %v", err)
		if gconf.GetBool(ConfPanicOnViolation) {
			panic(err)
		}
		return nil, err
	}
	n, ok := v.(*astmatch.Node)
	if !ok {
		return nil, contractViolation("expansion resulted in %s, not a node", v.Kind())
	}
	return n, nil
}

func expand(v Value, m *Matching, collapsed bool) (Value, error) {
	switch x := v.(type) {
	case astmatch.Blank:
		b, ok := m.Get(x.Name)
		if !ok {
			return nil, contractViolation("no binding for Blank %q", x.Name)
		}
		n, ok := b.Node()
		if !ok {
			return nil, contractViolation("Blank %q is bound to a sequence", x.Name)
		}
		return n.Copy(), nil
	case astmatch.BlankNullSequence:
		nodes, err := sequenceBinding(x.Name, m)
		if err != nil {
			return nil, err
		}
		return astmatch.Seq(astmatch.CopyNodes(nodes)...), nil
	case *astmatch.Node:
		if x == nil {
			return x, nil
		}
		n := &astmatch.Node{Tag: x.Tag, Fields: make([]astmatch.Field, len(x.Fields))}
		for i, f := range x.Fields {
			if bns, isSeq := f.Value.(astmatch.BlankNullSequence); isSeq && !collapsed {
				return nil, contractViolation("BlankNullSequence %q cannot fill child field %s.%s",
					bns.Name, x.Tag, f.Name)
			}
			fv, err := expand(f.Value, m, collapsed)
			if err != nil {
				return nil, err
			}
			n.Fields[i] = astmatch.F(f.Name, fv)
		}
		return n, nil
	case astmatch.Sequence:
		seq := make(astmatch.Sequence, 0, len(x))
		for _, el := range x {
			if bns, isSeq := el.(astmatch.BlankNullSequence); isSeq {
				nodes, err := sequenceBinding(bns.Name, m)
				if err != nil {
					return nil, err
				}
				for _, n := range nodes {
					seq = append(seq, n.Copy())
				}
				continue
			}
			ev, err := expand(el, m, collapsed)
			if err != nil {
				return nil, err
			}
			seq = append(seq, ev)
		}
		return seq, nil
	}
	return v, nil // leafs are immutable
}

func sequenceBinding(name string, m *Matching) ([]*astmatch.Node, error) {
	b, ok := m.Get(name)
	if !ok {
		return nil, contractViolation("no binding for BlankNullSequence %q", name)
	}
	nodes, ok := b.Nodes()
	if !ok {
		return nil, contractViolation("BlankNullSequence %q is bound to a single node", name)
	}
	return nodes, nil
}
