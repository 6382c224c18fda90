package pattern

import (
	"github.com/npillmayer/astmatch"
)

// Pattern is a compiled pattern. Create one with Compile.
//
// A pattern is immutable: matching against it and expanding it will never alter it.
type Pattern struct {
	root Value // compiled example tree; a node or a Blank
	conv Convention
}

// Value is a short alias used throughout this package.
type Value = astmatch.Value

// Option configures the compilation of patterns and templates.
type Option func(*compiler)

// WithConvention sets the placeholder convention to use. The default is
// DefaultConvention().
func WithConvention(c Convention) Option {
	return func(comp *compiler) {
		comp.conv = c
	}
}

type compiler struct {
	conv     Convention
	template bool // allow mixing of sequence placeholders with siblings
}

func newCompiler(opts []Option) *compiler {
	comp := &compiler{conv: DefaultConvention()}
	for _, opt := range opts {
		opt(comp)
	}
	return comp
}

// Compile converts an example tree to a pattern, recognizing placeholders by
// the naming convention of identifiers (see package documentation).
//
// The example tree is not modified. The only error condition is a
// BlankNullSequence mixed with sibling elements of a sequence field
// (ErrUnsupportedPattern).
func Compile(example *astmatch.Node, opts ...Option) (*Pattern, error) {
	if example == nil {
		return nil, unsupported("cannot compile an empty example")
	}
	comp := newCompiler(opts)
	root, err := comp.compileRoot(example.Copy())
	if err != nil {
		return nil, err
	}
	if _, isSeq := root.(astmatch.BlankNullSequence); isSeq {
		return nil, unsupported("sequence placeholder cannot be the root of a pattern")
	}
	tracer().Debugf("compiled pattern %s", root)
	return &Pattern{root: root, conv: comp.conv}, nil
}

// MustCompile is like Compile, but panics if the example cannot be compiled.
// It simplifies initialization of global variables holding patterns.
func MustCompile(example *astmatch.Node, opts ...Option) *Pattern {
	p, err := Compile(example, opts...)
	if err != nil {
		panic(err)
	}
	return p
}

func (p *Pattern) check() {
	assertThat(p != nil && p.root != nil, ErrConstruction, "%v", misconstructed("Pattern"))
}

// Root returns a copy of the compiled pattern tree, i.e. the example with
// placeholders substituted. The root is a node or a Blank.
func (p *Pattern) Root() Value {
	p.check()
	return astmatch.Copy(p.root)
}

func (p *Pattern) String() string {
	if p == nil || p.root == nil {
		return "<Pattern: nil>"
	}
	return "<Pattern: " + p.root.String() + ">"
}

// --- Compilation -----------------------------------------------------------

// compileRoot compiles a tree it owns, mutating it in place. The root
// itself may be a placeholder.
func (comp *compiler) compileRoot(n *astmatch.Node) (Value, error) {
	return comp.element(n)
}

// element compiles a node in a child slot or a sequence slot. It returns the
// value to put into the slot: a placeholder or the (compiled) node itself.
func (comp *compiler) element(n *astmatch.Node) (Value, error) {
	if n == nil {
		return n, nil
	}
	ident := comp.conv.unwrap(n)
	if name, ok := comp.conv.Identifier(ident); ok {
		class, stripped := comp.conv.Classify(name)
		switch class {
		case BlankClass:
			tracer().Debugf("identifier %q is a Blank", name)
			return astmatch.Blank{Name: stripped}, nil
		case SequenceClass:
			tracer().Debugf("identifier %q is a BlankNullSequence", name)
			return astmatch.BlankNullSequence{Name: stripped}, nil
		case Verbatim:
			if ident == n { // for wrappers, recursion will reach the identifier
				tracer().Debugf("identifier %q is verbatim %q", name, stripped)
				n.Set(comp.conv.IdentField, astmatch.L(stripped))
				return n, nil
			}
		}
	}
	if err := comp.node(n); err != nil {
		return nil, err
	}
	return n, nil
}

// node compiles the fields of a node in place.
func (comp *compiler) node(n *astmatch.Node) error {
	for i := range n.Fields {
		switch v := n.Fields[i].Value.(type) {
		case *astmatch.Node:
			compiled, err := comp.element(v)
			if err != nil {
				return err
			}
			n.Fields[i].Value = compiled
		case astmatch.Sequence:
			compiled, err := comp.sequence(v, n.Tag, n.Fields[i].Name)
			if err != nil {
				return err
			}
			n.Fields[i].Value = compiled
		}
	}
	return nil
}

// sequence compiles the elements of a sequence field. A sequence consisting of
// nothing but a single BlankNullSequence collapses to the placeholder, which will
// then match the whole field. Templates never collapse: a BlankNullSequence
// directly in a template field always sits in a single-child slot.
func (comp *compiler) sequence(seq astmatch.Sequence, tag, field string) (Value, error) {
	seqPlaceholders := 0
	for j, el := range seq {
		n, ok := el.(*astmatch.Node)
		if !ok {
			continue
		}
		compiled, err := comp.element(n)
		if err != nil {
			return nil, err
		}
		if _, isSeq := compiled.(astmatch.BlankNullSequence); isSeq {
			seqPlaceholders++
		}
		seq[j] = compiled
	}
	if seqPlaceholders == 0 || comp.template {
		return seq, nil
	}
	if len(seq) == 1 {
		return seq[0], nil
	}
	return nil, unsupported("sequence placeholder mixed with other elements in field %s.%s",
		tag, field)
}
