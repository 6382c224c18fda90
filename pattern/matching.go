package pattern

import (
	"sort"
	"strconv"
	"strings"

	"github.com/npillmayer/astmatch"
	"golang.org/x/exp/slices"
)

// Binding is the value bound to a placeholder name: either a single node (for a
// Blank) or a list of nodes (for a BlankNullSequence).
type Binding struct {
	node  *astmatch.Node
	nodes []*astmatch.Node
	many  bool
}

// Single creates a binding for a single node.
func Single(n *astmatch.Node) Binding {
	return Binding{node: n}
}

// Many creates a binding for a list of nodes. The list may be empty.
func Many(nodes ...*astmatch.Node) Binding {
	if nodes == nil {
		nodes = []*astmatch.Node{}
	}
	return Binding{nodes: nodes, many: true}
}

// IsSequence returns true for bindings of BlankNullSequences.
func (b Binding) IsSequence() bool {
	return b.many
}

// Node returns the node of a single-node binding. ok is false for sequence bindings.
func (b Binding) Node() (n *astmatch.Node, ok bool) {
	return b.node, !b.many
}

// Nodes returns the nodes of a sequence binding. ok is false for single-node bindings.
// The slice is a copy, the nodes are not.
func (b Binding) Nodes() (nodes []*astmatch.Node, ok bool) {
	return slices.Clone(b.nodes), b.many
}

// Value returns the bound value as a tree value: a node or a sequence.
func (b Binding) Value() Value {
	if b.many {
		return astmatch.Seq(b.nodes...)
	}
	return b.node
}

// Equal is deep structural equality of bindings. Bindings of different shape
// are never equal.
func (b Binding) Equal(other Binding) bool {
	if b.many != other.many {
		return false
	}
	if b.many {
		return astmatch.EqualNodes(b.nodes, other.nodes)
	}
	return astmatch.Equal(b.node, other.node)
}

func (b Binding) String() string {
	if !b.many {
		return b.node.String()
	}
	s := make([]string, len(b.nodes))
	for i, n := range b.nodes {
		s[i] = n.String()
	}
	return "[" + strings.Join(s, ", ") + "]"
}

// --- Binding tables --------------------------------------------------------

// Matching is a binding table: a mapping from placeholder names to bound values,
// as produced by a successful match. A Matching never contains two different
// values for the same name. It is immutable once it has been handed out.
type Matching struct {
	names    []string // in order of first binding
	bindings map[string]Binding
}

// Bindings is a plain map of bindings, used to create a Matching directly.
type Bindings map[string]Binding

// MatchingOf creates a binding table from a map of bindings. This is useful for
// expanding templates with bindings which have not been produced by a match.
// Names are ordered alphabetically.
func MatchingOf(b Bindings) *Matching {
	m := newMatching()
	names := make([]string, 0, len(b))
	for name := range b {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		m.bind(name, b[name])
	}
	return m
}

func newMatching() *Matching {
	return &Matching{bindings: make(map[string]Binding)}
}

// bind adds a binding, if the name is not yet bound. If it is already bound, the
// new value has to equal the existing one, otherwise bind returns false.
func (m *Matching) bind(name string, b Binding) bool {
	if existing, found := m.bindings[name]; found {
		if !existing.Equal(b) {
			tracer().Debugf("binding conflict for %q: %s ≠ %s", name, existing, b)
			return false
		}
		return true
	}
	m.bindings[name] = b
	m.names = append(m.names, name)
	return true
}

// merge merges all bindings of other into m. If a name is bound in both with
// different values, merge returns false.
func (m *Matching) merge(other *Matching) bool {
	for _, name := range other.names {
		if !m.bind(name, other.bindings[name]) {
			return false
		}
	}
	return true
}

// Len returns the number of names bound.
func (m *Matching) Len() int {
	if m == nil {
		return 0
	}
	return len(m.names)
}

// Names returns the bound names in order of binding.
func (m *Matching) Names() []string {
	if m == nil {
		return nil
	}
	return slices.Clone(m.names)
}

// Get returns the binding for a name.
func (m *Matching) Get(name string) (Binding, bool) {
	if m == nil {
		return Binding{}, false
	}
	b, ok := m.bindings[name]
	return b, ok
}

// Group returns the value bound to a name: a node or a sequence of nodes.
// It returns nil if the name is not bound.
func (m *Matching) Group(name string) Value {
	b, ok := m.Get(name)
	if !ok {
		return nil
	}
	return b.Value()
}

// Expand substitutes the bindings of m into a template or pattern.
func (m *Matching) Expand(x Expander) (*astmatch.Node, error) {
	return x.Expand(m)
}

func (m *Matching) String() string {
	var b strings.Builder
	b.WriteString("Match{")
	for i, name := range m.Names() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.Quote(name))
		b.WriteString(": ")
		b.WriteString(m.bindings[name].String())
	}
	b.WriteByte('}')
	return b.String()
}
