package pattern

import (
	"github.com/npillmayer/astmatch"
)

// Fullmatch matches the pattern against a tree, at the root of the tree only.
// It returns the bindings of the placeholders on success, and nil if the tree
// does not match.
//
// Fullmatch panics with an error wrapping ErrBindingContract if the pattern
// asks for a single node where the tree has a sequence, or vice versa.
func (p *Pattern) Fullmatch(target *astmatch.Node) *Matching {
	p.check()
	if target == nil {
		return nil
	}
	m := match(p.root, target)
	if m != nil {
		tracer().Debugf("%s matches %s", p, target)
	}
	return m
}

// Matches is a predicate: does the tree match the pattern at its root?
func (p *Pattern) Matches(target *astmatch.Node) bool {
	return p.Fullmatch(target) != nil
}

// match recursively compares a pattern value with a tree value. There is no
// backtracking: every field and sequence element is visited at most once.
func match(pattern Value, target Value) *Matching {
	switch pv := pattern.(type) {
	case astmatch.Blank:
		tn, ok := target.(*astmatch.Node)
		if !ok {
			_, isSeq := target.(astmatch.Sequence)
			assertThat(!isSeq, ErrBindingContract,
				"Blank %q cannot bind a sequence", pv.Name)
			tracer().Debugf("Blank %q cannot bind %s", pv.Name, target)
			return nil
		}
		m := newMatching()
		m.bind(pv.Name, Single(tn))
		return m
	case astmatch.BlankNullSequence:
		ts, ok := target.(astmatch.Sequence)
		assertThat(ok, ErrBindingContract,
			"BlankNullSequence %q cannot bind a non-sequence value", pv.Name)
		nodes, ok := ts.Nodes()
		assertThat(ok, ErrBindingContract,
			"BlankNullSequence %q cannot bind a sequence containing placeholders", pv.Name)
		m := newMatching()
		m.bind(pv.Name, Many(nodes...))
		return m
	case *astmatch.Node:
		tn, ok := target.(*astmatch.Node)
		if !ok || pv == nil || tn == nil {
			if ok && pv == nil && tn == nil {
				return newMatching()
			}
			return nil
		}
		if !pv.SameShape(tn) {
			return nil
		}
		result := newMatching()
		for i := range pv.Fields {
			m := match(pv.Fields[i].Value, tn.Fields[i].Value)
			if m == nil || !result.merge(m) {
				return nil
			}
		}
		return result
	case astmatch.Sequence:
		ts, ok := target.(astmatch.Sequence)
		if !ok || len(pv) != len(ts) {
			return nil
		}
		result := newMatching()
		for i := range pv {
			m := match(pv[i], ts[i])
			if m == nil || !result.merge(m) {
				return nil
			}
		}
		return result
	case astmatch.Leaf:
		tl, ok := target.(astmatch.Leaf)
		if !ok || pv.V != tl.V {
			return nil
		}
		return newMatching()
	}
	tracer().Errorf("unknown pattern value type %T", pattern)
	return nil
}
