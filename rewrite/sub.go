package rewrite

import (
	"fmt"

	"github.com/npillmayer/astmatch"
	"github.com/npillmayer/astmatch/pattern"
	"github.com/npillmayer/astmatch/walk"
)

// Replacement computes the substitute for a match. It is a closed type: use
// Literal, Expand or Callback to create one.
type Replacement interface {
	isReplacement()
}

// CallbackFunc computes a replacement from a matched node and the bindings of
// the match. The node belongs to the tree being rewritten and may be re-used
// as part of the result.
type CallbackFunc func(whole *astmatch.Node, m *pattern.Matching) (*astmatch.Node, error)

// LiteralReplacement replaces every match by a copy of a constant tree.
type LiteralReplacement struct {
	Node *astmatch.Node
}

// ExpandReplacement replaces every match by the expansion of a template (or
// pattern) with the bindings of the match.
type ExpandReplacement struct {
	Template pattern.Expander
}

// CallbackReplacement replaces every match by the result of a function call.
type CallbackReplacement struct {
	Func CallbackFunc
}

func (LiteralReplacement) isReplacement()  {}
func (ExpandReplacement) isReplacement()   {}
func (CallbackReplacement) isReplacement() {}

// Literal creates a replacement by a constant tree. Every match will receive
// a copy of its own.
func Literal(n *astmatch.Node) Replacement {
	return LiteralReplacement{Node: n}
}

// Expand creates a replacement expanding a template with the bindings of a match.
func Expand(x pattern.Expander) Replacement {
	return ExpandReplacement{Template: x}
}

// Callback creates a replacement computed by a function.
func Callback(fn CallbackFunc) Replacement {
	return CallbackReplacement{Func: fn}
}

// replacementFor dispatches on the kind of replacement.
func replacementFor(r Replacement, whole *astmatch.Node, m *pattern.Matching) (*astmatch.Node, error) {
	var n *astmatch.Node
	var err error
	switch x := r.(type) {
	case LiteralReplacement:
		n = x.Node.Copy()
	case ExpandReplacement:
		if x.Template == nil {
			return nil, fmt.Errorf("replacement without template: %w", pattern.ErrConstruction)
		}
		n, err = x.Template.Expand(m)
	case CallbackReplacement:
		if x.Func == nil {
			return nil, fmt.Errorf("replacement without callback: %w", pattern.ErrConstruction)
		}
		n, err = x.Func(whole, m)
	default:
		return nil, fmt.Errorf("unknown replacement type %T: %w", r, pattern.ErrConstruction)
	}
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, fmt.Errorf("replacement for %s is empty: %w", whole, pattern.ErrConstruction)
	}
	return n, nil
}

// Sub replaces every match of a pattern in a tree by a replacement, returning
// the rewritten tree. The tree passed in is not modified; Sub works on a copy.
//
// The tree is traversed depth-first. A matching node is replaced as a whole,
// without searching its subtree for further matches. Replacements are not
// searched either. If the root matches, the replacement of the root is returned.
func Sub(p *pattern.Pattern, r Replacement, target *astmatch.Node) (*astmatch.Node, error) {
	return SubInPlace(p, r, target.Copy())
}

// SubInPlace is like Sub, but rewrites target destructively. Callers hand over
// ownership of target and must use the returned tree instead.
//
// If a replacement cannot be computed, SubInPlace stops and returns the error.
// The tree will then be partially rewritten.
func SubInPlace(p *pattern.Pattern, r Replacement, target *astmatch.Node) (*astmatch.Node, error) {
	result, count, err := subst(p, r, target)
	if err != nil {
		return nil, err
	}
	tracer().Debugf("%s: %d replacements", p, count)
	return result, nil
}

// subst rewrites target in place and counts the replacements.
func subst(p *pattern.Pattern, r Replacement, target *astmatch.Node) (*astmatch.Node, int, error) {
	if r == nil {
		return nil, 0, fmt.Errorf("missing replacement: %w", pattern.ErrConstruction)
	}
	result, count := target, 0
	seq := walk.PreOrder(target)
	for tn, ok := seq.Next(); ok; tn, ok = seq.Next() {
		m := p.Fullmatch(tn.Node)
		if m == nil {
			continue
		}
		repl, err := replacementFor(r, tn.Node, m)
		if err != nil {
			seq.Break()
			return nil, count, err
		}
		if seq.Replace(repl).IsRoot() {
			result = repl
		}
		count++
	}
	return result, count, nil
}
