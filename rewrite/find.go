package rewrite

import (
	"github.com/npillmayer/astmatch"
	"github.com/npillmayer/astmatch/pattern"
	"github.com/npillmayer/astmatch/walk"
)

// Found is a match within a tree: the matching node, its position, and the
// bindings produced by the match.
type Found struct {
	walk.TreeNode
	Matching *pattern.Matching
}

// MatchSeq is a lazy sequence of matches. It is not restartable; call FindIter
// again to perform another search.
type MatchSeq struct {
	pat     *pattern.Pattern
	nodes   *walk.TreeSeq
	current Found
}

// FindIter creates a lazy search for a pattern in a tree. The tree is traversed
// depth-first in pre-order, and every node is matched against the pattern,
// including nodes within the subtree of a node which already matched.
//
// The tree must not be modified while the search is in progress.
func FindIter(p *pattern.Pattern, target *astmatch.Node) *MatchSeq {
	return &MatchSeq{
		pat:   p,
		nodes: walk.PreOrder(target),
	}
}

// Next returns the next match. It returns false if the search is exhausted.
func (ms *MatchSeq) Next() (Found, bool) {
	for tn, ok := ms.nodes.Next(); ok; tn, ok = ms.nodes.Next() {
		if m := ms.pat.Fullmatch(tn.Node); m != nil {
			ms.current = Found{TreeNode: tn, Matching: m}
			return ms.current, true
		}
	}
	ms.current = Found{}
	return Found{}, false
}

// Match returns the most recent match.
func (ms *MatchSeq) Match() Found {
	return ms.current
}

// Break signals a search to stop.
func (ms *MatchSeq) Break() {
	ms.nodes.Break()
}

// Done returns true if a search is exhausted or has been stopped.
func (ms *MatchSeq) Done() bool {
	return ms.nodes.Done()
}

// FindAll returns all matches of a pattern in a tree, in pre-order.
func FindAll(p *pattern.Pattern, target *astmatch.Node) []Found {
	var all []Found
	ms := FindIter(p, target)
	for f, ok := ms.Next(); ok; f, ok = ms.Next() {
		all = append(all, f)
	}
	tracer().Debugf("found %d matches of %s", len(all), p)
	return all
}
