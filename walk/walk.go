/*
Package walk implements lazy traversals of trees.

A traversal is a sequence of tree nodes, produced on demand. Clients pull nodes
one at a time and may stop at any moment:

    seq := walk.PreOrder(root)
    for tn, ok := seq.Next(); ok; tn, ok = seq.Next() {
        …
    }

While a sequence is being consumed, the current node may be replaced
in place or excluded from further descent. Sequences are not restartable;
a new sequence has to be requested for every pass over a tree.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package walk

import (
	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/npillmayer/astmatch"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'astmatch.tree'.
func tracer() tracing.Trace {
	return tracing.Select("astmatch.tree")
}

// --- Tree nodes ------------------------------------------------------------

// A TreeNode represents a node visited during a traversal. It remembers its
// position within its parent node, which makes in-place replacement possible.
type TreeNode struct {
	Node   *astmatch.Node
	parent *astmatch.Node
	field  int // index of parent's field holding Node
	index  int // index within a sequence field, or -1 for a child field
}

// internal shortcut for creating a root node
func root(n *astmatch.Node) TreeNode {
	return TreeNode{Node: n, field: -1, index: -1}
}

// Parent returns the parent of a tree node, or nil for the root of a traversal.
func (tn TreeNode) Parent() *astmatch.Node {
	return tn.parent
}

// IsRoot is a predicate: is this the start node of a traversal?
func (tn TreeNode) IsRoot() bool {
	return tn.parent == nil
}

// FieldName returns the name of the parent's field holding the node.
func (tn TreeNode) FieldName() string {
	if tn.parent == nil {
		return ""
	}
	return tn.parent.Fields[tn.field].Name
}

// ReplaceWith replaces a node with a new node, altering the parent node (if present).
// Replacing the root of a traversal does not alter anything but the returned
// tree node; clients are responsible for keeping track of a new root.
func (tn TreeNode) ReplaceWith(n *astmatch.Node) TreeNode {
	if tn.parent == nil {
		return root(n)
	}
	f := &tn.parent.Fields[tn.field]
	if tn.index < 0 {
		if f.Value != astmatch.Value(tn.Node) {
			panic("inconsistent parent-node combination; node is no valid child")
		}
		f.Value = n
	} else {
		seq, ok := f.Value.(astmatch.Sequence)
		if !ok || tn.index >= len(seq) || seq[tn.index] != astmatch.Value(tn.Node) {
			panic("inconsistent parent-node combination; node is no valid sequence element")
		}
		seq[tn.index] = n
	}
	tn.Node = n
	return tn
}

func (tn TreeNode) String() string {
	if tn.Node == nil {
		return "<nil>"
	}
	return tn.Node.String()
}

// --- Sequences -------------------------------------------------------------

// TreeSeq is a type which represents a tree walk as a sequence.
type TreeSeq struct {
	stack   *arraystack.Stack
	current TreeNode
	descend bool // push children of current before moving on
	done    bool
}

// PreOrder creates a sequence traversing a tree depth-first in pre-order:
// a node is produced before its children, and children are produced in the
// order of their fields and, for sequence fields, in sequence order.
//
// Only nodes are produced; leafs and placeholders are skipped.
func PreOrder(n *astmatch.Node) *TreeSeq {
	seq := &TreeSeq{stack: arraystack.New()}
	if n == nil {
		seq.done = true
		return seq
	}
	seq.stack.Push(root(n))
	return seq
}

// Next returns the next node of a traversal. If the traversal is exhausted,
// ok is false.
func (seq *TreeSeq) Next() (tn TreeNode, ok bool) {
	if seq.done {
		return TreeNode{}, false
	}
	if seq.descend {
		seq.pushChildren(seq.current.Node)
		seq.descend = false
	}
	top, ok := seq.stack.Pop()
	if !ok {
		seq.done = true
		seq.current = TreeNode{}
		return TreeNode{}, false
	}
	seq.current = top.(TreeNode)
	seq.descend = true
	return seq.current, true
}

// pushChildren pushes the child nodes of n in reverse order, so that they will be
// popped in field order.
func (seq *TreeSeq) pushChildren(n *astmatch.Node) {
	if n == nil {
		return
	}
	for i := len(n.Fields) - 1; i >= 0; i-- {
		switch v := n.Fields[i].Value.(type) {
		case *astmatch.Node:
			if v != nil {
				seq.stack.Push(TreeNode{Node: v, parent: n, field: i, index: -1})
			}
		case astmatch.Sequence:
			for j := len(v) - 1; j >= 0; j-- {
				if child, ok := v[j].(*astmatch.Node); ok && child != nil {
					seq.stack.Push(TreeNode{Node: child, parent: n, field: i, index: j})
				}
			}
		}
	}
}

// Prune excludes the children of the current node from the traversal.
func (seq *TreeSeq) Prune() {
	seq.descend = false
}

// Replace replaces the current node by n, altering its parent node (if present).
// The replacement will not be traversed.
func (seq *TreeSeq) Replace(n *astmatch.Node) TreeNode {
	tracer().Debugf("replace %s by %s", seq.current, n)
	seq.current = seq.current.ReplaceWith(n)
	seq.descend = false
	return seq.current
}

// Current returns the node most recently produced by Next.
func (seq *TreeSeq) Current() TreeNode {
	return seq.current
}

// Break signals a sequence to stop iterating.
func (seq *TreeSeq) Break() {
	seq.done = true
	seq.stack.Clear()
}

// Done returns true if a sequence stopped iterating.
func (seq *TreeSeq) Done() bool {
	return seq.done
}

// List returns all the remaining nodes of a traversal.
func (seq *TreeSeq) List() []*astmatch.Node {
	var nodes []*astmatch.Node
	for tn, ok := seq.Next(); ok; tn, ok = seq.Next() {
		nodes = append(nodes, tn.Node)
	}
	return nodes
}

// A NodeFilter filters nodes from a sequence of tree traversal nodes.
type NodeFilter func(tn TreeNode) bool

// IsLeaf is a filter for tree nodes which only accepts nodes without child nodes.
func IsLeaf() NodeFilter {
	return func(tn TreeNode) bool {
		for _, f := range tn.Node.Fields {
			switch v := f.Value.(type) {
			case *astmatch.Node:
				return false
			case astmatch.Sequence:
				if len(v) > 0 {
					return false
				}
			}
		}
		return true
	}
}

// HasTag is a filter for tree nodes with a given tag.
func HasTag(tag string) NodeFilter {
	return func(tn TreeNode) bool {
		return tn.Node.Tag == tag
	}
}

// FilteredSeq is a traversal producing only nodes accepted by a filter.
type FilteredSeq struct {
	*TreeSeq
	filter NodeFilter
}

// Where applies a filter to a traversal.
func (seq *TreeSeq) Where(filt NodeFilter) *FilteredSeq {
	return &FilteredSeq{TreeSeq: seq, filter: filt}
}

// Next returns the next node accepted by the filter.
func (fseq *FilteredSeq) Next() (TreeNode, bool) {
	for tn, ok := fseq.TreeSeq.Next(); ok; tn, ok = fseq.TreeSeq.Next() {
		if fseq.filter(tn) {
			return tn, true
		}
	}
	return TreeNode{}, false
}

// List returns all the remaining nodes accepted by the filter.
func (fseq *FilteredSeq) List() []*astmatch.Node {
	var nodes []*astmatch.Node
	for tn, ok := fseq.Next(); ok; tn, ok = fseq.Next() {
		nodes = append(nodes, tn.Node)
	}
	return nodes
}
