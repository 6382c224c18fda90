/*
Package rewrite implements search and replace on trees.

FindIter searches a tree for all the nodes matching a pattern. Matches may nest:
a match at an outer node does not prevent matches within its subtree from being
reported.

Sub replaces every match of a pattern by a replacement. Different from FindIter,
Sub does not descend into matched nodes, and replacements are not scanned for
further matches. Use Normalize to apply a set of rules repeatedly, until a tree
does not change any more.

Replacements come in three flavours:

    rewrite.Literal(node)           // a constant tree
    rewrite.Expand(template)        // a template, expanded with the bindings of a match
    rewrite.Callback(func(…) …)     // a function computing the replacement

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package rewrite

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'astmatch.rewrite'.
func tracer() tracing.Trace {
	return tracing.Select("astmatch.rewrite")
}
