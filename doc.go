/*
Package astmatch is a toolbox for structural pattern matching and rewriting of
abstract syntax trees.

Patterns are not written in a separate syntax. Clients parse an example tree,
sprinkle placeholder identifiers into it (`_x` for a single node, `__xs` for a
whole sequence of nodes) and compile it. Compiled patterns may then be matched
against concrete trees, searched for in a tree, or used to rewrite a tree.
Package structure is as follows:

■ pattern: Package pattern compiles example trees into patterns, matches patterns
against trees and expands templates with captured bindings.

■ rewrite: Package rewrite implements search and replace on trees, on top of
package pattern, together with simple term rewriting to a fixpoint.

■ walk: Package walk provides lazy tree traversals.

■ exprlang: Package exprlang implements a small Python-like expression language,
which serves as a source of trees for tests, examples and the command line sandbox.

The base package contains the tree model, which is used throughout all the other
packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package astmatch

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'astmatch.tree'.
func tracer() tracing.Trace {
	return tracing.Select("astmatch.tree")
}
