/*
Package pattern compiles example trees into patterns, matches patterns against
trees, and expands templates with the bindings captured by a match.

Pattern Syntax

A pattern is an ordinary tree, usually created by a parser from source text.
Identifiers following a naming convention are interpreted as placeholders:

    _a      matches exactly one node and binds it to name "a" (Blank)
    __as    matches a whole sequence of zero or more nodes (BlankNullSequence)
    $_a     is the plain identifier "_a"; one level of "$" is stripped

A BlankNullSequence has to be the only element of a sequence field. Mixing it
with sibling elements would require backtracking and is rejected by Compile.
Templates, i.e. the right-hand sides of rewrites, are free to mix them, as
expansion just splices bound sequences in place.

Using the same placeholder name more than once makes a pattern non-linear:

    pattern: _x + _x
    matches: f(1) + f(1)
    fails:   f(1) + f(2)

Ownership

Compile and CompileTemplate never modify the example tree they are given.
Matching never modifies a pattern, and expansion always works on a private copy,
so compiled patterns may be shared freely, even between goroutines.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package pattern

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'astmatch.pattern'.
func tracer() tracing.Trace {
	return tracing.Select("astmatch.pattern")
}

func assertThat(that bool, err error, msg string, msgargs ...interface{}) {
	if !that {
		e := fmt.Errorf("%s: %w", fmt.Sprintf(msg, msgargs...), err)
		tracer().Errorf("%v", e)
		panic(e)
	}
}
