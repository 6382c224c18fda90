/*
Command astrepl provides an interactive command line tool for experiments
with tree patterns. It serves as a sandbox for developing patterns and
rewrite templates on trees of the exprlang language.

Commands are entered one per line:

    text x = f(1) * g(2)       set the tree to search in
    pattern f(_a) * g(_b)      compile a pattern
    template _b * _a           compile a replacement template
    match f(7) * g(8)          match the pattern against a single expression
    find                       search the pattern in the tree
    sub                        replace all matches by the template
    rule [name]                add pattern and template as a rewrite rule
    normalize                  apply all rules until the tree does not change
    tree [pattern|template]    display a tree
    quit

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'astmatch.repl'
func tracer() tracing.Trace {
	return tracing.Select("astmatch.repl")
}
