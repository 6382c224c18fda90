package rewrite

import (
	"errors"
	"fmt"

	"github.com/emirpasic/gods/sets/hashset"
	"github.com/npillmayer/astmatch"
	"github.com/npillmayer/astmatch/pattern"
	"github.com/npillmayer/schuko/gconf"
)

// Rule is a type representing a rule for term rewriting: every subtree matching
// Pattern will be replaced by Replace.
type Rule struct {
	Name    string
	Pattern *pattern.Pattern
	Replace Replacement
}

// ErrNoFixpoint is returned by Normalize if rewriting does not settle.
var ErrNoFixpoint = errors.New("rewriting does not reach a fixpoint")

// ConfMaxPasses is the configuration key for the default pass budget of Normalize.
const ConfMaxPasses = "astmatch.max-rewrite-passes"

const defaultMaxPasses = 64

// NormalizeOption configures Normalize.
type NormalizeOption func(*normalizer)

// MaxPasses sets the maximum number of passes of Normalize.
func MaxPasses(n int) NormalizeOption {
	return func(nz *normalizer) {
		if n > 0 {
			nz.maxPasses = n
		}
	}
}

type normalizer struct {
	maxPasses int
	seen      *hashset.Set // fingerprints of intermediate trees
}

// Normalize rewrites a tree with a set of rules until a pass leaves the tree
// unchanged, i.e. no rule matches any more or every match is replaced by an
// equal subtree.
// Within one pass every rule is applied by SubInPlace, in order. Normalize
// works on a copy of tree.
//
// If a tree re-appears after a pass (the rules are cycling) or the number of
// passes exceeds a budget, Normalize returns an error wrapping ErrNoFixpoint,
// together with the last tree computed. The budget is taken from configuration
// key "astmatch.max-rewrite-passes", if not set by option MaxPasses.
func Normalize(rules []Rule, tree *astmatch.Node, opts ...NormalizeOption) (*astmatch.Node, error) {
	nz := &normalizer{maxPasses: defaultMaxPasses, seen: hashset.New()}
	if n := gconf.GetInt(ConfMaxPasses); n > 0 {
		nz.maxPasses = n
	}
	for _, opt := range opts {
		opt(nz)
	}
	tree = tree.Copy()
	fp := astmatch.Fingerprint(tree)
	nz.seen.Add(fp)
	for pass := 1; pass <= nz.maxPasses; pass++ {
		changed := false
		for _, rule := range rules {
			var n int
			var err error
			if tree, n, err = subst(rule.Pattern, rule.Replace, tree); err != nil {
				return nil, fmt.Errorf("rule %q: %w", rule.Name, err)
			}
			if n == 0 {
				continue
			}
			// replacements may reproduce the subtrees they replace
			if after := astmatch.Fingerprint(tree); after != fp {
				tracer().Debugf("pass %d: rule %q applied %d times", pass, rule.Name, n)
				fp, changed = after, true
			}
		}
		if !changed {
			tracer().Debugf("normal form reached after %d passes", pass)
			return tree, nil
		}
		if nz.seen.Contains(fp) {
			tracer().Infof("rewrite cycle detected in pass %d", pass)
			return tree, fmt.Errorf("rules are cycling after %d passes: %w", pass, ErrNoFixpoint)
		}
		nz.seen.Add(fp)
	}
	return tree, fmt.Errorf("no normal form after %d passes: %w", nz.maxPasses, ErrNoFixpoint)
}
