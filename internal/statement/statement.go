package statement

import (
	"github.com/aspgo/grounder/internal/literal"
	"github.com/aspgo/grounder/internal/safety"
	"github.com/aspgo/grounder/internal/term"
)

// Statement is the sum type of spec.md §3.5's five rule variants.
// Safety is cached per §3.5 ("Safety is cached").
type Statement interface {
	// Body returns the rule's body literals (aggregate-free for a
	// statement rebuilt from RewriteAggregates' output).
	Body() []literal.Literal

	// HeadPredicates returns the statement's consequent predicates
	// (possibly empty, e.g. for a Constraint) — used to build the
	// dependency graph (§3.9).
	HeadPredicates() []*literal.Predicate

	// HeadSigs returns the dependency-graph keys for the statement's
	// consequents: predicate Sig()s for the five §3.5 variants, or the
	// auxiliary literal's AsPredicateSig() for a rewritten ε/η/placeholder
	// rule (§4.4, §4.5) — so the graph treats every rule kind uniformly.
	HeadSigs() []string

	// Globals returns the statement's global variable set (§4.1).
	Globals() map[term.VarID]struct{}

	// VarTable returns the statement's per-statement fresh-name
	// counters (§9).
	VarTable() *VariableTable

	// Substitute returns a new Statement with every body/head term
	// substituted by s.
	Substitute(s *term.Substitution) Statement

	// Ground reports whether every term in the statement is ground.
	Ground() bool

	// Safe checks (and caches) statement safety (§3.5, §4.1); returns
	// a *safety.Error naming the unsafe variables otherwise.
	Safe() error

	// NonDeterministic reports whether the statement has a
	// non-deterministic head shape (true only for ChoiceRule, §3.5
	// "consequent-determinism").
	NonDeterministic() bool

	String() string
}

// safetyCache is embedded in each variant to memoize Safe() (§3.5).
type safetyCache struct {
	checked bool
	err     error
}

func (c *safetyCache) run(compute func() error) error {
	if !c.checked {
		c.err = compute()
		c.checked = true
	}
	return c.err
}

func substituteBody(body []literal.Literal, s *term.Substitution) []literal.Literal {
	out := make([]literal.Literal, len(body))
	for i, l := range body {
		out[i] = l.Substitute(s)
	}
	return out
}

func bodyGround(body []literal.Literal) bool {
	for _, l := range body {
		if !l.Ground() {
			return false
		}
	}
	return true
}

func checkBodySafety(body []literal.Literal, globals map[term.VarID]struct{}) error {
	tr := safety.BodySafety(body, aggregateInnerGlobals(globals))
	return safety.Check(tr, globals)
}
