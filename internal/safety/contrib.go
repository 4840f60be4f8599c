package safety

import (
	"github.com/aspgo/grounder/internal/literal"
	"github.com/aspgo/grounder/internal/term"
)

// TermSafety is Variable::safety()/Number::safety()/... (§4.1): a bare
// variable contributes ({v},∅,∅); every other term variant is ground
// or carries no safety obligation of its own (its variables are
// accounted for by whichever literal embeds it).
func TermSafety(t term.Term) Triplet {
	if id, ok := term.VarIDOf(t); ok {
		return SafeVar(id)
	}
	return Empty()
}

// LiteralSafety computes a literal's safety contribution (§4.1):
//
//   - BuiltinLiteral(=): each variable on one side generates a rule
//     making it depender on the other side's free variables.
//   - BuiltinLiteral(relop != =): marks all variables as unsafe.
//   - PredicateLiteral, positive: closure over argument safeties (all
//     variables safe).
//   - PredicateLiteral, NAF: all variables unsafe.
//   - AggregateLiteral: outer (guard-term) variables join with inner
//     global variables; for `=` guards produce rules v <- inner
//     globals; otherwise all outer variables unsafe.
//
// innerGlobals is only consulted for AggregateLiteral and must be the
// aggregate's already-rewritten inner global-variable set (the
// variables an α-placeholder's assignment would carry).
func LiteralSafety(l literal.Literal, innerGlobals map[term.VarID]struct{}) Triplet {
	switch v := l.(type) {
	case *literal.Builtin:
		return builtinSafety(v)
	case *literal.Predicate:
		return predicateSafety(v)
	case *literal.Aggregate:
		return aggregateSafety(v, innerGlobals)
	case *literal.Placeholder:
		// Auxiliary placeholders stand in for an already-safety-checked
		// aggregate/choice; their assignment terms are always the
		// enclosing rule's known-safe global variables by construction
		// (§4.4/§4.5), so they contribute no fresh obligation.
		return Empty()
	default:
		return Empty()
	}
}

func builtinSafety(b *literal.Builtin) Triplet {
	if b.Op == literal.Eq {
		lVars := b.L.Vars()
		rVars := b.R.Vars()
		// The rules are returned unnormalized: they can only resolve
		// once the other body literals' safe variables are known.
		out := Empty()
		for v := range lVars {
			out.Rules = append(out.Rules, Rule{Depender: v, Dependees: cloneSet(rVars)})
		}
		for v := range rVars {
			out.Rules = append(out.Rules, Rule{Depender: v, Dependees: cloneSet(lVars)})
		}
		return out
	}
	return UnsafeVars(b.Vars())
}

func predicateSafety(p *literal.Predicate) Triplet {
	if p.NAF {
		return UnsafeVars(p.Vars())
	}
	var triplets []Triplet
	for _, t := range p.Terms {
		triplets = append(triplets, TermSafety(t))
	}
	if len(triplets) == 0 {
		return Empty()
	}
	return Closure(triplets...)
}

func aggregateSafety(a *literal.Aggregate, innerGlobals map[term.VarID]struct{}) Triplet {
	// Like builtinSafety, the `=` rules are left for the body closure.
	out := Empty()
	processGuard := func(g *literal.Guard) {
		if g == nil {
			return
		}
		outerVars := g.Bound.Vars()
		if g.Op == literal.Eq {
			for v := range outerVars {
				out.Rules = append(out.Rules, Rule{Depender: v, Dependees: cloneSet(innerGlobals)})
			}
		} else {
			for v := range outerVars {
				out.Unsafe[v] = struct{}{}
			}
		}
	}
	processGuard(a.LGuard)
	processGuard(a.RGuard)
	return out
}

// BodySafety folds LiteralSafety over an entire rule body via closure
// (§4.1 "A statement is safe iff body.safety() = ...").
func BodySafety(lits []literal.Literal, aggregateInnerGlobals func(literal.Literal) map[term.VarID]struct{}) Triplet {
	var triplets []Triplet
	for _, l := range lits {
		var inner map[term.VarID]struct{}
		if aggregateInnerGlobals != nil {
			inner = aggregateInnerGlobals(l)
		}
		triplets = append(triplets, LiteralSafety(l, inner))
	}
	if len(triplets) == 0 {
		return Empty()
	}
	return Closure(triplets...)
}
