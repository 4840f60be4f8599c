package propagate

import (
	"github.com/aspgo/grounder/internal/literal"
	"github.com/aspgo/grounder/internal/statement"
	"github.com/aspgo/grounder/internal/term"
)

// Assemble reconstructs one fully ground aggregate/choice literal per
// global-variable assignment observed for a rewrite's η instances
// (§4.6 last paragraph: "reassemble the aggregate/choice expression
// from its grounded elements before it is substituted back into the
// rule that used it"). Assignments with no satisfied elements and no
// satisfiable base case are dropped — the caller substitutes those
// rules away as unsatisfiable rather than grounding them.
func AssembleAggregates(rewrite *statement.AggregateRewrite, certain, possible []literal.Literal) []literal.Literal {
	p := New([]*statement.AggregateRewrite{rewrite}, nil)
	byAssignment := p.index(certain, possible)[rewrite.K]

	var out []literal.Literal
	for _, o := range byAssignment {
		if len(o.possibleElems) == 0 && !o.basePossible {
			continue
		}
		elems := make([]literal.AggregateElement, 0, len(o.possibleElems))
		for id, terms := range o.possibleElems {
			elems = append(elems, groundAggElement(rewrite, id, terms))
		}
		agg := &literal.Aggregate{
			Func:     rewrite.Original.Func,
			Elements: elems,
			LGuard:   groundGuard(rewrite.Original.LGuard),
			RGuard:   groundGuard(rewrite.Original.RGuard),
			NAF:      rewrite.Original.NAF,
		}
		out = append(out, agg)
	}
	return out
}

// AssembleChoices mirrors AssembleAggregates for choice expressions,
// reconstructing one ground *literal.Choice per global assignment from
// its satisfied η instances. The reassembled expression is only ever
// used internally (a grounded program has no surviving Choice
// literals; ChoiceRule bodies were already rewritten to placeholders
// by §4.5) — it exists so a grounder/debugger can report what a
// choice's final element set was.
func AssembleChoices(rewrite *statement.ChoiceRewrite, certain, possible []literal.Literal) []*literal.Choice {
	p := New(nil, []*statement.ChoiceRewrite{rewrite})
	byAssignment := p.index(certain, possible)[rewrite.K]

	var out []*literal.Choice
	for _, o := range byAssignment {
		if len(o.possibleElems) == 0 && !o.basePossible {
			continue
		}
		elems := make([]literal.ChoiceElement, 0, len(o.possibleElems))
		for id, terms := range o.possibleElems {
			elems = append(elems, groundChoiceElement(rewrite, id, terms))
		}
		out = append(out, &literal.Choice{
			Elements: elems,
			LGuard:   groundGuard(rewrite.Original.LGuard),
			RGuard:   groundGuard(rewrite.Original.RGuard),
		})
	}
	return out
}

// AssembleAggregateForAssignment reconstructs the single ground
// Aggregate literal for one already-known global-variable assignment
// (the AssignmentTerms of an α_k placeholder fact found in a host
// rule's body), rather than enumerating every assignment observed
// among certain/possible as AssembleAggregates does.
func AssembleAggregateForAssignment(rewrite *statement.AggregateRewrite, certain, possible []literal.Literal, globTerms []term.Term) (*literal.Aggregate, bool) {
	p := New([]*statement.AggregateRewrite{rewrite}, nil)
	byAssignment := p.index(certain, possible)[rewrite.K]
	o, ok := byAssignment[assignmentKey(globTerms)]
	if !ok || (len(o.possibleElems) == 0 && !o.basePossible) {
		return nil, false
	}
	elems := make([]literal.AggregateElement, 0, len(o.possibleElems))
	for id, terms := range o.possibleElems {
		elems = append(elems, groundAggElement(rewrite, id, terms))
	}
	return &literal.Aggregate{
		Func:     rewrite.Original.Func,
		Elements: elems,
		LGuard:   groundGuard(rewrite.Original.LGuard),
		RGuard:   groundGuard(rewrite.Original.RGuard),
		NAF:      rewrite.Original.NAF,
	}, true
}

// AssembleChoiceForAssignment mirrors AssembleAggregateForAssignment
// for one known choice global-variable assignment.
func AssembleChoiceForAssignment(rewrite *statement.ChoiceRewrite, certain, possible []literal.Literal, globTerms []term.Term) (*literal.Choice, bool) {
	p := New(nil, []*statement.ChoiceRewrite{rewrite})
	byAssignment := p.index(certain, possible)[rewrite.K]
	o, ok := byAssignment[assignmentKey(globTerms)]
	if !ok || (len(o.possibleElems) == 0 && !o.basePossible) {
		return nil, false
	}
	elems := make([]literal.ChoiceElement, 0, len(o.possibleElems))
	for id, terms := range o.possibleElems {
		elems = append(elems, groundChoiceElement(rewrite, id, terms))
	}
	return &literal.Choice{
		Elements: elems,
		LGuard:   groundGuard(rewrite.Original.LGuard),
		RGuard:   groundGuard(rewrite.Original.RGuard),
	}, true
}

func groundGuard(g *literal.Guard) *literal.Guard {
	if g == nil {
		return nil
	}
	return &literal.Guard{Op: g.Op, Bound: g.Bound}
}

func elementBinding(localVars, globVars []term.VarID, assignment []term.Term) *term.Substitution {
	sub := term.NewSubstitution()
	nLocal := len(localVars)
	for i, id := range localVars {
		sub = sub.Extend(id, assignment[i])
	}
	for i, id := range globVars {
		sub = sub.Extend(id, assignment[nLocal+i])
	}
	return sub
}

func groundAggElement(rewrite *statement.AggregateRewrite, elementID int, assignment []term.Term) literal.AggregateElement {
	orig := rewrite.Original.Elements[elementID]
	eta := rewrite.Etas[elementID]
	etaElem, ok := eta.Head.(*literal.Element)
	if !ok {
		return orig
	}
	sub := elementBinding(etaElem.LocalVars, rewrite.GlobVars, assignment)
	return orig.Substitute(sub)
}

func groundChoiceElement(rewrite *statement.ChoiceRewrite, elementID int, assignment []term.Term) literal.ChoiceElement {
	orig := rewrite.Original.Elements[elementID]
	eta := rewrite.Etas[elementID]
	etaElem, ok := eta.Head.(*literal.Element)
	if !ok {
		return orig
	}
	sub := elementBinding(etaElem.LocalVars, rewrite.GlobVars, assignment)
	return orig.Substitute(sub)
}
