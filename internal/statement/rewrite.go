package statement

import (
	"github.com/aspgo/grounder/internal/literal"
	"github.com/aspgo/grounder/internal/term"
)

// RefSeq hands out the fresh aggregate/choice sequence numbers (the
// `k` of §4.4/§4.5), shared across every statement in a program so
// that distinct aggregate/choice expressions never collide on their
// auxiliary predicate names.
type RefSeq struct{ n int }

// Next returns the next sequence number, starting at 1.
func (s *RefSeq) Next() int {
	s.n++
	return s.n
}

// AggregateRewrite records everything §4.9's per-component fixpoint
// and §4.6's propagator need to reassemble one aggregate literal after
// grounding: its sequence id, the original literal (for reconstructing
// ground elements), its global-variable order, and the generated ε/η
// rules.
type AggregateRewrite struct {
	K           int
	Original    *literal.Aggregate
	Placeholder *literal.Placeholder
	GlobVars    []term.VarID
	Epsilon     *AuxRule
	Etas        []*AuxRule
}

// ChoiceRewrite is AggregateRewrite's counterpart for §4.5.
type ChoiceRewrite struct {
	K           int
	Original    *literal.Choice
	Placeholder *literal.Placeholder
	GlobVars    []term.VarID
	Epsilon     *AuxRule
	Etas        []*AuxRule
	// Body is the original choice rule's plain condition, substituted
	// by a G assignment at reassembly time to reconstruct the final
	// ChoiceRule/Constraint (§4.6 last paragraph).
	Body []literal.Literal
}

// RewriteAggregates applies §4.4 to every Aggregate literal in body:
// each is replaced in place by its α_k placeholder, and one
// AggregateRewrite (carrying the generated ε/η AuxRules) is returned
// per aggregate found, in body order.
func RewriteAggregates(body []literal.Literal, ruleGlobals map[term.VarID]struct{}, seq *RefSeq, vt *VariableTable) ([]literal.Literal, []*AggregateRewrite, error) {
	nonAgg := make([]literal.Literal, 0, len(body))
	for _, l := range body {
		if _, ok := l.(*literal.Aggregate); !ok {
			nonAgg = append(nonAgg, l)
		}
	}

	newBody := make([]literal.Literal, 0, len(body))
	var rewrites []*AggregateRewrite
	for _, l := range body {
		agg, ok := l.(*literal.Aggregate)
		if !ok {
			newBody = append(newBody, l)
			continue
		}

		globSet := agg.GlobalVars(ruleGlobals)
		globIDs := sortVarIDs(globSet)
		globTerms := varTerms(globIDs)

		k := seq.Next()
		ph, err := literal.NewPlaceholder(literal.AuxAggregate, k, globIDs, globTerms, agg.NAF)
		if err != nil {
			return nil, nil, err
		}
		newBody = append(newBody, ph)

		base := agg.Func.BaseValue()
		epsBody := make([]literal.Literal, 0, len(nonAgg)+2)
		if agg.LGuard != nil {
			epsBody = append(epsBody, literal.NewBuiltin(agg.LGuard.Op, agg.LGuard.Bound, base))
		}
		if agg.RGuard != nil {
			epsBody = append(epsBody, literal.NewBuiltin(agg.RGuard.Op, base, agg.RGuard.Bound))
		}
		epsBody = append(epsBody, nonAgg...)
		epsHead, err := literal.NewBase(literal.AuxAggregate, k, globIDs, globTerms)
		if err != nil {
			return nil, nil, err
		}
		epsRule := newAuxRule(epsHead, epsBody, vt)

		etas := make([]*AuxRule, len(agg.Elements))
		for i, e := range agg.Elements {
			localIDs := sortVarIDs(e.LocalVars(globSet))
			assign := make([]term.Term, 0, len(localIDs)+len(globIDs))
			assign = append(assign, varTerms(localIDs)...)
			assign = append(assign, globTerms...)
			etaHead, err := literal.NewElement(literal.AuxAggregate, k, i, localIDs, globIDs, assign)
			if err != nil {
				return nil, nil, err
			}
			etaBody := make([]literal.Literal, 0, len(e.Body)+len(nonAgg))
			etaBody = append(etaBody, e.Body...)
			etaBody = append(etaBody, nonAgg...)
			etas[i] = newAuxRule(etaHead, etaBody, vt)
		}

		rewrites = append(rewrites, &AggregateRewrite{
			K: k, Original: agg, Placeholder: ph, GlobVars: globIDs, Epsilon: epsRule, Etas: etas,
		})
	}
	return newBody, rewrites, nil
}

// RewriteChoice applies §4.5 to a ChoiceRule: the whole rule is
// replaced by an AuxRule headed by the χ_k placeholder over the rule's
// own global variables (`χ_k(G_choice) :- body.`), alongside the
// generated ε/η AuxRules.
func RewriteChoice(rule *ChoiceRule, seq *RefSeq) (*AuxRule, *ChoiceRewrite, error) {
	globIDs := sortVarIDs(rule.Globals())
	globTerms := varTerms(globIDs)

	k := seq.Next()
	ph, err := literal.NewPlaceholder(literal.AuxChoice, k, globIDs, globTerms, false)
	if err != nil {
		return nil, nil, err
	}
	replacement := newAuxRule(ph, rule.Body(), rule.vt)

	base := term.Number(0)
	epsBody := make([]literal.Literal, 0, len(rule.Body())+2)
	if rule.Choice.LGuard != nil {
		epsBody = append(epsBody, literal.NewBuiltin(rule.Choice.LGuard.Op, rule.Choice.LGuard.Bound, base))
	}
	if rule.Choice.RGuard != nil {
		epsBody = append(epsBody, literal.NewBuiltin(rule.Choice.RGuard.Op, base, rule.Choice.RGuard.Bound))
	}
	epsBody = append(epsBody, rule.Body()...)
	epsHead, err := literal.NewBase(literal.AuxChoice, k, globIDs, globTerms)
	if err != nil {
		return nil, nil, err
	}
	epsRule := newAuxRule(epsHead, epsBody, rule.vt)

	etas := make([]*AuxRule, len(rule.Choice.Elements))
	for i, e := range rule.Choice.Elements {
		localIDs := sortVarIDs(e.Vars())
		// Drop any that are actually global (an element's atom or
		// condition may reuse a rule-global variable; only the
		// remainder is local, mirroring AggregateElement.LocalVars).
		local := localIDs[:0]
		globSet := rule.Globals()
		for _, id := range localIDs {
			if _, isGlobal := globSet[id]; !isGlobal {
				local = append(local, id)
			}
		}
		assign := make([]term.Term, 0, len(local)+len(globIDs))
		assign = append(assign, varTerms(local)...)
		assign = append(assign, globTerms...)
		etaHead, err := literal.NewElement(literal.AuxChoice, k, i, local, globIDs, assign)
		if err != nil {
			return nil, nil, err
		}
		etaBody := make([]literal.Literal, 0, len(e.Condition)+len(rule.Body()))
		etaBody = append(etaBody, e.Condition...)
		etaBody = append(etaBody, rule.Body()...)
		etas[i] = newAuxRule(etaHead, etaBody, rule.vt)
	}

	return replacement, &ChoiceRewrite{
		K: k, Original: rule.Choice, Placeholder: ph, GlobVars: globIDs, Epsilon: epsRule, Etas: etas, Body: rule.Body(),
	}, nil
}
