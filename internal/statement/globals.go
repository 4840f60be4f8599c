package statement

import (
	"github.com/aspgo/grounder/internal/literal"
	"github.com/aspgo/grounder/internal/term"
)

// RuleGlobals computes G_rule (§4.4): the union of headVars and every
// body literal's variables, except that an Aggregate literal
// contributes only its guard-term variables (not its elements' local
// variables) — an aggregate element's own safety is checked
// separately once it becomes its own eta-rule statement (§4.4 step 3).
func RuleGlobals(headVars map[term.VarID]struct{}, body []literal.Literal) map[term.VarID]struct{} {
	out := make(map[term.VarID]struct{}, len(headVars))
	for v := range headVars {
		out[v] = struct{}{}
	}
	for _, l := range body {
		if agg, ok := l.(*literal.Aggregate); ok {
			if agg.LGuard != nil {
				for v := range agg.LGuard.Bound.Vars() {
					out[v] = struct{}{}
				}
			}
			if agg.RGuard != nil {
				for v := range agg.RGuard.Bound.Vars() {
					out[v] = struct{}{}
				}
			}
			continue
		}
		for v := range l.Vars() {
			out[v] = struct{}{}
		}
	}
	return out
}

// aggregateInnerGlobals builds the callback BodySafety needs to give
// AggregateLiteral::safety its inner-global-variable set (§4.1).
func aggregateInnerGlobals(ruleGlobals map[term.VarID]struct{}) func(literal.Literal) map[term.VarID]struct{} {
	return func(l literal.Literal) map[term.VarID]struct{} {
		if agg, ok := l.(*literal.Aggregate); ok {
			return agg.InnerGlobalVars(ruleGlobals)
		}
		return nil
	}
}

func headVarsOf(preds []*literal.Predicate) map[term.VarID]struct{} {
	out := map[term.VarID]struct{}{}
	for _, p := range preds {
		for v := range p.Vars() {
			out[v] = struct{}{}
		}
	}
	return out
}
