package ground

import (
	"github.com/aspgo/grounder/internal/literal"
	"github.com/aspgo/grounder/internal/propagate"
	"github.com/aspgo/grounder/internal/statement"
	"github.com/aspgo/grounder/internal/term"
)

// Reassemble implements §4.6's assemble(): every ground aggregate
// placeholder occurrence left in a host statement's body is replaced
// by its reconstructed Aggregate literal, and every choice rewrite
// yields one ground ChoiceRule per satisfiable global assignment (an
// unsatisfiable Constraint with the same body otherwise).
func Reassemble(hosts []statement.Statement, aggs []*statement.AggregateRewrite, choices []*statement.ChoiceRewrite, prop *propagate.Propagator, certain, possible *Set) ([]statement.Statement, error) {
	out := make([]statement.Statement, 0, len(hosts))
	for _, s := range hosts {
		rebuilt, ok, err := reassembleAggregates(s, aggs, certain.Slice(), possible.Slice())
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, rebuilt)
		}
	}

	for _, rw := range choices {
		stmts, err := reassembleChoice(rw, prop, certain.Slice(), possible.Slice())
		if err != nil {
			return nil, err
		}
		out = append(out, stmts...)
	}
	return out, nil
}

// reassembleAggregates replaces every α_k placeholder found in s's
// body with its assembled Aggregate literal. ok is false when some
// occurrence has no satisfiable assignment, meaning the whole ground
// rule instance cannot fire and is dropped.
func reassembleAggregates(s statement.Statement, aggs []*statement.AggregateRewrite, certain, possible []literal.Literal) (statement.Statement, bool, error) {
	byK := map[int]*statement.AggregateRewrite{}
	for _, rw := range aggs {
		byK[rw.K] = rw
	}

	body := s.Body()
	changed := false
	newBody := make([]literal.Literal, len(body))
	for i, l := range body {
		ph, isPlaceholder := l.(*literal.Placeholder)
		if !isPlaceholder || ph.Kind != literal.AuxAggregate {
			newBody[i] = l
			continue
		}
		rw, known := byK[ph.RefID]
		if !known {
			newBody[i] = l
			continue
		}
		agg, satisfiable := propagate.AssembleAggregateForAssignment(rw, certain, possible, ph.AssignmentTerms)
		if !satisfiable {
			return nil, false, nil
		}
		if ph.NAF {
			agg = &literal.Aggregate{Func: agg.Func, Elements: agg.Elements, LGuard: agg.LGuard, RGuard: agg.RGuard, NAF: true}
		}
		newBody[i] = agg
		changed = true
	}
	if !changed {
		return s, true, nil
	}
	rebuilt, err := rebuildWithBody(s, newBody)
	if err != nil {
		return nil, false, err
	}
	return rebuilt, true, nil
}

// reassembleChoice enumerates every global assignment observed for a
// choice rewrite (whether or not its cardinality guard turned out
// satisfiable) and emits the corresponding ground ChoiceRule or, for an
// assignment whose element set could never meet the guard, an
// unsatisfiable ground Constraint carrying the same body (§4.6 last
// paragraph).
func reassembleChoice(rw *statement.ChoiceRewrite, prop *propagate.Propagator, certain, possible []literal.Literal) ([]statement.Statement, error) {
	var out []statement.Statement
	for _, globTerms := range prop.Assignments(rw.K, certain, possible) {
		sub := term.NewSubstitution()
		for i, id := range rw.GlobVars {
			sub = sub.Extend(id, globTerms[i])
		}
		groundBody := make([]literal.Literal, len(rw.Body))
		for i, l := range rw.Body {
			groundBody[i] = l.Substitute(sub)
		}

		choice, satisfiable := propagate.AssembleChoiceForAssignment(rw, certain, possible, globTerms)
		if !satisfiable {
			c, err := statement.NewConstraint(groundBody, statement.NewVariableTable())
			if err != nil {
				return nil, err
			}
			out = append(out, c)
			continue
		}
		cr, err := statement.NewChoiceRule(choice, groundBody, statement.NewVariableTable())
		if err != nil {
			return nil, err
		}
		out = append(out, cr)
	}
	return out, nil
}
