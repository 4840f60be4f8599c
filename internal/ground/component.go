package ground

import (
	"github.com/aspgo/grounder/internal/literal"
	"github.com/aspgo/grounder/internal/propagate"
	"github.com/aspgo/grounder/internal/statement"
)

// headLiterals returns the ground consequent literal(s) a statement
// instance contributes to the running K/J sets: a predicate head for
// the five surface variants, or the single auxiliary literal (Base,
// Element, or Placeholder) for a rewritten ε/η/χ-replacement AuxRule.
func headLiterals(s statement.Statement) []literal.Literal {
	if aux, ok := s.(*statement.AuxRule); ok {
		return []literal.Literal{aux.Head}
	}
	out := make([]literal.Literal, 0, len(s.HeadPredicates()))
	for _, p := range s.HeadPredicates() {
		out = append(out, p)
	}
	return out
}

func partitionAux(stmts []statement.Statement) (eps, etas []*statement.AuxRule, hosts []statement.Statement) {
	for _, s := range stmts {
		aux, ok := s.(*statement.AuxRule)
		if !ok {
			hosts = append(hosts, s)
			continue
		}
		switch aux.Head.(type) {
		case *literal.Base:
			eps = append(eps, aux)
		case *literal.Element:
			etas = append(etas, aux)
		case *literal.Placeholder:
			// the choice-rewrite marker rule: its placeholder becomes
			// true only via the propagator's subset-existence test
			// (§4.6), never by grounding this rule's body directly.
		default:
			hosts = append(hosts, s)
		}
	}
	return eps, etas, hosts
}

// GroundComponent implements §4.9: the per-sub-program fixpoint over a
// refined inner component's statements, given the fixed outer
// negation-check set I and domain set J from the enclosing program
// pass. prop supplies satisfiability decisions for every aggregate/
// choice placeholder appearing among stmts.
func GroundComponent(stmts []statement.Statement, I, J *Set, prop *propagate.Propagator) ([]statement.Statement, error) {
	eps, etas, hosts := partitionAux(stmts)
	epsEtaStmts := asStatements(eps, etas)

	K := Union(I, J)
	certainEpsEta := NewSet()
	possibleEpsEta := NewSet()
	var instances []statement.Statement

	prevJLen := -1
	firstIter := true
	for J.Len() != prevJLen {
		prevJLen = J.Len()

		// ε/η instances derivable from the certain set alone.
		certInsts, err := groundAll(epsEtaStmts, I, I, !firstIter)
		if err != nil {
			return nil, err
		}
		instances = append(instances, certInsts...)
		for _, inst := range certInsts {
			for _, h := range headLiterals(inst) {
				certainEpsEta.Add(h)
				K.Add(h)
			}
		}

		// ε/η instances derivable under the broader, still-growing K.
		possInsts, err := groundAll(epsEtaStmts, I, K, !firstIter)
		if err != nil {
			return nil, err
		}
		instances = append(instances, possInsts...)
		for _, inst := range possInsts {
			for _, h := range headLiterals(inst) {
				possibleEpsEta.Add(h)
				K.Add(h)
			}
		}

		placeholders := prop.Propagate(certainEpsEta.Slice(), possibleEpsEta.Slice())
		for _, ph := range placeholders {
			if J.Add(ph) {
				K.Add(ph)
			}
		}

		hostInstances, err := groundAll(hosts, I, J, !firstIter)
		if err != nil {
			return nil, err
		}
		instances = append(instances, hostInstances...)
		for _, inst := range hostInstances {
			for _, h := range headLiterals(inst) {
				if J.Add(h) {
					K.Add(h)
				}
			}
		}

		firstIter = false
	}

	return instances, nil
}

func asStatements(groups ...[]*statement.AuxRule) []statement.Statement {
	var out []statement.Statement
	for _, g := range groups {
		for _, a := range g {
			out = append(out, a)
		}
	}
	return out
}

func groundAll(stmts []statement.Statement, I, J *Set, duplicate bool) ([]statement.Statement, error) {
	var out []statement.Statement
	for _, s := range stmts {
		insts, err := GroundStatement(s, I, J, J, duplicate)
		if err != nil {
			return nil, err
		}
		out = append(out, insts...)
	}
	return out, nil
}
