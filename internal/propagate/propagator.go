package propagate

import (
	"sort"
	"strings"

	"github.com/aspgo/grounder/internal/literal"
	"github.com/aspgo/grounder/internal/statement"
	"github.com/aspgo/grounder/internal/term"
)

// Propagator evaluates the §4.6 satisfiability oracle for a fixed
// batch of aggregate/choice rewrites, given the grounder's current
// certain (I) and possible (J) sets of ε/η ground instances.
type Propagator struct {
	aggs    map[int]*statement.AggregateRewrite
	choices map[int]*statement.ChoiceRewrite
}

// New builds a Propagator over every aggregate/choice rewrite found
// while rewriting a component's statements.
func New(aggs []*statement.AggregateRewrite, choices []*statement.ChoiceRewrite) *Propagator {
	p := &Propagator{aggs: map[int]*statement.AggregateRewrite{}, choices: map[int]*statement.ChoiceRewrite{}}
	for _, a := range aggs {
		p.aggs[a.K] = a
	}
	for _, c := range choices {
		p.choices[c.K] = c
	}
	return p
}

func assignmentKey(terms []term.Term) string {
	parts := make([]string, len(terms))
	for i, t := range terms {
		parts[i] = t.String()
	}
	return strings.Join(parts, ",")
}

type observation struct {
	globTerms                 []term.Term
	baseCertain, basePossible bool
	// elementID -> instance terms, kept separate per certainty level
	certainElems  map[int][]term.Term
	possibleElems map[int][]term.Term
}

func newObservation() *observation {
	return &observation{certainElems: map[int][]term.Term{}, possibleElems: map[int][]term.Term{}}
}

// index scans certain/possible for this Propagator's known ε/η
// instances, grouped by (RefID, global-assignment key).
func (p *Propagator) index(certain, possible []literal.Literal) map[int]map[string]*observation {
	byK := map[int]map[string]*observation{}
	get := func(k int, key string) *observation {
		m, ok := byK[k]
		if !ok {
			m = map[string]*observation{}
			byK[k] = m
		}
		o, ok := m[key]
		if !ok {
			o = newObservation()
			m[key] = o
		}
		return o
	}

	scan := func(set []literal.Literal, certainLevel bool) {
		for _, l := range set {
			switch v := l.(type) {
			case *literal.Base:
				key := assignmentKey(v.AssignmentTerms)
				o := get(v.RefID, key)
				o.globTerms = v.AssignmentTerms
				if certainLevel {
					o.baseCertain = true
				}
				o.basePossible = true
			case *literal.Element:
				nLocal := len(v.LocalVars)
				globTerms := v.AssignmentTerms[nLocal:]
				key := assignmentKey(globTerms)
				o := get(v.RefID, key)
				o.globTerms = globTerms
				if certainLevel {
					o.certainElems[v.ElementID] = v.AssignmentTerms
				}
				o.possibleElems[v.ElementID] = v.AssignmentTerms
			}
		}
	}
	scan(possible, false)
	scan(certain, true)
	return byK
}

// elementWeight substitutes an aggregate element's weight term with
// the bindings recorded in a ground η instance and evaluates it.
func elementWeight(rewrite *statement.AggregateRewrite, elementID int, assignment []term.Term) term.Number {
	elem := rewrite.Original.Elements[elementID]
	w := elem.Weight()
	if rewrite.Original.Func != literal.Sum && rewrite.Original.Func != literal.Max && rewrite.Original.Func != literal.Min {
		return w
	}
	eta := rewrite.Etas[elementID]
	etaElem, ok := eta.Head.(*literal.Element)
	if !ok {
		return w
	}
	sub := term.NewSubstitution()
	nLocal := len(etaElem.LocalVars)
	for i, id := range etaElem.LocalVars {
		sub = sub.Extend(id, assignment[i])
	}
	for i, id := range rewrite.GlobVars {
		sub = sub.Extend(id, assignment[nLocal+i])
	}
	if len(elem.Head) == 0 {
		return 0
	}
	bound := elem.Head[0].Substitute(sub)
	n, err := term.Eval(bound)
	if err != nil {
		return w
	}
	return n
}

// Propagate returns the ground placeholder literals that may hold
// given the current certain/possible ε/η instances (§4.6).
func (p *Propagator) Propagate(certain, possible []literal.Literal) []*literal.Placeholder {
	byK := p.index(certain, possible)
	var out []*literal.Placeholder

	var keys []int
	for k := range byK {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	for _, k := range keys {
		if rewrite, ok := p.aggs[k]; ok {
			out = append(out, aggregatePossible(rewrite, byK[k])...)
			continue
		}
		if rewrite, ok := p.choices[k]; ok {
			out = append(out, choicePossible(rewrite, byK[k])...)
		}
	}
	return out
}

// Assignments returns the global-variable assignment tuples observed
// among certain/possible ε/η instances for rewrite k, whether or not
// that assignment turned out to be satisfiable — used during
// reassembly to enumerate every choice instantiation that needs either
// a ChoiceRule or an unsatisfiable Constraint in the final output.
func (p *Propagator) Assignments(k int, certain, possible []literal.Literal) [][]term.Term {
	byAssignment := p.index(certain, possible)[k]
	keys := make([]string, 0, len(byAssignment))
	for key := range byAssignment {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	out := make([][]term.Term, 0, len(keys))
	for _, key := range keys {
		out = append(out, byAssignment[key].globTerms)
	}
	return out
}

func aggregatePossible(rewrite *statement.AggregateRewrite, byAssignment map[string]*observation) []*literal.Placeholder {
	var out []*literal.Placeholder
	for _, o := range byAssignment {
		globTerms := o.globTerms
		var b bounds
		switch rewrite.Original.Func {
		case literal.Count:
			b = countBounds(len(o.certainElems), len(o.possibleElems))
		case literal.Sum:
			var certainW, optionalW []int64
			for id, terms := range o.possibleElems {
				w := int64(elementWeight(rewrite, id, terms))
				if _, isCertain := o.certainElems[id]; isCertain {
					certainW = append(certainW, w)
				} else {
					optionalW = append(optionalW, w)
				}
			}
			b = sumBounds(certainW, optionalW)
		case literal.Max:
			var certainW, possibleW []int64
			for id, terms := range o.possibleElems {
				possibleW = append(possibleW, int64(elementWeight(rewrite, id, terms)))
			}
			for id, terms := range o.certainElems {
				certainW = append(certainW, int64(elementWeight(rewrite, id, terms)))
			}
			b = maxBounds(certainW, possibleW)
		case literal.Min:
			var certainW, possibleW []int64
			for id, terms := range o.possibleElems {
				possibleW = append(possibleW, int64(elementWeight(rewrite, id, terms)))
			}
			for id, terms := range o.certainElems {
				certainW = append(certainW, int64(elementWeight(rewrite, id, terms)))
			}
			b = minBounds(certainW, possibleW)
		}
		if len(o.possibleElems) == 0 && !o.basePossible {
			continue
		}
		if len(o.possibleElems) == 0 {
			b = bounds{Empty: true}
		}
		if !guardsPossiblySatisfied(rewrite.Original.LGuard, rewrite.Original.RGuard, b) {
			continue
		}
		ph, err := literal.NewPlaceholder(literal.AuxAggregate, rewrite.K, rewrite.GlobVars, globTerms, rewrite.Original.NAF)
		if err != nil {
			continue
		}
		out = append(out, ph)
	}
	return out
}

// choicePossible implements the choice oracle with a count interval
// instead of enumerating subsets (§4.6): a choice is possibly
// satisfiable for a given global assignment if some size in
// [certain elements, possible elements] lies within the guards'
// bounds.
func choicePossible(rewrite *statement.ChoiceRewrite, byAssignment map[string]*observation) []*literal.Placeholder {
	var out []*literal.Placeholder
	for _, o := range byAssignment {
		globTerms := o.globTerms
		lo, hi := len(o.certainElems), len(o.possibleElems)
		b := bounds{Lo: int64(lo), Hi: int64(hi)}
		if lo == 0 && hi == 0 && !o.basePossible {
			continue
		}
		if !guardsPossiblySatisfied(rewrite.Original.LGuard, rewrite.Original.RGuard, b) {
			continue
		}
		ph, err := literal.NewPlaceholder(literal.AuxChoice, rewrite.K, rewrite.GlobVars, globTerms, false)
		if err != nil {
			continue
		}
		out = append(out, ph)
	}
	return out
}

