package ground

import (
	"github.com/aspgo/grounder/internal/literal"
	"github.com/aspgo/grounder/internal/statement"
	"github.com/aspgo/grounder/internal/term"
)

// GroundStatement implements §4.8: every way to extend the empty
// substitution over s's body binders, filtered by s's negation/builtin
// filters, yields one ground instance of s. domain (J) supplies
// candidates for binding positive occurrences; negCheck (I) is tested
// for NAF literals ("not in I"); jPrev, when duplicate is true, lets
// already-fully-derived instances be skipped.
func GroundStatement(s statement.Statement, negCheck, domain, jPrev *Set, duplicate bool) ([]statement.Statement, error) {
	binders, filters := classify(s.Body())
	var out []statement.Statement
	err := groundBody(binders, filters, term.NewSubstitution(), negCheck, domain, func(sub *term.Substitution) error {
		grounded := s.Substitute(sub)
		if !grounded.Ground() {
			return nil // unbound arithmetic placeholder or similar; not a total grounding
		}
		if duplicate && jPrev != nil && allHeadsPresent(grounded, jPrev) {
			return nil
		}
		out = append(out, grounded)
		return nil
	})
	return out, err
}

func allHeadsPresent(s statement.Statement, j *Set) bool {
	heads := s.HeadPredicates()
	if len(heads) == 0 {
		return false
	}
	for _, h := range heads {
		if !j.Has(h) {
			return false
		}
	}
	return true
}

// groundBody recurses over binders first (each may extend sub with
// new bindings drawn from domain), then checks filters once every
// binder has been consumed.
func groundBody(binders, filters []literal.Literal, sub *term.Substitution, negCheck, domain *Set, emit func(*term.Substitution) error) error {
	if len(binders) == 0 {
		ok, err := checkFilters(filters, sub, negCheck)
		if err != nil {
			return err
		}
		if ok {
			return emit(sub)
		}
		return nil
	}

	l := binders[0].Substitute(sub)
	rest := binders[1:]

	if l.Ground() {
		if domain.Has(l) {
			return groundBody(rest, filters, sub, negCheck, domain, emit)
		}
		return nil // candidate cannot extend; recoverable, not an error (§4.11)
	}

	sig, ok := sigOf(l)
	if !ok {
		return nil
	}
	for _, cand := range domain.BySig(sig) {
		m, ok := matchTuple(termsOf(l), termsOf(cand))
		if !ok {
			continue
		}
		merged := term.Compose(sub, m)
		if err := groundBody(rest, filters, merged, negCheck, domain, emit); err != nil {
			return err
		}
	}
	return nil
}

func checkFilters(filters []literal.Literal, sub *term.Substitution, negCheck *Set) (bool, error) {
	for _, f := range filters {
		g := f.Substitute(sub)
		switch v := g.(type) {
		case *literal.Predicate:
			if !v.Ground() {
				return false, nil
			}
			if negCheck.Has(v) {
				return false, nil
			}
		case *literal.Placeholder:
			if !v.Ground() {
				return false, nil
			}
			if negCheck.Has(v) {
				return false, nil
			}
		case *literal.Builtin:
			if !v.Ground() {
				return false, nil
			}
			holds, err := v.Holds()
			if err != nil {
				return false, &ErrArith{Cause: err} // division by zero: fatal (§4.11, §7 ArithError)
			}
			if !holds {
				return false, nil
			}
		}
	}
	return true, nil
}
