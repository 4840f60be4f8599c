package ground

import (
	"github.com/aspgo/grounder/internal/literal"
	"github.com/aspgo/grounder/internal/term"
)

// classify splits a statement body into binders (positive occurrences
// that can be matched against a domain set to extend the
// substitution) and filters (literals that only ever test an
// already-bound substitution), preserving each group's relative order
// (§4.8's "select a literal that... has at least one positive
// predicate occurrence" is realized here by grounding every binder
// before any filter is checked).
func classify(body []literal.Literal) (binders, filters []literal.Literal) {
	for _, l := range body {
		switch v := l.(type) {
		case *literal.Predicate:
			if v.NAF {
				filters = append(filters, l)
			} else {
				binders = append(binders, l)
			}
		case *literal.Placeholder:
			if v.NAF {
				filters = append(filters, l)
			} else {
				binders = append(binders, l)
			}
		case *literal.Base, *literal.Element:
			binders = append(binders, l)
		default:
			filters = append(filters, l)
		}
	}
	return binders, filters
}

// termsOf extracts the argument terms a binder/filter literal is
// matched or checked on.
func termsOf(l literal.Literal) []term.Term {
	switch v := l.(type) {
	case *literal.Predicate:
		return v.Terms
	case *literal.Base:
		return v.AssignmentTerms
	case *literal.Element:
		return v.AssignmentTerms
	case *literal.Placeholder:
		return v.AssignmentTerms
	default:
		return nil
	}
}

// sigOf extracts the dependency signature a binder/filter literal is
// keyed by in a Set.
func sigOf(l literal.Literal) (string, bool) {
	switch v := l.(type) {
	case *literal.Predicate:
		return v.Sig(), true
	case *literal.Base:
		return v.AsPredicateSig(), true
	case *literal.Element:
		return v.AsPredicateSig(), true
	case *literal.Placeholder:
		return v.AsPredicateSig(), true
	default:
		return "", false
	}
}

// matchTuple unifies two equal-length term slices positionally,
// merging the resulting bindings (§4.2's element-wise Functional
// match, applied directly to a literal's argument list rather than by
// wrapping it in a synthetic term.Functional).
func matchTuple(self, other []term.Term) (*term.Substitution, bool) {
	if len(self) != len(other) {
		return nil, false
	}
	sub := term.NewSubstitution()
	for i := range self {
		s, ok := term.Match(self[i], other[i])
		if !ok {
			return nil, false
		}
		merged, err := term.Merge(sub, s)
		if err != nil {
			return nil, false
		}
		sub = merged
	}
	return sub, true
}
