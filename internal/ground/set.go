// Package ground implements spec.md §4.8-§4.11: the per-statement
// matcher, the per-component fixpoint, and the program-level grounding
// loop that together turn a safe, parsed Program into a ground one.
package ground

import (
	"fmt"

	"github.com/aspgo/grounder/internal/literal"
	"github.com/aspgo/grounder/internal/term"
)

// Set is a deduplicated collection of ground consequent literals (a
// certain or possible set, §3.10), indexed by predicate/auxiliary
// signature for fast candidate lookup during matching.
type Set struct {
	bySig map[string][]literal.Literal
	seen  map[string]bool
}

// NewSet returns an empty Set.
func NewSet() *Set { return &Set{bySig: map[string][]literal.Literal{}, seen: map[string]bool{}} }

func atomKey(sig string, terms []term.Term) string {
	s := sig
	for _, t := range terms {
		s += "|" + t.String()
	}
	return s
}

// sigAndTerms extracts the dependency-graph signature and argument
// terms from a ground consequent literal, normalizing it to its
// positive form (facts carry no NAF/classical-negation distinction in
// I/J, §4.8).
func sigAndTerms(l literal.Literal) (sig string, terms []term.Term, ok bool) {
	switch v := l.(type) {
	case *literal.Predicate:
		return v.Sig(), v.Terms, true
	case *literal.Base:
		return v.AsPredicateSig(), v.AssignmentTerms, true
	case *literal.Element:
		return v.AsPredicateSig(), v.AssignmentTerms, true
	case *literal.Placeholder:
		return v.AsPredicateSig(), v.AssignmentTerms, true
	default:
		return "", nil, false
	}
}

func positive(l literal.Literal) literal.Literal {
	switch v := l.(type) {
	case *literal.Predicate:
		return v.Positive()
	case *literal.Placeholder:
		return &literal.Placeholder{Kind: v.Kind, RefID: v.RefID, GlobVars: v.GlobVars, AssignmentTerms: v.AssignmentTerms, NAF: false}
	default:
		return l
	}
}

// Add inserts l's positive form, returning true if it was not already
// present.
func (s *Set) Add(l literal.Literal) bool {
	l = positive(l)
	sig, terms, ok := sigAndTerms(l)
	if !ok {
		return false
	}
	key := atomKey(sig, terms)
	if s.seen[key] {
		return false
	}
	s.seen[key] = true
	s.bySig[sig] = append(s.bySig[sig], l)
	return true
}

// Has reports whether l's positive form is already a member.
func (s *Set) Has(l literal.Literal) bool {
	l = positive(l)
	sig, terms, ok := sigAndTerms(l)
	if !ok {
		return false
	}
	return s.seen[atomKey(sig, terms)]
}

// BySig returns the current members matching a given signature.
func (s *Set) BySig(sig string) []literal.Literal { return s.bySig[sig] }

// Len returns the number of distinct members.
func (s *Set) Len() int { return len(s.seen) }

// Slice returns every member, order not significant.
func (s *Set) Slice() []literal.Literal {
	out := make([]literal.Literal, 0, s.Len())
	for _, bucket := range s.bySig {
		out = append(out, bucket...)
	}
	return out
}

// Union returns a new Set containing every member of s and other.
func Union(sets ...*Set) *Set {
	out := NewSet()
	for _, s := range sets {
		for _, l := range s.Slice() {
			out.Add(l)
		}
	}
	return out
}

// Clone returns a shallow independent copy of s.
func (s *Set) Clone() *Set { return Union(s) }

func (s *Set) String() string { return fmt.Sprintf("Set(%d)", s.Len()) }
