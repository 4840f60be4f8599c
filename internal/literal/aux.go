package literal

import (
	"fmt"

	"github.com/aspgo/grounder/internal/term"
)

// AuxKind distinguishes the aggregate (α/ε α/η α) and choice (χ/ε χ/η χ)
// auxiliary families (§3.2).
type AuxKind int

const (
	AuxAggregate AuxKind = iota
	AuxChoice
)

func (k AuxKind) placeholderPrefix() string {
	if k == AuxAggregate {
		return "α"
	}
	return "χ"
}
func (k AuxKind) basePrefix() string {
	if k == AuxAggregate {
		return "εα"
	}
	return "εχ"
}
func (k AuxKind) elementPrefix() string {
	if k == AuxAggregate {
		return "ηα"
	}
	return "ηχ"
}

// ErrInvalidAuxLiteral is the InvalidAuxLiteralError of spec.md §7: an
// attempt to classically- or default-negate an auxiliary literal that
// forbids it.
type ErrInvalidAuxLiteral struct{ Reason string }

func (e *ErrInvalidAuxLiteral) Error() string {
	return fmt.Sprintf("literal: invalid auxiliary literal: %s", e.Reason)
}

// Placeholder replaces an aggregate/choice literal during grounding
// (§3.2, §4.4 step 1, §4.5 step 1), keyed by RefID (the rewrite's
// sequence number k) and parameterized by the global-variable
// assignment. It preserves the original literal's NAF flag but can
// never be classically negated (§3.2 invariant).
type Placeholder struct {
	Kind            AuxKind
	RefID           int
	GlobVars        []term.VarID
	AssignmentTerms []term.Term
	NAF             bool
}

// NewPlaceholder validates |GlobVars| == |AssignmentTerms| (§3.2).
func NewPlaceholder(kind AuxKind, refID int, globVars []term.VarID, assignment []term.Term, naf bool) (*Placeholder, error) {
	if len(globVars) != len(assignment) {
		return nil, &ErrInvalidAuxLiteral{Reason: "placeholder literal: |glob_vars| != |assignment_terms|"}
	}
	return &Placeholder{Kind: kind, RefID: refID, GlobVars: globVars, AssignmentTerms: assignment, NAF: naf}, nil
}

func (p *Placeholder) String() string {
	prefix := ""
	if p.NAF {
		prefix = "not "
	}
	return fmt.Sprintf("%s%s%d(%s)", prefix, p.Kind.placeholderPrefix(), p.RefID, termsString(p.AssignmentTerms))
}

func (p *Placeholder) Substitute(s *term.Substitution) Literal {
	newTerms := make([]term.Term, len(p.AssignmentTerms))
	for i, t := range p.AssignmentTerms {
		newTerms[i] = t.Substitute(s)
	}
	return &Placeholder{Kind: p.Kind, RefID: p.RefID, GlobVars: p.GlobVars, AssignmentTerms: newTerms, NAF: p.NAF}
}

func (p *Placeholder) Vars() map[term.VarID]struct{} {
	out := map[term.VarID]struct{}{}
	for _, t := range p.AssignmentTerms {
		for id := range t.Vars() {
			out[id] = struct{}{}
		}
	}
	return out
}

func (p *Placeholder) Ground() bool {
	for _, t := range p.AssignmentTerms {
		if !t.Ground() {
			return false
		}
	}
	return true
}

// AsPredicateSig returns the name used to key this placeholder family
// as a pseudo-predicate in the dependency graph (§3.9): distinct
// RefIDs are distinct predicates, since each aggregate/choice
// expression rewrites to its own α_k/χ_k.
func (p *Placeholder) AsPredicateSig() string {
	return fmt.Sprintf("%s%d/%d", p.Kind.placeholderPrefix(), p.RefID, len(p.AssignmentTerms))
}

// Base is the ε auxiliary literal encoding whether an aggregate/choice
// is satisfiable with an empty element set (§3.2, §4.4 step 2). It can
// be neither classically nor default negated (§3.2 invariant).
type Base struct {
	Kind            AuxKind
	RefID           int
	GlobVars        []term.VarID
	AssignmentTerms []term.Term
}

func NewBase(kind AuxKind, refID int, globVars []term.VarID, assignment []term.Term) (*Base, error) {
	if len(globVars) != len(assignment) {
		return nil, &ErrInvalidAuxLiteral{Reason: "base literal: |glob_vars| != |assignment_terms|"}
	}
	return &Base{Kind: kind, RefID: refID, GlobVars: globVars, AssignmentTerms: assignment}, nil
}

func (b *Base) String() string {
	return fmt.Sprintf("%s%d(%s)", b.Kind.basePrefix(), b.RefID, termsString(b.AssignmentTerms))
}
func (b *Base) Substitute(s *term.Substitution) Literal {
	newTerms := make([]term.Term, len(b.AssignmentTerms))
	for i, t := range b.AssignmentTerms {
		newTerms[i] = t.Substitute(s)
	}
	return &Base{Kind: b.Kind, RefID: b.RefID, GlobVars: b.GlobVars, AssignmentTerms: newTerms}
}
func (b *Base) Vars() map[term.VarID]struct{} {
	out := map[term.VarID]struct{}{}
	for _, t := range b.AssignmentTerms {
		for id := range t.Vars() {
			out[id] = struct{}{}
		}
	}
	return out
}
func (b *Base) Ground() bool {
	for _, t := range b.AssignmentTerms {
		if !t.Ground() {
			return false
		}
	}
	return true
}
func (b *Base) AsPredicateSig() string {
	return fmt.Sprintf("%s%d/%d", b.Kind.basePrefix(), b.RefID, len(b.AssignmentTerms))
}

// Element is the η auxiliary literal encoding instantiation of one
// aggregate/choice element (§3.2, §4.4 step 3). It can be neither
// classically nor default negated (§3.2 invariant).
type Element struct {
	Kind            AuxKind
	RefID           int
	ElementID       int
	LocalVars       []term.VarID
	GlobVars        []term.VarID
	AssignmentTerms []term.Term
}

func NewElement(kind AuxKind, refID, elementID int, localVars, globVars []term.VarID, assignment []term.Term) (*Element, error) {
	if len(globVars)+len(localVars) != len(assignment) {
		return nil, &ErrInvalidAuxLiteral{Reason: "element literal: assignment arity mismatch"}
	}
	return &Element{Kind: kind, RefID: refID, ElementID: elementID, LocalVars: localVars, GlobVars: globVars, AssignmentTerms: assignment}, nil
}

func (e *Element) String() string {
	return fmt.Sprintf("%s%d_%d(%s)", e.Kind.elementPrefix(), e.RefID, e.ElementID, termsString(e.AssignmentTerms))
}
func (e *Element) Substitute(s *term.Substitution) Literal {
	newTerms := make([]term.Term, len(e.AssignmentTerms))
	for i, t := range e.AssignmentTerms {
		newTerms[i] = t.Substitute(s)
	}
	return &Element{Kind: e.Kind, RefID: e.RefID, ElementID: e.ElementID, LocalVars: e.LocalVars, GlobVars: e.GlobVars, AssignmentTerms: newTerms}
}
func (e *Element) Vars() map[term.VarID]struct{} {
	out := map[term.VarID]struct{}{}
	for _, t := range e.AssignmentTerms {
		for id := range t.Vars() {
			out[id] = struct{}{}
		}
	}
	return out
}
func (e *Element) Ground() bool {
	for _, t := range e.AssignmentTerms {
		if !t.Ground() {
			return false
		}
	}
	return true
}
func (e *Element) AsPredicateSig() string {
	return fmt.Sprintf("%s%d_%d/%d", e.Kind.elementPrefix(), e.RefID, e.ElementID, len(e.AssignmentTerms))
}

func termsString(ts []term.Term) string {
	out := ""
	for i, t := range ts {
		if i > 0 {
			out += ","
		}
		out += t.String()
	}
	return out
}
