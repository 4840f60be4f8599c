// Package literal provides the literal algebra: predicate literals
// (optionally classically and/or default negated), built-in relational
// literals, aggregate literals, and the auxiliary placeholder/base/
// element literals used to propagate aggregate and choice rewriting
// through grounding (spec.md §3.2).
package literal

import (
	"fmt"

	"github.com/aspgo/grounder/internal/term"
	"github.com/samber/lo"
)

// Literal is the sum type of all literal variants.
type Literal interface {
	fmt.Stringer

	Substitute(s *term.Substitution) Literal
	Vars() map[term.VarID]struct{}
	Ground() bool
}

// RelOp is a built-in relational operator (§3.2).
type RelOp int

const (
	Eq RelOp = iota
	Neq
	Lt
	Gt
	Leq
	Geq
)

func (r RelOp) String() string {
	switch r {
	case Eq:
		return "="
	case Neq:
		return "!="
	case Lt:
		return "<"
	case Gt:
		return ">"
	case Leq:
		return "<="
	case Geq:
		return ">="
	default:
		return "?"
	}
}

// Holds evaluates the relation for two ground Numbers.
func (r RelOp) Holds(l, rr term.Number) bool {
	switch r {
	case Eq:
		return l == rr
	case Neq:
		return l != rr
	case Lt:
		return l < rr
	case Gt:
		return l > rr
	case Leq:
		return l <= rr
	case Geq:
		return l >= rr
	default:
		return false
	}
}

// Predicate is a (possibly classically- and/or default-negated)
// predicate literal `[-][not ]name(terms...)`.
type Predicate struct {
	Name         string
	Terms        []term.Term
	ClassicalNeg bool
	NAF          bool // "not"
}

// NewPredicate builds a predicate literal.
func NewPredicate(name string, naf, classicalNeg bool, terms ...term.Term) *Predicate {
	return &Predicate{Name: name, Terms: terms, ClassicalNeg: classicalNeg, NAF: naf}
}

// Arity returns the number of terms.
func (p *Predicate) Arity() int { return len(p.Terms) }

// Positive returns a copy of p with NAF cleared — the predicate's
// "consequent" form used when checking membership in I/J (§4.8).
func (p *Predicate) Positive() *Predicate {
	return &Predicate{Name: p.Name, Terms: p.Terms, ClassicalNeg: p.ClassicalNeg, NAF: false}
}

func (p *Predicate) String() string {
	prefix := ""
	if p.NAF {
		prefix += "not "
	}
	if p.ClassicalNeg {
		prefix += "-"
	}
	if len(p.Terms) == 0 {
		return prefix + p.Name
	}
	parts := lo.Map(p.Terms, func(t term.Term, _ int) string { return t.String() })
	s := prefix + p.Name + "("
	for i, part := range parts {
		if i > 0 {
			s += ","
		}
		s += part
	}
	return s + ")"
}

func (p *Predicate) Substitute(s *term.Substitution) Literal {
	newTerms := make([]term.Term, len(p.Terms))
	for i, t := range p.Terms {
		newTerms[i] = t.Substitute(s)
	}
	return &Predicate{Name: p.Name, Terms: newTerms, ClassicalNeg: p.ClassicalNeg, NAF: p.NAF}
}

func (p *Predicate) Vars() map[term.VarID]struct{} {
	out := map[term.VarID]struct{}{}
	for _, t := range p.Terms {
		for id := range t.Vars() {
			out[id] = struct{}{}
		}
	}
	return out
}

func (p *Predicate) Ground() bool {
	return lo.EveryBy(p.Terms, func(t term.Term) bool { return t.Ground() })
}

// Sig returns a hashable signature (name/arity) used to key predicate
// dependencies in the dependency graph (§3.9).
func (p *Predicate) Sig() string { return fmt.Sprintf("%s/%d", p.Name, len(p.Terms)) }

// Builtin is a built-in relational literal (§3.2). NAF is always
// false.
type Builtin struct {
	Op   RelOp
	L, R term.Term
}

// NewBuiltin builds a built-in relational literal.
func NewBuiltin(op RelOp, l, r term.Term) *Builtin { return &Builtin{Op: op, L: l, R: r} }

func (b *Builtin) String() string { return fmt.Sprintf("%s%s%s", b.L, b.Op, b.R) }
func (b *Builtin) Substitute(s *term.Substitution) Literal {
	return &Builtin{Op: b.Op, L: b.L.Substitute(s), R: b.R.Substitute(s)}
}
func (b *Builtin) Vars() map[term.VarID]struct{} {
	out := map[term.VarID]struct{}{}
	for id := range b.L.Vars() {
		out[id] = struct{}{}
	}
	for id := range b.R.Vars() {
		out[id] = struct{}{}
	}
	return out
}
func (b *Builtin) Ground() bool { return b.L.Ground() && b.R.Ground() }

// Holds evaluates a ground Builtin literal, erroring per §7 ArithError
// semantics if either side cannot be evaluated. A comparison with
// term.Infimum or term.Supremum (the #max/#min base value) is decided
// by the total order of term.Compare.
func (b *Builtin) Holds() (bool, error) {
	if isExtreme(b.L) || isExtreme(b.R) {
		c, err := term.Compare(b.L, b.R)
		if err != nil {
			return false, err
		}
		return b.Op.Holds(term.Number(c), 0), nil
	}
	l, err := term.Eval(b.L)
	if err != nil {
		return false, err
	}
	r, err := term.Eval(b.R)
	if err != nil {
		return false, err
	}
	return b.Op.Holds(l, r), nil
}

func isExtreme(t term.Term) bool { return t == term.Infimum || t == term.Supremum }
