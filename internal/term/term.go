// Package term provides the ground-program term algebra for the ASP
// grounder: constants, variables, functional structures, and arithmetic
// trees, together with the total order, substitution, and matching
// operations the grounding pipeline builds on.
//
// Terms are value-like: a Term is never mutated in place. Substitution
// and simplification always return a new Term, so callers can freely
// share Terms across statements without defensive copying.
package term

import (
	"fmt"

	"github.com/samber/lo"
)

// Term is the sum type of all term variants. Every variant must
// implement Substitute/Vars/Ground/String; ordering and arithmetic
// evaluation are exposed as free functions because they are only
// partially defined (undefined on non-ground terms, §3.1).
type Term interface {
	fmt.Stringer

	// Substitute applies s to every variable occurrence and returns the
	// resulting term. Ground terms return themselves unchanged.
	Substitute(s *Substitution) Term

	// Vars returns the set of Variable/AnonVariable/ArithPlaceholderVariable
	// names occurring in the term, as a set keyed by VarID.
	Vars() map[VarID]struct{}

	// Ground reports whether the term contains no variable of any kind.
	Ground() bool

	// kind returns a tag used for total ordering and type switches
	// without repeated type assertions.
	kind() kindTag
}

// VarID identifies a variable within a statement's VariableTable. Plain
// variables are identified by name; anonymous and arithmetic-placeholder
// variables are identified by a per-statement fresh counter, so VarID
// carries both to stay comparable and map-keyable.
type VarID struct {
	Name string
	Seq  int // 0 for named variables; >0 distinguishes fresh anon/placeholder vars
}

func (id VarID) String() string {
	if id.Seq == 0 {
		return id.Name
	}
	return fmt.Sprintf("%s#%d", id.Name, id.Seq)
}

type kindTag int

const (
	kindInfimum kindTag = iota
	kindNumber
	kindSymbolicConstant
	kindString
	kindFunctional
	kindSupremum
	kindVariable
	kindAnonVariable
	kindArithPlaceholder
	kindNeg
	kindAdd
	kindSub
	kindMul
	kindDiv
)

// reservedPrefixes are the auxiliary-predicate prefixes reserved by
// spec.md §6.3; user-level symbolic constants must not begin with one
// of these runes, mirroring ground_slash's SpecialChar table.
var reservedPrefixes = []rune{'α', 'ε', 'η', 'χ', 'τ'}

// ErrReservedSymbol is returned by NewSymbolicConstant/NewFunctional
// when a user-supplied name collides with a reserved auxiliary prefix.
type ErrReservedSymbol struct{ Name string }

func (e *ErrReservedSymbol) Error() string {
	return fmt.Sprintf("term: symbolic name %q begins with a reserved auxiliary prefix", e.Name)
}

func checkReserved(name string) error {
	if name == "" {
		return nil
	}
	r := []rune(name)[0]
	if lo.Contains(reservedPrefixes, r) {
		return &ErrReservedSymbol{Name: name}
	}
	return nil
}

// --- Infimum / Supremum ---

type infimum struct{}
type supremum struct{}

// Infimum is the least element of the total order (§3.1).
var Infimum Term = infimum{}

// Supremum is the greatest element of the total order (§3.1).
var Supremum Term = supremum{}

func (infimum) String() string                   { return "#inf" }
func (infimum) Substitute(*Substitution) Term     { return Infimum }
func (infimum) Vars() map[VarID]struct{}          { return nil }
func (infimum) Ground() bool                      { return true }
func (infimum) kind() kindTag                     { return kindInfimum }
func (supremum) String() string                   { return "#sup" }
func (supremum) Substitute(*Substitution) Term    { return Supremum }
func (supremum) Vars() map[VarID]struct{}         { return nil }
func (supremum) Ground() bool                     { return true }
func (supremum) kind() kindTag                    { return kindSupremum }

// --- Number ---

// Number is an integer term.
type Number int64

func (n Number) String() string                { return fmt.Sprintf("%d", int64(n)) }
func (n Number) Substitute(*Substitution) Term { return n }
func (n Number) Vars() map[VarID]struct{}      { return nil }
func (n Number) Ground() bool                  { return true }
func (n Number) kind() kindTag                 { return kindNumber }

// --- SymbolicConstant ---

// SymbolicConstant is a lowercase-leading identifier constant.
type SymbolicConstant struct{ Name string }

// NewSymbolicConstant validates the name against reserved prefixes.
func NewSymbolicConstant(name string) (SymbolicConstant, error) {
	if err := checkReserved(name); err != nil {
		return SymbolicConstant{}, err
	}
	return SymbolicConstant{Name: name}, nil
}

func (c SymbolicConstant) String() string                { return c.Name }
func (c SymbolicConstant) Substitute(*Substitution) Term { return c }
func (c SymbolicConstant) Vars() map[VarID]struct{}      { return nil }
func (c SymbolicConstant) Ground() bool                  { return true }
func (c SymbolicConstant) kind() kindTag                 { return kindSymbolicConstant }

// --- String ---

// String is a double-quoted string term.
type String string

func (s String) String() string                { return fmt.Sprintf("%q", string(s)) }
func (s String) Substitute(*Substitution) Term { return s }
func (s String) Vars() map[VarID]struct{}      { return nil }
func (s String) Ground() bool                  { return true }
func (s String) kind() kindTag                 { return kindString }

// --- Functional ---

// Functional is a compound term `name(terms...)`, arity len(Args).
type Functional struct {
	Name string
	Args []Term
}

// NewFunctional validates the functor name and builds a Functional term.
func NewFunctional(name string, args ...Term) (*Functional, error) {
	if err := checkReserved(name); err != nil {
		return nil, err
	}
	return &Functional{Name: name, Args: args}, nil
}

func (f *Functional) String() string {
	if len(f.Args) == 0 {
		return f.Name
	}
	parts := lo.Map(f.Args, func(t Term, _ int) string { return t.String() })
	return fmt.Sprintf("%s(%s)", f.Name, joinComma(parts))
}

func (f *Functional) Substitute(s *Substitution) Term {
	newArgs := make([]Term, len(f.Args))
	for i, a := range f.Args {
		newArgs[i] = a.Substitute(s)
	}
	return &Functional{Name: f.Name, Args: newArgs}
}

func (f *Functional) Vars() map[VarID]struct{} {
	out := map[VarID]struct{}{}
	for _, a := range f.Args {
		mergeVars(out, a.Vars())
	}
	return out
}

func (f *Functional) Ground() bool {
	return lo.EveryBy(f.Args, func(t Term) bool { return t.Ground() })
}

func (f *Functional) kind() kindTag { return kindFunctional }

func joinComma(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += ","
		}
		out += p
	}
	return out
}

func mergeVars(dst map[VarID]struct{}, src map[VarID]struct{}) {
	for k := range src {
		dst[k] = struct{}{}
	}
}

// --- Variable / AnonVariable / ArithPlaceholderVariable ---

// Variable is an ordinary named logic variable, e.g. `X`.
type Variable struct{ Name string }

func (v Variable) String() string { return v.Name }
func (v Variable) Substitute(s *Substitution) Term {
	return s.lookup(VarID{Name: v.Name})
}
func (v Variable) Vars() map[VarID]struct{} {
	return map[VarID]struct{}{{Name: v.Name}: {}}
}
func (v Variable) Ground() bool  { return false }
func (v Variable) kind() kindTag { return kindVariable }

// AnonVariable is `_`, instantiated fresh per occurrence by the
// statement's VariableTable (§4.3, §9 "global counters... per
// VariableTable").
type AnonVariable struct{ ID int }

func (v AnonVariable) String() string { return fmt.Sprintf("_%d", v.ID) }
func (v AnonVariable) Substitute(s *Substitution) Term {
	return s.lookup(VarID{Name: "_", Seq: v.ID})
}
func (v AnonVariable) Vars() map[VarID]struct{} {
	return map[VarID]struct{}{{Name: "_", Seq: v.ID}: {}}
}
func (v AnonVariable) Ground() bool  { return false }
func (v AnonVariable) kind() kindTag { return kindAnonVariable }

// ArithPlaceholderVariable replaces a non-ground arithmetic subterm
// occurring inside a predicate/literal position (§4.3). Original holds
// the arithmetic subtree it replaced, simplified in place, so the
// grounder can re-evaluate it to validate a candidate binding.
type ArithPlaceholderVariable struct {
	ID       int
	Original Term
}

func (v ArithPlaceholderVariable) String() string {
	return fmt.Sprintf("τ%d", v.ID)
}
func (v ArithPlaceholderVariable) Substitute(s *Substitution) Term {
	return s.lookup(VarID{Name: "τ", Seq: v.ID})
}
func (v ArithPlaceholderVariable) Vars() map[VarID]struct{} {
	return map[VarID]struct{}{{Name: "τ", Seq: v.ID}: {}}
}
func (v ArithPlaceholderVariable) Ground() bool  { return false }
func (v ArithPlaceholderVariable) kind() kindTag { return kindArithPlaceholder }

// VarIDOf returns the VarID a variant of Term binds to in a
// Substitution, or the zero VarID and false if t is not one of the
// three variable variants.
func VarIDOf(t Term) (VarID, bool) {
	switch v := t.(type) {
	case Variable:
		return VarID{Name: v.Name}, true
	case AnonVariable:
		return VarID{Name: "_", Seq: v.ID}, true
	case ArithPlaceholderVariable:
		return VarID{Name: "τ", Seq: v.ID}, true
	default:
		return VarID{}, false
	}
}
