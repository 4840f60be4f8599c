package term

import "fmt"

// ErrNonGroundOrder is a fatal error per spec.md §3.1/§7: total order
// is undefined on non-ground terms.
type ErrNonGroundOrder struct{ T1, T2 Term }

func (e *ErrNonGroundOrder) Error() string {
	return fmt.Sprintf("term: total order undefined on non-ground terms %s, %s", e.T1, e.T2)
}

// Precedes implements the ASP-Core-2 total order ≺ on ground terms
// (§3.1): Infimum ≺ Number ≺ SymbolicConstant ≺ String ≺ Functional ≺
// Supremum, with the stated tie-breaks within each variant. It returns
// an *ErrNonGroundOrder if either term is not ground, per §3.1 "must
// fail loudly".
func Precedes(a, b Term) (bool, error) {
	cmp, err := Compare(a, b)
	if err != nil {
		return false, err
	}
	return cmp < 0, nil
}

// Compare returns -1, 0, or 1 as a precedes, equals, or follows b in
// the total order. Returns ErrNonGroundOrder if either is non-ground.
func Compare(a, b Term) (int, error) {
	if !a.Ground() || !b.Ground() {
		return 0, &ErrNonGroundOrder{T1: a, T2: b}
	}
	ra, rb := rank(a), rank(b)
	if ra != rb {
		return sign(ra - rb), nil
	}
	switch va := a.(type) {
	case infimum, supremum:
		return 0, nil
	case Number:
		vb := b.(Number)
		return sign(int(va) - int(vb)), nil
	case SymbolicConstant:
		vb := b.(SymbolicConstant)
		return compareStrings(va.Name, vb.Name), nil
	case String:
		vb := b.(String)
		return compareStrings(string(va), string(vb)), nil
	case *Functional:
		vb := b.(*Functional)
		if len(va.Args) != len(vb.Args) {
			return sign(len(va.Args) - len(vb.Args)), nil
		}
		if c := compareStrings(va.Name, vb.Name); c != 0 {
			return c, nil
		}
		for i := range va.Args {
			c, err := Compare(va.Args[i], vb.Args[i])
			if err != nil {
				return 0, err
			}
			if c != 0 {
				return c, nil
			}
		}
		return 0, nil
	default:
		// Ground arithmetic nodes should have been Simplify()-ed away
		// before reaching the total order; fall back to a defined but
		// unspecified rank so comparisons never panic outright.
		return 0, nil
	}
}

// rank assigns the coarse variant ordering Infimum < Number <
// SymbolicConstant < String < Functional < Supremum.
func rank(t Term) int {
	switch t.(type) {
	case infimum:
		return 0
	case Number:
		return 1
	case SymbolicConstant:
		return 2
	case String:
		return 3
	case *Functional:
		return 4
	case supremum:
		return 5
	default:
		return 4 // arithmetic results, if any slip through, sort with functionals
	}
}

func sign(x int) int {
	switch {
	case x < 0:
		return -1
	case x > 0:
		return 1
	default:
		return 0
	}
}

func compareStrings(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Equal reports structural equality of two (not necessarily ground)
// terms — distinct from matching/unification.
func Equal(a, b Term) bool {
	if a.kind() != b.kind() {
		return false
	}
	switch va := a.(type) {
	case infimum, supremum:
		return true
	case Number:
		return va == b.(Number)
	case SymbolicConstant:
		return va.Name == b.(SymbolicConstant).Name
	case String:
		return va == b.(String)
	case Variable:
		return va.Name == b.(Variable).Name
	case AnonVariable:
		return va.ID == b.(AnonVariable).ID
	case ArithPlaceholderVariable:
		return va.ID == b.(ArithPlaceholderVariable).ID
	case *Functional:
		vb := b.(*Functional)
		if va.Name != vb.Name || len(va.Args) != len(vb.Args) {
			return false
		}
		for i := range va.Args {
			if !Equal(va.Args[i], vb.Args[i]) {
				return false
			}
		}
		return true
	case Neg:
		return Equal(va.X, b.(Neg).X)
	case Add:
		vb := b.(Add)
		return Equal(va.L, vb.L) && Equal(va.R, vb.R)
	case Sub:
		vb := b.(Sub)
		return Equal(va.L, vb.L) && Equal(va.R, vb.R)
	case Mul:
		vb := b.(Mul)
		return Equal(va.L, vb.L) && Equal(va.R, vb.R)
	case Div:
		vb := b.(Div)
		return Equal(va.L, vb.L) && Equal(va.R, vb.R)
	default:
		return false
	}
}
