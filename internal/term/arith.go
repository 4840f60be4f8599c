package term

import "fmt"

// Neg/Add/Sub/Mul/Div are the arithmetic term nodes (§3.1). They are
// only ever valid inside a predicate/literal position after arithmetic
// replacement (§4.3) has swapped non-ground occurrences for an
// ArithPlaceholderVariable; ground occurrences are simplified away by
// Simplify/Eval immediately.
type Neg struct{ X Term }
type Add struct{ L, R Term }
type Sub struct{ L, R Term }
type Mul struct{ L, R Term }
type Div struct{ L, R Term }

func (n Neg) String() string { return fmt.Sprintf("-%s", n.X.String()) }
func (n Neg) Substitute(s *Substitution) Term {
	return Neg{X: n.X.Substitute(s)}
}
func (n Neg) Vars() map[VarID]struct{} { return n.X.Vars() }
func (n Neg) Ground() bool             { return n.X.Ground() }
func (n Neg) kind() kindTag            { return kindNeg }

type binop struct {
	op   string
	kind kindTag
	l, r Term
}

func (b binop) String() string { return fmt.Sprintf("(%s%s%s)", b.l, b.op, b.r) }
func (b binop) Vars() map[VarID]struct{} {
	out := map[VarID]struct{}{}
	mergeVars(out, b.l.Vars())
	mergeVars(out, b.r.Vars())
	return out
}
func (b binop) Ground() bool { return b.l.Ground() && b.r.Ground() }

func (a Add) String() string                   { return binop{"+", kindAdd, a.L, a.R}.String() }
func (a Add) Vars() map[VarID]struct{}         { return binop{"+", kindAdd, a.L, a.R}.Vars() }
func (a Add) Ground() bool                     { return binop{"+", kindAdd, a.L, a.R}.Ground() }
func (a Add) kind() kindTag                    { return kindAdd }
func (a Add) Substitute(s *Substitution) Term  { return Add{a.L.Substitute(s), a.R.Substitute(s)} }

func (a Sub) String() string                  { return binop{"-", kindSub, a.L, a.R}.String() }
func (a Sub) Vars() map[VarID]struct{}        { return binop{"-", kindSub, a.L, a.R}.Vars() }
func (a Sub) Ground() bool                    { return binop{"-", kindSub, a.L, a.R}.Ground() }
func (a Sub) kind() kindTag                   { return kindSub }
func (a Sub) Substitute(s *Substitution) Term { return Sub{a.L.Substitute(s), a.R.Substitute(s)} }

func (a Mul) String() string                  { return binop{"*", kindMul, a.L, a.R}.String() }
func (a Mul) Vars() map[VarID]struct{}        { return binop{"*", kindMul, a.L, a.R}.Vars() }
func (a Mul) Ground() bool                    { return binop{"*", kindMul, a.L, a.R}.Ground() }
func (a Mul) kind() kindTag                   { return kindMul }
func (a Mul) Substitute(s *Substitution) Term { return Mul{a.L.Substitute(s), a.R.Substitute(s)} }

func (a Div) String() string                  { return binop{"/", kindDiv, a.L, a.R}.String() }
func (a Div) Vars() map[VarID]struct{}        { return binop{"/", kindDiv, a.L, a.R}.Vars() }
func (a Div) Ground() bool                    { return binop{"/", kindDiv, a.L, a.R}.Ground() }
func (a Div) kind() kindTag                   { return kindDiv }
func (a Div) Substitute(s *Substitution) Term { return Div{a.L.Substitute(s), a.R.Substitute(s)} }

// ErrDivByZero is a fatal ArithError per spec.md §4.3/§7.
type ErrDivByZero struct{}

func (ErrDivByZero) Error() string { return "term: integer division by zero" }

// ErrNonGroundEval is a fatal ArithError: arithmetic evaluation
// requires a ground term (§3.1).
type ErrNonGroundEval struct{ Term Term }

func (e ErrNonGroundEval) Error() string {
	return fmt.Sprintf("term: cannot evaluate non-ground arithmetic term %s", e.Term)
}

// Eval evaluates a ground arithmetic term to a Number. Division is
// integer division; division by zero is a hard error (§3.1, §7
// ArithError).
func Eval(t Term) (Number, error) {
	if !t.Ground() {
		return 0, ErrNonGroundEval{Term: t}
	}
	switch v := t.(type) {
	case Number:
		return v, nil
	case Neg:
		x, err := Eval(v.X)
		if err != nil {
			return 0, err
		}
		return -x, nil
	case Add:
		l, err := Eval(v.L)
		if err != nil {
			return 0, err
		}
		r, err := Eval(v.R)
		if err != nil {
			return 0, err
		}
		return l + r, nil
	case Sub:
		l, err := Eval(v.L)
		if err != nil {
			return 0, err
		}
		r, err := Eval(v.R)
		if err != nil {
			return 0, err
		}
		return l - r, nil
	case Mul:
		l, err := Eval(v.L)
		if err != nil {
			return 0, err
		}
		r, err := Eval(v.R)
		if err != nil {
			return 0, err
		}
		return l * r, nil
	case Div:
		l, err := Eval(v.L)
		if err != nil {
			return 0, err
		}
		r, err := Eval(v.R)
		if err != nil {
			return 0, err
		}
		if r == 0 {
			return 0, ErrDivByZero{}
		}
		return l / r, nil
	default:
		return 0, ErrNonGroundEval{Term: t}
	}
}

// Simplify recursively evaluates ground arithmetic subtrees to Number,
// leaving non-ground subtrees (and non-arithmetic terms) unchanged, per
// §4.3 "ground arithmetic subterms are immediately replaced by their
// evaluated Number".
func Simplify(t Term) (Term, error) {
	switch v := t.(type) {
	case Neg, Add, Sub, Mul, Div:
		if t.Ground() {
			n, err := Eval(t)
			if err != nil {
				return nil, err
			}
			return n, nil
		}
		return simplifyChildren(v)
	default:
		return t, nil
	}
}

func simplifyChildren(t Term) (Term, error) {
	switch v := t.(type) {
	case Neg:
		x, err := Simplify(v.X)
		if err != nil {
			return nil, err
		}
		return Neg{X: x}, nil
	case Add:
		l, r, err := simplifyPair(v.L, v.R)
		if err != nil {
			return nil, err
		}
		return Add{l, r}, nil
	case Sub:
		l, r, err := simplifyPair(v.L, v.R)
		if err != nil {
			return nil, err
		}
		return Sub{l, r}, nil
	case Mul:
		l, r, err := simplifyPair(v.L, v.R)
		if err != nil {
			return nil, err
		}
		return Mul{l, r}, nil
	case Div:
		l, r, err := simplifyPair(v.L, v.R)
		if err != nil {
			return nil, err
		}
		return Div{l, r}, nil
	default:
		return t, nil
	}
}

func simplifyPair(l, r Term) (Term, Term, error) {
	sl, err := Simplify(l)
	if err != nil {
		return nil, nil, err
	}
	sr, err := Simplify(r)
	if err != nil {
		return nil, nil, err
	}
	return sl, sr, nil
}

// IsArith reports whether t is one of the arithmetic node types.
func IsArith(t Term) bool {
	switch t.(type) {
	case Neg, Add, Sub, Mul, Div:
		return true
	default:
		return false
	}
}
