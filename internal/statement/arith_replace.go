package statement

import (
	"github.com/aspgo/grounder/internal/literal"
	"github.com/aspgo/grounder/internal/term"
)

// replaceArithTerm implements §4.3's arithmetic replacement at a
// single term position: a ground arithmetic subterm is immediately
// replaced by its evaluated Number; a non-ground one is replaced by a
// fresh ArithPlaceholderVariable registered in vt, wrapping the
// (recursively simplified) original subtree. Non-arithmetic
// Functional terms are walked so that an arithmetic subterm nested
// inside a functor's arguments is still found and replaced.
func replaceArithTerm(t term.Term, vt *VariableTable) (term.Term, error) {
	if term.IsArith(t) {
		simplified, err := term.Simplify(t)
		if err != nil {
			return nil, err
		}
		if simplified.Ground() {
			n, err := term.Eval(simplified)
			if err != nil {
				return nil, err
			}
			return n, nil
		}
		return vt.FreshArithPlaceholder(simplified), nil
	}
	if fn, ok := t.(*term.Functional); ok {
		newArgs := make([]term.Term, len(fn.Args))
		for i, a := range fn.Args {
			r, err := replaceArithTerm(a, vt)
			if err != nil {
				return nil, err
			}
			newArgs[i] = r
		}
		return &term.Functional{Name: fn.Name, Args: newArgs}, nil
	}
	return t, nil
}

func replaceArithTerms(ts []term.Term, vt *VariableTable) ([]term.Term, error) {
	out := make([]term.Term, len(ts))
	for i, t := range ts {
		r, err := replaceArithTerm(t, vt)
		if err != nil {
			return nil, err
		}
		out[i] = r
	}
	return out, nil
}

// ReplaceArithLiteral applies §4.3 arithmetic replacement to every
// term position inside l. Placeholder/Base/Element auxiliary literals
// are already fully rewritten and pass through unchanged.
func ReplaceArithLiteral(l literal.Literal, vt *VariableTable) (literal.Literal, error) {
	switch v := l.(type) {
	case *literal.Predicate:
		terms, err := replaceArithTerms(v.Terms, vt)
		if err != nil {
			return nil, err
		}
		return &literal.Predicate{Name: v.Name, Terms: terms, ClassicalNeg: v.ClassicalNeg, NAF: v.NAF}, nil
	case *literal.Builtin:
		l1, err := replaceArithTerm(v.L, vt)
		if err != nil {
			return nil, err
		}
		r1, err := replaceArithTerm(v.R, vt)
		if err != nil {
			return nil, err
		}
		return &literal.Builtin{Op: v.Op, L: l1, R: r1}, nil
	case *literal.Aggregate:
		return replaceArithAggregate(v, vt)
	default:
		return l, nil
	}
}

func replaceArithGuard(g *literal.Guard, vt *VariableTable) (*literal.Guard, error) {
	if g == nil {
		return nil, nil
	}
	b, err := replaceArithTerm(g.Bound, vt)
	if err != nil {
		return nil, err
	}
	return &literal.Guard{Op: g.Op, Bound: b}, nil
}

func replaceArithAggregate(a *literal.Aggregate, vt *VariableTable) (literal.Literal, error) {
	lg, err := replaceArithGuard(a.LGuard, vt)
	if err != nil {
		return nil, err
	}
	rg, err := replaceArithGuard(a.RGuard, vt)
	if err != nil {
		return nil, err
	}
	newElems := make([]literal.AggregateElement, len(a.Elements))
	for i, e := range a.Elements {
		head, err := replaceArithTerms(e.Head, vt)
		if err != nil {
			return nil, err
		}
		body := make([]literal.Literal, len(e.Body))
		for j, bl := range e.Body {
			rl, err := ReplaceArithLiteral(bl, vt)
			if err != nil {
				return nil, err
			}
			body[j] = rl
		}
		newElems[i] = literal.AggregateElement{Head: head, Body: body}
	}
	return &literal.Aggregate{Func: a.Func, Elements: newElems, LGuard: lg, RGuard: rg, NAF: a.NAF}, nil
}

// ReplaceArithBody applies ReplaceArithLiteral across an entire body.
func ReplaceArithBody(body []literal.Literal, vt *VariableTable) ([]literal.Literal, error) {
	out := make([]literal.Literal, len(body))
	for i, l := range body {
		r, err := ReplaceArithLiteral(l, vt)
		if err != nil {
			return nil, err
		}
		out[i] = r
	}
	return out, nil
}
