package term

import "fmt"

// Substitution is a finite map Variable -> Term (§3.7). A variable
// absent from the map maps to itself; Lookup makes that fallback
// explicit rather than relying on Go's zero-value map behavior (§9
// design note: "do not rely on hidden behavior").
type Substitution struct {
	bindings map[VarID]Term
}

// NewSubstitution returns the empty substitution (identity on every
// variable).
func NewSubstitution() *Substitution {
	return &Substitution{bindings: map[VarID]Term{}}
}

// Singleton returns a substitution mapping id to t.
func Singleton(id VarID, t Term) *Substitution {
	return &Substitution{bindings: map[VarID]Term{id: t}}
}

func (s *Substitution) lookup(id VarID) Term {
	if s == nil {
		return varIDToTerm(id)
	}
	if t, ok := s.bindings[id]; ok {
		return t
	}
	return varIDToTerm(id)
}

func varIDToTerm(id VarID) Term {
	switch {
	case id.Name == "_":
		return AnonVariable{ID: id.Seq}
	case id.Name == "τ":
		return ArithPlaceholderVariable{ID: id.Seq}
	default:
		return Variable{Name: id.Name}
	}
}

// Lookup returns the term id is bound to, or id itself (as a Term) if
// unbound.
func (s *Substitution) Lookup(id VarID) Term { return s.lookup(id) }

// Bound reports whether id has an explicit entry in the map.
func (s *Substitution) Bound(id VarID) bool {
	if s == nil {
		return false
	}
	_, ok := s.bindings[id]
	return ok
}

// Extend returns a new substitution equal to s plus id->t. It does not
// mutate s (terms are value-like, §3.1 lifecycle).
func (s *Substitution) Extend(id VarID, t Term) *Substitution {
	out := &Substitution{bindings: make(map[VarID]Term, len(s.bindings)+1)}
	for k, v := range s.bindings {
		out.bindings[k] = v
	}
	out.bindings[id] = t
	return out
}

// ErrAssignmentConflict is a fatal AssignmentError (§7): Merge found
// the same variable bound to two unequal terms.
type ErrAssignmentConflict struct {
	Var  VarID
	T1   Term
	T2   Term
}

func (e *ErrAssignmentConflict) Error() string {
	return fmt.Sprintf("substitution: variable %s bound to both %s and %s", e.Var, e.T1, e.T2)
}

// Merge combines s and other (the "+" operator, §3.7): fails with
// ErrAssignmentConflict when both map the same variable to unequal
// terms.
func Merge(s, other *Substitution) (*Substitution, error) {
	out := &Substitution{bindings: make(map[VarID]Term, len(s.bindings)+len(other.bindings))}
	for k, v := range s.bindings {
		out.bindings[k] = v
	}
	for k, v := range other.bindings {
		if existing, ok := out.bindings[k]; ok {
			if !Equal(existing, v) {
				return nil, &ErrAssignmentConflict{Var: k, T1: existing, T2: v}
			}
			continue
		}
		out.bindings[k] = v
	}
	return out, nil
}

// Compose returns s1 ∘ s2 (§3.7): applies s2 to each range term of s1,
// then adds entries of s2 not already in s1.
func Compose(s1, s2 *Substitution) *Substitution {
	out := &Substitution{bindings: make(map[VarID]Term, len(s1.bindings)+len(s2.bindings))}
	for k, v := range s1.bindings {
		out.bindings[k] = v.Substitute(s2)
	}
	for k, v := range s2.bindings {
		if _, ok := out.bindings[k]; !ok {
			out.bindings[k] = v
		}
	}
	return out
}

// Size returns the number of explicit bindings.
func (s *Substitution) Size() int {
	if s == nil {
		return 0
	}
	return len(s.bindings)
}

// Each calls fn for every explicit binding.
func (s *Substitution) Each(fn func(id VarID, t Term)) {
	if s == nil {
		return
	}
	for k, v := range s.bindings {
		fn(k, v)
	}
}

func (s *Substitution) String() string {
	if s.Size() == 0 {
		return "{}"
	}
	out := "{"
	first := true
	s.Each(func(id VarID, t Term) {
		if !first {
			out += ", "
		}
		out += fmt.Sprintf("%s/%s", id, t)
		first = false
	})
	return out + "}"
}
