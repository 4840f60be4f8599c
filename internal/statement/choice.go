package statement

import (
	"github.com/aspgo/grounder/internal/literal"
	"github.com/aspgo/grounder/internal/term"
)

// ChoiceRule is `t1 op1 { e1;...;en } op2 t2 :- body.` (§3.5, §3.4,
// S4). It is the only non-deterministic statement variant.
type ChoiceRule struct {
	Choice *literal.Choice
	body   []literal.Literal
	vt     *VariableTable
	safetyCache
}

// NewChoiceRule constructs a ChoiceRule, running §4.3 arithmetic
// replacement over the choice's guards/elements and the body.
func NewChoiceRule(choice *literal.Choice, body []literal.Literal, vt *VariableTable) (*ChoiceRule, error) {
	if vt == nil {
		vt = NewVariableTable()
	}
	lg, err := replaceArithGuard(choice.LGuard, vt)
	if err != nil {
		return nil, err
	}
	rg, err := replaceArithGuard(choice.RGuard, vt)
	if err != nil {
		return nil, err
	}
	newElems := make([]literal.ChoiceElement, len(choice.Elements))
	for i, e := range choice.Elements {
		atom, err := ReplaceArithLiteral(e.Atom, vt)
		if err != nil {
			return nil, err
		}
		cond := make([]literal.Literal, len(e.Condition))
		for j, c := range e.Condition {
			rc, err := ReplaceArithLiteral(c, vt)
			if err != nil {
				return nil, err
			}
			cond[j] = rc
		}
		newElems[i] = literal.ChoiceElement{Atom: atom.(*literal.Predicate), Condition: cond}
	}
	rBody, err := ReplaceArithBody(body, vt)
	if err != nil {
		return nil, err
	}
	return &ChoiceRule{Choice: &literal.Choice{Elements: newElems, LGuard: lg, RGuard: rg}, body: rBody, vt: vt}, nil
}

func (r *ChoiceRule) Body() []literal.Literal { return r.body }

func (r *ChoiceRule) HeadPredicates() []*literal.Predicate {
	out := make([]*literal.Predicate, len(r.Choice.Elements))
	for i, e := range r.Choice.Elements {
		out[i] = e.Atom
	}
	return out
}

func (r *ChoiceRule) HeadSigs() []string {
	out := make([]string, len(r.Choice.Elements))
	for i, e := range r.Choice.Elements {
		out[i] = e.Atom.Sig()
	}
	return out
}

func (r *ChoiceRule) VarTable() *VariableTable { return r.vt }
func (r *ChoiceRule) NonDeterministic() bool   { return true }

func (r *ChoiceRule) Ground() bool {
	for _, e := range r.Choice.Elements {
		if !e.Atom.Ground() {
			return false
		}
		for _, c := range e.Condition {
			if !c.Ground() {
				return false
			}
		}
	}
	if r.Choice.LGuard != nil && !r.Choice.LGuard.Bound.Ground() {
		return false
	}
	if r.Choice.RGuard != nil && !r.Choice.RGuard.Bound.Ground() {
		return false
	}
	return bodyGround(r.body)
}

// headVars returns the choice's own variables (element atoms +
// conditions, excluding local-only element condition vars — mirrors
// RuleGlobals's aggregate treatment: only the atom and guard vars are
// "global" to the rule; a condition-only variable is local to its
// element, per §3.4's ChoiceElement/local-variable split).
func (r *ChoiceRule) headVars() map[term.VarID]struct{} {
	out := map[term.VarID]struct{}{}
	for _, e := range r.Choice.Elements {
		for v := range e.Atom.Vars() {
			out[v] = struct{}{}
		}
	}
	if r.Choice.LGuard != nil {
		for v := range r.Choice.LGuard.Bound.Vars() {
			out[v] = struct{}{}
		}
	}
	if r.Choice.RGuard != nil {
		for v := range r.Choice.RGuard.Bound.Vars() {
			out[v] = struct{}{}
		}
	}
	return out
}

func (r *ChoiceRule) Globals() map[term.VarID]struct{} {
	return RuleGlobals(r.headVars(), r.body)
}

func (r *ChoiceRule) Safe() error {
	return r.run(func() error {
		// Each choice element's atom must itself be safe given the
		// rule's globals plus its own condition literals, mirroring how
		// an eta-rule will later check it (§4.5).
		globals := r.Globals()
		for _, e := range r.Choice.Elements {
			elemBody := append(append([]literal.Literal{}, e.Condition...), r.body...)
			elemGlobals := map[term.VarID]struct{}{}
			for v := range e.Atom.Vars() {
				elemGlobals[v] = struct{}{}
			}
			for v := range e.Vars() {
				if _, ok := globals[v]; ok {
					elemGlobals[v] = struct{}{}
				}
			}
			if err := checkBodySafety(elemBody, elemGlobals); err != nil {
				return err
			}
		}
		return checkBodySafety(r.body, globals)
	})
}

func (r *ChoiceRule) Substitute(s *term.Substitution) Statement {
	newElems := make([]literal.ChoiceElement, len(r.Choice.Elements))
	for i, e := range r.Choice.Elements {
		newElems[i] = e.Substitute(s)
	}
	newChoice := &literal.Choice{Elements: newElems}
	if r.Choice.LGuard != nil {
		newChoice.LGuard = &literal.Guard{Op: r.Choice.LGuard.Op, Bound: r.Choice.LGuard.Bound.Substitute(s)}
	}
	if r.Choice.RGuard != nil {
		newChoice.RGuard = &literal.Guard{Op: r.Choice.RGuard.Op, Bound: r.Choice.RGuard.Bound.Substitute(s)}
	}
	return &ChoiceRule{Choice: newChoice, body: substituteBody(r.body, s), vt: r.vt}
}

func (r *ChoiceRule) String() string {
	if len(r.body) == 0 {
		return r.Choice.String() + "."
	}
	return r.Choice.String() + " :- " + joinLiterals(r.body) + "."
}
