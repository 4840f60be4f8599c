package statement

import (
	"github.com/aspgo/grounder/internal/literal"
	"github.com/aspgo/grounder/internal/term"
)

// Constraint is `:- body.` (§3.5). It has no head predicates; the
// grounder's warning semantics trigger when one is derived certain
// (§4.11, §7 UnsatisfiableWarning).
type Constraint struct {
	body []literal.Literal
	vt   *VariableTable
	safetyCache
}

// NewConstraint constructs a Constraint, running §4.3 arithmetic
// replacement over the body.
func NewConstraint(body []literal.Literal, vt *VariableTable) (*Constraint, error) {
	if vt == nil {
		vt = NewVariableTable()
	}
	rBody, err := ReplaceArithBody(body, vt)
	if err != nil {
		return nil, err
	}
	return &Constraint{body: rBody, vt: vt}, nil
}

func (r *Constraint) Body() []literal.Literal             { return r.body }
func (r *Constraint) HeadPredicates() []*literal.Predicate { return nil }
func (r *Constraint) HeadSigs() []string                   { return nil }
func (r *Constraint) VarTable() *VariableTable             { return r.vt }
func (r *Constraint) NonDeterministic() bool          { return false }
func (r *Constraint) Ground() bool                         { return bodyGround(r.body) }

func (r *Constraint) Globals() map[term.VarID]struct{} {
	return RuleGlobals(map[term.VarID]struct{}{}, r.body)
}

func (r *Constraint) Safe() error {
	return r.run(func() error { return checkBodySafety(r.body, r.Globals()) })
}

func (r *Constraint) Substitute(s *term.Substitution) Statement {
	return &Constraint{body: substituteBody(r.body, s), vt: r.vt}
}

func (r *Constraint) String() string {
	return ":- " + joinLiterals(r.body) + "."
}
