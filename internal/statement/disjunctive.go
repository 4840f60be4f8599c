package statement

import (
	"github.com/aspgo/grounder/internal/literal"
	"github.com/aspgo/grounder/internal/term"
)

// DisjunctiveRule is `head1 | head2 | ... :- body.` (§3.5, S6).
type DisjunctiveRule struct {
	Heads []*literal.Predicate
	body  []literal.Literal
	vt    *VariableTable
	safetyCache
}

// NewDisjunctiveRule constructs a DisjunctiveRule, running §4.3
// arithmetic replacement over heads and body.
func NewDisjunctiveRule(heads []*literal.Predicate, body []literal.Literal, vt *VariableTable) (*DisjunctiveRule, error) {
	if vt == nil {
		vt = NewVariableTable()
	}
	newHeads := make([]*literal.Predicate, len(heads))
	for i, h := range heads {
		rh, err := ReplaceArithLiteral(h, vt)
		if err != nil {
			return nil, err
		}
		newHeads[i] = rh.(*literal.Predicate)
	}
	rBody, err := ReplaceArithBody(body, vt)
	if err != nil {
		return nil, err
	}
	return &DisjunctiveRule{Heads: newHeads, body: rBody, vt: vt}, nil
}

func (r *DisjunctiveRule) Body() []literal.Literal             { return r.body }
func (r *DisjunctiveRule) HeadPredicates() []*literal.Predicate { return r.Heads }
func (r *DisjunctiveRule) HeadSigs() []string {
	out := make([]string, len(r.Heads))
	for i, h := range r.Heads {
		out[i] = h.Sig()
	}
	return out
}
func (r *DisjunctiveRule) VarTable() *VariableTable             { return r.vt }
func (r *DisjunctiveRule) NonDeterministic() bool          { return false }

func (r *DisjunctiveRule) Ground() bool {
	for _, h := range r.Heads {
		if !h.Ground() {
			return false
		}
	}
	return bodyGround(r.body)
}

func (r *DisjunctiveRule) Globals() map[term.VarID]struct{} {
	return RuleGlobals(headVarsOf(r.Heads), r.body)
}

func (r *DisjunctiveRule) Safe() error {
	return r.run(func() error { return checkBodySafety(r.body, r.Globals()) })
}

func (r *DisjunctiveRule) Substitute(s *term.Substitution) Statement {
	newHeads := make([]*literal.Predicate, len(r.Heads))
	for i, h := range r.Heads {
		newHeads[i] = h.Substitute(s).(*literal.Predicate)
	}
	return &DisjunctiveRule{Heads: newHeads, body: substituteBody(r.body, s), vt: r.vt}
}

func (r *DisjunctiveRule) String() string {
	heads := ""
	for i, h := range r.Heads {
		if i > 0 {
			heads += " | "
		}
		heads += h.String()
	}
	if len(r.body) == 0 {
		return heads + "."
	}
	return heads + " :- " + joinLiterals(r.body) + "."
}
