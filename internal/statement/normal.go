package statement

import (
	"fmt"

	"github.com/aspgo/grounder/internal/literal"
	"github.com/aspgo/grounder/internal/term"
)

// NormalRule is `head :- body.` (§3.5).
type NormalRule struct {
	Head *literal.Predicate
	body []literal.Literal
	vt   *VariableTable
	safetyCache
}

// NewNormalRule constructs a NormalRule, running §4.3 arithmetic
// replacement over head and body.
func NewNormalRule(head *literal.Predicate, body []literal.Literal, vt *VariableTable) (*NormalRule, error) {
	if vt == nil {
		vt = NewVariableTable()
	}
	rHead, err := ReplaceArithLiteral(head, vt)
	if err != nil {
		return nil, err
	}
	rBody, err := ReplaceArithBody(body, vt)
	if err != nil {
		return nil, err
	}
	return &NormalRule{Head: rHead.(*literal.Predicate), body: rBody, vt: vt}, nil
}

func (r *NormalRule) Body() []literal.Literal              { return r.body }
func (r *NormalRule) HeadPredicates() []*literal.Predicate  { return []*literal.Predicate{r.Head} }
func (r *NormalRule) HeadSigs() []string                    { return []string{r.Head.Sig()} }
func (r *NormalRule) VarTable() *VariableTable              { return r.vt }
func (r *NormalRule) NonDeterministic() bool          { return false }
func (r *NormalRule) Ground() bool                          { return r.Head.Ground() && bodyGround(r.body) }

func (r *NormalRule) Globals() map[term.VarID]struct{} {
	return RuleGlobals(r.Head.Vars(), r.body)
}

func (r *NormalRule) Safe() error {
	return r.run(func() error { return checkBodySafety(r.body, r.Globals()) })
}

func (r *NormalRule) Substitute(s *term.Substitution) Statement {
	newHead := r.Head.Substitute(s).(*literal.Predicate)
	return &NormalRule{Head: newHead, body: substituteBody(r.body, s), vt: r.vt}
}

func (r *NormalRule) String() string {
	if len(r.body) == 0 {
		return fmt.Sprintf("%s.", r.Head)
	}
	return fmt.Sprintf("%s :- %s.", r.Head, joinLiterals(r.body))
}

func joinLiterals(body []literal.Literal) string {
	out := ""
	for i, l := range body {
		if i > 0 {
			out += ", "
		}
		out += l.String()
	}
	return out
}
