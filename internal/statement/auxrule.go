package statement

import (
	"sort"

	"github.com/aspgo/grounder/internal/literal"
	"github.com/aspgo/grounder/internal/term"
)

// auxSig is satisfied by literal.Base/Element/Placeholder.
type auxSig interface {
	AsPredicateSig() string
}

// AuxRule is a generated ε/η/placeholder-headed rule produced by
// §4.4/§4.5 aggregate and choice rewriting. Its head is an auxiliary
// literal (never a user predicate), so it implements Statement
// alongside the five surface variants without forcing HeadPredicates
// to accept non-Predicate heads.
type AuxRule struct {
	Head literal.Literal
	body []literal.Literal
	vt   *VariableTable
	safetyCache
}

func newAuxRule(head literal.Literal, body []literal.Literal, vt *VariableTable) *AuxRule {
	return &AuxRule{Head: head, body: body, vt: vt}
}

func (r *AuxRule) Body() []literal.Literal              { return r.body }
func (r *AuxRule) HeadPredicates() []*literal.Predicate { return nil }

func (r *AuxRule) HeadSigs() []string {
	if s, ok := r.Head.(auxSig); ok {
		return []string{s.AsPredicateSig()}
	}
	return nil
}

func (r *AuxRule) VarTable() *VariableTable  { return r.vt }
func (r *AuxRule) NonDeterministic() bool    { return false }
func (r *AuxRule) Ground() bool              { return r.Head.Ground() && bodyGround(r.body) }

func (r *AuxRule) Globals() map[term.VarID]struct{} {
	return RuleGlobals(r.Head.Vars(), r.body)
}

func (r *AuxRule) Safe() error {
	return r.run(func() error { return checkBodySafety(r.body, r.Globals()) })
}

func (r *AuxRule) Substitute(s *term.Substitution) Statement {
	return &AuxRule{Head: r.Head.Substitute(s), body: substituteBody(r.body, s), vt: r.vt}
}

func (r *AuxRule) String() string {
	if len(r.body) == 0 {
		return r.Head.String() + "."
	}
	return r.Head.String() + " :- " + joinLiterals(r.body) + "."
}

// sortVarIDs orders a variable set deterministically (name, then
// sequence number) so repeated rewriting of the same rule always
// produces the same auxiliary-literal argument order.
func sortVarIDs(s map[term.VarID]struct{}) []term.VarID {
	out := make([]term.VarID, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Seq < out[j].Seq
	})
	return out
}

// varTerm reconstructs the Term a VarID binds to, for use in an
// auxiliary literal's assignment-term list.
func varTerm(id term.VarID) term.Term {
	switch {
	case id.Name == "_" && id.Seq > 0:
		return term.AnonVariable{ID: id.Seq}
	case id.Name == "τ" && id.Seq > 0:
		return term.ArithPlaceholderVariable{ID: id.Seq, Original: term.Number(0)}
	default:
		return term.Variable{Name: id.Name}
	}
}

func varTerms(ids []term.VarID) []term.Term {
	out := make([]term.Term, len(ids))
	for i, id := range ids {
		out[i] = varTerm(id)
	}
	return out
}
