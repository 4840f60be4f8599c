package ground

import (
	"github.com/aspgo/grounder/internal/literal"
	"github.com/aspgo/grounder/internal/statement"
)

// Compile applies §4.4/§4.5 rewriting to every statement of a parsed
// program: ChoiceRules are replaced by their χ-placeholder AuxRule,
// and any Aggregate literal remaining in another statement's body is
// replaced by its α-placeholder, each paired with the generated ε/η
// AuxRules. The aggregate and choice maps (§4.4 step 4, §4.5 step 3)
// are returned alongside the now aggregate/choice-free statement list
// so the propagator and assemble() can be built once for the whole
// program.
func Compile(stmts []statement.Statement) ([]statement.Statement, []*statement.AggregateRewrite, []*statement.ChoiceRewrite, error) {
	seq := &statement.RefSeq{}
	out := make([]statement.Statement, 0, len(stmts))
	var aggRewrites []*statement.AggregateRewrite
	var choiceRewrites []*statement.ChoiceRewrite

	for _, s := range stmts {
		if cr, isChoice := s.(*statement.ChoiceRule); isChoice {
			aux, rewrite, err := statement.RewriteChoice(cr, seq)
			if err != nil {
				return nil, nil, nil, err
			}
			out = append(out, aux)
			choiceRewrites = append(choiceRewrites, rewrite)
			continue
		}

		rewritten, rewrites, err := statement.RewriteAggregates(s.Body(), s.Globals(), seq, s.VarTable())
		if err != nil {
			return nil, nil, nil, err
		}
		aggRewrites = append(aggRewrites, rewrites...)
		if len(rewrites) == 0 {
			out = append(out, s)
			continue
		}

		rebuilt, err := rebuildWithBody(s, rewritten)
		if err != nil {
			return nil, nil, nil, err
		}
		out = append(out, rebuilt)
	}
	return out, aggRewrites, choiceRewrites, nil
}

func rebuildWithBody(s statement.Statement, body []literal.Literal) (statement.Statement, error) {
	switch v := s.(type) {
	case *statement.NormalRule:
		return statement.NewNormalRule(v.Head, body, v.VarTable())
	case *statement.DisjunctiveRule:
		return statement.NewDisjunctiveRule(v.Heads, body, v.VarTable())
	case *statement.Constraint:
		return statement.NewConstraint(body, v.VarTable())
	default:
		return s, nil
	}
}
