package statement

import (
	"github.com/aspgo/grounder/internal/literal"
	"github.com/aspgo/grounder/internal/term"
)

// NPPDeclaration is `#npp(id(args)[o1,...,on]).` (spec.md §6.3): a
// neural-probabilistic-predicate family of atoms id(args,o1) through
// id(args,on), exactly one of which is selected.
type NPPDeclaration struct {
	Name     string
	Args     []term.Term
	Outcomes []term.Term
}

// NewNPPRule desugars an NPPDeclaration plus body into the ChoiceRule
// `1 = { id(args,o1); ...; id(args,on) } = 1 :- body.` (spec.md
// §6.3, ground_slash's NPPRule). NPP never appears past statement
// construction: internal/ground sees only the five variants of §3.5.
func NewNPPRule(decl *NPPDeclaration, body []literal.Literal, vt *VariableTable) (*ChoiceRule, error) {
	elems := make([]literal.ChoiceElement, len(decl.Outcomes))
	for i, o := range decl.Outcomes {
		terms := make([]term.Term, 0, len(decl.Args)+1)
		terms = append(terms, decl.Args...)
		terms = append(terms, o)
		elems[i] = literal.ChoiceElement{
			Atom: literal.NewPredicate(decl.Name, false, false, terms...),
		}
	}
	one := term.Number(1)
	choice := &literal.Choice{
		Elements: elems,
		LGuard:   &literal.Guard{Op: literal.Eq, Bound: one},
		RGuard:   &literal.Guard{Op: literal.Eq, Bound: one},
	}
	return NewChoiceRule(choice, body, vt)
}
