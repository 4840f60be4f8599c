package ground

import (
	"fmt"

	"github.com/aspgo/grounder/internal/component"
	"github.com/aspgo/grounder/internal/literal"
	"github.com/aspgo/grounder/internal/obslog"
	"github.com/aspgo/grounder/internal/propagate"
	"github.com/aspgo/grounder/internal/statement"
	"go.uber.org/multierr"
)

// Result is the outcome of grounding a whole program (§4.10): the
// final ground program plus the certain/possible sets it was built
// from, so a caller (asp.Program.QueryAnswers) can classify a query
// atom without re-deriving them.
type Result struct {
	Statements []statement.Statement
	Certain    *Set
	Possible   *Set
	Warnings   []Warning
}

// Ground implements §4.10: the program-level loop over the outer
// component sequence, the inner (refined) sub-components within each,
// and the certain/possible double pass per sub-component. It returns
// the final ground program (possible_inst, after reassembly) and any
// non-fatal warnings (certain derivation of a Constraint, §7
// UnsatisfiableWarning). log may be nil. Ground does not call
// Statement.Safe: unsafe statements are not rejected, and no
// ErrSafety is returned.
func Ground(stmts []statement.Statement, log *obslog.Logger) (*Result, error) {
	if log == nil {
		log = obslog.Nop()
	}

	compiled, aggs, choices, err := Compile(stmts)
	if err != nil {
		return nil, err
	}
	prop := propagate.New(aggs, choices)

	certainSet := NewSet()
	possibleSet := NewSet()
	var certainInst, possibleInst []statement.Statement

	// unsatErr accumulates every certain-constraint warning raised
	// across the whole program, so a run that derives several
	// unsatisfiable constraints (possibly in different components)
	// reports all of them instead of only the first (§4.3 ambient
	// stack: multierr aggregation of independent warnings).
	var unsatErr error

	for _, comp := range component.SequenceLogged(compiled, log) {
		refinements, err := comp.Refine()
		if err != nil {
			return nil, err
		}

		open := map[string]int{}
		for _, r := range refinements {
			for _, s := range r.Statements {
				for _, h := range s.HeadSigs() {
					open[h]++
				}
			}
		}

		for i, r := range refinements {
			reduct := reductStatements(r.Statements, open)

			certainInstances, err := GroundComponent(reduct, possibleSet, certainSet, prop)
			if err != nil {
				return nil, err
			}
			certainInst = append(certainInst, certainInstances...)
			for _, inst := range certainInstances {
				if _, isConstraint := inst.(*statement.Constraint); isConstraint {
					unsatErr = multierr.Append(unsatErr, fmt.Errorf("component %d refinement %d: certain derivation of constraint %s: program is unsatisfiable", comp.ID, i, inst))
				}
				for _, h := range headLiterals(inst) {
					certainSet.Add(h)
				}
			}

			possibleInstances, err := GroundComponent(r.Statements, certainSet, possibleSet, prop)
			if err != nil {
				return nil, err
			}
			possibleInst = append(possibleInst, possibleInstances...)
			for _, inst := range possibleInstances {
				for _, h := range headLiterals(inst) {
					possibleSet.Add(h)
				}
			}

			log.FixpointIteration(comp.ID, i, possibleSet.Len())

			for _, s := range r.Statements {
				for _, h := range s.HeadSigs() {
					open[h]--
				}
			}
		}
	}

	var warnings []Warning
	for _, e := range multierr.Errors(unsatErr) {
		log.Unsatisfiable(e.Error())
		warnings = append(warnings, Warning{Message: e.Error()})
	}

	final, err := Reassemble(possibleInst, aggs, choices, prop, certainSet, possibleSet)
	if err != nil {
		return nil, err
	}
	return &Result{Statements: final, Certain: certainSet, Possible: possibleSet, Warnings: warnings}, nil
}

// reductStatements drops every statement whose body negatively depends
// on a predicate/placeholder still open (counter > 0) in the enclosing
// component (§4.10's reduct step).
func reductStatements(stmts []statement.Statement, open map[string]int) []statement.Statement {
	out := make([]statement.Statement, 0, len(stmts))
	for _, s := range stmts {
		if !dependsNegativelyOnOpen(s, open) {
			out = append(out, s)
		}
	}
	return out
}

func dependsNegativelyOnOpen(s statement.Statement, open map[string]int) bool {
	for _, l := range s.Body() {
		sig, neg, ok := literalNegSig(l)
		if ok && neg && open[sig] > 0 {
			return true
		}
	}
	return false
}

func literalNegSig(l literal.Literal) (sig string, naf bool, ok bool) {
	switch v := l.(type) {
	case *literal.Predicate:
		return v.Sig(), v.NAF, true
	case *literal.Placeholder:
		return v.AsPredicateSig(), v.NAF, true
	default:
		return "", false, false
	}
}
