// Package asp is the public facade over the grounder (§6.1, §7):
// Program construction from a statement list plus an optional query
// literal, and a Grounder that turns a Program into its ground form.
package asp

import (
	"github.com/aspgo/grounder/internal/config"
	"github.com/aspgo/grounder/internal/ground"
	"github.com/aspgo/grounder/internal/literal"
	"github.com/aspgo/grounder/internal/obslog"
	"github.com/aspgo/grounder/internal/statement"
	"github.com/aspgo/grounder/internal/term"
)

// Program is an ordered collection of statements plus an optional
// query literal (§3.8). A query need not be safe and is not checked
// here: it is stored as given, and evaluated against the grounded
// certain/possible sets by QueryAnswers once the program has been
// grounded — the actual solving step remains out of scope (§1).
type Program struct {
	Statements []statement.Statement
	Query      *literal.Predicate

	result *ground.Result
}

// NewProgram builds a Program from a parsed AST's statement list and
// an optional query literal (nil if the input has none).
func NewProgram(statements []statement.Statement, query *literal.Predicate) *Program {
	return &Program{Statements: statements, Query: query}
}

// GroundedStatements returns the ground program produced by the last
// Grounder.Ground call on p, or nil if p has not been grounded yet.
func (p *Program) GroundedStatements() []statement.Statement {
	if p.result == nil {
		return nil
	}
	return p.result.Statements
}

// Warnings returns the §7 UnsatisfiableWarnings from the last
// Grounder.Ground call on p, or nil if p has not been grounded yet.
func (p *Program) Warnings() []ground.Warning {
	if p.result == nil {
		return nil
	}
	return p.result.Warnings
}

// QueryAnswer is one ground instance of a Program's query literal,
// classified by whether it was derived as certain or only possible.
type QueryAnswer struct {
	Atom    *literal.Predicate
	Certain bool
}

// QueryAnswers reports every ground instance of p.Query found in the
// program's certain or possible sets after grounding (§7 supplemented
// feature). Returns ErrNoQuery if p carries no query literal, or
// ErrNotGrounded if called before a Grounder has grounded p.
func (p *Program) QueryAnswers() ([]QueryAnswer, error) {
	if p.Query == nil {
		return nil, ErrNoQuery
	}
	if p.result == nil {
		return nil, ErrNotGrounded
	}

	var answers []QueryAnswer
	seen := map[string]bool{}
	for _, candidate := range p.result.Certain.BySig(p.Query.Sig()) {
		if atom, ok := matchQuery(p.Query, candidate); ok {
			key := atom.String()
			if !seen[key] {
				seen[key] = true
				answers = append(answers, QueryAnswer{Atom: atom, Certain: true})
			}
		}
	}
	for _, candidate := range p.result.Possible.BySig(p.Query.Sig()) {
		if atom, ok := matchQuery(p.Query, candidate); ok {
			key := atom.String()
			if !seen[key] {
				seen[key] = true
				answers = append(answers, QueryAnswer{Atom: atom, Certain: false})
			}
		}
	}
	return answers, nil
}

// matchQuery attempts to match the query pattern's terms against a
// ground candidate predicate's terms, term by term (§4.2 matching,
// specialized to whole-literal matching since literal.Literal itself
// has no Match method).
func matchQuery(query *literal.Predicate, candidate literal.Literal) (*literal.Predicate, bool) {
	pred, ok := candidate.(*literal.Predicate)
	if !ok || pred.Name != query.Name || len(pred.Terms) != len(query.Terms) {
		return nil, false
	}
	sub := term.NewSubstitution()
	for i, qt := range query.Terms {
		matched, ok := term.Match(qt, pred.Terms[i])
		if !ok {
			return nil, false
		}
		merged, err := term.Merge(sub, matched)
		if err != nil {
			return nil, false
		}
		sub = merged
	}
	return pred, true
}

// Grounder runs the grounding pipeline over a Program with a fixed
// GrounderConfig and logger (§6.4: the grounder is a pure function of
// (Program, GrounderConfig); this type only adds the ambient config
// and logging a single invocation carries alongside that function).
type Grounder struct {
	Config config.GrounderConfig
	Log    *obslog.Logger
}

// NewGrounder builds a Grounder. A zero Logger field means Nop.
func NewGrounder(cfg config.GrounderConfig, log *obslog.Logger) *Grounder {
	if log == nil {
		log = obslog.Nop()
	}
	return &Grounder{Config: cfg, Log: log}
}

// Ground grounds p's statements, stores the result on p (so
// p.QueryAnswers can use it), and returns it. If cfg.Strict is set, a
// non-empty set of §7 UnsatisfiableWarnings is also reported as a
// *StrictWarningError, returned together with the Result (whose
// Warnings still hold them).
func (g *Grounder) Ground(p *Program) (*ground.Result, error) {
	res, err := ground.Ground(p.Statements, g.Log)
	if err != nil {
		return nil, err
	}
	p.result = res
	if g.Config.Strict && len(res.Warnings) > 0 {
		return res, &StrictWarningError{Warnings: res.Warnings}
	}
	return res, nil
}

// StrictWarningError wraps one or more §7 UnsatisfiableWarnings
// promoted to a fatal error by GrounderConfig.Strict.
type StrictWarningError struct {
	Warnings []ground.Warning
}

func (e *StrictWarningError) Error() string {
	if len(e.Warnings) == 1 {
		return "asp: strict mode: " + e.Warnings[0].Message
	}
	msg := "asp: strict mode: multiple unsatisfiable warnings:"
	for _, w := range e.Warnings {
		msg += " [" + w.Message + "]"
	}
	return msg
}
