package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/aspgo/grounder/asp"
	"github.com/aspgo/grounder/internal/literal"
	"github.com/aspgo/grounder/internal/statement"
	"github.com/aspgo/grounder/internal/term"
	"gopkg.in/yaml.v3"
)

// The real AST factory is an external parser (§6.1); this package
// only owns the CLI's own wire format, a direct YAML encoding of the
// pre-built AST §6.1 expects to receive, since no ASP-Core-2 surface
// parser ships in this module. See DESIGN.md.

type astTerm string

type astLiteral struct {
	Name         string   `yaml:"name"`
	Terms        []string `yaml:"terms,omitempty"`
	NAF          bool     `yaml:"naf,omitempty"`
	ClassicalNeg bool     `yaml:"classical_neg,omitempty"`
}

type astStatement struct {
	Type string       `yaml:"type"` // fact | rule | constraint
	Head *astLiteral  `yaml:"head,omitempty"`
	Body []astLiteral `yaml:"body,omitempty"`
}

type astProgram struct {
	Statements []astStatement `yaml:"statements"`
	Query      *astLiteral    `yaml:"query,omitempty"`
}

// LoadProgram reads the CLI's YAML AST format from path and builds an
// *asp.Program from it.
func LoadProgram(path string) (*asp.Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("groundgo: reading %s: %w", path, err)
	}
	var doc astProgram
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("groundgo: parsing %s: %w", path, err)
	}

	stmts := make([]statement.Statement, 0, len(doc.Statements))
	for i, s := range doc.Statements {
		stmt, err := buildStatement(s)
		if err != nil {
			return nil, fmt.Errorf("groundgo: statement %d: %w", i, err)
		}
		stmts = append(stmts, stmt)
	}

	var query *literal.Predicate
	if doc.Query != nil {
		q, err := buildLiteral(*doc.Query)
		if err != nil {
			return nil, fmt.Errorf("groundgo: query: %w", err)
		}
		pred, ok := q.(*literal.Predicate)
		if !ok {
			return nil, fmt.Errorf("groundgo: query must be a predicate literal")
		}
		query = pred
	}

	return asp.NewProgram(stmts, query), nil
}

func buildStatement(s astStatement) (statement.Statement, error) {
	body, err := buildBody(s.Body)
	if err != nil {
		return nil, err
	}

	switch s.Type {
	case "fact", "rule":
		if s.Head == nil {
			return nil, fmt.Errorf("%s statement missing head", s.Type)
		}
		head, err := buildLiteral(*s.Head)
		if err != nil {
			return nil, err
		}
		pred, ok := head.(*literal.Predicate)
		if !ok {
			return nil, fmt.Errorf("%s head must be a predicate literal", s.Type)
		}
		return statement.NewNormalRule(pred, body, statement.NewVariableTable())
	case "constraint":
		return statement.NewConstraint(body, statement.NewVariableTable())
	default:
		return nil, fmt.Errorf("unknown statement type %q", s.Type)
	}
}

func buildBody(ls []astLiteral) ([]literal.Literal, error) {
	out := make([]literal.Literal, 0, len(ls))
	for _, l := range ls {
		lit, err := buildLiteral(l)
		if err != nil {
			return nil, err
		}
		out = append(out, lit)
	}
	return out, nil
}

func buildLiteral(l astLiteral) (literal.Literal, error) {
	terms := make([]term.Term, 0, len(l.Terms))
	for _, raw := range l.Terms {
		t, err := buildTerm(raw)
		if err != nil {
			return nil, err
		}
		terms = append(terms, t)
	}
	return literal.NewPredicate(l.Name, l.NAF, l.ClassicalNeg, terms...), nil
}

// buildTerm parses one YAML term token: a leading uppercase letter or
// underscore is a Variable, an optionally-signed run of digits is a
// Number, double-quoted text is a String, anything else is a
// SymbolicConstant.
func buildTerm(raw string) (term.Term, error) {
	if raw == "" {
		return nil, fmt.Errorf("empty term")
	}
	if strings.HasPrefix(raw, `"`) && strings.HasSuffix(raw, `"`) && len(raw) >= 2 {
		return term.String(raw[1 : len(raw)-1]), nil
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return term.Number(n), nil
	}
	first := rune(raw[0])
	if first == '_' || (first >= 'A' && first <= 'Z') {
		return term.Variable{Name: raw}, nil
	}
	return term.NewSymbolicConstant(raw)
}
