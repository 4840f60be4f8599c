package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/aspgo/grounder/asp"
	"github.com/aspgo/grounder/internal/config"
	"github.com/aspgo/grounder/internal/obslog"
)

// Ground runs the grounding pipeline over program under cfg, using
// log for the invocation's structured logging.
func Ground(program *asp.Program, cfg config.GrounderConfig, log *obslog.Logger) (*asp.Program, error) {
	g := asp.NewGrounder(cfg, log)
	if _, err := g.Ground(program); err != nil {
		return nil, fmt.Errorf("groundgo ground: %w", err)
	}
	return program, nil
}

// WriteProgram writes p's grounded statements (and, if p carries a
// query, its answers) to outputPath, or stdout if outputPath is
// empty (§6.2).
func WriteProgram(outputPath string, p *asp.Program) error {
	var b strings.Builder
	for _, s := range p.GroundedStatements() {
		b.WriteString(s.String())
		b.WriteByte('\n')
	}
	if p.Query != nil {
		answers, err := p.QueryAnswers()
		if err != nil {
			return fmt.Errorf("groundgo ground: query answers: %w", err)
		}
		for _, a := range answers {
			status := "possible"
			if a.Certain {
				status = "certain"
			}
			fmt.Fprintf(&b, "%% %s [%s]\n", a.Atom.String(), status)
		}
	}

	if outputPath == "" {
		_, err := os.Stdout.WriteString(b.String())
		return err
	}
	return os.WriteFile(outputPath, []byte(b.String()), 0o644)
}
