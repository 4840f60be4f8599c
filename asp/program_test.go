package asp

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/aspgo/grounder/internal/config"
	"github.com/aspgo/grounder/internal/literal"
	"github.com/aspgo/grounder/internal/statement"
	"github.com/aspgo/grounder/internal/term"
)

func factStmt(t *testing.T, name string, terms ...term.Term) statement.Statement {
	t.Helper()
	s, err := statement.NewNormalRule(literal.NewPredicate(name, false, false, terms...), nil, nil)
	require.NoError(t, err)
	return s
}

func TestProgramQueryAnswers(t *testing.T) {
	p1 := factStmt(t, "p", term.Number(1), term.Number(2))
	p2 := factStmt(t, "p", term.Number(3), term.Number(4))

	query := literal.NewPredicate("p", false, false, term.Variable{Name: "X"}, term.Variable{Name: "Y"})
	prog := NewProgram([]statement.Statement{p1, p2}, query)

	g := NewGrounder(config.Default(), nil)
	_, err := g.Ground(prog)
	require.NoError(t, err)

	answers, err := prog.QueryAnswers()
	require.NoError(t, err)

	got := make([]string, 0, len(answers))
	for _, a := range answers {
		got = append(got, a.Atom.String())
	}
	sort.Strings(got)

	want := []string{"p(1,2)", "p(3,4)"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("query answers mismatch (-want +got):\n%s", diff)
	}
}

func TestProgramQueryAnswersNoQuery(t *testing.T) {
	prog := NewProgram(nil, nil)
	_, err := prog.QueryAnswers()
	require.ErrorIs(t, err, ErrNoQuery)
}

func TestProgramQueryAnswersNotGrounded(t *testing.T) {
	query := literal.NewPredicate("p", false, false, term.Variable{Name: "X"})
	prog := NewProgram(nil, query)
	_, err := prog.QueryAnswers()
	require.ErrorIs(t, err, ErrNotGrounded)
}
