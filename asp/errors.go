package asp

import (
	"errors"

	"github.com/aspgo/grounder/internal/ground"
)

// ErrNoQuery is returned by QueryAnswers when the Program carries no
// query literal (§3.8 "plus an optional query literal").
var ErrNoQuery = errors.New("asp: program carries no query literal")

// ErrNotGrounded is returned by QueryAnswers before Grounder.Ground
// has run on the Program.
var ErrNotGrounded = errors.New("asp: program has not been grounded yet")

// The §7 error kinds, re-exported from internal/ground so callers of
// this package can use errors.As without importing an internal
// package directly.
type (
	// SafetyError is §7's SafetyError: the input program is not safe.
	SafetyError = ground.ErrSafety
	// ArithError is §7's ArithError: non-ground comparison, division
	// by zero, or a non-integer operand during evaluation.
	ArithError = ground.ErrArith
	// CycleError is §7's CycleError: the refined component graph
	// still contains a cycle after restricting to positive edges.
	CycleError = ground.ErrCycle
	// AssignmentError is §7's AssignmentError: a substitution merge
	// conflict escaped a candidate-discard site.
	AssignmentError = ground.ErrAssignment
)

// Warning is a non-fatal §7 UnsatisfiableWarning: the ground program
// was still produced.
type Warning = ground.Warning
