package ground

import (
	"fmt"

	"github.com/aspgo/grounder/internal/safety"
)

// ErrSafety wraps an unsafe-program failure (§7 SafetyError).
type ErrSafety struct{ Cause *safety.Error }

func (e *ErrSafety) Error() string { return fmt.Sprintf("ground: unsafe statement: %s", e.Cause) }
func (e *ErrSafety) Unwrap() error { return e.Cause }

// ErrArith wraps a division-by-zero or otherwise invalid arithmetic
// evaluation encountered while checking a ground built-in literal
// (§7 ArithError). This is fatal: it always propagates to the caller,
// unlike an arithmetic-placeholder validity failure (§4.3), which
// simply discards the candidate.
type ErrArith struct{ Cause error }

func (e *ErrArith) Error() string { return fmt.Sprintf("ground: arithmetic error: %s", e.Cause) }
func (e *ErrArith) Unwrap() error { return e.Cause }

// ErrCycle wraps a refined component graph that still has a cycle
// after restricting to positive edges (§7 CycleError).
type ErrCycle struct{ Remaining []string }

func (e *ErrCycle) Error() string {
	return fmt.Sprintf("ground: cycle among %d statement(s) survives positive-edge refinement", len(e.Remaining))
}

// ErrAssignment wraps a substitution-merge conflict that escaped a
// candidate-discard site (§7 AssignmentError).
type ErrAssignment struct{ Cause error }

func (e *ErrAssignment) Error() string { return fmt.Sprintf("ground: assignment conflict: %s", e.Cause) }
func (e *ErrAssignment) Unwrap() error { return e.Cause }

// Warning is a non-fatal diagnostic produced during grounding
// (UnsatisfiableWarning, §7): the ground program is still returned.
type Warning struct {
	Message string
}

func (w Warning) String() string { return w.Message }
