// Package obslog provides the grounder's structured logging: one
// zap-backed logger per invocation (§4.2 — no global logger state, so
// two concurrent invocations in the same process never interleave
// fields). Log sites cover component-graph stratification decisions,
// per-refinement progress of each component, UnsatisfiableWarning
// emission, and aggregate/choice propagator satisfiability decisions.
package obslog

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps a *zap.Logger scoped to a single grounding invocation.
type Logger struct {
	z *zap.Logger
}

// New builds a Logger at the given level. An invocation that wants
// debug-level propagator tracing passes zapcore.DebugLevel.
func New(level zapcore.Level) (*Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	z, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &Logger{z: z}, nil
}

// Nop returns a Logger that discards everything, for callers (tests,
// library embedders) that pass no logger of their own.
func Nop() *Logger { return &Logger{z: zap.NewNop()} }

// Sync flushes the underlying zap core.
func (l *Logger) Sync() error {
	if l == nil || l.z == nil {
		return nil
	}
	return l.z.Sync()
}

// Stratification logs whether a component came out stratified during
// outer sequencing (§3.9, §4.7).
func (l *Logger) Stratification(componentID int, nodeUUID string, stratified bool, memberCount int) {
	l.z.Debug("component stratification",
		zap.Int("component_id", componentID),
		zap.String("node_uuid", nodeUUID),
		zap.Bool("stratified", stratified),
		zap.Int("members", memberCount),
	)
}

// FixpointIteration logs one step of a component's grounding: the
// grounder calls it once per refinement, passing the refinement's
// index as iteration and the size of the possible set after it.
func (l *Logger) FixpointIteration(componentID, iteration, jLen int) {
	l.z.Debug("fixpoint iteration",
		zap.Int("component_id", componentID),
		zap.Int("iteration", iteration),
		zap.Int("possible_set_size", jLen),
	)
}

// Unsatisfiable logs a certain derivation of a Constraint (§7
// UnsatisfiableWarning) — the ground program is still produced.
func (l *Logger) Unsatisfiable(msg string) {
	l.z.Warn("unsatisfiable constraint derived as certain", zap.String("detail", msg))
}

// PropagatorDecision logs one aggregate/choice placeholder's
// satisfiability verdict from the propagator's oracle (§4.6).
func (l *Logger) PropagatorDecision(k int, satisfiable bool) {
	l.z.Debug("propagator decision",
		zap.Int("placeholder_k", k),
		zap.Bool("satisfiable", satisfiable),
	)
}
