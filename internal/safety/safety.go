// Package safety implements the safety calculus of spec.md §3.6/§4.1:
// SafetyTriplet closure and normalization, and per-literal safety
// contributions for predicate, built-in, and aggregate literals.
package safety

import (
	"fmt"
	"sort"

	"github.com/aspgo/grounder/internal/term"
)

// Rule is a safety-dependency edge: depender becomes safe once every
// variable in Dependees is safe (§3.6).
type Rule struct {
	Depender term.VarID
	Dependees map[term.VarID]struct{}
}

// Triplet is SafetyTriplet = (safe, unsafe, rules) (§3.6).
type Triplet struct {
	Safe   map[term.VarID]struct{}
	Unsafe map[term.VarID]struct{}
	Rules  []Rule
}

// Empty returns the (∅,∅,∅) triplet.
func Empty() Triplet {
	return Triplet{Safe: map[term.VarID]struct{}{}, Unsafe: map[term.VarID]struct{}{}}
}

// SafeVar returns ({v},∅,∅): the safety contribution of a bare
// variable occurrence (§4.1).
func SafeVar(v term.VarID) Triplet {
	return Triplet{Safe: map[term.VarID]struct{}{v: {}}, Unsafe: map[term.VarID]struct{}{}}
}

// UnsafeVars returns (∅,vars,∅).
func UnsafeVars(vars map[term.VarID]struct{}) Triplet {
	u := map[term.VarID]struct{}{}
	for v := range vars {
		u[v] = struct{}{}
	}
	return Triplet{Safe: map[term.VarID]struct{}{}, Unsafe: u}
}

// RuleTriplet returns (∅,∅,{rule}).
func RuleTriplet(depender term.VarID, dependees map[term.VarID]struct{}) Triplet {
	return Triplet{Safe: map[term.VarID]struct{}{}, Unsafe: map[term.VarID]struct{}{}, Rules: []Rule{{Depender: depender, Dependees: cloneSet(dependees)}}}
}

func cloneSet(s map[term.VarID]struct{}) map[term.VarID]struct{} {
	out := make(map[term.VarID]struct{}, len(s))
	for k := range s {
		out[k] = struct{}{}
	}
	return out
}

func unionSets(sets ...map[term.VarID]struct{}) map[term.VarID]struct{} {
	out := map[term.VarID]struct{}{}
	for _, s := range sets {
		for k := range s {
			out[k] = struct{}{}
		}
	}
	return out
}

// Closure combines triplets by set-union and then normalizes (§3.6):
//   (a) remove rules where depender ∈ dependees;
//   (b) iterate: if depender ∈ safe, drop rule; else drop safe vars
//       from dependees; if dependees becomes empty, add depender to
//       safe and drop rule;
//   (c) residual rules' variables are moved to unsafe;
//   (d) unsafe ← unsafe \ safe.
//
// Normalization converges in O(V·R) since each iteration either
// shrinks some rule's dependee set or removes a rule.
func Closure(ts ...Triplet) Triplet {
	safeSets := make([]map[term.VarID]struct{}, len(ts))
	unsafeSets := make([]map[term.VarID]struct{}, len(ts))
	var rules []Rule
	for i, t := range ts {
		safeSets[i] = t.Safe
		unsafeSets[i] = t.Unsafe
		rules = append(rules, t.Rules...)
	}
	safe := unionSets(safeSets...)
	unsafe := unionSets(unsafeSets...)

	// (a) remove self-dependent rules.
	rules = filterRules(rules, func(r Rule) bool {
		_, selfDep := r.Dependees[r.Depender]
		return !selfDep
	})

	// (b) fixpoint: resolve rules against the growing safe set.
	changed := true
	for changed {
		changed = false
		var remaining []Rule
		for _, r := range rules {
			if _, ok := safe[r.Depender]; ok {
				changed = true
				continue
			}
			trimmed := map[term.VarID]struct{}{}
			for d := range r.Dependees {
				if _, isSafe := safe[d]; !isSafe {
					trimmed[d] = struct{}{}
				}
			}
			if len(trimmed) == 0 {
				safe[r.Depender] = struct{}{}
				changed = true
				continue
			}
			if len(trimmed) != len(r.Dependees) {
				changed = true
			}
			remaining = append(remaining, Rule{Depender: r.Depender, Dependees: trimmed})
		}
		rules = remaining
	}

	// (c) residual rule variables move to unsafe.
	for _, r := range rules {
		unsafe[r.Depender] = struct{}{}
		for d := range r.Dependees {
			unsafe[d] = struct{}{}
		}
	}

	// (d) unsafe \ safe.
	for v := range safe {
		delete(unsafe, v)
	}

	return Triplet{Safe: safe, Unsafe: unsafe, Rules: nil}
}

func filterRules(rules []Rule, keep func(Rule) bool) []Rule {
	var out []Rule
	for _, r := range rules {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// IsFullySafe reports whether t equals ({globals},∅,∅) — the
// statement-level safety condition of §4.1.
func (t Triplet) IsFullySafe(globals map[term.VarID]struct{}) bool {
	if len(t.Unsafe) != 0 || len(t.Rules) != 0 {
		return false
	}
	if len(t.Safe) != len(globals) {
		return false
	}
	for v := range globals {
		if _, ok := t.Safe[v]; !ok {
			return false
		}
	}
	return true
}

// Error is the fatal SafetyError of spec.md §7, naming the unsafe
// variables.
type Error struct {
	Unsafe []term.VarID
}

func (e *Error) Error() string {
	names := make([]string, len(e.Unsafe))
	for i, v := range e.Unsafe {
		names[i] = v.String()
	}
	sort.Strings(names)
	return fmt.Sprintf("safety: variables not safe: %v", names)
}

// Check returns nil if body's safety closure is fully safe w.r.t.
// globals, else a *Error naming the offending variables (§4.1 "A
// statement is safe iff body.safety() = ({statement_global_vars},∅,∅)").
func Check(body Triplet, globals map[term.VarID]struct{}) error {
	if body.IsFullySafe(globals) {
		return nil
	}
	unsafeSet := map[term.VarID]struct{}{}
	for v := range body.Unsafe {
		unsafeSet[v] = struct{}{}
	}
	for v := range globals {
		if _, ok := body.Safe[v]; !ok {
			unsafeSet[v] = struct{}{}
		}
	}
	for _, r := range body.Rules {
		unsafeSet[r.Depender] = struct{}{}
		for d := range r.Dependees {
			unsafeSet[d] = struct{}{}
		}
	}
	var unsafe []term.VarID
	for v := range unsafeSet {
		unsafe = append(unsafe, v)
	}
	return &Error{Unsafe: unsafe}
}
