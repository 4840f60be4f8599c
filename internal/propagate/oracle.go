// Package propagate implements spec.md §4.6's aggregate/choice
// propagator: a satisfiability oracle per aggregate function, and
// reassembly of grounded ε/η instances back into full aggregate and
// choice literals.
package propagate

import (
	"math"

	"github.com/aspgo/grounder/internal/literal"
	"github.com/aspgo/grounder/internal/term"
)

// bounds is a closed integer interval [Lo,Hi] approximating an
// aggregate's possible value given the certain/possible element sets
// observed so far (§4.6's "conservative approximation").
type bounds struct {
	Lo, Hi int64
	Empty  bool // true when both element sets are empty (value is base only)
}

// countBounds implements §4.6's count oracle: the number of elements
// known present lower-bounds the count; the number possibly present
// upper-bounds it.
func countBounds(certain, possible int) bounds {
	return bounds{Lo: int64(certain), Hi: int64(possible)}
}

// sumBounds implements the sum oracle: certain elements always
// contribute; an optional (possible-but-not-certain) element can only
// ever help reach the extreme it is asked about — so it is counted
// toward Hi only if its weight is positive, toward Lo only if
// negative.
func sumBounds(certainWeights []int64, optionalWeights []int64) bounds {
	var sum int64
	for _, w := range certainWeights {
		sum += w
	}
	lo, hi := sum, sum
	for _, w := range optionalWeights {
		if w > 0 {
			hi += w
		} else if w < 0 {
			lo += w
		}
	}
	return bounds{Lo: lo, Hi: hi}
}

// maxBounds/minBounds implement the min/max oracles "by monotonicity":
// adding elements can only raise #max and only lower #min, so the
// final value always lies between the certain-only extreme and the
// possible-inclusive extreme.
func maxBounds(certainWeights, possibleWeights []int64) bounds {
	if len(possibleWeights) == 0 {
		return bounds{Empty: true}
	}
	var loV, hiV int64
	first := true
	for _, w := range certainWeights {
		if first || w > loV {
			loV = w
		}
		first = false
	}
	if len(certainWeights) == 0 {
		// No certain element yet: the true lower bound of #max, absent
		// any forced element, is the aggregate's base value (-inf),
		// represented here by the smallest int64.
		loV = math.MinInt64
	}
	first = true
	for _, w := range possibleWeights {
		if first || w > hiV {
			hiV = w
		}
		first = false
	}
	return bounds{Lo: loV, Hi: hiV}
}

func minBounds(certainWeights, possibleWeights []int64) bounds {
	if len(possibleWeights) == 0 {
		return bounds{Empty: true}
	}
	var loV, hiV int64
	first := true
	for _, w := range possibleWeights {
		if first || w < loV {
			loV = w
		}
		first = false
	}
	first = true
	for _, w := range certainWeights {
		if first || w < hiV {
			hiV = w
		}
		first = false
	}
	if len(certainWeights) == 0 {
		hiV = math.MaxInt64 // no certain element: the ceiling is the base value (+inf)
	}
	return bounds{Lo: loV, Hi: hiV}
}

// flip turns a "bound op value" guard into its "value op' bound"
// equivalent so every guard can be checked in one canonical
// orientation.
func flip(op literal.RelOp) literal.RelOp {
	switch op {
	case literal.Lt:
		return literal.Gt
	case literal.Gt:
		return literal.Lt
	case literal.Leq:
		return literal.Geq
	case literal.Geq:
		return literal.Leq
	default:
		return op
	}
}

// possibleInRange reports whether some integer v in [lo,hi] satisfies
// `v op bound`.
func possibleInRange(op literal.RelOp, bound, lo, hi int64) bool {
	switch op {
	case literal.Eq:
		return lo <= bound && bound <= hi
	case literal.Neq:
		return !(lo == hi && lo == bound)
	case literal.Lt:
		return lo < bound
	case literal.Gt:
		return hi > bound
	case literal.Leq:
		return lo <= bound
	case literal.Geq:
		return hi >= bound
	default:
		return false
	}
}

// guardsPossiblySatisfied checks both guards (each canonicalized via
// flip to "value op bound") against an aggregate's value interval.
func guardsPossiblySatisfied(lg, rg *literal.Guard, b bounds) bool {
	if b.Empty {
		return true // base-value case; the epsilon rule handles this independently
	}
	if lg != nil {
		n, err := term.Eval(lg.Bound)
		if err != nil {
			return false
		}
		if !possibleInRange(flip(lg.Op), int64(n), b.Lo, b.Hi) {
			return false
		}
	}
	if rg != nil {
		n, err := term.Eval(rg.Bound)
		if err != nil {
			return false
		}
		if !possibleInRange(rg.Op, int64(n), b.Lo, b.Hi) {
			return false
		}
	}
	return true
}
