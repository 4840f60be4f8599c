package literal

import (
	"fmt"

	"github.com/aspgo/grounder/internal/term"
	"github.com/samber/lo"
)

// AggFunc is an aggregate function (§3.2).
type AggFunc int

const (
	Count AggFunc = iota
	Sum
	Max
	Min
)

func (f AggFunc) String() string {
	switch f {
	case Count:
		return "#count"
	case Sum:
		return "#sum"
	case Max:
		return "#max"
	case Min:
		return "#min"
	default:
		return "#?"
	}
}

// BaseValue returns the aggregate's empty-set value (§4.4 step 2):
// 0 for count/sum, +inf for min, -inf for max. Represented as a Term
// (term.Supremum/term.Infimum) so it composes with the guard's
// RelOp/term machinery uniformly.
func (f AggFunc) BaseValue() term.Term {
	switch f {
	case Count, Sum:
		return term.Number(0)
	case Min:
		return term.Supremum
	case Max:
		return term.Infimum
	default:
		return term.Number(0)
	}
}

// AggregateElement is `head : body` inside an aggregate (§3.3).
type AggregateElement struct {
	Head []term.Term
	Body []Literal
}

// Weight is the first head term if numeric, else 0 (§3.3).
func (e AggregateElement) Weight() term.Number {
	if len(e.Head) == 0 {
		return 0
	}
	if n, ok := e.Head[0].(term.Number); ok {
		return n
	}
	return 0
}

// LocalVars returns the element's variables not present in global.
func (e AggregateElement) LocalVars(global map[term.VarID]struct{}) map[term.VarID]struct{} {
	out := map[term.VarID]struct{}{}
	for _, t := range e.Head {
		for id := range t.Vars() {
			if _, isGlobal := global[id]; !isGlobal {
				out[id] = struct{}{}
			}
		}
	}
	for _, l := range e.Body {
		for id := range l.Vars() {
			if _, isGlobal := global[id]; !isGlobal {
				out[id] = struct{}{}
			}
		}
	}
	return out
}

func (e AggregateElement) Substitute(s *term.Substitution) AggregateElement {
	newHead := make([]term.Term, len(e.Head))
	for i, t := range e.Head {
		newHead[i] = t.Substitute(s)
	}
	newBody := make([]Literal, len(e.Body))
	for i, l := range e.Body {
		newBody[i] = l.Substitute(s)
	}
	return AggregateElement{Head: newHead, Body: newBody}
}

func (e AggregateElement) Vars() map[term.VarID]struct{} {
	out := map[term.VarID]struct{}{}
	for _, t := range e.Head {
		for id := range t.Vars() {
			out[id] = struct{}{}
		}
	}
	for _, l := range e.Body {
		for id := range l.Vars() {
			out[id] = struct{}{}
		}
	}
	return out
}

func (e AggregateElement) String() string {
	heads := lo.Map(e.Head, func(t term.Term, _ int) string { return t.String() })
	bodies := lo.Map(e.Body, func(l Literal, _ int) string { return l.String() })
	return fmt.Sprintf("%s:%s", joinAll(heads), joinAll(bodies))
}

func joinAll(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += ","
		}
		out += p
	}
	return out
}

// Guard is one side (left or right) of an aggregate or choice guard.
type Guard struct {
	Op   RelOp
	Bound term.Term
}

// Aggregate is an aggregate literal with zero, one, or two guards
// (§3.2). At least one guard must be present (§3.2 invariant).
type Aggregate struct {
	Func     AggFunc
	Elements []AggregateElement
	LGuard   *Guard // bound <op> AGG(...)
	RGuard   *Guard // AGG(...) <op> bound
	NAF      bool
}

// ErrNoGuard is returned by NewAggregate when neither guard is given.
var ErrNoGuard = fmt.Errorf("literal: aggregate literal requires at least one guard")

// NewAggregate validates guard presence (§3.2 invariant).
func NewAggregate(fn AggFunc, elements []AggregateElement, lguard, rguard *Guard, naf bool) (*Aggregate, error) {
	if lguard == nil && rguard == nil {
		return nil, ErrNoGuard
	}
	return &Aggregate{Func: fn, Elements: elements, LGuard: lguard, RGuard: rguard, NAF: naf}, nil
}

func (a *Aggregate) String() string {
	prefix := ""
	if a.NAF {
		prefix = "not "
	}
	elems := lo.Map(a.Elements, func(e AggregateElement, _ int) string { return e.String() })
	body := fmt.Sprintf("%s{%s}", a.Func, joinAll(elems))
	if a.LGuard != nil {
		body = fmt.Sprintf("%s%s%s", a.LGuard.Bound, a.LGuard.Op, body)
	}
	if a.RGuard != nil {
		body = fmt.Sprintf("%s%s%s", body, a.RGuard.Op, a.RGuard.Bound)
	}
	return prefix + body
}

func (a *Aggregate) Substitute(s *term.Substitution) Literal {
	newElems := make([]AggregateElement, len(a.Elements))
	for i, e := range a.Elements {
		newElems[i] = e.Substitute(s)
	}
	out := &Aggregate{Func: a.Func, Elements: newElems, NAF: a.NAF}
	if a.LGuard != nil {
		out.LGuard = &Guard{Op: a.LGuard.Op, Bound: a.LGuard.Bound.Substitute(s)}
	}
	if a.RGuard != nil {
		out.RGuard = &Guard{Op: a.RGuard.Op, Bound: a.RGuard.Bound.Substitute(s)}
	}
	return out
}

func (a *Aggregate) Vars() map[term.VarID]struct{} {
	out := map[term.VarID]struct{}{}
	if a.LGuard != nil {
		for id := range a.LGuard.Bound.Vars() {
			out[id] = struct{}{}
		}
	}
	if a.RGuard != nil {
		for id := range a.RGuard.Bound.Vars() {
			out[id] = struct{}{}
		}
	}
	for _, e := range a.Elements {
		for id := range e.Vars() {
			out[id] = struct{}{}
		}
	}
	return out
}

func (a *Aggregate) Ground() bool {
	if a.LGuard != nil && !a.LGuard.Bound.Ground() {
		return false
	}
	if a.RGuard != nil && !a.RGuard.Bound.Ground() {
		return false
	}
	for _, e := range a.Elements {
		for _, t := range e.Head {
			if !t.Ground() {
				return false
			}
		}
		for _, l := range e.Body {
			if !l.Ground() {
				return false
			}
		}
	}
	return true
}

// GlobalVars returns the aggregate's global variables relative to a
// rule's global variable set G_rule: G_L = G_rule ∩ vars(L) (§4.4).
func (a *Aggregate) GlobalVars(ruleGlobals map[term.VarID]struct{}) map[term.VarID]struct{} {
	out := map[term.VarID]struct{}{}
	for id := range a.Vars() {
		if _, ok := ruleGlobals[id]; ok {
			out[id] = struct{}{}
		}
	}
	return out
}

// ElementVars returns the union of variables occurring across all of
// the aggregate's elements (head and body), excluding the guard
// terms. Used to compute the aggregate's *inner* global variables
// (§4.1's "inner global variables"), distinct from the outer
// guard-term variables.
func (a *Aggregate) ElementVars() map[term.VarID]struct{} {
	out := map[term.VarID]struct{}{}
	for _, e := range a.Elements {
		for id := range e.Vars() {
			out[id] = struct{}{}
		}
	}
	return out
}

// InnerGlobalVars returns ElementVars() ∩ ruleGlobals: the element
// variables that are also global to the enclosing rule (§4.4 step 1's
// G_L, restricted to the element side rather than the guard side).
func (a *Aggregate) InnerGlobalVars(ruleGlobals map[term.VarID]struct{}) map[term.VarID]struct{} {
	out := map[term.VarID]struct{}{}
	for id := range a.ElementVars() {
		if _, ok := ruleGlobals[id]; ok {
			out[id] = struct{}{}
		}
	}
	return out
}

// ChoiceElement is `atom : condition` inside a choice expression
// (§3.4).
type ChoiceElement struct {
	Atom      *Predicate
	Condition []Literal
}

func (e ChoiceElement) Substitute(s *term.Substitution) ChoiceElement {
	newCond := make([]Literal, len(e.Condition))
	for i, l := range e.Condition {
		newCond[i] = l.Substitute(s)
	}
	return ChoiceElement{Atom: e.Atom.Substitute(s).(*Predicate), Condition: newCond}
}

func (e ChoiceElement) Vars() map[term.VarID]struct{} {
	out := map[term.VarID]struct{}{}
	for id := range e.Atom.Vars() {
		out[id] = struct{}{}
	}
	for _, l := range e.Condition {
		for id := range l.Vars() {
			out[id] = struct{}{}
		}
	}
	return out
}

func (e ChoiceElement) String() string {
	conds := lo.Map(e.Condition, func(l Literal, _ int) string { return l.String() })
	return fmt.Sprintf("%s:%s", e.Atom, joinAll(conds))
}

// Choice is a choice expression `t1 op1 { e1;...;en } op2 t2` (§3.4,
// §4.5). It is not itself a Literal — it only ever appears as the head
// of a ChoiceRule, rewritten away before grounding (§4.5).
type Choice struct {
	Elements []ChoiceElement
	LGuard   *Guard
	RGuard   *Guard
}

func (c *Choice) String() string {
	elems := lo.Map(c.Elements, func(e ChoiceElement, _ int) string { return e.String() })
	body := fmt.Sprintf("{%s}", joinAll(elems))
	if c.LGuard != nil {
		body = fmt.Sprintf("%s%s%s", c.LGuard.Bound, c.LGuard.Op, body)
	}
	if c.RGuard != nil {
		body = fmt.Sprintf("%s%s%s", body, c.RGuard.Op, c.RGuard.Bound)
	}
	return body
}

// GlobalVars mirrors Aggregate.GlobalVars for choice expressions.
func (c *Choice) GlobalVars(ruleGlobals map[term.VarID]struct{}) map[term.VarID]struct{} {
	out := map[term.VarID]struct{}{}
	for _, e := range c.Elements {
		for id := range e.Vars() {
			if _, ok := ruleGlobals[id]; ok {
				out[id] = struct{}{}
			}
		}
	}
	if c.LGuard != nil {
		for id := range c.LGuard.Bound.Vars() {
			if _, ok := ruleGlobals[id]; ok {
				out[id] = struct{}{}
			}
		}
	}
	if c.RGuard != nil {
		for id := range c.RGuard.Bound.Vars() {
			if _, ok := ruleGlobals[id]; ok {
				out[id] = struct{}{}
			}
		}
	}
	return out
}
