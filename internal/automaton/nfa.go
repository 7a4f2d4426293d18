// Package automaton implements the epsilon-NFA value model, its Boolean
// matrix decomposition, and the regular-path-query (RPQ) operators that are
// built on top of them: intersection, union, concatenation, Kleene star, and
// transitive closure.
//
// States are identified by plain strings so that an NFA can be built
// directly from the opaque vertex identifiers of a labeled multigraph
// (internal/graph) without a wrapper type getting in the way.
package automaton

import (
	"sort"

	"github.com/dekarrin/fsmql/internal/util"
)

// Epsilon is the reserved symbol naming an epsilon transition. It is never a
// member of Alphabet() and is never represented in a Boolean decomposition.
const Epsilon = ""

// Transition is one edge of an NFA's transition relation.
type Transition struct {
	From   string
	Symbol string
	To     string
}

type stateData struct {
	trans map[string]util.StringSet // symbol -> set of destination states
}

func newStateData() stateData {
	return stateData{trans: map[string]util.StringSet{}}
}

// NFA is an epsilon-NFA: a finite set of states, an alphabet drawn from the
// symbols actually used on some transition, a transition relation, and
// start/accepting state sets.
//
// The zero value is not usable; construct one with New.
type NFA struct {
	states util.StringSet
	trans  map[string]stateData
	start  util.StringSet
	final  util.StringSet
}

// New returns an empty NFA with no states, transitions, start, or final
// states.
func New() *NFA {
	return &NFA{
		states: util.NewStringSet(),
		trans:  map[string]stateData{},
		start:  util.NewStringSet(),
		final:  util.NewStringSet(),
	}
}

// AddState adds s to Q if it isn't already present. Adding a state that
// already exists has no effect.
func (a *NFA) AddState(s string) {
	if a.states.Has(s) {
		return
	}
	a.states.Add(s)
	a.trans[s] = newStateData()
}

// AddTransition adds (from, symbol, to) to the transition relation. Use
// Epsilon as the symbol for an epsilon transition. States mentioned that are
// not yet in Q are silently added, matching the add_* failure semantics of
// §4.1.
func (a *NFA) AddTransition(from, symbol, to string) {
	a.AddState(from)
	a.AddState(to)

	sd := a.trans[from]
	dest, ok := sd.trans[symbol]
	if !ok {
		dest = util.NewStringSet()
		sd.trans[symbol] = dest
	}
	dest.Add(to)
}

// AddStart adds s to S. If s is not already a state, it is inserted into Q.
func (a *NFA) AddStart(s string) {
	a.AddState(s)
	a.start.Add(s)
}

// AddFinal adds s to F. If s is not already a state, it is inserted into Q.
func (a *NFA) AddFinal(s string) {
	a.AddState(s)
	a.final.Add(s)
}

// RemoveStart removes s from S. No effect if s was not a start state.
func (a *NFA) RemoveStart(s string) {
	a.start.Remove(s)
}

// RemoveFinal removes s from F. No effect if s was not a final state.
func (a *NFA) RemoveFinal(s string) {
	a.final.Remove(s)
}

// States returns Q in no particular order.
func (a *NFA) States() []string {
	return a.states.Elements()
}

// Start returns S.
func (a *NFA) Start() []string {
	return a.start.Elements()
}

// Final returns F.
func (a *NFA) Final() []string {
	return a.final.Elements()
}

// IsStart reports whether s is in S.
func (a *NFA) IsStart(s string) bool {
	return a.start.Has(s)
}

// IsFinal reports whether s is in F.
func (a *NFA) IsFinal(s string) bool {
	return a.final.Has(s)
}

// HasState reports whether s is in Q.
func (a *NFA) HasState(s string) bool {
	return a.states.Has(s)
}

// Alphabet returns Σ: every symbol actually used on some transition, never
// including Epsilon.
func (a *NFA) Alphabet() []string {
	syms := util.NewStringSet()
	for s := range a.trans {
		for sym := range a.trans[s].trans {
			if sym != Epsilon {
				syms.Add(sym)
			}
		}
	}
	return syms.Elements()
}

// Transitions returns every (q1, σ, q2) triple in Δ, in no particular order.
func (a *NFA) Transitions() []Transition {
	var out []Transition
	for s := range a.trans {
		for sym, dests := range a.trans[s].trans {
			for _, d := range dests.Elements() {
				out = append(out, Transition{From: s, Symbol: sym, To: d})
			}
		}
	}
	return out
}

// MoveOn returns the set of states reachable from s on a single transition
// labeled symbol.
func (a *NFA) MoveOn(s, symbol string) util.StringSet {
	sd, ok := a.trans[s]
	if !ok {
		return util.NewStringSet()
	}
	dests, ok := sd.trans[symbol]
	if !ok {
		return util.NewStringSet()
	}
	return dests.Copy().(util.StringSet)
}

// EpsilonClosure returns the set of states reachable from s using zero or
// more epsilon transitions, including s itself.
func (a *NFA) EpsilonClosure(s string) util.StringSet {
	closure := util.NewStringSet()
	work := []string{s}
	closure.Add(s)

	for len(work) > 0 {
		cur := work[len(work)-1]
		work = work[:len(work)-1]

		for _, next := range a.MoveOn(cur, Epsilon).Elements() {
			if !closure.Has(next) {
				closure.Add(next)
				work = append(work, next)
			}
		}
	}

	return closure
}

// Copy returns a deep copy of a. The copy shares no mutable state with a.
func (a *NFA) Copy() *NFA {
	cp := New()
	for _, s := range a.States() {
		cp.AddState(s)
	}
	for _, s := range a.start.Elements() {
		cp.AddStart(s)
	}
	for _, s := range a.final.Elements() {
		cp.AddFinal(s)
	}
	for _, t := range a.Transitions() {
		cp.AddTransition(t.From, t.Symbol, t.To)
	}
	return cp
}

// RemoveEpsilon returns an equivalent NFA with no epsilon transitions, built
// via the standard epsilon-closure construction: q1 -a-> q2 in the result
// whenever some state in epsilon-closure(q1) has an a-transition to q2, and
// any state whose closure includes an original final state becomes final.
func (a *NFA) RemoveEpsilon() *NFA {
	out := New()
	for _, s := range a.States() {
		out.AddState(s)
	}
	for _, s := range a.start.Elements() {
		out.AddStart(s)
	}

	for _, s := range a.States() {
		closure := a.EpsilonClosure(s)

		for _, mid := range closure.Elements() {
			if a.final.Has(mid) {
				out.AddFinal(s)
			}
			for _, sym := range a.symbolsOf(mid) {
				if sym == Epsilon {
					continue
				}
				for _, dest := range a.MoveOn(mid, sym).Elements() {
					out.AddTransition(s, sym, dest)
				}
			}
		}
	}

	return out
}

func (a *NFA) symbolsOf(s string) []string {
	sd, ok := a.trans[s]
	if !ok {
		return nil
	}
	syms := make([]string, 0, len(sd.trans))
	for sym := range sd.trans {
		syms = append(syms, sym)
	}
	sort.Strings(syms)
	return syms
}

// IsEquivalent reports whether a and other accept the same language. Both
// are determinized via subset construction and minimized before comparison;
// two automata are equivalent iff their minimal DFAs are isomorphic, which
// this checks by walking both simultaneously from their start states.
func (a *NFA) IsEquivalent(other *NFA) bool {
	d1 := a.ToDFA().Minimize()
	d2 := other.ToDFA().Minimize()
	return d1.isomorphicTo(d2)
}
