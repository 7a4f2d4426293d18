package automaton

import (
	"sort"
	"strconv"
	"strings"

	"github.com/dekarrin/fsmql/internal/util"
)

// dfa is an internal deterministic automaton used only to decide language
// equivalence (NFA.IsEquivalent) and to back RSM.Minimize in the grammar
// package. It is not part of the public value model: the only automaton
// value visible to the DSL is NFA.
type dfa struct {
	start       string
	accepting   util.StringSet
	transitions map[string]map[string]string // state -> symbol -> state
	alphabet    []string
}

// ToDFA converts a into a deterministic automaton accepting the same
// language, via the standard subset construction (purple dragon book,
// algorithm 3.20): each DFA state is named for the sorted, comma-joined
// epsilon-closure of the NFA states it stands in for.
func (a *NFA) ToDFA() *dfa {
	alphabet := a.Alphabet()

	startSet := util.NewStringSet()
	for _, s := range a.start.Elements() {
		startSet.AddAll(a.EpsilonClosure(s))
	}
	startName := setName(startSet)

	d := &dfa{
		start:       startName,
		accepting:   util.NewStringSet(),
		transitions: map[string]map[string]string{},
		alphabet:    alphabet,
	}

	sets := map[string]util.StringSet{startName: startSet}
	marked := util.NewStringSet()

	for {
		var unmarked []string
		for name := range sets {
			if !marked.Has(name) {
				unmarked = append(unmarked, name)
			}
		}
		if len(unmarked) == 0 {
			break
		}
		sort.Strings(unmarked)

		for _, name := range unmarked {
			marked.Add(name)
			T := sets[name]

			if T.Any(func(s string) bool { return a.final.Has(s) }) {
				d.accepting.Add(name)
			}

			d.transitions[name] = map[string]string{}
			for _, sym := range alphabet {
				U := util.NewStringSet()
				for _, s := range T.Elements() {
					for _, m := range a.MoveOn(s, sym).Elements() {
						U.AddAll(a.EpsilonClosure(m))
					}
				}
				if U.Empty() {
					continue
				}
				uName := setName(U)
				if _, ok := sets[uName]; !ok {
					sets[uName] = U
				}
				d.transitions[name][sym] = uName
			}
		}
	}

	return d
}

func setName(s util.StringSet) string {
	return s.StringOrdered()
}

// Minimize applies Hopcroft-style partition refinement: states start
// partitioned into {accepting, non-accepting} and are split apart whenever
// two states in the same block transition to different blocks on some
// symbol. Iterating until no block splits yields the coarsest partition
// consistent with the transition function, which is the minimal DFA.
func (d *dfa) Minimize() *dfa {
	allStates := util.NewStringSet()
	allStates.Add(d.start)
	for s := range d.transitions {
		allStates.Add(s)
		for _, to := range d.transitions[s] {
			allStates.Add(to)
		}
	}

	accepting := util.NewStringSet()
	nonAccepting := util.NewStringSet()
	for _, s := range allStates.Elements() {
		if d.accepting.Has(s) {
			accepting.Add(s)
		} else {
			nonAccepting.Add(s)
		}
	}

	var partition []util.StringSet
	if !accepting.Empty() {
		partition = append(partition, accepting)
	}
	if !nonAccepting.Empty() {
		partition = append(partition, nonAccepting)
	}

	blockOf := func(p []util.StringSet, s string) int {
		for i, b := range p {
			if b.Has(s) {
				return i
			}
		}
		return -1
	}

	for {
		changed := false
		var next []util.StringSet

		for _, block := range partition {
			groups := map[string]util.StringSet{}
			for _, s := range block.Elements() {
				var sig strings.Builder
				for _, sym := range d.alphabet {
					to, ok := d.transitions[s][sym]
					sig.WriteString(sym)
					sig.WriteRune(':')
					if ok {
						sig.WriteString(strconv.Itoa(blockOf(partition, to)))
					} else {
						sig.WriteString("-")
					}
					sig.WriteRune(';')
				}
				key := sig.String()
				g, ok := groups[key]
				if !ok {
					g = util.NewStringSet()
					groups[key] = g
				}
				g.Add(s)
			}
			if len(groups) > 1 {
				changed = true
			}
			for _, g := range groups {
				next = append(next, g)
			}
		}

		partition = next
		if !changed {
			break
		}
	}

	blockName := func(b util.StringSet) string {
		return b.StringOrdered()
	}

	min := &dfa{
		accepting:   util.NewStringSet(),
		transitions: map[string]map[string]string{},
		alphabet:    d.alphabet,
	}

	for _, block := range partition {
		name := blockName(block)
		if block.Has(d.start) {
			min.start = name
		}
		if block.Any(func(s string) bool { return d.accepting.Has(s) }) {
			min.accepting.Add(name)
		}
		min.transitions[name] = map[string]string{}
		any := block.Elements()[0]
		for _, sym := range d.alphabet {
			to, ok := d.transitions[any][sym]
			if !ok {
				continue
			}
			toBlock := blockOf(partition, to)
			min.transitions[name][sym] = blockName(partition[toBlock])
		}
	}

	return min
}

// isomorphicTo compares two minimized DFAs by walking both simultaneously
// from their respective start states, matching structure rather than state
// names: two minimal DFAs accept the same language iff this walk never
// finds a symbol where one side has a transition and the other doesn't, or
// where the accepting-ness of the reached pair disagrees.
func (d *dfa) isomorphicTo(o *dfa) bool {
	alphabet := util.NewStringSet()
	for _, s := range d.alphabet {
		alphabet.Add(s)
	}
	for _, s := range o.alphabet {
		alphabet.Add(s)
	}
	syms := alphabet.Elements()
	sort.Strings(syms)

	visited := map[[2]string]bool{}
	var walk func(s1, s2 string) bool
	walk = func(s1, s2 string) bool {
		key := [2]string{s1, s2}
		if visited[key] {
			return true
		}
		visited[key] = true

		if d.accepting.Has(s1) != o.accepting.Has(s2) {
			return false
		}

		for _, sym := range syms {
			to1, ok1 := d.transitions[s1][sym]
			to2, ok2 := o.transitions[s2][sym]
			if ok1 != ok2 {
				return false
			}
			if ok1 && !walk(to1, to2) {
				return false
			}
		}
		return true
	}

	return walk(d.start, o.start)
}

// toNFA converts d back into the public NFA representation: a minimized
// DFA is deterministic and epsilon-free, but is perfectly representable as
// an NFA with exactly one destination per (state, symbol) pair.
func (d *dfa) toNFA() *NFA {
	out := New()
	out.AddStart(d.start)
	for s := range d.transitions {
		out.AddState(s)
		for sym, to := range d.transitions[s] {
			out.AddTransition(s, sym, to)
		}
	}
	for _, s := range d.accepting.Elements() {
		out.AddFinal(s)
	}
	return out
}

// Minimize returns an equivalent deterministic, minimized NFA: the subset
// construction (ToDFA) followed by partition-refinement minimization,
// converted back to the public NFA type. This is what RSM.Minimize applies
// to each of an RSM's per-nonterminal components.
func Minimize(a *NFA) *NFA {
	return a.ToDFA().Minimize().toNFA()
}
