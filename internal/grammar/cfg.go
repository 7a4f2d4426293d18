// Package grammar implements the context-free grammar front end: CFG values
// and their transformation to Weakened Chomsky Normal Form, extended CFGs
// (one regex-bodied production per nonterminal), and recursive state
// machines built from them.
package grammar

import (
	"fmt"
	"sort"

	"github.com/dekarrin/fsmql/internal/util"
)

// Production is a single CFG rule Head -> Body. An empty Body is the
// epsilon production Head -> ε.
type Production struct {
	Head string
	Body []string
}

// IsEpsilon reports whether this is an A -> ε production.
func (p Production) IsEpsilon() bool {
	return len(p.Body) == 0
}

// CFG is a context-free grammar G = (N, T, P, S). Nonterminals and
// terminals are both named by plain strings; a symbol's membership in N or
// T determines which it is, so the two sets must be kept disjoint.
type CFG struct {
	Start        string
	NonTerminals util.StringSet
	Terminals    util.StringSet
	Productions  []Production
}

// New returns an empty CFG with the given start symbol, registered as a
// nonterminal.
func New(start string) *CFG {
	g := &CFG{
		Start:        start,
		NonTerminals: util.NewStringSet(),
		Terminals:    util.NewStringSet(),
	}
	g.NonTerminals.Add(start)
	return g
}

// AddProduction adds head -> body to P, registering head as a nonterminal
// and any symbol in body not already known as a nonterminal as a terminal.
// A symbol first registered as a terminal moves to the nonterminals once it
// heads a production.
func (g *CFG) AddProduction(head string, body ...string) {
	g.NonTerminals.Add(head)
	g.Terminals.Remove(head)
	for _, sym := range body {
		if !g.NonTerminals.Has(sym) {
			g.Terminals.Add(sym)
		}
	}
	g.Productions = append(g.Productions, Production{Head: head, Body: append([]string(nil), body...)})
}

// ProductionsOf returns every production headed by nt, in declaration
// order.
func (g *CFG) ProductionsOf(nt string) []Production {
	var out []Production
	for _, p := range g.Productions {
		if p.Head == nt {
			out = append(out, p)
		}
	}
	return out
}

// Copy returns a deep copy of g.
func (g *CFG) Copy() *CFG {
	cp := &CFG{
		Start:        g.Start,
		NonTerminals: g.NonTerminals.Copy().(util.StringSet),
		Terminals:    g.Terminals.Copy().(util.StringSet),
	}
	cp.Productions = append(cp.Productions, g.Productions...)
	return cp
}

// eliminateUnitProductions removes productions of the form A -> B (a single
// nonterminal body) by replacing every A -> B with a copy of every
// non-unit production of B, transitively. This is step 1 of the WCNF
// transformation in §4.4.
func (g *CFG) eliminateUnitProductions() *CFG {
	isUnit := func(p Production) (string, bool) {
		if len(p.Body) == 1 && g.NonTerminals.Has(p.Body[0]) {
			return p.Body[0], true
		}
		return "", false
	}

	// unitPairs[A] = set of B such that A =>* B via unit productions only
	unitPairs := map[string]util.StringSet{}
	for _, nt := range g.NonTerminals.Elements() {
		s := util.NewStringSet()
		s.Add(nt)
		unitPairs[nt] = s
	}

	changed := true
	for changed {
		changed = false
		for _, p := range g.Productions {
			if b, ok := isUnit(p); ok {
				before := unitPairs[p.Head].Len()
				unitPairs[p.Head].AddAll(unitPairs[b])
				if unitPairs[p.Head].Len() != before {
					changed = true
				}
			}
		}
	}

	out := g.Copy()
	out.Productions = nil
	seen := map[string]bool{}
	for _, A := range g.NonTerminals.Elements() {
		for _, B := range unitPairs[A].Elements() {
			for _, p := range g.ProductionsOf(B) {
				if _, ok := isUnit(p); ok {
					continue
				}
				key := fmt.Sprintf("%s->%v", A, p.Body)
				if seen[key] {
					continue
				}
				seen[key] = true
				out.Productions = append(out.Productions, Production{Head: A, Body: p.Body})
			}
		}
	}

	return out
}

// removeUselessSymbols removes non-generating symbols (those that can never
// derive a string of terminals) and unreachable symbols (those never
// reachable from Start), per step 2 of §4.4.
func (g *CFG) removeUselessSymbols() *CFG {
	generating := util.NewStringSet()
	changed := true
	for changed {
		changed = false
		for _, p := range g.Productions {
			if generating.Has(p.Head) {
				continue
			}
			ok := true
			for _, sym := range p.Body {
				if g.NonTerminals.Has(sym) && !generating.Has(sym) {
					ok = false
					break
				}
			}
			if ok {
				generating.Add(p.Head)
				changed = true
			}
		}
	}

	gen := New(g.Start)
	for _, p := range g.Productions {
		if !generating.Has(p.Head) {
			continue
		}
		allGen := true
		for _, sym := range p.Body {
			if g.NonTerminals.Has(sym) && !generating.Has(sym) {
				allGen = false
				break
			}
		}
		if allGen {
			gen.AddProduction(p.Head, p.Body...)
		}
	}

	reachable := util.NewStringSet()
	reachable.Add(g.Start)
	changed = true
	for changed {
		changed = false
		for _, p := range gen.Productions {
			if !reachable.Has(p.Head) {
				continue
			}
			for _, sym := range p.Body {
				if !reachable.Has(sym) {
					reachable.Add(sym)
					changed = true
				}
			}
		}
	}

	out := New(g.Start)
	for _, p := range gen.Productions {
		if !reachable.Has(p.Head) {
			continue
		}
		out.AddProduction(p.Head, p.Body...)
	}
	return out
}

// ToWCNF transforms g into an equivalent grammar whose every production is
// one of A -> BC, A -> a, A -> ε, per §4.4:
//
//  1. eliminate unit productions
//  2. remove non-generating and unreachable symbols
//  3. lift terminals appearing in a body of length >= 2 to a fresh
//     nonterminal T_a -> a
//  4. binarize bodies of length >= 3 into chains of length-2 productions
//     using fresh nonterminals
func (g *CFG) ToWCNF() *CFG {
	step1 := g.eliminateUnitProductions()
	step2 := step1.removeUselessSymbols()

	out := New(step2.Start)
	fresh := newFreshNamer(step2)

	terminalLifts := map[string]string{}
	for _, p := range step2.Productions {
		if p.IsEpsilon() || (len(p.Body) == 1 && step2.Terminals.Has(p.Body[0])) {
			out.AddProduction(p.Head, p.Body...)
			continue
		}

		body := make([]string, len(p.Body))
		copy(body, p.Body)
		for i, sym := range body {
			if step2.Terminals.Has(sym) {
				nt, ok := terminalLifts[sym]
				if !ok {
					nt = fresh("T")
					terminalLifts[sym] = nt
					out.AddProduction(nt, sym)
				}
				body[i] = nt
			}
		}

		for len(body) > 2 {
			nt := fresh("X")
			out.AddProduction(nt, body[len(body)-2], body[len(body)-1])
			body = append(body[:len(body)-2], nt)
		}
		out.AddProduction(p.Head, body...)
	}

	return out
}

func newFreshNamer(g *CFG) func(prefix string) string {
	used := util.NewStringSet()
	used.AddAll(g.NonTerminals)
	n := 0
	return func(prefix string) string {
		for {
			name := fmt.Sprintf("%s#%d", prefix, n)
			n++
			if !used.Has(name) {
				used.Add(name)
				return name
			}
		}
	}
}

// String renders the grammar's productions in declaration order, one per
// line, for diagnostics.
func (g *CFG) String() string {
	heads := g.NonTerminals.Elements()
	sort.Strings(heads)
	s := ""
	for _, p := range g.Productions {
		body := "ε"
		if len(p.Body) > 0 {
			body = ""
			for i, sym := range p.Body {
				if i > 0 {
					body += " "
				}
				body += sym
			}
		}
		s += fmt.Sprintf("%s -> %s\n", p.Head, body)
	}
	return s
}
