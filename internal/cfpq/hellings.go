// Package cfpq implements context-free path querying: all-pairs
// reachability modulo a context-free grammar in Weakened Chomsky Normal
// Form, via two independent algorithms that must agree (§8's CFPQ
// consistency property) — a worklist-based algorithm (Hellings) and a
// Boolean-matrix algorithm (MatrixCFPQ) — dispatched through a Method enum
// rather than a package-level registry, per §9's redesign note.
package cfpq

import (
	"github.com/dekarrin/fsmql/internal/grammar"
)

// Edge is one labeled edge of the graph a CFPQ runs over.
type Edge struct {
	From, Label, To string
}

// Triple is one element of the all-pairs result: a witness that Head
// derives a path from From to To.
type Triple struct {
	From, Head, To string
}

// Hellings computes all-pairs CFPQ via the worklist algorithm of §4.5. cfg
// must already be in Weakened Chomsky Normal Form (A -> BC, A -> a, A ->
// ε). vertices is the full vertex set of the graph, needed to seed epsilon
// productions even for vertices with no incident edges.
func Hellings(vertices []string, edges []Edge, cfg *grammar.CFG) []Triple {
	type key struct{ from, nt, to string }

	result := map[key]bool{}
	var resultList []Triple
	var worklist []Triple

	add := func(t Triple) {
		k := key{t.From, t.Head, t.To}
		if result[k] {
			return
		}
		result[k] = true
		resultList = append(resultList, t)
		worklist = append(worklist, t)
	}

	for _, p := range cfg.Productions {
		if p.IsEpsilon() {
			for _, v := range vertices {
				add(Triple{From: v, Head: p.Head, To: v})
			}
		}
	}
	for _, e := range edges {
		for _, p := range cfg.Productions {
			if len(p.Body) == 1 && p.Body[0] == e.Label && cfg.Terminals.Has(e.Label) {
				add(Triple{From: e.From, Head: p.Head, To: e.To})
			}
		}
	}

	// byFirstSymbol[X] lists productions Nk -> X Y; bySecondSymbol[Y] lists
	// productions Nk -> X Y. Indexing both ways lets the worklist loop find
	// matches for a fixed symbol in either position without scanning P.
	byFirstSymbol := map[string][]grammar.Production{}
	bySecondSymbol := map[string][]grammar.Production{}
	for _, p := range cfg.Productions {
		if len(p.Body) == 2 {
			byFirstSymbol[p.Body[0]] = append(byFirstSymbol[p.Body[0]], p)
			bySecondSymbol[p.Body[1]] = append(bySecondSymbol[p.Body[1]], p)
		}
	}

	for len(worklist) > 0 {
		cur := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		v, Ni, u := cur.From, cur.Head, cur.To

		// existing (x, Nj, v) and Nk -> Nj Ni: add (x, Nk, u)
		for _, t := range resultList {
			if t.To != v {
				continue
			}
			for _, p := range bySecondSymbol[Ni] {
				if p.Body[0] == t.Head {
					add(Triple{From: t.From, Head: p.Head, To: u})
				}
			}
		}

		// existing (u, Nj, x) and Nk -> Ni Nj: add (v, Nk, x)
		for _, t := range resultList {
			if t.From != u {
				continue
			}
			for _, p := range byFirstSymbol[Ni] {
				if p.Body[1] == t.Head {
					add(Triple{From: v, Head: p.Head, To: t.To})
				}
			}
		}
	}

	return resultList
}
