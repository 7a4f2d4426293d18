package cfpq

import (
	"sort"

	"github.com/dekarrin/fsmql/internal/automaton"
	"github.com/dekarrin/fsmql/internal/grammar"
)

// MatrixCFPQ computes all-pairs CFPQ via the Boolean-matrix algorithm of
// §4.6: one |V|x|V| matrix T_A per nonterminal A, seeded from the grammar's
// terminal and epsilon productions, then closed under every binary
// production A -> BC by T_A <- T_A OR (T_B * T_C) until a full pass leaves
// every matrix unchanged. cfg must already be in Weakened Chomsky Normal
// Form. The result must agree with Hellings on every input, per §8's CFPQ
// consistency property.
func MatrixCFPQ(vertices []string, edges []Edge, cfg *grammar.CFG) []Triple {
	vs := append([]string(nil), vertices...)
	sort.Strings(vs)
	idx := make(map[string]int, len(vs))
	for i, v := range vs {
		idx[v] = i
	}
	n := len(vs)

	matrices := map[string]*automaton.BoolMatrix{}
	matrixFor := func(nt string) *automaton.BoolMatrix {
		m, ok := matrices[nt]
		if !ok {
			m = automaton.NewBoolMatrix(n, n)
			matrices[nt] = m
		}
		return m
	}

	for _, p := range cfg.Productions {
		if p.IsEpsilon() {
			m := matrixFor(p.Head)
			for i := range vs {
				m.Set(i, i)
			}
		}
	}
	for _, e := range edges {
		fi, fok := idx[e.From]
		ti, tok := idx[e.To]
		if !fok || !tok {
			continue
		}
		for _, p := range cfg.Productions {
			if len(p.Body) == 1 && p.Body[0] == e.Label && cfg.Terminals.Has(e.Label) {
				matrixFor(p.Head).Set(fi, ti)
			}
		}
	}

	var binary []grammar.Production
	for _, p := range cfg.Productions {
		if len(p.Body) == 2 {
			binary = append(binary, p)
		}
	}

	for {
		changed := false
		for _, p := range binary {
			tb := matrixFor(p.Body[0])
			tc := matrixFor(p.Body[1])
			ta := matrixFor(p.Head)

			product := tb.Mul(tc)
			merged := ta.Or(product)
			if merged.NNZ() != ta.NNZ() {
				changed = true
			}
			matrices[p.Head] = merged
		}
		if !changed {
			break
		}
	}

	var out []Triple
	for nt, m := range matrices {
		for i, v := range vs {
			for _, j := range m.Row(i) {
				out = append(out, Triple{From: v, Head: nt, To: vs[j]})
			}
		}
	}
	return out
}
