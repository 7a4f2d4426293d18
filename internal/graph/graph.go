// Package graph implements the labeled directed multigraph data model of
// §3 and the boundary utilities that materialize one: a DOT file reader and
// a TOML-backed named-dataset registry.
package graph

import (
	"fmt"

	"github.com/dekarrin/fsmql/internal/automaton"
)

// Edge is one labeled edge of a multigraph. Parallel edges between the same
// pair of vertices with distinct labels are allowed, per §3; Multigraph
// stores Edges as a plain slice rather than deduplicating, so parallel
// edges with the same label are also preserved.
type Edge struct {
	From, Label, To string
}

// Multigraph is a labeled directed multigraph G = (V, E, L). Vertices are
// opaque string identifiers.
type Multigraph struct {
	Vertices []string
	Edges    []Edge
}

// Labels returns the distinct edge labels appearing in g, per labelsOf.
func (g *Multigraph) Labels() []string {
	seen := map[string]bool{}
	var out []string
	for _, e := range g.Edges {
		if !seen[e.Label] {
			seen[e.Label] = true
			out = append(out, e.Label)
		}
	}
	return out
}

// ToNFA wraps g as an epsilon-NFA with every vertex marked both start and
// final, per §4.9's load(path)/load(name) wrapping rule.
func (g *Multigraph) ToNFA() *automaton.NFA {
	a := automaton.New()
	for _, v := range g.Vertices {
		a.AddState(v)
		a.AddStart(v)
		a.AddFinal(v)
	}
	for _, e := range g.Edges {
		a.AddTransition(e.From, e.Label, e.To)
	}
	return a
}

// FromNFA projects an automaton back into its underlying multigraph shape,
// used by verticesOf/edgesOf/labelsOf which operate on the graph structure
// of an Fsm value rather than its start/final marking.
func FromNFA(a *automaton.NFA) *Multigraph {
	g := &Multigraph{Vertices: a.States()}
	for _, t := range a.Transitions() {
		if t.Symbol == automaton.Epsilon {
			continue
		}
		g.Edges = append(g.Edges, Edge{From: t.From, Label: t.Symbol, To: t.To})
	}
	return g
}

// EdgeTriples renders g's edges as (from, label, to) value tuples suitable
// for edgesOf's result, in the shape §4.8 describes.
func (g *Multigraph) EdgeTriples() [][3]string {
	out := make([][3]string, len(g.Edges))
	for i, e := range g.Edges {
		out[i] = [3]string{e.From, e.Label, e.To}
	}
	return out
}

func (e Edge) String() string {
	return fmt.Sprintf("%s -%s-> %s", e.From, e.Label, e.To)
}
