package graph

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/dekarrin/fsmql/internal/fsmerrors"
	"github.com/dekarrin/fsmql/internal/util"
)

// registryFile is the on-disk TOML shape of a dataset registry: one table
// per registered name, each listing its edges.
type registryFile struct {
	Datasets map[string]registryDataset `toml:"dataset"`
}

type registryDataset struct {
	Edges []registryEdge `toml:"edges"`
}

type registryEdge struct {
	From  string `toml:"from"`
	Label string `toml:"label"`
	To    string `toml:"to"`
}

// Registry is a named-dataset catalog backing `loadFrom name "..."`, per
// §4.9. Datasets are loaded once from a TOML file and held in memory;
// vertex identity is the literal node name given in the TOML/DOT source,
// since DSL operations like setStart/verticesOf address vertices by that
// same name.
type Registry struct {
	datasets map[string]*Multigraph
}

// LoadRegistryFile parses path as a TOML dataset registry.
func LoadRegistryFile(path string) (*Registry, error) {
	var raw registryFile
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return nil, fsmerrors.LoadFailure(path, err)
	}

	r := &Registry{datasets: map[string]*Multigraph{}}
	for name, ds := range raw.Datasets {
		g := &Multigraph{}
		seen := map[string]bool{}
		for _, e := range ds.Edges {
			for _, v := range []string{e.From, e.To} {
				if !seen[v] {
					seen[v] = true
					g.Vertices = append(g.Vertices, v)
				}
			}
			g.Edges = append(g.Edges, Edge{From: e.From, Label: e.Label, To: e.To})
		}
		r.datasets[name] = g
	}
	return r, nil
}

// NewRegistry returns an empty registry, for programmatic registration
// (tests, or an embedding host that builds datasets without a TOML file).
func NewRegistry() *Registry {
	return &Registry{datasets: map[string]*Multigraph{}}
}

// Register adds or replaces the dataset named name.
func (r *Registry) Register(name string, g *Multigraph) {
	r.datasets[name] = g
}

// Lookup returns the dataset registered under name, per §4.9's
// `loadFrom name "..."`.
func (r *Registry) Lookup(name string) (*Multigraph, error) {
	g, ok := r.datasets[name]
	if !ok {
		var known []string
		for n := range r.datasets {
			known = append(known, n)
		}
		if len(known) == 0 {
			return nil, fsmerrors.LoadFailure(name, fmt.Errorf("no dataset registered under name %q (registry is empty)", name))
		}
		return nil, fsmerrors.LoadFailure(name, fmt.Errorf("no dataset registered under name %q (known: %s)", name, util.MakeTextList(known)))
	}
	return g, nil
}
