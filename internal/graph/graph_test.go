package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_ParseDOT_edgesAndLabels(t *testing.T) {
	source := `
digraph G {
	a -> b [label="x"];
	b -> c [label="y"];
	c;
}
`
	g, err := ParseDOT(source)
	assert := assert.New(t)
	assert.NoError(err)
	assert.ElementsMatch([]string{"a", "b", "c"}, g.Vertices)
	assert.Len(g.Edges, 2)
	assert.ElementsMatch([]string{"x", "y"}, g.Labels())
}

func Test_ParseDOT_edgeWithNoLabel(t *testing.T) {
	g, err := ParseDOT("a -> b;")
	assert := assert.New(t)
	assert.NoError(err)
	assert.Len(g.Edges, 1)
	assert.Equal("", g.Edges[0].Label)
}

func Test_ParseDOT_quotedIdentifiers(t *testing.T) {
	g, err := ParseDOT(`"node one" -> "node two" [label="edge"];`)
	assert := assert.New(t)
	assert.NoError(err)
	assert.ElementsMatch([]string{"node one", "node two"}, g.Vertices)
}

func Test_ToNFA_marksEveryVertexStartAndFinal(t *testing.T) {
	g := &Multigraph{Vertices: []string{"a", "b"}, Edges: []Edge{{From: "a", Label: "x", To: "b"}}}
	a := g.ToNFA()

	assert := assert.New(t)
	assert.True(a.IsStart("a"))
	assert.True(a.IsStart("b"))
	assert.True(a.IsFinal("a"))
	assert.True(a.IsFinal("b"))
}

func Test_FromNFA_roundTripsEdges(t *testing.T) {
	g := &Multigraph{Vertices: []string{"a", "b"}, Edges: []Edge{{From: "a", Label: "x", To: "b"}}}
	back := FromNFA(g.ToNFA())

	assert := assert.New(t)
	assert.ElementsMatch([]string{"a", "b"}, back.Vertices)
	assert.Len(back.Edges, 1)
	assert.Equal("x", back.Edges[0].Label)
}

func Test_Registry_lookupUnknownNameListsKnown(t *testing.T) {
	r := NewRegistry()
	r.Register("foo", &Multigraph{})

	_, err := r.Lookup("bar")
	assert := assert.New(t)
	assert.Error(err)
	assert.Contains(err.Error(), "foo")
}

func Test_Registry_registerAndLookup(t *testing.T) {
	r := NewRegistry()
	g := &Multigraph{Vertices: []string{"a"}}
	r.Register("foo", g)

	got, err := r.Lookup("foo")
	assert := assert.New(t)
	assert.NoError(err)
	assert.Same(g, got)
}

