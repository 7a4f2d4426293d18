package cfpq

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dekarrin/fsmql/internal/grammar"
)

// sameSetLangGraph builds the same-generation-style scenario used
// throughout the language's examples: a grammar S -> a S b | a b over a
// small labeled graph, so both CFPQ algorithms have nontrivial binary
// productions to chase.
func sameSetLangGraph() ([]string, []Edge, *grammar.CFG) {
	vertices := []string{"v0", "v1", "v2", "v3"}
	edges := []Edge{
		{From: "v0", Label: "a", To: "v1"},
		{From: "v1", Label: "a", To: "v2"},
		{From: "v2", Label: "b", To: "v3"},
		{From: "v1", Label: "b", To: "v3"},
	}

	g := grammar.New("S")
	g.AddProduction("S", "a", "S", "b")
	g.AddProduction("S", "a", "b")

	return vertices, edges, g.ToWCNF()
}

func sortTriples(ts []Triple) []Triple {
	out := append([]Triple(nil), ts...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].From != out[j].From {
			return out[i].From < out[j].From
		}
		if out[i].Head != out[j].Head {
			return out[i].Head < out[j].Head
		}
		return out[i].To < out[j].To
	})
	return out
}

func Test_Hellings_and_MatrixCFPQ_agree(t *testing.T) {
	vertices, edges, wcnf := sameSetLangGraph()

	hellingsResult := sortTriples(Hellings(vertices, edges, wcnf))
	matrixResult := sortTriples(MatrixCFPQ(vertices, edges, wcnf))

	assert.Equal(t, hellingsResult, matrixResult)
}

func Test_Hellings_findsDirectDerivation(t *testing.T) {
	vertices, edges, wcnf := sameSetLangGraph()
	result := Hellings(vertices, edges, wcnf)

	found := false
	for _, tr := range result {
		if tr.From == "v1" && tr.To == "v3" && tr.Head == wcnf.Start {
			found = true
		}
	}
	assert.True(t, found, "expected v1 -S-> v3 via the direct a b derivation")
}

func Test_Solve_filtersByStartAndFinal(t *testing.T) {
	vertices, edges, wcnf := sameSetLangGraph()

	result, err := Solve(MethodHellings, vertices, edges, wcnf, wcnf.Start, []string{"v1"}, []string{"v3"})
	assert := assert.New(t)
	assert.NoError(err)
	for _, tr := range result {
		assert.Equal("v1", tr.From)
		assert.Equal("v3", tr.To)
	}
	assert.NotEmpty(result)
}

func Test_Method_String(t *testing.T) {
	assert.Equal(t, "hellings", MethodHellings.String())
	assert.Equal(t, "matrix", MethodMatrix.String())
}
