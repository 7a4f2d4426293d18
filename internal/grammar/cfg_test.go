package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// balancedParens returns S -> ( S ) S | ε, the textbook example used to
// check that WCNF conversion preserves acceptance.
func balancedParens() *CFG {
	g := New("S")
	g.AddProduction("S", "(", "S", ")", "S")
	g.AddProduction("S")
	return g
}

func Test_ToWCNF_everyProductionIsBinaryTerminalOrEpsilon(t *testing.T) {
	wcnf := balancedParens().ToWCNF()

	assert := assert.New(t)
	for _, p := range wcnf.Productions {
		switch len(p.Body) {
		case 0:
			// A -> epsilon, always fine.
		case 1:
			assert.True(wcnf.Terminals.Has(p.Body[0]), "unary body %v must be a terminal", p.Body)
		case 2:
			assert.True(wcnf.NonTerminals.Has(p.Body[0]), "binary body %v must start with a nonterminal", p.Body)
			assert.True(wcnf.NonTerminals.Has(p.Body[1]), "binary body %v must end with a nonterminal", p.Body)
		default:
			t.Fatalf("production body %v is longer than 2 symbols", p.Body)
		}
	}
}

func Test_ToWCNF_eliminatesUnitProductions(t *testing.T) {
	g := New("S")
	g.AddProduction("S", "A")
	g.AddProduction("A", "a")

	wcnf := g.ToWCNF()

	assert := assert.New(t)
	for _, p := range wcnf.Productions {
		if len(p.Body) == 1 {
			assert.True(wcnf.Terminals.Has(p.Body[0]))
		}
	}
}

func Test_RemoveUselessSymbols_dropsUnreachableProductions(t *testing.T) {
	g := New("S")
	g.AddProduction("S", "a")
	g.AddProduction("Unreachable", "b")

	cleaned := g.removeUselessSymbols()

	for _, p := range cleaned.Productions {
		assert.NotEqual(t, "Unreachable", p.Head)
	}
}

func Test_ProductionsOf_returnsOnlyMatchingHead(t *testing.T) {
	g := New("S")
	g.AddProduction("S", "A", "B")
	g.AddProduction("A", "a")
	g.AddProduction("B", "b")

	assert.Len(t, g.ProductionsOf("S"), 1)
	assert.Len(t, g.ProductionsOf("A"), 1)
}
