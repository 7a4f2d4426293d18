package regexfsm

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dekarrin/fsmql/internal/automaton"
)

func singleSymbol(sym string) *automaton.NFA {
	a := automaton.New()
	a.AddStart("s0")
	a.AddTransition("s0", sym, "s1")
	a.AddFinal("s1")
	return a
}

func Test_Compile_singleSymbol(t *testing.T) {
	a, err := Compile("a")
	assert := assert.New(t)
	assert.NoError(err)
	assert.True(a.IsEquivalent(singleSymbol("a")))
}

func Test_Compile_concatenation(t *testing.T) {
	a, err := Compile("a b")
	assert := assert.New(t)
	assert.NoError(err)

	expect := automaton.New()
	expect.AddStart("s0")
	expect.AddTransition("s0", "a", "s1")
	expect.AddTransition("s1", "b", "s2")
	expect.AddFinal("s2")

	assert.True(a.IsEquivalent(expect))
}

func Test_Compile_alternation(t *testing.T) {
	a, err := Compile("a | b")
	assert := assert.New(t)
	assert.NoError(err)

	expect := automaton.New()
	expect.AddStart("s")
	expect.AddTransition("s", "a", "f1")
	expect.AddTransition("s", "b", "f2")
	expect.AddFinal("f1")
	expect.AddFinal("f2")

	assert.True(a.IsEquivalent(expect))
}

func Test_Compile_star(t *testing.T) {
	a, err := Compile("a*")
	assert := assert.New(t)
	assert.NoError(err)

	// a* should accept the empty string: the start state's epsilon closure
	// must include a final state.
	closure := a.EpsilonClosure(a.Start()[0])
	assert.True(closure.Any(func(s string) bool { return a.IsFinal(s) }))
}

func Test_Compile_plusRequiresAtLeastOne(t *testing.T) {
	a, err := Compile("a+")
	assert := assert.New(t)
	assert.NoError(err)

	closure := a.EpsilonClosure(a.Start()[0])
	assert.False(closure.Any(func(s string) bool { return a.IsFinal(s) }), "a+ must not accept the empty string")
}

func Test_Compile_groupingAndPrecedence(t *testing.T) {
	a, err := Compile("(a | b) c")
	assert := assert.New(t)
	assert.NoError(err)

	expect := automaton.New()
	expect.AddStart("s")
	expect.AddTransition("s", "a", "m1")
	expect.AddTransition("s", "b", "m2")
	expect.AddTransition("m1", "c", "f")
	expect.AddTransition("m2", "c", "f")
	expect.AddFinal("f")

	assert.True(a.IsEquivalent(expect))
}

func Test_Compile_emptyExpressionErrors(t *testing.T) {
	_, err := Compile("")
	assert.Error(t, err)
}

func Test_Compile_unbalancedParenErrors(t *testing.T) {
	_, err := Compile("(a")
	assert.Error(t, err)
}
