package value

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dekarrin/fsmql/internal/automaton"
)

func Test_Equal_distinctVariantsNeverEqual(t *testing.T) {
	assert := assert.New(t)
	assert.False(Int(0).Equal(Str("0")))
	assert.False(Set(nil).Equal(Tuple(nil)))
	assert.False(Int(1).Equal(Fsm(automaton.New())))
}

func Test_Equal_intAndStr(t *testing.T) {
	assert := assert.New(t)
	assert.True(Int(4).Equal(Int(4)))
	assert.False(Int(4).Equal(Int(5)))
	assert.True(Str("a").Equal(Str("a")))
	assert.False(Str("a").Equal(Str("b")))
}

func Test_Equal_setIsOrderAgnostic(t *testing.T) {
	a := Set([]Value{Int(1), Int(2), Int(3)})
	b := Set([]Value{Int(3), Int(2), Int(1)})
	assert.True(t, a.Equal(b))
}

func Test_Equal_tupleIsOrderSensitive(t *testing.T) {
	a := Tuple([]Value{Int(1), Int(2)})
	b := Tuple([]Value{Int(2), Int(1)})
	assert.False(t, a.Equal(b))
}

func Test_Set_dedupesByEqual(t *testing.T) {
	s := Set([]Value{Int(1), Int(1), Int(2)})
	assert.Len(t, s.AsSet(), 2)
}

func Test_Lambda_neverEqualToAnything(t *testing.T) {
	l1 := Lambda("x", nil, nil)
	l2 := Lambda("x", nil, nil)
	assert.False(t, l1.Equal(l2))
}

func Test_Fsm_equalityIsLanguageEquivalence(t *testing.T) {
	a := automaton.New()
	a.AddStart("s0")
	a.AddTransition("s0", "x", "s1")
	a.AddFinal("s1")

	b := automaton.New()
	b.AddStart("t0")
	b.AddTransition("t0", "x", "t1")
	b.AddFinal("t1")

	assert.True(t, Fsm(a).Equal(Fsm(b)))
}

func Test_Contains(t *testing.T) {
	s := Set([]Value{Str("a"), Str("b")})
	assert := assert.New(t)
	assert.True(Contains(s, Str("a")))
	assert.False(Contains(s, Str("c")))
}

func Test_String_renderForms(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("{1, 2}", Set([]Value{Int(1), Int(2)}).String())
	assert.Equal("(1, 2)", Tuple([]Value{Int(1), Int(2)}).String())
	assert.Equal("42", Int(42).String())
	assert.Equal("hi", Str("hi").String())
}

func Test_AsInt_panicsOnWrongVariant(t *testing.T) {
	assert.Panics(t, func() { Str("x").AsInt() })
}
