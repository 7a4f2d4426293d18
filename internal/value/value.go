// Package value implements the DSL's tagged-union value model: Int, Str,
// Set, Tuple, Lambda, and Fsm variants, with structural equality per §3's
// data model.
package value

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dekarrin/fsmql/internal/automaton"
)

// Type names the variant a Value holds.
type Type int

const (
	TypeInt Type = iota
	TypeStr
	TypeSet
	TypeTuple
	TypeLambda
	TypeFsm
)

func (t Type) String() string {
	switch t {
	case TypeInt:
		return "int"
	case TypeStr:
		return "str"
	case TypeSet:
		return "set"
	case TypeTuple:
		return "tuple"
	case TypeLambda:
		return "lambda"
	case TypeFsm:
		return "fsm"
	default:
		return "unknown"
	}
}

// Env is the minimal environment contract a Lambda closure needs to capture
// and later extend; satisfied by *env.Environment without an import cycle.
type Env interface {
	Snapshot() Env
	Bind(name string, v Value)
	Lookup(name string) (Value, bool)
}

// Value is the DSL's tagged-union runtime value, per §3: exactly one of the
// int/str/set/tuple/lambda/fsm field groups is meaningful, selected by t.
type Value struct {
	t Type

	i int64
	s string

	set   []Value
	tuple []Value

	param string
	body  LambdaBody
	env   Env

	fsm *automaton.NFA
}

// LambdaBody is the minimal AST contract a Lambda needs: evaluate the body
// against an environment extended with the bound parameter. The concrete
// implementation lives in internal/ast / internal/interp; this interface
// exists so internal/value has no dependency on them.
type LambdaBody interface {
	EvalLambdaBody(env Env) (Value, error)
}

// Int returns an Int value.
func Int(i int64) Value { return Value{t: TypeInt, i: i} }

// Str returns a Str value.
func Str(s string) Value { return Value{t: TypeStr, s: s} }

// Set returns a Set value, deduplicating elements by Equal (the first
// occurrence of each distinct value wins, per §4.8's set-literal rule).
func Set(elems []Value) Value {
	var out []Value
	for _, e := range elems {
		dup := false
		for _, o := range out {
			if e.Equal(o) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, e)
		}
	}
	return Value{t: TypeSet, set: out}
}

// Tuple returns a Tuple value, preserving element order.
func Tuple(elems []Value) Value {
	return Value{t: TypeTuple, tuple: append([]Value(nil), elems...)}
}

// Lambda returns a Lambda value closing over env (which the caller must
// already have snapshotted, per §4.7/§9's capture-by-value requirement).
func Lambda(param string, body LambdaBody, env Env) Value {
	return Value{t: TypeLambda, param: param, body: body, env: env}
}

// Fsm returns an Fsm value wrapping a.
func Fsm(a *automaton.NFA) Value {
	return Value{t: TypeFsm, fsm: a}
}

// Type reports which variant v holds.
func (v Value) Type() Type { return v.t }

// AsInt returns the wrapped int64. Panics if v is not TypeInt; callers at
// the evaluator boundary must check Type first and raise TypeMismatch.
func (v Value) AsInt() int64 {
	mustBe(v, TypeInt)
	return v.i
}

// AsStr returns the wrapped string. Panics if v is not TypeStr.
func (v Value) AsStr() string {
	mustBe(v, TypeStr)
	return v.s
}

// AsSet returns the wrapped elements. Panics if v is not TypeSet.
func (v Value) AsSet() []Value {
	mustBe(v, TypeSet)
	return append([]Value(nil), v.set...)
}

// AsTuple returns the wrapped elements in order. Panics if v is not TypeTuple.
func (v Value) AsTuple() []Value {
	mustBe(v, TypeTuple)
	return append([]Value(nil), v.tuple...)
}

// LambdaParts returns the bound parameter name, body, and captured
// environment. Panics if v is not TypeLambda.
func (v Value) LambdaParts() (string, LambdaBody, Env) {
	mustBe(v, TypeLambda)
	return v.param, v.body, v.env
}

// AsFsm returns the wrapped automaton. Panics if v is not TypeFsm.
func (v Value) AsFsm() *automaton.NFA {
	mustBe(v, TypeFsm)
	return v.fsm
}

func mustBe(v Value, t Type) {
	if v.t != t {
		panic(fmt.Sprintf("value: expected %s, got %s", t, v.t))
	}
}

// Equal reports structural equality per §3/§9's open question: values of
// distinct variants are never equal (Int(0) at the evaluator boundary, not
// an error); Fsm equality delegates to automaton language equivalence; Set
// equality is order-agnostic; Tuple equality is order-sensitive.
func (v Value) Equal(o Value) bool {
	if v.t != o.t {
		return false
	}
	switch v.t {
	case TypeInt:
		return v.i == o.i
	case TypeStr:
		return v.s == o.s
	case TypeSet:
		return setsEqual(v.set, o.set)
	case TypeTuple:
		if len(v.tuple) != len(o.tuple) {
			return false
		}
		for i := range v.tuple {
			if !v.tuple[i].Equal(o.tuple[i]) {
				return false
			}
		}
		return true
	case TypeLambda:
		// lambdas are never structurally equal to each other; identity
		// comparison has no meaning at the value level and the DSL offers
		// no lambda equality operator in practice.
		return false
	case TypeFsm:
		return v.fsm.IsEquivalent(o.fsm)
	default:
		return false
	}
}

func setsEqual(a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}
	matched := make([]bool, len(b))
	for _, av := range a {
		found := false
		for j, bv := range b {
			if matched[j] {
				continue
			}
			if av.Equal(bv) {
				matched[j] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Contains reports whether s (a TypeSet value) contains an element equal to
// x, implementing in-set per §4.8.
func Contains(s Value, x Value) bool {
	for _, e := range s.AsSet() {
		if e.Equal(x) {
			return true
		}
	}
	return false
}

// String renders v for the printer (internal/interp/printer.go), matching
// the literal forms of §8's end-to-end scenarios: sets as {a, b, c}, tuples
// as (a, b, c), strings unquoted.
func (v Value) String() string {
	switch v.t {
	case TypeInt:
		return fmt.Sprintf("%d", v.i)
	case TypeStr:
		return v.s
	case TypeSet:
		parts := make([]string, len(v.set))
		for i, e := range v.set {
			parts[i] = e.String()
		}
		sort.Strings(parts)
		return "{" + strings.Join(parts, ", ") + "}"
	case TypeTuple:
		parts := make([]string, len(v.tuple))
		for i, e := range v.tuple {
			parts[i] = e.String()
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case TypeLambda:
		return fmt.Sprintf("\\%s -> <lambda>", v.param)
	case TypeFsm:
		return fmt.Sprintf("<fsm %d states>", len(v.fsm.States()))
	default:
		return "<invalid value>"
	}
}
