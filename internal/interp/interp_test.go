package interp

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dekarrin/fsmql/internal/graph"
	"github.com/dekarrin/fsmql/internal/loader"
	"github.com/dekarrin/fsmql/internal/parser"
)

func run(t *testing.T, l loader.Loader, source string) (*Interpreter, error) {
	prog, err := parser.Parse(source)
	assert.NoError(t, err, "source should parse")
	terp := New(l)
	return terp, terp.Run(prog)
}

func Test_Run_letAndPrintRoundTrip(t *testing.T) {
	terp, err := run(t, nil, `let x = 42 / print x`)
	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal([]string{"42"}, terp.Log())
}

func Test_Run_printUnboundNameIsUninitializedError(t *testing.T) {
	_, err := run(t, nil, `print x`)
	assert.Error(t, err)
}

func Test_Run_lambdaCapturesEnvironmentByValueAtDefinitionTime(t *testing.T) {
	// §9 open question: a lambda snapshot must not see bindings made after
	// it was created, even under the same name.
	terp, err := run(t, loader.New(nil), `
let y = loadFrom regex "b"
let f = \x -> x ++ y
let y = 2
let g = loadFrom regex "a"
print map f on {g}
`)
	assert := assert.New(t)
	assert.NoError(err)
	assert.Len(terp.Log(), 1)
}

func Test_Run_mapAppliesLambdaToEverySetElement(t *testing.T) {
	terp, err := run(t, nil, `
let identity = \x -> x
let s = {1, 2, 3}
let m = map identity on s
print m
`)
	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal([]string{"{1, 2, 3}"}, terp.Log())
}

func Test_Run_filterKeepsOnlyTruthyElements(t *testing.T) {
	terp, err := run(t, nil, `
let isOne = \x -> x == 1
let s = {1, 2, 3}
let f = filter isOne on s
print f
`)
	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal([]string{"{1}"}, terp.Log())
}

func Test_Run_equalAcrossDistinctVariantsReturnsZeroNotError(t *testing.T) {
	// §9 open question: `==` never raises a type mismatch.
	terp, err := run(t, nil, `print 1 == "1"`)
	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal([]string{"0"}, terp.Log())
}

func Test_Run_inSetAndEquality(t *testing.T) {
	terp, err := run(t, nil, `
let s = {1, 2, 3}
print 2 in s
print 9 in s
`)
	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal([]string{"1", "0"}, terp.Log())
}

func Test_Run_starUnionConcatOnLoadedFsms(t *testing.T) {
	terp, err := run(t, loader.New(nil), `
let a = loadFrom regex "a"
let b = loadFrom regex "b"
let u = a || b
let c = a ++ b
let s = a*
print startOf u
print edgesOf c
print reachableOf s
`)
	assert := assert.New(t)
	assert.NoError(err)
	assert.Len(terp.Log(), 3)
}

func Test_Run_reachableOfWithNoStartStatesIsEmpty(t *testing.T) {
	// §9 open question: reachableOf on an automaton with no declared start
	// states returns the empty set.
	terp, err := run(t, loader.New(nil), `
let a = loadFrom regex "a"
let cleared = setStart {} to a
print reachableOf cleared
`)
	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal([]string{"{}"}, terp.Log())
}

func Test_Run_setStartReplacesRatherThanAdds(t *testing.T) {
	terp, err := run(t, loader.New(nil), `
let a = loadFrom regex "a b"
let withStart = setStart {"q0"} to a
print startOf withStart
`)
	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal([]string{`{q0}`}, terp.Log())
}

func Test_Run_loadFromPathReadsDOTFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "g.dot")
	assert.NoError(t, os.WriteFile(path, []byte(`a -> b [label="x"];`), 0o644))

	terp, err := run(t, loader.New(nil), `
let g = loadFrom path "`+path+`"
print verticesOf g
`)
	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal([]string{"{a, b}"}, terp.Log())
}

func Test_Run_loadFromNameUsesRegistry(t *testing.T) {
	reg := graph.NewRegistry()
	reg.Register("sample", &graph.Multigraph{Vertices: []string{"a", "b"}, Edges: []graph.Edge{{From: "a", Label: "x", To: "b"}}})

	terp, err := run(t, loader.New(reg), `
let g = loadFrom name "sample"
print labelsOf g
`)
	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal([]string{"{x}"}, terp.Log())
}

func Test_Run_stopsOnFirstErrorButKeepsPriorPrints(t *testing.T) {
	terp, err := run(t, nil, `
print 1
print undefinedVar
print 2
`)
	assert := assert.New(t)
	assert.Error(err)
	assert.Equal([]string{"1"}, terp.Log())
}
