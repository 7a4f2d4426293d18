package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dekarrin/fsmql/internal/graph"
)

func Test_LoadPath_readsDOTFileFromDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "g.dot")
	assert.NoError(t, os.WriteFile(path, []byte(`a -> b [label="x"];`), 0o644))

	l := New(nil)
	a, err := l.LoadPath(path)
	assert := assert.New(t)
	assert.NoError(err)
	assert.True(a.IsStart("a"))
	assert.True(a.IsFinal("b"))
}

func Test_LoadPath_missingFileErrors(t *testing.T) {
	l := New(nil)
	_, err := l.LoadPath("/no/such/file.dot")
	assert.Error(t, err)
}

func Test_LoadName_looksUpFromRegistry(t *testing.T) {
	reg := graph.NewRegistry()
	reg.Register("sample", &graph.Multigraph{Vertices: []string{"a", "b"}, Edges: []graph.Edge{{From: "a", Label: "x", To: "b"}}})

	l := New(reg)
	a, err := l.LoadName("sample")
	assert := assert.New(t)
	assert.NoError(err)
	assert.True(a.IsStart("a"))
}

func Test_LoadName_unknownNameErrors(t *testing.T) {
	reg := graph.NewRegistry()
	l := New(reg)
	_, err := l.LoadName("nope")
	assert.Error(t, err)
}

func Test_LoadName_nilRegistryErrors(t *testing.T) {
	l := New(nil)
	_, err := l.LoadName("anything")
	assert.Error(t, err)
}

func Test_LoadRegex_compilesValidPattern(t *testing.T) {
	l := New(nil)
	a, err := l.LoadRegex("a b*")
	assert := assert.New(t)
	assert.NoError(err)
	assert.NotNil(a)
}

func Test_LoadRegex_invalidPatternErrors(t *testing.T) {
	l := New(nil)
	_, err := l.LoadRegex("(a")
	assert.Error(t, err)
}
