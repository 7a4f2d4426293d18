// Package loader implements §4.9's load(kind, source) boundary: the
// evaluator's only way to materialize an Fsm value, kept separate from
// internal/interp so the evaluator depends on an interface rather than on
// concrete file-system or registry access.
package loader

import (
	"errors"

	"github.com/dekarrin/fsmql/internal/automaton"
	"github.com/dekarrin/fsmql/internal/fsmerrors"
	"github.com/dekarrin/fsmql/internal/graph"
	"github.com/dekarrin/fsmql/internal/regexfsm"
)

var errNoRegistry = errors.New("no dataset registry configured")

// Loader resolves the three load(kind, source) forms of §4.9 into an
// automaton. The evaluator depends only on this interface.
type Loader interface {
	LoadPath(path string) (*automaton.NFA, error)
	LoadName(name string) (*automaton.NFA, error)
	LoadRegex(source string) (*automaton.NFA, error)
}

// FileLoader is the default Loader: DOT files from disk, named datasets
// from a graph.Registry, and regexes via internal/regexfsm.
type FileLoader struct {
	Registry *graph.Registry
}

// New returns a FileLoader backed by registry. registry may be nil, in
// which case LoadName always fails with a load failure.
func New(registry *graph.Registry) *FileLoader {
	return &FileLoader{Registry: registry}
}

// LoadPath reads a DOT file from path and wraps it as an NFA with every
// vertex marked start and final.
func (l *FileLoader) LoadPath(path string) (*automaton.NFA, error) {
	g, err := graph.LoadDOTFile(path)
	if err != nil {
		return nil, err
	}
	return g.ToNFA(), nil
}

// LoadName looks up name in l.Registry and wraps it the same way as
// LoadPath.
func (l *FileLoader) LoadName(name string) (*automaton.NFA, error) {
	if l.Registry == nil {
		return nil, fsmerrors.LoadFailure(name, errNoRegistry)
	}
	g, err := l.Registry.Lookup(name)
	if err != nil {
		return nil, err
	}
	return g.ToNFA(), nil
}

// LoadRegex compiles source as an extended regex into an epsilon-NFA.
func (l *FileLoader) LoadRegex(source string) (*automaton.NFA, error) {
	a, err := regexfsm.Compile(source)
	if err != nil {
		return nil, fsmerrors.LoadFailure(source, err)
	}
	return a, nil
}
