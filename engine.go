// Package fsmql contains the engine that ties the DSL front end (lexer,
// parser) to the evaluator and the loader boundary, for running a program
// file start to finish or driving an interactive session.
package fsmql

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dekarrin/fsmql/internal/fsmerrors"
	"github.com/dekarrin/fsmql/internal/graph"
	"github.com/dekarrin/fsmql/internal/interp"
	"github.com/dekarrin/fsmql/internal/loader"
	"github.com/dekarrin/fsmql/internal/parser"
)

// Engine runs fsmql programs against a single Loader and accumulates their
// print output.
type Engine struct {
	interp *interp.Interpreter
}

// New creates an Engine backed by a FileLoader. registryPath, if non-empty,
// is loaded as a TOML dataset registry for `loadFrom name "..."`.
func New(registryPath string) (*Engine, error) {
	var reg *graph.Registry
	if registryPath != "" {
		var err error
		reg, err = graph.LoadRegistryFile(registryPath)
		if err != nil {
			return nil, fmt.Errorf("loading dataset registry: %w", err)
		}
	}
	return &Engine{interp: interp.New(loader.New(reg))}, nil
}

// RunFile reads, parses, and evaluates the program at path, per §6's CLI
// contract. On success it returns the accumulated print log; on an
// InterpretingError the log reflects whatever prints succeeded before the
// failure.
func (eng *Engine) RunFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return eng.RunSource(string(data))
}

// RunSource parses and evaluates source directly, for callers (tests, a
// REPL) that already have program text in memory.
func (eng *Engine) RunSource(source string) ([]string, error) {
	prog, err := parser.Parse(source)
	if err != nil {
		return nil, err
	}
	if err := eng.interp.Run(prog); err != nil {
		return eng.interp.Log(), err
	}
	return eng.interp.Log(), nil
}

// Interpreter exposes the underlying evaluator, for a REPL that wants to
// run one statement at a time against a persistent environment.
func (eng *Engine) Interpreter() *interp.Interpreter {
	return eng.interp
}

// WriteLog writes every accumulated print line to w, one per line,
// matching the CLI's stdout contract.
func WriteLog(w io.Writer, log []string) error {
	for _, line := range log {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// FormatError renders err the way the CLI reports an InterpretingError:
// "Interpretation error: <message>". A syntax error or any other error is
// passed through unchanged, since only InterpretingError has a defined
// "Interpretation error" display form.
func FormatError(err error) string {
	var ie *fsmerrors.InterpretingError
	if errors.As(err, &ie) {
		return fmt.Sprintf("Interpretation error: %s", fsmerrors.Message(err))
	}
	return err.Error()
}
