// Package repl implements the interactive front end for fsmql: a readline
// session that feeds one statement at a time to a persistent Interpreter,
// modeled on the console input reader the rest of the toolchain's CLI uses.
package repl

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/dekarrin/fsmql/internal/fsmerrors"
	"github.com/dekarrin/fsmql/internal/interp"
	"github.com/dekarrin/fsmql/internal/parser"
)

// Session wraps a readline instance bound to a single Interpreter, so
// `let`/`print` statements entered at the prompt accumulate state across
// lines exactly as they would within one batch-mode program.
//
// Session must have Close called on it before disposal to tear down
// readline resources.
type Session struct {
	rl   *readline.Instance
	terp *interp.Interpreter
}

// New creates a Session reading from stdin with the given prompt.
func New(terp *interp.Interpreter, prompt string) (*Session, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:            prompt,
		HistorySearchFold: true,
	})
	if err != nil {
		return nil, fmt.Errorf("create readline config: %w", err)
	}
	return &Session{rl: rl, terp: terp}, nil
}

// Close tears down the underlying readline resources.
func (s *Session) Close() error {
	return s.rl.Close()
}

// Run reads statements from the prompt one line at a time until EOF (Ctrl-D)
// or an interrupt (Ctrl-C on an empty line), printing each statement's
// output, or its error, to out as it runs. It returns nil on a clean exit.
func (s *Session) Run(out io.Writer) error {
	for {
		line, err := s.rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if len(strings.TrimSpace(line)) == 0 {
				return nil
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		before := len(s.terp.Log())
		s.runLine(out, line, before)
	}
}

func (s *Session) runLine(out io.Writer, line string, alreadyPrinted int) {
	prog, err := parser.Parse(line)
	if err != nil {
		fmt.Fprintln(out, err.Error())
		return
	}
	runErr := s.terp.Run(prog)
	log := s.terp.Log()
	for _, printed := range log[alreadyPrinted:] {
		fmt.Fprintln(out, printed)
	}
	if runErr != nil {
		fmt.Fprintln(out, formatRunError(runErr))
	}
}

func formatRunError(err error) string {
	var ie *fsmerrors.InterpretingError
	if errors.As(err, &ie) {
		return fmt.Sprintf("Interpretation error: %s", fsmerrors.Message(err))
	}
	return err.Error()
}
