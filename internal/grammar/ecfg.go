package grammar

import (
	"strings"

	"github.com/dekarrin/fsmql/internal/fsmerrors"
	"github.com/dekarrin/fsmql/internal/util"
)

// ECFG is an extended context-free grammar: each nonterminal has at most
// one production, whose right-hand side is a regular expression over
// N ∪ T rather than a plain symbol sequence.
type ECFG struct {
	Start  string
	Bodies map[string]string // nonterminal -> regex source text
	order  []string
}

// FromText parses a block of "Nonterminal -> regex" lines (blank lines and
// lines starting with # are ignored) into an ECFG. The first declared
// nonterminal becomes the start symbol. It is an error to declare the same
// nonterminal twice.
func FromText(text string) (*ECFG, error) {
	e := &ECFG{Bodies: map[string]string{}}

	for lineNo, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		parts := strings.SplitN(trimmed, "->", 2)
		if len(parts) != 2 {
			return nil, fsmerrors.Grammar("line %d: expected 'NONTERM -> regex', got %q", lineNo+1, trimmed)
		}

		nt := strings.TrimSpace(parts[0])
		body := strings.TrimSpace(parts[1])
		if nt == "" {
			return nil, fsmerrors.Grammar("line %d: empty nonterminal name", lineNo+1)
		}
		if body == "" {
			return nil, fsmerrors.Grammar("line %d: empty production body for %q", lineNo+1, nt)
		}

		if _, exists := e.Bodies[nt]; exists {
			return nil, fsmerrors.Grammar("nonterminal %q declared more than once", nt)
		}

		if e.Start == "" {
			e.Start = nt
		}
		e.order = append(e.order, nt)
		e.Bodies[nt] = body
	}

	if len(e.Bodies) == 0 {
		return nil, fsmerrors.Grammar("no productions declared")
	}

	return e, nil
}

// NonTerminals returns the declared nonterminal names in declaration order.
func (e *ECFG) NonTerminals() []string {
	return append([]string(nil), e.order...)
}

// symbolSet returns every nonterminal name the ECFG declares, as a set. A
// bare token in a production body that is in this set names a nonterminal;
// any other token is a terminal (a graph edge label).
func (e *ECFG) symbolSet() util.StringSet {
	s := util.NewStringSet()
	for _, nt := range e.order {
		s.Add(nt)
	}
	return s
}
