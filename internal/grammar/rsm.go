package grammar

import (
	"fmt"

	"github.com/dekarrin/fsmql/internal/automaton"
	"github.com/dekarrin/fsmql/internal/regexfsm"
)

// RSM is a recursive state machine: one NFA per nonterminal, compiled from
// that nonterminal's ECFG regex body, plus a designated start nonterminal.
type RSM struct {
	Start      string
	Components map[string]*automaton.NFA
}

// FromECFG compiles every nonterminal's regex body into an NFA via
// internal/regexfsm, producing the RSM for e.
func FromECFG(e *ECFG) (*RSM, error) {
	rsm := &RSM{Start: e.Start, Components: map[string]*automaton.NFA{}}

	for _, nt := range e.NonTerminals() {
		body := e.Bodies[nt]
		nfa, err := regexfsm.Compile(body)
		if err != nil {
			return nil, fmt.Errorf("nonterminal %q: %w", nt, err)
		}
		rsm.Components[nt] = nfa
	}

	return rsm, nil
}

// Minimize returns a new RSM in which every component NFA has been
// determinized and minimized (via automaton.NFA.ToDFA/Minimize), per
// §4.4's RSM.minimize(). A minimized DFA is itself a valid (epsilon-free,
// deterministic) NFA, so the result type is unchanged.
func (r *RSM) Minimize() *RSM {
	out := &RSM{Start: r.Start, Components: map[string]*automaton.NFA{}}
	for nt, nfa := range r.Components {
		out.Components[nt] = automaton.Minimize(nfa)
	}
	return out
}
