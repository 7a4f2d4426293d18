package cfpq

import (
	"fmt"

	"github.com/dekarrin/fsmql/internal/grammar"
)

// Method selects which CFPQ algorithm Solve dispatches to. A Method enum
// replaces a package-level algorithm registry: there are exactly two
// algorithms, both fixed at compile time, and a registry would only add a
// layer of indirection with no pluggable third implementation to justify it.
type Method int

const (
	// MethodHellings runs the worklist algorithm (Hellings).
	MethodHellings Method = iota
	// MethodMatrix runs the Boolean-matrix algorithm (MatrixCFPQ).
	MethodMatrix
)

func (m Method) String() string {
	switch m {
	case MethodHellings:
		return "hellings"
	case MethodMatrix:
		return "matrix"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// Solve runs CFPQ over a graph described by vertices/edges against cfg using
// the given method, then filters the all-pairs result to the query named in
// §4.6: witnesses whose head is nt, whose From is in startV (or, if startV
// is empty, any vertex), and whose To is in finalV (or, if finalV is empty,
// any vertex).
func Solve(method Method, vertices []string, edges []Edge, cfg *grammar.CFG, nt string, startV, finalV []string) ([]Triple, error) {
	var all []Triple
	switch method {
	case MethodHellings:
		all = Hellings(vertices, edges, cfg)
	case MethodMatrix:
		all = MatrixCFPQ(vertices, edges, cfg)
	default:
		return nil, fmt.Errorf("unknown CFPQ method %v", method)
	}

	startSet := toSet(startV)
	finalSet := toSet(finalV)

	var out []Triple
	for _, t := range all {
		if t.Head != nt {
			continue
		}
		if len(startSet) > 0 && !startSet[t.From] {
			continue
		}
		if len(finalSet) > 0 && !finalSet[t.To] {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func toSet(vs []string) map[string]bool {
	if len(vs) == 0 {
		return nil
	}
	s := make(map[string]bool, len(vs))
	for _, v := range vs {
		s[v] = true
	}
	return s
}
