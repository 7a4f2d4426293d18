package automaton

import "fmt"

// IntersectionOrigin maps a product-automaton state name back to the pair of
// source states it was built from, so callers recovering which A-side state
// a reachability witness originated from (§4.3 step 4) don't have to parse
// the state name.
type IntersectionOrigin struct {
	Left, Right string
}

func productState(i, j int) string {
	return fmt.Sprintf("(%d,%d)", i, j)
}

// Intersect returns an NFA accepting L(a) ∩ L(b), built by decomposing both
// automata and taking the Kronecker product of the matrices for every
// symbol in Σ_a ∩ Σ_b, per §4.3. The second return value maps every state
// of the result back to the (a-state, b-state) pair it was built from.
func Intersect(a, b *NFA) (*NFA, map[string]IntersectionOrigin) {
	da := Decompose(a)
	db := Decompose(b)

	out := New()
	origin := map[string]IntersectionOrigin{}

	for i, qa := range da.StatesInOrder {
		for j, qb := range db.StatesInOrder {
			name := productState(i, j)
			out.AddState(name)
			origin[name] = IntersectionOrigin{Left: qa, Right: qb}
		}
	}

	sharedSymbols := map[string]bool{}
	for sym := range da.Matrices {
		if _, ok := db.Matrices[sym]; ok {
			sharedSymbols[sym] = true
		}
	}

	for sym := range sharedSymbols {
		product := da.Matrices[sym].Kron(db.Matrices[sym])
		for i := 0; i < product.Rows; i++ {
			for _, j := range product.Row(i) {
				out.AddTransition(productState(i/db.Matrices[sym].Rows, i%db.Matrices[sym].Rows), sym, productState(j/db.Matrices[sym].Cols, j%db.Matrices[sym].Cols))
			}
		}
	}

	for _, qa := range a.Start() {
		for _, qb := range b.Start() {
			out.AddStart(productState(da.Index[qa], db.Index[qb]))
		}
	}
	for _, qa := range a.Final() {
		for _, qb := range b.Final() {
			out.AddFinal(productState(da.Index[qa], db.Index[qb]))
		}
	}

	return out, origin
}

func tag(origin int, state string) string {
	return fmt.Sprintf("%d:%s", origin, state)
}

// Union returns a disjoint-copy NFA accepting L(a) ∪ L(b). States are
// tagged with their origin automaton (1 or 2) so that states of the same
// name in a and b never collide; no epsilon bridge is added, per §4.3.
func Union(a, b *NFA) *NFA {
	out := New()

	for _, s := range a.States() {
		out.AddState(tag(1, s))
	}
	for _, s := range b.States() {
		out.AddState(tag(2, s))
	}
	for _, t := range a.Transitions() {
		out.AddTransition(tag(1, t.From), t.Symbol, tag(1, t.To))
	}
	for _, t := range b.Transitions() {
		out.AddTransition(tag(2, t.From), t.Symbol, tag(2, t.To))
	}
	for _, s := range a.Start() {
		out.AddStart(tag(1, s))
	}
	for _, s := range b.Start() {
		out.AddStart(tag(2, s))
	}
	for _, s := range a.Final() {
		out.AddFinal(tag(1, s))
	}
	for _, s := range b.Final() {
		out.AddFinal(tag(2, s))
	}

	return out
}

// Concat returns a disjoint-copy NFA accepting L(a) . L(b).
//
// Deviation from the source material (documented per §9's open question):
// the construction this is modeled on bridges every start state of a to
// every final state of b with an epsilon transition, which accepts L(b) . a
// path back to L(a) rather than concatenation and is almost certainly a
// bug. This implementation instead uses the conventional construction:
// epsilon from every final state of a to every start state of b, with
// start = S_a and final = F_b.
func Concat(a, b *NFA) *NFA {
	out := New()

	for _, s := range a.States() {
		out.AddState(tag(1, s))
	}
	for _, s := range b.States() {
		out.AddState(tag(2, s))
	}
	for _, t := range a.Transitions() {
		out.AddTransition(tag(1, t.From), t.Symbol, tag(1, t.To))
	}
	for _, t := range b.Transitions() {
		out.AddTransition(tag(2, t.From), t.Symbol, tag(2, t.To))
	}
	for _, fa := range a.Final() {
		for _, sb := range b.Start() {
			out.AddTransition(tag(1, fa), Epsilon, tag(2, sb))
		}
	}
	for _, s := range a.Start() {
		out.AddStart(tag(1, s))
	}
	for _, s := range b.Final() {
		out.AddFinal(tag(2, s))
	}

	return out
}

// Star returns an NFA accepting L(a)*, via the standard Thompson
// construction generalized to automata with multiple start/final states: a
// fresh start/final pair is added, epsilon-bridged around and through the
// original automaton so that it can be skipped entirely or repeated any
// number of times.
func Star(a *NFA) *NFA {
	out := a.Copy()

	newStart := freshState(out, "star_start")
	newFinal := freshState(out, "star_final")
	out.AddState(newStart)
	out.AddState(newFinal)

	for _, s := range a.Start() {
		out.AddTransition(newStart, Epsilon, s)
	}
	out.AddTransition(newStart, Epsilon, newFinal)
	for _, f := range a.Final() {
		out.AddTransition(f, Epsilon, newFinal)
		for _, s := range a.Start() {
			out.AddTransition(f, Epsilon, s)
		}
	}

	for _, s := range a.Start() {
		out.RemoveStart(s)
	}
	for _, f := range a.Final() {
		out.RemoveFinal(f)
	}
	out.AddStart(newStart)
	out.AddFinal(newFinal)

	return out
}

func freshState(a *NFA, base string) string {
	name := base
	n := 0
	for a.HasState(name) {
		n++
		name = fmt.Sprintf("%s_%d", base, n)
	}
	return name
}

// TransitiveClosure computes the smallest Boolean matrix M* such that
// M ⊆ M* and M* . M* ⊆ M*, where M is the OR of every per-symbol matrix in
// d. It iterates M ← M ∨ (M . M) until NNZ(M) stops growing, which is
// always reached in at most log2(|Q|) rounds since NNZ is bounded and
// strictly increasing until the fixed point (exponentiation by squaring,
// per §5's memory note).
func TransitiveClosure(d *Decomposition) *BoolMatrix {
	n := len(d.StatesInOrder)
	m := NewBoolMatrix(n, n)
	for _, mat := range d.Matrices {
		m = m.Or(mat)
	}

	for {
		next := m.Or(m.Mul(m))
		if next.NNZ() == m.NNZ() {
			return next
		}
		m = next
	}
}

// RPQ answers a regular path query: the set of (u, v) pairs such that u is a
// start state of a, v is a final state of a, and some path constrained by
// the regular language of r leads from u to v. Per §4.3 this is computed by
// intersecting a with r, then taking the transitive closure of the
// intersection's decomposition; the u half of each witness pair is read
// back out of the intersection's origin map.
func RPQ(a, r *NFA) [][2]string {
	product, origin := Intersect(a, r)
	epsFree := product.RemoveEpsilon()
	decomp := Decompose(epsFree)
	closure := TransitiveClosure(decomp)

	var pairs [][2]string
	seen := map[[2]string]bool{}

	for _, startName := range product.Start() {
		for _, finalName := range product.Final() {
			si, ok1 := decomp.Index[startName]
			fi, ok2 := decomp.Index[finalName]
			if !ok1 || !ok2 {
				continue
			}
			if si == fi || closure.Get(si, fi) {
				u := origin[startName].Left
				v := origin[finalName].Left
				key := [2]string{u, v}
				if !seen[key] {
					seen[key] = true
					pairs = append(pairs, key)
				}
			}
		}
	}

	return pairs
}

// Reachable computes reachableOf(a): the set of vertices reachable from any
// start state of a along any path, regardless of label. This is the
// concrete realization of RPQ(a, `.*`) described in §4.8 — rather than
// requiring a literal wildcard-star automaton, the unrestricted-path
// constraint is implemented directly as the transitive closure of a's own
// decomposition (after removing epsilon transitions), which is exactly what
// intersecting with a `.*` automaton and then closing would produce, since
// such an automaton's language imposes no constraint at all.
func Reachable(a *NFA) []string {
	epsFree := a.RemoveEpsilon()
	decomp := Decompose(epsFree)
	closure := TransitiveClosure(decomp)

	reached := map[string]bool{}
	for _, s := range a.Start() {
		si, ok := decomp.Index[s]
		if !ok {
			continue
		}
		reached[s] = true
		for j, state := range decomp.StatesInOrder {
			if closure.Get(si, j) {
				reached[state] = true
			}
		}
	}

	out := make([]string, 0, len(reached))
	for s := range reached {
		out = append(out, s)
	}
	return out
}
