package automaton

import "sort"

// BoolMatrix is a sparse |rows|x|cols| Boolean matrix stored as a map of
// row index to the set of set columns in that row (a CSR-like sparse
// representation, per §9's design note: no dense backing array is ever
// allocated, so Kronecker products of large automata stay proportional to
// their true edge count rather than the square of their state count).
type BoolMatrix struct {
	Rows, Cols int
	rows       map[int]map[int]bool
}

// NewBoolMatrix returns an all-zero rows x cols Boolean matrix.
func NewBoolMatrix(rows, cols int) *BoolMatrix {
	return &BoolMatrix{Rows: rows, Cols: cols, rows: map[int]map[int]bool{}}
}

// Set marks M[i,j] = 1.
func (m *BoolMatrix) Set(i, j int) {
	row, ok := m.rows[i]
	if !ok {
		row = map[int]bool{}
		m.rows[i] = row
	}
	row[j] = true
}

// Get returns M[i,j].
func (m *BoolMatrix) Get(i, j int) bool {
	row, ok := m.rows[i]
	if !ok {
		return false
	}
	return row[j]
}

// NNZ returns the number of set entries.
func (m *BoolMatrix) NNZ() int {
	n := 0
	for _, row := range m.rows {
		n += len(row)
	}
	return n
}

// Row returns the sorted column indices set in row i.
func (m *BoolMatrix) Row(i int) []int {
	row, ok := m.rows[i]
	if !ok {
		return nil
	}
	cols := make([]int, 0, len(row))
	for j := range row {
		cols = append(cols, j)
	}
	sort.Ints(cols)
	return cols
}

// Or returns the entrywise Boolean OR of m and o, which must have matching
// dimensions.
func (m *BoolMatrix) Or(o *BoolMatrix) *BoolMatrix {
	out := NewBoolMatrix(m.Rows, m.Cols)
	for i, row := range m.rows {
		for j := range row {
			out.Set(i, j)
		}
	}
	for i, row := range o.rows {
		for j := range row {
			out.Set(i, j)
		}
	}
	return out
}

// Mul returns the Boolean matrix product m*o: result[i,k] = OR_j
// m[i,j] && o[j,k]. m.Cols must equal o.Rows.
func (m *BoolMatrix) Mul(o *BoolMatrix) *BoolMatrix {
	out := NewBoolMatrix(m.Rows, o.Cols)
	for i, row := range m.rows {
		for j := range row {
			oRow, ok := o.rows[j]
			if !ok {
				continue
			}
			for k := range oRow {
				out.Set(i, k)
			}
		}
	}
	return out
}

// Kron returns the Kronecker (tensor) product m ⊗ o, a matrix of dimensions
// (m.Rows*o.Rows) x (m.Cols*o.Cols). Entry (i*o.Rows+k, j*o.Cols+l) is set
// iff m[i,j] and o[k,l] are both set. This realizes automaton intersection:
// a product state (q1,q2) is indexed i*|Q2|+j the same way §4.3 specifies.
func (m *BoolMatrix) Kron(o *BoolMatrix) *BoolMatrix {
	out := NewBoolMatrix(m.Rows*o.Rows, m.Cols*o.Cols)
	for i, row := range m.rows {
		for j := range row {
			for k, oRow := range o.rows {
				for l := range oRow {
					out.Set(i*o.Rows+k, j*o.Cols+l)
				}
			}
		}
	}
	return out
}

// Equal reports whether m and o have the same set entries (dimensions are
// not compared; only the nonzero positions matter).
func (m *BoolMatrix) Equal(o *BoolMatrix) bool {
	if m.NNZ() != o.NNZ() {
		return false
	}
	for i, row := range m.rows {
		for j := range row {
			if !o.Get(i, j) {
				return false
			}
		}
	}
	return true
}

// Decomposition is the Boolean-matrix decomposition of an epsilon-free NFA:
// a stable state ordering plus one sparse Boolean adjacency matrix per
// alphabet symbol.
type Decomposition struct {
	// StatesInOrder lists Q in a deterministic order; Index[q] is its
	// position in this slice.
	StatesInOrder []string
	Index         map[string]int
	Matrices      map[string]*BoolMatrix
}

// Decompose builds the Boolean decomposition of a, which must already be
// epsilon-free (call RemoveEpsilon first). Decompose does not check this
// itself beyond ignoring any Epsilon-labeled transitions, since an
// epsilon-free NFA never has any: the caller is responsible for invoking
// RemoveEpsilon per §4.2's contract.
func Decompose(a *NFA) *Decomposition {
	states := a.States()
	sort.Strings(states)

	idx := make(map[string]int, len(states))
	for i, s := range states {
		idx[s] = i
	}

	n := len(states)
	matrices := map[string]*BoolMatrix{}

	for _, t := range a.Transitions() {
		if t.Symbol == Epsilon {
			continue
		}
		m, ok := matrices[t.Symbol]
		if !ok {
			m = NewBoolMatrix(n, n)
			matrices[t.Symbol] = m
		}
		m.Set(idx[t.From], idx[t.To])
	}

	return &Decomposition{StatesInOrder: states, Index: idx, Matrices: matrices}
}

// StateVector returns an n-length Boolean indicator (as a set of positions)
// for the given states, using d's index.
func (d *Decomposition) StateVector(states []string) map[int]bool {
	v := map[int]bool{}
	for _, s := range states {
		if i, ok := d.Index[s]; ok {
			v[i] = true
		}
	}
	return v
}
