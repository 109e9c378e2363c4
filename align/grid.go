package align

import "fmt"

// Grid is a reusable, row-major dense 2-D buffer of float64 values,
// indexed 0 <= i <= rows-1, 0 <= j <= cols-1. It is resized (not
// reallocated) per training pair to amortize allocation across the
// dataset, the way the teacher's matrix.Dense trades a fixed shape for
// cache-friendly flat storage.
type Grid struct {
	rows, cols int
	data       []float64
}

// NewGrid constructs an empty grid. Call Resize before first use.
func NewGrid() *Grid {
	return &Grid{}
}

// Resize grows or shrinks the grid to rows x cols, filling every cell
// (new or reused) with def. Existing backing storage is reused when
// large enough.
func (g *Grid) Resize(rows, cols int, def float64) {
	g.rows, g.cols = rows, cols
	need := rows * cols
	if cap(g.data) < need {
		g.data = make([]float64, need)
	} else {
		g.data = g.data[:need]
	}
	g.Fill(def)
}

// Fill overwrites every cell currently in bounds with v.
func (g *Grid) Fill(v float64) {
	for i := range g.data {
		g.data[i] = v
	}
}

func (g *Grid) index(i, j int) (int, error) {
	if i < 0 || i >= g.rows || j < 0 || j >= g.cols {
		return 0, fmt.Errorf("align: Grid index (%d,%d) out of %dx%d: %w", i, j, g.rows, g.cols, ErrOutOfRange)
	}
	return i*g.cols + j, nil
}

// At returns the value at (i, j), bounds-checked.
func (g *Grid) At(i, j int) (float64, error) {
	idx, err := g.index(i, j)
	if err != nil {
		return 0, err
	}
	return g.data[idx], nil
}

// Set assigns v at (i, j), bounds-checked.
func (g *Grid) Set(i, j int, v float64) error {
	idx, err := g.index(i, j)
	if err != nil {
		return err
	}
	g.data[idx] = v
	return nil
}

// get is the unchecked hot-path accessor used inside the lattice
// kernels, where i, j are always structurally in range because they
// come from the admissible-chunk iteration over a grid sized to
// exactly (n+1) x (m+1). A slice out-of-range here would be a bug in
// the iteration itself, not a caller input, so it panics via normal
// Go slice semantics rather than threading an error through every
// cell of an O(n^2 m^2) loop.
func (g *Grid) get(i, j int) float64 {
	return g.data[i*g.cols+j]
}

func (g *Grid) set(i, j int, v float64) {
	g.data[i*g.cols+j] = v
}

// bestNode is one cell of a BestNodeGrid: the best cumulative score
// reachable from (i, j) plus the chunk endpoint that achieves it.
type bestNode struct {
	score        float64
	nextP, nextQ int
}

// BestNodeGrid is the scratch buffer used by Viterbi decoding: each
// cell holds the best score achievable from (i, j) to (n, m) and the
// endpoint of the chunk that realizes it.
type BestNodeGrid struct {
	rows, cols int
	data       []bestNode
}

// NewBestNodeGrid constructs an empty grid. Call Resize before use.
func NewBestNodeGrid() *BestNodeGrid {
	return &BestNodeGrid{}
}

// Resize grows or shrinks the grid to rows x cols, filling every cell
// with the given default score (next pointers reset to (0,0)).
func (g *BestNodeGrid) Resize(rows, cols int, defScore float64) {
	g.rows, g.cols = rows, cols
	need := rows * cols
	if cap(g.data) < need {
		g.data = make([]bestNode, need)
	} else {
		g.data = g.data[:need]
	}
	g.Fill(defScore)
}

// Fill resets every cell to (defScore, 0, 0).
func (g *BestNodeGrid) Fill(defScore float64) {
	for i := range g.data {
		g.data[i] = bestNode{score: defScore}
	}
}

func (g *BestNodeGrid) get(i, j int) bestNode {
	return g.data[i*g.cols+j]
}

func (g *BestNodeGrid) set(i, j int, v bestNode) {
	g.data[i*g.cols+j] = v
}
