package exposer

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Grid holds per-class influence for every cell of a quantized feature space.
// Rows are cells in Encoder order, columns are classes. It is owned by a single
// Exposer and is not safe for concurrent mutation.
type Grid struct {
	Encoder
	classes int
	data    *mat.Dense
}

// NewGrid allocates an all-zero grid.
func NewGrid(grain, dimensions, classes int) *Grid {
	enc := NewEncoder(grain, dimensions)
	return &Grid{
		Encoder: enc,
		classes: classes,
		data:    mat.NewDense(enc.Cells(), classes, nil),
	}
}

// Classes is the number of per-class values in every cell.
func (g *Grid) Classes() int {
	return g.classes
}

// Accumulate adds v to the class column of the cell at index.
func (g *Grid) Accumulate(index, class int, v float64) {
	g.data.RawRowView(index)[class] += v
}

// Row copies the class-support row of a cell into dst, allocating when dst is
// nil, and returns it.
func (g *Grid) Row(index int, dst []float64) []float64 {
	return mat.Row(dst, index, g.data)
}

// Column copies one class column into dst, allocating when dst is nil.
func (g *Grid) Column(class int, dst []float64) []float64 {
	return mat.Col(dst, class, g.data)
}

// Normalize divides every class column by its maximum so that the largest
// value of a populated column becomes exactly 1. Columns whose maximum is not
// positive (no sample of that class reached the grid) are left untouched.
func (g *Grid) Normalize() {
	col := make([]float64, g.Cells())
	rows := g.Cells()
	for c := 0; c < g.classes; c++ {
		peak := floats.Max(g.Column(c, col))
		if peak <= 0 {
			continue
		}
		for i := 0; i < rows; i++ {
			row := g.data.RawRowView(i)
			row[c] /= peak
		}
	}
}

// Merge adds other into g cell by cell.
func (g *Grid) Merge(other *Grid) error {
	if g.Cells() != other.Cells() || g.classes != other.classes || g.Dimensions() != other.Dimensions() {
		return errors.Wrapf(ErrIncompatibleGrids, "%dx%d vs %dx%d", g.Cells(), g.classes, other.Cells(), other.classes)
	}
	g.data.Add(g.data, other.data)
	return nil
}

// Rows returns a copy of the whole grid as one slice per cell.
func (g *Grid) Rows() [][]float64 {
	out := make([][]float64, g.Cells())
	for i := range out {
		out[i] = g.Row(i, nil)
	}
	return out
}

// setRows replaces the grid content. Used when loading a saved model.
func (g *Grid) setRows(rows [][]float64) error {
	if len(rows) != g.Cells() {
		return errors.Wrapf(ErrIncompatibleGrids, "%d rows, want %d", len(rows), g.Cells())
	}
	for i, r := range rows {
		if len(r) != g.classes {
			return errors.Wrapf(ErrIncompatibleGrids, "row %d has %d classes, want %d", i, len(r), g.classes)
		}
		g.data.SetRow(i, r)
	}
	return nil
}
