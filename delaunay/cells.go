package delaunay

import (
	"iter"

	"gonum.org/v1/gonum/spatial/r3"
)

// Tetra is one cell as handed to consumers. Vertices are input point indices
// and Offsets the lattice translation of each vertex, all zero in a bounded
// triangulation. Corners holds the (translated) vertex positions, in
// positive orientation.
type Tetra struct {
	Vertices [4]int
	Offsets  [4]Offset
	Corners  [4]r3.Vec
}

// Cells yields every finite cell once, in storage order.
func (t *Triangulation) Cells() iter.Seq[Tetra] {
	return func(yield func(Tetra) bool) {
		for c := range t.cells {
			cl := &t.cells[c]
			if !cl.alive || cl.infiniteSlot() >= 0 {
				continue
			}
			if !yield(t.tetra(c)) {
				return
			}
		}
	}
}

func (t *Triangulation) tetra(c int) (tet Tetra) {
	tet.Vertices = t.cells[c].v
	tet.Corners = t.corners(c, -1, r3.Vec{})
	return
}
