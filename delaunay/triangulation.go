package delaunay

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/godive/geometry3D"
	"github.com/notargets/godive/types"
)

// Infinite is the vertex index of the point at infinity. Every facet of the
// convex hull is closed off by an infinite cell made of the facet and this
// vertex, so each cell always has four neighbors.
const Infinite = -1

/*
cell is a tetrahedron of the triangulation.

	v[i] is a vertex index (or Infinite)
	n[i] is the cell across the facet opposite v[i]

Finite cells are stored positively oriented, Orient(v0, v1, v2, v3) > 0. An
infinite cell with the point at infinity at slot k is stored so that
replacing v[k] with any point beyond its hull facet gives a positively
oriented tetrahedron.
*/
type cell struct {
	v     [4]int
	n     [4]int
	alive bool
}

func (c *cell) infiniteSlot() int {
	for i, v := range c.v {
		if v == Infinite {
			return i
		}
	}
	return -1
}

func (c *cell) neighborSlot(nb int) int {
	for i, n := range c.n {
		if n == nb {
			return i
		}
	}
	return -1
}

func (c *cell) faceKey(i int) types.FaceKey {
	return types.NewFaceKey([3]int{c.v[(i+1)%4], c.v[(i+2)%4], c.v[(i+3)%4]})
}

// Triangulation is the Delaunay triangulation of a point set in R^3.
type Triangulation struct {
	points     []r3.Vec
	cells      []cell
	free       []int
	mark       []uint32
	stamp      uint32
	hint       int
	dimension  int
	sameAs     []int // vertex an exact duplicate was merged into, or -1
	duplicates int

	// scratch space reused by every insertion
	stack, conflicts []int
	boundary         []facet
	open             map[types.FaceKey]facet
}

type facet struct {
	cell, face int
}

/*
New builds the Delaunay triangulation of points by incremental insertion.

The points are inserted in Morton order. Exact duplicates of an earlier point
are skipped. When the points do not span 3-D space (fewer than four affinely
independent points) the triangulation has no cells and Dimension reports the
dimension of their affine hull; this is not an error.

The input slice is retained and must not be modified afterwards.
*/
func New(points []r3.Vec) (t *Triangulation, err error) {
	t = &Triangulation{
		points: points,
		sameAs: make([]int, len(points)),
		open:   make(map[types.FaceKey]facet),
		hint:   -1,
	}
	for i := range t.sameAs {
		t.sameAs[i] = -1
	}
	order := spatialOrder(points)
	simplex, ok := t.initialSimplex(order)
	if !ok {
		return
	}
	if err = t.makeInitialCells(simplex); err != nil {
		return nil, err
	}
	for _, p := range order {
		if p == simplex[0] || p == simplex[1] || p == simplex[2] || p == simplex[3] {
			continue
		}
		if err = t.insert(p); err != nil {
			return nil, err
		}
	}
	return
}

// Dimension is the dimension of the affine hull of the inserted points, -1
// for an empty triangulation.
func (t *Triangulation) Dimension() int { return t.dimension }

// NumberOfVertices counts the distinct input points.
func (t *Triangulation) NumberOfVertices() int { return len(t.points) - t.duplicates }

// Duplicates counts the input points skipped because an identical point was
// inserted before them.
func (t *Triangulation) Duplicates() int { return t.duplicates }

func (t *Triangulation) Point(i int) r3.Vec { return t.points[i] }

// SameAs returns the earlier input point that point i duplicates, or -1 when
// point i is a vertex of its own.
func (t *Triangulation) SameAs(i int) int { return t.sameAs[i] }

// NumberOfCells counts the finite cells.
func (t *Triangulation) NumberOfCells() (count int) {
	for c := range t.cells {
		if t.cells[c].alive && t.cells[c].infiniteSlot() < 0 {
			count++
		}
	}
	return
}

// initialSimplex picks the first four affinely independent points in
// insertion order.
func (t *Triangulation) initialSimplex(order []int) (s [4]int, ok bool) {
	t.dimension = -1
	if len(order) == 0 {
		return
	}
	s = [4]int{order[0], -1, -1, -1}
	t.dimension = 0
	pts := t.points
	for _, i := range order[1:] {
		switch {
		case s[1] < 0:
			if pts[i] != pts[s[0]] {
				s[1] = i
				t.dimension = 1
			}
		case s[2] < 0:
			if !geometry3D.Collinear(pts[s[0]], pts[s[1]], pts[i]) {
				s[2] = i
				t.dimension = 2
			}
		default:
			if geometry3D.Orient(pts[s[0]], pts[s[1]], pts[s[2]], pts[i]) != 0 {
				s[3] = i
				t.dimension = 3
				return s, true
			}
		}
	}
	return s, false
}

// makeInitialCells builds the first tetrahedron and the four infinite cells
// on its faces.
func (t *Triangulation) makeInitialCells(s [4]int) error {
	pts := t.points
	if geometry3D.Orient(pts[s[0]], pts[s[1]], pts[s[2]], pts[s[3]]) < 0 {
		s[0], s[1] = s[1], s[0]
	}
	ids := []int{t.newCell(s)}
	for k := 0; k < 4; k++ {
		v := s
		v[k] = Infinite
		// the hull facet faces away from the finite cell
		a, b := (k+1)%4, (k+2)%4
		v[a], v[b] = v[b], v[a]
		ids = append(ids, t.newCell(v))
	}
	clear(t.open)
	for _, c := range ids {
		for i := 0; i < 4; i++ {
			t.pair(c, i)
		}
	}
	if len(t.open) != 0 {
		return errors.Wrapf(types.ErrValidation, "initial simplex left %d unmatched facets", len(t.open))
	}
	t.hint = ids[0]
	return nil
}

func (t *Triangulation) newCell(v [4]int) (id int) {
	c := cell{v: v, n: [4]int{-1, -1, -1, -1}, alive: true}
	if l := len(t.free); l > 0 {
		id = t.free[l-1]
		t.free = t.free[:l-1]
		t.cells[id] = c
		t.mark[id] = 0
		return
	}
	id = len(t.cells)
	t.cells = append(t.cells, c)
	t.mark = append(t.mark, 0)
	return
}

func (t *Triangulation) killCell(id int) {
	t.cells[id].alive = false
	t.free = append(t.free, id)
}

// pair links facet (c, i) with the open facet carrying the same vertices, or
// leaves it open for a later match.
func (t *Triangulation) pair(c, i int) {
	key := t.cells[c].faceKey(i)
	if f, ok := t.open[key]; ok {
		t.cells[c].n[i] = f.cell
		t.cells[f.cell].n[f.face] = c
		delete(t.open, key)
		return
	}
	t.open[key] = facet{cell: c, face: i}
}

// corners returns the positions of the vertices of a cell, with the vertex at
// slot skip replaced by p.
func (t *Triangulation) corners(c, skip int, p r3.Vec) (x [4]r3.Vec) {
	cl := &t.cells[c]
	for i, v := range cl.v {
		if i == skip {
			x[i] = p
		} else {
			x[i] = t.points[v]
		}
	}
	return
}

// orientWith is the orientation of cell c with its vertex at slot i replaced
// by p. The remaining three vertices must be finite.
func (t *Triangulation) orientWith(c, i int, p r3.Vec) int {
	x := t.corners(c, i, p)
	return geometry3D.Orient(x[0], x[1], x[2], x[3])
}

// inSphere is the perturbed in-sphere test of p against finite cell c.
func (t *Triangulation) inSphere(c int, p r3.Vec) int {
	x := t.corners(c, -1, r3.Vec{})
	return geometry3D.InSpherePerturbed(x[0], x[1], x[2], x[3], p)
}
