package delaunay

import (
	"iter"
	"math"
	"slices"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/godive/geometry3D"
	"github.com/notargets/godive/types"
)

// Offset is a translation by whole box sizes along each axis.
type Offset [3]int8

func (o Offset) IsZero() bool { return o == Offset{} }

func (o Offset) Add(p Offset) Offset {
	return Offset{o[0] + p[0], o[1] + p[1], o[2] + p[2]}
}

func (o Offset) Neg() Offset { return Offset{-o[0], -o[1], -o[2]} }

// Vec is the translation vector of the offset for a box of the given size.
func (o Offset) Vec(size float64) r3.Vec {
	return r3.Vec{X: float64(o[0]) * size, Y: float64(o[1]) * size, Z: float64(o[2]) * size}
}

// Lift is a periodic copy of input point Index, translated by Offset.
type Lift struct {
	Index  int
	Offset Offset
}

func compareLift(a, b Lift) int {
	if a.Index != b.Index {
		if a.Index < b.Index {
			return -1
		}
		return 1
	}
	for i := range a.Offset {
		if a.Offset[i] != b.Offset[i] {
			if a.Offset[i] < b.Offset[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// translated returns the lifts moved by shift, sorted.
func translated(lifts []Lift, shift Offset) []Lift {
	out := make([]Lift, len(lifts))
	for i, l := range lifts {
		out[i] = Lift{Index: l.Index, Offset: l.Offset.Add(shift)}
	}
	slices.SortFunc(out, compareLift)
	return out
}

/*
CanonicalShift picks the representative of a simplex among all its lattice
translates. Only translations that move one of the lifts to offset zero are
candidates, and the winner is the one whose sorted lift list is the
lexicographically smallest. The returned shift moves lifts onto that
representative, so a simplex is canonical exactly when its shift is zero.
*/
func CanonicalShift(lifts []Lift) (shift Offset) {
	var best []Lift
	for _, l := range lifts {
		s := l.Offset.Neg()
		cand := translated(lifts, s)
		if best == nil || slices.CompareFunc(cand, best, compareLift) < 0 {
			best, shift = cand, s
		}
	}
	return
}

/*
PeriodicTriangulation is the Delaunay triangulation of a point set on the
3-torus obtained by identifying opposite faces of a cubic domain.

It is represented by the ordinary triangulation of a cover: the input points
together with every lattice translate (offsets in {-1,0,1}^3) that lies
within margin of the domain. Cells of the cover that lie well inside the
covered region are cells of the torus triangulation; each class of
translated cells is reported once, by its canonical representative.
*/
type PeriodicTriangulation struct {
	domain geometry3D.Domain
	margin float64
	n      int
	lifts  []Lift
	cover  *Triangulation
}

/*
NewPeriodic builds the periodic triangulation of points in domain. A margin
of zero selects the full box size, which keeps all 27 copies of the points.
Input points are used as given; they are not folded into the domain first.
*/
func NewPeriodic(points []r3.Vec, domain geometry3D.Domain, margin float64) (pt *PeriodicTriangulation, err error) {
	if err = domain.Validate(); err != nil {
		return
	}
	size := domain.Size()
	if math.IsNaN(margin) || margin < 0 || margin > size {
		err = errors.Wrapf(types.ErrConfig, "periodic margin %g is outside [0, %g]", margin, size)
		return
	}
	if margin == 0 {
		margin = size
	}
	pt = &PeriodicTriangulation{domain: domain, margin: margin, n: len(points)}

	var (
		lo, hi = domain.Min - margin, domain.Max + margin
		cover  = make([]r3.Vec, 0, 2*len(points))
	)
	inside := func(p r3.Vec) bool {
		return p.X >= lo && p.X <= hi && p.Y >= lo && p.Y <= hi && p.Z >= lo && p.Z <= hi
	}
	for _, off := range latticeOffsets() {
		shift := off.Vec(size)
		for i, p := range points {
			q := r3.Add(p, shift)
			if off.IsZero() || inside(q) {
				cover = append(cover, q)
				pt.lifts = append(pt.lifts, Lift{Index: i, Offset: off})
			}
		}
	}
	if pt.cover, err = New(cover); err != nil {
		return nil, err
	}
	for v := range cover {
		w := pt.cover.SameAs(v)
		if w >= 0 && pt.lifts[v].Offset != pt.lifts[w].Offset {
			return nil, errors.Wrapf(types.ErrValidation,
				"point %d coincides with a periodic image of point %d",
				pt.lifts[v].Index, pt.lifts[w].Index)
		}
	}
	return
}

// latticeOffsets lists the 27 offsets of {-1,0,1}^3, zero first.
func latticeOffsets() []Offset {
	offsets := []Offset{{}}
	for i := int8(-1); i <= 1; i++ {
		for j := int8(-1); j <= 1; j++ {
			for k := int8(-1); k <= 1; k++ {
				if o := (Offset{i, j, k}); !o.IsZero() {
					offsets = append(offsets, o)
				}
			}
		}
	}
	return offsets
}

func (pt *PeriodicTriangulation) Domain() geometry3D.Domain { return pt.domain }

// Margin is the width of the covered region around the domain.
func (pt *PeriodicTriangulation) Margin() float64 { return pt.margin }

// CoverSize counts the points of the cover, translates included.
func (pt *PeriodicTriangulation) CoverSize() int { return len(pt.lifts) }

// Duplicates counts the input points skipped as exact copies of an earlier
// input point.
func (pt *PeriodicTriangulation) Duplicates() (count int) {
	for i := 0; i < pt.n; i++ {
		if pt.cover.SameAs(i) >= 0 {
			count++
		}
	}
	return
}

func (pt *PeriodicTriangulation) cellLifts(c int) (lifts [4]Lift) {
	for i, v := range pt.cover.cells[c].v {
		lifts[i] = pt.lifts[v]
	}
	return
}

// canonicalCells visits the finite cover cells that are canonical
// representatives of their class.
func (pt *PeriodicTriangulation) canonicalCells() iter.Seq2[int, [4]Lift] {
	return func(yield func(int, [4]Lift) bool) {
		t := pt.cover
		for c := range t.cells {
			cl := &t.cells[c]
			if !cl.alive || cl.infiniteSlot() >= 0 {
				continue
			}
			lifts := pt.cellLifts(c)
			if !CanonicalShift(lifts[:]).IsZero() {
				continue
			}
			if !yield(c, lifts) {
				return
			}
		}
	}
}

// Cells yields one cell per class of lattice translates. Vertices are input
// point indices and Offsets their lattice translation; at least one offset of
// every cell is zero.
func (pt *PeriodicTriangulation) Cells() iter.Seq[Tetra] {
	return func(yield func(Tetra) bool) {
		for c, lifts := range pt.canonicalCells() {
			tet := pt.cover.tetra(c)
			for i, l := range lifts {
				tet.Vertices[i], tet.Offsets[i] = l.Index, l.Offset
			}
			if !yield(tet) {
				return
			}
		}
	}
}

// NumberOfCells counts the cells yielded by Cells.
func (pt *PeriodicTriangulation) NumberOfCells() (count int) {
	for range pt.canonicalCells() {
		count++
	}
	return
}

/*
Validate checks the cover triangulation, then the torus triangulation read
off it:

	every canonical cell has its circumsphere inside the covered region, so no
	point missing from the cover can lie inside it
	no class of cells is reported twice
	every class of facets is shared by exactly two reported cells

A point set too sparse for the margin fails the first check.
*/
func (pt *PeriodicTriangulation) Validate() error {
	if err := pt.cover.Validate(); err != nil {
		return err
	}
	if d := pt.cover.Dimension(); d < 3 {
		return errors.Wrapf(types.ErrValidation, "periodic cover has dimension %d", d)
	}
	var (
		size   = pt.domain.Size()
		tol    = 1e-9 * size
		lo, hi = pt.domain.Min - pt.margin - tol, pt.domain.Max + pt.margin + tol
		cells  = make(map[[4]Lift]int)
		facets = make(map[[3]Lift]int)
	)
	for c, lifts := range pt.canonicalCells() {
		tet := pt.cover.tetra(c)
		cs, err := geometry3D.NewCircumsphere(tet.Corners)
		if err != nil {
			return errors.Wrapf(types.ErrValidation, "cell %v: %v", lifts, err)
		}
		for _, x := range [3]float64{cs.Center.X, cs.Center.Y, cs.Center.Z} {
			if x-cs.Radius < lo || x+cs.Radius > hi {
				return errors.Wrapf(types.ErrValidation,
					"circumsphere of cell %v (center %v, radius %g) leaves the periodic cover, "+
						"the points are too sparse for margin %g", lifts, cs.Center, cs.Radius, pt.margin)
			}
		}
		key := [4]Lift(translated(lifts[:], Offset{}))
		if prev, ok := cells[key]; ok {
			return errors.Wrapf(types.ErrValidation, "cells %d and %d are the same periodic cell %v", prev, c, key)
		}
		cells[key] = c
		for i := 0; i < 4; i++ {
			face := make([]Lift, 0, 3)
			for j, l := range lifts {
				if j != i {
					face = append(face, l)
				}
			}
			facets[[3]Lift(translated(face, CanonicalShift(face)))]++
		}
	}
	if len(cells) == 0 {
		return errors.Wrapf(types.ErrValidation, "periodic triangulation has no cells")
	}
	for key, count := range facets {
		if count != 2 {
			return errors.Wrapf(types.ErrValidation, "periodic facet %v is shared by %d cells", key, count)
		}
	}
	return nil
}
