package delaunay

import (
	"github.com/pkg/errors"

	"github.com/notargets/godive/types"
)

/*
Validate checks the combinatorial and geometric consistency of the
triangulation:

	every neighbor is a live cell that points back through the same facet
	every facet is shared by exactly two cells
	no cell repeats a vertex and every finite cell is positively oriented
	every input point that is not a duplicate is a vertex
	no vertex lies inside the circumsphere of the cell across a facet, and
	the hull is convex

Any failure wraps types.ErrValidation.
*/
func (t *Triangulation) Validate() error {
	if t.dimension < 3 {
		for c := range t.cells {
			if t.cells[c].alive {
				return errors.Wrapf(types.ErrValidation,
					"triangulation of dimension %d has live cell %d", t.dimension, c)
			}
		}
		return nil
	}
	if err := t.validateTopology(); err != nil {
		return err
	}
	if err := t.validateVertices(); err != nil {
		return err
	}
	return t.validateDelaunay()
}

func (t *Triangulation) validateTopology() error {
	var (
		faceCount = make(map[types.FaceKey]int)
		finite    int
	)
	for c := range t.cells {
		cl := &t.cells[c]
		if !cl.alive {
			continue
		}
		infinite := 0
		for i := 0; i < 4; i++ {
			if cl.v[i] == Infinite {
				infinite++
			} else if cl.v[i] < 0 || cl.v[i] >= len(t.points) {
				return errors.Wrapf(types.ErrValidation, "cell %d has invalid vertex %d", c, cl.v[i])
			}
			for j := i + 1; j < 4; j++ {
				if cl.v[i] == cl.v[j] {
					return errors.Wrapf(types.ErrValidation, "cell %d repeats vertex %d", c, cl.v[i])
				}
			}
		}
		switch infinite {
		case 0:
			finite++
			if t.orientWith(c, 0, t.points[cl.v[0]]) <= 0 {
				return errors.Wrapf(types.ErrValidation, "cell %d %v is not positively oriented", c, cl.v)
			}
		case 1:
		default:
			return errors.Wrapf(types.ErrValidation, "cell %d has %d infinite vertices", c, infinite)
		}
		for i, nb := range cl.n {
			if nb < 0 || nb >= len(t.cells) || !t.cells[nb].alive {
				return errors.Wrapf(types.ErrValidation, "cell %d has invalid neighbor %d across facet %d", c, nb, i)
			}
			j := t.cells[nb].neighborSlot(c)
			if j < 0 {
				return errors.Wrapf(types.ErrValidation, "neighbor %d of cell %d does not point back", nb, c)
			}
			if cl.faceKey(i) != t.cells[nb].faceKey(j) {
				return errors.Wrapf(types.ErrValidation,
					"cells %d and %d disagree on their shared facet: %v != %v",
					c, nb, cl.faceKey(i), t.cells[nb].faceKey(j))
			}
			faceCount[cl.faceKey(i)]++
		}
	}
	if finite == 0 {
		return errors.Wrapf(types.ErrValidation, "triangulation of dimension 3 has no finite cells")
	}
	for key, count := range faceCount {
		if count != 2 {
			return errors.Wrapf(types.ErrValidation, "facet %v is shared by %d cells", key.GetVertices(), count)
		}
	}
	return nil
}

func (t *Triangulation) validateVertices() error {
	used := make([]bool, len(t.points))
	for c := range t.cells {
		if !t.cells[c].alive {
			continue
		}
		for _, v := range t.cells[c].v {
			if v != Infinite {
				used[v] = true
			}
		}
	}
	for i, u := range used {
		if dup := t.sameAs[i] >= 0; u == dup {
			if u {
				return errors.Wrapf(types.ErrValidation, "duplicate point %d is a vertex", i)
			}
			return errors.Wrapf(types.ErrValidation, "point %d is not a vertex of any cell", i)
		}
	}
	return nil
}

func (t *Triangulation) validateDelaunay() error {
	for c := range t.cells {
		cl := &t.cells[c]
		if !cl.alive {
			continue
		}
		k := cl.infiniteSlot()
		for i, nb := range cl.n {
			w := t.cells[nb].v[t.cells[nb].neighborSlot(c)]
			switch {
			case w == Infinite:
				// checked from the infinite side
			case k < 0:
				if t.inSphere(c, t.points[w]) > 0 {
					return errors.Wrapf(types.ErrValidation,
						"point %d lies inside the circumsphere of cell %d", w, c)
				}
			case i == k:
				if t.orientWith(c, k, t.points[w]) >= 0 {
					return errors.Wrapf(types.ErrValidation,
						"cell %d is not on the inner side of hull facet %v", nb, cl.faceKey(k))
				}
			default:
				o := t.orientWith(c, k, t.points[w])
				if o > 0 || (o == 0 && t.inSphere(cl.n[k], t.points[w]) > 0) {
					return errors.Wrapf(types.ErrValidation,
						"hull is not convex at facet %v, point %d", cl.faceKey(k), w)
				}
			}
		}
	}
	return nil
}
