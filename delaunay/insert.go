package delaunay

import (
	"github.com/pkg/errors"

	"github.com/notargets/godive/types"
)

// insert adds point p with the Bowyer-Watson algorithm: find every cell whose
// circumsphere contains p (the conflict region, a topological ball that is
// star shaped from p), delete those cells and cone the boundary of the hole to
// p.
func (t *Triangulation) insert(p int) error {
	start, same, err := t.locate(p)
	if err != nil {
		return err
	}
	if same >= 0 {
		t.sameAs[p] = same
		t.duplicates++
		return nil
	}
	if !t.inConflict(start, p) {
		return errors.Wrapf(types.ErrValidation,
			"point %d does not conflict with the cell that contains it", p)
	}
	t.findConflicts(start, p)

	type cone struct {
		v         [4]int
		apex      int
		outer     int
		outerSlot int
	}
	cones := make([]cone, len(t.boundary))
	for k, f := range t.boundary {
		cl := &t.cells[f.cell]
		v := cl.v
		v[f.face] = p
		outer := cl.n[f.face]
		cones[k] = cone{v: v, apex: f.face, outer: outer, outerSlot: t.cells[outer].neighborSlot(f.cell)}
	}
	for _, c := range t.conflicts {
		t.killCell(c)
	}

	clear(t.open)
	for _, cn := range cones {
		id := t.newCell(cn.v)
		t.cells[id].n[cn.apex] = cn.outer
		t.cells[cn.outer].n[cn.outerSlot] = id
		for i := 0; i < 4; i++ {
			if i != cn.apex {
				t.pair(id, i)
			}
		}
		t.hint = id
	}
	if len(t.open) != 0 {
		return errors.Wrapf(types.ErrValidation,
			"inserting point %d left %d unmatched facets around its cavity", p, len(t.open))
	}
	return nil
}

/*
locate walks from the last created cell towards point p, crossing any facet
that has p strictly on its far side. The walk stops in a finite cell whose
closure contains p, or in the infinite cell beyond the hull facet it crossed
last. When p coincides with a vertex of the final cell, that vertex is
returned as same, otherwise same is -1. Visibility walks always terminate in a
Delaunay triangulation; the step limit only guards against a corrupted
structure.
*/
func (t *Triangulation) locate(p int) (c, same int, err error) {
	q := t.points[p]
	c = t.hint
	if k := t.cells[c].infiniteSlot(); k >= 0 {
		c = t.cells[c].n[k]
	}
	prev := -1
	for steps := 0; steps <= len(t.cells); steps++ {
		cl := &t.cells[c]
		if cl.infiniteSlot() >= 0 {
			return c, -1, nil
		}
		next := -1
		for i := 0; i < 4; i++ {
			// p is known to be on this side of the facet just crossed
			if cl.n[i] == prev {
				continue
			}
			if t.orientWith(c, i, q) < 0 {
				next = cl.n[i]
				break
			}
		}
		if next < 0 {
			for _, v := range cl.v {
				if t.points[v] == q {
					return c, v, nil
				}
			}
			return c, -1, nil
		}
		prev, c = c, next
	}
	return -1, -1, errors.Wrapf(types.ErrValidation,
		"point location for point %d did not terminate", p)
}

// inConflict reports whether p lies inside the circumsphere of cell c. For an
// infinite cell the circumsphere degenerates to the open half space beyond
// its hull facet; on the facet plane itself the answer is the one of the
// finite cell on the other side of the facet.
func (t *Triangulation) inConflict(c, p int) bool {
	q := t.points[p]
	cl := &t.cells[c]
	if k := cl.infiniteSlot(); k >= 0 {
		if o := t.orientWith(c, k, q); o != 0 {
			return o > 0
		}
		return t.inSphere(cl.n[k], q) > 0
	}
	return t.inSphere(c, q) > 0
}

// findConflicts collects the conflict region of p, grown from start, into
// t.conflicts and its boundary facets, seen from inside, into t.boundary.
func (t *Triangulation) findConflicts(start, p int) {
	t.stamp += 2
	if t.stamp < 2 {
		// wrapped around; clear stale marks
		clear(t.mark)
		t.stamp = 2
	}
	in, out := t.stamp, t.stamp+1

	t.stack = append(t.stack[:0], start)
	t.conflicts = t.conflicts[:0]
	t.boundary = t.boundary[:0]
	t.mark[start] = in
	for len(t.stack) > 0 {
		c := t.stack[len(t.stack)-1]
		t.stack = t.stack[:len(t.stack)-1]
		t.conflicts = append(t.conflicts, c)
		for i := 0; i < 4; i++ {
			nb := t.cells[c].n[i]
			switch t.mark[nb] {
			case in:
				continue
			case out:
				t.boundary = append(t.boundary, facet{cell: c, face: i})
				continue
			}
			if t.inConflict(nb, p) {
				t.mark[nb] = in
				t.stack = append(t.stack, nb)
			} else {
				t.mark[nb] = out
				t.boundary = append(t.boundary, facet{cell: c, face: i})
			}
		}
	}
}
