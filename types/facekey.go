package types

import "sort"

/*
FaceKey stores the three vertices of a triangular facet in ascending order so
that the same facet seen from either of its two cells compares equal. Vertex
indices may be negative, which is how the point at infinity is stored.
*/
type FaceKey [3]int

func NewFaceKey(verts [3]int) (fk FaceKey) {
	fk = FaceKey(verts)
	sort.Ints(fk[:])
	return
}

func (fk FaceKey) GetVertices() (verts [3]int) {
	return [3]int(fk)
}

// Contains reports whether v is one of the facet vertices
func (fk FaceKey) Contains(v int) bool {
	return fk[0] == v || fk[1] == v || fk[2] == v
}
