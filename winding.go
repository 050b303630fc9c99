package mathutils

import "fmt"

// Winding is the rotational order of a triangle's vertices seen from above
// (looking down the Y axis onto the X-Z plane).
type Winding int8

const (
	// Degenerate triangles have zero area in the X-Z plane.
	Degenerate Winding = iota
	Clockwise
	CounterClockwise
)

func (w Winding) String() string {
	switch w {
	case Degenerate:
		return "degenerate"
	case Clockwise:
		return "clockwise"
	case CounterClockwise:
		return "counter-clockwise"
	}
	return "Winding(?)"
}

// ClassifyWinding returns the winding of every triangle in an indexed mesh.
// verts is a packed xyz vertex buffer and indices holds three vertex
// indices per triangle.
func ClassifyWinding(verts []float32, indices []int) ([]Winding, error) {
	if err := checkTriangles(verts, indices); err != nil {
		return nil, err
	}
	windings := make([]Winding, 0, len(indices)/3)
	for i := 0; i < len(indices); i += 3 {
		area := signedAreaXZ(verts, indices[i], indices[i+1], indices[i+2])
		switch {
		case area < 0:
			windings = append(windings, Clockwise)
		case area > 0:
			windings = append(windings, CounterClockwise)
		default:
			windings = append(windings, Degenerate)
		}
	}
	return windings, nil
}

// IsClockwise reports whether no triangle of the indexed mesh is wound
// counter-clockwise. It stops at the first counter-clockwise triangle.
// Degenerate triangles do not make the result false, and a mesh mixing
// clockwise and degenerate triangles is reported as clockwise; use
// ClassifyWinding to tell these apart.
func IsClockwise(verts []float32, indices []int) (bool, error) {
	if err := checkTriangles(verts, indices); err != nil {
		return false, err
	}
	for i := 0; i < len(indices); i += 3 {
		if signedAreaXZ(verts, indices[i], indices[i+1], indices[i+2]) > 0 {
			return false, nil
		}
	}
	return true, nil
}

// signedAreaXZ returns twice the signed area of triangle abc projected onto
// the X-Z plane. Each product is rounded to float32 on its own so the sign
// does not depend on whether the platform fuses multiply-adds.
func signedAreaXZ(verts []float32, a, b, c int) float32 {
	ax, az := verts[3*a], verts[3*a+2]
	bx, bz := verts[3*b], verts[3*b+2]
	cx, cz := verts[3*c], verts[3*c+2]
	return float32((bx-ax)*(cz-az)) - float32((cx-ax)*(bz-az))
}

func checkTriangles(verts []float32, indices []int) error {
	if len(verts)%3 != 0 {
		return fmt.Errorf("%w: vertex buffer length %d not a multiple of 3", ErrInvalidMesh, len(verts))
	}
	if len(indices)%3 != 0 {
		return fmt.Errorf("%w: index count %d not a multiple of 3", ErrInvalidMesh, len(indices))
	}
	nv := len(verts) / 3
	for i, idx := range indices {
		if idx < 0 || idx >= nv {
			return fmt.Errorf("%w: index %d at position %d out of range [0,%d)", ErrInvalidMesh, idx, i, nv)
		}
	}
	return nil
}
