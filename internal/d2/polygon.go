package d2

import "gonum.org/v1/gonum/spatial/r2"

// Polygon is a closed ring of 2d vertices. The closing edge from the last
// vertex back to the first is implied.
type Polygon []r2.Vec

// Crossings returns the number of polygon edges crossed by a ray cast from p
// towards +X. Edges are half-open in Y so a vertex lying exactly at p.Y is
// counted once.
// See: http://geomalgorithms.com/a03-_inclusion.html
func (poly Polygon) Crossings(p r2.Vec) int {
	n := len(poly)
	crossings := 0
	for i := 0; i < n; i++ {
		a := poly[i]
		b := poly[(i+1)%n]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			// X of the edge at height p.Y.
			x := (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y) + a.X
			if p.X < x {
				crossings++
			}
		}
	}
	return crossings
}

// Contains reports whether p is inside the polygon using the even-odd rule.
func (poly Polygon) Contains(p r2.Vec) bool {
	return poly.Crossings(p)%2 == 1
}
