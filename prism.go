package mathutils

import (
	"fmt"

	"github.com/StudioRailgun/MathUtils/internal/d2"
	"github.com/StudioRailgun/MathUtils/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// Prism is a vertical extrusion of a polygon lying in a horizontal plane.
// The base polygon sits at y = Floor() and the prism extends upwards by
// Height(). Create prisms with NewPrism so the base is validated once.
type Prism struct {
	base   []r3.Vec
	xz     d2.Polygon // base projected onto the X-Z plane
	floor  float64
	height float64
}

// NewPrism returns a prism extruded from base by height. The base needs at
// least 3 vertices, all sharing the same y coordinate, and height must be
// positive. The base slice is copied.
func NewPrism(base []r3.Vec, height float64) (Prism, error) {
	if !(height > 0) {
		return Prism{}, fmt.Errorf("%w: height %g <= 0", ErrInvalidPrism, height)
	}
	if len(base) < 3 {
		return Prism{}, fmt.Errorf("%w: %d base vertices < 3", ErrInvalidPrism, len(base))
	}
	floor := base[0].Y
	for i := 1; i < len(base); i++ {
		if base[i].Y != floor {
			return Prism{}, fmt.Errorf("%w: base vertex %d at y=%g not aligned with y=%g", ErrInvalidPrism, i, base[i].Y, floor)
		}
	}
	pr := Prism{
		base:   append([]r3.Vec(nil), base...),
		xz:     make(d2.Polygon, len(base)),
		floor:  floor,
		height: height,
	}
	for i, v := range base {
		pr.xz[i] = d3.XZ(v)
	}
	return pr, nil
}

// MustPrism is like NewPrism but panics if the prism is malformed.
func MustPrism(base []r3.Vec, height float64) Prism {
	pr, err := NewPrism(base, height)
	if err != nil {
		panic(err)
	}
	return pr
}

// Contains reports whether p is within the prism. Points on the floor or
// ceiling plane count as inside. Horizontal containment uses the crossing
// number of the base polygon in the X-Z plane.
func (pr Prism) Contains(p r3.Vec) bool {
	if p.Y < pr.floor || p.Y > pr.floor+pr.height {
		return false
	}
	return pr.xz.Contains(d3.XZ(p))
}

// Floor returns the y coordinate of the base.
func (pr Prism) Floor() float64 { return pr.floor }

// Height returns the extrusion height.
func (pr Prism) Height() float64 { return pr.height }

// Base returns a copy of the base vertices.
func (pr Prism) Base() []r3.Vec { return append([]r3.Vec(nil), pr.base...) }

// Bounds returns the bounding box of the prism.
func (pr Prism) Bounds() r3.Box {
	set := d3.Set(pr.base)
	max := set.Max()
	max.Y = pr.floor + pr.height
	return r3.Box{Min: set.Min(), Max: max}
}

// PointInPrism reports whether p is inside the prism extruded from base by
// height. It validates the prism on every call; callers testing many points
// against one prism should build it once with NewPrism.
func PointInPrism(p r3.Vec, base []r3.Vec, height float64) (bool, error) {
	pr, err := NewPrism(base, height)
	if err != nil {
		return false, err
	}
	return pr.Contains(p), nil
}
