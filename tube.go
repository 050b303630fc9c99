package mathutils

import (
	"math"

	"github.com/StudioRailgun/MathUtils/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// Tube is the region within Radius of the segment Start-End.
// A tube with Start == End is a sphere around Start.
type Tube struct {
	Start  r3.Vec
	End    r3.Vec
	Radius float64
}

// Contains reports whether p is closer than the tube radius to its segment.
func (t Tube) Contains(p r3.Vec) bool {
	return PointNearSegment(p, t.Start, t.End, t.Radius)
}

// IntersectsBox reports whether the tube touches the axis aligned box b.
func (t Tube) IntersectsBox(b r3.Box) bool {
	return BoxIntersectsTube(b, t.Start, t.End, t.Radius)
}

// Bounds returns the bounding box of the tube.
func (t Tube) Bounds() r3.Box {
	bb := d3.Box{Min: t.Start, Max: t.Start}.Include(t.End)
	return r3.Box(bb.Enlarge(d3.Elem(2 * t.Radius)))
}

// DistanceToSegment returns the distance from p to the nearest point of the
// line segment a-b. The projection of p onto the line is clamped to the
// segment so points past either end are measured to that endpoint.
func DistanceToSegment(p, a, b r3.Vec) float64 {
	ab := r3.Sub(b, a)
	ap := r3.Sub(p, a)
	abLen2 := r3.Norm2(ab)
	if abLen2 == 0 {
		return r3.Norm(ap)
	}
	t := Clamp(r3.Dot(ap, ab)/abLen2, 0, 1)
	return r3.Norm(r3.Sub(ap, r3.Scale(t, ab)))
}

// PointNearSegment reports whether p lies strictly closer than radius to the
// segment a-b.
func PointNearSegment(p, a, b r3.Vec, radius float64) bool {
	return DistanceToSegment(p, a, b) < radius
}

// BoxIntersectsTube reports whether the tube of the given radius around the
// segment start-end touches box. The box is inflated by radius on every axis
// and the segment is clipped against it, so near the box's edges and corners
// the test is conservative (the inflated box has square corners).
func BoxIntersectsTube(box r3.Box, start, end r3.Vec, radius float64) bool {
	inflated := d3.Box(box).Enlarge(d3.Elem(2 * radius))
	clip, _, _ := ClipSegmentBox(start, end, r3.Box(inflated))
	return clip != Outside
}

// SegmentClip is the result of clipping a line segment against a box.
type SegmentClip int8

const (
	// Outside means the segment does not touch the box.
	Outside SegmentClip = iota
	// SegmentInside means both segment endpoints are inside the box.
	SegmentInside
	// OneIntersection means one endpoint is inside the box and the segment
	// crosses the box boundary once.
	OneIntersection
	// TwoIntersections means the segment enters and exits the box.
	TwoIntersections
)

func (c SegmentClip) String() string {
	switch c {
	case Outside:
		return "outside"
	case SegmentInside:
		return "inside"
	case OneIntersection:
		return "one intersection"
	case TwoIntersections:
		return "two intersections"
	}
	return "SegmentClip(?)"
}

// ClipSegmentBox clips the segment a-b, parametrised as a + t*(b-a) with t in
// [0,1], against the slabs of box. When the result is not Outside, tNear and
// tFar hold the entry and exit parameters. For OneIntersection both are the
// parameter of the single boundary crossing. For SegmentInside they are the
// parameters where the infinite line would cross the box, which may be
// infinite for degenerate segments.
func ClipSegmentBox(a, b r3.Vec, box r3.Box) (clip SegmentClip, tNear, tFar float64) {
	origin := d3.Array(a)
	dir := d3.Array(r3.Sub(b, a))
	lo, hi := d3.Array(box.Min), d3.Array(box.Max)
	tNear, tFar = math.Inf(-1), math.Inf(1)
	for i := range dir {
		if dir[i] == 0 {
			// Parallel to this slab: reject if outside of it.
			if origin[i] < lo[i] || origin[i] > hi[i] {
				return Outside, 0, 0
			}
			continue
		}
		inv := 1 / dir[i]
		t1 := (lo[i] - origin[i]) * inv
		t2 := (hi[i] - origin[i]) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tNear = math.Max(tNear, t1)
		tFar = math.Min(tFar, t2)
		if tNear > tFar {
			return Outside, 0, 0
		}
	}
	if tNear > 1 || tFar < 0 {
		return Outside, 0, 0
	}
	switch {
	case tNear >= 0 && tFar > 1:
		return OneIntersection, tNear, tNear
	case tNear < 0 && tFar <= 1:
		return OneIntersection, tFar, tFar
	case tNear < 0 && tFar > 1:
		return SegmentInside, tNear, tFar
	}
	return TwoIntersections, tNear, tFar
}
