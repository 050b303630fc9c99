package mathutils

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Number is the set of scalar types the box distance routines are generic over.
type Number interface {
	~int | ~int32 | ~int64 | ~float32 | ~float64
}

// Axis is the position of a coordinate relative to a box's extent on one axis.
type Axis uint8

const (
	// Inside means the coordinate lies between the box's min and max.
	Inside Axis = iota
	// Below means the coordinate is outside (or on a face) and nearer to min.
	Below
	// Above means the coordinate is outside (or on a face) and nearer to max.
	Above
)

func (a Axis) String() string {
	switch a {
	case Inside:
		return "inside"
	case Below:
		return "below"
	case Above:
		return "above"
	}
	return "Axis(?)"
}

// classifyAxis places p relative to [lo, hi]. Strict classification only
// reports Inside for lo < p < hi, so a coordinate on a face is measured
// to that face. Inclusive classification treats the faces as inside.
// Ties between lo and hi resolve to Above.
func classifyAxis[T Number](p, lo, hi T, inclusive bool) Axis {
	if inclusive {
		if p >= lo && p <= hi {
			return Inside
		}
	} else if p > lo && p < hi {
		return Inside
	}
	if abs(p-lo) < abs(p-hi) {
		return Below
	}
	return Above
}

// axisOffset returns the signed offset from p to the nearest coordinate of
// [lo, hi] chosen by classifyAxis, together with the classification.
func axisOffset[T Number](p, lo, hi T, inclusive bool) (T, Axis) {
	ax := classifyAxis(p, lo, hi, inclusive)
	switch ax {
	case Below:
		return p - lo, ax
	case Above:
		return p - hi, ax
	}
	return 0, ax
}

// boxDist2 is the squared distance from p to the box [lo, hi] summed over
// the three axes in X, Y, Z order.
func boxDist2[T Number](p, lo, hi [3]T, inclusive bool) T {
	dx, _ := axisOffset(p[0], lo[0], hi[0], inclusive)
	dy, _ := axisOffset(p[1], lo[1], hi[1], inclusive)
	dz, _ := axisOffset(p[2], lo[2], hi[2], inclusive)
	return dx*dx + dy*dy + dz*dz
}

func abs[T Number](x T) T {
	if x < 0 {
		return -x
	}
	return x
}

// ClassifyBox returns the strict per-axis classification of p against b used
// by DistanceToBox. A coordinate exactly on a face is not Inside.
func ClassifyBox(p r3.Vec, b r3.Box) [3]Axis {
	return [3]Axis{
		classifyAxis(p.X, b.Min.X, b.Max.X, false),
		classifyAxis(p.Y, b.Min.Y, b.Max.Y, false),
		classifyAxis(p.Z, b.Min.Z, b.Max.Z, false),
	}
}

// ClassifyBoxI returns the inclusive per-axis classification of p against b
// used by ApproxDistanceToBox. A coordinate exactly on a face is Inside.
func ClassifyBoxI(p V3i, b BoxI) [3]Axis {
	return [3]Axis{
		classifyAxis(p[0], b.Min[0], b.Max[0], true),
		classifyAxis(p[1], b.Min[1], b.Max[1], true),
		classifyAxis(p[2], b.Min[2], b.Max[2], true),
	}
}

// DistanceToBox returns the Euclidean distance from p to the nearest point of
// the axis aligned box b. It is zero for points strictly inside b. Points on
// a face are measured to that face, which is also zero.
func DistanceToBox(p r3.Vec, b r3.Box) float64 {
	return math.Sqrt(DistanceToBoxSquared(p, b))
}

// DistanceToBoxSquared returns the squared distance from p to the nearest
// point of b. Use it where only relative ordering of distances matters.
func DistanceToBoxSquared(p r3.Vec, b r3.Box) float64 {
	return boxDist2(
		[3]float64{p.X, p.Y, p.Z},
		[3]float64{b.Min.X, b.Min.Y, b.Min.Z},
		[3]float64{b.Max.X, b.Max.Y, b.Max.Z},
		false,
	)
}

// DistanceToBoxSquaredI returns the exact squared distance from the integer
// point p to the integer box b. Points on a face of b are at distance 0.
func DistanceToBoxSquaredI(p V3i, b BoxI) int64 {
	return boxDist2(p.int64s(), b.Min.int64s(), b.Max.int64s(), true)
}

// ApproxDistanceToBox returns the distance from the integer point p to the
// integer box b. Faces of b count as inside.
//
// The result is an approximation once p is far from the box: if the X offset
// and then the Y offset is larger than SimplificationCutoff, that single axis
// offset is returned instead of the full distance. The Z axis is never
// short-circuited. Below the cutoff the result is exact.
func ApproxDistanceToBox(p V3i, b BoxI) float64 {
	pi, lo, hi := p.int64s(), b.Min.int64s(), b.Max.int64s()
	for axis := 0; axis < 2; axis++ {
		d, ax := axisOffset(pi[axis], lo[axis], hi[axis], true)
		if ax != Inside && abs(d) > SimplificationCutoff {
			return float64(abs(d))
		}
	}
	return math.Sqrt(float64(boxDist2(pi, lo, hi, true)))
}

// DistanceToBoxUnrolled returns the squared distance from point (x,y,z) to
// the box spanning (minX,minY,minZ)-(maxX,maxY,maxZ). It takes the scalar
// components directly so hot loops need not build vector or box values.
// The result equals DistanceToBoxSquared on the same coordinates as long as
// the squared distance is below 2^53.
func DistanceToBoxUnrolled(x, y, z, minX, minY, minZ, maxX, maxY, maxZ int) float64 {
	dx, _ := axisOffset(int64(x), int64(minX), int64(maxX), false)
	dy, _ := axisOffset(int64(y), int64(minY), int64(maxY), false)
	dz, _ := axisOffset(int64(z), int64(minZ), int64(maxZ), false)
	return float64(dx*dx + dy*dy + dz*dz)
}
