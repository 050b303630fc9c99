package mathutils

import (
	"fmt"
	"iter"
	"math"

	"github.com/StudioRailgun/MathUtils/internal/d3"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// SplineKind selects the characteristic (basis) matrix of a Spline.
type SplineKind uint8

const (
	// CatmullRom splines pass through every interior control point.
	CatmullRom SplineKind = iota
	// Bezier uses the cubic Bernstein basis over each window of 4 points.
	Bezier
	// BSpline is the uniform cubic basis spline. It approximates its
	// control points and is C2 continuous.
	BSpline
)

func (k SplineKind) String() string {
	switch k {
	case CatmullRom:
		return "catmull-rom"
	case Bezier:
		return "bezier"
	case BSpline:
		return "b-spline"
	}
	return "SplineKind(?)"
}

// Characteristic matrices, rows are the coefficients of 1, u, u^2, u^3.
// The B-spline matrix is left unscaled: its weights sum to 6 and the
// homogeneous divide in Evaluate normalizes them.
var (
	catmullRomBasis = mat.NewDense(4, 4, []float64{
		0, 1, 0, 0,
		-0.5, 0, 0.5, 0,
		1, -2.5, 2, -0.5,
		-0.5, 1.5, -1.5, 0.5,
	})
	bezierBasis = mat.NewDense(4, 4, []float64{
		1, 0, 0, 0,
		-3, 3, 0, 0,
		3, -6, 3, 0,
		-1, 3, -3, 1,
	})
	bSplineBasis = mat.NewDense(4, 4, []float64{
		1, 4, 1, 0,
		-3, 0, 3, 0,
		3, -6, 3, 0,
		-1, 3, -3, 1,
	})
)

func (k SplineKind) basis() (*mat.Dense, error) {
	switch k {
	case CatmullRom:
		return catmullRomBasis, nil
	case Bezier:
		return bezierBasis, nil
	case BSpline:
		return bSplineBasis, nil
	}
	return nil, fmt.Errorf("unknown spline kind %d", k)
}

// Spline is a piecewise cubic curve through an ordered list of control
// points. The control point at slice index i sits at parameter t = i.
// The curve is open: at its two ends missing neighbours are extrapolated
// by mirroring, so callers need not supply phantom points.
//
// A Spline is not internally synchronized. Calls to AddPoint and
// RemovePoint must be serialized by the caller; concurrent Evaluate calls
// are safe once mutation has ceased.
type Spline struct {
	kind   SplineKind
	basis  *mat.Dense
	points []r3.Vec
}

// NewSpline returns a spline of the given kind with the given control
// points in parameter order. Duplicate points are rejected.
func NewSpline(kind SplineKind, points ...r3.Vec) (*Spline, error) {
	basis, err := kind.basis()
	if err != nil {
		return nil, err
	}
	s := &Spline{
		kind:   kind,
		basis:  basis,
		points: make([]r3.Vec, 0, len(points)),
	}
	for _, p := range points {
		if err := s.AddPoint(p); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// MustSpline is like NewSpline but panics on error.
func MustSpline(kind SplineKind, points ...r3.Vec) *Spline {
	s, err := NewSpline(kind, points...)
	if err != nil {
		panic(err)
	}
	return s
}

// CatmullRomSpline returns a Catmull-Rom spline through points.
func CatmullRomSpline(points ...r3.Vec) (*Spline, error) {
	return NewSpline(CatmullRom, points...)
}

// Kind returns the basis the spline was created with.
func (s *Spline) Kind() SplineKind { return s.kind }

// Len returns the number of control points.
func (s *Spline) Len() int { return len(s.points) }

// Points returns a copy of the control points in parameter order.
func (s *Spline) Points() []r3.Vec {
	return append([]r3.Vec(nil), s.points...)
}

// ContainsPoint reports whether p is exactly equal to one of the control points.
func (s *Spline) ContainsPoint(p r3.Vec) bool {
	return s.index(p) >= 0
}

// AddPoint appends p at the next integer parameter. It returns
// ErrDuplicatePoint if p is exactly equal to an existing control point.
func (s *Spline) AddPoint(p r3.Vec) error {
	if i := s.index(p); i >= 0 {
		return fmt.Errorf("%w: %v at index %d", ErrDuplicatePoint, p, i)
	}
	s.points = append(s.points, p)
	return nil
}

// RemovePoint removes the control point exactly equal to p, if any, and
// reports whether one was removed. Remaining points are renumbered from
// zero, so every point after the removed one moves to the parameter one
// lower than before.
func (s *Spline) RemovePoint(p r3.Vec) bool {
	i := s.index(p)
	if i < 0 {
		return false
	}
	points := make([]r3.Vec, 0, len(s.points)-1)
	points = append(points, s.points[:i]...)
	s.points = append(points, s.points[i+1:]...)
	return true
}

func (s *Spline) index(p r3.Vec) int {
	for i, v := range s.points {
		if v == p {
			return i
		}
	}
	return -1
}

// Evaluate returns the position of the curve at parameter t. t must lie in
// [0, Len()-1) and the spline needs at least 2 control points.
//
// The 4 points blended for t are the control points at floor(t) and ceil(t)
// plus their outer neighbours. Before the first and after the last control
// point the neighbour is the mirror image p2 + (p2 - p3), respectively
// p3 + (p3 - p2). When t is an integer floor and ceil coincide.
// t = 0 is part of the domain, so the first segment can be sampled from
// its start.
func (s *Spline) Evaluate(t float64) (r3.Vec, error) {
	n := len(s.points)
	if n < 2 {
		return r3.Vec{}, fmt.Errorf("%w: spline has %d", ErrTooFewPoints, n)
	}
	if !(t >= 0 && t < float64(n-1)) {
		return r3.Vec{}, fmt.Errorf("%w: t=%g not in [0,%d)", ErrOutOfRange, t, n-1)
	}
	i0, i1 := int(math.Floor(t)), int(math.Ceil(t))
	p2, p3 := s.points[i0], s.points[i1]
	var p1, p4 r3.Vec
	if i0 <= 0 {
		p1 = d3.Mirror(p2, p3)
	} else {
		p1 = s.points[i0-1]
	}
	if i1 >= n-1 {
		p4 = d3.Mirror(p3, p2)
	} else {
		p4 = s.points[i1+1]
	}
	u := t - float64(i0)
	return blend(s.basis, u, p1, p2, p3, p4), nil
}

// blend evaluates [1 u u² u³]·M·P where P holds the homogeneous control
// points (x,y,z,1) as rows. The result is divided by its w component
// unless w is zero or not finite, in which case x,y,z are returned as is.
func blend(basis *mat.Dense, u float64, p1, p2, p3, p4 r3.Vec) r3.Vec {
	pts := mat.NewDense(4, 4, []float64{
		p1.X, p1.Y, p1.Z, 1,
		p2.X, p2.Y, p2.Z, 1,
		p3.X, p3.Y, p3.Z, 1,
		p4.X, p4.Y, p4.Z, 1,
	})
	var weighted mat.Dense
	weighted.Mul(basis, pts)
	monomial := mat.NewVecDense(4, []float64{1, u, u * u, u * u * u})
	var h mat.VecDense
	h.MulVec(weighted.T(), monomial)
	v := r3.Vec{X: h.AtVec(0), Y: h.AtVec(1), Z: h.AtVec(2)}
	if w := h.AtVec(3); w != 0 && !math.IsInf(w, 0) && !math.IsNaN(w) {
		v = r3.Vec{X: v.X / w, Y: v.Y / w, Z: v.Z / w}
	}
	return v
}

// Samples returns an iterator over curve positions taken every
// 1/samplesPerSegment across the whole parameter domain [0, Len()-1).
// The sequence is empty for splines with less than 2 points or a
// non-positive sample count. The domain is rechecked on every step, so
// removing points during iteration ends the sequence early.
func (s *Spline) Samples(samplesPerSegment int) iter.Seq2[float64, r3.Vec] {
	return func(yield func(float64, r3.Vec) bool) {
		if samplesPerSegment <= 0 {
			return
		}
		for i := 0; ; i++ {
			t := float64(i) / float64(samplesPerSegment)
			p, err := s.Evaluate(t)
			if err != nil {
				// Past the end, or the spline shrank while iterating.
				return
			}
			if !yield(t, p) {
				return
			}
		}
	}
}
