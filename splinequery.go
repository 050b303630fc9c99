package mathutils

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// DistanceToSpline returns the smallest distance from p to the positions of s
// sampled every 1/samplesPerSegment over the spline's parameter domain. It is
// a discrete approximation of the distance to the curve, not an exact
// closest-point solve. A spline with less than 2 points yields +Inf.
func DistanceToSpline(p r3.Vec, s *Spline, samplesPerSegment int) (float64, error) {
	if samplesPerSegment <= 0 {
		return 0, fmt.Errorf("%w: got %d", ErrBadSampleCount, samplesPerSegment)
	}
	closest := math.Inf(1)
	for _, q := range s.Samples(samplesPerSegment) {
		closest = math.Min(closest, r3.Norm(r3.Sub(q, p)))
	}
	return closest, nil
}

// TubeIntersectsSpline reports whether p lies within radius of any sampled
// position of s. Sampling stops at the first hit. A sample exactly at
// distance radius counts as a hit, so a zero radius matches only points
// that coincide with a sample.
func TubeIntersectsSpline(p r3.Vec, s *Spline, radius float64, samplesPerSegment int) (bool, error) {
	if samplesPerSegment <= 0 {
		return false, fmt.Errorf("%w: got %d", ErrBadSampleCount, samplesPerSegment)
	}
	for _, q := range s.Samples(samplesPerSegment) {
		if r3.Norm(r3.Sub(q, p)) <= radius {
			return true, nil
		}
	}
	return false, nil
}

// DistanceTo is DistanceToSpline sampled at SplineSampleRate.
func (s *Spline) DistanceTo(p r3.Vec) float64 {
	d, _ := DistanceToSpline(p, s, SplineSampleRate)
	return d
}

// TubeContains is TubeIntersectsSpline sampled at SplineSampleRate.
func (s *Spline) TubeContains(p r3.Vec, radius float64) bool {
	hit, _ := TubeIntersectsSpline(p, s, radius, SplineSampleRate)
	return hit
}
