package mathutils

import "errors"

const (
	// SimplificationCutoff is the single-axis offset past which
	// ApproxDistanceToBox stops measuring the full distance and returns that
	// axis offset alone.
	SimplificationCutoff = 100000
	// SplineSampleRate is the default number of samples taken per spline
	// segment by the sampled spline queries.
	SplineSampleRate = 10
)

var (
	// ErrOutOfRange is returned when a spline parameter falls outside [0, n-1).
	ErrOutOfRange = errors.New("parameter outside of spline bounds")
	// ErrTooFewPoints is returned when evaluating a spline with less than 2 control points.
	ErrTooFewPoints = errors.New("spline needs at least 2 control points")
	// ErrDuplicatePoint is returned when adding a control point already present in a spline.
	ErrDuplicatePoint = errors.New("control point already in spline")
	// ErrInvalidPrism is returned by prism construction for malformed bases or heights.
	ErrInvalidPrism = errors.New("invalid prism")
	// ErrInvalidMesh is returned for vertex or index buffers that do not describe triangles.
	ErrInvalidMesh = errors.New("invalid triangle mesh")
	// ErrBadSampleCount is returned by sampled spline queries given a non-positive sample count.
	ErrBadSampleCount = errors.New("samples per segment must be positive")
)

// Clamp x between a and b, assume a <= b
func Clamp(x, a, b float64) float64 {
	if x < a {
		return a
	}
	if x > b {
		return b
	}
	return x
}

// Mix does a linear interpolation from x to y, a = [0,1]
func Mix(x, y, a float64) float64 {
	return x*(1-a) + y*a
}
