/*

Integer 3D Vectors and Boxes

*/

package mathutils

import "gonum.org/v1/gonum/spatial/r3"

// V3i is a 3D integer vector.
type V3i [3]int

// BoxI is an axis aligned box with integer corners. Min <= Max is
// expected on every axis.
type BoxI struct {
	Min, Max V3i
}

// Sub subtracts two vectors. Return v = a - b.
func (a V3i) Sub(b V3i) V3i {
	return V3i{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

// Add adds two vectors. Return v = a + b.
func (a V3i) Add(b V3i) V3i {
	return V3i{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

// ToV3 converts V3i (integer) to r3.Vec (float).
func (a V3i) ToV3() r3.Vec {
	return r3.Vec{X: float64(a[0]), Y: float64(a[1]), Z: float64(a[2])}
}

// int64s widens the components so products do not overflow on 32 bit platforms.
func (a V3i) int64s() [3]int64 {
	return [3]int64{int64(a[0]), int64(a[1]), int64(a[2])}
}

// ToBox converts the integer box to a floating point r3.Box.
func (b BoxI) ToBox() r3.Box {
	return r3.Box{Min: b.Min.ToV3(), Max: b.Max.ToV3()}
}
