/*
Package mathutils provides geometric queries over gonum's r3 vectors:
point to axis aligned box distances in floating point and integer flavours,
tube (segment with radius) and vertical prism containment, triangle winding
classification, and piecewise cubic splines with Catmull-Rom, Bezier and
uniform B-spline bases.
*/
package mathutils
