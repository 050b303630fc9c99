package mathutils_test

import (
	"errors"
	"testing"

	mathutils "github.com/StudioRailgun/MathUtils"
	"github.com/google/go-cmp/cmp"
)

var windingVerts = []float32{
	0, 0, 0,
	1, 0, 0,
	0, 0, 1,
	2, 0, 0, // collinear with the first two
	0, 5, 0, // above the first vertex
}

func TestClassifyWinding(t *testing.T) {
	for _, test := range []struct {
		name    string
		indices []int
		want    []mathutils.Winding
	}{
		{name: "ccw", indices: []int{0, 1, 2}, want: []mathutils.Winding{mathutils.CounterClockwise}},
		{name: "cw", indices: []int{0, 2, 1}, want: []mathutils.Winding{mathutils.Clockwise}},
		{name: "rotated cw", indices: []int{2, 1, 0}, want: []mathutils.Winding{mathutils.Clockwise}},
		{name: "collinear", indices: []int{0, 1, 3}, want: []mathutils.Winding{mathutils.Degenerate}},
		{name: "vertical", indices: []int{0, 4, 1}, want: []mathutils.Winding{mathutils.Degenerate}},
		{name: "empty", indices: nil, want: []mathutils.Winding{}},
		{
			name:    "mixed",
			indices: []int{0, 1, 2, 0, 2, 1, 0, 1, 3},
			want:    []mathutils.Winding{mathutils.CounterClockwise, mathutils.Clockwise, mathutils.Degenerate},
		},
	} {
		got, err := mathutils.ClassifyWinding(windingVerts, test.indices)
		if err != nil {
			t.Fatalf("%s: %v", test.name, err)
		}
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("%s: winding mismatch (-want +got):\n%s", test.name, diff)
		}
	}
}

func TestIsClockwise(t *testing.T) {
	for _, test := range []struct {
		name    string
		indices []int
		want    bool
	}{
		{name: "all cw", indices: []int{0, 2, 1, 2, 1, 0}, want: true},
		{name: "one ccw", indices: []int{0, 2, 1, 0, 1, 2}, want: false},
		{name: "cw and degenerate", indices: []int{0, 2, 1, 0, 1, 3}, want: true},
		{name: "empty", want: true},
	} {
		got, err := mathutils.IsClockwise(windingVerts, test.indices)
		if err != nil {
			t.Fatalf("%s: %v", test.name, err)
		}
		if got != test.want {
			t.Errorf("%s: IsClockwise got %v. want %v", test.name, got, test.want)
		}
	}
}

func TestWindingInvalidMesh(t *testing.T) {
	for _, test := range []struct {
		name    string
		verts   []float32
		indices []int
	}{
		{name: "short vertex buffer", verts: windingVerts[:4], indices: []int{0, 0, 0}},
		{name: "partial triangle", verts: windingVerts, indices: []int{0, 1}},
		{name: "index past end", verts: windingVerts, indices: []int{0, 1, 5}},
		{name: "negative index", verts: windingVerts, indices: []int{0, -1, 2}},
	} {
		if _, err := mathutils.ClassifyWinding(test.verts, test.indices); !errors.Is(err, mathutils.ErrInvalidMesh) {
			t.Errorf("%s: ClassifyWinding got error %v. want %v", test.name, err, mathutils.ErrInvalidMesh)
		}
		if _, err := mathutils.IsClockwise(test.verts, test.indices); !errors.Is(err, mathutils.ErrInvalidMesh) {
			t.Errorf("%s: IsClockwise got error %v. want %v", test.name, err, mathutils.ErrInvalidMesh)
		}
	}
}

func TestWindingString(t *testing.T) {
	got := []string{mathutils.Degenerate.String(), mathutils.Clockwise.String(), mathutils.CounterClockwise.String()}
	want := []string{"degenerate", "clockwise", "counter-clockwise"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("String mismatch (-want +got):\n%s", diff)
	}
}
