package mesh

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"testing"

	mathutils "github.com/StudioRailgun/MathUtils"
	"github.com/google/go-cmp/cmp"
	"gonum.org/v1/gonum/spatial/r3"
)

// quad is a unit square in the X-Z plane split along its diagonal.
var quad = Mesh{
	Vertices: []float32{
		0, 0, 0,
		1, 0, 0,
		1, 0, 1,
		0, 0, 1,
	},
	Indices: []int{0, 1, 2, 0, 2, 3},
}

func cloneMesh(m Mesh) Mesh {
	return Mesh{
		Vertices: append([]float32(nil), m.Vertices...),
		Indices:  append([]int(nil), m.Indices...),
	}
}

func TestSTLWriteRead(t *testing.T) {
	var b bytes.Buffer
	err := WriteSTL(&b, quad)
	if err != nil {
		t.Fatal(err)
	}
	if b.Len() != 84+2*stlTriangleSize {
		t.Fatalf("got %d bytes of STL. want %d", b.Len(), 84+2*stlTriangleSize)
	}
	got, err := ReadSTL(&b)
	if err != nil {
		t.Fatal(err)
	}
	// Shared vertices are merged back into the same index layout.
	if diff := cmp.Diff(quad, got); diff != "" {
		t.Errorf("mesh mismatch (-want +got):\n%s", diff)
	}
	w, err := got.Windings()
	if err != nil {
		t.Fatal(err)
	}
	want := []mathutils.Winding{mathutils.CounterClockwise, mathutils.CounterClockwise}
	if diff := cmp.Diff(want, w); diff != "" {
		t.Errorf("windings mismatch (-want +got):\n%s", diff)
	}
}

func TestMeshFlip(t *testing.T) {
	m := cloneMesh(quad)
	m.Flip()
	cw, err := mathutils.IsClockwise(m.Vertices, m.Indices)
	if err != nil {
		t.Fatal(err)
	}
	if !cw {
		t.Error("flipped quad not clockwise")
	}
	if m.NumTriangles() != 2 || m.NumVertices() != 4 {
		t.Errorf("got %d triangles %d vertices", m.NumTriangles(), m.NumVertices())
	}
	tri := m.Triangle(0)
	if tri[1] != (r3.Vec{X: 1, Z: 1}) {
		t.Errorf("flipped triangle got %v", tri)
	}
}

func TestMeshBounds(t *testing.T) {
	m := cloneMesh(quad)
	m.Vertices = append(m.Vertices, -1, 2, 0.5)
	want := r3.Box{Min: r3.Vec{X: -1}, Max: r3.Vec{X: 1, Y: 2, Z: 1}}
	if diff := cmp.Diff(want, m.Bounds()); diff != "" {
		t.Errorf("Bounds mismatch (-want +got):\n%s", diff)
	}
	if (Mesh{}).Bounds() != (r3.Box{}) {
		t.Error("empty mesh bounds not zero")
	}
}

func stlBytes(tris ...stlTriangle) []byte {
	b := make([]byte, 84+stlTriangleSize*len(tris))
	b[80] = byte(len(tris))
	for i, tri := range tris {
		tri.put(b[84+i*stlTriangleSize:])
	}
	return b
}

func TestReadSTLNormals(t *testing.T) {
	// Right hand rule normal of the counter-clockwise triangle is -Y.
	tri := stlTriangle{
		Vertex1: [3]float32{0, 0, 0},
		Vertex2: [3]float32{1, 0, 0},
		Vertex3: [3]float32{0, 0, 1},
	}
	for _, test := range []struct {
		name     string
		normal   [3]float32
		mismatch bool
	}{
		{name: "agrees", normal: [3]float32{0, -1, 0}},
		{name: "zero", normal: [3]float32{}},
		{name: "sideways", normal: [3]float32{1, 0, 0}},
		{name: "opposed", normal: [3]float32{0, 1, 0}, mismatch: true},
	} {
		tri.Normal = test.normal
		m, err := ReadSTL(bytes.NewReader(stlBytes(tri, tri)))
		if test.mismatch != errors.Is(err, ErrNormalMismatch) {
			t.Errorf("%s: got error %v", test.name, err)
		}
		if m.NumTriangles() != 2 || m.NumVertices() != 3 {
			t.Errorf("%s: got %d triangles %d vertices", test.name, m.NumTriangles(), m.NumVertices())
		}
	}
}

func TestReadSTLInvalid(t *testing.T) {
	nan := float32(math.NaN())
	good := stlTriangle{Vertex2: [3]float32{1, 0, 0}, Vertex3: [3]float32{0, 0, 1}}
	badVertex := good
	badVertex.Vertex3[1] = nan
	badNormal := good
	badNormal.Normal[0] = float32(math.Inf(-1))
	for _, test := range []struct {
		name string
		b    []byte
	}{
		{name: "empty", b: nil},
		{name: "short header", b: make([]byte, 40)},
		{name: "zero triangles", b: make([]byte, 84)},
		{name: "truncated", b: stlBytes(good, good)[:84+stlTriangleSize+10]},
		{name: "NaN vertex", b: stlBytes(good, badVertex)},
		{name: "inf normal", b: stlBytes(badNormal)},
	} {
		if _, err := ReadSTL(bytes.NewReader(test.b)); err == nil {
			t.Errorf("%s: expected error", test.name)
		}
	}
}

func TestReadSTLHugeCount(t *testing.T) {
	// A header claiming far more triangles than the input holds must fail
	// on the missing data, not on allocation.
	b := make([]byte, 84)
	binary.LittleEndian.PutUint32(b[80:], 0x7fffffff)
	_, err := ReadSTL(bytes.NewReader(b))
	if !errors.Is(err, io.EOF) {
		t.Errorf("got error %v. want %v", err, io.EOF)
	}
	if n := cap(newBuilder(0x7fffffff).m.Indices); n != 3*maxPrealloc {
		t.Errorf("builder reserved %d indices. want %d", n, 3*maxPrealloc)
	}
}

func TestWriteSTLInvalid(t *testing.T) {
	var b bytes.Buffer
	bad := Mesh{Vertices: quad.Vertices, Indices: []int{0, 1, 7}}
	if err := WriteSTL(&b, bad); !errors.Is(err, mathutils.ErrInvalidMesh) {
		t.Errorf("got error %v. want %v", err, mathutils.ErrInvalidMesh)
	}
	if err := WriteSTL(&b, Mesh{}); err == nil {
		t.Error("expected error writing empty mesh")
	}
}
