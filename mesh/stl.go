package mesh

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/chewxy/math32"
	"gonum.org/v1/gonum/spatial/r3"
)

// ErrNormalMismatch is returned together with a fully read mesh when stored
// STL facet normals point against the normal implied by vertex order.
var ErrNormalMismatch = errors.New("STL facet normal opposes vertex winding")

const stlTriangleSize = 50

// stlHeader defines the STL file header.
type stlHeader struct {
	_     [80]uint8 // Header
	Count uint32    // Number of triangles
}

// WriteSTL writes the mesh triangles to a writer in binary STL format.
// Facet normals are computed from vertex order.
func WriteSTL(w io.Writer, m Mesh) error {
	if err := m.check(); err != nil {
		return err
	}
	nt := m.NumTriangles()
	if nt == 0 {
		return errors.New("empty triangle mesh")
	}
	header := stlHeader{
		Count: uint32(nt),
	}
	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return err
	}
	var (
		d stlTriangle
		b [stlTriangleSize]byte
	)
	for i := 0; i < nt; i++ {
		tri := m.Triangle(i)
		n := facetNormal(tri)
		d.Normal = to3F32(n)
		d.Vertex1 = to3F32(tri[0])
		d.Vertex2 = to3F32(tri[1])
		d.Vertex3 = to3F32(tri[2])
		d.put(b[:])
		if _, err := w.Write(b[:]); err != nil {
			return err
		}
	}
	return nil
}

// ReadSTL reads a binary STL model. Vertices with identical coordinates are
// merged. Facets whose stored normal opposes the vertex order are counted
// and reported with ErrNormalMismatch, in which case the mesh is still
// returned in full. Zero normals are not checked.
func ReadSTL(r io.Reader) (m Mesh, readErr error) {
	var header stlHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return Mesh{}, errors.New("encountered EOF while reading STL header")
		}
		return Mesh{}, errors.New("STL header read failed: " + err.Error())
	}
	if header.Count == 0 {
		return Mesh{}, errors.New("STL header indicates 0 triangles present")
	}
	var (
		buf        [stlTriangleSize]byte
		d          stlTriangle
		i          int
		mismatches int
	)
	defer func() {
		if readErr != nil && !errors.Is(readErr, ErrNormalMismatch) {
			readErr = fmt.Errorf("%d/%d STL triangles read: %w", i+1, header.Count, readErr)
		}
	}()
	b := newBuilder(int(header.Count))
	for i = 0; i < int(header.Count); i++ {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return Mesh{}, err
		}
		d.get(buf[:])
		if err := d.validate(); err != nil {
			return Mesh{}, err
		}
		if d.normalOpposed() {
			mismatches++
		}
		b.addTriangle([3][3]float32{d.Vertex1, d.Vertex2, d.Vertex3})
	}
	if mismatches > 0 {
		return b.m, fmt.Errorf("%w: %d of %d facets", ErrNormalMismatch, mismatches, header.Count)
	}
	return b.m, nil
}

// stlTriangle defines the triangle data within an STL file.
type stlTriangle struct {
	Normal  [3]float32
	Vertex1 [3]float32
	Vertex2 [3]float32
	Vertex3 [3]float32
	_       uint16 // Attribute byte count
}

func (t stlTriangle) put(b []byte) {
	if len(b) < stlTriangleSize {
		panic("need length 50 to marshal stlTriangle")
	}
	put3F32(b, t.Normal)
	put3F32(b[12:], t.Vertex1)
	put3F32(b[24:], t.Vertex2)
	put3F32(b[36:], t.Vertex3)
	binary.LittleEndian.PutUint16(b[48:], 0)
}

func (t *stlTriangle) get(b []byte) {
	if len(b) < stlTriangleSize {
		panic("need length 50 to unmarshal stlTriangle")
	}
	get3F32(b, &t.Normal)
	get3F32(b[12:], &t.Vertex1)
	get3F32(b[24:], &t.Vertex2)
	get3F32(b[36:], &t.Vertex3)
	// no attributes supported yet.
}

func put3F32(b []byte, f [3]float32) {
	_ = b[11] // early bounds check
	binary.LittleEndian.PutUint32(b, math.Float32bits(f[0]))
	binary.LittleEndian.PutUint32(b[4:], math.Float32bits(f[1]))
	binary.LittleEndian.PutUint32(b[8:], math.Float32bits(f[2]))
}

func get3F32(b []byte, f *[3]float32) {
	_ = b[11] // early bounds check
	f[0] = math.Float32frombits(binary.LittleEndian.Uint32(b))
	f[1] = math.Float32frombits(binary.LittleEndian.Uint32(b[4:]))
	f[2] = math.Float32frombits(binary.LittleEndian.Uint32(b[8:]))
}

func bad3F32(f [3]float32) bool {
	return math32.IsNaN(f[0]) || math32.IsInf(f[0], 0) ||
		math32.IsNaN(f[1]) || math32.IsInf(f[1], 0) ||
		math32.IsNaN(f[2]) || math32.IsInf(f[2], 0)
}

func (t stlTriangle) validate() error {
	if bad3F32(t.Normal) {
		return errors.New("inf/NaN STL triangle normal")
	}
	if bad3F32(t.Vertex1) || bad3F32(t.Vertex2) || bad3F32(t.Vertex3) {
		return errors.New("inf/NaN STL triangle vertex")
	}
	return nil
}

// normalOpposed reports whether the stored normal is approximately the
// negation of the normal calculated from the vertices.
func (t stlTriangle) normalOpposed() bool {
	const normTol = 5e-2
	if t.Normal == ([3]float32{}) {
		return false
	}
	calc := to3F32(facetNormal([3]r3.Vec{
		r3From3F32(t.Vertex1), r3From3F32(t.Vertex2), r3From3F32(t.Vertex3),
	}))
	if calc == ([3]float32{}) {
		return false // degenerate facet, nothing to compare against.
	}
	neg := [3]float32{-calc[0], -calc[1], -calc[2]}
	return equalWithin3F32(neg, t.Normal, normTol)
}

// facetNormal returns the unit normal of the triangle by the right hand
// rule, or the zero vector for degenerate triangles.
func facetNormal(t [3]r3.Vec) r3.Vec {
	n := r3.Cross(r3.Sub(t[1], t[0]), r3.Sub(t[2], t[0]))
	if r3.Norm2(n) == 0 {
		return r3.Vec{}
	}
	return r3.Unit(n)
}

func equalWithin3F32(a, b [3]float32, tol float32) bool {
	return math32.Abs(a[0]-b[0]) <= tol &&
		math32.Abs(a[1]-b[1]) <= tol &&
		math32.Abs(a[2]-b[2]) <= tol
}

func r3From3F32(f [3]float32) r3.Vec {
	return r3.Vec{X: float64(f[0]), Y: float64(f[1]), Z: float64(f[2])}
}

func to3F32(v r3.Vec) [3]float32 {
	return [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
}
