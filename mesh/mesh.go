// Package mesh holds indexed triangle meshes in the packed float32 layout
// used by the winding classifier, together with binary STL input/output.
package mesh

import (
	"fmt"

	mathutils "github.com/StudioRailgun/MathUtils"
	"github.com/StudioRailgun/MathUtils/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// Mesh is an indexed triangle mesh. Vertices is a packed xyz buffer and
// Indices holds three vertex indices per triangle.
type Mesh struct {
	Vertices []float32
	Indices  []int
}

// NumTriangles returns the number of triangles in the mesh.
func (m Mesh) NumTriangles() int { return len(m.Indices) / 3 }

// NumVertices returns the number of vertices in the mesh.
func (m Mesh) NumVertices() int { return len(m.Vertices) / 3 }

// Vertex returns the i'th vertex.
func (m Mesh) Vertex(i int) r3.Vec {
	return r3.Vec{
		X: float64(m.Vertices[3*i]),
		Y: float64(m.Vertices[3*i+1]),
		Z: float64(m.Vertices[3*i+2]),
	}
}

// Triangle returns the vertices of the i'th triangle.
func (m Mesh) Triangle(i int) [3]r3.Vec {
	return [3]r3.Vec{
		m.Vertex(m.Indices[3*i]),
		m.Vertex(m.Indices[3*i+1]),
		m.Vertex(m.Indices[3*i+2]),
	}
}

// Bounds returns the bounding box of the mesh vertices.
func (m Mesh) Bounds() r3.Box {
	if m.NumVertices() == 0 {
		return r3.Box{}
	}
	bb := d3.Box{Min: m.Vertex(0), Max: m.Vertex(0)}
	for i := 1; i < m.NumVertices(); i++ {
		bb = bb.Include(m.Vertex(i))
	}
	return r3.Box(bb)
}

// Windings classifies the winding of every triangle seen from above.
func (m Mesh) Windings() ([]mathutils.Winding, error) {
	return mathutils.ClassifyWinding(m.Vertices, m.Indices)
}

// Flip reverses the winding of every triangle in place by swapping the
// last two indices of each.
func (m Mesh) Flip() {
	for i := 0; i+2 < len(m.Indices); i += 3 {
		m.Indices[i+1], m.Indices[i+2] = m.Indices[i+2], m.Indices[i+1]
	}
}

// builder accumulates triangles, merging vertices with identical coordinates.
type builder struct {
	m      Mesh
	lookup map[[3]float32]int
}

// maxPrealloc caps how many triangles newBuilder reserves room for. Larger
// meshes grow by append as triangles are actually read.
const maxPrealloc = 1 << 16

func newBuilder(ntriangles int) *builder {
	ntriangles = max(0, min(ntriangles, maxPrealloc))
	return &builder{
		m: Mesh{
			Vertices: make([]float32, 0, 3*ntriangles),
			Indices:  make([]int, 0, 3*ntriangles),
		},
		lookup: make(map[[3]float32]int, ntriangles),
	}
}

func (b *builder) addVertex(v [3]float32) int {
	if i, ok := b.lookup[v]; ok {
		return i
	}
	i := len(b.m.Vertices) / 3
	b.m.Vertices = append(b.m.Vertices, v[0], v[1], v[2])
	b.lookup[v] = i
	return i
}

func (b *builder) addTriangle(t [3][3]float32) {
	for _, v := range t {
		b.m.Indices = append(b.m.Indices, b.addVertex(v))
	}
}

func (m Mesh) check() error {
	if len(m.Vertices)%3 != 0 || len(m.Indices)%3 != 0 {
		return fmt.Errorf("%w: %d vertex components, %d indices", mathutils.ErrInvalidMesh, len(m.Vertices), len(m.Indices))
	}
	for _, idx := range m.Indices {
		if idx < 0 || idx >= m.NumVertices() {
			return fmt.Errorf("%w: index %d out of range", mathutils.ErrInvalidMesh, idx)
		}
	}
	return nil
}
