// Package mesh assembles triangle meshes incrementally and compiles them
// into compact interleaved vertex and index buffers.
package mesh

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/tanzfisch/Igor-sub001/pkg/math"
)

// Mesh is a compiled, immutable triangle mesh.
//
// Vertices holds Stride floats per vertex in the order position,
// [normal], [color], [texcoord per unit].
type Mesh struct {
	Vertices []float32
	Indices  []uint32

	VertexCount   int
	TriangleCount int
	IndexCount    int

	Stride     int
	HasNormals bool
	HasColors  bool
	TexUnits   int

	BoundingSphere math.Sphere
}

// Position returns the position of vertex i.
func (m *Mesh) Position(i int) mgl32.Vec3 {
	o := i * m.Stride
	return mgl32.Vec3{m.Vertices[o], m.Vertices[o+1], m.Vertices[o+2]}
}

// Normal returns the normal of vertex i, if the mesh carries normals.
func (m *Mesh) Normal(i int) (mgl32.Vec3, bool) {
	if !m.HasNormals {
		return mgl32.Vec3{}, false
	}
	o := i*m.Stride + 3
	return mgl32.Vec3{m.Vertices[o], m.Vertices[o+1], m.Vertices[o+2]}, true
}

// Color returns the color of vertex i, if the mesh carries colors.
func (m *Mesh) Color(i int) (mgl32.Vec4, bool) {
	if !m.HasColors {
		return mgl32.Vec4{}, false
	}
	o := i*m.Stride + 3
	if m.HasNormals {
		o += 3
	}
	return mgl32.Vec4{m.Vertices[o], m.Vertices[o+1], m.Vertices[o+2], m.Vertices[o+3]}, true
}

// TexCoord returns the texture coordinate of vertex i for the n-th
// texture unit present in the mesh.
func (m *Mesh) TexCoord(i, n int) (mgl32.Vec2, bool) {
	if n < 0 || n >= m.TexUnits {
		return mgl32.Vec2{}, false
	}
	o := i*m.Stride + 3
	if m.HasNormals {
		o += 3
	}
	if m.HasColors {
		o += 4
	}
	o += 2 * n
	return mgl32.Vec2{m.Vertices[o], m.Vertices[o+1]}, true
}

// Triangle returns the vertex indices of triangle i.
func (m *Mesh) Triangle(i int) [3]uint32 {
	return [3]uint32{m.Indices[i*3], m.Indices[i*3+1], m.Indices[i*3+2]}
}

// Translate moves every vertex and the bounding sphere by d.
func (m *Mesh) Translate(d mgl32.Vec3) {
	for i := 0; i < m.VertexCount; i++ {
		o := i * m.Stride
		m.Vertices[o] += d[0]
		m.Vertices[o+1] += d[1]
		m.Vertices[o+2] += d[2]
	}
	m.BoundingSphere.Center = m.BoundingSphere.Center.Add(d)
}
