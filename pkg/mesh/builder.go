package mesh

import (
	"slices"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/tanzfisch/Igor-sub001/pkg/math"
)

// Triangle is an indexed triangle.
type Triangle struct {
	A, B, C uint32
}

// degenerate reports whether two corners share a vertex.
func (t Triangle) degenerate() bool {
	return t.A == t.B || t.B == t.C || t.C == t.A
}

// positionKey identifies a position by the exact bit patterns of its
// components.
type positionKey [3]uint32

func keyOf(p mgl32.Vec3) positionKey {
	return positionKey{math32.Float32bits(p[0]), math32.Float32bits(p[1]), math32.Float32bits(p[2])}
}

// Builder accumulates vertices, attributes and triangles. It is not safe
// for concurrent use.
//
// Attribute arrays (normals, colors, texture coordinates) are optional.
// Once an attribute has been set for any vertex, every vertex needs a value
// for it before the builder passes CheckConsistency. Setting an attribute
// on index i when the array is shorter fills the gap with copies of the new
// value.
type Builder struct {
	joinVertices bool
	gridSize     float32

	vertices  []mgl32.Vec3
	normals   []mgl32.Vec3
	colors    []mgl32.Vec4
	texCoords map[int][]mgl32.Vec2
	triangles []Triangle

	index map[positionKey]uint32

	log *zap.Logger
}

// NewBuilder creates an empty builder with vertex joining disabled and a
// grid size of 1.
func NewBuilder() *Builder {
	return &Builder{
		gridSize:  1,
		texCoords: make(map[int][]mgl32.Vec2),
		index:     make(map[positionKey]uint32),
		log:       zap.NewNop(),
	}
}

// SetLogger sets the logger used for diagnostics. Nil restores the no-op logger.
func (b *Builder) SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	b.log = l
}

// Clear drops all vertices, attributes and triangles. Configuration
// (joining, grid size) is kept.
func (b *Builder) Clear() {
	b.vertices = b.vertices[:0]
	b.normals = b.normals[:0]
	b.colors = b.colors[:0]
	clear(b.texCoords)
	b.triangles = b.triangles[:0]
	clear(b.index)
}

// SetGridSize sets the grid used by AddVertexSnapped.
func (b *Builder) SetGridSize(g float32) {
	b.gridSize = g
}

// GridSize returns the snapping grid size.
func (b *Builder) GridSize() float32 { return b.gridSize }

// SetJoinVertices enables or disables joining vertices by position. It
// can only be changed while the builder holds no vertices; later calls are
// ignored.
func (b *Builder) SetJoinVertices(enable bool) {
	if len(b.vertices) != 0 {
		b.log.Warn("join vertices can not change after vertices were added",
			zap.Int("vertices", len(b.vertices)))
		return
	}
	b.joinVertices = enable
}

// JoinVertices reports whether vertices are joined by position.
func (b *Builder) JoinVertices() bool { return b.joinVertices }

// VertexCount returns the number of vertices.
func (b *Builder) VertexCount() int { return len(b.vertices) }

// TriangleCount returns the number of triangles.
func (b *Builder) TriangleCount() int { return len(b.triangles) }

// Vertex returns the position of vertex i.
func (b *Builder) Vertex(i uint32) mgl32.Vec3 { return b.vertices[i] }

// Normal returns the normal of vertex i if one was set.
func (b *Builder) Normal(i uint32) (mgl32.Vec3, bool) {
	if int(i) >= len(b.normals) {
		return mgl32.Vec3{}, false
	}
	return b.normals[i], true
}

// Color returns the color of vertex i if one was set.
func (b *Builder) Color(i uint32) (mgl32.Vec4, bool) {
	if int(i) >= len(b.colors) {
		return mgl32.Vec4{}, false
	}
	return b.colors[i], true
}

// TexCoord returns the texture coordinate of vertex i on unit if one was set.
func (b *Builder) TexCoord(i uint32, unit int) (mgl32.Vec2, bool) {
	uvs := b.texCoords[unit]
	if int(i) >= len(uvs) {
		return mgl32.Vec2{}, false
	}
	return uvs[i], true
}

// Triangle returns triangle i.
func (b *Builder) Triangle(i int) Triangle { return b.triangles[i] }

// TexUnits returns the texture units in use, sorted.
func (b *Builder) TexUnits() []int {
	units := make([]int, 0, len(b.texCoords))
	for u, uvs := range b.texCoords {
		if len(uvs) > 0 {
			units = append(units, u)
		}
	}
	slices.Sort(units)
	return units
}

// AddVertex adds a vertex and returns its index. With joining enabled a
// vertex at exactly the same position returns the existing index.
func (b *Builder) AddVertex(pos mgl32.Vec3) uint32 {
	if !b.joinVertices {
		b.vertices = append(b.vertices, pos)
		return uint32(len(b.vertices) - 1)
	}

	key := keyOf(pos)
	if i, ok := b.index[key]; ok {
		return i
	}
	i := uint32(len(b.vertices))
	b.vertices = append(b.vertices, pos)
	b.index[key] = i
	return i
}

// Snap rounds every component of pos to the nearest multiple of the grid size.
func (b *Builder) Snap(pos mgl32.Vec3) mgl32.Vec3 {
	g := b.gridSize
	return mgl32.Vec3{
		math32.Floor(pos[0]/g+0.5) * g,
		math32.Floor(pos[1]/g+0.5) * g,
		math32.Floor(pos[2]/g+0.5) * g,
	}
}

// AddVertexSnapped computes the grid-snapped position of pos and returns
// it together with the vertex index. The vertex itself is stored at the
// original position, so joining still keys on the unsnapped coordinates.
func (b *Builder) AddVertexSnapped(pos mgl32.Vec3) (uint32, mgl32.Vec3) {
	snapped := b.Snap(pos)
	return b.AddVertex(pos), snapped
}

// grow extends s to hold index i, filling new slots with v.
func grow[T any](s []T, i uint32, v T) []T {
	for uint32(len(s)) <= i {
		s = append(s, v)
	}
	return s
}

// SetNormal sets the normal of vertex i.
func (b *Builder) SetNormal(i uint32, n mgl32.Vec3) {
	b.normals = grow(b.normals, i, n)
	b.normals[i] = n
}

// AccumulateNormal adds n to the normal of vertex i. Call NormalizeNormals
// once all contributions are in.
func (b *Builder) AccumulateNormal(i uint32, n mgl32.Vec3) {
	if uint32(len(b.normals)) <= i {
		b.normals = grow(b.normals, i, n)
		return
	}
	b.normals[i] = b.normals[i].Add(n)
}

// NormalizeNormals normalizes every normal in place. Zero normals stay zero.
func (b *Builder) NormalizeNormals() {
	for i, n := range b.normals {
		b.normals[i] = normalize(n)
	}
}

// SetColor sets the color of vertex i.
func (b *Builder) SetColor(i uint32, c mgl32.Vec4) {
	b.colors = grow(b.colors, i, c)
	b.colors[i] = c
}

// SetTexCoord sets the texture coordinate of vertex i on the given unit.
func (b *Builder) SetTexCoord(i uint32, uv mgl32.Vec2, unit int) {
	uvs := grow(b.texCoords[unit], i, uv)
	uvs[i] = uv
	b.texCoords[unit] = uvs
}

// AddTriangle adds a triangle and returns its index. Triangles with a
// repeated vertex index are dropped and reported with ok == false. Vertex
// indices are not bounds checked here; see CheckConsistency.
func (b *Builder) AddTriangle(i0, i1, i2 uint32) (index int, ok bool) {
	t := Triangle{i0, i1, i2}
	if t.degenerate() {
		return -1, false
	}
	b.triangles = append(b.triangles, t)
	return len(b.triangles) - 1, true
}

// CheckConsistency reports whether the builder can be compiled. It fails
// on an empty builder, on attribute arrays whose length differs from the
// vertex count and on triangles referencing missing vertices.
func (b *Builder) CheckConsistency() bool {
	vc := len(b.vertices)
	switch {
	case len(b.triangles) == 0:
		b.log.Warn("mesh builder has no triangles")
		return false
	case vc == 0:
		b.log.Warn("mesh builder has no vertices")
		return false
	case len(b.normals) != 0 && len(b.normals) != vc:
		b.log.Warn("normal count does not match vertex count",
			zap.Int("normals", len(b.normals)), zap.Int("vertices", vc))
		return false
	case len(b.colors) != 0 && len(b.colors) != vc:
		b.log.Warn("color count does not match vertex count",
			zap.Int("colors", len(b.colors)), zap.Int("vertices", vc))
		return false
	}

	for unit, uvs := range b.texCoords {
		if len(uvs) != 0 && len(uvs) != vc {
			b.log.Warn("texture coordinate count does not match vertex count",
				zap.Int("unit", unit), zap.Int("texcoords", len(uvs)), zap.Int("vertices", vc))
			return false
		}
	}

	for i, t := range b.triangles {
		if int(t.A) >= vc || int(t.B) >= vc || int(t.C) >= vc {
			b.log.Warn("triangle references missing vertex",
				zap.Int("triangle", i), zap.Int("vertices", vc))
			return false
		}
	}
	return true
}

// layout describes the interleaved vertex format for the current attributes.
type layout struct {
	normals bool
	colors  bool
	units   []int
	stride  int
}

func (b *Builder) layout() layout {
	l := layout{
		normals: len(b.normals) != 0,
		colors:  len(b.colors) != 0,
		units:   b.TexUnits(),
		stride:  3,
	}
	if l.normals {
		l.stride += 3
	}
	if l.colors {
		l.stride += 4
	}
	l.stride += 2 * len(l.units)
	return l
}

// appendVertex appends the interleaved attributes of vertex i.
func (b *Builder) appendVertex(dst []float32, l layout, i uint32) []float32 {
	dst = append(dst, b.vertices[i][:]...)
	if l.normals {
		dst = append(dst, b.normals[i][:]...)
	}
	if l.colors {
		dst = append(dst, b.colors[i][:]...)
	}
	for _, u := range l.units {
		dst = append(dst, b.texCoords[u][i][:]...)
	}
	return dst
}

func (l layout) apply(m *Mesh) {
	m.Stride = l.stride
	m.HasNormals = l.normals
	m.HasColors = l.colors
	m.TexUnits = len(l.units)
}

// Compile writes all vertices and triangles into m. It returns false and
// leaves m untouched when CheckConsistency fails.
func (b *Builder) Compile(m *Mesh) bool {
	if !b.CheckConsistency() {
		return false
	}

	l := b.layout()
	l.apply(m)

	m.Vertices = make([]float32, 0, len(b.vertices)*l.stride)
	for i := range b.vertices {
		m.Vertices = b.appendVertex(m.Vertices, l, uint32(i))
	}

	m.Indices = make([]uint32, 0, len(b.triangles)*3)
	for _, t := range b.triangles {
		m.Indices = append(m.Indices, t.A, t.B, t.C)
	}

	m.VertexCount = len(b.vertices)
	m.TriangleCount = len(b.triangles)
	m.IndexCount = len(m.Indices)
	return true
}

// CompileSubset writes the given triangles into m, keeping only the
// vertices they reference. Vertices are renumbered in order of first use.
func (b *Builder) CompileSubset(m *Mesh, triangles []uint32) bool {
	if !b.CheckConsistency() {
		return false
	}

	l := b.layout()
	l.apply(m)

	remap := make(map[uint32]uint32, len(triangles)*2)
	m.Vertices = m.Vertices[:0]
	m.Indices = make([]uint32, 0, len(triangles)*3)

	for _, ti := range triangles {
		if int(ti) >= len(b.triangles) {
			b.log.Warn("triangle subset references missing triangle", zap.Uint32("triangle", ti))
			continue
		}
		t := b.triangles[ti]
		for _, old := range [3]uint32{t.A, t.B, t.C} {
			idx, ok := remap[old]
			if !ok {
				idx = uint32(len(remap))
				remap[old] = idx
				m.Vertices = b.appendVertex(m.Vertices, l, old)
			}
			m.Indices = append(m.Indices, idx)
		}
	}

	m.VertexCount = len(remap)
	m.TriangleCount = len(m.Indices) / 3
	m.IndexCount = len(m.Indices)
	return true
}

// CreateMesh compiles all triangles into a new Mesh with a bounding sphere.
// It returns nil when CheckConsistency fails.
func (b *Builder) CreateMesh() *Mesh {
	m := &Mesh{}
	if !b.Compile(m) {
		return nil
	}
	m.BoundingSphere = b.CalcBoundingSphere()
	return m
}

// CreateMeshSubset compiles the given triangles into a new Mesh with a
// bounding sphere over the vertices it contains.
func (b *Builder) CreateMeshSubset(triangles []uint32) *Mesh {
	m := &Mesh{}
	if !b.CompileSubset(m, triangles) {
		return nil
	}
	positions := make([]mgl32.Vec3, m.VertexCount)
	for i := range positions {
		positions[i] = m.Position(i)
	}
	m.BoundingSphere = boundingSphere(positions)
	return m
}

// CalcNormals replaces all normals with smooth per-vertex normals averaged
// from the adjacent face normals. sharpEdges is accepted for callers that
// pass it but does not change the result.
func (b *Builder) CalcNormals(sharpEdges bool) {
	if !b.CheckConsistency() {
		return
	}
	if sharpEdges {
		b.log.Debug("sharp edges requested, computing smooth normals")
	}

	b.normals = slices.Grow(b.normals[:0], len(b.vertices))[:len(b.vertices)]
	clear(b.normals)

	for _, t := range b.triangles {
		p0, p1, p2 := b.vertices[t.A], b.vertices[t.B], b.vertices[t.C]
		n := normalize(p1.Sub(p0).Cross(p2.Sub(p0)))
		b.normals[t.A] = b.normals[t.A].Add(n)
		b.normals[t.B] = b.normals[t.B].Add(n)
		b.normals[t.C] = b.normals[t.C].Add(n)
	}
	b.NormalizeNormals()
}

// CalcBoundingSphere returns a sphere centered on the mean vertex position
// that encloses every vertex.
func (b *Builder) CalcBoundingSphere() math.Sphere {
	return boundingSphere(b.vertices)
}

// boundingSphere centers the sphere on the mean position.
// TODO: switch to Ritter's bouncing bubble for tighter bounds on lopsided meshes.
func boundingSphere(positions []mgl32.Vec3) math.Sphere {
	if len(positions) == 0 {
		return math.Sphere{}
	}

	var center mgl32.Vec3
	for _, p := range positions {
		center = center.Add(p)
	}
	center = center.Mul(1 / float32(len(positions)))

	var r2 float32
	for _, p := range positions {
		r2 = max(r2, p.Sub(center).LenSqr())
	}
	return math.Sphere{Center: center, Radius: math32.Sqrt(r2)}
}

// CopyTriangles re-adds the given triangles with all their vertex
// attributes to dst, using dst's joining mode.
func (b *Builder) CopyTriangles(triangles []uint32, dst *Builder) {
	units := b.TexUnits()
	for _, ti := range triangles {
		t := b.triangles[ti]
		var idx [3]uint32
		for k, old := range [3]uint32{t.A, t.B, t.C} {
			n := dst.AddVertex(b.vertices[old])
			if int(old) < len(b.normals) {
				dst.SetNormal(n, b.normals[old])
			}
			if int(old) < len(b.colors) {
				dst.SetColor(n, b.colors[old])
			}
			for _, u := range units {
				if uvs := b.texCoords[u]; int(old) < len(uvs) {
					dst.SetTexCoord(n, uvs[old], u)
				}
			}
			idx[k] = n
		}
		dst.AddTriangle(idx[0], idx[1], idx[2])
	}
}

// AddMesh appends the vertices and triangles of a compiled mesh using the
// builder's joining mode. Texture units are renumbered from 0.
func (b *Builder) AddMesh(m *Mesh) {
	idx := make([]uint32, m.VertexCount)
	for i := range idx {
		n := b.AddVertex(m.Position(i))
		if nrm, ok := m.Normal(i); ok {
			b.SetNormal(n, nrm)
		}
		if c, ok := m.Color(i); ok {
			b.SetColor(n, c)
		}
		for u := 0; u < m.TexUnits; u++ {
			uv, _ := m.TexCoord(i, u)
			b.SetTexCoord(n, uv, u)
		}
		idx[i] = n
	}
	for t := 0; t < m.TriangleCount; t++ {
		tri := m.Triangle(t)
		b.AddTriangle(idx[tri[0]], idx[tri[1]], idx[tri[2]])
	}
}

// normalize returns the unit vector of v, or zero for a zero vector.
func normalize(v mgl32.Vec3) mgl32.Vec3 {
	l := v.Len()
	if l == 0 {
		return mgl32.Vec3{}
	}
	return v.Mul(1 / l)
}
