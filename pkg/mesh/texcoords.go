package mesh

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// Axis selects the projection axis for planar texture coordinates.
type Axis int

// Projection axes.
const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// String returns the axis name.
func (a Axis) String() string {
	switch a {
	case AxisX:
		return "X"
	case AxisY:
		return "Y"
	case AxisZ:
		return "Z"
	default:
		return "Unknown"
	}
}

// CalcPlanarTextureCoordinates projects every vertex onto the plane
// perpendicular to axis, relative to center, and stores the result on unit.
func (b *Builder) CalcPlanarTextureCoordinates(center mgl32.Vec3, axis Axis, unit int) {
	for i, p := range b.vertices {
		d := p.Sub(center)
		var uv mgl32.Vec2
		switch axis {
		case AxisX:
			uv = mgl32.Vec2{d[2], d[1]}
		case AxisY:
			uv = mgl32.Vec2{d[0], d[2]}
		default:
			uv = mgl32.Vec2{d[0], d[1]}
		}
		b.SetTexCoord(uint32(i), uv, unit)
	}
}

// sphericalUV maps a unit direction to texture space.
func sphericalUV(dir mgl32.Vec3) mgl32.Vec2 {
	return mgl32.Vec2{
		math32.Asin(clampUnit(dir[0]))/math32.Pi + 0.5,
		math32.Asin(clampUnit(dir[1]))/math32.Pi + 0.5,
	}
}

func clampUnit(v float32) float32 {
	return math32.Max(-1, math32.Min(1, v))
}

// CalcSphericalTexcoordsByPosition derives texture coordinates from the
// direction of every vertex as seen from center.
func (b *Builder) CalcSphericalTexcoordsByPosition(center mgl32.Vec3, unit int) {
	for i, p := range b.vertices {
		b.SetTexCoord(uint32(i), sphericalUV(normalize(p.Sub(center))), unit)
	}
}

// CalcSphericalTexcoordsByNormals derives texture coordinates from the
// vertex normals. It does nothing when normals are missing.
func (b *Builder) CalcSphericalTexcoordsByNormals(unit int) {
	if len(b.normals) != len(b.vertices) {
		b.log.Warn("spherical texture coordinates need a normal per vertex",
			zap.Int("normals", len(b.normals)), zap.Int("vertices", len(b.vertices)))
		return
	}
	for i, n := range b.normals {
		b.SetTexCoord(uint32(i), sphericalUV(normalize(n)), unit)
	}
}
