package math

import "github.com/go-gl/mathgl/mgl32"

// LODScale returns the geometry scale of a level of detail (2^lod).
func LODScale(lod uint) float32 {
	return float32(uint64(1) << lod)
}

// LODOffset returns the per-axis translation that re-centers geometry of a
// coarser level so that it lines up with level 0.
func LODOffset(lod uint) mgl32.Vec3 {
	if lod == 0 {
		return mgl32.Vec3{}
	}
	o := -(float32(uint64(1)<<(lod-1)) - 0.5)
	return mgl32.Vec3{o, o, o}
}
