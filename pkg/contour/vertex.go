package contour

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/tanzfisch/Igor-sub001/pkg/voxel"
)

// Cube corners are numbered dy*4 + dz*2 + dx.
var cornerOffset = [8]mgl32.Vec3{
	{0, 0, 0}, {1, 0, 0}, {0, 0, 1}, {1, 0, 1},
	{0, 1, 0}, {1, 1, 0}, {0, 1, 1}, {1, 1, 1},
}

var cubeEdges = [12][2]uint8{
	// along X
	{0, 1}, {2, 3}, {4, 5}, {6, 7},
	// along Z
	{0, 2}, {1, 3}, {4, 6}, {5, 7},
	// along Y
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// calculateVertex places the surface vertex of a single cube. The result is
// relative to the cube origin with every coordinate in [0,1]. ok is false
// when no edge of the cube crosses the surface.
//
// Each crossing edge contributes the point at its interpolated crossing; an
// inside endpoint a pushes the point away from a by Rescale(a).
func calculateVertex(corners *[8]voxel.Density) (pos mgl32.Vec3, ok bool) {
	var sum mgl32.Vec3
	n := 0
	for _, e := range cubeEdges {
		da, db := corners[e[0]], corners[e[1]]
		if (da == voxel.Outside) == (db == voxel.Outside) {
			continue
		}
		var t float32
		if da != voxel.Outside {
			t = voxel.Rescale(da)
		} else {
			t = 1 - voxel.Rescale(db)
		}
		pa, pb := cornerOffset[e[0]], cornerOffset[e[1]]
		sum = sum.Add(pa.Add(pb.Sub(pa).Mul(t)))
		n++
	}
	if n == 0 {
		return mgl32.Vec3{}, false
	}
	return sum.Mul(1 / float32(n)), true
}

// calculateVertices computes the vertices of the 8 cubes around the window
// center in chunk-local coordinates.
func (e *Engine) calculateVertices() {
	var corners [8]voxel.Density
	for slot := range 8 {
		cx, cy, cz := slot&1, slot>>2, (slot>>1)&1
		for c := range 8 {
			dx, dy, dz := c&1, c>>2, (c>>1)&1
			corners[c] = e.density[(cy+dy)*9+(cz+dz)*3+cx+dx]
		}
		t, ok := calculateVertex(&corners)
		e.vertexVisible[slot] = ok
		if !ok {
			continue
		}
		origin := mgl32.Vec3{
			float32(e.center.X - 1 + cx),
			float32(e.center.Y - 1 + cy),
			float32(e.center.Z - 1 + cz),
		}
		e.vertexPositions[slot] = origin.Add(t)
	}
}

// calculateNextLOD samples the 4x4x4 coarse voxels around the window center
// and computes the vertices of the 27 coarse cubes between them, expressed
// in the chunk-local coordinates of the fine level. Coarse voxel k sits at
// fine position 2k-0.5.
func (e *Engine) calculateNextLOD() {
	h := e.pos.Add(e.center).Shr(1)
	first := h.AddScalar(-1)
	src := first.Add(e.nextLODVoxelOffset)

	for z := range 4 {
		for x := range 4 {
			pole := e.nextLOD.DensityPole(src.X+x, src.Z+z)
			for y := range 4 {
				e.nextLODDensity[y*16+z*4+x] = pole.Value(src.Y + y)
			}
		}
	}

	var corners [8]voxel.Density
	for j := range 3 {
		for k := range 3 {
			for i := range 3 {
				for c := range 8 {
					dx, dy, dz := c&1, c>>2, (c>>1)&1
					corners[c] = e.nextLODDensity[(j+dy)*16+(k+dz)*4+i+dx]
				}
				slot := j*9 + k*3 + i
				t, ok := calculateVertex(&corners)
				e.vertexVisibleNextLOD[slot] = ok
				if !ok {
					continue
				}
				coarse := mgl32.Vec3{
					float32(first.X+i) + t.X(),
					float32(first.Y+j) + t.Y(),
					float32(first.Z+k) + t.Z(),
				}
				e.vertexPositionsNextLOD[slot] = mgl32.Vec3{
					2*coarse.X() - 0.5 - float32(e.pos.X),
					2*coarse.Y() - 0.5 - float32(e.pos.Y),
					2*coarse.Z() - 0.5 - float32(e.pos.Z),
				}
			}
		}
	}
}
