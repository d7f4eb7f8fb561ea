package voxel

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// FillSphere marks every sample within radius of center as inside.
// Samples near the boundary encode their distance to the sphere surface.
func FillSphere(g *Grid, center mgl32.Vec3, radius float32) {
	g.Fill(func(x, y, z int) Density {
		p := mgl32.Vec3{float32(x), float32(y), float32(z)}
		return FromDepth(radius - p.Sub(center).Len())
	})
}

// FillHalfSpace marks every sample below level as fully inside.
func FillHalfSpace(g *Grid, level int) {
	g.Fill(func(_, y, _ int) Density {
		if y < level {
			return Full
		}
		return Outside
	})
}

// TerrainParams controls FillTerrain.
type TerrainParams struct {
	Seed        int64
	BaseHeight  float32 // mean surface height in voxels
	Amplitude   float32 // height variation in voxels
	Scale       float64 // noise frequency
	Octaves     int
	Persistence float64
	Lacunarity  float64
}

// DefaultTerrainParams returns parameters producing rolling hills in a
// volume roughly 64 voxels tall.
func DefaultTerrainParams(seed int64) TerrainParams {
	return TerrainParams{
		Seed:        seed,
		BaseHeight:  24,
		Amplitude:   16,
		Scale:       1.0 / 32.0,
		Octaves:     4,
		Persistence: 0.5,
		Lacunarity:  2.0,
	}
}

// FillTerrain fills g with a noise heightfield. The fractional part of the
// surface height is kept in the density of the topmost inside sample.
func FillTerrain(g *Grid, p TerrainParams) {
	heights := make([]float32, g.Width()*g.Depth())
	for z := range g.Depth() {
		for x := range g.Width() {
			n := octaveNoise2D(float64(x)*p.Scale, float64(z)*p.Scale, p.Seed, p.Octaves, p.Persistence, p.Lacunarity)
			h := p.BaseHeight + (float32(n)*2-1)*p.Amplitude
			heights[z*g.Width()+x] = math32.Max(h, 0)
		}
	}
	g.Fill(func(x, y, z int) Density {
		return FromDepth(heights[z*g.Width()+x] - float32(y))
	})
}
