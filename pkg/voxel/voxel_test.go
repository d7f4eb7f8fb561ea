package voxel

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestRescale(t *testing.T) {
	tests := []struct {
		in   Density
		want float32
	}{
		{0, 0},
		{1, 0},
		{128, 127.0 / 254.0},
		{255, 1},
	}
	for _, tt := range tests {
		if got := Rescale(tt.in); got != tt.want {
			t.Errorf("Rescale(%d) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFromDepth(t *testing.T) {
	if got := FromDepth(-0.5); got != Outside {
		t.Errorf("FromDepth(-0.5) = %d, want 0", got)
	}
	if got := FromDepth(0); got != Outside {
		t.Errorf("FromDepth(0) = %d, want 0", got)
	}
	if got := FromDepth(3); got != Full {
		t.Errorf("FromDepth(3) = %d, want 255", got)
	}
	for _, d := range []float32{0.1, 0.25, 0.5, 0.9} {
		v := FromDepth(d)
		if v == Outside {
			t.Fatalf("FromDepth(%v) = 0, want inside", d)
		}
		if diff := Rescale(v) - d; diff > 0.005 || diff < -0.005 {
			t.Errorf("Rescale(FromDepth(%v)) = %v", d, Rescale(v))
		}
	}
}

func TestGridBounds(t *testing.T) {
	g := NewGrid(4, 5, 6)
	if g.Width() != 4 || g.Height() != 5 || g.Depth() != 6 {
		t.Fatalf("unexpected dimensions %dx%dx%d", g.Width(), g.Height(), g.Depth())
	}

	g.Set(1, 2, 3, 200)
	if got := g.Get(1, 2, 3); got != 200 {
		t.Errorf("Get(1,2,3) = %d, want 200", got)
	}
	if got := g.DensityPole(1, 3).Value(2); got != 200 {
		t.Errorf("pole value = %d, want 200", got)
	}

	// Out of range reads are outside, writes are ignored.
	g.Set(-1, 0, 0, 10)
	if got := g.Get(-1, 0, 0); got != Outside {
		t.Errorf("Get(-1,0,0) = %d, want 0", got)
	}
	if got := g.DensityPole(10, 10).Value(0); got != Outside {
		t.Errorf("out of range pole = %d, want 0", got)
	}
	if got := g.DensityPole(1, 3).Value(99); got != Outside {
		t.Errorf("pole above top = %d, want 0", got)
	}
}

func TestGridColumnsDoNotOverlap(t *testing.T) {
	g := NewGrid(2, 3, 2)
	g.Fill(func(x, y, z int) Density { return Density(1 + x + 2*z + 4*y) })
	for z := range 2 {
		for x := range 2 {
			for y := range 3 {
				if got, want := g.Get(x, y, z), Density(1+x+2*z+4*y); got != want {
					t.Errorf("Get(%d,%d,%d) = %d, want %d", x, y, z, got, want)
				}
			}
		}
	}
}

func TestFillHalfSpace(t *testing.T) {
	g := NewGrid(3, 6, 3)
	FillHalfSpace(g, 2)
	if got, want := g.InsideCount(), 3*3*2; got != want {
		t.Errorf("InsideCount() = %d, want %d", got, want)
	}
	if g.Get(1, 1, 1) != Full || g.Get(1, 2, 1) != Outside {
		t.Error("half space boundary misplaced")
	}
}

func TestFillSphere(t *testing.T) {
	g := NewGrid(9, 9, 9)
	FillSphere(g, mgl32.Vec3{4, 4, 4}, 3)
	if g.Get(4, 4, 4) != Full {
		t.Error("sphere center should be full")
	}
	if g.Get(0, 0, 0) != Outside {
		t.Error("corner should be outside")
	}
	if g.Get(7, 4, 4) != Outside {
		t.Error("sample on the sphere surface should be outside")
	}
}

func TestFillTerrainDeterministic(t *testing.T) {
	a := NewGrid(16, 32, 16)
	b := NewGrid(16, 32, 16)
	p := DefaultTerrainParams(42)
	p.BaseHeight = 12
	p.Amplitude = 6
	FillTerrain(a, p)
	FillTerrain(b, p)

	if a.InsideCount() == 0 {
		t.Fatal("terrain produced no inside samples")
	}
	for z := range 16 {
		for x := range 16 {
			for y := range 32 {
				if a.Get(x, y, z) != b.Get(x, y, z) {
					t.Fatalf("terrain differs at (%d,%d,%d)", x, y, z)
				}
			}
			// Columns are solid below the surface.
			if a.Get(x, 0, z) != Full {
				t.Errorf("column (%d,%d) not solid at y=0", x, z)
			}
		}
	}
}

func TestLatticeHashDistinct(t *testing.T) {
	for _, seed := range []int64{0, 1, 42} {
		seen := make(map[uint64][2]int64)
		for z := int64(-16); z <= 16; z++ {
			for x := int64(-16); x <= 16; x++ {
				h := hash2(x, z, seed)
				if prev, ok := seen[h]; ok {
					t.Fatalf("seed %d: lattice (%d,%d) and (%d,%d) share hash %#x", seed, prev[0], prev[1], x, z, h)
				}
				seen[h] = [2]int64{x, z}
			}
		}
	}

	// (x, z) and (x+2, z-1) once collided.
	for x := int64(-4); x <= 4; x++ {
		if latticeValue(x, 3, 7) == latticeValue(x+2, 2, 7) {
			t.Errorf("latticeValue(%d,3) equals latticeValue(%d,2)", x, x+2)
		}
	}
}

func TestDownsample(t *testing.T) {
	g := NewGrid(8, 8, 8)
	g.Set(3, 3, 3, 100)
	g.Set(4, 4, 4, 50)

	c := Downsample(g)
	if c.Width() != 5 || c.Height() != 5 || c.Depth() != 5 {
		t.Fatalf("unexpected coarse dimensions %dx%dx%d", c.Width(), c.Height(), c.Depth())
	}
	// Fine 3 and 4 are covered by coarse 2 (fine 2k-1, 2k).
	if got := c.Get(2, 2, 2); got != 100 {
		t.Errorf("coarse (2,2,2) = %d, want 100", got)
	}
	if got := c.InsideCount(); got != 1 {
		t.Errorf("coarse InsideCount() = %d, want 1", got)
	}
}
