package math

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestLODScale(t *testing.T) {
	tests := []struct {
		lod  uint
		want float32
	}{
		{0, 1},
		{1, 2},
		{2, 4},
		{5, 32},
	}
	for _, tt := range tests {
		if got := LODScale(tt.lod); got != tt.want {
			t.Errorf("LODScale(%d) = %v, want %v", tt.lod, got, tt.want)
		}
	}
}

func TestLODOffset(t *testing.T) {
	tests := []struct {
		lod  uint
		want float32
	}{
		{0, 0},
		{1, -0.5},
		{2, -1.5},
		{3, -3.5},
	}
	for _, tt := range tests {
		got := LODOffset(tt.lod)
		want := mgl32.Vec3{tt.want, tt.want, tt.want}
		if got != want {
			t.Errorf("LODOffset(%d) = %v, want %v", tt.lod, got, want)
		}
	}
}

// Consecutive levels must agree: a coarse voxel k sits at 2k-0.5 in the
// units of the next finer level.
func TestLODOffsetAlignment(t *testing.T) {
	for lod := uint(1); lod < 6; lod++ {
		fine := LODOffset(lod - 1).X()
		coarse := LODOffset(lod).X()
		k := float32(3)
		fineUnits := 2*k - 0.5
		if got, want := k*LODScale(lod)+coarse, fineUnits*LODScale(lod-1)+fine; got != want {
			t.Errorf("lod %d: coarse voxel at %v, fine frame says %v", lod, got, want)
		}
	}
}
