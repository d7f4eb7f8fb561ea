// Package voxel provides density volumes consumed by the contouring engine.
//
// A volume is addressed column by column: DensityPole(x, z) returns a pole
// of density samples indexed by y. A density of 0 is outside the surface;
// 1-255 is inside, with the value encoding how far the surface crossing sits
// from the sample (see Rescale).
package voxel

// Density is a single 8-bit density sample.
type Density = uint8

// Density limits.
const (
	Outside Density = 0
	Full    Density = 255
)

// Rescale maps an inside density to its normalized depth in [0,1].
// Zero stays zero.
func Rescale(v Density) float32 {
	if v > 0 {
		v--
	}
	return float32(v) / 254.0
}

// FromDepth converts a depth below the surface (in voxel units) to a
// density sample. Depths at or below zero are outside; depths of one voxel
// or more saturate at Full.
func FromDepth(depth float32) Density {
	if depth <= 0 {
		return Outside
	}
	if depth >= 1 {
		return Full
	}
	return Density(1 + int(depth*254+0.5))
}

// Pole is a vertical column of density samples at a fixed (x, z).
// Value must tolerate any y and return Outside beyond the column.
type Pole interface {
	Value(y int) Density
}

// Data is a read-only density volume.
type Data interface {
	DensityPole(x, z int) Pole
	Width() int
	Height() int
	Depth() int
}

// emptyPole is returned for columns outside a volume.
type emptyPole struct{}

func (emptyPole) Value(int) Density { return Outside }

// Column is a dense pole.
type Column []Density

// Value returns the sample at y, or Outside when y is out of range.
func (c Column) Value(y int) Density {
	if y < 0 || y >= len(c) {
		return Outside
	}
	return c[y]
}
