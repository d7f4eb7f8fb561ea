package math

import "fmt"

// Vec3i is an integer 3D vector used for voxel coordinates and volumes.
type Vec3i struct {
	X, Y, Z int
}

// String returns the vector as "(x, y, z)".
func (v Vec3i) String() string {
	return fmt.Sprintf("(%d, %d, %d)", v.X, v.Y, v.Z)
}

// Add returns v + other.
func (v Vec3i) Add(other Vec3i) Vec3i {
	return Vec3i{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Sub returns v - other.
func (v Vec3i) Sub(other Vec3i) Vec3i {
	return Vec3i{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// AddScalar returns v with s added to every component.
func (v Vec3i) AddScalar(s int) Vec3i {
	return Vec3i{v.X + s, v.Y + s, v.Z + s}
}

// Shr returns v with every component arithmetically shifted right by n.
func (v Vec3i) Shr(n uint) Vec3i {
	return Vec3i{v.X >> n, v.Y >> n, v.Z >> n}
}

// AnyNegative reports whether any component is below zero.
func (v Vec3i) AnyNegative() bool {
	return v.X < 0 || v.Y < 0 || v.Z < 0
}

// Fits reports whether every component of v is at most the matching bound.
func (v Vec3i) Fits(bounds Vec3i) bool {
	return v.X <= bounds.X && v.Y <= bounds.Y && v.Z <= bounds.Z
}

// Component returns the component for axis 0 (X), 1 (Y) or 2 (Z).
func (v Vec3i) Component(axis int) int {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}
