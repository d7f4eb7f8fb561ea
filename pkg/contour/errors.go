package contour

import "errors"

// Compile errors.
var (
	// ErrInvalidRange is returned when the requested chunk does not lie
	// inside the voxel data.
	ErrInvalidRange = errors.New("chunk outside voxel data")
	// ErrMissingPrecondition is returned when voxel data needed for the
	// request was never set.
	ErrMissingPrecondition = errors.New("missing voxel data")
)
