package contour

import "strings"

// NeighborLOD flags the chunk faces that border a chunk of the next
// coarser level of detail.
type NeighborLOD uint8

// Neighbor flags, one per chunk face.
const (
	HigherNeighborLODXPositive NeighborLOD = 1 << iota
	HigherNeighborLODXNegative
	HigherNeighborLODYPositive
	HigherNeighborLODYNegative
	HigherNeighborLODZPositive
	HigherNeighborLODZNegative
)

// AllNeighborLODs has every face flag set.
const AllNeighborLODs NeighborLOD = 1<<dirCount - 1

// direction indexes a chunk face. The flag of direction d is 1<<d.
type direction int

const (
	dirXPositive direction = iota
	dirXNegative
	dirYPositive
	dirYNegative
	dirZPositive
	dirZNegative
	dirCount
)

var directionNames = [dirCount]string{"X+", "X-", "Y+", "Y-", "Z+", "Z-"}

// axis returns 0, 1 or 2 for X, Y or Z.
func (d direction) axis() int { return int(d) / 2 }

// positive reports whether the face lies on the high side of its axis.
func (d direction) positive() bool { return d%2 == 0 }

// Has reports whether flag f is set.
func (n NeighborLOD) Has(f NeighborLOD) bool { return n&f != 0 }

func (n NeighborLOD) hasDirection(d direction) bool { return n&(1<<d) != 0 }

// String lists the set faces, e.g. "X+|Z-".
func (n NeighborLOD) String() string {
	if n == 0 {
		return "none"
	}
	var parts []string
	for d := range dirCount {
		if n.hasDirection(d) {
			parts = append(parts, directionNames[d])
		}
	}
	return strings.Join(parts, "|")
}

// ParseNeighborLOD parses the String form. Unknown names are ignored.
func ParseNeighborLOD(s string) NeighborLOD {
	var n NeighborLOD
	for _, part := range strings.Split(s, "|") {
		part = strings.TrimSpace(part)
		for d, name := range directionNames {
			if strings.EqualFold(part, name) {
				n |= 1 << d
			}
		}
	}
	return n
}
