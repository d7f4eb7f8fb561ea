package contour

// Seam stitching maps every fine cube of the current window to one of the
// 27 coarse cubes sampled by calculateNextLOD.
//
// Fine cube slots are numbered cy*4 + cz*2 + cx, coarse cubes j*9 + k*3 + i
// (i along X, j along Y, k along Z). The coarse window starts one coarse
// voxel below the coarse voxel holding the window center, so the mapping
// only depends on the parity of the absolute center coordinate.
//
// Coarse voxel k sits at fine position 2k-0.5, so coarse cube m spans
// [2m-0.5, 2m+1.5]. Along the face normal of a positive face the coarse cube
// is taken toward the outside. Along every other axis fine cube 2m lies inside
// coarse cube m, while fine cube 2m+1 straddles m and m+1; the table holds m
// and seamCandidates adds m+1. Several fine boundary vertices collapse onto
// one coarse vertex this way and the resulting degenerate triangles are
// dropped by the mesh builder.
//
// Indexed [direction][parity x][parity y][parity z][fine slot].
var nextLODCorner = [6][2][2][2][8]uint8{
	dirXPositive: {
		{
			{
				{1, 1, 4, 4, 10, 10, 13, 13}, // parity x0 y0 z0
				{4, 4, 4, 4, 13, 13, 13, 13}, // parity x0 y0 z1
			},
			{
				{10, 10, 13, 13, 10, 10, 13, 13}, // parity x0 y1 z0
				{13, 13, 13, 13, 13, 13, 13, 13}, // parity x0 y1 z1
			},
		},
		{
			{
				{1, 2, 4, 5, 10, 11, 13, 14}, // parity x1 y0 z0
				{4, 5, 4, 5, 13, 14, 13, 14}, // parity x1 y0 z1
			},
			{
				{10, 11, 13, 14, 10, 11, 13, 14}, // parity x1 y1 z0
				{13, 14, 13, 14, 13, 14, 13, 14}, // parity x1 y1 z1
			},
		},
	},
	dirXNegative: {
		{
			{
				{0, 1, 3, 4, 9, 10, 12, 13},  // parity x0 y0 z0
				{3, 4, 3, 4, 12, 13, 12, 13}, // parity x0 y0 z1
			},
			{
				{9, 10, 12, 13, 9, 10, 12, 13},   // parity x0 y1 z0
				{12, 13, 12, 13, 12, 13, 12, 13}, // parity x0 y1 z1
			},
		},
		{
			{
				{1, 1, 4, 4, 10, 10, 13, 13}, // parity x1 y0 z0
				{4, 4, 4, 4, 13, 13, 13, 13}, // parity x1 y0 z1
			},
			{
				{10, 10, 13, 13, 10, 10, 13, 13}, // parity x1 y1 z0
				{13, 13, 13, 13, 13, 13, 13, 13}, // parity x1 y1 z1
			},
		},
	},
	dirYPositive: {
		{
			{
				{9, 10, 12, 13, 9, 10, 12, 13},   // parity x0 y0 z0
				{12, 13, 12, 13, 12, 13, 12, 13}, // parity x0 y0 z1
			},
			{
				{9, 10, 12, 13, 18, 19, 21, 22},  // parity x0 y1 z0
				{12, 13, 12, 13, 21, 22, 21, 22}, // parity x0 y1 z1
			},
		},
		{
			{
				{10, 10, 13, 13, 10, 10, 13, 13}, // parity x1 y0 z0
				{13, 13, 13, 13, 13, 13, 13, 13}, // parity x1 y0 z1
			},
			{
				{10, 10, 13, 13, 19, 19, 22, 22}, // parity x1 y1 z0
				{13, 13, 13, 13, 22, 22, 22, 22}, // parity x1 y1 z1
			},
		},
	},
	dirYNegative: {
		{
			{
				{0, 1, 3, 4, 9, 10, 12, 13},  // parity x0 y0 z0
				{3, 4, 3, 4, 12, 13, 12, 13}, // parity x0 y0 z1
			},
			{
				{9, 10, 12, 13, 9, 10, 12, 13},   // parity x0 y1 z0
				{12, 13, 12, 13, 12, 13, 12, 13}, // parity x0 y1 z1
			},
		},
		{
			{
				{1, 1, 4, 4, 10, 10, 13, 13}, // parity x1 y0 z0
				{4, 4, 4, 4, 13, 13, 13, 13}, // parity x1 y0 z1
			},
			{
				{10, 10, 13, 13, 10, 10, 13, 13}, // parity x1 y1 z0
				{13, 13, 13, 13, 13, 13, 13, 13}, // parity x1 y1 z1
			},
		},
	},
	dirZPositive: {
		{
			{
				{3, 4, 3, 4, 12, 13, 12, 13}, // parity x0 y0 z0
				{3, 4, 6, 7, 12, 13, 15, 16}, // parity x0 y0 z1
			},
			{
				{12, 13, 12, 13, 12, 13, 12, 13}, // parity x0 y1 z0
				{12, 13, 15, 16, 12, 13, 15, 16}, // parity x0 y1 z1
			},
		},
		{
			{
				{4, 4, 4, 4, 13, 13, 13, 13}, // parity x1 y0 z0
				{4, 4, 7, 7, 13, 13, 16, 16}, // parity x1 y0 z1
			},
			{
				{13, 13, 13, 13, 13, 13, 13, 13}, // parity x1 y1 z0
				{13, 13, 16, 16, 13, 13, 16, 16}, // parity x1 y1 z1
			},
		},
	},
	dirZNegative: {
		{
			{
				{0, 1, 3, 4, 9, 10, 12, 13},  // parity x0 y0 z0
				{3, 4, 3, 4, 12, 13, 12, 13}, // parity x0 y0 z1
			},
			{
				{9, 10, 12, 13, 9, 10, 12, 13},   // parity x0 y1 z0
				{12, 13, 12, 13, 12, 13, 12, 13}, // parity x0 y1 z1
			},
		},
		{
			{
				{1, 1, 4, 4, 10, 10, 13, 13}, // parity x1 y0 z0
				{4, 4, 4, 4, 13, 13, 13, 13}, // parity x1 y0 z1
			},
			{
				{10, 10, 13, 13, 10, 10, 13, 13}, // parity x1 y1 z0
				{13, 13, 13, 13, 13, 13, 13, 13}, // parity x1 y1 z1
			},
		},
	},
}

// seamCorner returns the coarse cube for fine cube slot when the cube
// touches the faces in faces. Each axis is taken from the face on that
// axis, so a cube on a chunk edge or corner follows all its faces.
func seamCorner(faces NeighborLOD, parity [3]int, slot int) int {
	var comp [3]int
	first := true
	for d := range dirCount {
		if !faces.hasDirection(d) {
			continue
		}
		c := int(nextLODCorner[d][parity[0]][parity[1]][parity[2]][slot])
		cc := [3]int{c % 3, c / 9, (c / 3) % 3}
		if first {
			comp = cc
			first = false
			continue
		}
		comp[d.axis()] = cc[d.axis()]
	}
	return comp[1]*9 + comp[2]*3 + comp[0]
}

// coarseStride is the coarse cube index step along x, y and z.
var coarseStride = [3]int{1, 9, 3}

// seamCandidates returns the coarse cubes overlapping fine cube slot along
// the axes tangential to faces, starting with seamCorner. A fine cube with an
// odd absolute origin on such an axis overlaps two coarse cubes there, so the
// result holds up to four cubes.
func seamCandidates(faces NeighborLOD, parity [3]int, slot int) (cands [4]int, n int) {
	cube := [3]int{slot & 1, slot >> 2, (slot >> 1) & 1}
	var normal [3]bool
	for d := range dirCount {
		if faces.hasDirection(d) {
			normal[d.axis()] = true
		}
	}

	cands[0] = seamCorner(faces, parity, slot)
	n = 1
	for axis := range 3 {
		if normal[axis] || parity[axis] != cube[axis] {
			continue
		}
		for i := range n {
			cands[n+i] = cands[i] + coarseStride[axis]
		}
		n *= 2
	}
	return cands, n
}
