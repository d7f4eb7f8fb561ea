package voxel

// Grid is a dense in-memory density volume stored as one Column per (x, z).
type Grid struct {
	width, height, depth int
	columns              []Column
}

// NewGrid creates an empty (all outside) grid.
func NewGrid(width, height, depth int) *Grid {
	g := &Grid{
		width:   width,
		height:  height,
		depth:   depth,
		columns: make([]Column, width*depth),
	}
	samples := make([]Density, width*height*depth)
	for i := range g.columns {
		g.columns[i] = Column(samples[i*height : (i+1)*height : (i+1)*height])
	}
	return g
}

// Width returns the size along X.
func (g *Grid) Width() int { return g.width }

// Height returns the size along Y.
func (g *Grid) Height() int { return g.height }

// Depth returns the size along Z.
func (g *Grid) Depth() int { return g.depth }

// InBounds reports whether (x, y, z) lies inside the grid.
func (g *Grid) InBounds(x, y, z int) bool {
	return x >= 0 && y >= 0 && z >= 0 && x < g.width && y < g.height && z < g.depth
}

// DensityPole returns the column at (x, z). Columns outside the grid read
// as fully outside.
func (g *Grid) DensityPole(x, z int) Pole {
	if x < 0 || z < 0 || x >= g.width || z >= g.depth {
		return emptyPole{}
	}
	return g.columns[z*g.width+x]
}

// Get returns the sample at (x, y, z), or Outside when out of bounds.
func (g *Grid) Get(x, y, z int) Density {
	if !g.InBounds(x, y, z) {
		return Outside
	}
	return g.columns[z*g.width+x][y]
}

// Set stores a sample. Out of bounds writes are ignored.
func (g *Grid) Set(x, y, z int, v Density) {
	if !g.InBounds(x, y, z) {
		return
	}
	g.columns[z*g.width+x][y] = v
}

// Fill evaluates fn for every sample of the grid.
func (g *Grid) Fill(fn func(x, y, z int) Density) {
	for z := range g.depth {
		for x := range g.width {
			col := g.columns[z*g.width+x]
			for y := range g.height {
				col[y] = fn(x, y, z)
			}
		}
	}
}

// InsideCount returns the number of samples with a density above zero.
func (g *Grid) InsideCount() int {
	n := 0
	for _, col := range g.columns {
		for _, v := range col {
			if v != Outside {
				n++
			}
		}
	}
	return n
}

// Downsample builds the next coarser level of detail of src.
//
// Coarse voxel k sits between fine voxels 2k-1 and 2k and takes the maximum
// of the fine samples it covers on every axis, so the coarse grid can be
// bound as the next-LOD source of an engine with a zero voxel offset.
func Downsample(src Data) *Grid {
	w := src.Width()/2 + 1
	h := src.Height()/2 + 1
	d := src.Depth()/2 + 1
	dst := NewGrid(w, h, d)

	for z := range d {
		for x := range w {
			col := dst.columns[z*w+x]
			for fz := 2*z - 1; fz <= 2*z; fz++ {
				for fx := 2*x - 1; fx <= 2*x; fx++ {
					pole := src.DensityPole(fx, fz)
					for y := range h {
						v := max(pole.Value(2*y-1), pole.Value(2*y))
						if v > col[y] {
							col[y] = v
						}
					}
				}
			}
		}
	}
	return dst
}
