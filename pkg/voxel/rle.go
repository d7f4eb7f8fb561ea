package voxel

import "sort"

// run is a sequence of equal samples starting at start.
type run struct {
	start int
	value Density
}

// RLEPole is a run-length encoded pole. Terrain columns are mostly long
// stretches of Full below the surface and Outside above it, so they
// compress to a handful of runs.
type RLEPole struct {
	runs []run
	size int
}

// NewRLEPole encodes samples.
func NewRLEPole(samples []Density) *RLEPole {
	p := &RLEPole{size: len(samples)}
	for y, v := range samples {
		if len(p.runs) == 0 || p.runs[len(p.runs)-1].value != v {
			p.runs = append(p.runs, run{start: y, value: v})
		}
	}
	return p
}

// Len returns the number of samples in the pole.
func (p *RLEPole) Len() int { return p.size }

// Runs returns the number of runs.
func (p *RLEPole) Runs() int { return len(p.runs) }

// Value returns the sample at y, or Outside when y is out of range.
func (p *RLEPole) Value(y int) Density {
	if y < 0 || y >= p.size {
		return Outside
	}
	i := sort.Search(len(p.runs), func(i int) bool { return p.runs[i].start > y })
	return p.runs[i-1].value
}

// Decode expands the pole into a dense column.
func (p *RLEPole) Decode() Column {
	col := make(Column, p.size)
	for i, r := range p.runs {
		end := p.size
		if i+1 < len(p.runs) {
			end = p.runs[i+1].start
		}
		for y := r.start; y < end; y++ {
			col[y] = r.value
		}
	}
	return col
}

// SparseGrid is a density volume that stores only columns containing at
// least one inside sample, each run-length encoded.
type SparseGrid struct {
	width, height, depth int
	poles                map[[2]int]*RLEPole
}

// NewSparseGrid creates an empty sparse grid.
func NewSparseGrid(width, height, depth int) *SparseGrid {
	return &SparseGrid{
		width:  width,
		height: height,
		depth:  depth,
		poles:  make(map[[2]int]*RLEPole),
	}
}

// Compress converts any volume into a SparseGrid.
func Compress(src Data) *SparseGrid {
	s := NewSparseGrid(src.Width(), src.Height(), src.Depth())
	samples := make([]Density, s.height)
	for z := range s.depth {
		for x := range s.width {
			pole := src.DensityPole(x, z)
			empty := true
			for y := range samples {
				samples[y] = pole.Value(y)
				if samples[y] != Outside {
					empty = false
				}
			}
			if !empty {
				s.poles[[2]int{x, z}] = NewRLEPole(samples)
			}
		}
	}
	return s
}

// Width returns the size along X.
func (s *SparseGrid) Width() int { return s.width }

// Height returns the size along Y.
func (s *SparseGrid) Height() int { return s.height }

// Depth returns the size along Z.
func (s *SparseGrid) Depth() int { return s.depth }

// SetPole replaces the column at (x, z). An all-outside column is dropped.
func (s *SparseGrid) SetPole(x, z int, samples []Density) {
	key := [2]int{x, z}
	for _, v := range samples {
		if v != Outside {
			s.poles[key] = NewRLEPole(samples)
			return
		}
	}
	delete(s.poles, key)
}

// DensityPole returns the column at (x, z).
func (s *SparseGrid) DensityPole(x, z int) Pole {
	if p, ok := s.poles[[2]int{x, z}]; ok {
		return p
	}
	return emptyPole{}
}

// StoredPoles returns the number of non-empty columns.
func (s *SparseGrid) StoredPoles() int { return len(s.poles) }
