// Package contour extracts the density > 0 iso-surface of a voxel chunk as a
// triangle mesh using contouring cubes.
//
// The engine walks the chunk column by column with a 3x3x3 sample window.
// Every 2x2x2 cube of samples gets one vertex, the average of the surface
// crossings on its edges, and every sample transition between the window
// center and its east, up or north neighbor emits the quad joining the four
// cubes around that edge. Chunks bordering a coarser level of detail move
// their boundary vertices onto the coarse surface so both meshes meet.
package contour

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/tanzfisch/Igor-sub001/pkg/math"
	"github.com/tanzfisch/Igor-sub001/pkg/mesh"
	"github.com/tanzfisch/Igor-sub001/pkg/voxel"
)

// Window indices of the samples compared at every step. The window is
// indexed y*9 + z*3 + x.
const (
	pivotCenter = 13
	pivotEast   = 14
	pivotNorth  = 16
	pivotUp     = 22
)

// quadCorners lists the cube slots (cy*4 + cz*2 + cx) forming the quad
// a, b, c, d around the transition edge leaving the center along X, Y and Z.
var quadCorners = [3][4]int{
	{1, 5, 7, 3},
	{4, 6, 7, 5},
	{2, 3, 7, 6},
}

// Engine turns chunks of voxel data into meshes. It keeps scratch state
// between steps and must not be used from more than one goroutine.
type Engine struct {
	data               voxel.Data
	nextLOD            voxel.Data
	nextLODVoxelOffset math.Vec3i

	builder *mesh.Builder
	keep    []uint32

	// per compile
	pos          math.Vec3i
	volume       math.Vec3i
	scale        float32
	offset       mgl32.Vec3
	neighborLODs NeighborLOD

	// per step
	poles   [9]voxel.Pole
	density [27]voxel.Density
	center  math.Vec3i // chunk-local
	top     int        // absolute y of window level 2

	vertexPositions [8]mgl32.Vec3
	vertexVisible   [8]bool

	nextLODDensity         [64]voxel.Density
	vertexPositionsNextLOD [27]mgl32.Vec3
	vertexVisibleNextLOD   [27]bool

	log *zap.Logger
}

// NewEngine creates an engine without voxel data.
func NewEngine() *Engine {
	b := mesh.NewBuilder()
	b.SetJoinVertices(true)
	return &Engine{
		builder: b,
		log:     zap.NewNop(),
	}
}

// SetLogger sets the logger used by the engine and its mesh builder.
func (e *Engine) SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	e.log = l
	e.builder.SetLogger(l)
}

// SetVoxelData binds the voxel data chunks are compiled from.
func (e *Engine) SetVoxelData(d voxel.Data) {
	e.data = d
}

// SetVoxelDataNextLOD binds the voxel data of the next coarser level of
// detail, needed when compiling with neighbor LOD flags.
func (e *Engine) SetVoxelDataNextLOD(d voxel.Data) {
	e.nextLOD = d
}

// SetNextLODVoxelOffset sets the offset added to coarse voxel coordinates
// before they are looked up in the next LOD voxel data.
func (e *Engine) SetNextLODVoxelOffset(offset math.Vec3i) {
	e.nextLODVoxelOffset = offset
}

// Reset drops all per-compile state. Bound voxel data is kept.
func (e *Engine) Reset() {
	e.builder.Clear()
	e.keep = e.keep[:0]
	e.poles = [9]voxel.Pole{}
	e.density = [27]voxel.Density{}
	e.vertexVisible = [8]bool{}
	e.vertexVisibleNextLOD = [27]bool{}
}

// Compile extracts the surface of the chunk at pos with the given volume,
// including a one voxel margin on every side. lod scales and offsets the
// resulting vertices; neighborLODs flags the faces bordering a coarser
// chunk.
//
// An empty chunk yields a nil mesh and a nil error.
func (e *Engine) Compile(pos, volume math.Vec3i, lod uint, neighborLODs NeighborLOD) (*mesh.Mesh, error) {
	if e.data == nil {
		return nil, fmt.Errorf("compile %s: %w", pos, ErrMissingPrecondition)
	}
	if neighborLODs != 0 && e.nextLOD == nil {
		return nil, fmt.Errorf("compile %s with neighbor LODs %s: next LOD %w", pos, neighborLODs, ErrMissingPrecondition)
	}

	bounds := math.Vec3i{X: e.data.Width(), Y: e.data.Height(), Z: e.data.Depth()}
	if pos.AnyNegative() || volume.AnyNegative() || !pos.Add(volume).Fits(bounds) {
		e.log.Error("invalid chunk range",
			zap.Stringer("pos", pos),
			zap.Stringer("volume", volume),
			zap.Stringer("bounds", bounds))
		return nil, fmt.Errorf("compile %s volume %s in %s: %w", pos, volume, bounds, ErrInvalidRange)
	}

	e.Reset()
	e.pos = pos
	e.volume = volume
	e.scale = math.LODScale(lod)
	e.offset = math.LODOffset(lod)
	e.neighborLODs = neighborLODs

	marching := volume.AddScalar(-2)
	for mz := 0; mz < marching.Z; mz++ {
		for mx := 0; mx < marching.X; mx++ {
			e.startClimb(mx, mz)
			for my := 0; my < marching.Y; my++ {
				e.climb()
				e.generateGeometry()
			}
		}
	}

	if len(e.keep) == 0 {
		return nil, nil
	}

	e.builder.NormalizeNormals()
	m := e.builder.CreateMeshSubset(e.keep)
	e.log.Debug("compiled chunk",
		zap.Stringer("pos", pos),
		zap.Stringer("volume", volume),
		zap.Uint("lod", lod),
		zap.Int("vertices", m.VertexCount),
		zap.Int("triangles", m.TriangleCount))
	return m, nil
}

// startClimb binds the 3x3 poles of column (mx, mz) and loads the two lowest
// samples into the upper window levels. The first climb completes the
// window.
func (e *Engine) startClimb(mx, mz int) {
	x0, z0 := e.pos.X+mx, e.pos.Z+mz
	for z := range 3 {
		for x := range 3 {
			e.poles[z*3+x] = e.data.DensityPole(x0+x, z0+z)
		}
	}
	e.center = math.Vec3i{X: mx + 1, Y: 0, Z: mz + 1}
	e.top = e.pos.Y + 1
	e.loadLevel(1, e.pos.Y)
	e.loadLevel(2, e.top)
}

// climb moves the window up one sample.
func (e *Engine) climb() {
	copy(e.density[:18], e.density[9:])
	e.top++
	e.center.Y++
	e.loadLevel(2, e.top)
}

func (e *Engine) loadLevel(level, y int) {
	for i, p := range e.poles {
		e.density[level*9+i] = p.Value(y)
	}
}

// stepFaces narrows the neighbor flags to the faces the current window
// touches.
func (e *Engine) stepFaces() NeighborLOD {
	if e.neighborLODs == 0 {
		return 0
	}
	var faces NeighborLOD
	for d := range dirCount {
		if !e.neighborLODs.hasDirection(d) {
			continue
		}
		c := e.center.Component(d.axis())
		if d.positive() && c == e.volume.Component(d.axis())-2 || !d.positive() && c == 1 {
			faces |= 1 << d
		}
	}
	return faces
}

// cubeFaces returns the faces of faces that cube slot lies on.
func (e *Engine) cubeFaces(faces NeighborLOD, slot int) NeighborLOD {
	cube := [3]int{slot & 1, slot >> 2, (slot >> 1) & 1}
	var touched NeighborLOD
	for d := range dirCount {
		if !faces.hasDirection(d) {
			continue
		}
		if d.positive() == (cube[d.axis()] == 1) {
			touched |= 1 << d
		}
	}
	return touched
}

func (e *Engine) generateGeometry() {
	center := e.density[pivotCenter] != voxel.Outside
	transitions := [3]bool{
		center != (e.density[pivotEast] != voxel.Outside),
		center != (e.density[pivotUp] != voxel.Outside),
		center != (e.density[pivotNorth] != voxel.Outside),
	}
	if !transitions[0] && !transitions[1] && !transitions[2] {
		return
	}

	e.calculateVertices()
	faces := e.stepFaces()
	if faces != 0 {
		e.calculateNextLOD()
	}

	for axis, crossed := range transitions {
		if crossed {
			e.emitQuad(axis, center, faces)
		}
	}
}

// corner resolves the vertex of cube slot, moving it onto the coarse surface
// when the cube lies on a face bordering a coarser chunk or when the cube
// has no vertex of its own. Without a coarse vertex in any overlapping coarse
// cube the fine vertex is kept.
func (e *Engine) corner(slot int, faces NeighborLOD) (mgl32.Vec3, bool) {
	fine, ok := e.vertexPositions[slot], e.vertexVisible[slot]
	if faces == 0 {
		return fine, ok
	}
	touched := e.cubeFaces(faces, slot)
	if touched == 0 {
		if ok {
			return fine, true
		}
		touched = faces
	}

	abs := e.pos.Add(e.center)
	parity := [3]int{abs.X & 1, abs.Y & 1, abs.Z & 1}
	cands, n := seamCandidates(touched, parity, slot)

	// nearest coarse vertex among the overlapping coarse cubes, first on ties
	best, found := mgl32.Vec3{}, false
	var bestDist float32
	for _, c := range cands[:n] {
		if !e.vertexVisibleNextLOD[c] {
			continue
		}
		p := e.vertexPositionsNextLOD[c]
		if !ok {
			return p, true
		}
		if d := p.Sub(fine).LenSqr(); !found || d < bestDist {
			best, bestDist, found = p, d, true
		}
	}
	if found {
		return best, true
	}
	return fine, ok
}

func (e *Engine) emitQuad(axis int, centerInside bool, faces NeighborLOD) {
	var idx [4]uint32
	for i, slot := range quadCorners[axis] {
		p, ok := e.corner(slot, faces)
		if !ok {
			return
		}
		n := e.builder.VertexCount()
		idx[i] = e.builder.AddVertex(p.Mul(e.scale).Add(e.offset))
		if e.builder.VertexCount() > n {
			// start from zero so AccumulateNormal only sums face normals
			e.builder.SetNormal(idx[i], mgl32.Vec3{})
		}
	}

	a, b, c, d := idx[0], idx[1], idx[2], idx[3]
	if centerInside {
		e.addTriangle(a, b, c)
		e.addTriangle(a, c, d)
	} else {
		e.addTriangle(c, b, a)
		e.addTriangle(d, c, a)
	}
}

func (e *Engine) addTriangle(a, b, c uint32) {
	t, ok := e.builder.AddTriangle(a, b, c)
	if !ok {
		return
	}
	pa, pb, pc := e.builder.Vertex(a), e.builder.Vertex(b), e.builder.Vertex(c)
	n := pb.Sub(pa).Cross(pc.Sub(pa))
	e.builder.AccumulateNormal(a, n)
	e.builder.AccumulateNormal(b, n)
	e.builder.AccumulateNormal(c, n)
	e.keep = append(e.keep, uint32(t))
}
