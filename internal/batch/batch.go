// Package batch compiles many chunks of one volume in parallel.
package batch

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"

	"github.com/tanzfisch/Igor-sub001/pkg/contour"
	"github.com/tanzfisch/Igor-sub001/pkg/math"
	"github.com/tanzfisch/Igor-sub001/pkg/mesh"
	"github.com/tanzfisch/Igor-sub001/pkg/voxel"
)

// Job is one chunk to compile.
type Job struct {
	Pos          math.Vec3i
	Volume       math.Vec3i
	LOD          uint
	NeighborLODs contour.NeighborLOD
}

// String returns a short chunk label.
func (j Job) String() string {
	return fmt.Sprintf("chunk_%d_%d_%d", j.Pos.X, j.Pos.Y, j.Pos.Z)
}

// Result is the outcome of one job. Mesh is nil for empty chunks.
type Result struct {
	Job  Job
	Mesh *mesh.Mesh
	Err  error
}

// Options configures a Compiler.
type Options struct {
	Workers            int // zero uses runtime.NumCPU
	NextLODVoxelOffset math.Vec3i
	Logger             *zap.Logger
}

// Compiler runs jobs against shared, read-only voxel data. Every running
// task borrows its own contour.Engine.
type Compiler struct {
	data    voxel.Data
	nextLOD voxel.Data
	opts    Options
	log     *zap.Logger
	engines sync.Pool
}

// New creates a compiler. nextLOD may be nil when no job has neighbor LOD
// flags.
func New(data, nextLOD voxel.Data, opts Options) *Compiler {
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	c := &Compiler{
		data:    data,
		nextLOD: nextLOD,
		opts:    opts,
		log:     log,
	}
	c.engines.New = func() any {
		e := contour.NewEngine()
		e.SetLogger(log.Named("engine"))
		e.SetVoxelData(data)
		if nextLOD != nil {
			e.SetVoxelDataNextLOD(nextLOD)
			e.SetNextLODVoxelOffset(opts.NextLODVoxelOffset)
		}
		return e
	}
	return c
}

// Run compiles jobs and returns their results in job order. Jobs not
// started before ctx is done report ctx.Err().
func (c *Compiler) Run(ctx context.Context, jobs []Job) []Result {
	pool := pond.NewResultPool[Result](c.opts.Workers)
	defer pool.StopAndWait()

	group := pool.NewGroup()
	for _, job := range jobs {
		group.Submit(func() Result {
			return c.compile(ctx, job)
		})
	}
	results, err := group.Wait()
	if err == nil {
		return results
	}

	// a panicking task stops the group; the tasks it skipped carry its error
	c.log.Error("batch aborted", zap.Int("jobs", len(jobs)), zap.Error(err))
	for i := range results {
		if results[i].Job != jobs[i] {
			results[i] = Result{Job: jobs[i], Err: err}
		}
	}
	return results
}

func (c *Compiler) compile(ctx context.Context, job Job) Result {
	if err := ctx.Err(); err != nil {
		return Result{Job: job, Err: err}
	}

	e := c.engines.Get().(*contour.Engine)
	defer c.engines.Put(e)

	m, err := e.Compile(job.Pos, job.Volume, job.LOD, job.NeighborLODs)
	if err != nil {
		c.log.Warn("chunk failed", zap.Stringer("job", job), zap.Error(err))
		return Result{Job: job, Err: err}
	}
	return Result{Job: job, Mesh: m}
}

// Tile splits a volume of the given bounds into jobs of at most size
// marching cells per axis. Neighboring chunks share a two voxel margin so
// their meshes meet without gaps.
func Tile(bounds math.Vec3i, size int, lod uint) []Job {
	if size < 1 {
		return nil
	}
	var jobs []Job
	for _, z := range tileStarts(bounds.Z, size) {
		for _, y := range tileStarts(bounds.Y, size) {
			for _, x := range tileStarts(bounds.X, size) {
				pos := math.Vec3i{X: x, Y: y, Z: z}
				jobs = append(jobs, Job{
					Pos: pos,
					Volume: math.Vec3i{
						X: min(size+2, bounds.X-x),
						Y: min(size+2, bounds.Y-y),
						Z: min(size+2, bounds.Z-z),
					},
					LOD: lod,
				})
			}
		}
	}
	return jobs
}

// BorderNeighbors sets on every job the subset of neighbors whose face lies
// on the boundary of a volume of the given bounds. Faces between two tiles
// are shared with a chunk of the same LOD and get no flag.
func BorderNeighbors(jobs []Job, bounds math.Vec3i, neighbors contour.NeighborLOD) {
	for i := range jobs {
		j := &jobs[i]
		end := j.Pos.Add(j.Volume)
		var flags contour.NeighborLOD
		for axis := range 3 {
			if end.Component(axis) == bounds.Component(axis) {
				flags |= contour.HigherNeighborLODXPositive << (2 * axis)
			}
			if j.Pos.Component(axis) == 0 {
				flags |= contour.HigherNeighborLODXNegative << (2 * axis)
			}
		}
		j.NeighborLODs = flags & neighbors
	}
}

func tileStarts(extent, size int) []int {
	var starts []int
	for p := 0; p+2 < extent; p += size {
		starts = append(starts, p)
	}
	return starts
}

// Stats sums up a batch run.
type Stats struct {
	Chunks    int
	Empty     int
	Failed    int
	Vertices  int
	Triangles int
}

// Summarize counts the results.
func Summarize(results []Result) Stats {
	s := Stats{Chunks: len(results)}
	for _, r := range results {
		switch {
		case r.Err != nil:
			s.Failed++
		case r.Mesh == nil:
			s.Empty++
		default:
			s.Vertices += r.Mesh.VertexCount
			s.Triangles += r.Mesh.TriangleCount
		}
	}
	return s
}
