package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/tanzfisch/Igor-sub001/internal/batch"
	"github.com/tanzfisch/Igor-sub001/internal/config"
	"github.com/tanzfisch/Igor-sub001/internal/logger"
	"github.com/tanzfisch/Igor-sub001/pkg/contour"
	"github.com/tanzfisch/Igor-sub001/pkg/formats"
	"github.com/tanzfisch/Igor-sub001/pkg/math"
	"github.com/tanzfisch/Igor-sub001/pkg/mesh"
	"github.com/tanzfisch/Igor-sub001/pkg/voxel"
)

func cmdInfo(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: contour info <file.vxd>")
	}

	vxd, err := formats.ParseVXDFile(args[0])
	if err != nil {
		return err
	}

	total := int(vxd.Width) * int(vxd.Height) * int(vxd.Depth)
	inside := vxd.InsideCount()
	sparse := vxd.Sparse()

	fmt.Printf("Volume:  %s\n", args[0])
	fmt.Printf("Version: %s\n", vxd.Version)
	fmt.Printf("Size:    %dx%dx%d\n", vxd.Width, vxd.Height, vxd.Depth)
	fmt.Printf("Inside:  %d of %d samples (%.1f%%)\n", inside, total, 100*float64(inside)/float64(total))
	fmt.Printf("Columns: %d of %d non-empty\n", sparse.StoredPoles(), int(vxd.Width)*int(vxd.Depth))
	return nil
}

// setup parses the shared flags, loads the config and starts logging.
func setup(name string, args []string) (*config.Config, *flag.FlagSet, error) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	flags := config.RegisterFlags(fs)
	fs.Parse(args)

	cfg, err := config.Load(flags)
	if err != nil {
		return nil, nil, err
	}

	opts := logger.Options{
		Level:   cfg.Logging.Level,
		Console: true,
		JSON:    cfg.Logging.JSON,
	}
	if cfg.Logging.LogFile != "" {
		opts.File = logger.DefaultFileConfig(cfg.Logging.LogFile)
	}
	if err := logger.InitWithOptions(opts); err != nil {
		return nil, nil, err
	}
	return cfg, fs, nil
}

// nextLODSource resolves next_lod.source against the fine volume.
func nextLODSource(cfg *config.Config, fine voxel.Data) (voxel.Data, error) {
	switch cfg.NextLOD.Source {
	case "":
		return nil, nil
	case "downsample":
		return voxel.Downsample(fine), nil
	default:
		vxd, err := formats.ParseVXDFile(cfg.NextLOD.Source)
		if err != nil {
			return nil, fmt.Errorf("next LOD volume: %w", err)
		}
		return vxd.Sparse(), nil
	}
}

func vec3i(v [3]int) math.Vec3i {
	return math.Vec3i{X: v[0], Y: v[1], Z: v[2]}
}

func cmdMesh(args []string) error {
	cfg, fs, err := setup("mesh", args)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if fs.NArg() < 2 {
		return fmt.Errorf("usage: contour mesh [flags] <file.vxd> <out.obj>")
	}

	vxd, err := formats.ParseVXDFile(fs.Arg(0))
	if err != nil {
		return err
	}
	data := vxd.Grid()

	nextLOD, err := nextLODSource(cfg, data)
	if err != nil {
		return err
	}

	pos := vec3i(cfg.Chunk.Pos)
	volume := vec3i(cfg.Chunk.Volume)
	if volume == (math.Vec3i{}) {
		volume = math.Vec3i{X: data.Width(), Y: data.Height(), Z: data.Depth()}.Sub(pos)
	}

	e := contour.NewEngine()
	e.SetLogger(logger.Named("engine"))
	e.SetVoxelData(data)
	if nextLOD != nil {
		e.SetVoxelDataNextLOD(nextLOD)
		e.SetNextLODVoxelOffset(vec3i(cfg.NextLOD.VoxelOffset))
	}

	start := time.Now()
	m, err := e.Compile(pos, volume, cfg.Chunk.LOD, contour.ParseNeighborLOD(cfg.Chunk.NeighborLODs))
	if err != nil {
		return err
	}
	if m == nil {
		logger.Info("chunk is empty, nothing written", zap.Stringer("pos", pos), zap.Stringer("volume", volume))
		return nil
	}
	m = postProcess(m, cfg.Mesh)

	if err := formats.WriteOBJFile(fs.Arg(1), m, strings.TrimSuffix(filepath.Base(fs.Arg(1)), ".obj")); err != nil {
		return err
	}
	logger.Info("mesh written",
		zap.String("path", fs.Arg(1)),
		zap.Int("vertices", m.VertexCount),
		zap.Int("triangles", m.TriangleCount),
		zap.Float32("radius", m.BoundingSphere.Radius),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}

// postProcess adds texture coordinates according to the mesh config.
func postProcess(m *mesh.Mesh, cfg config.MeshConfig) *mesh.Mesh {
	if cfg.Texcoords == "none" || cfg.Texcoords == "" {
		return m
	}

	b := mesh.NewBuilder()
	b.SetLogger(logger.Named("mesh"))
	b.AddMesh(m)
	center := m.BoundingSphere.Center

	switch cfg.Texcoords {
	case "planar":
		b.CalcPlanarTextureCoordinates(center, parseAxis(cfg.PlanarAxis), 0)
	case "spherical":
		b.CalcSphericalTexcoordsByPosition(center, 0)
	case "spherical_normals":
		b.CalcSphericalTexcoordsByNormals(0)
	}

	if out := b.CreateMesh(); out != nil {
		return out
	}
	return m
}

func parseAxis(s string) mesh.Axis {
	switch strings.ToLower(s) {
	case "x":
		return mesh.AxisX
	case "z":
		return mesh.AxisZ
	default:
		return mesh.AxisY
	}
}

func cmdDemo(args []string) error {
	cfg, _, err := setup("demo", args)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if err := os.MkdirAll(cfg.Output.Dir, 0755); err != nil {
		return err
	}

	size := vec3i(cfg.Terrain.Size)
	data := voxel.NewGrid(size.X, size.Y, size.Z)
	params := voxel.DefaultTerrainParams(cfg.Terrain.Seed)
	params.BaseHeight = cfg.Terrain.BaseHeight
	params.Amplitude = cfg.Terrain.Amplitude
	params.Scale = cfg.Terrain.Scale
	params.Octaves = cfg.Terrain.Octaves
	voxel.FillTerrain(data, params)
	logger.Info("terrain generated",
		zap.Stringer("size", size),
		zap.Int64("seed", params.Seed),
		zap.Int("inside", data.InsideCount()))

	volumePath := filepath.Join(cfg.Output.Dir, "volume.vxd")
	if err := formats.WriteVXDFile(volumePath, data, cfg.Output.CompressVXD); err != nil {
		return err
	}

	nextLOD, err := nextLODSource(cfg, data)
	if err != nil {
		return err
	}
	neighbors := contour.ParseNeighborLOD(cfg.Chunk.NeighborLODs)

	jobs := batch.Tile(size, cfg.Chunk.Size, cfg.Chunk.LOD)
	batch.BorderNeighbors(jobs, size, neighbors)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	compiler := batch.New(data, nextLOD, batch.Options{
		Workers:            cfg.Workers.Count,
		NextLODVoxelOffset: vec3i(cfg.NextLOD.VoxelOffset),
		Logger:             logger.Log,
	})
	results := compiler.Run(ctx, jobs)

	scale := math.LODScale(cfg.Chunk.LOD)
	for _, r := range results {
		if r.Err != nil || r.Mesh == nil {
			continue
		}
		m := postProcess(r.Mesh, cfg.Mesh)
		m.Translate(mgl32.Vec3{float32(r.Job.Pos.X), float32(r.Job.Pos.Y), float32(r.Job.Pos.Z)}.Mul(scale))
		path := filepath.Join(cfg.Output.Dir, r.Job.String()+".obj")
		if err := formats.WriteOBJFile(path, m, r.Job.String()); err != nil {
			return err
		}
	}

	stats := batch.Summarize(results)
	logger.Info("demo finished",
		zap.String("dir", cfg.Output.Dir),
		zap.Int("chunks", stats.Chunks),
		zap.Int("empty", stats.Empty),
		zap.Int("failed", stats.Failed),
		zap.Int("vertices", stats.Vertices),
		zap.Int("triangles", stats.Triangles),
		zap.Duration("elapsed", time.Since(start)))
	if stats.Failed > 0 {
		return fmt.Errorf("%d of %d chunks failed", stats.Failed, stats.Chunks)
	}
	return nil
}

func cmdConfig(args []string) error {
	cfg := config.Default()
	if len(args) == 0 {
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Printf("Wrote default config to %s\n", config.ConfigDir())
		return nil
	}
	if err := cfg.SaveTo(args[0]); err != nil {
		return err
	}
	fmt.Printf("Wrote default config to %s\n", args[0])
	return nil
}
