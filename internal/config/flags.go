package config

import "flag"

// Flags are the command line overrides shared by all subcommands.
type Flags struct {
	Config    string
	Debug     bool
	LOD       int
	Neighbors string
	NextLOD   string
	Workers   int
	Out       string
	Seed      int64
	ChunkSize int
}

// RegisterFlags defines the override flags on fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{}
	fs.StringVar(&f.Config, "config", "", "Path to config file")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.IntVar(&f.LOD, "lod", -1, "Level of detail of the compiled chunks")
	fs.StringVar(&f.Neighbors, "neighbors", "", "Faces bordering a coarser LOD, e.g. X+|Z-")
	fs.StringVar(&f.NextLOD, "next-lod", "", "Next LOD source: downsample or a .vxd path")
	fs.IntVar(&f.Workers, "workers", 0, "Number of parallel workers")
	fs.StringVar(&f.Out, "out", "", "Output directory")
	fs.Int64Var(&f.Seed, "seed", 0, "Terrain seed for the demo volume")
	fs.IntVar(&f.ChunkSize, "chunk-size", 0, "Chunk size when tiling a volume")
	return f
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config, f *Flags) {
	if f == nil {
		return
	}
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.LOD >= 0 {
		cfg.Chunk.LOD = uint(f.LOD)
	}
	if f.Neighbors != "" {
		cfg.Chunk.NeighborLODs = f.Neighbors
	}
	if f.NextLOD != "" {
		cfg.NextLOD.Source = f.NextLOD
	}
	if f.Workers > 0 {
		cfg.Workers.Count = f.Workers
	}
	if f.Out != "" {
		cfg.Output.Dir = f.Out
	}
	if f.Seed != 0 {
		cfg.Terrain.Seed = f.Seed
	}
	if f.ChunkSize > 0 {
		cfg.Chunk.Size = f.ChunkSize
	}
}
