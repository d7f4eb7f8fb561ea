// Package config handles loading and saving the contour tool settings.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// Config holds all contour tool settings.
type Config struct {
	Chunk   ChunkConfig   `yaml:"chunk"`
	NextLOD NextLODConfig `yaml:"next_lod"`
	Mesh    MeshConfig    `yaml:"mesh"`
	Workers WorkersConfig `yaml:"workers"`
	Terrain TerrainConfig `yaml:"terrain"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// ChunkConfig selects what part of a volume is compiled.
type ChunkConfig struct {
	Pos          [3]int `yaml:"pos"`
	Volume       [3]int `yaml:"volume"` // zero means the whole volume
	Size         int    `yaml:"size"`   // tile size when splitting a volume into chunks
	LOD          uint   `yaml:"lod"`
	NeighborLODs string `yaml:"neighbor_lods"` // e.g. "X+|Z-"
}

// NextLODConfig describes the coarser volume used for seam stitching.
type NextLODConfig struct {
	Source      string `yaml:"source"` // "downsample", a .vxd path or empty
	VoxelOffset [3]int `yaml:"voxel_offset"`
}

// MeshConfig holds post-processing applied to compiled meshes.
type MeshConfig struct {
	Texcoords  string `yaml:"texcoords"` // none, planar, spherical or spherical_normals
	PlanarAxis string `yaml:"planar_axis"`
}

// WorkersConfig controls parallel chunk compilation.
type WorkersConfig struct {
	Count int `yaml:"count"` // zero uses one worker per CPU
}

// TerrainConfig controls the procedural volume of the demo command.
type TerrainConfig struct {
	Seed       int64   `yaml:"seed"`
	Size       [3]int  `yaml:"size"`
	BaseHeight float32 `yaml:"base_height"`
	Amplitude  float32 `yaml:"amplitude"`
	Scale      float64 `yaml:"scale"`
	Octaves    int     `yaml:"octaves"`
}

// OutputConfig holds output locations.
type OutputConfig struct {
	Dir         string `yaml:"dir"`
	CompressVXD bool   `yaml:"compress_vxd"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
	JSON    bool   `yaml:"json"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Chunk: ChunkConfig{
			Size: 32,
		},
		Mesh: MeshConfig{
			Texcoords:  "none",
			PlanarAxis: "y",
		},
		Terrain: TerrainConfig{
			Seed:       1,
			Size:       [3]int{128, 64, 128},
			BaseHeight: 24,
			Amplitude:  16,
			Scale:      1.0 / 32.0,
			Octaves:    4,
		},
		Output: OutputConfig{
			Dir:         "out",
			CompressVXD: true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

var texcoordModes = []string{"none", "planar", "spherical", "spherical_normals"}

// Validate reports settings no command can work with.
func (c *Config) Validate() error {
	var errs []error
	for i, v := range c.Chunk.Pos {
		if v < 0 {
			errs = append(errs, fmt.Errorf("chunk.pos[%d] is negative", i))
		}
	}
	for i, v := range c.Chunk.Volume {
		if v < 0 {
			errs = append(errs, fmt.Errorf("chunk.volume[%d] is negative", i))
		}
	}
	if c.Chunk.Size < 3 {
		errs = append(errs, fmt.Errorf("chunk.size %d is below 3", c.Chunk.Size))
	}
	if c.Workers.Count < 0 {
		errs = append(errs, fmt.Errorf("workers.count %d is negative", c.Workers.Count))
	}
	for i, v := range c.Terrain.Size {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("terrain.size[%d] must be positive", i))
		}
	}
	valid := false
	for _, m := range texcoordModes {
		if c.Mesh.Texcoords == m {
			valid = true
		}
	}
	if !valid {
		errs = append(errs, fmt.Errorf("mesh.texcoords %q is not one of %s", c.Mesh.Texcoords, strings.Join(texcoordModes, ", ")))
	}
	switch strings.ToLower(c.Mesh.PlanarAxis) {
	case "x", "y", "z":
	default:
		errs = append(errs, fmt.Errorf("mesh.planar_axis %q is not x, y or z", c.Mesh.PlanarAxis))
	}
	return errors.Join(errs...)
}
