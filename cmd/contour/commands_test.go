package main

import (
	"path/filepath"
	"testing"

	"github.com/tanzfisch/Igor-sub001/internal/config"
	"github.com/tanzfisch/Igor-sub001/pkg/contour"
	"github.com/tanzfisch/Igor-sub001/pkg/formats"
	"github.com/tanzfisch/Igor-sub001/pkg/math"
	"github.com/tanzfisch/Igor-sub001/pkg/mesh"
	"github.com/tanzfisch/Igor-sub001/pkg/voxel"
)

func sphereMesh(t *testing.T) *mesh.Mesh {
	t.Helper()
	g := voxel.NewGrid(12, 12, 12)
	voxel.FillSphere(g, [3]float32{6, 6, 6}, 4)

	e := contour.NewEngine()
	e.SetVoxelData(g)
	m, err := e.Compile(math.Vec3i{}, math.Vec3i{X: 12, Y: 12, Z: 12}, 0, 0)
	if err != nil || m == nil {
		t.Fatalf("Compile = %v, %v", m, err)
	}
	return m
}

func TestPostProcess(t *testing.T) {
	src := sphereMesh(t)

	for _, mode := range []string{"planar", "spherical", "spherical_normals"} {
		t.Run(mode, func(t *testing.T) {
			m := postProcess(src, config.MeshConfig{Texcoords: mode, PlanarAxis: "y"})
			if m.TexUnits != 1 {
				t.Fatalf("TexUnits = %d, want 1", m.TexUnits)
			}
			if m.TriangleCount != src.TriangleCount {
				t.Errorf("TriangleCount = %d, want %d", m.TriangleCount, src.TriangleCount)
			}
			if !m.HasNormals {
				t.Error("normals lost")
			}
		})
	}

	if m := postProcess(src, config.MeshConfig{Texcoords: "none"}); m != src {
		t.Error("mode none should return the mesh unchanged")
	}
}

func TestNextLODSource(t *testing.T) {
	g := voxel.NewGrid(8, 8, 8)
	voxel.FillHalfSpace(g, 4)
	cfg := config.Default()

	if src, err := nextLODSource(cfg, g); err != nil || src != nil {
		t.Errorf("empty source = %v, %v, want nil", src, err)
	}

	cfg.NextLOD.Source = "downsample"
	src, err := nextLODSource(cfg, g)
	if err != nil || src == nil {
		t.Fatalf("downsample = %v, %v", src, err)
	}
	if src.Width() != 5 {
		t.Errorf("downsampled width = %d, want 5", src.Width())
	}

	path := filepath.Join(t.TempDir(), "coarse.vxd")
	if err := formats.WriteVXDFile(path, voxel.Downsample(g), true); err != nil {
		t.Fatal(err)
	}
	cfg.NextLOD.Source = path
	src, err = nextLODSource(cfg, g)
	if err != nil {
		t.Fatalf("file source: %v", err)
	}
	if src.DensityPole(2, 2).Value(1) != voxel.Full {
		t.Error("file source lost inside samples")
	}

	cfg.NextLOD.Source = filepath.Join(t.TempDir(), "missing.vxd")
	if _, err := nextLODSource(cfg, g); err == nil {
		t.Error("expected error for missing next LOD file")
	}
}

func TestParseAxis(t *testing.T) {
	tests := map[string]mesh.Axis{"x": mesh.AxisX, "Y": mesh.AxisY, "z": mesh.AxisZ, "": mesh.AxisY}
	for in, want := range tests {
		if got := parseAxis(in); got != want {
			t.Errorf("parseAxis(%q) = %s, want %s", in, got, want)
		}
	}
}
