package formats

import (
	"bytes"
	"encoding/binary"
	"errors"
	"path/filepath"
	"testing"

	"github.com/tanzfisch/Igor-sub001/pkg/voxel"
)

// createTestVXD creates a minimal raw VXD file for testing.
func createTestVXD(width, height, depth uint32, samples []byte) []byte {
	buf := new(bytes.Buffer)

	buf.WriteString("VXD1")
	buf.WriteByte(1) // major
	buf.WriteByte(0) // minor

	binary.Write(buf, binary.LittleEndian, width)
	binary.Write(buf, binary.LittleEndian, height)
	binary.Write(buf, binary.LittleEndian, depth)

	data := make([]byte, width*height*depth)
	copy(data, samples)
	buf.Write(data)

	return buf.Bytes()
}

func TestParseVXD_ValidFile(t *testing.T) {
	// (1, 0, 0) and (0, 1, 2) inside
	samples := make([]byte, 2*2*3)
	samples[1] = 200
	samples[(1*3+2)*2] = 255
	data := createTestVXD(2, 2, 3, samples)

	vxd, err := ParseVXD(data)
	if err != nil {
		t.Fatalf("ParseVXD failed: %v", err)
	}

	if vxd.Version != VXDVersionRaw {
		t.Errorf("expected version 1.0, got %s", vxd.Version)
	}
	if vxd.Width != 2 || vxd.Height != 2 || vxd.Depth != 3 {
		t.Errorf("expected 2x2x3, got %dx%dx%d", vxd.Width, vxd.Height, vxd.Depth)
	}
	if got := vxd.Get(1, 0, 0); got != 200 {
		t.Errorf("expected sample (1,0,0) = 200, got %d", got)
	}
	if got := vxd.Get(0, 1, 2); got != 255 {
		t.Errorf("expected sample (0,1,2) = 255, got %d", got)
	}
	if got := vxd.Get(5, 0, 0); got != voxel.Outside {
		t.Errorf("expected out of range sample to be outside, got %d", got)
	}
	if got := vxd.InsideCount(); got != 2 {
		t.Errorf("expected 2 inside samples, got %d", got)
	}

	g := vxd.Grid()
	if g.Get(0, 1, 2) != 255 || g.Get(1, 0, 0) != 200 {
		t.Error("grid does not match parsed samples")
	}
}

func TestParseVXD_InvalidMagic(t *testing.T) {
	data := createTestVXD(1, 1, 1, nil)
	copy(data, "XXXX")

	if _, err := ParseVXD(data); !errors.Is(err, ErrInvalidVXDMagic) {
		t.Errorf("expected ErrInvalidVXDMagic, got %v", err)
	}
}

func TestParseVXD_UnsupportedVersion(t *testing.T) {
	data := createTestVXD(1, 1, 1, nil)
	data[4] = 2

	if _, err := ParseVXD(data); !errors.Is(err, ErrUnsupportedVXDVersion) {
		t.Errorf("expected ErrUnsupportedVXDVersion, got %v", err)
	}
}

func TestParseVXD_TruncatedData(t *testing.T) {
	if _, err := ParseVXD([]byte("VXD1")); !errors.Is(err, ErrTruncatedVXDData) {
		t.Errorf("expected ErrTruncatedVXDData for header, got %v", err)
	}

	data := createTestVXD(4, 4, 4, nil)
	if _, err := ParseVXD(data[:len(data)-1]); !errors.Is(err, ErrTruncatedVXDData) {
		t.Errorf("expected ErrTruncatedVXDData for samples, got %v", err)
	}
}

func TestParseVXD_InvalidDimensions(t *testing.T) {
	if _, err := ParseVXD(createTestVXD(0, 4, 4, nil)); err == nil {
		t.Error("expected error for zero width")
	}
}

func TestEncodeVXD_RoundTrip(t *testing.T) {
	src := voxel.NewGrid(9, 12, 7)
	voxel.FillTerrain(src, voxel.TerrainParams{
		Seed: 5, BaseHeight: 6, Amplitude: 3, Scale: 0.2, Octaves: 2, Persistence: 0.5, Lacunarity: 2,
	})

	for _, compressed := range []bool{false, true} {
		data, err := EncodeVXD(src, compressed)
		if err != nil {
			t.Fatalf("EncodeVXD(compressed=%v) failed: %v", compressed, err)
		}
		vxd, err := ParseVXD(data)
		if err != nil {
			t.Fatalf("ParseVXD(compressed=%v) failed: %v", compressed, err)
		}
		if vxd.Version.Compressed() != compressed {
			t.Errorf("expected compressed=%v, got version %s", compressed, vxd.Version)
		}
		for z := range 7 {
			for y := range 12 {
				for x := range 9 {
					if got, want := vxd.Get(x, y, z), src.Get(x, y, z); got != want {
						t.Fatalf("compressed=%v: sample (%d,%d,%d) = %d, want %d", compressed, x, y, z, got, want)
					}
				}
			}
		}
	}
}

func TestEncodeVXD_CompressedIsSmaller(t *testing.T) {
	src := voxel.NewGrid(16, 64, 16)
	voxel.FillHalfSpace(src, 20)

	raw, _ := EncodeVXD(src, false)
	packed, _ := EncodeVXD(src, true)
	if len(packed) >= len(raw) {
		t.Errorf("expected compressed size below %d, got %d", len(raw), len(packed))
	}
}

func TestParseVXD_CompressedOverflow(t *testing.T) {
	buf := new(bytes.Buffer)
	buf.WriteString("VXD1")
	buf.Write([]byte{1, 1})
	binary.Write(buf, binary.LittleEndian, [3]uint32{1, 2, 1})
	binary.Write(buf, binary.LittleEndian, uint16(1))
	binary.Write(buf, binary.LittleEndian, uint16(3)) // longer than the column
	buf.WriteByte(255)

	if _, err := ParseVXD(buf.Bytes()); err == nil {
		t.Error("expected error for run past the column height")
	}
}

func TestParseVXD_CompressedShortBody(t *testing.T) {
	tests := []struct {
		name string
		dims [3]uint32
		body []byte
	}{
		{"no body", [3]uint32{4096, 4096, 4096}, nil},
		{"one column for many", [3]uint32{4096, 1, 4096}, []byte{1, 0, 1, 0, 255}},
		{"four of six columns", [3]uint32{2, 1, 3}, make([]byte, 4*5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := new(bytes.Buffer)
			buf.WriteString("VXD1")
			buf.Write([]byte{1, 1})
			binary.Write(buf, binary.LittleEndian, tt.dims)
			buf.Write(tt.body)

			_, err := ParseVXD(buf.Bytes())
			if !errors.Is(err, ErrTruncatedVXDData) {
				t.Errorf("expected ErrTruncatedVXDData, got %v", err)
			}
		})
	}
}

func TestVXDFile_RoundTrip(t *testing.T) {
	src := voxel.NewGrid(5, 5, 5)
	src.Set(2, 2, 2, voxel.Full)

	path := filepath.Join(t.TempDir(), "single.vxd")
	if err := WriteVXDFile(path, src, true); err != nil {
		t.Fatalf("WriteVXDFile failed: %v", err)
	}
	vxd, err := ParseVXDFile(path)
	if err != nil {
		t.Fatalf("ParseVXDFile failed: %v", err)
	}
	if vxd.InsideCount() != 1 || vxd.Get(2, 2, 2) != voxel.Full {
		t.Errorf("unexpected volume contents: %d inside", vxd.InsideCount())
	}
	if got := vxd.Sparse().StoredPoles(); got != 1 {
		t.Errorf("expected 1 stored pole, got %d", got)
	}
}

func TestParseVXDFile_Missing(t *testing.T) {
	if _, err := ParseVXDFile(filepath.Join(t.TempDir(), "missing.vxd")); err == nil {
		t.Error("expected error for missing file")
	}
}
