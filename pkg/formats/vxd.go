package formats

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"os"

	"github.com/tanzfisch/Igor-sub001/pkg/voxel"
)

// VXD format errors.
var (
	ErrInvalidVXDMagic       = errors.New("invalid VXD magic: expected 'VXD1'")
	ErrUnsupportedVXDVersion = errors.New("unsupported VXD version")
	ErrTruncatedVXDData      = errors.New("truncated VXD data")
)

const vxdMagic = "VXD1"

// maxVXDDimension bounds every axis of a volume.
const maxVXDDimension = 4096

// minVXDColumnSize is the smallest encoded compressed column: a uint16 run
// count and one run of uint16 length and uint8 value.
const minVXDColumnSize = 5

// VXDVersion represents the VXD file version.
type VXDVersion struct {
	Major uint8
	Minor uint8
}

// String returns the version as "Major.Minor".
func (v VXDVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// Supported versions. 1.0 stores raw samples, 1.1 run-length encodes each
// column.
var (
	VXDVersionRaw        = VXDVersion{Major: 1, Minor: 0}
	VXDVersionCompressed = VXDVersion{Major: 1, Minor: 1}
)

// Compressed reports whether columns are stored run-length encoded.
func (v VXDVersion) Compressed() bool {
	return v.Major == 1 && v.Minor >= 1
}

// VXD represents a parsed voxel density volume.
//
// Samples are stored y-major: index y*Depth*Width + z*Width + x.
type VXD struct {
	Version VXDVersion
	Width   uint32
	Height  uint32
	Depth   uint32
	Samples []voxel.Density
}

// Get returns the sample at (x, y, z), or voxel.Outside when out of bounds.
func (v *VXD) Get(x, y, z int) voxel.Density {
	if x < 0 || y < 0 || z < 0 || x >= int(v.Width) || y >= int(v.Height) || z >= int(v.Depth) {
		return voxel.Outside
	}
	return v.Samples[v.index(x, y, z)]
}

func (v *VXD) index(x, y, z int) int {
	return (y*int(v.Depth)+z)*int(v.Width) + x
}

// InsideCount returns the number of samples with a non-zero density.
func (v *VXD) InsideCount() int {
	n := 0
	for _, s := range v.Samples {
		if s != voxel.Outside {
			n++
		}
	}
	return n
}

// Grid copies the volume into a dense voxel grid.
func (v *VXD) Grid() *voxel.Grid {
	g := voxel.NewGrid(int(v.Width), int(v.Height), int(v.Depth))
	g.Fill(v.Get)
	return g
}

// Sparse copies the volume into a run-length encoded voxel grid.
func (v *VXD) Sparse() *voxel.SparseGrid {
	return voxel.Compress(v.Grid())
}

// ParseVXD parses a VXD file from raw bytes.
func ParseVXD(data []byte) (*VXD, error) {
	if len(data) < 18 {
		return nil, ErrTruncatedVXDData
	}

	if string(data[0:4]) != vxdMagic {
		return nil, ErrInvalidVXDMagic
	}

	version := VXDVersion{
		Major: data[4],
		Minor: data[5],
	}
	if version.Major != 1 || version.Minor > 1 {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedVXDVersion, version)
	}

	r := bytes.NewReader(data[6:])

	var dims [3]uint32
	if err := binary.Read(r, binary.LittleEndian, &dims); err != nil {
		return nil, fmt.Errorf("%w: reading dimensions", ErrTruncatedVXDData)
	}
	for _, d := range dims {
		if d == 0 || d > maxVXDDimension {
			return nil, fmt.Errorf("invalid VXD dimensions: %dx%dx%d", dims[0], dims[1], dims[2])
		}
	}

	vxd := &VXD{
		Version: version,
		Width:   dims[0],
		Height:  dims[1],
		Depth:   dims[2],
	}
	count := int(dims[0]) * int(dims[1]) * int(dims[2])

	if !version.Compressed() {
		if r.Len() < count {
			return nil, fmt.Errorf("%w: %d of %d samples", ErrTruncatedVXDData, r.Len(), count)
		}
		vxd.Samples = make([]voxel.Density, count)
		r.Read(vxd.Samples)
		return vxd, nil
	}

	// every column holds a run count and at least one run
	columns := int(dims[0]) * int(dims[2])
	if r.Len() < minVXDColumnSize*columns {
		return nil, fmt.Errorf("%w: %d bytes for %d columns", ErrTruncatedVXDData, r.Len(), columns)
	}
	vxd.Samples = make([]voxel.Density, count)
	for z := 0; z < int(vxd.Depth); z++ {
		for x := 0; x < int(vxd.Width); x++ {
			if err := vxd.readColumn(r, x, z); err != nil {
				return nil, fmt.Errorf("parsing column (%d, %d): %w", x, z, err)
			}
		}
	}
	return vxd, nil
}

// readColumn reads one run-length encoded column: a uint16 run count
// followed by (uint16 length, uint8 value) runs covering the full height.
func (v *VXD) readColumn(r *bytes.Reader, x, z int) error {
	var runs uint16
	if err := binary.Read(r, binary.LittleEndian, &runs); err != nil {
		return fmt.Errorf("%w: reading run count", ErrTruncatedVXDData)
	}
	y := 0
	for i := 0; i < int(runs); i++ {
		var length uint16
		if err := binary.Read(r, binary.LittleEndian, &length); err != nil {
			return fmt.Errorf("%w: reading run %d", ErrTruncatedVXDData, i)
		}
		value, err := r.ReadByte()
		if err != nil {
			return fmt.Errorf("%w: reading run %d", ErrTruncatedVXDData, i)
		}
		if y+int(length) > int(v.Height) {
			return fmt.Errorf("run %d overflows column height %d", i, v.Height)
		}
		for end := y + int(length); y < end; y++ {
			v.Samples[v.index(x, y, z)] = value
		}
	}
	if y != int(v.Height) {
		return fmt.Errorf("runs cover %d of %d samples", y, v.Height)
	}
	return nil
}

// ParseVXDFile parses a VXD file from disk.
func ParseVXDFile(path string) (*VXD, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading VXD file: %w", err)
	}
	return ParseVXD(data)
}

// EncodeVXD serializes a volume. With compressed set every column is
// run-length encoded (version 1.1), otherwise samples are stored raw.
func EncodeVXD(src voxel.Data, compressed bool) ([]byte, error) {
	w, h, d := src.Width(), src.Height(), src.Depth()
	for _, n := range []int{w, h, d} {
		if n <= 0 || n > maxVXDDimension {
			return nil, fmt.Errorf("invalid VXD dimensions: %dx%dx%d", w, h, d)
		}
	}

	version := VXDVersionRaw
	if compressed {
		version = VXDVersionCompressed
	}

	buf := new(bytes.Buffer)
	buf.WriteString(vxdMagic)
	buf.WriteByte(version.Major)
	buf.WriteByte(version.Minor)
	binary.Write(buf, binary.LittleEndian, [3]uint32{uint32(w), uint32(h), uint32(d)})

	if !compressed {
		samples := make([]byte, w*h*d)
		for z := range d {
			for x := range w {
				pole := src.DensityPole(x, z)
				for y := range h {
					samples[(y*d+z)*w+x] = pole.Value(y)
				}
			}
		}
		buf.Write(samples)
		return buf.Bytes(), nil
	}

	column := make([]voxel.Density, h)
	for z := range d {
		for x := range w {
			pole := src.DensityPole(x, z)
			for y := range column {
				column[y] = pole.Value(y)
			}
			writeColumn(buf, column)
		}
	}
	return buf.Bytes(), nil
}

func writeColumn(buf *bytes.Buffer, column []voxel.Density) {
	type run struct {
		length uint16
		value  uint8
	}
	var runs []run
	for _, v := range column {
		if n := len(runs); n > 0 && runs[n-1].value == v {
			runs[n-1].length++
			continue
		}
		runs = append(runs, run{1, v})
	}
	binary.Write(buf, binary.LittleEndian, uint16(len(runs)))
	for _, r := range runs {
		binary.Write(buf, binary.LittleEndian, r.length)
		buf.WriteByte(r.value)
	}
}

// WriteVXDFile writes a volume to disk.
func WriteVXDFile(path string, src voxel.Data, compressed bool) error {
	data, err := EncodeVXD(src, compressed)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing VXD file: %w", err)
	}
	return nil
}
