package formats

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/tanzfisch/Igor-sub001/pkg/mesh"
)

// WriteOBJ writes a compiled mesh as a Wavefront OBJ object named name.
// Normals and the first texture unit are written when present.
func WriteOBJ(w io.Writer, m *mesh.Mesh, name string) error {
	bw := bufio.NewWriter(w)

	if name != "" {
		fmt.Fprintf(bw, "o %s\n", name)
	}
	for i := 0; i < m.VertexCount; i++ {
		p := m.Position(i)
		fmt.Fprintf(bw, "v %g %g %g\n", p.X(), p.Y(), p.Z())
	}
	if m.HasNormals {
		for i := 0; i < m.VertexCount; i++ {
			n, _ := m.Normal(i)
			fmt.Fprintf(bw, "vn %g %g %g\n", n.X(), n.Y(), n.Z())
		}
	}
	hasUV := m.TexUnits > 0
	if hasUV {
		for i := 0; i < m.VertexCount; i++ {
			uv, _ := m.TexCoord(i, 0)
			fmt.Fprintf(bw, "vt %g %g\n", uv.X(), uv.Y())
		}
	}

	for i := 0; i < m.TriangleCount; i++ {
		bw.WriteString("f")
		for _, idx := range m.Triangle(i) {
			n := idx + 1
			switch {
			case m.HasNormals && hasUV:
				fmt.Fprintf(bw, " %d/%d/%d", n, n, n)
			case m.HasNormals:
				fmt.Fprintf(bw, " %d//%d", n, n)
			case hasUV:
				fmt.Fprintf(bw, " %d/%d", n, n)
			default:
				fmt.Fprintf(bw, " %d", n)
			}
		}
		bw.WriteString("\n")
	}

	return bw.Flush()
}

// WriteOBJFile writes a compiled mesh to an OBJ file on disk.
func WriteOBJFile(path string, m *mesh.Mesh, name string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating OBJ file: %w", err)
	}
	if err := WriteOBJ(f, m, name); err != nil {
		f.Close()
		return fmt.Errorf("writing OBJ file: %w", err)
	}
	return f.Close()
}
