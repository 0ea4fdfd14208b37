package mesh

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// su2ElementType mirrors the element-type codes used by the SU2 mesh file
// format (https://su2code.github.io/docs_v7/Mesh-File/).
type su2ElementType int

const (
	su2Line          su2ElementType = 3
	su2Triangle      su2ElementType = 5
	su2Quadrilateral su2ElementType = 9
)

// RawMesh is the intermediate representation produced by a mesh reader and
// consumed by Builder. Element vertex lists are 0-based.
type RawMesh struct {
	Points    []Point
	Triangles [][3]int
	Quads     [][4]int
	// BoundaryEdges maps a marker label to its ordered list of boundary
	// edges, each a pair of 0-based vertex indices.
	BoundaryEdges map[string][][2]int
}

// ReadSU2 parses the SU2 ASCII unstructured-grid format: NDIME, NPOIN,
// NELEM and NMARK sections, with 2D triangle and quadrilateral elements and
// line boundary elements. It panics on malformed input, matching the
// fail-fast behavior of a one-shot startup file reader.
func ReadSU2(filename string) (raw RawMesh) {
	file, err := os.Open(filename)
	if err != nil {
		panic(fmt.Errorf("mesh: unable to open %s: %w", filename, err))
	}
	defer file.Close()
	reader := bufio.NewReader(file)

	ndim := readNumber(reader, "NDIME")
	if ndim != 2 {
		panic(fmt.Errorf("mesh: only 2D meshes are supported, got NDIME=%d", ndim))
	}
	raw.Triangles, raw.Quads = readSU2Elements(reader)
	raw.Points = readSU2Points(reader)
	raw.BoundaryEdges = readSU2Markers(reader)
	return
}

func readSU2Elements(reader *bufio.Reader) (tris [][3]int, quads [][4]int) {
	n := readNumber(reader, "NELEM")
	for i := 0; i < n; i++ {
		line := su2Line2(reader)
		fields := strings.Fields(line)
		var nType int
		fmt.Sscanf(fields[0], "%d", &nType)
		switch su2ElementType(nType) {
		case su2Triangle:
			var v [3]int
			for k := 0; k < 3; k++ {
				fmt.Sscanf(fields[k+1], "%d", &v[k])
			}
			tris = append(tris, v)
		case su2Quadrilateral:
			var v [4]int
			for k := 0; k < 4; k++ {
				fmt.Sscanf(fields[k+1], "%d", &v[k])
			}
			quads = append(quads, v)
		default:
			panic(fmt.Errorf("mesh: unsupported element type %d", nType))
		}
	}
	return
}

func readSU2Points(reader *bufio.Reader) (pts []Point) {
	n := readNumber(reader, "NPOIN")
	pts = make([]Point, n)
	for i := 0; i < n; i++ {
		line := su2Line2(reader)
		var x, y float64
		if _, err := fmt.Sscanf(line, "%f %f", &x, &y); err != nil {
			panic(fmt.Errorf("mesh: unable to read point %d: %w", i, err))
		}
		pts[i] = Point{x, y}
	}
	return
}

func readSU2Markers(reader *bufio.Reader) map[string][][2]int {
	edges := make(map[string][][2]int)
	nmark := readNumber(reader, "NMARK")
	for i := 0; i < nmark; i++ {
		label := readLabel(reader, "MARKER_TAG")
		nElem := readNumber(reader, "MARKER_ELEMS")
		list := make([][2]int, nElem)
		for e := 0; e < nElem; e++ {
			line := su2Line2(reader)
			var nType, v1, v2 int
			if _, err := fmt.Sscanf(line, "%d %d %d", &nType, &v1, &v2); err != nil {
				panic(fmt.Errorf("mesh: unable to read boundary edge: %w", err))
			}
			if su2ElementType(nType) != su2Line {
				panic("mesh: boundary elements must be lines in 2D")
			}
			list[e] = [2]int{v1, v2}
		}
		edges[label] = append(edges[label], list...)
	}
	return edges
}

func su2Line2(reader *bufio.Reader) string {
	for {
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			panic(fmt.Errorf("mesh: unexpected end of file"))
		}
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "%") {
			if err != nil {
				panic(fmt.Errorf("mesh: unexpected end of file"))
			}
			continue
		}
		return line
	}
}

func readNumber(reader *bufio.Reader, want string) int {
	line := su2Line2(reader)
	ind := strings.Index(line, "=")
	if ind < 0 {
		panic(fmt.Errorf("mesh: expected %s=..., got %q", want, line))
	}
	var n int
	if _, err := fmt.Sscanf(strings.TrimSpace(line[ind+1:]), "%d", &n); err != nil {
		panic(fmt.Errorf("mesh: unable to parse %s: %w", want, err))
	}
	return n
}

func readLabel(reader *bufio.Reader, want string) string {
	line := su2Line2(reader)
	ind := strings.Index(line, "=")
	if ind < 0 {
		panic(fmt.Errorf("mesh: expected %s=..., got %q", want, line))
	}
	return strings.TrimSpace(line[ind+1:])
}
