// Package mesh provides the read-only unstructured hybrid-mesh topology
// consumed by the spatial discretization: cell areas and centers, a face
// list with boundary faces ordered before interior faces, outward normals
// and lengths, a ghost-cell index range for boundary faces, and a periodic
// face-pairing map.
package mesh

// View is the read-only mesh accessor the spatial assembler depends on. It
// never mutates the mesh; all topology is fixed at construction time by a
// Builder.
type View interface {
	NElem() int
	NBFace() int
	NAFace() int
	GNNofa() int
	Area(c int) float64
	FaceMetric(f int) (nx, ny, length float64)
	Face(f int) (left, right, nodeA, nodeB int)
	FaceMarker(f int) int
	Normal(f int) (nx, ny float64)
	Coord(node, dim int) float64
	PeriodicMap(f int) int
	Esuel(c, localFace int) int
	CellCenter(c int) (x, y float64)
}

// Point is a 2D mesh vertex or cell-center coordinate.
type Point struct {
	X, Y float64
}

// Face holds the fixed topology and geometry of one mesh face. Boundary
// faces (index < NBFace) carry a nonzero Marker and a synthetic Right index
// in [NElem, NElem+NBFace). Interior faces carry Marker == 0.
type Face struct {
	Left, Right    int
	NodeA, NodeB   int
	Nx, Ny, Length float64
	Marker         int
	Periodic       int // index of the paired boundary face, or -1
}

// Mesh is the concrete, immutable-after-construction implementation of View
// produced by Builder.
type Mesh struct {
	points      []Point
	cellCenters []Point
	cellArea    []float64
	faces       []Face
	nelem       int
	nbface      int
	esuel       [][]int // per-cell, per-local-face neighbor (real cell or ghost index)
	markerNames map[int]string
}

func (m *Mesh) NElem() int  { return m.nelem }
func (m *Mesh) NBFace() int { return m.nbface }
func (m *Mesh) NAFace() int { return len(m.faces) }
func (m *Mesh) GNNofa() int { return 2 }

func (m *Mesh) Area(c int) float64 { return m.cellArea[c] }

func (m *Mesh) FaceMetric(f int) (nx, ny, length float64) {
	fc := m.faces[f]
	return fc.Nx, fc.Ny, fc.Length
}

func (m *Mesh) Face(f int) (left, right, nodeA, nodeB int) {
	fc := m.faces[f]
	return fc.Left, fc.Right, fc.NodeA, fc.NodeB
}

func (m *Mesh) FaceMarker(f int) int { return m.faces[f].Marker }

func (m *Mesh) Normal(f int) (nx, ny float64) {
	fc := m.faces[f]
	return fc.Nx, fc.Ny
}

// Coord returns the dim-th coordinate (0=x, 1=y) of a mesh node, or, for
// node indices >= number of real vertices, of a cell center addressed as a
// pseudo-node (real or ghost cell id = node - number of vertices).
func (m *Mesh) Coord(node, dim int) float64 {
	if node < len(m.points) {
		p := m.points[node]
		if dim == 0 {
			return p.X
		}
		return p.Y
	}
	p := m.cellCenters[node-len(m.points)]
	if dim == 0 {
		return p.X
	}
	return p.Y
}

func (m *Mesh) PeriodicMap(f int) int { return m.faces[f].Periodic }

func (m *Mesh) Esuel(c, localFace int) int {
	row := m.esuel[c]
	if localFace < 0 || localFace >= len(row) {
		return -1
	}
	return row[localFace]
}

// CellCenter returns a real cell's centroid, or a ghost cell's reflected
// center for ghost >= NElem.
func (m *Mesh) CellCenter(c int) (x, y float64) {
	p := m.cellCenters[c]
	return p.X, p.Y
}

// MarkerName returns the boundary-marker label assigned at construction, or
// "" if the marker id is unknown.
func (m *Mesh) MarkerName(marker int) string { return m.markerNames[marker] }
