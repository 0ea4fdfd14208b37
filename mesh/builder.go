package mesh

import (
	"fmt"
	"math"
	"sort"
)

// Builder assembles a Mesh from a RawMesh: it builds the face list with
// boundary faces ordered before interior faces, assigns ghost-cell indices,
// computes outward normals and lengths, and resolves a periodic face map
// from caller-supplied marker pairs.
type Builder struct {
	// PeriodicPairs names markers whose boundary faces should be treated as
	// mutually periodic, matched by their position within each marker's
	// edge list (the convention used by periodic SU2 meshes, where
	// corresponding faces are emitted in matching order on each side).
	PeriodicPairs [][2]string
}

// NewBuilder returns a Builder with no periodic pairing.
func NewBuilder() *Builder { return &Builder{} }

type edgeRec struct {
	cell, local int
}

// Build converts raw into an immutable Mesh, or returns an error describing
// the first topological inconsistency found (non-manifold edge, dangling
// boundary edge, or unresolved periodic pairing).
func (b *Builder) Build(raw RawMesh) (*Mesh, error) {
	cellVerts := make([][]int, 0, len(raw.Triangles)+len(raw.Quads))
	for _, t := range raw.Triangles {
		cellVerts = append(cellVerts, []int{t[0], t[1], t[2]})
	}
	for _, q := range raw.Quads {
		cellVerts = append(cellVerts, []int{q[0], q[1], q[2], q[3]})
	}
	nelem := len(cellVerts)
	if nelem == 0 {
		return nil, fmt.Errorf("mesh: no cells")
	}

	centers := make([]Point, nelem)
	areas := make([]float64, nelem)
	for c, verts := range cellVerts {
		centers[c], areas[c] = polygonCentroidArea(raw.Points, verts)
		if areas[c] <= 0 {
			return nil, fmt.Errorf("mesh: cell %d has non-positive area", c)
		}
	}

	edgeMap := make(map[[2]int][]edgeRec)
	addEdge := func(cell, local, a, b int) {
		key := edgeKey(a, b)
		edgeMap[key] = append(edgeMap[key], edgeRec{cell, local})
	}
	for c, verts := range cellVerts {
		n := len(verts)
		for i := 0; i < n; i++ {
			addEdge(c, i, verts[i], verts[(i+1)%n])
		}
	}

	var faces []Face
	markerNames := make(map[int]string)
	markerID := make(map[string]int)
	faceIdxByMarkerOrder := make(map[string][]int)

	markerKeys := make([]string, 0, len(raw.BoundaryEdges))
	for k := range raw.BoundaryEdges {
		markerKeys = append(markerKeys, k)
	}
	sort.Strings(markerKeys)

	for _, label := range markerKeys {
		id := len(markerNames) + 1
		markerID[label] = id
		markerNames[id] = label
		for _, ve := range raw.BoundaryEdges[label] {
			key := edgeKey(ve[0], ve[1])
			recs, ok := edgeMap[key]
			if !ok || len(recs) == 0 {
				return nil, fmt.Errorf("mesh: boundary edge (%d,%d) on marker %q not found in any cell", ve[0], ve[1], label)
			}
			if len(recs) != 1 {
				return nil, fmt.Errorf("mesh: boundary edge (%d,%d) on marker %q is shared by %d cells", ve[0], ve[1], label, len(recs))
			}
			rec := recs[0]
			ghost := nelem + len(faces)
			nx, ny, length := faceNormal(raw.Points, ve[0], ve[1], centers[rec.cell], nil)
			faceIdxByMarkerOrder[label] = append(faceIdxByMarkerOrder[label], len(faces))
			faces = append(faces, Face{
				Left: rec.cell, Right: ghost,
				NodeA: ve[0], NodeB: ve[1],
				Nx: nx, Ny: ny, Length: length,
				Marker: id, Periodic: -1,
			})
			delete(edgeMap, key)
		}
	}
	nbface := len(faces)

	// Ghost cell centers are the reflection of the adjoining real cell's
	// center about the boundary face midpoint, per the mesh contract.
	for _, f := range faces[:nbface] {
		pa, pb := raw.Points[f.NodeA], raw.Points[f.NodeB]
		mid := Point{(pa.X + pb.X) / 2, (pa.Y + pb.Y) / 2}
		left := centers[f.Left]
		centers = append(centers, Point{2*mid.X - left.X, 2*mid.Y - left.Y})
	}

	for key, recs := range edgeMap {
		switch len(recs) {
		case 2:
			a, bRec := recs[0], recs[1]
			nx, ny, length := faceNormal(raw.Points, key[0], key[1], centers[a.cell], &centers[bRec.cell])
			faces = append(faces, Face{
				Left: a.cell, Right: bRec.cell,
				NodeA: key[0], NodeB: key[1],
				Nx: nx, Ny: ny, Length: length,
				Marker: 0, Periodic: -1,
			})
		case 1:
			return nil, fmt.Errorf("mesh: dangling edge (%d,%d) on cell %d has no boundary marker", key[0], key[1], recs[0].cell)
		default:
			return nil, fmt.Errorf("mesh: non-manifold edge (%d,%d) shared by %d cells", key[0], key[1], len(recs))
		}
	}

	for _, pair := range b.PeriodicPairs {
		a, ok1 := faceIdxByMarkerOrder[pair[0]]
		c, ok2 := faceIdxByMarkerOrder[pair[1]]
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("mesh: periodic pair (%q,%q) references unknown marker", pair[0], pair[1])
		}
		if len(a) != len(c) {
			return nil, fmt.Errorf("mesh: periodic pair (%q,%q) has mismatched face counts %d/%d", pair[0], pair[1], len(a), len(c))
		}
		for i := range a {
			faces[a[i]].Periodic = c[i]
			faces[c[i]].Periodic = a[i]
		}
	}

	esuel := make([][]int, nelem)
	for c, verts := range cellVerts {
		esuel[c] = make([]int, len(verts))
		for i := range esuel[c] {
			esuel[c][i] = -1
		}
	}
	for fi, f := range faces {
		leftLocal := localFaceIndex(cellVerts[f.Left], f.NodeA, f.NodeB)
		esuel[f.Left][leftLocal] = f.Right
		if fi >= nbface {
			rightLocal := localFaceIndex(cellVerts[f.Right], f.NodeA, f.NodeB)
			esuel[f.Right][rightLocal] = f.Left
		}
	}

	m := &Mesh{
		points:      raw.Points,
		cellCenters: centers,
		cellArea:    areas,
		faces:       faces,
		nelem:       nelem,
		nbface:      nbface,
		esuel:       esuel,
		markerNames: markerNames,
	}
	return m, nil
}

func edgeKey(a, b int) [2]int {
	if a < b {
		return [2]int{a, b}
	}
	return [2]int{b, a}
}

func localFaceIndex(verts []int, a, b int) int {
	n := len(verts)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		if (verts[i] == a && verts[j] == b) || (verts[i] == b && verts[j] == a) {
			return i
		}
	}
	return -1
}

func polygonCentroidArea(pts []Point, verts []int) (center Point, area float64) {
	n := len(verts)
	var a, cx, cy float64
	for i := 0; i < n; i++ {
		p0 := pts[verts[i]]
		p1 := pts[verts[(i+1)%n]]
		cross := p0.X*p1.Y - p1.X*p0.Y
		a += cross
		cx += (p0.X + p1.X) * cross
		cy += (p0.Y + p1.Y) * cross
	}
	a *= 0.5
	if a == 0 {
		return Point{}, 0
	}
	cx /= 6 * a
	cy /= 6 * a
	return Point{cx, cy}, math.Abs(a)
}

// faceNormal returns the unit outward normal and length of edge (a,b).
// leftCenter anchors the orientation: the normal points away from the left
// cell. If rightCenter is non-nil (interior face) the normal is additionally
// forced to point toward the right cell, which is consistent for a
// conforming mesh.
func faceNormal(pts []Point, a, b int, leftCenter Point, rightCenter *Point) (nx, ny, length float64) {
	pa, pb := pts[a], pts[b]
	ex, ey := pb.X-pa.X, pb.Y-pa.Y
	length = math.Hypot(ex, ey)
	nx, ny = ey/length, -ex/length
	mid := Point{(pa.X + pb.X) / 2, (pa.Y + pb.Y) / 2}
	out := Point{mid.X - leftCenter.X, mid.Y - leftCenter.Y}
	if nx*out.X+ny*out.Y < 0 {
		nx, ny = -nx, -ny
	}
	if rightCenter != nil {
		dir := Point{rightCenter.X - leftCenter.X, rightCenter.Y - leftCenter.Y}
		if nx*dir.X+ny*dir.Y < 0 {
			nx, ny = -nx, -ny
		}
	}
	return
}
