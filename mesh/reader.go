package mesh

// Load reads an SU2 grid file and builds a Mesh from it in one step. The
// periodicPairs argument is forwarded to Builder unchanged; pass nil for
// meshes with no periodic boundaries.
func Load(filename string, periodicPairs [][2]string) (*Mesh, error) {
	raw := ReadSU2(filename)
	b := &Builder{PeriodicPairs: periodicPairs}
	return b.Build(raw)
}
