// Package limiter reconstructs second-order face-side primitive states from
// cell-centered primitives and their gradients, limiting the extrapolation
// to avoid introducing new extrema near discontinuities.
package limiter

import (
	"github.com/gocfd2d/fvm2d/gradient"
	"github.com/gocfd2d/fvm2d/mesh"
	"github.com/gocfd2d/fvm2d/physics"
)

// Scheme fills uL, uR (both indexed by face id) with the reconstructed
// primitive state on each side of every face. uL always comes from the
// left cell's extrapolation; on interior faces uR comes from the right
// cell's extrapolation, on boundary faces uR is left untouched by the
// scheme (the caller fills it from the ghost state produced by the face's
// boundary condition).
type Scheme interface {
	FaceValues(m mesh.View, w, wGhost []physics.Primitive, grad []gradient.Grad, uL, uR []physics.Primitive)
}

func faceMid(m mesh.View, f int) (x, y float64) {
	_, _, na, nb := m.Face(f)
	return (m.Coord(na, 0) + m.Coord(nb, 0)) / 2, (m.Coord(na, 1) + m.Coord(nb, 1)) / 2
}

func extrapolate(w physics.Primitive, g gradient.Grad, dx, dy float64) physics.Primitive {
	var out physics.Primitive
	for k := 0; k < physics.NVars; k++ {
		out[k] = w[k] + g[k][0]*dx + g[k][1]*dy
	}
	return out
}
