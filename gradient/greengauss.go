package gradient

import (
	"math"

	"github.com/gocfd2d/fvm2d/mesh"
	"github.com/gocfd2d/fvm2d/physics"
)

// GreenGauss estimates ∇u_c by applying the divergence theorem over each
// cell: the face-averaged state ū_f (inverse-distance weighted between the
// two cells adjoining the face, or the left cell and its ghost on boundary
// faces) contributes ū_f·n_f·len_f, summed and divided by the cell area.
type GreenGauss struct {
	m mesh.View
}

// NewGreenGauss returns a Green-Gauss gradient scheme bound to m.
func NewGreenGauss(m mesh.View) *GreenGauss { return &GreenGauss{m: m} }

func (g *GreenGauss) Compute(u, uGhost []physics.State, grads []Grad) {
	for c := range grads {
		grads[c] = Grad{}
	}
	nelem := g.m.NElem()
	for f := 0; f < g.m.NAFace(); f++ {
		left, right, na, nb := g.m.Face(f)
		nx, ny, length := g.m.FaceMetric(f)

		midx := (g.m.Coord(na, 0) + g.m.Coord(nb, 0)) / 2
		midy := (g.m.Coord(na, 1) + g.m.Coord(nb, 1)) / 2
		clx, cly := g.m.CellCenter(left)
		crx, cry := g.m.CellCenter(right)
		dl := math.Hypot(clx-midx, cly-midy)
		dr := math.Hypot(crx-midx, cry-midy)
		wl := (1 / dl) / (1/dl + 1/dr)
		wr := 1 - wl

		var uR physics.State
		if right < nelem {
			uR = u[right]
		} else {
			uR = uGhost[right-nelem]
		}

		for k := 0; k < physics.NVars; k++ {
			ubar := wl*u[left][k] + wr*uR[k]
			grads[left][k][0] += ubar * nx * length
			grads[left][k][1] += ubar * ny * length
			if right < nelem {
				grads[right][k][0] -= ubar * nx * length
				grads[right][k][1] -= ubar * ny * length
			}
		}
	}
	for c := 0; c < nelem; c++ {
		invA := 1 / g.m.Area(c)
		for k := 0; k < physics.NVars; k++ {
			grads[c][k][0] *= invA
			grads[c][k][1] *= invA
		}
	}
}
