package limiter

import (
	"github.com/gocfd2d/fvm2d/gradient"
	"github.com/gocfd2d/fvm2d/mesh"
	"github.com/gocfd2d/fvm2d/physics"
)

// VanAlbada is a MUSCL-type limiter applied along the line connecting each
// face's two cells: the forward estimate (twice the one-sided gradient
// projection, less the actual cell-to-cell difference) and the backward
// estimate (the actual difference) are blended with the van Albada
// limiter, which is smooth and free of the clipping at extrema that plain
// minmod shows.
type VanAlbada struct{}

const vanAlbadaEps = 1.e-12

func vanAlbada(d1, d2 float64) float64 {
	return (d1*(d2*d2+vanAlbadaEps) + d2*(d1*d1+vanAlbadaEps)) / (d1*d1 + d2*d2 + 2*vanAlbadaEps)
}

func (VanAlbada) FaceValues(m mesh.View, w, wGhost []physics.Primitive, grad []gradient.Grad, uL, uR []physics.Primitive) {
	nelem := m.NElem()
	for f := 0; f < m.NAFace(); f++ {
		left, right, _, _ := m.Face(f)
		clx, cly := m.CellCenter(left)
		crx, cry := m.CellCenter(right)
		dx, dy := crx-clx, cry-cly

		for k := 0; k < physics.NVars; k++ {
			var other float64
			if right < nelem {
				other = w[right][k]
			} else {
				other = wGhost[right-nelem][k]
			}
			d2 := other - w[left][k]
			d1 := 2*(grad[left][k][0]*dx+grad[left][k][1]*dy) - d2
			uL[f][k] = w[left][k] + 0.5*vanAlbada(d1, d2)
		}

		if right < nelem {
			for k := 0; k < physics.NVars; k++ {
				d2 := w[left][k] - w[right][k]
				d1 := 2*(grad[right][k][0]*(-dx)+grad[right][k][1]*(-dy)) - d2
				uR[f][k] = w[right][k] + 0.5*vanAlbada(d1, d2)
			}
		}
	}
}
