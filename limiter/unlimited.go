package limiter

import (
	"github.com/gocfd2d/fvm2d/gradient"
	"github.com/gocfd2d/fvm2d/mesh"
	"github.com/gocfd2d/fvm2d/physics"
)

// Unlimited extrapolates each cell's primitive state linearly to the face
// using its gradient, with no clamping.
type Unlimited struct{}

func (Unlimited) FaceValues(m mesh.View, w, wGhost []physics.Primitive, grad []gradient.Grad, uL, uR []physics.Primitive) {
	nelem := m.NElem()
	for f := 0; f < m.NAFace(); f++ {
		left, right, _, _ := m.Face(f)
		fx, fy := faceMid(m, f)
		clx, cly := m.CellCenter(left)
		uL[f] = extrapolate(w[left], grad[left], fx-clx, fy-cly)
		if right < nelem {
			crx, cry := m.CellCenter(right)
			uR[f] = extrapolate(w[right], grad[right], fx-crx, fy-cry)
		}
	}
}
