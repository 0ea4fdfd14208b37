package limiter

import (
	"math"

	"github.com/gocfd2d/fvm2d/gradient"
	"github.com/gocfd2d/fvm2d/mesh"
	"github.com/gocfd2d/fvm2d/physics"
)

// WENO blends the cell's own linear (gradient) extrapolation with the
// constant (first-order) candidate using nonlinear weights derived from a
// smoothness indicator, in the style of central-WENO limiters for
// unstructured finite volumes: the smoother candidate gets (nearly) all
// the weight, and P controls how sharply the blend favors it.
type WENO struct {
	P float64 // nonlinearity exponent; larger P sharpens the blend toward the smoother candidate
}

func (s WENO) FaceValues(m mesh.View, w, wGhost []physics.Primitive, grad []gradient.Grad, uL, uR []physics.Primitive) {
	p := s.P
	if p <= 0 {
		p = 2
	}
	nelem := m.NElem()
	for f := 0; f < m.NAFace(); f++ {
		left, right, _, _ := m.Face(f)
		fx, fy := faceMid(m, f)
		clx, cly := m.CellCenter(left)
		uL[f] = wenoBlend(w[left], grad[left], fx-clx, fy-cly, p)
		if right < nelem {
			crx, cry := m.CellCenter(right)
			uR[f] = wenoBlend(w[right], grad[right], fx-crx, fy-cry, p)
		}
	}
}

// Ideal linear weights: in a smooth field the full linear reconstruction
// should dominate (second-order accuracy); only a discontinuity's large
// smoothness indicator should pull weight toward the constant candidate.
const (
	wenoIdealConst  = 0.001
	wenoIdealLinear = 0.999
)

// wenoBlend combines the constant candidate u_c (smoothness indicator
// always 0) with the linear candidate u_c + ∇u_c·d (smoothness indicator
// |∇u_c·d|², growing with the jump the linear reconstruction implies),
// using nonlinear weights d_k/(eps+IS_k)^p normalized to sum to 1.
func wenoBlend(w physics.Primitive, g gradient.Grad, dx, dy, p float64) physics.Primitive {
	const eps = 1.e-8
	var out physics.Primitive
	for k := 0; k < physics.NVars; k++ {
		linear := g[k][0]*dx + g[k][1]*dy
		isLinear := linear * linear
		wConst := wenoIdealConst / math.Pow(eps, p)
		wLinear := wenoIdealLinear / math.Pow(eps+isLinear, p)
		sum := wConst + wLinear
		out[k] = w[k] + (wLinear/sum)*linear
	}
	return out
}
