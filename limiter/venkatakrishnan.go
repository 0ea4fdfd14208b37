package limiter

import (
	"math"

	"github.com/gocfd2d/fvm2d/gradient"
	"github.com/gocfd2d/fvm2d/mesh"
	"github.com/gocfd2d/fvm2d/physics"
)

// Venkatakrishnan is the smooth variant of Barth-Jespersen: the clamp is a
// rational function of the unlimited increment and the distance to the
// nearer extremum, regularized by a threshold that scales with (K·h)^3 so
// it does not trigger in smooth flow regions.
type Venkatakrishnan struct {
	K float64
}

func venkatPsi(delta, umaxC, uminC, uc, eps2 float64) float64 {
	var y float64
	switch {
	case delta > 1.e-14:
		y = umaxC - uc
	case delta < -1.e-14:
		y = uminC - uc
	default:
		return 1
	}
	num := (y*y+eps2)*delta + 2*delta*delta*y
	den := y*y + 2*delta*delta + y*delta + eps2
	if den == 0 {
		return 1
	}
	return num / (delta * den)
}

func (v Venkatakrishnan) FaceValues(m mesh.View, w, wGhost []physics.Primitive, grad []gradient.Grad, uL, uR []physics.Primitive) {
	nelem := m.NElem()
	umin, umax := cellExtrema(m, w, wGhost)
	phi := make([][physics.NVars]float64, nelem)
	for c := range phi {
		for k := range phi[c] {
			phi[c][k] = 1
		}
	}
	k := v.K
	if k <= 0 {
		k = 5
	}
	for f := 0; f < m.NAFace(); f++ {
		left, right, _, _ := m.Face(f)
		fx, fy := faceMid(m, f)
		for _, side := range [2]int{left, right} {
			if side >= nelem {
				continue
			}
			h := math.Sqrt(m.Area(side))
			eps2 := math.Pow(k*h, 3)
			cx, cy := m.CellCenter(side)
			dx, dy := fx-cx, fy-cy
			for vv := 0; vv < physics.NVars; vv++ {
				delta := grad[side][vv][0]*dx + grad[side][vv][1]*dy
				p := venkatPsi(delta, umax[side][vv], umin[side][vv], w[side][vv], eps2)
				p = math.Max(0, math.Min(1, p))
				if p < phi[side][vv] {
					phi[side][vv] = p
				}
			}
		}
	}
	for f := 0; f < m.NAFace(); f++ {
		left, right, _, _ := m.Face(f)
		fx, fy := faceMid(m, f)
		clx, cly := m.CellCenter(left)
		uL[f] = limitedExtrapolate(w[left], grad[left], phi[left], fx-clx, fy-cly)
		if right < nelem {
			crx, cry := m.CellCenter(right)
			uR[f] = limitedExtrapolate(w[right], grad[right], phi[right], fx-crx, fy-cry)
		}
	}
}
