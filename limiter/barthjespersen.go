package limiter

import (
	"math"

	"github.com/gocfd2d/fvm2d/gradient"
	"github.com/gocfd2d/fvm2d/mesh"
	"github.com/gocfd2d/fvm2d/physics"
)

// cellExtrema returns, per cell and per variable, the min and max of the
// cell's own value and every face-neighbor's value (real or ghost).
func cellExtrema(m mesh.View, w, wGhost []physics.Primitive) (umin, umax [][physics.NVars]float64) {
	nelem := m.NElem()
	umin = make([][physics.NVars]float64, nelem)
	umax = make([][physics.NVars]float64, nelem)
	for c := 0; c < nelem; c++ {
		umin[c] = [physics.NVars]float64(w[c])
		umax[c] = [physics.NVars]float64(w[c])
	}
	update := func(c int, v physics.Primitive) {
		for k := 0; k < physics.NVars; k++ {
			if v[k] < umin[c][k] {
				umin[c][k] = v[k]
			}
			if v[k] > umax[c][k] {
				umax[c][k] = v[k]
			}
		}
	}
	for f := 0; f < m.NAFace(); f++ {
		left, right, _, _ := m.Face(f)
		var other physics.Primitive
		if right < nelem {
			other = w[right]
			update(right, w[left])
		} else {
			other = wGhost[right-nelem]
		}
		update(left, other)
	}
	return
}

// barthPsi returns the Barth-Jespersen clamp factor for one face of a cell:
// how much of the unlimited increment delta can be applied without the
// extrapolated value leaving [umin, umax].
func barthPsi(delta, umaxC, uminC, uc float64) float64 {
	switch {
	case delta > 1.e-14:
		return math.Min(1, (umaxC-uc)/delta)
	case delta < -1.e-14:
		return math.Min(1, (uminC-uc)/delta)
	default:
		return 1
	}
}

// BarthJespersen clamps each cell's gradient by a single scalar factor per
// variable, the smallest face-wise clamp needed to keep every extrapolated
// face value within the range spanned by the cell and its neighbors.
type BarthJespersen struct{}

func (BarthJespersen) FaceValues(m mesh.View, w, wGhost []physics.Primitive, grad []gradient.Grad, uL, uR []physics.Primitive) {
	nelem := m.NElem()
	umin, umax := cellExtrema(m, w, wGhost)
	phi := make([][physics.NVars]float64, nelem)
	for c := range phi {
		for k := range phi[c] {
			phi[c][k] = 1
		}
	}
	for f := 0; f < m.NAFace(); f++ {
		left, right, _, _ := m.Face(f)
		fx, fy := faceMid(m, f)
		for _, side := range [2]int{left, right} {
			if side >= nelem {
				continue
			}
			cx, cy := m.CellCenter(side)
			dx, dy := fx-cx, fy-cy
			for k := 0; k < physics.NVars; k++ {
				delta := grad[side][k][0]*dx + grad[side][k][1]*dy
				p := barthPsi(delta, umax[side][k], umin[side][k], w[side][k])
				if p < phi[side][k] {
					phi[side][k] = p
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

func limitedExtrapolate(w physics.Primitive, g gradient.Grad, phi [physics.NVars]float64, dx, dy float64) physics.Primitive {
	var out physics.Primitive
	for k := 0; k < physics.NVars; k++ {
		out[k] = w[k] + phi[k]*(g[k][0]*dx+g[k][1]*dy)
	}
	return out
}
