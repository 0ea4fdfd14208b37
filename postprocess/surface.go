// Package postprocess extracts wall surface data and aerodynamic force
// coefficients from a converged (or in-progress) flow field: pressure and
// skin-friction coefficients along a marked wall, and the lift and
// pressure/friction drag coefficients obtained by integrating them.
package postprocess

import (
	"math"

	"github.com/gocfd2d/fvm2d/gradient"
	"github.com/gocfd2d/fvm2d/mesh"
	"github.com/gocfd2d/fvm2d/physics"
	"github.com/gocfd2d/fvm2d/viscous"
)

// SurfacePoint is one boundary-face sample along a wall: its midpoint and
// its pressure and skin-friction coefficients.
type SurfacePoint struct {
	X, Y   float64
	Cp, Cf float64
}

// ComputeSurfaceData walks every boundary face tagged wallMarker and
// returns the lift coefficient, the pressure and friction drag
// coefficients (decomposed separately so a caller can report each), and a
// per-face surface record suitable for plotting Cp/Cf distributions.
// visc may be nil for an inviscid run, in which case Cf is zero everywhere
// and Cdf is zero. alpha is the freestream angle of attack in radians,
// used to resolve the integrated force into lift/drag axes.
func ComputeSurfaceData(m mesh.View, g *physics.Gas, u []physics.State, grads []gradient.Grad, visc *viscous.Evaluator, wallMarker int, alpha float64) (CL, Cdp, Cdf float64, pts []SurfacePoint) {
	pInf := g.Pressure(g.FreestreamState(alpha))
	const qInf = 0.5 // 0.5*rho_inf*|V_inf|^2 with rho_inf=1, |V_inf|=1 in this nondimensionalization

	var fxp, fyp, fxf, fyf float64
	for f := 0; f < m.NBFace(); f++ {
		if m.FaceMarker(f) != wallMarker {
			continue
		}
		left, _, na, nb := m.Face(f)
		nx, ny, length := m.FaceMetric(f)
		midx := (m.Coord(na, 0) + m.Coord(nb, 0)) / 2
		midy := (m.Coord(na, 1) + m.Coord(nb, 1)) / 2

		p := g.Pressure(u[left])
		cp := (p - pInf) / qInf
		fxp += -(p - pInf) * nx * length
		fyp += -(p - pInf) * ny * length

		var cf float64
		if visc != nil {
			grad := grads[left]
			mu := visc.Mu(u[left])
			gradV := [physics.NDim][physics.NDim]float64{
				{grad[1][0], grad[2][0]},
				{grad[1][1], grad[2][1]},
			}
			tau := physics.StressTensor(mu, gradV)
			tx := tau[0][0]*nx + tau[0][1]*ny
			ty := tau[1][0]*nx + tau[1][1]*ny
			fxf += tx * length
			fyf += ty * length
			tn := tx*nx + ty*ny
			ttx, tty := tx-tn*nx, ty-tn*ny
			cf = math.Hypot(ttx, tty) / qInf
		}

		pts = append(pts, SurfacePoint{X: midx, Y: midy, Cp: cp, Cf: cf})
	}

	sinA, cosA := math.Sin(alpha), math.Cos(alpha)
	CL = (-fxp*sinA + fyp*cosA + (-fxf*sinA + fyf*cosA)) / qInf
	Cdp = (fxp*cosA + fyp*sinA) / qInf
	Cdf = (fxf*cosA + fyf*sinA) / qInf
	return
}
