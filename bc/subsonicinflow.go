package bc

import (
	"math"

	"github.com/gocfd2d/fvm2d/physics"
)

// SubsonicInflow imposes total pressure and total temperature at a
// boundary where the flow is constrained normal to the face (Blazek,
// "Computational Fluid Dynamics: Principles and Applications", sec. 8.4).
// The outgoing Riemann invariant R- = v_n - 2c/(γ-1) is extrapolated from
// the interior and combined with the stagnation conditions to solve for
// the boundary sound speed, hence the full boundary state.
type SubsonicInflow struct {
	Gas      *physics.Gas
	Ptotal   float64
	Ttotal   float64
}

// solve returns the boundary (rhoB, vnB, pB) and those three quantities'
// derivatives (drhoB, dvnB, dpB) with respect to the extrapolated Riemann
// invariant Rm.
func (b SubsonicInflow) solve(rm float64) (rhoB, vnB, pB, drhoB, dvnB, dpB float64) {
	g := b.Gas
	gamma := g.Gamma
	gm1 := gamma - 1
	R := g.RGasND()

	A := 1 + 2/gm1
	B := 2 * rm
	C := 0.5*gm1*rm*rm - gamma*R*b.Ttotal
	disc := B*B - 4*A*C
	if disc < 0 {
		disc = 0
	}
	sq := math.Sqrt(disc)
	cB := (-B + sq) / (2 * A)

	vnB = rm + 2*cB/gm1
	TB := cB * cB / (gamma * R)
	pB = b.Ptotal * math.Pow(TB/b.Ttotal, gamma/gm1)
	rhoB = pB / (R * TB)

	// dc/dRm
	dBdRm, dCdRm := 2.0, gm1*rm
	dcdRm := (-dBdRm + (2*B*dBdRm-4*A*dCdRm)/(2*sq)) / (2 * A)
	dvnB = 1 + 2/gm1*dcdRm
	dTBdRm := 2 * cB / (gamma * R) * dcdRm
	dpB = pB * (gamma / gm1) * dTBdRm / TB
	drhoB = dpB/(R*TB) - pB*dTBdRm/(R*TB*TB)
	return
}

func (b SubsonicInflow) ghostState(uI physics.State, nx, ny float64) (physics.State, float64) {
	w := b.Gas.ToPrimitive(uI)
	vnI := w[1]*nx + w[2]*ny
	cI := b.Gas.SoundSpeed(uI)
	rm := vnI - 2*cI/(b.Gas.Gamma-1)

	rhoB, vnB, pB, _, _, _ := b.solve(rm)
	ug := physics.State{
		rhoB,
		rhoB * vnB * nx,
		rhoB * vnB * ny,
		pB/(b.Gas.Gamma-1) + 0.5*rhoB*vnB*vnB,
	}
	return ug, rm
}

func (b SubsonicInflow) Ghost(uI physics.State, nx, ny float64) physics.State {
	ug, _ := b.ghostState(uI, nx, ny)
	return ug
}

func (b SubsonicInflow) GhostJacobian(uI physics.State, nx, ny float64) (physics.State, physics.Jacobian4) {
	ug, rm := b.ghostState(uI, nx, ny)
	rhoB, vnB, _, drhoB, dvnB, dpB := b.solve(rm)

	// dRm/du_i: Rm = vn_i - 2*c_i/(gamma-1)
	rho := uI[0]
	vn := (uI[1]*nx + uI[2]*ny) / rho
	dcdu := b.Gas.SoundSpeedJacobian(uI)
	var dRmDu [4]float64
	dRmDu[0] = -vn/rho - 2/(b.Gas.Gamma-1)*dcdu[0]
	dRmDu[1] = nx/rho - 2/(b.Gas.Gamma-1)*dcdu[1]
	dRmDu[2] = ny/rho - 2/(b.Gas.Gamma-1)*dcdu[2]
	dRmDu[3] = -2 / (b.Gas.Gamma - 1) * dcdu[3]

	// d(ug)/dRm
	var dUgDRm [4]float64
	dUgDRm[0] = drhoB
	dUgDRm[1] = drhoB*vnB*nx + rhoB*dvnB*nx
	dUgDRm[2] = drhoB*vnB*ny + rhoB*dvnB*ny
	dUgDRm[3] = dpB/(b.Gas.Gamma-1) + 0.5*drhoB*vnB*vnB + rhoB*vnB*dvnB

	var j physics.Jacobian4
	for k := 0; k < 4; k++ {
		for l := 0; l < 4; l++ {
			j[k][l] = dUgDRm[k] * dRmDu[l]
		}
	}
	return ug, j
}
