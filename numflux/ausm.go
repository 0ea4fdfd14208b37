package numflux

import (
	"math"

	"github.com/gocfd2d/fvm2d/physics"
)

// AUSM is Liou and Steffen's advection upstream splitting method: the mass
// flux and the pressure flux are split separately, and the convected
// quantities are fully upwinded by the sign of the interface Mach number.
//
// The spec calls AUSM's Jacobian unreliable, so both AUSM and AUSM+
// delegate to LLF for the implicit linearization; only the explicit
// residual uses the genuine AUSM split.
type AUSM struct {
	jac LLF
}

func ausmM1(M, sign float64) float64 { return 0.5 * (M + sign*math.Abs(M)) }
func ausmM2(M, sign float64) float64 { return sign * 0.25 * (M + sign) * (M + sign) }

func ausmMSplit(M, sign float64) float64 {
	if math.Abs(M) >= 1 {
		return ausmM1(M, sign)
	}
	return ausmM2(M, sign)
}

func ausmPSplit(M, sign float64) float64 {
	if math.Abs(M) >= 1 {
		return ausmM1(M, sign) / M
	}
	return 0.25 * (M + sign) * (M + sign) * (2 - sign*M)
}

func (AUSM) Flux(g *physics.Gas, uL, uR physics.State, nx, ny float64) physics.State {
	wL, wR := g.ToPrimitive(uL), g.ToPrimitive(uR)
	cL, cR := g.SoundSpeed(uL), g.SoundSpeed(uR)
	chalf := 0.5 * (cL + cR)
	vnL := (wL[1]*nx + wL[2]*ny) / chalf
	vnR := (wR[1]*nx + wR[2]*ny) / chalf

	mHalf := ausmMSplit(vnL, 1) + ausmMSplit(vnR, -1)
	pHalf := ausmPSplit(vnL, 1)*wL[3] + ausmPSplit(vnR, -1)*wR[3]
	mdot := mHalf * chalf

	phiL := physics.State{1, wL[1], wL[2], g.Enthalpy(uL)}
	phiR := physics.State{1, wR[1], wR[2], g.Enthalpy(uR)}
	return ausmAssemble(wL[0], wR[0], mdot, phiL, phiR, pHalf, nx, ny)
}

func ausmAssemble(rhoL, rhoR, mdot float64, phiL, phiR physics.State, pHalf, nx, ny float64) physics.State {
	rhoUp := rhoL
	phi := phiL
	if mdot < 0 {
		rhoUp = rhoR
		phi = phiR
	}
	massFlux := mdot * rhoUp
	return physics.State{
		massFlux,
		massFlux*phi[1] + pHalf*nx,
		massFlux*phi[2] + pHalf*ny,
		massFlux * phi[3],
	}
}

func (a AUSM) Jacobian(g *physics.Gas, uL, uR physics.State, nx, ny float64) (L, R physics.Jacobian4) {
	return a.jac.Jacobian(g, uL, uR, nx, ny)
}
