package numflux

import (
	"math"

	"github.com/gocfd2d/fvm2d/physics"
)

// AUSMPlus is Liou's 1996 refinement of AUSM: the convective splitting is a
// quartic M4± that couples the two sides through a β parameter, and the
// pressure splitting is a fifth-degree P5± with an α parameter, giving a
// pressure-diffusion term that suppresses the odd-even decoupling AUSM can
// show at high speed.
//
// The interface speed of sound uses the average of the left/right critical
// speeds (√(2(γ-1)/(γ+1) H)) rather than Liou's upwind-switched c_{1/2};
// this is a deliberate simplification that keeps the
// scheme's qualitative behavior without the extra case analysis.
type AUSMPlus struct {
	Beta, Alpha float64
	jac         LLF
}

// NewAUSMPlus returns the scheme with Liou's recommended β=1/8, α=3/16.
func NewAUSMPlus() AUSMPlus { return AUSMPlus{Beta: 1. / 8., Alpha: 3. / 16.} }

func ausmPlusM4(M, sign, beta float64) float64 {
	if math.Abs(M) >= 1 {
		return ausmM1(M, sign)
	}
	m2p := ausmM2(M, 1)
	m2m := ausmM2(M, -1)
	if sign > 0 {
		return m2p * (1 - 16*beta*m2m)
	}
	return m2m * (1 + 16*beta*m2p)
}

func ausmPlusP5(M, sign, alpha float64) float64 {
	if math.Abs(M) >= 1 {
		return ausmM1(M, sign) / M
	}
	m2p := ausmM2(M, 1)
	m2m := ausmM2(M, -1)
	if sign > 0 {
		return m2p * ((2 - M) - 16*alpha*M*m2m)
	}
	return m2m * ((-2 - M) + 16*alpha*M*m2p)
}

func criticalSoundSpeed(g *physics.Gas, u physics.State) float64 {
	h := g.Enthalpy(u)
	return math.Sqrt(2 * (g.Gamma - 1) / (g.Gamma + 1) * h)
}

func (a AUSMPlus) Flux(g *physics.Gas, uL, uR physics.State, nx, ny float64) physics.State {
	wL, wR := g.ToPrimitive(uL), g.ToPrimitive(uR)
	chalf := 0.5 * (criticalSoundSpeed(g, uL) + criticalSoundSpeed(g, uR))
	vnL := (wL[1]*nx + wL[2]*ny) / chalf
	vnR := (wR[1]*nx + wR[2]*ny) / chalf

	mHalf := ausmPlusM4(vnL, 1, a.Beta) + ausmPlusM4(vnR, -1, a.Beta)
	pHalf := ausmPlusP5(vnL, 1, a.Alpha)*wL[3] + ausmPlusP5(vnR, -1, a.Alpha)*wR[3]
	mdot := mHalf * chalf

	phiL := physics.State{1, wL[1], wL[2], g.Enthalpy(uL)}
	phiR := physics.State{1, wR[1], wR[2], g.Enthalpy(uR)}
	return ausmAssemble(wL[0], wR[0], mdot, phiL, phiR, pHalf, nx, ny)
}

func (a AUSMPlus) Jacobian(g *physics.Gas, uL, uR physics.State, nx, ny float64) (L, R physics.Jacobian4) {
	return a.jac.Jacobian(g, uL, uR, nx, ny)
}
