package numflux

import (
	"math"

	"github.com/gocfd2d/fvm2d/physics"
)

// HLLC adds a contact wave to HLL, giving an exact resolution of isolated
// contact/shear discontinuities. Star states use the standard Batten
// formulas (Toro, eq. 10.73).
type HLLC struct{}

func (HLLC) waveSpeeds(g *physics.Gas, uL, uR physics.State, nx, ny float64) (sl, sr, sm float64, wL, wR physics.Primitive) {
	wL, wR = g.ToPrimitive(uL), g.ToPrimitive(uR)
	vnL := wL[1]*nx + wL[2]*ny
	vnR := wR[1]*nx + wR[2]*ny
	cL, cR := g.SoundSpeed(uL), g.SoundSpeed(uR)
	rs := roeAverage(g, uL, uR, nx, ny)
	sl = math.Min(vnL-cL, rs.u-rs.c)
	sr = math.Max(vnR+cR, rs.u+rs.c)
	num := wR[3] - wL[3] + wL[0]*vnL*(sl-vnL) - wR[0]*vnR*(sr-vnR)
	den := wL[0]*(sl-vnL) - wR[0]*(sr-vnR)
	sm = num / den
	return
}

func hllcStar(g *physics.Gas, u physics.State, w physics.Primitive, s, sm, nx, ny float64) physics.State {
	rho := u[0]
	vn := w[1]*nx + w[2]*ny
	vtx, vty := w[1]-vn*nx, w[2]-vn*ny
	e := u[3] / rho
	factor := rho * (s - vn) / (s - sm)
	starE := e + (sm-vn)*(sm+w[3]/(rho*(s-vn)))
	return physics.State{
		factor,
		factor * (vtx + sm*nx),
		factor * (vty + sm*ny),
		factor * starE,
	}
}

func (h HLLC) Flux(g *physics.Gas, uL, uR physics.State, nx, ny float64) physics.State {
	sl, sr, sm, wL, wR := h.waveSpeeds(g, uL, uR, nx, ny)
	switch {
	case sl >= 0:
		return normalFlux(g, uL, nx, ny)
	case sr <= 0:
		return normalFlux(g, uR, nx, ny)
	case sm >= 0:
		fL := normalFlux(g, uL, nx, ny)
		uStar := hllcStar(g, uL, wL, sl, sm, nx, ny)
		var out physics.State
		for k := 0; k < 4; k++ {
			out[k] = fL[k] + sl*(uStar[k]-uL[k])
		}
		return out
	default:
		fR := normalFlux(g, uR, nx, ny)
		uStar := hllcStar(g, uR, wR, sr, sm, nx, ny)
		var out physics.State
		for k := 0; k < 4; k++ {
			out[k] = fR[k] + sr*(uStar[k]-uR[k])
		}
		return out
	}
}

// hllcWaveDeriv holds d(sl)/d(uL,uR), d(sr)/d(uL,uR), d(sm)/d(uL,uR); sl and
// sr each depend on only one side directly (through min/max against the
// Roe average, which itself mixes both sides), while sm is a genuine
// function of both uL and uR through the contact-speed formula.
type hllcWaveDeriv struct {
	dSlDuL, dSlDuR [4]float64
	dSrDuL, dSrDuR [4]float64
	dSmDuL, dSmDuR [4]float64
}

// waveSpeedsDeriv differentiates sl, sr and sm, selecting the active branch
// of each min/max exactly as waveSpeeds does. It is only meaningful away
// from a min/max switch point; HLL's Jacobian, which also calls it, shares
// that caveat.
func (h HLLC) waveSpeedsDeriv(g *physics.Gas, uL, uR physics.State, nx, ny, sl, sr, sm float64, wL, wR physics.Primitive) hllcWaveDeriv {
	var d hllcWaveDeriv
	jL, jR := g.ToPrimitiveJacobian(uL), g.ToPrimitiveJacobian(uR)
	cLd, cRd := g.SoundSpeedJacobian(uL), g.SoundSpeedJacobian(uR)
	rs := roeAverage(g, uL, uR, nx, ny)
	rsDL, rsDR := roeAverageDeriv(g, uL, uR, nx, ny)

	vnL := wL[1]*nx + wL[2]*ny
	vnR := wR[1]*nx + wR[2]*ny
	cL, cR := g.SoundSpeed(uL), g.SoundSpeed(uR)
	slFromL := vnL-cL <= rs.u-rs.c
	srFromR := vnR+cR >= rs.u+rs.c

	P := wL[0] * vnL * (sl - vnL)
	Q := wR[0] * vnR * (sr - vnR)
	Pd := wL[0] * (sl - vnL)
	Qd := wR[0] * (sr - vnR)
	num := wR[3] - wL[3] + P - Q
	den := Pd - Qd

	for k := 0; k < 4; k++ {
		dVnL := jL[1][k]*nx + jL[2][k]*ny
		dVnR := jR[1][k]*nx + jR[2][k]*ny

		if slFromL {
			d.dSlDuL[k] = dVnL - cLd[k]
		} else {
			d.dSlDuL[k] = rsDL.dU[k] - rsDL.dC[k]
			d.dSlDuR[k] = rsDR.dU[k] - rsDR.dC[k]
		}
		if srFromR {
			d.dSrDuR[k] = dVnR + cRd[k]
		} else {
			d.dSrDuL[k] = rsDL.dU[k] + rsDL.dC[k]
			d.dSrDuR[k] = rsDR.dU[k] + rsDR.dC[k]
		}

		dPduL := jL[0][k]*vnL*(sl-vnL) + wL[0]*dVnL*(sl-vnL) + wL[0]*vnL*(d.dSlDuL[k]-dVnL)
		dPduR := wL[0] * vnL * d.dSlDuR[k]
		dQduR := jR[0][k]*vnR*(sr-vnR) + wR[0]*dVnR*(sr-vnR) + wR[0]*vnR*(d.dSrDuR[k]-dVnR)
		dQduL := wR[0] * vnR * d.dSrDuL[k]

		dPdDuL := jL[0][k]*(sl-vnL) + wL[0]*(d.dSlDuL[k]-dVnL)
		dPdDuR := wL[0] * d.dSlDuR[k]
		dQdDuR := jR[0][k]*(sr-vnR) + wR[0]*(d.dSrDuR[k]-dVnR)
		dQdDuL := wR[0] * d.dSrDuL[k]

		dNumDuL := -jL[3][k] + dPduL - dQduL
		dNumDuR := jR[3][k] + dPduR - dQduR
		dDenDuL := dPdDuL - dQdDuL
		dDenDuR := dPdDuR - dQdDuR

		d.dSmDuL[k] = (dNumDuL*den - num*dDenDuL) / (den * den)
		d.dSmDuR[k] = (dNumDuR*den - num*dDenDuR) / (den * den)
	}
	return d
}

// hllcStarPartials are the partials, with respect to a single scalar
// parameter, of the quantities hllcStar consumes.
type hllcStarPartials struct {
	dRho, dVn, dVtx, dVty, dE, dP, dS, dSm float64
}

// hllcStarDeriv differentiates hllcStar's output with respect to one
// parameter, given how each of its inputs varies with that parameter.
func hllcStarDeriv(rho, vn, vtx, vty, e, p, s, sm, nx, ny float64, d hllcStarPartials) physics.State {
	numF := rho * (s - vn)
	denF := s - sm
	factor := numF / denF
	dNumF := d.dRho*(s-vn) + rho*(d.dS-d.dVn)
	dDenF := d.dS - d.dSm
	dFactor := (dNumF*denF - numF*dDenF) / (denF * denF)

	gTerm := p / numF
	dG := (d.dP*numF - p*dNumF) / (numF * numF)

	k := sm - vn
	dK := d.dSm - d.dVn
	m2 := sm + gTerm
	dM2 := d.dSm + dG
	starE := e + k*m2
	dStarE := d.dE + dK*m2 + k*dM2

	return physics.State{
		dFactor,
		dFactor*(vtx+sm*nx) + factor*(d.dVtx+d.dSm*nx),
		dFactor*(vty+sm*ny) + factor*(d.dVty+d.dSm*ny),
		dFactor*starE + factor*dStarE,
	}
}

func (h HLLC) leftStarJacobian(g *physics.Gas, uL, uR physics.State, nx, ny, sl, sr, sm float64, wL, wR physics.Primitive) (L, R physics.Jacobian4) {
	wd := h.waveSpeedsDeriv(g, uL, uR, nx, ny, sl, sr, sm, wL, wR)
	jL := g.ToPrimitiveJacobian(uL)
	aL := fluxJacobian(g, uL, nx, ny)

	vnL := wL[1]*nx + wL[2]*ny
	vtx, vty := wL[1]-vnL*nx, wL[2]-vnL*ny
	rho := uL[0]
	e := uL[3] / rho
	uStarL := hllcStar(g, uL, wL, sl, sm, nx, ny)

	for k := 0; k < 4; k++ {
		dRho := 0.0
		if k == 0 {
			dRho = 1
		}
		dVnL := jL[1][k]*nx + jL[2][k]*ny
		dVtx := jL[1][k] - dVnL*nx
		dVty := jL[2][k] - dVnL*ny
		dE := 0.0
		switch k {
		case 0:
			dE = -uL[3] / (rho * rho)
		case 3:
			dE = 1 / rho
		}
		dP := jL[3][k]

		partsL := hllcStarPartials{dRho: dRho, dVn: dVnL, dVtx: dVtx, dVty: dVty, dE: dE, dP: dP, dS: wd.dSlDuL[k], dSm: wd.dSmDuL[k]}
		dUStarDuL := hllcStarDeriv(rho, vnL, vtx, vty, e, wL[3], sl, sm, nx, ny, partsL)

		partsR := hllcStarPartials{dS: wd.dSlDuR[k], dSm: wd.dSmDuR[k]}
		dUStarDuR := hllcStarDeriv(rho, vnL, vtx, vty, e, wL[3], sl, sm, nx, ny, partsR)

		for row := 0; row < 4; row++ {
			eK := 0.0
			if row == k {
				eK = 1
			}
			diff := uStarL[row] - uL[row]
			L[row][k] = aL[row][k] + wd.dSlDuL[k]*diff + sl*(dUStarDuL[row]-eK)
			R[row][k] = wd.dSlDuR[k]*diff + sl*dUStarDuR[row]
		}
	}
	return
}

func (h HLLC) rightStarJacobian(g *physics.Gas, uL, uR physics.State, nx, ny, sl, sr, sm float64, wL, wR physics.Primitive) (L, R physics.Jacobian4) {
	wd := h.waveSpeedsDeriv(g, uL, uR, nx, ny, sl, sr, sm, wL, wR)
	jR := g.ToPrimitiveJacobian(uR)
	aR := fluxJacobian(g, uR, nx, ny)

	vnR := wR[1]*nx + wR[2]*ny
	vtx, vty := wR[1]-vnR*nx, wR[2]-vnR*ny
	rho := uR[0]
	e := uR[3] / rho
	uStarR := hllcStar(g, uR, wR, sr, sm, nx, ny)

	for k := 0; k < 4; k++ {
		dRho := 0.0
		if k == 0 {
			dRho = 1
		}
		dVnR := jR[1][k]*nx + jR[2][k]*ny
		dVtx := jR[1][k] - dVnR*nx
		dVty := jR[2][k] - dVnR*ny
		dE := 0.0
		switch k {
		case 0:
			dE = -uR[3] / (rho * rho)
		case 3:
			dE = 1 / rho
		}
		dP := jR[3][k]

		partsR := hllcStarPartials{dRho: dRho, dVn: dVnR, dVtx: dVtx, dVty: dVty, dE: dE, dP: dP, dS: wd.dSrDuR[k], dSm: wd.dSmDuR[k]}
		dUStarDuR := hllcStarDeriv(rho, vnR, vtx, vty, e, wR[3], sr, sm, nx, ny, partsR)

		partsL := hllcStarPartials{dS: wd.dSrDuL[k], dSm: wd.dSmDuL[k]}
		dUStarDuL := hllcStarDeriv(rho, vnR, vtx, vty, e, wR[3], sr, sm, nx, ny, partsL)

		for row := 0; row < 4; row++ {
			eK := 0.0
			if row == k {
				eK = 1
			}
			diff := uStarR[row] - uR[row]
			R[row][k] = aR[row][k] + wd.dSrDuR[k]*diff + sr*(dUStarDuR[row]-eK)
			L[row][k] = wd.dSrDuL[k]*diff + sr*dUStarDuL[row]
		}
	}
	return
}

func (h HLLC) Jacobian(g *physics.Gas, uL, uR physics.State, nx, ny float64) (L, R physics.Jacobian4) {
	sl, sr, sm, wL, wR := h.waveSpeeds(g, uL, uR, nx, ny)
	switch {
	case sl >= 0:
		return fluxJacobian(g, uL, nx, ny), physics.Jacobian4{}
	case sr <= 0:
		return physics.Jacobian4{}, fluxJacobian(g, uR, nx, ny)
	case sm >= 0:
		return h.leftStarJacobian(g, uL, uR, nx, ny, sl, sr, sm, wL, wR)
	default:
		return h.rightStarJacobian(g, uL, uR, nx, ny, sl, sr, sm, wL, wR)
	}
}
