package numflux

import (
	"math"

	"github.com/gocfd2d/fvm2d/physics"
)

// HLL uses Einfeldt wave-speed bounds built from the Roe average and a
// three-region flux formula. The Jacobian also differentiates S_L and S_R
// through uL and uR (via HLLC's wave-speed derivative, on whichever branch
// of each min/max is active); it is not defined at a min/max switch point.
type HLL struct{}

func (HLL) waveSpeeds(g *physics.Gas, uL, uR physics.State, nx, ny float64) (sl, sr float64) {
	wL, wR := g.ToPrimitive(uL), g.ToPrimitive(uR)
	vnL := wL[1]*nx + wL[2]*ny
	vnR := wR[1]*nx + wR[2]*ny
	cL, cR := g.SoundSpeed(uL), g.SoundSpeed(uR)
	rs := roeAverage(g, uL, uR, nx, ny)
	sl = math.Min(vnL-cL, rs.u-rs.c)
	sr = math.Max(vnR+cR, rs.u+rs.c)
	return
}

func (h HLL) Flux(g *physics.Gas, uL, uR physics.State, nx, ny float64) physics.State {
	sl, sr := h.waveSpeeds(g, uL, uR, nx, ny)
	if sl >= 0 {
		return normalFlux(g, uL, nx, ny)
	}
	if sr <= 0 {
		return normalFlux(g, uR, nx, ny)
	}
	fL, fR := normalFlux(g, uL, nx, ny), normalFlux(g, uR, nx, ny)
	var out physics.State
	for k := 0; k < 4; k++ {
		out[k] = (sr*fL[k] - sl*fR[k] + sl*sr*(uR[k]-uL[k])) / (sr - sl)
	}
	return out
}

func (h HLL) Jacobian(g *physics.Gas, uL, uR physics.State, nx, ny float64) (L, R physics.Jacobian4) {
	sl, sr := h.waveSpeeds(g, uL, uR, nx, ny)
	aL := fluxJacobian(g, uL, nx, ny)
	aR := fluxJacobian(g, uR, nx, ny)
	if sl >= 0 {
		return aL, physics.Jacobian4{}
	}
	if sr <= 0 {
		return physics.Jacobian4{}, aR
	}
	denom := sr - sl
	for i := 0; i < 4; i++ {
		for k := 0; k < 4; k++ {
			L[i][k] = sr / denom * aL[i][k]
			R[i][k] = -sl / denom * aR[i][k]
		}
		L[i][i] += -sl * sr / denom
		R[i][i] += sl * sr / denom
	}
	_, _, sm, wL, wR := HLLC{}.waveSpeeds(g, uL, uR, nx, ny)
	wd := HLLC{}.waveSpeedsDeriv(g, uL, uR, nx, ny, sl, sr, sm, wL, wR)
	fL, fR := normalFlux(g, uL, nx, ny), normalFlux(g, uR, nx, ny)
	for i := 0; i < 4; i++ {
		dFdSl := sr * (fL[i] - fR[i] + sr*(uR[i]-uL[i])) / (denom * denom)
		dFdSr := -sl * (fL[i] - fR[i] + sl*(uR[i]-uL[i])) / (denom * denom)
		for k := 0; k < 4; k++ {
			L[i][k] += dFdSl*wd.dSlDuL[k] + dFdSr*wd.dSrDuL[k]
			R[i][k] += dFdSl*wd.dSlDuR[k] + dFdSr*wd.dSrDuR[k]
		}
	}
	return
}
