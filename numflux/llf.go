package numflux

import "github.com/gocfd2d/fvm2d/physics"

// LLF is the local Lax-Friedrichs flux: F = ½(F(uL)+F(uR))·n̂ - ½λ(uR-uL),
// λ = max(|v_n,L|+c_L, |v_n,R|+c_R). Its default Jacobian freezes λ rather
// than differentiating the max() through the wave speeds; empirically this
// gives better-behaved Newton iterations than the exact variant. Setting
// Exact selects the exact variant, which also differentiates λ through the
// state on whichever side attains the max (not defined where the two tie).
type LLF struct{ Exact bool }

func (LLF) lambda(g *physics.Gas, uL, uR physics.State, nx, ny float64) float64 {
	lL := waveSpeed(g, uL, nx, ny)
	lR := waveSpeed(g, uR, nx, ny)
	if lL > lR {
		return lL
	}
	return lR
}

func (f LLF) Flux(g *physics.Gas, uL, uR physics.State, nx, ny float64) physics.State {
	fL := normalFlux(g, uL, nx, ny)
	fR := normalFlux(g, uR, nx, ny)
	lambda := f.lambda(g, uL, uR, nx, ny)
	var out physics.State
	for k := 0; k < 4; k++ {
		out[k] = 0.5*(fL[k]+fR[k]) - 0.5*lambda*(uR[k]-uL[k])
	}
	return out
}

func (f LLF) Jacobian(g *physics.Gas, uL, uR physics.State, nx, ny float64) (L, R physics.Jacobian4) {
	lambda := f.lambda(g, uL, uR, nx, ny)
	aL := fluxJacobian(g, uL, nx, ny)
	aR := fluxJacobian(g, uR, nx, ny)
	for i := 0; i < 4; i++ {
		for k := 0; k < 4; k++ {
			L[i][k] = 0.5 * aL[i][k]
			R[i][k] = 0.5 * aR[i][k]
		}
		L[i][i] += 0.5 * lambda
		R[i][i] -= 0.5 * lambda
	}
	if f.Exact {
		u, side := uR, &R
		if waveSpeed(g, uL, nx, ny) > waveSpeed(g, uR, nx, ny) {
			u, side = uL, &L
		}
		vn, sgn, dc := (u[1]*nx+u[2]*ny)/u[0], 1.0, g.SoundSpeedJacobian(u)
		if vn < 0 {
			sgn = -1
		}
		dLam := [4]float64{dc[0] - sgn*vn/u[0], dc[1] + sgn*nx/u[0], dc[2] + sgn*ny/u[0], dc[3]}
		for i := 0; i < 4; i++ {
			for k := 0; k < 4; k++ {
				side[i][k] -= 0.5 * (uR[i] - uL[i]) * dLam[k]
			}
		}
	}
	return
}
