package numflux

import "github.com/gocfd2d/fvm2d/physics"

// VanLeer is the Van Leer flux-vector splitting scheme: F = F+(uL) +
// F-(uR), where F+/F- are smooth Mach-number polynomials for |M| < 1 and
// equal the full physical flux (or zero) outside that range.
type VanLeer struct{}

func vanLeerSplit(g *physics.Gas, u physics.State, nx, ny float64, positive bool) physics.State {
	rho := u[0]
	vx, vy := u[1]/rho, u[2]/rho
	c := g.SoundSpeed(u)
	vn := vx*nx + vy*ny
	vtx, vty := vx-vn*nx, vy-vn*ny
	M := vn / c
	gamma := g.Gamma

	if positive {
		if M >= 1 {
			return normalFlux(g, u, nx, ny)
		}
		if M <= -1 {
			return physics.State{}
		}
	} else {
		if M <= -1 {
			return normalFlux(g, u, nx, ny)
		}
		if M >= 1 {
			return physics.State{}
		}
	}

	sign := 1.0
	if !positive {
		sign = -1.0
	}
	fMass := sign * 0.25 * rho * c * (M + sign) * (M + sign)
	momN := fMass * ((gamma-1)*vn + sign*2*c) / gamma
	energy := fMass * (((gamma-1)*vn+sign*2*c)*((gamma-1)*vn+sign*2*c)/(2*(gamma*gamma-1)) + 0.5*(vtx*vtx+vty*vty))

	return physics.State{
		fMass,
		momN*nx + fMass*vtx,
		momN*ny + fMass*vty,
		energy,
	}
}

func (VanLeer) Flux(g *physics.Gas, uL, uR physics.State, nx, ny float64) physics.State {
	fp := vanLeerSplit(g, uL, nx, ny, true)
	fm := vanLeerSplit(g, uR, nx, ny, false)
	var out physics.State
	for k := 0; k < 4; k++ {
		out[k] = fp[k] + fm[k]
	}
	return out
}

// vanLeerSplitJacobian differentiates one side of the split exactly,
// following the same branches vanLeerSplit uses: F+ depends only on uL and
// F- only on uR, so there is no cross term between the two states.
func vanLeerSplitJacobian(g *physics.Gas, u physics.State, nx, ny float64, positive bool) physics.Jacobian4 {
	rho := u[0]
	vx, vy := u[1]/rho, u[2]/rho
	c := g.SoundSpeed(u)
	vn := vx*nx + vy*ny
	vtx, vty := vx-vn*nx, vy-vn*ny
	M := vn / c
	gamma := g.Gamma

	if positive {
		if M >= 1 {
			return fluxJacobian(g, u, nx, ny)
		}
		if M <= -1 {
			return physics.Jacobian4{}
		}
	} else {
		if M <= -1 {
			return fluxJacobian(g, u, nx, ny)
		}
		if M >= 1 {
			return physics.Jacobian4{}
		}
	}

	sign := 1.0
	if !positive {
		sign = -1.0
	}

	dc := g.SoundSpeedJacobian(u)
	B := (gamma-1)*vn + sign*2*c
	fMass := sign * 0.25 * rho * c * (M + sign) * (M + sign)
	cterm := B*B/(2*(gamma*gamma-1)) + 0.5*(vtx*vtx+vty*vty)

	var j physics.Jacobian4
	for k := 0; k < 4; k++ {
		dRho := 0.0
		var dVx, dVy float64
		switch k {
		case 0:
			dRho = 1
			dVx, dVy = -vx/rho, -vy/rho
		case 1:
			dVx = 1 / rho
		case 2:
			dVy = 1 / rho
		}
		dVn := dVx*nx + dVy*ny
		dM := (dVn*c - vn*dc[k]) / (c * c)
		dVtx := dVx - dVn*nx
		dVty := dVy - dVn*ny

		dA := 2 * (M + sign) * dM
		dFMass := sign * 0.25 * (dRho*c*(M+sign)*(M+sign) + rho*dc[k]*(M+sign)*(M+sign) + rho*c*dA)
		dB := (gamma-1)*dVn + sign*2*dc[k]
		dMomN := (dFMass*B + fMass*dB) / gamma
		dCterm := B*dB/(gamma*gamma-1) + vtx*dVtx + vty*dVty
		dEnergy := dFMass*cterm + fMass*dCterm

		j[0][k] = dFMass
		j[1][k] = dMomN*nx + dFMass*vtx + fMass*dVtx
		j[2][k] = dMomN*ny + dFMass*vty + fMass*dVty
		j[3][k] = dEnergy
	}
	return j
}

func (VanLeer) Jacobian(g *physics.Gas, uL, uR physics.State, nx, ny float64) (L, R physics.Jacobian4) {
	L = vanLeerSplitJacobian(g, uL, nx, ny, true)
	R = vanLeerSplitJacobian(g, uR, nx, ny, false)
	return
}
