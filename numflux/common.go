// Package numflux implements the inviscid numerical flux schemes consumed
// by the spatial discretization and their analytical Jacobians with
// respect to the conserved states on either side of a face.
package numflux

import (
	"math"

	"github.com/gocfd2d/fvm2d/physics"
)

// Scheme is the common shape every numerical flux exposes: Flux returns the
// flux across a face with unit normal (nx,ny); Jacobian returns the
// derivative of that flux with respect to uL and uR, separately. L and R
// are assigned, not accumulated; callers overwrite on each call.
type Scheme interface {
	Flux(g *physics.Gas, uL, uR physics.State, nx, ny float64) physics.State
	Jacobian(g *physics.Gas, uL, uR physics.State, nx, ny float64) (L, R physics.Jacobian4)
}

// normalFlux returns the physical Euler flux F(u)·n̂.
func normalFlux(g *physics.Gas, u physics.State, nx, ny float64) physics.State {
	rho := u[0]
	vx, vy := u[1]/rho, u[2]/rho
	p := g.Pressure(u)
	vn := vx*nx + vy*ny
	H := g.Enthalpy(u)
	return physics.State{
		rho * vn,
		u[1]*vn + p*nx,
		u[2]*vn + p*ny,
		rho * vn * H,
	}
}

// fluxJacobian returns the exact Jacobian of the physical Euler normal
// flux, A(u,n̂) = ∂(F(u)·n̂)/∂u (Toro, "Riemann Solvers and Numerical
// Methods for Fluid Dynamics", eq. 3.79, specialized to an arbitrary unit
// normal).
func fluxJacobian(g *physics.Gas, u physics.State, nx, ny float64) physics.Jacobian4 {
	rho := u[0]
	vx, vy := u[1]/rho, u[2]/rho
	gamma := g.Gamma
	gm1 := gamma - 1
	q2 := vx*vx + vy*vy
	phi := 0.5 * gm1 * q2
	vn := vx*nx + vy*ny
	H := g.Enthalpy(u)

	var a physics.Jacobian4
	a[0] = [4]float64{0, nx, ny, 0}
	a[1] = [4]float64{nx*phi - vx*vn, vn - (gamma-2)*vx*nx, vx*ny - gm1*vy*nx, gm1 * nx}
	a[2] = [4]float64{ny*phi - vy*vn, vy*nx - gm1*vx*ny, vn - (gamma-2)*vy*ny, gm1 * ny}
	a[3] = [4]float64{vn * (phi - H), nx*H - gm1*vx*vn, ny*H - gm1*vy*vn, gamma * vn}
	return a
}

func waveSpeed(g *physics.Gas, u physics.State, nx, ny float64) float64 {
	vn := (u[1]*nx + u[2]*ny) / u[0]
	return math.Abs(vn) + g.SoundSpeed(u)
}
