package bc

import "github.com/gocfd2d/fvm2d/physics"

// AdiabaticNoSlip is a no-slip, zero-heat-flux wall: density and pressure
// are extrapolated, and the ghost velocity is set so that the face-averaged
// velocity equals the prescribed wall tangential velocity with zero normal
// component: v_g = 2*v_wall - v_i, where v_wall = WallTangentialSpeed * t̂
// and t̂ = (-ny, nx).
type AdiabaticNoSlip struct {
	Gas                 *physics.Gas
	WallTangentialSpeed float64
}

func (b AdiabaticNoSlip) wallVelocity(nx, ny float64) (vx, vy float64) {
	tx, ty := -ny, nx
	return b.WallTangentialSpeed * tx, b.WallTangentialSpeed * ty
}

func (b AdiabaticNoSlip) Ghost(uI physics.State, nx, ny float64) physics.State {
	w := b.Gas.ToPrimitive(uI)
	vwx, vwy := b.wallVelocity(nx, ny)
	ug := w
	ug[1] = 2*vwx - w[1]
	ug[2] = 2*vwy - w[2]
	return b.Gas.FromPrimitive(ug)
}

func (b AdiabaticNoSlip) GhostJacobian(uI physics.State, nx, ny float64) (physics.State, physics.Jacobian4) {
	w := b.Gas.ToPrimitive(uI)
	vwx, vwy := b.wallVelocity(nx, ny)
	wg := physics.Primitive{w[0], 2*vwx - w[1], 2*vwy - w[2], w[3]}
	ug := b.Gas.FromPrimitive(wg)

	var mid physics.Jacobian4
	mid[0][0] = 1
	mid[1][1] = -1
	mid[2][2] = -1
	mid[3][3] = 1

	j := chainPrimitiveJacobian(b.Gas, uI, mid, wg)
	return ug, j
}

// IsothermalNoSlip applies the same velocity rule as AdiabaticNoSlip but
// fixes the wall temperature: density is extrapolated from the interior and
// pressure is recomputed from p_g = ρ_g R T_wall.
type IsothermalNoSlip struct {
	Gas                 *physics.Gas
	WallTangentialSpeed float64
	WallTemperature     float64
}

func (b IsothermalNoSlip) wallVelocity(nx, ny float64) (vx, vy float64) {
	tx, ty := -ny, nx
	return b.WallTangentialSpeed * tx, b.WallTangentialSpeed * ty
}

func (b IsothermalNoSlip) Ghost(uI physics.State, nx, ny float64) physics.State {
	w := b.Gas.ToPrimitive(uI)
	vwx, vwy := b.wallVelocity(nx, ny)
	rhoG := w[0]
	pG := rhoG * b.Gas.RGasND() * b.WallTemperature
	return b.Gas.FromPrimitive(physics.Primitive{rhoG, 2*vwx - w[1], 2*vwy - w[2], pG})
}

func (b IsothermalNoSlip) GhostJacobian(uI physics.State, nx, ny float64) (physics.State, physics.Jacobian4) {
	w := b.Gas.ToPrimitive(uI)
	vwx, vwy := b.wallVelocity(nx, ny)
	rhoG := w[0]
	pG := rhoG * b.Gas.RGasND() * b.WallTemperature
	wg := physics.Primitive{rhoG, 2*vwx - w[1], 2*vwy - w[2], pG}
	ug := b.Gas.FromPrimitive(wg)

	var mid physics.Jacobian4
	mid[0][0] = 1
	mid[1][1] = -1
	mid[2][2] = -1
	mid[3][0] = b.Gas.RGasND() * b.WallTemperature // dp_g/drho_i

	j := chainPrimitiveJacobian(b.Gas, uI, mid, wg)
	return ug, j
}
