package bc

import "github.com/gocfd2d/fvm2d/physics"

// SlipWall reflects the normal momentum component across the face, leaving
// density and pressure untouched: u_g = u_i with (ρv) -> (ρv) - 2(ρv·n̂)n̂.
type SlipWall struct{}

func (SlipWall) Ghost(uI physics.State, nx, ny float64) physics.State {
	vn := uI[1]*nx + uI[2]*ny
	return physics.State{
		uI[0],
		uI[1] - 2*vn*nx,
		uI[2] - 2*vn*ny,
		uI[3],
	}
}

func (s SlipWall) GhostJacobian(uI physics.State, nx, ny float64) (physics.State, physics.Jacobian4) {
	ug := s.Ghost(uI, nx, ny)
	j := physics.IdentityJacobian()
	j[1][1] = 1 - 2*nx*nx
	j[1][2] = -2 * nx * ny
	j[2][1] = -2 * ny * nx
	j[2][2] = 1 - 2*ny*ny
	return ug, j
}
