package bc

import "github.com/gocfd2d/fvm2d/physics"

// Farfield always returns a fixed far-field state; its Jacobian is zero
// because the ghost state carries no dependence on the interior state.
type Farfield struct {
	UInf physics.State
}

func (f Farfield) Ghost(physics.State, float64, float64) physics.State { return f.UInf }

func (f Farfield) GhostJacobian(physics.State, float64, float64) (physics.State, physics.Jacobian4) {
	return f.UInf, physics.Jacobian4{}
}

// Extrapolation copies the interior state unchanged; its Jacobian is the
// identity.
type Extrapolation struct{}

func (Extrapolation) Ghost(uI physics.State, _, _ float64) physics.State { return uI }

func (Extrapolation) GhostJacobian(uI physics.State, _, _ float64) (physics.State, physics.Jacobian4) {
	return uI, physics.IdentityJacobian()
}
