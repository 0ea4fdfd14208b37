// Package bc implements the boundary-condition ghost-state constructions
// consumed by the spatial discretization: each Condition turns an interior
// conserved state and a face normal into a ghost conserved state, plus the
// analytical Jacobian of that map with respect to the interior state.
package bc

import "github.com/gocfd2d/fvm2d/physics"

// Condition computes the ghost state presented to the flux function on the
// far side of a boundary face.
type Condition interface {
	Ghost(uI physics.State, nx, ny float64) physics.State
	GhostJacobian(uI physics.State, nx, ny float64) (physics.State, physics.Jacobian4)
}

// Registry maps mesh boundary-marker ids to the Condition active on that
// marker. Coverage is the caller's responsibility: every marker used by the
// mesh must have an entry before assembly.
type Registry struct {
	byMarker map[int]Condition
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{byMarker: make(map[int]Condition)}
}

// Set assigns a Condition to a marker, overwriting any previous assignment.
func (r *Registry) Set(marker int, c Condition) { r.byMarker[marker] = c }

// Get returns the Condition for marker, or (nil, false) if unset.
func (r *Registry) Get(marker int) (Condition, bool) {
	c, ok := r.byMarker[marker]
	return c, ok
}

// chainPrimitiveJacobian composes a Jacobian expressed in primitive
// variables (mid, d(primitive_ghost)/d(primitive_interior)) into the
// conserved-variable Jacobian d(u_ghost)/d(u_interior), given the resulting
// ghost primitive state wg.
func chainPrimitiveJacobian(g *physics.Gas, uI physics.State, mid physics.Jacobian4, wg physics.Primitive) physics.Jacobian4 {
	toP := g.ToPrimitiveJacobian(uI)
	fromP := g.FromPrimitiveJacobian(wg)
	return physics.MulJacobian(fromP, physics.MulJacobian(mid, toP))
}
