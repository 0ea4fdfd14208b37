// Package gradient computes per-cell gradients of the flow state from
// cell-centered values and ghost-cell boundary values. Gradients feed the
// second-order reconstruction and limiter stages and the viscous flux
// evaluation.
package gradient

import "github.com/gocfd2d/fvm2d/physics"

// Grad holds a per-variable 2D gradient: Grad[k][0] = d(u_k)/dx, Grad[k][1]
// = d(u_k)/dy.
type Grad [physics.NVars][2]float64

// Scheme computes gradients for every cell given the current cell-centered
// state and the ghost-cell boundary state. u has length NElem and is
// indexed by cell id; uGhost has length NBFace and holds the state of ghost
// cell g (an id in [NElem, NElem+NBFace)) at uGhost[g-NElem].
type Scheme interface {
	Compute(u, uGhost []physics.State, grads []Grad)
}
