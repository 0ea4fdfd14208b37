package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSodExactSolutionFarFieldStatesAtModerateTime(t *testing.T) {
	x, rho, p, u := SodExactSolution(0.15)
	assert.Len(t, rho, len(x))
	assert.Len(t, p, len(x))
	assert.Len(t, u, len(x))

	// the first sample is x_min, deep inside the undisturbed left state
	assert.InDelta(t, 1.0, rho[0], 1.e-9)
	assert.InDelta(t, 1.0, p[0], 1.e-9)
	assert.InDelta(t, 0.0, u[0], 1.e-9)

	// the last sample is x_max, deep inside the undisturbed right state
	last := len(x) - 1
	assert.InDelta(t, 0.125, rho[last], 1.e-9)
	assert.InDelta(t, 0.1, p[last], 1.e-9)
	assert.InDelta(t, 0.0, u[last], 1.e-9)
}

func TestSodExactSolutionDensityMonotoneAcrossFan(t *testing.T) {
	_, rho, p, _ := SodExactSolution(0.15)
	for i := 1; i < len(rho); i++ {
		assert.GreaterOrEqual(t, rho[i-1]+1.e-9, rho[i], "density should be non-increasing left to right")
		assert.GreaterOrEqual(t, p[i-1]+1.e-9, p[i], "pressure should be non-increasing left to right")
		assert.Greater(t, rho[i], 0.0)
		assert.Greater(t, p[i], 0.0)
	}
}
