package viscous

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gocfd2d/fvm2d/gradient"
	"github.com/gocfd2d/fvm2d/physics"
)

func testGas() *physics.Gas { return physics.New(1.4, 0.3, 288.16, 1.e4, 0.72) }

func near(a, b, tol float64) bool { return math.Abs(a-b) <= tol }

func TestViscousFluxZeroForUniformFlow(t *testing.T) {
	g := testGas()
	e := &Evaluator{Gas: g}
	u := g.FreestreamState(0)
	var zero gradient.Grad
	f := e.Flux(u, u, zero, zero, 0, 0, 1, 0, 1, 0)
	for k := 0; k < physics.NVars; k++ {
		assert.True(t, near(f[k], 0, 1.e-12), "component %d", k)
	}
}

func TestViscousJacobianAgainstFD(t *testing.T) {
	g := testGas()
	e := &Evaluator{Gas: g}
	uL := physics.State{1.05, 0.22, 0.03, 2.85}
	uR := physics.State{0.97, 0.18, -0.02, 2.70}
	clx, cly, crx, cry := 0.0, 0.0, 1.0, 0.1
	nx, ny := 0.7, 0.71414284285
	var zero gradient.Grad

	anL, anR := e.Jacobian(uL, uR, clx, cly, crx, cry, nx, ny)

	h := 1.e-6
	var fdL, fdR physics.Jacobian4
	for k := 0; k < physics.NVars; k++ {
		upL, umL := uL, uL
		upL[k] += h
		umL[k] -= h
		fp := e.Flux(upL, uR, zero, zero, clx, cly, crx, cry, nx, ny)
		fm := e.Flux(umL, uR, zero, zero, clx, cly, crx, cry, nx, ny)
		for row := 0; row < physics.NVars; row++ {
			fdL[row][k] = (fp[row] - fm[row]) / (2 * h)
		}

		upR, umR := uR, uR
		upR[k] += h
		umR[k] -= h
		fp = e.Flux(uL, upR, zero, zero, clx, cly, crx, cry, nx, ny)
		fm = e.Flux(uL, umR, zero, zero, clx, cly, crx, cry, nx, ny)
		for row := 0; row < physics.NVars; row++ {
			fdR[row][k] = (fp[row] - fm[row]) / (2 * h)
		}
	}

	for i := 1; i < physics.NVars; i++ {
		for k := 0; k < physics.NVars; k++ {
			assert.True(t, near(anL[i][k], fdL[i][k], 1.e-3), "L[%d][%d] got %v want %v", i, k, anL[i][k], fdL[i][k])
			assert.True(t, near(anR[i][k], fdR[i][k], 1.e-3), "R[%d][%d] got %v want %v", i, k, anR[i][k], fdR[i][k])
		}
	}
}

func TestDiagonalJacobianIsDiagonal(t *testing.T) {
	g := testGas()
	e := &Evaluator{Gas: g}
	uL := physics.State{1.05, 0.22, 0.03, 2.85}
	uR := physics.State{0.97, 0.18, -0.02, 2.70}
	L, R := e.DiagonalJacobian(uL, uR, 0, 0, 1, 0)
	for i := 0; i < physics.NVars; i++ {
		for j := 0; j < physics.NVars; j++ {
			if i != j {
				assert.Equal(t, 0.0, L[i][j])
				assert.Equal(t, 0.0, R[i][j])
			}
		}
	}
	assert.Equal(t, 0.0, L[0][0])
	assert.True(t, L[1][1] < 0)
}

func TestConstViscosityOverridesSutherland(t *testing.T) {
	g := testGas()
	e := &Evaluator{Gas: g, ConstMu: 0.5}
	u := g.FreestreamState(0)
	assert.Equal(t, 0.5, e.mu(u))
	d := e.dmu(u)
	for _, v := range d {
		assert.Equal(t, 0.0, v)
	}
}
