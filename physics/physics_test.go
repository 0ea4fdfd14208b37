package physics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func near(a, b float64, tolI ...float64) bool {
	tol := 1.e-06
	if len(tolI) > 0 {
		tol = tolI[0]
	}
	return math.Abs(a-b) <= tol
}

func testGas() *Gas {
	return New(1.4, 0.3, 288.16, 1.e6, 0.72)
}

func TestFreestreamState(t *testing.T) {
	g := testGas()
	u := g.FreestreamState(0)
	assert.True(t, near(u[0], 1))
	p := g.Pressure(u)
	assert.True(t, near(p, 1./(g.Gamma*g.Minf*g.Minf), 1.e-10))
	assert.True(t, near(g.Temperature(u[0], p), 1, 1.e-10))
}

func TestPrimitiveRoundTrip(t *testing.T) {
	g := testGas()
	u := State{1.2, 0.4, -0.1, 3.5}
	w := g.ToPrimitive(u)
	u2 := g.FromPrimitive(w)
	for k := 0; k < NVars; k++ {
		assert.True(t, near(u[k], u2[k], 1.e-10))
	}
	w2 := g.ToPrimitive2(u)
	u3 := g.FromPrimitive2(w2)
	for k := 0; k < NVars; k++ {
		assert.True(t, near(u[k], u3[k], 1.e-10))
	}
}

func fdJacobian(u State, f func(State) float64) [NVars]float64 {
	var d [NVars]float64
	h := 1.e-6
	for k := 0; k < NVars; k++ {
		up, um := u, u
		up[k] += h
		um[k] -= h
		d[k] = (f(up) - f(um)) / (2 * h)
	}
	return d
}

func TestPressureJacobianAgainstFD(t *testing.T) {
	g := testGas()
	u := State{1.3, 0.5, -0.2, 4.0}
	fd := fdJacobian(u, g.Pressure)
	an := g.PressureJacobian(u)
	for k := 0; k < NVars; k++ {
		assert.True(t, near(fd[k], an[k], 1.e-4))
	}
}

func TestSoundSpeedJacobianAgainstFD(t *testing.T) {
	g := testGas()
	u := State{1.3, 0.5, -0.2, 4.0}
	fd := fdJacobian(u, g.SoundSpeed)
	an := g.SoundSpeedJacobian(u)
	for k := 0; k < NVars; k++ {
		assert.True(t, near(fd[k], an[k], 1.e-4))
	}
}

func TestEnthalpyJacobianAgainstFD(t *testing.T) {
	g := testGas()
	u := State{1.3, 0.5, -0.2, 4.0}
	fd := fdJacobian(u, g.Enthalpy)
	an := g.EnthalpyJacobian(u)
	for k := 0; k < NVars; k++ {
		assert.True(t, near(fd[k], an[k], 1.e-4))
	}
}

func TestToPrimitiveJacobianAgainstFD(t *testing.T) {
	g := testGas()
	u := State{1.3, 0.5, -0.2, 4.0}
	an := g.ToPrimitiveJacobian(u)
	for row := 0; row < NVars; row++ {
		fd := fdJacobian(u, func(uu State) float64 { return g.ToPrimitive(uu)[row] })
		for k := 0; k < NVars; k++ {
			assert.True(t, near(fd[k], an[row][k], 1.e-4))
		}
	}
}

func TestViscosityJacobianAgainstFD(t *testing.T) {
	g := testGas()
	u := State{1.3, 0.5, -0.2, 4.0}
	fd := fdJacobian(u, g.Viscosity)
	an := g.ViscosityJacobian(u)
	for k := 0; k < NVars; k++ {
		assert.True(t, near(fd[k], an[k], 1.e-4))
	}
}

func TestViscosityIsOneAtFreestream(t *testing.T) {
	g := testGas()
	u := g.FreestreamState(0)
	mu := g.Viscosity(u) * g.Reinf
	assert.True(t, near(mu, 1, 1.e-8))
}

func TestStressTensorIsSymmetric(t *testing.T) {
	gradV := [NDim][NDim]float64{{0.1, 0.2}, {0.3, 0.4}}
	tau := StressTensor(0.5, gradV)
	assert.True(t, near(tau[0][1], tau[1][0], 1.e-12))
}

func TestStressTensorZeroForUniformFlow(t *testing.T) {
	gradV := [NDim][NDim]float64{}
	tau := StressTensor(0.7, gradV)
	for i := 0; i < NDim; i++ {
		for j := 0; j < NDim; j++ {
			assert.True(t, near(tau[i][j], 0, 1.e-12))
		}
	}
}
