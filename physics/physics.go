// Package physics implements the ideal-gas constitutive law consumed by the
// spatial discretization: conserved/primitive conversions, sound speed,
// viscosity and thermal conductivity, and their analytical Jacobians with
// respect to the conserved variables.
//
// The nondimensionalization follows the convention ρ_∞ = 1, |v|_∞ = 1,
// T_∞ = 1, so that p_∞ = 1/(γM∞²); see FreestreamState.
package physics

import "math"

// NVars is the number of conserved variables in 2D compressible flow.
const NVars = 4

// NDim is the number of spatial dimensions this package supports.
const NDim = 2

// State is a conserved-variable vector (ρ, ρu, ρv, ρE).
type State [NVars]float64

// Primitive is a primitive-variable vector (ρ, u, v, p).
type Primitive [NVars]float64

// Primitive2 is a primitive-variable vector using temperature instead of
// pressure: (ρ, u, v, T).
type Primitive2 [NVars]float64

// Jacobian4 is a dense NVars x NVars Jacobian, stored row-major.
type Jacobian4 [NVars][NVars]float64

// Gas holds the nondimensional gas constants used throughout the core.
type Gas struct {
	Gamma float64 // adiabatic index
	Minf  float64 // freestream Mach number
	Tinf  float64 // freestream temperature (dimensional reference, K)
	Reinf float64 // freestream Reynolds number
	Pr    float64 // Prandtl number

	// sutherlandTs is Sutherland's constant nondimensionalized by Tinf;
	// sutherlandT0 is the law's reference temperature, the freestream
	// temperature, which is 1 in these units.
	sutherlandTs float64
	sutherlandT0 float64
}

const (
	sutherlandSKelvin = 110.4   // Sutherland constant, air, Kelvin
)

// New builds a Gas from the nondimensional constants. Tinf is the dimensional
// freestream temperature in Kelvin, used only to nondimensionalize
// Sutherland's law; it has no effect when ConstVisc is requested by the
// caller (viscosity.go does not consult it in that case).
func New(gamma, minf, tinf, reinf, pr float64) *Gas {
	return &Gas{
		Gamma:        gamma,
		Minf:         minf,
		Tinf:         tinf,
		Reinf:        reinf,
		Pr:           pr,
		sutherlandTs: sutherlandSKelvin / tinf,
		sutherlandT0: 1,
	}
}

// RGasND is the nondimensional specific gas constant implied by p = ρRT at
// the freestream state: ρ_∞=1, T_∞=1, p_∞=1/(γM∞²) ⇒ R = 1/(γM∞²).
func (g *Gas) RGasND() float64 {
	return 1. / (g.Gamma * g.Minf * g.Minf)
}

// Pressure returns p = (γ-1)(ρE - ½|ρv|²/ρ).
func (g *Gas) Pressure(u State) float64 {
	rho := u[0]
	ke := 0.5 * (u[1]*u[1] + u[2]*u[2]) / rho
	return (g.Gamma - 1) * (u[3] - ke)
}

// PressureJacobian returns dp/du.
func (g *Gas) PressureJacobian(u State) [NVars]float64 {
	var d [NVars]float64
	rho := u[0]
	gm1 := g.Gamma - 1
	q := (u[1]*u[1] + u[2]*u[2]) / (rho * rho)
	d[0] = gm1 * 0.5 * q
	d[1] = -gm1 * u[1] / rho
	d[2] = -gm1 * u[2] / rho
	d[3] = gm1
	return d
}

// SoundSpeed returns c = sqrt(γp/ρ).
func (g *Gas) SoundSpeed(u State) float64 {
	p := g.Pressure(u)
	return math.Sqrt(math.Abs(g.Gamma * p / u[0]))
}

// SoundSpeedJacobian returns dc/du.
func (g *Gas) SoundSpeedJacobian(u State) [NVars]float64 {
	var d [NVars]float64
	rho := u[0]
	p := g.Pressure(u)
	c := math.Sqrt(math.Abs(g.Gamma * p / rho))
	if c == 0 {
		return d
	}
	dpdu := g.PressureJacobian(u)
	// c = sqrt(gamma*p/rho) => dc/du = gamma/(2*c*rho) * dp/du - gamma*p/(2*c*rho^2)
	a := g.Gamma / (2 * c * rho)
	b := g.Gamma * p / (2 * c * rho * rho)
	for k := 0; k < NVars; k++ {
		d[k] = a * dpdu[k]
	}
	d[0] -= b
	return d
}

// Enthalpy returns H = (ρE+p)/ρ.
func (g *Gas) Enthalpy(u State) float64 {
	p := g.Pressure(u)
	return (u[3] + p) / u[0]
}

// EnthalpyJacobian returns dH/du.
func (g *Gas) EnthalpyJacobian(u State) [NVars]float64 {
	var d [NVars]float64
	p := g.Pressure(u)
	dpdu := g.PressureJacobian(u)
	rho := u[0]
	h := (u[3] + p) / rho
	for k := 0; k < NVars; k++ {
		d[k] = dpdu[k] / rho
	}
	d[3] += 1.0 / rho
	d[0] -= h / rho
	return d
}

// Mach returns the Mach number |v|/c.
func (g *Gas) Mach(u State) float64 {
	rho := u[0]
	speed := math.Sqrt(u[1]*u[1]+u[2]*u[2]) / rho
	return speed / g.SoundSpeed(u)
}

// Temperature returns T = p/(ρR) for the given density and pressure.
func (g *Gas) Temperature(rho, p float64) float64 {
	return p / (rho * g.RGasND())
}

// ToPrimitive converts conserved variables to (ρ, u, v, p).
func (g *Gas) ToPrimitive(u State) Primitive {
	rho := u[0]
	return Primitive{rho, u[1] / rho, u[2] / rho, g.Pressure(u)}
}

// ToPrimitiveJacobian returns d(primitive)/d(conserved).
func (g *Gas) ToPrimitiveJacobian(u State) Jacobian4 {
	var j Jacobian4
	rho := u[0]
	j[0][0] = 1
	j[1][0] = -u[1] / (rho * rho)
	j[1][1] = 1 / rho
	j[2][0] = -u[2] / (rho * rho)
	j[2][2] = 1 / rho
	dpdu := g.PressureJacobian(u)
	j[3] = dpdu
	return j
}

// FromPrimitive converts (ρ, u, v, p) to conserved variables.
func (g *Gas) FromPrimitive(w Primitive) State {
	rho, u, v, p := w[0], w[1], w[2], w[3]
	ke := 0.5 * rho * (u*u + v*v)
	e := p/(g.Gamma-1) + ke
	return State{rho, rho * u, rho * v, e}
}

// ToPrimitive2 converts conserved variables to (ρ, u, v, T).
func (g *Gas) ToPrimitive2(u State) Primitive2 {
	w := g.ToPrimitive(u)
	T := g.Temperature(w[0], w[3])
	return Primitive2{w[0], w[1], w[2], T}
}

// ToPrimitive2Jacobian returns d(primitive-2)/d(conserved).
func (g *Gas) ToPrimitive2Jacobian(u State) Jacobian4 {
	jp := g.ToPrimitiveJacobian(u)
	rho, p := u[0], g.Pressure(u)
	R := g.RGasND()
	// T = p/(rho*R) => dT/du = dp/du/(rho*R) - p/(rho^2*R) * drho/du
	var j Jacobian4
	j[0], j[1], j[2] = jp[0], jp[1], jp[2]
	for k := 0; k < NVars; k++ {
		j[3][k] = jp[3][k] / (rho * R)
	}
	j[3][0] -= p / (rho * rho * R)
	return j
}

// FromPrimitive2 converts (ρ, u, v, T) to conserved variables.
func (g *Gas) FromPrimitive2(w Primitive2) State {
	p := w[0] * g.RGasND() * w[3]
	return g.FromPrimitive(Primitive{w[0], w[1], w[2], p})
}

// FreestreamState returns u_∞ at angle of attack alpha (radians):
// ρ=1, v=(cosα, sinα), p=1/(γM∞²).
func (g *Gas) FreestreamState(alpha float64) State {
	p := 1. / (g.Gamma * g.Minf * g.Minf)
	u, v := math.Cos(alpha), math.Sin(alpha)
	e := p/(g.Gamma-1) + 0.5*(u*u+v*v)
	return State{1, u, v, e}
}

// GradTFromGradPrimitive converts a density/pressure gradient pair into a
// temperature gradient: T = p/(ρR) ⇒ ∇T = ∇p/(ρR) - p∇ρ/(ρ²R).
func (g *Gas) GradTFromGradPrimitive(rho float64, gradRho float64, p float64, gradP float64) float64 {
	R := g.RGasND()
	return gradP/(rho*R) - p*gradRho/(rho*rho*R)
}
