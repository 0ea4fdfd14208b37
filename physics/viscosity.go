package physics

import "math"

// Viscosity returns the nondimensional dynamic viscosity divided by the
// freestream Reynolds number, from Sutherland's law evaluated at the local
// temperature implied by u. Constant-viscosity runs use ConstViscosity
// instead: viscous.Evaluator calls it whenever its ConstMu is positive
// (config sets ConstMu from ConstViscValue when ConstVisc is on).
func (g *Gas) Viscosity(u State) float64 {
	w := g.ToPrimitive(u)
	T := g.Temperature(w[0], w[3])
	return g.sutherlandMu(T) / g.Reinf
}

// ViscosityJacobian returns d(Viscosity)/du.
func (g *Gas) ViscosityJacobian(u State) [NVars]float64 {
	w := g.ToPrimitive(u)
	T := g.Temperature(w[0], w[3])
	dmudT := g.sutherlandDMuDT(T)

	// dT/du via primitive-2 jacobian's last row.
	jp2 := g.ToPrimitive2Jacobian(u)
	var d [NVars]float64
	for k := 0; k < NVars; k++ {
		d[k] = dmudT * jp2[3][k] / g.Reinf
	}
	return d
}

// ConstViscosity returns a caller-supplied constant viscosity coefficient,
// already nondimensionalized by Re∞. It exists purely so the assembler's
// constVisc and non-constVisc code paths share the same call shape.
func ConstViscosity(muConst float64) float64 { return muConst }

// sutherlandMu evaluates Sutherland's law mu(T) = T0^{-1.5}(T0+Ts) *
// T^{1.5}/(T+Ts), nondimensionalized so that mu(T=1) = 1 (the reference
// temperature is the freestream temperature).
func (g *Gas) sutherlandMu(T float64) float64 {
	Ts := g.sutherlandTs
	T0 := g.sutherlandT0
	num := math.Pow(T, 1.5) * (T0 + Ts)
	den := math.Pow(T0, 1.5) * (T + Ts)
	return num / den
}

func (g *Gas) sutherlandDMuDT(T float64) float64 {
	Ts := g.sutherlandTs
	T0 := g.sutherlandT0
	c := (T0 + Ts) / math.Pow(T0, 1.5)
	// d/dT [ T^1.5 / (T+Ts) ] = 1.5*sqrt(T)/(T+Ts) - T^1.5/(T+Ts)^2
	return c * (1.5*math.Sqrt(T)/(T+Ts) - math.Pow(T, 1.5)/((T+Ts)*(T+Ts)))
}

// ThermalConductivity returns k = μγ/((γ-1)Pr).
func (g *Gas) ThermalConductivity(mu float64) float64 {
	return mu * g.Gamma / ((g.Gamma - 1) * g.Pr)
}

// ThermalConductivityJacobian returns dk/du given dmu/du.
func (g *Gas) ThermalConductivityJacobian(dMuDu [NVars]float64) [NVars]float64 {
	var d [NVars]float64
	c := g.Gamma / ((g.Gamma - 1) * g.Pr)
	for k := 0; k < NVars; k++ {
		d[k] = c * dMuDu[k]
	}
	return d
}

// StressTensor returns τ_ij = μ(∂_i v_j + ∂_j v_i - (2/3)δ_ij ∇·v) for 2D
// velocity gradients gradV[i][j] = ∂v_j/∂x_i.
func StressTensor(mu float64, gradV [NDim][NDim]float64) [NDim][NDim]float64 {
	div := gradV[0][0] + gradV[1][1]
	var tau [NDim][NDim]float64
	for i := 0; i < NDim; i++ {
		for j := 0; j < NDim; j++ {
			tau[i][j] = mu * (gradV[i][j] + gradV[j][i])
		}
	}
	tau[0][0] -= mu * (2. / 3.) * div
	tau[1][1] -= mu * (2. / 3.) * div
	return tau
}

// StressTensorJacobian returns dτ_ij/d(conserved)_k given dμ/du, the base
// stress and gradient, and d(gradV)/du_k for both sides contracted into a
// single dGradV argument (the caller supplies the gradient's own sensitivity
// to the conserved state it is differentiating against).
func StressTensorJacobian(mu float64, dMuDu [NVars]float64, gradV [NDim][NDim]float64, dGradV [NDim][NDim][NVars]float64) (tau [NDim][NDim]float64, dTau [NDim][NDim][NVars]float64) {
	tau = StressTensor(mu, gradV)
	div := gradV[0][0] + gradV[1][1]
	for k := 0; k < NVars; k++ {
		dDiv := dGradV[0][0][k] + dGradV[1][1][k]
		for i := 0; i < NDim; i++ {
			for j := 0; j < NDim; j++ {
				base := gradV[i][j] + gradV[j][i]
				dTau[i][j][k] = dMuDu[k]*base + mu*(dGradV[i][j][k]+dGradV[j][i][k])
			}
		}
		dTau[0][0][k] -= dMuDu[k]*(2./3.)*div + mu*(2./3.)*dDiv
		dTau[1][1][k] -= dMuDu[k]*(2./3.)*div + mu*(2./3.)*dDiv
	}
	return
}
