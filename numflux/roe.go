package numflux

import (
	"math"

	"github.com/gocfd2d/fvm2d/physics"
)

// RoePike is the Roe flux with Roe-Pike averages and a Harten-Hyman entropy
// fix on the two acoustic eigenvalues. Its Jacobian differentiates the
// dissipation term through the Roe-averaged state itself, not just through
// the primitive difference it acts on, so the linearization matches the
// flux exactly rather than freezing the average at its current value.
type RoePike struct {
	// EntropyFixEps scales the Harten-Hyman entropy fix; 0 disables it.
	EntropyFixEps float64
}

func entropyFix(lambda, eps float64) float64 {
	a := math.Abs(lambda)
	if eps <= 0 || a >= eps {
		return a
	}
	return (lambda*lambda + eps*eps) / (2 * eps)
}

func entropyFixDeriv(lambda, eps float64) float64 {
	a := math.Abs(lambda)
	if eps <= 0 || a >= eps {
		switch {
		case lambda > 0:
			return 1
		case lambda < 0:
			return -1
		default:
			return 0
		}
	}
	return lambda / eps
}

type roeState struct {
	rho, u, v, h, c float64
}

func roeAverage(g *physics.Gas, uL, uR physics.State, nx, ny float64) roeState {
	wL, wR := g.ToPrimitive(uL), g.ToPrimitive(uR)
	rhoLs, rhoRs := math.Sqrt(wL[0]), math.Sqrt(wR[0])
	denom := rhoLs + rhoRs
	hL, hR := g.Enthalpy(uL), g.Enthalpy(uR)

	unL := wL[1]*nx + wL[2]*ny
	utL := -wL[1]*ny + wL[2]*nx
	unR := wR[1]*nx + wR[2]*ny
	utR := -wR[1]*ny + wR[2]*nx

	u := (rhoLs*unL + rhoRs*unR) / denom
	v := (rhoLs*utL + rhoRs*utR) / denom
	h := (rhoLs*hL + rhoRs*hR) / denom
	c2 := (g.Gamma - 1) * (h - 0.5*(u*u+v*v))
	if c2 < 0 {
		c2 = 0
	}
	return roeState{rho: rhoLs * rhoRs, u: u, v: v, h: h, c: math.Sqrt(c2)}
}

// rsDeriv holds d(rs field)/d(u[k]) for one side of a face, where rs is the
// Roe-averaged state returned by roeAverage.
type rsDeriv struct {
	dRho, dU, dV, dH, dC [4]float64
}

// roeAverageDeriv differentiates roeAverage's sqrt-density-weighted
// averages with respect to uL and uR.
func roeAverageDeriv(g *physics.Gas, uL, uR physics.State, nx, ny float64) (dL, dR rsDeriv) {
	wL, wR := g.ToPrimitive(uL), g.ToPrimitive(uR)
	jL, jR := g.ToPrimitiveJacobian(uL), g.ToPrimitiveJacobian(uR)
	hJL, hJR := g.EnthalpyJacobian(uL), g.EnthalpyJacobian(uR)

	rhoLs, rhoRs := math.Sqrt(wL[0]), math.Sqrt(wR[0])
	denom := rhoLs + rhoRs
	hL, hR := g.Enthalpy(uL), g.Enthalpy(uR)
	unL := wL[1]*nx + wL[2]*ny
	utL := -wL[1]*ny + wL[2]*nx
	unR := wR[1]*nx + wR[2]*ny
	utR := -wR[1]*ny + wR[2]*nx

	numU := rhoLs*unL + rhoRs*unR
	numV := rhoLs*utL + rhoRs*utR
	numH := rhoLs*hL + rhoRs*hR
	U := numU / denom
	V := numV / denom
	Hh := numH / denom
	c2 := (g.Gamma - 1) * (Hh - 0.5*(U*U+V*V))
	C := 0.0
	if c2 > 0 {
		C = math.Sqrt(c2)
	}

	for k := 0; k < physics.NVars; k++ {
		dRhoLs := jL[0][k] / (2 * rhoLs)
		dRhoRs := jR[0][k] / (2 * rhoRs)
		dUnL := jL[1][k]*nx + jL[2][k]*ny
		dUtL := -jL[1][k]*ny + jL[2][k]*nx
		dUnR := jR[1][k]*nx + jR[2][k]*ny
		dUtR := -jR[1][k]*ny + jR[2][k]*nx

		dL.dRho[k] = dRhoLs * rhoRs
		dR.dRho[k] = rhoLs * dRhoRs

		dNumUL := dRhoLs*unL + rhoLs*dUnL
		dNumUR := dRhoRs*unR + rhoRs*dUnR
		dUL := (dNumUL*denom - numU*dRhoLs) / (denom * denom)
		dUR := (dNumUR*denom - numU*dRhoRs) / (denom * denom)

		dNumVL := dRhoLs*utL + rhoLs*dUtL
		dNumVR := dRhoRs*utR + rhoRs*dUtR
		dVL := (dNumVL*denom - numV*dRhoLs) / (denom * denom)
		dVR := (dNumVR*denom - numV*dRhoRs) / (denom * denom)

		dNumHL := dRhoLs*hL + rhoLs*hJL[k]
		dNumHR := dRhoRs*hR + rhoRs*hJR[k]
		dHhL := (dNumHL*denom - numH*dRhoLs) / (denom * denom)
		dHhR := (dNumHR*denom - numH*dRhoRs) / (denom * denom)

		dL.dU[k], dR.dU[k] = dUL, dUR
		dL.dV[k], dR.dV[k] = dVL, dVR
		dL.dH[k], dR.dH[k] = dHhL, dHhR

		if C > 0 {
			dc2L := (g.Gamma - 1) * (dHhL - U*dUL - V*dVL)
			dc2R := (g.Gamma - 1) * (dHhR - U*dUR - V*dVR)
			dL.dC[k] = dc2L / (2 * C)
			dR.dC[k] = dc2R / (2 * C)
		}
	}
	return
}

// dissipation returns corr in the rotated frame (mass, normal-mom,
// tangential-mom, energy) given the rotated primitive difference
// (drho, dun, dut, dp) and the frozen Roe state.
func (b RoePike) dissipation(rs roeState, drho, dun, dut, dp float64) [4]float64 {
	c2 := rs.c * rs.c
	dW1 := entropyFix(rs.u-rs.c, b.EntropyFixEps) * (-0.5*(rs.rho*dun)/rs.c + 0.5*dp/c2)
	dW2 := entropyFix(rs.u, 0) * (drho - dp/c2)
	dW3 := entropyFix(rs.u, 0) * (rs.rho * dut)
	dW4 := entropyFix(rs.u+rs.c, b.EntropyFixEps) * (0.5*(rs.rho*dun)/rs.c + 0.5*dp/c2)

	var corr [4]float64
	corr[0] = dW1 + dW2 + dW4
	corr[1] = dW1*(rs.u-rs.c) + dW2*rs.u + dW4*(rs.u+rs.c)
	corr[2] = dW1*rs.v + dW2*rs.v + dW3 + dW4*rs.v
	corr[3] = dW1*(rs.h-rs.u*rs.c) + 0.5*dW2*(rs.u*rs.u+rs.v*rs.v) + dW3*rs.v + dW4*(rs.h+rs.u*rs.c)
	return corr
}

// dissipationDeriv returns d(corr)/d(rs), columns ordered (rho,u,v,h,c), at
// a fixed rotated primitive difference (drho,dun,dut,dp). Composed with
// roeAverageDeriv via the chain rule, this is the term dissipationMatrix's
// frozen-rs evaluation omits.
func (b RoePike) dissipationDeriv(rs roeState, drho, dun, dut, dp float64) [4][5]float64 {
	eps := b.EntropyFixEps
	rho, U, V, Hh, C := rs.rho, rs.u, rs.v, rs.h, rs.c
	C2 := C * C

	L1, L2, L4 := U-C, U, U+C
	ef1, ef2, ef4 := entropyFix(L1, eps), entropyFix(L2, 0), entropyFix(L4, eps)
	def1, def2, def4 := entropyFixDeriv(L1, eps), entropyFixDeriv(L2, 0), entropyFixDeriv(L4, eps)

	A1 := -0.5*rho*dun/C + 0.5*dp/C2
	A2 := drho - dp/C2
	A3 := rho * dut
	A4 := 0.5*rho*dun/C + 0.5*dp/C2

	dA1dRho, dA1dC := -0.5*dun/C, 0.5*rho*dun/C2-dp/(C*C2)
	dA2dC := 2 * dp / (C * C2)
	dA3dRho := dut
	dA4dRho, dA4dC := 0.5*dun/C, -0.5*rho*dun/C2-dp/(C*C2)

	dW1, dW2, dW3, dW4 := ef1*A1, ef2*A2, ef2*A3, ef4*A4

	// columns: 0=rho, 1=u, 2=v, 3=h, 4=c
	var dW1d, dW2d, dW3d, dW4d [5]float64
	dW1d[0] = ef1 * dA1dRho
	dW1d[1] = def1 * A1
	dW1d[4] = -def1*A1 + ef1*dA1dC

	dW2d[1] = def2 * A2
	dW2d[4] = ef2 * dA2dC

	dW3d[0] = ef2 * dA3dRho
	dW3d[1] = def2 * A3

	dW4d[0] = ef4 * dA4dRho
	dW4d[1] = def4 * A4
	dW4d[4] = def4*A4 + ef4*dA4dC

	var d [4][5]float64
	for j := 0; j < 5; j++ {
		d[0][j] = dW1d[j] + dW2d[j] + dW4d[j]
	}

	for j := 0; j < 5; j++ {
		d[1][j] = dW1d[j]*L1 + dW2d[j]*L2 + dW4d[j]*L4
	}
	d[1][1] += dW1 + dW2 + dW4
	d[1][4] += -dW1 + dW4

	var sumDW [5]float64
	for j := 0; j < 5; j++ {
		sumDW[j] = dW1d[j] + dW2d[j] + dW4d[j]
	}
	for j := 0; j < 5; j++ {
		d[2][j] = sumDW[j]*V + dW3d[j]
	}
	d[2][2] += dW1 + dW2 + dW4

	Q1, Q2, Q4 := Hh-U*C, 0.5*(U*U+V*V), Hh+U*C
	for j := 0; j < 5; j++ {
		d[3][j] = dW1d[j]*Q1 + dW2d[j]*Q2 + dW3d[j]*V + dW4d[j]*Q4
	}
	d[3][1] += -dW1*C + dW2*U + dW4*C
	d[3][2] += dW2*V + dW3
	d[3][3] += dW1 + dW4
	d[3][4] += -dW1*U + dW4*U

	return d
}

// rsDerivToJacobian contracts d(corr)/d(rs) with d(rs)/d(u) into the
// resulting 4x4 sensitivity of corr to u.
func rsDerivToJacobian(dCorrDrs [4][5]float64, d rsDeriv) physics.Jacobian4 {
	cols := [5][4]float64{d.dRho, d.dU, d.dV, d.dH, d.dC}
	var out physics.Jacobian4
	for row := 0; row < 4; row++ {
		for k := 0; k < 4; k++ {
			var s float64
			for j := 0; j < 5; j++ {
				s += dCorrDrs[row][j] * cols[j][k]
			}
			out[row][k] = s
		}
	}
	return out
}

func (b RoePike) Flux(g *physics.Gas, uL, uR physics.State, nx, ny float64) physics.State {
	rs := roeAverage(g, uL, uR, nx, ny)
	wL, wR := g.ToPrimitive(uL), g.ToPrimitive(uR)
	unL := wL[1]*nx + wL[2]*ny
	utL := -wL[1]*ny + wL[2]*nx
	unR := wR[1]*nx + wR[2]*ny
	utR := -wR[1]*ny + wR[2]*nx

	corr := b.dissipation(rs, wR[0]-wL[0], unR-unL, utR-utL, wR[3]-wL[3])

	fL := normalFlux(g, uL, nx, ny)
	fR := normalFlux(g, uR, nx, ny)
	corrX := corr[1]*nx - corr[2]*ny
	corrY := corr[1]*ny + corr[2]*nx

	return physics.State{
		0.5*(fL[0]+fR[0]) - 0.5*corr[0],
		0.5*(fL[1]+fR[1]) - 0.5*corrX,
		0.5*(fL[2]+fR[2]) - 0.5*corrY,
		0.5*(fL[3]+fR[3]) - 0.5*corr[3],
	}
}

// dissipationMatrix returns the 4x4 linear map from a rotated primitive
// difference (drho,dun,dut,dp) to corr, at the frozen Roe state rs.
func (b RoePike) dissipationMatrix(rs roeState) physics.Jacobian4 {
	var d physics.Jacobian4
	basis := [4][4]float64{
		{1, 0, 0, 0}, {0, 1, 0, 0}, {0, 0, 1, 0}, {0, 0, 0, 1},
	}
	for col := 0; col < 4; col++ {
		e := basis[col]
		corr := b.dissipation(rs, e[0], e[1], e[2], e[3])
		for row := 0; row < 4; row++ {
			d[row][col] = corr[row]
		}
	}
	return d
}

func (b RoePike) Jacobian(g *physics.Gas, uL, uR physics.State, nx, ny float64) (L, R physics.Jacobian4) {
	rs := roeAverage(g, uL, uR, nx, ny)
	dCorr := b.dissipationMatrix(rs)

	// rot: Cartesian primitive (rho,u,v,p) -> rotated primitive (rho,un,ut,p)
	rot := physics.Jacobian4{
		{1, 0, 0, 0},
		{0, nx, ny, 0},
		{0, -ny, nx, 0},
		{0, 0, 0, 1},
	}
	// unrot: rotated corr (mass,momN,momT,energy) -> Cartesian (mass,momX,momY,energy)
	unrot := physics.Jacobian4{
		{1, 0, 0, 0},
		{0, nx, -ny, 0},
		{0, ny, nx, 0},
		{0, 0, 0, 1},
	}
	unrotDcorr := physics.MulJacobian(unrot, dCorr)

	wL, wR := g.ToPrimitive(uL), g.ToPrimitive(uR)
	unL := wL[1]*nx + wL[2]*ny
	utL := -wL[1]*ny + wL[2]*nx
	unR := wR[1]*nx + wR[2]*ny
	utR := -wR[1]*ny + wR[2]*nx

	jPrimL := g.ToPrimitiveJacobian(uL)
	jPrimR := g.ToPrimitiveJacobian(uR)
	sensL := physics.MulJacobian(unrotDcorr, physics.MulJacobian(rot, jPrimL))
	sensR := physics.MulJacobian(unrotDcorr, physics.MulJacobian(rot, jPrimR))

	dCorrDrs := b.dissipationDeriv(rs, wR[0]-wL[0], unR-unL, utR-utL, wR[3]-wL[3])
	dL, dR := roeAverageDeriv(g, uL, uR, nx, ny)
	extraL := physics.MulJacobian(unrot, rsDerivToJacobian(dCorrDrs, dL))
	extraR := physics.MulJacobian(unrot, rsDerivToJacobian(dCorrDrs, dR))

	aL := fluxJacobian(g, uL, nx, ny)
	aR := fluxJacobian(g, uR, nx, ny)
	for i := 0; i < 4; i++ {
		for k := 0; k < 4; k++ {
			L[i][k] = 0.5*aL[i][k] + 0.5*sensL[i][k] - 0.5*extraL[i][k]
			R[i][k] = 0.5*aR[i][k] - 0.5*sensR[i][k] - 0.5*extraR[i][k]
		}
	}
	return
}
