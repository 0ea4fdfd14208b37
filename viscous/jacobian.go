package viscous

import "github.com/gocfd2d/fvm2d/physics"

// Jacobian linearizes the viscous flux using the thin-layer gradient
// approximation: ∇_face u ≈ ((u_R − u_L)/|d|) d̂, differentiated exactly
// through the primitive-2 chain rule. This drops the averaged-gradient
// term's contribution to the Jacobian (its sensitivity to the neighboring
// cells beyond uL, uR would otherwise pull in the gradient scheme's own
// stencil), the same stability-motivated simplification the spec calls for
// by default.
func (e *Evaluator) Jacobian(uL, uR physics.State, clx, cly, crx, cry, nx, ny float64) (L, R physics.Jacobian4) {
	g := e.Gas
	wL, wR := g.ToPrimitive(uL), g.ToPrimitive(uR)
	fg := geom(clx, cly, crx, cry)

	jpL, jpR := g.ToPrimitiveJacobian(uL), g.ToPrimitiveJacobian(uR)
	jp2L, jp2R := g.ToPrimitive2Jacobian(uL), g.ToPrimitive2Jacobian(uR)

	muL, muR := e.mu(uL), e.mu(uR)
	mu := 0.5 * (muL + muR)
	k := g.ThermalConductivity(mu)
	dmuL, dmuR := e.dmu(uL), e.dmu(uR)
	dkL, dkR := g.ThermalConductivityJacobian(dmuL), g.ThermalConductivityJacobian(dmuR)

	TL, TR := g.Temperature(wL[0], wL[3]), g.Temperature(wR[0], wR[3])
	gradFaceU := thinLayer(wL[1], wR[1], fg)
	gradFaceV := thinLayer(wL[2], wR[2], fg)
	gradFaceT := thinLayer(TL, TR, fg)
	gradVMat := buildGradV(gradFaceU, gradFaceV)
	tau := physics.StressTensor(mu, gradVMat)
	vbar := [2]float64{0.5 * (wL[1] + wR[1]), 0.5 * (wL[2] + wR[2])}
	n := [2]float64{nx, ny}

	invDist := 1 / fg.dist
	for k4 := 0; k4 < physics.NVars; k4++ {
		// d(gradFaceU)/duL_k, d(gradFaceV)/duL_k, d(gradFaceT)/duL_k, side=-1 (left) or +1 (right)
		dGradUL := scaleVec(fg.dhat, -invDist*jpL[1][k4])
		dGradVL := scaleVec(fg.dhat, -invDist*jpL[2][k4])
		dGradTL := scaleVec(fg.dhat, -invDist*jp2L[3][k4])
		dGradUR := scaleVec(fg.dhat, invDist*jpR[1][k4])
		dGradVR := scaleVec(fg.dhat, invDist*jpR[2][k4])
		dGradTR := scaleVec(fg.dhat, invDist*jp2R[3][k4])

		gvL, gvR := buildGradV(dGradUL, dGradVL), buildGradV(dGradUR, dGradVR)
		var dGradVMatL, dGradVMatR [physics.NDim][physics.NDim][physics.NVars]float64
		for i := 0; i < physics.NDim; i++ {
			for j := 0; j < physics.NDim; j++ {
				dGradVMatL[i][j][k4], dGradVMatR[i][j][k4] = gvL[i][j], gvR[i][j]
			}
		}

		var dMuL, dMuR [physics.NVars]float64
		dMuL[k4] = 0.5 * dmuL[k4]
		dMuR[k4] = 0.5 * dmuR[k4]
		_, dTauL := physics.StressTensorJacobian(mu, dMuL, gradVMat, dGradVMatL)
		_, dTauR := physics.StressTensorJacobian(mu, dMuR, gradVMat, dGradVMatR)

		dVbarL := [2]float64{0.5 * jpL[1][k4], 0.5 * jpL[2][k4]}
		dVbarR := [2]float64{0.5 * jpR[1][k4], 0.5 * jpR[2][k4]}

		var dMomL, dMomR [2]float64
		dEnergyL, dEnergyR := 0.0, 0.0
		for i := 0; i < physics.NDim; i++ {
			for j := 0; j < physics.NDim; j++ {
				dMomL[i] += dTauL[i][j][k4] * n[j]
				dMomR[i] += dTauR[i][j][k4] * n[j]
			}
			innerL, innerR := 0.0, 0.0
			for j := 0; j < physics.NDim; j++ {
				innerL += dTauL[i][j][k4]*vbar[j] + tau[i][j]*dVbarL[j]
				innerR += dTauR[i][j][k4]*vbar[j] + tau[i][j]*dVbarR[j]
			}
			dEnergyL += (innerL + dkL[k4]*gradFaceT[i] + k*dGradTL[i]) * n[i]
			dEnergyR += (innerR + dkR[k4]*gradFaceT[i] + k*dGradTR[i]) * n[i]
		}

		L[1][k4], L[2][k4], L[3][k4] = dMomL[0], dMomL[1], dEnergyL
		R[1][k4], R[2][k4], R[3][k4] = dMomR[0], dMomR[1], dEnergyR
	}
	return
}

func scaleVec(v [2]float64, s float64) [2]float64 { return [2]float64{v[0] * s, v[1] * s} }

// DiagonalJacobian is the optional cheap approximate Jacobian: only the
// diagonal −μ/(ρ̄|d|) contribution on both sides, dropping every
// cross-variable and cross-component coupling. Useful when the full
// thin-layer linearization destabilizes the linear solve.
func (e *Evaluator) DiagonalJacobian(uL, uR physics.State, clx, cly, crx, cry float64) (L, R physics.Jacobian4) {
	fg := geom(clx, cly, crx, cry)
	muL, muR := e.mu(uL), e.mu(uR)
	mu := 0.5 * (muL + muR)
	rhoBar := 0.5 * (uL[0] + uR[0])
	d := -mu / (rhoBar * fg.dist)
	for k := 1; k < physics.NVars; k++ {
		L[k][k] = d
		R[k][k] = d
	}
	return
}
