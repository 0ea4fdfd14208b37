// Package viscous evaluates the Navier-Stokes viscous flux across a face
// and its Jacobian, given cell-centered conserved states, one-sided
// primitive gradients, and face geometry.
package viscous

import (
	"math"

	"github.com/gocfd2d/fvm2d/gradient"
	"github.com/gocfd2d/fvm2d/physics"
)

// Evaluator computes the viscous flux across a face. ConstMu, when
// positive, overrides Sutherland's law with a single constant viscosity
// coefficient for the whole flow field.
type Evaluator struct {
	Gas    *physics.Gas
	ConstMu float64
}

// Mu returns the dynamic viscosity at the given conserved state, using
// Sutherland's law or the constant override, for callers outside this
// package that need it for stability-limit estimates.
func (e *Evaluator) Mu(u physics.State) float64 { return e.mu(u) }

func (e *Evaluator) mu(u physics.State) float64 {
	if e.ConstMu > 0 {
		return physics.ConstViscosity(e.ConstMu)
	}
	return e.Gas.Viscosity(u)
}

func (e *Evaluator) dmu(u physics.State) [physics.NVars]float64 {
	if e.ConstMu > 0 {
		return [physics.NVars]float64{}
	}
	return e.Gas.ViscosityJacobian(u)
}

// faceGeom bundles the cell-to-cell separation used by the modified-average
// and thin-layer gradient formulas.
type faceGeom struct {
	dist       float64
	dhat       [2]float64
}

func geom(clx, cly, crx, cry float64) faceGeom {
	dx, dy := crx-clx, cry-cly
	d := math.Hypot(dx, dy)
	return faceGeom{dist: d, dhat: [2]float64{dx / d, dy / d}}
}

// gradT extracts the temperature gradient implied by a primitive (ρ,u,v,p)
// gradient, via GradTFromGradPrimitive applied componentwise.
func gradT(g *physics.Gas, rho, p float64, gradRho, gradP [2]float64) [2]float64 {
	return [2]float64{
		g.GradTFromGradPrimitive(rho, gradRho[0], p, gradP[0]),
		g.GradTFromGradPrimitive(rho, gradRho[1], p, gradP[1]),
	}
}

// modifiedAverage implements the face-gradient formula of step 3: the
// cell-average gradient with its component along the line connecting cell
// centers replaced by the direct (thin-layer) finite difference.
func modifiedAverage(avg [2]float64, varL, varR float64, fg faceGeom) [2]float64 {
	avgDotD := avg[0]*fg.dhat[0] + avg[1]*fg.dhat[1]
	thin := (varR - varL) / fg.dist
	return [2]float64{
		avg[0] - avgDotD*fg.dhat[0] + thin*fg.dhat[0],
		avg[1] - avgDotD*fg.dhat[1] + thin*fg.dhat[1],
	}
}

// thinLayer is the Jacobian-path simplification: drop the averaged
// tangential component entirely and keep only the normal difference.
func thinLayer(varL, varR float64, fg faceGeom) [2]float64 {
	thin := (varR - varL) / fg.dist
	return [2]float64{thin * fg.dhat[0], thin * fg.dhat[1]}
}

func buildGradV(gradU, gradV [2]float64) [physics.NDim][physics.NDim]float64 {
	return [physics.NDim][physics.NDim]float64{
		{gradU[0], gradV[0]},
		{gradU[1], gradV[1]},
	}
}

// Flux evaluates the full second-order viscous flux across a face with
// left/right cell centers (clx,cly),(crx,cry), outward normal (nx,ny), and
// one-sided primitive gradients gradL, gradR (indexed ρ,u,v,p per
// gradient.Grad's variable slot).
func (e *Evaluator) Flux(uL, uR physics.State, gradL, gradR gradient.Grad, clx, cly, crx, cry, nx, ny float64) physics.State {
	g := e.Gas
	wL, wR := g.ToPrimitive(uL), g.ToPrimitive(uR)
	fg := geom(clx, cly, crx, cry)

	gradTL := gradT(g, wL[0], wL[3], gradL[0], gradL[3])
	gradTR := gradT(g, wR[0], wR[3], gradR[0], gradR[3])

	avgGradU := [2]float64{0.5 * (gradL[1][0] + gradR[1][0]), 0.5 * (gradL[1][1] + gradR[1][1])}
	avgGradV := [2]float64{0.5 * (gradL[2][0] + gradR[2][0]), 0.5 * (gradL[2][1] + gradR[2][1])}
	avgGradT := [2]float64{0.5 * (gradTL[0] + gradTR[0]), 0.5 * (gradTL[1] + gradTR[1])}

	gradFaceU := modifiedAverage(avgGradU, wL[1], wR[1], fg)
	gradFaceV := modifiedAverage(avgGradV, wL[2], wR[2], fg)
	gradFaceT := modifiedAverage(avgGradT, g.Temperature(wL[0], wL[3]), g.Temperature(wR[0], wR[3]), fg)

	muL, muR := e.mu(uL), e.mu(uR)
	mu := 0.5 * (muL + muR)
	k := g.ThermalConductivity(mu)

	gradVMat := buildGradV(gradFaceU, gradFaceV)
	tau := physics.StressTensor(mu, gradVMat)

	vbar := [2]float64{0.5 * (wL[1] + wR[1]), 0.5 * (wL[2] + wR[2])}
	n := [2]float64{nx, ny}

	var momFlux [2]float64
	energyFlux := 0.0
	for i := 0; i < physics.NDim; i++ {
		for j := 0; j < physics.NDim; j++ {
			momFlux[i] += tau[i][j] * n[j]
		}
		inner := 0.0
		for j := 0; j < physics.NDim; j++ {
			inner += tau[i][j] * vbar[j]
		}
		energyFlux += (inner + k*gradFaceT[i]) * n[i]
	}

	return physics.State{0, momFlux[0], momFlux[1], energyFlux}
}
