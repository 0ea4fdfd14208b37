package physics

import "math"

// SodExactSolution returns the exact Riemann solution of the classic Sod
// shock tube (left state ρ=1, p=1, u=0; right state ρ=0.125, p=0.1, u=0;
// diaphragm at x=0.5, γ=1.4, domain [0,1]) at time t, sampled at the
// rarefaction-fan and discontinuity boundaries. It is a reference solution
// for validating the spatial discretization's shock-capturing behavior, not
// a solver component itself.
func SodExactSolution(t float64) (x, rho, p, u []float64) {
	const (
		xMin, xMax = 0., 1.
		rhoL, pL, uL = 1., 1., 0.
		rhoR, pR, uR = 0.125, 0.1, 0.
		gamma        = 1.4
	)
	x0 := 0.5 * (xMax + xMin)
	mu := math.Sqrt((gamma - 1) / (gamma + 1))
	cL := math.Sqrt(gamma * pL / rhoL)

	pPost := sodPostShockPressure(pR, rhoR, gamma, mu)
	vPost := 2 * (math.Sqrt(gamma) / (gamma - 1)) * (1 - math.Pow(pPost, (gamma-1)/(2*gamma)))
	rhoPost := rhoR * (((pPost / pR) + mu*mu) / (1 + mu*mu*(pPost/pR)))
	vShock := vPost * (rhoPost / rhoR) / ((rhoPost / rhoR) - 1.)
	rhoMiddle := rhoL * math.Pow(pPost/pL, 1./gamma)

	x1 := x0 - cL*t
	x3 := x0 + vPost*t
	x4 := x0 + vShock*t
	c2 := cL - 0.5*(gamma-1.)*vPost
	x2 := x0 + t*(vPost-c2)

	const tol = 1.e-8
	x = []float64{
		xMin,
		x1 - tol, x1 + tol,
		x2 - tol, x2 + tol,
		x3 - tol, x3 + tol,
		x4 - tol, x4 + tol,
		xMax,
	}
	rho = make([]float64, len(x))
	p = make([]float64, len(x))
	u = make([]float64, len(x))
	for i, xi := range x {
		switch {
		case xi < x1:
			rho[i], p[i], u[i] = rhoL, pL, uL
		case xi <= x2:
			c := mu*mu*((x0-xi)/t) + (1.-mu*mu)*cL
			rho[i] = rhoL * math.Pow(c/cL, 2/(gamma-1))
			p[i] = pL * math.Pow(rho[i]/rhoL, gamma)
			u[i] = (1. - mu*mu) * (-(x0-xi)/t + cL)
		case xi <= x3:
			rho[i], p[i], u[i] = rhoMiddle, pPost, vPost
		case xi <= x4:
			rho[i], p[i], u[i] = rhoPost, pPost, vPost
		default:
			rho[i], p[i], u[i] = rhoR, pR, uR
		}
	}
	return
}

// sodPostShockPressure solves the implicit pressure-jump relation across
// the shock by the secant method, starting from a bracket known to
// converge for the classic Sod parameters.
func sodPostShockPressure(pR, rhoR, gamma, mu float64) float64 {
	f := func(p float64) float64 {
		mu2 := mu * mu
		return (p-pR)*math.Sqrt((1-mu2)*(1-mu2)/(rhoR*(p+mu2*pR))) -
			2*(math.Sqrt(gamma)/(gamma-1))*(1-math.Pow(p, (gamma-1)/(2*gamma)))
	}
	const tol = 1.e-7
	start := math.Pi
	prev := start / 2
	resPrev := f(prev)
	for iter := 0; iter < 100; iter++ {
		res := f(start)
		if math.Abs(res) <= tol {
			return start
		}
		deriv := (start - prev) / (res - resPrev)
		next := math.Abs(start - 0.01*res/deriv)
		prev, resPrev = start, res
		start = next
	}
	return start
}
