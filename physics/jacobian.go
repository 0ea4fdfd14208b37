package physics

// FromPrimitiveJacobian returns d(conserved)/d(primitive) at w.
func (g *Gas) FromPrimitiveJacobian(w Primitive) Jacobian4 {
	rho, u, v := w[0], w[1], w[2]
	gm1 := g.Gamma - 1
	var j Jacobian4
	j[0] = [NVars]float64{1, 0, 0, 0}
	j[1] = [NVars]float64{u, rho, 0, 0}
	j[2] = [NVars]float64{v, 0, rho, 0}
	j[3] = [NVars]float64{0.5 * (u*u + v*v), rho * u, rho * v, 1 / gm1}
	return j
}

// MulJacobian returns the matrix product A*B for two 4x4 Jacobians.
func MulJacobian(a, b Jacobian4) Jacobian4 {
	var c Jacobian4
	for i := 0; i < NVars; i++ {
		for j := 0; j < NVars; j++ {
			var s float64
			for k := 0; k < NVars; k++ {
				s += a[i][k] * b[k][j]
			}
			c[i][j] = s
		}
	}
	return c
}

// IdentityJacobian returns the 4x4 identity matrix.
func IdentityJacobian() Jacobian4 {
	var j Jacobian4
	for i := 0; i < NVars; i++ {
		j[i][i] = 1
	}
	return j
}
