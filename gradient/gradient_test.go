package gradient

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gocfd2d/fvm2d/mesh"
	"github.com/gocfd2d/fvm2d/physics"
)

// linearMesh builds a 2x2 Cartesian grid of unit-square quad cells, with
// boundary markers on all four sides. Green-Gauss and weighted
// least-squares both recover the exact gradient of an affine field on a
// grid this regular, since face midpoints lie on the line joining the
// adjoining cell centers.
func linearMesh(t *testing.T) *mesh.Mesh {
	raw := mesh.RawMesh{
		Points: []mesh.Point{
			{0, 0}, {1, 0}, {2, 0},
			{0, 1}, {1, 1}, {2, 1},
			{0, 2}, {1, 2}, {2, 2},
		},
		Quads: [][4]int{
			{0, 1, 4, 3}, {1, 2, 5, 4},
			{3, 4, 7, 6}, {4, 5, 8, 7},
		},
		BoundaryEdges: map[string][][2]int{
			"bottom": {{0, 1}, {1, 2}},
			"right":  {{2, 5}, {5, 8}},
			"top":    {{8, 7}, {7, 6}},
			"left":   {{6, 3}, {3, 0}},
		},
	}
	m, err := mesh.NewBuilder().Build(raw)
	require.NoError(t, err)
	return m
}

// linearField evaluates u = a + bx*x + by*y in every conserved component,
// using the same coefficients for all four variables for simplicity.
func linearField(x, y, bx, by float64) physics.State {
	val := 2 + bx*x + by*y
	return physics.State{val, val, val, val}
}

func buildFields(m *mesh.Mesh, bx, by float64) ([]physics.State, []physics.State) {
	u := make([]physics.State, m.NElem())
	for c := range u {
		x, y := m.CellCenter(c)
		u[c] = linearField(x, y, bx, by)
	}
	ug := make([]physics.State, m.NBFace())
	for f := 0; f < m.NBFace(); f++ {
		_, right, _, _ := m.Face(f)
		x, y := m.CellCenter(right)
		ug[f] = linearField(x, y, bx, by)
	}
	return u, ug
}

func TestGreenGaussExactOnLinearField(t *testing.T) {
	m := linearMesh(t)
	bx, by := 1.5, -0.7
	u, ug := buildFields(m, bx, by)
	grads := make([]Grad, m.NElem())
	NewGreenGauss(m).Compute(u, ug, grads)
	for c := range grads {
		for k := 0; k < physics.NVars; k++ {
			assert.True(t, math.Abs(grads[c][k][0]-bx) < 1.e-9, "cell %d var %d dx", c, k)
			assert.True(t, math.Abs(grads[c][k][1]-by) < 1.e-9, "cell %d var %d dy", c, k)
		}
	}
}

func TestLeastSquaresExactOnLinearField(t *testing.T) {
	m := linearMesh(t)
	bx, by := -0.3, 2.1
	u, ug := buildFields(m, bx, by)
	ls, err := NewLeastSquares(m)
	require.NoError(t, err)
	grads := make([]Grad, m.NElem())
	ls.Compute(u, ug, grads)
	for c := range grads {
		for k := 0; k < physics.NVars; k++ {
			assert.True(t, math.Abs(grads[c][k][0]-bx) < 1.e-9, "cell %d var %d dx", c, k)
			assert.True(t, math.Abs(grads[c][k][1]-by) < 1.e-9, "cell %d var %d dy", c, k)
		}
	}
}

func TestZeroGradientIsZero(t *testing.T) {
	m := linearMesh(t)
	u, ug := buildFields(m, 1, 1)
	grads := make([]Grad, m.NElem())
	for c := range grads {
		grads[c][0][0] = 99
	}
	Zero{}.Compute(u, ug, grads)
	for c := range grads {
		assert.Equal(t, Grad{}, grads[c])
	}
}

func TestGreenGaussUniformFieldHasZeroGradient(t *testing.T) {
	m := linearMesh(t)
	u, ug := buildFields(m, 0, 0)
	grads := make([]Grad, m.NElem())
	NewGreenGauss(m).Compute(u, ug, grads)
	for c := range grads {
		for k := 0; k < physics.NVars; k++ {
			assert.True(t, math.Abs(grads[c][k][0]) < 1.e-9)
			assert.True(t, math.Abs(grads[c][k][1]) < 1.e-9)
		}
	}
}
