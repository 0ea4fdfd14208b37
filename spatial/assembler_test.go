package spatial

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gocfd2d/fvm2d/bc"
	"github.com/gocfd2d/fvm2d/gradient"
	"github.com/gocfd2d/fvm2d/matrix"
	"github.com/gocfd2d/fvm2d/mesh"
	"github.com/gocfd2d/fvm2d/numflux"
	"github.com/gocfd2d/fvm2d/physics"
)

func testGas() *physics.Gas { return physics.New(1.4, 0.3, 288.16, 1.e4, 0.72) }

func near(a, b, tol float64) bool { return math.Abs(a-b) <= tol }

// farfieldSquare builds a two-triangle unit square with every boundary edge
// on a single "wall" marker.
func farfieldSquare(t *testing.T) *mesh.Mesh {
	raw := mesh.RawMesh{
		Points:    []mesh.Point{{0, 0}, {1, 0}, {1, 1}, {0, 1}},
		Triangles: [][3]int{{0, 1, 2}, {0, 2, 3}},
		BoundaryEdges: map[string][][2]int{
			"wall": {{0, 1}, {1, 2}, {2, 3}, {3, 0}},
		},
	}
	m, err := mesh.NewBuilder().Build(raw)
	require.NoError(t, err)
	return m
}

// periodicStrip builds the left/right-periodic four-triangle fixture: a
// 2x1 block of unit squares, each split into two triangles, with the left
// and right edges tagged periodic and top/bottom tagged farfield walls.
func periodicStrip(t *testing.T) *mesh.Mesh {
	raw := mesh.RawMesh{
		Points: []mesh.Point{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {2, 0}, {2, 1}},
		Triangles: [][3]int{
			{0, 1, 2}, {0, 2, 3},
			{1, 4, 5}, {1, 5, 2},
		},
		BoundaryEdges: map[string][][2]int{
			"left":   {{3, 0}},
			"right":  {{4, 5}},
			"top":    {{2, 3}, {5, 2}},
			"bottom": {{0, 1}, {1, 4}},
		},
	}
	b := &mesh.Builder{PeriodicPairs: [][2]string{{"left", "right"}}}
	m, err := b.Build(raw)
	require.NoError(t, err)
	return m
}

func uniformField(g *physics.Gas, n int) []physics.State {
	u := g.FreestreamState(0)
	out := make([]physics.State, n)
	for i := range out {
		out[i] = u
	}
	return out
}

func TestResidualZeroAtFreestreamFarfield(t *testing.T) {
	g := testGas()
	m := farfieldSquare(t)
	reg := bc.NewRegistry()
	reg.Set(1, bc.Farfield{UInf: g.FreestreamState(0)})
	a := &Assembler{Mesh: m, Gas: g, BCs: reg, Flux: numflux.LLF{}}

	u := uniformField(g, m.NElem())
	r, _, err := a.Residual(u, false)
	require.NoError(t, err)
	for c := range r {
		for k := 0; k < physics.NVars; k++ {
			assert.True(t, near(r[c][k], 0, 1.e-10), "cell %d comp %d = %v", c, k, r[c][k])
		}
	}
}

func TestResidualZeroAtFreestreamPeriodic(t *testing.T) {
	g := testGas()
	m := periodicStrip(t)
	reg := bc.NewRegistry()
	reg.Set(1, bc.Farfield{UInf: g.FreestreamState(0)}) // bottom
	reg.Set(4, bc.Farfield{UInf: g.FreestreamState(0)}) // top
	a := &Assembler{Mesh: m, Gas: g, BCs: reg, Flux: numflux.LLF{}}

	u := uniformField(g, m.NElem())
	r, _, err := a.Residual(u, false)
	require.NoError(t, err)
	for c := range r {
		for k := 0; k < physics.NVars; k++ {
			assert.True(t, near(r[c][k], 0, 1.e-10), "cell %d comp %d = %v", c, k, r[c][k])
		}
	}
}

func TestResidualDTPositive(t *testing.T) {
	g := testGas()
	m := farfieldSquare(t)
	reg := bc.NewRegistry()
	reg.Set(1, bc.Farfield{UInf: g.FreestreamState(0)})
	a := &Assembler{Mesh: m, Gas: g, BCs: reg, Flux: numflux.LLF{}}

	u := uniformField(g, m.NElem())
	u[0][1] *= 1.1 // perturb one cell off freestream so the field isn't trivially static
	_, dt, err := a.Residual(u, true)
	require.NoError(t, err)
	for c, v := range dt {
		assert.True(t, v > 0, "cell %d dt = %v", c, v)
	}
}

func TestJacobianMatchesResidualFiniteDifference(t *testing.T) {
	g := testGas()
	m := farfieldSquare(t)
	reg := bc.NewRegistry()
	reg.Set(1, bc.Farfield{UInf: g.FreestreamState(0)})
	a := &Assembler{Mesh: m, Gas: g, BCs: reg, Flux: numflux.LLF{Exact: true}}

	u := uniformField(g, m.NElem())
	u[0] = physics.State{1.05, 0.24, -0.03, 2.9}
	u[1] = physics.State{0.95, 0.19, 0.02, 2.7}

	M := matrix.NewBlockSparse(m.NElem(), m.NElem())
	require.NoError(t, a.Jacobian(u, M))

	h := 1.e-6
	for col := 0; col < m.NElem(); col++ {
		for k := 0; k < physics.NVars; k++ {
			up, um := make([]physics.State, len(u)), make([]physics.State, len(u))
			copy(up, u)
			copy(um, u)
			up[col][k] += h
			um[col][k] -= h

			rp, _, err := a.Residual(up, false)
			require.NoError(t, err)
			rm, _, err := a.Residual(um, false)
			require.NoError(t, err)

			for row := 0; row < m.NElem(); row++ {
				block := M.Block(row, col)
				for out := 0; out < physics.NVars; out++ {
					fd := (rp[row][out] - rm[row][out]) / (2 * h)
					an := block[out*matrix.BlockDim+k]
					assert.True(t, near(an, fd, 1.e-3), "row %d col %d out %d k %d: an=%v fd=%v", row, col, out, k, an, fd)
				}
			}
		}
	}
}

// TestJacobianMatchesResidualFiniteDifferenceAcrossSchemes extends the LLF
// check above to the other schemes that provide a genuine analytic
// Jacobian (Roe, Van Leer and HLLC), so a frozen or delegated linearization
// at the flux level can't hide behind the assembler only ever being
// exercised with LLF.
func TestJacobianMatchesResidualFiniteDifferenceAcrossSchemes(t *testing.T) {
	g := testGas()
	m := farfieldSquare(t)
	reg := bc.NewRegistry()
	reg.Set(1, bc.Farfield{UInf: g.FreestreamState(0)})

	u := uniformField(g, m.NElem())
	u[0] = physics.State{1.05, 0.24, -0.03, 2.9}
	u[1] = physics.State{0.95, 0.19, 0.02, 2.7}

	schemes := map[string]numflux.Scheme{
		"ROE":     numflux.RoePike{EntropyFixEps: 0.1},
		"VANLEER": numflux.VanLeer{},
		"HLLC":    numflux.HLLC{},
	}

	for name, scheme := range schemes {
		a := &Assembler{Mesh: m, Gas: g, BCs: reg, Flux: scheme}

		M := matrix.NewBlockSparse(m.NElem(), m.NElem())
		require.NoError(t, a.Jacobian(u, M))

		h := 1.e-6
		for col := 0; col < m.NElem(); col++ {
			for k := 0; k < physics.NVars; k++ {
				up, um := make([]physics.State, len(u)), make([]physics.State, len(u))
				copy(up, u)
				copy(um, u)
				up[col][k] += h
				um[col][k] -= h

				rp, _, err := a.Residual(up, false)
				require.NoError(t, err)
				rm, _, err := a.Residual(um, false)
				require.NoError(t, err)

				for row := 0; row < m.NElem(); row++ {
					block := M.Block(row, col)
					for out := 0; out < physics.NVars; out++ {
						fd := (rp[row][out] - rm[row][out]) / (2 * h)
						an := block[out*matrix.BlockDim+k]
						assert.True(t, near(an, fd, 1.e-2), "%s row %d col %d out %d k %d: an=%v fd=%v", name, row, col, out, k, an, fd)
					}
				}
			}
		}
	}
}

func TestGradientsZeroWithoutScheme(t *testing.T) {
	g := testGas()
	m := farfieldSquare(t)
	reg := bc.NewRegistry()
	reg.Set(1, bc.Farfield{UInf: g.FreestreamState(0)})
	a := &Assembler{Mesh: m, Gas: g, BCs: reg, Flux: numflux.LLF{}}

	grads, err := a.Gradients(uniformField(g, m.NElem()))
	require.NoError(t, err)
	require.Len(t, grads, m.NElem())
	assert.Equal(t, gradient.Grad{}, grads[0])
}

func TestGradientsUsesConfiguredScheme(t *testing.T) {
	g := testGas()
	m := farfieldSquare(t)
	reg := bc.NewRegistry()
	reg.Set(1, bc.Farfield{UInf: g.FreestreamState(0)})
	a := &Assembler{Mesh: m, Gas: g, BCs: reg, Flux: numflux.LLF{}, Gradient: gradient.NewGreenGauss(m)}

	grads, err := a.Gradients(uniformField(g, m.NElem()))
	require.NoError(t, err)
	for c, grad := range grads {
		for k := 0; k < physics.NVars; k++ {
			for d := 0; d < 2; d++ {
				assert.True(t, near(grad[k][d], 0, 1.e-10), "cell %d var %d dim %d = %v", c, k, d, grad[k][d])
			}
		}
	}
}

func TestJacobianRejectsUnregisteredMarker(t *testing.T) {
	g := testGas()
	m := farfieldSquare(t)
	a := &Assembler{Mesh: m, Gas: g, BCs: bc.NewRegistry(), Flux: numflux.LLF{}}
	M := matrix.NewBlockSparse(m.NElem(), m.NElem())
	err := a.Jacobian(uniformField(g, m.NElem()), M)
	assert.Error(t, err)
}
