package postprocess

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gocfd2d/fvm2d/gradient"
	"github.com/gocfd2d/fvm2d/physics"
	"github.com/gocfd2d/fvm2d/viscous"
)

// fakeMesh is a minimal mesh.View stand-in exposing just enough topology
// for a single-face wall: one boundary face on marker 1, outward normal
// (0,1), length 1, with an interior cell (id 0) on the left.
type fakeMesh struct {
	marker     int
	nx, ny, ln float64
	points     [4][2]float64 // node 0, node 1
}

func (f fakeMesh) NElem() int  { return 1 }
func (f fakeMesh) NBFace() int { return 1 }
func (f fakeMesh) NAFace() int { return 1 }
func (f fakeMesh) GNNofa() int { return 2 }
func (f fakeMesh) Area(int) float64 { return 1 }
func (f fakeMesh) FaceMetric(int) (nx, ny, length float64) { return f.nx, f.ny, f.ln }
func (f fakeMesh) Face(int) (left, right, nodeA, nodeB int) { return 0, 1, 0, 1 }
func (f fakeMesh) FaceMarker(int) int                       { return f.marker }
func (f fakeMesh) Normal(int) (nx, ny float64)               { return f.nx, f.ny }
func (f fakeMesh) Coord(node, dim int) float64 { return f.points[node][dim] }
func (f fakeMesh) PeriodicMap(int) int          { return -1 }
func (f fakeMesh) Esuel(int, int) int           { return -1 }
func (f fakeMesh) CellCenter(int) (x, y float64) { return 0.5, -0.5 }

func testGas() *physics.Gas { return physics.New(1.4, 0.3, 288.16, 1.e4, 0.72) }

func near(a, b, tol float64) bool { return math.Abs(a-b) <= tol }

func TestSurfaceDataZeroAtFreestreamInviscid(t *testing.T) {
	g := testGas()
	m := fakeMesh{marker: 1, nx: 0, ny: 1, ln: 1, points: [4][2]float64{{0, 0}, {1, 0}}}
	u := []physics.State{g.FreestreamState(0)}
	grads := []gradient.Grad{{}}

	CL, Cdp, Cdf, pts := ComputeSurfaceData(m, g, u, grads, nil, 1, 0)
	assert.True(t, near(CL, 0, 1.e-12))
	assert.True(t, near(Cdp, 0, 1.e-12))
	assert.Equal(t, 0.0, Cdf)
	assert.Len(t, pts, 1)
	assert.True(t, near(pts[0].Cp, 0, 1.e-12))
	assert.Equal(t, 0.0, pts[0].Cf)
}

func TestSurfaceDataPressureDragFromElevatedPressure(t *testing.T) {
	g := testGas()
	m := fakeMesh{marker: 1, nx: 1, ny: 0, ln: 1, points: [4][2]float64{{0, 0}, {0, 1}}}
	free := g.FreestreamState(0)
	pInf := g.Pressure(free)
	elevated := g.FromPrimitive(physics.Primitive{free[0], 0, 0, pInf * 1.2})
	u := []physics.State{elevated}
	grads := []gradient.Grad{{}}

	_, Cdp, _, pts := ComputeSurfaceData(m, g, u, grads, nil, 1, 0)
	assert.True(t, Cdp < 0, "higher pressure pushing in -x on a +x-facing wall should drag negative by this sign convention: %v", Cdp)
	assert.True(t, pts[0].Cp > 0)
}

func TestSurfaceDataSkinFrictionFromWallShear(t *testing.T) {
	g := testGas()
	e := &viscous.Evaluator{Gas: g, ConstMu: 0.1}
	m := fakeMesh{marker: 1, nx: 0, ny: 1, ln: 1, points: [4][2]float64{{0, 0}, {1, 0}}}
	u := []physics.State{g.FreestreamState(0)}
	var grad gradient.Grad
	grad[1][1] = 0.5 // du/dy, a wall-tangential shear
	grads := []gradient.Grad{grad}

	_, _, Cdf, pts := ComputeSurfaceData(m, g, u, grads, e, 1, 0)
	assert.True(t, pts[0].Cf > 0)
	assert.True(t, Cdf != 0)
}
