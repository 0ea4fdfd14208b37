package gradient

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/gocfd2d/fvm2d/mesh"
	"github.com/gocfd2d/fvm2d/physics"
)

type lsqNeighbor struct {
	id   int // real cell or ghost index
	dx   [2]float64
	wsq  float64
}

// LeastSquares estimates ∇u_c by a weighted linear least-squares fit over
// the cells (real and ghost) sharing a face with c, weighted by inverse
// distance squared. The symmetric 2x2 normal-equations matrix depends only
// on mesh geometry, so it is Cholesky-factored once per cell at
// construction; Compute only ever assembles and solves the per-variable
// right-hand side.
type LeastSquares struct {
	m         mesh.View
	neighbors [][]lsqNeighbor
	chol      []mat.Cholesky
}

// NewLeastSquares builds and factors the per-cell least-squares systems for
// mesh m. Returns an error if a cell's normal-equations matrix is singular
// (degenerate geometry, e.g. an isolated cell with collinear neighbors).
func NewLeastSquares(m mesh.View) (*LeastSquares, error) {
	nelem := m.NElem()
	neighbors := make([][]lsqNeighbor, nelem)
	for f := 0; f < m.NAFace(); f++ {
		left, right, _, _ := m.Face(f)
		clx, cly := m.CellCenter(left)
		crx, cry := m.CellCenter(right)
		dx, dy := crx-clx, cry-cly
		d := math.Hypot(dx, dy)
		w := 1 / d
		neighbors[left] = append(neighbors[left], lsqNeighbor{id: right, dx: [2]float64{dx, dy}, wsq: w * w})
		if right < nelem {
			neighbors[right] = append(neighbors[right], lsqNeighbor{id: left, dx: [2]float64{-dx, -dy}, wsq: w * w})
		}
	}

	chol := make([]mat.Cholesky, nelem)
	for c := 0; c < nelem; c++ {
		var a00, a01, a11 float64
		for _, n := range neighbors[c] {
			a00 += n.wsq * n.dx[0] * n.dx[0]
			a01 += n.wsq * n.dx[0] * n.dx[1]
			a11 += n.wsq * n.dx[1] * n.dx[1]
		}
		sym := mat.NewSymDense(2, []float64{a00, a01, a01, a11})
		if ok := chol[c].Factorize(sym); !ok {
			return nil, fmt.Errorf("gradient: least-squares normal matrix singular for cell %d", c)
		}
	}
	return &LeastSquares{m: m, neighbors: neighbors, chol: chol}, nil
}

func (l *LeastSquares) Compute(u, uGhost []physics.State, grads []Grad) {
	nelem := l.m.NElem()
	var rhs mat.VecDense
	var sol mat.VecDense
	rhs.Reset()
	for c := 0; c < nelem; c++ {
		var b [physics.NVars][2]float64
		for _, n := range l.neighbors[c] {
			var uj physics.State
			if n.id < nelem {
				uj = u[n.id]
			} else {
				uj = uGhost[n.id-nelem]
			}
			for k := 0; k < physics.NVars; k++ {
				du := uj[k] - u[c][k]
				b[k][0] += n.wsq * du * n.dx[0]
				b[k][1] += n.wsq * du * n.dx[1]
			}
		}
		for k := 0; k < physics.NVars; k++ {
			rhs.Reset()
			rhs.ReuseAsVec(2)
			rhs.SetVec(0, b[k][0])
			rhs.SetVec(1, b[k][1])
			sol.Reset()
			if err := l.chol[c].SolveVecTo(&sol, &rhs); err != nil {
				grads[c][k] = [2]float64{}
				continue
			}
			grads[c][k][0] = sol.AtVec(0)
			grads[c][k][1] = sol.AtVec(1)
		}
	}
}
