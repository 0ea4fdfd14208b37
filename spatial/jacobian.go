package spatial

import (
	"sync"

	"github.com/gocfd2d/fvm2d/matrix"
	"github.com/gocfd2d/fvm2d/physics"
)

// ViscousJacobianDiagonal, when set, uses the viscous evaluator's cheap
// diagonal-only Jacobian approximation instead of the full thin-layer
// linearization during Jacobian assembly.
func (a *Assembler) viscousJacobianAt(uL, uR physics.State, clx, cly, crx, cry, nx, ny float64) (L, R physics.Jacobian4) {
	if a.Viscous == nil {
		return
	}
	if a.ViscousJacobianDiagonal {
		return a.Viscous.DiagonalJacobian(uL, uR, clx, cly, crx, cry)
	}
	return a.Viscous.Jacobian(uL, uR, clx, cly, crx, cry, nx, ny)
}

func subJacobian(a, b physics.Jacobian4) physics.Jacobian4 {
	var out physics.Jacobian4
	for i := 0; i < physics.NVars; i++ {
		for j := 0; j < physics.NVars; j++ {
			out[i][j] = a[i][j] - b[i][j]
		}
	}
	return out
}

func scaleFlat(j physics.Jacobian4, s float64) [matrix.BlockDim * matrix.BlockDim]float64 {
	var out [matrix.BlockDim * matrix.BlockDim]float64
	for i := 0; i < physics.NVars; i++ {
		for k := 0; k < physics.NVars; k++ {
			out[i*matrix.BlockDim+k] = j[i][k] * s
		}
	}
	return out
}

// jacobianBoundaryFace submits the diagonal-only block for a non-periodic
// boundary face: the ghost state's dependence on the interior cell folds
// the right-side flux Jacobian into cell L's own diagonal block, since no
// matrix row exists for the synthetic ghost cell.
func (a *Assembler) jacobianBoundaryFace(u []physics.State, f int, M *matrix.BlockSparse) error {
	m, g := a.Mesh, a.Gas
	left, _, _, _ := m.Face(f)
	nx, ny, length := m.FaceMetric(f)
	marker := m.FaceMarker(f)
	cond, ok := a.BCs.Get(marker)
	if !ok {
		return errUnregisteredMarker(marker)
	}
	uGhost, G := cond.GhostJacobian(u[left], nx, ny)
	L, R := a.fluxJac().Jacobian(g, u[left], uGhost, nx, ny)
	if a.Viscous != nil {
		clx, cly := m.CellCenter(left)
		rightIdx := m.NElem() + f
		crx, cry := m.CellCenter(rightIdx)
		lv, rv := a.viscousJacobianAt(u[left], uGhost, clx, cly, crx, cry, nx, ny)
		L, R = subJacobian(L, lv), subJacobian(R, rv)
	}
	diag := physics.MulJacobian(R, G)
	for i := 0; i < physics.NVars; i++ {
		for j := 0; j < physics.NVars; j++ {
			diag[i][j] += L[i][j]
		}
	}
	return M.AddBlock(left, left, scaleFlat(diag, -length))
}

// jacobianPairedFace submits the full four-block interior-style coupling
// for an interior face or a canonical periodic face pair (lelem, relem).
func (a *Assembler) jacobianPairedFace(u []physics.State, lelem, relem int, nx, ny, length float64, M *matrix.BlockSparse) error {
	m := a.Mesh
	L, R := a.fluxJac().Jacobian(a.Gas, u[lelem], u[relem], nx, ny)
	if a.Viscous != nil {
		clx, cly := m.CellCenter(lelem)
		crx, cry := m.CellCenter(relem)
		lv, rv := a.viscousJacobianAt(u[lelem], u[relem], clx, cly, crx, cry, nx, ny)
		L, R = subJacobian(L, lv), subJacobian(R, rv)
	}
	if err := M.AddBlock(relem, lelem, scaleFlat(L, length)); err != nil {
		return err
	}
	if err := M.AddBlock(lelem, relem, scaleFlat(R, -length)); err != nil {
		return err
	}
	if err := M.AddBlock(lelem, lelem, scaleFlat(L, -length)); err != nil {
		return err
	}
	return M.AddBlock(relem, relem, scaleFlat(R, length))
}

// Jacobian assembles the residual's block-sparse Jacobian into M, adding
// to whatever M already holds (callers wanting a fresh matrix should call
// M.Reset() first). Faces are processed over contiguous index chunks in
// parallel; BlockSparse's per-row mutex makes concurrent AddBlock calls
// from different faces safe even when they target the same row.
func (a *Assembler) Jacobian(u []physics.State, M *matrix.BlockSparse) error {
	m := a.Mesh
	nbface, naface := m.NBFace(), m.NAFace()
	nPar := defaultParallelDegree(a.ParallelDegree)
	fpm := newPartitionMap(naface, nPar)

	var wg sync.WaitGroup
	errs := make([]error, fpm.nPar())
	for p := 0; p < fpm.nPar(); p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for f := fpm.bounds[p]; f < fpm.bounds[p+1]; f++ {
				if f < nbface {
					if per := m.PeriodicMap(f); per >= 0 {
						if per <= f {
							continue // canonical face already (or about to be) handled from the other side
						}
						lelem, _, _, _ := m.Face(f)
						relem, _, _, _ := m.Face(per)
						nx, ny, length := m.FaceMetric(f)
						if err := a.jacobianPairedFace(u, lelem, relem, nx, ny, length, M); err != nil {
							errs[p] = err
						}
						continue
					}
					if err := a.jacobianBoundaryFace(u, f, M); err != nil {
						errs[p] = err
					}
					continue
				}
				left, right, _, _ := m.Face(f)
				nx, ny, length := m.FaceMetric(f)
				if err := a.jacobianPairedFace(u, left, right, nx, ny, length, M); err != nil {
					errs[p] = err
				}
			}
		}(p)
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
