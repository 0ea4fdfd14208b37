// Package spatial assembles the cell-centered finite-volume residual and
// its Jacobian from a mesh, a gas model, boundary conditions, a numerical
// flux scheme, and optionally a gradient/limiter pair for second-order
// reconstruction and a viscous flux evaluator for Navier-Stokes terms.
package spatial

import (
	"fmt"
	"sync"

	"github.com/gocfd2d/fvm2d/bc"
	"github.com/gocfd2d/fvm2d/gradient"
	"github.com/gocfd2d/fvm2d/limiter"
	"github.com/gocfd2d/fvm2d/mesh"
	"github.com/gocfd2d/fvm2d/numflux"
	"github.com/gocfd2d/fvm2d/physics"
	"github.com/gocfd2d/fvm2d/viscous"
)

// Assembler owns every collaborator needed to turn a cell-centered
// conserved-state field into a residual, a stable-timestep estimate, and a
// Jacobian. Residual reuses one scratch workspace held by the Assembler,
// so concurrent Residual calls on the same Assembler share (and race on)
// that workspace; Jacobian uses no scratch workspace.
type Assembler struct {
	Mesh     mesh.View
	Gas      *physics.Gas
	BCs      *bc.Registry
	Flux     numflux.Scheme
	FluxJac  numflux.Scheme // used during Jacobian assembly; defaults to Flux when nil
	Gradient gradient.Scheme
	Limiter  limiter.Scheme
	Viscous  *viscous.Evaluator // nil for the inviscid Euler equations

	Order2                  bool
	ParallelDegree          int // 0 selects runtime.NumCPU()
	ViscousJacobianDiagonal bool

	scratchOnce sync.Once
	scratch     scratch
}

// scratch is the per-assembler reusable workspace, sized once from the
// mesh and reused across Residual calls to avoid reallocating per step.
type scratch struct {
	uGhost     []physics.State
	wPrim      []physics.Primitive
	wGhostPrim []physics.Primitive
	grads      []gradient.Grad
	uLPrim     []physics.Primitive
	uRPrim     []physics.Primitive
	uL, uR     []physics.State
}

func (a *Assembler) ensureScratch() *scratch {
	a.scratchOnce.Do(func() {
		nelem, nbface, naface := a.Mesh.NElem(), a.Mesh.NBFace(), a.Mesh.NAFace()
		a.scratch = scratch{
			uGhost:     make([]physics.State, nbface),
			wPrim:      make([]physics.Primitive, nelem),
			wGhostPrim: make([]physics.Primitive, nbface),
			grads:      make([]gradient.Grad, nelem),
			uLPrim:     make([]physics.Primitive, naface),
			uRPrim:     make([]physics.Primitive, naface),
			uL:         make([]physics.State, naface),
			uR:         make([]physics.State, naface),
		}
	})
	return &a.scratch
}

func (a *Assembler) fluxJac() numflux.Scheme {
	if a.FluxJac != nil {
		return a.FluxJac
	}
	return a.Flux
}

func errUnregisteredMarker(marker int) error {
	return fmt.Errorf("spatial: no boundary condition registered for marker %d", marker)
}

// boundaryGhost evaluates the ghost conserved state for boundary face f,
// bypassing the registered Condition when the face is tagged periodic (its
// ghost is simply the paired face's owning cell).
func (a *Assembler) boundaryGhost(u []physics.State, f int) (physics.State, error) {
	m := a.Mesh
	left, _, _, _ := m.Face(f)
	if p := m.PeriodicMap(f); p >= 0 {
		pl, _, _, _ := m.Face(p)
		return u[pl], nil
	}
	marker := m.FaceMarker(f)
	cond, ok := a.BCs.Get(marker)
	if !ok {
		return physics.State{}, errUnregisteredMarker(marker)
	}
	nx, ny := m.Normal(f)
	return cond.Ghost(u[left], nx, ny), nil
}

// populateFaceStates fills s.uL, s.uR for every face per the assembly
// pipeline: first order copies cell values directly; second order runs the
// gradient and limiter passes over primitive variables.
func (a *Assembler) populateFaceStates(u []physics.State, s *scratch) error {
	m, g := a.Mesh, a.Gas
	nelem, nbface, naface := m.NElem(), m.NBFace(), m.NAFace()

	for f := 0; f < nbface; f++ {
		ghost, err := a.boundaryGhost(u, f)
		if err != nil {
			return err
		}
		s.uGhost[f] = ghost
	}

	for f := 0; f < naface; f++ {
		left, _, _, _ := m.Face(f)
		s.uL[f] = u[left]
	}

	if !a.Order2 {
		for f := 0; f < nbface; f++ {
			s.uR[f] = s.uGhost[f]
		}
		for f := nbface; f < naface; f++ {
			_, right, _, _ := m.Face(f)
			s.uR[f] = u[right]
		}
		return nil
	}

	for c := 0; c < nelem; c++ {
		s.wPrim[c] = g.ToPrimitive(u[c])
	}
	for f := 0; f < nbface; f++ {
		s.wGhostPrim[f] = g.ToPrimitive(s.uGhost[f])
	}

	uAsState := func(w []physics.Primitive) []physics.State {
		out := make([]physics.State, len(w))
		for i, v := range w {
			out[i] = physics.State(v)
		}
		return out
	}
	a.Gradient.Compute(uAsState(s.wPrim), uAsState(s.wGhostPrim), s.grads)

	for f := 0; f < naface; f++ {
		left, _, _, _ := m.Face(f)
		s.uLPrim[f] = s.wPrim[left]
	}
	a.Limiter.FaceValues(m, s.wPrim, s.wGhostPrim, s.grads, s.uLPrim, s.uRPrim)

	for f := 0; f < naface; f++ {
		s.uL[f] = g.FromPrimitive(s.uLPrim[f])
		if f < nbface {
			s.uR[f] = s.uGhost[f]
		} else {
			s.uR[f] = g.FromPrimitive(s.uRPrim[f])
		}
	}
	return nil
}

// Gradients computes the per-cell primitive-variable gradient field at
// state u using the configured Gradient scheme (or zero everywhere, if
// none is configured), independent of Order2/Viscous — callers such as
// surface postprocessing need ∇u even on a first-order run's converged
// field.
func (a *Assembler) Gradients(u []physics.State) ([]gradient.Grad, error) {
	m, g := a.Mesh, a.Gas
	nelem, nbface := m.NElem(), m.NBFace()

	grads := make([]gradient.Grad, nelem)
	scheme := a.Gradient
	if scheme == nil {
		return grads, nil
	}

	wPrim := make([]physics.Primitive, nelem)
	wGhostPrim := make([]physics.Primitive, nbface)
	for c := 0; c < nelem; c++ {
		wPrim[c] = g.ToPrimitive(u[c])
	}
	for f := 0; f < nbface; f++ {
		ghost, err := a.boundaryGhost(u, f)
		if err != nil {
			return nil, err
		}
		wGhostPrim[f] = g.ToPrimitive(ghost)
	}

	uAsState := func(w []physics.Primitive) []physics.State {
		out := make([]physics.State, len(w))
		for i, v := range w {
			out[i] = physics.State(v)
		}
		return out
	}
	scheme.Compute(uAsState(wPrim), uAsState(wGhostPrim), grads)
	return grads, nil
}

// faceGradients returns the one-sided primitive gradients the viscous flux
// uses on a face: the real cell's own gradient on each side, or the
// interior neighbor's gradient mirrored onto a boundary/ghost side.
func (a *Assembler) faceGradients(left, right int, s *scratch) (gL, gR gradient.Grad) {
	nelem := a.Mesh.NElem()
	gL = s.grads[left]
	if right < nelem {
		gR = s.grads[right]
	} else {
		gR = s.grads[left]
	}
	return
}

// processFace evaluates the inviscid (and, if configured, viscous) flux
// across face f and accumulates its contribution into r and, if dt was
// requested, into integrator.
func (a *Assembler) processFace(f int, s *scratch, r []physics.State, integrator []float64, wantDT bool) {
	m, g := a.Mesh, a.Gas
	nelem := m.NElem()
	left, right, _, _ := m.Face(f)
	nx, ny, length := m.FaceMetric(f)

	uL, uR := s.uL[f], s.uR[f]
	flux := a.Flux.Flux(g, uL, uR, nx, ny)

	if a.Viscous != nil {
		gL, gR := a.faceGradients(left, right, s)
		clx, cly := m.CellCenter(left)
		crx, cry := m.CellCenter(right)
		fv := a.Viscous.Flux(uL, uR, gL, gR, clx, cly, crx, cry, nx, ny)
		for k := 0; k < physics.NVars; k++ {
			flux[k] -= fv[k]
		}
	}

	for k := 0; k < physics.NVars; k++ {
		contrib := flux[k] * length
		r[left][k] -= contrib
		if right < nelem {
			r[right][k] += contrib
		}
	}

	if !wantDT {
		return
	}
	c := g.SoundSpeed(uL)
	vn := uL[1]/uL[0]*nx + uL[2]/uL[0]*ny
	lambda := (absf(vn) + c) * length
	integrator[left] += lambda
	if right < nelem {
		integrator[right] += lambda
	}
	if a.Viscous != nil {
		muL := a.Viscous.Mu(uL)
		rhoL := uL[0]
		termL := muL * maxf(4./3./rhoL, g.Gamma/rhoL) / g.Pr * length * length / m.Area(left)
		integrator[left] += termL
		if right < nelem {
			muR := a.Viscous.Mu(uR)
			rhoR := uR[0]
			termR := muR * maxf(4./3./rhoR, g.Gamma/rhoR) / g.Pr * length * length / m.Area(right)
			integrator[right] += termR
		}
	}
}

func absf(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// Residual evaluates the spatial residual at state u. When wantDT is true
// it also returns the per-cell stable local timestep dt[i] = area[i] /
// integrator[i]; otherwise dt is nil.
func (a *Assembler) Residual(u []physics.State, wantDT bool) (r []physics.State, dt []float64, err error) {
	m := a.Mesh
	nelem, naface := m.NElem(), m.NAFace()
	s := a.ensureScratch()

	r = make([]physics.State, nelem)
	var integrator []float64
	if wantDT {
		integrator = make([]float64, nelem)
	}

	if err := a.populateFaceStates(u, s); err != nil {
		return nil, nil, err
	}

	nPar := defaultParallelDegree(a.ParallelDegree)
	pm := newPartitionMap(nelem, nPar)

	owned := make([][]int, pm.nPar())
	var cross []int
	for f := 0; f < naface; f++ {
		left, right, _, _ := m.Face(f)
		pl := pm.bucket(left)
		if right >= nelem || pm.bucket(right) == pl {
			owned[pl] = append(owned[pl], f)
		} else {
			cross = append(cross, f)
		}
	}

	var wg sync.WaitGroup
	for p := 0; p < pm.nPar(); p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for _, f := range owned[p] {
				a.processFace(f, s, r, integrator, wantDT)
			}
		}(p)
	}
	wg.Wait()

	for _, f := range cross {
		a.processFace(f, s, r, integrator, wantDT)
	}

	if !wantDT {
		return r, nil, nil
	}

	dt = make([]float64, nelem)
	var dtWG sync.WaitGroup
	for p := 0; p < pm.nPar(); p++ {
		dtWG.Add(1)
		go func(p int) {
			defer dtWG.Done()
			for i := pm.bounds[p]; i < pm.bounds[p+1]; i++ {
				if integrator[i] > 0 {
					dt[i] = m.Area(i) / integrator[i]
				}
			}
		}(p)
	}
	dtWG.Wait()
	return r, dt, nil
}
