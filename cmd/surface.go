package cmd

import (
	"fmt"

	"github.com/gocfd2d/fvm2d/mesh"
	"github.com/gocfd2d/fvm2d/physics"
	"github.com/gocfd2d/fvm2d/postprocess"
	"github.com/gocfd2d/fvm2d/spatial"
)

// reportSurface computes and prints the force coefficients on wallMarker
// and, if requested, opens a Cp plot.
func reportSurface(m *mesh.Mesh, a *spatial.Assembler, u []physics.State, wallMarker int, alpha float64) error {
	grads, err := a.Gradients(u)
	if err != nil {
		return err
	}
	CL, Cdp, Cdf, pts := postprocess.ComputeSurfaceData(m, a.Gas, u, grads, a.Viscous, wallMarker, alpha)
	fmt.Printf("marker %d: CL=%.6g Cdp=%.6g Cdf=%.6g (%d surface points)\n", wallMarker, CL, Cdp, Cdf, len(pts))

	if !runOpts.graph {
		return nil
	}
	return postprocess.PlotSurfaceCp(pts)
}
