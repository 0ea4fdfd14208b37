package postprocess

import (
	"image/color"

	"github.com/notargets/avs/chart2d"
)

// PlotSurfaceCp opens an interactive chart2d window plotting the pressure
// coefficient distribution along the sample points ComputeSurfaceData
// returned, in the order they were walked. The window's event loop runs in
// its own goroutine (the teacher's fire-and-forget `go chart.Plot()`
// pattern), so the function returns once the series is added and does not
// wait for the window to close.
func PlotSurfaceCp(pts []SurfacePoint) error {
	xs := make([]float64, len(pts))
	cps := make([]float64, len(pts))
	var xmin, xmax, cpmin, cpmax float32
	for i, p := range pts {
		xs[i], cps[i] = p.X, p.Cp
		x32, cp32 := float32(p.X), float32(p.Cp)
		if i == 0 || x32 < xmin {
			xmin = x32
		}
		if i == 0 || x32 > xmax {
			xmax = x32
		}
		if i == 0 || cp32 < cpmin {
			cpmin = cp32
		}
		if i == 0 || cp32 > cpmax {
			cpmax = cp32
		}
	}
	chart := chart2d.NewChart2D(1280, 720, xmin, xmax, cpmin, cpmax)
	go chart.Plot()
	black := color.RGBA{R: 0, G: 0, B: 0, A: 255}
	return chart.AddSeries("Cp", xs, cps, chart2d.CircleGlyph, chart2d.Solid, black)
}
