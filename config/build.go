package config

import (
	"fmt"

	"github.com/gocfd2d/fvm2d/bc"
	"github.com/gocfd2d/fvm2d/gradient"
	"github.com/gocfd2d/fvm2d/limiter"
	"github.com/gocfd2d/fvm2d/mesh"
	"github.com/gocfd2d/fvm2d/numflux"
	"github.com/gocfd2d/fvm2d/physics"
	"github.com/gocfd2d/fvm2d/spatial"
	"github.com/gocfd2d/fvm2d/viscous"
)

// BuildGas constructs the nondimensional gas model from the Physics block.
func (c *Config) BuildGas() *physics.Gas {
	p := c.Physics
	return physics.New(p.Gamma, p.Minf, p.Tinf, p.Reinf, p.Pr)
}

// buildCondition turns one BC entry into the bc.Condition it names.
func buildCondition(g *physics.Gas, b BC) (bc.Condition, error) {
	v := b.Values
	need := func(n int) error {
		if len(v) < n {
			return fmt.Errorf("config: BC kind %q on marker %d needs %d value(s), got %d", b.Kind, b.Marker, n, len(v))
		}
		return nil
	}
	switch b.Kind {
	case "SLIPWALL":
		return bc.SlipWall{}, nil
	case "EXTRAPOLATION":
		return bc.Extrapolation{}, nil
	case "FARFIELD":
		if err := need(4); err != nil {
			return nil, err
		}
		return bc.Farfield{UInf: physics.State{v[0], v[1], v[2], v[3]}}, nil
	case "INOUTFLOW":
		if err := need(4); err != nil {
			return nil, err
		}
		return bc.InOutFlow{Gas: g, UInf: physics.State{v[0], v[1], v[2], v[3]}}, nil
	case "SUBSONICINFLOW":
		if err := need(2); err != nil {
			return nil, err
		}
		return bc.SubsonicInflow{Gas: g, Ptotal: v[0], Ttotal: v[1]}, nil
	case "ADIABATICNOSLIP":
		speed := 0.0
		if len(v) > 0 {
			speed = v[0]
		}
		return bc.AdiabaticNoSlip{Gas: g, WallTangentialSpeed: speed}, nil
	case "ISOTHERMALNOSLIP":
		if err := need(1); err != nil {
			return nil, err
		}
		speed := 0.0
		if len(v) > 1 {
			speed = v[1]
		}
		return bc.IsothermalNoSlip{Gas: g, WallTangentialSpeed: speed, WallTemperature: v[0]}, nil
	default:
		return nil, fmt.Errorf("config: unknown BC kind %q", b.Kind)
	}
}

// BuildRegistry constructs the bc.Registry implied by the BCs list.
func (c *Config) BuildRegistry(g *physics.Gas) (*bc.Registry, error) {
	reg := bc.NewRegistry()
	for _, b := range c.BCs {
		cond, err := buildCondition(g, b)
		if err != nil {
			return nil, err
		}
		reg.Set(b.Marker, cond)
	}
	return reg, nil
}

// BuildFlux constructs the named numerical flux scheme.
func (c *Config) BuildFlux() (numflux.Scheme, error) { return numflux.NewScheme(c.ConvNumFlux) }

// BuildFluxJac constructs the flux scheme used for Jacobian assembly,
// defaulting to ConvNumFlux when ConvNumFluxJac is unset.
func (c *Config) BuildFluxJac() (numflux.Scheme, error) {
	if c.ConvNumFluxJac == "" {
		return c.BuildFlux()
	}
	return numflux.NewScheme(c.ConvNumFluxJac)
}

// BuildGradient constructs the named gradient scheme; NONE yields
// gradient.Zero.
func (c *Config) BuildGradient(m mesh.View) (gradient.Scheme, error) {
	switch c.GradientScheme {
	case "NONE":
		return gradient.Zero{}, nil
	case "GREENGAUSS":
		return gradient.NewGreenGauss(m), nil
	case "LEASTSQUARES":
		return gradient.NewLeastSquares(m)
	default:
		return nil, fmt.Errorf("config: unknown GradientScheme %q", c.GradientScheme)
	}
}

// BuildLimiter constructs the named reconstruction/limiter scheme.
func (c *Config) BuildLimiter() (limiter.Scheme, error) {
	return limiter.NewScheme(c.Reconstruction, c.LimiterParam)
}

// BuildViscous constructs the viscous flux evaluator, or nil when
// ViscousSim is false.
func (c *Config) BuildViscous(g *physics.Gas) *viscous.Evaluator {
	if !c.ViscousSim {
		return nil
	}
	e := &viscous.Evaluator{Gas: g}
	if c.ConstVisc {
		e.ConstMu = c.ConstViscValue
	}
	return e
}

// BuildAssembler wires every collaborator built from this Config into a
// spatial.Assembler ready to evaluate residuals and Jacobians on m.
func (c *Config) BuildAssembler(m mesh.View) (*spatial.Assembler, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	g := c.BuildGas()
	reg, err := c.BuildRegistry(g)
	if err != nil {
		return nil, err
	}
	flux, err := c.BuildFlux()
	if err != nil {
		return nil, err
	}
	fluxJac, err := c.BuildFluxJac()
	if err != nil {
		return nil, err
	}
	a := &spatial.Assembler{
		Mesh:           m,
		Gas:            g,
		BCs:            reg,
		Flux:           flux,
		FluxJac:        fluxJac,
		Order2:         c.Order2,
		ParallelDegree: c.ParallelDegree,
		Viscous:        c.BuildViscous(g),
	}
	if c.Order2 {
		grad, err := c.BuildGradient(m)
		if err != nil {
			return nil, err
		}
		lim, err := c.BuildLimiter()
		if err != nil {
			return nil, err
		}
		a.Gradient, a.Limiter = grad, lim
	}
	return a, nil
}
