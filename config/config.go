// Package config parses the YAML run configuration that selects the
// numerical flux, gradient, and limiter schemes, the boundary conditions
// per marker, and the physical and solver parameters, and builds the
// collaborators the spatial assembler needs from it.
package config

import (
	"fmt"
	"sort"

	"github.com/ghodss/yaml"
)

// BC is one boundary-marker assignment: Kind names a bc.Condition
// constructor (SLIPWALL, FARFIELD, EXTRAPOLATION, INOUTFLOW,
// SUBSONICINFLOW, ADIABATICNOSLIP, ISOTHERMALNOSLIP), Values carries its
// numeric parameters (e.g. farfield state components, wall temperature),
// and Opts carries any string-valued options.
type BC struct {
	Marker int       `json:"Marker"`
	Kind   string    `json:"Kind"`
	Values []float64 `json:"Values,omitempty"`
	Opts   []string  `json:"Opts,omitempty"`
}

// Physics holds the nondimensional gas model parameters.
type Physics struct {
	Gamma float64 `json:"Gamma"`
	Minf  float64 `json:"Minf"`
	Tinf  float64 `json:"Tinf"`
	Reinf float64 `json:"Reinf"`
	Pr    float64 `json:"Pr"`
	Alpha float64 `json:"Alpha"`
}

// Config is the full run configuration, parsed from YAML.
type Config struct {
	Title string `json:"Title"`

	ConvNumFlux    string  `json:"ConvNumFlux"`
	ConvNumFluxJac string  `json:"ConvNumFluxJac,omitempty"`
	GradientScheme string  `json:"GradientScheme"`
	Reconstruction string  `json:"Reconstruction"`
	LimiterParam   float64 `json:"LimiterParam"`
	Order2         bool    `json:"Order2"`

	ViscousSim     bool    `json:"ViscousSim"`
	ConstVisc      bool    `json:"ConstVisc"`
	ConstViscValue float64 `json:"ConstViscValue,omitempty"`

	BCs     []BC    `json:"BCs"`
	Physics Physics `json:"Physics"`

	CFL            float64 `json:"CFL"`
	FinalTime      float64 `json:"FinalTime"`
	MaxIterations  int     `json:"MaxIterations"`
	ParallelDegree int     `json:"ParallelDegree,omitempty"`
}

// Parse unmarshals a YAML document into a Config, matching the teacher's
// InputParameters2D.Parse convention.
func Parse(data []byte) (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &c, nil
}

// Validate checks the recognized option sets and catches configuration
// mistakes before assembly, per the policy that configuration errors are
// reported at construction and never mid-run.
func (c *Config) Validate() error {
	if _, ok := fluxNames[c.ConvNumFlux]; !ok {
		return fmt.Errorf("config: unknown ConvNumFlux %q", c.ConvNumFlux)
	}
	if c.ConvNumFluxJac != "" {
		if _, ok := fluxNames[c.ConvNumFluxJac]; !ok {
			return fmt.Errorf("config: unknown ConvNumFluxJac %q", c.ConvNumFluxJac)
		}
	}
	if _, ok := gradientNames[c.GradientScheme]; !ok {
		return fmt.Errorf("config: unknown GradientScheme %q", c.GradientScheme)
	}
	if _, ok := limiterNames[c.Reconstruction]; !ok {
		return fmt.Errorf("config: unknown Reconstruction %q", c.Reconstruction)
	}
	seen := make(map[int]bool)
	for _, b := range c.BCs {
		if _, ok := bcNames[b.Kind]; !ok {
			return fmt.Errorf("config: unknown BC kind %q for marker %d", b.Kind, b.Marker)
		}
		if seen[b.Marker] {
			return fmt.Errorf("config: marker %d assigned more than once", b.Marker)
		}
		seen[b.Marker] = true
	}
	return nil
}

var fluxNames = setOf("VANLEER", "ROE", "HLL", "HLLC", "LLF", "AUSM", "AUSMPLUS")
var gradientNames = setOf("NONE", "GREENGAUSS", "LEASTSQUARES")
var limiterNames = setOf("NONE", "WENO", "VANALBADA", "BARTHJESPERSEN", "VENKATAKRISHNAN")
var bcNames = setOf("SLIPWALL", "FARFIELD", "EXTRAPOLATION", "INOUTFLOW", "SUBSONICINFLOW", "ADIABATICNOSLIP", "ISOTHERMALNOSLIP")

func setOf(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}

// SortedBCs returns the BC list ordered by marker, for deterministic
// iteration when printing or logging a configuration.
func (c *Config) SortedBCs() []BC {
	out := make([]BC, len(c.BCs))
	copy(out, c.BCs)
	sort.Slice(out, func(i, j int) bool { return out[i].Marker < out[j].Marker })
	return out
}
