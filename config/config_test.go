package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gocfd2d/fvm2d/mesh"
)

func validYAML() []byte {
	return []byte(`
Title: test case
ConvNumFlux: ROE
GradientScheme: GREENGAUSS
Reconstruction: BARTHJESPERSEN
Order2: true
ViscousSim: false
BCs:
  - Marker: 1
    Kind: FARFIELD
    Values: [1.0, 0.3, 0.0, 1.786]
Physics:
  Gamma: 1.4
  Minf: 0.3
  Tinf: 288.16
  Reinf: 1.0e4
  Pr: 0.72
  Alpha: 0.0
CFL: 0.8
FinalTime: 10.0
MaxIterations: 1000
`)
}

func TestParseValid(t *testing.T) {
	c, err := Parse(validYAML())
	require.NoError(t, err)
	assert.Equal(t, "test case", c.Title)
	assert.Equal(t, "ROE", c.ConvNumFlux)
	assert.Equal(t, 1.4, c.Physics.Gamma)
	require.Len(t, c.BCs, 1)
	assert.Equal(t, "FARFIELD", c.BCs[0].Kind)
	require.NoError(t, c.Validate())
}

func TestValidateRejectsUnknownFlux(t *testing.T) {
	c, err := Parse(validYAML())
	require.NoError(t, err)
	c.ConvNumFlux = "NOT_A_FLUX"
	assert.Error(t, c.Validate())
}

func TestValidateRejectsUnknownGradient(t *testing.T) {
	c, err := Parse(validYAML())
	require.NoError(t, err)
	c.GradientScheme = "BOGUS"
	assert.Error(t, c.Validate())
}

func TestValidateRejectsUnknownLimiter(t *testing.T) {
	c, err := Parse(validYAML())
	require.NoError(t, err)
	c.Reconstruction = "BOGUS"
	assert.Error(t, c.Validate())
}

func TestValidateRejectsUnknownBCKind(t *testing.T) {
	c, err := Parse(validYAML())
	require.NoError(t, err)
	c.BCs[0].Kind = "BOGUS"
	assert.Error(t, c.Validate())
}

func TestValidateRejectsDuplicateMarker(t *testing.T) {
	c, err := Parse(validYAML())
	require.NoError(t, err)
	c.BCs = append(c.BCs, BC{Marker: 1, Kind: "EXTRAPOLATION"})
	assert.Error(t, c.Validate())
}

func TestSortedBCsOrdersByMarker(t *testing.T) {
	c := &Config{BCs: []BC{{Marker: 3, Kind: "SLIPWALL"}, {Marker: 1, Kind: "FARFIELD"}}}
	sorted := c.SortedBCs()
	require.Len(t, sorted, 2)
	assert.Equal(t, 1, sorted[0].Marker)
	assert.Equal(t, 3, sorted[1].Marker)
}

func TestBuildRegistryConstructsConditions(t *testing.T) {
	c, err := Parse(validYAML())
	require.NoError(t, err)
	c.BCs = []BC{
		{Marker: 1, Kind: "SLIPWALL"},
		{Marker: 2, Kind: "FARFIELD", Values: []float64{1, 0.3, 0, 1.786}},
		{Marker: 3, Kind: "SUBSONICINFLOW", Values: []float64{1.1, 300}},
		{Marker: 4, Kind: "ADIABATICNOSLIP"},
		{Marker: 5, Kind: "ISOTHERMALNOSLIP", Values: []float64{310}},
	}
	g := c.BuildGas()
	reg, err := c.BuildRegistry(g)
	require.NoError(t, err)
	for _, marker := range []int{1, 2, 3, 4, 5} {
		_, ok := reg.Get(marker)
		assert.True(t, ok, "marker %d should be registered", marker)
	}
}

func TestBuildRegistryRejectsMalformedValues(t *testing.T) {
	c, err := Parse(validYAML())
	require.NoError(t, err)
	c.BCs = []BC{{Marker: 1, Kind: "FARFIELD", Values: []float64{1, 0.3}}}
	g := c.BuildGas()
	_, err = c.BuildRegistry(g)
	assert.Error(t, err)
}

func TestBuildAssemblerWiresCollaborators(t *testing.T) {
	c, err := Parse(validYAML())
	require.NoError(t, err)

	raw := mesh.RawMesh{
		Points:    []mesh.Point{{0, 0}, {1, 0}, {1, 1}, {0, 1}},
		Triangles: [][3]int{{0, 1, 2}, {0, 2, 3}},
		BoundaryEdges: map[string][][2]int{
			"wall": {{0, 1}, {1, 2}, {2, 3}, {3, 0}},
		},
	}
	m, err := mesh.NewBuilder().Build(raw)
	require.NoError(t, err)

	a, err := c.BuildAssembler(m)
	require.NoError(t, err)
	assert.NotNil(t, a.Gas)
	assert.NotNil(t, a.Flux)
	assert.NotNil(t, a.Gradient)
	assert.NotNil(t, a.Limiter)
	assert.Nil(t, a.Viscous)
}

func TestBuildAssemblerRejectsInvalidConfig(t *testing.T) {
	c, err := Parse(validYAML())
	require.NoError(t, err)
	c.ConvNumFlux = "BOGUS"
	_, err = c.BuildAssembler(nil)
	assert.Error(t, err)
}
