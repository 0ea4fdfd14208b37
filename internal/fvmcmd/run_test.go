package fvmcmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gocfd2d/fvm2d/bc"
	"github.com/gocfd2d/fvm2d/mesh"
	"github.com/gocfd2d/fvm2d/numflux"
	"github.com/gocfd2d/fvm2d/physics"
	"github.com/gocfd2d/fvm2d/spatial"
)

func square(t *testing.T) *mesh.Mesh {
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

func TestRunExplicitHoldsFreestreamSteady(t *testing.T) {
	g := physics.New(1.4, 0.3, 288.16, 1.e4, 0.72)
	m := square(t)
	reg := bc.NewRegistry()
	reg.Set(1, bc.Farfield{UInf: g.FreestreamState(0)})
	a := &spatial.Assembler{Mesh: m, Gas: g, BCs: reg, Flux: numflux.LLF{}}

	u := make([]physics.State, m.NElem())
	for i := range u {
		u[i] = g.FreestreamState(0)
	}

	rep, err := RunExplicit(a, u, 0.5, 0, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, rep.Steps)
	assert.Equal(t, 0.0, rep.ResidualNorm)
	for _, c := range u {
		assert.Equal(t, g.FreestreamState(0), c)
	}
}

func TestRunExplicitStopsAtFinalTime(t *testing.T) {
	g := physics.New(1.4, 0.3, 288.16, 1.e4, 0.72)
	m := square(t)
	reg := bc.NewRegistry()
	reg.Set(1, bc.Farfield{UInf: g.FreestreamState(0)})
	a := &spatial.Assembler{Mesh: m, Gas: g, BCs: reg, Flux: numflux.LLF{}}

	u := make([]physics.State, m.NElem())
	for i := range u {
		u[i] = g.FreestreamState(0)
	}

	rep, err := RunExplicit(a, u, 0.5, 1.e-9, 1000)
	require.NoError(t, err)
	assert.Less(t, rep.Steps, 1000)
}

func TestLoadConfigRejectsMissingFile(t *testing.T) {
	_, err := LoadConfig("/nonexistent/path/run.yaml")
	assert.Error(t, err)
}
