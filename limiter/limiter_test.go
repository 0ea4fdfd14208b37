package limiter

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gocfd2d/fvm2d/gradient"
	"github.com/gocfd2d/fvm2d/mesh"
	"github.com/gocfd2d/fvm2d/physics"
)

func quadGridMesh(t *testing.T) *mesh.Mesh {
	raw := mesh.RawMesh{
		Points: []mesh.Point{
			{0, 0}, {1, 0}, {2, 0},
			{0, 1}, {1, 1}, {2, 1},
			{0, 2}, {1, 2}, {2, 2},
		},
		Quads: [][4]int{
			{0, 1, 4, 3}, {1, 2, 5, 4},
			{3, 4, 7, 6}, {4, 5, 8, 7},
		},
		BoundaryEdges: map[string][][2]int{
			"bottom": {{0, 1}, {1, 2}},
			"right":  {{2, 5}, {5, 8}},
			"top":    {{8, 7}, {7, 6}},
			"left":   {{6, 3}, {3, 0}},
		},
	}
	m, err := mesh.NewBuilder().Build(raw)
	require.NoError(t, err)
	return m
}

func linearPrimitive(x, y, bx, by float64) physics.Primitive {
	val := 1 + bx*x + by*y
	return physics.Primitive{val, val, val, val}
}

func buildPrimitiveFields(m *mesh.Mesh, bx, by float64) ([]physics.Primitive, []physics.Primitive) {
	w := make([]physics.Primitive, m.NElem())
	for c := range w {
		x, y := m.CellCenter(c)
		w[c] = linearPrimitive(x, y, bx, by)
	}
	wg := make([]physics.Primitive, m.NBFace())
	for f := 0; f < m.NBFace(); f++ {
		_, right, _, _ := m.Face(f)
		x, y := m.CellCenter(right)
		wg[f] = linearPrimitive(x, y, bx, by)
	}
	return w, wg
}

func gradientsOf(m *mesh.Mesh, bx, by float64) []gradient.Grad {
	grads := make([]gradient.Grad, m.NElem())
	for c := range grads {
		for k := 0; k < physics.NVars; k++ {
			grads[c][k][0] = bx
			grads[c][k][1] = by
		}
	}
	return grads
}

func TestUnlimitedExactOnLinearField(t *testing.T) {
	m := quadGridMesh(t)
	bx, by := 0.8, -1.1
	w, wg := buildPrimitiveFields(m, bx, by)
	grads := gradientsOf(m, bx, by)
	uL := make([]physics.Primitive, m.NAFace())
	uR := make([]physics.Primitive, m.NAFace())
	Unlimited{}.FaceValues(m, w, wg, grads, uL, uR)

	for f := 0; f < m.NAFace(); f++ {
		left, right, _, _ := m.Face(f)
		fx, fy := faceMid(m, f)
		want := linearPrimitive(fx, fy, bx, by)
		for k := 0; k < physics.NVars; k++ {
			assert.True(t, math.Abs(uL[f][k]-want[k]) < 1.e-9)
		}
		if right < m.NElem() {
			for k := 0; k < physics.NVars; k++ {
				assert.True(t, math.Abs(uR[f][k]-want[k]) < 1.e-9)
			}
		}
		_ = left
	}
}

func TestBarthJespersenDoesNotClampSmoothLinearField(t *testing.T) {
	m := quadGridMesh(t)
	bx, by := 0.5, 0.3
	w, wg := buildPrimitiveFields(m, bx, by)
	grads := gradientsOf(m, bx, by)
	uL, uR := make([]physics.Primitive, m.NAFace()), make([]physics.Primitive, m.NAFace())
	uLu, uRu := make([]physics.Primitive, m.NAFace()), make([]physics.Primitive, m.NAFace())
	BarthJespersen{}.FaceValues(m, w, wg, grads, uL, uR)
	Unlimited{}.FaceValues(m, w, wg, grads, uLu, uRu)
	for f := m.NBFace(); f < m.NAFace(); f++ {
		for k := 0; k < physics.NVars; k++ {
			assert.True(t, math.Abs(uL[f][k]-uLu[f][k]) < 1.e-9)
			assert.True(t, math.Abs(uR[f][k]-uRu[f][k]) < 1.e-9)
		}
	}
}

func TestVanAlbadaExactOnLinearField(t *testing.T) {
	m := quadGridMesh(t)
	bx, by := -0.4, 0.6
	w, wg := buildPrimitiveFields(m, bx, by)
	grads := gradientsOf(m, bx, by)
	uL, uR := make([]physics.Primitive, m.NAFace()), make([]physics.Primitive, m.NAFace())
	VanAlbada{}.FaceValues(m, w, wg, grads, uL, uR)
	for f := 0; f < m.NAFace(); f++ {
		_, right, _, _ := m.Face(f)
		fx, fy := faceMid(m, f)
		want := linearPrimitive(fx, fy, bx, by)
		for k := 0; k < physics.NVars; k++ {
			assert.True(t, math.Abs(uL[f][k]-want[k]) < 1.e-6)
		}
		if right < m.NElem() {
			for k := 0; k < physics.NVars; k++ {
				assert.True(t, math.Abs(uR[f][k]-want[k]) < 1.e-6)
			}
		}
	}
}

func TestWenoBlendStaysBetweenConstantAndLinear(t *testing.T) {
	m := quadGridMesh(t)
	bx, by := 0.7, -0.2
	w, wg := buildPrimitiveFields(m, bx, by)
	grads := gradientsOf(m, bx, by)
	uL, uR := make([]physics.Primitive, m.NAFace()), make([]physics.Primitive, m.NAFace())
	WENO{P: 2}.FaceValues(m, w, wg, grads, uL, uR)
	for f := 0; f < m.NAFace(); f++ {
		left, right, _, _ := m.Face(f)
		fx, fy := faceMid(m, f)
		linearVal := linearPrimitive(fx, fy, bx, by)
		for k := 0; k < physics.NVars; k++ {
			lo, hi := w[left][k], linearVal[k]
			if lo > hi {
				lo, hi = hi, lo
			}
			assert.True(t, uL[f][k] >= lo-1.e-9 && uL[f][k] <= hi+1.e-9)
		}
		_ = right
	}
}

func TestNewSchemeRejectsUnknown(t *testing.T) {
	_, err := NewScheme("NOPE", 0)
	assert.Error(t, err)
}
