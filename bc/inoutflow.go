package bc

import (
	"math"

	"github.com/gocfd2d/fvm2d/physics"
)

// InOutFlow is a pressure-outlet / fixed-inlet BC: supersonic or incoming
// faces (v·n̂ <= 0, with n̂ pointing out of the domain) get the far-field
// state verbatim; subsonic outgoing faces get the interior state with
// pressure replaced by the far-field pressure and density recomputed from
// the interior entropy (isentropic closure).
type InOutFlow struct {
	Gas  *physics.Gas
	UInf physics.State
}

func (b InOutFlow) isSupersonicOrInflow(uI physics.State, nx, ny float64) bool {
	w := b.Gas.ToPrimitive(uI)
	vn := w[1]*nx + w[2]*ny
	return b.Gas.Mach(uI) >= 1 || vn <= 0
}

func (b InOutFlow) Ghost(uI physics.State, nx, ny float64) physics.State {
	if b.isSupersonicOrInflow(uI, nx, ny) {
		return b.UInf
	}
	wI := b.Gas.ToPrimitive(uI)
	pInf := b.Gas.ToPrimitive(b.UInf)[3]
	rhoG := wI[0] * math.Pow(pInf/wI[3], 1/b.Gas.Gamma)
	wg := physics.Primitive{rhoG, wI[1], wI[2], pInf}
	return b.Gas.FromPrimitive(wg)
}

func (b InOutFlow) GhostJacobian(uI physics.State, nx, ny float64) (physics.State, physics.Jacobian4) {
	if b.isSupersonicOrInflow(uI, nx, ny) {
		return b.UInf, physics.Jacobian4{}
	}
	wI := b.Gas.ToPrimitive(uI)
	pInf := b.Gas.ToPrimitive(b.UInf)[3]
	ratio := pInf / wI[3]
	rhoG := wI[0] * math.Pow(ratio, 1/b.Gas.Gamma)
	wg := physics.Primitive{rhoG, wI[1], wI[2], pInf}
	ug := b.Gas.FromPrimitive(wg)

	// mid = d(wg)/d(wI), all other rows passthrough except pressure (constant).
	var mid physics.Jacobian4
	mid[0][0] = math.Pow(ratio, 1/b.Gas.Gamma)
	mid[0][3] = -rhoG / (b.Gas.Gamma * wI[3])
	mid[1][1] = 1
	mid[2][2] = 1
	// row 3 (pressure) is identically pInf: zero row.

	j := chainPrimitiveJacobian(b.Gas, uI, mid, wg)
	return ug, j
}
