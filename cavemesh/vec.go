package cavemesh

import (
	"github.com/arl/gogeo/f32"
	"github.com/arl/gogeo/f32/d3"
	"github.com/arl/math32"
)

// upVec is the fallback normal used when a synthetic node has no other
// normal to inherit (see end-position refinement, and level-1 nodes whose
// members' normals sum to zero).
func upVec() d3.Vec3 {
	return d3.NewVec3XYZ(0, 0, 1)
}

// lenEpsilon is the minimum vector length considered non-degenerate.
const lenEpsilon float32 = 1e-6

// angularPenalty computes the additive cost of turning from dIn (unit
// incoming direction) towards vOut (outgoing vector, not necessarily
// unit). It returns 0 if either vector is degenerate (zero length),
// matching the "else 0" branch of spec.md's angular penalty definition.
func angularPenalty(dIn, vOut d3.Vec3) float32 {
	if len(dIn) == 0 || len(vOut) == 0 {
		return 0
	}
	dinLen := dIn.Len()
	voutLen := vOut.Len()
	if dinLen <= lenEpsilon || voutLen <= lenEpsilon {
		return 0
	}
	cos := f32.Clamp(dIn.Dot(vOut)/(dinLen*voutLen), -1, 1)
	theta := math32.Acos(cos)
	return angularPenaltyScale * theta
}

// angularPenaltyScale is the constant the spec calls "50 x theta",
// parameterised per spec.md §9's open question.
const angularPenaltyScale float32 = 50
