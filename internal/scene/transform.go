// Package scene is a minimal scene graph: nodes with a local rigid
// transform and a parent. It supports the attach/detach operations needed
// to group cubies under a temporary pivot while they turn.
package scene

import (
	"math"

	"github.com/westphae/quaternion"
)

// Transform is a rotation followed by a translation.
type Transform struct {
	Rotation    quaternion.Quaternion
	Translation quaternion.Vec3
}

// Identity returns the transform that leaves every point in place.
func Identity() Transform {
	return Transform{Rotation: quaternion.Identity()}
}

// Apply maps a point through t.
func (t Transform) Apply(v quaternion.Vec3) quaternion.Vec3 {
	return t.Rotation.RotateVec3(v).Add(t.Translation)
}

// Mul returns t∘u: the transform applying u first, then t.
func (t Transform) Mul(u Transform) Transform {
	return Transform{
		Rotation:    t.Rotation.Mul(u.Rotation).Unit(),
		Translation: t.Apply(u.Translation),
	}
}

// Inverse returns the transform undoing t.
func (t Transform) Inverse() Transform {
	inv := t.Rotation.Unit().Conj()
	return Transform{
		Rotation:    inv,
		Translation: inv.RotateVec3(t.Translation).Scale(-1),
	}
}

// FromMatrix converts a proper rotation matrix back to a unit quaternion,
// the inverse of Quaternion.RotMat.
func FromMatrix(m [3][3]float64) quaternion.Quaternion {
	var q quaternion.Quaternion
	trace := m[0][0] + m[1][1] + m[2][2]

	switch {
	case trace > 0:
		s := math.Sqrt(trace+1) * 2
		q = quaternion.Quaternion{
			W: s / 4,
			X: (m[2][1] - m[1][2]) / s,
			Y: (m[0][2] - m[2][0]) / s,
			Z: (m[1][0] - m[0][1]) / s,
		}
	case m[0][0] > m[1][1] && m[0][0] > m[2][2]:
		s := math.Sqrt(1+m[0][0]-m[1][1]-m[2][2]) * 2
		q = quaternion.Quaternion{
			W: (m[2][1] - m[1][2]) / s,
			X: s / 4,
			Y: (m[0][1] + m[1][0]) / s,
			Z: (m[0][2] + m[2][0]) / s,
		}
	case m[1][1] > m[2][2]:
		s := math.Sqrt(1+m[1][1]-m[0][0]-m[2][2]) * 2
		q = quaternion.Quaternion{
			W: (m[0][2] - m[2][0]) / s,
			X: (m[0][1] + m[1][0]) / s,
			Y: s / 4,
			Z: (m[1][2] + m[2][1]) / s,
		}
	default:
		s := math.Sqrt(1+m[2][2]-m[0][0]-m[1][1]) * 2
		q = quaternion.Quaternion{
			W: (m[1][0] - m[0][1]) / s,
			X: (m[0][2] + m[2][0]) / s,
			Y: (m[1][2] + m[2][1]) / s,
			Z: s / 4,
		}
	}
	return q.Unit()
}
