package virtualcube

import (
	"fmt"
	"math"

	"github.com/westphae/quaternion"

	"github.com/SeamusWaldron/virtualcube/internal/scene"
)

// Sticker is one colored face of a cubie, in the cubie's own frame.
type Sticker struct {
	Normal Vec3i // outward normal at the home position
	Color  Color
}

// Owner names the scene node a unit currently hangs from.
type Owner int

const (
	OwnerNone     Owner = iota // not attached to an engine
	OwnerAssembly              // at rest
	OwnerPivot                 // turning with the in-flight rotation
)

func (o Owner) String() string {
	switch o {
	case OwnerAssembly:
		return "assembly"
	case OwnerPivot:
		return "pivot"
	default:
		return "none"
	}
}

// CubieUnit is one of the 27 physical pieces. Its identity never changes;
// its grid position and orientation change as turns commit. Between turns
// the position is an exact integer vector with components in {-1,0,1} and
// the orientation is one of the 24 rotations of the cube.
type CubieUnit struct {
	id       int
	home     Vec3i
	grid     Vec3i
	orient   [3][3]int
	stickers []Sticker
	node     *scene.Node
}

func newCubieUnit(id int, home Vec3i) *CubieUnit {
	u := &CubieUnit{
		id:   id,
		home: home,
		node: scene.NewNode(fmt.Sprintf("cubie-%d", id)),
	}
	for axis := 0; axis < 3; axis++ {
		if home[axis] == 0 {
			continue
		}
		var n Vec3i
		n[axis] = home[axis]
		f, _ := faceForNormal(n)
		u.stickers = append(u.stickers, Sticker{Normal: n, Color: f.Color()})
	}
	u.resetPose()
	return u
}

// buildUnits creates the 27 units in their solved arrangement, ordered by
// x, then y, then z.
func buildUnits() []*CubieUnit {
	units := make([]*CubieUnit, 0, 27)
	for x := -1; x <= 1; x++ {
		for y := -1; y <= 1; y++ {
			for z := -1; z <= 1; z++ {
				units = append(units, newCubieUnit(len(units), Vec3i{x, y, z}))
			}
		}
	}
	return units
}

// ID returns the stable identifier, 0-26.
func (u *CubieUnit) ID() int {
	return u.id
}

// Home returns the solved grid position.
func (u *CubieUnit) Home() Vec3i {
	return u.home
}

// Grid returns the committed grid position.
func (u *CubieUnit) Grid() Vec3i {
	return u.grid
}

// Orientation returns the committed rotation as an integer matrix.
func (u *CubieUnit) Orientation() [3][3]int {
	return u.orient
}

// Owner reports whether the unit rests on the assembly or is held by
// the rotation pivot.
func (u *CubieUnit) Owner() Owner {
	p := u.node.Parent()
	switch {
	case p == nil:
		return OwnerNone
	case p.Name == pivotNode:
		return OwnerPivot
	default:
		return OwnerAssembly
	}
}

// Stickers returns the unit's stickers in its home frame. Centers have one,
// edges two and corners three; the core has none.
func (u *CubieUnit) Stickers() []Sticker {
	return u.stickers
}

// WorldTransform returns the unit's current transform, including any
// in-flight pivot rotation.
func (u *CubieUnit) WorldTransform() scene.Transform {
	return u.node.World()
}

// WorldPosition returns the unit's current position.
func (u *CubieUnit) WorldPosition() quaternion.Vec3 {
	return u.node.World().Translation
}

// WorldOrientation returns the unit's current rotation.
func (u *CubieUnit) WorldOrientation() quaternion.Quaternion {
	return u.node.World().Rotation
}

// StickerNormals returns the committed outward normal of each sticker,
// paired with its color.
func (u *CubieUnit) StickerNormals() []Sticker {
	out := make([]Sticker, len(u.stickers))
	for i, s := range u.stickers {
		out[i] = Sticker{Normal: mulMatVec(u.orient, s.Normal), Color: s.Color}
	}
	return out
}

func (u *CubieUnit) resetPose() {
	u.grid = u.home
	u.orient = [3][3]int{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	u.applyPose()
}

// applyPose writes the committed integer pose into the scene node.
func (u *CubieUnit) applyPose() {
	var m [3][3]float64
	for i := range m {
		for j := range m[i] {
			m[i][j] = float64(u.orient[i][j])
		}
	}
	u.node.Local = scene.Transform{
		Rotation:    scene.FromMatrix(m),
		Translation: vecFromGrid(u.grid),
	}
}

// snap reads the node's world transform, rounds it onto the grid and the
// 24 cube rotations, and writes the exact pose back. The node must already
// hang directly off the assembly root.
func (u *CubieUnit) snap() {
	world := u.node.World()
	u.grid = Vec3i{
		int(math.Round(world.Translation.X)),
		int(math.Round(world.Translation.Y)),
		int(math.Round(world.Translation.Z)),
	}
	m := world.Rotation.RotMat()
	for i := range m {
		for j := range m[i] {
			u.orient[i][j] = int(math.Round(m[i][j]))
		}
	}
	u.applyPose()
}

func vecFromGrid(v Vec3i) quaternion.Vec3 {
	return quaternion.Vec3{X: float64(v[0]), Y: float64(v[1]), Z: float64(v[2])}
}

func axisVector(a Axis) quaternion.Vec3 {
	var v quaternion.Vec3
	switch a {
	case AxisX:
		v.X = 1
	case AxisY:
		v.Y = 1
	case AxisZ:
		v.Z = 1
	}
	return v
}

func mulMatVec(m [3][3]int, v Vec3i) Vec3i {
	var out Vec3i
	for i := 0; i < 3; i++ {
		out[i] = m[i][0]*v[0] + m[i][1]*v[1] + m[i][2]*v[2]
	}
	return out
}

// FaceletsFromUnits reads the sticker colors off the committed unit poses.
// For a consistent puzzle it equals the logical State's facelets.
func FaceletsFromUnits(units []*CubieUnit) ([6][9]Color, error) {
	var out [6][9]Color
	seen := 0
	for _, u := range units {
		for _, s := range u.StickerNormals() {
			idx, ok := stickerIndex(u.grid, s.Normal)
			if !ok {
				return out, fmt.Errorf("virtualcube: unit %d sticker %v off grid at %v", u.id, s.Normal, u.grid)
			}
			out[idx/9][idx%9] = s.Color
			seen++
		}
	}
	if seen != 54 {
		return out, fmt.Errorf("virtualcube: read %d stickers, want 54", seen)
	}
	return out, nil
}
