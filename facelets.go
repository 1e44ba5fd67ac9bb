package virtualcube

// Facelet geometry.
//
// Every sticker is identified by the grid position of the cubie it sits on
// and the outward normal it points along. A face's 3x3 grid is laid out by
// a frame: the sticker at row i, col j of a face sits on the cubie at
// normal + (j-1)*right + (i-1)*down. The frames below give the usual
// unfolded net (U on top, then L F R B, then D) with rows read top to
// bottom and columns left to right as each face is viewed from outside.

// Vec3i is an integer grid vector.
type Vec3i [3]int

func (v Vec3i) add(o Vec3i) Vec3i {
	return Vec3i{v[0] + o[0], v[1] + o[1], v[2] + o[2]}
}

func (v Vec3i) scale(k int) Vec3i {
	return Vec3i{v[0] * k, v[1] * k, v[2] * k}
}

func (v Vec3i) dot(o Vec3i) int {
	return v[0]*o[0] + v[1]*o[1] + v[2]*o[2]
}

type faceFrame struct {
	normal, right, down Vec3i
}

var faceFrames = [6]faceFrame{
	Up:    {normal: Vec3i{0, 1, 0}, right: Vec3i{1, 0, 0}, down: Vec3i{0, 0, 1}},
	Down:  {normal: Vec3i{0, -1, 0}, right: Vec3i{1, 0, 0}, down: Vec3i{0, 0, -1}},
	Front: {normal: Vec3i{0, 0, 1}, right: Vec3i{1, 0, 0}, down: Vec3i{0, -1, 0}},
	Back:  {normal: Vec3i{0, 0, -1}, right: Vec3i{-1, 0, 0}, down: Vec3i{0, -1, 0}},
	Right: {normal: Vec3i{1, 0, 0}, right: Vec3i{0, 0, -1}, down: Vec3i{0, -1, 0}},
	Left:  {normal: Vec3i{-1, 0, 0}, right: Vec3i{0, 0, 1}, down: Vec3i{0, -1, 0}},
}

// FaceNormal returns the outward unit normal of a face.
func FaceNormal(f Face) Vec3i {
	return faceFrames[f].normal
}

// faceForNormal returns the face whose outward normal is n.
func faceForNormal(n Vec3i) (Face, bool) {
	for f := range faceFrames {
		if faceFrames[f].normal == n {
			return Face(f), true
		}
	}
	return 0, false
}

// stickerAt returns the position and normal of facelet i on face f.
func stickerAt(f Face, i int) (pos, normal Vec3i) {
	fr := faceFrames[f]
	row, col := i/3, i%3
	pos = fr.normal.add(fr.right.scale(col - 1)).add(fr.down.scale(row - 1))
	return pos, fr.normal
}

// stickerIndex is the inverse of stickerAt. It returns the global facelet
// index face*9+i.
func stickerIndex(pos, normal Vec3i) (int, bool) {
	f, ok := faceForNormal(normal)
	if !ok {
		return 0, false
	}
	fr := faceFrames[f]
	col := pos.dot(fr.right) + 1
	row := pos.dot(fr.down) + 1
	if row < 0 || row > 2 || col < 0 || col > 2 || pos.dot(fr.normal) != 1 {
		return 0, false
	}
	return int(f)*9 + row*3 + col, true
}

// rotateQuarter rotates v by steps quarter turns about axis, each step
// +90 degrees by the right-hand rule.
func rotateQuarter(v Vec3i, axis Axis, steps int) Vec3i {
	steps = ((steps % 4) + 4) % 4
	for ; steps > 0; steps-- {
		x, y, z := v[0], v[1], v[2]
		switch axis {
		case AxisX:
			v = Vec3i{x, -z, y}
		case AxisY:
			v = Vec3i{z, y, -x}
		case AxisZ:
			v = Vec3i{-y, x, z}
		}
	}
	return v
}

// quarterSteps converts a move into right-hand quarter steps about the
// face axis. A clockwise turn of a face on the positive end of an axis
// is -90 degrees, so three positive steps.
func quarterSteps(m Move) int {
	perQuarter := 1
	if m.Face.Sign() > 0 {
		perQuarter = 3
	}
	return (m.QuarterTurns * perQuarter) % 4
}

// permutation maps a destination facelet index to its source index.
type permutation [54]int

var moveTables [6][4]permutation

func init() {
	for _, f := range Faces() {
		for q := 0; q < 4; q++ {
			moveTables[f][q] = buildPermutation(Move{Face: f, QuarterTurns: q})
		}
	}
}

func buildPermutation(m Move) permutation {
	var p permutation
	axis, sign := m.Face.Axis(), m.Face.Sign()
	steps := quarterSteps(m)

	for src := 0; src < 54; src++ {
		pos, normal := stickerAt(Face(src/9), src%9)
		dst := src
		if pos[axis] == sign {
			var ok bool
			dst, ok = stickerIndex(rotateQuarter(pos, axis, steps), rotateQuarter(normal, axis, steps))
			if !ok {
				panic("virtualcube: facelet permutation left the grid")
			}
		}
		p[dst] = src
	}
	return p
}
