package render

import (
	"math"

	"github.com/westphae/quaternion"

	"github.com/SeamusWaldron/virtualcube"
)

// Cells are about twice as tall as they are wide.
const cellAspect = 2

// stickerInset is the half-width of a sticker within its unit face.
const stickerInset = 0.8

// view points from the puzzle toward the viewer, so U, F and R face it.
var view = quaternion.Vec3{X: 1 / math.Sqrt(3), Y: 1 / math.Sqrt(3), Z: 1 / math.Sqrt(3)}

var (
	cos30 = math.Cos(math.Pi / 6)
	sin30 = math.Sin(math.Pi / 6)
)

// Projector draws units in isometric projection with a depth buffer, so
// a slice caught mid-turn renders correctly.
type Projector struct {
	Scale   float64 // rows per unit of height
	Letters bool    // write color letters on stickers instead of blanks

	w, h  int
	depth []float64
}

// NewProjector returns a projector and sizes its canvas for scale.
func NewProjector(scale float64) *Projector {
	if scale <= 0 {
		scale = 3
	}
	// The rotating slice sweeps out to a radius of 1.5*sqrt(2) in plan.
	halfW := int(math.Ceil((1.5*math.Sqrt2*2*cos30+0.5)*scale*cellAspect)) + 1
	halfH := int(math.Ceil((1.5*math.Sqrt2*2*sin30+1.5)*scale)) + 1
	p := &Projector{Scale: scale, w: 2*halfW + 1, h: 2*halfH + 1}
	p.depth = make([]float64, p.w*p.h)
	return p
}

// Size returns the canvas size the projector draws into.
func (p *Projector) Size() (w, h int) {
	return p.w, p.h
}

// Render draws the units onto a fresh canvas.
func (p *Projector) Render(units []virtualcube.UnitView) *Canvas {
	c := NewCanvas(p.w, p.h)
	p.Draw(c, units)
	return c
}

// Draw draws the units onto c, centered.
func (p *Projector) Draw(c *Canvas, units []virtualcube.UnitView) {
	if len(p.depth) != c.W*c.H {
		p.depth = make([]float64, c.W*c.H)
	}
	for i := range p.depth {
		p.depth[i] = math.Inf(-1)
	}
	for _, u := range units {
		for _, n := range unitNormals {
			p.drawFace(c, u, n)
		}
	}
}

var unitNormals = []virtualcube.Vec3i{
	{1, 0, 0}, {-1, 0, 0}, {0, 1, 0}, {0, -1, 0}, {0, 0, 1}, {0, 0, -1},
}

func (p *Projector) drawFace(c *Canvas, u virtualcube.UnitView, n virtualcube.Vec3i) {
	normal := u.Orientation.RotateVec3(toVec(n, 1))
	if normal.Dot(view) <= 1e-6 {
		return
	}

	color := BodyColor
	letter := ' '
	hasSticker := false
	for _, s := range u.Stickers {
		if s.Normal == n {
			color = Palette[s.Color]
			letter = []rune(s.Color.String())[0]
			hasSticker = true
			break
		}
	}

	// Two axes spanning the face.
	var t1, t2 virtualcube.Vec3i
	switch {
	case n[0] != 0:
		t1, t2 = virtualcube.Vec3i{0, 1, 0}, virtualcube.Vec3i{0, 0, 1}
	case n[1] != 0:
		t1, t2 = virtualcube.Vec3i{1, 0, 0}, virtualcube.Vec3i{0, 0, 1}
	default:
		t1, t2 = virtualcube.Vec3i{1, 0, 0}, virtualcube.Vec3i{0, 1, 0}
	}

	samples := int(p.Scale*6) + 4
	for i := 0; i <= samples; i++ {
		a := -1 + 2*float64(i)/float64(samples)
		for j := 0; j <= samples; j++ {
			b := -1 + 2*float64(j)/float64(samples)
			local := toVec(n, 0.5).Add(toVec(t1, a*0.5)).Add(toVec(t2, b*0.5))
			world := u.Orientation.RotateVec3(local).Add(u.Position)

			inner := math.Abs(a) <= stickerInset && math.Abs(b) <= stickerInset
			if hasSticker && inner {
				r := ' '
				if p.Letters {
					r = letter
				}
				p.plot(c, world, r, color)
			} else {
				r := ' '
				if p.Letters {
					r = '.'
				}
				p.plot(c, world, r, BodyColor)
			}
		}
	}
}

func (p *Projector) plot(c *Canvas, v quaternion.Vec3, r rune, color string) {
	x := (v.X - v.Z) * cos30
	y := (v.X+v.Z)*sin30 - v.Y
	col := c.W/2 + int(math.Round(x*p.Scale*cellAspect))
	row := c.H/2 + int(math.Round(y*p.Scale))
	if col < 0 || row < 0 || col >= c.W || row >= c.H {
		return
	}
	d := v.Dot(view)
	i := row*c.W + col
	if d < p.depth[i] {
		return
	}
	p.depth[i] = d
	c.Set(col, row, r, color)
}

func toVec(v virtualcube.Vec3i, k float64) quaternion.Vec3 {
	return quaternion.Vec3{X: float64(v[0]) * k, Y: float64(v[1]) * k, Z: float64(v[2]) * k}
}

