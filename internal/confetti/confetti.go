// Package confetti animates falling confetti over a text canvas. A Field
// implements virtualcube.Celebrator.
package confetti

import (
	"math"
	"math/rand"
	"time"

	"github.com/SeamusWaldron/virtualcube"
	"github.com/SeamusWaldron/virtualcube/internal/render"
)

// DefaultLifetime is how long exiting particles keep respawning.
const DefaultLifetime = 4 * time.Second

// frameStep is the frame length the particle constants are tuned for.
const frameStep = time.Second / 60

// Colors particles are drawn with.
var Colors = []string{
	"#f44336", "#ff9800", "#ffeb3b", "#4caf50", "#2196f3", "#9c27b0", "#ffffff",
}

// Particle is one piece of confetti, in canvas cells.
type Particle struct {
	X, Y      float64
	R         float64 // size; larger pieces fall faster
	D         float64 // phase of the sway
	Tilt      float64
	TiltAngle float64
	TiltStep  float64
	Color     string
}

// Field is a set of particles falling over a W x H canvas. It is driven by
// Step and is not safe for concurrent use.
type Field struct {
	W, H     float64
	Lifetime time.Duration
	Speed    float64 // cells per 60 Hz step

	particles []Particle
	angle     float64
	tiltAngle float64
	age       time.Duration
	carry     time.Duration
	rng       *rand.Rand
}

var _ virtualcube.Celebrator = (*Field)(nil)

// NewField returns an empty field. A nil rng uses a time-seeded source.
func NewField(w, h float64, rng *rand.Rand) *Field {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Field{
		W:        w,
		H:        h,
		Lifetime: DefaultLifetime,
		Speed:    0.08,
		rng:      rng,
	}
}

// Resize changes the canvas bounds.
func (f *Field) Resize(w, h float64) {
	f.W, f.H = w, h
}

// Play starts a burst of count particles spread across the width around
// originX, starting at row originY.
func (f *Field) Play(originX, originY float64, count int) {
	f.age = 0
	f.angle = 0.01
	f.tiltAngle = 0.1
	for i := 0; i < count; i++ {
		f.particles = append(f.particles, Particle{
			X:        originX + f.between(-f.W/2, f.W/2),
			Y:        originY,
			R:        f.between(5, 30),
			D:        f.between(0, float64(count)),
			Tilt:     f.between(-10, 0),
			TiltStep: f.between(0.05, 0.12),
			Color:    Colors[f.rng.Intn(len(Colors))],
		})
	}
}

// Active reports whether any particle is still on screen.
func (f *Field) Active() bool {
	return len(f.particles) > 0
}

// Particles returns the live particles.
func (f *Field) Particles() []Particle {
	return f.particles
}

// Step advances the field by dt in fixed frames.
func (f *Field) Step(dt time.Duration) {
	if !f.Active() {
		return
	}
	f.carry += dt
	for f.carry >= frameStep {
		f.carry -= frameStep
		f.age += frameStep
		f.frame()
	}
}

func (f *Field) frame() {
	f.angle += 0.01
	f.tiltAngle += 0.1
	respawn := f.age < f.Lifetime

	live := f.particles[:0]
	for i, p := range f.particles {
		p.TiltAngle += p.TiltStep
		p.Y += (math.Cos(f.angle+p.D) + 1 + p.R/2) / 2 * f.Speed
		p.X += math.Sin(f.angle) * f.Speed
		p.Tilt = 15 * math.Sin(p.TiltAngle-float64(i)/3)

		if f.exiting(p) {
			if !respawn {
				continue
			}
			f.respawn(&p, i)
		}
		live = append(live, p)
	}
	f.particles = live
}

func (f *Field) exiting(p Particle) bool {
	return p.X > f.W+1 || p.X < -1 || p.Y > f.H
}

// respawn puts an exiting particle back: most along the top edge, some on
// the side the wind blows from.
func (f *Field) respawn(p *Particle, i int) {
	p.Tilt = f.between(-10, 0)
	if i%5 > 0 || i%2 == 0 {
		p.X = f.between(0, f.W)
		p.Y = -1
		return
	}
	p.Y = f.between(0, f.H)
	if math.Sin(f.angle) > 0 {
		p.X = -0.5
	} else {
		p.X = f.W + 0.5
	}
}

// Draw plots every particle onto c. The tilt picks the glyph.
func (f *Field) Draw(c *render.Canvas) {
	for _, p := range f.particles {
		x, y := int(math.Round(p.X)), int(math.Round(p.Y))
		if y < 0 {
			continue
		}
		glyph := '|'
		switch {
		case p.Tilt > 5:
			glyph = '\\'
		case p.Tilt < -5:
			glyph = '/'
		}
		c.Set(x, y, glyph, p.Color)
	}
}

func (f *Field) between(lo, hi float64) float64 {
	return lo + f.rng.Float64()*(hi-lo)
}
