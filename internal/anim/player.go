package anim

import "time"

// Tween interpolates a value from 0 to 1 over Duration.
type Tween struct {
	Duration time.Duration
	Easing   Easing

	// Update receives the eased value on every advance, including the
	// final value 1.
	Update func(v float64)

	// Complete runs once after the final update. It is not called for a
	// cancelled tween.
	Complete func()
}

// Handle controls a playing tween.
type Handle interface {
	// Cancel stops the tween without running Complete. It is safe to call
	// more than once and after completion.
	Cancel()
	// Finished reports whether the tween completed or was cancelled.
	Finished() bool
}

// Animator starts tweens and advances them.
type Animator interface {
	Play(t Tween) Handle
	Advance(dt time.Duration)
}

type playback struct {
	tween    Tween
	elapsed  time.Duration
	finished bool
}

func (p *playback) Cancel() {
	p.finished = true
}

func (p *playback) Finished() bool {
	return p.finished
}

// Player is the default Animator. It is not safe for concurrent use; drive
// it from a single event loop.
type Player struct {
	active []*playback
}

// NewPlayer creates an idle player.
func NewPlayer() *Player {
	return &Player{}
}

// Play starts t. The first update happens on the next Advance.
func (p *Player) Play(t Tween) Handle {
	if t.Easing == nil {
		t.Easing = Linear
	}
	pb := &playback{tween: t}
	p.active = append(p.active, pb)
	return pb
}

// Advance moves every active tween forward by dt. Tweens started from
// callbacks during Advance first update on the following call.
func (p *Player) Advance(dt time.Duration) {
	current := p.active
	p.active = nil
	survivors := make([]*playback, 0, len(current))

	for _, pb := range current {
		if pb.finished {
			continue
		}
		pb.elapsed += dt
		progress := 1.0
		if pb.tween.Duration > 0 && pb.elapsed < pb.tween.Duration {
			progress = float64(pb.elapsed) / float64(pb.tween.Duration)
		}

		if pb.tween.Update != nil {
			pb.tween.Update(pb.tween.Easing(progress))
		}
		if pb.finished {
			// cancelled from inside Update
			continue
		}
		if progress >= 1 {
			pb.finished = true
			if pb.tween.Complete != nil {
				pb.tween.Complete()
			}
			continue
		}
		survivors = append(survivors, pb)
	}

	// tweens started by callbacks go after the survivors
	p.active = append(survivors, p.active...)
}

// Active returns the number of tweens still running.
func (p *Player) Active() int {
	n := 0
	for _, pb := range p.active {
		if !pb.finished {
			n++
		}
	}
	return n
}
