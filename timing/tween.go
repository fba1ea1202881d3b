package timing

import (
	"math"

	"github.com/milk9111/platformer/engine"
)

func Linear(t float64) float64 { return t }

func CubicOut(t float64) float64 {
	u := 1 - t
	return 1 - u*u*u
}

func CubicInOut(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// Tweens advances numeric tweens on the tick.
type Tweens struct {
	active []*Tween
}

func NewTweens() *Tweens {
	return &Tweens{}
}

// Tween is a running tween.
type Tween struct {
	spec    engine.TweenSpec
	elapsed float64
	cycles  int
	done    bool
}

// Stop halts the tween where it is. OnComplete does not run.
func (tw *Tween) Stop() {
	if tw == nil {
		return
	}
	tw.done = true
}

func (tw *Tween) Done() bool {
	return tw == nil || tw.done
}

// Tween starts a tween. The first value is applied immediately.
func (ts *Tweens) Tween(spec engine.TweenSpec) engine.Tween {
	if spec.Ease == nil {
		spec.Ease = Linear
	}
	tw := &Tween{spec: spec}
	tw.set(spec.From)
	ts.active = append(ts.active, tw)
	return tw
}

// Update advances all tweens by deltaMs.
func (ts *Tweens) Update(deltaMs float64) {
	if ts == nil {
		return
	}
	current := ts.active
	ts.active = nil
	keep := current[:0]
	for _, tw := range current {
		if tw.done {
			continue
		}
		if tw.advance(deltaMs) {
			tw.done = true
			if tw.spec.OnComplete != nil {
				tw.spec.OnComplete()
			}
			continue
		}
		keep = append(keep, tw)
	}
	ts.active = append(keep, ts.active...)
}

// Len returns the number of running tweens.
func (ts *Tweens) Len() int {
	if ts == nil {
		return 0
	}
	return len(ts.active)
}

// Reset stops every tween without completing it.
func (ts *Tweens) Reset() {
	if ts == nil {
		return
	}
	for _, tw := range ts.active {
		tw.done = true
	}
	ts.active = nil
}

func (tw *Tween) set(v float64) {
	if tw.spec.Set != nil {
		tw.spec.Set(v)
	}
}

func (tw *Tween) advance(delta float64) bool {
	d := tw.spec.Duration
	end := tw.spec.To
	if tw.spec.Yoyo {
		end = tw.spec.From
	}
	if d <= 0 {
		tw.set(end)
		return true
	}

	cycle := d
	if tw.spec.Yoyo {
		cycle *= 2
	}
	tw.elapsed += delta
	for tw.elapsed >= cycle {
		if tw.spec.Repeat >= 0 && tw.cycles >= tw.spec.Repeat {
			tw.set(end)
			return true
		}
		tw.elapsed -= cycle
		tw.cycles++
	}

	p := tw.elapsed / d
	if p > 1 {
		p = 2 - p
	}
	tw.set(tw.spec.From + (tw.spec.To-tw.spec.From)*tw.spec.Ease(p))
	return false
}
