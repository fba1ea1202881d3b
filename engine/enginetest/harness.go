package enginetest

import (
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/milk9111/platformer/engine"
	"github.com/milk9111/platformer/timing"
)

// Harness bundles fakes with a real clock and tweener so deferred work only
// runs when a test advances time.
type Harness struct {
	World   *World
	Clock   *timing.Clock
	Tweens  *timing.Tweens
	Sound   *Sound
	Effects *Effects
	Camera  *Camera
	Awards  *Awards
}

func NewHarness(t testing.TB) (*Harness, engine.Services) {
	h := &Harness{
		World:   NewWorld(),
		Clock:   timing.NewClock(),
		Tweens:  timing.NewTweens(),
		Sound:   &Sound{},
		Effects: &Effects{},
		Camera:  &Camera{},
		Awards:  &Awards{},
	}
	return h, h.Services(t)
}

func (h *Harness) Services(t testing.TB) engine.Services {
	return engine.Services{
		World:   h.World,
		Clock:   h.Clock,
		Tweens:  h.Tweens,
		Sound:   h.Sound,
		Effects: h.Effects,
		Camera:  h.Camera,
		Awards:  h.Awards,
		Logger:  zaptest.NewLogger(t),
	}
}

// Advance moves the clock and tweens forward by ms.
func (h *Harness) Advance(ms float64) {
	h.Clock.Update(ms)
	h.Tweens.Update(ms)
}
