package power

import (
	"github.com/milk9111/platformer/engine"
	"github.com/milk9111/platformer/prefabs"
)

// FireBall is one projectile owned by Fire. Balls are reused once they
// explode or leave range.
type FireBall struct {
	body  engine.Body
	spec  prefabs.FireSpec
	clock engine.Clock

	active    bool
	exploding bool
	fade      engine.Timer
}

func newFireBall(world engine.World, clock engine.Clock, spec prefabs.FireSpec) *FireBall {
	fb := &FireBall{spec: spec, clock: clock}
	fb.body = world.NewBody(engine.BodySpec{
		Width:   spec.BallSize.W,
		Height:  spec.BallSize.H,
		Gravity: true,
		Owner:   fb,
	})
	fb.body.Disable()
	return fb
}

func (fb *FireBall) Body() engine.Body { return fb.body }
func (fb *FireBall) Active() bool      { return fb.active }
func (fb *FireBall) Exploding() bool   { return fb.exploding }

func (fb *FireBall) run(direction, x, y float64) {
	if fb.fade != nil {
		fb.fade.Cancel()
		fb.fade = nil
	}
	fb.active = true
	fb.exploding = false
	fb.body.Enable()
	fb.body.SetCollidable(true)
	fb.body.SetPosition(x, y)
	fb.body.SetGravity(true)
	fb.body.SetBounce(0, fb.spec.BounceY)
	fb.body.SetVelocity(direction*fb.spec.SpeedX, 0)
}

func (fb *FireBall) explode() {
	if fb.exploding || !fb.active {
		return
	}
	fb.exploding = true
	fb.body.Stop()
	fb.body.SetGravity(false)
	fb.body.SetCollidable(false)
	fb.fade = fb.clock.After(fb.spec.ExplodeMs, fb.deactivate)
}

func (fb *FireBall) deactivate() {
	if fb.fade != nil {
		fb.fade.Cancel()
		fb.fade = nil
	}
	fb.active = false
	fb.exploding = false
	fb.body.Disable()
}
