package power

import (
	"math"

	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/engine"
	"github.com/milk9111/platformer/prefabs"
)

// Move walks the hero left and right and picks the ground animation.
type Move struct {
	spec prefabs.MoveSpec
}

func NewMove(spec prefabs.MoveSpec) *Move {
	return &Move{spec: spec}
}

func (m *Move) Kind() Kind { return KindMove }

func (m *Move) Tick(_ float64, t Target, in engine.Input) {
	h, ok := t.(Hero)
	if !ok {
		return
	}
	body, sprite := t.Body(), t.Sprite()
	vx, _ := body.Velocity()
	ax := m.spec.Acceleration
	left, right := held(in, engine.ButtonLeft), held(in, engine.ButtonRight)

	switch {
	case left:
		sprite.SetFlipX(true)
		a := -ax
		if vx > 0 {
			a -= vx * 2
		}
		body.SetAcceleration(a, 0)
	case right:
		sprite.SetFlipX(false)
		a := ax
		if vx < 0 {
			a -= vx * 2
		}
		body.SetAcceleration(a, 0)
	case math.Abs(vx) < m.spec.StopSpeed:
		stopWalk(body)
	default:
		// coast down
		body.SetAcceleration(-common.Sign(vx)*ax, 0)
	}

	if !body.Blocked().Down {
		return
	}
	vx, _ = body.Velocity()
	v := h.Variant()
	switch {
	case held(in, engine.ButtonDown) && t.Powers().Has(KindLarge):
		sprite.Play(v.Anim("bend"))
		stopWalk(body)
	case (left && vx > 0) || (right && vx < 0):
		sprite.Play(v.Anim("turn"))
	case math.Abs(vx) >= m.spec.RunThreshold:
		sprite.Play(v.Anim("run"))
	default:
		sprite.Play(v.Anim("stand"))
	}
}

func stopWalk(body engine.Body) {
	body.SetAcceleration(0, 0)
	body.SetVelocityX(0)
}
