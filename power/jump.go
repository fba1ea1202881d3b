package power

import (
	"github.com/milk9111/platformer/engine"
	"github.com/milk9111/platformer/prefabs"
)

// Jump starts a jump from the ground and sustains the take-off velocity while
// the button stays held, up to the configured duration.
type Jump struct {
	spec  prefabs.JumpSpec
	sound engine.Sound

	holding bool
	heldMs  float64
}

func NewJump(spec prefabs.JumpSpec, sound engine.Sound) *Jump {
	return &Jump{spec: spec, sound: sound}
}

func (j *Jump) Kind() Kind { return KindJump }

// Holding reports whether a held jump is still being sustained.
func (j *Jump) Holding() bool { return j.holding }

func (j *Jump) Tick(deltaMs float64, t Target, in engine.Input) {
	h, ok := t.(Hero)
	if !ok {
		return
	}
	body := t.Body()
	blocked := body.Blocked()
	if blocked.Up {
		j.holding = false
	}

	pressed := held(in, engine.ButtonUp) || held(in, engine.ButtonJump)
	switch {
	case pressed && blocked.Down:
		j.holding = true
		j.heldMs = 0
		body.SetVelocityY(j.spec.VelocityY)
		if t.Powers().Has(KindLarge) {
			j.sound.Play("smb_jump-super")
		} else {
			j.sound.Play("smb_jump-small")
		}
	case pressed && j.holding:
		j.heldMs += deltaMs
		if j.heldMs > j.spec.DurationMs {
			j.holding = false
		} else {
			body.SetVelocityY(j.spec.VelocityY)
		}
	default:
		j.holding = false
	}

	if !blocked.Down {
		t.Sprite().Play(h.Variant().Anim("jump"))
	}
}
