package power

import (
	"github.com/milk9111/platformer/engine"
	"github.com/milk9111/platformer/prefabs"
)

// Large grows the hero on attach. A harmful hit shrinks it back, leaves it
// protected for a while and then removes the ability.
type Large struct {
	spec  prefabs.LargeSpec
	small prefabs.SizeSpec
	large prefabs.SizeSpec
	world engine.World
	clock engine.Clock
	sound engine.Sound

	attached   bool
	resizing   bool
	protecting bool
	protect    engine.Timer
}

func NewLarge(spec prefabs.LargeSpec, small, large prefabs.SizeSpec, svc engine.Services) *Large {
	return &Large{
		spec:  spec,
		small: small,
		large: large,
		world: svc.World,
		clock: svc.Clock,
		sound: svc.Sound,
	}
}

func (l *Large) Kind() Kind { return KindLarge }

// Protecting reports whether the post-hit protection window is open.
func (l *Large) Protecting() bool { return l.protecting }

func (l *Large) Attach(t Target) {
	l.attached = true
	h, ok := t.(Hero)
	if !ok {
		return
	}
	l.resize(h, "grow", VariantLarge, l.large)
}

// resize pauses physics while the transition animation plays, then applies
// the new variant and body size.
func (l *Large) resize(h Hero, anim string, v Variant, size prefabs.SizeSpec) {
	l.world.Pause()
	l.resizing = true
	h.Sprite().PlayOnce(anim, func() {
		if !l.resizing {
			return
		}
		l.resizing = false
		l.world.Resume()
		if !l.attached {
			return
		}
		h.SetVariant(v)
		h.Body().SetSize(size.W, size.H)
	})
}

func (l *Large) OverlapEnemy(t Target, foe Foe, _ bool) bool {
	h, ok := t.(Hero)
	if !ok || h.Protected() || !foe.Harmful() {
		return false
	}
	body := t.Body()
	if _, vy := body.Velocity(); body.Touching().Down && vy > 0 {
		return false
	}
	l.shrink(h)
	return true
}

func (l *Large) shrink(h Hero) {
	l.resize(h, "shrink", VariantDefault, l.small)
	h.Sprite().SetAlpha(l.spec.ProtectAlpha)
	h.SetProtected(true)
	l.protecting = true
	if l.protect != nil {
		l.protect.Cancel()
	}
	l.protect = l.clock.After(l.spec.ProtectMs, func() { l.expire(h) })
	l.sound.Play("smb_pipe")
}

func (l *Large) expire(h Hero) {
	if !l.attached {
		return
	}
	l.unprotect(h)
	h.Powers().Remove(KindLarge)
}

func (l *Large) unprotect(h Hero) {
	if !l.protecting {
		return
	}
	l.protecting = false
	h.Sprite().SetAlpha(1)
	h.SetProtected(false)
}

func (l *Large) Detach(t Target) {
	l.attached = false
	if l.protect != nil {
		l.protect.Cancel()
		l.protect = nil
	}
	if l.resizing {
		l.resizing = false
		l.world.Resume()
	}
	if h, ok := t.(Hero); ok {
		l.unprotect(h)
	}
}
