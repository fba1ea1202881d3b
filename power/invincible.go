package power

import (
	"github.com/milk9111/platformer/engine"
	"github.com/milk9111/platformer/prefabs"
)

var defaultTints = []uint32{0xffffff, 0xff0000, 0xffffff, 0x00ff00, 0xffffff, 0x0000ff}

// Invincible kills every enemy it touches until its time runs out. The
// countdown lives on the instance, so removing it early ends it.
type Invincible struct {
	spec    prefabs.InvincibleSpec
	tints   []uint32
	elapsed float64
	frame   int
}

func NewInvincible(spec prefabs.InvincibleSpec) *Invincible {
	tints := spec.Tints
	if len(tints) == 0 {
		tints = defaultTints
	}
	return &Invincible{spec: spec, tints: tints}
}

func (i *Invincible) Kind() Kind { return KindInvincible }

// Remaining returns the milliseconds left.
func (i *Invincible) Remaining() float64 {
	return max(0, i.spec.DurationMs-i.elapsed)
}

func (i *Invincible) Tick(deltaMs float64, t Target, _ engine.Input) {
	i.elapsed += deltaMs
	if i.elapsed >= i.spec.DurationMs {
		t.Powers().Remove(KindInvincible)
		return
	}
	t.Sprite().SetTint(i.tints[i.frame])
	i.frame = (i.frame + 1) % len(i.tints)
}

func (i *Invincible) OverlapEnemy(_ Target, foe Foe, _ bool) bool {
	foe.Die(true)
	return true
}

func (i *Invincible) Detach(t Target) {
	t.Sprite().ClearTint()
}
