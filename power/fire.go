package power

import (
	"math"

	"go.uber.org/zap"

	"github.com/milk9111/platformer/engine"
	"github.com/milk9111/platformer/levels"
	"github.com/milk9111/platformer/prefabs"
)

// Fire lets the hero throw fireballs. It owns the ball bodies and the two
// colliders that route their contacts, and releases all of them on detach.
type Fire struct {
	spec    prefabs.FireSpec
	world   engine.World
	clock   engine.Clock
	sound   engine.Sound
	enemies engine.Group
	logger  *zap.Logger

	balls       []*FireBall
	group       *engine.BodyList
	worldHandle engine.Handle
	enemyHandle engine.Handle
	registered  bool
	launching   bool
	cooldown    engine.Timer
}

func NewFire(spec prefabs.FireSpec, svc engine.Services, enemies engine.Group) *Fire {
	return &Fire{
		spec:    spec,
		world:   svc.World,
		clock:   svc.Clock,
		sound:   svc.Sound,
		enemies: enemies,
		logger:  svc.Log("fire"),
		group:   engine.Bodies(),
	}
}

func (f *Fire) Kind() Kind { return KindFire }

// Balls returns every ball created so far.
func (f *Fire) Balls() []*FireBall {
	return append([]*FireBall(nil), f.balls...)
}

func (f *Fire) Attach(t Target) {
	if h, ok := t.(Hero); ok {
		h.SetVariant(VariantFire)
	}
	f.worldHandle = f.world.Collide(f.group, nil, f.ballHitWorld)
	f.enemyHandle = f.world.Overlap(f.group, f.enemies, f.ballProcess, f.ballHitEnemy)
	f.registered = true
}

func (f *Fire) ballHitWorld(b engine.Body, _ *levels.Tile) {
	fb, ok := b.Owner().(*FireBall)
	if !ok || fb.exploding {
		return
	}
	if b.Blocked().Lateral() {
		fb.explode()
	}
}

func (f *Fire) ballProcess(a, _ engine.Body) bool {
	fb, ok := a.Owner().(*FireBall)
	return ok && fb.active && !fb.exploding
}

func (f *Fire) ballHitEnemy(a, b engine.Body) {
	fb, ok := a.Owner().(*FireBall)
	if !ok {
		return
	}
	foe, ok := b.Owner().(Foe)
	if !ok || foe.Dead() {
		return
	}
	fb.explode()
	foe.Die(true)
}

func (f *Fire) Tick(_ float64, t Target, in engine.Input) {
	if f.launching {
		t.Sprite().Play("fire")
	}
	if in != nil && in.JustPressed(engine.ButtonFire) && !f.launching {
		f.launch(t)
	}

	x, y := t.Body().Position()
	maxX := math.Abs(x) + f.spec.Range
	maxY := math.Abs(y) + f.spec.Range
	for _, fb := range f.balls {
		if !fb.active {
			continue
		}
		bx, by := fb.body.Position()
		if math.Abs(bx) > maxX || math.Abs(by) > maxY {
			fb.deactivate()
		}
	}
}

func (f *Fire) launch(t Target) {
	fb := f.next()
	if fb == nil {
		return
	}
	f.launching = true
	dir := 1.0
	if t.Sprite().FlipX() {
		dir = -1
	}
	x, y := t.Body().Position()
	fb.run(dir, x, y)
	f.sound.Play("smb_fireball")
	f.cooldown = f.clock.After(f.spec.CooldownMs, func() { f.launching = false })
}

// next returns a new ball while under the limit, else the first idle one.
func (f *Fire) next() *FireBall {
	if len(f.balls) < f.spec.MaxBalls {
		fb := newFireBall(f.world, f.clock, f.spec)
		f.balls = append(f.balls, fb)
		f.group.Add(fb.body)
		return fb
	}
	for _, fb := range f.balls {
		if !fb.active {
			return fb
		}
	}
	return nil
}

// OverlapEnemy drops the ability on a harmful side hit. The hit is left
// unconsumed so the next ability or the default rule still resolves it.
func (f *Fire) OverlapEnemy(t Target, foe Foe, steppedOn bool) bool {
	h, ok := t.(Hero)
	if !ok || steppedOn || h.Protected() || !foe.Harmful() {
		return false
	}
	t.Powers().Remove(KindFire)
	return false
}

func (f *Fire) Detach(t Target) {
	if f.cooldown != nil {
		f.cooldown.Cancel()
		f.cooldown = nil
	}
	f.launching = false
	if f.registered {
		f.world.RemoveCollider(f.worldHandle)
		f.world.RemoveCollider(f.enemyHandle)
		f.registered = false
	}
	for _, fb := range f.balls {
		if fb.fade != nil {
			fb.fade.Cancel()
		}
		f.world.DestroyBody(fb.body)
	}
	f.balls = nil
	f.group = engine.Bodies()
	f.logger.Debug("fire detached")

	if h, ok := t.(Hero); ok {
		if t.Powers().Has(KindLarge) {
			h.SetVariant(VariantLarge)
		} else {
			h.SetVariant(VariantDefault)
		}
	}
}
