// Package item implements the collectibles revealed by question-mark tiles.
package item

import (
	"go.uber.org/zap"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/engine"
	"github.com/milk9111/platformer/prefabs"
	"github.com/milk9111/platformer/timing"
)

// Power-up kinds.
const (
	KindMushroom = "mushroom"
	KindOneUp    = "1up"
	KindFlower   = "flower"
	KindStar     = "star"
)

// PowerUp rises out of its tile, then moves according to its kind until the
// character collects it or it drifts out of range.
type PowerUp struct {
	kind   string
	spec   prefabs.PowerUpKindSpec
	hop    float64
	body   engine.Body
	sprite engine.Sprite

	world  engine.World
	sound  engine.Sound
	awards engine.AwardSink
	logger *zap.Logger

	entity    ecs.Entity
	reveal    engine.Tween
	displayed bool
	gone      bool
}

// newPowerUp starts the reveal with the body RevealRise below (x, y).
func newPowerUp(kind string, common *prefabs.PowerUpsSpec, x, y float64, sprite engine.Sprite, svc engine.Services) *PowerUp {
	spec := common.Kinds[kind]
	p := &PowerUp{
		kind:   kind,
		spec:   spec,
		hop:    common.HopVelocity,
		sprite: sprite,
		world:  svc.World,
		sound:  svc.Sound,
		awards: svc.Awards,
		logger: svc.Log("powerup"),
	}
	p.body = svc.World.NewBody(engine.BodySpec{
		X:      x,
		Y:      y + common.RevealRise,
		Width:  spec.Size.W,
		Height: spec.Size.H,
		Owner:  p,
	})
	p.body.SetCollidable(false)
	p.sprite.SetDepth(-1)
	p.sprite.Play(spec.Anim)
	p.sound.Play("smb_powerup_appears")

	p.reveal = svc.Tweens.Tween(engine.TweenSpec{
		From:     y + common.RevealRise,
		To:       y,
		Duration: common.RevealDurationMs,
		Ease:     timing.CubicOut,
		Set:      func(v float64) { p.body.SetPosition(x, v) },
		OnComplete: func() {
			p.reveal = nil
			p.show()
		},
	})
	return p
}

func (p *PowerUp) Kind() string          { return p.kind }
func (p *PowerUp) Body() engine.Body     { return p.body }
func (p *PowerUp) Sprite() engine.Sprite { return p.sprite }

// Displayed reports whether the reveal finished. Only displayed power-ups can
// be collected.
func (p *PowerUp) Displayed() bool { return p.displayed }

// Gone reports whether the power-up was collected or destroyed.
func (p *PowerUp) Gone() bool { return p.gone }

func (p *PowerUp) show() {
	p.displayed = true
	p.sprite.SetDepth(1)
	p.body.SetCollidable(true)
	p.body.SetGravity(p.spec.Gravity)
	p.body.SetBounce(p.spec.Bounce.X, p.spec.Bounce.Y)
	if p.spec.MaxVelocity.X != 0 || p.spec.MaxVelocity.Y != 0 {
		p.body.SetMaxVelocity(p.spec.MaxVelocity.X, p.spec.MaxVelocity.Y)
	}
	p.body.SetVelocity(p.spec.Velocity.X, p.spec.Velocity.Y)
	p.logger.Debug("power-up displayed", zap.String("kind", p.kind))
}

// Collect hands the power-up's award out and removes it. It reports false
// when the power-up is not collectible.
func (p *PowerUp) Collect() bool {
	if !p.displayed || p.gone {
		return false
	}
	p.sound.Play(p.spec.Sound)
	p.awards.Emit(engine.Award{Score: p.spec.Score, Lives: p.spec.Lives, Source: p.kind})
	p.destroy()
	return true
}

// Hop throws a walking power-up upwards, as when the tile under it is bumped.
func (p *PowerUp) Hop() {
	if !p.displayed || p.gone || !p.spec.Gravity {
		return
	}
	p.body.SetVelocityY(p.hop)
}

// Update faces the sprite along the direction of travel.
func (p *PowerUp) Update(float64) {
	if !p.displayed || p.gone {
		return
	}
	vx, _ := p.body.Velocity()
	p.sprite.SetFlipX(vx < 0)
}

func (p *PowerUp) destroy() {
	if p.gone {
		return
	}
	p.gone = true
	if p.reveal != nil {
		p.reveal.Stop()
		p.reveal = nil
	}
	p.sprite.SetVisible(false)
	p.world.DestroyBody(p.body)
}
