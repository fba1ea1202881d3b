// Package actor holds the player-controlled character.
package actor

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/milk9111/platformer/engine"
	"github.com/milk9111/platformer/levels"
	"github.com/milk9111/platformer/power"
	"github.com/milk9111/platformer/prefabs"
)

// Options configures a Character.
type Options struct {
	Spec   *prefabs.CharacterSpec
	Kit    *power.Kit
	Sprite engine.Sprite
	// FallLimit is the Y past which the character dies.
	FallLimit float64
	// OnDie runs once the death delay has elapsed.
	OnDie func()
}

// Character is the controllable actor. Movement, jumping and every power-up
// live in its ability registry; the character itself only tracks life and
// death.
type Character struct {
	spec   *prefabs.CharacterSpec
	kit    *power.Kit
	body   engine.Body
	sprite engine.Sprite
	powers *power.Registry

	world  engine.World
	clock  engine.Clock
	sound  engine.Sound
	awards engine.AwardSink
	logger *zap.Logger

	fallLimit float64
	onDie     func()
	restart   engine.Timer

	variant   power.Variant
	dead      bool
	protected bool
}

var _ power.Hero = (*Character)(nil)

// startKinds are attached to every new character.
var startKinds = []power.Kind{power.KindMove, power.KindJump, power.KindEnterPipe, power.KindHitBrick}

func New(opts Options) (*Character, error) {
	if opts.Spec == nil || opts.Kit == nil || opts.Kit.Abilities == nil {
		return nil, fmt.Errorf("actor: character needs a spec and an ability kit")
	}
	svc := opts.Kit.Services
	c := &Character{
		spec:      opts.Spec,
		kit:       opts.Kit,
		sprite:    opts.Sprite,
		world:     svc.World,
		clock:     svc.Clock,
		sound:     svc.Sound,
		awards:    svc.Awards,
		logger:    svc.Log("character"),
		fallLimit: opts.FallLimit,
		onDie:     opts.OnDie,
		variant:   power.VariantDefault,
	}
	size := opts.Spec.DefaultSize
	c.body = svc.World.NewBody(engine.BodySpec{
		X:       opts.Spec.Spawn.X,
		Y:       opts.Spec.Spawn.Y,
		Width:   size.W,
		Height:  size.H,
		Gravity: true,
		Owner:   c,
	})
	abilities := opts.Kit.Abilities
	c.body.SetMaxVelocity(abilities.Move.MaxVelocityX, abilities.Jump.MaxVelocityY)

	c.powers = power.NewRegistry(c, "character", power.CharacterKinds, c.logger)
	for _, k := range startKinds {
		if err := c.powers.Add(k, opts.Kit.Factory(k), false); err != nil {
			return nil, fmt.Errorf("actor: attach %s: %w", k, err)
		}
	}
	c.sprite.Play(c.variant.Anim("stand"))
	return c, nil
}

func (c *Character) Body() engine.Body          { return c.body }
func (c *Character) Sprite() engine.Sprite      { return c.sprite }
func (c *Character) Powers() *power.Registry    { return c.powers }
func (c *Character) Variant() power.Variant     { return c.variant }
func (c *Character) SetVariant(v power.Variant) { c.variant = v }
func (c *Character) Protected() bool            { return c.protected }
func (c *Character) SetProtected(p bool)        { c.protected = p }
func (c *Character) Dead() bool                 { return c.dead }

// Grant attaches a collected power. Replace restarts an ability that is
// already active.
func (c *Character) Grant(kind power.Kind, replace bool) error {
	if c.dead {
		return nil
	}
	return c.powers.Add(kind, c.kit.Factory(kind), replace)
}

// Update runs the abilities for one tick. Nothing happens while dead or while
// the world is paused for a transition.
func (c *Character) Update(deltaMs float64, in engine.Input) {
	if c.dead || c.world.Paused() {
		return
	}
	c.powers.Tick(deltaMs, in)

	x, y := c.body.Position()
	if x < 0 || y > c.fallLimit {
		c.logger.Debug("out of bounds", zap.Float64("x", x), zap.Float64("y", y))
		c.Die()
	}
}

// Die starts the death sequence. The restart decision runs after the
// configured delay.
func (c *Character) Die() {
	if c.dead {
		return
	}
	c.dead = true
	c.logger.Info("character died")
	c.sprite.Play("dead")
	c.sound.Play("smb_mariodie")
	c.body.SetAcceleration(0, 0)
	c.body.SetVelocity(0, c.spec.DeathVelocityY)
	c.body.SetCollidable(false)
	c.awards.Emit(engine.Award{Lives: -1, Source: "death"})
	c.restart = c.clock.After(c.spec.RestartDelayMs, func() {
		c.restart = nil
		if c.onDie != nil {
			c.onDie()
		}
	})
}

// Bounce sets the vertical velocity after a stomp.
func (c *Character) Bounce() {
	c.body.SetVelocityY(c.spec.StompBounce)
}

// OverlapEnemy offers an enemy contact to the abilities and reports whether
// one of them consumed it.
func (c *Character) OverlapEnemy(foe power.Foe, steppedOn bool) bool {
	if c.dead {
		return false
	}
	return c.powers.OverlapEnemy(foe, steppedOn)
}

// ColliderWorld offers a tile contact to the abilities.
func (c *Character) ColliderWorld(tile *levels.Tile) bool {
	if c.dead || tile == nil {
		return false
	}
	return c.powers.ContactWorld(power.Contact{Tile: tile, Blocked: c.body.Blocked()})
}

// Destroy detaches every ability and releases the body.
func (c *Character) Destroy() {
	if c.restart != nil {
		c.restart.Cancel()
		c.restart = nil
	}
	c.powers.Clear()
	c.world.DestroyBody(c.body)
}
