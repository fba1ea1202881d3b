// Package enemy implements the patrolling enemies and the pool that spawns,
// culls and recycles them.
package enemy

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/engine"
	"github.com/milk9111/platformer/levels"
	"github.com/milk9111/platformer/power"
	"github.com/milk9111/platformer/prefabs"
)

// State is the behavior state of an enemy.
type State int

const (
	StatePatrol State = iota
	StateShell
	StateDead
)

func (s State) String() string {
	switch s {
	case StatePatrol:
		return "patrol"
	case StateShell:
		return "shell"
	case StateDead:
		return "dead"
	}
	return "unknown"
}

// Enemy kinds known to the pool.
const (
	KindGoomba = "goomba"
	KindTurtle = "turtle"
)

// Enemy walks at a constant speed, bouncing off walls. Kinds with a shell
// spec retreat into a shell when stomped; a kicked shell carries a HitBrick
// ability so it breaks bricks it slides into.
type Enemy struct {
	ID     uuid.UUID
	kind   string
	spec   prefabs.EnemyKindSpec
	common *prefabs.EnemiesSpec

	body   engine.Body
	sprite engine.Sprite
	powers *power.Registry
	brick  power.Factory

	tweens engine.Tweener
	sound  engine.Sound
	awards engine.AwardSink
	logger *zap.Logger

	entity  ecs.Entity
	state   State
	dead    bool
	harmful bool
	fade    engine.Tween
}

var (
	_ power.Target = (*Enemy)(nil)
	_ power.Foe    = (*Enemy)(nil)
)

func newEnemy(kind string, common *prefabs.EnemiesSpec, sprite engine.Sprite, brick power.Factory, svc engine.Services) *Enemy {
	spec := common.Kinds[kind]
	e := &Enemy{
		ID:     uuid.New(),
		kind:   kind,
		spec:   spec,
		common: common,
		sprite: sprite,
		brick:  brick,
		tweens: svc.Tweens,
		sound:  svc.Sound,
		awards: svc.Awards,
		logger: svc.Log("enemy"),
	}
	var allowed []power.Kind
	if spec.Shell != nil {
		allowed = power.TurtleKinds
	}
	e.powers = power.NewRegistry(e, kind, allowed, e.logger)
	e.body = svc.World.NewBody(engine.BodySpec{
		Width:   spec.Size.W,
		Height:  spec.Size.H,
		Gravity: true,
		Owner:   e,
	})
	return e
}

func (e *Enemy) Kind() string            { return e.kind }
func (e *Enemy) Body() engine.Body       { return e.body }
func (e *Enemy) Sprite() engine.Sprite   { return e.sprite }
func (e *Enemy) Powers() *power.Registry { return e.powers }
func (e *Enemy) State() State            { return e.state }
func (e *Enemy) Dead() bool              { return e.dead }
func (e *Enemy) Harmful() bool           { return e.harmful }

// Active reports whether the enemy still takes part in the simulation.
func (e *Enemy) Active() bool { return e.body.Enabled() }

// moving reports whether the enemy is a sliding shell.
func (e *Enemy) moving() bool {
	vx, _ := e.body.Velocity()
	return e.state == StateShell && vx != 0
}

// Restore resets every transient flag and places the enemy with its bottom
// left corner at (x, y). It is the only way back into play.
func (e *Enemy) Restore(x, y float64) {
	if e.fade != nil {
		e.fade.Stop()
		e.fade = nil
	}
	e.powers.Clear()
	e.dead = false
	e.harmful = true
	e.state = StatePatrol

	size := e.spec.Size
	e.body.SetSize(size.W, size.H)
	e.body.SetPosition(x+size.W/2, y-size.H/2)
	e.body.Enable()
	e.body.SetCollidable(true)
	e.body.SetAcceleration(0, 0)
	e.body.SetBounce(1, 0)
	e.body.SetVelocity(e.common.PatrolVelocityX, 0)

	e.sprite.SetAlpha(1)
	e.sprite.SetFlipX(false)
	e.sprite.SetFlipY(false)
	e.sprite.SetVisible(true)
	e.sprite.Play(e.spec.Walk)
}

// Update keeps the sprite facing the direction of travel.
func (e *Enemy) Update(float64) {
	if !e.Active() {
		return
	}
	vx, _ := e.body.Velocity()
	e.sprite.SetFlipX(vx < 0)
}

// OverlapPlayer reacts to the character. It returns true when the contact is
// fully handled and no default resolution should follow.
func (e *Enemy) OverlapPlayer(player power.Target, steppedOn bool) bool {
	if e.dead {
		return false
	}
	if e.spec.Shell == nil {
		if steppedOn {
			e.Die(false)
		}
		return false
	}

	if e.state != StateShell {
		if steppedOn {
			e.retreat()
		}
		return false
	}
	if vx, _ := e.body.Velocity(); vx == 0 {
		e.kick(player)
		return true
	}
	if steppedOn {
		e.sound.Play("smb_stomp")
		e.body.Stop()
		e.harmful = false
		e.powers.Remove(power.KindHitBrick)
		return false
	}
	e.harmful = true
	return false
}

func (e *Enemy) retreat() {
	shell := e.spec.Shell
	e.sprite.Play(e.spec.Dead)
	e.sound.Play("smb_stomp")
	e.body.Stop()
	e.body.SetSize(shell.Size.W, shell.Size.H)
	e.state = StateShell
	e.harmful = false
}

// kick launches a resting shell away from the player.
func (e *Enemy) kick(player power.Target) {
	shell := e.spec.Shell
	x, y := e.body.Position()
	px, _ := player.Body().Position()
	dir := 1.0
	if px > x {
		dir = -1
	}
	e.body.SetPosition(x+dir*shell.KickNudge, y)
	e.body.SetVelocityX(dir * shell.KickSpeed)
	e.sound.Play("smb_kick")
	e.harmful = true
	if e.brick != nil {
		if err := e.powers.Add(power.KindHitBrick, e.brick, false); err != nil {
			e.logger.Error("shell hit brick", zap.Error(err))
		}
	}
}

// OverlapEnemy kills other when this enemy is a sliding shell.
func (e *Enemy) OverlapEnemy(other *Enemy) {
	if e.dead || other == nil || other.dead {
		return
	}
	if e.moving() {
		other.Die(true)
	}
}

// ColliderWorld offers a tile contact to the enemy's abilities.
func (e *Enemy) ColliderWorld(tile *levels.Tile) bool {
	if e.dead || tile == nil {
		return false
	}
	return e.powers.ContactWorld(power.Contact{Tile: tile, Blocked: e.body.Blocked()})
}

// Die kills the enemy. A knocked enemy flips and falls through the level; a
// stomped one is squashed, fades out and leaves play.
func (e *Enemy) Die(knocked bool) {
	if e.dead {
		return
	}
	e.dead = true
	e.state = StateDead
	e.harmful = false
	e.powers.Clear()
	e.sound.Play("smb_stomp")
	e.awards.Emit(engine.Award{Score: e.common.Score, Source: e.kind})
	e.logger.Debug("enemy died",
		zap.Stringer("id", e.ID),
		zap.String("kind", e.kind),
		zap.Bool("knocked", knocked),
	)

	if knocked {
		e.body.SetCollidable(false)
		e.sprite.SetFlipY(true)
		e.body.SetVelocity(0, e.common.KnockedVelocityY)
		return
	}
	e.body.Stop()
	e.sprite.Play(e.spec.Dead)
	e.fade = e.tweens.Tween(engine.TweenSpec{
		From:     1,
		To:       0,
		Duration: e.common.FadeMs,
		Repeat:   e.common.FadeRepeat,
		Set:      e.sprite.SetAlpha,
		OnComplete: func() {
			e.fade = nil
			e.body.Disable()
			e.sprite.SetVisible(false)
		},
	})
}

// killAndHide takes the enemy out of play without dying.
func (e *Enemy) killAndHide() {
	if e.fade != nil {
		e.fade.Stop()
		e.fade = nil
	}
	e.powers.Clear()
	e.body.Disable()
	e.sprite.SetVisible(false)
}

func (e *Enemy) destroy(world engine.World) {
	e.killAndHide()
	world.DestroyBody(e.body)
}
