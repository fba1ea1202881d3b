// Package scene assembles one attempt at a level: the character, the enemy
// and power-up pools, the brick helper, the HUD and the collision checks that
// route contacts between them.
package scene

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/milk9111/platformer/actor"
	"github.com/milk9111/platformer/brick"
	"github.com/milk9111/platformer/config"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/enemy"
	"github.com/milk9111/platformer/engine"
	"github.com/milk9111/platformer/hud"
	"github.com/milk9111/platformer/item"
	"github.com/milk9111/platformer/levels"
	"github.com/milk9111/platformer/power"
	"github.com/milk9111/platformer/prefabs"
	"github.com/milk9111/platformer/timing"
)

// Outcome is what the game loop should do after a tick.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeRestart
	OutcomeGameOver
	OutcomeComplete
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeRestart:
		return "restart"
	case OutcomeGameOver:
		return "gameOver"
	case OutcomeComplete:
		return "complete"
	}
	return "unknown"
}

// Deps is everything a scene needs from outside. Nothing is looked up
// globally.
type Deps struct {
	Config  config.Config
	Tuning  *prefabs.Tuning
	Level   *levels.Map
	World   engine.World
	Sound   engine.Sound
	Effects engine.Effects
	Camera  engine.Camera
	// NewSprite builds a sprite for every object the scene creates. Sprites
	// with an Update(float64) method are advanced each tick while their owner
	// is live.
	NewSprite func() engine.Sprite
	Logger    *zap.Logger
	// Carry is the HUD state of the previous attempt. Nil starts fresh.
	Carry *hud.State
}

type animated interface {
	Update(deltaMs float64)
}

type handles struct {
	playerWorld   engine.Handle
	playerEnemies engine.Handle
	enemiesWorld  engine.Handle
	enemiesEach   engine.Handle
	brickEnemies  engine.Handle
	itemsWorld    engine.Handle
	playerItems   engine.Handle
	playerFlag    engine.Handle
}

type Scene struct {
	deps   Deps
	level  *levels.Map
	world  engine.World
	logger *zap.Logger

	clock   *timing.Clock
	tweens  *timing.Tweens
	awards  *ecs.Queue[engine.Award]
	systems *ecs.World
	svc     engine.Services

	kit       *power.Kit
	bricks    *brick.Brick
	character *actor.Character
	enemies   *enemy.Group
	items     *item.Group
	hud       *hud.HUD
	flag      *Flag

	handles handles
	input   engine.Input
	outcome Outcome
}

func New(deps Deps) (*Scene, error) {
	if deps.Tuning == nil || deps.Level == nil || deps.World == nil || deps.NewSprite == nil {
		return nil, fmt.Errorf("scene: tuning, level, world and sprite factory are required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Scene{
		deps:    deps,
		level:   deps.Level,
		world:   deps.World,
		logger:  logger.Named("scene"),
		clock:   timing.NewClock(),
		tweens:  timing.NewTweens(),
		awards:  ecs.NewQueue[engine.Award](),
		systems: ecs.NewWorld(),
	}
	s.svc = engine.Services{
		World:   deps.World,
		Clock:   s.clock,
		Tweens:  s.tweens,
		Sound:   deps.Sound,
		Effects: deps.Effects,
		Camera:  deps.Camera,
		Awards:  s.awards,
		Logger:  logger,
	}

	carry := hud.State{Lives: deps.Config.Game.Lives}
	if deps.Carry != nil {
		carry = *deps.Carry
	}
	s.hud = hud.New(carry, s.awards, logger)

	tuning := deps.Tuning
	view := deps.Config.Viewport
	s.bricks = brick.New(tuning.Abilities.HitBrick, s.level, s.svc)
	s.kit = &power.Kit{
		Services:    s.svc,
		Abilities:   tuning.Abilities,
		DefaultSize: tuning.Character.DefaultSize,
		LargeSize:   tuning.Character.LargeSize,
		Level:       s.level,
		Bricks:      s.bricks,
		Spawner:     s,
	}
	s.enemies = enemy.NewGroup(enemy.Config{
		Spec:       tuning.Enemies,
		Services:   s.svc,
		NewSprite:  deps.NewSprite,
		ShellBrick: s.kit.HitBrick(engine.Left, engine.Right),
		ViewWidth:  float64(view.Width),
		ViewHeight: float64(view.Height),
	}, s.level.Spawns())
	s.kit.Enemies = s.enemies
	s.items = item.NewGroup(tuning.PowerUps, s.svc, deps.NewSprite, float64(view.Width), float64(view.Height))

	character, err := actor.New(actor.Options{
		Spec:      tuning.Character,
		Kit:       s.kit,
		Sprite:    deps.NewSprite(),
		FallLimit: s.level.PixelHeight(),
		OnDie:     s.decide,
	})
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	s.character = character

	if t := s.level.FindByIndex(levels.FlagTileIndex); t != nil {
		s.flag = newFlag(t.PixelX, s.level.PixelHeight(), s.svc)
	}

	s.setCamera()
	s.register()
	s.addSystems()
	s.hud.StartCountdown(s.clock, int(deps.Config.Game.PlayTime.Seconds()), s.timeUp)

	s.logger.Info("scene ready",
		zap.Int("spawns", len(s.level.Spawns())),
		zap.Int("lives", s.hud.Lives()),
		zap.Bool("flag", s.flag != nil),
	)
	return s, nil
}

// Sprites returns the sprites of every live owner: the character, active
// enemies, power-ups not yet gone and coins still spinning.
func (s *Scene) Sprites() []engine.Sprite {
	out := []engine.Sprite{s.character.Sprite()}
	for _, e := range s.enemies.Members() {
		out = append(out, e.Sprite())
	}
	for _, p := range s.items.Members() {
		if !p.Gone() {
			out = append(out, p.Sprite())
		}
	}
	for _, c := range s.items.Coins() {
		if !c.Done() {
			out = append(out, c.Sprite())
		}
	}
	return out
}

// setCamera bounds the camera to the leftmost room, or the whole level when
// the map has none.
func (s *Scene) setCamera() {
	if s.deps.Camera == nil {
		return
	}
	rooms := s.level.Rooms()
	if len(rooms) == 0 {
		s.deps.Camera.SetBounds(0, 0, s.level.PixelWidth(), s.level.PixelHeight())
		return
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].X < rooms[j].X })
	r := rooms[0]
	s.deps.Camera.SetBounds(r.X, r.Y, r.Width, r.Height)
}

func (s *Scene) addSystems() {
	s.systems.AddSystem(ecs.SystemFunc(func(dt float64) {
		s.clock.Update(dt)
		s.tweens.Update(dt)
		for _, sp := range s.Sprites() {
			if a, ok := sp.(animated); ok {
				a.Update(dt)
			}
		}
	}))
	s.systems.AddSystem(ecs.SystemFunc(func(dt float64) {
		s.character.Update(dt, s.input)
	}))
	s.systems.AddSystem(ecs.SystemFunc(func(dt float64) {
		x, y := s.character.Body().Position()
		s.enemies.Update(dt, x, y)
		s.items.Update(dt, x, y)
	}))
	s.systems.AddSystem(ecs.SystemFunc(func(float64) {
		s.hud.Update()
	}))
}

func (s *Scene) Character() *actor.Character { return s.character }
func (s *Scene) Enemies() *enemy.Group       { return s.enemies }
func (s *Scene) Items() *item.Group          { return s.items }
func (s *Scene) Bricks() *brick.Brick        { return s.bricks }
func (s *Scene) HUD() *hud.HUD               { return s.hud }
func (s *Scene) Flag() *Flag                 { return s.flag }
func (s *Scene) Outcome() Outcome            { return s.outcome }

// Carry returns the HUD state to hand to the next attempt.
func (s *Scene) Carry() hud.State { return s.hud.State() }

// Update runs one tick of game logic. The physics step follows separately and
// delivers contacts to the router callbacks.
func (s *Scene) Update(deltaMs float64, in engine.Input) Outcome {
	s.input = in
	s.systems.Update(deltaMs)
	return s.outcome
}

// decide picks the outcome once the death delay has elapsed.
func (s *Scene) decide() {
	s.hud.Update()
	if s.hud.Lives() <= 0 {
		s.finish(OutcomeGameOver)
		return
	}
	s.finish(OutcomeRestart)
}

func (s *Scene) finish(o Outcome) {
	if s.outcome != OutcomeNone {
		return
	}
	s.outcome = o
	s.hud.StopCountdown()
	s.logger.Info("attempt finished",
		zap.Stringer("outcome", o),
		zap.Int("score", s.hud.Score()),
		zap.Int("coins", s.hud.Coins()),
		zap.Int("lives", s.hud.Lives()),
	)
}

func (s *Scene) timeUp() {
	s.logger.Info("time up")
	s.character.Die()
}

// Destroy removes every collision check and detaches every ability of every
// actor.
func (s *Scene) Destroy() {
	for _, h := range []engine.Handle{
		s.handles.playerWorld,
		s.handles.playerEnemies,
		s.handles.enemiesWorld,
		s.handles.enemiesEach,
		s.handles.brickEnemies,
		s.handles.itemsWorld,
		s.handles.playerItems,
		s.handles.playerFlag,
	} {
		if h != 0 {
			s.world.RemoveCollider(h)
		}
	}
	s.handles = handles{}
	s.hud.StopCountdown()
	s.character.Destroy()
	s.enemies.Destroy()
	s.items.Destroy()
	s.bricks.Destroy()
	if s.flag != nil {
		s.flag.destroy(s.world)
	}
	s.clock.Reset()
	s.tweens.Reset()
	if s.world.Paused() {
		s.world.Resume()
	}
}
