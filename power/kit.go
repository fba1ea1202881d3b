package power

import (
	"github.com/milk9111/platformer/engine"
	"github.com/milk9111/platformer/levels"
	"github.com/milk9111/platformer/prefabs"
)

// Kit builds ability factories from the collaborators shared by one scene.
type Kit struct {
	Services    engine.Services
	Abilities   *prefabs.AbilitiesSpec
	DefaultSize prefabs.SizeSpec
	LargeSize   prefabs.SizeSpec
	Level       *levels.Map
	Bricks      Bricks
	Spawner     Spawner
	Enemies     engine.Group
}

// Factory returns the factory for kind. HitBrick built here only reacts to
// head bumps; use HitBrick for other directions.
func (k *Kit) Factory(kind Kind) Factory {
	switch kind {
	case KindMove:
		return func() Ability { return NewMove(k.Abilities.Move) }
	case KindJump:
		return func() Ability { return NewJump(k.Abilities.Jump, k.Services.Sound) }
	case KindInvincible:
		return func() Ability { return NewInvincible(k.Abilities.Invincible) }
	case KindFire:
		return func() Ability { return NewFire(k.Abilities.Fire, k.Services, k.Enemies) }
	case KindLarge:
		return func() Ability { return NewLarge(k.Abilities.Large, k.DefaultSize, k.LargeSize, k.Services) }
	case KindEnterPipe:
		return func() Ability { return NewEnterPipe(k.Abilities.EnterPipe, k.Services, k.Level) }
	case KindHitBrick:
		return k.HitBrick(engine.Up)
	}
	return nil
}

// HitBrick returns a HitBrick factory for the given directions.
func (k *Kit) HitBrick(directions ...engine.Direction) Factory {
	return func() Ability {
		return NewHitBrick(directions, k.Level, k.Bricks, k.Spawner, k.Services)
	}
}
