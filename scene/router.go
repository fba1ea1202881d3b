package scene

import (
	"go.uber.org/zap"

	"github.com/milk9111/platformer/enemy"
	"github.com/milk9111/platformer/engine"
	"github.com/milk9111/platformer/item"
	"github.com/milk9111/platformer/levels"
	"github.com/milk9111/platformer/power"
)

// register installs the fixed set of collision checks.
func (s *Scene) register() {
	player := engine.Bodies(s.character.Body())

	s.handles.playerWorld = s.world.Collide(player, s.playerAlive, s.PlayerColliderWorld)
	s.handles.playerEnemies = s.world.Overlap(player, s.enemies, nil, s.PlayerOverlapEnemy)
	s.handles.enemiesWorld = s.world.Collide(s.enemies, enemyCollides, s.EnemyColliderWorld)
	s.handles.enemiesEach = s.world.Overlap(s.enemies, s.enemies, nil, s.EnemyOverlapEnemy)
	s.handles.brickEnemies = s.world.Overlap(s.bricks, s.enemies, nil, s.BrickColliderEnemy)
	s.handles.itemsWorld = s.world.Collide(s.items, nil, s.PowerUpColliderWorld)
	s.handles.playerItems = s.world.Overlap(player, s.items, s.canCollect, s.PlayerOverlapPowerUp)
	if s.flag != nil {
		s.handles.playerFlag = s.world.Overlap(player, s.flag, s.canGrabFlag, s.PlayerOverlapFlag)
	}
}

func (s *Scene) playerAlive(engine.Body, *levels.Tile) bool {
	return !s.character.Dead()
}

func enemyCollides(b engine.Body, _ *levels.Tile) bool {
	return b.Collidable()
}

func (s *Scene) canCollect(_, b engine.Body) bool {
	p, ok := b.Owner().(*item.PowerUp)
	return ok && p.Displayed() && !s.character.Dead()
}

func (s *Scene) canGrabFlag(engine.Body, engine.Body) bool {
	return !s.character.Dead() && !s.flag.Reached()
}

// SteppedOn reports whether player lands on top of other: touching below,
// other touching above and the player still moving vertically. The velocity
// check filters contacts where both touching flags are set from the side.
func SteppedOn(player, other engine.Body) bool {
	_, vy := player.Velocity()
	return player.Touching().Down && other.Touching().Up && vy != 0
}

// PlayerColliderWorld hands a tile contact to the character's abilities.
func (s *Scene) PlayerColliderWorld(_ engine.Body, t *levels.Tile) {
	s.character.ColliderWorld(t)
}

// PlayerOverlapEnemy resolves a character/enemy contact. Abilities go first,
// then the enemy's own reaction; otherwise a stomp bounces the character and
// any other harmful contact kills it unless protected.
func (s *Scene) PlayerOverlapEnemy(a, b engine.Body) {
	e, ok := b.Owner().(*enemy.Enemy)
	if !ok || e.Dead() || s.character.Dead() {
		return
	}
	stepped := SteppedOn(a, b)
	if s.character.OverlapEnemy(e, stepped) {
		return
	}
	if e.OverlapPlayer(s.character, stepped) {
		return
	}
	if stepped {
		s.character.Bounce()
		return
	}
	if !s.character.Protected() && e.Harmful() {
		s.character.Die()
	}
}

// EnemyColliderWorld hands a tile contact to the enemy's abilities.
func (s *Scene) EnemyColliderWorld(b engine.Body, t *levels.Tile) {
	if e, ok := b.Owner().(*enemy.Enemy); ok {
		e.ColliderWorld(t)
	}
}

// EnemyOverlapEnemy lets each enemy react to the other.
func (s *Scene) EnemyOverlapEnemy(a, b engine.Body) {
	ea, ok := a.Owner().(*enemy.Enemy)
	if !ok {
		return
	}
	eb, ok := b.Owner().(*enemy.Enemy)
	if !ok || ea == eb {
		return
	}
	ea.OverlapEnemy(eb)
	eb.OverlapEnemy(ea)
}

// BrickColliderEnemy knocks out an enemy standing on a bumped tile. Only a
// large character bumps hard enough.
func (s *Scene) BrickColliderEnemy(_, b engine.Body) {
	e, ok := b.Owner().(*enemy.Enemy)
	if !ok || e.Dead() {
		return
	}
	if s.character.Powers().Has(power.KindLarge) {
		e.Die(true)
	}
}

// PowerUpColliderWorld makes a power-up resting on a bumped tile hop.
func (s *Scene) PowerUpColliderWorld(b engine.Body, t *levels.Tile) {
	p, ok := b.Owner().(*item.PowerUp)
	if !ok {
		return
	}
	if b.Blocked().Down && s.bricks.Bumping(t) {
		p.Hop()
	}
}

// collectGrants maps power-up kinds to the ability they grant.
var collectGrants = map[string]power.Kind{
	item.KindMushroom: power.KindLarge,
	item.KindFlower:   power.KindFire,
	item.KindStar:     power.KindInvincible,
}

// PlayerOverlapPowerUp collects a power-up and grants its ability. A 1up only
// carries its award.
func (s *Scene) PlayerOverlapPowerUp(_, b engine.Body) {
	p, ok := b.Owner().(*item.PowerUp)
	if !ok || !p.Collect() {
		return
	}
	kind, ok := collectGrants[p.Kind()]
	if !ok {
		return
	}
	if err := s.character.Grant(kind, true); err != nil {
		s.logger.Error("grant power", zap.String("powerUp", p.Kind()), zap.Error(err))
	}
}

// SpawnPayload reveals what a question-mark tile holds. An empty payload or a
// coin spins a coin; a mushroom becomes a flower for a large character.
func (s *Scene) SpawnPayload(payload string, x, y float64) {
	switch payload {
	case "", levels.PayloadCoin:
		s.items.SpinCoin(x, y)
		return
	case levels.PayloadMushroom:
		if s.character.Powers().Has(power.KindLarge) {
			payload = item.KindFlower
		}
	}
	if _, err := s.items.Spawn(payload, x, y); err != nil {
		s.logger.Warn("payload skipped", zap.String("payload", payload), zap.Error(err))
	}
}

var _ power.Spawner = (*Scene)(nil)
