// Package power composes actor behavior from pluggable abilities.
//
// An ability implements Ability plus any of the hook interfaces (Attacher,
// Ticker, OverlapHandler, ContactHandler, Detacher). A Registry owned by one
// actor holds at most one ability per Kind and drives the hooks in the
// actor's allow-list order.
package power

import (
	"github.com/milk9111/platformer/engine"
	"github.com/milk9111/platformer/levels"
)

// Kind tags an ability.
type Kind int

const (
	KindMove Kind = iota
	KindJump
	KindInvincible
	KindFire
	KindLarge
	KindEnterPipe
	KindHitBrick
)

func (k Kind) String() string {
	switch k {
	case KindMove:
		return "move"
	case KindJump:
		return "jump"
	case KindInvincible:
		return "invincible"
	case KindFire:
		return "fire"
	case KindLarge:
		return "large"
	case KindEnterPipe:
		return "enterPipe"
	case KindHitBrick:
		return "hitBrick"
	}
	return "unknown"
}

// Allow-lists. Hook evaluation follows this order.
var (
	CharacterKinds = []Kind{KindMove, KindJump, KindInvincible, KindFire, KindLarge, KindEnterPipe, KindHitBrick}
	TurtleKinds    = []Kind{KindHitBrick}
)

// Variant selects the sprite set of the character.
type Variant string

const (
	VariantDefault Variant = "default"
	VariantLarge   Variant = "large"
	VariantFire    Variant = "fire"
)

// Anim returns the animation key of base for this variant.
func (v Variant) Anim(base string) string {
	switch v {
	case VariantLarge:
		return base + "Large"
	case VariantFire:
		return base + "Fire"
	}
	return base
}

// Target is an actor that owns a Registry.
type Target interface {
	Body() engine.Body
	Sprite() engine.Sprite
	Powers() *Registry
}

// Hero is the controllable Target.
type Hero interface {
	Target
	Variant() Variant
	SetVariant(v Variant)
	Protected() bool
	SetProtected(p bool)
}

// Foe is an enemy as seen by abilities.
type Foe interface {
	Body() engine.Body
	Dead() bool
	// Harmful reports attack power.
	Harmful() bool
	// Die kills the foe. Knocked deaths flip and fall; otherwise it is
	// squashed in place.
	Die(knocked bool)
}

// Contact is one tile contact together with the blocked sensors of the
// contacting body.
type Contact struct {
	Tile    *levels.Tile
	Blocked engine.Dirs
}

// Ability is the common part of every ability.
type Ability interface {
	Kind() Kind
}

// Attacher runs once right after the ability is stored.
type Attacher interface {
	Attach(t Target)
}

// Ticker runs once per tick while the owner is alive.
type Ticker interface {
	Tick(deltaMs float64, t Target, in engine.Input)
}

// OverlapHandler receives enemy contacts. Returning true consumes the event.
type OverlapHandler interface {
	OverlapEnemy(t Target, foe Foe, steppedOn bool) bool
}

// ContactHandler receives world contacts. Returning true consumes the event.
type ContactHandler interface {
	ContactWorld(t Target, c Contact) bool
}

// Detacher releases everything the ability holds. It runs exactly once on
// every removal path.
type Detacher interface {
	Detach(t Target)
}

// Spawner receives question-mark payloads. An empty payload is a coin.
type Spawner interface {
	SpawnPayload(payload string, x, y float64)
}

// Bricks animates and breaks world tiles.
type Bricks interface {
	Bump(tile *levels.Tile)
	Break(tile *levels.Tile)
	Bumping(tile *levels.Tile) bool
}

func held(in engine.Input, b engine.Button) bool {
	return in != nil && in.Down(b)
}
