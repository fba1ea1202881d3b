// Package brick animates world tiles that are hit from below and breaks the
// destructible ones.
package brick

import (
	"go.uber.org/zap"

	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/engine"
	"github.com/milk9111/platformer/levels"
	"github.com/milk9111/platformer/prefabs"
	"github.com/milk9111/platformer/timing"
)

// Brick owns one sensor overlay that follows whichever tile is bumping, so
// enemies standing on the tile can be hit by it.
type Brick struct {
	spec    prefabs.HitBrickSpec
	level   *levels.Map
	world   engine.World
	tweens  engine.Tweener
	sound   engine.Sound
	effects engine.Effects
	logger  *zap.Logger

	body    engine.Body
	bumping map[*levels.Tile]engine.Tween
}

func New(spec prefabs.HitBrickSpec, level *levels.Map, svc engine.Services) *Brick {
	b := &Brick{
		spec:    spec,
		level:   level,
		world:   svc.World,
		tweens:  svc.Tweens,
		sound:   svc.Sound,
		effects: svc.Effects,
		logger:  svc.Log("brick"),
		bumping: make(map[*levels.Tile]engine.Tween),
	}
	b.body = svc.World.NewBody(engine.BodySpec{
		Width:  common.TileSize,
		Height: common.TileSize,
		Sensor: true,
		Owner:  b,
	})
	b.body.Disable()
	return b
}

func (b *Brick) Body() engine.Body { return b.body }

// Bodies lets the overlay take part in overlap checks.
func (b *Brick) Bodies() []engine.Body {
	return []engine.Body{b.body}
}

// Bumping reports whether tile is mid-bump.
func (b *Brick) Bumping(tile *levels.Tile) bool {
	_, ok := b.bumping[tile]
	return ok
}

// Bump raises tile by the bump height and drops it back. Removed tiles and
// tiles already bumping are ignored.
func (b *Brick) Bump(tile *levels.Tile) {
	if tile == nil || b.Bumping(tile) || b.level.TileAt(tile.X, tile.Y) != tile {
		return
	}
	x := tile.PixelX + common.TileSize/2
	base := tile.BaseY()
	b.body.SetPosition(x, base+common.TileSize/2)
	b.body.Enable()

	b.bumping[tile] = b.tweens.Tween(engine.TweenSpec{
		From:     base,
		To:       base - b.spec.BumpHeight,
		Duration: b.spec.BumpMs,
		Ease:     timing.CubicOut,
		Yoyo:     true,
		Set: func(v float64) {
			tile.PixelY = v
			b.body.SetPosition(x, v+common.TileSize/2)
		},
		OnComplete: func() {
			delete(b.bumping, tile)
			tile.PixelY = base
			if len(b.bumping) == 0 {
				b.body.Disable()
			}
		},
	})
}

// Break removes tile from the map with debris and sound.
func (b *Brick) Break(tile *levels.Tile) {
	if tile == nil {
		return
	}
	b.logger.Debug("break", zap.Int("x", tile.X), zap.Int("y", tile.Y))
	b.level.RemoveTileAt(tile.X, tile.Y)
	b.effects.Burst("brick", float64(tile.X*common.TileSize), float64(tile.Y*common.TileSize))
	b.sound.Play("smb_breakblock")
}

// Destroy stops running bumps and releases the overlay body.
func (b *Brick) Destroy() {
	for tile, tw := range b.bumping {
		tw.Stop()
		tile.PixelY = tile.BaseY()
	}
	clear(b.bumping)
	b.world.DestroyBody(b.body)
}
