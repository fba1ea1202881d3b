package power

import (
	"math"

	"go.uber.org/zap"

	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/engine"
	"github.com/milk9111/platformer/levels"
)

// HitBrick fires tile reactions when its owner is blocked in one of the
// configured directions. Up is a head bump; Left and Right are lateral hits.
type HitBrick struct {
	directions []engine.Direction
	level      *levels.Map
	bricks     Bricks
	spawner    Spawner
	sound      engine.Sound
	logger     *zap.Logger
}

type reaction func(h *HitBrick, t Target, tile *levels.Tile)

var reactions = map[levels.Reaction]reaction{
	levels.ReactionBreakable:    (*HitBrick).breakable,
	levels.ReactionQuestionMark: (*HitBrick).questionMark,
}

func NewHitBrick(directions []engine.Direction, level *levels.Map, bricks Bricks, spawner Spawner, svc engine.Services) *HitBrick {
	return &HitBrick{
		directions: append([]engine.Direction(nil), directions...),
		level:      level,
		bricks:     bricks,
		spawner:    spawner,
		sound:      svc.Sound,
		logger:     svc.Log("hitbrick"),
	}
}

func (h *HitBrick) Kind() Kind { return KindHitBrick }

func (h *HitBrick) hits(d engine.Direction) bool {
	for _, dir := range h.directions {
		if dir == d {
			return true
		}
	}
	return false
}

func (h *HitBrick) ContactWorld(t Target, c Contact) bool {
	if c.Tile == nil {
		return false
	}
	for _, d := range h.directions {
		if !c.Blocked.Has(d) {
			continue
		}
		if d == engine.Up {
			h.verticalHit(t, c.Tile)
		} else {
			h.lateralHit(t, c.Tile, d)
		}
	}
	return false
}

func (h *HitBrick) verticalHit(t Target, tile *levels.Tile) {
	body := t.Body()
	if tile.BaseY() >= engine.TopEdge(body) {
		return
	}
	target := NearestTile(h.level, tile, engine.Up, body)
	if target.Reaction == levels.ReactionNone || h.bricks.Bumping(target) {
		return
	}
	if h.react(t, target) {
		h.bricks.Bump(target)
	}
}

func (h *HitBrick) lateralHit(t Target, tile *levels.Tile, d engine.Direction) {
	body := t.Body()
	top := tile.BaseY()
	if top >= engine.BottomEdge(body) || top+common.TileSize <= engine.TopEdge(body) {
		return
	}
	x, _ := body.Position()
	centre := tile.PixelX + common.TileSize/2
	if (d == engine.Right && centre < x) || (d == engine.Left && centre > x) {
		return
	}
	h.react(t, NearestTile(h.level, tile, d, body))
}

func (h *HitBrick) react(t Target, tile *levels.Tile) bool {
	fn, ok := reactions[tile.Reaction]
	if !ok {
		return false
	}
	h.logger.Debug("tile reaction",
		zap.Stringer("reaction", tile.Reaction),
		zap.Int("x", tile.X),
		zap.Int("y", tile.Y),
	)
	fn(h, t, tile)
	return true
}

func (h *HitBrick) breakable(t Target, tile *levels.Tile) {
	if t.Powers().Has(KindLarge) || !h.hits(engine.Up) {
		h.bricks.Break(tile)
		return
	}
	h.sound.Play("smb_bump")
}

// questionMark counts down a multi-hit tile and turns it into the used block
// once spent. A tile without a count is spent on the first hit.
func (h *HitBrick) questionMark(_ Target, tile *levels.Tile) {
	if tile.HitNumber > 0 {
		tile.HitNumber--
		tile.Props["hitNumber"] = tile.HitNumber
	}
	if tile.HitNumber == 0 {
		h.level.SetCollision(tile, true)
		tile.MarkUsed()
		delete(tile.Props, "callback")
	}
	h.spawner.SpawnPayload(tile.PowerUp, tile.PixelX+8, tile.BaseY()-10)
}

// NearestTile resolves a contact at a tile boundary. The neighbour past tile
// (to the right for vertical hits, below for lateral hits) wins when it has
// a reaction and lies closer to the body's leading edge.
func NearestTile(m *levels.Map, tile *levels.Tile, hit engine.Direction, body engine.Body) *levels.Tile {
	var next *levels.Tile
	var edge, here, there float64
	if hit.Vertical() {
		next = m.TileAt(tile.X+1, tile.Y)
		if next == nil {
			return tile
		}
		edge, here, there = engine.LeftEdge(body), tile.PixelX, next.PixelX
	} else {
		next = m.TileAt(tile.X, tile.Y+1)
		if next == nil {
			return tile
		}
		edge, here, there = engine.TopEdge(body), tile.BaseY(), next.BaseY()
	}
	if next.Reaction == levels.ReactionNone {
		return tile
	}
	if math.Abs(edge-there) < math.Abs(edge-here) {
		return next
	}
	return tile
}
