package enemy

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/engine"
	"github.com/milk9111/platformer/levels"
	"github.com/milk9111/platformer/power"
	"github.com/milk9111/platformer/prefabs"
)

// Config wires a Group.
type Config struct {
	Spec     *prefabs.EnemiesSpec
	Services engine.Services
	// NewSprite builds the sprite of a newly constructed enemy.
	NewSprite func() engine.Sprite
	// ShellBrick builds the HitBrick a kicked shell carries.
	ShellBrick power.Factory
	// View is the viewport size in pixels.
	ViewWidth  float64
	ViewHeight float64
}

// Group materializes enemies from level spawns as the anchor approaches,
// culls the ones that drift too far away and recycles removed enemies.
type Group struct {
	cfg    Config
	world  engine.World
	logger *zap.Logger

	spawns  []levels.Spawn
	ids     *ecs.World
	active  ecs.SparseSet[*Enemy]
	pool    []*Enemy
	pending []*Enemy
	busy    bool
}

var _ engine.Group = (*Group)(nil)

func NewGroup(cfg Config, spawns []levels.Spawn) *Group {
	return &Group{
		cfg:    cfg,
		world:  cfg.Services.World,
		logger: cfg.Services.Log("enemies"),
		spawns: append([]levels.Spawn(nil), spawns...),
		ids:    ecs.NewWorld(),
	}
}

// Bodies returns the bodies of active members.
func (g *Group) Bodies() []engine.Body {
	out := make([]engine.Body, 0, g.active.Len())
	for _, e := range g.active.Values() {
		out = append(out, e.body)
	}
	return out
}

// Members returns the active enemies.
func (g *Group) Members() []*Enemy {
	return g.active.Values()
}

// Pooled returns how many removed enemies wait for reuse.
func (g *Group) Pooled() int { return len(g.pool) }

// Waiting returns the spawns not materialized yet.
func (g *Group) Waiting() []levels.Spawn {
	return append([]levels.Spawn(nil), g.spawns...)
}

// Spawn puts an enemy of kind at (x, y), reusing a pooled one when possible.
func (g *Group) Spawn(kind string, x, y float64) (*Enemy, error) {
	if _, ok := g.cfg.Spec.Kinds[kind]; !ok {
		return nil, fmt.Errorf("enemy: unknown kind %q", kind)
	}
	var e *Enemy
	for i, p := range g.pool {
		if p.kind == kind {
			e = p
			g.pool = append(g.pool[:i], g.pool[i+1:]...)
			break
		}
	}
	if e == nil {
		e = newEnemy(kind, g.cfg.Spec, g.cfg.NewSprite(), g.cfg.ShellBrick, g.cfg.Services)
		g.logger.Debug("enemy created", zap.Stringer("id", e.ID), zap.String("kind", kind))
	} else {
		g.logger.Debug("enemy recycled", zap.Stringer("id", e.ID), zap.String("kind", kind))
	}
	e.Restore(x, y)
	e.entity = g.ids.CreateEntity()
	g.active.Set(e.entity, e)
	return e, nil
}

// Remove moves e from the active group into the pool. During Update the
// move is deferred until the pass ends.
func (g *Group) Remove(e *Enemy) {
	if e == nil || !g.active.Has(e.entity) {
		return
	}
	if g.busy {
		g.pending = append(g.pending, e)
		return
	}
	g.recycle(e)
}

func (g *Group) recycle(e *Enemy) {
	if !g.active.Remove(e.entity) {
		return
	}
	g.ids.DestroyEntity(e.entity)
	e.entity = 0
	g.pool = append(g.pool, e)
}

// Update materializes spawns within one viewport width of the anchor, culls
// members beyond half the viewport plus the margin and returns finished ones
// to the pool.
func (g *Group) Update(deltaMs float64, anchorX, anchorY float64) {
	kept := g.spawns[:0]
	for _, s := range g.spawns {
		if math.Abs(anchorX-s.X) >= g.cfg.ViewWidth {
			kept = append(kept, s)
			continue
		}
		if _, err := g.Spawn(s.Kind, s.X, s.Y); err != nil {
			g.logger.Warn("spawn skipped", zap.Error(err))
		}
	}
	g.spawns = kept

	limitX := g.cfg.Spec.CullMargin.X + g.cfg.ViewWidth/2
	limitY := g.cfg.Spec.CullMargin.Y + g.cfg.ViewHeight/2
	g.busy = true
	for _, e := range g.active.Values() {
		if !e.Active() {
			g.Remove(e)
			continue
		}
		x, y := e.body.Position()
		if math.Abs(anchorX-x) > limitX || math.Abs(anchorY-y) > limitY {
			g.logger.Debug("enemy culled", zap.Stringer("id", e.ID), zap.Float64("x", x), zap.Float64("y", y))
			e.killAndHide()
			g.Remove(e)
			continue
		}
		e.Update(deltaMs)
	}
	g.busy = false

	for _, e := range g.pending {
		g.recycle(e)
	}
	g.pending = g.pending[:0]
}

// Destroy releases every enemy body.
func (g *Group) Destroy() {
	for _, e := range g.active.Values() {
		e.destroy(g.world)
	}
	for _, e := range g.pool {
		e.destroy(g.world)
	}
	g.active.Clear()
	g.pool = nil
	g.pending = nil
}
