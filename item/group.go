package item

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/engine"
	"github.com/milk9111/platformer/prefabs"
)

// Group holds the live power-ups and coin spins of a scene. Power-ups that
// drift beyond the cull margin plus one viewport are destroyed, not pooled.
type Group struct {
	spec       *prefabs.PowerUpsSpec
	svc        engine.Services
	newSprite  func() engine.Sprite
	viewWidth  float64
	viewHeight float64
	logger     *zap.Logger

	ids   *ecs.World
	items ecs.SparseSet[*PowerUp]
	coins []*CoinSpin
}

var _ engine.Group = (*Group)(nil)

func NewGroup(spec *prefabs.PowerUpsSpec, svc engine.Services, newSprite func() engine.Sprite, viewWidth, viewHeight float64) *Group {
	return &Group{
		spec:       spec,
		svc:        svc,
		newSprite:  newSprite,
		viewWidth:  viewWidth,
		viewHeight: viewHeight,
		logger:     svc.Log("powerups"),
		ids:        ecs.NewWorld(),
	}
}

// Spawn reveals a power-up of kind whose final centre is (x, y).
func (g *Group) Spawn(kind string, x, y float64) (*PowerUp, error) {
	if _, ok := g.spec.Kinds[kind]; !ok {
		return nil, fmt.Errorf("item: unknown power-up %q", kind)
	}
	p := newPowerUp(kind, g.spec, x, y, g.newSprite(), g.svc)
	p.entity = g.ids.CreateEntity()
	g.items.Set(p.entity, p)
	g.logger.Debug("power-up spawned", zap.String("kind", kind), zap.Float64("x", x), zap.Float64("y", y))
	return p, nil
}

// SpinCoin starts a coin spin at (x, y).
func (g *Group) SpinCoin(x, y float64) *CoinSpin {
	c := SpinCoin(g.spec.Coin, x, y, g.newSprite(), g.svc, nil)
	g.coins = append(g.coins, c)
	return c
}

// Bodies returns the bodies of live power-ups.
func (g *Group) Bodies() []engine.Body {
	out := make([]engine.Body, 0, g.items.Len())
	for _, p := range g.items.Values() {
		out = append(out, p.body)
	}
	return out
}

// Members returns the live power-ups.
func (g *Group) Members() []*PowerUp {
	return g.items.Values()
}

// Coins returns the coin spins still rising.
func (g *Group) Coins() []*CoinSpin {
	return append([]*CoinSpin(nil), g.coins...)
}

// Update drops collected power-ups, destroys the ones out of range of the
// anchor and forgets finished coin spins.
func (g *Group) Update(deltaMs float64, anchorX, anchorY float64) {
	limitX := g.spec.CullMargin.X + g.viewWidth/2
	limitY := g.spec.CullMargin.Y + g.viewHeight/2
	for _, p := range g.items.Values() {
		if !p.gone {
			x, y := p.body.Position()
			if math.Abs(anchorX-x) > limitX || math.Abs(anchorY-y) > limitY {
				g.logger.Debug("power-up culled", zap.String("kind", p.kind))
				p.destroy()
			}
		}
		if p.gone {
			g.items.Remove(p.entity)
			g.ids.DestroyEntity(p.entity)
			continue
		}
		p.Update(deltaMs)
	}

	kept := g.coins[:0]
	for _, c := range g.coins {
		if !c.done {
			kept = append(kept, c)
		}
	}
	for i := len(kept); i < len(g.coins); i++ {
		g.coins[i] = nil
	}
	g.coins = kept
}

// Destroy removes every power-up.
func (g *Group) Destroy() {
	for _, p := range g.items.Values() {
		p.destroy()
	}
	g.items.Clear()
	g.coins = nil
}
