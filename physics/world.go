package physics

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/engine"
	"github.com/milk9111/platformer/levels"
	"go.uber.org/zap"
)

const (
	collisionTypeTile cp.CollisionType = iota + 1
	collisionTypeBody
)

const (
	categoryTile uint = 1 << iota
	categoryBody
)

type registration struct {
	handle engine.Handle

	group        engine.Group
	tileProcess  engine.TileProcess
	tileCallback engine.TileCallback

	other           engine.Group
	overlap         bool
	overlapProcess  engine.OverlapProcess
	overlapCallback engine.OverlapCallback

	contacts []tileContact
}

type tileContact struct {
	body *Body
	tile *levels.Tile
}

// World owns the Chipmunk space, one static box per collidable tile and the
// registered colliders. Contact callbacks are queued during the step and
// delivered after it, in registration order.
type World struct {
	space  *cp.Space
	level  *levels.Map
	logger *zap.Logger

	tiles  map[*levels.Tile]*cp.Shape
	bodies []*Body
	nextID uint64

	regs       map[engine.Handle]*registration
	order      []engine.Handle
	nextHandle engine.Handle
	membership map[*Body][]*registration

	paused bool
}

// NewWorld creates a physics world for a level and keeps its static shapes
// in sync with tile changes.
func NewWorld(level *levels.Map, gravity float64, logger *zap.Logger) *World {
	if logger == nil {
		logger = zap.NewNop()
	}
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: gravity})

	w := &World{
		space:  space,
		level:  level,
		logger: logger.Named("physics"),
		tiles:  make(map[*levels.Tile]*cp.Shape),
		regs:   make(map[engine.Handle]*registration),
	}
	w.setupHandlers()
	if level != nil {
		for _, t := range level.Tiles() {
			w.syncTile(t)
		}
		level.Watch(w.syncTile)
	}
	return w
}

// Space returns the underlying Chipmunk space.
func (w *World) Space() *cp.Space {
	if w == nil {
		return nil
	}
	return w.space
}

func (w *World) syncTile(t *levels.Tile) {
	if w == nil || t == nil {
		return
	}
	shape, has := w.tiles[t]
	want := t.Collides && w.level.TileAt(t.X, t.Y) == t
	switch {
	case want && !has:
		size := float64(common.TileSize)
		bb := cp.BB{L: t.PixelX, B: t.PixelY, R: t.PixelX + size, T: t.PixelY + size}
		shape = cp.NewBox2(w.space.StaticBody, bb, 0)
		shape.SetFriction(0)
		shape.SetElasticity(0)
		shape.SetCollisionType(collisionTypeTile)
		shape.SetFilter(cp.NewShapeFilter(0, categoryTile, categoryBody))
		shape.UserData = t
		w.space.AddShape(shape)
		w.tiles[t] = shape
	case !want && has:
		w.space.RemoveShape(shape)
		delete(w.tiles, t)
	}
}

func (w *World) setupHandlers() {
	handler := w.space.NewCollisionHandler(collisionTypeBody, collisionTypeTile)
	handler.UserData = w
	handler.PreSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		world, ok := userData.(*World)
		if !ok || world == nil {
			return true
		}
		shapeA, shapeB := arb.Shapes()
		n := arb.Normal()
		body, okA := shapeA.UserData.(*Body)
		tile, okB := shapeB.UserData.(*levels.Tile)
		if !okA || !okB {
			body, okA = shapeB.UserData.(*Body)
			tile, okB = shapeA.UserData.(*levels.Tile)
			if !okA || !okB {
				return true
			}
			n = n.Neg()
		}
		return world.preSolve(body, tile, n)
	}
}

func (w *World) preSolve(b *Body, t *levels.Tile, n cp.Vector) bool {
	if !t.Collides || !b.enabled {
		return false
	}
	accepted := false
	for _, reg := range w.membership[b] {
		if reg.tileProcess != nil && !reg.tileProcess(b, t) {
			continue
		}
		accepted = true
		reg.contacts = append(reg.contacts, tileContact{body: b, tile: t})
	}
	if !accepted {
		return false
	}
	switch {
	case n.Y > 0.5:
		b.blocked.Down = true
	case n.Y < -0.5:
		b.blocked.Up = true
	case n.X > 0.5:
		b.blocked.Right = true
	case n.X < -0.5:
		b.blocked.Left = true
	}
	return true
}

// NewBody creates and enables a body.
func (w *World) NewBody(spec engine.BodySpec) engine.Body {
	w.nextID++
	b := newBody(w, w.nextID, spec)
	b.Enable()
	w.bodies = append(w.bodies, b)
	return b
}

// DestroyBody removes a body permanently.
func (w *World) DestroyBody(eb engine.Body) {
	b, ok := eb.(*Body)
	if !ok || b == nil || b.destroyed {
		return
	}
	b.Disable()
	b.destroyed = true
	for i, other := range w.bodies {
		if other == b {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			break
		}
	}
}

// Collide registers a body-versus-tile check for every body in g.
func (w *World) Collide(g engine.Group, process engine.TileProcess, fn engine.TileCallback) engine.Handle {
	return w.register(&registration{group: g, tileProcess: process, tileCallback: fn})
}

// Overlap registers a body-versus-body overlap check. Passing the same group
// twice checks each unordered pair once.
func (w *World) Overlap(a, b engine.Group, process engine.OverlapProcess, fn engine.OverlapCallback) engine.Handle {
	return w.register(&registration{group: a, other: b, overlap: true, overlapProcess: process, overlapCallback: fn})
}

func (w *World) register(reg *registration) engine.Handle {
	w.nextHandle++
	reg.handle = w.nextHandle
	w.regs[reg.handle] = reg
	w.order = append(w.order, reg.handle)
	return reg.handle
}

// RemoveCollider unregisters a check. Queued contacts for it are dropped.
func (w *World) RemoveCollider(h engine.Handle) {
	if _, ok := w.regs[h]; !ok {
		return
	}
	w.logger.Debug("collider removed", zap.Uint64("handle", uint64(h)))
	delete(w.regs, h)
	for i, other := range w.order {
		if other == h {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
}

func (w *World) Pause()       { w.paused = true }
func (w *World) Resume()      { w.paused = false }
func (w *World) Paused() bool { return w.paused }

// Colliders returns the number of registered checks.
func (w *World) Colliders() int {
	return len(w.regs)
}

// Bodies returns every live body.
func (w *World) Bodies() []*Body {
	return append([]*Body(nil), w.bodies...)
}

// Step advances the simulation by dt seconds, then delivers tile contacts
// and overlaps for each registration in order.
func (w *World) Step(dt float64) {
	if w == nil || w.paused {
		return
	}
	w.membership = make(map[*Body][]*registration)
	for _, h := range w.order {
		reg := w.regs[h]
		reg.contacts = reg.contacts[:0]
		if reg.overlap {
			continue
		}
		for _, eb := range groupBodies(reg.group) {
			w.membership[eb] = append(w.membership[eb], reg)
		}
	}
	for _, b := range w.bodies {
		b.blocked = engine.Dirs{}
		b.touching = engine.Dirs{}
		b.preVX, b.preVY = b.Velocity()
	}

	w.space.Step(dt)

	for _, b := range w.bodies {
		if b.enabled {
			b.applyBounce()
		}
	}

	for _, h := range append([]engine.Handle(nil), w.order...) {
		reg, ok := w.regs[h]
		if !ok {
			continue
		}
		if reg.overlap {
			w.dispatchOverlaps(reg)
			continue
		}
		contacts := reg.contacts
		reg.contacts = nil
		for _, c := range contacts {
			if _, live := w.regs[h]; !live {
				break
			}
			if !c.body.enabled || reg.tileCallback == nil {
				continue
			}
			reg.tileCallback(c.body, c.tile)
		}
	}
}

type pair struct {
	a, b *Body
}

func (w *World) dispatchOverlaps(reg *registration) {
	left := groupBodies(reg.group)
	right := groupBodies(reg.other)
	seen := make(map[[2]uint64]bool)
	var pairs []pair
	for _, a := range left {
		for _, b := range right {
			if a == b || !overlapping(a, b) {
				continue
			}
			key := [2]uint64{a.id, b.id}
			if key[0] > key[1] {
				key[0], key[1] = key[1], key[0]
			}
			if seen[key] {
				continue
			}
			seen[key] = true
			pairs = append(pairs, pair{a, b})
		}
	}
	for _, p := range pairs {
		if _, live := w.regs[reg.handle]; !live {
			return
		}
		if !overlapping(p.a, p.b) {
			continue
		}
		if reg.overlapProcess != nil && !reg.overlapProcess(p.a, p.b) {
			continue
		}
		setTouching(p.a, p.b)
		if reg.overlapCallback != nil {
			reg.overlapCallback(p.a, p.b)
		}
	}
}

func groupBodies(g engine.Group) []*Body {
	if g == nil {
		return nil
	}
	src := g.Bodies()
	out := make([]*Body, 0, len(src))
	for _, eb := range src {
		if b, ok := eb.(*Body); ok && b != nil && b.enabled && !b.destroyed {
			out = append(out, b)
		}
	}
	return out
}

func overlapping(a, b *Body) bool {
	if !a.enabled || !b.enabled || !a.collidable || !b.collidable {
		return false
	}
	ax, ay, aw, ah := a.bounds()
	bx, by, bw, bh := b.bounds()
	return common.Intersects(ax, ay, aw, ah, bx, by, bw, bh)
}

// setTouching raises touching flags on the axis of least penetration.
func setTouching(a, b *Body) {
	ax, ay, aw, ah := a.bounds()
	bx, by, bw, bh := b.bounds()
	overlapX := min(ax+aw, bx+bw) - max(ax, bx)
	overlapY := min(ay+ah, by+bh) - max(ay, by)
	if overlapY <= overlapX {
		if ay+ah/2 < by+bh/2 {
			a.touching.Down = true
			b.touching.Up = true
		} else {
			a.touching.Up = true
			b.touching.Down = true
		}
		return
	}
	if ax+aw/2 < bx+bw/2 {
		a.touching.Right = true
		b.touching.Left = true
	} else {
		a.touching.Left = true
		b.touching.Right = true
	}
}
