package physics

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/engine"
)

// Body is a dynamic Chipmunk body with arcade-style controls layered on top:
// acceleration, per-axis max velocity, per-axis bounce and a gravity toggle.
type Body struct {
	world *World
	id    uint64

	body  *cp.Body
	shape *cp.Shape
	w, h  float64

	ax, ay           float64
	maxVX, maxVY     float64
	bounceX, bounceY float64
	gravity          bool
	sensor           bool

	collidable bool
	enabled    bool
	destroyed  bool

	blocked  engine.Dirs
	touching engine.Dirs

	preVX, preVY float64
	owner        any
}

func newBody(w *World, id uint64, spec engine.BodySpec) *Body {
	b := &Body{
		world:      w,
		id:         id,
		w:          spec.Width,
		h:          spec.Height,
		gravity:    spec.Gravity,
		sensor:     spec.Sensor,
		collidable: true,
		owner:      spec.Owner,
	}
	b.body = cp.NewBody(1, math.Inf(1))
	b.body.SetAngle(0)
	b.body.SetAngularVelocity(0)
	b.body.SetPosition(cp.Vector{X: spec.X, Y: spec.Y})
	b.body.UserData = b
	b.body.SetVelocityUpdateFunc(func(body *cp.Body, gravity cp.Vector, damping float64, dt float64) {
		g := cp.Vector{X: b.ax, Y: b.ay}
		if b.gravity {
			g = g.Add(gravity)
		}
		cp.BodyUpdateVelocity(body, g, damping, dt)
		v := body.Velocity()
		if b.maxVX > 0 {
			v.X = common.Clamp(v.X, -b.maxVX, b.maxVX)
		}
		if b.maxVY > 0 {
			v.Y = common.Clamp(v.Y, -b.maxVY, b.maxVY)
		}
		body.SetVelocityVector(v)
	})
	b.shape = b.newShape()
	return b
}

func (b *Body) newShape() *cp.Shape {
	shape := cp.NewBox(b.body, b.w, b.h, 0)
	shape.SetFriction(0)
	shape.SetElasticity(0)
	shape.SetCollisionType(collisionTypeBody)
	shape.UserData = b
	b.applyFilter(shape)
	return shape
}

func (b *Body) applyFilter(shape *cp.Shape) {
	if b.sensor || !b.collidable {
		shape.SetFilter(cp.NewShapeFilter(0, categoryBody, 0))
		return
	}
	shape.SetFilter(cp.NewShapeFilter(0, categoryBody, categoryTile))
}

func (b *Body) Position() (float64, float64) {
	p := b.body.Position()
	return p.X, p.Y
}

func (b *Body) SetPosition(x, y float64) {
	b.body.SetPosition(cp.Vector{X: x, Y: y})
}

func (b *Body) Size() (float64, float64) {
	return b.w, b.h
}

// SetSize swaps the collision box, keeping the bottom edge in place.
func (b *Body) SetSize(w, h float64) {
	if w == b.w && h == b.h {
		return
	}
	x, y := b.Position()
	bottom := y + b.h/2
	inSpace := b.enabled && !b.destroyed
	if inSpace {
		b.world.space.RemoveShape(b.shape)
	}
	b.w, b.h = w, h
	b.shape = b.newShape()
	b.SetPosition(x, bottom-h/2)
	if inSpace {
		b.world.space.AddShape(b.shape)
	}
}

func (b *Body) Velocity() (float64, float64) {
	v := b.body.Velocity()
	return v.X, v.Y
}

func (b *Body) SetVelocity(vx, vy float64) {
	b.body.SetVelocity(vx, vy)
}

func (b *Body) SetVelocityX(vx float64) {
	v := b.body.Velocity()
	b.body.SetVelocity(vx, v.Y)
}

func (b *Body) SetVelocityY(vy float64) {
	v := b.body.Velocity()
	b.body.SetVelocity(v.X, vy)
}

func (b *Body) SetAcceleration(ax, ay float64) {
	b.ax, b.ay = ax, ay
}

// SetMaxVelocity clamps speed per axis. Zero means unlimited.
func (b *Body) SetMaxVelocity(mx, my float64) {
	b.maxVX, b.maxVY = mx, my
}

func (b *Body) SetBounce(bx, by float64) {
	b.bounceX, b.bounceY = bx, by
}

func (b *Body) SetGravity(enabled bool) {
	b.gravity = enabled
}

// Stop zeroes velocity and acceleration.
func (b *Body) Stop() {
	b.ax, b.ay = 0, 0
	b.body.SetVelocityVector(cp.Vector{})
}

func (b *Body) Blocked() engine.Dirs  { return b.blocked }
func (b *Body) Touching() engine.Dirs { return b.touching }

func (b *Body) Enable() {
	if b.enabled || b.destroyed {
		return
	}
	b.enabled = true
	b.world.space.AddBody(b.body)
	b.world.space.AddShape(b.shape)
}

func (b *Body) Disable() {
	if !b.enabled {
		return
	}
	b.enabled = false
	b.blocked = engine.Dirs{}
	b.touching = engine.Dirs{}
	b.world.space.RemoveShape(b.shape)
	b.world.space.RemoveBody(b.body)
}

func (b *Body) Enabled() bool {
	return b.enabled
}

func (b *Body) SetCollidable(on bool) {
	b.collidable = on
	b.applyFilter(b.shape)
}

func (b *Body) Collidable() bool {
	return b.collidable
}

func (b *Body) Owner() any {
	return b.owner
}

func (b *Body) bounds() (x, y, w, h float64) {
	cx, cy := b.Position()
	return cx - b.w/2, cy - b.h/2, b.w, b.h
}

func (b *Body) applyBounce() {
	v := b.body.Velocity()
	changed := false
	if b.bounceY > 0 {
		if (b.blocked.Down && b.preVY > 0) || (b.blocked.Up && b.preVY < 0) {
			v.Y = -b.preVY * b.bounceY
			changed = true
		}
	}
	if b.bounceX > 0 {
		if (b.blocked.Right && b.preVX > 0) || (b.blocked.Left && b.preVX < 0) {
			v.X = -b.preVX * b.bounceX
			changed = true
		}
	}
	if changed {
		b.body.SetVelocityVector(v)
	}
}
