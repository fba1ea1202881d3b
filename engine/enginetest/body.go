// Package enginetest provides in-memory engine collaborators for tests.
package enginetest

import "github.com/milk9111/platformer/engine"

// Body is a kinematic stand-in for a physics body. Sensor state is set by
// tests through the exported fields.
type Body struct {
	X, Y   float64
	W, H   float64
	VX, VY float64
	AX, AY float64
	MaxVX  float64
	MaxVY  float64
	BX, BY float64

	Gravity    bool
	IsEnabled  bool
	IsCollide  bool
	BlockedBy  engine.Dirs
	TouchingBy engine.Dirs
	OwnerValue any
	Destroyed  bool
	Stops      int
}

var _ engine.Body = (*Body)(nil)

// NewBody returns an enabled collidable body centred at (x, y).
func NewBody(x, y, w, h float64) *Body {
	return &Body{X: x, Y: y, W: w, H: h, IsEnabled: true, IsCollide: true}
}

func (b *Body) Position() (float64, float64) { return b.X, b.Y }
func (b *Body) SetPosition(x, y float64)     { b.X, b.Y = x, y }
func (b *Body) Size() (float64, float64)     { return b.W, b.H }

func (b *Body) SetSize(w, h float64) {
	bottom := b.Y + b.H/2
	b.W, b.H = w, h
	b.Y = bottom - h/2
}

func (b *Body) Velocity() (float64, float64)   { return b.VX, b.VY }
func (b *Body) SetVelocity(vx, vy float64)     { b.VX, b.VY = vx, vy }
func (b *Body) SetVelocityX(vx float64)        { b.VX = vx }
func (b *Body) SetVelocityY(vy float64)        { b.VY = vy }
func (b *Body) SetAcceleration(ax, ay float64) { b.AX, b.AY = ax, ay }
func (b *Body) SetMaxVelocity(mx, my float64)  { b.MaxVX, b.MaxVY = mx, my }
func (b *Body) SetBounce(bx, by float64)       { b.BX, b.BY = bx, by }
func (b *Body) SetGravity(enabled bool)        { b.Gravity = enabled }

func (b *Body) Stop() {
	b.VX, b.VY, b.AX, b.AY = 0, 0, 0, 0
	b.Stops++
}

func (b *Body) Blocked() engine.Dirs  { return b.BlockedBy }
func (b *Body) Touching() engine.Dirs { return b.TouchingBy }

func (b *Body) Enable()               { b.IsEnabled = true }
func (b *Body) Disable()              { b.IsEnabled = false }
func (b *Body) Enabled() bool         { return b.IsEnabled }
func (b *Body) SetCollidable(on bool) { b.IsCollide = on }
func (b *Body) Collidable() bool      { return b.IsCollide }
func (b *Body) Owner() any            { return b.OwnerValue }
