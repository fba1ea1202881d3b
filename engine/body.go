package engine

import "github.com/milk9111/platformer/levels"

// BodySpec describes a body to create. Positions are body centres.
type BodySpec struct {
	X, Y          float64
	Width, Height float64
	Gravity       bool
	// Sensor bodies never collide with tiles; they only take part in overlaps.
	Sensor bool
	Owner  any
}

// Body is a physical body owned by one entity.
type Body interface {
	Position() (x, y float64)
	SetPosition(x, y float64)
	// Size returns the collision box. Resizing keeps the bottom edge in place.
	Size() (w, h float64)
	SetSize(w, h float64)

	Velocity() (vx, vy float64)
	SetVelocity(vx, vy float64)
	SetVelocityX(vx float64)
	SetVelocityY(vy float64)
	SetAcceleration(ax, ay float64)
	SetMaxVelocity(mx, my float64)
	SetBounce(bx, by float64)
	SetGravity(enabled bool)
	Stop()

	// Blocked is set by tile contacts during the last step.
	Blocked() Dirs
	// Touching is set by body overlaps during the last step.
	Touching() Dirs

	Enable()
	Disable()
	Enabled() bool
	// SetCollidable toggles participation in tile collisions and overlaps
	// without disabling integration.
	SetCollidable(on bool)
	Collidable() bool

	Owner() any
}

// Group is anything that can enumerate bodies for collision registration.
type Group interface {
	Bodies() []Body
}

// BodyList is a fixed group of bodies.
type BodyList struct {
	list []Body
}

// Bodies wraps individual bodies as a Group.
func Bodies(bodies ...Body) *BodyList {
	return &BodyList{list: bodies}
}

func (l *BodyList) Bodies() []Body {
	if l == nil {
		return nil
	}
	return l.list
}

// Add appends a body to the list.
func (l *BodyList) Add(b Body) {
	l.list = append(l.list, b)
}

// Handle identifies a registered collider or overlap check.
type Handle uint64

type (
	TileProcess     func(b Body, t *levels.Tile) bool
	TileCallback    func(b Body, t *levels.Tile)
	OverlapProcess  func(a, b Body) bool
	OverlapCallback func(a, b Body)
)

// World is the physics collaborator. Callbacks registered with Collide and
// Overlap are delivered after the step that produced them.
type World interface {
	NewBody(spec BodySpec) Body
	DestroyBody(b Body)

	Collide(g Group, process TileProcess, fn TileCallback) Handle
	Overlap(a, b Group, process OverlapProcess, fn OverlapCallback) Handle
	RemoveCollider(h Handle)

	Pause()
	Resume()
	Paused() bool
}

// LeftEdge returns the left edge of a body.
func LeftEdge(b Body) float64 {
	x, _ := b.Position()
	w, _ := b.Size()
	return x - w/2
}

// TopEdge returns the top edge of a body.
func TopEdge(b Body) float64 {
	_, y := b.Position()
	_, h := b.Size()
	return y - h/2
}

// BottomEdge returns the bottom edge of a body.
func BottomEdge(b Body) float64 {
	_, y := b.Position()
	_, h := b.Size()
	return y + h/2
}
