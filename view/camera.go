// Package view holds the follow camera. It has no renderer dependency so the
// room clamping can be tested headless.
package view

import (
	"math"

	"github.com/milk9111/platformer/engine"
)

// Camera follows a world point and keeps the view inside the current room.
type Camera struct {
	PosX float64
	PosY float64

	viewW float64
	viewH float64

	// smoothing factor (0..1). higher -> faster follow.
	smooth float64

	boundsX, boundsY float64
	boundsW, boundsH float64
}

var _ engine.Camera = (*Camera)(nil)

func NewCamera(viewW, viewH float64) *Camera {
	return &Camera{
		PosX:   viewW / 2,
		PosY:   viewH / 2,
		viewW:  viewW,
		viewH:  viewH,
		smooth: 0.15,
	}
}

// SetBounds restricts the view to a room. A zero size means unbounded.
func (c *Camera) SetBounds(x, y, w, h float64) {
	c.boundsX, c.boundsY = x, y
	c.boundsW, c.boundsH = w, h
	c.constrain()
}

func (c *Camera) SetSmooth(f float64) {
	if f < 0 {
		f = 0
	}
	c.smooth = f
}

// ViewTopLeft returns the world-space top-left of the current view.
func (c *Camera) ViewTopLeft() (float64, float64) {
	return c.PosX - c.viewW/2, c.PosY - c.viewH/2
}

// Update moves the camera toward the target world coordinate. Call from the
// fixed-rate Update loop to get consistent smoothing.
func (c *Camera) Update(targetX, targetY float64) {
	if c.smooth <= 0 {
		c.PosX = targetX
		c.PosY = targetY
	} else {
		c.PosX += (targetX - c.PosX) * c.smooth
		c.PosY += (targetY - c.PosY) * c.smooth
	}
	c.constrain()
}

// SnapTo places the camera without smoothing, e.g. after a level load.
func (c *Camera) SnapTo(x, y float64) {
	c.PosX = x
	c.PosY = y
	c.constrain()
}

func (c *Camera) constrain() {
	c.PosX = math.Round(c.PosX)
	c.PosY = math.Round(c.PosY)
	if c.boundsW > 0 {
		c.PosX = clampAxis(c.PosX, c.boundsX, c.boundsW, c.viewW)
	}
	if c.boundsH > 0 {
		c.PosY = clampAxis(c.PosY, c.boundsY, c.boundsH, c.viewH)
	}
}

// clampAxis keeps a view of size view inside [start, start+size]. A room
// smaller than the view is centred.
func clampAxis(pos, start, size, view float64) float64 {
	half := view / 2
	lo, hi := start+half, start+size-half
	if hi < lo {
		return start + size/2
	}
	return math.Max(lo, math.Min(pos, hi))
}
