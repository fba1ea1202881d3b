package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCameraClampsToRoom(t *testing.T) {
	c := NewCamera(400, 240)
	c.SetBounds(0, 0, 3200, 240)

	c.SnapTo(50, 10)
	x, y := c.ViewTopLeft()
	assert.Equal(t, 0.0, x)
	assert.Equal(t, 0.0, y)

	c.SnapTo(5000, 120)
	x, _ = c.ViewTopLeft()
	assert.Equal(t, 2800.0, x)
}

func TestCameraCentresSmallRoom(t *testing.T) {
	c := NewCamera(400, 240)
	c.SetBounds(100, 0, 200, 240)
	c.SnapTo(0, 0)
	assert.Equal(t, 200.0, c.PosX)
}

func TestCameraFollowsSmoothly(t *testing.T) {
	c := NewCamera(400, 240)
	c.SnapTo(200, 120)
	c.Update(300, 120)
	assert.Equal(t, 215.0, c.PosX)

	c.SetSmooth(0)
	c.Update(300, 120)
	assert.Equal(t, 300.0, c.PosX)
}
