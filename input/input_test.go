package input

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/milk9111/platformer/engine"
)

func TestEdgeDetection(t *testing.T) {
	pad := Buttons{}
	in := New(pad)

	in.Update()
	assert.False(t, in.Down(engine.ButtonJump))

	pad[engine.ButtonJump] = true
	in.Update()
	assert.True(t, in.Down(engine.ButtonJump))
	assert.True(t, in.JustPressed(engine.ButtonJump))

	in.Update()
	assert.True(t, in.Down(engine.ButtonJump))
	assert.False(t, in.JustPressed(engine.ButtonJump), "pressed only on the first frame")

	delete(pad, engine.ButtonJump)
	in.Update()
	assert.False(t, in.Down(engine.ButtonJump))
	assert.False(t, in.JustPressed(engine.ButtonJump))
}

func TestDevicesMerge(t *testing.T) {
	keyboard := Buttons{engine.ButtonLeft: true}
	pad := Buttons{engine.ButtonFire: true}
	in := New(keyboard, nil, pad)
	in.Update()

	assert.True(t, in.Down(engine.ButtonLeft))
	assert.True(t, in.Down(engine.ButtonFire))
	assert.False(t, in.Down(engine.ButtonRight))

	// switching devices mid-hold is not a new press
	delete(keyboard, engine.ButtonLeft)
	pad[engine.ButtonLeft] = true
	in.Update()
	assert.True(t, in.Down(engine.ButtonLeft))
	assert.False(t, in.JustPressed(engine.ButtonLeft))
}

func TestInvalidButton(t *testing.T) {
	in := New(Buttons{engine.Button(99): true})
	in.Update()
	assert.False(t, in.Down(engine.Button(99)))
	assert.False(t, in.JustPressed(engine.Button(-1)))
}
