package main

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/platformer/engine"
)

const stickThreshold = 0.3

type keyboard map[engine.Button][]ebiten.Key

func newKeyboard() keyboard {
	return keyboard{
		engine.ButtonLeft:  {ebiten.KeyA, ebiten.KeyLeft},
		engine.ButtonRight: {ebiten.KeyD, ebiten.KeyRight},
		engine.ButtonUp:    {ebiten.KeyW, ebiten.KeyUp},
		engine.ButtonDown:  {ebiten.KeyS, ebiten.KeyDown},
		engine.ButtonJump:  {ebiten.KeySpace},
		engine.ButtonFire:  {ebiten.KeyShiftLeft, ebiten.KeyX},
	}
}

func (k keyboard) Held(b engine.Button) bool {
	for _, key := range k[b] {
		if ebiten.IsKeyPressed(key) {
			return true
		}
	}
	return false
}

// gamepad reads every connected standard gamepad: the d-pad or left stick
// for directions, bottom face button to jump, left face button to fire.
type gamepad struct {
	buttons map[engine.Button]ebiten.StandardGamepadButton
}

func newGamepad() *gamepad {
	return &gamepad{buttons: map[engine.Button]ebiten.StandardGamepadButton{
		engine.ButtonLeft:  ebiten.StandardGamepadButtonLeftLeft,
		engine.ButtonRight: ebiten.StandardGamepadButtonLeftRight,
		engine.ButtonUp:    ebiten.StandardGamepadButtonLeftTop,
		engine.ButtonDown:  ebiten.StandardGamepadButtonLeftBottom,
		engine.ButtonJump:  ebiten.StandardGamepadButtonRightBottom,
		engine.ButtonFire:  ebiten.StandardGamepadButtonRightLeft,
	}}
}

func (g *gamepad) Held(b engine.Button) bool {
	for _, id := range ebiten.GamepadIDs() {
		if !ebiten.IsStandardGamepadLayoutAvailable(id) {
			continue
		}
		if btn, ok := g.buttons[b]; ok && ebiten.IsStandardGamepadButtonPressed(id, btn) {
			return true
		}
		x := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		y := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		switch {
		case b == engine.ButtonLeft && x < -stickThreshold,
			b == engine.ButtonRight && x > stickThreshold,
			b == engine.ButtonUp && y < -stickThreshold,
			b == engine.ButtonDown && y > stickThreshold:
			return true
		}
	}
	return false
}
