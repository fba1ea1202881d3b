// Package input merges raw devices into the button state the abilities read.
package input

import "github.com/milk9111/platformer/engine"

const buttonCount = int(engine.ButtonFire) + 1

// Device reports whether a game button is held right now.
type Device interface {
	Held(b engine.Button) bool
}

// Input polls its devices once per frame. A button is down when any device
// holds it and just pressed on the first frame it is down.
type Input struct {
	devices []Device
	held    [buttonCount]bool
	prev    [buttonCount]bool
}

var _ engine.Input = (*Input)(nil)

func New(devices ...Device) *Input {
	return &Input{devices: devices}
}

// Update samples every device. Call it once at the start of each frame.
func (i *Input) Update() {
	i.prev = i.held
	for b := range i.held {
		i.held[b] = false
		for _, d := range i.devices {
			if d != nil && d.Held(engine.Button(b)) {
				i.held[b] = true
				break
			}
		}
	}
}

func (i *Input) Down(b engine.Button) bool {
	return valid(b) && i.held[b]
}

func (i *Input) JustPressed(b engine.Button) bool {
	return valid(b) && i.held[b] && !i.prev[b]
}

func valid(b engine.Button) bool {
	return b >= 0 && int(b) < buttonCount
}

// Buttons is a fixed set of held buttons, used for scripted input.
type Buttons map[engine.Button]bool

func (s Buttons) Held(b engine.Button) bool { return s[b] }
