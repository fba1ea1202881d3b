package enginetest

import (
	"github.com/milk9111/platformer/engine"
)

// Sprite records animation and display state.
type Sprite struct {
	Played   []string
	current  string
	onceDone func()
	flipX    bool
	FlippedY bool
	Tint     uint32
	Tinted   bool
	alpha    float64
	Depth    int
	visible  bool
}

var _ engine.Sprite = (*Sprite)(nil)

func NewSprite() *Sprite {
	return &Sprite{alpha: 1, visible: true}
}

func (s *Sprite) Play(key string) {
	if s.current == key {
		return
	}
	s.current = key
	s.onceDone = nil
	s.Played = append(s.Played, key)
}

func (s *Sprite) PlayOnce(key string, onComplete func()) {
	s.current = key
	s.onceDone = onComplete
	s.Played = append(s.Played, key)
}

// Finish completes a pending PlayOnce animation.
func (s *Sprite) Finish() {
	fn := s.onceDone
	s.onceDone = nil
	if fn != nil {
		fn()
	}
}

// Pending reports whether a PlayOnce animation is still running.
func (s *Sprite) Pending() bool { return s.onceDone != nil }

func (s *Sprite) Current() string    { return s.current }
func (s *Sprite) SetFlipX(flip bool) { s.flipX = flip }
func (s *Sprite) FlipX() bool        { return s.flipX }
func (s *Sprite) SetFlipY(flip bool) { s.FlippedY = flip }
func (s *Sprite) SetAlpha(a float64) { s.alpha = a }
func (s *Sprite) Alpha() float64     { return s.alpha }
func (s *Sprite) SetDepth(d int)     { s.Depth = d }
func (s *Sprite) SetVisible(v bool)  { s.visible = v }
func (s *Sprite) Visible() bool      { return s.visible }

func (s *Sprite) SetTint(rgb uint32) {
	s.Tint = rgb
	s.Tinted = true
}

func (s *Sprite) ClearTint() {
	s.Tint = 0
	s.Tinted = false
}

// Input is a scripted button state.
type Input struct {
	Held    map[engine.Button]bool
	Pressed map[engine.Button]bool
}

var _ engine.Input = (*Input)(nil)

func NewInput(held ...engine.Button) *Input {
	in := &Input{Held: map[engine.Button]bool{}, Pressed: map[engine.Button]bool{}}
	for _, b := range held {
		in.Held[b] = true
	}
	return in
}

func (in *Input) Down(b engine.Button) bool        { return in != nil && in.Held[b] }
func (in *Input) JustPressed(b engine.Button) bool { return in != nil && in.Pressed[b] }

// Press marks b as held and newly pressed.
func (in *Input) Press(b engine.Button) {
	in.Held[b] = true
	in.Pressed[b] = true
}

// Release clears b.
func (in *Input) Release(b engine.Button) {
	delete(in.Held, b)
	delete(in.Pressed, b)
}

// Settle clears every just-pressed flag.
func (in *Input) Settle() {
	in.Pressed = map[engine.Button]bool{}
}

// Sound records played keys.
type Sound struct {
	Keys []string
}

func (s *Sound) Play(key string) { s.Keys = append(s.Keys, key) }

// Last returns the most recent key or "".
func (s *Sound) Last() string {
	if len(s.Keys) == 0 {
		return ""
	}
	return s.Keys[len(s.Keys)-1]
}

// Count returns how often key was played.
func (s *Sound) Count(key string) int {
	n := 0
	for _, k := range s.Keys {
		if k == key {
			n++
		}
	}
	return n
}

// Burst is one recorded particle burst.
type Burst struct {
	Key  string
	X, Y float64
}

type Effects struct {
	Bursts []Burst
}

func (e *Effects) Burst(key string, x, y float64) {
	e.Bursts = append(e.Bursts, Burst{Key: key, X: x, Y: y})
}

// Camera records the last bounds.
type Camera struct {
	X, Y, W, H float64
	Calls      int
}

func (c *Camera) SetBounds(x, y, w, h float64) {
	c.X, c.Y, c.W, c.H = x, y, w, h
	c.Calls++
}

// Awards collects emitted awards.
type Awards struct {
	List []engine.Award
}

func (a *Awards) Emit(award engine.Award) { a.List = append(a.List, award) }

// Total sums every recorded award.
func (a *Awards) Total() engine.Award {
	var out engine.Award
	for _, aw := range a.List {
		out.Score += aw.Score
		out.Coins += aw.Coins
		out.Lives += aw.Lives
	}
	return out
}
