// Package anim plays named frame animations and holds the display state of an
// entity's sprite.
package anim

import (
	"go.uber.org/zap"

	"github.com/milk9111/platformer/engine"
)

// Sprite is a frame animator bound to a Library. Unknown keys play as a
// single looping frame so a missing clip never stalls a completion callback
// for more than one frame.
type Sprite struct {
	lib    *Library
	logger *zap.Logger

	key        string
	clip       Clip
	current    int
	elapsed    float64
	onComplete func()
	finished   bool

	flipX   bool
	flipY   bool
	tint    uint32
	tinted  bool
	alpha   float64
	depth   int
	visible bool
}

var _ engine.Sprite = (*Sprite)(nil)

func NewSprite(lib *Library, logger *zap.Logger) *Sprite {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sprite{lib: lib, logger: logger, alpha: 1, visible: true}
}

// Play starts key looping or holding per its clip. Playing the current key
// again does nothing.
func (s *Sprite) Play(key string) {
	if s.key == key && s.onComplete == nil {
		return
	}
	s.start(key, nil)
}

// PlayOnce restarts key and calls onComplete when it reaches its last frame.
// A later Play or PlayOnce drops the pending callback.
func (s *Sprite) PlayOnce(key string, onComplete func()) {
	s.start(key, onComplete)
	s.clip.Loop = false
}

func (s *Sprite) start(key string, onComplete func()) {
	clip, ok := s.lib.Get(key)
	if !ok {
		s.logger.Debug("unknown animation", zap.String("key", key))
		clip = Clip{Frames: 1, FPS: 12, Loop: true}
	}
	s.key = key
	s.clip = clip
	s.current = 0
	s.elapsed = 0
	s.finished = false
	s.onComplete = onComplete
}

// Update advances the animation by deltaMs.
func (s *Sprite) Update(deltaMs float64) {
	if s == nil || s.key == "" || s.finished {
		return
	}
	s.elapsed += deltaMs
	step := s.clip.frameMs()
	for s.elapsed >= step {
		s.elapsed -= step
		s.current++
		if s.current < s.clip.Frames {
			continue
		}
		if s.clip.Loop {
			s.current = 0
			continue
		}
		s.current = s.clip.Frames - 1
		s.finished = true
		if fn := s.onComplete; fn != nil {
			s.onComplete = nil
			fn()
		}
		return
	}
}

// Frame returns the current frame index.
func (s *Sprite) Frame() int { return s.current }

// Finished reports whether a non-looping clip has reached its last frame.
func (s *Sprite) Finished() bool { return s.finished }

func (s *Sprite) Current() string { return s.key }

func (s *Sprite) SetFlipX(flip bool) { s.flipX = flip }
func (s *Sprite) FlipX() bool        { return s.flipX }
func (s *Sprite) SetFlipY(flip bool) { s.flipY = flip }
func (s *Sprite) FlipY() bool        { return s.flipY }

func (s *Sprite) SetTint(rgb uint32) {
	s.tint = rgb & 0xffffff
	s.tinted = true
}

func (s *Sprite) ClearTint() {
	s.tint = 0
	s.tinted = false
}

// Tint returns the active tint and whether one is set.
func (s *Sprite) Tint() (uint32, bool) { return s.tint, s.tinted }

func (s *Sprite) SetAlpha(a float64) {
	if a < 0 {
		a = 0
	}
	if a > 1 {
		a = 1
	}
	s.alpha = a
}

func (s *Sprite) Alpha() float64 { return s.alpha }

func (s *Sprite) SetDepth(d int) { s.depth = d }
func (s *Sprite) Depth() int     { return s.depth }

func (s *Sprite) SetVisible(v bool) { s.visible = v }
func (s *Sprite) Visible() bool     { return s.visible }

// Reset clears animation and display state back to defaults.
func (s *Sprite) Reset() {
	s.key = ""
	s.clip = Clip{}
	s.current = 0
	s.elapsed = 0
	s.onComplete = nil
	s.finished = false
	s.flipX, s.flipY = false, false
	s.ClearTint()
	s.alpha = 1
	s.depth = 0
	s.visible = true
}
