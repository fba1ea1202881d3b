package anim

import (
	"sort"

	"github.com/milk9111/platformer/prefabs"
)

// Clip is a frame sequence. Frames advance at FPS; non-looping clips hold
// their last frame.
type Clip struct {
	Frames int
	FPS    float64
	Loop   bool
}

// frameMs returns the duration of one frame.
func (c Clip) frameMs() float64 {
	fps := c.FPS
	if fps <= 0 {
		fps = 12
	}
	return 1000 / fps
}

// Duration is the length of one pass through the clip.
func (c Clip) Duration() float64 {
	n := c.Frames
	if n < 1 {
		n = 1
	}
	return float64(n) * c.frameMs()
}

// Library stores clips by key.
type Library struct {
	clips map[string]Clip
}

// NewLibrary creates an empty library.
func NewLibrary() *Library {
	return &Library{clips: make(map[string]Clip)}
}

// LibraryFromSpec builds a library from animations.yaml.
func LibraryFromSpec(spec *prefabs.AnimationsSpec) *Library {
	l := NewLibrary()
	if spec == nil {
		return l
	}
	for key, a := range spec.Animations {
		l.Register(key, Clip{Frames: a.Frames, FPS: a.FPS, Loop: a.Loop})
	}
	return l
}

// Register adds a clip to the library.
func (l *Library) Register(key string, clip Clip) {
	if l == nil || key == "" {
		return
	}
	if clip.Frames < 1 {
		clip.Frames = 1
	}
	l.clips[key] = clip
}

// Get returns a clip by key.
func (l *Library) Get(key string) (Clip, bool) {
	if l == nil || key == "" {
		return Clip{}, false
	}
	clip, ok := l.clips[key]
	return clip, ok
}

// Keys returns every registered key in sorted order.
func (l *Library) Keys() []string {
	if l == nil {
		return nil
	}
	out := make([]string, 0, len(l.clips))
	for k := range l.clips {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
