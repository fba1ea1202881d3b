package engine

import "go.uber.org/zap"

// Button is a logical input button.
type Button int

const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonUp
	ButtonDown
	ButtonJump
	ButtonFire
)

// ButtonFor maps a direction to its directional button.
func ButtonFor(d Direction) Button {
	switch d {
	case Down:
		return ButtonDown
	case Left:
		return ButtonLeft
	case Right:
		return ButtonRight
	}
	return ButtonUp
}

// Input exposes the current button state.
type Input interface {
	Down(b Button) bool
	JustPressed(b Button) bool
}

// Sprite is the visual half of an entity.
type Sprite interface {
	Play(key string)
	PlayOnce(key string, onComplete func())
	Current() string
	SetFlipX(flip bool)
	FlipX() bool
	SetFlipY(flip bool)
	SetTint(rgb uint32)
	ClearTint()
	SetAlpha(a float64)
	Alpha() float64
	SetDepth(d int)
	SetVisible(v bool)
	Visible() bool
}

type Sound interface {
	Play(key string)
}

// Effects spawns fire-and-forget particle bursts.
type Effects interface {
	Burst(key string, x, y float64)
}

type Camera interface {
	SetBounds(x, y, w, h float64)
}

// Timer is a scheduled callback.
type Timer interface {
	Cancel()
	Active() bool
}

// Clock schedules deferred callbacks. Callbacks run from the tick, never from
// the scheduling call.
type Clock interface {
	After(ms float64, fn func()) Timer
	Every(ms float64, fn func()) Timer
}

// Ease maps linear progress in [0,1] to eased progress.
type Ease func(t float64) float64

// TweenSpec describes a numeric tween.
type TweenSpec struct {
	From, To   float64
	Duration   float64
	Ease       Ease
	Yoyo       bool
	Repeat     int
	Set        func(v float64)
	OnComplete func()
}

type Tween interface {
	Stop()
	Done() bool
}

type Tweener interface {
	Tween(spec TweenSpec) Tween
}

// Award is a HUD counter delta produced by gameplay.
type Award struct {
	Score  int
	Coins  int
	Lives  int
	Source string
}

// AwardSink receives awards for the HUD.
type AwardSink interface {
	Emit(a Award)
}

// Services bundles the collaborators every entity constructor receives.
type Services struct {
	World   World
	Clock   Clock
	Tweens  Tweener
	Sound   Sound
	Effects Effects
	Camera  Camera
	Awards  AwardSink
	Logger  *zap.Logger
}

// Log returns the named service logger, never nil.
func (s Services) Log(name string) *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger.Named(name)
}
