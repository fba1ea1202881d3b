package scene

import (
	"math"

	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/engine"
)

const (
	flagClimbMsPerPixel = 5
	flagFaceDropMs      = 1000
	flagRunDistance     = 100
	flagRunMs           = 1200
	flagLandMs          = 200
)

// Flag is the goal pole. Reaching it plays the slide-down and walk-off
// sequence and completes the attempt.
type Flag struct {
	pole    engine.Body
	x       float64
	height  float64
	faceY   float64
	reached bool
}

var _ engine.Group = (*Flag)(nil)

// newFlag places a pole one tile wide spanning the level height with its left
// edge at x.
func newFlag(x, height float64, svc engine.Services) *Flag {
	f := &Flag{x: x, height: height, faceY: common.TileSize}
	f.pole = svc.World.NewBody(engine.BodySpec{
		X:      x + common.TileSize/2,
		Y:      height / 2,
		Width:  common.TileSize,
		Height: height,
		Sensor: true,
	})
	return f
}

func (f *Flag) Bodies() []engine.Body { return []engine.Body{f.pole} }
func (f *Flag) Body() engine.Body     { return f.pole }
func (f *Flag) Reached() bool         { return f.reached }

// FaceY is the current top of the flag cloth.
func (f *Flag) FaceY() float64 { return f.faceY }

// bottom is where the character stops climbing.
func (f *Flag) bottom() float64 { return f.height - common.TileSize*4 }

func (f *Flag) destroy(world engine.World) {
	world.DestroyBody(f.pole)
}

// PlayerOverlapFlag starts the goal sequence: the character grabs the pole
// and slides down while the flag drops, then walks off and the attempt
// completes.
func (s *Scene) PlayerOverlapFlag(_, _ engine.Body) {
	f := s.flag
	if f == nil || f.reached || s.character.Dead() {
		return
	}
	f.reached = true
	s.hud.StopCountdown()
	s.svc.Sound.Play("smb_flagpole")

	c := s.character
	body := c.Body()
	_, y := body.Position()
	body.Stop()
	body.SetPosition(f.x+common.TileSize/2, y)
	c.Sprite().Play(c.Variant().Anim("climb"))
	s.world.Pause()

	x := f.x + common.TileSize/2
	s.tweens.Tween(engine.TweenSpec{
		From:     y,
		To:       f.bottom(),
		Duration: math.Max(f.bottom()-y, 0) * flagClimbMsPerPixel,
		Set:      func(v float64) { body.SetPosition(x, v) },
		OnComplete: func() {
			s.walkOff(x + common.TileSize)
		},
	})
	s.tweens.Tween(engine.TweenSpec{
		From:     f.faceY,
		To:       f.bottom(),
		Duration: flagFaceDropMs,
		Set:      func(v float64) { f.faceY = v },
	})
}

func (s *Scene) walkOff(x float64) {
	c := s.character
	body := c.Body()
	_, h := body.Size()
	_, y := body.Position()
	c.Sprite().Play(c.Variant().Anim("run"))
	s.svc.Sound.Play("smb_stage_clear")

	ground := s.flag.height - common.TileSize*2 - h/2
	s.tweens.Tween(engine.TweenSpec{
		From:     y,
		To:       ground,
		Duration: flagLandMs,
		Set: func(v float64) {
			px, _ := body.Position()
			body.SetPosition(px, v)
		},
	})
	s.tweens.Tween(engine.TweenSpec{
		From:     x,
		To:       x + flagRunDistance,
		Duration: flagRunMs,
		Set: func(v float64) {
			_, py := body.Position()
			body.SetPosition(v, py)
			if v > x+flagRunDistance-common.TileSize {
				c.Sprite().SetDepth(-1)
			}
		},
		OnComplete: func() {
			s.finish(OutcomeComplete)
		},
	})
}
