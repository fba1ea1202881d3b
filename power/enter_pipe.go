package power

import (
	"sort"

	"go.uber.org/zap"

	"github.com/milk9111/platformer/engine"
	"github.com/milk9111/platformer/levels"
	"github.com/milk9111/platformer/prefabs"
	"github.com/milk9111/platformer/timing"
)

// EnterPipe moves the hero through a pipe tile when the pipe's direction
// button is held during contact.
type EnterPipe struct {
	spec   prefabs.EnterPipeSpec
	world  engine.World
	tweens engine.Tweener
	sound  engine.Sound
	camera engine.Camera
	level  *levels.Map
	logger *zap.Logger

	in       engine.Input
	tween    engine.Tween
	moving   bool
	attached bool
}

func NewEnterPipe(spec prefabs.EnterPipeSpec, svc engine.Services, level *levels.Map) *EnterPipe {
	return &EnterPipe{
		spec:   spec,
		world:  svc.World,
		tweens: svc.Tweens,
		sound:  svc.Sound,
		camera: svc.Camera,
		level:  level,
		logger: svc.Log("pipe"),
	}
}

func (p *EnterPipe) Kind() Kind { return KindEnterPipe }

// Moving reports whether a pipe transition is running.
func (p *EnterPipe) Moving() bool { return p.moving }

func (p *EnterPipe) Attach(Target) { p.attached = true }

// Tick keeps the latest input for contact-time checks.
func (p *EnterPipe) Tick(_ float64, _ Target, in engine.Input) {
	p.in = in
}

func (p *EnterPipe) ContactWorld(t Target, c Contact) bool {
	if c.Tile == nil || c.Tile.Dest == "" || p.moving || p.world.Paused() {
		return false
	}
	h, ok := t.(Hero)
	if !ok {
		return false
	}
	dir, err := engine.ParseDirection(c.Tile.Direction)
	if err != nil {
		p.logger.Warn("pipe without direction", zap.Int("x", c.Tile.X), zap.Int("y", c.Tile.Y), zap.Error(err))
		return false
	}
	if !held(p.in, engine.ButtonFor(dir)) {
		return false
	}
	dest, ok := p.level.Dest(c.Tile.Dest)
	if !ok {
		p.logger.Warn("pipe destination missing", zap.String("dest", c.Tile.Dest))
		return false
	}

	p.logger.Debug("entering pipe", zap.String("dest", dest.Name), zap.Stringer("direction", dir))
	p.slide(h, dir, func() { p.arrive(h, dest) })
	return true
}

// slide moves the hero one body length along dir with physics paused.
func (p *EnterPipe) slide(h Hero, dir engine.Direction, then func()) {
	body, sprite := h.Body(), h.Sprite()
	sprite.Play(h.Variant().Anim("stand"))
	sprite.SetDepth(-1)
	body.Stop()
	p.world.Pause()
	p.sound.Play("smb_pipe")
	p.moving = true

	x, y := body.Position()
	_, height := body.Size()
	from := x
	set := func(v float64) { body.SetPosition(v, y) }
	if dir.Vertical() {
		from = y
		set = func(v float64) { body.SetPosition(x, v) }
	}

	p.tween = p.tweens.Tween(engine.TweenSpec{
		From:     from,
		To:       from + dir.Sign()*height,
		Duration: p.spec.DurationMs,
		Ease:     timing.CubicOut,
		Set:      set,
		OnComplete: func() {
			p.tween = nil
			p.moving = false
			p.world.Resume()
			sprite.SetDepth(1)
			if then != nil && p.attached {
				then()
			}
		},
	})
}

func (p *EnterPipe) arrive(h Hero, dest levels.Dest) {
	body := h.Body()
	w, height := body.Size()
	x, y := dest.X+w, dest.Y+height/2
	body.SetPosition(x, y)
	p.focus(x)

	if dest.Direction == "" {
		return
	}
	dir, err := engine.ParseDirection(dest.Direction)
	if err != nil {
		p.logger.Warn("destination direction", zap.String("dest", dest.Name), zap.Error(err))
		return
	}
	p.slide(h, dir, nil)
}

// focus points the camera at the first room, left to right, that reaches
// past x.
func (p *EnterPipe) focus(x float64) {
	rooms := p.level.Rooms()
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].X < rooms[j].X })
	for _, r := range rooms {
		if x < r.X+r.Width {
			p.camera.SetBounds(r.X, r.Y, r.Width, r.Height)
			return
		}
	}
}

func (p *EnterPipe) Detach(t Target) {
	p.attached = false
	if p.tween != nil {
		p.tween.Stop()
		p.tween = nil
	}
	if p.moving {
		p.moving = false
		p.world.Resume()
		t.Sprite().SetDepth(1)
	}
}
