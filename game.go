package main

import (
	"fmt"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/milk9111/platformer/anim"
	"github.com/milk9111/platformer/config"
	"github.com/milk9111/platformer/engine"
	"github.com/milk9111/platformer/hud"
	"github.com/milk9111/platformer/input"
	"github.com/milk9111/platformer/levels"
	"github.com/milk9111/platformer/physics"
	"github.com/milk9111/platformer/prefabs"
	"github.com/milk9111/platformer/scene"
	"github.com/milk9111/platformer/view"
)

type Game struct {
	cfg    config.Config
	logger *zap.Logger

	tuning  *prefabs.Tuning
	library *anim.Library
	watcher *prefabs.Watcher

	input   *input.Input
	camera  *view.Camera
	sound   *soundLog
	effects *view.Particles

	world    *physics.World
	scene    *scene.Scene
	paused   bool
	gameOver bool

	pauseUI    *ebitenui.UI
	gameOverUI *ebitenui.UI
	restartErr error
}

func NewGame(cfg config.Config, logger *zap.Logger) (*Game, error) {
	tuning, err := prefabs.LoadTuning()
	if err != nil {
		return nil, err
	}
	g := &Game{
		cfg:     cfg,
		logger:  logger,
		tuning:  tuning,
		library: anim.LibraryFromSpec(tuning.Animations),
		input:   input.New(newKeyboard(), newGamepad()),
		camera:  view.NewCamera(float64(cfg.Viewport.Width), float64(cfg.Viewport.Height)),
		sound:   &soundLog{logger: logger.Named("sound")},
		effects: view.NewParticles(view.DefaultBursts),
	}
	w, h := cfg.Viewport.Width, cfg.Viewport.Height
	g.pauseUI = newMenuUI(w, h, "Paused", "Resume", func() { g.paused = false })
	g.gameOverUI = newMenuUI(w, h, "Game Over", "Continue", func() { g.restartErr = g.restart(nil) })
	if cfg.Prefabs.Watch {
		w, err := prefabs.NewWatcher(cfg.Prefabs.Dir)
		if err != nil {
			logger.Warn("prefab watcher disabled", zap.Error(err))
		} else {
			g.watcher = w
		}
	}
	if err := g.start(nil); err != nil {
		return nil, err
	}
	return g, nil
}

// start builds a fresh level, physics world and scene. carry is the HUD
// state of the previous attempt, nil for a new game.
func (g *Game) start(carry *hud.State) error {
	level, err := levels.LoadLevelFromFS(g.cfg.Game.Level, levels.Options{EnemyKinds: g.tuning.EnemyKinds()})
	if err != nil {
		return err
	}
	g.world = physics.NewWorld(level, g.cfg.Physics.Gravity, g.logger)
	s, err := scene.New(scene.Deps{
		Config:    g.cfg,
		Tuning:    g.tuning,
		Level:     level,
		World:     g.world,
		Sound:     g.sound,
		Effects:   g.effects,
		Camera:    g.camera,
		NewSprite: func() engine.Sprite { return anim.NewSprite(g.library, g.logger) },
		Logger:    g.logger,
		Carry:     carry,
	})
	if err != nil {
		return err
	}
	g.scene = s
	g.gameOver = false
	g.camera.SnapTo(s.Character().Body().Position())
	return nil
}

func (g *Game) restart(carry *hud.State) error {
	g.scene.Destroy()
	g.effects.Clear()
	return g.start(carry)
}

func (g *Game) reloadTuning() {
	tuning, err := prefabs.LoadTuning()
	if err != nil {
		g.logger.Warn("tuning reload failed", zap.Error(err))
		return
	}
	g.tuning = tuning
	g.library = anim.LibraryFromSpec(tuning.Animations)
	g.logger.Info("tuning reloaded; applies to the next attempt")
}

func (g *Game) Update() error {
	if g.watcher.Changed() {
		g.reloadTuning()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		return ebiten.Termination
	}
	g.input.Update()

	if g.gameOver {
		g.gameOverUI.Update()
		if err := g.restartErr; err != nil {
			return err
		}
		if g.gameOver && g.input.JustPressed(engine.ButtonJump) {
			return g.restart(nil)
		}
		return nil
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	dt := 1000 / float64(ebiten.TPS())
	outcome := g.scene.Update(dt, g.input)
	g.world.Step(g.cfg.Physics.StepSeconds())
	g.effects.Update(dt)
	g.camera.Update(g.scene.Character().Body().Position())

	switch outcome {
	case scene.OutcomeRestart:
		carry := g.scene.Carry()
		return g.restart(&carry)
	case scene.OutcomeComplete:
		return g.restart(nil)
	case scene.OutcomeGameOver:
		g.gameOver = true
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	camX, camY := g.camera.ViewTopLeft()
	if g.cfg.Debug {
		DebugDraw(screen, g.world.Space(), camX, camY)
	}
	drawParticles(screen, g.effects, camX, camY)

	width := float64(g.cfg.Viewport.Width)
	items := g.scene.HUD().Items()
	for i, it := range items {
		x := int(width / float64(len(items)) * float64(i))
		if x == 0 {
			x = 16
		}
		ebitenutil.DebugPrintAt(screen, it.Title+"\n"+it.Value, x, 8)
	}
	if g.cfg.Debug {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS: %.0f", ebiten.ActualFPS()), 16, g.cfg.Viewport.Height-20)
	}
	switch {
	case g.gameOver:
		g.gameOverUI.Draw(screen)
	case g.paused:
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) Layout(int, int) (int, int) {
	return g.cfg.Viewport.Width, g.cfg.Viewport.Height
}

// Close releases the prefab watcher.
func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}
