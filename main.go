package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/milk9111/platformer/config"
	"github.com/milk9111/platformer/observability"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	levelName := flag.String("level", "", "level name in levels/ (overrides game.level)")
	debug := flag.Bool("debug", false, "draw collision shapes")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *levelName != "" {
		cfg.Game.Level = *levelName
	}
	if *debug {
		cfg.Debug = true
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(cfg.Viewport.Width*cfg.Viewport.Scale, cfg.Viewport.Height*cfg.Viewport.Scale)
	ebiten.SetWindowTitle("platformer")
	ebiten.SetTPS(cfg.Physics.StepHz)

	game, err := NewGame(cfg, logger)
	if err != nil {
		logger.Fatal("starting game", zap.Error(err))
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		logger.Fatal("game loop", zap.Error(err))
	}
}
