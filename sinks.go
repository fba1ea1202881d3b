package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"
	"golang.org/x/image/colornames"

	"github.com/milk9111/platformer/view"
)

// soundLog records sound cues; there is no mixer.
type soundLog struct {
	logger *zap.Logger
}

func (s *soundLog) Play(key string) {
	s.logger.Debug("play", zap.String("key", key))
}

func drawParticles(screen *ebiten.Image, p *view.Particles, camX, camY float64) {
	for _, pt := range p.Live() {
		vector.DrawFilledRect(screen, float32(pt.X-camX), float32(pt.Y-camY), 4, 4, colornames.Sienna, false)
	}
}
