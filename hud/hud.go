// Package hud keeps the score, coin, lives and time counters. Gameplay code
// never touches the counters directly; it emits engine.Award events that the
// HUD drains once per tick.
package hud

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/engine"
)

// State is the part of the HUD carried from one attempt to the next.
type State struct {
	Score int
	Coins int
	Lives int
}

// Item is one titled counter as drawn at the top of the screen.
type Item struct {
	Title string
	Value string
}

type HUD struct {
	state  State
	time   int
	awards *ecs.Queue[engine.Award]
	logger *zap.Logger

	countdown engine.Timer
}

func New(carry State, awards *ecs.Queue[engine.Award], logger *zap.Logger) *HUD {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HUD{
		state:  carry,
		awards: awards,
		logger: logger.Named("hud"),
	}
}

func (h *HUD) Score() int   { return h.state.Score }
func (h *HUD) Coins() int   { return h.state.Coins }
func (h *HUD) Lives() int   { return h.state.Lives }
func (h *HUD) Time() int    { return h.time }
func (h *HUD) State() State { return h.state }

// Apply adds one award to the counters.
func (h *HUD) Apply(a engine.Award) {
	h.state.Score += a.Score
	h.state.Coins += a.Coins
	h.state.Lives += a.Lives
	if h.state.Lives < 0 {
		h.state.Lives = 0
	}
	h.logger.Debug("award",
		zap.String("source", a.Source),
		zap.Int("score", h.state.Score),
		zap.Int("coins", h.state.Coins),
		zap.Int("lives", h.state.Lives),
	)
}

// Update drains pending awards.
func (h *HUD) Update() {
	if h.awards == nil {
		return
	}
	for _, a := range h.awards.Drain() {
		h.Apply(a)
	}
}

// StartCountdown sets the timer to seconds and decrements it once per second.
// onEnd runs when it reaches zero. Starting again replaces the previous
// countdown.
func (h *HUD) StartCountdown(clock engine.Clock, seconds int, onEnd func()) {
	h.StopCountdown()
	h.time = seconds
	if seconds <= 0 {
		if onEnd != nil {
			onEnd()
		}
		return
	}
	h.countdown = clock.Every(1000, func() {
		if h.time <= 0 {
			return
		}
		h.time--
		if h.time == 0 {
			h.StopCountdown()
			h.logger.Info("time up")
			if onEnd != nil {
				onEnd()
			}
		}
	})
}

// StopCountdown freezes the timer.
func (h *HUD) StopCountdown() {
	if h.countdown != nil {
		h.countdown.Cancel()
		h.countdown = nil
	}
}

// Items returns the counters in display order.
func (h *HUD) Items() []Item {
	return []Item{
		{Title: "SCORE", Value: fmt.Sprintf("%06d", h.state.Score)},
		{Title: "COINS", Value: fmt.Sprintf("%02d", h.state.Coins)},
		{Title: "TIME", Value: fmt.Sprintf("%03d", h.time)},
		{Title: "LIVES", Value: fmt.Sprintf("%d", h.state.Lives)},
	}
}
