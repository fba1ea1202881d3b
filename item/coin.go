package item

import (
	"github.com/milk9111/platformer/engine"
	"github.com/milk9111/platformer/prefabs"
)

// CoinSpin is the coin that pops out of a coin block. It awards its coins
// immediately, rises and then disappears.
type CoinSpin struct {
	sprite engine.Sprite
	x, y   float64
	done   bool
}

// SpinCoin starts a coin spin at (x, y). onDone runs once the coin is gone.
func SpinCoin(spec prefabs.CoinSpec, x, y float64, sprite engine.Sprite, svc engine.Services, onDone func()) *CoinSpin {
	c := &CoinSpin{sprite: sprite, x: x, y: y}
	sprite.Play("coinSpin")
	svc.Sound.Play("smb_coin")
	svc.Awards.Emit(engine.Award{Coins: spec.Coins, Source: "coin"})
	svc.Tweens.Tween(engine.TweenSpec{
		From:     y,
		To:       y - spec.Rise,
		Duration: spec.DurationMs,
		Set:      func(v float64) { c.y = v },
		OnComplete: func() {
			c.done = true
			c.sprite.SetVisible(false)
			if onDone != nil {
				onDone()
			}
		},
	})
	return c
}

func (c *CoinSpin) Position() (float64, float64) { return c.x, c.y }
func (c *CoinSpin) Sprite() engine.Sprite        { return c.sprite }
func (c *CoinSpin) Done() bool                   { return c.done }
