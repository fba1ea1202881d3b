package timing

import (
	"testing"

	"github.com/milk9111/platformer/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestAfterFiresOnceWhenDue(t *testing.T) {
	c := NewClock()
	calls := 0
	timer := c.After(100, func() { calls++ })

	assert.Equal(t, 0, calls, "scheduling must not run the callback")
	c.Update(99)
	assert.Equal(t, 0, calls)
	c.Update(1)
	assert.Equal(t, 1, calls)
	c.Update(500)
	assert.Equal(t, 1, calls)
	assert.False(t, timer.Active())
	assert.Equal(t, 0, c.Pending())
}

func TestCancelledTimerNeverRuns(t *testing.T) {
	c := NewClock()
	calls := 0
	timer := c.After(50, func() { calls++ })
	timer.Cancel()
	c.Update(100)
	assert.Equal(t, 0, calls)
	assert.False(t, timer.Active())
}

func TestEveryRepeatsUntilCancelled(t *testing.T) {
	c := NewClock()
	calls := 0
	var timer engine.Timer
	timer = c.Every(100, func() {
		calls++
		if calls == 3 {
			timer.Cancel()
		}
	})
	for i := 0; i < 10; i++ {
		c.Update(100)
	}
	assert.Equal(t, 3, calls)
}

func TestTimerScheduledFromCallbackWaitsForNextUpdate(t *testing.T) {
	c := NewClock()
	var order []string
	c.After(10, func() {
		order = append(order, "outer")
		c.After(0, func() { order = append(order, "inner") })
	})
	c.Update(10)
	require.Equal(t, []string{"outer"}, order)
	c.Update(0)
	assert.Equal(t, []string{"outer", "inner"}, order)
}

func TestClockFiresEveryTimerExactlyOnce(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		c := NewClock()
		delays := rapid.SliceOfN(rapid.Float64Range(0, 1000), 1, 20).Draw(t, "delays")
		fired := make([]int, len(delays))
		for i, d := range delays {
			i := i
			c.After(d, func() { fired[i]++ })
		}
		steps := rapid.SliceOfN(rapid.Float64Range(0, 200), 1, 50).Draw(t, "steps")
		for _, s := range steps {
			c.Update(s)
		}
		c.Update(1000)
		for i, n := range fired {
			if n != 1 {
				t.Fatalf("timer %d fired %d times", i, n)
			}
		}
	})
}
