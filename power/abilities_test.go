package power

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/platformer/engine"
	"github.com/milk9111/platformer/engine/enginetest"
	"github.com/milk9111/platformer/prefabs"
)

func TestMove(t *testing.T) {
	spec := testAbilities(t).Move
	tests := []struct {
		name    string
		held    []engine.Button
		vx      float64
		large   bool
		wantAX  float64
		wantVX  float64
		wantAni string
		flip    bool
	}{
		{name: "left from rest", held: []engine.Button{engine.ButtonLeft}, wantAX: -250, wantAni: "stand", flip: true},
		{name: "left while moving right turns", held: []engine.Button{engine.ButtonLeft}, vx: 50, wantAX: -350, wantVX: 50, wantAni: "turn", flip: true},
		{name: "right while running", held: []engine.Button{engine.ButtonRight}, vx: 120, wantAX: 250, wantVX: 120, wantAni: "run"},
		{name: "release below stop speed halts", vx: 20, wantAX: 0, wantVX: 0, wantAni: "stand"},
		{name: "release above stop speed coasts", vx: 100, wantAX: -250, wantVX: 100, wantAni: "run"},
		{name: "bend when large", held: []engine.Button{engine.ButtonDown}, vx: 100, large: true, wantAX: 0, wantVX: 0, wantAni: "bendLarge"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newTestHero(t, CharacterKinds)
			h.body.VX = tc.vx
			h.body.BlockedBy.Down = true
			if tc.large {
				h.variant = VariantLarge
				require.NoError(t, h.powers.Add(KindLarge, probeFactory(&probe{kind: KindLarge}), false))
			}
			m := NewMove(spec)
			m.Tick(16, h, enginetest.NewInput(tc.held...))

			assert.Equal(t, tc.wantAX, h.body.AX)
			assert.Equal(t, tc.wantVX, h.body.VX)
			assert.Equal(t, tc.flip, h.sprite.FlipX())
			assert.Equal(t, tc.wantAni, h.sprite.Current())
		})
	}
}

func TestMoveAirborneKeepsAnimation(t *testing.T) {
	h := newTestHero(t, CharacterKinds)
	h.sprite.Play("jump")
	NewMove(testAbilities(t).Move).Tick(16, h, enginetest.NewInput(engine.ButtonRight))
	assert.Equal(t, "jump", h.sprite.Current())
}

func TestJump(t *testing.T) {
	spec := testAbilities(t).Jump
	sound := &enginetest.Sound{}
	h := newTestHero(t, CharacterKinds)
	j := NewJump(spec, sound)
	in := enginetest.NewInput(engine.ButtonJump)

	h.body.BlockedBy.Down = true
	j.Tick(16, h, in)
	assert.Equal(t, -200.0, h.body.VY)
	assert.Equal(t, "smb_jump-small", sound.Last())
	assert.True(t, j.Holding())

	h.body.BlockedBy = engine.Dirs{}
	h.body.VY = -150
	j.Tick(100, h, in)
	assert.Equal(t, -200.0, h.body.VY, "held jump keeps take-off velocity")
	assert.Equal(t, "jump", h.sprite.Current())

	h.body.VY = -100
	j.Tick(150, h, in)
	assert.Equal(t, -100.0, h.body.VY, "hold window over")
	assert.False(t, j.Holding())
}

func TestJumpHeadBumpEndsHold(t *testing.T) {
	h := newTestHero(t, CharacterKinds)
	j := NewJump(testAbilities(t).Jump, &enginetest.Sound{})
	in := enginetest.NewInput(engine.ButtonUp)
	h.body.BlockedBy.Down = true
	j.Tick(16, h, in)

	h.body.BlockedBy = engine.Dirs{Up: true}
	h.body.VY = 10
	j.Tick(16, h, in)
	assert.Equal(t, 10.0, h.body.VY)
	assert.False(t, j.Holding())
}

func TestJumpSoundDependsOnSize(t *testing.T) {
	sound := &enginetest.Sound{}
	h := newTestHero(t, CharacterKinds)
	require.NoError(t, h.powers.Add(KindLarge, probeFactory(&probe{kind: KindLarge}), false))
	h.body.BlockedBy.Down = true
	NewJump(testAbilities(t).Jump, sound).Tick(16, h, enginetest.NewInput(engine.ButtonUp))
	assert.Equal(t, "smb_jump-super", sound.Last())
}

func TestInvincibleKillsAndExpires(t *testing.T) {
	h := newTestHero(t, CharacterKinds)
	spec := prefabs.InvincibleSpec{DurationMs: 100}
	require.NoError(t, h.powers.Add(KindInvincible, func() Ability { return NewInvincible(spec) }, false))

	foe := newTestFoe()
	assert.True(t, h.powers.OverlapEnemy(foe, false))
	assert.Equal(t, []bool{true}, foe.deaths)

	h.powers.Tick(16, nil)
	assert.True(t, h.sprite.Tinted)
	assert.Equal(t, uint32(0xffffff), h.sprite.Tint)
	h.powers.Tick(16, nil)
	assert.Equal(t, uint32(0xff0000), h.sprite.Tint)

	h.powers.Tick(100, nil)
	assert.False(t, h.powers.Has(KindInvincible))
	assert.False(t, h.sprite.Tinted)
}

func newLargeHero(t *testing.T) (*testHero, *enginetest.Harness, *Large) {
	t.Helper()
	harness, svc := enginetest.NewHarness(t)
	h := newTestHero(t, CharacterKinds)
	var large *Large
	factory := func() Ability {
		large = NewLarge(testAbilities(t).Large, prefabs.SizeSpec{W: 8, H: 16}, prefabs.SizeSpec{W: 8, H: 32}, svc)
		return large
	}
	require.NoError(t, h.powers.Add(KindLarge, factory, false))
	return h, harness, large
}

func TestLargeGrowsAfterAnimation(t *testing.T) {
	h, harness, _ := newLargeHero(t)
	bottom := engine.BottomEdge(h.body)

	assert.True(t, harness.World.Paused())
	assert.Equal(t, "grow", h.sprite.Current())
	assert.Equal(t, VariantDefault, h.variant)

	h.sprite.Finish()
	assert.False(t, harness.World.Paused())
	assert.Equal(t, VariantLarge, h.variant)
	assert.Equal(t, 32.0, h.body.H)
	assert.Equal(t, bottom, engine.BottomEdge(h.body))
}

func TestLargeShrinkProtectsThenRemoves(t *testing.T) {
	h, harness, large := newLargeHero(t)
	h.sprite.Finish()

	foe := newTestFoe()
	assert.True(t, h.powers.OverlapEnemy(foe, false))
	assert.True(t, h.protected)
	assert.Equal(t, 0.8, h.sprite.Alpha())
	assert.True(t, harness.World.Paused())
	assert.Equal(t, "smb_pipe", harness.Sound.Last())

	h.sprite.Finish()
	assert.Equal(t, VariantDefault, h.variant)
	assert.Equal(t, 16.0, h.body.H)

	assert.False(t, h.powers.OverlapEnemy(foe, false), "protected hero is not hit again")

	harness.Advance(1999)
	assert.True(t, h.powers.Has(KindLarge))
	harness.Advance(1)
	assert.False(t, h.powers.Has(KindLarge))
	assert.False(t, h.protected)
	assert.Equal(t, 1.0, h.sprite.Alpha())
	assert.False(t, large.Protecting())
}

func TestLargeEarlyRemovalCancelsTimer(t *testing.T) {
	h, harness, _ := newLargeHero(t)
	h.sprite.Finish()
	require.True(t, h.powers.OverlapEnemy(newTestFoe(), false))

	h.powers.Remove(KindLarge)
	assert.False(t, h.protected)
	assert.False(t, harness.World.Paused())
	assert.Equal(t, 0, harness.Clock.Pending())

	h.protected = true
	harness.Advance(5000)
	assert.True(t, h.protected, "stale timer must not touch the hero")
}

func TestLargeIgnoresStompAndHarmless(t *testing.T) {
	h, _, _ := newLargeHero(t)
	h.sprite.Finish()

	harmless := newTestFoe()
	harmless.harmful = false
	assert.False(t, h.powers.OverlapEnemy(harmless, false))

	h.body.TouchingBy.Down = true
	h.body.VY = 50
	assert.False(t, h.powers.OverlapEnemy(newTestFoe(), true))
	assert.False(t, h.protected)
}

func newFireHero(t *testing.T) (*testHero, *enginetest.Harness, *Fire, *engine.BodyList) {
	t.Helper()
	harness, svc := enginetest.NewHarness(t)
	h := newTestHero(t, CharacterKinds)
	enemies := engine.Bodies()
	var fire *Fire
	require.NoError(t, h.powers.Add(KindFire, func() Ability {
		fire = NewFire(testAbilities(t).Fire, svc, enemies)
		return fire
	}, false))
	return h, harness, fire, enemies
}

func TestFireLaunchesWithCooldownAndLimit(t *testing.T) {
	h, harness, fire, _ := newFireHero(t)
	assert.Equal(t, VariantFire, h.variant)
	assert.Equal(t, 2, harness.World.Live())

	in := enginetest.NewInput()
	in.Press(engine.ButtonFire)
	h.powers.Tick(16, in)
	require.Len(t, fire.Balls(), 1)
	ball := fire.Balls()[0]
	assert.True(t, ball.Active())
	assert.Equal(t, 300.0, fake(ball.body).VX)
	assert.Equal(t, "smb_fireball", harness.Sound.Last())

	h.powers.Tick(16, in)
	assert.Len(t, fire.Balls(), 1, "cooldown blocks a second launch")

	harness.Advance(150)
	h.sprite.SetFlipX(true)
	h.powers.Tick(16, in)
	require.Len(t, fire.Balls(), 2)
	assert.Equal(t, -300.0, fake(fire.Balls()[1].body).VX)

	harness.Advance(150)
	h.powers.Tick(16, in)
	assert.Len(t, fire.Balls(), 2, "no idle ball to reuse")

	ball.deactivate()
	harness.Advance(150)
	h.powers.Tick(16, in)
	assert.Len(t, fire.Balls(), 2)
	assert.True(t, ball.Active(), "first idle ball reused")
}

func TestFireBallHitsEnemyAndWall(t *testing.T) {
	h, harness, fire, enemies := newFireHero(t)
	in := enginetest.NewInput()
	in.Press(engine.ButtonFire)
	h.powers.Tick(16, in)
	ball := fire.Balls()[0]

	foe := newTestFoe()
	foeBody := enginetest.NewBody(130, 100, 16, 16)
	foeBody.OwnerValue = foe
	enemies.Add(foeBody)

	require.True(t, harness.World.Touch(fire.enemyHandle, ball.body, foeBody))
	assert.Equal(t, []bool{true}, foe.deaths)
	assert.True(t, ball.Exploding())
	assert.False(t, harness.World.Touch(fire.enemyHandle, ball.body, foeBody), "exploding balls are filtered")

	harness.Advance(200)
	assert.False(t, ball.Active())
	assert.False(t, ball.body.Enabled())

	h.powers.Tick(16, in)
	require.Len(t, fire.Balls(), 2)
	fresh := fire.Balls()[1]
	require.True(t, fresh.Active())
	harness.World.Contact(fire.worldHandle, fresh.body, nil)
	assert.False(t, fresh.Exploding(), "floor contact keeps bouncing")
	fake(fresh.body).BlockedBy.Right = true
	harness.World.Contact(fire.worldHandle, fresh.body, nil)
	assert.True(t, fresh.Exploding())
}

func TestFireBallOutOfRangeDeactivates(t *testing.T) {
	h, _, fire, _ := newFireHero(t)
	in := enginetest.NewInput()
	in.Press(engine.ButtonFire)
	h.powers.Tick(16, in)
	ball := fire.Balls()[0]
	fake(ball.body).X = 5000

	h.powers.Tick(16, nil)
	assert.False(t, ball.Active())
}

func TestFireLostOnSideHit(t *testing.T) {
	h, harness, fire, _ := newFireHero(t)
	require.NoError(t, h.powers.Add(KindLarge, probeFactory(&probe{kind: KindLarge}), false))
	in := enginetest.NewInput()
	in.Press(engine.ButtonFire)
	h.powers.Tick(16, in)
	ball := fire.Balls()[0]

	assert.False(t, h.powers.OverlapEnemy(newTestFoe(), true), "stomp keeps fire")
	assert.True(t, h.powers.Has(KindFire))

	assert.False(t, h.powers.OverlapEnemy(newTestFoe(), false), "side hit is not consumed")
	assert.False(t, h.powers.Has(KindFire))
	assert.Equal(t, VariantLarge, h.variant)
	assert.Equal(t, 0, harness.World.Live())
	assert.True(t, fake(ball.body).Destroyed)
	assert.Equal(t, 0, harness.Clock.Pending())
}
