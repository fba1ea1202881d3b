package actor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/platformer/brick"
	"github.com/milk9111/platformer/engine"
	"github.com/milk9111/platformer/engine/enginetest"
	"github.com/milk9111/platformer/levels"
	"github.com/milk9111/platformer/power"
	"github.com/milk9111/platformer/prefabs"
)

type payloads struct {
	got []string
}

func (p *payloads) SpawnPayload(payload string, _, _ float64) {
	p.got = append(p.got, payload)
}

type foe struct {
	body    *enginetest.Body
	dead    bool
	knocked bool
}

func (f *foe) Body() engine.Body { return f.body }
func (f *foe) Dead() bool        { return f.dead }
func (f *foe) Harmful() bool     { return true }
func (f *foe) Die(knocked bool)  { f.dead, f.knocked = true, knocked }

type rig struct {
	*enginetest.Harness
	char     *Character
	body     *enginetest.Body
	sprite   *enginetest.Sprite
	level    *levels.Map
	payloads *payloads
	deaths   int
}

func newRig(t *testing.T) *rig {
	t.Helper()
	h, svc := enginetest.NewHarness(t)
	spec, err := prefabs.LoadCharacterSpec()
	require.NoError(t, err)
	abilities, err := prefabs.LoadAbilitiesSpec()
	require.NoError(t, err)

	r := &rig{
		Harness:  h,
		sprite:   enginetest.NewSprite(),
		level:    levels.NewMap(40, 15),
		payloads: &payloads{},
	}
	kit := &power.Kit{
		Services:    svc,
		Abilities:   abilities,
		DefaultSize: spec.DefaultSize,
		LargeSize:   spec.LargeSize,
		Level:       r.level,
		Bricks:      brick.New(abilities.HitBrick, r.level, svc),
		Spawner:     r.payloads,
		Enemies:     engine.Bodies(),
	}
	r.char, err = New(Options{
		Spec:      spec,
		Kit:       kit,
		Sprite:    r.sprite,
		FallLimit: 240,
		OnDie:     func() { r.deaths++ },
	})
	require.NoError(t, err)
	r.body = r.char.Body().(*enginetest.Body)
	return r
}

func TestNewAttachesStartingAbilities(t *testing.T) {
	r := newRig(t)

	assert.Equal(t,
		[]power.Kind{power.KindMove, power.KindJump, power.KindEnterPipe, power.KindHitBrick},
		r.char.Powers().Kinds())
	assert.Equal(t, 8.0, r.body.W)
	assert.Equal(t, 16.0, r.body.H)
	assert.Equal(t, 200.0, r.body.MaxVX)
	assert.Equal(t, 300.0, r.body.MaxVY)
	assert.True(t, r.body.Gravity)
	assert.Same(t, r.char, r.body.Owner())
	assert.Equal(t, power.VariantDefault, r.char.Variant())
	assert.Equal(t, "stand", r.sprite.Current())
}

func TestNewRequiresKit(t *testing.T) {
	_, err := New(Options{})
	assert.Error(t, err)
}

func TestUpdateRunsAbilities(t *testing.T) {
	r := newRig(t)
	r.char.Update(16, enginetest.NewInput(engine.ButtonRight))
	assert.Equal(t, 250.0, r.body.AX)
	assert.False(t, r.sprite.FlipX())
}

func TestUpdateSkippedWhilePaused(t *testing.T) {
	r := newRig(t)
	r.World.Pause()
	r.body.Y = 1000
	r.char.Update(16, enginetest.NewInput(engine.ButtonRight))
	assert.Zero(t, r.body.AX)
	assert.False(t, r.char.Dead())
}

func TestOutOfBoundsKills(t *testing.T) {
	tests := []struct {
		name string
		x, y float64
	}{
		{name: "fell below the level", x: 50, y: 241},
		{name: "left the level", x: -1, y: 100},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := newRig(t)
			r.body.X, r.body.Y = tc.x, tc.y
			r.char.Update(16, nil)
			assert.True(t, r.char.Dead())
		})
	}
}

func TestDie(t *testing.T) {
	r := newRig(t)
	r.body.VX = 80

	r.char.Die()
	assert.True(t, r.char.Dead())
	assert.Equal(t, "dead", r.sprite.Current())
	assert.Equal(t, "smb_mariodie", r.Sound.Last())
	assert.Equal(t, 0.0, r.body.VX)
	assert.Equal(t, -200.0, r.body.VY)
	assert.False(t, r.body.Collidable())
	assert.Equal(t, []engine.Award{{Lives: -1, Source: "death"}}, r.Awards.List)

	r.char.Die()
	assert.Len(t, r.Awards.List, 1, "death is one-way")

	r.char.Update(16, enginetest.NewInput(engine.ButtonRight))
	assert.Zero(t, r.body.AX, "no input while dead")

	r.Advance(2999)
	assert.Zero(t, r.deaths)
	r.Advance(1)
	assert.Equal(t, 1, r.deaths)
}

func TestGrant(t *testing.T) {
	r := newRig(t)
	require.NoError(t, r.char.Grant(power.KindLarge, false))
	assert.True(t, r.World.Paused())

	r.sprite.Finish()
	assert.Equal(t, power.VariantLarge, r.char.Variant())
	assert.Equal(t, 32.0, r.body.H)
	assert.False(t, r.World.Paused())

	r.char.Die()
	require.NoError(t, r.char.Grant(power.KindInvincible, false))
	assert.False(t, r.char.Powers().Has(power.KindInvincible))
}

func TestOverlapEnemyUsesAbilities(t *testing.T) {
	r := newRig(t)
	f := &foe{body: enginetest.NewBody(100, 100, 16, 16)}
	assert.False(t, r.char.OverlapEnemy(f, false))

	require.NoError(t, r.char.Grant(power.KindInvincible, false))
	assert.True(t, r.char.OverlapEnemy(f, false))
	assert.True(t, f.dead)
	assert.True(t, f.knocked)
}

func TestColliderWorldPassesBlockedSensors(t *testing.T) {
	r := newRig(t)
	q := r.level.PutTile(6, 5, 2, true)
	q.Reaction = levels.ReactionQuestionMark
	q.PowerUp = levels.PayloadStar

	assert.False(t, r.char.ColliderWorld(q))
	assert.Empty(t, r.payloads.got, "no head bump without the up sensor")

	r.body.BlockedBy = engine.Dirs{Up: true}
	r.char.ColliderWorld(q)
	assert.Equal(t, []string{levels.PayloadStar}, r.payloads.got)
}

func TestDestroy(t *testing.T) {
	r := newRig(t)
	r.char.Die()
	r.char.Destroy()

	assert.Zero(t, r.char.Powers().Len())
	assert.True(t, r.body.Destroyed)
	r.Advance(5000)
	assert.Zero(t, r.deaths)
}
