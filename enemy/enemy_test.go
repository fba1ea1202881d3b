package enemy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/milk9111/platformer/brick"
	"github.com/milk9111/platformer/engine"
	"github.com/milk9111/platformer/engine/enginetest"
	"github.com/milk9111/platformer/levels"
	"github.com/milk9111/platformer/power"
	"github.com/milk9111/platformer/prefabs"
)

type nopSpawner struct{}

func (nopSpawner) SpawnPayload(string, float64, float64) {}

type player struct {
	body *enginetest.Body
}

func (p *player) Body() engine.Body       { return p.body }
func (p *player) Sprite() engine.Sprite   { return enginetest.NewSprite() }
func (p *player) Powers() *power.Registry { return nil }

type rig struct {
	*enginetest.Harness
	group *Group
	level *levels.Map
}

func newRig(t testing.TB, spawns ...levels.Spawn) *rig {
	h, svc := enginetest.NewHarness(t)
	spec, err := prefabs.LoadEnemiesSpec()
	require.NoError(t, err)
	abilities, err := prefabs.LoadAbilitiesSpec()
	require.NoError(t, err)

	level := levels.NewMap(40, 15)
	bricks := brick.New(abilities.HitBrick, level, svc)
	group := NewGroup(Config{
		Spec:      spec,
		Services:  svc,
		NewSprite: func() engine.Sprite { return enginetest.NewSprite() },
		ShellBrick: func() power.Ability {
			return power.NewHitBrick([]engine.Direction{engine.Left, engine.Right}, level, bricks, nopSpawner{}, svc)
		},
		ViewWidth:  400,
		ViewHeight: 240,
	}, spawns)
	return &rig{Harness: h, group: group, level: level}
}

func (r *rig) spawn(t testing.TB, kind string, x, y float64) (*Enemy, *enginetest.Body, *enginetest.Sprite) {
	e, err := r.group.Spawn(kind, x, y)
	require.NoError(t, err)
	return e, e.Body().(*enginetest.Body), e.Sprite().(*enginetest.Sprite)
}

func TestRestoreDefaults(t *testing.T) {
	r := newRig(t)
	e, body, sprite := r.spawn(t, KindGoomba, 100, 208)

	assert.NotEqual(t, [16]byte{}, [16]byte(e.ID))
	assert.Equal(t, StatePatrol, e.State())
	assert.True(t, e.Harmful())
	assert.False(t, e.Dead())
	assert.Equal(t, 108.0, body.X)
	assert.Equal(t, 200.0, body.Y)
	assert.Equal(t, -30.0, body.VX)
	assert.Equal(t, 1.0, body.BX)
	assert.True(t, body.Enabled())
	assert.True(t, body.Collidable())
	assert.True(t, body.Gravity)
	assert.Equal(t, "goombaWalk", sprite.Current())
	assert.Equal(t, 1.0, sprite.Alpha())
	assert.True(t, sprite.Visible())
}

func TestGoombaStomp(t *testing.T) {
	r := newRig(t)
	e, body, sprite := r.spawn(t, KindGoomba, 100, 208)
	p := &player{body: enginetest.NewBody(108, 184, 8, 16)}

	assert.False(t, e.OverlapPlayer(p, false))
	assert.False(t, e.Dead())

	assert.False(t, e.OverlapPlayer(p, true))
	assert.True(t, e.Dead())
	assert.Equal(t, StateDead, e.State())
	assert.Zero(t, body.VX)
	assert.Equal(t, "goombaFlat", sprite.Current())
	assert.Equal(t, "smb_stomp", r.Sound.Last())
	assert.Equal(t, []engine.Award{{Score: 50, Source: KindGoomba}}, r.Awards.List)

	r.Advance(499)
	assert.True(t, e.Active(), "still fading")
	r.Advance(1)
	assert.False(t, e.Active())
	assert.False(t, sprite.Visible())
}

func TestKnockedDeath(t *testing.T) {
	r := newRig(t)
	e, body, sprite := r.spawn(t, KindGoomba, 100, 208)

	e.Die(true)
	e.Die(true)
	assert.True(t, e.Dead())
	assert.False(t, body.Collidable())
	assert.True(t, sprite.FlippedY)
	assert.Equal(t, -100.0, body.VY)
	assert.Len(t, r.Awards.List, 1)
	assert.True(t, e.Active(), "falls until culled")
}

func TestTurtleShellCycle(t *testing.T) {
	r := newRig(t)
	e, body, sprite := r.spawn(t, KindTurtle, 100, 208)
	require.Equal(t, 24.0, body.H)
	p := &player{body: enginetest.NewBody(100, 180, 8, 16)}

	assert.False(t, e.OverlapPlayer(p, true))
	assert.False(t, e.Dead())
	assert.Equal(t, StateShell, e.State())
	assert.False(t, e.Harmful())
	assert.Equal(t, 16.0, body.H)
	assert.Equal(t, 200.0, body.Y, "shell keeps its bottom edge")
	assert.Zero(t, body.VX)
	assert.Equal(t, "turtleShell", sprite.Current())

	assert.True(t, e.OverlapPlayer(p, false), "kick consumes the contact")
	assert.Equal(t, 114.0, body.X)
	assert.Equal(t, 250.0, body.VX)
	assert.True(t, e.Harmful())
	assert.True(t, e.Powers().Has(power.KindHitBrick))
	assert.Equal(t, "smb_kick", r.Sound.Last())

	assert.False(t, e.OverlapPlayer(p, false))
	assert.True(t, e.Harmful())

	assert.False(t, e.OverlapPlayer(p, true))
	assert.Zero(t, body.VX)
	assert.False(t, e.Harmful())
	assert.False(t, e.Powers().Has(power.KindHitBrick))
	assert.False(t, e.Dead())
}

func TestKickAwayFromPlayer(t *testing.T) {
	r := newRig(t)
	e, body, _ := r.spawn(t, KindTurtle, 100, 208)
	p := &player{body: enginetest.NewBody(120, 180, 8, 16)}
	e.OverlapPlayer(p, true)
	e.OverlapPlayer(p, false)
	assert.Equal(t, 102.0, body.X)
	assert.Equal(t, -250.0, body.VX)
}

func TestMovingShellKillsEnemies(t *testing.T) {
	r := newRig(t)
	shell, _, _ := r.spawn(t, KindTurtle, 100, 208)
	victim, _, victimSprite := r.spawn(t, KindGoomba, 130, 208)
	p := &player{body: enginetest.NewBody(100, 180, 8, 16)}

	shell.OverlapPlayer(p, true)
	shell.OverlapEnemy(victim)
	assert.False(t, victim.Dead(), "resting shell is harmless")

	shell.OverlapPlayer(p, false)
	shell.OverlapEnemy(victim)
	victim.OverlapEnemy(shell)
	assert.True(t, victim.Dead())
	assert.True(t, victimSprite.FlippedY)
	assert.False(t, shell.Dead())
}

func TestSlidingShellBreaksBricks(t *testing.T) {
	r := newRig(t)
	shell, body, _ := r.spawn(t, KindTurtle, 100, 208)
	p := &player{body: enginetest.NewBody(100, 180, 8, 16)}
	tile := r.level.PutTile(8, 12, 2, true)
	tile.Reaction = levels.ReactionBreakable
	body.BlockedBy = engine.Dirs{Right: true}

	shell.ColliderWorld(tile)
	assert.NotNil(t, r.level.TileAt(8, 12), "patrolling turtles leave bricks alone")

	shell.OverlapPlayer(p, true)
	shell.OverlapPlayer(p, false)
	shell.ColliderWorld(tile)
	assert.Nil(t, r.level.TileAt(8, 12))
	assert.Equal(t, "smb_breakblock", r.Sound.Last())
}

func TestRestoreClearsShell(t *testing.T) {
	r := newRig(t)
	e, body, sprite := r.spawn(t, KindTurtle, 100, 208)
	p := &player{body: enginetest.NewBody(100, 180, 8, 16)}
	e.OverlapPlayer(p, true)
	e.OverlapPlayer(p, false)
	e.Die(true)

	e.Restore(300, 208)
	assert.Equal(t, StatePatrol, e.State())
	assert.False(t, e.Dead())
	assert.True(t, e.Harmful())
	assert.Equal(t, 24.0, body.H)
	assert.Equal(t, 308.0, body.X)
	assert.Equal(t, -30.0, body.VX)
	assert.True(t, body.Collidable())
	assert.False(t, sprite.FlippedY)
	assert.Zero(t, e.Powers().Len())
	assert.Equal(t, "turtleWalk", sprite.Current())
}

func TestUpdateFacesTravel(t *testing.T) {
	r := newRig(t)
	e, body, sprite := r.spawn(t, KindGoomba, 100, 208)
	e.Update(16)
	assert.True(t, sprite.FlipX())
	body.VX = 30
	e.Update(16)
	assert.False(t, sprite.FlipX())
}

func TestGroupMaterializesWithinViewWidth(t *testing.T) {
	r := newRig(t,
		levels.Spawn{Kind: KindGoomba, X: 100, Y: 208},
		levels.Spawn{Kind: KindTurtle, X: 1000, Y: 208},
	)

	r.group.Update(16, 0, 100)
	require.Len(t, r.group.Members(), 1)
	assert.Equal(t, KindGoomba, r.group.Members()[0].Kind())
	assert.Len(t, r.group.Waiting(), 1)
	assert.Len(t, r.group.Bodies(), 1)

	r.group.Update(16, 600, 100)
	assert.Len(t, r.group.Members(), 1, "400 away is not close enough")

	r.group.Update(16, 601, 100)
	assert.Len(t, r.group.Members(), 2)
	assert.Empty(t, r.group.Waiting())
}

func TestGroupCullsAndRecycles(t *testing.T) {
	r := newRig(t)
	e, body, sprite := r.spawn(t, KindGoomba, 100, 208)

	r.group.Update(16, 108+700, 200)
	assert.Len(t, r.group.Members(), 1, "inside margin plus half the viewport")

	r.group.Update(16, 108, 200+621)
	assert.Empty(t, r.group.Members())
	assert.Equal(t, 1, r.group.Pooled())

	e, body, sprite = r.spawn(t, KindGoomba, 100, 208)
	r.group.Update(16, 108+701, 200)
	assert.Empty(t, r.group.Members())
	assert.Equal(t, 1, r.group.Pooled())
	assert.False(t, body.Enabled())
	assert.False(t, sprite.Visible())
	assert.False(t, e.Dead(), "culling hides without killing")

	again, _, _ := r.spawn(t, KindGoomba, 500, 208)
	assert.Same(t, e, again)
	assert.Zero(t, r.group.Pooled())
	assert.True(t, body.Enabled())
	assert.True(t, sprite.Visible())

	turtle, _, _ := r.spawn(t, KindTurtle, 500, 208)
	assert.NotSame(t, e, turtle)
	assert.NotEqual(t, e.ID, turtle.ID)
}

func TestStompedEnemyReturnsToPool(t *testing.T) {
	r := newRig(t)
	e, _, sprite := r.spawn(t, KindGoomba, 100, 208)
	e.Die(false)
	r.Advance(500)

	r.group.Update(16, 100, 200)
	assert.Empty(t, r.group.Members())
	assert.Equal(t, 1, r.group.Pooled())

	again, _, _ := r.spawn(t, KindGoomba, 100, 208)
	assert.Same(t, e, again)
	assert.False(t, again.Dead())
	assert.Equal(t, 1.0, sprite.Alpha())
	assert.Equal(t, "goombaWalk", sprite.Current())
}

func TestSpawnUnknownKind(t *testing.T) {
	r := newRig(t)
	_, err := r.group.Spawn("koopa-paratroopa", 0, 0)
	assert.ErrorContains(t, err, "unknown kind")
}

func TestGroupDestroy(t *testing.T) {
	r := newRig(t)
	r.spawn(t, KindGoomba, 100, 208)
	culled, _, _ := r.spawn(t, KindTurtle, 140, 208)
	r.group.Remove(culled)

	r.group.Destroy()
	for _, b := range r.World.Created {
		if b.OwnerValue == nil {
			continue
		}
		if _, ok := b.OwnerValue.(*Enemy); ok {
			assert.True(t, b.Destroyed)
		}
	}
	assert.Empty(t, r.group.Members())
}

func TestPoolAccounting(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		r := newRig(t)
		created := map[*Enemy]bool{}
		kinds := []string{KindGoomba, KindTurtle}

		for i := rapid.IntRange(1, 40).Draw(rt, "ops"); i > 0; i-- {
			members := r.group.Members()
			if len(members) == 0 || rapid.Bool().Draw(rt, "spawn") {
				kind := rapid.SampledFrom(kinds).Draw(rt, "kind")
				e, err := r.group.Spawn(kind, 0, 208)
				if err != nil {
					rt.Fatalf("spawn: %v", err)
				}
				if e.Dead() || !e.Harmful() || e.State() != StatePatrol {
					rt.Fatalf("spawned enemy not reset")
				}
				created[e] = true
				continue
			}
			victim := members[rapid.IntRange(0, len(members)-1).Draw(rt, "victim")]
			r.group.Remove(victim)
		}

		if got := len(r.group.Members()) + r.group.Pooled(); got != len(created) {
			rt.Fatalf("active+pooled = %d, constructed %d", got, len(created))
		}
		seen := map[*Enemy]bool{}
		for _, e := range r.group.Members() {
			if seen[e] {
				rt.Fatalf("enemy %s active twice", e.ID)
			}
			seen[e] = true
		}
	})
}
