package power

import (
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/milk9111/platformer/engine"
	"github.com/milk9111/platformer/engine/enginetest"
	"github.com/milk9111/platformer/levels"
	"github.com/milk9111/platformer/prefabs"
)

type testHero struct {
	body      *enginetest.Body
	sprite    *enginetest.Sprite
	powers    *Registry
	variant   Variant
	protected bool
}

func newTestHero(t *testing.T, allowed []Kind) *testHero {
	h := &testHero{
		body:    enginetest.NewBody(100, 100, 8, 16),
		sprite:  enginetest.NewSprite(),
		variant: VariantDefault,
	}
	h.powers = NewRegistry(h, "hero", allowed, zaptest.NewLogger(t))
	return h
}

func (h *testHero) Body() engine.Body     { return h.body }
func (h *testHero) Sprite() engine.Sprite { return h.sprite }
func (h *testHero) Powers() *Registry     { return h.powers }
func (h *testHero) Variant() Variant      { return h.variant }
func (h *testHero) SetVariant(v Variant)  { h.variant = v }
func (h *testHero) Protected() bool       { return h.protected }
func (h *testHero) SetProtected(p bool)   { h.protected = p }

type testFoe struct {
	body    *enginetest.Body
	dead    bool
	harmful bool
	deaths  []bool
}

func newTestFoe() *testFoe {
	return &testFoe{body: enginetest.NewBody(120, 100, 16, 16), harmful: true}
}

func (f *testFoe) Body() engine.Body { return f.body }
func (f *testFoe) Dead() bool        { return f.dead }
func (f *testFoe) Harmful() bool     { return f.harmful }

func (f *testFoe) Die(knocked bool) {
	f.dead = true
	f.deaths = append(f.deaths, knocked)
}

// probe is a scripted ability for registry tests.
type probe struct {
	kind     Kind
	log      *[]string
	consume  bool
	onTick   func(t Target)
	detached int
	attached int
}

func (p *probe) Kind() Kind { return p.kind }

func (p *probe) Attach(Target) { p.attached++ }

func (p *probe) Tick(_ float64, t Target, _ engine.Input) {
	if p.log != nil {
		*p.log = append(*p.log, p.kind.String())
	}
	if p.onTick != nil {
		p.onTick(t)
	}
}

func (p *probe) OverlapEnemy(Target, Foe, bool) bool {
	if p.log != nil {
		*p.log = append(*p.log, "overlap:"+p.kind.String())
	}
	return p.consume
}

func (p *probe) ContactWorld(Target, Contact) bool {
	if p.log != nil {
		*p.log = append(*p.log, "contact:"+p.kind.String())
	}
	return p.consume
}

func (p *probe) Detach(Target) { p.detached++ }

func probeFactory(p *probe) Factory {
	return func() Ability { return p }
}

type testBricks struct {
	level   *levels.Map
	bumped  []*levels.Tile
	broken  []*levels.Tile
	bumping map[*levels.Tile]bool
}

func newTestBricks(m *levels.Map) *testBricks {
	return &testBricks{level: m, bumping: map[*levels.Tile]bool{}}
}

func (b *testBricks) Bump(tile *levels.Tile) {
	b.bumped = append(b.bumped, tile)
}

func (b *testBricks) Break(tile *levels.Tile) {
	b.broken = append(b.broken, tile)
	b.level.RemoveTileAt(tile.X, tile.Y)
}

func (b *testBricks) Bumping(tile *levels.Tile) bool { return b.bumping[tile] }

type spawn struct {
	payload string
	x, y    float64
}

type testSpawner struct {
	spawns []spawn
}

func (s *testSpawner) SpawnPayload(payload string, x, y float64) {
	s.spawns = append(s.spawns, spawn{payload, x, y})
}

func fake(b engine.Body) *enginetest.Body {
	return b.(*enginetest.Body)
}

func testAbilities(t *testing.T) *prefabs.AbilitiesSpec {
	t.Helper()
	spec, err := prefabs.LoadAbilitiesSpec()
	if err != nil {
		t.Fatalf("load abilities: %v", err)
	}
	return spec
}
