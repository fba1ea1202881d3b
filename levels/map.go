package levels

import "github.com/milk9111/platformer/common"

const (
	// UsedTileIndex is the sprite index of an exhausted question-mark block.
	UsedTileIndex = 44
	// FlagTileIndex marks the end-of-level pole base.
	FlagTileIndex = 5
)

// Payload names accepted by powerUp modifiers.
const (
	PayloadCoin     = "coin"
	PayloadMushroom = "mushroom"
	PayloadStar     = "star"
	PayloadOneUp    = "1up"
)

var knownPayloads = map[string]bool{
	PayloadCoin:     true,
	PayloadMushroom: true,
	PayloadStar:     true,
	PayloadOneUp:    true,
}

// Tile is one cell of the world layer together with the properties written
// onto it at load time and consulted at contact time.
type Tile struct {
	X, Y  int
	Index int

	PixelX float64
	PixelY float64

	Collides      bool
	Reaction      Reaction
	PowerUp       string
	Dest          string
	Direction     string
	HitNumber     int
	StopAnimation bool

	Props Properties
}

// BaseY is the resting pixel Y of the tile, ignoring bump offsets.
func (t *Tile) BaseY() float64 {
	return float64(t.Y * common.TileSize)
}

// MarkUsed turns a question-mark tile into the inert "used" block.
func (t *Tile) MarkUsed() {
	t.Collides = true
	t.StopAnimation = true
	t.Reaction = ReactionNone
	t.Index = UsedTileIndex
}

// Room is a camera region.
type Room struct {
	Name   string
	X, Y   float64
	Width  float64
	Height float64
}

// Dest is a pipe exit.
type Dest struct {
	Name      string
	X, Y      float64
	Direction string
}

// Spawn describes an enemy waiting to be materialized.
type Spawn struct {
	Kind string
	X, Y float64
}

// Map is the world layer plus object-layer lookups.
type Map struct {
	Width  int
	Height int

	tiles    []*Tile
	rooms    map[string]Room
	dests    map[string]Dest
	spawns   []Spawn
	watchers []func(*Tile)
}

// NewMap creates an empty map of the given size in tiles.
func NewMap(width, height int) *Map {
	return &Map{
		Width:  width,
		Height: height,
		tiles:  make([]*Tile, width*height),
		rooms:  make(map[string]Room),
		dests:  make(map[string]Dest),
	}
}

// PixelWidth is the map width in pixels.
func (m *Map) PixelWidth() float64 {
	return float64(m.Width * common.TileSize)
}

// PixelHeight is the map height in pixels.
func (m *Map) PixelHeight() float64 {
	return float64(m.Height * common.TileSize)
}

func (m *Map) inBounds(x, y int) bool {
	return m != nil && x >= 0 && y >= 0 && x < m.Width && y < m.Height
}

// TileAt returns the tile at tile coordinates, or nil for empty cells and
// coordinates outside the map.
func (m *Map) TileAt(x, y int) *Tile {
	if !m.inBounds(x, y) {
		return nil
	}
	return m.tiles[y*m.Width+x]
}

// TileAtWorld returns the tile under a pixel position.
func (m *Map) TileAtWorld(px, py float64) *Tile {
	if px < 0 || py < 0 {
		return nil
	}
	return m.TileAt(int(px)/common.TileSize, int(py)/common.TileSize)
}

// PutTile places a tile with the given sprite index and returns it.
func (m *Map) PutTile(x, y, index int, collides bool) *Tile {
	if !m.inBounds(x, y) {
		return nil
	}
	t := &Tile{
		X:        x,
		Y:        y,
		Index:    index,
		PixelX:   float64(x * common.TileSize),
		PixelY:   float64(y * common.TileSize),
		Collides: collides,
		Props:    Properties{},
	}
	m.tiles[y*m.Width+x] = t
	m.notify(t)
	return t
}

// RemoveTileAt clears a cell. Watchers see the removed tile with Collides
// false so they can drop any shape attached to it.
func (m *Map) RemoveTileAt(x, y int) *Tile {
	t := m.TileAt(x, y)
	if t == nil {
		return nil
	}
	m.tiles[y*m.Width+x] = nil
	t.Collides = false
	t.Reaction = ReactionNone
	m.notify(t)
	return t
}

// SetCollision toggles a tile's solidity.
func (m *Map) SetCollision(t *Tile, collides bool) {
	if t == nil || t.Collides == collides {
		return
	}
	t.Collides = collides
	m.notify(t)
}

// Tiles returns every non-empty tile in row-major order.
func (m *Map) Tiles() []*Tile {
	if m == nil {
		return nil
	}
	out := make([]*Tile, 0, len(m.tiles))
	for _, t := range m.tiles {
		if t != nil {
			out = append(out, t)
		}
	}
	return out
}

// FindByIndex returns the first tile with the given sprite index.
func (m *Map) FindByIndex(index int) *Tile {
	for _, t := range m.tiles {
		if t != nil && t.Index == index {
			return t
		}
	}
	return nil
}

// Watch registers fn to be called whenever a tile is placed, removed or
// changes collision.
func (m *Map) Watch(fn func(*Tile)) {
	if m == nil || fn == nil {
		return
	}
	m.watchers = append(m.watchers, fn)
}

func (m *Map) notify(t *Tile) {
	for _, fn := range m.watchers {
		fn(t)
	}
}

// Room returns a named room.
func (m *Map) Room(name string) (Room, bool) {
	r, ok := m.rooms[name]
	return r, ok
}

// Rooms returns every room.
func (m *Map) Rooms() []Room {
	out := make([]Room, 0, len(m.rooms))
	for _, r := range m.rooms {
		out = append(out, r)
	}
	return out
}

// Dest returns a named pipe destination.
func (m *Map) Dest(name string) (Dest, bool) {
	d, ok := m.dests[name]
	return d, ok
}

// Spawns returns the enemy spawn descriptors sorted by X.
func (m *Map) Spawns() []Spawn {
	return append([]Spawn(nil), m.spawns...)
}

// AddRoom registers a camera region.
func (m *Map) AddRoom(r Room) {
	m.rooms[r.Name] = r
}

// AddDest registers a pipe destination.
func (m *Map) AddDest(d Dest) {
	m.dests[d.Name] = d
}
