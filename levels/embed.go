package levels

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/milk9111/platformer/common"
)

//go:embed *.json
var LevelsFS embed.FS

// TiledMap is the subset of the Tiled JSON map format the game reads.
type TiledMap struct {
	Width      int            `json:"width"`
	Height     int            `json:"height"`
	TileWidth  int            `json:"tilewidth"`
	TileHeight int            `json:"tileheight"`
	Layers     []TiledLayer   `json:"layers"`
	Tilesets   []TiledTileset `json:"tilesets"`
}

type TiledLayer struct {
	Name    string        `json:"name"`
	Type    string        `json:"type"`
	Width   int           `json:"width"`
	Height  int           `json:"height"`
	Data    []int         `json:"data,omitempty"`
	Objects []TiledObject `json:"objects,omitempty"`
}

type TiledObject struct {
	Name       string     `json:"name"`
	Type       string     `json:"type"`
	X          float64    `json:"x"`
	Y          float64    `json:"y"`
	Width      float64    `json:"width"`
	Height     float64    `json:"height"`
	Properties []Property `json:"properties,omitempty"`
}

type TiledTileset struct {
	FirstGID int            `json:"firstgid"`
	Tiles    []TiledTileDef `json:"tiles,omitempty"`
}

type TiledTileDef struct {
	ID         int        `json:"id"`
	Properties []Property `json:"properties,omitempty"`
}

const (
	WorldLayer     = "world"
	ModifiersLayer = "modifiers"
	EnemiesLayer   = "enemies"
)

// Options tunes level validation.
type Options struct {
	// EnemyKinds lists spawnable enemy kinds. Empty skips the check.
	EnemyKinds []string
}

// LoadLevelFromFS loads and validates an embedded level.
func LoadLevelFromFS(name string, opts Options) (*Map, error) {
	clean := strings.TrimPrefix(name, "levels/")
	data, err := fs.ReadFile(LevelsFS, clean)
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", clean, err)
	}
	return Load(data, opts)
}

// Load decodes a Tiled JSON map and builds a validated Map.
func Load(data []byte, opts Options) (*Map, error) {
	var tm TiledMap
	if err := json.Unmarshal(data, &tm); err != nil {
		return nil, fmt.Errorf("levels: unmarshal: %w", err)
	}
	return Build(&tm, opts)
}

// Build converts a decoded Tiled map into a Map, applies object layers and
// validates the result. Every authoring problem is reported at once.
func Build(tm *TiledMap, opts Options) (*Map, error) {
	if tm == nil || tm.Width <= 0 || tm.Height <= 0 {
		return nil, fmt.Errorf("levels: invalid map dimensions")
	}

	verr := &ValidationError{}
	m := NewMap(tm.Width, tm.Height)
	tileProps := tilesetProperties(tm.Tilesets)

	world := tm.layer(WorldLayer)
	if world == nil {
		verr.add("missing %q layer", WorldLayer)
		return nil, verr
	}
	if len(world.Data) != tm.Width*tm.Height {
		verr.add("layer %q has %d cells, want %d", WorldLayer, len(world.Data), tm.Width*tm.Height)
		return nil, verr
	}

	for i, gid := range world.Data {
		if gid == 0 {
			continue
		}
		x, y := i%tm.Width, i/tm.Width
		props := tileProps[gid]
		t := m.PutTile(x, y, gid, props.Bool("collide"))
		t.Props.Merge(props)
		r, err := ParseReaction(props.String("callback"))
		if err != nil {
			verr.add("tile (%d,%d): %v", x, y, err)
			continue
		}
		t.Reaction = r
	}

	if layer := tm.layer(ModifiersLayer); layer != nil {
		applyModifiers(m, layer.Objects, verr)
	}

	if layer := tm.layer(EnemiesLayer); layer != nil {
		known := make(map[string]bool, len(opts.EnemyKinds))
		for _, k := range opts.EnemyKinds {
			known[k] = true
		}
		for _, obj := range layer.Objects {
			if len(known) > 0 && !known[obj.Name] {
				verr.add("enemy at (%.0f,%.0f): unknown kind %q", obj.X, obj.Y, obj.Name)
				continue
			}
			m.spawns = append(m.spawns, Spawn{Kind: obj.Name, X: obj.X, Y: obj.Y})
		}
		sort.SliceStable(m.spawns, func(i, j int) bool { return m.spawns[i].X < m.spawns[j].X })
	}

	validatePipes(m, verr)

	if verr.HasErrors() {
		return nil, verr
	}
	return m, nil
}

func (tm *TiledMap) layer(name string) *TiledLayer {
	for i := range tm.Layers {
		if tm.Layers[i].Name == name {
			return &tm.Layers[i]
		}
	}
	return nil
}

func tilesetProperties(sets []TiledTileset) map[int]Properties {
	out := make(map[int]Properties)
	for _, set := range sets {
		for _, def := range set.Tiles {
			out[set.FirstGID+def.ID] = ParseTiledProperties(def.Properties)
		}
	}
	return out
}

func applyModifiers(m *Map, objects []TiledObject, verr *ValidationError) {
	for _, obj := range objects {
		switch obj.Type {
		case "powerUp":
			t := m.TileAt(int(obj.X)/common.TileSize, int(obj.Y)/common.TileSize-1)
			if t == nil {
				verr.add("powerUp %q at (%.0f,%.0f): no tile", obj.Name, obj.X, obj.Y)
				continue
			}
			if !knownPayloads[obj.Name] {
				verr.add("powerUp at (%.0f,%.0f): unknown payload %q", obj.X, obj.Y, obj.Name)
				continue
			}
			t.PowerUp = obj.Name
			t.Props["powerUp"] = obj.Name
			switch obj.Name {
			case PayloadOneUp:
				t.Reaction = ReactionQuestionMark
				t.Props["callback"] = ReactionQuestionMark.String()
				m.SetCollision(t, true)
			case PayloadCoin:
				t.HitNumber = 4
				t.Props["hitNumber"] = 4
			}
		case "pipe":
			t := m.TileAt(int(obj.X)/common.TileSize, int(obj.Y)/common.TileSize)
			if t == nil {
				verr.add("pipe %q at (%.0f,%.0f): no tile", obj.Name, obj.X, obj.Y)
				continue
			}
			props := ParseTiledProperties(obj.Properties)
			t.Dest = obj.Name
			t.Props["dest"] = obj.Name
			t.Props.Merge(props)
			t.Direction = props.String("direction")
		case "dest":
			props := ParseTiledProperties(obj.Properties)
			m.AddDest(Dest{Name: obj.Name, X: obj.X, Y: obj.Y, Direction: props.String("direction")})
		case "room":
			m.AddRoom(Room{Name: obj.Name, X: obj.X, Y: obj.Y, Width: obj.Width, Height: obj.Height})
		default:
			verr.add("modifier %q: unknown type %q", obj.Name, obj.Type)
		}
	}
}

func validatePipes(m *Map, verr *ValidationError) {
	for _, t := range m.Tiles() {
		if t.Dest == "" {
			continue
		}
		if _, ok := m.Dest(t.Dest); !ok {
			verr.add("pipe at (%d,%d): undefined dest %q", t.X, t.Y, t.Dest)
		}
		if _, ok := parseDirection(t.Direction); !ok {
			verr.add("pipe at (%d,%d): invalid direction %q", t.X, t.Y, t.Direction)
		}
	}
	for _, d := range m.dests {
		if d.Direction == "" {
			continue
		}
		if _, ok := parseDirection(d.Direction); !ok {
			verr.add("dest %q: invalid direction %q", d.Name, d.Direction)
		}
	}
}

func parseDirection(s string) (string, bool) {
	switch s {
	case "up", "down", "left", "right":
		return s, true
	}
	return "", false
}
