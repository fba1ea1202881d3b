package levels

import (
	"fmt"
	"strconv"
)

// Property is one entry of a Tiled property array.
type Property struct {
	Name  string `json:"name"`
	Type  string `json:"type,omitempty"`
	Value any    `json:"value"`
}

// Properties is the keyed form of a Tiled property array.
type Properties map[string]any

// ParseTiledProperties converts a Tiled property array into a keyed lookup.
// Later entries win on duplicate names. A nil or empty array yields an empty,
// non-nil map.
func ParseTiledProperties(props []Property) Properties {
	out := make(Properties, len(props))
	for _, p := range props {
		out[p.Name] = p.Value
	}
	return out
}

// String returns the named property as a string.
func (p Properties) String(name string) string {
	if p == nil {
		return ""
	}
	switch v := p[name].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// Int returns the named property as an int. JSON numbers decode as float64.
func (p Properties) Int(name string) int {
	if p == nil {
		return 0
	}
	switch v := p[name].(type) {
	case int:
		return v
	case float64:
		return int(v)
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0
		}
		return n
	}
	return 0
}

// Bool returns the named property as a bool.
func (p Properties) Bool(name string) bool {
	if p == nil {
		return false
	}
	switch v := p[name].(type) {
	case bool:
		return v
	case string:
		b, _ := strconv.ParseBool(v)
		return b
	}
	return false
}

// Merge copies every entry of other into p.
func (p Properties) Merge(other Properties) {
	for k, v := range other {
		p[k] = v
	}
}
