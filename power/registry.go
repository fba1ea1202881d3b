package power

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/milk9111/platformer/engine"
)

// Factory builds a fresh ability instance.
type Factory func() Ability

// Registry holds the active abilities of one actor.
type Registry struct {
	owner   Target
	name    string
	allowed []Kind
	active  map[Kind]Ability
	logger  *zap.Logger
}

func NewRegistry(owner Target, name string, allowed []Kind, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		owner:   owner,
		name:    name,
		allowed: append([]Kind(nil), allowed...),
		active:  make(map[Kind]Ability, len(allowed)),
		logger:  logger,
	}
}

// Allowed returns the allow-list in evaluation order.
func (r *Registry) Allowed() []Kind {
	return append([]Kind(nil), r.allowed...)
}

func (r *Registry) allows(kind Kind) bool {
	for _, k := range r.allowed {
		if k == kind {
			return true
		}
	}
	return false
}

// Add attaches a new ability of kind built by factory. Without replace an
// already active kind is left alone and factory is not called. With replace
// the old instance is detached before the new one is stored.
func (r *Registry) Add(kind Kind, factory Factory, replace bool) error {
	if !r.allows(kind) {
		return &ConfigurationError{Owner: r.name, Kind: kind, Reason: "not in allow-list"}
	}
	if factory == nil {
		return &ConfigurationError{Owner: r.name, Kind: kind, Reason: "nil factory"}
	}
	if _, ok := r.active[kind]; ok && !replace {
		return nil
	}

	a := factory()
	if a == nil {
		return &ConfigurationError{Owner: r.name, Kind: kind, Reason: "factory returned nil"}
	}
	if a.Kind() != kind {
		return &ConfigurationError{Owner: r.name, Kind: kind, Reason: fmt.Sprintf("factory built %s", a.Kind())}
	}

	r.Remove(kind)
	r.active[kind] = a
	r.logger.Debug("ability added", zap.String("owner", r.name), zap.Stringer("kind", kind))
	if at, ok := a.(Attacher); ok {
		at.Attach(r.owner)
	}
	return nil
}

// Remove detaches and drops kind. Removing an inactive kind does nothing, so
// abilities may remove themselves or siblings from inside any hook.
func (r *Registry) Remove(kind Kind) {
	a, ok := r.active[kind]
	if !ok {
		return
	}
	delete(r.active, kind)
	r.logger.Debug("ability removed", zap.String("owner", r.name), zap.Stringer("kind", kind))
	if d, ok := a.(Detacher); ok {
		d.Detach(r.owner)
	}
}

func (r *Registry) Get(kind Kind) (Ability, bool) {
	a, ok := r.active[kind]
	return a, ok
}

func (r *Registry) Has(kind Kind) bool {
	_, ok := r.active[kind]
	return ok
}

// Kinds returns the active kinds in evaluation order.
func (r *Registry) Kinds() []Kind {
	out := make([]Kind, 0, len(r.active))
	for _, k := range r.allowed {
		if _, ok := r.active[k]; ok {
			out = append(out, k)
		}
	}
	return out
}

func (r *Registry) Len() int {
	return len(r.active)
}

// Clear detaches every ability, last allowed kind first.
func (r *Registry) Clear() {
	for i := len(r.allowed) - 1; i >= 0; i-- {
		r.Remove(r.allowed[i])
	}
}

// snapshot captures the instances a dispatch pass will visit. Abilities added
// during the pass wait for the next one; abilities removed during the pass
// are skipped.
func (r *Registry) snapshot() []Ability {
	out := make([]Ability, 0, len(r.active))
	for _, k := range r.allowed {
		if a, ok := r.active[k]; ok {
			out = append(out, a)
		}
	}
	return out
}

func (r *Registry) live(a Ability) bool {
	cur, ok := r.active[a.Kind()]
	return ok && cur == a
}

// Tick runs every Ticker in order.
func (r *Registry) Tick(deltaMs float64, in engine.Input) {
	for _, a := range r.snapshot() {
		if !r.live(a) {
			continue
		}
		if t, ok := a.(Ticker); ok {
			t.Tick(deltaMs, r.owner, in)
		}
	}
}

// OverlapEnemy offers an enemy contact to each OverlapHandler until one
// consumes it.
func (r *Registry) OverlapEnemy(foe Foe, steppedOn bool) bool {
	for _, a := range r.snapshot() {
		if !r.live(a) {
			continue
		}
		if h, ok := a.(OverlapHandler); ok && h.OverlapEnemy(r.owner, foe, steppedOn) {
			return true
		}
	}
	return false
}

// ContactWorld offers a world contact to each ContactHandler until one
// consumes it.
func (r *Registry) ContactWorld(c Contact) bool {
	for _, a := range r.snapshot() {
		if !r.live(a) {
			continue
		}
		if h, ok := a.(ContactHandler); ok && h.ContactWorld(r.owner, c) {
			return true
		}
	}
	return false
}
