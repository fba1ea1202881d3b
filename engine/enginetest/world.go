package enginetest

import (
	"github.com/milk9111/platformer/engine"
	"github.com/milk9111/platformer/levels"
)

// Registration is a collider or overlap check recorded by World.
type Registration struct {
	Handle         engine.Handle
	Group          engine.Group
	Other          engine.Group
	TileProcess    engine.TileProcess
	TileCallback   engine.TileCallback
	OverlapProcess engine.OverlapProcess
	OverlapFn      engine.OverlapCallback
	Overlap        bool
}

// World records registrations and lets tests deliver contacts by hand.
type World struct {
	Created  []*Body
	Regs     map[engine.Handle]*Registration
	Order    []engine.Handle
	Removed  []engine.Handle
	paused   bool
	Pauses   int
	Resumes  int
	nextID   engine.Handle
}

var _ engine.World = (*World)(nil)

func NewWorld() *World {
	return &World{Regs: make(map[engine.Handle]*Registration)}
}

func (w *World) NewBody(spec engine.BodySpec) engine.Body {
	b := NewBody(spec.X, spec.Y, spec.Width, spec.Height)
	b.Gravity = spec.Gravity
	b.OwnerValue = spec.Owner
	w.Created = append(w.Created, b)
	return b
}

func (w *World) DestroyBody(b engine.Body) {
	if fb, ok := b.(*Body); ok {
		fb.Destroyed = true
		fb.IsEnabled = false
	}
}

func (w *World) Collide(g engine.Group, process engine.TileProcess, fn engine.TileCallback) engine.Handle {
	return w.add(&Registration{Group: g, TileProcess: process, TileCallback: fn})
}

func (w *World) Overlap(a, b engine.Group, process engine.OverlapProcess, fn engine.OverlapCallback) engine.Handle {
	return w.add(&Registration{Group: a, Other: b, OverlapProcess: process, OverlapFn: fn, Overlap: true})
}

func (w *World) add(r *Registration) engine.Handle {
	w.nextID++
	r.Handle = w.nextID
	w.Regs[r.Handle] = r
	w.Order = append(w.Order, r.Handle)
	return r.Handle
}

func (w *World) RemoveCollider(h engine.Handle) {
	if _, ok := w.Regs[h]; !ok {
		return
	}
	delete(w.Regs, h)
	w.Removed = append(w.Removed, h)
	for i, o := range w.Order {
		if o == h {
			w.Order = append(w.Order[:i], w.Order[i+1:]...)
			break
		}
	}
}

func (w *World) Pause() {
	w.paused = true
	w.Pauses++
}

func (w *World) Resume() {
	w.paused = false
	w.Resumes++
}

func (w *World) Paused() bool { return w.paused }

// Live reports how many registrations are still active.
func (w *World) Live() int { return len(w.Regs) }

// Contact delivers a tile contact through registration h, honouring its
// process predicate. It reports whether the callback ran.
func (w *World) Contact(h engine.Handle, b engine.Body, t *levels.Tile) bool {
	r, ok := w.Regs[h]
	if !ok || r.Overlap {
		return false
	}
	if r.TileProcess != nil && !r.TileProcess(b, t) {
		return false
	}
	if r.TileCallback != nil {
		r.TileCallback(b, t)
	}
	return true
}

// Touch delivers an overlap through registration h.
func (w *World) Touch(h engine.Handle, a, b engine.Body) bool {
	r, ok := w.Regs[h]
	if !ok || !r.Overlap {
		return false
	}
	if r.OverlapProcess != nil && !r.OverlapProcess(a, b) {
		return false
	}
	if r.OverlapFn != nil {
		r.OverlapFn(a, b)
	}
	return true
}
