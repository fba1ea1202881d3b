package ecs

// World owns entity ids and the per-tick system order.
type World struct {
	entities  entityStore
	scheduler Scheduler
	elapsed   float64
	frames    uint64
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{}
}

// CreateEntity allocates a new entity.
func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// DestroyEntity releases an entity id; stale handles stop being alive.
func (w *World) DestroyEntity(e Entity) bool {
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	return w.entities.isAlive(e)
}

// Count returns the number of live entities.
func (w *World) Count() int {
	return w.entities.count()
}

// AddSystem appends a system to the update order.
func (w *World) AddSystem(s System) {
	if w == nil {
		return
	}
	w.scheduler.Add(s)
}

// Update runs all systems once.
func (w *World) Update(deltaMs float64) {
	if w == nil {
		return
	}
	w.elapsed += deltaMs
	w.frames++
	w.scheduler.Update(deltaMs)
}

// Elapsed returns total simulated milliseconds.
func (w *World) Elapsed() float64 {
	if w == nil {
		return 0
	}
	return w.elapsed
}

// Frames returns the number of completed ticks.
func (w *World) Frames() uint64 {
	if w == nil {
		return 0
	}
	return w.frames
}
