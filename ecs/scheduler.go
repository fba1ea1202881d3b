package ecs

// System is advanced once per tick.
type System interface {
	Update(deltaMs float64)
}

// SystemFunc adapts a function to System.
type SystemFunc func(deltaMs float64)

func (f SystemFunc) Update(deltaMs float64) {
	f(deltaMs)
}

// Scheduler runs systems in registration order.
type Scheduler struct {
	systems []System
}

func NewScheduler(systems ...System) *Scheduler {
	copied := append([]System(nil), systems...)
	return &Scheduler{systems: copied}
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

func (s *Scheduler) Update(deltaMs float64) {
	for _, system := range s.systems {
		system.Update(deltaMs)
	}
}

func (s *Scheduler) Systems() []System {
	systems := make([]System, 0, len(s.systems))
	return append(systems, s.systems...)
}
