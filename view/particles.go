package view

import "math"

// BurstSpec shapes one kind of particle burst.
type BurstSpec struct {
	Count      int
	Speed      float64
	Gravity    float64
	LifespanMs float64
	// Angles in degrees, clockwise from +X with Y down.
	MinAngle, MaxAngle float64
}

// DefaultBursts holds the bursts the game emits.
var DefaultBursts = map[string]BurstSpec{
	"brick": {Count: 6, Speed: 400, Gravity: 1000, LifespanMs: 2000, MinAngle: -115, MaxAngle: -70},
}

type Particle struct {
	Key    string
	X, Y   float64
	VX, VY float64
	AgeMs  float64

	gravity float64
	life    float64
}

// Particles is a fire-and-forget particle list. Angles are spread evenly
// over each burst's range.
type Particles struct {
	specs map[string]BurstSpec
	live  []Particle
}

func NewParticles(specs map[string]BurstSpec) *Particles {
	return &Particles{specs: specs}
}

// Burst emits the named burst at x, y. Unknown keys are ignored.
func (p *Particles) Burst(key string, x, y float64) {
	spec, ok := p.specs[key]
	if !ok || spec.Count <= 0 {
		return
	}
	for i := 0; i < spec.Count; i++ {
		deg := spec.MinAngle
		if spec.Count > 1 {
			deg += (spec.MaxAngle - spec.MinAngle) * float64(i) / float64(spec.Count-1)
		}
		rad := deg * math.Pi / 180
		p.live = append(p.live, Particle{
			Key:     key,
			X:       x,
			Y:       y,
			VX:      math.Cos(rad) * spec.Speed,
			VY:      math.Sin(rad) * spec.Speed,
			gravity: spec.Gravity,
			life:    spec.LifespanMs,
		})
	}
}

// Update advances every particle by dt milliseconds and drops expired ones.
func (p *Particles) Update(dt float64) {
	secs := dt / 1000
	kept := p.live[:0]
	for _, pt := range p.live {
		pt.AgeMs += dt
		if pt.AgeMs >= pt.life {
			continue
		}
		pt.VY += pt.gravity * secs
		pt.X += pt.VX * secs
		pt.Y += pt.VY * secs
		kept = append(kept, pt)
	}
	p.live = kept
}

func (p *Particles) Live() []Particle { return p.live }
func (p *Particles) Clear()           { p.live = p.live[:0] }
