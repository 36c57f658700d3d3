package metrics

import "github.com/san-kum/longsim/internal/sim"

// TopSpeed records the maximum speed seen over a run.
type TopSpeed struct {
	name string
	max  float64
	seen bool
}

func NewTopSpeed() *TopSpeed {
	return &TopSpeed{name: "top_speed"}
}

func (m *TopSpeed) Name() string { return m.name }

func (m *TopSpeed) Observe(s sim.Snapshot, u sim.Command, t float64) {
	if !m.seen || s.V > m.max {
		m.max = s.V
		m.seen = true
	}
}

func (m *TopSpeed) Value() float64 {
	return m.max
}

func (m *TopSpeed) Reset() {
	m.max = 0
	m.seen = false
}

// Distance records the final position.
type Distance struct {
	name  string
	final float64
}

func NewDistance() *Distance {
	return &Distance{name: "distance"}
}

func (m *Distance) Name() string { return m.name }

func (m *Distance) Observe(s sim.Snapshot, u sim.Command, t float64) {
	m.final = s.X
}

func (m *Distance) Value() float64 {
	return m.final
}

func (m *Distance) Reset() {
	m.final = 0
}
