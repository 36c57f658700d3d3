package metrics

import (
	"math"

	"github.com/san-kum/longsim/internal/sim"
)

// Stability reports the fraction of samples that stayed finite and
// below a speed threshold.
type Stability struct {
	name       string
	threshold  float64
	violations int
	samples    int
}

func NewStability(threshold float64) *Stability {
	return &Stability{
		name:      "stability",
		threshold: threshold,
	}
}

func (m *Stability) Name() string { return m.name }

func (m *Stability) Observe(s sim.Snapshot, u sim.Command, t float64) {
	m.samples++
	if !s.IsValid() || math.Abs(s.V) > m.threshold {
		m.violations++
	}
}

func (m *Stability) Value() float64 {
	if m.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(m.violations)/float64(m.samples)
}

func (m *Stability) Reset() {
	m.violations = 0
	m.samples = 0
}
