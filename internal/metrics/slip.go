package metrics

import (
	"math"

	"github.com/san-kum/longsim/internal/sim"
)

// PeakSlip records the largest slip-ratio magnitude over a run. It
// evaluates the same slip formula as the vehicle model but skips
// samples at exactly zero speed rather than propagating the division.
type PeakSlip struct {
	name        string
	gearRatio   float64
	wheelRadius float64
	max         float64
}

func NewPeakSlip(gearRatio, wheelRadius float64) *PeakSlip {
	return &PeakSlip{
		name:        "peak_slip",
		gearRatio:   gearRatio,
		wheelRadius: wheelRadius,
	}
}

func (m *PeakSlip) Name() string { return m.name }

func (m *PeakSlip) Observe(s sim.Snapshot, u sim.Command, t float64) {
	if s.V == 0 {
		return
	}
	slip := (m.gearRatio*s.EngineSpeed*m.wheelRadius - s.V) / s.V
	if math.Abs(slip) > m.max {
		m.max = math.Abs(slip)
	}
}

func (m *PeakSlip) Value() float64 {
	return m.max
}

func (m *PeakSlip) Reset() {
	m.max = 0
}
