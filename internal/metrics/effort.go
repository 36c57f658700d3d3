package metrics

import "github.com/san-kum/longsim/internal/sim"

// ThrottleDuty records the mean throttle command over a run.
type ThrottleDuty struct {
	name    string
	sum     float64
	samples int
}

func NewThrottleDuty() *ThrottleDuty {
	return &ThrottleDuty{name: "throttle_duty"}
}

func (m *ThrottleDuty) Name() string { return m.name }

func (m *ThrottleDuty) Observe(s sim.Snapshot, u sim.Command, t float64) {
	m.sum += u.Throttle
	m.samples++
}

func (m *ThrottleDuty) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *ThrottleDuty) Reset() {
	m.sum = 0
	m.samples = 0
}
