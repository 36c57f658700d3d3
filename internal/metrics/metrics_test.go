package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/longsim/internal/sim"
)

func TestTopSpeed(t *testing.T) {
	m := NewTopSpeed()

	for _, v := range []float64{5, 12, 7, -3} {
		m.Observe(sim.Snapshot{V: v}, sim.Command{}, 0)
	}
	if m.Value() != 12 {
		t.Errorf("expected 12, got %f", m.Value())
	}

	m.Reset()
	m.Observe(sim.Snapshot{V: -1}, sim.Command{}, 0)
	if m.Value() != -1 {
		t.Errorf("after reset expected -1, got %f", m.Value())
	}
}

func TestDistance(t *testing.T) {
	m := NewDistance()
	m.Observe(sim.Snapshot{X: 10}, sim.Command{}, 0)
	m.Observe(sim.Snapshot{X: 42.5}, sim.Command{}, 1)
	if m.Value() != 42.5 {
		t.Errorf("expected 42.5, got %f", m.Value())
	}
}

func TestPeakSlip(t *testing.T) {
	m := NewPeakSlip(0.35, 0.3)

	// slip = (0.105*100 - 5)/5 = 1.1
	m.Observe(sim.Snapshot{V: 5, EngineSpeed: 100}, sim.Command{}, 0)
	// slip = (0.105*100 - 10)/10 = 0.05
	m.Observe(sim.Snapshot{V: 10, EngineSpeed: 100}, sim.Command{}, 1)
	// zero speed samples are skipped, not propagated
	m.Observe(sim.Snapshot{V: 0, EngineSpeed: 100}, sim.Command{}, 2)

	if math.Abs(m.Value()-1.1) > 1e-12 {
		t.Errorf("expected peak slip 1.1, got %f", m.Value())
	}
}

func TestThrottleDuty(t *testing.T) {
	m := NewThrottleDuty()
	if m.Value() != 0 {
		t.Error("empty metric should report 0")
	}

	m.Observe(sim.Snapshot{}, sim.Command{Throttle: 0.2}, 0)
	m.Observe(sim.Snapshot{}, sim.Command{Throttle: 0.6}, 1)
	if math.Abs(m.Value()-0.4) > 1e-12 {
		t.Errorf("expected mean 0.4, got %f", m.Value())
	}
}

func TestStability(t *testing.T) {
	m := NewStability(50)

	m.Observe(sim.Snapshot{V: 10}, sim.Command{}, 0)
	m.Observe(sim.Snapshot{V: 60}, sim.Command{}, 1)
	m.Observe(sim.Snapshot{V: math.NaN()}, sim.Command{}, 2)
	m.Observe(sim.Snapshot{V: 20}, sim.Command{}, 3)

	if math.Abs(m.Value()-0.5) > 1e-12 {
		t.Errorf("expected stability 0.5, got %f", m.Value())
	}
}

func TestDefaultSet(t *testing.T) {
	set := Default(0.35, 0.3)
	if len(set) != 5 {
		t.Fatalf("expected 5 metrics, got %d", len(set))
	}

	names := make(map[string]bool)
	for _, m := range set {
		names[m.Name()] = true
	}
	for _, want := range []string{"top_speed", "distance", "peak_slip", "throttle_duty", "stability"} {
		if !names[want] {
			t.Errorf("missing metric %s", want)
		}
	}
}
