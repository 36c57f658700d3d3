package sim

import (
	"context"
	"errors"
	"math"
	"testing"
)

// decayModel drops speed by a fixed factor per step; throttle above
// 0.9 poisons the state with NaN.
type decayModel struct {
	v  float64
	dt float64
}

func newDecayModel() *decayModel {
	return &decayModel{v: 1.0, dt: 0.1}
}

func (m *decayModel) Step(throttle, incline float64) {
	if throttle > 0.9 {
		m.v = math.NaN()
		return
	}
	m.v -= m.v * m.dt
}

func (m *decayModel) Reset()              { m.v = 1.0 }
func (m *decayModel) Snapshot() Snapshot  { return Snapshot{V: m.v} }
func (m *decayModel) SampleTime() float64 { return m.dt }

type fixedDriver struct {
	throttle float64
}

func (d fixedDriver) Command(t, x float64) Command {
	return Command{Throttle: d.throttle}
}

func TestRunnerRun(t *testing.T) {
	runner := New(newDecayModel())

	result, err := runner.Run(context.Background(), fixedDriver{}, Config{Duration: 1.0})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(result.Snapshots) != 11 {
		t.Errorf("expected 11 snapshots, got %d", len(result.Snapshots))
	}
	if len(result.Times) != 11 {
		t.Errorf("expected 11 times, got %d", len(result.Times))
	}
	if len(result.Commands) != 10 {
		t.Errorf("expected 10 commands, got %d", len(result.Commands))
	}
	if result.StepsTaken != 10 {
		t.Errorf("expected 10 steps, got %d", result.StepsTaken)
	}

	final := result.Snapshots[len(result.Snapshots)-1].V
	expected := math.Pow(0.9, 10)
	if math.Abs(final-expected) > 1e-12 {
		t.Errorf("expected final v %.12f, got %.12f", expected, final)
	}
}

func TestRunnerInvalidConfig(t *testing.T) {
	runner := New(newDecayModel())

	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero duration", Config{Duration: 0}},
		{"negative duration", Config{Duration: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := runner.Run(context.Background(), fixedDriver{}, tt.cfg); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestRunnerBadSampleTime(t *testing.T) {
	m := newDecayModel()
	m.dt = 0
	runner := New(m)

	_, err := runner.Run(context.Background(), fixedDriver{}, Config{Duration: 1.0})
	if !errors.Is(err, ErrBadSampleTime) {
		t.Errorf("expected ErrBadSampleTime, got %v", err)
	}
}

func TestRunnerValidateState(t *testing.T) {
	runner := New(newDecayModel())

	result, err := runner.Run(context.Background(), fixedDriver{throttle: 1.0}, Config{Duration: 1.0, ValidateState: true})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(result.Errors) != 1 {
		t.Fatalf("expected 1 recorded error, got %d", len(result.Errors))
	}
	if !errors.Is(result.Errors[0], ErrInvalidState) {
		t.Errorf("expected ErrInvalidState, got %v", result.Errors[0])
	}
	if result.StepsTaken != 1 {
		t.Errorf("run should stop at the poisoned step, took %d", result.StepsTaken)
	}
	for _, s := range result.Snapshots {
		if !s.IsValid() {
			t.Error("invalid snapshot must not be recorded")
		}
	}
}

func TestRunnerContextCancel(t *testing.T) {
	runner := New(newDecayModel())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := runner.Run(ctx, fixedDriver{}, Config{Duration: 1.0})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if result == nil {
		t.Fatal("expected partial result on cancellation")
	}
	if result.StepsTaken != 0 {
		t.Errorf("expected no steps, got %d", result.StepsTaken)
	}
}

type countMetric struct {
	count int
}

func (m *countMetric) Name() string { return "count" }
func (m *countMetric) Observe(s Snapshot, u Command, t float64) {
	m.count++
}
func (m *countMetric) Value() float64 { return float64(m.count) }
func (m *countMetric) Reset()         { m.count = 0 }

func TestRunnerMetricsAndObservers(t *testing.T) {
	runner := New(newDecayModel())

	metric := &countMetric{}
	runner.AddMetric(metric)

	observed := 0
	runner.AddObserver(observerFunc(func(s Snapshot, u Command, tt float64) { observed++ }))

	result, err := runner.Run(context.Background(), fixedDriver{}, Config{Duration: 1.0})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.Metrics["count"] != 10 {
		t.Errorf("expected 10 observations, got %f", result.Metrics["count"])
	}
	if observed != 10 {
		t.Errorf("expected observer called 10 times, got %d", observed)
	}
}

type observerFunc func(Snapshot, Command, float64)

func (f observerFunc) OnStep(s Snapshot, u Command, t float64) { f(s, u, t) }

func TestRunWithCallbackEarlyStop(t *testing.T) {
	runner := New(newDecayModel())

	calls := 0
	err := runner.RunWithCallback(context.Background(), fixedDriver{}, Config{Duration: 1.0}, func(s Snapshot, u Command, tt float64) bool {
		calls++
		return calls < 3
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 callback calls, got %d", calls)
	}
}
