package sim

import "math"

// Snapshot is the recorded vehicle state at one sample instant.
type Snapshot struct {
	X           float64
	V           float64
	Accel       float64
	EngineSpeed float64
	EngineAccel float64
}

func (s Snapshot) IsValid() bool {
	for _, v := range [...]float64{s.X, s.V, s.Accel, s.EngineSpeed, s.EngineAccel} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Command is the open-loop input applied over one step.
type Command struct {
	Throttle float64
	Incline  float64
}

// Model is a fixed-step plant: Step mutates internal state by one
// sample time, Snapshot reads it back.
type Model interface {
	Step(throttle, incline float64)
	Reset()
	Snapshot() Snapshot
	SampleTime() float64
}

// Driver supplies inputs for the next step. Throttle schedules are
// typically functions of elapsed time, incline of the current position.
type Driver interface {
	Command(t, x float64) Command
}

type Metric interface {
	Name() string
	Observe(s Snapshot, u Command, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(s Snapshot, u Command, t float64)
}

type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

type Config struct {
	Duration      float64
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Duration:      20.0,
		ValidateState: false,
	}
}

type Result struct {
	Snapshots  []Snapshot
	Commands   []Command
	Times      []float64
	Metrics    map[string]float64
	StepsTaken int
	Errors     []error
}
