package sim

import (
	"context"
)

// Runner drives a Model through a fixed time grid, sampling commands
// from a Driver and recording the trajectory. It is not safe for
// concurrent use; give each goroutine its own Runner and Model.
type Runner struct {
	model     Model
	metrics   []Metric
	observers []Observer
}

func New(model Model) *Runner {
	return &Runner{
		model:     model,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

func (r *Runner) Run(ctx context.Context, drv Driver, cfg Config) (*Result, error) {
	if err := r.validateConfig(cfg); err != nil {
		return nil, err
	}

	dt := r.model.SampleTime()
	steps := int(cfg.Duration / dt)
	result := &Result{
		Snapshots: make([]Snapshot, 0, steps+1),
		Commands:  make([]Command, 0, steps),
		Times:     make([]float64, 0, steps+1),
		Metrics:   make(map[string]float64),
		Errors:    make([]error, 0),
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	t := 0.0
	snap := r.model.Snapshot()
	result.Snapshots = append(result.Snapshots, snap)
	result.Times = append(result.Times, t)

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		u := drv.Command(t, snap.X)

		for _, m := range r.metrics {
			m.Observe(snap, u, t)
		}
		for _, obs := range r.observers {
			obs.OnStep(snap, u, t)
		}

		r.model.Step(u.Throttle, u.Incline)
		snap = r.model.Snapshot()
		t += dt
		result.StepsTaken++

		if cfg.ValidateState && !snap.IsValid() {
			result.Errors = append(result.Errors, &StepError{Step: i, Time: t, Wrapped: ErrInvalidState})
			break
		}

		result.Snapshots = append(result.Snapshots, snap)
		result.Commands = append(result.Commands, u)
		result.Times = append(result.Times, t)
	}

	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

// RunWithCallback steps the model without recording, handing each
// sample to callback. Returning false stops the run.
func (r *Runner) RunWithCallback(ctx context.Context, drv Driver, cfg Config, callback func(Snapshot, Command, float64) bool) error {
	if err := r.validateConfig(cfg); err != nil {
		return err
	}

	dt := r.model.SampleTime()
	t := 0.0

	for t < cfg.Duration {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		snap := r.model.Snapshot()
		u := drv.Command(t, snap.X)

		if !callback(snap, u, t) {
			return nil
		}

		r.model.Step(u.Throttle, u.Incline)
		t += dt

		if cfg.ValidateState && !r.model.Snapshot().IsValid() {
			return &StepError{Step: int(t / dt), Time: t, Wrapped: ErrInvalidState}
		}
	}

	return nil
}

func (r *Runner) validateConfig(cfg Config) error {
	if cfg.Duration <= 0 {
		return ErrBadDuration
	}
	if r.model.SampleTime() <= 0 {
		return ErrBadSampleTime
	}
	return nil
}
