// Package metrics provides trajectory metrics observed during
// simulation runs.
package metrics

import "github.com/san-kum/longsim/internal/sim"

// Default is the metric set attached to CLI runs.
func Default(gearRatio, wheelRadius float64) []sim.Metric {
	return []sim.Metric{
		NewTopSpeed(),
		NewDistance(),
		NewPeakSlip(gearRatio, wheelRadius),
		NewThrottleDuty(),
		NewStability(100.0),
	}
}
