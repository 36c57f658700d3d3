// Package driver provides open-loop input schedules for simulation
// runs: constant inputs, time-driven throttle ramps, and
// position-driven grade profiles.
package driver

import (
	"fmt"
	"math"

	"github.com/san-kum/longsim/internal/sim"
)

// Constant applies a fixed throttle and incline.
type Constant struct {
	Throttle float64
	Incline  float64
}

func (c Constant) Command(t, x float64) sim.Command {
	return sim.Command{Throttle: c.Throttle, Incline: c.Incline}
}

// TrapezoidThrottle ramps linearly from Start to Peak over [0, RampEnd),
// holds Peak on [RampEnd, HoldEnd), then ramps linearly down to zero
// at End.
type TrapezoidThrottle struct {
	Start   float64
	Peak    float64
	RampEnd float64
	HoldEnd float64
	End     float64
}

func (p TrapezoidThrottle) At(t float64) float64 {
	switch {
	case t < p.RampEnd:
		return p.Start + (p.Peak-p.Start)/p.RampEnd*t
	case t < p.HoldEnd:
		return p.Peak
	default:
		return (0 - p.Peak) / (p.End - p.HoldEnd) * (t - p.End)
	}
}

// GradeSegment holds a road angle up to (excluding) the given position.
type GradeSegment struct {
	Until float64
	Angle float64
}

// GradeProfile is a piecewise-constant incline over position.
// Segments must be ordered by Until; the road is flat beyond the last
// segment.
type GradeProfile []GradeSegment

func (g GradeProfile) At(x float64) float64 {
	for _, seg := range g {
		if x < seg.Until {
			return seg.Angle
		}
	}
	return 0
}

// Profile combines a time-driven throttle schedule with a
// position-driven incline schedule.
type Profile struct {
	Throttle func(t float64) float64
	Incline  func(x float64) float64
}

func (p Profile) Command(t, x float64) sim.Command {
	var cmd sim.Command
	if p.Throttle != nil {
		cmd.Throttle = p.Throttle(t)
	}
	if p.Incline != nil {
		cmd.Incline = p.Incline(x)
	}
	return cmd
}

// SlopeGrade is the two-stage test ramp: a 3 m rise over the first
// 60 m, a 9 m rise over the next 90 m, flat after 150 m.
func SlopeGrade() GradeProfile {
	return GradeProfile{
		{Until: 60, Angle: math.Atan(3.0 / 60.0)},
		{Until: 150, Angle: math.Atan(9.0 / 90.0)},
	}
}

// SlopeRun is the scripted 20 second climb over SlopeGrade: throttle
// ramps 0.2 to 0.5 over the first 5 s, holds 0.5 until 15 s, then
// ramps down to zero at 20 s.
func SlopeRun() Profile {
	ramp := TrapezoidThrottle{Start: 0.2, Peak: 0.5, RampEnd: 5, HoldEnd: 15, End: 20}
	grade := SlopeGrade()
	return Profile{Throttle: ramp.At, Incline: grade.At}
}

// FromName builds a named driver. Recognized names: "constant",
// "coast", "ramp".
func FromName(name string, params map[string]float64) (sim.Driver, error) {
	switch name {
	case "constant":
		return Constant{Throttle: params["throttle"], Incline: params["incline"]}, nil
	case "coast":
		return Constant{}, nil
	case "ramp":
		return SlopeRun(), nil
	default:
		return nil, fmt.Errorf("unknown driver: %s", name)
	}
}

func Names() []string {
	return []string{"constant", "coast", "ramp"}
}
