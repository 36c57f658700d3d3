// Package vehicle implements the forward longitudinal vehicle model.
//
// The model accepts a throttle percentage and a road incline angle and
// steps the combined engine/body dynamic equations over a fixed sample
// time:
//
//	J_e dw_e/dt = T_e - GR * r_e * F_load
//	m  dv/dt    = F_x - F_load
//
// Engine torque follows a quadratic curve in engine speed, the load is
// quadratic aerodynamic drag plus linearized rolling friction plus the
// grade force, and the tire force is linear in the slip ratio until it
// saturates at the friction limit. The model covers forward motion
// only (v >= 0); the slip ratio divides by the current speed, so
// stepping from exactly v = 0 is undefined and left unguarded.
package vehicle

import (
	"fmt"
	"math"

	"github.com/san-kum/longsim/internal/sim"
)

const DefaultSampleTime = 0.01

// Initial condition shared by construction and Reset.
const (
	initialSpeed       = 5.0
	initialEngineSpeed = 100.0
)

type Vehicle struct {
	// Throttle to engine torque: T_e = throttle*(A0 + A1*w_e + A2*w_e^2).
	A0 float64
	A1 float64
	A2 float64

	// Gear ratio, effective wheel radius, lumped engine inertia.
	GearRatio     float64
	WheelRadius   float64
	EngineInertia float64

	Mass    float64
	Gravity float64

	// Aerodynamic and rolling friction coefficients.
	DragCoeff float64
	RollCoeff float64

	// Tire force: linear in slip below saturation.
	TireStiffness float64
	TireForceMax  float64

	// State.
	X           float64
	V           float64
	Accel       float64
	EngineSpeed float64
	EngineAccel float64

	sampleTime float64
}

func New() *Vehicle {
	return NewWithSampleTime(DefaultSampleTime)
}

// NewWithSampleTime builds a vehicle with the default physical
// parameters and the given integration step. The sample time is fixed
// for the lifetime of the model.
func NewWithSampleTime(dt float64) *Vehicle {
	v := &Vehicle{
		A0: 400, A1: 0.1, A2: -0.0002,

		GearRatio:     0.35,
		WheelRadius:   0.3,
		EngineInertia: 10,

		Mass:    2000,
		Gravity: 9.81,

		DragCoeff: 1.36,
		RollCoeff: 0.01,

		TireStiffness: 10000,
		TireForceMax:  10000,

		sampleTime: dt,
	}
	v.Reset()
	return v
}

// Reset restores the dynamic state to the initial condition. Physical
// parameters are untouched.
func (v *Vehicle) Reset() {
	v.X = 0
	v.V = initialSpeed
	v.Accel = 0
	v.EngineSpeed = initialEngineSpeed
	v.EngineAccel = 0
}

// Forces is the instantaneous force and slip breakdown evaluated from
// the current state, before any integration.
type Forces struct {
	EngineTorque float64
	Aero         float64
	Rolling      float64
	Grade        float64
	Load         float64
	SlipRatio    float64
	Tire         float64
}

// Forces evaluates the force terms for the given inputs without
// advancing the state. Step uses exactly this evaluation.
func (v *Vehicle) Forces(throttle, incline float64) Forces {
	f := Forces{
		EngineTorque: throttle * (v.A0 + v.A1*v.EngineSpeed + v.A2*v.EngineSpeed*v.EngineSpeed),
		Aero:         v.DragCoeff * v.V * v.V,
		Rolling:      v.RollCoeff * v.V,
		Grade:        v.Mass * v.Gravity * math.Sin(incline),
	}
	f.Load = f.Aero + f.Rolling + f.Grade

	wheelSpeed := v.GearRatio * v.EngineSpeed
	f.SlipRatio = (wheelSpeed*v.WheelRadius - v.V) / v.V
	if math.Abs(f.SlipRatio) < 1 {
		f.Tire = v.TireStiffness * f.SlipRatio
	} else {
		f.Tire = v.TireForceMax
	}
	return f
}

// Step advances the state by one sample time using the explicit Euler
// scheme of the reference model. All force terms are evaluated from
// the pre-step state; the position update then uses the just-updated
// speed. That ordering is part of the model's contract; changing it
// changes every output trajectory.
func (v *Vehicle) Step(throttle, incline float64) {
	f := v.Forces(throttle, incline)

	v.EngineAccel = (f.EngineTorque - v.GearRatio*v.WheelRadius*f.Load) / v.EngineInertia
	v.Accel = (f.Tire - f.Load) / v.Mass

	dt := v.sampleTime
	v.EngineSpeed += v.EngineAccel * dt
	v.V += v.Accel * dt
	v.X += v.V*dt - 0.5*v.Accel*dt*dt
}

func (v *Vehicle) Snapshot() sim.Snapshot {
	return sim.Snapshot{
		X:           v.X,
		V:           v.V,
		Accel:       v.Accel,
		EngineSpeed: v.EngineSpeed,
		EngineAccel: v.EngineAccel,
	}
}

func (v *Vehicle) SampleTime() float64 {
	return v.sampleTime
}

func (v *Vehicle) GetParams() map[string]float64 {
	return map[string]float64{
		"a0":             v.A0,
		"a1":             v.A1,
		"a2":             v.A2,
		"gear_ratio":     v.GearRatio,
		"wheel_radius":   v.WheelRadius,
		"engine_inertia": v.EngineInertia,
		"mass":           v.Mass,
		"gravity":        v.Gravity,
		"drag":           v.DragCoeff,
		"rolling":        v.RollCoeff,
		"tire_stiffness": v.TireStiffness,
		"tire_force_max": v.TireForceMax,
	}
}

func (v *Vehicle) SetParam(name string, value float64) error {
	switch name {
	case "a0":
		v.A0 = value
	case "a1":
		v.A1 = value
	case "a2":
		v.A2 = value
	case "gear_ratio":
		v.GearRatio = value
	case "wheel_radius":
		v.WheelRadius = value
	case "engine_inertia":
		v.EngineInertia = value
	case "mass":
		v.Mass = value
	case "gravity":
		v.Gravity = value
	case "drag":
		v.DragCoeff = value
	case "rolling":
		v.RollCoeff = value
	case "tire_stiffness":
		v.TireStiffness = value
	case "tire_force_max":
		v.TireForceMax = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}
