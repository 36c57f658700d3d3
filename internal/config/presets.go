package config

var Presets = map[string]*Config{
	// Constant 20% throttle on a flat road; speed converges to the
	// drag/tire-force-limited terminal value.
	"constant": {
		Driver: "constant", Dt: 0.01, Duration: 100.0,
		Inputs: InputConfig{Throttle: 0.2},
	},
	// Trapezoidal throttle over the two-stage slope; the vehicle
	// crosses the top of the ramp at roughly 15 s.
	"slope": {
		Driver: "ramp", Dt: 0.01, Duration: 20.0,
		Ramp: RampConfig{Start: 0.2, Peak: 0.5, RampEnd: 5, HoldEnd: 15, End: 20},
		Grade: []GradeConfig{
			{Until: 60, Rise: 3, Run: 60},
			{Until: 150, Rise: 9, Run: 90},
		},
	},
	// Zero throttle from the default initial speed.
	"coast": {
		Driver: "coast", Dt: 0.01, Duration: 30.0,
	},
}

// GetPreset returns a copy of the named preset, so callers can layer
// overrides onto it without mutating the package-level table.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}

	cfg := *p
	cfg.Grade = append([]GradeConfig(nil), p.Grade...)
	if p.Vehicle != nil {
		cfg.Vehicle = make(map[string]float64, len(p.Vehicle))
		for k, v := range p.Vehicle {
			cfg.Vehicle[k] = v
		}
	}
	return &cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
