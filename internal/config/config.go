package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDt       = 0.01
	DefaultDuration = 20.0
	DefaultThrottle = 0.2
	DefaultIncline  = 0.0
)

type Config struct {
	Driver   string             `yaml:"driver"`
	Dt       float64            `yaml:"dt"`
	Duration float64            `yaml:"duration"`
	Inputs   InputConfig        `yaml:"inputs"`
	Ramp     RampConfig         `yaml:"ramp"`
	Grade    []GradeConfig      `yaml:"grade"`
	Vehicle  map[string]float64 `yaml:"vehicle"`
}

// InputConfig holds the fixed inputs for the "constant" driver.
type InputConfig struct {
	Throttle float64 `yaml:"throttle"`
	Incline  float64 `yaml:"incline"`
}

// RampConfig parameterizes the trapezoidal throttle schedule.
type RampConfig struct {
	Start   float64 `yaml:"start"`
	Peak    float64 `yaml:"peak"`
	RampEnd float64 `yaml:"ramp_end"`
	HoldEnd float64 `yaml:"hold_end"`
	End     float64 `yaml:"end"`
}

// GradeConfig is one road segment: the incline angle atan(rise/run)
// applies until position Until.
type GradeConfig struct {
	Until float64 `yaml:"until"`
	Rise  float64 `yaml:"rise"`
	Run   float64 `yaml:"run"`
}

func DefaultConfig() *Config {
	return &Config{
		Driver:   "constant",
		Dt:       DefaultDt,
		Duration: DefaultDuration,
		Inputs: InputConfig{
			Throttle: DefaultThrottle,
			Incline:  DefaultIncline,
		},
		Ramp: RampConfig{
			Start:   0.2,
			Peak:    0.5,
			RampEnd: 5,
			HoldEnd: 15,
			End:     20,
		},
		Grade: []GradeConfig{
			{Until: 60, Rise: 3, Run: 60},
			{Until: 150, Rise: 9, Run: 90},
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
