// Package stats computes aggregate trajectory statistics — total
// duration, bounding box, start/end distance, and proposed
// takeoff/landing command times — from an already-decoded trajectory.
package stats

import (
	"gopkg.in/yaml.v3"

	"github.com/dronecore/skyb/errs"
)

// Config holds the scaled-unit knobs the statistics calculator runs
// with. It is typically loaded from a small YAML file shipped
// alongside a show, the way this module's ambient configuration is
// conventionally expressed.
type Config struct {
	Components                 []string `yaml:"components"`
	TakeoffAccelerationMmPerS2  float32  `yaml:"takeoff_acceleration_mm_s2"`
	TakeoffSpeedMmPerS          float32  `yaml:"takeoff_speed_mm_s"`
	MinAscentMm                 float32  `yaml:"min_ascent_mm"`
	VerticalityThreshold        float32  `yaml:"verticality_threshold"`
}

// DefaultConfig returns reasonable defaults for a consumer-drone-scale
// show: 1 m/s² takeoff acceleration, 1 m/s cruise, 0.5 m of ascent
// before the trajectory is considered airborne.
func DefaultConfig() Config {
	return Config{
		TakeoffAccelerationMmPerS2: 1000,
		TakeoffSpeedMmPerS:         1000,
		MinAscentMm:                500,
		VerticalityThreshold:       0.9,
	}
}

// LoadConfig parses a YAML-encoded Config.
func LoadConfig(data []byte) (Config, error) {
	c := DefaultConfig()
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, errs.Wrap(errs.PARSE, err, "stats: invalid config")
	}
	return c, nil
}
