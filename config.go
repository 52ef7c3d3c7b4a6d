package chasecam

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the rig tunables. Angles are in degrees, distances in world units.
type Config struct {
	LookSpeed   float32 `yaml:"look_speed"`
	FollowSpeed float32 `yaml:"follow_speed"`
	PivotSpeed  float32 `yaml:"pivot_speed"`
	MinPivot    float32 `yaml:"min_pivot"`
	MaxPivot    float32 `yaml:"max_pivot"`

	// DefaultDepth is the camera's resting local z. Zero means "use the camera's
	// local z at construction".
	DefaultDepth float32 `yaml:"default_depth"`

	ProbeRadius     float32   `yaml:"probe_radius"`
	CollisionOffset float32   `yaml:"collision_offset"`
	MinClearance    float32   `yaml:"min_clearance"`
	IgnoreLayers    LayerMask `yaml:"ignore_layers"`
}

func DefaultConfig() Config {
	return Config{
		LookSpeed:       0.03,
		FollowSpeed:     0.1,
		PivotSpeed:      0.03,
		MinPivot:        -35,
		MaxPivot:        35,
		DefaultDepth:    -5,
		ProbeRadius:     0.2,
		CollisionOffset: 0.2,
		MinClearance:    0.2,
	}
}

// LoadConfig reads a YAML file on top of DefaultConfig. Keys missing from the
// file keep their default value.
func LoadConfig(filename string) (Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, fmt.Errorf("chasecam: load %s: %w", filename, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("chasecam: parse %s: %w", filename, err)
	}
	return cfg, nil
}

func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every violated constraint, each wrapping ErrInvalidConfig.
func (c Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...)))
	}

	for _, f := range []struct {
		name string
		v    float32
	}{
		{"look_speed", c.LookSpeed},
		{"follow_speed", c.FollowSpeed},
		{"pivot_speed", c.PivotSpeed},
		{"min_pivot", c.MinPivot},
		{"max_pivot", c.MaxPivot},
		{"default_depth", c.DefaultDepth},
		{"probe_radius", c.ProbeRadius},
		{"collision_offset", c.CollisionOffset},
		{"min_clearance", c.MinClearance},
	} {
		if !isFinite(f.v) {
			bad("%s is not finite", f.name)
		}
	}
	if c.FollowSpeed < 0 {
		bad("follow_speed %v is negative", c.FollowSpeed)
	}
	if c.MinPivot > c.MaxPivot {
		bad("min_pivot %v is above max_pivot %v", c.MinPivot, c.MaxPivot)
	}
	if c.ProbeRadius < 0 {
		bad("probe_radius %v is negative", c.ProbeRadius)
	}
	if c.MinClearance <= 0 {
		bad("min_clearance %v must be positive", c.MinClearance)
	}
	if c.DefaultDepth != 0 {
		if err := c.checkDepth(c.DefaultDepth); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// checkDepth keeps the camera behind the pivot and outside the clearance zone.
func (c Config) checkDepth(depth float32) error {
	if depth > -c.MinClearance {
		return fmt.Errorf("%w: default_depth %v must be at most -min_clearance (%v)", ErrInvalidConfig, depth, -c.MinClearance)
	}
	return nil
}

func isFinite(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
