package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so YAML files can use readable duration
// strings ("200ms", "8s") instead of raw nanosecond integers.
type Duration time.Duration

// Reference behavior constants: a 200ms debounce, two 180/150ms beeps,
// a 700ms camera warm-up with a 200ms reinit settle, and an 8s email cooldown.
const (
	defaultPollInterval  = Duration(10 * time.Millisecond)
	defaultDebounce      = Duration(200 * time.Millisecond)
	defaultBeepOn        = Duration(180 * time.Millisecond)
	defaultBeepOff       = Duration(150 * time.Millisecond)
	defaultCameraWarmup  = Duration(700 * time.Millisecond)
	defaultCameraSettle  = Duration(200 * time.Millisecond)
	defaultEmailCooldown = Duration(8 * time.Second)

	defaultAlarmBeeps = 2
)

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// String renders the duration in time.Duration notation.
func (d Duration) String() string {
	return time.Duration(d).String()
}

// MarshalYAML renders the duration as a string node.
func (d Duration) MarshalYAML() (any, error) {
	return d.String(), nil
}

// UnmarshalYAML parses duration strings; negative values are rejected.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return fmt.Errorf("duration must be a string: %w", err)
	}

	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}

	if parsed < 0 {
		return fmt.Errorf("duration %q must be >= 0", raw)
	}

	*d = Duration(parsed)

	return nil
}

// applyDurationDefaults fills zero durations with the reference values.
func applyDurationDefaults(cfg *Config) {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaultPollInterval
	}

	if cfg.Debounce <= 0 {
		cfg.Debounce = defaultDebounce
	}

	if cfg.BeepOn <= 0 {
		cfg.BeepOn = defaultBeepOn
	}

	if cfg.BeepOff <= 0 {
		cfg.BeepOff = defaultBeepOff
	}

	if cfg.CameraWarmup <= 0 {
		cfg.CameraWarmup = defaultCameraWarmup
	}

	if cfg.CameraSettle <= 0 {
		cfg.CameraSettle = defaultCameraSettle
	}

	if cfg.EmailCooldown <= 0 {
		cfg.EmailCooldown = defaultEmailCooldown
	}
}
