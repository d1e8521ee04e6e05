package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// SensorMode selects how the piezo sensors are wired and debounced.
type SensorMode string

const (
	// ModeCombined treats all sensors as one wired input on CombinedPin.
	ModeCombined SensorMode = "combined"
	// ModeIndividual debounces every pin in SensorPins independently.
	ModeIndividual SensorMode = "individual"
)

// Config holds all startup settings for the mat-sentry daemon.
// Nothing here is runtime-reloadable; the daemon reads it once at start.
type Config struct {
	// Mode selects combined or individual sensor wiring.
	Mode SensorMode `yaml:"mode"`
	// CombinedPin is the BCM input used in combined mode.
	CombinedPin int `yaml:"combined_pin"`
	// SensorPins are the BCM inputs used in individual mode, iterated in order.
	SensorPins []int `yaml:"sensor_pins"`

	// BuzzerPin drives the piezo buzzer.
	BuzzerPin int `yaml:"buzzer_pin"`
	// AlarmLEDPin drives the red alarm indicator.
	AlarmLEDPin int `yaml:"alarm_led_pin"`
	// ArmedLEDPin drives the green armed indicator.
	ArmedLEDPin int `yaml:"armed_led_pin"`

	// PollInterval is the sensor sampling tick.
	PollInterval Duration `yaml:"poll_interval"`
	// Debounce is the minimum spacing between accepted triggers per channel.
	Debounce Duration `yaml:"debounce"`

	// AlarmBeeps is the number of buzzer pulses per trigger.
	AlarmBeeps int `yaml:"alarm_beeps"`
	// BeepOn is how long the buzzer stays high per pulse.
	BeepOn Duration `yaml:"beep_on"`
	// BeepOff is the silence between pulses.
	BeepOff Duration `yaml:"beep_off"`

	// CameraWarmup is the exposure settle delay between camera start and capture.
	CameraWarmup Duration `yaml:"camera_warmup"`
	// CameraSettle is the pause after reinitializing a faulted camera.
	CameraSettle Duration `yaml:"camera_settle"`
	// CaptureDir is where JPEG artifacts are written; created if absent.
	CaptureDir string `yaml:"capture_dir"`

	// SMTPHost is the mail relay host.
	SMTPHost string `yaml:"smtp_host"`
	// SMTPPort is the mail relay port; 465 means implicit TLS.
	SMTPPort int `yaml:"smtp_port"`
	// EmailCooldown is the process-wide minimum spacing between sends.
	EmailCooldown Duration `yaml:"email_cooldown"`
	// EmailUserEnv names the environment variable holding the sender address.
	EmailUserEnv string `yaml:"email_user_env"`
	// EmailPassEnv names the environment variable holding the app password.
	EmailPassEnv string `yaml:"email_pass_env"`
	// EmailToEnv names the environment variable holding the recipient;
	// the recipient falls back to the sender address when unset.
	EmailToEnv string `yaml:"email_to_env"`

	// MQTTBroker enables trigger telemetry when non-empty, e.g. tcp://host:1883.
	MQTTBroker string `yaml:"mqtt_broker"`
	// MQTTTopic is the topic trigger events are published to.
	MQTTTopic string `yaml:"mqtt_topic"`
	// MQTTClientID identifies this daemon to the broker.
	MQTTClientID string `yaml:"mqtt_client_id"`
}

const (
	// DefaultConfigFilename is the default filename for daemon settings.
	DefaultConfigFilename = "mat-sentry-settings.yaml"

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errUnknownMode is returned for a sensor mode other than combined/individual.
	errUnknownMode = errors.New(`sensor mode must be "combined" or "individual"`)
	// errNoSensorPins is returned when individual mode has no pins configured.
	errNoSensorPins = errors.New("individual mode requires at least one sensor pin")
	// errNoCaptureDir is returned when the capture directory is missing.
	errNoCaptureDir = errors.New("capture directory must be provided")
	// errNoSMTPHost is returned when the mail relay host is missing.
	errNoSMTPHost = errors.New("SMTP host must be provided")
)

// Default returns the configuration matching the reference hardware:
// the eight-sensor floor mat on BCM 17/27/22/23/24/25/5/6 with the buzzer
// on 18 and indicators on 19 (alarm) and 26 (armed).
func Default() *Config {
	return &Config{
		Mode:          ModeCombined,
		CombinedPin:   17,
		SensorPins:    []int{17, 27, 22, 23, 24, 25, 5, 6},
		BuzzerPin:     18,
		AlarmLEDPin:   19,
		ArmedLEDPin:   26,
		PollInterval:  defaultPollInterval,
		Debounce:      defaultDebounce,
		AlarmBeeps:    defaultAlarmBeeps,
		BeepOn:        defaultBeepOn,
		BeepOff:       defaultBeepOff,
		CameraWarmup:  defaultCameraWarmup,
		CameraSettle:  defaultCameraSettle,
		CaptureDir:    "/var/lib/mat-sentry/captures",
		SMTPHost:      "smtp.gmail.com",
		SMTPPort:      465,
		EmailCooldown: defaultEmailCooldown,
		EmailUserEnv:  "EMAIL_USER",
		EmailPassEnv:  "EMAIL_PASS",
		EmailToEnv:    "EMAIL_TO",
		MQTTTopic:     "mat-sentry/triggers",
		MQTTClientID:  "mat-sentry",
	}
}

// Load reads configuration from the provided path and validates essential fields.
// Fields absent from the file keep their Default() values.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(contents, cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions: the file names credential env vars.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the provided settings for required fields and fills
// defaults for optional values left at zero.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	switch cfg.Mode {
	case ModeCombined, ModeIndividual:
	case "":
		cfg.Mode = ModeCombined
	default:
		return fmt.Errorf("%w, got %q", errUnknownMode, cfg.Mode)
	}

	if cfg.Mode == ModeIndividual && len(cfg.SensorPins) == 0 {
		return errNoSensorPins
	}

	if cfg.CaptureDir == "" {
		return errNoCaptureDir
	}

	if cfg.SMTPHost == "" {
		return errNoSMTPHost
	}

	// The relay address must form a valid host:port pair.
	relay := net.JoinHostPort(cfg.SMTPHost, strconv.Itoa(cfg.SMTPPort))
	if _, _, err := net.SplitHostPort(relay); err != nil {
		return fmt.Errorf("invalid mail relay %s: %w", relay, err)
	}

	if cfg.SMTPPort <= 0 {
		return fmt.Errorf("invalid mail relay port %d", cfg.SMTPPort)
	}

	applyDurationDefaults(cfg)

	if cfg.AlarmBeeps <= 0 {
		cfg.AlarmBeeps = defaultAlarmBeeps
	}

	return nil
}
