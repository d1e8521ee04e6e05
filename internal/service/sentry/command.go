package sentry

import (
	"context"
	"fmt"

	"github.com/bharathsurabhi2-png/antitheft-sentry/internal/config"
	"github.com/bharathsurabhi2-png/antitheft-sentry/internal/hardware/camera"
	"github.com/bharathsurabhi2-png/antitheft-sentry/internal/hardware/gpio"
	"github.com/bharathsurabhi2-png/antitheft-sentry/internal/logger"
	"github.com/bharathsurabhi2-png/antitheft-sentry/internal/service/alert"
	"github.com/bharathsurabhi2-png/antitheft-sentry/internal/service/capture"
	"github.com/bharathsurabhi2-png/antitheft-sentry/internal/service/dispatcher"
	"github.com/bharathsurabhi2-png/antitheft-sentry/internal/service/notify"
	"github.com/bharathsurabhi2-png/antitheft-sentry/internal/service/poller"
	"github.com/bharathsurabhi2-png/antitheft-sentry/internal/service/telemetry"
)

// Options controls the mat-sentry daemon.
type Options struct {
	// ConfigPath specifies the path to the settings YAML file.
	ConfigPath string
	// Mode provides an optional sensor mode override.
	Mode string

	// OpenChip is swappable for tests; defaults to the rpio adapter.
	OpenChip func() (gpio.Chip, error)
	// NewCamera is swappable for tests; defaults to the libcamera adapter.
	NewCamera camera.Factory
	// SkipInstanceCheck disables the process-table scan for tests.
	SkipInstanceCheck bool
}

// Run arms the mat and blocks in the poll loop until the context is
// canceled or the pipeline hits a fatal fault. On every exit path all
// outputs are driven inactive and the GPIO chip is released.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "mat-sentry")

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	if opts.Mode != "" {
		cfg.Mode = config.SensorMode(opts.Mode)
		if err = config.Validate(cfg); err != nil {
			return err
		}
	}

	if !opts.SkipInstanceCheck {
		if err = checkSingleInstance(); err != nil {
			return err
		}
	}

	openChip := opts.OpenChip
	if openChip == nil {
		openChip = func() (gpio.Chip, error) { return gpio.OpenRPIO() }
	}

	newCamera := opts.NewCamera
	if newCamera == nil {
		newCamera = func() (camera.Camera, error) { return camera.NewLibcameraStill(), nil }
	}

	chip, err := openChip()
	if err != nil {
		return fmt.Errorf("open gpio: %w", err)
	}

	// Scoped cleanup: outputs low and chip released even when the pipeline
	// is mid-operation when the fault or signal arrives.
	defer func() {
		if cerr := chip.Close(); cerr != nil {
			logger.ErrorKV(ctx, "GPIO release failed", "error", cerr)
		}
	}()

	return run(ctx, cfg, chip, newCamera)
}

// run wires the pipeline on an already claimed chip and blocks in the poll
// loop. Split from Run so tests can drive it with a memory chip.
func run(ctx context.Context, cfg *config.Config, chip gpio.Chip, newCamera camera.Factory) error {
	buzzer, err := chip.Output(cfg.BuzzerPin)
	if err != nil {
		return fmt.Errorf("claim buzzer %d: %w", cfg.BuzzerPin, err)
	}

	alarmLED, err := chip.Output(cfg.AlarmLEDPin)
	if err != nil {
		return fmt.Errorf("claim alarm LED %d: %w", cfg.AlarmLEDPin, err)
	}

	armedLED, err := chip.Output(cfg.ArmedLEDPin)
	if err != nil {
		return fmt.Errorf("claim armed LED %d: %w", cfg.ArmedLEDPin, err)
	}

	channels, lines, err := poller.Channels(cfg, chip)
	if err != nil {
		return err
	}

	cam, err := newCamera()
	if err != nil {
		return fmt.Errorf("initialise camera: %w", err)
	}

	actuator := alert.NewActuator(buzzer, alarmLED, armedLED)

	captureService := capture.NewService(cam, newCamera, cfg.CaptureDir,
		cfg.CameraWarmup.Std(), cfg.CameraSettle.Std())

	creds := notify.CredentialsFromEnv(cfg)
	notifier := notify.NewNotifier(
		notify.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, creds),
		creds, cfg.EmailCooldown.Std())

	var publisher dispatcher.Publisher

	if cfg.MQTTBroker != "" {
		mqttPublisher, perr := telemetry.Connect(cfg.MQTTBroker, cfg.MQTTClientID, cfg.MQTTTopic)
		if perr != nil {
			// Telemetry is best-effort; the mat still arms without it.
			logger.WarnKV(ctx, "Trigger telemetry unavailable", "broker", cfg.MQTTBroker, "error", perr)
		} else {
			defer mqttPublisher.Close()
			publisher = mqttPublisher
		}
	}

	pipeline := dispatcher.New(actuator, captureService, notifier, publisher,
		cfg.AlarmBeeps, cfg.BeepOn.Std(), cfg.BeepOff.Std())

	sensors := poller.New(channels, lines,
		cfg.PollInterval.Std(), cfg.Debounce.Std(), pipeline.Dispatch)

	if err = actuator.SetArmed(true); err != nil {
		return err
	}

	// Disarm on every exit path, including fatal pipeline faults.
	defer func() {
		if derr := actuator.SetArmed(false); derr != nil {
			logger.ErrorKV(ctx, "Disarm failed", "error", derr)
		}
	}()

	logger.InfoKV(ctx, "System armed",
		"mode", string(cfg.Mode), "captures", cfg.CaptureDir)

	return sensors.Run(ctx)
}
