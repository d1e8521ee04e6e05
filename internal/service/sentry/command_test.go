package sentry

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bharathsurabhi2-png/antitheft-sentry/internal/config"
	"github.com/bharathsurabhi2-png/antitheft-sentry/internal/hardware/camera"
	"github.com/bharathsurabhi2-png/antitheft-sentry/internal/hardware/gpio"
)

// idleCamera satisfies the camera port without hardware.
type idleCamera struct{}

func (idleCamera) Start(context.Context) error { return nil }

func (idleCamera) CaptureFile(_ context.Context, path string) error {
	return os.WriteFile(path, []byte("jpeg"), 0o600)
}

func (idleCamera) Stop() error { return nil }

// writeTestConfig persists a config pointing at temp storage and returns its path.
func writeTestConfig(t *testing.T) string {
	t.Helper()

	cfg := config.Default()
	cfg.CaptureDir = filepath.Join(t.TempDir(), "captures")
	cfg.PollInterval = config.Duration(time.Millisecond)

	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, config.Save(path, cfg))

	return path
}

// TestRunArmsAndDisarms verifies the armed indicator lifecycle and that the
// chip is released with all outputs low on shutdown.
func TestRunArmsAndDisarms(t *testing.T) {
	t.Parallel()

	chip := gpio.NewMemoryChip()

	opts := &Options{
		ConfigPath:        writeTestConfig(t),
		OpenChip:          func() (gpio.Chip, error) { return chip, nil },
		NewCamera:         func() (camera.Camera, error) { return idleCamera{}, nil },
		SkipInstanceCheck: true,
	}

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- Run(ctx, opts) }()

	// Armed LED goes high once the daemon is up.
	require.Eventually(t, func() bool {
		pin := chip.OutputPin(26)
		return pin != nil && pin.Level()
	}, time.Second, 5*time.Millisecond)

	cancel()
	require.NoError(t, <-done)

	// Safe state: every output low, chip released.
	require.True(t, chip.Closed())
	require.False(t, chip.OutputPin(26).Level())
	require.False(t, chip.OutputPin(19).Level())
	require.False(t, chip.OutputPin(18).Level())
}

// TestRunModeOverride verifies an invalid --mode override is rejected.
func TestRunModeOverride(t *testing.T) {
	t.Parallel()

	opts := &Options{
		ConfigPath:        writeTestConfig(t),
		Mode:              "both",
		SkipInstanceCheck: true,
	}

	err := Run(context.Background(), opts)
	require.Error(t, err)
}

// TestRunMissingConfig verifies a missing settings file fails startup.
func TestRunMissingConfig(t *testing.T) {
	t.Parallel()

	opts := &Options{
		ConfigPath:        filepath.Join(t.TempDir(), "absent.yaml"),
		SkipInstanceCheck: true,
	}

	err := Run(context.Background(), opts)
	require.ErrorContains(t, err, "load configuration")
}
