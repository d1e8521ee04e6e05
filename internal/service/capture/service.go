package capture

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bharathsurabhi2-png/antitheft-sentry/internal/hardware/camera"
	"github.com/bharathsurabhi2-png/antitheft-sentry/internal/logger"
)

// timestampLayout names artifacts to the second; a same-tag capture within
// the same second overwrites the previous file. Retention is an operator
// concern, the service never deletes anything.
const timestampLayout = "20060102_150405"

// dirPermissions is used when creating the capture directory.
const dirPermissions = 0o755

// Service is the image capture service. It holds the single shared camera
// handle; callers are serialized by the dispatcher's synchronous pipeline,
// so at most one capture is ever in flight.
type Service struct {
	cam     camera.Camera
	factory camera.Factory

	dir    string
	warmup time.Duration
	settle time.Duration

	// now and sleep are swappable for tests.
	now   func() time.Time
	sleep func(time.Duration)
}

// NewService creates the capture service around an owned camera handle.
// The factory replaces the handle when a capture faults.
func NewService(cam camera.Camera, factory camera.Factory, dir string, warmup, settle time.Duration) *Service {
	return &Service{
		cam:     cam,
		factory: factory,
		dir:     dir,
		warmup:  warmup,
		settle:  settle,
		now:     time.Now,
		sleep:   time.Sleep,
	}
}

// Timestamp renders the given instant in the artifact naming format.
func Timestamp(t time.Time) string {
	return t.Format(timestampLayout)
}

// Capture shoots one still tagged with the channel label and returns the
// artifact path. On a fault it stops the camera best-effort, reinitializes
// a fresh handle, waits the settle delay and retries exactly once; the
// second failure propagates.
func (s *Service) Capture(ctx context.Context, tag string) (string, error) {
	if err := os.MkdirAll(s.dir, dirPermissions); err != nil {
		return "", fmt.Errorf("capture directory: %w", err)
	}

	path := filepath.Join(s.dir, fmt.Sprintf("%s_%s.jpg", tag, Timestamp(s.now())))

	if err := s.shoot(ctx, path); err != nil {
		logger.WarnKV(ctx, "Camera fault, reinitializing", "path", path, "error", err)

		// Best-effort stop; the handle is about to be replaced anyway.
		_ = s.cam.Stop()

		fresh, ferr := s.factory()
		if ferr != nil {
			return "", fmt.Errorf("reinitialize camera: %w", ferr)
		}

		s.cam = fresh
		s.sleep(s.settle)

		if err = s.shoot(ctx, path); err != nil {
			return "", fmt.Errorf("capture after reinit: %w", err)
		}
	}

	logger.InfoKV(ctx, "Image captured", "path", path)

	return path, nil
}

// shoot runs one start → warm-up → capture → stop cycle.
func (s *Service) shoot(ctx context.Context, path string) error {
	if err := s.cam.Start(ctx); err != nil {
		return fmt.Errorf("start camera: %w", err)
	}

	s.sleep(s.warmup)

	if err := s.cam.CaptureFile(ctx, path); err != nil {
		return fmt.Errorf("capture file: %w", err)
	}

	if err := s.cam.Stop(); err != nil {
		return fmt.Errorf("stop camera: %w", err)
	}

	return nil
}
