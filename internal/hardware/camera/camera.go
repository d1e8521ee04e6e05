package camera

import "context"

// Camera is a single exclusively-owned still camera.
type Camera interface {
	// Start powers the sensor pipeline. The caller waits the configured
	// warm-up before capturing so exposure can settle.
	Start(ctx context.Context) error
	// CaptureFile writes one JPEG to the target path. On success the file
	// is fully written and closed.
	CaptureFile(ctx context.Context, path string) error
	// Stop releases the sensor pipeline. Safe to call after a failure.
	Stop() error
}

// Factory produces a fresh Camera handle. The capture service uses it to
// replace a faulted handle before its single retry.
type Factory func() (Camera, error)
