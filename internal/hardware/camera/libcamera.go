package camera

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// stillBinaries are the Pi still-capture tools, newest stack first.
var stillBinaries = []string{"libcamera-still", "rpicam-still", "raspistill"}

// ErrNoStillTool indicates no still-capture binary was found on PATH.
var ErrNoStillTool = errors.New("no still-capture tool found")

// LibcameraStill captures stills by invoking the Pi camera stack's CLI.
// Each capture runs one short-lived process, so a wedged capture dies with
// its process instead of wedging the daemon's camera handle.
type LibcameraStill struct {
	// binary is the resolved still-capture tool.
	binary string
}

// NewLibcameraStill returns an unstarted camera handle.
// The binary is resolved lazily in Start so construction never fails.
func NewLibcameraStill() *LibcameraStill {
	return &LibcameraStill{}
}

// Start resolves the capture binary. Resolution failure is the handle's
// "camera not present" fault and goes through the usual reinit path.
func (c *LibcameraStill) Start(_ context.Context) error {
	if c.binary != "" {
		return nil
	}

	for _, name := range stillBinaries {
		if path, err := exec.LookPath(name); err == nil {
			c.binary = path
			return nil
		}
	}

	return fmt.Errorf("%w: tried %v", ErrNoStillTool, stillBinaries)
}

// CaptureFile shoots one JPEG to the target path.
// The caller has already waited the warm-up, so the tool captures
// immediately with no preview window.
func (c *LibcameraStill) CaptureFile(ctx context.Context, path string) error {
	if c.binary == "" {
		return fmt.Errorf("capture %s: camera not started", path)
	}

	cmd := exec.CommandContext(ctx, c.binary, "-n", "--immediate", "-o", path)

	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("capture %s: %w: %s", path, err, out)
	}

	return nil
}

// Stop releases the handle. With one process per capture there is nothing
// to tear down.
func (c *LibcameraStill) Stop() error {
	return nil
}
