package sentry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	ps "github.com/mitchellh/go-ps"
)

// errAlreadyRunning indicates another mat-sentry process owns the hardware.
var errAlreadyRunning = errors.New("another instance is already running")

// checkSingleInstance scans the process table for another live mat-sentry.
// The camera and the GPIO lines are exclusive resources; a second daemon
// would fight the first over both.
func checkSingleInstance() error {
	self := os.Getpid()

	executable, err := os.Executable()
	if err != nil {
		return fmt.Errorf("resolve executable: %w", err)
	}

	name := strings.TrimSuffix(filepath.Base(executable), ".exe")

	processes, err := ps.Processes()
	if err != nil {
		return fmt.Errorf("list processes: %w", err)
	}

	for _, process := range processes {
		if process.Pid() == self {
			continue
		}

		if strings.TrimSuffix(process.Executable(), ".exe") == name {
			return fmt.Errorf("%w: pid %d", errAlreadyRunning, process.Pid())
		}
	}

	return nil
}
