package gpio

// Line is a digital input sampled by the poller.
type Line interface {
	// Read returns the current level, true when active.
	// A read error is a fatal hardware fault for the caller.
	Read() (bool, error)
}

// Pin is a digital output driven by the actuators.
type Pin interface {
	// Set drives the output high (true) or low (false).
	Set(high bool) error
}

// Chip claims input lines and output pins and releases them on Close.
type Chip interface {
	// Input claims the BCM line as an active-high input, pulled down.
	Input(bcm int) (Line, error)
	// Output claims the BCM pin as an output, driven low immediately.
	Output(bcm int) (Pin, error)
	// Close drives every claimed output low and releases the chip.
	Close() error
}
