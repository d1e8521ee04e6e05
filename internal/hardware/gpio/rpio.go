package gpio

import (
	"fmt"

	"github.com/stianeikeland/go-rpio/v4"
)

// RPIOChip drives Raspberry Pi BCM lines through /dev/gpiomem.
type RPIOChip struct {
	// outputs tracks claimed output pins so Close can drive them low.
	outputs []rpio.Pin
}

// OpenRPIO maps the GPIO memory range and returns the chip.
func OpenRPIO() (*RPIOChip, error) {
	if err := rpio.Open(); err != nil {
		return nil, fmt.Errorf("open gpio memory: %w", err)
	}

	return &RPIOChip{}, nil
}

// Input claims the BCM line as an active-high input with the pull-down
// resistor engaged, the wiring the piezo mat expects.
func (c *RPIOChip) Input(bcm int) (Line, error) {
	pin := rpio.Pin(bcm)
	pin.Input()
	pin.PullDown()

	return rpioLine(pin), nil
}

// Output claims the BCM pin as an output and drives it low.
func (c *RPIOChip) Output(bcm int) (Pin, error) {
	pin := rpio.Pin(bcm)
	pin.Output()
	pin.Low()
	c.outputs = append(c.outputs, pin)

	return rpioPin(pin), nil
}

// Close drives every claimed output low and unmaps the GPIO memory range.
func (c *RPIOChip) Close() error {
	for _, pin := range c.outputs {
		pin.Low()
	}

	if err := rpio.Close(); err != nil {
		return fmt.Errorf("close gpio memory: %w", err)
	}

	return nil
}

// rpioLine adapts an rpio input pin to the Line port.
type rpioLine rpio.Pin

// Read samples the line level. The memory-mapped read cannot fail after a
// successful Open, so the error is always nil here.
func (l rpioLine) Read() (bool, error) {
	return rpio.Pin(l).Read() == rpio.High, nil
}

// rpioPin adapts an rpio output pin to the Pin port.
type rpioPin rpio.Pin

// Set drives the output level.
func (p rpioPin) Set(high bool) error {
	if high {
		rpio.Pin(p).High()
	} else {
		rpio.Pin(p).Low()
	}

	return nil
}
