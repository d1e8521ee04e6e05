package gpio

import (
	"fmt"
	"sync"
)

// MemoryChip is an in-memory Chip for tests. Levels are set by the test and
// read back by the code under test; claimed outputs record their history.
type MemoryChip struct {
	mu sync.Mutex

	levels  map[int]bool
	readErr map[int]error
	outputs map[int]*MemoryPin
	closed  bool
}

// NewMemoryChip returns an empty in-memory chip.
func NewMemoryChip() *MemoryChip {
	return &MemoryChip{
		levels:  make(map[int]bool),
		readErr: make(map[int]error),
		outputs: make(map[int]*MemoryPin),
	}
}

// SetLevel sets the level a subsequent Read of the line reports.
func (c *MemoryChip) SetLevel(bcm int, high bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.levels[bcm] = high
}

// FailReads makes every Read of the line return the provided error.
func (c *MemoryChip) FailReads(bcm int, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.readErr[bcm] = err
}

// Input claims the line.
func (c *MemoryChip) Input(bcm int) (Line, error) {
	return &memoryLine{chip: c, bcm: bcm}, nil
}

// Output claims the pin, driven low.
func (c *MemoryChip) Output(bcm int) (Pin, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	pin := &MemoryPin{chip: c, bcm: bcm}
	c.outputs[bcm] = pin

	return pin, nil
}

// Close records the shutdown and drives all outputs low.
func (c *MemoryChip) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, pin := range c.outputs {
		pin.level = false
	}

	c.closed = true

	return nil
}

// Closed reports whether Close was called.
func (c *MemoryChip) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.closed
}

// OutputPin returns the claimed output pin for inspection, or nil.
func (c *MemoryChip) OutputPin(bcm int) *MemoryPin {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.outputs[bcm]
}

// memoryLine reads the level stored in the chip.
type memoryLine struct {
	chip *MemoryChip
	bcm  int
}

// Read returns the stored level or the configured read error.
func (l *memoryLine) Read() (bool, error) {
	l.chip.mu.Lock()
	defer l.chip.mu.Unlock()

	if err := l.chip.readErr[l.bcm]; err != nil {
		return false, fmt.Errorf("read bcm %d: %w", l.bcm, err)
	}

	return l.chip.levels[l.bcm], nil
}

// MemoryPin records every level written to it.
type MemoryPin struct {
	chip    *MemoryChip
	bcm     int
	level   bool
	history []bool
}

// Set stores the level and appends it to the history.
func (p *MemoryPin) Set(high bool) error {
	p.chip.mu.Lock()
	defer p.chip.mu.Unlock()

	p.level = high
	p.history = append(p.history, high)

	return nil
}

// Level returns the last written level.
func (p *MemoryPin) Level() bool {
	p.chip.mu.Lock()
	defer p.chip.mu.Unlock()

	return p.level
}

// History returns every level written in order.
func (p *MemoryPin) History() []bool {
	p.chip.mu.Lock()
	defer p.chip.mu.Unlock()

	out := make([]bool, len(p.history))
	copy(out, p.history)

	return out
}
