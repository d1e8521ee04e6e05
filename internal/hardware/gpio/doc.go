// Package gpio defines the digital I/O ports the sentry runs against and
// their adapters.
//
// Line reads a boolean level (active-high piezo inputs, pulled down by
// default) and Pin writes one (buzzer, indicators). The rpio adapter drives
// real Raspberry Pi BCM lines via memory-mapped GPIO; the memory adapter
// backs tests.
package gpio
