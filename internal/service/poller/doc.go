// Package poller samples the sensor lines at a fixed tick, applies the
// per-channel debounce window and hands accepted triggers to the dispatcher
// synchronously.
//
// The channels are level-triggered: a line held high past its debounce
// window keeps producing triggers, one per window.
package poller
