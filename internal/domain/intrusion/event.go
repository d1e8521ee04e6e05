package intrusion

import "time"

// Channel is one logical sensor input. In combined mode there is exactly
// one channel aggregating the whole mat; in individual mode one per pin.
type Channel struct {
	// Label identifies the channel in filenames and notifications,
	// e.g. "intruder" or "intruder_s3".
	Label string
	// Sensor is the human-readable sensor name for individual channels,
	// e.g. "S3". Empty in combined mode.
	Sensor string
	// Pin is the BCM line the channel reads.
	Pin int
	// LastTrigger is when the channel last accepted a trigger.
	// It only moves forward in time.
	LastTrigger time.Time
}

// Accept records an accepted trigger at the given instant and returns the
// resulting event. Earlier instants are ignored so the debounce timestamp
// never moves backwards.
func (c *Channel) Accept(at time.Time) Event {
	if at.After(c.LastTrigger) {
		c.LastTrigger = at
	}

	return Event{Channel: c.Label, Sensor: c.Sensor, At: at}
}

// Debounced reports whether a reading at the given instant falls inside
// the debounce window and must be rejected.
func (c *Channel) Debounced(at time.Time, window time.Duration) bool {
	return at.Sub(c.LastTrigger) <= window
}

// Event is a single accepted trigger: "channel C fired at time T".
// It is ephemeral and only exists on its way into the dispatcher.
type Event struct {
	// Channel is the label of the channel that fired.
	Channel string
	// Sensor is the sensor name for individual channels, empty in combined mode.
	Sensor string
	// At is when the trigger was accepted.
	At time.Time
}
