package alert

import (
	"fmt"
	"time"

	"github.com/bharathsurabhi2-png/antitheft-sentry/internal/hardware/gpio"
)

// Actuator owns the three output pins: buzzer, alarm indicator (red) and
// armed indicator (green). All methods block; a failed pin write is a fatal
// hardware fault and propagates.
type Actuator struct {
	buzzer gpio.Pin
	alarm  gpio.Pin
	armed  gpio.Pin

	// sleep is swappable so tests don't wait out beep cadences.
	sleep func(time.Duration)
}

// NewActuator wires the actuator to its output pins.
func NewActuator(buzzer, alarm, armed gpio.Pin) *Actuator {
	return &Actuator{
		buzzer: buzzer,
		alarm:  alarm,
		armed:  armed,
		sleep:  time.Sleep,
	}
}

// SetArmed drives the armed indicator. It goes high once at startup and
// low on every exit path.
func (a *Actuator) SetArmed(on bool) error {
	if err := a.armed.Set(on); err != nil {
		return fmt.Errorf("armed indicator: %w", err)
	}

	return nil
}

// SetAlarm drives the alarm indicator.
func (a *Actuator) SetAlarm(on bool) error {
	if err := a.alarm.Set(on); err != nil {
		return fmt.Errorf("alarm indicator: %w", err)
	}

	return nil
}

// Beep pulses the buzzer the given number of times, blocking for the full
// times × (on + off) duration.
func (a *Actuator) Beep(times int, on, off time.Duration) error {
	for i := 0; i < times; i++ {
		if err := a.buzzer.Set(true); err != nil {
			return fmt.Errorf("buzzer: %w", err)
		}

		a.sleep(on)

		if err := a.buzzer.Set(false); err != nil {
			return fmt.Errorf("buzzer: %w", err)
		}

		a.sleep(off)
	}

	return nil
}
