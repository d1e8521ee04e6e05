package dispatcher

import (
	"context"
	"fmt"
	"time"

	"github.com/bharathsurabhi2-png/antitheft-sentry/internal/domain/intrusion"
	"github.com/bharathsurabhi2-png/antitheft-sentry/internal/logger"
	"github.com/bharathsurabhi2-png/antitheft-sentry/internal/service/capture"
)

// Alerter drives the alarm indicator and the buzzer.
type Alerter interface {
	SetAlarm(on bool) error
	Beep(times int, on, off time.Duration) error
}

// Capturer shoots one tagged still and returns the artifact path.
type Capturer interface {
	Capture(ctx context.Context, tag string) (string, error)
}

// Notifier sends the intrusion email with the artifact attached.
type Notifier interface {
	Notify(ctx context.Context, imagePath, subject, body string) error
}

// Publisher emits best-effort trigger telemetry.
type Publisher interface {
	Publish(ctx context.Context, event intrusion.Event)
}

// Dispatcher runs the reaction pipeline for accepted triggers.
type Dispatcher struct {
	alerter  Alerter
	capturer Capturer
	notifier Notifier
	// publisher is nil when telemetry is not configured.
	publisher Publisher

	beeps   int
	beepOn  time.Duration
	beepOff time.Duration
}

// New wires the dispatcher. publisher may be nil.
func New(alerter Alerter, capturer Capturer, notifier Notifier, publisher Publisher,
	beeps int, beepOn, beepOff time.Duration,
) *Dispatcher {
	return &Dispatcher{
		alerter:   alerter,
		capturer:  capturer,
		notifier:  notifier,
		publisher: publisher,
		beeps:     beeps,
		beepOn:    beepOn,
		beepOff:   beepOff,
	}
}

// Dispatch reacts to one accepted trigger. Steps run in strict sequence and
// block the caller. A capture or send failure propagates with the alarm
// indicator still lit; the process shutdown path is what restores safe
// state. There is no partial-failure containment at this layer.
func (d *Dispatcher) Dispatch(ctx context.Context, event intrusion.Event) error {
	logger.WarnKV(ctx, "Intrusion detected", "channel", event.Channel, "at", event.At.Format(time.RFC3339))

	if d.publisher != nil {
		d.publisher.Publish(ctx, event)
	}

	if err := d.alerter.SetAlarm(true); err != nil {
		return err
	}

	if err := d.alerter.Beep(d.beeps, d.beepOn, d.beepOff); err != nil {
		return err
	}

	path, err := d.capturer.Capture(ctx, event.Channel)
	if err != nil {
		return fmt.Errorf("capture for %s: %w", event.Channel, err)
	}

	subject, body := noticeText(event)
	if err := d.notifier.Notify(ctx, path, subject, body); err != nil {
		return fmt.Errorf("notify for %s: %w", event.Channel, err)
	}

	logger.InfoKV(ctx, "Trigger handled", "channel", event.Channel, "image", path)

	return d.alerter.SetAlarm(false)
}

// noticeText builds the email wording for the event: combined triggers
// report mat movement, individual triggers name the sensor.
func noticeText(event intrusion.Event) (subject, body string) {
	ts := capture.Timestamp(event.At)

	if event.Sensor == "" {
		return "Intruder @ " + ts,
			"Anti-theft floor mat detected movement. See attached image."
	}

	return fmt.Sprintf("Intruder (%s) @ %s", event.Sensor, ts),
		fmt.Sprintf("Movement on sensor %s. Image attached.", event.Sensor)
}
