package poller

import (
	"context"
	"fmt"
	"time"

	"github.com/bharathsurabhi2-png/antitheft-sentry/internal/config"
	"github.com/bharathsurabhi2-png/antitheft-sentry/internal/domain/intrusion"
	"github.com/bharathsurabhi2-png/antitheft-sentry/internal/hardware/gpio"
	"github.com/bharathsurabhi2-png/antitheft-sentry/internal/logger"
)

// Handler receives accepted triggers. The poll loop blocks until it returns.
type Handler func(ctx context.Context, event intrusion.Event) error

// channelState pairs a domain channel with the line it samples.
type channelState struct {
	channel intrusion.Channel
	line    gpio.Line
}

// Poller owns the sensor channels and their debounce state.
type Poller struct {
	channels []channelState
	tick     time.Duration
	debounce time.Duration
	handler  Handler

	// now is swappable for tests.
	now func() time.Time
}

// New creates a poller over the given channels. The slice order is the
// fixed per-tick iteration order.
func New(channels []intrusion.Channel, lines []gpio.Line, tick, debounce time.Duration, handler Handler) *Poller {
	states := make([]channelState, len(channels))
	for i := range channels {
		states[i] = channelState{channel: channels[i], line: lines[i]}
	}

	return &Poller{
		channels: states,
		tick:     tick,
		debounce: debounce,
		handler:  handler,
		now:      time.Now,
	}
}

// Channels builds the channel set for the configured sensor mode and claims
// the matching input lines: one aggregated channel in combined mode, one
// independently debounced channel per pin in individual mode.
func Channels(cfg *config.Config, chip gpio.Chip) ([]intrusion.Channel, []gpio.Line, error) {
	if cfg.Mode == config.ModeCombined {
		line, err := chip.Input(cfg.CombinedPin)
		if err != nil {
			return nil, nil, fmt.Errorf("claim combined input %d: %w", cfg.CombinedPin, err)
		}

		return []intrusion.Channel{{Label: "intruder", Pin: cfg.CombinedPin}},
			[]gpio.Line{line}, nil
	}

	channels := make([]intrusion.Channel, 0, len(cfg.SensorPins))
	lines := make([]gpio.Line, 0, len(cfg.SensorPins))

	for i, pin := range cfg.SensorPins {
		line, err := chip.Input(pin)
		if err != nil {
			return nil, nil, fmt.Errorf("claim sensor input %d: %w", pin, err)
		}

		channels = append(channels, intrusion.Channel{
			Label:  fmt.Sprintf("intruder_s%d", i+1),
			Sensor: fmt.Sprintf("S%d", i+1),
			Pin:    pin,
		})
		lines = append(lines, line)
	}

	return channels, lines, nil
}

// Run samples every channel each tick until the context is canceled.
//
// A read failure is a fatal hardware fault and terminates the loop; handler
// failures terminate it too, since the dispatcher has no partial-failure
// containment. Returns nil only on context cancellation.
func (p *Poller) Run(ctx context.Context) error {
	logger.InfoKV(ctx, "Polling sensors",
		"channels", len(p.channels), "tick", p.tick.String(), "debounce", p.debounce.String())

	ticker := time.NewTicker(p.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "Context canceled, poll loop exiting")
			return nil
		case <-ticker.C:
			if err := p.sampleAll(ctx); err != nil {
				return err
			}
		}
	}
}

// sampleAll reads every channel once, in fixed order, dispatching accepted
// triggers synchronously.
func (p *Poller) sampleAll(ctx context.Context) error {
	for i := range p.channels {
		state := &p.channels[i]

		active, err := state.line.Read()
		if err != nil {
			return fmt.Errorf("sample %s: %w", state.channel.Label, err)
		}

		if !active {
			continue
		}

		now := p.now()
		if state.channel.Debounced(now, p.debounce) {
			continue
		}

		event := state.channel.Accept(now)
		if err := p.handler(ctx, event); err != nil {
			return fmt.Errorf("dispatch %s: %w", event.Channel, err)
		}
	}

	return nil
}
