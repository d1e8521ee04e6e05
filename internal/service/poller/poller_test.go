package poller

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bharathsurabhi2-png/antitheft-sentry/internal/config"
	"github.com/bharathsurabhi2-png/antitheft-sentry/internal/domain/intrusion"
	"github.com/bharathsurabhi2-png/antitheft-sentry/internal/hardware/gpio"
)

// newIndividualPoller builds a three-sensor individual-mode poller over a
// memory chip, recording dispatched events.
func newIndividualPoller(t *testing.T, handler Handler) (*Poller, *gpio.MemoryChip, *time.Time) {
	t.Helper()

	cfg := config.Default()
	cfg.Mode = config.ModeIndividual
	cfg.SensorPins = []int{17, 27, 22}

	chip := gpio.NewMemoryChip()

	channels, lines, err := Channels(cfg, chip)
	require.NoError(t, err)

	p := New(channels, lines, 10*time.Millisecond, 200*time.Millisecond, handler)

	at := time.Date(2026, 8, 30, 17, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return at }

	return p, chip, &at
}

// TestChannelsCombined verifies combined mode yields one aggregated channel.
func TestChannelsCombined(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	chip := gpio.NewMemoryChip()

	channels, lines, err := Channels(cfg, chip)
	require.NoError(t, err)
	require.Len(t, channels, 1)
	require.Len(t, lines, 1)
	require.Equal(t, "intruder", channels[0].Label)
	require.Empty(t, channels[0].Sensor)
	require.Equal(t, 17, channels[0].Pin)
}

// TestChannelsIndividual verifies per-pin channels in fixed order with
// sensor names.
func TestChannelsIndividual(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Mode = config.ModeIndividual
	cfg.SensorPins = []int{17, 27, 22}

	channels, _, err := Channels(cfg, gpio.NewMemoryChip())
	require.NoError(t, err)
	require.Len(t, channels, 3)
	require.Equal(t, "intruder_s3", channels[2].Label)
	require.Equal(t, "S3", channels[2].Sensor)
	require.Equal(t, 22, channels[2].Pin)
}

// TestDebounceScenario walks the reference scenario on channel S3:
// active at t=0.00 (accepted), t=0.10 (rejected), t=0.35 (accepted).
func TestDebounceScenario(t *testing.T) {
	t.Parallel()

	var events []intrusion.Event

	p, chip, at := newIndividualPoller(t, func(_ context.Context, ev intrusion.Event) error {
		events = append(events, ev)
		return nil
	})

	base := *at
	ctx := context.Background()

	chip.SetLevel(22, true)

	require.NoError(t, p.sampleAll(ctx))
	require.Len(t, events, 1)
	require.Equal(t, "S3", events[0].Sensor)
	require.Equal(t, base, events[0].At)

	*at = base.Add(100 * time.Millisecond)
	require.NoError(t, p.sampleAll(ctx))
	require.Len(t, events, 1)

	*at = base.Add(350 * time.Millisecond)
	require.NoError(t, p.sampleAll(ctx))
	require.Len(t, events, 2)
	require.Equal(t, base.Add(350*time.Millisecond), events[1].At)
}

// TestLevelTriggeredWhileHeld verifies a held-high line keeps producing
// triggers, one per debounce window.
func TestLevelTriggeredWhileHeld(t *testing.T) {
	t.Parallel()

	var events []intrusion.Event

	p, chip, at := newIndividualPoller(t, func(_ context.Context, ev intrusion.Event) error {
		events = append(events, ev)
		return nil
	})

	base := *at
	chip.SetLevel(17, true)

	// Held high across 50 ticks of 10ms: one trigger per 200ms window.
	for i := 0; i < 50; i++ {
		*at = base.Add(time.Duration(i) * 10 * time.Millisecond)
		require.NoError(t, p.sampleAll(context.Background()))
	}

	require.Len(t, events, 3)
}

// TestIndependentChannels verifies debounce state is per channel.
func TestIndependentChannels(t *testing.T) {
	t.Parallel()

	var events []intrusion.Event

	p, chip, _ := newIndividualPoller(t, func(_ context.Context, ev intrusion.Event) error {
		events = append(events, ev)
		return nil
	})

	chip.SetLevel(17, true)
	chip.SetLevel(22, true)

	require.NoError(t, p.sampleAll(context.Background()))
	require.Len(t, events, 2)
	require.Equal(t, "intruder_s1", events[0].Channel)
	require.Equal(t, "intruder_s3", events[1].Channel)
}

// TestReadFailureIsFatal verifies a failed line read terminates the loop.
func TestReadFailureIsFatal(t *testing.T) {
	t.Parallel()

	p, chip, _ := newIndividualPoller(t, func(context.Context, intrusion.Event) error {
		return nil
	})

	chip.FailReads(27, errors.New("gpio fault"))

	err := p.sampleAll(context.Background())
	require.ErrorContains(t, err, "sample intruder_s2")
}

// TestHandlerFailureStopsLoop verifies dispatcher errors propagate out of Run.
func TestHandlerFailureStopsLoop(t *testing.T) {
	t.Parallel()

	p, chip, _ := newIndividualPoller(t, func(context.Context, intrusion.Event) error {
		return errors.New("camera failed twice")
	})

	chip.SetLevel(17, true)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	err := p.Run(ctx)
	require.ErrorContains(t, err, "dispatch intruder_s1")
}

// TestRunStopsOnCancel verifies context cancellation ends Run cleanly.
func TestRunStopsOnCancel(t *testing.T) {
	t.Parallel()

	p, _, _ := newIndividualPoller(t, func(context.Context, intrusion.Event) error {
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	cancel()
	require.NoError(t, <-done)
}
