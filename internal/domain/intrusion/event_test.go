package intrusion

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestChannelAccept verifies the debounce timestamp only advances forward.
func TestChannelAccept(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	c := &Channel{Label: "intruder_s3", Pin: 22}

	ev := c.Accept(base)
	require.Equal(t, "intruder_s3", ev.Channel)
	require.Equal(t, base, c.LastTrigger)

	// An earlier instant must not move the timestamp backwards.
	c.Accept(base.Add(-time.Second))
	require.Equal(t, base, c.LastTrigger)

	later := base.Add(time.Second)
	c.Accept(later)
	require.Equal(t, later, c.LastTrigger)
}

// TestChannelDebounced walks the reference scenario: window 0.20s, readings
// at t=0.00 (accepted), t=0.10 (rejected), t=0.35 (accepted).
func TestChannelDebounced(t *testing.T) {
	t.Parallel()

	const window = 200 * time.Millisecond

	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	c := &Channel{Label: "S3"}

	require.False(t, c.Debounced(base, window))
	c.Accept(base)

	require.True(t, c.Debounced(base.Add(100*time.Millisecond), window))

	at := base.Add(350 * time.Millisecond)
	require.False(t, c.Debounced(at, window))
	c.Accept(at)
	require.Equal(t, at, c.LastTrigger)
}
