package dispatcher

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bharathsurabhi2-png/antitheft-sentry/internal/domain/intrusion"
)

// pipelineRecorder implements every dispatcher port and records the call order.
type pipelineRecorder struct {
	calls      []string
	captureErr error
	notifyErr  error

	subjects []string
	bodies   []string
}

func (r *pipelineRecorder) SetAlarm(on bool) error {
	if on {
		r.calls = append(r.calls, "alarm on")
	} else {
		r.calls = append(r.calls, "alarm off")
	}

	return nil
}

func (r *pipelineRecorder) Beep(int, time.Duration, time.Duration) error {
	r.calls = append(r.calls, "beep")

	return nil
}

func (r *pipelineRecorder) Capture(_ context.Context, tag string) (string, error) {
	r.calls = append(r.calls, "capture "+tag)

	if r.captureErr != nil {
		return "", r.captureErr
	}

	return "/tmp/" + tag + ".jpg", nil
}

func (r *pipelineRecorder) Notify(_ context.Context, _, subject, body string) error {
	r.calls = append(r.calls, "notify")
	r.subjects = append(r.subjects, subject)
	r.bodies = append(r.bodies, body)

	return r.notifyErr
}

func (r *pipelineRecorder) Publish(_ context.Context, _ intrusion.Event) {
	r.calls = append(r.calls, "publish")
}

func testEvent(sensor string) intrusion.Event {
	label := "intruder"
	if sensor != "" {
		label = "intruder_s3"
	}

	return intrusion.Event{
		Channel: label,
		Sensor:  sensor,
		At:      time.Date(2026, 8, 30, 14, 21, 5, 0, time.UTC),
	}
}

// TestDispatchSequence verifies the strict step order including telemetry.
func TestDispatchSequence(t *testing.T) {
	t.Parallel()

	r := &pipelineRecorder{}
	d := New(r, r, r, r, 2, 180*time.Millisecond, 150*time.Millisecond)

	require.NoError(t, d.Dispatch(context.Background(), testEvent("")))
	require.Equal(t,
		[]string{"publish", "alarm on", "beep", "capture intruder", "notify", "alarm off"},
		r.calls)
}

// TestDispatchWithoutPublisher verifies a nil publisher is skipped.
func TestDispatchWithoutPublisher(t *testing.T) {
	t.Parallel()

	r := &pipelineRecorder{}
	d := New(r, r, r, nil, 2, 180*time.Millisecond, 150*time.Millisecond)

	require.NoError(t, d.Dispatch(context.Background(), testEvent("")))
	require.Equal(t,
		[]string{"alarm on", "beep", "capture intruder", "notify", "alarm off"},
		r.calls)
}

// TestDispatchCaptureFailure verifies the failure propagates and no
// notification is produced.
func TestDispatchCaptureFailure(t *testing.T) {
	t.Parallel()

	r := &pipelineRecorder{captureErr: errors.New("camera gone")}
	d := New(r, r, r, nil, 2, 180*time.Millisecond, 150*time.Millisecond)

	err := d.Dispatch(context.Background(), testEvent(""))
	require.Error(t, err)
	require.NotContains(t, r.calls, "notify")
	require.NotContains(t, r.calls, "alarm off")
}

// TestDispatchNotifyFailure verifies send failures propagate.
func TestDispatchNotifyFailure(t *testing.T) {
	t.Parallel()

	r := &pipelineRecorder{notifyErr: errors.New("relay refused")}
	d := New(r, r, r, nil, 2, 180*time.Millisecond, 150*time.Millisecond)

	err := d.Dispatch(context.Background(), testEvent(""))
	require.ErrorContains(t, err, "notify for intruder")
}

// TestNoticeText verifies per-mode email wording.
func TestNoticeText(t *testing.T) {
	t.Parallel()

	subject, body := noticeText(testEvent(""))
	require.Equal(t, "Intruder @ 20260830_142105", subject)
	require.Contains(t, body, "floor mat")

	subject, body = noticeText(testEvent("S3"))
	require.Equal(t, "Intruder (S3) @ 20260830_142105", subject)
	require.Contains(t, body, "sensor S3")
}
