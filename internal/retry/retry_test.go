package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var errFlaky = errors.New("flaky")

type sleepRecorder struct {
	calls []time.Duration
}

func (s *sleepRecorder) sleep(d time.Duration) {
	s.calls = append(s.calls, d)
}

func TestWithFallback_FirstTry(t *testing.T) {
	rec := &sleepRecorder{}
	calls := 0

	res := WithFallback(context.Background(), Policy{Attempts: 3, Delay: time.Second, Sleep: rec.sleep},
		func(context.Context) (string, error) {
			calls++
			return "ok", nil
		},
		func(error) string { return "fallback" },
	)

	assert.Equal(t, "ok", res.Value)
	assert.Equal(t, 1, res.Attempts)
	assert.False(t, res.FellBack())
	assert.Equal(t, 1, calls)
	assert.Empty(t, rec.calls)
}

func TestWithFallback_RetryThenSuccess(t *testing.T) {
	rec := &sleepRecorder{}
	calls := 0

	res := WithFallback(context.Background(), Policy{Attempts: 3, Delay: time.Second, Sleep: rec.sleep},
		func(context.Context) (int, error) {
			calls++
			if calls < 3 {
				return 0, errFlaky
			}
			return 42, nil
		},
		func(error) int { return -1 },
	)

	assert.Equal(t, 42, res.Value)
	assert.Equal(t, 3, res.Attempts)
	assert.NoError(t, res.Err)
	assert.Equal(t, []time.Duration{time.Second, time.Second}, rec.calls)
}

func TestWithFallback_Exhausted(t *testing.T) {
	rec := &sleepRecorder{}
	calls := 0

	var observed []int

	res := WithFallback(context.Background(),
		Policy{
			Attempts:  3,
			Delay:     time.Second,
			Sleep:     rec.sleep,
			OnFailure: func(attempt int, _ error) { observed = append(observed, attempt) },
		},
		func(context.Context) (string, error) {
			calls++
			return "", errFlaky
		},
		func(err error) string { return "fallback: " + err.Error() },
	)

	assert.Equal(t, "fallback: flaky", res.Value)
	assert.True(t, res.FellBack())
	assert.ErrorIs(t, res.Err, errFlaky)
	assert.Equal(t, 3, calls)
	assert.Equal(t, 3, res.Attempts)
	assert.Equal(t, []int{1, 2, 3}, observed)
	assert.Len(t, rec.calls, 3)
}

func TestWithFallback_AttemptsFloor(t *testing.T) {
	calls := 0

	res := WithFallback(context.Background(), Policy{Attempts: 0},
		func(context.Context) (string, error) {
			calls++
			return "", errFlaky
		},
		func(error) string { return "fb" },
	)

	assert.Equal(t, 1, calls)
	assert.Equal(t, "fb", res.Value)
}

func TestWithFallback_CancelledContext(t *testing.T) {
	rec := &sleepRecorder{}
	calls := 0

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := WithFallback(ctx, Policy{Attempts: 3, Delay: time.Second, Sleep: rec.sleep},
		func(context.Context) (string, error) {
			calls++
			return "", errFlaky
		},
		func(error) string { return "fallback" },
	)

	assert.Equal(t, "fallback", res.Value)
	assert.ErrorIs(t, res.Err, context.Canceled)
	assert.Equal(t, 1, calls)
	assert.Equal(t, []time.Duration{time.Second}, rec.calls)
}

func TestWithFallback_RealSleep(t *testing.T) {
	calls := 0
	start := time.Now()

	res := WithFallback(context.Background(), Policy{Attempts: 2, Delay: 5 * time.Millisecond},
		func(context.Context) (string, error) {
			calls++
			return "", errFlaky
		},
		func(error) string { return "fb" },
	)

	assert.Equal(t, "fb", res.Value)
	assert.Equal(t, 2, calls)
	assert.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)
}
