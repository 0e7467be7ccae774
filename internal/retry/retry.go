// Package retry provides a bounded retry loop that resolves to a fallback value
// instead of an error once its attempts are used up.
package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// Policy controls WithFallback.
type Policy struct {
	// Attempts is the total number of calls, including the first. Values below 1 mean 1.
	Attempts int
	// Delay is slept after every failed attempt, the last one included.
	Delay time.Duration
	// Sleep pauses between attempts. Nil means time.Sleep.
	Sleep func(time.Duration)
	// OnFailure, if set, observes every failed attempt (1-based).
	OnFailure func(attempt int, err error)
}

// Result is what WithFallback resolved to.
type Result[T any] struct {
	Value    T
	Attempts int
	// Err is the last error when Value came from the fallback, nil otherwise.
	Err error
}

// FellBack reports whether the fallback produced Value.
func (r Result[T]) FellBack() bool {
	return r.Err != nil
}

// pacedBackOff waits the constant interval through sleep and leaves the retry loop
// nothing further to wait.
type pacedBackOff struct {
	constant *backoff.ConstantBackOff
	sleep    func(time.Duration)
}

func (b pacedBackOff) NextBackOff() time.Duration {
	if d := b.constant.NextBackOff(); d > 0 {
		b.sleep(d)
	}

	return 0
}

func (b pacedBackOff) Reset() {}

// WithFallback calls op until it succeeds or p.Attempts calls have failed, then
// returns fallback(lastErr). The delay is fixed; there is no backoff growth.
func WithFallback[T any](ctx context.Context, p Policy, op func(ctx context.Context) (T, error), fallback func(err error) T) Result[T] {
	attempts := max(p.Attempts, 1)

	sleep := p.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	calls := 0

	value, err := backoff.Retry(ctx,
		func() (T, error) {
			calls++
			return op(ctx)
		},
		backoff.WithBackOff(pacedBackOff{constant: backoff.NewConstantBackOff(p.Delay), sleep: sleep}),
		backoff.WithMaxTries(uint(attempts)),
		backoff.WithNotify(func(err error, _ time.Duration) {
			if p.OnFailure != nil {
				p.OnFailure(calls, err)
			}
		}),
	)
	if err == nil {
		return Result[T]{Value: value, Attempts: calls}
	}

	// The retry loop stops without notifying or waiting after the final failure.
	if p.OnFailure != nil {
		p.OnFailure(calls, err)
	}

	if p.Delay > 0 {
		sleep(p.Delay)
	}

	return Result[T]{Value: fallback(err), Attempts: calls, Err: err}
}
