// Package retry wraps record store calls with a bounded, fixed-delay retry on
// transient failures.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"jinji/attendance-sync/internal/client"

	"go.uber.org/zap"
)

const (
	DefaultMaxAttempts = 3
	DefaultBaseDelay   = time.Second
)

// Policy bounds a call. The delay between attempts is fixed.
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
}

func DefaultPolicy() Policy {
	return Policy{MaxAttempts: DefaultMaxAttempts, BaseDelay: DefaultBaseDelay}
}

// ExhaustedError is returned when every attempt failed with a retryable
// failure.
type ExhaustedError struct {
	Attempts int
	Last     error
}

func (e *ExhaustedError) Error() string {
	if client.KindOf(e.Last) == client.NetworkUnreachable {
		return e.Last.Error()
	}
	return fmt.Sprintf("record store unavailable after %d attempts: %v", e.Attempts, e.Last)
}

func (e *ExhaustedError) Unwrap() error {
	return e.Last
}

// Retrier runs operations under a Policy.
type Retrier struct {
	policy Policy
	logger *zap.Logger
	sleep  func(ctx context.Context, d time.Duration) error
}

func New(policy Policy, logger *zap.Logger) *Retrier {
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = 1
	}
	if policy.BaseDelay < 0 {
		policy.BaseDelay = 0
	}
	return &Retrier{
		policy: policy,
		logger: logger,
		sleep:  sleepContext,
	}
}

func (r *Retrier) Policy() Policy {
	return r.policy
}

// Do calls op until it succeeds, fails terminally, or the attempt budget is
// spent. Transient and network failures wait BaseDelay before the next
// attempt. A cancelled ctx stops the loop with ctx's error.
func Do[T any](ctx context.Context, r *Retrier, name string, op func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	total := r.policy.MaxAttempts

	for attempt := 1; ; attempt++ {
		r.logger.Debug("Calling record store",
			zap.String("operation", name),
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", total),
		)

		result, err := op(ctx)
		if err == nil {
			return result, nil
		}

		kind := client.KindOf(err)
		if kind == client.Terminal {
			return zero, err
		}

		if attempt >= total {
			r.logger.Warn("Retries exhausted",
				zap.String("operation", name),
				zap.Int("attempts", attempt),
				zap.Stringer("kind", kind),
				zap.Error(err),
			)
			return zero, &ExhaustedError{Attempts: attempt, Last: err}
		}

		r.logger.Warn("Retryable failure, waiting before next attempt",
			zap.String("operation", name),
			zap.Int("attempt", attempt),
			zap.Stringer("kind", kind),
			zap.Duration("delay", r.policy.BaseDelay),
			zap.Error(err),
		)
		if err := r.sleep(ctx, r.policy.BaseDelay); err != nil {
			return zero, err
		}
	}
}

// Exec is Do for operations without a result.
func Exec(ctx context.Context, r *Retrier, name string, op func(ctx context.Context) error) error {
	_, err := Do(ctx, r, name, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, op(ctx)
	})
	return err
}

// IsExhausted reports whether err came from running out of attempts.
func IsExhausted(err error) bool {
	var ex *ExhaustedError
	return errors.As(err, &ex)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
