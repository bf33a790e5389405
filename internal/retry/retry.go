// Package retry wraps transient downstream failures in a bounded exponential
// backoff policy.
package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// Policy describes one retry budget: the number of retries after the first
// attempt and the delay schedule between them.
type Policy struct {
	// MaxRetries is the number of additional attempts after the first one
	MaxRetries uint64
	// InitialInterval is the delay before the first retry
	InitialInterval time.Duration
	// Multiplier scales the delay after each failed attempt
	Multiplier float64
}

// DefaultPolicy retries twice, starting at one second and doubling.
func DefaultPolicy() Policy {
	return Policy{
		MaxRetries:      2,
		InitialInterval: time.Second,
		Multiplier:      2,
	}
}

// NoRetry performs a single attempt with no backoff.
func NoRetry() Policy {
	return Policy{MaxRetries: 0}
}

func (p Policy) backOff(ctx context.Context) backoff.BackOff {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = p.InitialInterval
	bo.Multiplier = p.Multiplier
	bo.RandomizationFactor = 0
	bo.MaxInterval = time.Minute
	bo.MaxElapsedTime = 0
	return backoff.WithContext(backoff.WithMaxRetries(bo, p.MaxRetries), ctx)
}

// Do runs op under the policy and returns its result. Each failed attempt is
// logged; the last error is returned once the budget is exhausted. Context
// cancellation aborts the remaining attempts.
func Do[T any](ctx context.Context, logger *zap.Logger, name string, p Policy, op func(ctx context.Context) (T, error)) (T, error) {
	attempt := 0
	return backoff.RetryWithData(func() (T, error) {
		attempt++
		result, err := op(ctx)
		if err != nil {
			logger.Warn("Attempt failed",
				zap.String("operation", name),
				zap.Int("attempt", attempt),
				zap.Error(err))
		}
		return result, err
	}, p.backOff(ctx))
}
