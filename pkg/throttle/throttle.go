// Package throttle paces writes to the backend so a seeding run stays under
// the host's rate limit. The seeder calls Wait after every create call.
package throttle

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/agentstation/menuseed/pkg/constants"
	"github.com/agentstation/menuseed/pkg/errors"
)

// Limiter blocks until the next write may proceed.
type Limiter interface {
	Wait(ctx context.Context) error
}

// Delay returns a Limiter that sleeps for d on every call. This is the
// fixed pause the seeder applies after each create.
func Delay(d time.Duration) Limiter {
	if d <= 0 {
		return None()
	}
	return delay(d)
}

type delay time.Duration

func (d delay) Wait(ctx context.Context) error {
	timer := time.NewTimer(time.Duration(d))
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return errors.WrapCanceled(ctx.Err())
	case <-timer.C:
		return nil
	}
}

// Bucket returns a token bucket Limiter that allows one write every interval
// with the given burst. Unlike Delay, time spent in the write itself counts
// toward the interval.
func Bucket(interval time.Duration, burst int) Limiter {
	if interval <= 0 {
		return None()
	}
	if burst < 1 {
		burst = 1
	}
	l := rate.NewLimiter(rate.Every(interval), burst)
	// Drain the initial burst so the first Wait after a write is paced.
	l.AllowN(time.Now(), burst)
	return &bucket{limiter: l}
}

type bucket struct {
	limiter *rate.Limiter
}

func (b *bucket) Wait(ctx context.Context) error {
	if err := b.limiter.Wait(ctx); err != nil {
		if ctx.Err() != nil {
			return errors.WrapCanceled(ctx.Err())
		}
		return err
	}
	return nil
}

// None returns a Limiter that never blocks. It still honors cancellation.
func None() Limiter {
	return none{}
}

type none struct{}

func (none) Wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return errors.WrapCanceled(err)
	}
	return nil
}

// New builds the Limiter named by strategy.
func New(strategy string, interval time.Duration, burst int) (Limiter, error) {
	switch strings.ToLower(strings.TrimSpace(strategy)) {
	case "", constants.StrategyDelay:
		return Delay(interval), nil
	case constants.StrategyBucket:
		return Bucket(interval, burst), nil
	case constants.StrategyNone:
		return None(), nil
	default:
		return nil, &errors.ValidationError{
			Field:   "strategy",
			Value:   strategy,
			Message: fmt.Sprintf("unknown throttle strategy %q (want %s, %s or %s)", strategy, constants.StrategyDelay, constants.StrategyBucket, constants.StrategyNone),
		}
	}
}
