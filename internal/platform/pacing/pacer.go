// Package pacing throttles calls to rate-limited upstream sources.
package pacing

import (
	"context"
	"math/rand/v2"
	"time"
)

// Pacer blocks until the next upstream call may proceed.
type Pacer interface {
	Wait(ctx context.Context) error
}

// PacerFunc adapts a function to Pacer.
type PacerFunc func(ctx context.Context) error

func (f PacerFunc) Wait(ctx context.Context) error { return f(ctx) }

// Noop never waits.
var Noop Pacer = PacerFunc(func(ctx context.Context) error { return ctx.Err() })

// Jitter sleeps a uniformly random duration in [Min, Max].
type Jitter struct {
	Min time.Duration
	Max time.Duration

	rand  func(n int64) int64
	sleep func(ctx context.Context, d time.Duration) error
}

func NewJitter(min, max time.Duration) *Jitter {
	if min < 0 {
		min = 0
	}
	if max < min {
		max = min
	}
	return &Jitter{Min: min, Max: max, rand: rand.Int64N, sleep: Sleep}
}

func (j *Jitter) Wait(ctx context.Context) error {
	return j.sleep(ctx, j.Next())
}

// Next draws the next delay without sleeping.
func (j *Jitter) Next() time.Duration {
	span := int64(j.Max - j.Min)
	if span <= 0 {
		return j.Min
	}
	return j.Min + time.Duration(j.rand(span+1))
}

// Chain waits on each pacer in order.
func Chain(pacers ...Pacer) Pacer {
	return PacerFunc(func(ctx context.Context) error {
		for _, p := range pacers {
			if p == nil {
				continue
			}
			if err := p.Wait(ctx); err != nil {
				return err
			}
		}
		return nil
	})
}

// Sleep waits for d or until ctx is done.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
