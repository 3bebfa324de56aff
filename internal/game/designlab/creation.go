package designlab

import (
	"context"
	"time"
)

// CreationInterval is the delay between two creation ticks.
const CreationInterval = time.Second

// Clock schedules the creation ticks. Tests substitute a clock that fires
// immediately.
type Clock interface {
	After(d time.Duration) <-chan time.Time
}

type realClock struct{}

func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// RealClock is the wall clock.
var RealClock Clock = realClock{}

// RunCreation calls tick once per CreationInterval, CreationSteps times,
// passing the step number starting at 1. It returns early with the context
// error when ctx is cancelled.
func RunCreation(ctx context.Context, clock Clock, tick func(step int)) error {
	for step := 1; step <= CreationSteps; step++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-clock.After(CreationInterval):
			tick(step)
		}
	}
	return nil
}
