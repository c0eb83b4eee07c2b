package app

import (
	"sync"
	"time"
)

// IDGenerator returns unique identifiers for new tasks.
type IDGenerator func() int64

// Clock returns the current time.
type Clock func() time.Time

// NewMonotonicIDGenerator derives ids from wall-clock milliseconds and bumps
// past the previous id whenever the clock has not advanced, so two tasks
// created in the same millisecond still get distinct ids.
func NewMonotonicIDGenerator(clock Clock) IDGenerator {
	if clock == nil {
		clock = time.Now
	}
	var (
		mu   sync.Mutex
		last int64
	)
	return func() int64 {
		mu.Lock()
		defer mu.Unlock()
		next := clock().UnixMilli()
		if next <= last {
			next = last + 1
		}
		last = next
		return next
	}
}
