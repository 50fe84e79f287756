package testutil

import (
	"fmt"
	"sync/atomic"
	"time"
)

// SeqIDs returns a deterministic id generator producing prefix-0001,
// prefix-0002, ... Use it wherever a store accepts an id generator.
func SeqIDs(prefix string) func() string {
	var n atomic.Int64
	return func() string {
		return fmt.Sprintf("%s-%04d", prefix, n.Add(1))
	}
}

// ConstIDs returns a generator that always yields id. Handy for forcing
// id collisions.
func ConstIDs(id string) func() string {
	return func() string { return id }
}

// FixedClock returns a clock that always reports t.
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// RefTime is the fixed timestamp used by tests that need stable output.
var RefTime = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
