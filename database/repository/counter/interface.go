package counterRepo

import (
	"errors"

	"confreg/models"
)

// ErrCounterMissing reports that the named counter has not been seeded yet.
var ErrCounterMissing = errors.New("counter not found")

// CounterRepository defines data access for named monotonic counters.
type CounterRepository interface {
	// Get retrieves a counter by name; nil when it has not been seeded.
	Get(name string) (*models.Counter, error)
	// EnsureSeed inserts the counter at the given value if absent. A
	// duplicate-key error means another writer already seeded it and is
	// swallowed.
	EnsureSeed(name string, value int) error
	// NextSequence atomically increments the counter and returns the new
	// value. Reports ErrCounterMissing when the counter is not seeded.
	NextSequence(name string) (int, error)
	// RaiseTo lifts the counter to at least min. Never lowers it.
	RaiseTo(name string, min int) error
	// Set overwrites the counter value. Callers must check max-used first.
	Set(name string, value int) error
}
