package services

import "sync"

// MonthLocks is the advisory lock keeping at most one generation in flight
// per month key. Two concurrent attempts could both judge themselves best
// and race to persist a result, so a second caller for the same month is
// rejected rather than queued.
type MonthLocks struct {
	mu       sync.Mutex
	inFlight map[string]bool
}

// NewMonthLocks creates an empty lock set
func NewMonthLocks() *MonthLocks {
	return &MonthLocks{inFlight: make(map[string]bool)}
}

// TryAcquire claims the lock for a month key, returning false if a
// generation for that month is already running
func (l *MonthLocks) TryAcquire(month string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.inFlight[month] {
		return false
	}
	l.inFlight[month] = true
	return true
}

// Release frees the lock for a month key
func (l *MonthLocks) Release(month string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.inFlight, month)
}
