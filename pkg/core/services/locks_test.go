package services

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMonthLocks_SecondAcquireFails(t *testing.T) {
	locks := NewMonthLocks()

	assert.True(t, locks.TryAcquire("2025-06"))
	assert.False(t, locks.TryAcquire("2025-06"))
	assert.True(t, locks.TryAcquire("2025-07"))

	locks.Release("2025-06")
	assert.True(t, locks.TryAcquire("2025-06"))
}

func TestMonthLocks_ExactlyOneWinnerUnderContention(t *testing.T) {
	locks := NewMonthLocks()

	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if locks.TryAcquire("2025-06") {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
}
