package mocks

import (
	"github.com/mcoot/benched/internal/dependencies/random"
)

// MockRandom is a scripted Random for tests.
// Queued values are returned in order; each is clamped into [0, n).
// Once the queue is exhausted Intn returns 0.
type MockRandom struct {
	IntnResults []int
	intnIndex   int
	calls       int
}

// Ensure MockRandom implements Random
var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates a new MockRandom
func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

// Intn returns the next queued result
func (r *MockRandom) Intn(n int) int {
	r.calls++
	if n <= 1 || r.intnIndex >= len(r.IntnResults) {
		return 0
	}
	result := r.IntnResults[r.intnIndex]
	r.intnIndex++
	if result < 0 {
		return 0
	}
	if result >= n {
		return n - 1
	}
	return result
}

// QueueIntn adds values to the Intn result queue
func (r *MockRandom) QueueIntn(values ...int) {
	r.IntnResults = append(r.IntnResults, values...)
}

// Calls returns how many times Intn has been called
func (r *MockRandom) Calls() int {
	return r.calls
}

// Reset clears all queued results
func (r *MockRandom) Reset() {
	r.IntnResults = nil
	r.intnIndex = 0
	r.calls = 0
}
