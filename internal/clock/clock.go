// Package clock provides a mockable time source for testing.
// In production, it simply wraps time.Now(). For tests, use MockClock.
package clock

import (
	"sync"
	"time"
)

// Clock is the interface for time operations.
// Use package-level functions for convenience, or inject a Clock for testing.
type Clock interface {
	Now() time.Time
	Since(t time.Time) time.Duration
}

// RealClock provides the actual system time.
type RealClock struct{}

// Now returns the current system time.
func (c *RealClock) Now() time.Time {
	return time.Now()
}

// Since returns the time elapsed since t.
func (c *RealClock) Since(t time.Time) time.Duration {
	return time.Since(t)
}

// MockClock is a test clock with controllable time.
type MockClock struct {
	mu      sync.RWMutex
	current time.Time
}

// NewMockClock creates a mock clock set to the given time.
func NewMockClock(t time.Time) *MockClock {
	return &MockClock{current: t}
}

// Now returns the mock time.
func (c *MockClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// Since returns the duration elapsed since t according to the mock time.
func (c *MockClock) Since(t time.Time) time.Duration {
	return c.Now().Sub(t)
}

// Advance moves the mock clock forward by d.
func (c *MockClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = c.current.Add(d)
}

// Set moves the mock clock to t.
func (c *MockClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = t
}

var (
	activeMu sync.RWMutex
	active   Clock = &RealClock{}
)

// SetClock replaces the package-level clock. Tests should call Reset when done.
func SetClock(c Clock) {
	activeMu.Lock()
	defer activeMu.Unlock()
	active = c
}

// Reset restores the real system clock.
func Reset() {
	SetClock(&RealClock{})
}

// Now returns the current time from the active clock.
func Now() time.Time {
	activeMu.RLock()
	defer activeMu.RUnlock()
	return active.Now()
}

// Since returns the time elapsed since t according to the active clock.
func Since(t time.Time) time.Duration {
	activeMu.RLock()
	defer activeMu.RUnlock()
	return active.Since(t)
}
