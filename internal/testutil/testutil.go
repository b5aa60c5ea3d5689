package testutil

import (
  "context"
  "sync/atomic"
  "testing"
  "time"
)

// TestTimeout is the default timeout for tests
const TestTimeout = 5 * time.Second

// WithTimeout creates a context with the default test timeout
func WithTimeout(t *testing.T) (context.Context, context.CancelFunc) {
  t.Helper()
  return context.WithTimeout(context.Background(), TestTimeout)
}

// AssertNoError fails the test if err is not nil
func AssertNoError(t *testing.T, err error) {
  t.Helper()
  if err != nil {
    t.Fatalf("unexpected error: %v", err)
  }
}

// AssertError fails the test if err is nil
func AssertError(t *testing.T, err error) {
  t.Helper()
  if err == nil {
    t.Fatal("expected error, got nil")
  }
}

// AssertEqual fails the test if got != want
func AssertEqual[T comparable](t *testing.T, got, want T) {
  t.Helper()
  if got != want {
    t.Fatalf("got %v, want %v", got, want)
  }
}

// Eventually polls cond every interval until it returns true, failing
// the test if it does not within timeout
func Eventually(t *testing.T, cond func() bool, timeout, interval time.Duration) {
  t.Helper()
  deadline := time.Now().Add(timeout)
  for time.Now().Before(deadline) {
    if cond() {
      return
    }
    time.Sleep(interval)
  }
  t.Fatalf("condition not met within %v", timeout)
}

// Never asserts cond stays false for the whole duration
func Never(t *testing.T, cond func() bool, duration, interval time.Duration) {
  t.Helper()
  deadline := time.Now().Add(duration)
  for time.Now().Before(deadline) {
    if cond() {
      t.Fatal("condition became true, expected it to stay false")
    }
    time.Sleep(interval)
  }
}

// WaitForInt32 waits until the atomic value at addr equals want
func WaitForInt32(t *testing.T, addr *int32, want int32, timeout time.Duration) {
  t.Helper()
  deadline := time.Now().Add(timeout)
  for time.Now().Before(deadline) {
    if atomic.LoadInt32(addr) == want {
      return
    }
    time.Sleep(5 * time.Millisecond)
  }
  t.Fatalf("value = %d, want %d after %v", atomic.LoadInt32(addr), want, timeout)
}
