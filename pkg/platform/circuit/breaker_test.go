package circuit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBreakerStartsClosed(t *testing.T) {
	b := New("extractor")
	assert.False(t, b.IsOpen())
	assert.Equal(t, StateClosed, b.State())
	assert.Equal(t, "extractor", b.Name())
}

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	b := New("extractor", WithFailureThreshold(3))

	for range 2 {
		useFallback, change := b.RecordFailure()
		assert.False(t, useFallback)
		assert.False(t, change.Opened)
	}

	useFallback, change := b.RecordFailure()
	assert.True(t, useFallback)
	assert.True(t, change.Opened)
	assert.True(t, b.IsOpen())

	// Further failures keep returning fallback without another transition.
	useFallback, change = b.RecordFailure()
	assert.True(t, useFallback)
	assert.False(t, change.Opened)
}

func TestBreakerClosesAfterConsecutiveSuccesses(t *testing.T) {
	b := New("extractor", WithFailureThreshold(1), WithSuccessThreshold(2))

	b.RecordFailure()
	assert.True(t, b.IsOpen())

	usePrimary, change := b.RecordSuccess()
	assert.False(t, usePrimary)
	assert.False(t, change.Closed)

	usePrimary, change = b.RecordSuccess()
	assert.True(t, usePrimary)
	assert.True(t, change.Closed)
	assert.False(t, b.IsOpen())
}

func TestBreakerOutcomesResetOpposingCount(t *testing.T) {
	b := New("extractor", WithFailureThreshold(3), WithSuccessThreshold(3))

	// A success wipes accumulated failures.
	b.RecordFailure()
	b.RecordFailure()
	b.RecordSuccess()
	b.RecordFailure()
	b.RecordFailure()
	assert.False(t, b.IsOpen())
	b.RecordFailure()
	assert.True(t, b.IsOpen())

	// And a failure wipes accumulated successes while open.
	b.RecordSuccess()
	b.RecordSuccess()
	b.RecordFailure()
	b.RecordSuccess()
	b.RecordSuccess()
	assert.True(t, b.IsOpen())
	b.RecordSuccess()
	assert.False(t, b.IsOpen())
}

func TestBreakerAllowsProbeAfterRetryWindow(t *testing.T) {
	b := New("extractor", WithFailureThreshold(1), WithRetryAfter(time.Minute))

	b.RecordFailure()
	now := time.Now()
	assert.False(t, b.Allow(now))

	// One probe per elapsed window; granting it re-arms the window.
	assert.True(t, b.Allow(now.Add(2*time.Minute)))
	assert.False(t, b.Allow(now.Add(2*time.Minute)))

	b.RecordSuccess()
	assert.False(t, b.IsOpen())
	assert.True(t, b.Allow(now))
}

func TestBreakerLatchesWithoutRetryWindow(t *testing.T) {
	b := New("extractor", WithFailureThreshold(1), WithRetryAfter(0))

	b.RecordFailure()
	assert.False(t, b.Allow(time.Now().Add(time.Hour)))

	b.Reset()
	assert.True(t, b.Allow(time.Now()))
}

func TestBreakerReset(t *testing.T) {
	b := New("extractor", WithFailureThreshold(1))

	b.RecordFailure()
	assert.True(t, b.IsOpen())

	b.Reset()
	assert.False(t, b.IsOpen())
	assert.Equal(t, StateClosed, b.State())
}
