package llm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCircuitBreaker_TripsAtThreshold(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{Threshold: 3, ResetAfter: time.Minute})

	for i := 0; i < 2; i++ {
		cb.RecordFailure()
		ok, err := cb.Allow()
		require.NoError(t, err)
		assert.True(t, ok, "below threshold, request %d should pass", i)
	}

	cb.RecordFailure()
	assert.Equal(t, CircuitOpen, cb.State())

	ok, err := cb.Allow()
	assert.False(t, ok)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "circuit breaker open")
}

func TestCircuitBreaker_SuccessResets(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{Threshold: 2, ResetAfter: time.Minute})

	cb.RecordFailure()
	cb.RecordSuccess()
	cb.RecordFailure()

	// The success in between reset the consecutive count.
	assert.Equal(t, CircuitClosed, cb.State())
}

func TestCircuitBreaker_HalfOpenProbe(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{Threshold: 1, ResetAfter: 10 * time.Millisecond})

	cb.RecordFailure()
	assert.Equal(t, CircuitOpen, cb.State())

	time.Sleep(20 * time.Millisecond)

	ok, err := cb.Allow()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, CircuitHalfOpen, cb.State())

	// A second request during the probe is rejected.
	ok, err = cb.Allow()
	assert.False(t, ok)
	require.Error(t, err)

	// Failed probe reopens immediately.
	cb.RecordFailure()
	assert.Equal(t, CircuitOpen, cb.State())

	time.Sleep(20 * time.Millisecond)
	ok, _ = cb.Allow()
	require.True(t, ok)
	cb.RecordSuccess()
	assert.Equal(t, CircuitClosed, cb.State())
}

func TestCircuitState_String(t *testing.T) {
	assert.Equal(t, "closed", CircuitClosed.String())
	assert.Equal(t, "open", CircuitOpen.String())
	assert.Equal(t, "half-open", CircuitHalfOpen.String())
	assert.Equal(t, "unknown", CircuitState(99).String())
}
