package infra

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestBreaker(clock *time.Time) *CircuitBreaker {
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 3, SuccessThreshold: 2, OpenTimeout: 10 * time.Second})
	cb.now = func() time.Time { return *clock }
	return cb
}

func TestCircuitBreaker_TripsAfterThreshold(t *testing.T) {
	clock := time.Now()
	cb := newTestBreaker(&clock)

	for i := 0; i < 2; i++ {
		cb.Failure()
	}
	assert.Equal(t, CBClosed, cb.State())
	assert.NoError(t, cb.Allow())

	cb.Failure()
	assert.Equal(t, CBOpen, cb.State())
	assert.ErrorIs(t, cb.Allow(), ErrCircuitOpen)
}

func TestCircuitBreaker_SuccessResetsFailureCount(t *testing.T) {
	clock := time.Now()
	cb := newTestBreaker(&clock)

	cb.Failure()
	cb.Failure()
	cb.Success()
	cb.Failure()
	cb.Failure()
	assert.Equal(t, CBClosed, cb.State())
}

func TestCircuitBreaker_HalfOpenRecovery(t *testing.T) {
	clock := time.Now()
	cb := newTestBreaker(&clock)
	for i := 0; i < 3; i++ {
		cb.Failure()
	}
	assert.Equal(t, CBOpen, cb.State())

	clock = clock.Add(11 * time.Second)
	assert.Equal(t, CBHalfOpen, cb.State())
	assert.NoError(t, cb.Allow())

	cb.Success()
	assert.Equal(t, CBHalfOpen, cb.State())
	cb.Success()
	assert.Equal(t, CBClosed, cb.State())
}

func TestCircuitBreaker_HalfOpenProbeFailureReopens(t *testing.T) {
	clock := time.Now()
	cb := newTestBreaker(&clock)
	for i := 0; i < 3; i++ {
		cb.Failure()
	}
	clock = clock.Add(11 * time.Second)
	assert.Equal(t, CBHalfOpen, cb.State())

	cb.Failure()
	assert.Equal(t, CBOpen, cb.State())
	assert.ErrorIs(t, cb.Allow(), ErrCircuitOpen)
}

func TestCBState_String(t *testing.T) {
	assert.Equal(t, "closed", CBClosed.String())
	assert.Equal(t, "open", CBOpen.String())
	assert.Equal(t, "half-open", CBHalfOpen.String())
	assert.Equal(t, "unknown", CBState(42).String())
}
