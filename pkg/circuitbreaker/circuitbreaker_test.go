package circuitbreaker

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpensAfterMaxFailures(t *testing.T) {
	cb := NewCircuitBreaker(Settings{MaxFailures: 3, Timeout: time.Minute})
	boom := errors.New("publish failed")

	for i := 0; i < 3; i++ {
		require.ErrorIs(t, cb.Execute(func() error { return boom }), boom)
	}
	assert.Equal(t, StateOpen, cb.State())

	err := cb.Execute(func() error { return nil })
	assert.ErrorIs(t, err, ErrOpen)
}

func TestSuccessResetsFailureCount(t *testing.T) {
	cb := NewCircuitBreaker(Settings{MaxFailures: 2, Timeout: time.Minute})
	boom := errors.New("publish failed")

	require.Error(t, cb.Execute(func() error { return boom }))
	require.NoError(t, cb.Execute(func() error { return nil }))
	require.Error(t, cb.Execute(func() error { return boom }))

	assert.Equal(t, StateClosed, cb.State())
}

func TestHalfOpenProbeRecovers(t *testing.T) {
	cb := NewCircuitBreaker(Settings{MaxFailures: 1, Timeout: 10 * time.Millisecond})
	boom := errors.New("publish failed")

	require.Error(t, cb.Execute(func() error { return boom }))
	require.Equal(t, StateOpen, cb.State())

	time.Sleep(15 * time.Millisecond)

	require.NoError(t, cb.Execute(func() error { return nil }))
	assert.Equal(t, StateClosed, cb.State())
}

func TestHalfOpenProbeFailureReopens(t *testing.T) {
	cb := NewCircuitBreaker(Settings{MaxFailures: 1, Timeout: 10 * time.Millisecond})
	boom := errors.New("publish failed")

	require.Error(t, cb.Execute(func() error { return boom }))
	time.Sleep(15 * time.Millisecond)

	require.Error(t, cb.Execute(func() error { return boom }))
	assert.Equal(t, StateOpen, cb.State())
	assert.ErrorIs(t, cb.Execute(func() error { return nil }), ErrOpen)
}

func TestDefaultsApplied(t *testing.T) {
	cb := NewCircuitBreaker(Settings{Name: "test"})
	assert.Equal(t, StateClosed, cb.State())
	assert.NoError(t, cb.Execute(func() error { return nil }))
}
