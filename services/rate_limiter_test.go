package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiterAllowsUnderLimit(t *testing.T) {
	limiter := NewRateLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		require.NoError(t, limiter.Wait(context.Background()))
	}
}

func TestRateLimiterHonorsContextWhileWaiting(t *testing.T) {
	limiter := NewRateLimiter(1, time.Minute)
	require.NoError(t, limiter.Wait(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := limiter.Wait(ctx)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestRateLimiterReleasesLockWhileWaiting(t *testing.T) {
	limiter := NewRateLimiter(1, time.Minute)
	require.NoError(t, limiter.Wait(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	blocked := make(chan error, 1)
	go func() {
		blocked <- limiter.Wait(ctx)
	}()

	// A second caller must be able to enter Wait and give up on its
	// own context even while the first is sleeping out the window.
	ctx2, cancel2 := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel2()
	assert.ErrorIs(t, limiter.Wait(ctx2), context.DeadlineExceeded)

	cancel()
	select {
	case err := <-blocked:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("waiter never observed cancellation")
	}
}
