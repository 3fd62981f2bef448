package resilience

import (
	"context"
	"errors"
	"net"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetrySucceedsAfterFailures(t *testing.T) {
	var delays []time.Duration
	policy := Policy{
		MaxAttempts: 3,
		BaseDelay:   100 * time.Millisecond,
		sleep: func(_ context.Context, d time.Duration) error {
			delays = append(delays, d)
			return nil
		},
	}

	calls := 0
	result, err := Retry(context.Background(), policy, func(context.Context) (string, error) {
		calls++
		if calls <= 2 {
			return "", errors.New("transient")
		}
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, 3, calls)

	// Exactly two waits, at 2x and 4x the base delay.
	require.Len(t, delays, 2)
	assert.Equal(t, 200*time.Millisecond, delays[0])
	assert.Equal(t, 400*time.Millisecond, delays[1])
	assert.Less(t, delays[0], delays[1])
}

func TestRetryFirstAttemptSucceeds(t *testing.T) {
	policy := Policy{
		MaxAttempts: 3,
		BaseDelay:   time.Second,
		sleep: func(context.Context, time.Duration) error {
			t.Fatal("no wait expected")
			return nil
		},
	}

	result, err := Retry(context.Background(), policy, func(context.Context) (int, error) {
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, result)
}

func TestRetryExhausted(t *testing.T) {
	underlying := errors.New("model service down")
	policy := Policy{
		MaxAttempts: 3,
		BaseDelay:   time.Millisecond,
		sleep:       func(context.Context, time.Duration) error { return nil },
	}

	calls := 0
	_, err := Retry(context.Background(), policy, func(context.Context) (string, error) {
		calls++
		return "", underlying
	})

	assert.Equal(t, 3, calls)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRetryExhausted)
	assert.ErrorIs(t, err, underlying)
}

func TestRetryContextCancelledDuringWait(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	policy := Policy{
		MaxAttempts: 3,
		BaseDelay:   time.Millisecond,
		sleep: func(ctx context.Context, _ time.Duration) error {
			cancel()
			return ctx.Err()
		},
	}

	_, err := Retry(ctx, policy, func(context.Context) (string, error) {
		return "", errors.New("transient")
	})
	assert.ErrorIs(t, err, context.Canceled)
}

type panicRecovery struct{ calls int }

func (r *panicRecovery) Revive(context.Context) {
	r.calls++
	panic("spawn failed badly")
}

func TestRetryRecoveryInvokedOnUnreachable(t *testing.T) {
	recovery := &panicRecovery{}
	policy := Policy{
		MaxAttempts: 2,
		BaseDelay:   time.Millisecond,
		Recovery:    recovery,
		sleep:       func(context.Context, time.Duration) error { return nil },
	}

	// A panicking recovery must not take down the retry loop.
	_, err := Retry(context.Background(), policy, func(context.Context) (string, error) {
		return "", syscall.ECONNREFUSED
	})

	assert.ErrorIs(t, err, ErrRetryExhausted)
	assert.Equal(t, 2, recovery.calls)
}

func TestUnreachable(t *testing.T) {
	assert.True(t, Unreachable(syscall.ECONNREFUSED))
	assert.True(t, Unreachable(errors.New("dial tcp 127.0.0.1:11434: connection refused")))
	assert.True(t, Unreachable(&net.OpError{Op: "dial", Net: "tcp", Err: syscall.ECONNREFUSED}))

	// A reset on an established connection is a request failure, not a
	// dead service.
	assert.False(t, Unreachable(&net.OpError{Op: "read", Net: "tcp", Err: syscall.ECONNRESET}))
	assert.False(t, Unreachable(errors.New("model returned 500")))
	assert.False(t, Unreachable(nil))
}
