package resilience

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// ErrRetryExhausted is returned once every attempt has failed. It wraps
// the last underlying error.
var ErrRetryExhausted = errors.New("retry attempts exhausted")

// Recovery is an out-of-band action attempted when an operation fails
// because the backing service appears unreachable. Implementations are
// best-effort and must not panic; a typical one spawns the local model
// service executable.
type Recovery interface {
	Revive(ctx context.Context)
}

// NopRecovery does nothing. It is the default.
type NopRecovery struct{}

// Revive implements Recovery.
func (NopRecovery) Revive(context.Context) {}

// Policy configures Retry.
type Policy struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int
	// BaseDelay scales the exponential backoff: attempt n is followed by
	// a wait of 2^n * BaseDelay.
	BaseDelay time.Duration
	// Recovery is invoked after an unreachable-service failure.
	Recovery Recovery
	Logger   *zap.Logger

	// sleep is swapped out by tests.
	sleep func(context.Context, time.Duration) error
}

func (p Policy) withDefaults() Policy {
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = 3
	}
	if p.BaseDelay <= 0 {
		p.BaseDelay = time.Second
	}
	if p.Recovery == nil {
		p.Recovery = NopRecovery{}
	}
	if p.Logger == nil {
		p.Logger = zap.NewNop()
	}
	if p.sleep == nil {
		p.sleep = sleepContext
	}
	return p
}

// Retry runs op until it succeeds or the policy's attempts are
// exhausted, waiting 2^attempt * BaseDelay between attempts. Each failed
// attempt is logged at warn level. Cancelling ctx aborts the wait and
// returns the context error.
func Retry[T any](ctx context.Context, p Policy, op func(context.Context) (T, error)) (T, error) {
	p = p.withDefaults()

	var zero T
	var lastErr error

	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		result, err := op(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		p.Logger.Warn("attempt failed",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", p.MaxAttempts),
			zap.Error(err),
		)

		if Unreachable(err) {
			revive(ctx, p.Recovery, p.Logger)
		}

		if attempt == p.MaxAttempts {
			break
		}
		delay := (1 << attempt) * p.BaseDelay
		if err := p.sleep(ctx, delay); err != nil {
			return zero, err
		}
	}

	return zero, fmt.Errorf("%w after %d attempts: %w", ErrRetryExhausted, p.MaxAttempts, lastErr)
}

// revive shields the retry loop from a misbehaving Recovery.
func revive(ctx context.Context, r Recovery, logger *zap.Logger) {
	defer func() {
		if v := recover(); v != nil {
			logger.Error("recovery panicked", zap.Any("panic", v))
		}
	}()
	r.Revive(ctx)
}

// Unreachable reports whether err looks like the backing service is not
// accepting connections at all, as opposed to failing requests.
func Unreachable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, syscall.ECONNREFUSED) {
		return true
	}
	// A failed dial means nothing is listening. Errors on an
	// established connection, like a mid-request reset, are request
	// failures and do not warrant reviving the service.
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return opErr.Op == "dial"
	}
	msg := err.Error()
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "no such host")
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
