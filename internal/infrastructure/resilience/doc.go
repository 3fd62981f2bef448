/*
Package resilience hardens calls to the local model service.

# Overview

Two cooperating mechanisms live here:

  - Retry: bounded exponential-backoff retry for an arbitrary operation,
    with an optional Recovery capability invoked when the failure looks
    like an unreachable service (for example, the Ollama daemon not
    running).
  - Breaker: a small three-state circuit breaker that stops hammering the
    model service once it is clearly down and probes it again after a
    cooldown.

# Usage

	policy := resilience.Policy{
		MaxAttempts: 3,
		BaseDelay:   time.Second,
		Recovery:    spawner,
		Logger:      logger,
	}
	version, err := resilience.Retry(ctx, policy, func(ctx context.Context) (string, error) {
		return client.Version(ctx)
	})

The backoff before attempt n+1 is 2^n * BaseDelay. After MaxAttempts the
last error is returned wrapped in ErrRetryExhausted.

Recovery implementations must be best-effort: they may do nothing, and
they must never panic the retry loop.
*/
package resilience
