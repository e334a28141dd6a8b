package routing

import (
	"context"
	"log/slog"
	"time"

	"github.com/UnknownOlympus/hermes/internal/models"
)

// defaultBackoff is the base delay between retry attempts. The effective delay
// grows linearly with the attempt number, so with n attempts a candidate can
// spend up to n per-attempt timeouts plus base times n(n-1)/2 sleeping.
const defaultBackoff = time.Second

// Retry wraps a Provider with a bounded retry policy. Only transient failures
// (rate limiting, timeouts, network errors) are retried; permanent failures and
// context cancellation return immediately. After exhausting all attempts the
// last observed error is surfaced verbatim.
type Retry struct {
	inner       Provider
	maxAttempts int
	timeout     time.Duration
	backoff     time.Duration
	log         *slog.Logger
}

// NewRetry wraps the given provider with up to maxAttempts attempts and a
// per-attempt timeout.
func NewRetry(inner Provider, maxAttempts int, timeout time.Duration, log *slog.Logger) *Retry {
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	return &Retry{
		inner:       inner,
		maxAttempts: maxAttempts,
		timeout:     timeout,
		backoff:     defaultBackoff,
		log:         log,
	}
}

// Route resolves the pair through the wrapped provider, retrying transient failures.
func (r *Retry) Route(ctx context.Context, origin, destination string) (*models.Leg, error) {
	var lastErr error

	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		attemptCtx := ctx
		cancel := context.CancelFunc(func() {})
		if r.timeout > 0 {
			attemptCtx, cancel = context.WithTimeout(ctx, r.timeout)
		}

		leg, err := r.inner.Route(attemptCtx, origin, destination)
		cancel()
		if err == nil {
			return leg, nil
		}
		lastErr = err

		if !IsTransient(err) || attempt == r.maxAttempts {
			return nil, lastErr
		}

		r.log.WarnContext(ctx, "Routing attempt failed, retrying",
			"attempt", attempt, "kind", KindOf(err).String(), "destination", destination, "error", err)

		delay := r.backoff * time.Duration(attempt)
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	return nil, lastErr
}
