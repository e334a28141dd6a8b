package routing

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
)

// Kind partitions provider call failures into the retry policy buckets.
type Kind int

const (
	// KindInvalidAddress is a locally or provider-side rejected address. Permanent.
	KindInvalidAddress Kind = iota
	// KindRateLimited is a provider rate-limit signal. Transient.
	KindRateLimited
	// KindTimeout is an exceeded per-request deadline. Transient.
	KindTimeout
	// KindNetwork is a transport-level failure. Transient.
	KindNetwork
	// KindProvider is a provider-side failure retry cannot fix. Permanent.
	KindProvider
)

// String returns the short label used in logs and error strings.
func (k Kind) String() string {
	switch k {
	case KindInvalidAddress:
		return "invalid_address"
	case KindRateLimited:
		return "rate_limited"
	case KindTimeout:
		return "timeout"
	case KindNetwork:
		return "network"
	case KindProvider:
		return "provider"
	default:
		return "unknown"
	}
}

// Error classifies a routing provider failure as transient or permanent.
type Error struct {
	Kind   Kind
	Op     string
	Detail string
	Cause  error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}

	parts := make([]string, 0, 4)
	parts = append(parts, e.Kind.String())

	if e.Op != "" {
		parts = append(parts, e.Op)
	}
	if detail := strings.TrimSpace(e.Detail); detail != "" {
		parts = append(parts, detail)
	}
	if e.Cause != nil {
		parts = append(parts, e.Cause.Error())
	}

	return strings.Join(parts, ": ")
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// newError builds a classified routing error.
func newError(kind Kind, op, detail string, cause error) *Error {
	return &Error{Kind: kind, Op: op, Detail: detail, Cause: cause}
}

// KindOf reports the error kind for any routing-related failure.
// Unclassified errors are treated as permanent provider failures.
func KindOf(err error) Kind {
	var rerr *Error
	if errors.As(err, &rerr) {
		return rerr.Kind
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return KindTimeout
		}
		return KindNetwork
	}

	return KindProvider
}

// IsTransient reports whether an error should be retried.
// Context cancellation is never retried.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}

	switch KindOf(err) {
	case KindRateLimited, KindTimeout, KindNetwork:
		return true
	case KindInvalidAddress, KindProvider:
		return false
	default:
		return false
	}
}

// wrapTransport classifies an error coming out of a provider transport.
func wrapTransport(op string, err error) *Error {
	return newError(KindOf(err), op, "", err)
}

// errStatus formats a provider HTTP status failure.
func errStatus(kind Kind, op string, code int, body string) *Error {
	return newError(kind, op, fmt.Sprintf("status %d: %s", code, strings.TrimSpace(body)), nil)
}
