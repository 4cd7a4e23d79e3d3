package domain

import (
	"context"
	"errors"
	"fmt"
)

// FailureReason classifies why an upstream fetch failed. The same values are
// surfaced in partial composites and in readiness probes.
type FailureReason string

const (
	FailureUnauthorized     FailureReason = "upstream_unauthorized"
	FailureRateLimited      FailureReason = "upstream_rate_limited"
	FailureHTTPError        FailureReason = "upstream_http_error"
	FailureTimeout          FailureReason = "upstream_timeout"
	FailureBlocked          FailureReason = "scrape_blocked"
	FailureStructureMissing FailureReason = "scrape_structure_missing"
)

// Upstream-reported failures outrank transport-level ones when a single
// reason has to be reported for a fully failed request.
var failureSeverity = map[FailureReason]int{
	FailureUnauthorized:     6,
	FailureRateLimited:      5,
	FailureBlocked:          4,
	FailureHTTPError:        3,
	FailureStructureMissing: 2,
	FailureTimeout:          1,
}

func MoreSevere(a, b FailureReason) FailureReason {
	if failureSeverity[b] > failureSeverity[a] {
		return b
	}
	return a
}

// UpstreamError wraps a source-specific error with its classified reason.
type UpstreamError struct {
	Source string
	Reason FailureReason
	Err    error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Source, e.Reason, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// ReasonOf extracts the failure reason from an error chain, defaulting to
// timeout for context expiry and generic HTTP failure otherwise.
func ReasonOf(err error) FailureReason {
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return ue.Reason
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return FailureTimeout
	}
	return FailureHTTPError
}
