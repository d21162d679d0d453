// Package audit contains domain types for the request audit trail.
package audit

import (
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
)

// Outcome constants for audit records.
const (
	// OutcomeOK indicates the handler was invoked and returned a result.
	OutcomeOK = "ok"
	// OutcomeUnauthorized indicates the request failed authentication.
	OutcomeUnauthorized = "unauthorized"
	// OutcomeMisconfigured indicates the server had no auth token configured.
	OutcomeMisconfigured = "misconfigured"
	// OutcomeBadRequest indicates the body was rejected before authentication.
	OutcomeBadRequest = "bad_request"
	// OutcomeError indicates the handler returned an error or panicked.
	OutcomeError = "error"
)

// Record is one audited gateway request. The raw body never leaves the
// gateway; only its digest is recorded.
type Record struct {
	// Timestamp when the request completed.
	Timestamp time.Time `json:"timestamp"`
	// RequestID correlates with the X-Request-ID response header.
	RequestID string `json:"request_id"`
	// Route is the invoked route name (e.g. "check").
	Route string `json:"route"`
	// Status is the HTTP status written to the client.
	Status int `json:"status"`
	// Outcome is one of the Outcome* constants.
	Outcome string `json:"outcome"`
	// DurationMS is the wall-clock request duration in milliseconds.
	DurationMS int64 `json:"duration_ms"`
	// BodyDigest is the xxhash64 hex digest of the raw request body.
	BodyDigest string `json:"body_digest,omitempty"`
}

// BodyDigest computes the digest stored in Record.BodyDigest.
func BodyDigest(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	return strconv.FormatUint(xxhash.Sum64(body), 16)
}
