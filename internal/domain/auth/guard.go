// Package auth decides whether a request carries the configured shared
// secret. The comparison is constant time so response latency does not leak
// how much of a guessed credential matched.
package auth

import (
	"crypto/subtle"
	"strings"
)

// Result is the outcome of an authentication check.
type Result int

const (
	// Authorized means the presented credential matches the configured secret.
	Authorized Result = iota
	// MissingServerSecret means the server has no secret configured. This is
	// a server misconfiguration, not a client fault, and maps to HTTP 500.
	MissingServerSecret
	// Unauthorized means the credential is absent or does not match. Maps to
	// HTTP 401 with no further detail.
	Unauthorized
)

// String returns a label for logging.
func (r Result) String() string {
	switch r {
	case Authorized:
		return "authorized"
	case MissingServerSecret:
		return "missing_server_secret"
	case Unauthorized:
		return "unauthorized"
	}
	return "unknown"
}

const bearerPrefix = "Bearer "

// Authenticate validates the Authorization header value against the
// configured secret. The length gate runs before ConstantTimeCompare, which
// requires equal-length inputs; rejecting on length does not leak byte
// positions.
func Authenticate(headerValue, configuredSecret string) Result {
	if configuredSecret == "" {
		return MissingServerSecret
	}

	credential := stripBearer(headerValue)
	if credential == "" || len(credential) != len(configuredSecret) {
		return Unauthorized
	}
	if subtle.ConstantTimeCompare([]byte(credential), []byte(configuredSecret)) == 1 {
		return Authorized
	}
	return Unauthorized
}

// stripBearer removes a case-insensitive "Bearer " prefix when present.
// A header without the prefix is treated as the bare credential.
func stripBearer(headerValue string) string {
	if len(headerValue) >= len(bearerPrefix) && strings.EqualFold(headerValue[:len(bearerPrefix)], bearerPrefix) {
		return headerValue[len(bearerPrefix):]
	}
	return headerValue
}
