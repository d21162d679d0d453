// Package ctxkey defines shared context key types used across packages.
// It must stay dependency-free to avoid import cycles.
package ctxkey

// LoggerKey is the context key type for the request-enriched logger.
type LoggerKey struct{}

// RequestIDKey is the context key type for the request ID.
type RequestIDKey struct{}
