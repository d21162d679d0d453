// Package handler defines the contract between the gateway and the
// externally supplied request handlers, plus the resolver that adapts the
// export shapes a handler module may use.
package handler

import "context"

// Event is the normalized request envelope passed to a handler. Body is the
// JSON serialization of the coerced request payload; Headers maps lowercased
// inbound header names to their first value.
type Event struct {
	Body    string            `json:"body"`
	Headers map[string]string `json:"headers"`
}

// Result is what a handler returns. Zero values carry the defaults: a
// StatusCode of 0 means 200 and an empty Body stays empty.
type Result struct {
	StatusCode int    `json:"statusCode,omitempty"`
	Body       string `json:"body,omitempty"`
}

// HTTPStatus returns the effective HTTP status for the result.
func (r Result) HTTPStatus() int {
	if r.StatusCode == 0 {
		return 200
	}
	return r.StatusCode
}

// Func is the uniform handler signature the gateway invokes. The call is
// awaited synchronously; no timeout is imposed, so a hung handler occupies
// its request until the surrounding process terminates.
type Func func(ctx context.Context, event Event) (Result, error)

// Invoker is an alternative handler shape: any value with a matching Invoke
// method resolves to a Func.
type Invoker interface {
	Invoke(ctx context.Context, event Event) (Result, error)
}
