package http

import (
	"fmt"
	"io"
	"net/http"
)

// healthHandler answers liveness probes. It bypasses authentication, body
// parsing, and dispatch entirely and always answers 200 "ok".
func healthHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, "ok")
	})
}

// rootHandler answers GET / with a plain-text status line.
func rootHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "fngate is running")
	})
}
