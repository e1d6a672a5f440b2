// Package middleware provides HTTP middleware for the aether service.
package middleware

import (
	"context"
	"net/http"

	"aether/internal/demo"
	apperrors "aether/internal/errors"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

const (
	// DemoContextKey is the context key for the per-request demo flag.
	DemoContextKey ContextKey = "demo"

	// DemoHeader is set on every response served in demo mode.
	DemoHeader = "X-Demo-Mode"
)

// DemoMode detects demo mode for each request from the host it was
// addressed to and stores the result in the request context.
func DemoMode(det *demo.Detector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			active := det.DetectRequest(r)
			if active {
				w.Header().Set(DemoHeader, "true")
			}
			ctx := context.WithValue(r.Context(), DemoContextKey, active)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IsDemo reports whether DemoMode marked the request as demo.
// Returns false when the middleware did not run.
func IsDemo(r *http.Request) bool {
	active, _ := r.Context().Value(DemoContextKey).(bool)
	return active
}

// BlockWritesInDemo rejects state-changing requests in demo mode.
// Must run after DemoMode.
func BlockWritesInDemo(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if IsDemo(r) && !isSafeMethod(r.Method) {
			apperrors.WriteJSON(w, apperrors.DemoMode("Changes are disabled in demo mode"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}
