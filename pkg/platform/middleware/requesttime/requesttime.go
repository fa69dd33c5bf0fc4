// Package requesttime pins a single "now" per HTTP request. Everything a
// request computes (ages, fortune periods, audit timestamps) observes the
// same instant, which keeps the engine reproducible and its callers
// testable.
package requesttime

import (
	"net/http"
	"time"

	"ziwei/pkg/requestcontext"
)

// Middleware captures the current time at the start of the request and
// stores it in the context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithTime(r.Context(), time.Now())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
