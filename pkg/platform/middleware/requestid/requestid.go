// Package requestid assigns each request a stable identifier for log correlation.
package requestid

import (
	"net/http"

	"github.com/google/uuid"

	"tallyboard/pkg/requestcontext"
)

// Header is the response header carrying the request ID back to the client.
const Header = "X-Request-Id"

// Middleware reuses an inbound X-Request-Id when present, otherwise generates
// one, and stores it in the context for handlers and services.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get(Header)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		w.Header().Set(Header, reqID)
		ctx := requestcontext.WithRequestID(r.Context(), reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
