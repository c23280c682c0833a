package testutil

import (
	"net/http"
	"time"

	"tallyboard/pkg/requestcontext"
)

// WithOperator stamps the request context with an operator name, simulating
// what the bearer-token middleware does for authenticated requests.
func WithOperator(req *http.Request, operator string) *http.Request {
	return req.WithContext(requestcontext.WithOperator(req.Context(), operator))
}

// WithRequestID stamps the request context with a fixed request ID.
func WithRequestID(req *http.Request, requestID string) *http.Request {
	return req.WithContext(requestcontext.WithRequestID(req.Context(), requestID))
}

// WithTime pins the request-scoped clock, so handlers and services observe a
// deterministic timestamp.
func WithTime(req *http.Request, now time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), now))
}
