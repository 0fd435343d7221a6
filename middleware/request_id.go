package middleware

import (
	"net/http"

	"github.com/google/uuid"
)

// requestIDHeader is echoed back so clients can correlate log lines
const requestIDHeader = "X-Request-ID"

// RequestID assigns each request a unique ID, stored in the context and
// echoed in the response headers. An inbound X-Request-ID is honored.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		w.Header().Set(requestIDHeader, requestID)
		ctx := WithRequestID(r.Context(), requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
