package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/user/openperf-gateway/pkg/requestid"
)

const maxRequestIDLen = 128

// RequestID reuses an incoming X-Request-ID or generates a UUID v4, stores it
// in the request context and echoes it on the response. Incoming ids must be
// printable ASCII and at most maxRequestIDLen bytes, since the id is also sent
// to the engine as gRPC metadata.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestid.Header)
		if !validRequestID(id) {
			id = uuid.New().String()
		}
		w.Header().Set(requestid.Header, id)
		next.ServeHTTP(w, r.WithContext(requestid.NewContext(r.Context(), id)))
	})
}

func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLen {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < 0x20 || id[i] > 0x7e {
			return false
		}
	}
	return true
}
