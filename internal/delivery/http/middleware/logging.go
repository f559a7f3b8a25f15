package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/user/openperf-gateway/pkg/requestid"
)

func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)
		slog.Info("HTTP Request",
			"method", r.Method,
			"route", routePattern(r),
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", time.Since(start).Milliseconds(),
			"remote_addr", r.RemoteAddr,
			"request_id", requestid.FromContext(r.Context()),
		)
	})
}
