package middleware

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

type responseWriter struct {
	http.ResponseWriter
	body   *bytes.Buffer
	status int
	size   int
}

func (rw *responseWriter) WriteHeader(status int) {
	rw.status = status
	rw.ResponseWriter.WriteHeader(status)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if rw.status >= http.StatusBadRequest {
		rw.body.Write(b)
	}

	size, err := rw.ResponseWriter.Write(b)
	rw.size += size
	return size, err
}

// LoggingMiddleware logs one line per request. Client errors are logged at
// warn level and server errors at error level, both with the response body.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{
			ResponseWriter: w,
			status:         http.StatusOK,
			body:           &bytes.Buffer{},
		}

		next.ServeHTTP(rw, r)

		logMsg := fmt.Sprintf("%s %s - %d", r.Method, r.URL.Path, rw.status)
		attrs := []any{
			"request_id", chimiddleware.GetReqID(r.Context()),
			"bytes", rw.size,
			"duration", time.Since(start).String(),
		}

		switch {
		case rw.status >= http.StatusInternalServerError:
			slog.Error(logMsg, append(attrs, "response_body", rw.body.String())...)
		case rw.status >= http.StatusBadRequest:
			slog.Warn(logMsg, append(attrs, "response_body", rw.body.String())...)
		default:
			slog.Info(logMsg, attrs...)
		}
	})
}
