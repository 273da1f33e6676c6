package httpapi

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/hupe1980/refget"
)

// RequestIDHeader carries the request ID in both directions.
const RequestIDHeader = "X-Request-Id"

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int64
}

func (r *statusRecorder) WriteHeader(code int) {
	if r.status == 0 {
		r.status = code
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(p []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(p)
	r.bytes += int64(n)
	return n, err
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// instrument tags the request with an ID, logs one access line and
// reports the request to the observer.
func (s *Server) instrument(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		ctx := refget.ContextWithRequestID(r.Context(), id)

		rec := &statusRecorder{ResponseWriter: w}
		aborted := true
		defer func() {
			status := rec.status
			if status == 0 {
				status = http.StatusOK
			}
			duration := time.Since(start)

			s.opts.logger.InfoContext(ctx, "request",
				"request_id", id,
				"method", r.Method,
				"path", r.URL.Path,
				"route", route,
				"status", status,
				"bytes", rec.bytes,
				"duration", duration,
				"aborted", aborted,
			)
			if s.opts.observer != nil {
				s.opts.observer.ObserveHTTP(route, status, duration)
			}
		}()

		next.ServeHTTP(rec, r.WithContext(ctx))
		aborted = false
	})
}
