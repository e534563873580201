package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"tya/internal/logging"
)

// accessRecord collects what the access log line reports about a request.
// Handlers further down the chain fill in the caller once it is known.
type accessRecord struct {
	http.ResponseWriter
	status int
	bytes  int
	userID int64
}

func (rec *accessRecord) WriteHeader(code int) {
	if rec.status == 0 {
		rec.status = code
		rec.ResponseWriter.WriteHeader(code)
	}
}

func (rec *accessRecord) Write(b []byte) (int, error) {
	if rec.status == 0 {
		rec.WriteHeader(http.StatusOK)
	}
	n, err := rec.ResponseWriter.Write(b)
	rec.bytes += n
	return n, err
}

type accessKey struct{}

// noteCaller records the authenticated caller on the access log of ctx.
func noteCaller(ctx context.Context, userID int64) {
	if rec, ok := ctx.Value(accessKey{}).(*accessRecord); ok {
		rec.userID = userID
	}
}

// RequestLogging tags each request with an id and writes one access log line
// when it completes. An incoming X-Request-ID is kept.
func RequestLogging() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := r.Header.Get("X-Request-ID")
			if requestID == "" {
				requestID = uuid.NewString()
			}
			w.Header().Set("X-Request-ID", requestID)

			rec := &accessRecord{ResponseWriter: w}
			ctx := logging.WithRequestID(r.Context(), requestID)
			ctx = context.WithValue(ctx, accessKey{}, rec)

			next.ServeHTTP(rec, r.WithContext(ctx))

			status := rec.status
			if status == 0 {
				status = http.StatusOK
			}
			accessEvent(status).
				Str("request_id", requestID).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", status).
				Int("bytes", rec.bytes).
				Int64("user_id", rec.userID).
				Dur("elapsed", time.Since(start)).
				Msg("request")
		})
	}
}

func accessEvent(status int) *zerolog.Event {
	switch {
	case status >= 500:
		return log.Error()
	case status >= 400:
		return log.Warn()
	default:
		return log.Info()
	}
}

// Recovery turns a panic into a 500 response.
func Recovery() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.Error().
						Str("request_id", logging.RequestID(r.Context())).
						Str("method", r.Method).
						Str("path", r.URL.Path).
						Interface("panic", err).
						Msg("recovered from panic")

					writeError(w, http.StatusInternalServerError, "internal server error")
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
