package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/akinalp/bloglist/pkg"
	"github.com/akinalp/bloglist/pkg/logger"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-Id"

// RequestLogger tags every request with an id and writes one access log
// line when it completes.
//
// A caller-supplied X-Request-Id is kept when it is a UUID; otherwise a new
// one is generated. The request-scoped logger is stored in the context, so
// zerolog.Ctx(r.Context()) anywhere downstream logs with the request id.
// Panics are recovered into a 500.
func RequestLogger(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := r.Header.Get(RequestIDHeader)
			if _, err := uuid.Parse(requestID); err != nil {
				requestID = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, requestID)

			reqLog := log.With().Str(logger.FieldRequestID, requestID).Logger()
			r = r.WithContext(reqLog.WithContext(r.Context()))

			rec := newStatusRecorder(w)
			defer func() {
				if p := recover(); p != nil {
					reqLog.Error().Interface("panic", p).
						Str("method", r.Method).
						Str("path", r.URL.Path).
						Msg("panic recovered")
					if !rec.written {
						pkg.ErrorWithMessage(rec, http.StatusInternalServerError, "internal server error")
					}
				}

				reqLog.Info().
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Int("status", rec.status).
					Dur("duration", time.Since(start)).
					Str("remote", r.RemoteAddr).
					Msg("request")
			}()

			next.ServeHTTP(rec, r)
		})
	}
}
