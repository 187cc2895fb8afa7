package server

import (
	"net/http"
	"time"

	log "go.uber.org/zap"
)

// requestIDMiddleware tags each request with an ID and logs it.
func requestIDMiddleware(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := RequestID(r.Header.Get(RequestIDHeader))
			if reqID == "" {
				reqID = newRequestID()
			}

			r = r.WithContext(contextWithRequestID(r.Context(), reqID))
			w.Header().Set(RequestIDHeader, string(reqID))

			start := time.Now()
			next.ServeHTTP(w, r)

			logger.Debug("HTTP request completed",
				log.String("method", r.Method),
				log.String("path", r.URL.Path),
				log.String("remote_addr", r.RemoteAddr),
				log.String("request_id", string(reqID)),
				log.Duration("duration", time.Since(start)),
			)
		})
	}
}
