package middleware

import (
	"log/slog"
	"net/http"

	"github.com/Mohahamed99-by/shoe-store-morocco/pkg/logger"
)

// RequestLogger stores a request-scoped logger in the context. The logger
// carries correlation_id, session_id, trace_id and span_id when present, and
// handlers retrieve it with logger.FromContext.
//
// Mount it after RequestLogging and Tracing so both ids are already set.
func RequestLogger(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if sid := r.Header.Get(SessionIDHeader); sid != "" && logger.SessionIDFromContext(ctx) == "" {
				ctx = logger.WithSessionID(ctx, sid)
			}

			ctx = logger.NewContext(ctx, logger.WithContext(ctx, base))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
