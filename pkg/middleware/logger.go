package middleware

import (
	"net/http"

	"movie-review/pkg/utils"

	"github.com/felixge/httpsnoop"
	"go.uber.org/zap"
)

// Logger logs one line per request once the response has been written.
func Logger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			metrics := httpsnoop.CaptureMetrics(next, w, r)

			requestID, _ := utils.GetRequestIDFromContext(r.Context())

			fields := []zap.Field{
				zap.String("request_id", requestID),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("query", r.URL.RawQuery),
				zap.Int("status", metrics.Code),
				zap.Int64("bytes", metrics.Written),
				zap.Duration("duration", metrics.Duration),
				zap.String("ip", r.RemoteAddr),
				zap.String("user_agent", r.UserAgent()),
			}

			switch {
			case metrics.Code >= http.StatusInternalServerError:
				logger.Error("HTTP request", fields...)
			case metrics.Code >= http.StatusBadRequest:
				logger.Warn("HTTP request", fields...)
			default:
				logger.Info("HTTP request", fields...)
			}
		})
	}
}
