package middlewares

import (
	"context"
	"net/http"
	"patient-service/internal/pkg/constvars"
	"patient-service/internal/pkg/utils"
	"time"

	"go.uber.org/zap"
)

type responseRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (rec *responseRecorder) WriteHeader(code int) {
	rec.statusCode = code
	rec.ResponseWriter.WriteHeader(code)
}

func (m *Middlewares) Logging(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := utils.GetRequestID(r.Context())
			isClientRequestID, _ := r.Context().Value(constvars.CONTEXT_IS_CLIENT_REQUEST_ID_KEY).(bool)

			logger.Info("API request started",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Bool("is_client_request_id", isClientRequestID),
				zap.String(constvars.LoggingMethodKey, r.Method),
				zap.String(constvars.LoggingEndpointKey, r.URL.Path),
				zap.String(constvars.LoggingRemoteAddrKey, r.RemoteAddr),
				zap.String(constvars.LoggingUserAgentKey, r.UserAgent()),
				zap.String(constvars.LoggingQueryKey, r.URL.RawQuery),
			)

			rec := &responseRecorder{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(rec, r)

			logger.Info("API request completed",
				zap.Int(constvars.LoggingStatusCodeKey, rec.statusCode),
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingMethodKey, r.Method),
				zap.String(constvars.LoggingEndpointKey, r.URL.Path),
				zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
				zap.Bool(constvars.LoggingSuccessKey, rec.statusCode < 400),
			)
		})
	}
}

// RequestIDMiddleware honours an incoming X-Request-ID and generates one
// otherwise. The id is always echoed back on the response.
func (m *Middlewares) RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(constvars.HeaderXRequestID)
		isClientRequestID := true

		if requestID == "" {
			requestID = utils.GenerateRequestID()
			isClientRequestID = false
		}

		ctx := context.WithValue(r.Context(), constvars.CONTEXT_REQUEST_ID_KEY, requestID)
		ctx = context.WithValue(ctx, constvars.CONTEXT_IS_CLIENT_REQUEST_ID_KEY, isClientRequestID)

		w.Header().Set(constvars.HeaderXRequestID, requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// BodyLimit caps request bodies at APP_REQUEST_BODY_LIMIT_IN_MEGABYTE.
// Readers past the cap get an *http.MaxBytesError.
func (m *Middlewares) BodyLimit(next http.Handler) http.Handler {
	limit := int64(m.InternalConfig.App.RequestBodyLimitInMegabyte) << 20
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if limit > 0 && r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, limit)
		}
		next.ServeHTTP(w, r)
	})
}
