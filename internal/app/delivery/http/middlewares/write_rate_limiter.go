package middlewares

import (
	"errors"
	"net"
	"net/http"
	"patient-service/internal/app/services/shared/ratelimiter"
	"patient-service/internal/pkg/constvars"
	"patient-service/internal/pkg/exceptions"
	"patient-service/internal/pkg/utils"
	"strconv"

	"go.uber.org/zap"
)

const writeRateLimitWindowSec = 60

var errWriteQuotaExceeded = errors.New("write quota exceeded")

// WriteRateLimiter applies the Redis fixed-window quota APP_WRITE_RATE_LIMIT
// per client IP and minute. It is a pass-through when Redis is disabled or
// the quota is zero. Redis failures fail open.
func (m *Middlewares) WriteRateLimiter(next http.Handler) http.Handler {
	maxQuota := m.InternalConfig.App.WriteRateLimit
	if m.ResourceLimiter == nil || maxQuota <= 0 {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := utils.GetRequestID(r.Context())
		clientIP := clientIPFromRequest(r)

		output, err := m.ResourceLimiter.ApplyResourceLimiter(r.Context(), &ratelimiter.ApplyResourceLimiterInput{
			ResourceName:      clientIP,
			LimiterGroupName:  constvars.RedisKeyGroupPatientWrite,
			WindowDurationSec: writeRateLimitWindowSec,
			MaxQuota:          maxQuota,
		})
		if err != nil {
			m.Log.Warn("Middlewares.WriteRateLimiter limiter unavailable, allowing request",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			next.ServeHTTP(w, r)
			return
		}

		if !output.Allowed {
			m.Log.Info("Middlewares.WriteRateLimiter rejected request",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingRemoteAddrKey, clientIP),
			)
			w.Header().Set(constvars.HeaderRetryAfter, strconv.Itoa(output.RetryAfterSecs))
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTooManyRequests(errWriteQuotaExceeded, constvars.ResourcePatient))
			return
		}

		next.ServeHTTP(w, r)
	})
}

func clientIPFromRequest(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
