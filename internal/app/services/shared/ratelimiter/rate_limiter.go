package ratelimiter

import (
	"context"
	"errors"
	"fmt"
	"patient-service/internal/app/contracts"
	"patient-service/internal/pkg/constvars"
	"patient-service/internal/pkg/utils"
	"strings"
	"time"

	"go.uber.org/zap"
)

const defaultWindowDurationSec = 60

var errNilLimiterInput = errors.New("nil limiter input")

// ResourceLimiter is a fixed-window counter in Redis. Every window gets its
// own key, which expires shortly after the window closes.
type ResourceLimiter struct {
	redis contracts.RedisRepository
	log   *zap.Logger
}

func NewResourceLimiter(redis contracts.RedisRepository, log *zap.Logger) *ResourceLimiter {
	return &ResourceLimiter{redis: redis, log: log}
}

type ApplyResourceLimiterInput struct {
	// ResourceName is what gets limited, e.g. a client IP.
	ResourceName string
	// LimiterGroupName namespaces the key, e.g. patient-write.
	LimiterGroupName  string
	WindowDurationSec int
	// MaxQuota <= 0 disables the limiter.
	MaxQuota int
	// NowUTC defaults to time.Now().UTC().
	NowUTC time.Time
}

type ApplyResourceLimiterOutput struct {
	Allowed        bool
	RetryAfterSecs int
}

func (l *ResourceLimiter) ApplyResourceLimiter(ctx context.Context, in *ApplyResourceLimiterInput) (*ApplyResourceLimiterOutput, error) {
	if in == nil {
		return &ApplyResourceLimiterOutput{Allowed: false}, errNilLimiterInput
	}

	if in.MaxQuota <= 0 {
		return &ApplyResourceLimiterOutput{Allowed: true}, nil
	}

	windowSec := in.WindowDurationSec
	if windowSec <= 0 {
		windowSec = defaultWindowDurationSec
	}

	resource := strings.ToLower(strings.TrimSpace(in.ResourceName))
	group := strings.ToUpper(strings.TrimSpace(in.LimiterGroupName))
	if resource == "" || group == "" {
		return &ApplyResourceLimiterOutput{Allowed: false, RetryAfterSecs: windowSec}, nil
	}

	now := in.NowUTC
	if now.IsZero() {
		now = time.Now().UTC()
	}

	windowID := now.Unix() / int64(windowSec)
	key := WindowKey(group, resource, windowID)

	ttl := time.Duration(windowSec)*time.Second + time.Second
	newCount, err := l.redis.IncrementWithTTL(ctx, key, ttl)
	if err != nil {
		l.log.Error("ResourceLimiter.ApplyResourceLimiter increment failed",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingRedisKey, key),
			zap.Error(err),
		)
		return &ApplyResourceLimiterOutput{Allowed: false}, err
	}

	if newCount > in.MaxQuota {
		nextWindowStart := (windowID + 1) * int64(windowSec)
		retryAfter := int(nextWindowStart-now.Unix()) + 1
		l.log.Warn("ResourceLimiter.ApplyResourceLimiter quota exceeded",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingRedisKey, key),
			zap.Int("count", newCount),
		)
		return &ApplyResourceLimiterOutput{Allowed: false, RetryAfterSecs: retryAfter}, nil
	}

	return &ApplyResourceLimiterOutput{Allowed: true}, nil
}

// WindowKey is GROUP:resource:windowID.
func WindowKey(group, resource string, windowID int64) string {
	return fmt.Sprintf("%s:%s:%d", group, resource, windowID)
}
