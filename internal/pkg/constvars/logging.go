package constvars

const (
	LoggingRequestIDKey    = "request_id"
	LoggingPatientIDKey    = "patient_id"
	LoggingPatientCountKey = "patient_count"
	LoggingMatchedCountKey = "matched_count"
	LoggingInsertedIDKey   = "inserted_id"
	LoggingEventTypeKey    = "event_type"
	LoggingQueueKey        = "queue"
	LoggingRedisKey        = "redis_key"
	LoggingMethodKey       = "method"
	LoggingEndpointKey     = "endpoint"
	LoggingRemoteAddrKey   = "remote_addr"
	LoggingUserAgentKey    = "user_agent"
	LoggingQueryKey        = "query"
	LoggingStatusCodeKey   = "status_code"
	LoggingDurationKey     = "duration"
	LoggingSuccessKey      = "success"
	LoggingOperationKey    = "operation"
)
