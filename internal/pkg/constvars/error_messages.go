package constvars

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientTooManyRequests               = "too many requests, please try again later"
	ErrClientRequestBodyTooLarge           = "request body is too large"
	ErrClientServiceUnavailable            = "service is temporarily unavailable"
)

// Error messages for developers
const (
	ErrDevValidationFailed      = "validation failed"
	ErrDevCannotMarshalJSON     = "cannot marshal data into JSON"
	ErrDevCannotStringifyField  = "cannot convert document field %q into text"
	ErrDevServerProcess         = "server failed to process the request"
	ErrDevRequestBodyTooLarge   = "request body exceeded the configured limit"
	ErrDevRateLimitExceeded     = "rate limit exceeded for %s"
	ErrDevDependencyUnreachable = "dependency %s is unreachable"

	ErrDevDBFailedToInsertDocument   = "failed to insert document into database"
	ErrDevDBFailedToUpdateDocument   = "failed to update document into database"
	ErrDevDBFailedToFindDocument     = "failed when do find document on database"
	ErrDevDBFailedToIterateDocuments = "failed when iterating documents from database"

	ErrDevRedisIncrementValue = "failed to increment value in redis"

	ErrDevRabbitMQPublishMessage = "failed to publish message to queue %s"
)

// Validation messages, keyed by validator tag
var CustomValidationErrorMessages = map[string]string{
	"required":  "must not be blank",
	"not_blank": "must not be blank",
}

const (
	ValidationMessageMalformedPatient = "request body must be a valid JSON patient"
)
