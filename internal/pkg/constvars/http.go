package constvars

import "net/http"

const (
	StatusOK                  = http.StatusOK
	StatusBadRequest          = http.StatusBadRequest
	StatusRequestTooLarge     = http.StatusRequestEntityTooLarge
	StatusTooManyRequests     = http.StatusTooManyRequests
	StatusInternalServerError = http.StatusInternalServerError
	StatusServiceUnavailable  = http.StatusServiceUnavailable
)

const (
	MIMEApplicationJSON      = "application/json"
	MIMETextPlainCharsetUTF8 = "text/plain; charset=utf-8"
)

const (
	HeaderAccept      = "Accept"
	HeaderContentType = "Content-Type"
	HeaderRetryAfter  = "Retry-After"
	HeaderXRequestID  = "X-Request-ID"
)
