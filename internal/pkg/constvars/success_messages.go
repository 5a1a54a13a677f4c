package constvars

const (
	ResponseUnknown = "unknown"

	// Formatted with the patient ID taken from the URL path.
	PatientUpdatedSuccessFormat = "Patient with ID %s updated successfully."

	HealthCheckSuccessMessage = "service is healthy"
	HealthCheckFailedMessage  = "service is unhealthy"

	HealthStatusUp       = "up"
	HealthStatusDown     = "down"
	HealthStatusDisabled = "disabled"
)
