package requests

// Patient is the JSON payload accepted by the create and update endpoints.
type Patient struct {
	Name      string `json:"name" validate:"required,not_blank"`
	PatientID string `json:"patientID" validate:"required,not_blank"`
}
