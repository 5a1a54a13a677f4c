package constvars

type ContextKey string

const (
	ResourcePatient = "patient"
)

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
)

const (
	REQUEST_ID_PREFIX = "PTNT_SVC_"
)

const (
	AppEnvDevelopment = "development"
	AppEnvProduction  = "production"
)

const (
	MongoCollectionPatients = "patients"

	// Storage document field names. They intentionally differ in case from
	// the JSON payload fields.
	MongoFieldID        = "_id"
	MongoFieldName      = "Name"
	MongoFieldPatientID = "PatientID"
)

const (
	RedisKeyGroupPatientWrite = "patient-write"
)

const (
	PatientEventCreated = "patient.created"
	PatientEventUpdated = "patient.updated"
)

const (
	URLParamPatientID = "patientID"
)
