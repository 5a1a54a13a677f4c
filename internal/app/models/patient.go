package models

import (
	"patient-service/internal/pkg/constvars"
	"patient-service/internal/pkg/dto/requests"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Patient is the storage shape of a patient. Field names are capitalised in
// the database while the JSON payload uses name/patientID.
type Patient struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"Name"`
	PatientID string             `bson:"PatientID"`
}

func NewPatientFromRequest(request *requests.Patient) *Patient {
	return &Patient{
		Name:      request.Name,
		PatientID: request.PatientID,
	}
}

// ConvertIntoExtJSON renders the inserted document as relaxed MongoDB Extended
// JSON with _id last, e.g. {"Name":"Alice","PatientID":"P1","_id":{"$oid":"..."}}.
func (p *Patient) ConvertIntoExtJSON() ([]byte, error) {
	document := bson.D{
		{Key: constvars.MongoFieldName, Value: p.Name},
		{Key: constvars.MongoFieldPatientID, Value: p.PatientID},
	}
	if !p.ID.IsZero() {
		document = append(document, bson.E{Key: constvars.MongoFieldID, Value: p.ID})
	}
	return bson.MarshalExtJSON(document, false, false)
}

type PatientEvent struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	PatientID  string    `json:"patientID"`
	Name       string    `json:"name"`
	OccurredAt time.Time `json:"occurredAt"`
}
