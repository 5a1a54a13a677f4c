package contracts

import (
	"context"
	"patient-service/internal/app/models"
	"patient-service/internal/pkg/dto/requests"
	"patient-service/internal/pkg/dto/responses"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PatientUsecase interface {
	FindAll(ctx context.Context) ([]responses.StringifiedDocument, error)
	Create(ctx context.Context, request *requests.Patient) (*models.Patient, error)
	Update(ctx context.Context, patientID string, request *requests.Patient) error
}

type PatientRepository interface {
	FindAll(ctx context.Context) (DocumentCursor, error)
	Insert(ctx context.Context, patient *models.Patient) (primitive.ObjectID, error)
	UpdateNameByPatientID(ctx context.Context, patientID, name string) (int64, error)
}

// DocumentCursor is the read handle returned by FindAll. The caller owns it
// and must Close it. *mongo.Cursor satisfies it.
type DocumentCursor interface {
	Next(ctx context.Context) bool
	Decode(val interface{}) error
	Err() error
	Close(ctx context.Context) error
}

type PatientEventPublisher interface {
	Publish(ctx context.Context, event *models.PatientEvent) error
}
