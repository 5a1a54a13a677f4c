package patients

import (
	"context"
	"patient-service/internal/app/contracts"
	"patient-service/internal/app/models"
	"patient-service/internal/pkg/constvars"
	"patient-service/internal/pkg/dto/requests"
	"patient-service/internal/pkg/dto/responses"
	"patient-service/internal/pkg/exceptions"
	"patient-service/internal/pkg/utils"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

type patientUsecase struct {
	PatientRepository contracts.PatientRepository
	EventPublisher    contracts.PatientEventPublisher
	Log               *zap.Logger
}

func NewPatientUsecase(
	patientRepository contracts.PatientRepository,
	eventPublisher contracts.PatientEventPublisher,
	logger *zap.Logger,
) contracts.PatientUsecase {
	return &patientUsecase{
		PatientRepository: patientRepository,
		EventPublisher:    eventPublisher,
		Log:               logger,
	}
}

func (uc *patientUsecase) FindAll(ctx context.Context) ([]responses.StringifiedDocument, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("patientUsecase.FindAll called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	cursor, err := uc.PatientRepository.FindAll(ctx)
	if err != nil {
		uc.Log.Error("patientUsecase.FindAll error opening cursor",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	// The cursor must be released even when the request context is already
	// cancelled or iteration stopped halfway.
	defer func() {
		closeErr := cursor.Close(context.WithoutCancel(ctx))
		if closeErr != nil {
			uc.Log.Warn("patientUsecase.FindAll error closing cursor",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(closeErr),
			)
		}
	}()

	patients := make([]responses.StringifiedDocument, 0)
	for cursor.Next(ctx) {
		var raw bson.Raw
		err := cursor.Decode(&raw)
		if err != nil {
			uc.Log.Error("patientUsecase.FindAll error decoding document",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			return nil, exceptions.ErrMongoDBIterateDocuments(err)
		}

		document, err := StringifyDocument(raw)
		if err != nil {
			uc.Log.Error("patientUsecase.FindAll error stringifying document",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			return nil, err
		}
		patients = append(patients, document)
	}

	err = cursor.Err()
	if err != nil {
		uc.Log.Error("patientUsecase.FindAll error iterating cursor",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}

	uc.Log.Info("patientUsecase.FindAll succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingPatientCountKey, len(patients)),
	)
	return patients, nil
}

func (uc *patientUsecase) Create(ctx context.Context, request *requests.Patient) (*models.Patient, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("patientUsecase.Create called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	err := uc.validate(requestID, "patientUsecase.Create", request)
	if err != nil {
		return nil, err
	}

	// No duplicate check: PatientID is not guaranteed to be unique.
	patient := models.NewPatientFromRequest(request)
	insertedID, err := uc.PatientRepository.Insert(ctx, patient)
	if err != nil {
		uc.Log.Error("patientUsecase.Create error inserting patient",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPatientIDKey, patient.PatientID),
			zap.Error(err),
		)
		return nil, err
	}
	patient.ID = insertedID

	uc.publishEvent(ctx, requestID, constvars.PatientEventCreated, patient.PatientID, patient.Name)

	uc.Log.Info("patientUsecase.Create succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patient.PatientID),
		zap.String(constvars.LoggingInsertedIDKey, insertedID.Hex()),
	)
	return patient, nil
}

// Update only ever changes Name. The patientID of the payload is ignored in
// favour of the one addressed by the caller, and matching nothing is not an
// error.
func (uc *patientUsecase) Update(ctx context.Context, patientID string, request *requests.Patient) error {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("patientUsecase.Update called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)

	err := uc.validate(requestID, "patientUsecase.Update", request)
	if err != nil {
		return err
	}

	matchedCount, err := uc.PatientRepository.UpdateNameByPatientID(ctx, patientID, request.Name)
	if err != nil {
		uc.Log.Error("patientUsecase.Update error updating patient",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPatientIDKey, patientID),
			zap.Error(err),
		)
		return err
	}

	if matchedCount == 0 {
		// An unknown patientID is still reported as updated.
		uc.Log.Warn("patientUsecase.Update no patient matched",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPatientIDKey, patientID),
		)
	} else {
		uc.publishEvent(ctx, requestID, constvars.PatientEventUpdated, patientID, request.Name)
	}

	uc.Log.Info("patientUsecase.Update succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
		zap.Int64(constvars.LoggingMatchedCountKey, matchedCount),
	)
	return nil
}

func (uc *patientUsecase) validate(requestID, caller string, request *requests.Patient) error {
	err := utils.ValidateStruct(request)
	if err == nil {
		return nil
	}

	err = exceptions.ErrInputValidation(err)
	uc.Log.Info(caller+" validation failed",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Error(err),
	)
	return err
}

// publishEvent runs after the write has been committed, so a failure here is
// logged and never reported to the caller.
func (uc *patientUsecase) publishEvent(ctx context.Context, requestID, eventType, patientID, name string) {
	event := &models.PatientEvent{
		ID:         uuid.NewString(),
		Type:       eventType,
		PatientID:  patientID,
		Name:       name,
		OccurredAt: time.Now().UTC(),
	}

	_ = utils.LogOperation(uc.Log, "patientUsecase.publishEvent "+eventType, requestID, func() error {
		return uc.EventPublisher.Publish(ctx, event)
	})
}
