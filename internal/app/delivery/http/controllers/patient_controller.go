package controllers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"patient-service/internal/app/contracts"
	"patient-service/internal/pkg/constvars"
	"patient-service/internal/pkg/dto/requests"
	"patient-service/internal/pkg/exceptions"
	"patient-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type PatientController struct {
	Log            *zap.Logger
	PatientUsecase contracts.PatientUsecase
}

func NewPatientController(logger *zap.Logger, patientUsecase contracts.PatientUsecase) *PatientController {
	return &PatientController{
		Log:            logger,
		PatientUsecase: patientUsecase,
	}
}

func (ctrl *PatientController) FindAll(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	ctrl.Log.Info("PatientController.FindAll called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	result, err := ctrl.PatientUsecase.FindAll(r.Context())
	if err != nil {
		ctrl.Log.Error("PatientController.FindAll error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("PatientController.FindAll succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingPatientCountKey, len(result)),
	)
	utils.WriteJSON(w, constvars.StatusOK, result)
}

func (ctrl *PatientController) Create(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	ctrl.Log.Info("PatientController.Create called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	request, err := ctrl.decodePatient(r, requestID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	patient, err := ctrl.PatientUsecase.Create(r.Context(), request)
	if err != nil {
		ctrl.Log.Error("PatientController.Create error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	body, err := patient.ConvertIntoExtJSON()
	if err != nil {
		ctrl.Log.Error("PatientController.Create error rendering inserted patient",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotMarshalJSON(err))
		return
	}

	ctrl.Log.Info("PatientController.Create succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingInsertedIDKey, patient.ID.Hex()),
	)
	utils.WriteRawJSON(w, constvars.StatusOK, body)
}

func (ctrl *PatientController) Update(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	patientID := chi.URLParam(r, constvars.URLParamPatientID)
	ctrl.Log.Info("PatientController.Update called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)

	request, err := ctrl.decodePatient(r, requestID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	err = ctrl.PatientUsecase.Update(r.Context(), patientID, request)
	if err != nil {
		ctrl.Log.Error("PatientController.Update error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPatientIDKey, patientID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("PatientController.Update succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)
	utils.WriteText(w, constvars.StatusOK, fmt.Sprintf(constvars.PatientUpdatedSuccessFormat, patientID))
}

// decodePatient turns an oversized body into 413 and anything that is not a
// JSON patient into a one-message ValidationFailure. The body is read up front
// since the streaming decoder hides reader errors.
func (ctrl *PatientController) decodePatient(r *http.Request, requestID string) (*requests.Patient, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		ctrl.Log.Info("PatientController failed to read request body",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return nil, exceptions.ErrRequestBodyTooLarge(err)
		}
		return nil, exceptions.ErrMalformedPayload()
	}

	request := new(requests.Patient)
	err = json.Unmarshal(body, request)
	if err != nil {
		ctrl.Log.Info("PatientController failed to parse request body",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrMalformedPayload()
	}
	return request, nil
}
