package utils

import (
	"errors"
	"net/http"
	"patient-service/internal/pkg/constvars"
	"patient-service/internal/pkg/dto/responses"
	"patient-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

func BuildSuccessResponse(w http.ResponseWriter, code int, message string, data interface{}) {
	response := responses.ResponseDTO{
		Success: true,
		Message: message,
		Data:    data,
	}
	WriteJSON(w, code, response)
}

func BuildFailedResponse(w http.ResponseWriter, code int, message string, data interface{}) {
	response := responses.ResponseDTO{
		Success: false,
		Message: message,
		Data:    data,
	}
	WriteJSON(w, code, response)
}

// BuildErrorResponse answers a ValidationFailure with 400 and the bare list of
// messages. Any other error is rendered as the error envelope, using the
// status of a CustomError or 500 for everything else.
func BuildErrorResponse(log *zap.Logger, w http.ResponseWriter, err error) {
	var validationFailure *exceptions.ValidationFailure
	if errors.As(err, &validationFailure) {
		WriteJSON(w, constvars.StatusBadRequest, validationFailure.Messages)
		return
	}

	code := constvars.StatusInternalServerError
	clientMessage := constvars.ErrClientSomethingWrongWithApplication

	var customErr *exceptions.CustomError
	if errors.As(err, &customErr) {
		code = customErr.StatusCode
		clientMessage = customErr.ClientMessage
		for _, location := range customErr.Locations {
			log.Error(customErr.DevMessage,
				zap.String("file", location.File),
				zap.Int("line", location.Line),
				zap.String("function_name", location.FunctionName),
			)
		}
	} else {
		log.Error(err.Error())
	}

	response := exceptions.CustomError{
		StatusCode:    code,
		Success:       false,
		ClientMessage: clientMessage,
	}

	appEnvironment := GetEnvString("APP_ENV", constvars.AppEnvDevelopment)
	if customErr != nil && appEnvironment != constvars.AppEnvProduction {
		response.DevMessage = customErr.DevMessage
		response.Locations = customErr.Locations
	}
	WriteJSON(w, code, response)
}

func WriteJSON(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(data)
}

func WriteRawJSON(w http.ResponseWriter, code int, body []byte) {
	w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	w.WriteHeader(code)
	w.Write(body)
}

func WriteText(w http.ResponseWriter, code int, text string) {
	w.Header().Set(constvars.HeaderContentType, constvars.MIMETextPlainCharsetUTF8)
	w.WriteHeader(code)
	w.Write([]byte(text))
}
