package exceptions

import (
	"fmt"
	"patient-service/internal/pkg/constvars"
	"runtime"
)

type CustomError struct {
	StatusCode    int        `json:"status_code"`
	Success       bool       `json:"success"`
	ClientMessage string     `json:"message"`
	DevMessage    string     `json:"dev_message,omitempty"`
	Locations     []Location `json:"locations,omitempty"`
	Err           error      `json:"-"`
}

type Location struct {
	File         string `json:"file"`
	Line         int    `json:"line"`
	FunctionName string `json:"function_name"`
}

func (e *CustomError) Error() string {
	if len(e.Locations) == 0 {
		return e.DevMessage
	}
	location := e.Locations[0]
	return fmt.Sprintf("%s (%s:%d %s)", e.DevMessage, location.File, location.Line, location.FunctionName)
}

func (e *CustomError) Unwrap() error {
	return e.Err
}

// BuildNewCustomError records the caller of the constructor that invoked it,
// so the location points at the code that produced the failure.
func BuildNewCustomError(err error, statusCode int, clientMessage, devMessage string) *CustomError {
	if err != nil {
		devMessage = fmt.Sprintf("%s: %s", devMessage, err.Error())
	}
	return &CustomError{
		StatusCode:    statusCode,
		ClientMessage: clientMessage,
		DevMessage:    devMessage,
		Locations:     []Location{getLocation(3)},
		Err:           err,
	}
}

func WrapWithoutError(statusCode int, clientMessage, devMessage string) *CustomError {
	return &CustomError{
		StatusCode:    statusCode,
		ClientMessage: clientMessage,
		DevMessage:    devMessage,
		Locations:     []Location{getLocation(2)},
	}
}

func getLocation(skip int) Location {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return Location{
			File:         constvars.ResponseUnknown,
			Line:         0,
			FunctionName: constvars.ResponseUnknown,
		}
	}
	function := runtime.FuncForPC(pc).Name()
	return Location{
		File:         file,
		Line:         line,
		FunctionName: function,
	}
}
