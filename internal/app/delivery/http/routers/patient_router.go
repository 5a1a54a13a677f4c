package routers

import (
	"patient-service/internal/app/delivery/http/controllers"
	"patient-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachPatientRoutes(router chi.Router, middlewares *middlewares.Middlewares, patientController *controllers.PatientController) {
	router.Get("/", patientController.FindAll)
	router.With(middlewares.WriteRateLimiter).Post("/", patientController.Create)
	router.With(middlewares.WriteRateLimiter).Put("/{patientID}", patientController.Update)
}
