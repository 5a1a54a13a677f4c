package utils

import (
	"patient-service/internal/pkg/constvars"

	"github.com/google/uuid"
)

func GenerateRequestID() string {
	return constvars.REQUEST_ID_PREFIX + uuid.NewString()
}
