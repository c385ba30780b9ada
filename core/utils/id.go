package utils

import (
	"eventrely-api/core/constants"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// GenerateRequestID returns a short URL-safe id for request correlation.
func GenerateRequestID() string {
	id, err := gonanoid.Generate(constants.RequestIDCharacters, constants.RequestIDLength)
	if err != nil {
		return uuid.NewString()
	}
	return id
}
