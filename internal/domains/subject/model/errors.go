package model

import (
	"errors"
	"net/http"

	"subjectstore-backend/internal/infrastructure/storage"
	"subjectstore-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog/log"
)

var (
	ErrSubjectNotFound  = errors.New("subject not found")
	ErrInvalidPrice     = errors.New("price must be a valid number")
	ErrInvalidPageLimit = errors.New("page and limit must be positive")
)

var subjectErrorMap = []struct {
	Err     error
	Status  int
	Code    string
	Message string
}{
	{ErrSubjectNotFound, http.StatusNotFound, "SUBJECT_NOT_FOUND", "The specified subject does not exist"},
	{ErrInvalidPrice, http.StatusBadRequest, "INVALID_PRICE", "Price must be a valid number"},
	{ErrInvalidPageLimit, http.StatusBadRequest, "INVALID_PAGINATION", "Page and limit must be positive"},
	{storage.ErrImageTooLarge, http.StatusBadRequest, "IMAGE_TOO_LARGE", "The uploaded image exceeds the maximum allowed size"},
	{storage.ErrInvalidImageFormat, http.StatusBadRequest, "INVALID_IMAGE", "The uploaded file is not a supported image"},
}

// HandleSubjectError maps a service error onto one HTTP response and reports
// whether it consumed the error. Internal errors are logged server-side and
// surface only as a generic 500.
func HandleSubjectError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	var vErrs validation.Errors
	if errors.As(err, &vErrs) {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", vErrs)
		return true
	}

	for _, entry := range subjectErrorMap {
		if errors.Is(err, entry.Err) {
			response.ErrorResponse(c, entry.Status, entry.Code, entry.Message)
			return true
		}
	}

	log.Error().
		Str("request_id", c.GetString("request_id")).
		Err(err).
		Msg("Unhandled subject error")
	response.InternalServerError(c, "Internal server error")
	return true
}
