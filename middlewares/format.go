package middlewares

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog/log"

	"MediTrack/authz"
	"MediTrack/database"
	"MediTrack/repositories"
	"MediTrack/services"
)

// RespondJSON writes a JSON response to the client.
func RespondJSON(c *gin.Context, data interface{}, status int) {
	c.JSON(status, data)
}

// HttpError maps err to a status code and writes it as a JSON error body.
// Unexpected errors are logged and reported without details.
func HttpError(c *gin.Context, err error) {
	status, body := errorResponse(err)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).
			Str("request_id", c.GetString(RequestIDKey)).
			Str("path", c.FullPath()).
			Msg("request failed")
	}
	c.JSON(status, body)
}

func errorResponse(err error) (int, gin.H) {
	var ve *services.ValidationError
	if errors.As(err, &ve) {
		body := gin.H{"error": "validation failed"}
		var fields validation.Errors
		if errors.As(ve.Err, &fields) {
			body["fields"] = fields
		} else {
			body["error"] = ve.Error()
		}
		return http.StatusBadRequest, body
	}

	switch {
	case authz.IsUnauthenticated(err), errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized, gin.H{"error": err.Error()}
	case authz.IsForbidden(err):
		return http.StatusForbidden, gin.H{"error": err.Error()}
	case errors.Is(err, repositories.ErrPatientNotFound):
		return http.StatusNotFound, gin.H{"error": err.Error()}
	case errors.Is(err, repositories.ErrDuplicateMRN), errors.Is(err, repositories.ErrUsernameTaken):
		return http.StatusConflict, gin.H{"error": err.Error()}
	case errors.Is(err, database.ErrLockNotAcquired):
		return http.StatusConflict, gin.H{"error": "record is being modified, retry shortly"}
	}
	return http.StatusInternalServerError, gin.H{"error": "internal server error"}
}
