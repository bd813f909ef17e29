package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"bloglist/cmd/api/dto"
	"bloglist/cmd/api/trace"
	"bloglist/internal/logger"
	"bloglist/repositories"
)

// ErrorHandler answers requests whose handler forwarded an error with c.Error
// and did not write a response itself.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err

		status, body := statusForError(err)
		fields := logger.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     status,
			"error":      err.Error(),
			"request_id": trace.RequestIDFromContext(c.Request.Context()),
		}
		if status >= http.StatusInternalServerError {
			logger.ErrorWithFields("request failed", fields)
		} else {
			logger.WarnWithFields("request rejected", fields)
		}
		c.JSON(status, body)
	}
}

func statusForError(err error) (int, dto.ErrorResponseDTO) {
	var verrs validator.ValidationErrors
	switch {
	case errors.Is(err, repositories.ErrInvalidID):
		return http.StatusBadRequest, dto.ErrorResponseDTO{Error: "malformatted id"}
	case errors.Is(err, repositories.ErrDuplicateUsername):
		return http.StatusBadRequest, dto.ErrorResponseDTO{Error: repositories.ErrDuplicateUsername.Error()}
	case errors.As(err, &verrs):
		return http.StatusBadRequest, dto.ErrorResponseDTO{Error: verrs.Error()}
	case errors.Is(err, repositories.ErrNotFound):
		return http.StatusNotFound, dto.ErrorResponseDTO{Error: "not found"}
	default:
		return http.StatusInternalServerError, dto.ErrorResponseDTO{Error: "internal server error"}
	}
}
