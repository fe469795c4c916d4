package api

import (
	"net/http"

	"github.com/ipqbbqgyy/parking-system/internal/apperr"
	"github.com/ipqbbqgyy/parking-system/internal/logger"

	"github.com/gin-gonic/gin"
)

// StatusFor maps an error kind to the HTTP status returned to clients.
func StatusFor(err error) int {
	switch apperr.Kind(err) {
	case apperr.ErrInvalidInput:
		return http.StatusBadRequest
	case apperr.ErrConflict:
		return http.StatusConflict
	case apperr.ErrInvalidState:
		return http.StatusUnprocessableEntity
	case apperr.ErrTooEarly:
		return http.StatusTooEarly
	case apperr.ErrNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// RespondError writes err as an ErrorResponse. Unclassified errors are logged
// and replaced by a generic message.
func RespondError(c *gin.Context, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error("request failed", "path", c.FullPath(), "error", err)
		c.JSON(status, ErrorResponse{Error: "internal server error"})
		return
	}
	c.JSON(status, ErrorResponse{Error: err.Error()})
}
