package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"consult-chat/internal/apperrors"
)

// respondError maps the error taxonomy to a fixed response category. Errors
// outside the taxonomy surface as a generic failure.
func respondError(c *gin.Context, err error) {
	kind := apperrors.KindOf(err)

	status := http.StatusInternalServerError
	message := "unexpected error"
	switch kind {
	case apperrors.KindValidation:
		status = http.StatusBadRequest
		message = err.Error()
	case apperrors.KindAuthentication:
		status = http.StatusUnauthorized
		message = err.Error()
	case apperrors.KindAuthorization:
		status = http.StatusForbidden
		message = err.Error()
	case apperrors.KindNotFound:
		status = http.StatusNotFound
		message = err.Error()
	case apperrors.KindInvalidState:
		status = http.StatusConflict
		message = err.Error()
	}

	c.JSON(status, gin.H{"error": message, "kind": kind.String()})
}
