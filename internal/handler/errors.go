package handler

import (
	"errors"
	"net/http"

	"github.com/Mit0lenda/obra-nav-sub000/internal/models"

	"github.com/gin-gonic/gin"
)

// writeError maps service errors to status codes: bad input is 400, a failed
// postal-code registry is 502, anything else is 500.
func writeError(c *gin.Context, err error) {
	var validation *models.ValidationError
	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Error()})
	case errors.Is(err, models.ErrRegistryUnavailable):
		_ = c.Error(err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "postal-code registry unavailable"})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
