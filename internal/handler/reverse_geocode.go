package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/Mit0lenda/obra-nav-sub000/internal/models"

	"github.com/gin-gonic/gin"
)

// ReverseGeocodeHandler handles reverse geocoding requests
type ReverseGeocodeHandler struct {
	service ReverseGeocodeService
}

// ReverseGeocodeService interface for dependency injection
type ReverseGeocodeService interface {
	ReverseGeocode(context.Context, float64, float64) (*models.AddressComponents, error)
}

// NewReverseGeocodeHandler creates a new reverse geocode handler
func NewReverseGeocodeHandler(svc ReverseGeocodeService) *ReverseGeocodeHandler {
	return &ReverseGeocodeHandler{service: svc}
}

// ReverseGeocode godoc
// @Summary Nearest stored address
// @Tags address
// @Produce json
// @Param lat query number true "Latitude"
// @Param lon query number true "Longitude"
// @Success 200 {object} models.AddressComponents
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /reverse-geocode [get]
func (h *ReverseGeocodeHandler) ReverseGeocode(c *gin.Context) {
	latStr := c.Query("lat")
	lonStr := c.Query("lon")

	if latStr == "" || lonStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required query parameters 'lat' and 'lon'"})
		return
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid latitude format"})
		return
	}

	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid longitude format"})
		return
	}

	address, err := h.service.ReverseGeocode(c.Request.Context(), lat, lon)
	if err != nil {
		writeError(c, err)
		return
	}

	if address == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no address found near the specified coordinates"})
		return
	}

	c.JSON(http.StatusOK, address)
}
