package handler

import (
	"context"
	"net/http"

	"github.com/Mit0lenda/obra-nav-sub000/internal/enrichment"
	"github.com/Mit0lenda/obra-nav-sub000/internal/models"

	"github.com/gin-gonic/gin"
)

// AddressHandler handles suggestion, postal code and enrichment requests
type AddressHandler struct {
	service AddressService
}

// AddressService interface for dependency injection
type AddressService interface {
	SearchSuggestions(context.Context, string, models.SearchOptions) ([]models.AddressSuggestion, error)
	GetLocalSuggestions(string) []models.AddressSuggestion
	SearchByPostalCode(context.Context, string) (*models.AddressComponents, error)
	SearchCepByAddress(ctx context.Context, uf, cidade, logradouro string) ([]models.CepCandidate, error)
	Enrich(context.Context, enrichment.Request) (models.AddressComponents, error)
}

// NewAddressHandler creates a new address handler
func NewAddressHandler(svc AddressService) *AddressHandler {
	return &AddressHandler{service: svc}
}

// Suggestions godoc
// @Summary Address suggestions
// @Description Ranked candidates from the local gazetteer, the geocoders and the address table
// @Tags address
// @Produce json
// @Param q query string true "Search text (at least 3 characters)"
// @Param limit query int false "Results requested from each provider" minimum(1) maximum(20)
// @Param country query string false "ISO 3166-1 alpha-2 country filter"
// @Success 200 {array} models.AddressSuggestion
// @Failure 400 {object} map[string]string
// @Router /address/suggestions [get]
func (h *AddressHandler) Suggestions(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required query parameter 'q'"})
		return
	}

	var opts models.SearchOptions
	if err := c.ShouldBindQuery(&opts); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid search options"})
		return
	}

	suggestions, err := h.service.SearchSuggestions(c.Request.Context(), query, opts)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, suggestions)
}

// Local godoc
// @Summary Offline suggestions
// @Description Matches against the built-in street list only, without network calls
// @Tags address
// @Produce json
// @Param q query string true "Search text"
// @Success 200 {array} models.AddressSuggestion
// @Failure 400 {object} map[string]string
// @Router /address/local [get]
func (h *AddressHandler) Local(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required query parameter 'q'"})
		return
	}

	c.JSON(http.StatusOK, h.service.GetLocalSuggestions(query))
}

// PostalCode godoc
// @Summary Resolve a CEP
// @Tags address
// @Produce json
// @Param cep path string true "Postal code, 8 digits with or without dash"
// @Success 200 {object} models.AddressComponents
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /address/cep/{cep} [get]
func (h *AddressHandler) PostalCode(c *gin.Context) {
	address, err := h.service.SearchByPostalCode(c.Request.Context(), c.Param("cep"))
	if err != nil {
		writeError(c, err)
		return
	}

	if address == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "postal code not found"})
		return
	}

	c.JSON(http.StatusOK, address)
}

// CepByAddress godoc
// @Summary Find postal codes for a street
// @Tags address
// @Produce json
// @Param uf query string true "Region code"
// @Param cidade query string true "City"
// @Param logradouro query string true "Street, at least 3 characters"
// @Success 200 {array} models.CepCandidate
// @Failure 400 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /address/cep [get]
func (h *AddressHandler) CepByAddress(c *gin.Context) {
	candidates, err := h.service.SearchCepByAddress(c.Request.Context(), c.Query("uf"), c.Query("cidade"), c.Query("logradouro"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, candidates)
}

// Enrich godoc
// @Summary Build a structured address
// @Description Turns a selected suggestion or free text into a complete address record
// @Tags address
// @Accept json
// @Produce json
// @Param request body enrichment.Request true "Suggestion or free text"
// @Success 200 {object} models.AddressComponents
// @Failure 400 {object} map[string]string
// @Router /address/enrich [post]
func (h *AddressHandler) Enrich(c *gin.Context) {
	var req enrichment.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	address, err := h.service.Enrich(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, address)
}
