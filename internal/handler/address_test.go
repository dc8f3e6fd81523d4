package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Mit0lenda/obra-nav-sub000/internal/enrichment"
	"github.com/Mit0lenda/obra-nav-sub000/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockAddressService is a mock implementation of the AddressService interface
type MockAddressService struct {
	mock.Mock
}

func (m *MockAddressService) SearchSuggestions(ctx context.Context, query string, opts models.SearchOptions) ([]models.AddressSuggestion, error) {
	args := m.Called(ctx, query, opts)
	return args.Get(0).([]models.AddressSuggestion), args.Error(1)
}

func (m *MockAddressService) GetLocalSuggestions(query string) []models.AddressSuggestion {
	args := m.Called(query)
	return args.Get(0).([]models.AddressSuggestion)
}

func (m *MockAddressService) SearchByPostalCode(ctx context.Context, code string) (*models.AddressComponents, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(*models.AddressComponents), args.Error(1)
}

func (m *MockAddressService) SearchCepByAddress(ctx context.Context, uf, cidade, logradouro string) ([]models.CepCandidate, error) {
	args := m.Called(ctx, uf, cidade, logradouro)
	return args.Get(0).([]models.CepCandidate), args.Error(1)
}

func (m *MockAddressService) Enrich(ctx context.Context, req enrichment.Request) (models.AddressComponents, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(models.AddressComponents), args.Error(1)
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) interface{} {
	t.Helper()
	var body interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestAddressHandler_Suggestions(t *testing.T) {
	gin.SetMode(gin.TestMode)

	suggestions := []models.AddressSuggestion{
		{ID: "local-0", DisplayName: "Rua das Flores", ShortName: "Rua das Flores", FullAddress: "Rua das Flores", PlaceType: models.PlaceStreet, Relevance: 1},
	}

	tests := []struct {
		name            string
		rawQuery        string
		expectedOptions *models.SearchOptions
		mockResult      []models.AddressSuggestion
		mockError       error
		expectedStatus  int
		expectedBody    interface{}
	}{
		{
			name:           "missing query parameter",
			rawQuery:       "",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   map[string]interface{}{"error": "missing required query parameter 'q'"},
		},
		{
			name:           "limit out of range",
			rawQuery:       "q=Rua+das+Flores&limit=50",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   map[string]interface{}{"error": "invalid search options"},
		},
		{
			name:            "successful search",
			rawQuery:        "q=Rua+das+Flores&limit=3",
			expectedOptions: &models.SearchOptions{MaxResults: 3},
			mockResult:      suggestions,
			expectedStatus:  http.StatusOK,
			expectedBody: []interface{}{
				map[string]interface{}{
					"id":          "local-0",
					"displayName": "Rua das Flores",
					"shortName":   "Rua das Flores",
					"fullAddress": "Rua das Flores",
					"placeType":   "street",
					"relevance":   float64(1),
				},
			},
		},
		{
			name:            "query too short",
			rawQuery:        "q=ab",
			expectedOptions: &models.SearchOptions{},
			mockError:       models.NewValidationError("query", "must have at least 3 characters"),
			expectedStatus:  http.StatusBadRequest,
			expectedBody:    map[string]interface{}{"error": "invalid query: must have at least 3 characters"},
		},
		{
			name:            "service error",
			rawQuery:        "q=Rua+das+Flores",
			expectedOptions: &models.SearchOptions{},
			mockError:       assert.AnError,
			expectedStatus:  http.StatusInternalServerError,
			expectedBody:    map[string]interface{}{"error": "internal server error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			mockSvc := new(MockAddressService)
			handler := NewAddressHandler(mockSvc)

			if tt.expectedOptions != nil {
				mockSvc.On("SearchSuggestions", mock.Anything, queryParam(tt.rawQuery), *tt.expectedOptions).Return(tt.mockResult, tt.mockError)
			}

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/address/suggestions?"+tt.rawQuery, nil)

			// Execute
			handler.Suggestions(c)

			// Assert
			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedBody, decodeBody(t, w))
			mockSvc.AssertExpectations(t)
		})
	}
}

// queryParam extracts the q parameter the handler will forward.
func queryParam(rawQuery string) string {
	req := httptest.NewRequest(http.MethodGet, "/?"+rawQuery, nil)
	return req.URL.Query().Get("q")
}

func TestAddressHandler_Local(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mockSvc := new(MockAddressService)
	mockSvc.On("GetLocalSuggestions", "flores").Return([]models.AddressSuggestion{
		{ID: "local-0", ShortName: "Rua das Flores", PlaceType: models.PlaceStreet, Relevance: 0.5},
	})
	handler := NewAddressHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/address/local?q=flores", nil)

	handler.Local(c)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w).([]interface{})
	require.Len(t, body, 1)
	assert.Equal(t, "local-0", body[0].(map[string]interface{})["id"])
	mockSvc.AssertExpectations(t)
}

func TestAddressHandler_PostalCode(t *testing.T) {
	gin.SetMode(gin.TestMode)

	resolved := &models.AddressComponents{
		Logradouro: "Avenida Paulista", Bairro: "Bela Vista", Cidade: "São Paulo",
		UF: "SP", Estado: "São Paulo", CEP: "01310-100",
		Fonte: models.FontePostalRegistry, Confiabilidade: models.ConfiabilidadeHigh,
	}

	tests := []struct {
		name           string
		cep            string
		mockResult     *models.AddressComponents
		mockError      error
		expectedStatus int
		expectedError  string
	}{
		{name: "resolved", cep: "01310-100", mockResult: resolved, expectedStatus: http.StatusOK},
		{name: "not found", cep: "00000000", expectedStatus: http.StatusNotFound, expectedError: "postal code not found"},
		{name: "invalid", cep: "123", mockError: models.NewValidationError("cep", "must have 8 digits"), expectedStatus: http.StatusBadRequest, expectedError: "invalid cep: must have 8 digits"},
		{name: "registry down", cep: "01310100", mockError: models.ErrRegistryUnavailable, expectedStatus: http.StatusBadGateway, expectedError: "postal-code registry unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(MockAddressService)
			mockSvc.On("SearchByPostalCode", mock.Anything, tt.cep).Return(tt.mockResult, tt.mockError)
			handler := NewAddressHandler(mockSvc)

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/address/cep/"+tt.cep, nil)
			c.Params = gin.Params{{Key: "cep", Value: tt.cep}}

			handler.PostalCode(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			body := decodeBody(t, w).(map[string]interface{})
			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, body["error"])
			} else {
				assert.Equal(t, "São Paulo", body["estado"])
				assert.Equal(t, "postal-registry", body["fonte"])
				assert.Equal(t, "high", body["confiabilidade"])
			}
			mockSvc.AssertExpectations(t)
		})
	}
}

func TestAddressHandler_CepByAddress(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mockSvc := new(MockAddressService)
	mockSvc.On("SearchCepByAddress", mock.Anything, "SP", "São Paulo", "Paulista").
		Return([]models.CepCandidate{{CEP: "01310-100", Logradouro: "Avenida Paulista", Cidade: "São Paulo", UF: "SP"}}, nil)
	handler := NewAddressHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/address/cep?uf=SP&cidade=S%C3%A3o+Paulo&logradouro=Paulista", nil)

	handler.CepByAddress(c)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w).([]interface{})
	require.Len(t, body, 1)
	assert.Equal(t, "01310-100", body[0].(map[string]interface{})["cep"])
	mockSvc.AssertExpectations(t)
}

func TestAddressHandler_Enrich(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		body           string
		expectedReq    *enrichment.Request
		mockResult     models.AddressComponents
		mockError      error
		expectedStatus int
	}{
		{
			name:           "malformed body",
			body:           `{"text":`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "suggestion without id",
			body:           `{"suggestion":{"shortName":"Rua Augusta"}}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "free text",
			body:        `{"text":"Rua das Flores, Centro, Curitiba, PR"}`,
			expectedReq: &enrichment.Request{Text: "Rua das Flores, Centro, Curitiba, PR"},
			mockResult: models.AddressComponents{
				Logradouro: "Rua das Flores", Bairro: "Centro", Cidade: "Curitiba", UF: "PR", Estado: "Paraná",
				Fonte: models.FonteManual, Confiabilidade: models.ConfiabilidadeLow,
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "empty request",
			body:           `{}`,
			expectedReq:    &enrichment.Request{},
			mockError:      models.NewValidationError("request", "suggestion or text is required"),
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(MockAddressService)
			if tt.expectedReq != nil {
				mockSvc.On("Enrich", mock.Anything, *tt.expectedReq).Return(tt.mockResult, tt.mockError)
			}
			handler := NewAddressHandler(mockSvc)

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodPost, "/address/enrich", strings.NewReader(tt.body))
			c.Request.Header.Set("Content-Type", "application/json")

			handler.Enrich(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				body := decodeBody(t, w).(map[string]interface{})
				assert.Equal(t, "Paraná", body["estado"])
				assert.Equal(t, "manual", body["fonte"])
			}
			mockSvc.AssertExpectations(t)
		})
	}
}

func TestRouter_RequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mockSvc := new(MockAddressService)
	mockSvc.On("GetLocalSuggestions", "augusta").Return([]models.AddressSuggestion{})
	router := NewRouter(NewAddressHandler(mockSvc), nil, zerolog.Nop())

	t.Run("generated", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/address/local?q=augusta", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		_, err := uuid.Parse(w.Header().Get(RequestIDHeader))
		assert.NoError(t, err)
	})

	t.Run("propagated", func(t *testing.T) {
		id := uuid.NewString()
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set(RequestIDHeader, id)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, id, w.Header().Get(RequestIDHeader))
	})

	t.Run("reverse geocoding disabled without a store", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/reverse-geocode?lat=1&lon=1", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
