package service

import (
	"context"
	"fmt"

	"github.com/Mit0lenda/obra-nav-sub000/internal/models"
)

// ReverseGeoCodeService finds the stored address closest to a position
type ReverseGeoCodeService struct {
	repo ReverseGeoCodeRepository
}

// ReverseGeoCodeRepository interface for dependency injection
type ReverseGeoCodeRepository interface {
	FindNearestAddress(ctx context.Context, lat, lon float64) (*models.StoredAddress, error)
}

// NewReverseGeoCodeService creates a new reverse geo code service
func NewReverseGeoCodeService(repo ReverseGeoCodeRepository) *ReverseGeoCodeService {
	return &ReverseGeoCodeService{repo: repo}
}

// ReverseGeocode returns the nearest stored address as a structured record, or nil when
// nothing lies within range.
func (s *ReverseGeoCodeService) ReverseGeocode(ctx context.Context, lat, lon float64) (*models.AddressComponents, error) {
	if lat < -90 || lat > 90 {
		return nil, models.NewValidationError("latitude", fmt.Sprintf("%f is out of range", lat))
	}
	if lon < -180 || lon > 180 {
		return nil, models.NewValidationError("longitude", fmt.Sprintf("%f is out of range", lon))
	}

	stored, err := s.repo.FindNearestAddress(ctx, lat, lon)
	if err != nil {
		return nil, fmt.Errorf("service: failed to find nearest address: %w", err)
	}
	if stored == nil {
		return nil, nil
	}

	out := storedToComponents(*stored)
	return &out, nil
}

func storedToComponents(a models.StoredAddress) models.AddressComponents {
	lat, lon := a.Latitude, a.Longitude
	out := models.AddressComponents{
		Logradouro:     a.Logradouro,
		Numero:         a.Numero,
		Bairro:         a.Bairro,
		Cidade:         a.Cidade,
		UF:             a.UF,
		Estado:         models.RegionName(a.UF),
		CEP:            models.FormatCEP(a.CEP),
		Latitude:       &lat,
		Longitude:      &lon,
		Fonte:          models.FonteGeocoder,
		Confiabilidade: models.ConfiabilidadeMedium,
	}
	out.EnderecoCompleto = models.FormatFullAddress(out)
	return out
}
