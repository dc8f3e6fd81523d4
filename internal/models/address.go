package models

// PlaceType classifies what a suggestion points at.
type PlaceType string

const (
	PlaceStreet        PlaceType = "street"
	PlaceCity          PlaceType = "city"
	PlaceNeighborhood  PlaceType = "neighborhood"
	PlaceEstablishment PlaceType = "establishment"
	PlaceOther         PlaceType = "other"
)

// Fonte records which data source produced an address record.
type Fonte string

const (
	FontePostalRegistry Fonte = "postal-registry"
	FonteGeocoder       Fonte = "geocoder"
	FonteManual         Fonte = "manual"
)

// Confiabilidade is a coarse confidence tag derived from provenance and completeness.
type Confiabilidade string

const (
	ConfiabilidadeHigh   Confiabilidade = "high"
	ConfiabilidadeMedium Confiabilidade = "medium"
	ConfiabilidadeLow    Confiabilidade = "low"
)

// ProviderAddress is the structured breakdown a geocoder returns next to its display label.
// Every field defaults to the empty string when the provider omits it.
type ProviderAddress struct {
	Road          string `json:"road"`
	HouseNumber   string `json:"house_number"`
	Neighbourhood string `json:"neighbourhood"`
	Suburb        string `json:"suburb"`
	City          string `json:"city"`
	Town          string `json:"town"`
	Village       string `json:"village"`
	Municipality  string `json:"municipality"`
	State         string `json:"state"`
	StateCode     string `json:"state_code"`
	Postcode      string `json:"postcode"`
}

// District returns the neighbourhood, falling back to the suburb.
func (a ProviderAddress) District() string {
	if a.Neighbourhood != "" {
		return a.Neighbourhood
	}
	return a.Suburb
}

// Locality returns the most specific city-level name the provider filled in.
func (a ProviderAddress) Locality() string {
	switch {
	case a.City != "":
		return a.City
	case a.Town != "":
		return a.Town
	case a.Village != "":
		return a.Village
	default:
		return a.Municipality
	}
}

// AddressSuggestion is a provider-agnostic candidate shown to the user before an address is committed.
type AddressSuggestion struct {
	ID          string           `json:"id" binding:"required"`
	DisplayName string           `json:"displayName"`
	ShortName   string           `json:"shortName"`
	FullAddress string           `json:"fullAddress"`
	Latitude    *float64         `json:"latitude,omitempty"`
	Longitude   *float64         `json:"longitude,omitempty"`
	PlaceType   PlaceType        `json:"placeType"`
	Relevance   float64          `json:"relevance" binding:"gte=0,lte=1"`
	Address     *ProviderAddress `json:"address,omitempty"`
}

// HasCoordinates reports whether the provider supplied a position.
func (s AddressSuggestion) HasCoordinates() bool {
	return s.Latitude != nil && s.Longitude != nil
}

// AddressComponents is the normalized, storage-ready structured address.
type AddressComponents struct {
	Logradouro       string         `json:"logradouro"`
	Numero           string         `json:"numero"`
	Complemento      string         `json:"complemento"`
	Bairro           string         `json:"bairro"`
	Cidade           string         `json:"cidade"`
	Estado           string         `json:"estado"`
	UF               string         `json:"uf" validate:"omitempty,uf"`
	CEP              string         `json:"cep" validate:"omitempty,cep"`
	EnderecoCompleto string         `json:"enderecoCompleto"`
	Latitude         *float64       `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude        *float64       `json:"longitude,omitempty" validate:"omitempty,longitude"`
	Fonte            Fonte          `json:"fonte" validate:"oneof=postal-registry geocoder manual"`
	Confiabilidade   Confiabilidade `json:"confiabilidade" validate:"oneof=high medium low"`
}

// CepCandidate is one result of an address -> postal code lookup.
type CepCandidate struct {
	CEP         string `json:"cep"`
	Logradouro  string `json:"logradouro"`
	Complemento string `json:"complemento"`
	Bairro      string `json:"bairro"`
	Cidade      string `json:"cidade"`
	UF          string `json:"uf"`
}

// SearchOptions tune a suggestion search. Zero values mean "use the pipeline default".
type SearchOptions struct {
	MaxResults int    `json:"maxResults" form:"limit" binding:"omitempty,min=1,max=20"`
	Country    string `json:"country" form:"country" binding:"omitempty,len=2"`
}

// StoredAddress is one row of the imported address table.
type StoredAddress struct {
	ID         int64   `json:"id"`
	Logradouro string  `json:"logradouro"`
	Numero     string  `json:"numero"`
	Bairro     string  `json:"bairro"`
	Cidade     string  `json:"cidade"`
	UF         string  `json:"uf"`
	CEP        string  `json:"cep"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
}
