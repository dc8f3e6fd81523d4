// Package config loads service settings from configs/app.env and the environment.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
// The values are read by viper from a config file or environment variables.
type Config struct {
	ServerAddress string `mapstructure:"SERVER_ADDRESS" validate:"required"`
	DBSource      string `mapstructure:"DB_SOURCE"`
	LogLevel      string `mapstructure:"LOG_LEVEL" validate:"oneof=trace debug info warn error"`

	NominatimURL           string  `mapstructure:"NOMINATIM_URL" validate:"required,url"`
	NominatimUserAgent     string  `mapstructure:"NOMINATIM_USER_AGENT" validate:"required"`
	NominatimRatePerSecond float64 `mapstructure:"NOMINATIM_RATE_PER_SECOND" validate:"gte=0"`

	GooglePlacesURL    string `mapstructure:"GOOGLE_PLACES_URL" validate:"required,url"`
	GooglePlacesAPIKey string `mapstructure:"GOOGLE_PLACES_API_KEY"`

	ViaCEPURL string `mapstructure:"VIACEP_URL" validate:"required,url"`

	HTTPTimeout        time.Duration `mapstructure:"HTTP_TIMEOUT" validate:"gt=0"`
	SuggestionCacheTTL time.Duration `mapstructure:"SUGGESTION_CACHE_TTL" validate:"gt=0"`
	DefaultMaxResults  int           `mapstructure:"DEFAULT_MAX_RESULTS" validate:"min=1,max=20"`
	CountryCode        string        `mapstructure:"COUNTRY_CODE" validate:"len=2"`
	CountryName        string        `mapstructure:"COUNTRY_NAME"`
	Language           string        `mapstructure:"LANGUAGE"`

	TracingEnabled  bool   `mapstructure:"TRACING_ENABLED"`
	TracingEndpoint string `mapstructure:"TRACING_ENDPOINT"`
}

var defaults = map[string]any{
	"SERVER_ADDRESS":            "0.0.0.0:8080",
	"DB_SOURCE":                 "",
	"LOG_LEVEL":                 "info",
	"NOMINATIM_URL":             "https://nominatim.openstreetmap.org/search",
	"NOMINATIM_USER_AGENT":      "obra-nav/1.0",
	"NOMINATIM_RATE_PER_SECOND": 1.0,
	"GOOGLE_PLACES_URL":         "https://maps.googleapis.com/maps/api/place/autocomplete/json",
	"GOOGLE_PLACES_API_KEY":     "",
	"VIACEP_URL":                "https://viacep.com.br/ws",
	"HTTP_TIMEOUT":              "8s",
	"SUGGESTION_CACHE_TTL":      "5m",
	"DEFAULT_MAX_RESULTS":       5,
	"COUNTRY_CODE":              "br",
	"COUNTRY_NAME":              "Brasil",
	"LANGUAGE":                  "pt-BR",
	"TRACING_ENABLED":           false,
	"TRACING_ENDPOINT":          "localhost:4317",
}

// LoadConfig reads app.env from path when present. Environment variables take precedence.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return config, fmt.Errorf("config: failed to read config file: %w", err)
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return config, fmt.Errorf("config: failed to decode config: %w", err)
	}

	if err = validator.New().Struct(config); err != nil {
		return config, fmt.Errorf("config: invalid config: %w", err)
	}

	return config, nil
}
