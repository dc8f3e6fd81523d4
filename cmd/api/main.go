package main

import (
	"context"
	"os"

	_ "github.com/Mit0lenda/obra-nav-sub000/docs"
	"github.com/Mit0lenda/obra-nav-sub000/internal/cache"
	"github.com/Mit0lenda/obra-nav-sub000/internal/config"
	"github.com/Mit0lenda/obra-nav-sub000/internal/enrichment"
	"github.com/Mit0lenda/obra-nav-sub000/internal/gazetteer"
	"github.com/Mit0lenda/obra-nav-sub000/internal/geocoder"
	"github.com/Mit0lenda/obra-nav-sub000/internal/handler"
	"github.com/Mit0lenda/obra-nav-sub000/internal/models"
	"github.com/Mit0lenda/obra-nav-sub000/internal/observability"
	"github.com/Mit0lenda/obra-nav-sub000/internal/postalcode"
	"github.com/Mit0lenda/obra-nav-sub000/internal/repository"
	"github.com/Mit0lenda/obra-nav-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const version = "1.0.0"

// @title        Obra Nav Address API
// @version      1.0
// @description  Address suggestions, CEP resolution and enrichment for Brazilian addresses
// @BasePath     /
func main() {
	config, err := config.LoadConfig("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	level, err := zerolog.ParseLevel(config.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(os.Stdout).Level(level).With().Timestamp().Str("service", observability.ServiceName).Logger()
	log.Logger = logger
	if level > zerolog.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	shutdown, err := observability.InitTracer(ctx, observability.TracingConfig{
		Enabled:  config.TracingEnabled,
		Endpoint: config.TracingEndpoint,
		Version:  version,
	}, logger)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot start tracing")
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			log.Error().Err(err).Msg("cannot flush traces")
		}
	}()

	// Sources, in dedupe priority order
	local := gazetteer.NewDefault()
	nominatim := geocoder.NewNominatim(geocoder.NominatimConfig{
		BaseURL:       config.NominatimURL,
		UserAgent:     config.NominatimUserAgent,
		CountryCode:   config.CountryCode,
		CountryName:   config.CountryName,
		MaxResults:    config.DefaultMaxResults,
		RatePerSecond: config.NominatimRatePerSecond,
		Timeout:       config.HTTPTimeout,
	})
	remote := geocoder.Source(nominatim)
	google := geocoder.NewGooglePlaces(geocoder.GooglePlacesConfig{
		BaseURL:     config.GooglePlacesURL,
		APIKey:      config.GooglePlacesAPIKey,
		CountryCode: config.CountryCode,
		Language:    config.Language,
		MaxResults:  config.DefaultMaxResults,
		Timeout:     config.HTTPTimeout,
	}, logger)
	if google.Configured() {
		remote = geocoder.FirstNonEmpty(logger, google, nominatim)
	}
	sources := []geocoder.Source{local, remote}

	var reverseHandler *handler.ReverseGeocodeHandler
	if config.DBSource != "" {
		conn, err := pgxpool.New(ctx, config.DBSource)
		if err != nil {
			log.Fatal().Err(err).Msg("cannot connect to db")
		}
		defer conn.Close()

		repo := repository.NewRepository(conn)
		sources = append(sources, geocoder.NewDatabase(repo, config.DefaultMaxResults))
		reverseHandler = handler.NewReverseGeocodeHandler(service.NewReverseGeoCodeService(repo))
	} else {
		log.Warn().Msg("DB_SOURCE not set, address table search and reverse geocoding disabled")
	}

	// Initialize layers
	resolver := postalcode.NewResolver(postalcode.Config{
		BaseURL: config.ViaCEPURL,
		Timeout: config.HTTPTimeout,
	})
	composer := enrichment.NewComposer(resolver, nominatim, logger)

	addressService := service.NewAddressService(
		local,
		sources,
		resolver,
		composer,
		cache.NewSuggestionCache(config.SuggestionCacheTTL),
		models.SearchOptions{MaxResults: config.DefaultMaxResults, Country: config.CountryCode},
		logger,
	)

	r := handler.NewRouter(handler.NewAddressHandler(addressService), reverseHandler, logger)

	log.Info().Str("address", config.ServerAddress).Msg("starting server")
	if err := r.Run(config.ServerAddress); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
