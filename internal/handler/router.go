package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// NewRouter registers every route. reverse may be nil when no address table is configured.
func NewRouter(address *AddressHandler, reverse *ReverseGeocodeHandler, log zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(log), Tracing())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	api := r.Group("/address")
	{
		api.GET("/suggestions", address.Suggestions)
		api.GET("/local", address.Local)
		api.GET("/cep/:cep", address.PostalCode)
		api.GET("/cep", address.CepByAddress)
		api.POST("/enrich", address.Enrich)
	}

	if reverse != nil {
		r.GET("/reverse-geocode", reverse.ReverseGeocode)
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
