package handler

import (
	"net/http"
	"time"

	"mediaminder/internal/config"
	"mediaminder/internal/microservices/http-api/dto"
	"mediaminder/internal/microservices/http-api/middleware"
	"mediaminder/internal/microservices/http-api/repository"
	"mediaminder/internal/microservices/http-api/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// Deps is everything the router needs. Limiter and Metrics are optional.
type Deps struct {
	Config  *config.Config
	Log     logrus.FieldLogger
	Store   repository.Store
	Auth    service.AuthService
	Library service.LibraryService
	Profile service.ProfileService
	Genres  service.GenreService
	Limiter middleware.Limiter
	Metrics *middleware.Metrics
}

// NewRouter builds the gin engine. Every route is served both at the root and
// under /api.
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger(d.Log))
	if d.Metrics != nil {
		r.Use(d.Metrics.Middleware())
	}
	if c, ok := corsConfig(d.Config.CORSOrigins); ok {
		r.Use(cors.New(c))
	}

	health := NewHealthHandler(d.Store)
	r.GET("/healthz", health.Check)
	if d.Metrics != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Metrics.Registry, promhttp.HandlerOpts{})))
	}

	timeout := d.Config.RequestTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	authHandler := NewAuthHandler(d.Auth, timeout)
	mediaHandler := NewMediaHandler(d.Library, d.Genres, timeout)
	profileHandler := NewProfileHandler(d.Profile, timeout)
	genreHandler := NewGenreHandler(d.Genres, timeout)

	for _, base := range []*gin.RouterGroup{&r.RouterGroup, r.Group("/api")} {
		authGroup := base.Group("/auth")
		if d.Limiter != nil {
			authGroup.Use(middleware.RateLimit(d.Limiter, d.Log))
		}
		authHandler.RegisterRoutes(authGroup)

		protected := base.Group("")
		protected.Use(middleware.AuthMiddleware(d.Auth))
		mediaHandler.RegisterRoutes(protected.Group("/media"))
		profileHandler.RegisterRoutes(protected.Group("/user"))
		genreHandler.RegisterRoutes(protected.Group("/genres"))
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "not found"})
	})
	return r
}

func corsConfig(origins []string) (cors.Config, bool) {
	if len(origins) == 0 {
		return cors.Config{}, false
	}
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			c.AllowAllOrigins = true
			return c, true
		}
	}
	c.AllowOrigins = origins
	return c, true
}
