package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/stefanramac/online-cv-verison2/internal/api/handler"
	"github.com/stefanramac/online-cv-verison2/internal/api/middleware"
	"github.com/stefanramac/online-cv-verison2/internal/core/ports"

	_ "github.com/stefanramac/online-cv-verison2/docs"
)

// Dependencies are the collaborators the HTTP layer is built from.
type Dependencies struct {
	Auth   ports.AuthService
	Posts  ports.PostService
	Users  ports.UserService
	Tokens ports.TokenVerifier
	Health handler.HealthChecks
	Log    zerolog.Logger
	// Metrics, when set, receives the HTTP collectors and is served at /metrics.
	Metrics *prometheus.Registry
	// StaticDir, when set, is served at the site root.
	StaticDir string
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLogger(deps.Log))
	e.Use(echomiddleware.CORS())

	if deps.Metrics != nil {
		e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
			Namespace:  "portfolio",
			Subsystem:  "http",
			Registerer: deps.Metrics,
		}))
		e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
			Gatherer: deps.Metrics,
		}))
	}

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	postHandler := handler.NewPostHandler(deps.Posts)
	userHandler := handler.NewUserHandler(deps.Users)
	healthHandler := handler.NewHealthHandler(deps.Health)
	authMiddleware := middleware.Auth(deps.Tokens)

	api := e.Group("/api")

	// --- Public routes ---
	api.GET("/posts", postHandler.List)
	api.GET("/posts/:id", postHandler.Get)
	api.GET("/categories", postHandler.Categories)
	api.POST("/register", authHandler.Register)
	api.POST("/login", authHandler.Login)
	api.GET("/health", healthHandler.Status)

	// --- Authenticated routes ---
	api.POST("/posts", postHandler.Create, authMiddleware)
	api.PUT("/posts/:id", postHandler.Update, authMiddleware)
	api.DELETE("/posts/:id", postHandler.Delete, authMiddleware)
	api.GET("/myposts", postHandler.Mine, authMiddleware)
	api.GET("/user", userHandler.Profile, authMiddleware)
	api.PUT("/user", userHandler.UpdateProfile, authMiddleware)

	// --- Health probes (no auth required) ---
	e.GET("/health", healthHandler.Liveness)         // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness – are dependencies up?

	// --- API docs ---
	e.GET("/api-docs/*", echoSwagger.WrapHandler)

	if deps.StaticDir != "" {
		e.Static("/", deps.StaticDir)
	}

	return e
}
