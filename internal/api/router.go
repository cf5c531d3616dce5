package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/vendora/catalog-api/docs"
	"github.com/vendora/catalog-api/internal/api/handler"
	"github.com/vendora/catalog-api/internal/api/middleware"
	"github.com/vendora/catalog-api/internal/core/ports"
)

// Deps holds everything the router needs. Registerer enables HTTP metrics
// and the /metrics endpoint; tests leave it nil.
type Deps struct {
	Accounts   ports.AccountService
	Catalog    ports.CatalogService
	Tokens     ports.TokenVerifier
	Checks     map[string]handler.Check
	Log        zerolog.Logger
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Log))
	if d.Registerer != nil {
		e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
			Namespace:  "catalog",
			Subsystem:  "http",
			Registerer: d.Registerer,
			Skipper: func(c echo.Context) bool {
				return c.Path() == "/metrics"
			},
		}))
		e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
			Gatherer: d.Gatherer,
		}))
	}

	// --- Handlers ---
	accountHandler := handler.NewAccountHandler(d.Accounts, d.Log)
	productHandler := handler.NewProductHandler(d.Catalog, d.Log)
	healthHandler := handler.NewHealthHandler(d.Checks)
	authMiddleware := middleware.Auth(d.Tokens)

	// --- Auth routes ---
	e.POST("/auth/register", accountHandler.Register)
	e.POST("/auth/login", accountHandler.Login)
	e.POST("/auth/logout", accountHandler.Logout)
	e.GET("/auth/me", accountHandler.Me, authMiddleware)

	// --- Catalog routes (bearer token required) ---
	v1 := e.Group("/v1", authMiddleware)
	v1.GET("/products", productHandler.List)
	v1.POST("/products", productHandler.Create)
	v1.GET("/products/:id", productHandler.Get)
	v1.PUT("/products/:id", productHandler.Update)
	v1.DELETE("/products/:id", productHandler.Delete)

	// --- Health probes (no auth required) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)

	// --- API docs ---
	e.GET("/swagger", func(c echo.Context) error {
		return c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
