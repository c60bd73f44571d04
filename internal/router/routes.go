package router

import (
	"io/fs"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/octobees/outreach-campaigns/api/internal/auth"
	"github.com/octobees/outreach-campaigns/api/internal/config"
	"github.com/octobees/outreach-campaigns/api/internal/handler"
	middlewarepkg "github.com/octobees/outreach-campaigns/api/internal/middleware"
)

const (
	apiPrefix = "/api/v1"
	bodyLimit = "10M"
)

// Handlers aggregates HTTP handlers used by the router.
type Handlers struct {
	Campaigns *handler.CampaignsHandler
	Accounts  *handler.AccountsHandler
	Messages  *handler.MessageHandler
	System    *handler.SystemHandler
}

// Options carries the optional pieces of the HTTP surface.
type Options struct {
	// JWT enables bearer authentication on every API route when set.
	JWT *auth.JWTManager
	// Dashboard is the static single page app served outside the API prefix.
	Dashboard fs.FS
	Logger    *zap.Logger
}

// Register installs middleware and wires all HTTP routes.
func Register(e *echo.Echo, cfg *config.Config, handlers Handlers, opts Options) {
	e.HTTPErrorHandler = handlers.System.HTTPErrorHandler

	e.Use(middlewarepkg.RequestID())
	e.Use(middlewarepkg.Logging(opts.Logger))
	e.Use(echomw.Recover())
	e.Use(echomw.BodyLimit(bodyLimit))
	if origins := cfg.CORSOrigins(); len(origins) > 0 {
		e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
			AllowOrigins:     origins,
			AllowCredentials: true,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, echo.HeaderXRequestID},
		}))
	}

	e.GET("/health", handlers.System.Health)

	api := e.Group(apiPrefix)
	if opts.JWT != nil {
		api.Use(middlewarepkg.JWT(opts.JWT))
	}

	api.GET("", handlers.System.Welcome)
	api.GET("/", handlers.System.Welcome)

	api.GET("/campaigns", handlers.Campaigns.List)
	api.POST("/campaigns", handlers.Campaigns.Create)
	api.GET("/campaigns/:id", handlers.Campaigns.Get)
	api.PUT("/campaigns/:id", handlers.Campaigns.Update)
	api.DELETE("/campaigns/:id", handlers.Campaigns.Delete)

	api.POST("/personalized-message", handlers.Messages.Generate)

	api.GET("/accounts", handlers.Accounts.List)
	api.POST("/accounts", handlers.Accounts.Create)
	api.GET("/accounts/:id", handlers.Accounts.Get)
	api.POST("/accounts/:id/personalized-message", handlers.Messages.GenerateForAccount)

	var importMiddleware []echo.MiddlewareFunc
	if opts.JWT != nil {
		importMiddleware = append(importMiddleware, middlewarepkg.RequireRole(auth.RoleAdmin))
	}
	api.POST("/accounts/import", handlers.Accounts.Import, importMiddleware...)

	if opts.Dashboard != nil {
		e.Use(echomw.StaticWithConfig(echomw.StaticConfig{
			Root:       ".",
			Index:      "index.html",
			HTML5:      true,
			Filesystem: http.FS(opts.Dashboard),
			Skipper:    skipAPI,
		}))
	}
}

func skipAPI(c echo.Context) bool {
	path := c.Request().URL.Path
	return strings.HasPrefix(path, "/api/") || path == "/api" || path == "/health"
}
