package server

import (
	"errors"
	"net/http"
	"runtime/debug"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/samber/do/v2"

	"github.com/nfrund/panel/internal/config"
	"github.com/nfrund/panel/internal/login"
	"github.com/nfrund/panel/internal/middleware"
	"github.com/nfrund/panel/internal/module"
	"github.com/nfrund/panel/internal/rendering"
	"github.com/nfrund/panel/web"
)

// Server holds the dependencies for the HTTP server.
type Server struct {
	E        *echo.Echo
	Cfg      config.Provider
	injector do.Injector
	modules  []module.Module
}

// New creates a new Server. Routes are added by RegisterRoutes.
func New(cfg config.Provider, i do.Injector, modules []module.Module) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(echomw.Recover())
	e.Use(middleware.Logger)
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogStatus:  true,
		LogMethod:  true,
		LogURI:     true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			middleware.FromContext(c.Request().Context()).Info("request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
			)
			return nil
		},
	}))

	// Configure and use session middleware
	store := sessions.NewCookieStore([]byte(cfg.GetSessionSecret()))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	e.Use(session.Middleware(store))

	e.StaticFS("/static", echo.MustSubFS(web.FS, "static"))

	e.Renderer = do.MustInvoke[*rendering.UniversalRenderer](i)
	e.Validator = do.MustInvoke[*login.Validator](i)
	setupErrorHandling(e)

	return &Server{
		E:        e,
		Cfg:      cfg,
		injector: i,
		modules:  modules,
	}
}

// setupErrorHandling logs unhandled errors with a stack trace and hides
// their details from the client. echo.HTTPErrors pass through unchanged.
func setupErrorHandling(e *echo.Echo) {
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		logger := middleware.FromContext(c.Request().Context())
		var he *echo.HTTPError
		if errors.As(err, &he) {
			if he.Code >= http.StatusInternalServerError {
				logger.Error("Internal Server Error", "error", err)
			}
			e.DefaultHTTPErrorHandler(err, c)
			return
		}

		logger.Error("Internal Server Error (Unhandled)",
			"error", err,
			"stack_trace", string(debug.Stack()),
		)
		e.DefaultHTTPErrorHandler(echo.NewHTTPError(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)), c)
	}
}

// Injector exposes the service container, useful for testing.
func (s *Server) Injector() do.Injector {
	return s.injector
}
