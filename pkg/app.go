package pkg

import (
	"fmt"
	"net/http"
	"path"

	"github.com/eddieowens/axon"
	"github.com/google/uuid"
	"github.com/kage-cloud/routemap/pkg/config"
	"github.com/kage-cloud/routemap/pkg/controller"
	"github.com/kage-cloud/routemap/pkg/except"
	"github.com/kage-cloud/routemap/pkg/metrics"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	log "github.com/sirupsen/logrus"
)

const AppKey = "App"

type App interface {
	Start() error
	Echo() *echo.Echo
}

type app struct {
	Controllers []axon.Instance  `inject:"Controllers"`
	Config      *config.Config   `inject:"Config"`
	Metrics     *metrics.Metrics `inject:"Metrics"`
}

func (a *app) Start() error {
	e := a.Echo()
	log.WithField("port", a.Config.Server.Port).Info("Started API server")
	return e.Start(fmt.Sprintf(":%d", a.Config.Server.Port))
}

func (a *app) Echo() *echo.Echo {
	e := echo.New()
	if log.GetLevel() >= log.DebugLevel {
		e.Use(middleware.Logger(), middleware.Recover())
	}

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string {
			return uuid.New().String()
		},
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     a.Config.Server.Cors.AllowOrigins,
		AllowCredentials: true,
	}))
	if a.Config.Server.BodyLimit != "" {
		e.Use(middleware.BodyLimit(a.Config.Server.BodyLimit))
	}
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = customHTTPErrorHandler(e.DefaultHTTPErrorHandler)

	for _, v := range a.Controllers {
		c := v.GetStructPtr().(controller.Controller)

		for _, r := range c.Routes() {
			group := e.Group(path.Join("/", c.Group()))
			group.Add(r.Method, r.Path, r.Handler)
		}
	}

	if a.Config.Metrics.Enabled {
		e.GET(a.Config.Metrics.Path, echo.WrapHandler(a.Metrics.Handler()))
	}

	return e
}

func customHTTPErrorHandler(defaultHandler echo.HTTPErrorHandler) echo.HTTPErrorHandler {
	return func(err error, context echo.Context) {
		status := except.ToHttpStatus(err)
		if v, ok := err.(*echo.HTTPError); ok {
			status = v.Code
			defaultHandler(v, context)
		} else {
			if status == http.StatusInternalServerError {
				defaultHandler(echo.NewHTTPError(status, http.StatusText(status)), context)
			} else {
				defaultHandler(echo.NewHTTPError(status, err.Error()), context)
			}
		}
		log.WithField("code", status).
			WithField("request_id", context.Response().Header().Get(echo.HeaderXRequestID)).
			WithError(err).
			Debug("An error occurred")
	}
}
