package controller

import (
	"net/http"

	"github.com/kage-cloud/routemap/pkg/exchange"
	"github.com/labstack/echo/v4"
)

const HealthControllerKey = "HealthController"

type HealthController interface {
	Controller
	Get(ctx echo.Context) error
}

type healthController struct {
}

func (h *healthController) Routes() []Route {
	return []Route{
		{
			Handler: h.Get,
			Method:  http.MethodGet,
			Path:    "",
		},
	}
}

func (h *healthController) Group() string {
	return "healthz"
}

func (h *healthController) Get(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, &exchange.HealthResponse{Status: "ok"})
}
