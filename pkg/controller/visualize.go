package controller

import (
	"net/http"

	"github.com/kage-cloud/routemap/pkg/exchange"
	"github.com/kage-cloud/routemap/pkg/service"
	"github.com/labstack/echo/v4"
)

const VisualizeControllerKey = "VisualizeController"

type VisualizeController interface {
	Controller
	Visualize(ctx echo.Context) error
}

type visualizeController struct {
	VisualizeService service.VisualizeService `inject:"VisualizeService"`
}

func (v *visualizeController) Routes() []Route {
	return []Route{
		{
			Handler: v.Visualize,
			Method:  http.MethodPost,
			Path:    "",
		},
	}
}

func (v *visualizeController) Group() string {
	return "visualize"
}

func (v *visualizeController) Visualize(ctx echo.Context) error {
	req := new(exchange.VisualizeRequest)
	if err := ctx.Bind(req); err != nil {
		return err
	}

	res, err := v.VisualizeService.Visualize(req)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, res)
}
