package controller

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kage-cloud/routemap/pkg/except"
	"github.com/kage-cloud/routemap/pkg/exchange"
	"github.com/kage-cloud/routemap/pkg/model"
	"github.com/kage-cloud/routemap/pkg/parser"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type visualizeServiceMock struct {
	mock.Mock
}

func (v *visualizeServiceMock) Visualize(req *exchange.VisualizeRequest) (*model.GraphResult, error) {
	args := v.Called(req)
	res, _ := args.Get(0).(*model.GraphResult)
	return res, args.Error(1)
}

type VisualizeControllerTestSuite struct {
	suite.Suite
	Service    *visualizeServiceMock
	Controller VisualizeController
	Echo       *echo.Echo
}

func (v *VisualizeControllerTestSuite) SetupTest() {
	v.Service = new(visualizeServiceMock)
	v.Controller = &visualizeController{VisualizeService: v.Service}
	v.Echo = echo.New()
}

func (v *VisualizeControllerTestSuite) post(body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/visualize", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return v.Echo.NewContext(req, rec), rec
}

func (v *VisualizeControllerTestSuite) TestVisualize() {
	// -- Given
	//
	ctx, rec := v.post(`{"configs": ["{}", "a: 1"], "format": "yaml"}`)
	result := &model.GraphResult{
		Nodes:    []model.Node{model.NewNode("cluster:c1", "c1", model.ClusterData{Type: "EDS"})},
		Edges:    []model.Edge{},
		Stats:    model.GraphStats{Clusters: 1},
		Warnings: []string{},
	}
	v.Service.On("Visualize", &exchange.VisualizeRequest{
		Configs: []string{"{}", "a: 1"},
		Format:  parser.FormatYaml,
	}).Return(result, nil)

	// -- When
	//
	err := v.Controller.Visualize(ctx)

	// -- Then
	//
	if !v.NoError(err) {
		return
	}
	v.Equal(http.StatusOK, rec.Code)
	v.JSONEq(`{
		"nodes": [{"id": "cluster:c1", "type": "cluster", "label": "c1", "data": {"type": "EDS"}}],
		"edges": [],
		"stats": {"listeners": 0, "route_configs": 0, "virtual_hosts": 0, "routes": 0, "clusters": 1, "endpoints": 0},
		"warnings": []
	}`, rec.Body.String())
	v.Service.AssertExpectations(v.T())
}

func (v *VisualizeControllerTestSuite) TestVisualizeServiceError() {
	// -- Given
	//
	ctx, _ := v.post(`{"configs": ["{invalid"], "format": "json"}`)
	expected := except.NewError("Invalid JSON: boom", except.ErrParse)
	v.Service.On("Visualize", mock.Anything).Return(nil, expected)

	// -- When
	//
	err := v.Controller.Visualize(ctx)

	// -- Then
	//
	v.Equal(expected, err)
}

func (v *VisualizeControllerTestSuite) TestVisualizeMalformedBody() {
	ctx, _ := v.post(`{"configs": `)

	err := v.Controller.Visualize(ctx)

	v.Error(err)
	v.Service.AssertNotCalled(v.T(), "Visualize", mock.Anything)
}

func (v *VisualizeControllerTestSuite) TestRoutes() {
	routes := v.Controller.Routes()

	v.Equal("visualize", v.Controller.Group())
	if v.Len(routes, 1) {
		v.Equal(http.MethodPost, routes[0].Method)
	}
}

func TestVisualizeControllerTestSuite(t *testing.T) {
	suite.Run(t, new(VisualizeControllerTestSuite))
}
