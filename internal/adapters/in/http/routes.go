package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ServerInterface lists the operations of openapi.yaml.
type ServerInterface interface {
	// (POST /api/v1/runs)
	QueueRun(ctx echo.Context) error
	// (GET /api/v1/runs)
	ListRuns(ctx echo.Context, params ListRunsParams) error
	// (GET /api/v1/runs/{runId})
	GetRun(ctx echo.Context, runId openapi_types.UUID) error
	// (POST /api/v1/simulate)
	Simulate(ctx echo.Context) error
}

// ServerInterfaceWrapper binds request parameters before calling the handler.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) QueueRun(ctx echo.Context) error {
	return w.Handler.QueueRun(ctx)
}

func (w *ServerInterfaceWrapper) ListRuns(ctx echo.Context) error {
	var params ListRunsParams

	err := runtime.BindQueryParameter("form", true, false, "status", ctx.QueryParams(), &params.Status)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter status: %s", err))
	}

	err = runtime.BindQueryParameter("form", true, false, "limit", ctx.QueryParams(), &params.Limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter limit: %s", err))
	}

	return w.Handler.ListRuns(ctx, params)
}

func (w *ServerInterfaceWrapper) GetRun(ctx echo.Context) error {
	var runId openapi_types.UUID

	err := runtime.BindStyledParameterWithLocation("simple", false, "runId", runtime.ParamLocationPath, ctx.Param("runId"), &runId)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter runId: %s", err))
	}

	return w.Handler.GetRun(ctx, runId)
}

func (w *ServerInterfaceWrapper) Simulate(ctx echo.Context) error {
	return w.Handler.Simulate(ctx)
}

// EchoRouter is satisfied by *echo.Echo and *echo.Group.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers mounts the API operations on router with the given route middleware.
func RegisterHandlers(router EchoRouter, si ServerInterface, m ...echo.MiddlewareFunc) {
	wrapper := ServerInterfaceWrapper{Handler: si}

	router.POST("/api/v1/runs", wrapper.QueueRun, m...)
	router.GET("/api/v1/runs", wrapper.ListRuns, m...)
	router.GET("/api/v1/runs/:runId", wrapper.GetRun, m...)
	router.POST("/api/v1/simulate", wrapper.Simulate, m...)
}
