package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/markusressel/heat2go/internal/controller"
	"github.com/markusressel/heat2go/internal/display"
	"github.com/markusressel/heat2go/internal/sensors"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	urlParamId      = "id"
	indentationChar = "  "
)

type (
	Result struct {
		Name    string `json:"name"`
		Message string `json:"message"`
	}
)

type Params struct {
	Regulator *controller.Regulator
	Sensors   sensors.SensorMap
	// optional, mirror of the LCD contents
	Display *display.TextBuffer

	Registerer prometheus.Registerer
	Verbose    bool
}

// CreateRestService creates the REST API that mirrors the local panel
func CreateRestService(params Params) *echo.Echo {
	echoRest := CreateWebserver(params.Registerer)
	if params.Verbose {
		echoRest.Use(middleware.Logger())
	}

	echoRest.GET("/alive/", isAlive)

	registerRegulatorEndpoints(echoRest, params.Regulator)
	registerSensorEndpoints(echoRest, params.Sensors)
	registerDisplayEndpoints(echoRest, params.Display)
	registerWebsocketEndpoint(echoRest, params.Regulator)

	return echoRest
}

// returns an empty "ok" answer
func isAlive(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

// return a "not found" message
func returnNotFound(c echo.Context, id string) (err error) {
	return c.JSONPretty(http.StatusNotFound, &Result{
		Name:    "Not found",
		Message: "No item with id '" + id + "' found",
	}, indentationChar)
}

// return a "bad request" message
func returnBadRequest(c echo.Context, e error) (err error) {
	return c.JSONPretty(http.StatusBadRequest, &Result{
		Name:    "Bad Request",
		Message: e.Error(),
	}, indentationChar)
}
