package api

import (
	"errors"
	"math"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/markusressel/heat2go/internal/controller"
)

type SetPointRequest struct {
	SetPoint *float64 `json:"setPoint"`
}

type Tunings struct {
	Kp float64 `json:"kp"`
	Ki float64 `json:"ki"`
	Kd float64 `json:"kd"`
}

type ButtonResult struct {
	EditMode bool    `json:"editMode"`
	SetPoint float64 `json:"setPoint"`
}

type regulatorHandler struct {
	regulator *controller.Regulator
}

func registerRegulatorEndpoints(rest *echo.Echo, regulator *controller.Regulator) {
	h := regulatorHandler{regulator: regulator}
	group := rest.Group("/regulator")

	group.GET("/", h.getStatus)
	group.GET("/statistics/", h.getStatistics)
	group.PUT("/setpoint/", h.setSetPoint)
	group.GET("/tunings/", h.getTunings)
	group.PUT("/tunings/", h.setTunings)
	group.POST("/button/", h.pressButton)
	group.POST("/reset/", h.reset)
}

func (h regulatorHandler) getStatus(c echo.Context) error {
	return c.JSONPretty(http.StatusOK, h.regulator.Status(), indentationChar)
}

func (h regulatorHandler) getStatistics(c echo.Context) error {
	return c.JSONPretty(http.StatusOK, h.regulator.Statistics(), indentationChar)
}

func (h regulatorHandler) setSetPoint(c echo.Context) error {
	var request SetPointRequest
	if err := c.Bind(&request); err != nil {
		return err
	}
	if request.SetPoint == nil {
		return returnBadRequest(c, errors.New("setPoint is missing"))
	}
	if !isFinite(*request.SetPoint) {
		return returnBadRequest(c, errors.New("setPoint must be a finite number"))
	}

	h.regulator.SetReference(*request.SetPoint)
	return c.JSONPretty(http.StatusOK, h.regulator.Status(), indentationChar)
}

func (h regulatorHandler) getTunings(c echo.Context) error {
	kp, ki, kd := h.regulator.GetTunings()
	return c.JSONPretty(http.StatusOK, Tunings{Kp: kp, Ki: ki, Kd: kd}, indentationChar)
}

func (h regulatorHandler) setTunings(c echo.Context) error {
	kp, ki, kd := h.regulator.GetTunings()
	tunings := Tunings{Kp: kp, Ki: ki, Kd: kd}
	if err := c.Bind(&tunings); err != nil {
		return err
	}
	if !isFinite(tunings.Kp) || !isFinite(tunings.Ki) || !isFinite(tunings.Kd) {
		return returnBadRequest(c, errors.New("gains must be finite numbers"))
	}

	h.regulator.SetTunings(tunings.Kp, tunings.Ki, tunings.Kd)
	return c.JSONPretty(http.StatusOK, tunings, indentationChar)
}

func (h regulatorHandler) pressButton(c echo.Context) error {
	editMode := h.regulator.PressButton()
	return c.JSONPretty(http.StatusOK, ButtonResult{
		EditMode: editMode,
		SetPoint: h.regulator.Status().SetPoint,
	}, indentationChar)
}

func (h regulatorHandler) reset(c echo.Context) error {
	h.regulator.Reset()
	return c.NoContent(http.StatusNoContent)
}

func isFinite(value float64) bool {
	return !math.IsNaN(value) && !math.IsInf(value, 0)
}
