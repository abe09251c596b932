package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/markusressel/heat2go/internal/sensors"
	"github.com/qdm12/reprint"
)

type SensorReading struct {
	Id    string  `json:"id"`
	Value float64 `json:"value"`
	Raw   uint16  `json:"raw"`
}

func registerSensorEndpoints(rest *echo.Echo, sensorMap sensors.SensorMap) {
	group := rest.Group("/sensor")

	group.GET("/", func(c echo.Context) error {
		return getSensors(c, sensorMap)
	})
	group.GET("/:"+urlParamId+"/", func(c echo.Context) error {
		return getSensor(c, sensorMap)
	})
}

func newSensorReading(sensor sensors.Sensor) SensorReading {
	return SensorReading{
		Id:    sensor.GetId(),
		Value: sensor.GetValue(),
		Raw:   sensor.GetRaw(),
	}
}

func getSensors(c echo.Context, sensorMap sensors.SensorMap) error {
	readings := []SensorReading{}
	for _, id := range sensorMap.SortedIds() {
		sensor, ok := sensorMap.Get(id)
		if !ok {
			continue
		}
		readings = append(readings, newSensorReading(sensor))
	}
	data := reprint.This(readings)
	return c.JSONPretty(http.StatusOK, data, indentationChar)
}

func getSensor(c echo.Context, sensorMap sensors.SensorMap) error {
	id := c.Param(urlParamId)

	sensor, exists := sensorMap.Get(id)
	if !exists {
		return returnNotFound(c, id)
	} else {
		return c.JSONPretty(http.StatusOK, newSensorReading(sensor), indentationChar)
	}
}
