package statistics

import (
	"github.com/markusressel/heat2go/internal/sensors"
	"github.com/prometheus/client_golang/prometheus"
)

const subsystemSensor = "sensor"

type SensorCollector struct {
	sensors []sensors.Sensor
	value   *prometheus.Desc
	raw     *prometheus.Desc
}

func NewSensorCollector(sensors []sensors.Sensor) *SensorCollector {
	return &SensorCollector{
		sensors: sensors,
		value: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemSensor, "value"),
			"Current value of the sensor",
			[]string{"id"}, nil,
		),
		raw: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemSensor, "raw"),
			"Last raw conversion result of the sensor",
			[]string{"id"}, nil,
		),
	}
}

func (collector *SensorCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.value
	ch <- collector.raw
}

// Collect implements required collect function for all prometheus collectors
func (collector *SensorCollector) Collect(ch chan<- prometheus.Metric) {
	for _, sensor := range collector.sensors {
		sensorId := sensor.GetId()
		ch <- prometheus.MustNewConstMetric(collector.value, prometheus.GaugeValue, sensor.GetValue(), sensorId)
		ch <- prometheus.MustNewConstMetric(collector.raw, prometheus.GaugeValue, float64(sensor.GetRaw()), sensorId)
	}
}
