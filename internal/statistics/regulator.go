package statistics

import (
	"github.com/markusressel/heat2go/internal/controller"
	"github.com/prometheus/client_golang/prometheus"
)

const regulatorSubsystem = "regulator"

// RegulatorSource is implemented by controller.Regulator
type RegulatorSource interface {
	GetId() string
	Status() controller.Status
	Statistics() controller.Statistics
}

type gauge struct {
	desc  *prometheus.Desc
	value func(s controller.Status) float64
}

type counter struct {
	desc  *prometheus.Desc
	value func(s controller.Statistics) uint64
}

type RegulatorCollector struct {
	regulators []RegulatorSource
	gauges     []gauge
	counters   []counter
}

func newRegulatorDesc(name string, help string) *prometheus.Desc {
	return prometheus.NewDesc(prometheus.BuildFQName(namespace, regulatorSubsystem, name), help, []string{"id"}, nil)
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func NewRegulatorCollector(regulators []RegulatorSource) *RegulatorCollector {
	return &RegulatorCollector{
		regulators: regulators,
		gauges: []gauge{
			{newRegulatorDesc("temperature", "Filtered temperature in degree celsius"), func(s controller.Status) float64 { return s.Temperature }},
			{newRegulatorDesc("temperature_avg", "Average temperature over the rolling window"), func(s controller.Status) float64 { return s.AvgTemperature }},
			{newRegulatorDesc("setpoint", "Active setpoint of the control loop"), func(s controller.Status) float64 { return s.SetPoint }},
			{newRegulatorDesc("setpoint_candidate", "Setpoint currently selected on the panel"), func(s controller.Status) float64 { return s.Candidate }},
			{newRegulatorDesc("edit_mode", "1 while the setpoint is being edited"), func(s controller.Status) float64 { return boolToFloat(s.EditMode) }},
			{newRegulatorDesc("output", "Unlimited output of the control loop"), func(s controller.Status) float64 { return s.Output }},
			{newRegulatorDesc("duty", "Applied heater duty cycle in percent"), func(s controller.Status) float64 { return float64(s.Duty) }},
			{newRegulatorDesc("kp", "Proportional gain"), func(s controller.Status) float64 { return s.Kp }},
			{newRegulatorDesc("ki", "Integral gain"), func(s controller.Status) float64 { return s.Ki }},
			{newRegulatorDesc("kd", "Derivative gain"), func(s controller.Status) float64 { return s.Kd }},
			{newRegulatorDesc("p_term", "Proportional contribution of the last tick"), func(s controller.Status) float64 { return s.Terms.P }},
			{newRegulatorDesc("i_term", "Integral contribution of the last tick"), func(s controller.Status) float64 { return s.Terms.I }},
			{newRegulatorDesc("d_term", "Derivative contribution of the last tick"), func(s controller.Status) float64 { return s.Terms.D }},
			{newRegulatorDesc("integral_sum", "Accumulated error of the integral term"), func(s controller.Status) float64 { return s.IntegralSum }},
		},
		counters: []counter{
			{newRegulatorDesc("ticks_total", "Number of control loop ticks"), func(s controller.Statistics) uint64 { return s.Ticks }},
			{newRegulatorDesc("display_refreshes_total", "Number of display refreshes"), func(s controller.Statistics) uint64 { return s.DisplayRefreshes }},
			{newRegulatorDesc("adc_timeouts_total", "Number of timed out analog conversions"), func(s controller.Statistics) uint64 { return s.AdcTimeouts }},
			{newRegulatorDesc("sensor_errors_total", "Number of failed sensor reads"), func(s controller.Statistics) uint64 { return s.SensorErrors }},
			{newRegulatorDesc("actuator_errors_total", "Number of failed duty cycle writes"), func(s controller.Statistics) uint64 { return s.ActuatorErrors }},
			{newRegulatorDesc("received_frames_total", "Number of applied serial command frames"), func(s controller.Statistics) uint64 { return s.ReceivedFrames }},
			{newRegulatorDesc("dropped_frames_total", "Number of dropped serial command frames"), func(s controller.Statistics) uint64 { return s.DroppedFrames }},
			{newRegulatorDesc("button_presses_total", "Number of button presses"), func(s controller.Statistics) uint64 { return s.ButtonPresses }},
		},
	}
}

func (collector *RegulatorCollector) Describe(ch chan<- *prometheus.Desc) {
	for _, g := range collector.gauges {
		ch <- g.desc
	}
	for _, c := range collector.counters {
		ch <- c.desc
	}
}

// Collect implements required collect function for all prometheus collectors
func (collector *RegulatorCollector) Collect(ch chan<- prometheus.Metric) {
	for _, regulator := range collector.regulators {
		id := regulator.GetId()
		status := regulator.Status()
		stats := regulator.Statistics()
		for _, g := range collector.gauges {
			ch <- prometheus.MustNewConstMetric(g.desc, prometheus.GaugeValue, g.value(status), id)
		}
		for _, c := range collector.counters {
			ch <- prometheus.MustNewConstMetric(c.desc, prometheus.CounterValue, float64(c.value(stats)), id)
		}
	}
}
