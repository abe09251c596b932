package internal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/markusressel/heat2go/internal/actuators"
	"github.com/markusressel/heat2go/internal/api"
	"github.com/markusressel/heat2go/internal/button"
	"github.com/markusressel/heat2go/internal/configuration"
	"github.com/markusressel/heat2go/internal/control_loop"
	"github.com/markusressel/heat2go/internal/controller"
	"github.com/markusressel/heat2go/internal/display"
	"github.com/markusressel/heat2go/internal/link"
	"github.com/markusressel/heat2go/internal/persistence"
	"github.com/markusressel/heat2go/internal/sensors"
	"github.com/markusressel/heat2go/internal/simulation"
	"github.com/markusressel/heat2go/internal/statistics"
	"github.com/markusressel/heat2go/internal/ui"
	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 5 * time.Second

// Objects are the components of a running regulator
type Objects struct {
	Persistence persistence.Persistence
	Temperature sensors.Sensor
	Setpoint    sensors.Sensor
	Sensors     sensors.SensorMap
	Actuator    actuators.Actuator
	Loop        *control_loop.PidControlLoop
	// in-memory copy of the LCD contents, nil if the display is disabled
	Screen    *display.TextBuffer
	Lcd       *display.Hd44780
	Button    button.Button
	Link      *link.Link
	Plant     *simulation.Plant
	Regulator *controller.Regulator
}

// Close releases the hardware handles
func (o *Objects) Close() {
	if o.Link != nil {
		if err := o.Link.Close(); err != nil {
			ui.Warning("Error closing serial port: %v", err)
		}
	}
	if o.Lcd != nil {
		if err := o.Lcd.Close(); err != nil {
			ui.Warning("Error closing display: %v", err)
		}
	}
}

func RunDaemon() {
	config := configuration.CurrentConfig
	if !config.Simulation.Enabled && os.Geteuid() != 0 {
		ui.Warning("heat2go is not running as root, access to the ADC, PWM and I2C devices might fail")
	}

	objects, err := InitializeObjects(config)
	if err != nil {
		ui.Fatal("Unable to initialize: %v", err)
	}
	defer objects.Close()

	statistics.Register(statistics.NewSensorCollector([]sensors.Sensor{objects.Temperature, objects.Setpoint}))
	statistics.Register(statistics.NewRegulatorCollector([]statistics.RegulatorSource{objects.Regulator}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var g run.Group
	{
		if config.Statistics.Enabled {
			// === Prometheus Exporter
			port := config.Statistics.Port
			if port <= 0 || port >= 65535 {
				port = 9000
			}
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			server := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}
			addHttpServer(&g, "statistics", server)
		}
	}
	{
		if config.Profiling.Enabled {
			// === pprof
			mux := http.NewServeMux()
			mux.HandleFunc("/debug/pprof/", pprof.Index)
			mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
			mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
			mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
			mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
			server := &http.Server{
				Addr:    fmt.Sprintf("%s:%d", config.Profiling.Host, config.Profiling.Port),
				Handler: mux,
			}
			addHttpServer(&g, "profiling", server)
		}
	}
	{
		if config.Api.Enabled {
			// === REST API
			rest := api.CreateRestService(api.Params{
				Regulator:  objects.Regulator,
				Sensors:    objects.Sensors,
				Display:    objects.Screen,
				Registerer: prometheus.DefaultRegisterer,
				Verbose:    ui.IsDebugEnabled(),
			})
			addRestService(&g, rest, fmt.Sprintf("%s:%d", config.Api.Host, config.Api.Port))
		}
	}

	frames := make(chan []byte)
	{
		if objects.Link != nil {
			// === serial commands
			g.Add(func() error {
				if err := objects.Link.ReadFrames(ctx, frames); err != nil {
					// the regulator keeps running without remote commands
					ui.Error("Serial reader stopped: %v", err)
					<-ctx.Done()
				}
				ui.Info("Serial reader stopped.")
				return nil
			}, func(err error) {
				cancel()
			})
		}
	}
	{
		// === regulator
		g.Add(func() error {
			err := objects.Regulator.Run(ctx, objects.Button.Presses(ctx), frames)
			ui.Info("Regulator %s stopped.", objects.Regulator.GetId())
			return err
		}, func(err error) {
			cancel()
			if err != nil {
				ui.Warning("Something went wrong: %v", err)
			}
		})
	}
	{
		// === controller state
		g.Add(func() error {
			return objects.Regulator.SaveStates(ctx)
		}, func(err error) {
			cancel()
		})
	}
	{
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

		g.Add(func() error {
			select {
			case <-sig:
				ui.Info("Received SIGTERM signal, exiting...")
			case <-ctx.Done():
			}
			return nil
		}, func(err error) {
			signal.Stop(sig)
			cancel()
		})
	}

	if err := g.Run(); err != nil {
		objects.Close()
		ui.Fatal("%v", err)
	}
	ui.Info("Done.")
}

func addHttpServer(g *run.Group, name string, server *http.Server) {
	g.Add(func() error {
		ui.Info("Starting %s server on %s", name, server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("cannot start %s server: %w", name, err)
		}
		return nil
	}, func(err error) {
		ui.Info("Stopping %s server...", name)
		timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer timeoutCancel()
		if err := server.Shutdown(timeoutCtx); err != nil {
			ui.Warning("Error stopping %s server: %v", name, err)
		}
	})
}

func addRestService(g *run.Group, rest *echo.Echo, addr string) {
	g.Add(func() error {
		ui.Info("Starting REST API on %s", addr)
		if err := rest.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("cannot start REST API: %w", err)
		}
		return nil
	}, func(err error) {
		timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer timeoutCancel()
		if err := rest.Shutdown(timeoutCtx); err != nil {
			ui.Warning("Error stopping REST API: %v", err)
		}
	})
}

// InitializeObjects creates all components of the given configuration. In
// simulation mode the converters and the PWM output are replaced by the
// thermal model.
func InitializeObjects(config configuration.Configuration) (*Objects, error) {
	objects := &Objects{
		Persistence: persistence.NewPersistence(config.DbPath),
		Button:      button.NewButton(config.Button),
	}
	if err := objects.Persistence.Init(); err != nil {
		return nil, fmt.Errorf("unable to prepare database: %w", err)
	}

	if config.Simulation.Enabled {
		ui.Info("Simulation mode, using a thermal model instead of the hardware")
		rig := simulation.NewRig(config)
		objects.Plant = rig.Plant
		objects.Temperature = rig.Temperature
		objects.Setpoint = rig.Setpoint
		objects.Actuator = rig.Actuator
	} else {
		temperature, setpoint, err := sensors.NewSensors(config)
		if err != nil {
			return nil, err
		}
		objects.Temperature = temperature
		objects.Setpoint = setpoint

		actuator, err := actuators.NewActuator(config.Actuator)
		if err != nil {
			return nil, err
		}
		objects.Actuator = actuator
	}
	objects.Sensors = sensors.NewSensorMap(objects.Temperature, objects.Setpoint)

	loop, err := control_loop.NewPidControlLoopFromConfig(config.Pid)
	if err != nil {
		return nil, err
	}
	objects.Loop = loop

	var screen display.Display
	if config.Display.Enabled {
		objects.Screen = display.NewTextBuffer(config.Display.Columns, config.Display.Rows)
		screen = objects.Screen
		if config.Display.I2c != nil {
			lcd, err := openLcd(config.Display)
			if err != nil {
				ui.Warning("Unable to initialize LCD, continuing without it: %v", err)
			} else {
				objects.Lcd = lcd
				screen = display.NewMirror(objects.Screen, lcd)
			}
		}
	}

	var telemetry controller.TelemetryWriter
	if config.Serial.Enabled {
		l, err := link.Open(config.Serial.Port, config.Serial.BaudRate)
		if err != nil {
			objects.Close()
			return nil, err
		}
		objects.Link = l
		telemetry = l
	}

	params := controller.Params{
		Id:                    config.Actuator.Id,
		Temperature:           objects.Temperature,
		Setpoint:              objects.Setpoint,
		Loop:                  objects.Loop,
		Actuator:              objects.Actuator,
		Display:               screen,
		Indicator:             button.NewIndicator(config.Button),
		Telemetry:             telemetry,
		Persistence:           objects.Persistence,
		TickRate:              config.TickRate,
		DisplayRefreshDivider: config.DisplayRefreshDivider,
		TemperatureWindowSize: config.TemperatureRollingWindowSize,
	}
	objects.Regulator = controller.NewRegulator(params)

	if err := objects.Regulator.RestoreState(); err != nil {
		ui.Warning("Unable to restore controller state: %v", err)
	}

	return objects, nil
}

func openLcd(config configuration.DisplayConfig) (*display.Hd44780, error) {
	bus, err := display.OpenI2cBus(config.I2c.Device, config.I2c.Address)
	if err != nil {
		return nil, err
	}
	lcd := display.NewHd44780(bus, config.Columns, config.Rows)
	if err := lcd.Init(); err != nil {
		_ = lcd.Close()
		return nil, err
	}
	return lcd, nil
}
