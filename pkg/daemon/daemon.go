// Package daemon runs the joystick: it owns the serial device, polls it,
// injects the resulting input actions, and serves the control API on a unix
// socket.
package daemon

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	ginlogrus "github.com/toorop/gin-logrus"

	"github.com/ktulhy-kun/ArduinoAnalogJoy/pkg/adc"
	"github.com/ktulhy-kun/ArduinoAnalogJoy/pkg/config"
	"github.com/ktulhy-kun/ArduinoAnalogJoy/pkg/events"
	"github.com/ktulhy-kun/ArduinoAnalogJoy/pkg/injector"
	"github.com/ktulhy-kun/ArduinoAnalogJoy/pkg/joystick"
	"github.com/ktulhy-kun/ArduinoAnalogJoy/pkg/protocol"
)

var (
	dev     *joystick.Device
	conf    config.Config
	sseHub  *events.EventHub
	sched   *Scheduler
	convert adc.ConvertFunc = adc.Resistance
)

// Device accessors (function vars) for test seam; default to the real serial
// device and the xdotool injector.
var (
	devReadSample = func() (protocol.RawSample, error) { return dev.ReadSample() }
	injectActions = func(tokens []string) error { return inj.Dispatch(tokens) }
	inj           injector.Injector
)

func setupRoutes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(ginlogrus.Logger(logrus.StandardLogger()))
	router.GET("/config", getConfig)
	router.GET("/status", getStatus)
	router.GET("/profile", getProfile)
	router.POST("/calibrate", postCalibrate)
	router.PUT("/mode", setMode)
	router.PUT("/screen-size", setScreenSize)
	router.PUT("/sample-count", setSampleCount)
	router.PUT("/schedule", setSchedule)
	router.POST("/schedule/skip", postScheduleSkip)
	router.POST("/schedule/postpone", postSchedulePostpone)
	router.GET("/events", getEvents)
	router.GET("/version", getVersion)

	return router
}

// listenUnix binds the control socket, clearing a stale socket file a
// crashed daemon may have left behind.
func listenUnix(path string) (net.Listener, error) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	return net.Listen("unix", path)
}

// Run starts the daemon and blocks until SIGINT/SIGTERM.
func Run(configPath string, unixSocketPath string) error {
	var err error
	conf, err = config.NewFile(configPath)
	if err != nil {
		logrus.Fatalf("failed to parse config during startup: %v", err)
	}
	logrus.WithFields(conf.LogrusFields()).Infof("config loaded")

	// Receive SIGHUP to reload config
	go func() {
		sigc := make(chan os.Signal, 1)
		signal.Notify(sigc, syscall.SIGHUP)
		for range sigc {
			if err := conf.Load(); err != nil {
				logrus.Errorf("failed to reload config: %v", err)
				continue
			}
			applyConfig()
			logrus.Infof("config reloaded")
		}
	}()

	sseHub = events.NewEventHub()
	inj = injector.NewXDoTool()

	// Open the joystick. A protocol mismatch here is fatal: the device on
	// the other end does not speak our protocol, retrying cannot help.
	dev, err = joystick.Open(conf.Port(), conf.BaudRate())
	if err != nil {
		if errors.Is(err, protocol.ErrProtocolMismatch) {
			logrus.Fatalf("device on %s is not a joystick (or wrong firmware): %v", conf.Port(), err)
		}
		logrus.Fatalf("failed to open joystick: %v", err)
	}
	defer func() {
		logrus.Info("closing joystick")
		if err := dev.Close(); err != nil {
			logrus.Errorf("failed to close joystick: %v", err)
		}
	}()

	// Load the persisted profile; fall back to a guided calibration when it
	// is missing or corrupt. Only transport errors abort startup.
	if err := loadOrCalibrate(); err != nil {
		return err
	}

	// Scheduled recalibration, when configured.
	sched = NewScheduler(func() error {
		return requestCalibration()
	}, func(err error) {
		logrus.WithError(err).Error("scheduled recalibration failed")
	})
	if expr := conf.RecalibrateCron(); expr != "" {
		if err := sched.Schedule(expr); err != nil {
			logrus.WithError(err).Errorf("invalid recalibrateCron %q, schedule disabled", expr)
		} else {
			sched.Start()
		}
	}

	router := setupRoutes()
	srv := &http.Server{Handler: router}

	l, err := listenUnix(unixSocketPath)
	if err != nil {
		logrus.Fatal(err)
	}

	go func() {
		logrus.Infof("http server listening on %s", l.Addr().String())
		if err := srv.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatal(err)
		}
	}()

	stopCh := make(chan struct{})
	loopDone := make(chan struct{})
	go func() {
		logrus.Debugln("poll loop starts")
		pollLoop(stopCh)
		close(loopDone)
	}()

	// Handle common process-killing signals, so we can gracefully shut down:
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigc
	logrus.Infof("caught signal \"%s\": shutting down.", sig)

	close(stopCh)
	select {
	case <-loopDone:
	case <-time.After(5 * time.Second):
		logrus.Error("poll loop did not stop in time")
	}

	sched.Stop()

	logrus.Info("shutting down http server")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("failed to shutdown http server: %v", err)
	}
	cancel()

	logrus.Info("exiting")
	return nil
}
