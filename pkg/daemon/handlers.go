package daemon

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ktulhy-kun/ArduinoAnalogJoy/pkg/calibration"
	"github.com/ktulhy-kun/ArduinoAnalogJoy/pkg/config"
	"github.com/ktulhy-kun/ArduinoAnalogJoy/pkg/translator"
	"github.com/ktulhy-kun/ArduinoAnalogJoy/pkg/types"
	"github.com/ktulhy-kun/ArduinoAnalogJoy/pkg/version"
)

func getConfig(c *gin.Context) {
	fc, err := config.NewRawFileConfigFromConfig(conf)
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	c.IndentedJSON(http.StatusOK, fc)
}

func getStatus(c *gin.Context) {
	st := types.Status{
		Port:         conf.Port(),
		BaudRate:     conf.BaudRate(),
		Mode:         conf.Mode(),
		ScreenWidth:  conf.ScreenWidth(),
		ScreenHeight: conf.ScreenHeight(),
	}

	stateMu.Lock()
	st.Calibrated = profile != nil
	stateMu.Unlock()

	if cs := getCalibrationStatus(); cs.Phase != calibration.PhaseIdle {
		st.Calibration = &cs
	}

	if sched != nil {
		if nextRun, running := sched.Status(); running {
			st.ScheduledAt = nextRun
		}
	}

	c.IndentedJSON(http.StatusOK, st)
}

func getProfile(c *gin.Context) {
	stateMu.Lock()
	p := profile
	stateMu.Unlock()

	if p == nil {
		c.IndentedJSON(http.StatusNotFound, "no calibration profile yet")
		return
	}
	c.IndentedJSON(http.StatusOK, p)
}

func postCalibrate(c *gin.Context) {
	if err := requestCalibration(); err != nil {
		c.IndentedJSON(http.StatusConflict, err.Error())
		_ = c.AbortWithError(http.StatusConflict, err)
		return
	}

	logrus.Info("calibration requested")

	c.IndentedJSON(http.StatusAccepted, "calibration started, follow /events for progress")
}

func setMode(c *gin.Context) {
	var m string
	if err := c.BindJSON(&m); err != nil {
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	mode := translator.Mode(m)
	if mode != translator.ModeRelative && mode != translator.ModeAbsolute {
		err := fmt.Errorf("mode must be %q or %q, got %q", translator.ModeRelative, translator.ModeAbsolute, m)
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	conf.SetMode(mode)
	if err := conf.Save(); err != nil {
		logrus.Errorf("saveConfig failed: %v", err)
		c.IndentedJSON(http.StatusInternalServerError, err.Error())
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}

	applyConfig()
	logrus.Infof("set mode to %s", mode)

	c.IndentedJSON(http.StatusCreated, fmt.Sprintf("mode set to %s", mode))
}

func setScreenSize(c *gin.Context) {
	var s struct {
		Width  int `json:"width"`
		Height int `json:"height"`
	}
	if err := c.BindJSON(&s); err != nil {
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	if s.Width < 2 || s.Height < 2 {
		err := fmt.Errorf("screen size must be at least 2x2, got %dx%d", s.Width, s.Height)
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	conf.SetScreenSize(s.Width, s.Height)
	if err := conf.Save(); err != nil {
		logrus.Errorf("saveConfig failed: %v", err)
		c.IndentedJSON(http.StatusInternalServerError, err.Error())
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}

	applyConfig()
	logrus.Infof("set screen size to %dx%d", s.Width, s.Height)

	c.IndentedJSON(http.StatusCreated, fmt.Sprintf("screen size set to %dx%d", s.Width, s.Height))
}

func setSampleCount(c *gin.Context) {
	var n int
	if err := c.BindJSON(&n); err != nil {
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	if n < 1 {
		err := fmt.Errorf("sample count must be positive, got %d", n)
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	conf.SetSampleCount(n)
	if err := conf.Save(); err != nil {
		logrus.Errorf("saveConfig failed: %v", err)
		c.IndentedJSON(http.StatusInternalServerError, err.Error())
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}

	logrus.Infof("set sample count to %d", n)

	msg := fmt.Sprintf("sample count set to %d, effective on the next calibration", n)
	if n < 100 {
		msg += " (progress reporting is disabled below 100 samples)"
	}
	c.IndentedJSON(http.StatusCreated, msg)
}

func setSchedule(c *gin.Context) {
	var expr string
	if err := c.BindJSON(&expr); err != nil {
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	if expr == "" {
		conf.SetRecalibrateCron("")
		if err := conf.Save(); err != nil {
			logrus.Errorf("saveConfig failed: %v", err)
			c.IndentedJSON(http.StatusInternalServerError, err.Error())
			_ = c.AbortWithError(http.StatusInternalServerError, err)
			return
		}
		sched.Stop()
		logrus.Info("recalibration schedule disabled")
		c.IndentedJSON(http.StatusCreated, "recalibration schedule disabled")
		return
	}

	if err := sched.Schedule(expr); err != nil {
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}
	sched.Start()

	conf.SetRecalibrateCron(expr)
	if err := conf.Save(); err != nil {
		logrus.Errorf("saveConfig failed: %v", err)
		c.IndentedJSON(http.StatusInternalServerError, err.Error())
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}

	nextRun, _ := sched.Status()
	logrus.Infof("set recalibration schedule to %q, next run at %s", expr, nextRun.Format(time.DateTime))

	c.IndentedJSON(http.StatusCreated, fmt.Sprintf("recalibration scheduled, next run at %s", nextRun.Format(time.DateTime)))
}

func postScheduleSkip(c *gin.Context) {
	if err := sched.Skip(); err != nil {
		c.IndentedJSON(http.StatusConflict, err.Error())
		_ = c.AbortWithError(http.StatusConflict, err)
		return
	}

	nextRun, _ := sched.Status()
	logrus.Infof("skipped next scheduled recalibration, next run at %s", nextRun.Format(time.DateTime))

	c.IndentedJSON(http.StatusCreated, fmt.Sprintf("skipped, next run at %s", nextRun.Format(time.DateTime)))
}

func postSchedulePostpone(c *gin.Context) {
	var d string
	if err := c.BindJSON(&d); err != nil {
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	dur, err := time.ParseDuration(d)
	if err != nil {
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	if err := sched.Postpone(dur); err != nil {
		c.IndentedJSON(http.StatusConflict, err.Error())
		_ = c.AbortWithError(http.StatusConflict, err)
		return
	}

	logrus.Infof("postponed next scheduled recalibration by %s", dur)

	c.IndentedJSON(http.StatusCreated, fmt.Sprintf("postponed by %s", dur))
}

// getEvents streams daemon events as SSE until the client disconnects.
func getEvents(c *gin.Context) {
	ch := sseHub.Subscribe()
	defer sseHub.Unsubscribe(ch)

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	clientGone := c.Request.Context().Done()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-clientGone:
			return false
		case ev, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent(ev.Name, string(ev.Data))
			return true
		}
	})
}

func getVersion(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, version.Version)
}
