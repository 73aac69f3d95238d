package daemon

import (
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ktulhy-kun/ArduinoAnalogJoy/pkg/calibration"
	"github.com/ktulhy-kun/ArduinoAnalogJoy/pkg/protocol"
)

var ErrCalibrationInProgress = &calibrationError{"calibration already in progress"}

type calibrationError struct{ msg string }

func (e *calibrationError) Error() string { return e.msg }

var (
	calibrationMu     sync.Mutex
	calibrating       bool
	calibrationStatus = calibration.Status{Phase: calibration.PhaseIdle}
)

// samplerFunc adapts the device read seam to the engine's Sampler interface.
type samplerFunc func() (protocol.RawSample, error)

func (f samplerFunc) ReadSample() (protocol.RawSample, error) { return f() }

func calibrationActive() bool {
	calibrationMu.Lock()
	defer calibrationMu.Unlock()
	return calibrating
}

func getCalibrationStatus() calibration.Status {
	calibrationMu.Lock()
	defer calibrationMu.Unlock()
	return calibrationStatus
}

// loadOrCalibrate loads the persisted profile, falling back to a guided
// calibration when it is missing or corrupt (logged, never fatal). An empty
// profile path always calibrates: there is nothing to load and nothing will
// be saved.
func loadOrCalibrate() error {
	path := conf.ProfilePath()
	if path != "" {
		p, err := calibration.LoadProfile(path)
		if err == nil {
			logrus.WithField("path", path).Info("calibration profile loaded")
			if err := installProfile(p); err != nil {
				// Degenerate intervals are a configuration error, reported
				// distinctly instead of triggering a silent recalibration.
				return fmt.Errorf("persisted profile is unusable: %w", err)
			}
			applyConfig()
			return nil
		}
		logrus.WithError(err).Warn("calibration profile unavailable, starting guided calibration")
	}

	if err := runCalibration(); err != nil {
		return fmt.Errorf("initial calibration failed: %w", err)
	}
	applyConfig()
	return nil
}

// runCalibration executes one calibration session on the calling goroutine,
// which must be the device owner. The profile is persisted only on success.
func runCalibration() error {
	calibrationMu.Lock()
	calibrating = true
	calibrationStatus = calibration.Status{
		Phase:     calibration.PhaseIdle,
		StartedAt: time.Now(),
	}
	calibrationMu.Unlock()
	defer func() {
		calibrationMu.Lock()
		calibrating = false
		calibrationMu.Unlock()
	}()

	engine := calibration.NewEngine(samplerFunc(devReadSample), convert, conf.SampleCount())
	engine.OnPhase = func(from, to calibration.Phase) {
		calibrationMu.Lock()
		calibrationStatus.Phase = to
		calibrationStatus.Percent = 0
		calibrationMu.Unlock()

		sseHub.PublishPhase(string(from), string(to), phaseMessage(to))
		logrus.WithFields(logrus.Fields{
			"from": from,
			"to":   to,
		}).Info("calibration phase")
	}
	engine.OnProgress = func(phase calibration.Phase, percent int) {
		calibrationMu.Lock()
		calibrationStatus.Percent = percent
		calibrationMu.Unlock()

		sseHub.PublishProgress(string(phase), percent)
	}

	p, err := engine.Run()
	if err != nil {
		calibrationMu.Lock()
		calibrationStatus.Phase = calibration.PhaseError
		calibrationStatus.Message = err.Error()
		calibrationMu.Unlock()
		return err
	}

	if err := installProfile(p); err != nil {
		calibrationMu.Lock()
		calibrationStatus.Phase = calibration.PhaseError
		calibrationStatus.Message = err.Error()
		calibrationMu.Unlock()
		return err
	}

	if path := conf.ProfilePath(); path != "" {
		if err := p.Save(path); err != nil {
			// The profile is installed and working; a failed save only
			// costs a recalibration on next startup.
			logrus.WithError(err).Error("failed to persist calibration profile")
		}
	}

	return nil
}

func phaseMessage(p calibration.Phase) string {
	switch p {
	case calibration.PhaseCenteringAverage:
		return "Hold the stick at center"
	case calibration.PhaseCenteringRange:
		return "Center measured"
	case calibration.PhaseTravelRange:
		return "Sweep the stick through its full range"
	case calibration.PhaseDone:
		return "Calibration complete"
	}
	return ""
}
