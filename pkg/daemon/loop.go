package daemon

import (
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ktulhy-kun/ArduinoAnalogJoy/pkg/calibration"
	"github.com/ktulhy-kun/ArduinoAnalogJoy/pkg/mapping"
	"github.com/ktulhy-kun/ArduinoAnalogJoy/pkg/protocol"
	"github.com/ktulhy-kun/ArduinoAnalogJoy/pkg/translator"
)

// maxConsecutiveFailures is how many framing errors in a row the loop
// tolerates before giving up on the link.
const maxConsecutiveFailures = 20

var (
	// stateMu guards everything below. The poll loop is the only writer of
	// the sample path; handlers read and occasionally swap the translator.
	stateMu sync.Mutex
	profile *calibration.Profile
	axisX   *mapping.Axis
	axisY   *mapping.Axis
	trans   *translator.Translator

	// calibrateCh carries at most one pending recalibration request into the
	// loop goroutine, which owns the device.
	calibrateCh = make(chan struct{}, 1)
)

// requestCalibration queues a recalibration for the loop goroutine. It fails
// when one is already queued or running.
func requestCalibration() error {
	if calibrationActive() {
		return ErrCalibrationInProgress
	}
	select {
	case calibrateCh <- struct{}{}:
		return nil
	default:
		return ErrCalibrationInProgress
	}
}

// applyConfig rebuilds the translator from the current config. Called at
// startup, after config changes, and on SIGHUP.
func applyConfig() {
	stateMu.Lock()
	defer stateMu.Unlock()
	trans = translator.New(conf.Mode(), conf.ScreenWidth(), conf.ScreenHeight())
}

// installProfile swaps in a freshly built or loaded profile. A degenerate
// profile is rejected here, at first use: calibration never validates the
// shape of the intervals it produces.
func installProfile(p *calibration.Profile) error {
	x, err := mapping.NewAxis(p.XInterval, p.CenterXInterval)
	if err != nil {
		return err
	}
	y, err := mapping.NewAxis(p.YInterval, p.CenterYInterval)
	if err != nil {
		return err
	}

	stateMu.Lock()
	profile = p
	axisX = x
	axisY = y
	stateMu.Unlock()
	return nil
}

// pollLoop drives the device until stopCh closes. All device I/O happens
// here: the loop goroutine is the single reader and writer of the serial
// port, and calibration requests are served between steps.
func pollLoop(stopCh <-chan struct{}) {
	failures := 0
	for {
		select {
		case <-stopCh:
			return
		case <-calibrateCh:
			if err := runCalibration(); err != nil {
				logrus.WithError(err).Error("recalibration failed")
			}
			continue
		default:
		}

		if err := step(); err != nil {
			var fe *protocol.FramingError
			if !errors.As(err, &fe) {
				logrus.WithError(err).Error("sample round-trip failed, stopping loop")
				return
			}
			failures++
			logrus.WithError(err).WithField("consecutive", failures).Warn("framing error")
			if failures >= maxConsecutiveFailures {
				logrus.Errorf("%d consecutive framing errors, giving up on the link", failures)
				return
			}
		} else {
			failures = 0
		}

		time.Sleep(time.Duration(conf.PollInterval()) * time.Millisecond)
	}
}

// step performs one sample round-trip: read, map, translate, dispatch.
func step() error {
	s, err := devReadSample()
	if err != nil {
		return err
	}

	stateMu.Lock()
	x := axisX
	y := axisY
	tr := trans
	stateMu.Unlock()

	posX := x.Position(convert(float64(s.XRaw)))
	posY := y.Position(convert(float64(s.YRaw)))

	tokens := tr.Translate(posX, posY, s.Buttons)
	if len(tokens) == 0 {
		return nil
	}

	if err := injectActions(tokens); err != nil {
		// Injection failures are not transport failures: log and move on.
		logrus.WithError(err).WithField("actions", tokens).Warn("failed to inject actions")
	}
	return nil
}
