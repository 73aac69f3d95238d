package client

import (
	"encoding/json"
	"strconv"
	"time"

	pkgerrors "github.com/pkg/errors"

	"github.com/ktulhy-kun/ArduinoAnalogJoy/pkg/calibration"
	"github.com/ktulhy-kun/ArduinoAnalogJoy/pkg/config"
	"github.com/ktulhy-kun/ArduinoAnalogJoy/pkg/translator"
	"github.com/ktulhy-kun/ArduinoAnalogJoy/pkg/types"
)

func (c *Client) GetConfig() (*config.RawFileConfig, error) {
	ret, err := c.Get("/config")
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to get config")
	}

	var conf config.RawFileConfig
	if err := json.Unmarshal([]byte(ret), &conf); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal config")
	}

	return &conf, nil
}

func (c *Client) GetStatus() (*types.Status, error) {
	ret, err := c.Get("/status")
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to get status")
	}

	var st types.Status
	if err := json.Unmarshal([]byte(ret), &st); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal status")
	}

	return &st, nil
}

func (c *Client) GetProfile() (*calibration.Profile, error) {
	ret, err := c.Get("/profile")
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to get profile")
	}

	var p calibration.Profile
	if err := json.Unmarshal([]byte(ret), &p); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal profile")
	}

	return &p, nil
}

func (c *Client) StartCalibration() (string, error) {
	return c.Post("/calibrate", "")
}

func (c *Client) SetMode(m translator.Mode) (string, error) {
	return c.Put("/mode", strconv.Quote(string(m)))
}

func (c *Client) SetScreenSize(width, height int) (string, error) {
	payload, err := json.Marshal(map[string]int{"width": width, "height": height})
	if err != nil {
		return "", err
	}
	return c.Put("/screen-size", string(payload))
}

func (c *Client) SetSampleCount(n int) (string, error) {
	return c.Put("/sample-count", strconv.Itoa(n))
}

// Schedule sets the recalibration cron expression. An empty expression
// disables the schedule.
func (c *Client) Schedule(cronExpr string) (string, error) {
	return c.Put("/schedule", strconv.Quote(cronExpr))
}

func (c *Client) SkipSchedule() (string, error) {
	return c.Post("/schedule/skip", "")
}

func (c *Client) PostponeSchedule(d time.Duration) (string, error) {
	return c.Post("/schedule/postpone", strconv.Quote(d.String()))
}

func (c *Client) GetVersion() (string, error) {
	ret, err := c.Get("/version")
	if err != nil {
		return "", pkgerrors.Wrapf(err, "failed to get version")
	}
	// Remove "" around JSON string. I don't want to use a JSON decoder just for this.
	if len(ret) >= 2 && ret[0] == '"' {
		ret = ret[1 : len(ret)-1]
	}
	return ret, nil
}
