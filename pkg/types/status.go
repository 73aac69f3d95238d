// Package types holds the JSON shapes shared between the daemon and its
// clients.
package types

import (
	"time"

	"github.com/ktulhy-kun/ArduinoAnalogJoy/pkg/calibration"
	"github.com/ktulhy-kun/ArduinoAnalogJoy/pkg/translator"
)

// Status is the daemon status view served on GET /status.
type Status struct {
	Port         string          `json:"port"`
	BaudRate     uint            `json:"baudRate"`
	Mode         translator.Mode `json:"mode"`
	ScreenWidth  int             `json:"screenWidth"`
	ScreenHeight int             `json:"screenHeight"`

	Calibrated  bool                `json:"calibrated"`
	Calibration *calibration.Status `json:"calibration,omitempty"`

	// ScheduledAt is the next scheduled recalibration, zero when disabled.
	ScheduledAt time.Time `json:"scheduledAt,omitempty"`
}
