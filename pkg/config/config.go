package config

import (
	"github.com/sirupsen/logrus"

	"github.com/ktulhy-kun/ArduinoAnalogJoy/pkg/translator"
)

// Config is what the daemon consumes. The file-backed implementation lives in
// this package; tests substitute their own.
type Config interface {
	Port() string
	BaudRate() uint
	ProfilePath() string
	Mode() translator.Mode
	ScreenWidth() int
	ScreenHeight() int
	SampleCount() int
	PollInterval() int // milliseconds
	RecalibrateCron() string

	SetMode(translator.Mode)
	SetScreenSize(w, h int)
	SetSampleCount(int)
	SetRecalibrateCron(string)

	LogrusFields() logrus.Fields

	// Load reads the configuration from the source.
	Load() error
	// Save saves the configuration to the source.
	Save() error
}
