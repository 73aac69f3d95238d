package config

import (
	"encoding/json"
	"io"
	"os"
	"strings"
	"sync"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/ktulhy-kun/ArduinoAnalogJoy/pkg/calibration"
	"github.com/ktulhy-kun/ArduinoAnalogJoy/pkg/translator"
	"github.com/ktulhy-kun/ArduinoAnalogJoy/pkg/utils/ptr"
)

var defaultFileConfig = &RawFileConfig{
	Port:            ptr.To("/dev/ttyUSB0"),
	BaudRate:        ptr.To(uint(9600)),
	ProfilePath:     ptr.To(""),
	Mode:            ptr.To(string(translator.ModeRelative)),
	ScreenWidth:     ptr.To(1920),
	ScreenHeight:    ptr.To(1080),
	SampleCount:     ptr.To(calibration.DefaultSampleCount),
	PollIntervalMS:  ptr.To(10),
	RecalibrateCron: ptr.To(""),
}

var _ Config = &File{}

// File is the JSON-file-backed Config. Unset fields fall back to package
// defaults, so an empty or missing file yields a fully usable configuration.
type File struct {
	c        *RawFileConfig
	mu       *sync.RWMutex
	filepath string
}

// RawFileConfig is the on-disk shape. Pointer fields distinguish "unset" from
// zero values.
type RawFileConfig struct {
	Port            *string `json:"port,omitempty"`
	BaudRate        *uint   `json:"baudRate,omitempty"`
	ProfilePath     *string `json:"profilePath,omitempty"`
	Mode            *string `json:"mode,omitempty"`
	ScreenWidth     *int    `json:"screenWidth,omitempty"`
	ScreenHeight    *int    `json:"screenHeight,omitempty"`
	SampleCount     *int    `json:"sampleCount,omitempty"`
	PollIntervalMS  *int    `json:"pollIntervalMS,omitempty"`
	RecalibrateCron *string `json:"recalibrateCron,omitempty"`
}

// NewRawFileConfigFromConfig snapshots the effective values of any Config
// into the on-disk shape, mainly for the GET /config API.
func NewRawFileConfigFromConfig(c Config) (*RawFileConfig, error) {
	if c == nil {
		return nil, pkgerrors.New("config is nil")
	}
	return &RawFileConfig{
		Port:            ptr.To(c.Port()),
		BaudRate:        ptr.To(c.BaudRate()),
		ProfilePath:     ptr.To(c.ProfilePath()),
		Mode:            ptr.To(string(c.Mode())),
		ScreenWidth:     ptr.To(c.ScreenWidth()),
		ScreenHeight:    ptr.To(c.ScreenHeight()),
		SampleCount:     ptr.To(c.SampleCount()),
		PollIntervalMS:  ptr.To(c.PollInterval()),
		RecalibrateCron: ptr.To(c.RecalibrateCron()),
	}, nil
}

// NewFile loads (or initializes) the config at configPath.
func NewFile(configPath string) (*File, error) {
	f := &File{
		filepath: configPath,
		mu:       &sync.RWMutex{},
	}
	if err := f.Load(); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *File) Port() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.c.Port != nil {
		return *f.c.Port
	}
	return *defaultFileConfig.Port
}

func (f *File) BaudRate() uint {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.c.BaudRate != nil {
		return *f.c.BaudRate
	}
	return *defaultFileConfig.BaudRate
}

func (f *File) ProfilePath() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.c.ProfilePath != nil {
		return *f.c.ProfilePath
	}
	return *defaultFileConfig.ProfilePath
}

func (f *File) Mode() translator.Mode {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.c.Mode != nil {
		return translator.Mode(*f.c.Mode)
	}
	return translator.Mode(*defaultFileConfig.Mode)
}

func (f *File) ScreenWidth() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.c.ScreenWidth != nil {
		return *f.c.ScreenWidth
	}
	return *defaultFileConfig.ScreenWidth
}

func (f *File) ScreenHeight() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.c.ScreenHeight != nil {
		return *f.c.ScreenHeight
	}
	return *defaultFileConfig.ScreenHeight
}

func (f *File) SampleCount() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.c.SampleCount != nil {
		return *f.c.SampleCount
	}
	return *defaultFileConfig.SampleCount
}

func (f *File) PollInterval() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.c.PollIntervalMS != nil {
		return *f.c.PollIntervalMS
	}
	return *defaultFileConfig.PollIntervalMS
}

func (f *File) RecalibrateCron() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.c.RecalibrateCron != nil {
		return *f.c.RecalibrateCron
	}
	return *defaultFileConfig.RecalibrateCron
}

func (f *File) SetMode(m translator.Mode) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.Mode = ptr.To(string(m))
}

func (f *File) SetScreenSize(w, h int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.ScreenWidth = &w
	f.c.ScreenHeight = &h
}

func (f *File) SetSampleCount(n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.SampleCount = &n
}

func (f *File) SetRecalibrateCron(expr string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.RecalibrateCron = &expr
}

// Load reads the file. A missing or empty file yields the empty raw config,
// which resolves everything through defaults.
func (f *File) Load() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	fp, err := os.Open(f.filepath)
	if err != nil {
		if os.IsNotExist(err) {
			f.c = &RawFileConfig{}
			return nil
		}
		return pkgerrors.Wrapf(err, "failed to open file %s", f.filepath)
	}
	defer func(fp *os.File) {
		if err := fp.Close(); err != nil {
			logrus.Warnf("failed to close file %s", f.filepath)
		}
	}(fp)

	b, err := io.ReadAll(fp)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to read file %s", f.filepath)
	}

	if strings.TrimSpace(string(b)) == "" {
		f.c = &RawFileConfig{}
		return nil
	}

	conf := RawFileConfig{}
	if err := json.Unmarshal(b, &conf); err != nil {
		return pkgerrors.Wrapf(err, "failed to unmarshal config from file %s", f.filepath)
	}
	f.c = &conf

	return nil
}

// Save writes the file, creating it if needed.
func (f *File) Save() error {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c == nil {
		return pkgerrors.New("config is nil")
	}

	fp, err := os.OpenFile(f.filepath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to open file %s", f.filepath)
	}
	defer func(fp *os.File) {
		if err := fp.Close(); err != nil {
			logrus.Warnf("failed to close file %s", f.filepath)
		}
	}(fp)

	enc := json.NewEncoder(fp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(f.c); err != nil {
		return pkgerrors.Wrapf(err, "failed to encode config to file %s", f.filepath)
	}

	return nil
}

// LogrusFields renders the effective configuration for startup logging.
func (f *File) LogrusFields() logrus.Fields {
	return logrus.Fields{
		"port":            f.Port(),
		"baudRate":        f.BaudRate(),
		"profilePath":     f.ProfilePath(),
		"mode":            f.Mode(),
		"screenWidth":     f.ScreenWidth(),
		"screenHeight":    f.ScreenHeight(),
		"sampleCount":     f.SampleCount(),
		"pollIntervalMS":  f.PollInterval(),
		"recalibrateCron": f.RecalibrateCron(),
	}
}
