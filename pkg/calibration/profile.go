package calibration

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/ktulhy-kun/ArduinoAnalogJoy/pkg/interval"
)

var (
	// ErrProfileMissing reports an absent profile file. The caller recovers
	// by running a full calibration; this is never fatal.
	ErrProfileMissing = errors.New("calibration profile missing")

	// ErrProfileCorrupt reports unparsable profile content. Recovered the
	// same way as a missing profile.
	ErrProfileCorrupt = errors.New("calibration profile corrupt")
)

// Profile holds the five calibration quantities for both axes, all in
// post-conversion (physical) units. It is built once by the Engine, persisted,
// and read-only during normal operation.
type Profile struct {
	CenterX float64 `json:"centerX"`
	CenterY float64 `json:"centerY"`

	// Dead-zone bounds: the converted min/max observed while the stick
	// rested at center. CenterX/CenterY are converted means, so they are not
	// guaranteed to sit inside these intervals.
	CenterXInterval interval.Interval `json:"centerXInterval"`
	CenterYInterval interval.Interval `json:"centerYInterval"`

	// Full travel bounds from the range sweep.
	XInterval interval.Interval `json:"xInterval"`
	YInterval interval.Interval `json:"yInterval"`
}

// Save writes the profile in its 5-line text form:
//
//	center_x center_y
//	center_x_interval.left center_x_interval.right
//	center_y_interval.left center_y_interval.right
//	x_interval.left x_interval.right
//	y_interval.left y_interval.right
func (p *Profile) Save(path string) error {
	lines := []string{
		strconv.FormatFloat(p.CenterX, 'g', -1, 64) + " " + strconv.FormatFloat(p.CenterY, 'g', -1, 64),
		p.CenterXInterval.String(),
		p.CenterYInterval.String(),
		p.XInterval.String(),
		p.YInterval.String(),
	}
	body := strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		return pkgerrors.Wrapf(err, "failed to write profile %s", path)
	}
	logrus.WithField("path", path).Info("calibration profile saved")
	return nil
}

// LoadProfile reads a profile back from its text form. Absence maps to
// ErrProfileMissing, any malformed content to ErrProfileCorrupt.
func LoadProfile(path string) (*Profile, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrProfileMissing
		}
		return nil, pkgerrors.Wrapf(err, "failed to read profile %s", path)
	}

	lines := strings.Split(strings.TrimRight(string(b), "\n"), "\n")
	if len(lines) < 5 {
		return nil, fmt.Errorf("%w: expected 5 lines, got %d", ErrProfileCorrupt, len(lines))
	}

	centers := strings.Fields(lines[0])
	if len(centers) != 2 {
		return nil, fmt.Errorf("%w: bad center line %q", ErrProfileCorrupt, lines[0])
	}
	cx, err := strconv.ParseFloat(centers[0], 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProfileCorrupt, err)
	}
	cy, err := strconv.ParseFloat(centers[1], 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProfileCorrupt, err)
	}

	intervals := make([]interval.Interval, 4)
	for n, line := range lines[1:5] {
		in, err := interval.Parse(line)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrProfileCorrupt, n+2, err)
		}
		intervals[n] = in
	}

	return &Profile{
		CenterX:         cx,
		CenterY:         cy,
		CenterXInterval: intervals[0],
		CenterYInterval: intervals[1],
		XInterval:       intervals[2],
		YInterval:       intervals[3],
	}, nil
}
