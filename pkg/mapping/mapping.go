// Package mapping converts calibrated axis readings into normalized stick
// positions in [-1, 1] with a dead zone around center.
package mapping

import (
	"errors"
	"fmt"

	"github.com/ktulhy-kun/ArduinoAnalogJoy/pkg/interval"
)

// ErrDegenerate reports a calibration whose intervals collapse a ramp region
// to zero width. Calibration itself does not validate the shape of the
// intervals it produces, so a bad profile is caught here, at first use.
var ErrDegenerate = errors.New("degenerate calibration interval")

// Axis maps readings on one calibrated axis. travel is the full observed
// range, dead the sub-range mapped to zero.
type Axis struct {
	travel interval.Interval
	dead   interval.Interval
}

// NewAxis validates the interval pair and returns the mapper for one axis.
// Both ramp regions must have non-zero width, otherwise the piecewise law
// below would divide by zero.
func NewAxis(travel, dead interval.Interval) (*Axis, error) {
	if travel.Left == dead.Left {
		return nil, fmt.Errorf("%w: travel.left == deadzone.left (%v)", ErrDegenerate, travel.Left)
	}
	if dead.Right == travel.Right {
		return nil, fmt.Errorf("%w: deadzone.right == travel.right (%v)", ErrDegenerate, travel.Right)
	}
	return &Axis{travel: travel, dead: dead}, nil
}

// Position maps a converted reading to [-1, 1]:
//
//	travel.left   dead.left    dead.right   travel.right
//	     |------------|------------|------------|
//	-1  ramp to 0     |     0      |   ramp to 1   1
//
// Values left of travel clamp to -1, values right of it clamp to 1, values
// inside the dead zone are exactly 0, and the two ramps are linear. The
// mapping is total and monotonically non-decreasing.
func (a *Axis) Position(v float64) float64 {
	switch {
	case v < a.travel.Left:
		return -1
	case v < a.dead.Left:
		return -(v - a.dead.Left) / (a.travel.Left - a.dead.Left)
	case v < a.dead.Right:
		return 0
	case v < a.travel.Right:
		return (v - a.dead.Right) / (a.travel.Right - a.dead.Right)
	default:
		return 1
	}
}
