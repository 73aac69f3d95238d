// Package interval provides the closed numeric range used to track the
// electrical bounds of a joystick axis during calibration.
package interval

import (
	"fmt"
	"strconv"
	"strings"

	pkgerrors "github.com/pkg/errors"
)

// Interval is a closed range [Left, Right]. It is always seeded with a real
// sample (a single-point range), never an empty sentinel, so the first Extend
// compares against an actual observation.
type Interval struct {
	Left  float64 `json:"left"`
	Right float64 `json:"right"`
}

// New returns a single-point interval at v.
func New(v float64) Interval {
	return Interval{Left: v, Right: v}
}

// Of returns the interval with bounds (left, right), normalized so that
// Left <= Right.
func Of(left, right float64) Interval {
	if left > right {
		left, right = right, left
	}
	return Interval{Left: left, Right: right}
}

// Extend widens the interval to include v. Extending with a value already
// inside the range is a no-op.
func (i *Interval) Extend(v float64) {
	if v < i.Left {
		i.Left = v
	}
	if v > i.Right {
		i.Right = v
	}
}

// Contains reports whether v lies inside [Left, Right].
func (i Interval) Contains(v float64) bool {
	return v >= i.Left && v <= i.Right
}

// Width returns Right - Left.
func (i Interval) Width() float64 {
	return i.Right - i.Left
}

// ApplyMonotonic replaces both bounds with f(bound) and re-normalizes them as
// (min, max). The transform must be monotonic but may be decreasing, in which
// case the bounds swap.
func (i *Interval) ApplyMonotonic(f func(float64) float64) {
	left := f(i.Left)
	right := f(i.Right)
	if left > right {
		left, right = right, left
	}
	i.Left = left
	i.Right = right
}

// String renders the interval in its persisted text form: two space-separated
// floats, "left right".
func (i Interval) String() string {
	return formatFloat(i.Left) + " " + formatFloat(i.Right)
}

// Parse reads an interval from its text form. The bounds are taken verbatim;
// no re-normalization happens here, a persisted interval is already sorted.
func Parse(s string) (Interval, error) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return Interval{}, fmt.Errorf("expected 2 fields, got %d in %q", len(fields), s)
	}
	left, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return Interval{}, pkgerrors.Wrapf(err, "bad left bound %q", fields[0])
	}
	right, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return Interval{}, pkgerrors.Wrapf(err, "bad right bound %q", fields[1])
	}
	return Interval{Left: left, Right: right}, nil
}

// formatFloat renders v with the minimal number of digits that survives a
// round-trip through ParseFloat bit-identically.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
