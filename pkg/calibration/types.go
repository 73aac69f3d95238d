// Package calibration builds the per-axis range profile for a joystick by
// sampling the stick at rest and through a full sweep.
package calibration

import "time"

// Phase identifies where a calibration session currently is.
type Phase string

const (
	PhaseIdle Phase = "Idle"
	// PhaseCenteringAverage samples the resting stick, accumulating axis
	// sums and widening the dead-zone intervals.
	PhaseCenteringAverage Phase = "CenteringAverage"
	// PhaseCenteringRange turns the accumulated sums into the converted
	// center estimate and converts the dead-zone bounds.
	PhaseCenteringRange Phase = "CenteringRange"
	// PhaseTravelRange samples the full-range sweep and converts the travel
	// bounds.
	PhaseTravelRange Phase = "TravelRange"
	PhaseDone        Phase = "Done"
	PhaseError       Phase = "Error"
)

// Status is the view model exposed over the daemon API while a calibration
// session runs.
type Status struct {
	Phase     Phase     `json:"phase"`
	Percent   int       `json:"percent"`
	StartedAt time.Time `json:"startedAt,omitempty"`
	Message   string    `json:"message,omitempty"`
}
