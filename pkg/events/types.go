package events

import "encoding/json"

// Event name constants
const (
	CalibrationPhase    = "calibration.phase"
	CalibrationProgress = "calibration.progress"
)

// Event is a generic SSE event from the daemon.
type Event struct {
	Name string          // SSE event name
	Data json.RawMessage // Raw JSON payload
}

// CalibrationPhaseEvent is the typed payload for calibration.phase.
type CalibrationPhaseEvent struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Message string `json:"message,omitempty"`
	Ts      int64  `json:"ts"`
}

// CalibrationProgressEvent is the typed payload for calibration.progress.
type CalibrationProgressEvent struct {
	Phase   string `json:"phase"`
	Percent int    `json:"percent"`
	Ts      int64  `json:"ts"`
}

// DecodeAs decodes the event payload into the caller-specified type T. It
// ignores the event name and simply unmarshals Data. Empty Data yields the
// zero value with a nil error.
func DecodeAs[T any](e Event) (T, error) {
	var zero T
	if len(e.Data) == 0 {
		return zero, nil
	}
	var v T
	if err := json.Unmarshal(e.Data, &v); err != nil {
		return zero, err
	}
	return v, nil
}
