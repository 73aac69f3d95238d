package calibration

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ktulhy-kun/ArduinoAnalogJoy/pkg/adc"
	"github.com/ktulhy-kun/ArduinoAnalogJoy/pkg/interval"
	"github.com/ktulhy-kun/ArduinoAnalogJoy/pkg/protocol"
)

// DefaultSampleCount is the number of samples taken per phase.
const DefaultSampleCount = 500

// settleDelay gives the operator time to move the stick before sampling
// starts. It exists purely for the human, not for the hardware.
const settleDelay = 4 * time.Second

// settle is a seam so tests run without wall-clock delays.
var settle = func(d time.Duration) { time.Sleep(d) }

// Sampler is the read capability the engine drives. *protocol.Codec and the
// joystick device both satisfy it.
type Sampler interface {
	ReadSample() (protocol.RawSample, error)
}

// Engine runs the two-phase sampling procedure. It is single-shot: build one,
// run it, keep the profile.
type Engine struct {
	sampler Sampler
	convert adc.ConvertFunc
	count   int

	// OnPhase, if set, is called on every phase transition.
	OnPhase func(from, to Phase)
	// OnProgress, if set, is called when the sample index crosses a
	// whole-percent boundary. Progress reporting is disabled for counts
	// below 100 (the percent modulus would be zero).
	OnProgress func(phase Phase, percent int)

	phase Phase
}

// NewEngine returns an engine sampling count times per phase through sampler,
// converting raw counts with convert. A non-positive count falls back to
// DefaultSampleCount.
func NewEngine(sampler Sampler, convert adc.ConvertFunc, count int) *Engine {
	if count <= 0 {
		count = DefaultSampleCount
	}
	return &Engine{
		sampler: sampler,
		convert: convert,
		count:   count,
		phase:   PhaseIdle,
	}
}

// Phase returns the engine's current phase.
func (e *Engine) Phase() Phase {
	return e.phase
}

// Run executes the full procedure and returns the finished profile. Bad data
// never fails a run; only a transport error does, in which case no profile is
// returned and nothing must be persisted.
func (e *Engine) Run() (*Profile, error) {
	logrus.WithField("samples", e.count).Info("starting calibration")

	// Seed every interval with one real sample so the first Extend compares
	// against an actual observation.
	seed, err := e.sampler.ReadSample()
	if err != nil {
		e.transition(PhaseError)
		return nil, fmt.Errorf("reading seed sample: %w", err)
	}
	x0 := float64(seed.XRaw)
	y0 := float64(seed.YRaw)

	p := &Profile{
		CenterXInterval: interval.New(x0),
		CenterYInterval: interval.New(y0),
		XInterval:       interval.New(x0),
		YInterval:       interval.New(y0),
	}

	// Phase 1: the stick rests at center. The transition is announced before
	// the settle window so the operator gets the instruction with the full
	// reaction time still ahead.
	e.transition(PhaseCenteringAverage)
	logrus.Infof("put the stick at center; sampling starts in %s", settleDelay)
	settle(settleDelay)

	var sumX, sumY float64
	for i := 0; i < e.count; i++ {
		s, err := e.sampler.ReadSample()
		if err != nil {
			e.transition(PhaseError)
			return nil, fmt.Errorf("centering sample %d: %w", i, err)
		}
		x := float64(s.XRaw)
		y := float64(s.YRaw)

		sumX += x
		sumY += y
		p.CenterXInterval.Extend(x)
		p.CenterYInterval.Extend(y)
		e.progress(i)
	}

	e.transition(PhaseCenteringRange)
	p.CenterX = e.convert(sumX / float64(e.count))
	p.CenterY = e.convert(sumY / float64(e.count))
	p.CenterXInterval.ApplyMonotonic(e.convert)
	p.CenterYInterval.ApplyMonotonic(e.convert)

	logrus.WithFields(logrus.Fields{
		"centerX":   p.CenterX,
		"centerY":   p.CenterY,
		"deadZoneX": p.CenterXInterval.String(),
		"deadZoneY": p.CenterYInterval.String(),
	}).Info("center phase complete")

	// Phase 2: the operator sweeps the stick through its full range. Again
	// announced before the settle window.
	e.transition(PhaseTravelRange)
	logrus.Infof("sweep the stick up-down-left-right; sampling starts in %s", settleDelay)
	settle(settleDelay)

	for i := 0; i < e.count; i++ {
		s, err := e.sampler.ReadSample()
		if err != nil {
			e.transition(PhaseError)
			return nil, fmt.Errorf("travel sample %d: %w", i, err)
		}
		p.XInterval.Extend(float64(s.XRaw))
		p.YInterval.Extend(float64(s.YRaw))
		e.progress(i)
	}

	p.XInterval.ApplyMonotonic(e.convert)
	p.YInterval.ApplyMonotonic(e.convert)

	e.transition(PhaseDone)
	logrus.WithFields(logrus.Fields{
		"travelX": p.XInterval.String(),
		"travelY": p.YInterval.String(),
	}).Info("calibration complete")

	return p, nil
}

func (e *Engine) transition(to Phase) {
	from := e.phase
	e.phase = to
	if e.OnPhase != nil {
		e.OnPhase(from, to)
	}
}

func (e *Engine) progress(i int) {
	if e.OnProgress == nil {
		return
	}
	step := e.count / 100
	if step == 0 {
		// Counts below 100 cannot report whole percents; a zero modulus
		// would panic, so progress is simply disabled.
		return
	}
	if i%step == 0 {
		e.OnProgress(e.phase, i*100/e.count)
	}
}
