// Package translator turns mapped stick positions and button masks into the
// ordered action token lists dispatched to the input injector.
package translator

import (
	"strconv"
)

// Mode selects how stick positions become mouse movement.
type Mode string

const (
	// ModeRelative emits cursor deltas with a cubic response curve: fine
	// control near center, fast movement at the extremes.
	ModeRelative Mode = "relative"
	// ModeAbsolute emits cursor coordinates scaled to the screen size.
	ModeAbsolute Mode = "absolute"
)

// Kind tags a binding as a keyboard key or a mouse button.
type Kind string

const (
	KindKey   Kind = "key"
	KindMouse Kind = "mouse"
)

// Binding associates one bit of the button mask with a symbolic action.
type Binding struct {
	Bit    uint
	Kind   Kind
	Symbol string
}

// DefaultBindings is the fixed association table of the stock controller:
// four directional keys on bits 0-3 and two mouse buttons on bits 5-6.
// Bits outside the table are ignored. The table never changes after startup.
var DefaultBindings = []Binding{
	{Bit: 0, Kind: KindKey, Symbol: "Right"},
	{Bit: 1, Kind: KindKey, Symbol: "Up"},
	{Bit: 2, Kind: KindKey, Symbol: "Left"},
	{Bit: 3, Kind: KindKey, Symbol: "Down"},
	{Bit: 5, Kind: KindMouse, Symbol: "3"},
	{Bit: 6, Kind: KindMouse, Symbol: "1"},
}

// relativeGain and the cubic exponent preserve the stock response curve:
// position*10, cubed, truncated.
const relativeGain = 10

// Translator converts one (x, y, buttons) reading into action tokens and
// tracks button edges across calls. It is owned by the poll loop and is not
// safe for concurrent use.
type Translator struct {
	mode     Mode
	screenW  int
	screenH  int
	bindings []Binding
	prevMask uint8
}

// New returns a Translator. screenW/screenH are only consulted in absolute
// mode.
func New(mode Mode, screenW, screenH int) *Translator {
	return &Translator{
		mode:     mode,
		screenW:  screenW,
		screenH:  screenH,
		bindings: DefaultBindings,
	}
}

// Translate returns the ordered token list for one reading: movement tokens
// first (if any), then button press/release tokens in table order. An empty
// result means nothing should be dispatched.
func (t *Translator) Translate(x, y float64, mask uint8) []string {
	tokens := t.mouse(x, y)
	tokens = append(tokens, t.buttons(mask)...)
	return tokens
}

// mouse builds the movement tokens for the mapped positions.
func (t *Translator) mouse(x, y float64) []string {
	var cmd string
	var px, py int

	switch t.mode {
	case ModeAbsolute:
		cmd = "mousemove"
		px = scaleAbsolute(x, t.screenW)
		py = scaleAbsolute(y, t.screenH)
	default:
		cmd = "mousemove_relative"
		px = cube(x)
		py = cube(y)
		// A reading that truncates to (0, 0) emits nothing; zero-delta
		// events would still wake the injector for no visible effect.
		if px == 0 && py == 0 {
			return nil
		}
	}

	return []string{cmd, "--", strconv.Itoa(px), strconv.Itoa(py)}
}

// cube applies the relative-mode response: gain, cubic curve, truncation.
func cube(pos float64) int {
	v := pos * relativeGain
	return int(v * v * v)
}

// scaleAbsolute maps a position in [-1, 1] onto pixel coordinates [0, size-1].
func scaleAbsolute(pos float64, size int) int {
	if size <= 0 {
		return 0
	}
	return int((pos + 1) / 2 * float64(size-1))
}

// buttons diffs the new mask against the previous one and emits press/release
// tokens for every bound bit that changed. The stored mask is replaced
// unconditionally, including bits outside the table.
func (t *Translator) buttons(mask uint8) []string {
	var tokens []string
	for _, b := range t.bindings {
		newBit := mask >> b.Bit & 1
		oldBit := t.prevMask >> b.Bit & 1
		if newBit == oldBit {
			continue
		}
		verb := "up"
		if newBit == 1 {
			verb = "down"
		}
		tokens = append(tokens, string(b.Kind)+verb, b.Symbol)
	}
	t.prevMask = mask
	return tokens
}
