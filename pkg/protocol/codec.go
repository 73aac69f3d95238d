// Package protocol implements the request/reply protocol spoken by the
// joystick firmware over the serial byte stream.
//
// The firmware announces itself with a single version byte at link start.
// After that the host drives everything: it writes a one-byte opcode and the
// firmware answers with a fixed-size big-endian sample record. Transport
// failures propagate to the caller; this package never retries.
package protocol

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

const (
	// Version is the protocol marker the firmware must emit at link start.
	Version byte = 'b'

	// opReadSample requests one sample record.
	opReadSample byte = 15

	// sampleSize is the reply size: int16 x, int16 y, int8 xv, int8 yv,
	// uint8 buttons.
	sampleSize = 7
)

// ErrProtocolMismatch is returned by Handshake when the first byte on the
// link is not the expected version marker. It is fatal: the peer is either
// not a joystick or speaks a different protocol revision, and retrying will
// not change that.
var ErrProtocolMismatch = errors.New("joystick protocol version mismatch")

// FramingError reports a reply that ended before the full sample record was
// read. The partial data is never zero-filled into a sample.
type FramingError struct {
	Want int
	Got  int
	Err  error
}

func (e *FramingError) Error() string {
	return fmt.Sprintf("short sample reply: got %d of %d bytes: %v", e.Got, e.Want, e.Err)
}

func (e *FramingError) Unwrap() error { return e.Err }

// RawSample is one decoded sample record. XRaw/YRaw are the raw ADC counts
// used for calibration and position mapping; XVal/YVal are the firmware's own
// coarse readings and are carried but unused by this host.
type RawSample struct {
	XRaw    int16
	YRaw    int16
	XVal    int8
	YVal    int8
	Buttons uint8
}

// Codec frames requests and decodes replies on a byte stream. It holds no
// state besides the stream and is safe to use from exactly one goroutine,
// matching the single-reader ownership of the serial port.
type Codec struct {
	rw io.ReadWriter
}

// NewCodec returns a Codec speaking over rw.
func NewCodec(rw io.ReadWriter) *Codec {
	return &Codec{rw: rw}
}

// Handshake consumes the version byte the firmware sends at link start.
// It must be called once, before any request is written. A wrong byte yields
// ErrProtocolMismatch.
func (c *Codec) Handshake() error {
	var b [1]byte
	if _, err := io.ReadFull(c.rw, b[:]); err != nil {
		return fmt.Errorf("reading protocol version: %w", err)
	}
	if b[0] != Version {
		return fmt.Errorf("%w: got 0x%02x, want 0x%02x", ErrProtocolMismatch, b[0], Version)
	}
	logrus.WithField("version", string(Version)).Debug("joystick handshake ok")
	return nil
}

// ReadSample writes the read-sample opcode and decodes the 7-byte big-endian
// reply. A short reply surfaces as *FramingError.
func (c *Codec) ReadSample() (RawSample, error) {
	var sample RawSample

	if _, err := c.rw.Write([]byte{opReadSample}); err != nil {
		return sample, fmt.Errorf("writing sample request: %w", err)
	}

	buf := make([]byte, sampleSize)
	n, err := io.ReadFull(c.rw, buf)
	if err != nil {
		return sample, &FramingError{Want: sampleSize, Got: n, Err: err}
	}

	if err := binary.Read(bytes.NewReader(buf), binary.BigEndian, &sample); err != nil {
		return sample, fmt.Errorf("decoding sample: %w", err)
	}
	return sample, nil
}
