// Package joystick owns the serial link to the controller and exposes the
// sample-read capability to the rest of the daemon.
package joystick

import (
	"io"
	"time"

	serial "github.com/jacobsa/go-serial/serial"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/ktulhy-kun/ArduinoAnalogJoy/pkg/protocol"
)

// bootSettle is how long the firmware needs after the port opens. Opening the
// port toggles DTR, which resets the board; the sketch then prints its
// version byte once setup finishes.
const bootSettle = 4 * time.Second

// waitBoot is a seam so tests skip the reset delay.
var waitBoot = func() { time.Sleep(bootSettle) }

// Device is the exclusive owner of one serial port and the codec on top of
// it. There is exactly one reader and one writer, so no locking discipline is
// needed.
type Device struct {
	port  io.ReadWriteCloser
	codec *protocol.Codec
}

// Open opens the serial port at the given speed (8N1), waits out the firmware
// reset, and performs the protocol handshake. A handshake failure is fatal
// and is not retried; the caller gets the port closed back.
func Open(portName string, baudRate uint) (*Device, error) {
	port, err := serial.Open(serial.OpenOptions{
		PortName:        portName,
		BaudRate:        baudRate,
		DataBits:        8,
		StopBits:        1,
		ParityMode:      serial.PARITY_NONE,
		MinimumReadSize: 1,
	})
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to open serial port %s", portName)
	}
	logrus.WithFields(logrus.Fields{
		"port": portName,
		"baud": baudRate,
	}).Info("serial port opened, waiting for firmware boot")

	waitBoot()

	d, err := NewFromStream(port)
	if err != nil {
		_ = port.Close()
		return nil, err
	}
	return d, nil
}

// NewFromStream builds a Device over an already-open stream and performs the
// handshake. Tests use this with an in-memory stream.
func NewFromStream(stream io.ReadWriteCloser) (*Device, error) {
	codec := protocol.NewCodec(stream)
	if err := codec.Handshake(); err != nil {
		return nil, err
	}
	return &Device{port: stream, codec: codec}, nil
}

// ReadSample requests and decodes one sample. The call blocks until the full
// reply is read; transport failures propagate unchanged.
func (d *Device) ReadSample() (protocol.RawSample, error) {
	return d.codec.ReadSample()
}

// Close releases the serial port.
func (d *Device) Close() error {
	return d.port.Close()
}
