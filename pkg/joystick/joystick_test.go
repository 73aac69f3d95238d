package joystick

import (
	"bytes"
	"errors"
	"testing"

	"github.com/ktulhy-kun/ArduinoAnalogJoy/pkg/protocol"
)

type fakePort struct {
	replies  bytes.Buffer
	requests bytes.Buffer
	closed   bool
}

func (p *fakePort) Read(b []byte) (int, error)  { return p.replies.Read(b) }
func (p *fakePort) Write(b []byte) (int, error) { return p.requests.Write(b) }
func (p *fakePort) Close() error                { p.closed = true; return nil }

func TestNewFromStreamHandshakes(t *testing.T) {
	p := &fakePort{}
	p.replies.WriteByte('b')
	p.replies.Write([]byte{0x01, 0xF4, 0x02, 0x00, 0, 0, 0x05})

	d, err := NewFromStream(p)
	if err != nil {
		t.Fatalf("NewFromStream failed: %v", err)
	}

	s, err := d.ReadSample()
	if err != nil {
		t.Fatalf("ReadSample failed: %v", err)
	}
	if s.XRaw != 500 || s.YRaw != 512 || s.Buttons != 0x05 {
		t.Errorf("sample = %+v, want x=500 y=512 buttons=0x05", s)
	}
}

func TestNewFromStreamRejectsWrongVersion(t *testing.T) {
	p := &fakePort{}
	p.replies.WriteByte('a')

	if _, err := NewFromStream(p); !errors.Is(err, protocol.ErrProtocolMismatch) {
		t.Fatalf("got %v, want ErrProtocolMismatch", err)
	}
}

func TestClose(t *testing.T) {
	p := &fakePort{}
	p.replies.WriteByte('b')

	d, err := NewFromStream(p)
	if err != nil {
		t.Fatal(err)
	}
	if err := d.Close(); err != nil {
		t.Fatal(err)
	}
	if !p.closed {
		t.Error("Close did not release the port")
	}
}
