package protocol

import (
	"bytes"
	"errors"
	"testing"
)

// pipe is an in-memory stream: reads come from the reply buffer, writes land
// in the request buffer.
type pipe struct {
	replies  bytes.Buffer
	requests bytes.Buffer
}

func (p *pipe) Read(b []byte) (int, error)  { return p.replies.Read(b) }
func (p *pipe) Write(b []byte) (int, error) { return p.requests.Write(b) }

func TestHandshake(t *testing.T) {
	p := &pipe{}
	p.replies.WriteByte('b')

	c := NewCodec(p)
	if err := c.Handshake(); err != nil {
		t.Fatalf("Handshake failed: %v", err)
	}
	if p.requests.Len() != 0 {
		t.Errorf("handshake wrote %d bytes, want 0", p.requests.Len())
	}
}

func TestHandshakeMismatch(t *testing.T) {
	p := &pipe{}
	p.replies.WriteByte('x')

	c := NewCodec(p)
	err := c.Handshake()
	if !errors.Is(err, ErrProtocolMismatch) {
		t.Fatalf("got %v, want ErrProtocolMismatch", err)
	}
	// The mismatch must surface before any request byte goes out.
	if p.requests.Len() != 0 {
		t.Errorf("mismatched handshake wrote %d request bytes, want 0", p.requests.Len())
	}
}

func TestHandshakeEmptyLink(t *testing.T) {
	c := NewCodec(&pipe{})
	if err := c.Handshake(); err == nil {
		t.Fatal("Handshake on empty link should fail")
	}
}

func TestReadSample(t *testing.T) {
	p := &pipe{}
	// x=0x0102, y=0xFFFE (-2), xv=0x7F, yv=0x80 (-128), buttons=0x41
	p.replies.Write([]byte{0x01, 0x02, 0xFF, 0xFE, 0x7F, 0x80, 0x41})

	c := NewCodec(p)
	s, err := c.ReadSample()
	if err != nil {
		t.Fatalf("ReadSample failed: %v", err)
	}

	if got := p.requests.Bytes(); len(got) != 1 || got[0] != 15 {
		t.Errorf("request bytes = %v, want [15]", got)
	}
	if s.XRaw != 0x0102 {
		t.Errorf("XRaw = %d, want %d", s.XRaw, 0x0102)
	}
	if s.YRaw != -2 {
		t.Errorf("YRaw = %d, want -2", s.YRaw)
	}
	if s.XVal != 127 {
		t.Errorf("XVal = %d, want 127", s.XVal)
	}
	if s.YVal != -128 {
		t.Errorf("YVal = %d, want -128", s.YVal)
	}
	if s.Buttons != 0x41 {
		t.Errorf("Buttons = 0x%02x, want 0x41", s.Buttons)
	}
}

func TestReadSampleShortReply(t *testing.T) {
	tests := []struct {
		name  string
		reply []byte
	}{
		{name: "no bytes", reply: nil},
		{name: "truncated", reply: []byte{0x01, 0x02, 0x03}},
		{name: "one short", reply: []byte{0, 0, 0, 0, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &pipe{}
			p.replies.Write(tt.reply)

			c := NewCodec(p)
			_, err := c.ReadSample()

			var fe *FramingError
			if !errors.As(err, &fe) {
				t.Fatalf("got %v, want *FramingError", err)
			}
			if fe.Want != 7 || fe.Got != len(tt.reply) {
				t.Errorf("FramingError got=%d want=%d, expected got=%d want=7", fe.Got, fe.Want, len(tt.reply))
			}
		})
	}
}
