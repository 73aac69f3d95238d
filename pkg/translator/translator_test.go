package translator

import (
	"reflect"
	"testing"
)

func TestButtonEdgeDetection(t *testing.T) {
	tr := New(ModeRelative, 0, 0)

	// Mask sequence 0x00 -> 0x40 -> 0x40 -> 0x00 on bit 6 (mouse button "1").
	steps := []struct {
		mask uint8
		want []string
	}{
		{0x00, nil},
		{0x40, []string{"mousedown", "1"}},
		{0x40, nil},
		{0x00, []string{"mouseup", "1"}},
	}
	for i, step := range steps {
		got := tr.Translate(0, 0, step.mask)
		if !reflect.DeepEqual(got, step.want) {
			t.Errorf("step %d (mask 0x%02x): got %v, want %v", i, step.mask, got, step.want)
		}
	}
}

func TestButtonTableOrder(t *testing.T) {
	tr := New(ModeRelative, 0, 0)

	// Press every bound bit at once: tokens must follow table order.
	got := tr.Translate(0, 0, 0b0110_1111)
	want := []string{
		"keydown", "Right",
		"keydown", "Up",
		"keydown", "Left",
		"keydown", "Down",
		"mousedown", "3",
		"mousedown", "1",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestUnmappedBitsIgnoredButStored(t *testing.T) {
	tr := New(ModeRelative, 0, 0)

	// Bits 4 and 7 are not in the table: no tokens.
	if got := tr.Translate(0, 0, 0b1001_0000); got != nil {
		t.Errorf("unmapped bits produced tokens: %v", got)
	}
	// The full mask was stored anyway; clearing it still emits nothing.
	if got := tr.Translate(0, 0, 0x00); got != nil {
		t.Errorf("clearing unmapped bits produced tokens: %v", got)
	}
}

func TestRelativeMovement(t *testing.T) {
	tests := []struct {
		name string
		x, y float64
		want []string
	}{
		{"center is silent", 0, 0, nil},
		{"half deflection cubes to 125", 0.5, 0, []string{"mousemove_relative", "--", "125", "0"}},
		{"full deflection", 1, -1, []string{"mousemove_relative", "--", "1000", "-1000"}},
		{"tiny deflection truncates away", 0.04, 0.04, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := New(ModeRelative, 0, 0)
			got := tr.Translate(tt.x, tt.y, 0)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Translate(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestAbsoluteMovement(t *testing.T) {
	tr := New(ModeAbsolute, 1921, 1081)

	tests := []struct {
		name string
		x, y float64
		want []string
	}{
		{"center maps to screen middle", 0, 0, []string{"mousemove", "--", "960", "540"}},
		{"top-left corner", -1, -1, []string{"mousemove", "--", "0", "0"}},
		{"bottom-right corner", 1, 1, []string{"mousemove", "--", "1920", "1080"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tr.Translate(tt.x, tt.y, 0)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Translate(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestMovementPrecedesButtons(t *testing.T) {
	tr := New(ModeRelative, 0, 0)
	got := tr.Translate(0.5, 0, 0x01)
	want := []string{"mousemove_relative", "--", "125", "0", "keydown", "Right"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
