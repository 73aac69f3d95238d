package mapping

import (
	"errors"
	"testing"

	"github.com/ktulhy-kun/ArduinoAnalogJoy/pkg/interval"
)

func mustAxis(t *testing.T, travel, dead interval.Interval) *Axis {
	t.Helper()
	a, err := NewAxis(travel, dead)
	if err != nil {
		t.Fatalf("NewAxis(%v, %v) failed: %v", travel, dead, err)
	}
	return a
}

func TestPositionRegions(t *testing.T) {
	// travel [0, 100], dead zone [40, 60]
	a := mustAxis(t, interval.Of(0, 100), interval.Of(40, 60))

	tests := []struct {
		name string
		v    float64
		want float64
	}{
		{"far below travel", -50, -1},
		{"at travel left", 0, -1}, // ramp starts at -1
		{"mid lower ramp", 20, -0.5},
		{"just below dead zone", 36, -0.1},
		{"at dead zone left", 40, 0},
		{"inside dead zone", 50, 0},
		{"just inside dead zone right", 59.999, 0},
		{"at dead zone right", 60, 0}, // ramp starts at 0
		{"mid upper ramp", 80, 0.5},
		{"near travel right", 96, 0.9},
		{"at travel right", 100, 1},
		{"far above travel", 250, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := a.Position(tt.v)
			if diff := got - tt.want; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("Position(%v) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}
}

func TestPositionBoundedAndMonotonic(t *testing.T) {
	a := mustAxis(t, interval.Of(123, 8567), interval.Of(4000, 4300))

	prev := -2.0
	for v := -1000.0; v <= 10000; v += 7.3 {
		p := a.Position(v)
		if p < -1 || p > 1 {
			t.Fatalf("Position(%v) = %v outside [-1, 1]", v, p)
		}
		if p < prev {
			t.Fatalf("Position(%v) = %v below previous %v; not monotonic", v, p, prev)
		}
		prev = p
	}
}

func TestPositionDeadZoneExactZero(t *testing.T) {
	a := mustAxis(t, interval.Of(0, 100), interval.Of(40, 60))
	for v := 40.0; v < 60; v += 0.5 {
		if got := a.Position(v); got != 0 {
			t.Fatalf("Position(%v) = %v, want exactly 0", v, got)
		}
	}
}

func TestNewAxisDegenerate(t *testing.T) {
	tests := []struct {
		name   string
		travel interval.Interval
		dead   interval.Interval
	}{
		{"left bounds collide", interval.Of(40, 100), interval.Of(40, 60)},
		{"right bounds collide", interval.Of(0, 60), interval.Of(40, 60)},
		{"point intervals", interval.Of(50, 50), interval.Of(50, 50)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewAxis(tt.travel, tt.dead); !errors.Is(err, ErrDegenerate) {
				t.Errorf("got %v, want ErrDegenerate", err)
			}
		})
	}
}
