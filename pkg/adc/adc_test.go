package adc

import "testing"

func TestResistanceMonotonicDecreasing(t *testing.T) {
	prev := Resistance(1)
	for count := 2.0; count <= 1023; count++ {
		r := Resistance(count)
		if r >= prev {
			t.Fatalf("Resistance(%v)=%v not below Resistance(%v)=%v", count, r, count-1, prev)
		}
		prev = r
	}
}

func TestResistanceClamps(t *testing.T) {
	if got, want := Resistance(-5), Resistance(1); got != want {
		t.Errorf("negative count: got %v, want %v", got, want)
	}
	if got, want := Resistance(0), Resistance(1); got != want {
		t.Errorf("zero count: got %v, want %v", got, want)
	}
	if got := Resistance(2000); got != 0 {
		t.Errorf("over-scale count: got %v, want 0", got)
	}
}

func TestResistanceEndpoints(t *testing.T) {
	if got := Resistance(1023); got != 0 {
		t.Errorf("full scale: got %v, want 0", got)
	}
	// At half scale (511.5) the divider sees equal halves, so R equals the
	// series resistor.
	if got := Resistance(511.5); got != seriesResistor {
		t.Errorf("half scale: got %v, want %v", got, seriesResistor)
	}
}
