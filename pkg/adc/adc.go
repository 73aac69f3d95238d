// Package adc holds the conversion from raw ADC counts to physical values.
//
// The conversion is a capability the calibration engine and the position
// mapper depend on but do not define: any pure monotonic function works, and
// tests inject their own. The default models the usual potentiometer wired as
// a voltage divider against a fixed series resistor, which is monotonically
// decreasing: larger counts map to smaller resistances.
package adc

// ConvertFunc maps a raw ADC count to a physical value. Implementations must
// be pure and monotonic over the ADC range; they may be decreasing.
type ConvertFunc func(float64) float64

const (
	// seriesResistor is the fixed divider resistor in ohms.
	seriesResistor = 10000.0
	// maxCount is the full-scale reading of the 10-bit converter.
	maxCount = 1023.0
)

// Resistance is the default conversion: the resistance in ohms of the stick
// potentiometer given a 10-bit ADC count. Counts at or below zero clamp to
// the smallest positive count so the divider formula stays finite.
func Resistance(count float64) float64 {
	if count < 1 {
		count = 1
	}
	if count > maxCount {
		count = maxCount
	}
	return seriesResistor * (maxCount - count) / count
}
