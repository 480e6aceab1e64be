package features

import (
	"fmt"
	"math"
)

// Window is the number of trailing samples in a rolling computation
type Window int

const (
	// WindowVibration is the rolling RMS window for vibration
	WindowVibration Window = 50
	// WindowPressure is the rolling mean window for pressure fluctuation
	WindowPressure Window = 100
)

// String returns the string representation of the window
func (w Window) String() string {
	return fmt.Sprintf("%d samples", int(w))
}

// Size returns the window length, never less than one
func (w Window) Size() int {
	if w < 1 {
		return 1
	}
	return int(w)
}

// windowStart returns the first index of the trailing window ending at i
func windowStart(i, size int) int {
	if i < size {
		return 0
	}
	return i - size + 1
}

// RollingRMS returns, for each position i, the root-mean-square of
// values[max(0,i-w+1)..i]. Windows shorter than w at the start of the
// series use every available sample. A missing sample anywhere in a window
// makes that window's result missing.
// A non-finite sample only affects the windows that hold it.
func RollingRMS(values []float64, w Window) []float64 {
	size := w.Size()
	out := make([]float64, len(values))

	lastMissing := -1
	for i, v := range values {
		if math.IsNaN(v) {
			lastMissing = i
		}
		lo := windowStart(i, size)
		if lastMissing >= lo {
			out[i] = math.NaN()
			continue
		}

		var sumSq float64
		for _, x := range values[lo : i+1] {
			sumSq += x * x
		}
		out[i] = math.Sqrt(sumSq / float64(i-lo+1))
	}
	return out
}

// RollingMean returns the trailing mean over the last w samples at each
// position, skipping missing samples. A window with no present samples
// yields missing.
func RollingMean(values []float64, w Window) []float64 {
	size := w.Size()
	out := make([]float64, len(values))

	for i := range values {
		var sum float64
		var count int
		for _, x := range values[windowStart(i, size) : i+1] {
			if math.IsNaN(x) {
				continue
			}
			sum += x
			count++
		}

		if count == 0 {
			out[i] = math.NaN()
			continue
		}
		out[i] = sum / float64(count)
	}
	return out
}

// PressureFluctuation subtracts the trailing rolling mean from each raw
// pressure sample. Missing samples stay missing.
func PressureFluctuation(values []float64, w Window) []float64 {
	mean := RollingMean(values, w)
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = v - mean[i]
	}
	return out
}
