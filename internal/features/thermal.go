package features

import (
	"math"
)

// FallbackTemperatureC is used for every row of a file that has no
// temperature column. It has no documented source and may be a placeholder.
const FallbackTemperatureC = 10.0

// viscosityPoint is an anchor of the water viscosity curve
type viscosityPoint struct {
	tempC float64
	cP    float64
}

// viscosityCurve must stay sorted by temperature
var viscosityCurve = []viscosityPoint{
	{-10, 3.3},
	{0, 1.79},
	{20, 1.0},
	{40, 0.65},
}

// Viscosity estimates dynamic viscosity in cP from temperature in °C by
// piecewise-linear interpolation. Temperatures outside the curve hold the
// boundary value. A missing temperature gives a missing viscosity.
func Viscosity(tempC float64) float64 {
	if math.IsNaN(tempC) {
		return math.NaN()
	}

	first := viscosityCurve[0]
	last := viscosityCurve[len(viscosityCurve)-1]
	if tempC <= first.tempC {
		return first.cP
	}
	if tempC >= last.tempC {
		return last.cP
	}

	for i := 1; i < len(viscosityCurve); i++ {
		hi := viscosityCurve[i]
		if tempC > hi.tempC {
			continue
		}
		lo := viscosityCurve[i-1]
		frac := (tempC - lo.tempC) / (hi.tempC - lo.tempC)
		return lo.cP + frac*(hi.cP-lo.cP)
	}
	return last.cP
}

// ColdFlag is 1 when the temperature is at or below freezing, else 0.
// Missing temperatures are not cold.
func ColdFlag(tempC float64) int {
	if tempC <= 0 {
		return 1
	}
	return 0
}

// ViscositySeries applies Viscosity elementwise.
func ViscositySeries(temps []float64) []float64 {
	out := make([]float64, len(temps))
	for i, t := range temps {
		out[i] = Viscosity(t)
	}
	return out
}

// ConstantSeries returns n copies of v.
func ConstantSeries(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// MissingSeries returns n missing values.
func MissingSeries(n int) []float64 {
	return ConstantSeries(n, math.NaN())
}
