// Package features derives engineered signals from raw sensor columns.
//
// # Rolling windows
//
// RollingRMS and RollingMean sum each trailing window directly, so a
// non-finite or very large sample only affects the windows that contain it.
// Both use a minimum window of one sample: the first positions are computed
// over whatever precedes them.
//
//	rms := features.RollingRMS(vibration, features.WindowVibration)
//	fluct := features.PressureFluctuation(pressure, features.WindowPressure)
//
// # Thermal features
//
// Viscosity interpolates a four-point water viscosity curve, holding the
// boundary values outside [-10, 40] °C. ColdFlag marks temperatures at or
// below zero.
//
// # Missing data
//
// Missing values are NaN throughout. ParseNumeric turns NA tokens and
// unparsable cells into NaN instead of failing.
package features
