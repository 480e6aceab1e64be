package exporter

import (
	"math"
	"strconv"
	"strings"

	"cirapipe/pkg/contracts/domain"
)

// formatFloat formats a signal value for CSV output the way Python's float
// repr does: shortest decimal that round-trips, positional with a trailing
// ".0" on integral values, exponent form when the decimal exponent is below
// -4 or at least 16. Missing is empty.
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return ""
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}

	sci := strconv.FormatFloat(f, 'e', -1, 64)
	exp, err := strconv.Atoi(sci[strings.IndexByte(sci, 'e')+1:])
	if err == nil && (exp < -4 || exp >= 16) {
		return sci
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// formatInt formats an integer value for CSV output
func formatInt(i int) string {
	return strconv.Itoa(i)
}

// RecordToRow renders a record in canonical column order
func RecordToRow(r domain.CanonicalRecord) []string {
	return []string{
		r.Timestamp.String(),
		formatFloat(r.VibrationRMS),
		formatFloat(r.PressureFluct),
		formatFloat(r.Temperature),
		formatFloat(r.MotorCurrent),
		formatFloat(r.FlowRate),
		formatFloat(r.CavitationMargin),
		formatFloat(r.Viscosity),
		formatFloat(r.LeakageRate),
		formatInt(r.ColdFlag),
		r.Label,
	}
}
