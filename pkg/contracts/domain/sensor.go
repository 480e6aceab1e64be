package domain

import (
	"math"
	"strconv"
)

// Canonical column names, in output order.
const (
	ColumnTimestamp        = "Timestamp"
	ColumnVibrationRMS     = "Vibration_RMS"
	ColumnPressureFluct    = "Pressure_Fluct"
	ColumnTemperature      = "Temperature"
	ColumnMotorCurrent     = "Motor_Current"
	ColumnFlowRate         = "Flow_Rate"
	ColumnCavitationMargin = "Cavitation_Margin"
	ColumnViscosity        = "Viscosity"
	ColumnLeakageRate      = "Leakage_Rate"
	ColumnColdFlag         = "Cold_Flag"
	ColumnLabel            = "Label"
)

// CanonicalColumns is the fixed header of every combined dataset
var CanonicalColumns = []string{
	ColumnTimestamp,
	ColumnVibrationRMS,
	ColumnPressureFluct,
	ColumnTemperature,
	ColumnMotorCurrent,
	ColumnFlowRate,
	ColumnCavitationMargin,
	ColumnViscosity,
	ColumnLeakageRate,
	ColumnColdFlag,
	ColumnLabel,
}

// LabelNormal is the only label ever assigned
const LabelNormal = "Normal"

// Missing returns the missing-value marker for numeric fields.
func Missing() float64 {
	return math.NaN()
}

// IsMissing reports whether v is the missing-value marker.
func IsMissing(v float64) bool {
	return math.IsNaN(v)
}

// TimestampKind tells where a record's timestamp came from
type TimestampKind int

const (
	TimestampMissing TimestampKind = iota
	TimestampSource                // copied from the detected source column
	TimestampIndex                 // positional row index within the file
)

// Timestamp is either the raw source text, a 0-based row index, or missing.
type Timestamp struct {
	Kind  TimestampKind
	Text  string
	Index int
}

// SourceTimestamp wraps a value read from the timestamp column.
func SourceTimestamp(text string) Timestamp {
	return Timestamp{Kind: TimestampSource, Text: text}
}

// IndexTimestamp wraps a positional row index.
func IndexTimestamp(i int) Timestamp {
	return Timestamp{Kind: TimestampIndex, Index: i}
}

// IsMissing reports whether the timestamp carries no value.
func (t Timestamp) IsMissing() bool {
	return t.Kind == TimestampMissing
}

// String renders the timestamp for CSV output; missing renders empty.
func (t Timestamp) String() string {
	switch t.Kind {
	case TimestampSource:
		return t.Text
	case TimestampIndex:
		return strconv.Itoa(t.Index)
	default:
		return ""
	}
}

// CanonicalRecord is one normalized sensor row.
// Numeric fields hold NaN when no data is available.
type CanonicalRecord struct {
	Timestamp        Timestamp
	VibrationRMS     float64
	PressureFluct    float64
	Temperature      float64
	MotorCurrent     float64
	FlowRate         float64
	CavitationMargin float64
	Viscosity        float64
	LeakageRate      float64
	ColdFlag         int
	Label            string
}

// NewCanonicalRecord returns a record with every numeric field missing
// and the constant label set.
func NewCanonicalRecord() CanonicalRecord {
	nan := Missing()
	return CanonicalRecord{
		VibrationRMS:     nan,
		PressureFluct:    nan,
		Temperature:      nan,
		MotorCurrent:     nan,
		FlowRate:         nan,
		CavitationMargin: nan,
		Viscosity:        nan,
		LeakageRate:      nan,
		Label:            LabelNormal,
	}
}

// Signals returns the numeric signal fields in canonical column order.
func (r CanonicalRecord) Signals() []float64 {
	return []float64{
		r.VibrationRMS,
		r.PressureFluct,
		r.Temperature,
		r.MotorCurrent,
		r.FlowRate,
		r.CavitationMargin,
		r.Viscosity,
		r.LeakageRate,
	}
}

// IsEmpty reports whether the timestamp and every signal are missing.
// Cold_Flag and Label are derived for every row and are not data.
func (r CanonicalRecord) IsEmpty() bool {
	if !r.Timestamp.IsMissing() {
		return false
	}
	for _, v := range r.Signals() {
		if !IsMissing(v) {
			return false
		}
	}
	return true
}
