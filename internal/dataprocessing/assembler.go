package dataprocessing

import (
	"cirapipe/internal/features"
	"cirapipe/internal/schema"
	"cirapipe/pkg/contracts/domain"
)

// AssembleResult is the canonical table built from one raw file
type AssembleResult struct {
	Records []domain.CanonicalRecord
	RowsIn  int
	Dropped int
}

// Assemble builds one canonical record per raw row using the detected
// columns, then drops rows that carry no data. Rolling features are
// computed over every raw row before any row is dropped.
func Assemble(table *RawTable, mapping schema.Mapping) AssembleResult {
	n := table.Len()

	vibration := numericColumn(table, mapping, schema.SignalVibration)
	vibrationRMS := features.MissingSeries(n)
	if vibration != nil {
		vibrationRMS = features.RollingRMS(vibration, features.WindowVibration)
	}

	pressure := numericColumn(table, mapping, schema.SignalPressure)
	pressureFluct := features.MissingSeries(n)
	if pressure != nil {
		pressureFluct = features.PressureFluctuation(pressure, features.WindowPressure)
	}

	temperature := numericColumn(table, mapping, schema.SignalTemperature)
	if temperature == nil {
		temperature = features.ConstantSeries(n, features.FallbackTemperatureC)
	}
	viscosity := features.ViscositySeries(temperature)

	current := numericColumn(table, mapping, schema.SignalCurrent)
	if current == nil {
		current = features.MissingSeries(n)
	}

	tsCol, hasTimestamp := mapping.Column(schema.SignalTimestamp)

	result := AssembleResult{RowsIn: n}
	records := make([]domain.CanonicalRecord, 0, n)
	for i := 0; i < n; i++ {
		rec := domain.NewCanonicalRecord()

		if hasTimestamp {
			if text, ok := TextCell(table.Rows[i][tsCol.Index]); ok {
				rec.Timestamp = domain.SourceTimestamp(text)
			}
		} else {
			rec.Timestamp = domain.IndexTimestamp(i)
		}

		rec.VibrationRMS = vibrationRMS[i]
		rec.PressureFluct = pressureFluct[i]
		rec.Temperature = temperature[i]
		rec.MotorCurrent = current[i]
		rec.Viscosity = viscosity[i]
		rec.ColdFlag = features.ColdFlag(temperature[i])

		if rec.IsEmpty() {
			result.Dropped++
			continue
		}
		records = append(records, rec)
	}

	result.Records = records
	return result
}

// numericColumn returns the coerced values of the column backing s, or nil
// when the file has no such column.
func numericColumn(table *RawTable, mapping schema.Mapping, s schema.Signal) []float64 {
	col, ok := mapping.Column(s)
	if !ok {
		return nil
	}
	return features.CoerceColumn(table.Column(col.Index))
}
