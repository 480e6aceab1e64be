// Package schema detects which columns of a raw sensor export carry the
// canonical input signals.
//
// Detection is driven by an ordered alias table. Each rule lists the
// accepted source column names for one signal in priority order; the first
// alias present in the file header wins and matching ignores case:
//
//	m := schema.Detect([]string{"Time", "X_PRES.PV", "Motor_Current"})
//	col, ok := m.Column(schema.SignalPressure) // col.Name == "X_PRES.PV", col.Index == 1
//
// A signal with no matching column is simply absent for that file. Two files
// may map the same signal to different columns.
package schema
