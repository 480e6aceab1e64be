package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name     string
		header   []string
		expected map[Signal]string
		absent   []Signal
	}{
		{
			name:   "plc tag export",
			header: []string{"Time", "X_PRES.PV", "X_TEMP.SV", "Motor_Current", "X_ACR_PMP.PV"},
			expected: map[Signal]string{
				SignalTimestamp:   "Time",
				SignalPressure:    "X_PRES.PV",
				SignalTemperature: "X_TEMP.SV",
				SignalCurrent:     "Motor_Current",
				SignalVibration:   "X_ACR_PMP.PV",
			},
		},
		{
			name:   "plain names",
			header: []string{"timestamp", "pressure", "temp", "current", "vib"},
			expected: map[Signal]string{
				SignalTimestamp:   "timestamp",
				SignalPressure:    "pressure",
				SignalTemperature: "temp",
				SignalCurrent:     "current",
				SignalVibration:   "vib",
			},
		},
		{
			name:   "priority beats header order",
			header: []string{"outlet_pressure", "x_pres.sv", "x_pres.pv", "date_time", "time"},
			expected: map[Signal]string{
				SignalTimestamp: "time",
				SignalPressure:  "x_pres.pv",
			},
			absent: []Signal{SignalTemperature, SignalCurrent, SignalVibration},
		},
		{
			name:   "vibration fallback alias",
			header: []string{"X_ACR_PMP", "Accel"},
			expected: map[Signal]string{
				SignalVibration: "Accel",
			},
			absent: []Signal{SignalTimestamp, SignalPressure, SignalTemperature, SignalCurrent},
		},
		{
			name:     "nothing recognised",
			header:   []string{"flow", "rpm", "Temperature_C"},
			expected: map[Signal]string{},
			absent:   Signals,
		},
		{
			name:     "empty header",
			header:   nil,
			expected: map[Signal]string{},
			absent:   Signals,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Detect(tt.header)

			for signal, name := range tt.expected {
				col, ok := m.Column(signal)
				require.True(t, ok, "signal %s should be detected", signal)
				assert.Equal(t, name, col.Name)
				assert.Equal(t, name, tt.header[col.Index])
			}
			assert.Equal(t, len(tt.expected), len(m.Detected()))
			if tt.absent != nil {
				assert.Equal(t, tt.absent, m.Absent())
			}
		})
	}
}

func TestDetect_CaseInsensitive(t *testing.T) {
	for _, name := range []string{"ENV_TEMP", "Env_Temp", "env_temp"} {
		m := Detect([]string{name})
		col, ok := m.Column(SignalTemperature)
		require.True(t, ok, name)
		assert.Equal(t, name, col.Name)
		assert.Equal(t, 0, col.Index)
	}
}

func TestDetect_DuplicateHeaders(t *testing.T) {
	tests := []struct {
		name      string
		header    []string
		wantIndex int
		wantName  string
	}{
		{
			name:      "last case variant wins",
			header:    []string{"Temp", "flow", "TEMP"},
			wantIndex: 2,
			wantName:  "TEMP",
		},
		{
			name:      "first exact duplicate wins",
			header:    []string{"temp", "flow", "temp"},
			wantIndex: 0,
			wantName:  "temp",
		},
		{
			name:      "exact duplicate after case variant",
			header:    []string{"Temp", "TEMP", "Temp"},
			wantIndex: 1,
			wantName:  "TEMP",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col, ok := Detect(tt.header).Column(SignalTemperature)
			require.True(t, ok)
			assert.Equal(t, tt.wantIndex, col.Index)
			assert.Equal(t, tt.wantName, col.Name)
		})
	}
}

func TestDetect_FilesMayDiffer(t *testing.T) {
	a := Detect([]string{"pressure"})
	b := Detect([]string{"Outlet_Pressure"})

	colA, _ := a.Column(SignalPressure)
	colB, _ := b.Column(SignalPressure)
	assert.Equal(t, "pressure", colA.Name)
	assert.Equal(t, "Outlet_Pressure", colB.Name)
}

func TestMapping_SourceNames(t *testing.T) {
	m := Detect([]string{"time", "vibration"})
	assert.Equal(t, map[string]string{
		"timestamp": "time",
		"vibration": "vibration",
	}, m.SourceNames())
}

func TestDefaultAliases_CoversEverySignal(t *testing.T) {
	require.Len(t, DefaultAliases, len(Signals))
	for i, rule := range DefaultAliases {
		assert.Equal(t, Signals[i], rule.Signal)
		assert.NotEmpty(t, rule.Aliases)
	}
}
