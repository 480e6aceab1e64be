package schema

// Signal identifies a canonical input signal that can be read from a raw export
type Signal string

const (
	SignalTimestamp   Signal = "timestamp"
	SignalPressure    Signal = "pressure"
	SignalTemperature Signal = "temperature"
	SignalCurrent     Signal = "current"
	SignalVibration   Signal = "vibration"
)

// Signals lists every detectable signal in detection order
var Signals = []Signal{
	SignalTimestamp,
	SignalPressure,
	SignalTemperature,
	SignalCurrent,
	SignalVibration,
}

// Rule maps a canonical signal to its accepted source column names.
// Aliases are lower case and ordered by priority.
type Rule struct {
	Signal  Signal
	Aliases []string
}

// DefaultAliases is the fixed alias table used for every input file.
var DefaultAliases = AliasTable{
	{Signal: SignalTimestamp, Aliases: []string{"timestamp", "time", "date_time"}},
	{Signal: SignalPressure, Aliases: []string{"x_pres.pv", "x_pres.sv", "pressure", "outlet_pressure"}},
	{Signal: SignalTemperature, Aliases: []string{"temperature", "temp", "x_temp.sv", "ambient_temp", "env_temp"}},
	{Signal: SignalCurrent, Aliases: []string{"motor_current", "current", "i_motor", "motor_i"}},
	{Signal: SignalVibration, Aliases: []string{"x_acr_pmp.pv", "vibration", "accel", "vib", "x_acr_pmp"}},
}

// AliasTable is an ordered list of rules
type AliasTable []Rule
