package config

// Application constants
const (
	// ServiceName identifies the combiner in telemetry resources
	ServiceName = "cira-sensor-combiner"

	// Config file lookup, relative to the working directory
	LocalConfigFile   = "config.yaml"
	DefaultConfigFile = "configs/config.yaml"
)
