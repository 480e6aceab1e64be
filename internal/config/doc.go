// Package config provides configuration management for the sensor export
// combiner. It loads settings from several sources, validates them, and
// exposes a typed Config to the rest of the application.
//
// # Configuration Sources
//
// Configuration is built in this order, later sources overriding earlier ones:
//
//	1. Default values (Default)
//	2. A YAML file: the -config flag, or config.yaml / configs/config.yaml
//	3. Environment variables with the CIRA_ prefix
//	4. Command-line flags (applied by cmd/combiner)
//
// # Environment Variables
//
//	CIRA_PATHS_INPUT_DIR=data/raw/cira
//	CIRA_PATHS_OUTPUT_PATH=data/processed/combined_cira.csv
//	CIRA_PATHS_WORKBOOK_PATH=data/processed/combined_cira.xlsx
//	CIRA_PIPELINE_WORKERS=4
//	CIRA_LOGGING_LEVEL=debug
//	CIRA_TELEMETRY_METRICS_FILE=/var/lib/node_exporter/cira.prom
//
// # Validation
//
// Validate enforces struct tag constraints (go-playground/validator): the
// input and output paths are required, workers must be between 1 and 64,
// and enumerated settings must use a known value. Validation failures are
// reported as one message listing every offending field.
package config
