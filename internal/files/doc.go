// Package files provides file system operations and discovery utilities
// for the sensor export combiner.
//
// This package contains two main components:
//
// Discovery: finds the raw "*.csv" exports (lower-case extension only) in
// an input directory, in ascending file name order so every run processes
// files in the same sequence.
//
// Manager: creates output files and their parent directories. Relative
// paths are resolved against a base directory.
//
// Example usage:
//
//	discovery := files.NewDiscovery("")
//	inputs, err := discovery.FindCSVFiles("data/raw/cira")
//
//	manager := files.NewManager("")
//	f, err := manager.Create("data/processed/combined_cira.csv")
package files
