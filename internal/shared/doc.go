// Package shared holds helpers used across the combiner's packages that do
// not belong to any single layer.
//
// # Structure
//
// - testutil: a capturing slog handler and CSV fixture writers for tests
//
// This package should not contain domain logic; sensor semantics live in
// schema, features and dataprocessing.
package shared
