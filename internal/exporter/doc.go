// Package exporter writes the combined sensor table and its run metadata.
//
// This package contains three components:
//
// CSVWriter: Core CSV writing with header support, streaming, and an
// optional UTF-8 BOM for Excel. WriteCombined renders canonical records.
//
// WorkbookWriter: Writes the same table to an .xlsx workbook (sheet
// "combined") through excelize's stream writer.
//
// ManifestWriter: Writes a YAML manifest listing, per input file, the
// source column chosen for each signal and the row counts.
//
// Example usage:
//
//	manager := files.NewManager("")
//	if err := exporter.NewCSVWriter(manager).WriteCombined(outPath, result.Records); err != nil {
//	    return err
//	}
//
// Signal values are written as the shortest decimal that round-trips, with
// ".0" kept on integral values. Missing values are empty fields.
package exporter
