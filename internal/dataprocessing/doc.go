// Package dataprocessing turns raw pump sensor exports into one canonical
// table. It covers the whole path from CSV bytes to combined records.
//
// # Architecture
//
// The package is organized into four components:
//
// 1. Reader: parses a raw CSV export into a RawTable (header plus padded rows)
// 2. Assembler: maps detected columns to canonical records and derives features
// 3. Aggregator: concatenates per-file tables in input order
// 4. Processor: runs the above over every input file and reports per-file summaries
//
// # Usage
//
//	found, err := files.NewDiscovery("").FindCSVFiles("data/raw/cira")
//	if err != nil {
//	    return err
//	}
//
//	processor := dataprocessing.NewProcessor(dataprocessing.ProcessorOptions{Workers: 4})
//	result, err := processor.Run(ctx, found)
//	if err != nil {
//	    return err
//	}
//
// Rows whose timestamp and every signal are missing are dropped after the
// rolling features have been computed over the full file.
package dataprocessing
