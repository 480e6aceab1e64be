package dataprocessing

import (
	"encoding/csv"
	"encoding/hex"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/crypto/blake2b"

	"cirapipe/internal/errors"
	"cirapipe/internal/features"
)

// RawTable holds one raw export: its header and the data rows, each
// padded to the header width.
type RawTable struct {
	Path     string
	Checksum string // BLAKE2b-256 of the file bytes, set by ReadFile
	Header   []string
	Rows     [][]string
}

// Len returns the number of data rows
func (t *RawTable) Len() int {
	return len(t.Rows)
}

// Column returns the cells of column idx in row order
func (t *RawTable) Column(idx int) []string {
	out := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = row[idx]
	}
	return out
}

// ReadFile reads a raw CSV export from disk.
func ReadFile(path string) (*RawTable, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.NewParsingError(path, "cannot open file", err)
	}
	defer file.Close()

	hasher, err := blake2b.New256(nil)
	if err != nil {
		return nil, errors.NewParsingError(path, "cannot hash file", err)
	}

	table, err := ReadCSV(io.TeeReader(file, hasher))
	if err != nil {
		return nil, errors.NewParsingError(path, "malformed CSV", err)
	}
	table.Path = path
	table.Checksum = "blake2b-256:" + hex.EncodeToString(hasher.Sum(nil))
	return table, nil
}

// ReadCSV parses a raw export. The first record is the header. Rows
// shorter than the header are padded with empty cells; a row longer than
// the header is an error, as is input with no header at all. A leading
// UTF-8 BOM is ignored and fully blank lines are skipped.
func ReadCSV(r io.Reader) (*RawTable, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = false

	header, err := reader.Read()
	if stderrors.Is(err, io.EOF) {
		return nil, fmt.Errorf("no columns to parse from file")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	table := &RawTable{Header: header}
	for {
		record, err := reader.Read()
		if stderrors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}

		if len(record) > len(header) {
			line, _ := reader.FieldPos(0)
			return nil, fmt.Errorf("line %d: expected %d fields, saw %d", line, len(header), len(record))
		}
		for len(record) < len(header) {
			record = append(record, "")
		}
		table.Rows = append(table.Rows, record)
	}

	return table, nil
}

// TextCell returns the cell unchanged, or false when it is an NA token
func TextCell(cell string) (string, bool) {
	if features.IsNA(strings.TrimSpace(cell)) {
		return "", false
	}
	return cell, true
}
