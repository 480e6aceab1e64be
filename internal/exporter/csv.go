package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"

	"cirapipe/internal/errors"
	"cirapipe/internal/files"
	"cirapipe/pkg/contracts/domain"
)

// utf8BOM helps Excel recognise UTF-8 CSV files
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVWriter provides CSV export functionality
type CSVWriter struct {
	files *files.Manager
}

// NewCSVWriter creates a new CSV writer instance. Relative paths are
// resolved by the given file manager.
func NewCSVWriter(manager *files.Manager) *CSVWriter {
	if manager == nil {
		manager = files.NewManager("")
	}
	return &CSVWriter{files: manager}
}

// WriteCombined writes the combined canonical table: the canonical header
// followed by one row per record, with no index column and missing values
// as empty fields.
func (w *CSVWriter) WriteCombined(filePath string, records []domain.CanonicalRecord) error {
	return w.writeCombined(filePath, records, false)
}

// WriteCombinedForExcel is WriteCombined with a UTF-8 BOM prefix so Excel
// opens the file as UTF-8
func (w *CSVWriter) WriteCombinedForExcel(filePath string, records []domain.CanonicalRecord) error {
	return w.writeCombined(filePath, records, true)
}

func (w *CSVWriter) writeCombined(filePath string, records []domain.CanonicalRecord, bom bool) error {
	stream, err := w.CreateStreamWriter(filePath, domain.CanonicalColumns, bom)
	if err != nil {
		return errors.NewStorageError(filePath, "cannot create output", err)
	}

	for i := range records {
		if err := stream.WriteRecord(RecordToRow(records[i])); err != nil {
			stream.Close()
			return errors.NewStorageError(filePath, fmt.Sprintf("cannot write row %d", i), err)
		}
	}

	if err := stream.Close(); err != nil {
		return errors.NewStorageError(filePath, "cannot finish output", err)
	}

	slog.Info("Wrote combined CSV",
		slog.String("path", w.files.Resolve(filePath)),
		slog.Int("rows", len(records)))
	return nil
}

// StreamWriter provides streaming CSV writing for large datasets
type StreamWriter struct {
	file   *os.File
	writer *csv.Writer
}

// CreateStreamWriter creates a new streaming CSV writer and writes headers
func (w *CSVWriter) CreateStreamWriter(filePath string, headers []string, bom bool) (*StreamWriter, error) {
	file, err := w.files.Create(filePath)
	if err != nil {
		return nil, err
	}

	if bom {
		if _, err := file.Write(utf8BOM); err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(file)

	if len(headers) > 0 {
		if err := writer.Write(headers); err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to write headers: %w", err)
		}
	}

	return &StreamWriter{
		file:   file,
		writer: writer,
	}, nil
}

// WriteRecord writes a single record to the stream
func (s *StreamWriter) WriteRecord(record []string) error {
	return s.writer.Write(record)
}

// Close flushes and closes the stream writer
func (s *StreamWriter) Close() error {
	s.writer.Flush()
	if err := s.writer.Error(); err != nil {
		s.file.Close()
		return err
	}
	return s.file.Close()
}
