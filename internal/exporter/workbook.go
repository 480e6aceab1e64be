package exporter

import (
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"cirapipe/internal/errors"
	"cirapipe/internal/files"
	"cirapipe/pkg/contracts/domain"
)

// WorkbookSheet is the sheet holding the combined table
const WorkbookSheet = "combined"

// WorkbookWriter exports the combined table as an Excel workbook
type WorkbookWriter struct {
	files *files.Manager
}

// NewWorkbookWriter creates a workbook writer
func NewWorkbookWriter(manager *files.Manager) *WorkbookWriter {
	if manager == nil {
		manager = files.NewManager("")
	}
	return &WorkbookWriter{files: manager}
}

// WriteCombined writes records to a single-sheet workbook using excelize's
// stream writer. Numeric values are stored as numbers and missing values
// as empty cells.
func (w *WorkbookWriter) WriteCombined(filePath string, records []domain.CanonicalRecord) error {
	if err := w.files.EnsureParentDir(filePath); err != nil {
		return errors.NewStorageError(filePath, "cannot create output directory", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", WorkbookSheet); err != nil {
		return errors.NewStorageError(filePath, "cannot name sheet", err)
	}

	sw, err := f.NewStreamWriter(WorkbookSheet)
	if err != nil {
		return errors.NewStorageError(filePath, "cannot open sheet stream", err)
	}

	header := make([]interface{}, len(domain.CanonicalColumns))
	for i, name := range domain.CanonicalColumns {
		header[i] = name
	}
	if err := sw.SetRow("A1", header); err != nil {
		return errors.NewStorageError(filePath, "cannot write header", err)
	}

	for i := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return errors.NewStorageError(filePath, "cannot address row", err)
		}
		if err := sw.SetRow(cell, recordToCells(records[i])); err != nil {
			return errors.NewStorageError(filePath, fmt.Sprintf("cannot write row %d", i), err)
		}
	}

	if err := sw.Flush(); err != nil {
		return errors.NewStorageError(filePath, "cannot flush sheet", err)
	}

	fullPath := w.files.Resolve(filePath)
	if err := f.SaveAs(fullPath); err != nil {
		return errors.NewStorageError(filePath, "cannot save workbook", err)
	}

	slog.Info("Wrote combined workbook",
		slog.String("path", fullPath),
		slog.Int("rows", len(records)))
	return nil
}

// recordToCells converts a record to stream writer cell values
func recordToCells(r domain.CanonicalRecord) []interface{} {
	cells := make([]interface{}, 0, len(domain.CanonicalColumns))

	switch r.Timestamp.Kind {
	case domain.TimestampSource:
		cells = append(cells, r.Timestamp.Text)
	case domain.TimestampIndex:
		cells = append(cells, r.Timestamp.Index)
	default:
		cells = append(cells, nil)
	}

	for _, v := range r.Signals() {
		if domain.IsMissing(v) {
			cells = append(cells, nil)
			continue
		}
		cells = append(cells, v)
	}

	return append(cells, r.ColdFlag, r.Label)
}
