package exporter

import (
	"time"

	"gopkg.in/yaml.v2"

	"cirapipe/internal/dataprocessing"
	"cirapipe/internal/errors"
	"cirapipe/internal/files"
)

// Manifest describes one combiner run: which source column backed each
// signal in every input file and how many rows survived.
type Manifest struct {
	GeneratedAt time.Time      `yaml:"generated_at"`
	TraceID     string         `yaml:"trace_id,omitempty"`
	SpanTraceID string         `yaml:"span_trace_id,omitempty"`
	Output      string         `yaml:"output"`
	Rows        int            `yaml:"rows"`
	Dropped     int            `yaml:"dropped"`
	Files       []FileManifest `yaml:"files"`
}

// FileManifest is the manifest entry for one input file
type FileManifest struct {
	Name        string            `yaml:"name"`
	Path        string            `yaml:"path"`
	Checksum    string            `yaml:"checksum"`
	Columns     map[string]string `yaml:"columns"`
	Absent      []string          `yaml:"absent,omitempty"`
	RowsIn      int               `yaml:"rows_in"`
	RowsKept    int               `yaml:"rows_kept"`
	RowsDropped int               `yaml:"rows_dropped"`
}

// NewManifest builds the manifest for a finished run
func NewManifest(result *dataprocessing.Result, output, traceID string) Manifest {
	m := Manifest{
		GeneratedAt: time.Now().UTC(),
		TraceID:     traceID,
		SpanTraceID: result.SpanTraceID,
		Output:      output,
		Rows:        len(result.Records),
		Dropped:     result.RowsDropped(),
		Files:       make([]FileManifest, 0, len(result.Files)),
	}

	for _, f := range result.Files {
		m.Files = append(m.Files, FileManifest{
			Name:        f.Name,
			Path:        f.Path,
			Checksum:    f.Checksum,
			Columns:     f.Columns,
			Absent:      f.Absent,
			RowsIn:      f.RowsIn,
			RowsKept:    f.RowsKept,
			RowsDropped: f.RowsDropped,
		})
	}
	return m
}

// ManifestWriter writes run manifests as YAML
type ManifestWriter struct {
	files *files.Manager
}

// NewManifestWriter creates a manifest writer
func NewManifestWriter(manager *files.Manager) *ManifestWriter {
	if manager == nil {
		manager = files.NewManager("")
	}
	return &ManifestWriter{files: manager}
}

// Write marshals m to filePath
func (w *ManifestWriter) Write(filePath string, m Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return errors.NewStorageError(filePath, "cannot encode manifest", err)
	}
	if err := w.files.WriteFile(filePath, data); err != nil {
		return errors.NewStorageError(filePath, "cannot write manifest", err)
	}
	return nil
}

// ReadManifest loads a manifest written by ManifestWriter
func ReadManifest(data []byte) (Manifest, error) {
	var m Manifest
	err := yaml.Unmarshal(data, &m)
	return m, err
}
