package exporter

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVWriter_CreateStreamWriter(t *testing.T) {
	writer, tempDir := setupTestEnv(t)

	tests := []struct {
		name     string
		filePath string
		headers  []string
		bom      bool
		records  [][]string
		expected string
	}{
		{
			name:     "headers and rows",
			filePath: "stream.csv",
			headers:  []string{"Name", "Value"},
			records:  [][]string{{"a", "1"}, {"b", ""}},
			expected: "Name,Value\na,1\nb,\n",
		},
		{
			name:     "no headers",
			filePath: "nested/dir/no_headers.csv",
			records:  [][]string{{"x"}},
			expected: "x\n",
		},
		{
			name:     "with BOM",
			filePath: "bom.csv",
			headers:  []string{"H"},
			bom:      true,
			expected: "\xEF\xBB\xBFH\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stream, err := writer.CreateStreamWriter(tt.filePath, tt.headers, tt.bom)
			require.NoError(t, err)

			for _, rec := range tt.records {
				require.NoError(t, stream.WriteRecord(rec))
			}
			require.NoError(t, stream.Close())

			content, err := os.ReadFile(filepath.Join(tempDir, tt.filePath))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(content))
			assert.Equal(t, tt.bom, bytes.HasPrefix(content, utf8BOM))
		})
	}
}

func TestCSVWriter_CreateStreamWriterError(t *testing.T) {
	writer, tempDir := setupTestEnv(t)

	blocker := filepath.Join(tempDir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))

	_, err := writer.CreateStreamWriter(filepath.Join(blocker, "x.csv"), nil, false)
	assert.Error(t, err)
}
