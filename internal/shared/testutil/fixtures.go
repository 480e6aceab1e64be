package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteCSVFixtures writes name -> content files into dir, creating it first
func WriteCSVFixtures(t *testing.T, dir string, files map[string]string) {
	t.Helper()

	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("create fixture dir %s: %v", dir, err)
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("write fixture %s: %v", name, err)
		}
	}
}
