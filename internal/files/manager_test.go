package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_Resolve(t *testing.T) {
	m := NewManager("/base")

	assert.Equal(t, filepath.Join("/base", "out", "a.csv"), m.Resolve("out/a.csv"))
	assert.Equal(t, "/abs/a.csv", m.Resolve("/abs/a.csv"))
	assert.Equal(t, "rel.csv", NewManager("").Resolve("rel.csv"))
}

func TestManager_Create(t *testing.T) {
	tmpDir := t.TempDir()
	m := NewManager(tmpDir)

	f, err := m.Create("processed/deep/combined.csv")
	require.NoError(t, err)
	_, err = f.WriteString("hello")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	assert.True(t, m.FileExists("processed/deep/combined.csv"))
	content, err := os.ReadFile(filepath.Join(tmpDir, "processed", "deep", "combined.csv"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(content))

	// second create truncates
	f, err = m.Create("processed/deep/combined.csv")
	require.NoError(t, err)
	require.NoError(t, f.Close())
	content, err = os.ReadFile(filepath.Join(tmpDir, "processed", "deep", "combined.csv"))
	require.NoError(t, err)
	assert.Empty(t, content)
}

func TestManager_WriteFile(t *testing.T) {
	tmpDir := t.TempDir()
	m := NewManager(tmpDir)

	require.NoError(t, m.WriteFile("reports/manifest.yaml", []byte("files: []\n")))

	content, err := os.ReadFile(filepath.Join(tmpDir, "reports", "manifest.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "files: []\n", string(content))
}

func TestManager_EnsureParentDirFailsUnderFile(t *testing.T) {
	tmpDir := t.TempDir()
	blocker := filepath.Join(tmpDir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	m := NewManager(tmpDir)
	err := m.EnsureParentDir("blocker/out.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create directory")
	assert.False(t, m.FileExists("blocker/out.csv"))
}
