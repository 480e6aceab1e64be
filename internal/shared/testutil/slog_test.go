package testutil

import (
	"log/slog"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferedSlogHandler(t *testing.T) {
	logger, handler := NewTestLogger(t)

	logger.Info("first", "k", "v")
	logger.With("component", "processor").Warn("second", "rows", 3)
	logger.Error("third")

	require.Equal(t, 3, handler.Count())
	assert.True(t, handler.ContainsMessage("sec"))
	assert.False(t, handler.ContainsMessage("fourth"))

	found := handler.FindMessage("second")
	require.Len(t, found, 1)
	assert.Equal(t, "processor", found[0].Attrs["component"])
	assert.Equal(t, int64(3), found[0].Attrs["rows"])

	assert.Len(t, handler.GetRecordsByLevel(slog.LevelError), 1)
	AssertLogContains(t, handler, slog.LevelInfo, "first")
}

func TestBufferedSlogHandlerConcurrent(t *testing.T) {
	logger, handler := NewTestLogger(nil)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			logger.With("worker", i).Debug("tick")
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, handler.Count())
	AssertNoErrors(t, handler)
}

func TestWriteCSVFixtures(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "raw")
	WriteCSVFixtures(t, dir, map[string]string{"a.csv": "x\n1\n"})
	assert.FileExists(t, filepath.Join(dir, "a.csv"))
}
