package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func fileOnly(t *testing.T, level, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, InitWithFileConfig(level, FileConfig{Path: path, MaxSizeMB: 10}, false))
	t.Cleanup(func() {
		Log = zap.NewNop()
		Sugar = Log.Sugar()
	})
	return path
}

func readLog(t *testing.T, path string) string {
	t.Helper()
	Sync()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}

func TestRotatesLargeLogs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "viewer.log")
	require.NoError(t, InitWithFileConfig("debug", FileConfig{Path: path, MaxSizeMB: 1, MaxBackups: 2}, false))
	t.Cleanup(func() {
		Log = zap.NewNop()
		Sugar = Log.Sugar()
	})

	// Roughly 3MB, enough for lumberjack's 1MB minimum to rotate.
	payload := strings.Repeat("v", 200)
	for i := 0; i < 15000; i++ {
		Sugar.Debugf("frame %d: %s", i, payload)
	}
	Sync()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var rotated int
	for _, e := range entries {
		if e.Name() != "viewer.log" && strings.HasPrefix(e.Name(), "viewer-") {
			rotated++
		}
	}
	assert.FileExists(t, path)
	assert.Positive(t, rotated, "expected at least one rotated file in %v", entries)
}

func TestLevelFiltering(t *testing.T) {
	all := []string{"DEBUG", "INFO", "WARN", "ERROR"}
	tests := []struct {
		level string
		keep  int // entries from the end of all that pass
	}{
		{"debug", 4},
		{"info", 3},
		{"warn", 2},
		{"error", 1},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			path := fileOnly(t, tt.level, tt.level+".log")
			Debug("d")
			Info("i")
			Warn("w")
			Error("e")

			out := readLog(t, path)
			cut := len(all) - tt.keep
			for _, lvl := range all[cut:] {
				assert.Contains(t, out, lvl)
			}
			for _, lvl := range all[:cut] {
				assert.NotContains(t, out, lvl)
			}
		})
	}
}

func TestDefaultFileConfig(t *testing.T) {
	assert.Equal(t, FileConfig{
		Path:       "logs/viewer.log",
		MaxSizeMB:  10,
		MaxBackups: 3,
		MaxAgeDays: 7,
		Compress:   true,
	}, DefaultFileConfig("logs/viewer.log"))
}

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"DEBUG":   zapcore.DebugLevel,
		"info":    zapcore.InfoLevel,
		"warn":    zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"fatal":   zapcore.InfoLevel,
		"verbose": zapcore.InfoLevel,
		"":        zapcore.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), "level %q", in)
	}
}

func TestNoOutputIsAnError(t *testing.T) {
	before := Log
	assert.Error(t, InitWithFileConfig("info", FileConfig{}, false))
	assert.Same(t, before, Log)
}

func TestNamedLoggerTagsComponent(t *testing.T) {
	path := fileOnly(t, "info", "named.log")

	Named("scheme").Info("light placed", zap.Float32("radius", 1.5))

	out := readLog(t, path)
	assert.Contains(t, out, "scheme")
	assert.Contains(t, out, "light placed")
	assert.Contains(t, out, "1.5")
}
