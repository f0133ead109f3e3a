package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsolatedLoggerWritesJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.log")
	l := NewIsolatedLogger(path)

	l.Info("CATALOG", "Tobacco created", map[string]interface{}{"name": "Al Fakher"})
	l.Debug("CATALOG", "below file level", nil)
	_ = l.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "Tobacco created", entry["message"])
	assert.Equal(t, "CATALOG", entry["module"])
	assert.Equal(t, "Al Fakher", entry["details"].(map[string]interface{})["name"])
}

func TestNopLogger(t *testing.T) {
	l := NewNopLogger()

	assert.NotPanics(t, func() {
		l.Error("TEST", "ignored", map[string]interface{}{"error": "boom"})
		_ = l.Sync()
	})
}
