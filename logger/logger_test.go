package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, DEBUG, ParseLevel("debug"))
	assert.Equal(t, WARN, ParseLevel("WARNING"))
	assert.Equal(t, ERROR, ParseLevel(" error "))
	assert.Equal(t, INFO, ParseLevel("nonsense"))
}

func TestLogger_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Config{Level: WARN, Console: &buf})
	require.NoError(t, err)

	l.WithFields(nil).Info("hidden")
	l.WithFields(nil).Warn("shown %d", 1)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[WARN] shown 1")
}

func TestLogEntry_FieldsAreSorted(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Config{Level: DEBUG, Console: &buf})
	require.NoError(t, err)

	l.WithFields(map[string]interface{}{
		"zeta":  1,
		"alpha": "a",
	}).Info("activation")

	assert.Contains(t, buf.String(), "activation | alpha=a, zeta=1")
}

func TestLogger_WritesDailyFile(t *testing.T) {
	dir := t.TempDir()
	var buf bytes.Buffer
	l, err := New(Config{Level: INFO, Console: &buf, LogDir: dir})
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })

	l.WithFields(nil).Error("disk line")

	path := filepath.Join(dir, "server-"+time.Now().Format("2006-01-02")+".log")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "[ERROR] disk line"))
}
