package client

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStateStore_MissingFileIsEmpty(t *testing.T) {
	s := NewFileStateStore(filepath.Join(t.TempDir(), "state.json"))

	st, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, st.ActivationToken)
	assert.Nil(t, st.LastValidationAt)
}

func TestFileStateStore_SaveLoadClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.json")
	s := NewFileStateStore(path)

	validated := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	expires := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.Save(State{
		ActivationToken:  "tok",
		LastValidationAt: &validated,
		LicenseExpiresAt: &expires,
	}))

	st, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok", st.ActivationToken)
	require.NotNil(t, st.LastValidationAt)
	assert.True(t, validated.Equal(*st.LastValidationAt))
	require.NotNil(t, st.LicenseExpiresAt)
	assert.True(t, expires.Equal(*st.LicenseExpiresAt))

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file should not be left behind")

	require.NoError(t, s.Clear())
	require.NoError(t, s.Clear(), "clearing twice is fine")
	st, err = s.Load()
	require.NoError(t, err)
	assert.Empty(t, st.ActivationToken)
}

func TestFileStateStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("invalid json {"), 0600))

	_, err := NewFileStateStore(path).Load()
	assert.Error(t, err)
}

func TestDeviceFingerprint_Stable(t *testing.T) {
	a := DeviceFingerprint()
	b := DeviceFingerprint()
	assert.Len(t, a, 64)
	assert.Equal(t, a, b)
}
