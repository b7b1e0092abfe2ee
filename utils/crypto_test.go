package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashDeviceFingerprint(t *testing.T) {
	unsalted := HashDeviceFingerprint("device-A", "")
	sum := sha256.Sum256([]byte("device-A"))
	assert.Equal(t, hex.EncodeToString(sum[:]), unsalted)

	salted := HashDeviceFingerprint("device-A", "deploy-1")
	sum = sha256.Sum256([]byte("device-A:deploy-1"))
	assert.Equal(t, hex.EncodeToString(sum[:]), salted)

	assert.Len(t, salted, 64)
	assert.Equal(t, salted, HashDeviceFingerprint("device-A", "deploy-1"), "deterministic")
	assert.NotEqual(t, salted, HashDeviceFingerprint("device-A", "deploy-2"), "salt separates deployments")
	assert.NotContains(t, salted, "device-A")
}

func TestComposeDeviceFingerprint(t *testing.T) {
	a := ComposeDeviceFingerprint("cpu", " ", "mac")
	b := ComposeDeviceFingerprint("cpu", "mac")
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, ComposeDeviceFingerprint("mac", "cpu"))
}

func TestGenerateLicenseKey(t *testing.T) {
	key, err := GenerateLicenseKey()
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^[0-9A-F]{4}-[0-9A-F]{4}-[0-9A-F]{4}-[0-9A-F]{4}$`), key)
}

func TestGenerateID(t *testing.T) {
	id, err := GenerateID("act")
	require.NoError(t, err)
	assert.Regexp(t, `^act-[0-9a-f]{16}$`, id)

	other, err := GenerateID("act")
	require.NoError(t, err)
	assert.NotEqual(t, id, other)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.True(t, CheckPassword(hash, "s3cret"))
	assert.False(t, CheckPassword(hash, "wrong"))
}

func TestGenerateTempPassword(t *testing.T) {
	pw, err := GenerateTempPassword(12)
	require.NoError(t, err)
	assert.Len(t, pw, 12)
	assert.NotContains(t, pw, "0")
	assert.NotContains(t, pw, "O")

	short, err := GenerateTempPassword(3)
	require.NoError(t, err)
	assert.Len(t, short, 8)
}
