package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestActivationTokenCodec_RoundTrip(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	codec := NewActivationTokenCodec(testSecret, 8760*time.Hour).WithClock(fixedClock(now))

	token, expiresAt, err := codec.Issue("lic-1", "act-1", "hash-1")
	require.NoError(t, err)
	assert.Equal(t, now.Add(8760*time.Hour), expiresAt)

	claims, err := codec.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "lic-1", claims.LicenseID)
	assert.Equal(t, "act-1", claims.ActivationID)
	assert.Equal(t, "hash-1", claims.DeviceIDHash)
	assert.Equal(t, TokenTypeActivation, claims.Type)
}

func TestActivationTokenCodec_Expired(t *testing.T) {
	issued := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	codec := NewActivationTokenCodec(testSecret, time.Hour).WithClock(fixedClock(issued))
	token, _, err := codec.Issue("lic-1", "act-1", "hash-1")
	require.NoError(t, err)

	later := codec.WithClock(fixedClock(issued.Add(2 * time.Hour)))
	_, err = later.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestActivationTokenCodec_Tampered(t *testing.T) {
	codec := NewActivationTokenCodec(testSecret, time.Hour)
	token, _, err := codec.Issue("lic-1", "act-1", "hash-1")
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = codec.Verify(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = NewActivationTokenCodec("another-secret-another-secret-xx", time.Hour).Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestActivationTokenCodec_RejectsOtherTypes(t *testing.T) {
	adminToken, _, err := NewAdminTokenCodec(testSecret, time.Hour).Issue("adm-1", "root", "superadmin")
	require.NoError(t, err)

	_, err = NewActivationTokenCodec(testSecret, time.Hour).Verify(adminToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	activationToken, _, err := NewActivationTokenCodec(testSecret, time.Hour).Issue("lic-1", "act-1", "h")
	require.NoError(t, err)
	_, err = NewAdminTokenCodec(testSecret, time.Hour).Verify(activationToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestActivationTokenCodec_RejectsOtherAlgorithms(t *testing.T) {
	claims := &ActivationClaims{
		LicenseID:    "lic-1",
		ActivationID: "act-1",
		Type:         TokenTypeActivation,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = NewActivationTokenCodec(testSecret, time.Hour).Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = NewActivationTokenCodec(testSecret, time.Hour).Verify(none)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestActivationTokenCodec_Garbage(t *testing.T) {
	_, err := NewActivationTokenCodec(testSecret, time.Hour).Verify("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
