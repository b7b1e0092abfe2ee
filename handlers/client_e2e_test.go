package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devicelicense/client"
	"devicelicense/models"
)

func TestClientGuard_AgainstServer(t *testing.T) {
	s := newTestServer(t, defaultLimits())
	s.createLicense("ABC123", 1)

	srv := httptest.NewServer(s.handler)
	defer srv.Close()
	ctx := context.Background()

	guardA := client.NewGuard(client.NewAPIClient(srv.URL, nil), &client.MemoryStateStore{}, client.GuardOptions{AppVersion: "1.0.0"})
	guardB := client.NewGuard(client.NewAPIClient(srv.URL, nil), &client.MemoryStateStore{}, client.GuardOptions{AppVersion: "1.0.0"})

	_, err := guardA.Activate(ctx, "ABC123", "device-A", nil)
	require.NoError(t, err)

	res, err := guardA.Check(ctx)
	require.NoError(t, err)
	assert.True(t, res.Valid)
	assert.False(t, res.Offline)

	_, err = guardB.Activate(ctx, "ABC123", "device-B", nil)
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Equal(t, models.CodeQuotaExceeded, apiErr.Code)

	require.NoError(t, guardA.Deactivate(ctx))
	res, err = guardA.Check(ctx)
	require.NoError(t, err)
	assert.Equal(t, client.ReasonNotActivated, res.Reason)

	_, err = guardB.Activate(ctx, "ABC123", "device-B", nil)
	require.NoError(t, err)
}

func TestClientGuard_ZeroOptionsActivate(t *testing.T) {
	s := newTestServer(t, defaultLimits())
	s.createLicense("DEFAULTS-1", 1)

	srv := httptest.NewServer(s.handler)
	defer srv.Close()
	ctx := context.Background()

	guard := client.NewGuard(client.NewAPIClient(srv.URL, nil), &client.MemoryStateStore{}, client.GuardOptions{})
	res, err := guard.Activate(ctx, "DEFAULTS-1", "device-A", nil)
	require.NoError(t, err)
	assert.NotEmpty(t, res.ActivationToken)

	check, err := guard.Check(ctx)
	require.NoError(t, err)
	assert.True(t, check.Valid)
	assert.False(t, check.Offline)
}

func TestClientGuard_RevocationBeatsGrace(t *testing.T) {
	s := newTestServer(t, defaultLimits())
	lic := s.createLicense("REVOKE-ME", 1)

	srv := httptest.NewServer(s.handler)
	defer srv.Close()
	ctx := context.Background()

	store := &client.MemoryStateStore{}
	guard := client.NewGuard(client.NewAPIClient(srv.URL, nil), store, client.GuardOptions{AppVersion: "1.0.0"})
	_, err := guard.Activate(ctx, "REVOKE-ME", "device-A", nil)
	require.NoError(t, err)

	_, err = s.licenses.Revoke(ctx, lic.ID)
	require.NoError(t, err)

	// 방금 검증했으므로 오프라인이었다면 유예 기간 안입니다.
	res, err := guard.Check(ctx)
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.False(t, res.Offline)
	assert.Equal(t, models.ReasonRevoked, res.Reason)
}

func TestClientGuard_StorageDownUsesGrace(t *testing.T) {
	s := newTestServer(t, defaultLimits())
	s.createLicense("OFFLINE-1", 1)

	srv := httptest.NewServer(s.handler)
	defer srv.Close()
	ctx := context.Background()

	guard := client.NewGuard(client.NewAPIClient(srv.URL, nil), &client.MemoryStateStore{}, client.GuardOptions{AppVersion: "1.0.0"})
	_, err := guard.Activate(ctx, "OFFLINE-1", "device-A", nil)
	require.NoError(t, err)

	require.NoError(t, s.db.Close())

	res, err := guard.Check(ctx)
	require.NoError(t, err)
	assert.True(t, res.Valid)
	assert.True(t, res.Offline)
	assert.Contains(t, res.Reason, "offline mode")
}
