package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devicelicense/models"
)

func jsonServer(t *testing.T, status int, body interface{}) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestAPIClient_ValidateSendsBearerToken(t *testing.T) {
	var gotAuth, gotPath string
	var gotBody models.ValidateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.SuccessResponse("Validation completed", models.ValidateResponse{
			Valid:  false,
			Reason: models.ReasonRevoked,
		}))
	}))
	defer srv.Close()

	c := NewAPIClient(srv.URL+"/", nil)
	res, err := c.Validate(context.Background(), "tok-1", "1.2.0")
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-1", gotAuth)
	assert.Equal(t, "/api/v1/validate", gotPath)
	assert.Equal(t, "1.2.0", gotBody.AppVersion)
	assert.False(t, res.Valid)
	assert.Equal(t, models.ReasonRevoked, res.Reason)
}

func TestAPIClient_ClassifiesFailures(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      interface{}
		transport bool
		code      string
		reason    string
	}{
		{
			name:   "forbidden is definitive",
			status: http.StatusForbidden,
			body:   models.CodedErrorResponse(models.CodeDeviceRevoked, "Device revoked", nil),
			code:   models.CodeDeviceRevoked,
		},
		{
			name:   "invalid carries reason",
			status: http.StatusForbidden,
			body:   models.CodedErrorResponse(models.CodeInvalid, "License not valid", map[string]string{"reason": "expired"}),
			code:   models.CodeInvalid,
			reason: "expired",
		},
		{
			name:   "not found is definitive",
			status: http.StatusNotFound,
			body:   models.CodedErrorResponse(models.CodeNotFound, "License not found", nil),
			code:   models.CodeNotFound,
		},
		{
			name:      "server error goes to grace",
			status:    http.StatusInternalServerError,
			body:      models.CodedErrorResponse(models.CodeInternal, "boom", nil),
			transport: true,
		},
		{
			name:      "unavailable goes to grace",
			status:    http.StatusServiceUnavailable,
			body:      models.CodedErrorResponse(models.CodeUnavailable, "storage not ready", nil),
			transport: true,
		},
		{
			name:      "rate limited goes to grace",
			status:    http.StatusTooManyRequests,
			body:      models.CodedErrorResponse(models.CodeRateLimited, "slow down", nil),
			transport: true,
		},
		{
			name:      "non json body goes to grace",
			status:    http.StatusBadGateway,
			body:      "<html>bad gateway</html>",
			transport: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := jsonServer(t, tt.status, tt.body)
			_, err := NewAPIClient(srv.URL, nil).Activate(context.Background(), models.ActivateRequest{
				LicenseKey:        "ABC123",
				DeviceFingerprint: "fp",
				AppVersion:        "1.0.0",
			})
			require.Error(t, err)

			if tt.transport {
				assert.True(t, IsTransport(err))
				return
			}
			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.False(t, IsTransport(err))
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.code, apiErr.Code)
			assert.Equal(t, tt.reason, apiErr.Reason)
		})
	}
}

func TestAPIClient_ConnectionRefusedIsTransport(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewAPIClient(url, nil).Validate(context.Background(), "tok", "")
	require.Error(t, err)
	assert.True(t, IsTransport(err))
}

func TestAPIClient_DecodesActivateResponse(t *testing.T) {
	srv := jsonServer(t, http.StatusCreated, models.SuccessResponse("License activated successfully", models.ActivateResponse{
		ActivationToken: "tok-xyz",
		License:         models.LicenseView{ID: "lic_1", MaxActivations: 1, Status: "active"},
		Activation:      models.ActivationView{ID: "act_1"},
		GraceDays:       7,
	}))

	res, err := NewAPIClient(srv.URL, nil).Activate(context.Background(), models.ActivateRequest{LicenseKey: "ABC123"})
	require.NoError(t, err)
	assert.Equal(t, "tok-xyz", res.ActivationToken)
	assert.Equal(t, "lic_1", res.License.ID)
	assert.Equal(t, "act_1", res.Activation.ID)
	assert.Equal(t, 7, res.GraceDays)
}

func TestAPIClient_LatestRelease(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.SuccessResponse("Release check completed", models.LatestReleaseResponse{
			UpdateAvailable: true,
			LatestVersion:   "1.2.0",
			DownloadURL:     "https://example.com/app.exe",
		}))
	}))
	defer srv.Close()

	res, err := NewAPIClient(srv.URL, nil).LatestRelease(context.Background(), "windows", "1.0.0")
	require.NoError(t, err)
	assert.Equal(t, "current_version=1.0.0&platform=windows", gotQuery)
	assert.True(t, res.UpdateAvailable)
	assert.Equal(t, "1.2.0", res.LatestVersion)
}
