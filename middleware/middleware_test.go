package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"devicelicense/models"
	"devicelicense/ratelimit"
	"devicelicense/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) models.APIResponse {
	t.Helper()
	var resp models.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name   string
		header map[string]string
		remote string
		want   string
	}{
		{"forwarded first hop", map[string]string{"X-Forwarded-For": "203.0.113.5, 10.0.0.1"}, "10.0.0.1:1234", "203.0.113.5"},
		{"real ip", map[string]string{"X-Real-IP": "198.51.100.7"}, "10.0.0.1:1234", "198.51.100.7"},
		{"remote addr", nil, "192.0.2.1:5555", "192.0.2.1"},
		{"ipv6 remote addr", nil, "[2001:db8::1]:443", "2001:db8::1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remote
			for k, v := range tt.header {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, ClientIP(r))
		})
	}
}

func TestRemoteIPIgnoresHeaders(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "192.0.2.9:4000"
	r.Header.Set("X-Forwarded-For", "203.0.113.5")
	r.Header.Set("X-Real-IP", "198.51.100.7")
	assert.Equal(t, "192.0.2.9", RemoteIP(r))
}

func TestBearerToken(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := BearerToken(r)
	assert.False(t, ok)

	r.Header.Set("Authorization", "Basic abc")
	_, ok = BearerToken(r)
	assert.False(t, ok)

	r.Header.Set("Authorization", "Bearer abc.def.ghi")
	token, ok := BearerToken(r)
	assert.True(t, ok)
	assert.Equal(t, "abc.def.ghi", token)

	r.Header.Set("Authorization", "Bearer ")
	_, ok = BearerToken(r)
	assert.False(t, ok)
}

func TestChainMiddlewareOrder(t *testing.T) {
	var order []string
	mark := func(name string) func(http.HandlerFunc) http.HandlerFunc {
		return func(next http.HandlerFunc) http.HandlerFunc {
			return func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next(w, r)
			}
		}
	}
	h := ChainMiddleware(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}, mark("a"), mark("b"))

	h(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, []string{"a", "b", "handler"}, order)
}

func TestLoggingMiddlewareSetsRequestID(t *testing.T) {
	var seen string
	h := LoggingMiddleware(nil)(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestID(r.Context())
		w.WriteHeader(http.StatusTeapot)
	})

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get("X-Request-ID"))
}

func TestAdminAuth(t *testing.T) {
	codec := utils.NewAdminTokenCodec(testSecret, time.Hour)
	activationCodec := utils.NewActivationTokenCodec(testSecret, time.Hour)

	var got AdminIdentity
	h := AdminAuth(codec)(func(w http.ResponseWriter, r *http.Request) {
		got, _ = AdminFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	t.Run("missing header", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, models.CodeUnauthorized, decodeBody(t, rec).Code)
	})

	t.Run("activation token rejected", func(t *testing.T) {
		token, _, err := activationCodec.Issue("lic-1", "act-1", "hash")
		require.NoError(t, err)
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		h(rec, r)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid admin token", func(t *testing.T) {
		token, _, err := codec.Issue("adm-1", "root", models.RoleSuperAdmin)
		require.NoError(t, err)
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		h(rec, r)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, AdminIdentity{ID: "adm-1", Username: "root", Role: models.RoleSuperAdmin}, got)
	})
}

func TestRequireRoles(t *testing.T) {
	h := RequireRoles(models.RoleSuperAdmin)(okHandler)

	withRole := func(role string) *http.Request {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		ctx := context.WithValue(r.Context(), adminKey, AdminIdentity{ID: "adm-1", Role: role})
		return r.WithContext(ctx)
	}

	rec := httptest.NewRecorder()
	h(rec, withRole(models.RoleAdmin))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = httptest.NewRecorder()
	h(rec, withRole(models.RoleSuperAdmin))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRateLimitActivateRule(t *testing.T) {
	limiter := ratelimit.NewMemoryLimiter()
	h := RateLimit(limiter, ActivateRule(2, time.Minute, false), nil)(okHandler)

	call := func(ip string) *httptest.ResponseRecorder {
		r := httptest.NewRequest(http.MethodPost, "/api/v1/activate", nil)
		r.RemoteAddr = ip + ":1234"
		rec := httptest.NewRecorder()
		h(rec, r)
		return rec
	}

	assert.Equal(t, http.StatusOK, call("192.0.2.1").Code)
	rec := call("192.0.2.1")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))

	rec = call("192.0.2.1")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.Equal(t, models.CodeRateLimited, decodeBody(t, rec).Code)

	assert.Equal(t, http.StatusOK, call("192.0.2.2").Code, "other clients are unaffected")
}

func TestRateLimitActivateRuleIgnoresForwardedForUnlessTrusted(t *testing.T) {
	call := func(h http.HandlerFunc, forwarded string) int {
		r := httptest.NewRequest(http.MethodPost, "/api/v1/activate", nil)
		r.RemoteAddr = "192.0.2.1:1234"
		r.Header.Set("X-Forwarded-For", forwarded)
		rec := httptest.NewRecorder()
		h(rec, r)
		return rec.Code
	}

	direct := RateLimit(ratelimit.NewMemoryLimiter(), ActivateRule(1, time.Minute, false), nil)(okHandler)
	assert.Equal(t, http.StatusOK, call(direct, "203.0.113.1"))
	assert.Equal(t, http.StatusTooManyRequests, call(direct, "203.0.113.2"), "rotating the header must not reset the limit")

	proxied := RateLimit(ratelimit.NewMemoryLimiter(), ActivateRule(1, time.Minute, true), nil)(okHandler)
	assert.Equal(t, http.StatusOK, call(proxied, "203.0.113.1"))
	assert.Equal(t, http.StatusOK, call(proxied, "203.0.113.2"), "behind a proxy each forwarded client has its own window")
	assert.Equal(t, http.StatusTooManyRequests, call(proxied, "203.0.113.1"))
}

func TestRateLimitValidateRuleSkipsMissingToken(t *testing.T) {
	limiter := ratelimit.NewMemoryLimiter()
	h := RateLimit(limiter, ValidateRule(1, time.Minute), nil)(okHandler)

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodPost, "/api/v1/validate", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
	assert.Equal(t, 0, limiter.Len())
}

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string, int, time.Duration) (ratelimit.Result, error) {
	return ratelimit.Result{}, errors.New("redis down")
}

func TestRateLimitFailsOpen(t *testing.T) {
	h := RateLimit(failingLimiter{}, ActivateRule(1, time.Minute, false), nil)(okHandler)
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodPost, "/api/v1/activate", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDecodeJSON(t *testing.T) {
	decode := func(body string) (models.ActivateRequest, error) {
		var req models.ActivateRequest
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		err := DecodeJSON(httptest.NewRecorder(), r, &req)
		return req, err
	}

	req, err := decode(`{"license_key":"ABC123","device_fingerprint":"fp","app_version":"1.0.0"}`)
	require.NoError(t, err)
	assert.Equal(t, "ABC123", req.LicenseKey)

	_, err = decode(`{"license_key":"ABC123"}`)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	fields := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		fields = append(fields, f.Field)
	}
	assert.ElementsMatch(t, []string{"device_fingerprint", "app_version"}, fields)
	assert.Contains(t, err.Error(), "device_fingerprint is required")

	_, err = decode(`{not json`)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Invalid request body", verr.Message)

	_, err = decode(``)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Request body is required", verr.Message)
}

func TestDecodeOptionalJSONAcceptsEmptyBody(t *testing.T) {
	var req models.ValidateRequest
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	assert.NoError(t, DecodeOptionalJSON(httptest.NewRecorder(), r, &req))
}
