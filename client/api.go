package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"runtime"
	"strings"
	"time"

	"devicelicense/models"
)

const maxResponseBody = 1 << 20

// APIError 서버가 명시적으로 거절한 응답 (재시도해도 결과가 같음)
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Reason     string
}

func (e *APIError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("license server: %s (%s: %s)", e.Message, e.Code, e.Reason)
	}
	return fmt.Sprintf("license server: %s (%s)", e.Message, e.Code)
}

// TransportError 서버에 도달하지 못했거나 판단을 받지 못한 경우
// 네트워크 오류, 5xx, 429 가 여기에 해당하며 유예 기간 적용 대상입니다.
type TransportError struct {
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("license server unreachable: status %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("license server unreachable: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// IsTransport 유예 기간으로 넘어가야 하는 에러인지 확인
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// LicenseAPI 라이선스 서버 클라이언트 인터페이스
type LicenseAPI interface {
	Activate(ctx context.Context, req models.ActivateRequest) (*models.ActivateResponse, error)
	Validate(ctx context.Context, token, appVersion string) (*models.ValidateResponse, error)
	Deactivate(ctx context.Context, token string) (*models.DeactivateResponse, error)
}

// APIClient HTTP 라이선스 서버 클라이언트
type APIClient struct {
	baseURL string
	http    *http.Client
}

// NewAPIClient 클라이언트 생성. httpClient 가 nil 이면 10초 타임아웃 기본 클라이언트를 사용합니다.
func NewAPIClient(baseURL string, httpClient *http.Client) *APIClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &APIClient{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

// Activate 라이선스 키로 디바이스 활성화
func (c *APIClient) Activate(ctx context.Context, req models.ActivateRequest) (*models.ActivateResponse, error) {
	var out models.ActivateResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/activate", "", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Validate 활성화 토큰 검증. 무효 판정도 에러 없이 Valid=false 로 반환됩니다.
func (c *APIClient) Validate(ctx context.Context, token, appVersion string) (*models.ValidateResponse, error) {
	var out models.ValidateResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/validate", token, models.ValidateRequest{AppVersion: appVersion}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Deactivate 현재 디바이스의 활성화 해제
func (c *APIClient) Deactivate(ctx context.Context, token string) (*models.DeactivateResponse, error) {
	var out models.DeactivateResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/deactivate", token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// LatestRelease 현재 버전보다 새 릴리스가 있는지 확인
func (c *APIClient) LatestRelease(ctx context.Context, platform, currentVersion string) (*models.LatestReleaseResponse, error) {
	q := url.Values{}
	q.Set("platform", platform)
	q.Set("current_version", currentVersion)

	var out models.LatestReleaseResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/releases/latest?"+q.Encode(), "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Platform 릴리스 채널에서 쓰는 현재 OS 이름
func Platform() string {
	switch runtime.GOOS {
	case "darwin":
		return "macos"
	default:
		return runtime.GOOS
	}
}

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Code    string          `json:"code"`
	Data    json.RawMessage `json:"data"`
}

func (c *APIClient) do(ctx context.Context, method, path, token string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return &TransportError{StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
		return &TransportError{StatusCode: resp.StatusCode, Err: errors.New(http.StatusText(resp.StatusCode))}
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		// 프록시 에러 페이지처럼 서버가 보낸 응답이 아닐 수 있습니다.
		return &TransportError{StatusCode: resp.StatusCode, Err: fmt.Errorf("unexpected response body: %w", err)}
	}

	if resp.StatusCode >= 300 || env.Status != "success" {
		apiErr := &APIError{StatusCode: resp.StatusCode, Code: env.Code, Message: env.Message}
		var data struct {
			Reason string `json:"reason"`
		}
		if len(env.Data) > 0 && json.Unmarshal(env.Data, &data) == nil {
			apiErr.Reason = data.Reason
		}
		return apiErr
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return &TransportError{StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to decode response data: %w", err)}
		}
	}
	return nil
}
