package middleware

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"strings"
	"time"

	"devicelicense/logger"
	"devicelicense/metrics"
	"devicelicense/models"

	"github.com/google/uuid"
)

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	adminKey     contextKey = "admin"
)

// responseWriter HTTP 응답을 캡처하기 위한 래퍼
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.written += n
	return n, err
}

// LoggingMiddleware HTTP 요청/응답 로깅 및 지연 시간 메트릭
func LoggingMiddleware(m *metrics.Metrics) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rw := &responseWriter{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			// 요청 ID 생성 (추적용)
			requestID := uuid.NewString()
			ctx := context.WithValue(r.Context(), requestIDKey, requestID)
			rw.Header().Set("X-Request-ID", requestID)

			// 토큰이나 핑거프린트는 로그에 남기지 않습니다.
			logger.WithFields(map[string]interface{}{
				"request_id": requestID,
				"method":     r.Method,
				"path":       r.URL.Path,
				"ip":         ClientIP(r),
				"user_agent": r.UserAgent(),
			}).Info("HTTP Request")

			next.ServeHTTP(rw, r.WithContext(ctx))

			duration := time.Since(start)
			m.ObserveRequest(r.Method, rw.statusCode, duration)

			logger.WithFields(map[string]interface{}{
				"request_id":  requestID,
				"method":      r.Method,
				"path":        r.URL.Path,
				"status":      rw.statusCode,
				"duration_ms": duration.Milliseconds(),
				"size":        rw.written,
			}).Log(getLogLevelForStatus(rw.statusCode), "HTTP Response")
		}
	}
}

// getLogLevelForStatus 상태 코드에 따른 로그 레벨 결정
func getLogLevelForStatus(statusCode int) logger.LogLevel {
	switch {
	case statusCode >= 500:
		return logger.ERROR
	case statusCode >= 400:
		return logger.WARN
	default:
		return logger.INFO
	}
}

// RequestID 컨텍스트의 요청 ID
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// RemoteIP 프록시 헤더를 무시한 직접 연결 주소
func RemoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// ClientIP 클라이언트 IP 추출. 헤더는 누구나 보낼 수 있으므로 로그 용도로만 씁니다.
func ClientIP(r *http.Request) string {
	// X-Forwarded-For 헤더 확인 (프록시 환경)
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}

	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}

	return RemoteIP(r)
}

// BearerToken Authorization: Bearer <token> 헤더에서 토큰 추출
func BearerToken(r *http.Request) (string, bool) {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// WriteJSON 상태 코드와 함께 JSON 응답 작성
func WriteJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("Failed to encode response: %v", err)
	}
}

// SetJSONHeader JSON 헤더 설정 미들웨어
func SetJSONHeader(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	}
}

// CORSMiddleware CORS 설정 미들웨어
func CORSMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	}
}

// ChainMiddleware 미들웨어 체인
func ChainMiddleware(handler http.HandlerFunc, middlewares ...func(http.HandlerFunc) http.HandlerFunc) http.HandlerFunc {
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}
	return handler
}

func unauthorized(w http.ResponseWriter, message string) {
	WriteJSON(w, http.StatusUnauthorized, models.CodedErrorResponse(models.CodeUnauthorized, message, nil))
}
