package middleware

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"devicelicense/logger"
	"devicelicense/metrics"
	"devicelicense/models"
	"devicelicense/ratelimit"
)

// RateLimitRule 라우트별 제한 규칙
type RateLimitRule struct {
	Route  string // 메트릭 라벨
	Limit  int
	Window time.Duration
	// Key 요청에서 제한 키를 만듭니다. false 면 제한하지 않고 통과시킵니다.
	Key func(r *http.Request) (string, bool)
}

// ActivateRule 클라이언트 IP 기준 활성화 제한.
// trustProxyHeaders 가 false 면 X-Forwarded-For 를 무시하고 연결 주소로 제한합니다.
func ActivateRule(limit int, window time.Duration, trustProxyHeaders bool) RateLimitRule {
	ip := RemoteIP
	if trustProxyHeaders {
		ip = ClientIP
	}
	return RateLimitRule{
		Route:  "activate",
		Limit:  limit,
		Window: window,
		Key: func(r *http.Request) (string, bool) {
			return ratelimit.ActivateKey(ip(r)), true
		},
	}
}

// ValidateRule 토큰 기준 검증 제한. 토큰이 없으면 핸들러가 401 로 처리합니다.
func ValidateRule(limit int, window time.Duration) RateLimitRule {
	return RateLimitRule{
		Route:  "validate",
		Limit:  limit,
		Window: window,
		Key: func(r *http.Request) (string, bool) {
			token, ok := BearerToken(r)
			if !ok {
				return "", false
			}
			return ratelimit.ValidateKey(token), true
		},
	}
}

// RateLimit 슬라이딩 윈도우 제한 미들웨어. 리미터 장애 시에는 요청을 통과시킵니다.
func RateLimit(limiter ratelimit.Limiter, rule RateLimitRule, m *metrics.Metrics) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			key, ok := rule.Key(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			res, err := limiter.Allow(r.Context(), key, rule.Limit, rule.Window)
			if err != nil {
				logger.WithFields(map[string]interface{}{
					"request_id": RequestID(r.Context()),
					"route":      rule.Route,
					"error":      err,
				}).Error("Rate limiter unavailable, allowing request")
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rule.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))

			if !res.Allowed {
				m.ObserveRateLimited(rule.Route)
				retryAfter := int(math.Ceil(res.RetryAfter.Seconds()))
				if retryAfter < 1 {
					retryAfter = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				logger.WithFields(map[string]interface{}{
					"request_id":  RequestID(r.Context()),
					"route":       rule.Route,
					"ip":          ClientIP(r),
					"retry_after": retryAfter,
				}).Warn("Rate limit exceeded")
				WriteJSON(w, http.StatusTooManyRequests, models.CodedErrorResponse(
					models.CodeRateLimited,
					"Too many requests. Please try again later.",
					map[string]int{"retry_after": retryAfter},
				))
				return
			}

			next.ServeHTTP(w, r)
		}
	}
}
