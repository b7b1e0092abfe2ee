package handlers

import (
	"net/http"
	"time"

	"devicelicense/metrics"
	"devicelicense/middleware"
	"devicelicense/models"
	"devicelicense/ratelimit"
	"devicelicense/utils"

	httpSwagger "github.com/swaggo/http-swagger"
)

// RateLimits 클라이언트 엔드포인트 제한 설정
type RateLimits struct {
	ActivatePerWindow int
	ValidatePerWindow int
	Window            time.Duration
	// TrustProxyHeaders 리버스 프록시 뒤에서만 켭니다.
	TrustProxyHeaders bool
}

// RouterDeps 라우터 구성에 필요한 의존성
type RouterDeps struct {
	License     *LicenseHandler
	Auth        *AuthHandler
	Admin       *AdminLicenseHandler
	AdminUsers  *AdminUserHandler
	Releases    *ReleaseHandler
	Health      *HealthHandler
	AdminTokens *utils.AdminTokenCodec
	Limiter     ratelimit.Limiter
	Limits      RateLimits
	Metrics     *metrics.Metrics
}

// NewRouter 전체 HTTP 라우트를 등록합니다.
func NewRouter(d RouterDeps) http.Handler {
	mux := http.NewServeMux()

	logging := middleware.LoggingMiddleware(d.Metrics)
	public := func(h http.HandlerFunc, extra ...func(http.HandlerFunc) http.HandlerFunc) http.HandlerFunc {
		chain := append([]func(http.HandlerFunc) http.HandlerFunc{middleware.CORSMiddleware, logging}, extra...)
		return middleware.ChainMiddleware(h, chain...)
	}
	admin := func(h http.HandlerFunc, extra ...func(http.HandlerFunc) http.HandlerFunc) http.HandlerFunc {
		chain := append([]func(http.HandlerFunc) http.HandlerFunc{
			middleware.CORSMiddleware, logging, middleware.AdminAuth(d.AdminTokens),
		}, extra...)
		return middleware.ChainMiddleware(h, chain...)
	}

	// Swagger 문서
	mux.HandleFunc("/swagger/", httpSwagger.WrapHandler)
	mux.Handle("GET /metrics", d.Metrics.Handler())
	mux.HandleFunc("GET /health", d.Health.Health)
	mux.HandleFunc("/", middleware.CORSMiddleware(homeHandler))

	// 클라이언트 엔드포인트
	mux.HandleFunc("POST /api/v1/activate", public(d.License.Activate,
		middleware.RateLimit(d.Limiter, middleware.ActivateRule(d.Limits.ActivatePerWindow, d.Limits.Window, d.Limits.TrustProxyHeaders), d.Metrics)))
	mux.HandleFunc("POST /api/v1/validate", public(d.License.Validate,
		middleware.RateLimit(d.Limiter, middleware.ValidateRule(d.Limits.ValidatePerWindow, d.Limits.Window), d.Metrics)))
	mux.HandleFunc("POST /api/v1/deactivate", public(d.License.Deactivate))
	mux.HandleFunc("GET /api/v1/releases/latest", public(d.Releases.Latest))

	// 관리자 엔드포인트
	mux.HandleFunc("POST /api/admin/login", public(d.Auth.Login))
	mux.HandleFunc("GET /api/admin/licenses", admin(d.Admin.List))
	mux.HandleFunc("POST /api/admin/licenses", admin(d.Admin.Create))
	mux.HandleFunc("GET /api/admin/licenses/{id}", admin(d.Admin.Get))
	mux.HandleFunc("PUT /api/admin/licenses/{id}", admin(d.Admin.Update))
	mux.HandleFunc("POST /api/admin/licenses/{id}/revoke", admin(d.Admin.Revoke))
	mux.HandleFunc("GET /api/admin/licenses/{id}/activations", admin(d.Admin.Activations))
	mux.HandleFunc("GET /api/admin/licenses/{id}/events", admin(d.Admin.Events))
	mux.HandleFunc("POST /api/admin/activations/{id}/revoke", admin(d.Admin.RevokeActivation))
	mux.HandleFunc("POST /api/admin/activations/{id}/reinstate", admin(d.Admin.ReinstateActivation))
	mux.HandleFunc("GET /api/admin/releases", admin(d.Releases.List))
	mux.HandleFunc("POST /api/admin/releases", admin(d.Releases.Create))
	mux.HandleFunc("POST /api/admin/releases/{id}/set-latest", admin(d.Releases.SetLatest))
	mux.HandleFunc("GET /api/admin/dashboard/stats", admin(d.Admin.Stats))
	mux.HandleFunc("GET /api/admin/dashboard/activities", admin(d.Admin.RecentActivities))

	superadmin := middleware.RequireRoles(models.RoleSuperAdmin)
	mux.HandleFunc("GET /api/admin/audit-logs", admin(d.Admin.AuditLogs, superadmin))
	mux.HandleFunc("GET /api/admin/admins", admin(d.AdminUsers.List, superadmin))
	mux.HandleFunc("POST /api/admin/admins", admin(d.AdminUsers.Create, superadmin))
	mux.HandleFunc("POST /api/admin/admins/{id}/reset-password", admin(d.AdminUsers.ResetPassword, superadmin))
	mux.HandleFunc("DELETE /api/admin/admins/{id}", admin(d.AdminUsers.Delete, superadmin))

	return mux
}

// homeHandler 루트 핸들러
func homeHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		middleware.WriteJSON(w, http.StatusNotFound, models.CodedErrorResponse(models.CodeNotFound, "Not found", nil))
		return
	}
	middleware.WriteJSON(w, http.StatusOK, models.SuccessResponse("Device License Server", nil))
}
