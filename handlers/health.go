package handlers

import (
	"context"
	"net/http"
	"time"

	"devicelicense/logger"
	"devicelicense/middleware"
	"devicelicense/models"
)

// Pinger 저장소 연결 확인
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler 헬스체크 핸들러
type HealthHandler struct {
	db      Pinger
	version string
}

// NewHealthHandler는 헬스체크 핸들러를 생성한다.
func NewHealthHandler(db Pinger, version string) *HealthHandler {
	return &HealthHandler{db: db, version: version}
}

// Health 서버 및 데이터베이스 상태
// @Summary 헬스체크
// @Tags 시스템
// @Produce json
// @Success 200 {object} models.APIResponse "정상"
// @Failure 503 {object} models.APIResponse "데이터베이스 연결 불가"
// @Router /health [get]
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		logger.Warn("Health check failed: %v", err)
		middleware.WriteJSON(w, http.StatusServiceUnavailable,
			models.CodedErrorResponse(models.CodeUnavailable, "Database unavailable", nil))
		return
	}

	middleware.WriteJSON(w, http.StatusOK, models.SuccessResponse("Server is healthy", map[string]string{
		"version": h.version,
	}))
}
