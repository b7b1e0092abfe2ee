package handlers

import (
	"errors"
	"net/http"

	"devicelicense/logger"
	"devicelicense/middleware"
	"devicelicense/models"
	"devicelicense/services"
)

// ReleaseHandler 앱 릴리스 핸들러
type ReleaseHandler struct {
	releases services.ReleaseService
	admins   services.AdminService
}

// NewReleaseHandler 릴리스 핸들러 생성
func NewReleaseHandler(releases services.ReleaseService, admins services.AdminService) *ReleaseHandler {
	return &ReleaseHandler{releases: releases, admins: admins}
}

// Latest 업데이트 확인
// @Summary 최신 릴리스 확인
// @Description current_version 보다 새로운 latest 릴리스가 있으면 다운로드 정보를 반환합니다
// @Tags 클라이언트 - 릴리스
// @Produce json
// @Param platform query string false "플랫폼 (windows, macos, linux)" default(windows)
// @Param current_version query string false "현재 앱 버전" default(0.0.0)
// @Success 200 {object} models.APIResponse{data=models.LatestReleaseResponse} "확인 성공"
// @Failure 503 {object} models.APIResponse "저장소 일시 장애"
// @Router /api/v1/releases/latest [get]
func (h *ReleaseHandler) Latest(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	current := q.Get("current_version")
	if current == "" {
		current = "0.0.0"
	}

	res, err := h.releases.Latest(r.Context(), q.Get("platform"), current)
	if err != nil {
		writeAdminError(w, middleware.RequestID(r.Context()), err, "Failed to check latest release")
		return
	}
	middleware.WriteJSON(w, http.StatusOK, models.SuccessResponse("Release check completed", res))
}

// List 릴리스 목록
// @Summary 릴리스 목록
// @Description 등록된 릴리스를 최신순으로 조회합니다
// @Tags 관리자 - 릴리스
// @Produce json
// @Security BearerAuth
// @Param platform query string false "플랫폼 필터"
// @Success 200 {object} models.APIResponse{data=[]models.Release} "조회 성공"
// @Router /api/admin/releases [get]
func (h *ReleaseHandler) List(w http.ResponseWriter, r *http.Request) {
	releases, err := h.releases.List(r.Context(), r.URL.Query().Get("platform"))
	if err != nil {
		writeAdminError(w, middleware.RequestID(r.Context()), err, "Failed to list releases")
		return
	}
	middleware.WriteJSON(w, http.StatusOK, models.SuccessResponse("Releases retrieved", releases))
}

// Create 릴리스 등록
// @Summary 릴리스 등록
// @Description is_latest 가 true 면 같은 플랫폼의 기존 latest 는 해제됩니다
// @Tags 관리자 - 릴리스
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateReleaseRequest true "릴리스 정보"
// @Success 201 {object} models.APIResponse{data=models.Release} "등록 성공"
// @Failure 400 {object} models.APIResponse "잘못된 요청"
// @Failure 409 {object} models.APIResponse "중복 버전"
// @Router /api/admin/releases [post]
func (h *ReleaseHandler) Create(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.RequestID(r.Context())

	var req models.CreateReleaseRequest
	if err := middleware.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, requestID, err)
		return
	}

	actor := actorFrom(r)
	release, err := h.releases.Create(r.Context(), actor, req)
	if err != nil {
		writeReleaseError(w, requestID, err, "Failed to create release")
		return
	}

	logger.WithFields(map[string]interface{}{
		"request_id": requestID,
		"release_id": release.ID,
		"platform":   release.Platform,
		"version":    release.Version,
		"latest":     release.IsLatest,
	}).Info("Release created")
	h.admins.Record(r.Context(), actor, models.AdminActionCreateRelease, release.Platform+" "+release.Version)

	middleware.WriteJSON(w, http.StatusCreated, models.SuccessResponse("Release created", release))
}

// SetLatest latest 릴리스 지정
// @Summary latest 릴리스 지정
// @Description 해당 릴리스를 플랫폼의 latest 로 지정합니다 (롤백에도 사용)
// @Tags 관리자 - 릴리스
// @Produce json
// @Security BearerAuth
// @Param id path string true "릴리스 ID"
// @Success 200 {object} models.APIResponse{data=models.Release} "지정 성공"
// @Failure 404 {object} models.APIResponse "릴리스 없음"
// @Router /api/admin/releases/{id}/set-latest [post]
func (h *ReleaseHandler) SetLatest(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.RequestID(r.Context())

	release, err := h.releases.SetLatest(r.Context(), r.PathValue("id"))
	if err != nil {
		writeReleaseError(w, requestID, err, "Failed to set latest release")
		return
	}

	logger.WithFields(map[string]interface{}{
		"request_id": requestID,
		"release_id": release.ID,
		"version":    release.Version,
	}).Info("Latest release changed")
	h.admins.Record(r.Context(), actorFrom(r), models.AdminActionSetLatestRelease, release.Platform+" "+release.Version)

	middleware.WriteJSON(w, http.StatusOK, models.SuccessResponse("Release set as latest", release))
}

func writeReleaseError(w http.ResponseWriter, requestID string, err error, message string) {
	switch {
	case errors.Is(err, services.ErrReleaseNotFound):
		middleware.WriteJSON(w, http.StatusNotFound, models.CodedErrorResponse(models.CodeNotFound, "Release not found", nil))
	case errors.Is(err, services.ErrReleaseConflict):
		middleware.WriteJSON(w, http.StatusConflict, models.CodedErrorResponse(models.CodeConflict, err.Error(), nil))
	case errors.Is(err, services.ErrInvalidVersion):
		middleware.WriteJSON(w, http.StatusBadRequest, models.CodedErrorResponse(models.CodeBadRequest, err.Error(), nil))
	default:
		writeAdminError(w, requestID, err, message)
	}
}
