package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"devicelicense/logger"
	"devicelicense/middleware"
	"devicelicense/models"
	"devicelicense/services"
)

// AdminLicenseHandler 관리자 라이선스/활성화 관리 핸들러
type AdminLicenseHandler struct {
	licenses services.LicenseAdminService
	admins   services.AdminService
}

// NewAdminLicenseHandler는 관리자 라이선스 핸들러를 생성한다.
func NewAdminLicenseHandler(licenses services.LicenseAdminService, admins services.AdminService) *AdminLicenseHandler {
	return &AdminLicenseHandler{licenses: licenses, admins: admins}
}

// List 라이선스 목록 조회
// @Summary 라이선스 목록 조회
// @Description 상태/검색어로 필터링된 라이선스 목록을 페이지 단위로 조회합니다
// @Tags 관리자 - 라이선스
// @Produce json
// @Security BearerAuth
// @Param status query string false "상태 필터 (active, suspended, revoked)"
// @Param search query string false "라이선스 키 또는 고객명"
// @Param page query int false "페이지 번호" default(1)
// @Param page_size query int false "페이지 크기" default(20)
// @Success 200 {object} models.PaginatedResponse{data=[]models.License} "조회 성공"
// @Failure 401 {object} models.APIResponse "인증 필요"
// @Failure 500 {object} models.APIResponse "서버 에러"
// @Router /api/admin/licenses [get]
func (h *AdminLicenseHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(q.Get("page_size"))
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	licenses, total, err := h.licenses.List(r.Context(), services.LicenseFilter{
		Status:   q.Get("status"),
		Search:   strings.TrimSpace(q.Get("search")),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		writeAdminError(w, middleware.RequestID(r.Context()), err, "Failed to query licenses")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, models.PaginatedResponse{
		Status:  "success",
		Message: "Licenses retrieved",
		Data:    licenses,
		Meta:    models.NewPagination(page, pageSize, total),
	})
}

// Create 라이선스 생성
// @Summary 라이선스 생성
// @Description 새 라이선스를 발급합니다. license_key 를 비우면 자동 생성됩니다
// @Tags 관리자 - 라이선스
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateLicenseRequest true "라이선스 정보"
// @Success 201 {object} models.APIResponse{data=models.License} "생성 성공"
// @Failure 400 {object} models.APIResponse "잘못된 요청"
// @Failure 409 {object} models.APIResponse "중복 라이선스 키"
// @Failure 500 {object} models.APIResponse "서버 에러"
// @Router /api/admin/licenses [post]
func (h *AdminLicenseHandler) Create(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.RequestID(r.Context())

	var req models.CreateLicenseRequest
	if err := middleware.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, requestID, err)
		return
	}

	lic, err := h.licenses.Create(r.Context(), req)
	if err != nil {
		writeAdminError(w, requestID, err, "Failed to create license")
		return
	}

	logger.WithFields(map[string]interface{}{
		"request_id": requestID,
		"license_id": lic.ID,
	}).Info("License created")
	h.record(r, models.AdminActionCreateLicense, "License created: "+lic.ID)

	middleware.WriteJSON(w, http.StatusCreated, models.SuccessResponse("License created successfully", lic))
}

// Get 라이선스 상세 조회
// @Summary 라이선스 상세 조회
// @Description 라이선스와 활성화 목록을 함께 조회합니다
// @Tags 관리자 - 라이선스
// @Produce json
// @Security BearerAuth
// @Param id path string true "라이선스 ID"
// @Success 200 {object} models.APIResponse{data=models.LicenseDetail} "조회 성공"
// @Failure 404 {object} models.APIResponse "라이선스 없음"
// @Router /api/admin/licenses/{id} [get]
func (h *AdminLicenseHandler) Get(w http.ResponseWriter, r *http.Request) {
	detail, err := h.licenses.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeAdminError(w, middleware.RequestID(r.Context()), err, "Failed to query license")
		return
	}
	middleware.WriteJSON(w, http.StatusOK, models.SuccessResponse("License retrieved", detail))
}

// Update 라이선스 수정
// @Summary 라이선스 수정
// @Description 고객명, 허용 활성화 수, 상태, 만료일, 메모를 수정합니다. expires_at 을 빈 문자열로 보내면 무기한이 됩니다
// @Tags 관리자 - 라이선스
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "라이선스 ID"
// @Param request body models.UpdateLicenseRequest true "수정 정보"
// @Success 200 {object} models.APIResponse{data=models.License} "수정 성공"
// @Failure 400 {object} models.APIResponse "잘못된 요청"
// @Failure 404 {object} models.APIResponse "라이선스 없음"
// @Router /api/admin/licenses/{id} [put]
func (h *AdminLicenseHandler) Update(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.RequestID(r.Context())

	var req models.UpdateLicenseRequest
	if err := middleware.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, requestID, err)
		return
	}

	lic, err := h.licenses.Update(r.Context(), r.PathValue("id"), req)
	if err != nil {
		writeAdminError(w, requestID, err, "Failed to update license")
		return
	}

	h.record(r, models.AdminActionUpdateLicense, "License updated: "+lic.ID)
	middleware.WriteJSON(w, http.StatusOK, models.SuccessResponse("License updated successfully", lic))
}

// Revoke 라이선스 폐기
// @Summary 라이선스 폐기
// @Description 라이선스 상태를 revoked 로 바꿉니다. 이후 모든 디바이스의 검증이 실패합니다
// @Tags 관리자 - 라이선스
// @Produce json
// @Security BearerAuth
// @Param id path string true "라이선스 ID"
// @Success 200 {object} models.APIResponse{data=models.License} "폐기 성공"
// @Failure 404 {object} models.APIResponse "라이선스 없음"
// @Router /api/admin/licenses/{id}/revoke [post]
func (h *AdminLicenseHandler) Revoke(w http.ResponseWriter, r *http.Request) {
	lic, err := h.licenses.Revoke(r.Context(), r.PathValue("id"))
	if err != nil {
		writeAdminError(w, middleware.RequestID(r.Context()), err, "Failed to revoke license")
		return
	}

	h.record(r, models.AdminActionRevokeLicense, "License revoked: "+lic.ID)
	middleware.WriteJSON(w, http.StatusOK, models.SuccessResponse("License revoked", lic))
}

// Activations 라이선스 활성화 목록
// @Summary 라이선스 활성화 목록
// @Tags 관리자 - 라이선스
// @Produce json
// @Security BearerAuth
// @Param id path string true "라이선스 ID"
// @Success 200 {object} models.APIResponse{data=[]models.Activation} "조회 성공"
// @Failure 404 {object} models.APIResponse "라이선스 없음"
// @Router /api/admin/licenses/{id}/activations [get]
func (h *AdminLicenseHandler) Activations(w http.ResponseWriter, r *http.Request) {
	detail, err := h.licenses.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeAdminError(w, middleware.RequestID(r.Context()), err, "Failed to query activations")
		return
	}
	middleware.WriteJSON(w, http.StatusOK, models.SuccessResponse("Activations retrieved", detail.Activations))
}

// Events 라이선스 활성화 이벤트 로그
// @Summary 활성화 이벤트 로그
// @Tags 관리자 - 라이선스
// @Produce json
// @Security BearerAuth
// @Param id path string true "라이선스 ID"
// @Param limit query int false "최대 건수" default(100)
// @Success 200 {object} models.APIResponse{data=[]models.ActivationLog} "조회 성공"
// @Failure 404 {object} models.APIResponse "라이선스 없음"
// @Router /api/admin/licenses/{id}/events [get]
func (h *AdminLicenseHandler) Events(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	events, err := h.licenses.Events(r.Context(), r.PathValue("id"), limit)
	if err != nil {
		writeAdminError(w, middleware.RequestID(r.Context()), err, "Failed to query activation events")
		return
	}
	middleware.WriteJSON(w, http.StatusOK, models.SuccessResponse("Activation events retrieved", events))
}

// RevokeActivation 디바이스 활성화 강제 해제
// @Summary 디바이스 활성화 해제
// @Description 활성화를 revoked 로 바꿉니다. 해당 디바이스는 재활성화할 수 없습니다
// @Tags 관리자 - 활성화
// @Produce json
// @Security BearerAuth
// @Param id path string true "활성화 ID"
// @Success 200 {object} models.APIResponse{data=models.Activation} "해제 성공"
// @Failure 404 {object} models.APIResponse "활성화 없음"
// @Router /api/admin/activations/{id}/revoke [post]
func (h *AdminLicenseHandler) RevokeActivation(w http.ResponseWriter, r *http.Request) {
	activation, err := h.licenses.RevokeActivation(r.Context(), r.PathValue("id"))
	if err != nil {
		writeAdminError(w, middleware.RequestID(r.Context()), err, "Failed to revoke activation")
		return
	}

	h.record(r, models.AdminActionRevokeActivation, "Activation revoked: "+activation.ID)
	middleware.WriteJSON(w, http.StatusOK, models.SuccessResponse("Activation revoked", activation))
}

// ReinstateActivation 해제된 활성화 복구
// @Summary 디바이스 활성화 복구
// @Description revoked 활성화를 허용 수 안에서만 다시 active 로 바꿉니다
// @Tags 관리자 - 활성화
// @Produce json
// @Security BearerAuth
// @Param id path string true "활성화 ID"
// @Success 200 {object} models.APIResponse{data=models.Activation} "복구 성공"
// @Failure 404 {object} models.APIResponse "활성화 없음"
// @Failure 409 {object} models.APIResponse "활성화 수 초과"
// @Router /api/admin/activations/{id}/reinstate [post]
func (h *AdminLicenseHandler) ReinstateActivation(w http.ResponseWriter, r *http.Request) {
	activation, err := h.licenses.ReinstateActivation(r.Context(), r.PathValue("id"))
	if err != nil {
		writeAdminError(w, middleware.RequestID(r.Context()), err, "Failed to reinstate activation")
		return
	}

	h.record(r, models.AdminActionReinstateActivation, "Activation reinstated: "+activation.ID)
	middleware.WriteJSON(w, http.StatusOK, models.SuccessResponse("Activation reinstated", activation))
}

// AuditLogs 관리자 활동 로그
// @Summary 관리자 활동 로그
// @Tags 관리자 - 감사
// @Produce json
// @Security BearerAuth
// @Param limit query int false "최대 건수" default(100)
// @Success 200 {object} models.APIResponse{data=[]models.AdminActivityLog} "조회 성공"
// @Failure 403 {object} models.APIResponse "권한 없음"
// @Router /api/admin/audit-logs [get]
func (h *AdminLicenseHandler) AuditLogs(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	logs, err := h.admins.ListActivity(r.Context(), limit)
	if err != nil {
		writeAdminError(w, middleware.RequestID(r.Context()), err, "Failed to query audit logs")
		return
	}
	middleware.WriteJSON(w, http.StatusOK, models.SuccessResponse("Audit logs retrieved", logs))
}

// Stats 대시보드 통계
// @Summary 대시보드 통계
// @Tags 관리자 - 대시보드
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.APIResponse{data=models.DashboardStats} "조회 성공"
// @Router /api/admin/dashboard/stats [get]
func (h *AdminLicenseHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.licenses.Stats(r.Context())
	if err != nil {
		writeAdminError(w, middleware.RequestID(r.Context()), err, "Failed to query dashboard stats")
		return
	}
	middleware.WriteJSON(w, http.StatusOK, models.SuccessResponse("Dashboard stats retrieved", stats))
}

// RecentActivities 전체 라이선스의 최근 활성화 이벤트
// @Summary 최근 활성화 이벤트
// @Tags 관리자 - 대시보드
// @Produce json
// @Security BearerAuth
// @Param limit query int false "최대 건수" default(100)
// @Success 200 {object} models.APIResponse{data=[]models.ActivationLog} "조회 성공"
// @Router /api/admin/dashboard/activities [get]
func (h *AdminLicenseHandler) RecentActivities(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	events, err := h.licenses.Events(r.Context(), "", limit)
	if err != nil {
		writeAdminError(w, middleware.RequestID(r.Context()), err, "Failed to query recent activities")
		return
	}
	middleware.WriteJSON(w, http.StatusOK, models.SuccessResponse("Recent activities retrieved", events))
}

// record 관리자 활동 로그 기록
func (h *AdminLicenseHandler) record(r *http.Request, action, details string) {
	if _, ok := middleware.AdminFromContext(r.Context()); !ok {
		return
	}
	h.admins.Record(r.Context(), actorFrom(r), action, details)
}

// writeAdminError 관리 API 에러 응답
func writeAdminError(w http.ResponseWriter, requestID string, err error, message string) {
	var (
		status = http.StatusInternalServerError
		code   = models.CodeInternal
		msg    = message
	)
	switch {
	case errors.Is(err, services.ErrLicenseNotFound):
		status, code, msg = http.StatusNotFound, models.CodeNotFound, "License not found"
	case errors.Is(err, services.ErrActivationNotFound):
		status, code, msg = http.StatusNotFound, models.CodeNotFound, "Activation not found"
	case errors.Is(err, services.ErrLicenseKeyConflict):
		status, code, msg = http.StatusConflict, models.CodeConflict, "License key already exists"
	case errors.Is(err, services.ErrReinstateQuota):
		status, code, msg = http.StatusConflict, models.CodeQuotaExceeded, err.Error()
	case errors.Is(err, services.ErrInvalidExpiry):
		status, code, msg = http.StatusBadRequest, models.CodeBadRequest, err.Error()
	case services.IsStoreKind(err, services.StoreNotReady):
		status, code, msg = http.StatusServiceUnavailable, models.CodeUnavailable, "License store temporarily unavailable"
	}

	entry := logger.WithFields(map[string]interface{}{
		"request_id": requestID,
		"status":     status,
		"error":      err,
	})
	if status >= http.StatusInternalServerError {
		entry.Error("%s", message)
	} else {
		entry.Warn("%s: %s", message, code)
	}

	middleware.WriteJSON(w, status, models.CodedErrorResponse(code, msg, nil))
}
