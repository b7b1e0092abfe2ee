package handlers

import (
	"errors"
	"net/http"

	"devicelicense/logger"
	"devicelicense/middleware"
	"devicelicense/models"
	"devicelicense/services"
)

// AdminUserHandler 관리자 계정 관리 핸들러 (superadmin 전용)
type AdminUserHandler struct {
	admins services.AdminService
}

// NewAdminUserHandler 관리자 계정 핸들러 생성
func NewAdminUserHandler(admins services.AdminService) *AdminUserHandler {
	return &AdminUserHandler{admins: admins}
}

// List 관리자 목록 조회
// @Summary 관리자 목록
// @Description 전체 관리자 계정을 조회합니다 (superadmin 전용)
// @Tags 관리자 - 계정
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.APIResponse{data=[]models.Admin} "조회 성공"
// @Failure 403 {object} models.APIResponse "권한 없음"
// @Router /api/admin/admins [get]
func (h *AdminUserHandler) List(w http.ResponseWriter, r *http.Request) {
	admins, err := h.admins.ListAdmins(r.Context())
	if err != nil {
		writeAdminUserError(w, middleware.RequestID(r.Context()), err, "Failed to list admins")
		return
	}
	middleware.WriteJSON(w, http.StatusOK, models.SuccessResponse("Admins retrieved", admins))
}

// Create 관리자 계정 생성
// @Summary 관리자 생성
// @Description 새 관리자 계정을 만듭니다. role 을 비우면 admin 입니다
// @Tags 관리자 - 계정
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateAdminRequest true "계정 정보"
// @Success 201 {object} models.APIResponse{data=models.Admin} "생성 성공"
// @Failure 400 {object} models.APIResponse "잘못된 요청"
// @Failure 409 {object} models.APIResponse "중복 아이디"
// @Router /api/admin/admins [post]
func (h *AdminUserHandler) Create(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.RequestID(r.Context())

	var req models.CreateAdminRequest
	if err := middleware.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, requestID, err)
		return
	}

	created, err := h.admins.CreateAdmin(r.Context(), actorFrom(r), req)
	if err != nil {
		writeAdminUserError(w, requestID, err, "Failed to create admin")
		return
	}

	logger.WithFields(map[string]interface{}{
		"request_id": requestID,
		"admin_id":   created.ID,
		"role":       created.Role,
	}).Info("Admin account created")

	middleware.WriteJSON(w, http.StatusCreated, models.SuccessResponse("Admin created", created))
}

// ResetPassword 관리자 비밀번호 초기화
// @Summary 관리자 비밀번호 초기화
// @Description 임시 비밀번호를 발급합니다. superadmin 과 본인 계정은 대상이 아닙니다
// @Tags 관리자 - 계정
// @Produce json
// @Security BearerAuth
// @Param id path string true "관리자 ID"
// @Success 200 {object} models.APIResponse{data=models.PasswordResetResponse} "초기화 성공"
// @Failure 403 {object} models.APIResponse "보호된 계정"
// @Failure 404 {object} models.APIResponse "관리자 없음"
// @Router /api/admin/admins/{id}/reset-password [post]
func (h *AdminUserHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.RequestID(r.Context())
	adminID := r.PathValue("id")

	temp, err := h.admins.ResetPassword(r.Context(), actorFrom(r), adminID)
	if err != nil {
		writeAdminUserError(w, requestID, err, "Failed to reset password")
		return
	}

	logger.WithFields(map[string]interface{}{
		"request_id": requestID,
		"admin_id":   adminID,
	}).Info("Admin password reset")

	middleware.WriteJSON(w, http.StatusOK, models.SuccessResponse("Password reset", models.PasswordResetResponse{
		AdminID:      adminID,
		TempPassword: temp,
	}))
}

// Delete 관리자 계정 삭제
// @Summary 관리자 삭제
// @Description 관리자 계정을 삭제합니다. superadmin 과 본인 계정은 삭제할 수 없습니다
// @Tags 관리자 - 계정
// @Produce json
// @Security BearerAuth
// @Param id path string true "관리자 ID"
// @Success 200 {object} models.APIResponse "삭제 성공"
// @Failure 403 {object} models.APIResponse "보호된 계정"
// @Failure 404 {object} models.APIResponse "관리자 없음"
// @Router /api/admin/admins/{id} [delete]
func (h *AdminUserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.RequestID(r.Context())
	adminID := r.PathValue("id")

	if err := h.admins.DeleteAdmin(r.Context(), actorFrom(r), adminID); err != nil {
		writeAdminUserError(w, requestID, err, "Failed to delete admin")
		return
	}

	logger.WithFields(map[string]interface{}{
		"request_id": requestID,
		"admin_id":   adminID,
	}).Info("Admin account deleted")

	middleware.WriteJSON(w, http.StatusOK, models.SuccessResponse("Admin deleted", nil))
}

func actorFrom(r *http.Request) services.Actor {
	admin, _ := middleware.AdminFromContext(r.Context())
	return services.Actor{AdminID: admin.ID, Username: admin.Username}
}

func writeAdminUserError(w http.ResponseWriter, requestID string, err error, message string) {
	switch {
	case errors.Is(err, services.ErrAdminNotFound):
		middleware.WriteJSON(w, http.StatusNotFound, models.CodedErrorResponse(models.CodeNotFound, "Admin not found", nil))
	case errors.Is(err, services.ErrAdminUsernameTaken):
		middleware.WriteJSON(w, http.StatusConflict, models.CodedErrorResponse(models.CodeConflict, "Username already exists", nil))
	case errors.Is(err, services.ErrProtectedAdmin):
		middleware.WriteJSON(w, http.StatusForbidden, models.CodedErrorResponse(models.CodeForbidden, "This admin account cannot be modified", nil))
	default:
		writeAdminError(w, requestID, err, message)
	}
}
