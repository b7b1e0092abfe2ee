package handlers

import (
	"errors"
	"net/http"

	"devicelicense/logger"
	"devicelicense/middleware"
	"devicelicense/models"
	"devicelicense/services"
)

// AuthHandler 관리자 인증 핸들러
type AuthHandler struct {
	admins services.AdminService
}

// NewAuthHandler는 관리자 인증 핸들러를 생성한다.
func NewAuthHandler(admins services.AdminService) *AuthHandler {
	return &AuthHandler{admins: admins}
}

// Login 관리자 로그인
// @Summary 관리자 로그인
// @Description 관리자 계정으로 로그인하여 JWT 토큰을 발급받습니다
// @Tags 인증
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "로그인 정보"
// @Success 200 {object} models.APIResponse{data=models.LoginResponse} "로그인 성공"
// @Failure 400 {object} models.APIResponse "잘못된 요청"
// @Failure 401 {object} models.APIResponse "인증 실패"
// @Failure 500 {object} models.APIResponse "서버 에러"
// @Router /api/admin/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.RequestID(r.Context())

	var req models.LoginRequest
	if err := middleware.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, requestID, err)
		return
	}

	logger.WithFields(map[string]interface{}{
		"request_id": requestID,
		"username":   req.Username,
	}).Info("Login attempt")

	resp, err := h.admins.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			logger.WithFields(map[string]interface{}{
				"request_id": requestID,
				"username":   req.Username,
				"ip":         middleware.ClientIP(r),
			}).Warn("Login failed - invalid credentials")
			middleware.WriteJSON(w, http.StatusUnauthorized,
				models.CodedErrorResponse(models.CodeUnauthorized, "Invalid credentials", nil))
			return
		}
		writeAdminError(w, requestID, err, "Failed to login")
		return
	}

	logger.WithFields(map[string]interface{}{
		"request_id": requestID,
		"admin_id":   resp.Admin.ID,
		"username":   resp.Admin.Username,
	}).Info("Login successful")

	middleware.WriteJSON(w, http.StatusOK, models.SuccessResponse("Login successful", resp))
}
