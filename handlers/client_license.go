package handlers

import (
	"errors"
	"net/http"

	"devicelicense/logger"
	"devicelicense/metrics"
	"devicelicense/middleware"
	"devicelicense/models"
	"devicelicense/services"
)

// LicenseHandler는 클라이언트 라이선스 활성화/검증/해제 요청을 처리한다.
type LicenseHandler struct {
	activation services.ActivationService
	validation services.ValidationService
	metrics    *metrics.Metrics
}

// NewLicenseHandler는 클라이언트 라이선스 핸들러를 생성한다.
func NewLicenseHandler(activation services.ActivationService, validation services.ValidationService, m *metrics.Metrics) *LicenseHandler {
	return &LicenseHandler{
		activation: activation,
		validation: validation,
		metrics:    m,
	}
}

// Activate 라이선스 활성화
// @Summary 라이선스 활성화
// @Description 라이선스 키를 디바이스에 바인딩하고 활성화 토큰을 발급합니다. 같은 디바이스의 재요청은 기존 활성화를 재사용합니다.
// @Tags 클라이언트 - 라이선스
// @Accept json
// @Produce json
// @Param request body models.ActivateRequest true "활성화 정보"
// @Success 201 {object} models.APIResponse{data=models.ActivateResponse} "신규 활성화"
// @Success 200 {object} models.APIResponse{data=models.ActivateResponse} "재활성화"
// @Failure 400 {object} models.APIResponse "잘못된 요청"
// @Failure 403 {object} models.APIResponse "라이선스 무효 또는 디바이스 해제됨"
// @Failure 404 {object} models.APIResponse "라이선스 없음"
// @Failure 409 {object} models.APIResponse "활성화 수 초과"
// @Failure 429 {object} models.APIResponse "요청 과다"
// @Failure 503 {object} models.APIResponse "저장소 일시 장애"
// @Router /api/v1/activate [post]
func (h *LicenseHandler) Activate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.RequestID(r.Context())

	var req models.ActivateRequest
	if err := middleware.DecodeJSON(w, r, &req); err != nil {
		h.metrics.ObserveActivation(models.CodeBadRequest)
		writeBadRequest(w, requestID, err)
		return
	}

	logger.WithFields(map[string]interface{}{
		"request_id":  requestID,
		"license_key": maskKey(req.LicenseKey),
		"app_version": req.AppVersion,
	}).Info("License activation attempt")

	result, err := h.activation.Activate(r.Context(), services.ActivateParams{
		LicenseKey:        req.LicenseKey,
		DeviceFingerprint: req.DeviceFingerprint,
		AppVersion:        req.AppVersion,
		DeviceLabel:       req.DeviceLabel,
	})
	if err != nil {
		h.metrics.ObserveActivation(string(services.KindOf(err)))
		writeLicenseError(w, requestID, err)
		return
	}

	status, message, outcome := http.StatusOK, "License already activated on this device", "reactivated"
	if result.Created {
		status, message, outcome = http.StatusCreated, "License activated successfully", "created"
	}
	h.metrics.ObserveActivation(outcome)

	logger.WithFields(map[string]interface{}{
		"request_id":    requestID,
		"license_id":    result.License.ID,
		"activation_id": result.Activation.ID,
		"created":       result.Created,
	}).Info("License activated")

	middleware.WriteJSON(w, status, models.SuccessResponse(message, result.Response()))
}

// Validate 활성화 토큰 검증
// @Summary 활성화 토큰 검증
// @Description 활성화 토큰과 현재 라이선스/디바이스 상태를 대조합니다. 무효인 경우에도 200 과 valid=false 를 반환합니다.
// @Tags 클라이언트 - 라이선스
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.ValidateRequest false "앱 버전"
// @Success 200 {object} models.APIResponse{data=models.ValidateResponse} "검증 결과"
// @Failure 401 {object} models.APIResponse "토큰 누락"
// @Failure 429 {object} models.APIResponse "요청 과다"
// @Failure 503 {object} models.APIResponse "저장소 일시 장애"
// @Router /api/v1/validate [post]
func (h *LicenseHandler) Validate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.RequestID(r.Context())

	token, ok := middleware.BearerToken(r)
	if !ok {
		h.metrics.ObserveValidation(models.CodeUnauthorized)
		middleware.WriteJSON(w, http.StatusUnauthorized,
			models.CodedErrorResponse(models.CodeUnauthorized, "Authorization header required", nil))
		return
	}

	var req models.ValidateRequest
	if err := middleware.DecodeOptionalJSON(w, r, &req); err != nil {
		h.metrics.ObserveValidation(models.CodeBadRequest)
		writeBadRequest(w, requestID, err)
		return
	}

	res, err := h.validation.Validate(r.Context(), token, req.AppVersion)
	if err != nil {
		h.metrics.ObserveValidation(string(services.KindOf(err)))
		writeLicenseError(w, requestID, err)
		return
	}

	if res.Valid {
		h.metrics.ObserveValidation("valid")
	} else {
		h.metrics.ObserveValidation(res.Reason)
		logger.WithFields(map[string]interface{}{
			"request_id": requestID,
			"reason":     res.Reason,
		}).Info("License validation failed")
	}

	middleware.WriteJSON(w, http.StatusOK, models.SuccessResponse("Validation completed", res))
}

// Deactivate 활성화 해제
// @Summary 활성화 해제
// @Description 토큰의 디바이스 활성화를 해제하여 슬롯을 반환합니다. 이미 해제된 경우에도 성공합니다.
// @Tags 클라이언트 - 라이선스
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.APIResponse{data=models.DeactivateResponse} "해제 완료"
// @Failure 401 {object} models.APIResponse "토큰 무효"
// @Failure 503 {object} models.APIResponse "저장소 일시 장애"
// @Router /api/v1/deactivate [post]
func (h *LicenseHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.RequestID(r.Context())

	token, ok := middleware.BearerToken(r)
	if !ok {
		middleware.WriteJSON(w, http.StatusUnauthorized,
			models.CodedErrorResponse(models.CodeUnauthorized, "Authorization header required", nil))
		return
	}

	res, err := h.activation.Deactivate(r.Context(), token)
	if err != nil {
		writeLicenseError(w, requestID, err)
		return
	}

	logger.WithFields(map[string]interface{}{
		"request_id":    requestID,
		"activation_id": res.ActivationID,
		"changed":       res.Deactivated,
	}).Info("License deactivated")

	middleware.WriteJSON(w, http.StatusOK, models.SuccessResponse("License deactivated", models.DeactivateResponse{
		ActivationID: res.ActivationID,
		Deactivated:  res.Deactivated,
	}))
}

// statusForKind 라이선스 에러 종류별 HTTP 상태 코드
func statusForKind(kind services.ErrorKind) int {
	switch kind {
	case services.KindNotFound:
		return http.StatusNotFound
	case services.KindInvalid, services.KindDeviceRevoked:
		return http.StatusForbidden
	case services.KindQuotaExceeded, services.KindConflict:
		return http.StatusConflict
	case services.KindInvalidToken:
		return http.StatusUnauthorized
	case services.KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeLicenseError 저장소 세부 내용은 로그에만 남기고 응답에는 종류와 메시지만 담습니다.
func writeLicenseError(w http.ResponseWriter, requestID string, err error) {
	var le *services.LicenseError
	if !errors.As(err, &le) {
		le = &services.LicenseError{Kind: services.KindInternal, Err: err}
	}

	status := statusForKind(le.Kind)
	entry := logger.WithFields(map[string]interface{}{
		"request_id": requestID,
		"kind":       le.Kind,
		"error":      err,
	})
	if status >= http.StatusInternalServerError {
		entry.Error("License operation failed")
	} else {
		entry.Warn("License operation rejected")
	}

	var data interface{}
	switch le.Kind {
	case services.KindInvalid:
		data = map[string]string{"reason": le.Reason}
	case services.KindQuotaExceeded:
		data = map[string]int{"max_activations": le.MaxActivations}
	}

	middleware.WriteJSON(w, status, models.CodedErrorResponse(string(le.Kind), le.Error(), data))
}

func writeBadRequest(w http.ResponseWriter, requestID string, err error) {
	logger.WithFields(map[string]interface{}{
		"request_id": requestID,
		"error":      err.Error(),
	}).Warn("Invalid request body")

	var data interface{}
	var verr *middleware.ValidationError
	if errors.As(err, &verr) && len(verr.Fields) > 0 {
		data = verr.Fields
	}
	middleware.WriteJSON(w, http.StatusBadRequest, models.CodedErrorResponse(models.CodeBadRequest, err.Error(), data))
}

// maskKey 로그용 라이선스 키 마스킹
func maskKey(key string) string {
	if len(key) <= 4 {
		return "****"
	}
	return key[:4] + "****"
}
