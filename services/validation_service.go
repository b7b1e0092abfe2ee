package services

import (
	"context"
	"time"

	"devicelicense/logger"
	"devicelicense/models"
	"devicelicense/utils"
)

// ValidationService는 활성화 토큰을 현재 라이선스/활성화 상태와 대조합니다.
type ValidationService interface {
	// Validate 는 정책상 무효인 경우에도 에러 없이 Valid=false 결과를 반환합니다.
	// 에러는 저장소 장애처럼 판단을 내릴 수 없을 때만 반환됩니다.
	Validate(ctx context.Context, token, appVersion string) (*models.ValidateResponse, error)
}

type validationService struct {
	store  LicenseStore
	tokens *utils.ActivationTokenCodec
	now    func() time.Time
}

// NewValidationService는 ValidationService 구현체를 생성합니다. now 가 nil 이면 현재 UTC 시각을 사용합니다.
func NewValidationService(store LicenseStore, tokens *utils.ActivationTokenCodec, now func() time.Time) ValidationService {
	if now == nil {
		now = utils.NowUTC
	}
	return &validationService{store: store, tokens: tokens, now: now}
}

func (s *validationService) Validate(ctx context.Context, token, appVersion string) (*models.ValidateResponse, error) {
	now := s.now()
	invalid := func(reason string) *models.ValidateResponse {
		return &models.ValidateResponse{Valid: false, Reason: reason, ServerTime: now}
	}

	claims, err := s.tokens.Verify(token)
	if err != nil {
		return invalid(models.ReasonInvalidToken), nil
	}

	activation, err := s.store.GetActivation(ctx, claims.ActivationID)
	if err != nil {
		if IsStoreKind(err, StoreNotFound) {
			return invalid(models.ReasonActivationNotFound), nil
		}
		return nil, storeFailure(err)
	}
	if activation.LicenseID != claims.LicenseID || activation.DeviceIDHash != claims.DeviceIDHash {
		return invalid(models.ReasonInvalidToken), nil
	}
	if activation.Status == models.ActivationStatusRevoked {
		return invalid(models.ReasonActivationRevoked), nil
	}

	lic, err := s.store.GetLicenseByID(ctx, claims.LicenseID)
	if err != nil {
		if IsStoreKind(err, StoreNotFound) {
			return invalid(models.ReasonLicenseNotFound), nil
		}
		return nil, storeFailure(err)
	}
	if ok, reason := lic.Validity(now); !ok {
		return invalid(reason), nil
	}

	// last_seen_at 갱신 실패는 검증 결과에 영향을 주지 않습니다.
	if err := s.store.TouchActivation(ctx, activation.ID, "", now); err != nil {
		logger.WithFields(map[string]interface{}{
			"activation_id": activation.ID,
			"app_version":   appVersion,
			"error":         err,
		}).Warn("Failed to update activation last_seen_at")
	}

	return &models.ValidateResponse{
		Valid:      true,
		ExpiresAt:  lic.ExpiresAt,
		Status:     lic.Status,
		ServerTime: now,
	}, nil
}
