package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"devicelicense/logger"
	"devicelicense/models"
	"devicelicense/utils"
)

// ActivateParams 활성화 요청 파라미터
type ActivateParams struct {
	LicenseKey        string
	DeviceFingerprint string
	AppVersion        string
	DeviceLabel       *string
}

// ActivationResult 활성화 결과
type ActivationResult struct {
	Token          string
	TokenExpiresAt time.Time
	License        *models.License
	Activation     *models.Activation
	Created        bool // false면 기존 활성화 재사용
	GraceDays      int
}

// Response 클라이언트 응답 형태로 변환 (원본 핑거프린트와 디바이스 해시는 포함하지 않음)
func (r *ActivationResult) Response() models.ActivateResponse {
	return models.ActivateResponse{
		ActivationToken: r.Token,
		TokenExpiresAt:  r.TokenExpiresAt,
		License:         r.License.View(),
		Activation:      r.Activation.View(),
		GraceDays:       r.GraceDays,
	}
}

// DeactivateResult 비활성화 결과
type DeactivateResult struct {
	ActivationID string
	Deactivated  bool
}

// ActivationService는 라이선스 키와 디바이스를 바인딩하고 해제합니다.
type ActivationService interface {
	Activate(ctx context.Context, params ActivateParams) (*ActivationResult, error)
	Deactivate(ctx context.Context, token string) (*DeactivateResult, error)
}

// ActivationOptions 활성화 서비스 설정
type ActivationOptions struct {
	HashSalt  string
	GraceDays int
	Now       func() time.Time
}

type activationService struct {
	store     LicenseStore
	tokens    *utils.ActivationTokenCodec
	salt      string
	graceDays int
	now       func() time.Time
}

// NewActivationService는 ActivationService 구현체를 생성합니다.
func NewActivationService(store LicenseStore, tokens *utils.ActivationTokenCodec, opts ActivationOptions) ActivationService {
	now := opts.Now
	if now == nil {
		now = utils.NowUTC
	}
	return &activationService{
		store:     store,
		tokens:    tokens,
		salt:      opts.HashSalt,
		graceDays: opts.GraceDays,
		now:       now,
	}
}

func (s *activationService) Activate(ctx context.Context, params ActivateParams) (*ActivationResult, error) {
	lic, err := s.store.GetLicenseByKey(ctx, params.LicenseKey)
	if err != nil {
		if IsStoreKind(err, StoreNotFound) {
			return nil, &LicenseError{Kind: KindNotFound}
		}
		return nil, storeFailure(err)
	}

	now := s.now()
	if ok, reason := lic.Validity(now); !ok {
		return nil, &LicenseError{Kind: KindInvalid, Reason: reason}
	}

	deviceHash := utils.HashDeviceFingerprint(params.DeviceFingerprint, s.salt)

	activation, created, err := s.bindDevice(ctx, lic, deviceHash, params, now)
	if err != nil {
		return nil, err
	}

	token, expiresAt, err := s.tokens.Issue(lic.ID, activation.ID, deviceHash)
	if err != nil {
		return nil, &LicenseError{Kind: KindInternal, Err: err}
	}

	action := models.ActivationActionReactivated
	if created {
		action = models.ActivationActionActivated
	}
	s.logEvent(ctx, activation, action, fmt.Sprintf("app_version=%s", params.AppVersion))

	return &ActivationResult{
		Token:          token,
		TokenExpiresAt: expiresAt,
		License:        lic,
		Activation:     activation,
		Created:        created,
		GraceDays:      s.graceDays,
	}, nil
}

// bindDevice 기존 활성화를 재사용하거나 한도 안에서 새로 만듭니다.
func (s *activationService) bindDevice(ctx context.Context, lic *models.License, deviceHash string, params ActivateParams, now time.Time) (*models.Activation, bool, error) {
	existing, err := s.store.FindActivation(ctx, lic.ID, deviceHash)
	switch {
	case err == nil:
		return s.reactivate(ctx, existing, params.AppVersion, now)
	case !IsStoreKind(err, StoreNotFound):
		return nil, false, storeFailure(err)
	}

	id, err := utils.GenerateID("act")
	if err != nil {
		return nil, false, &LicenseError{Kind: KindInternal, Err: err}
	}
	activation := &models.Activation{
		ID:                  id,
		LicenseID:           lic.ID,
		DeviceIDHash:        deviceHash,
		DeviceLabel:         params.DeviceLabel,
		Status:              models.ActivationStatusActive,
		ActivatedAppVersion: params.AppVersion,
		FirstActivatedAt:    now,
		LastSeenAt:          now,
	}

	created, err := s.store.CreateActivationWithinQuota(ctx, activation)
	if err != nil && !IsStoreKind(err, StoreConflict) {
		return nil, false, storeFailure(err)
	}
	if err == nil && created {
		return activation, true, nil
	}

	// 같은 디바이스의 동시 요청이 먼저 행을 만들었을 수 있습니다.
	existing, ferr := s.store.FindActivation(ctx, lic.ID, deviceHash)
	if ferr == nil {
		return s.reactivate(ctx, existing, params.AppVersion, now)
	}
	if !IsStoreKind(ferr, StoreNotFound) {
		return nil, false, storeFailure(ferr)
	}
	if err != nil {
		return nil, false, storeFailure(err)
	}
	return nil, false, &LicenseError{Kind: KindQuotaExceeded, MaxActivations: lic.MaxActivations}
}

func (s *activationService) reactivate(ctx context.Context, existing *models.Activation, appVersion string, now time.Time) (*models.Activation, bool, error) {
	if existing.Status == models.ActivationStatusRevoked {
		return nil, false, &LicenseError{Kind: KindDeviceRevoked}
	}

	if err := s.store.TouchActivation(ctx, existing.ID, appVersion, now); err != nil {
		return nil, false, storeFailure(err)
	}
	existing.LastSeenAt = now
	if appVersion != "" {
		existing.ActivatedAppVersion = appVersion
	}
	return existing, false, nil
}

func (s *activationService) Deactivate(ctx context.Context, token string) (*DeactivateResult, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, &LicenseError{Kind: KindInvalidToken, Err: err}
	}

	activation, err := s.store.GetActivation(ctx, claims.ActivationID)
	if err != nil {
		if IsStoreKind(err, StoreNotFound) {
			// 해제할 대상이 없으면 이미 해제된 것으로 봅니다.
			return &DeactivateResult{ActivationID: claims.ActivationID}, nil
		}
		return nil, storeFailure(err)
	}
	if activation.LicenseID != claims.LicenseID || activation.DeviceIDHash != claims.DeviceIDHash {
		return nil, &LicenseError{Kind: KindInvalidToken, Err: errors.New("token does not match activation")}
	}

	changed, err := s.store.RevokeActivation(ctx, activation.ID, s.now())
	if err != nil {
		return nil, storeFailure(err)
	}
	if changed {
		s.logEvent(ctx, activation, models.ActivationActionDeactivated, "client deactivation")
	}

	return &DeactivateResult{ActivationID: activation.ID, Deactivated: changed}, nil
}

// logEvent 활동 로그 기록. 실패해도 요청 결과에는 영향을 주지 않습니다.
func (s *activationService) logEvent(ctx context.Context, a *models.Activation, action, details string) {
	err := s.store.LogActivationEvent(ctx, models.ActivationLog{
		ActivationID: a.ID,
		LicenseID:    a.LicenseID,
		Action:       action,
		Details:      details,
		CreatedAt:    s.now(),
	})
	if err != nil {
		logger.WithFields(map[string]interface{}{
			"activation_id": a.ID,
			"action":        action,
			"error":         err,
		}).Warn("Failed to record activation event")
	}
}
