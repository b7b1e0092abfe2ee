package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"devicelicense/logger"
	"devicelicense/models"
	"devicelicense/utils"
)

// DefaultGraceDays 서버에 연결할 수 없을 때 마지막 검증 이후 허용하는 일 수
const DefaultGraceDays = 7

// DefaultAppVersion AppVersion 을 지정하지 않았을 때 서버에 보고하는 버전
const DefaultAppVersion = "0.0.0"

const defaultCheckTimeout = 15 * time.Second

// 로컬 판정 사유
const (
	ReasonNotActivated      = "no activation token found; activation required"
	ReasonNoPriorValidation = "no prior validation; connection required"
	ReasonGraceExpired      = "grace period expired; connection required"
	ReasonStateUnavailable  = "license state unavailable"
)

// CheckResult 라이선스 확인 결과
type CheckResult struct {
	Valid          bool
	Reason         string
	Offline        bool          // 서버 응답 없이 유예 기간으로 판정됨
	GraceRemaining time.Duration // Offline 일 때만 의미 있음
	ExpiresAt      *time.Time
	CheckedAt      time.Time
}

// GuardOptions Guard 설정
type GuardOptions struct {
	GraceDays    int
	AppVersion   string
	CheckTimeout time.Duration
	Now          func() time.Time
}

// Guard 디바이스 쪽 라이선스 확인기
// 서버의 명시적 거절은 그대로 따르고, 서버에 닿지 못할 때만 유예 기간을 적용합니다.
type Guard struct {
	api          LicenseAPI
	store        StateStore
	graceDays    int
	appVersion   string
	checkTimeout time.Duration
	now          func() time.Time
	group        singleflight.Group
}

// NewGuard Guard 생성
func NewGuard(api LicenseAPI, store StateStore, opts GuardOptions) *Guard {
	g := &Guard{
		api:          api,
		store:        store,
		graceDays:    opts.GraceDays,
		appVersion:   opts.AppVersion,
		checkTimeout: opts.CheckTimeout,
		now:          opts.Now,
	}
	if g.graceDays <= 0 {
		g.graceDays = DefaultGraceDays
	}
	if g.appVersion == "" {
		g.appVersion = DefaultAppVersion
	}
	if g.checkTimeout <= 0 {
		g.checkTimeout = defaultCheckTimeout
	}
	if g.now == nil {
		g.now = utils.NowUTC
	}
	return g
}

// Activate 라이선스 키로 활성화하고 토큰을 저장합니다.
// 성공 시점을 마지막 검증 시각으로 기록해 바로 오프라인이 되어도 유예 기간이 적용됩니다.
func (g *Guard) Activate(ctx context.Context, licenseKey, fingerprint string, label *string) (*models.ActivateResponse, error) {
	res, err := g.api.Activate(ctx, models.ActivateRequest{
		LicenseKey:        licenseKey,
		DeviceFingerprint: fingerprint,
		AppVersion:        g.appVersion,
		DeviceLabel:       label,
	})
	if err != nil {
		return nil, err
	}

	now := g.now()
	st := State{
		ActivationToken:  res.ActivationToken,
		LastValidationAt: &now,
		LicenseExpiresAt: res.License.ExpiresAt,
	}
	if err := g.store.Save(st); err != nil {
		return nil, err
	}

	logger.WithFields(map[string]interface{}{
		"activation_id": res.Activation.ID,
		"license_id":    res.License.ID,
	}).Info("License activated on this device")
	return res, nil
}

// Deactivate 서버에 해제를 요청하고 로컬 상태를 지웁니다.
// 서버에 닿지 못하면 로컬 상태는 유지하고 에러를 반환합니다.
func (g *Guard) Deactivate(ctx context.Context) error {
	st, err := g.store.Load()
	if err != nil {
		return err
	}
	if st.ActivationToken == "" {
		return g.store.Clear()
	}

	if _, err := g.api.Deactivate(ctx, st.ActivationToken); err != nil {
		var apiErr *APIError
		// 토큰이 이미 무효면 서버에서 해제할 것이 없습니다.
		if !errors.As(err, &apiErr) || apiErr.Code != models.CodeInvalidToken {
			return err
		}
	}
	return g.store.Clear()
}

// Check 라이선스 유효성 확인. 동시에 호출되면 서버 요청은 한 번만 나갑니다.
// ctx 가 취소되면 진행 중인 확인을 기다리지 않고 ctx 에러를 반환합니다.
func (g *Guard) Check(ctx context.Context) (CheckResult, error) {
	ch := g.group.DoChan("check", func() (interface{}, error) {
		cctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), g.checkTimeout)
		defer cancel()
		return g.check(cctx)
	})

	select {
	case <-ctx.Done():
		return CheckResult{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return CheckResult{}, res.Err
		}
		return res.Val.(CheckResult), nil
	}
}

func (g *Guard) check(ctx context.Context) (CheckResult, error) {
	st, err := g.store.Load()
	if err != nil {
		logger.WithFields(map[string]interface{}{
			"error": err.Error(),
		}).Error("Failed to load license state")
		return CheckResult{Reason: ReasonStateUnavailable, CheckedAt: g.now()}, err
	}
	if st.ActivationToken == "" {
		return CheckResult{Reason: ReasonNotActivated, CheckedAt: g.now()}, nil
	}

	res, err := g.api.Validate(ctx, st.ActivationToken, g.appVersion)
	now := g.now()
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			return CheckResult{Reason: rejectionReason(apiErr), CheckedAt: now}, nil
		}
		logger.WithFields(map[string]interface{}{
			"error": err.Error(),
		}).Warn("License server unreachable, applying grace period")
		return g.grace(st, now), nil
	}

	if !res.Valid {
		logger.WithFields(map[string]interface{}{
			"reason": res.Reason,
		}).Warn("License rejected by server")
		return CheckResult{Reason: res.Reason, CheckedAt: now}, nil
	}

	st.LastValidationAt = &now
	st.LicenseExpiresAt = res.ExpiresAt
	if err := g.store.Save(st); err != nil {
		// 이번 판정은 유효하지만 다음 오프라인 판정은 이전 시각 기준이 됩니다.
		logger.WithFields(map[string]interface{}{
			"error": err.Error(),
		}).Warn("Failed to persist validation time")
	}
	return CheckResult{Valid: true, ExpiresAt: res.ExpiresAt, CheckedAt: now}, nil
}

// grace 서버 응답이 없을 때의 판정. 유효 구간은 [last, last+graceDays) 입니다.
func (g *Guard) grace(st State, now time.Time) CheckResult {
	result := CheckResult{Offline: true, CheckedAt: now, ExpiresAt: st.LicenseExpiresAt}
	if st.LastValidationAt == nil {
		result.Reason = ReasonNoPriorValidation
		return result
	}

	graceEnd := st.LastValidationAt.Add(time.Duration(g.graceDays) * 24 * time.Hour)
	if !now.Before(graceEnd) {
		result.Reason = ReasonGraceExpired
		return result
	}

	remaining := graceEnd.Sub(now)
	result.Valid = true
	result.GraceRemaining = remaining
	result.Reason = fmt.Sprintf("offline mode (grace period: %d days remaining)", int(remaining/(24*time.Hour)))
	return result
}

func rejectionReason(e *APIError) string {
	switch {
	case e.Reason != "":
		return e.Reason
	case e.Code != "":
		return e.Code
	default:
		return e.Message
	}
}

// Run interval 마다 Check 를 실행하고 결과를 onResult 로 전달합니다. ctx 가 취소되면 반환합니다.
func (g *Guard) Run(ctx context.Context, interval time.Duration, onResult func(CheckResult)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		result, err := g.Check(ctx)
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			logger.WithFields(map[string]interface{}{
				"error": err.Error(),
			}).Error("License check failed")
		} else if onResult != nil {
			onResult(result)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
