package models

import "time"

// Activation 라이선스와 디바이스의 바인딩
type Activation struct {
	ID                  string     `json:"id" db:"id"`
	LicenseID           string     `json:"license_id" db:"license_id"`
	DeviceIDHash        string     `json:"device_id_hash" db:"device_id_hash"`
	DeviceLabel         *string    `json:"device_label,omitempty" db:"device_label"`
	Status              string     `json:"status" db:"status"` // active, revoked
	ActivatedAppVersion string     `json:"activated_app_version" db:"activated_app_version"`
	FirstActivatedAt    time.Time  `json:"first_activated_at" db:"first_activated_at"`
	LastSeenAt          time.Time  `json:"last_seen_at" db:"last_seen_at"`
	RevokedAt           *time.Time `json:"revoked_at,omitempty" db:"revoked_at"`
}

// ActivationStatus 상태 상수
const (
	ActivationStatusActive  = "active"
	ActivationStatusRevoked = "revoked"
)

// View 클라이언트에 노출되는 활성화 정보 (디바이스 해시 제외)
func (a *Activation) View() ActivationView {
	return ActivationView{
		ID:                  a.ID,
		DeviceLabel:         a.DeviceLabel,
		ActivatedAppVersion: a.ActivatedAppVersion,
		FirstActivatedAt:    a.FirstActivatedAt,
		LastSeenAt:          a.LastSeenAt,
	}
}

// ActivationView 클라이언트 응답용 활성화 요약
type ActivationView struct {
	ID                  string    `json:"id"`
	DeviceLabel         *string   `json:"device_label,omitempty"`
	ActivatedAppVersion string    `json:"activated_app_version"`
	FirstActivatedAt    time.Time `json:"first_activated_at"`
	LastSeenAt          time.Time `json:"last_seen_at"`
}

// ActivateRequest 라이선스 활성화 요청
type ActivateRequest struct {
	LicenseKey        string  `json:"license_key" validate:"required,max=128"`
	DeviceFingerprint string  `json:"device_fingerprint" validate:"required,max=512"`
	AppVersion        string  `json:"app_version" validate:"required,max=64"`
	DeviceLabel       *string `json:"device_label,omitempty" validate:"omitempty,max=128"`
}

// ActivateResponse 라이선스 활성화 응답
type ActivateResponse struct {
	ActivationToken string         `json:"activation_token"`
	TokenExpiresAt  time.Time      `json:"token_expires_at"`
	License         LicenseView    `json:"license"`
	Activation      ActivationView `json:"activation"`
	GraceDays       int            `json:"grace_days"`
}

// ValidateRequest 라이선스 검증 요청 (토큰은 Authorization 헤더)
type ValidateRequest struct {
	AppVersion string `json:"app_version" validate:"max=64"`
}

// ValidateResponse 라이선스 검증 응답
type ValidateResponse struct {
	Valid      bool       `json:"valid"`
	Reason     string     `json:"reason,omitempty"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	Status     string     `json:"status,omitempty"`
	ServerTime time.Time  `json:"server_time"`
}

// DeactivateResponse 라이선스 비활성화 응답
type DeactivateResponse struct {
	ActivationID string `json:"activation_id"`
	Deactivated  bool   `json:"deactivated"` // false면 이미 비활성 상태였음
}
