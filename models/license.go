package models

import "time"

// License 라이선스 정보
type License struct {
	ID             string     `json:"id" db:"id"`
	LicenseKey     string     `json:"license_key" db:"license_key"`
	CustomerName   *string    `json:"customer_name,omitempty" db:"customer_name"`
	MaxActivations int        `json:"max_activations" db:"max_activations"`
	Status         string     `json:"status" db:"status"` // active, suspended, revoked
	ExpiresAt      *time.Time `json:"expires_at,omitempty" db:"expires_at"`
	Notes          string     `json:"notes" db:"notes"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
}

// LicenseStatus 상태 상수
const (
	LicenseStatusActive    = "active"
	LicenseStatusSuspended = "suspended"
	LicenseStatusRevoked   = "revoked"
)

// DefaultMaxActivations 라이선스 생성 시 기본 허용 디바이스 수
const DefaultMaxActivations = 1

// 검증 실패 사유
const (
	ReasonRevoked            = "revoked"
	ReasonSuspended          = "suspended"
	ReasonExpired            = "expired"
	ReasonInvalidToken       = "invalid or expired token"
	ReasonActivationNotFound = "activation not found"
	ReasonActivationRevoked  = "activation revoked"
	ReasonLicenseNotFound    = "license not found"
)

// Validity 라이선스 유효성 판단
// 관리자 조치(revoked, suspended)가 만료보다 먼저 보고됩니다.
func (l *License) Validity(now time.Time) (bool, string) {
	switch l.Status {
	case LicenseStatusRevoked:
		return false, ReasonRevoked
	case LicenseStatusSuspended:
		return false, ReasonSuspended
	}
	if l.ExpiresAt != nil && l.ExpiresAt.Before(now) {
		return false, ReasonExpired
	}
	return true, ""
}

// View 클라이언트에 노출되는 라이선스 정보
func (l *License) View() LicenseView {
	return LicenseView{
		ID:             l.ID,
		CustomerName:   l.CustomerName,
		MaxActivations: l.MaxActivations,
		Status:         l.Status,
		ExpiresAt:      l.ExpiresAt,
	}
}

// LicenseView 클라이언트 응답용 라이선스 요약
type LicenseView struct {
	ID             string     `json:"id"`
	CustomerName   *string    `json:"customer_name,omitempty"`
	MaxActivations int        `json:"max_activations"`
	Status         string     `json:"status"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
}

// LicenseDetail 관리자 상세 조회 응답
type LicenseDetail struct {
	License
	ActiveCount int           `json:"active_count"`
	Activations []*Activation `json:"activations"`
}

// CreateLicenseRequest 라이선스 생성 요청
type CreateLicenseRequest struct {
	LicenseKey     string  `json:"license_key" validate:"omitempty,min=6,max=64"` // 비우면 자동 생성
	CustomerName   *string `json:"customer_name" validate:"omitempty,max=200"`
	MaxActivations int     `json:"max_activations" validate:"omitempty,min=1,max=10000"`
	ExpiresAt      string  `json:"expires_at" validate:"omitempty,max=40"` // RFC3339 또는 YYYY-MM-DD
	Notes          string  `json:"notes" validate:"max=2000"`
}

// UpdateLicenseRequest 라이선스 수정 요청 (nil 필드는 변경하지 않음)
type UpdateLicenseRequest struct {
	CustomerName   *string `json:"customer_name" validate:"omitempty,max=200"`
	MaxActivations *int    `json:"max_activations" validate:"omitempty,min=1,max=10000"`
	Status         *string `json:"status" validate:"omitempty,oneof=active suspended revoked"`
	ExpiresAt      *string `json:"expires_at" validate:"omitempty,max=40"` // 빈 문자열이면 무기한
	Notes          *string `json:"notes" validate:"omitempty,max=2000"`
}
