package models

import "time"

// ActivationLog 활성화 활동 로그
type ActivationLog struct {
	ID           int64     `json:"id" db:"id"`
	ActivationID string    `json:"activation_id" db:"activation_id"`
	LicenseID    string    `json:"license_id" db:"license_id"`
	Action       string    `json:"action" db:"action"`
	Details      string    `json:"details" db:"details"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// 활동 액션 타입 상수
const (
	ActivationActionActivated   = "activated"
	ActivationActionReactivated = "reactivated"
	ActivationActionDeactivated = "deactivated"
	ActivationActionRevoked     = "revoked"
	ActivationActionReinstated  = "reinstated"
)
