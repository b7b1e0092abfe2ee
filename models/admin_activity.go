package models

import "time"

// AdminActivityLog 관리자 활동 로그
type AdminActivityLog struct {
	ID        int64     `json:"id" db:"id"`
	AdminID   string    `json:"admin_id" db:"admin_id"`
	Username  string    `json:"username" db:"username"`
	Action    string    `json:"action" db:"action"`
	Details   string    `json:"details" db:"details"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// 관리자 활동 액션 상수
const (
	AdminActionLogin               = "login"
	AdminActionCreateLicense       = "create_license"
	AdminActionUpdateLicense       = "update_license"
	AdminActionRevokeLicense       = "revoke_license"
	AdminActionRevokeActivation    = "revoke_activation"
	AdminActionReinstateActivation = "reinstate_activation"
	AdminActionCreateAdmin         = "create_admin"
	AdminActionResetPassword       = "reset_admin_password"
	AdminActionDeleteAdmin         = "delete_admin"
	AdminActionCreateRelease       = "create_release"
	AdminActionSetLatestRelease    = "set_latest_release"
)
