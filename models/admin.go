package models

import "time"

// Admin 관리자 정보
type Admin struct {
	ID        string    `json:"id" db:"id"`
	Username  string    `json:"username" db:"username"`
	Password  string    `json:"-" db:"password"` // bcrypt 해시
	Email     string    `json:"email" db:"email"`
	Role      string    `json:"role" db:"role"` // admin, superadmin
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// 관리자 역할
const (
	RoleSuperAdmin = "superadmin"
	RoleAdmin      = "admin"
)

// LoginRequest 로그인 요청
type LoginRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required,max=128"`
}

// LoginResponse 로그인 응답
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Admin     *Admin    `json:"admin"`
}

// CreateAdminRequest 관리자 계정 생성 요청
type CreateAdminRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Email    string `json:"email" validate:"required,email,max=200"`
	Password string `json:"password" validate:"required,min=8,max=128"`
	Role     string `json:"role" validate:"omitempty,oneof=admin superadmin"` // 비우면 admin
}

// PasswordResetResponse 비밀번호 초기화 결과 (임시 비밀번호는 이 응답에서만 노출)
type PasswordResetResponse struct {
	AdminID      string `json:"admin_id"`
	TempPassword string `json:"temp_password"`
}
