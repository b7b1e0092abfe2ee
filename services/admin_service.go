package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"devicelicense/logger"
	"devicelicense/models"
	"devicelicense/utils"
)

var (
	// ErrInvalidCredentials는 아이디 또는 비밀번호가 맞지 않을 때 반환됩니다.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrLicenseNotFound는 라이선스가 존재하지 않을 때 반환됩니다.
	ErrLicenseNotFound = errors.New("license not found")
	// ErrActivationNotFound는 활성화 레코드가 존재하지 않을 때 반환됩니다.
	ErrActivationNotFound = errors.New("activation not found")
	// ErrLicenseKeyConflict는 동일한 라이선스 키가 이미 존재할 때 반환됩니다.
	ErrLicenseKeyConflict = errors.New("license key already exists")
	// ErrInvalidExpiry는 만료일 형식이 잘못되었거나 과거일 때 반환됩니다.
	ErrInvalidExpiry = errors.New("invalid expiration date")
	// ErrReinstateQuota는 다시 활성화하면 허용 수를 넘을 때 반환됩니다.
	ErrReinstateQuota = errors.New("reinstating would exceed max_activations")
	// ErrAdminNotFound는 관리자 계정이 존재하지 않을 때 반환됩니다.
	ErrAdminNotFound = errors.New("admin not found")
	// ErrAdminUsernameTaken는 같은 아이디의 관리자가 이미 있을 때 반환됩니다.
	ErrAdminUsernameTaken = errors.New("username already exists")
	// ErrProtectedAdmin는 자기 자신이나 superadmin 계정을 변경하려 할 때 반환됩니다.
	ErrProtectedAdmin = errors.New("admin account is protected")
)

// Actor 관리 작업을 수행한 관리자
type Actor struct {
	AdminID  string
	Username string
}

// AdminService는 관리자 인증과 활동 로그를 담당합니다.
type AdminService interface {
	EnsureBootstrapAdmin(ctx context.Context, username, password, email string) (bool, error)
	Login(ctx context.Context, username, password string) (*models.LoginResponse, error)
	Record(ctx context.Context, actor Actor, action, details string)
	ListActivity(ctx context.Context, limit int) ([]models.AdminActivityLog, error)

	ListAdmins(ctx context.Context) ([]*models.Admin, error)
	CreateAdmin(ctx context.Context, actor Actor, req models.CreateAdminRequest) (*models.Admin, error)
	ResetPassword(ctx context.Context, actor Actor, adminID string) (string, error)
	DeleteAdmin(ctx context.Context, actor Actor, adminID string) error
}

type adminService struct {
	store  LicenseStore
	tokens *utils.AdminTokenCodec
}

// NewAdminService는 AdminService 구현체를 생성합니다.
func NewAdminService(store LicenseStore, tokens *utils.AdminTokenCodec) AdminService {
	return &adminService{store: store, tokens: tokens}
}

// EnsureBootstrapAdmin 관리자가 한 명도 없고 비밀번호가 주어졌을 때만 superadmin 계정을 만듭니다.
func (s *adminService) EnsureBootstrapAdmin(ctx context.Context, username, password, email string) (bool, error) {
	count, err := s.store.CountAdmins(ctx)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}
	if password == "" {
		logger.Warn("No admin accounts exist and no bootstrap password is configured; admin API is unusable")
		return false, nil
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return false, fmt.Errorf("hash bootstrap password: %w", err)
	}
	id, err := utils.GenerateID("adm")
	if err != nil {
		return false, err
	}
	now := utils.NowUTC()
	admin := &models.Admin{
		ID:        id,
		Username:  username,
		Password:  hash,
		Email:     email,
		Role:      models.RoleSuperAdmin,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.CreateAdmin(ctx, admin); err != nil {
		if IsStoreKind(err, StoreConflict) {
			return false, nil
		}
		return false, err
	}

	logger.Info("Bootstrap admin created (username: %s)", username)
	return true, nil
}

func (s *adminService) Login(ctx context.Context, username, password string) (*models.LoginResponse, error) {
	admin, err := s.store.GetAdminByUsername(ctx, username)
	if err != nil {
		if IsStoreKind(err, StoreNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !utils.CheckPassword(admin.Password, password) {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(admin.ID, admin.Username, admin.Role)
	if err != nil {
		return nil, err
	}

	s.Record(ctx, Actor{AdminID: admin.ID, Username: admin.Username}, models.AdminActionLogin, "Login successful")
	return &models.LoginResponse{Token: token, ExpiresAt: expiresAt, Admin: admin}, nil
}

// Record 관리자 활동 로그 기록 (실패는 로그만 남김)
func (s *adminService) Record(ctx context.Context, actor Actor, action, details string) {
	err := s.store.LogAdminActivity(ctx, models.AdminActivityLog{
		AdminID:  actor.AdminID,
		Username: actor.Username,
		Action:   action,
		Details:  details,
	})
	if err != nil {
		logger.Error("Failed to log admin activity: %v", err)
	}
}

func (s *adminService) ListActivity(ctx context.Context, limit int) ([]models.AdminActivityLog, error) {
	return s.store.ListAdminActivity(ctx, limit)
}

func (s *adminService) ListAdmins(ctx context.Context) ([]*models.Admin, error) {
	return s.store.ListAdmins(ctx)
}

// CreateAdmin 관리자 계정 생성. role 을 비우면 일반 admin 입니다.
func (s *adminService) CreateAdmin(ctx context.Context, actor Actor, req models.CreateAdminRequest) (*models.Admin, error) {
	role := req.Role
	if role == "" {
		role = models.RoleAdmin
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	id, err := utils.GenerateID("adm")
	if err != nil {
		return nil, err
	}
	now := utils.NowUTC()
	admin := &models.Admin{
		ID:        id,
		Username:  strings.TrimSpace(req.Username),
		Password:  hash,
		Email:     strings.TrimSpace(req.Email),
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.CreateAdmin(ctx, admin); err != nil {
		if IsStoreKind(err, StoreConflict) {
			return nil, ErrAdminUsernameTaken
		}
		return nil, err
	}

	s.Record(ctx, actor, models.AdminActionCreateAdmin, fmt.Sprintf("Created admin: %s (%s)", admin.Username, role))
	return admin, nil
}

// ResetPassword 임시 비밀번호를 발급합니다. superadmin 과 자기 자신은 대상이 아닙니다.
func (s *adminService) ResetPassword(ctx context.Context, actor Actor, adminID string) (string, error) {
	target, err := s.protectedTarget(ctx, actor, adminID)
	if err != nil {
		return "", err
	}

	temp, err := utils.GenerateTempPassword(12)
	if err != nil {
		return "", err
	}
	hash, err := utils.HashPassword(temp)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	changed, err := s.store.UpdateAdminPassword(ctx, target.ID, hash, utils.NowUTC())
	if err != nil {
		return "", err
	}
	if !changed {
		return "", ErrAdminNotFound
	}

	s.Record(ctx, actor, models.AdminActionResetPassword, "Reset password for admin: "+target.Username)
	return temp, nil
}

// DeleteAdmin 관리자 계정 삭제. superadmin 과 자기 자신은 삭제할 수 없습니다.
func (s *adminService) DeleteAdmin(ctx context.Context, actor Actor, adminID string) error {
	target, err := s.protectedTarget(ctx, actor, adminID)
	if err != nil {
		return err
	}

	deleted, err := s.store.DeleteAdmin(ctx, target.ID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrAdminNotFound
	}

	s.Record(ctx, actor, models.AdminActionDeleteAdmin, "Deleted admin: "+target.Username)
	return nil
}

func (s *adminService) protectedTarget(ctx context.Context, actor Actor, adminID string) (*models.Admin, error) {
	if adminID == actor.AdminID {
		return nil, ErrProtectedAdmin
	}
	target, err := s.store.GetAdminByID(ctx, adminID)
	if err != nil {
		if IsStoreKind(err, StoreNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}
	if target.Role == models.RoleSuperAdmin {
		return nil, ErrProtectedAdmin
	}
	return target, nil
}

// LicenseAdminService는 관리자용 라이선스/활성화 관리 로직을 정의합니다.
type LicenseAdminService interface {
	Create(ctx context.Context, req models.CreateLicenseRequest) (*models.License, error)
	List(ctx context.Context, filter LicenseFilter) ([]*models.License, int, error)
	Get(ctx context.Context, id string) (*models.LicenseDetail, error)
	Update(ctx context.Context, id string, req models.UpdateLicenseRequest) (*models.License, error)
	Revoke(ctx context.Context, id string) (*models.License, error)
	RevokeActivation(ctx context.Context, id string) (*models.Activation, error)
	ReinstateActivation(ctx context.Context, id string) (*models.Activation, error)
	Stats(ctx context.Context) (*models.DashboardStats, error)
	Events(ctx context.Context, licenseID string, limit int) ([]models.ActivationLog, error)
}

type licenseAdminService struct {
	store LicenseStore
	now   func() time.Time
}

// NewLicenseAdminService는 LicenseAdminService 구현체를 생성합니다.
func NewLicenseAdminService(store LicenseStore) LicenseAdminService {
	return &licenseAdminService{store: store, now: utils.NowUTC}
}

func (s *licenseAdminService) Create(ctx context.Context, req models.CreateLicenseRequest) (*models.License, error) {
	now := s.now()

	var expiresAt *time.Time
	if req.ExpiresAt != "" {
		ts, err := utils.ParseUserDate(req.ExpiresAt)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidExpiry, err)
		}
		if ts.Before(now) {
			return nil, fmt.Errorf("%w: expiration date cannot be in the past", ErrInvalidExpiry)
		}
		expiresAt = &ts
	}

	key := strings.TrimSpace(req.LicenseKey)
	if key == "" {
		generated, err := utils.GenerateLicenseKey()
		if err != nil {
			return nil, err
		}
		key = generated
	}

	id, err := utils.GenerateID("lic")
	if err != nil {
		return nil, err
	}

	maxActivations := req.MaxActivations
	if maxActivations == 0 {
		maxActivations = models.DefaultMaxActivations
	}

	lic := &models.License{
		ID:             id,
		LicenseKey:     key,
		CustomerName:   trimmedOrNil(req.CustomerName),
		MaxActivations: maxActivations,
		Status:         models.LicenseStatusActive,
		ExpiresAt:      expiresAt,
		Notes:          req.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.store.CreateLicense(ctx, lic); err != nil {
		if IsStoreKind(err, StoreConflict) {
			return nil, ErrLicenseKeyConflict
		}
		return nil, err
	}
	return lic, nil
}

func (s *licenseAdminService) List(ctx context.Context, filter LicenseFilter) ([]*models.License, int, error) {
	return s.store.ListLicenses(ctx, filter)
}

func (s *licenseAdminService) Get(ctx context.Context, id string) (*models.LicenseDetail, error) {
	lic, err := s.getLicense(ctx, id)
	if err != nil {
		return nil, err
	}
	activations, err := s.store.ListActivations(ctx, id)
	if err != nil {
		return nil, err
	}

	active := 0
	for _, a := range activations {
		if a.Status == models.ActivationStatusActive {
			active++
		}
	}
	return &models.LicenseDetail{License: *lic, ActiveCount: active, Activations: activations}, nil
}

func (s *licenseAdminService) Update(ctx context.Context, id string, req models.UpdateLicenseRequest) (*models.License, error) {
	lic, err := s.getLicense(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.CustomerName != nil {
		lic.CustomerName = trimmedOrNil(req.CustomerName)
	}
	if req.MaxActivations != nil {
		// 이미 활성화된 디바이스는 유지되고, 이후 신규 활성화만 제한됩니다.
		lic.MaxActivations = *req.MaxActivations
	}
	if req.Status != nil {
		lic.Status = *req.Status
	}
	if req.ExpiresAt != nil {
		if *req.ExpiresAt == "" {
			lic.ExpiresAt = nil
		} else {
			ts, err := utils.ParseUserDate(*req.ExpiresAt)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidExpiry, err)
			}
			lic.ExpiresAt = &ts
		}
	}
	if req.Notes != nil {
		lic.Notes = *req.Notes
	}
	lic.UpdatedAt = s.now()

	if err := s.store.UpdateLicense(ctx, lic); err != nil {
		return nil, err
	}
	return lic, nil
}

func (s *licenseAdminService) Revoke(ctx context.Context, id string) (*models.License, error) {
	status := models.LicenseStatusRevoked
	return s.Update(ctx, id, models.UpdateLicenseRequest{Status: &status})
}

func (s *licenseAdminService) RevokeActivation(ctx context.Context, id string) (*models.Activation, error) {
	if _, err := s.store.RevokeActivation(ctx, id, s.now()); err != nil {
		return nil, err
	}
	activation, err := s.getActivation(ctx, id)
	if err != nil {
		return nil, err
	}
	s.logEvent(ctx, activation, models.ActivationActionRevoked)
	return activation, nil
}

func (s *licenseAdminService) ReinstateActivation(ctx context.Context, id string) (*models.Activation, error) {
	if _, err := s.getActivation(ctx, id); err != nil {
		return nil, err
	}
	ok, err := s.store.ReinstateActivationWithinQuota(ctx, id, s.now())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrReinstateQuota
	}
	activation, err := s.getActivation(ctx, id)
	if err != nil {
		return nil, err
	}
	s.logEvent(ctx, activation, models.ActivationActionReinstated)
	return activation, nil
}

func (s *licenseAdminService) Stats(ctx context.Context) (*models.DashboardStats, error) {
	return s.store.Stats(ctx, s.now())
}

// Events 최근 활성화 이벤트. licenseID 가 주어지면 존재 여부를 먼저 확인합니다.
func (s *licenseAdminService) Events(ctx context.Context, licenseID string, limit int) ([]models.ActivationLog, error) {
	if licenseID != "" {
		if _, err := s.getLicense(ctx, licenseID); err != nil {
			return nil, err
		}
	}
	return s.store.ListActivationEvents(ctx, licenseID, limit)
}

func (s *licenseAdminService) getLicense(ctx context.Context, id string) (*models.License, error) {
	lic, err := s.store.GetLicenseByID(ctx, id)
	if err != nil {
		if IsStoreKind(err, StoreNotFound) {
			return nil, ErrLicenseNotFound
		}
		return nil, err
	}
	return lic, nil
}

func (s *licenseAdminService) getActivation(ctx context.Context, id string) (*models.Activation, error) {
	activation, err := s.store.GetActivation(ctx, id)
	if err != nil {
		if IsStoreKind(err, StoreNotFound) {
			return nil, ErrActivationNotFound
		}
		return nil, err
	}
	return activation, nil
}

func (s *licenseAdminService) logEvent(ctx context.Context, a *models.Activation, action string) {
	err := s.store.LogActivationEvent(ctx, models.ActivationLog{
		ActivationID: a.ID,
		LicenseID:    a.LicenseID,
		Action:       action,
		Details:      "admin action",
	})
	if err != nil {
		logger.Warn("Failed to record activation event %s for %s: %v", action, a.ID, err)
	}
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
