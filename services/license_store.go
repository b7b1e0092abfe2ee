package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"devicelicense/database"
	"devicelicense/models"
	"devicelicense/utils"
)

// LicenseFilter 라이선스 목록 조회 조건
type LicenseFilter struct {
	Status   string
	Search   string // license_key 또는 customer_name 부분 일치
	Page     int
	PageSize int
}

// LicenseStore 라이선스/활성화 레코드 저장소
//
// 활성화 수 제한은 CreateActivationWithinQuota, ReinstateActivationWithinQuota 가
// 저장소 수준에서 원자적으로 보장합니다.
type LicenseStore interface {
	GetLicenseByKey(ctx context.Context, key string) (*models.License, error)
	GetLicenseByID(ctx context.Context, id string) (*models.License, error)
	CreateLicense(ctx context.Context, l *models.License) error
	UpdateLicense(ctx context.Context, l *models.License) error
	ListLicenses(ctx context.Context, filter LicenseFilter) ([]*models.License, int, error)
	CountExpiredLicenses(ctx context.Context, now time.Time) (int, error)
	Stats(ctx context.Context, now time.Time) (*models.DashboardStats, error)

	FindActivation(ctx context.Context, licenseID, deviceHash string) (*models.Activation, error)
	GetActivation(ctx context.Context, id string) (*models.Activation, error)
	ListActivations(ctx context.Context, licenseID string) ([]*models.Activation, error)
	CountActiveActivations(ctx context.Context, licenseID string) (int, error)
	// CreateActivationWithinQuota 활성 수가 라이선스의 max_activations 미만일 때만 삽입합니다.
	// 한도에 걸리면 (false, nil), 같은 디바이스 행이 이미 있으면 StoreConflict 입니다.
	CreateActivationWithinQuota(ctx context.Context, a *models.Activation) (bool, error)
	TouchActivation(ctx context.Context, id, appVersion string, seenAt time.Time) error
	RevokeActivation(ctx context.Context, id string, at time.Time) (bool, error)
	// ReinstateActivationWithinQuota revoked 활성화를 한도 내에서만 다시 active 로 바꿉니다.
	ReinstateActivationWithinQuota(ctx context.Context, id string, at time.Time) (bool, error)
	LogActivationEvent(ctx context.Context, entry models.ActivationLog) error
	// ListActivationEvents licenseID 가 비어 있으면 전체 라이선스의 최근 이벤트를 반환합니다.
	ListActivationEvents(ctx context.Context, licenseID string, limit int) ([]models.ActivationLog, error)

	CountAdmins(ctx context.Context) (int, error)
	GetAdminByUsername(ctx context.Context, username string) (*models.Admin, error)
	CreateAdmin(ctx context.Context, a *models.Admin) error
	GetAdminByID(ctx context.Context, id string) (*models.Admin, error)
	ListAdmins(ctx context.Context) ([]*models.Admin, error)
	UpdateAdminPassword(ctx context.Context, id, hash string, at time.Time) (bool, error)
	DeleteAdmin(ctx context.Context, id string) (bool, error)
	LogAdminActivity(ctx context.Context, entry models.AdminActivityLog) error
	ListAdminActivity(ctx context.Context, limit int) ([]models.AdminActivityLog, error)
}

type sqlLicenseStore struct {
	db     SQLExecutor
	driver string
}

// NewLicenseStore는 database/sql 기반 LicenseStore 를 생성합니다.
// driver 는 database.DriverSQLite 또는 database.DriverMySQL 입니다.
func NewLicenseStore(db SQLExecutor, driver string) LicenseStore {
	return &sqlLicenseStore{db: db, driver: driver}
}

type rowScanner interface {
	Scan(dest ...any) error
}

const licenseColumns = `id, license_key, customer_name, max_activations, status, expires_at, notes, created_at, updated_at`

func scanLicense(row rowScanner) (*models.License, error) {
	var (
		l                    models.License
		customer, expires    sql.NullString
		createdAt, updatedAt string
	)
	if err := row.Scan(&l.ID, &l.LicenseKey, &customer, &l.MaxActivations, &l.Status, &expires, &l.Notes, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	if customer.Valid {
		name := customer.String
		l.CustomerName = &name
	}
	if expires.Valid && expires.String != "" {
		ts, err := utils.ParseDBDate(expires.String)
		if err != nil {
			return nil, fmt.Errorf("license %s expires_at: %w", l.ID, err)
		}
		l.ExpiresAt = &ts
	}
	l.CreatedAt, _ = utils.ParseDBDate(createdAt)
	l.UpdatedAt, _ = utils.ParseDBDate(updatedAt)
	return &l, nil
}

const activationColumns = `id, license_id, device_id_hash, device_label, status, activated_app_version, first_activated_at, last_seen_at, revoked_at`

func scanActivation(row rowScanner) (*models.Activation, error) {
	var (
		a                   models.Activation
		label, revokedAt    sql.NullString
		firstAt, lastSeenAt string
	)
	if err := row.Scan(&a.ID, &a.LicenseID, &a.DeviceIDHash, &label, &a.Status, &a.ActivatedAppVersion, &firstAt, &lastSeenAt, &revokedAt); err != nil {
		return nil, err
	}

	if label.Valid {
		v := label.String
		a.DeviceLabel = &v
	}
	if revokedAt.Valid && revokedAt.String != "" {
		if ts, err := utils.ParseDBDate(revokedAt.String); err == nil {
			a.RevokedAt = &ts
		}
	}
	a.FirstActivatedAt, _ = utils.ParseDBDate(firstAt)
	a.LastSeenAt, _ = utils.ParseDBDate(lastSeenAt)
	return &a, nil
}

func (s *sqlLicenseStore) GetLicenseByKey(ctx context.Context, key string) (*models.License, error) {
	l, err := scanLicense(s.db.QueryRowContext(ctx, `SELECT `+licenseColumns+` FROM licenses WHERE license_key = ?`, key))
	if err != nil {
		return nil, classifyStoreError("get license by key", err)
	}
	return l, nil
}

func (s *sqlLicenseStore) GetLicenseByID(ctx context.Context, id string) (*models.License, error) {
	l, err := scanLicense(s.db.QueryRowContext(ctx, `SELECT `+licenseColumns+` FROM licenses WHERE id = ?`, id))
	if err != nil {
		return nil, classifyStoreError("get license", err)
	}
	return l, nil
}

func (s *sqlLicenseStore) CreateLicense(ctx context.Context, l *models.License) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO licenses (id, license_key, customer_name, max_activations, status, expires_at, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		l.ID, l.LicenseKey, nullableString(l.CustomerName), l.MaxActivations, l.Status,
		utils.FormatNullableDateTime(l.ExpiresAt), l.Notes,
		utils.FormatDateTimeForDB(l.CreatedAt), utils.FormatDateTimeForDB(l.UpdatedAt),
	)
	return classifyStoreError("create license", err)
}

func (s *sqlLicenseStore) UpdateLicense(ctx context.Context, l *models.License) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE licenses
		SET customer_name = ?, max_activations = ?, status = ?, expires_at = ?, notes = ?, updated_at = ?
		WHERE id = ?`,
		nullableString(l.CustomerName), l.MaxActivations, l.Status,
		utils.FormatNullableDateTime(l.ExpiresAt), l.Notes, utils.FormatDateTimeForDB(l.UpdatedAt), l.ID,
	)
	return classifyStoreError("update license", err)
}

func (s *sqlLicenseStore) ListLicenses(ctx context.Context, filter LicenseFilter) ([]*models.License, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	if filter.Status != "" {
		where += ` AND status = ?`
		args = append(args, filter.Status)
	}
	if filter.Search != "" {
		where += ` AND (license_key LIKE ? OR customer_name LIKE ?)`
		pattern := "%" + filter.Search + "%"
		args = append(args, pattern, pattern)
	}

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM licenses`+where, args...).Scan(&total); err != nil {
		return nil, 0, classifyStoreError("count licenses", err)
	}

	page, size := filter.Page, filter.PageSize
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 200 {
		size = 50
	}
	query := `SELECT ` + licenseColumns + ` FROM licenses` + where + ` ORDER BY created_at DESC, id LIMIT ? OFFSET ?`
	args = append(args, size, (page-1)*size)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, classifyStoreError("list licenses", err)
	}
	defer rows.Close()

	licenses := []*models.License{}
	for rows.Next() {
		l, err := scanLicense(rows)
		if err != nil {
			return nil, 0, classifyStoreError("scan license", err)
		}
		licenses = append(licenses, l)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, classifyStoreError("list licenses", err)
	}
	return licenses, total, nil
}

func (s *sqlLicenseStore) CountExpiredLicenses(ctx context.Context, now time.Time) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM licenses WHERE status = ? AND expires_at IS NOT NULL AND expires_at < ?`,
		models.LicenseStatusActive, utils.FormatDateTimeForDB(now),
	).Scan(&n)
	if err != nil {
		return 0, classifyStoreError("count expired licenses", err)
	}
	return n, nil
}

func (s *sqlLicenseStore) Stats(ctx context.Context, now time.Time) (*models.DashboardStats, error) {
	stats := &models.DashboardStats{}

	rows, err := s.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM licenses GROUP BY status`)
	if err != nil {
		return nil, classifyStoreError("license stats", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			status string
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, classifyStoreError("scan license stats", err)
		}
		stats.TotalLicenses += n
		switch status {
		case models.LicenseStatusActive:
			stats.ActiveLicenses = n
		case models.LicenseStatusSuspended:
			stats.SuspendedLicenses = n
		case models.LicenseStatusRevoked:
			stats.RevokedLicenses = n
		}
	}
	if err := rows.Err(); err != nil {
		return nil, classifyStoreError("license stats", err)
	}

	if stats.ExpiredLicenses, err = s.CountExpiredLicenses(ctx, now); err != nil {
		return nil, err
	}

	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM activations WHERE status = ?`, models.ActivationStatusActive,
	).Scan(&stats.ActiveActivations)
	if err != nil {
		return nil, classifyStoreError("count activations", err)
	}
	return stats, nil
}

func (s *sqlLicenseStore) FindActivation(ctx context.Context, licenseID, deviceHash string) (*models.Activation, error) {
	a, err := scanActivation(s.db.QueryRowContext(ctx,
		`SELECT `+activationColumns+` FROM activations WHERE license_id = ? AND device_id_hash = ?`,
		licenseID, deviceHash))
	if err != nil {
		return nil, classifyStoreError("find activation", err)
	}
	return a, nil
}

func (s *sqlLicenseStore) GetActivation(ctx context.Context, id string) (*models.Activation, error) {
	a, err := scanActivation(s.db.QueryRowContext(ctx, `SELECT `+activationColumns+` FROM activations WHERE id = ?`, id))
	if err != nil {
		return nil, classifyStoreError("get activation", err)
	}
	return a, nil
}

func (s *sqlLicenseStore) ListActivations(ctx context.Context, licenseID string) ([]*models.Activation, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+activationColumns+` FROM activations WHERE license_id = ? ORDER BY first_activated_at, id`, licenseID)
	if err != nil {
		return nil, classifyStoreError("list activations", err)
	}
	defer rows.Close()

	activations := []*models.Activation{}
	for rows.Next() {
		a, err := scanActivation(rows)
		if err != nil {
			return nil, classifyStoreError("scan activation", err)
		}
		activations = append(activations, a)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyStoreError("list activations", err)
	}
	return activations, nil
}

func (s *sqlLicenseStore) CountActiveActivations(ctx context.Context, licenseID string) (int, error) {
	n, err := countActive(ctx, s.db, licenseID)
	if err != nil {
		return 0, classifyStoreError("count active activations", err)
	}
	return n, nil
}

func countActive(ctx context.Context, q rowQuerier, licenseID string) (int, error) {
	var n int
	err := q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM activations WHERE license_id = ? AND status = ?`,
		licenseID, models.ActivationStatusActive,
	).Scan(&n)
	return n, err
}

// SQLite 는 쓰기 문장이 시작될 때 RESERVED 락을 잡으므로 단일 INSERT ... SELECT 안의
// COUNT 와 INSERT 사이에 다른 쓰기가 끼어들 수 없습니다.
const sqliteInsertWithinQuota = `
	INSERT INTO activations (id, license_id, device_id_hash, device_label, status, activated_app_version, first_activated_at, last_seen_at)
	SELECT ?, ?, ?, ?, ?, ?, ?, ?
	WHERE (SELECT COUNT(*) FROM activations WHERE license_id = ? AND status = 'active')
		< (SELECT max_activations FROM licenses WHERE id = ?)`

const insertActivation = `
	INSERT INTO activations (id, license_id, device_id_hash, device_label, status, activated_app_version, first_activated_at, last_seen_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

func (s *sqlLicenseStore) CreateActivationWithinQuota(ctx context.Context, a *models.Activation) (bool, error) {
	values := []any{
		a.ID, a.LicenseID, a.DeviceIDHash, nullableString(a.DeviceLabel), models.ActivationStatusActive,
		a.ActivatedAppVersion, utils.FormatDateTimeForDB(a.FirstActivatedAt), utils.FormatDateTimeForDB(a.LastSeenAt),
	}

	if s.driver != database.DriverMySQL {
		res, err := s.db.ExecContext(ctx, sqliteInsertWithinQuota, append(values, a.LicenseID, a.LicenseID)...)
		if err != nil {
			return false, classifyStoreError("create activation", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return false, classifyStoreError("create activation", err)
		}
		return n == 1, nil
	}

	// MySQL: 라이선스 행을 FOR UPDATE 로 잠가 같은 라이선스의 활성화를 직렬화합니다.
	created := false
	err := withTx(ctx, s.db, func(tx *sql.Tx) error {
		var limit int
		if err := tx.QueryRowContext(ctx, `SELECT max_activations FROM licenses WHERE id = ? FOR UPDATE`, a.LicenseID).Scan(&limit); err != nil {
			return err
		}
		count, err := countActive(ctx, tx, a.LicenseID)
		if err != nil {
			return err
		}
		if count >= limit {
			return nil
		}
		if _, err := tx.ExecContext(ctx, insertActivation, values...); err != nil {
			return err
		}
		created = true
		return nil
	})
	if err != nil {
		return false, classifyStoreError("create activation", err)
	}
	return created, nil
}

func (s *sqlLicenseStore) TouchActivation(ctx context.Context, id, appVersion string, seenAt time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE activations
		SET last_seen_at = ?, activated_app_version = COALESCE(NULLIF(?, ''), activated_app_version)
		WHERE id = ?`,
		utils.FormatDateTimeForDB(seenAt), appVersion, id,
	)
	return classifyStoreError("touch activation", err)
}

func (s *sqlLicenseStore) RevokeActivation(ctx context.Context, id string, at time.Time) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE activations SET status = ?, revoked_at = ? WHERE id = ? AND status = ?`,
		models.ActivationStatusRevoked, utils.FormatDateTimeForDB(at), id, models.ActivationStatusActive,
	)
	if err != nil {
		return false, classifyStoreError("revoke activation", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, classifyStoreError("revoke activation", err)
	}
	return n == 1, nil
}

const sqliteReinstateWithinQuota = `
	UPDATE activations
	SET status = 'active', revoked_at = NULL, last_seen_at = ?
	WHERE id = ? AND status = 'revoked'
		AND (SELECT COUNT(*) FROM activations WHERE license_id = ? AND status = 'active')
			< (SELECT max_activations FROM licenses WHERE id = ?)`

func (s *sqlLicenseStore) ReinstateActivationWithinQuota(ctx context.Context, id string, at time.Time) (bool, error) {
	current, err := s.GetActivation(ctx, id)
	if err != nil {
		return false, err
	}
	if current.Status == models.ActivationStatusActive {
		return true, nil
	}
	seen := utils.FormatDateTimeForDB(at)

	if s.driver != database.DriverMySQL {
		res, err := s.db.ExecContext(ctx, sqliteReinstateWithinQuota, seen, id, current.LicenseID, current.LicenseID)
		if err != nil {
			return false, classifyStoreError("reinstate activation", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return false, classifyStoreError("reinstate activation", err)
		}
		return n == 1, nil
	}

	reinstated := false
	err = withTx(ctx, s.db, func(tx *sql.Tx) error {
		var limit int
		if err := tx.QueryRowContext(ctx, `SELECT max_activations FROM licenses WHERE id = ? FOR UPDATE`, current.LicenseID).Scan(&limit); err != nil {
			return err
		}
		count, err := countActive(ctx, tx, current.LicenseID)
		if err != nil {
			return err
		}
		if count >= limit {
			return nil
		}
		res, err := tx.ExecContext(ctx,
			`UPDATE activations SET status = 'active', revoked_at = NULL, last_seen_at = ? WHERE id = ? AND status = 'revoked'`,
			seen, id)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		reinstated = n == 1
		return nil
	})
	if err != nil {
		return false, classifyStoreError("reinstate activation", err)
	}
	return reinstated, nil
}

func (s *sqlLicenseStore) LogActivationEvent(ctx context.Context, entry models.ActivationLog) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = utils.NowUTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO activation_logs (activation_id, license_id, action, details, created_at) VALUES (?, ?, ?, ?, ?)`,
		entry.ActivationID, entry.LicenseID, entry.Action, entry.Details, utils.FormatDateTimeForDB(entry.CreatedAt),
	)
	return classifyStoreError("log activation event", err)
}

func (s *sqlLicenseStore) ListActivationEvents(ctx context.Context, licenseID string, limit int) ([]models.ActivationLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	query := `SELECT id, activation_id, license_id, action, details, created_at FROM activation_logs`
	args := []any{}
	if licenseID != "" {
		query += ` WHERE license_id = ?`
		args = append(args, licenseID)
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classifyStoreError("list activation events", err)
	}
	defer rows.Close()

	logs := []models.ActivationLog{}
	for rows.Next() {
		var (
			entry     models.ActivationLog
			createdAt string
		)
		if err := rows.Scan(&entry.ID, &entry.ActivationID, &entry.LicenseID, &entry.Action, &entry.Details, &createdAt); err != nil {
			return nil, classifyStoreError("scan activation event", err)
		}
		entry.CreatedAt, _ = utils.ParseDBDate(createdAt)
		logs = append(logs, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyStoreError("list activation events", err)
	}
	return logs, nil
}

func (s *sqlLicenseStore) CountAdmins(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM admins`).Scan(&n); err != nil {
		return 0, classifyStoreError("count admins", err)
	}
	return n, nil
}

const adminColumns = `id, username, password, email, role, created_at, updated_at`

func scanAdmin(row rowScanner) (*models.Admin, error) {
	var (
		a                    models.Admin
		createdAt, updatedAt string
	)
	if err := row.Scan(&a.ID, &a.Username, &a.Password, &a.Email, &a.Role, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	a.CreatedAt, _ = utils.ParseDBDate(createdAt)
	a.UpdatedAt, _ = utils.ParseDBDate(updatedAt)
	return &a, nil
}

func (s *sqlLicenseStore) GetAdminByUsername(ctx context.Context, username string) (*models.Admin, error) {
	a, err := scanAdmin(s.db.QueryRowContext(ctx, `SELECT `+adminColumns+` FROM admins WHERE username = ?`, username))
	if err != nil {
		return nil, classifyStoreError("get admin", err)
	}
	return a, nil
}

func (s *sqlLicenseStore) GetAdminByID(ctx context.Context, id string) (*models.Admin, error) {
	a, err := scanAdmin(s.db.QueryRowContext(ctx, `SELECT `+adminColumns+` FROM admins WHERE id = ?`, id))
	if err != nil {
		return nil, classifyStoreError("get admin", err)
	}
	return a, nil
}

func (s *sqlLicenseStore) ListAdmins(ctx context.Context) ([]*models.Admin, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+adminColumns+` FROM admins ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, classifyStoreError("list admins", err)
	}
	defer rows.Close()

	admins := []*models.Admin{}
	for rows.Next() {
		a, err := scanAdmin(rows)
		if err != nil {
			return nil, classifyStoreError("scan admin", err)
		}
		admins = append(admins, a)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyStoreError("list admins", err)
	}
	return admins, nil
}

func (s *sqlLicenseStore) UpdateAdminPassword(ctx context.Context, id, hash string, at time.Time) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE admins SET password = ?, updated_at = ? WHERE id = ?`, hash, utils.FormatDateTimeForDB(at), id)
	if err != nil {
		return false, classifyStoreError("update admin password", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, classifyStoreError("update admin password", err)
	}
	return n > 0, nil
}

func (s *sqlLicenseStore) DeleteAdmin(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM admins WHERE id = ?`, id)
	if err != nil {
		return false, classifyStoreError("delete admin", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, classifyStoreError("delete admin", err)
	}
	return n > 0, nil
}

func (s *sqlLicenseStore) CreateAdmin(ctx context.Context, a *models.Admin) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO admins (id, username, password, email, role, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Username, a.Password, a.Email, a.Role,
		utils.FormatDateTimeForDB(a.CreatedAt), utils.FormatDateTimeForDB(a.UpdatedAt),
	)
	return classifyStoreError("create admin", err)
}

func (s *sqlLicenseStore) LogAdminActivity(ctx context.Context, entry models.AdminActivityLog) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = utils.NowUTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO admin_activity_logs (admin_id, username, action, details, created_at) VALUES (?, ?, ?, ?, ?)`,
		entry.AdminID, entry.Username, entry.Action, entry.Details, utils.FormatDateTimeForDB(entry.CreatedAt),
	)
	return classifyStoreError("log admin activity", err)
}

func (s *sqlLicenseStore) ListAdminActivity(ctx context.Context, limit int) ([]models.AdminActivityLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, admin_id, username, action, details, created_at FROM admin_activity_logs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, classifyStoreError("list admin activity", err)
	}
	defer rows.Close()

	logs := []models.AdminActivityLog{}
	for rows.Next() {
		var (
			entry     models.AdminActivityLog
			createdAt string
		)
		if err := rows.Scan(&entry.ID, &entry.AdminID, &entry.Username, &entry.Action, &entry.Details, &createdAt); err != nil {
			return nil, classifyStoreError("scan admin activity", err)
		}
		entry.CreatedAt, _ = utils.ParseDBDate(createdAt)
		logs = append(logs, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyStoreError("list admin activity", err)
	}
	return logs, nil
}

func nullableString(s *string) any {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return trimmed
}
