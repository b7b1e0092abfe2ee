package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"devicelicense/logger"

	_ "github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"
)

// 지원하는 드라이버 이름
const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

var DB *sql.DB
var dbType string // 데이터베이스 타입 저장

// Initialize 전역 데이터베이스 초기화
// driver: "sqlite" 또는 "mysql"
// dsn: SQLite 파일 경로 또는 MySQL DSN
func Initialize(driver, dsn string) error {
	db, err := Open(driver, dsn)
	if err != nil {
		return err
	}

	DB = db
	dbType = driver
	logger.Info("Database initialized successfully (%s)", driver)
	return nil
}

// Type 현재 전역 데이터베이스 드라이버
func Type() string {
	return dbType
}

// Open 연결을 열고 스키마를 준비한 *sql.DB 를 반환합니다.
func Open(driver, dsn string) (*sql.DB, error) {
	if driver == "" {
		driver = DriverSQLite
	}

	switch driver {
	case DriverSQLite:
		if dsn == "" {
			dsn = "./license.db"
		}
		dsn = sqliteDSN(dsn)
	case DriverMySQL:
		if dsn == "" {
			return nil, fmt.Errorf("mysql DSN is required")
		}
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if driver == DriverMySQL {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// 연결 테스트
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// 테이블 생성
	if err := Migrate(ctx, db, driver); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return db, nil
}

// sqliteDSN 외래키와 busy timeout pragma 를 연결 문자열에 추가
// 연결마다 적용되어야 하므로 PRAGMA 구문 대신 DSN 으로 지정합니다.
func sqliteDSN(dsn string) string {
	pragmas := []string{}
	if !strings.Contains(dsn, "foreign_keys") {
		pragmas = append(pragmas, "_pragma=foreign_keys(1)")
	}
	if !strings.Contains(dsn, "busy_timeout") {
		pragmas = append(pragmas, "_pragma=busy_timeout(5000)")
	}
	if len(pragmas) == 0 {
		return dsn
	}

	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + strings.Join(pragmas, "&")
}

// Migrate 드라이버에 맞는 스키마를 생성합니다. 이미 존재하면 건너뜁니다.
func Migrate(ctx context.Context, db *sql.DB, driver string) error {
	statements := sqliteSchema
	if driver == DriverMySQL {
		statements = mysqlSchema
	}

	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to execute SQL: %w", err)
		}
	}
	return nil
}

// SQLite 스키마
// DATETIME 대신 TEXT 를 사용해 드라이버가 time.Time 으로 변환하지 않도록 합니다.
var sqliteSchema = []string{
	// 라이선스 테이블
	`CREATE TABLE IF NOT EXISTS licenses (
		id TEXT PRIMARY KEY,
		license_key TEXT NOT NULL UNIQUE,
		customer_name TEXT,
		max_activations INTEGER NOT NULL DEFAULT 1 CHECK (max_activations > 0),
		status TEXT NOT NULL DEFAULT 'active' CHECK (status IN ('active', 'suspended', 'revoked')),
		expires_at TEXT,
		notes TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	// 활성화 테이블: (license_id, device_id_hash) 쌍은 유일
	`CREATE TABLE IF NOT EXISTS activations (
		id TEXT PRIMARY KEY,
		license_id TEXT NOT NULL REFERENCES licenses(id) ON DELETE CASCADE,
		device_id_hash TEXT NOT NULL,
		device_label TEXT,
		status TEXT NOT NULL DEFAULT 'active' CHECK (status IN ('active', 'revoked')),
		activated_app_version TEXT NOT NULL DEFAULT '',
		first_activated_at TEXT NOT NULL,
		last_seen_at TEXT NOT NULL,
		revoked_at TEXT,
		UNIQUE (license_id, device_id_hash)
	)`,

	// 활성화 활동 로그
	`CREATE TABLE IF NOT EXISTS activation_logs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		activation_id TEXT NOT NULL,
		license_id TEXT NOT NULL,
		action TEXT NOT NULL,
		details TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	)`,

	// 관리자 테이블
	`CREATE TABLE IF NOT EXISTS admins (
		id TEXT PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL,
		email TEXT NOT NULL DEFAULT '',
		role TEXT NOT NULL DEFAULT 'admin',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	// 관리자 활동 로그
	`CREATE TABLE IF NOT EXISTS admin_activity_logs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		admin_id TEXT NOT NULL,
		username TEXT NOT NULL,
		action TEXT NOT NULL,
		details TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	)`,

	// 앱 릴리스 테이블: 플랫폼별 latest 는 최대 하나
	`CREATE TABLE IF NOT EXISTS app_releases (
		id TEXT PRIMARY KEY,
		platform TEXT NOT NULL,
		version TEXT NOT NULL,
		release_notes TEXT NOT NULL DEFAULT '',
		download_url TEXT NOT NULL,
		is_latest INTEGER NOT NULL DEFAULT 0,
		created_by TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		UNIQUE (platform, version)
	)`,

	// 인덱스 생성
	`CREATE INDEX IF NOT EXISTS idx_app_releases_latest ON app_releases(platform, is_latest)`,
	`CREATE INDEX IF NOT EXISTS idx_licenses_status ON licenses(status)`,
	`CREATE INDEX IF NOT EXISTS idx_licenses_expires ON licenses(expires_at)`,
	`CREATE INDEX IF NOT EXISTS idx_activations_license_status ON activations(license_id, status)`,
	`CREATE INDEX IF NOT EXISTS idx_activation_logs_activation ON activation_logs(activation_id)`,
	`CREATE INDEX IF NOT EXISTS idx_admin_logs_created ON admin_activity_logs(created_at)`,
}

// MySQL 스키마
// MySQL 은 CREATE INDEX IF NOT EXISTS 를 지원하지 않으므로 인덱스를 테이블 정의에 포함합니다.
var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS licenses (
		id VARCHAR(50) PRIMARY KEY,
		license_key VARCHAR(128) NOT NULL UNIQUE,
		customer_name VARCHAR(255) NULL,
		max_activations INT NOT NULL DEFAULT 1,
		status VARCHAR(20) NOT NULL DEFAULT 'active',
		expires_at DATETIME NULL,
		notes TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		INDEX idx_licenses_status (status),
		INDEX idx_licenses_expires (expires_at)
	) ENGINE=InnoDB CHARACTER SET utf8mb4 COLLATE utf8mb4_unicode_ci`,

	`CREATE TABLE IF NOT EXISTS activations (
		id VARCHAR(50) PRIMARY KEY,
		license_id VARCHAR(50) NOT NULL,
		device_id_hash CHAR(64) NOT NULL,
		device_label VARCHAR(255) NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'active',
		activated_app_version VARCHAR(64) NOT NULL DEFAULT '',
		first_activated_at DATETIME NOT NULL,
		last_seen_at DATETIME NOT NULL,
		revoked_at DATETIME NULL,
		FOREIGN KEY (license_id) REFERENCES licenses(id) ON DELETE CASCADE,
		UNIQUE KEY unique_license_device (license_id, device_id_hash),
		INDEX idx_activations_license_status (license_id, status)
	) ENGINE=InnoDB CHARACTER SET utf8mb4 COLLATE utf8mb4_unicode_ci`,

	`CREATE TABLE IF NOT EXISTS activation_logs (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		activation_id VARCHAR(50) NOT NULL,
		license_id VARCHAR(50) NOT NULL,
		action VARCHAR(50) NOT NULL,
		details TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		INDEX idx_activation (activation_id),
		INDEX idx_license (license_id)
	) ENGINE=InnoDB CHARACTER SET utf8mb4 COLLATE utf8mb4_unicode_ci`,

	`CREATE TABLE IF NOT EXISTS admins (
		id VARCHAR(50) PRIMARY KEY,
		username VARCHAR(100) NOT NULL UNIQUE,
		password VARCHAR(255) NOT NULL,
		email VARCHAR(100) NOT NULL DEFAULT '',
		role VARCHAR(50) NOT NULL DEFAULT 'admin',
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	) ENGINE=InnoDB CHARACTER SET utf8mb4 COLLATE utf8mb4_unicode_ci`,

	`CREATE TABLE IF NOT EXISTS admin_activity_logs (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		admin_id VARCHAR(50) NOT NULL,
		username VARCHAR(100) NOT NULL,
		action VARCHAR(100) NOT NULL,
		details TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		INDEX idx_admin (admin_id),
		INDEX idx_created (created_at)
	) ENGINE=InnoDB CHARACTER SET utf8mb4 COLLATE utf8mb4_unicode_ci`,

	`CREATE TABLE IF NOT EXISTS app_releases (
		id VARCHAR(50) PRIMARY KEY,
		platform VARCHAR(32) NOT NULL,
		version VARCHAR(64) NOT NULL,
		release_notes TEXT NOT NULL,
		download_url VARCHAR(1024) NOT NULL,
		is_latest TINYINT(1) NOT NULL DEFAULT 0,
		created_by VARCHAR(50) NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL,
		UNIQUE KEY unique_platform_version (platform, version),
		INDEX idx_app_releases_latest (platform, is_latest)
	) ENGINE=InnoDB CHARACTER SET utf8mb4 COLLATE utf8mb4_unicode_ci`,
}

// Close 데이터베이스 연결 종료
func Close() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}
