package services

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// StoreErrorKind 저장소 실패 종류
type StoreErrorKind int

const (
	StoreUnknown StoreErrorKind = iota
	StoreNotReady
	StoreNotFound
	StoreConflict
)

func (k StoreErrorKind) String() string {
	switch k {
	case StoreNotReady:
		return "not_ready"
	case StoreNotFound:
		return "not_found"
	case StoreConflict:
		return "conflict"
	default:
		return "unknown"
	}
}

// StoreError 드라이버 에러를 의미 단위로 분류한 저장소 에러
type StoreError struct {
	Kind StoreErrorKind
	Op   string
	Err  error
}

func (e *StoreError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("store %s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("store %s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// IsStoreKind err 체인에 해당 종류의 StoreError 가 있는지 확인
func IsStoreKind(err error, kind StoreErrorKind) bool {
	var se *StoreError
	return errors.As(err, &se) && se.Kind == kind
}

// MySQL 에러 번호
const (
	mysqlErrDupEntry        = 1062
	mysqlErrLockWaitTimeout = 1205
	mysqlErrLockDeadlock    = 1213
	mysqlErrNoSuchTable     = 1146
)

// classifyStoreError 드라이버 에러 코드를 기준으로 StoreError 로 감쌉니다.
func classifyStoreError(op string, err error) error {
	if err == nil {
		return nil
	}
	var existing *StoreError
	if errors.As(err, &existing) {
		return err
	}
	return &StoreError{Kind: storeKindOf(err), Op: op, Err: err}
}

func storeKindOf(err error) StoreErrorKind {
	if errors.Is(err, sql.ErrNoRows) {
		return StoreNotFound
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) || errors.Is(err, mysql.ErrInvalidConn) {
		return StoreNotReady
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return StoreNotReady
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() & 0xff {
		case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
			return StoreNotReady
		case sqlite3.SQLITE_CONSTRAINT:
			return StoreConflict
		}
		return StoreUnknown
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case mysqlErrDupEntry:
			return StoreConflict
		case mysqlErrLockWaitTimeout, mysqlErrLockDeadlock, mysqlErrNoSuchTable:
			return StoreNotReady
		}
	}

	return StoreUnknown
}

// ErrorKind 라이선스 작업 결과 에러 종류
type ErrorKind string

const (
	KindNotFound      ErrorKind = "not_found"
	KindInvalid       ErrorKind = "invalid"
	KindDeviceRevoked ErrorKind = "device_revoked"
	KindQuotaExceeded ErrorKind = "quota_exceeded"
	KindInvalidToken  ErrorKind = "invalid_token"
	KindConflict      ErrorKind = "conflict"
	KindUnavailable   ErrorKind = "unavailable"
	KindInternal      ErrorKind = "internal"
)

// LicenseError 활성화/검증/관리 작업의 실패 결과
type LicenseError struct {
	Kind           ErrorKind
	Reason         string // KindInvalid 일 때 revoked, suspended, expired
	MaxActivations int    // KindQuotaExceeded 일 때 허용 수
	Err            error
}

func (e *LicenseError) Error() string {
	switch e.Kind {
	case KindNotFound:
		return "license key not found"
	case KindInvalid:
		return "license is not valid: " + e.Reason
	case KindDeviceRevoked:
		return "this device activation has been revoked"
	case KindQuotaExceeded:
		return fmt.Sprintf("maximum activations (%d) reached for this license", e.MaxActivations)
	case KindInvalidToken:
		return "invalid or expired activation token"
	case KindConflict:
		if e.Reason != "" {
			return e.Reason
		}
		return "resource already exists"
	case KindUnavailable:
		return "license store temporarily unavailable"
	default:
		return "internal error"
	}
}

func (e *LicenseError) Unwrap() error {
	return e.Err
}

// KindOf err 의 LicenseError 종류. LicenseError 가 아니면 KindInternal
func KindOf(err error) ErrorKind {
	var le *LicenseError
	if errors.As(err, &le) {
		return le.Kind
	}
	return KindInternal
}

// storeFailure 저장소 에러를 외부에 노출 가능한 LicenseError 로 변환
// 일시적인 실패는 unavailable, 나머지는 internal 입니다.
func storeFailure(err error) error {
	if IsStoreKind(err, StoreNotReady) {
		return &LicenseError{Kind: KindUnavailable, Err: err}
	}
	return &LicenseError{Kind: KindInternal, Err: err}
}
