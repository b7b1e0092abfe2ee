package services

import (
	"context"
	"database/sql"
	"fmt"
)

// SQLExecutor는 서비스 계층이 데이터베이스 구현 세부사항으로부터 분리되도록 해주는 최소한의 인터페이스입니다.
type SQLExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

// rowQuerier는 *sql.DB 와 *sql.Tx 모두 만족하는 조회 전용 인터페이스입니다.
type rowQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type sqlDBExecutor struct {
	db *sql.DB
}

// NewSQLExecutor는 *sql.DB를 감싸는 SQLExecutor를 생성합니다.
func NewSQLExecutor(db *sql.DB) SQLExecutor {
	return &sqlDBExecutor{db: db}
}

func (s *sqlDBExecutor) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return s.db.ExecContext(ctx, query, args...)
}

func (s *sqlDBExecutor) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return s.db.QueryContext(ctx, query, args...)
}

func (s *sqlDBExecutor) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return s.db.QueryRowContext(ctx, query, args...)
}

func (s *sqlDBExecutor) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	return s.db.BeginTx(ctx, opts)
}

// withTx는 fn 을 트랜잭션 안에서 실행하고, 에러가 없으면 커밋합니다.
func withTx(ctx context.Context, exec SQLExecutor, fn func(tx *sql.Tx) error) error {
	tx, err := exec.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
