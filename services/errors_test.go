package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyStoreError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind StoreErrorKind
	}{
		{"no rows", sql.ErrNoRows, StoreNotFound},
		{"wrapped no rows", fmt.Errorf("scan: %w", sql.ErrNoRows), StoreNotFound},
		{"mysql duplicate", &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}, StoreConflict},
		{"mysql deadlock", &mysql.MySQLError{Number: 1213}, StoreNotReady},
		{"mysql lock wait", &mysql.MySQLError{Number: 1205}, StoreNotReady},
		{"mysql missing table", &mysql.MySQLError{Number: 1146}, StoreNotReady},
		{"mysql other", &mysql.MySQLError{Number: 1064}, StoreUnknown},
		{"bad conn", mysql.ErrInvalidConn, StoreNotReady},
		{"deadline", context.DeadlineExceeded, StoreNotReady},
		{"plain", errors.New("boom"), StoreUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classifyStoreError("op", tt.err)
			var se *StoreError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tt.kind, se.Kind)
			assert.ErrorIs(t, err, tt.err)
		})
	}

	assert.Nil(t, classifyStoreError("op", nil))
}

func TestClassifyStoreError_SQLiteConstraint(t *testing.T) {
	db := newTestDB(t)
	_, err := db.Exec(`INSERT INTO licenses (id, license_key, created_at, updated_at) VALUES ('a', 'K', 'x', 'x')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO licenses (id, license_key, created_at, updated_at) VALUES ('b', 'K', 'x', 'x')`)
	require.Error(t, err)

	assert.True(t, IsStoreKind(classifyStoreError("insert", err), StoreConflict))
}

func TestClassifyStoreError_KeepsExistingKind(t *testing.T) {
	inner := &StoreError{Kind: StoreNotReady, Op: "inner"}
	err := classifyStoreError("outer", fmt.Errorf("wrap: %w", inner))
	assert.True(t, IsStoreKind(err, StoreNotReady))
}

func TestLicenseErrorMessages(t *testing.T) {
	assert.Equal(t, "maximum activations (3) reached for this license",
		(&LicenseError{Kind: KindQuotaExceeded, MaxActivations: 3}).Error())
	assert.Equal(t, "license is not valid: expired", (&LicenseError{Kind: KindInvalid, Reason: "expired"}).Error())
	assert.Equal(t, "internal error", (&LicenseError{Kind: KindInternal, Err: errors.New("disk on fire")}).Error(),
		"internal errors never expose storage text")

	assert.Equal(t, KindDeviceRevoked, KindOf(fmt.Errorf("x: %w", &LicenseError{Kind: KindDeviceRevoked})))
	assert.Equal(t, KindInternal, KindOf(errors.New("other")))
}

func TestStoreFailure(t *testing.T) {
	assert.Equal(t, KindUnavailable, KindOf(storeFailure(&StoreError{Kind: StoreNotReady})))
	assert.Equal(t, KindInternal, KindOf(storeFailure(&StoreError{Kind: StoreUnknown})))
}
