package services

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"devicelicense/database"
	"devicelicense/models"
	"devicelicense/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(database.DriverSQLite, filepath.Join(t.TempDir(), "license.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestStore(t *testing.T) (LicenseStore, *sql.DB) {
	t.Helper()
	db := newTestDB(t)
	return NewLicenseStore(NewSQLExecutor(db), database.DriverSQLite), db
}

type licenseSeed struct {
	key       string
	max       int
	status    string
	expiresAt *time.Time
}

func seedLicense(t *testing.T, store LicenseStore, seed licenseSeed) *models.License {
	t.Helper()
	id, err := utils.GenerateID("lic")
	require.NoError(t, err)
	if seed.max == 0 {
		seed.max = 1
	}
	if seed.status == "" {
		seed.status = models.LicenseStatusActive
	}
	now := utils.NowUTC()
	lic := &models.License{
		ID:             id,
		LicenseKey:     seed.key,
		MaxActivations: seed.max,
		Status:         seed.status,
		ExpiresAt:      seed.expiresAt,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	require.NoError(t, store.CreateLicense(context.Background(), lic))
	return lic
}

func newActivation(licenseID, hash string, at time.Time) *models.Activation {
	id, _ := utils.GenerateID("act")
	return &models.Activation{
		ID:                  id,
		LicenseID:           licenseID,
		DeviceIDHash:        hash,
		Status:              models.ActivationStatusActive,
		ActivatedAppVersion: "1.0.0",
		FirstActivatedAt:    at,
		LastSeenAt:          at,
	}
}

func TestStore_LicenseRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	exp := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	lic := seedLicense(t, store, licenseSeed{key: "KEY-1", max: 2, expiresAt: &exp})

	byKey, err := store.GetLicenseByKey(ctx, "KEY-1")
	require.NoError(t, err)
	assert.Equal(t, lic.ID, byKey.ID)
	assert.Equal(t, 2, byKey.MaxActivations)
	require.NotNil(t, byKey.ExpiresAt)
	assert.True(t, exp.Equal(*byKey.ExpiresAt))
	assert.Nil(t, byKey.CustomerName)

	_, err = store.GetLicenseByKey(ctx, "missing")
	assert.True(t, IsStoreKind(err, StoreNotFound))

	dup := *lic
	dup.ID = "lic-other"
	err = store.CreateLicense(ctx, &dup)
	assert.True(t, IsStoreKind(err, StoreConflict), "duplicate license key is a conflict: %v", err)
}

func TestStore_CreateActivationWithinQuota(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	lic := seedLicense(t, store, licenseSeed{key: "Q", max: 1})
	now := utils.NowUTC()

	created, err := store.CreateActivationWithinQuota(ctx, newActivation(lic.ID, "h1", now))
	require.NoError(t, err)
	assert.True(t, created)

	created, err = store.CreateActivationWithinQuota(ctx, newActivation(lic.ID, "h2", now))
	require.NoError(t, err)
	assert.False(t, created, "quota reached")

	n, err := store.CountActiveActivations(ctx, lic.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestStore_SameDeviceInsertConflicts(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	lic := seedLicense(t, store, licenseSeed{key: "C", max: 5})
	now := utils.NowUTC()

	_, err := store.CreateActivationWithinQuota(ctx, newActivation(lic.ID, "same", now))
	require.NoError(t, err)

	_, err = store.CreateActivationWithinQuota(ctx, newActivation(lic.ID, "same", now))
	assert.True(t, IsStoreKind(err, StoreConflict), "got %v", err)
}

func TestStore_RevokeAndReinstate(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	lic := seedLicense(t, store, licenseSeed{key: "R", max: 1})
	now := utils.NowUTC()

	first := newActivation(lic.ID, "h1", now)
	_, err := store.CreateActivationWithinQuota(ctx, first)
	require.NoError(t, err)

	changed, err := store.RevokeActivation(ctx, first.ID, now)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = store.RevokeActivation(ctx, first.ID, now)
	require.NoError(t, err)
	assert.False(t, changed, "already revoked")

	got, err := store.GetActivation(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ActivationStatusRevoked, got.Status)
	assert.NotNil(t, got.RevokedAt)

	second := newActivation(lic.ID, "h2", now)
	created, err := store.CreateActivationWithinQuota(ctx, second)
	require.NoError(t, err)
	require.True(t, created)

	ok, err := store.ReinstateActivationWithinQuota(ctx, first.ID, now)
	require.NoError(t, err)
	assert.False(t, ok, "slot taken by second device")

	_, err = store.RevokeActivation(ctx, second.ID, now)
	require.NoError(t, err)

	ok, err = store.ReinstateActivationWithinQuota(ctx, first.ID, now)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err = store.GetActivation(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ActivationStatusActive, got.Status)
	assert.Nil(t, got.RevokedAt)
}

func TestStore_TouchActivation(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	lic := seedLicense(t, store, licenseSeed{key: "T"})
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	a := newActivation(lic.ID, "h1", start)
	_, err := store.CreateActivationWithinQuota(ctx, a)
	require.NoError(t, err)

	later := start.Add(time.Hour)
	require.NoError(t, store.TouchActivation(ctx, a.ID, "", later))
	got, err := store.GetActivation(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, later.Equal(got.LastSeenAt))
	assert.Equal(t, "1.0.0", got.ActivatedAppVersion, "empty version keeps the stored one")
	assert.True(t, start.Equal(got.FirstActivatedAt))

	require.NoError(t, store.TouchActivation(ctx, a.ID, "2.0.0", later))
	got, err = store.GetActivation(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "2.0.0", got.ActivatedAppVersion)
}

func TestStore_ListLicensesAndExpiredCount(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	past := time.Now().UTC().Add(-48 * time.Hour)
	seedLicense(t, store, licenseSeed{key: "AAA-1"})
	seedLicense(t, store, licenseSeed{key: "AAA-2", expiresAt: &past})
	seedLicense(t, store, licenseSeed{key: "BBB-1", status: models.LicenseStatusSuspended})

	all, total, err := store.ListLicenses(ctx, LicenseFilter{})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, all, 3)

	filtered, total, err := store.ListLicenses(ctx, LicenseFilter{Search: "AAA"})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, filtered, 2)

	suspended, _, err := store.ListLicenses(ctx, LicenseFilter{Status: models.LicenseStatusSuspended})
	require.NoError(t, err)
	require.Len(t, suspended, 1)
	assert.Equal(t, "BBB-1", suspended[0].LicenseKey)

	paged, total, err := store.ListLicenses(ctx, LicenseFilter{Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, paged, 1)

	expired, err := store.CountExpiredLicenses(ctx, time.Now().UTC())
	require.NoError(t, err)
	assert.Equal(t, 1, expired)
}

func TestStore_StatsAndEvents(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	now := utils.NowUTC()
	past := now.Add(-time.Hour)

	active := seedLicense(t, store, licenseSeed{key: "S-ACTIVE", max: 3})
	seedLicense(t, store, licenseSeed{key: "S-EXPIRED", expiresAt: &past})
	seedLicense(t, store, licenseSeed{key: "S-SUSP", status: models.LicenseStatusSuspended})
	seedLicense(t, store, licenseSeed{key: "S-REV", status: models.LicenseStatusRevoked})

	a1 := newActivation(active.ID, "h1", now)
	a2 := newActivation(active.ID, "h2", now)
	for _, a := range []*models.Activation{a1, a2} {
		ok, err := store.CreateActivationWithinQuota(ctx, a)
		require.NoError(t, err)
		require.True(t, ok)
	}
	_, err := store.RevokeActivation(ctx, a2.ID, now)
	require.NoError(t, err)

	stats, err := store.Stats(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, models.DashboardStats{
		TotalLicenses:     4,
		ActiveLicenses:    2,
		SuspendedLicenses: 1,
		RevokedLicenses:   1,
		ExpiredLicenses:   1,
		ActiveActivations: 1,
	}, *stats)

	require.NoError(t, store.LogActivationEvent(ctx, models.ActivationLog{
		ActivationID: a1.ID, LicenseID: active.ID, Action: models.ActivationActionActivated, Details: "first",
	}))
	require.NoError(t, store.LogActivationEvent(ctx, models.ActivationLog{
		ActivationID: a2.ID, LicenseID: active.ID, Action: models.ActivationActionRevoked, Details: "second",
	}))

	events, err := store.ListActivationEvents(ctx, active.ID, 10)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "second", events[0].Details, "newest first")

	events, err = store.ListActivationEvents(ctx, "lic-none", 10)
	require.NoError(t, err)
	assert.Empty(t, events)

	events, err = store.ListActivationEvents(ctx, "", 1)
	require.NoError(t, err)
	assert.Len(t, events, 1)
}
