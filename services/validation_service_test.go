package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"devicelicense/models"
	"devicelicense/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

type validationFixture struct {
	store      LicenseStore
	activation ActivationService
	validation ValidationService
	clock      *clock
}

func newValidationFixture(t *testing.T) *validationFixture {
	t.Helper()
	store, _ := newTestStore(t)
	codec := utils.NewActivationTokenCodec(testSecret, 8760*time.Hour)
	c := &clock{now: utils.NowUTC()}
	return &validationFixture{
		store:      store,
		activation: NewActivationService(store, codec, ActivationOptions{Now: c.Now}),
		validation: NewValidationService(store, codec, c.Now),
		clock:      c,
	}
}

func (f *validationFixture) activate(t *testing.T, key string) *ActivationResult {
	t.Helper()
	res, err := activate(f.activation, key, "device-A")
	require.NoError(t, err)
	return res
}

func TestValidate_ValidUpdatesLastSeen(t *testing.T) {
	f := newValidationFixture(t)
	exp := f.clock.now.Add(30 * 24 * time.Hour)
	seedLicense(t, f.store, licenseSeed{key: "VAL", expiresAt: &exp})
	res := f.activate(t, "VAL")

	f.clock.now = f.clock.now.Add(2 * time.Hour)
	out, err := f.validation.Validate(context.Background(), res.Token, "1.0.1")
	require.NoError(t, err)
	assert.True(t, out.Valid)
	assert.Empty(t, out.Reason)
	assert.Equal(t, models.LicenseStatusActive, out.Status)
	require.NotNil(t, out.ExpiresAt)
	assert.True(t, exp.Equal(*out.ExpiresAt))
	assert.True(t, f.clock.now.Equal(out.ServerTime))

	stored, err := f.store.GetActivation(context.Background(), res.Activation.ID)
	require.NoError(t, err)
	assert.True(t, f.clock.now.Equal(stored.LastSeenAt))
}

func TestValidate_InvalidToken(t *testing.T) {
	f := newValidationFixture(t)
	out, err := f.validation.Validate(context.Background(), "not-a-jwt", "")
	require.NoError(t, err)
	assert.False(t, out.Valid)
	assert.Equal(t, models.ReasonInvalidToken, out.Reason)
	assert.False(t, out.ServerTime.IsZero())
}

func TestValidate_RevokedActivation(t *testing.T) {
	f := newValidationFixture(t)
	seedLicense(t, f.store, licenseSeed{key: "REVOKED"})
	res := f.activate(t, "REVOKED")

	_, err := f.activation.Deactivate(context.Background(), res.Token)
	require.NoError(t, err)

	out, err := f.validation.Validate(context.Background(), res.Token, "")
	require.NoError(t, err)
	assert.False(t, out.Valid)
	assert.Equal(t, models.ReasonActivationRevoked, out.Reason)
}

func TestValidate_LicensePolicyChanges(t *testing.T) {
	f := newValidationFixture(t)
	lic := seedLicense(t, f.store, licenseSeed{key: "POLICY"})
	res := f.activate(t, "POLICY")

	lic.Status = models.LicenseStatusSuspended
	require.NoError(t, f.store.UpdateLicense(context.Background(), lic))
	out, err := f.validation.Validate(context.Background(), res.Token, "")
	require.NoError(t, err)
	assert.False(t, out.Valid)
	assert.Equal(t, models.ReasonSuspended, out.Reason)

	past := f.clock.now.Add(-time.Minute)
	lic.Status = models.LicenseStatusActive
	lic.ExpiresAt = &past
	require.NoError(t, f.store.UpdateLicense(context.Background(), lic))
	out, err = f.validation.Validate(context.Background(), res.Token, "")
	require.NoError(t, err)
	assert.False(t, out.Valid)
	assert.Equal(t, models.ReasonExpired, out.Reason)
}

func TestValidate_UnknownActivation(t *testing.T) {
	f := newValidationFixture(t)
	codec := utils.NewActivationTokenCodec(testSecret, time.Hour)
	token, _, err := codec.Issue("lic-x", "act-missing", "hash")
	require.NoError(t, err)

	out, err := f.validation.Validate(context.Background(), token, "")
	require.NoError(t, err)
	assert.False(t, out.Valid)
	assert.Equal(t, models.ReasonActivationNotFound, out.Reason)
}

// flakyStore 특정 메서드만 실패시키는 LicenseStore
type flakyStore struct {
	LicenseStore
	touchErr error
	getErr   error
}

func (s *flakyStore) TouchActivation(ctx context.Context, id, appVersion string, seenAt time.Time) error {
	if s.touchErr != nil {
		return s.touchErr
	}
	return s.LicenseStore.TouchActivation(ctx, id, appVersion, seenAt)
}

func (s *flakyStore) GetActivation(ctx context.Context, id string) (*models.Activation, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.LicenseStore.GetActivation(ctx, id)
}

func TestValidate_LastSeenFailureIsBestEffort(t *testing.T) {
	f := newValidationFixture(t)
	seedLicense(t, f.store, licenseSeed{key: "BEST"})
	res := f.activate(t, "BEST")

	codec := utils.NewActivationTokenCodec(testSecret, time.Hour)
	flaky := &flakyStore{LicenseStore: f.store, touchErr: &StoreError{Kind: StoreNotReady, Err: errors.New("locked")}}
	svc := NewValidationService(flaky, codec, nil)

	out, err := svc.Validate(context.Background(), res.Token, "")
	require.NoError(t, err)
	assert.True(t, out.Valid)
}

func TestValidate_StoreUnavailable(t *testing.T) {
	f := newValidationFixture(t)
	seedLicense(t, f.store, licenseSeed{key: "DOWN"})
	res := f.activate(t, "DOWN")

	codec := utils.NewActivationTokenCodec(testSecret, time.Hour)
	flaky := &flakyStore{LicenseStore: f.store, getErr: &StoreError{Kind: StoreNotReady, Err: errors.New("schema not ready")}}
	svc := NewValidationService(flaky, codec, nil)

	_, err := svc.Validate(context.Background(), res.Token, "")
	requireKind(t, err, KindUnavailable)
}
