package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLicenseValidity(t *testing.T) {
	now := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	future := now.Add(24 * time.Hour)
	past := now.Add(-time.Second)

	tests := []struct {
		name      string
		status    string
		expiresAt *time.Time
		valid     bool
		reason    string
	}{
		{"active perpetual", LicenseStatusActive, nil, true, ""},
		{"active future expiry", LicenseStatusActive, &future, true, ""},
		{"active but expired", LicenseStatusActive, &past, false, ReasonExpired},
		{"revoked with future expiry", LicenseStatusRevoked, &future, false, ReasonRevoked},
		{"suspended perpetual", LicenseStatusSuspended, nil, false, ReasonSuspended},
		{"revoked beats expired", LicenseStatusRevoked, &past, false, ReasonRevoked},
		{"suspended beats expired", LicenseStatusSuspended, &past, false, ReasonSuspended},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := &License{Status: tt.status, ExpiresAt: tt.expiresAt}
			valid, reason := l.Validity(now)
			assert.Equal(t, tt.valid, valid)
			assert.Equal(t, tt.reason, reason)
		})
	}
}

func TestLicenseValidity_ExpiryBoundary(t *testing.T) {
	exp := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	l := &License{Status: LicenseStatusActive, ExpiresAt: &exp}

	valid, _ := l.Validity(exp)
	assert.True(t, valid, "expires_at == now is not yet expired")

	valid, reason := l.Validity(exp.Add(time.Second))
	assert.False(t, valid)
	assert.Equal(t, ReasonExpired, reason)
}

func TestViewsHideDeviceHash(t *testing.T) {
	label := "office"
	a := &Activation{ID: "act-1", DeviceIDHash: "secret-hash", DeviceLabel: &label, ActivatedAppVersion: "1.0.0"}
	v := a.View()
	assert.Equal(t, "act-1", v.ID)
	assert.Equal(t, &label, v.DeviceLabel)

	name := "ACME"
	l := &License{ID: "lic-1", LicenseKey: "KEY", CustomerName: &name, MaxActivations: 2, Status: LicenseStatusActive}
	lv := l.View()
	assert.Equal(t, 2, lv.MaxActivations)
	assert.Equal(t, &name, lv.CustomerName)
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(2, 20, 41)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, 41, p.TotalCount)
}
