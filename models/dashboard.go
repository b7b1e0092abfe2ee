package models

// DashboardStats 대시보드 통계
type DashboardStats struct {
	TotalLicenses     int `json:"total_licenses"`
	ActiveLicenses    int `json:"active_licenses"`
	SuspendedLicenses int `json:"suspended_licenses"`
	RevokedLicenses   int `json:"revoked_licenses"`
	// ExpiredLicenses status 는 active 이지만 만료일이 지난 라이선스 수
	ExpiredLicenses   int `json:"expired_licenses"`
	ActiveActivations int `json:"active_activations"`
}
