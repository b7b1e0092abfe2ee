package models

import "time"

// Release 앱 릴리스 정보 (플랫폼별 latest 는 최대 하나)
type Release struct {
	ID           string    `json:"id" db:"id"`
	Platform     string    `json:"platform" db:"platform"`
	Version      string    `json:"version" db:"version"`
	ReleaseNotes string    `json:"release_notes" db:"release_notes"`
	DownloadURL  string    `json:"download_url" db:"download_url"`
	IsLatest     bool      `json:"is_latest" db:"is_latest"`
	CreatedBy    string    `json:"created_by,omitempty" db:"created_by"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// DefaultPlatform platform 을 비웠을 때 사용하는 값
const DefaultPlatform = "windows"

// CreateReleaseRequest 릴리스 등록 요청
type CreateReleaseRequest struct {
	Platform     string `json:"platform" validate:"omitempty,oneof=windows macos linux"`
	Version      string `json:"version" validate:"required,max=64"`
	ReleaseNotes string `json:"release_notes" validate:"max=10000"`
	DownloadURL  string `json:"download_url" validate:"required,url,max=1024"`
	IsLatest     bool   `json:"is_latest"`
}

// LatestReleaseResponse 업데이트 확인 응답
// update_available 이 false 면 나머지 필드는 비어 있습니다.
type LatestReleaseResponse struct {
	UpdateAvailable bool   `json:"update_available"`
	LatestVersion   string `json:"latest_version,omitempty"`
	ReleaseNotes    string `json:"release_notes,omitempty"`
	DownloadURL     string `json:"download_url,omitempty"`
}
